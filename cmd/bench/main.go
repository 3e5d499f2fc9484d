// Command bench runs a full benchmark session from a JSON config: generate
// one shared input set, time each transform variant over several runs with
// alternating execution order, verify all variants produced byte-identical
// reports, optionally load the verified report into a database, and write
// JSON and CSV result files.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"salespipe/internal/bench"
	"salespipe/internal/config"
	"salespipe/internal/gen"
	"salespipe/internal/storage"
	_ "salespipe/internal/storage/all"
	"salespipe/internal/valcheck"
)

func main() {
	cfgPath := flag.String("config", "bench.json", "benchmark session config file")
	flag.Parse()

	log.SetFlags(log.LstdFlags | log.Lmsgprefix)
	log.SetPrefix("bench ")

	sess, err := config.LoadFile(*cfgPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	issues := config.Validate(sess)
	for _, iss := range issues {
		log.Printf("config: %v", iss)
	}
	if config.HasErrors(issues) {
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, sess); err != nil {
		log.Fatalf("session: %v", err)
	}
}

func run(ctx context.Context, sess config.Session) error {
	log.Printf("generate rows=%d num_products=%d seed=%d", sess.Rows, sess.NumProducts, sess.Seed)
	paths, err := gen.Generate(gen.Config{
		Rows:        sess.Rows,
		NumProducts: sess.NumProducts,
		Seed:        sess.Seed,
		OutDir:      sess.DataDir,
	})
	if err != nil {
		return err
	}

	variants := make([]bench.Variant, len(sess.Variants))
	for i, v := range sess.Variants {
		variants[i] = bench.Variant{Name: v.Name, Command: v.Command}
	}

	outPath := func(v bench.Variant) string {
		return filepath.Join(sess.ResultsDir, fmt.Sprintf("out_%s.csv", v.Name))
	}
	if err := os.MkdirAll(sess.ResultsDir, 0o755); err != nil {
		return fmt.Errorf("create results dir: %w", err)
	}

	// Alternate execution order across runs so cache warmup and background
	// noise do not systematically favor one variant.
	var runs []bench.RunMetrics
	for r := 1; r <= sess.Runs; r++ {
		order := variants
		if r%2 == 0 {
			order = reversed(variants)
		}
		for _, v := range order {
			if err := ctx.Err(); err != nil {
				return err
			}
			out := outPath(v)
			args := []string{paths.Events, paths.ProductDim, paths.CountryDim, out}
			m, err := bench.RunVariant(v, r, args, out)
			if err != nil {
				return err
			}
			runs = append(runs, m)
		}
	}

	// Every variant must have produced the same bytes as the baseline.
	base := variants[0]
	for _, v := range variants[1:] {
		res, err := valcheck.Compare(outPath(base), outPath(v))
		if err != nil {
			return err
		}
		log.Printf("validate %s vs %s: %s", base.Name, v.Name, res.Describe())
		if !res.Match {
			return fmt.Errorf("outputs differ: %s vs %s", base.Name, v.Name)
		}
	}

	if sess.Load.Kind != "" {
		if err := loadReports(ctx, sess, variants, outPath); err != nil {
			return err
		}
	}

	summaries := bench.Summarize(runs, int64(sess.Rows))
	for _, s := range summaries {
		log.Print(s.Describe())
	}
	speedups := bench.Speedups(summaries)
	for _, sp := range speedups {
		log.Printf("speedup %s", sp)
	}

	jsonPath, csvPath, err := bench.WriteReports(sess.ResultsDir, bench.Report{
		Job:       sess.Job,
		Timestamp: time.Now().UTC().Format("20060102T150405Z"),
		InputRows: int64(sess.Rows),
		Seed:      sess.Seed,
		Runs:      runs,
		Summaries: summaries,
		Speedups:  speedups,
	})
	if err != nil {
		return err
	}
	log.Printf("reports json=%s csv=%s", jsonPath, csvPath)
	return nil
}

func loadReports(ctx context.Context, sess config.Session, variants []bench.Variant, outPath func(bench.Variant) string) error {
	for _, v := range variants {
		table := fmt.Sprintf("%s_%s", sess.Load.TablePrefix, v.Name)
		repo, err := storage.New(ctx, storage.Config{
			Kind:  sess.Load.Kind,
			DSN:   sess.Load.DSN,
			Table: table,
		})
		if err != nil {
			return err
		}
		n, err := storage.LoadReport(ctx, repo, sess.Load.Kind, table, outPath(v), sess.Load.BatchSize)
		repo.Close()
		if err != nil {
			return err
		}
		log.Printf("load variant=%s table=%s inserted=%d", v.Name, table, n)
	}
	return nil
}

func reversed(vs []bench.Variant) []bench.Variant {
	out := make([]bench.Variant, len(vs))
	for i, v := range vs {
		out[len(vs)-1-i] = v
	}
	return out
}

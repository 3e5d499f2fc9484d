// Command load pushes a finished report CSV into a database. The target
// table is dropped and recreated so repeated loads of the same report stay
// idempotent.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"salespipe/internal/config"
	"salespipe/internal/storage"
	_ "salespipe/internal/storage/all"
)

func main() {
	var (
		input = flag.String("input", "", "report CSV to load (required)")
		kind  = flag.String("kind", "sqlite", "storage backend: sqlite|postgres|mysql")
		dsn   = flag.String("dsn", "", "backend connection string (required)")
		table = flag.String("table", "sales_report", "target table name")
		batch = flag.Int("batch", config.DefaultBatchSize, "rows per insert batch")
	)
	flag.Parse()

	log.SetFlags(log.LstdFlags | log.Lmsgprefix)
	log.SetPrefix("load ")

	if *input == "" || *dsn == "" {
		flag.Usage()
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repo, err := storage.New(ctx, storage.Config{Kind: *kind, DSN: *dsn, Table: *table})
	if err != nil {
		log.Fatalf("open storage: %v", err)
	}
	defer repo.Close()

	start := time.Now()
	n, err := storage.LoadReport(ctx, repo, *kind, *table, *input, *batch)
	if err != nil {
		log.Fatalf("load: %v", err)
	}
	log.Printf("done kind=%s table=%s inserted=%d elapsed=%s",
		*kind, *table, n, time.Since(start).Truncate(time.Millisecond))
}

// Command transform runs the deterministic sales aggregation: three input
// CSVs in, one canonically sorted report CSV out.
//
// Usage:
//
//	transform [flags] <events.csv> <dim_products.csv> <dim_countries.csv> <output.csv>
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"salespipe/internal/metrics"
	"salespipe/internal/metrics/prompush"
	"salespipe/internal/pipeline"
)

func main() {
	var (
		workers        = flag.Int("workers", 0, "derive-stage worker count (0 = SALESPIPE_WORKERS env or 1)")
		metricsBackend = flag.String("metrics-backend", "none", "metrics backend: none|prompush")
		pushgatewayURL = flag.String("pushgateway-url", "", "Prometheus Pushgateway base URL (prompush backend)")
		job            = flag.String("job", "sales_agg", "job name for metrics labeling")
		verbose        = flag.Bool("v", false, "verbose logging")
	)
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(),
			"usage: %s [flags] <events.csv> <dim_products.csv> <dim_countries.csv> <output.csv>\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 4 {
		flag.Usage()
		os.Exit(2)
	}
	eventsPath, productsPath, countriesPath, outputPath :=
		flag.Arg(0), flag.Arg(1), flag.Arg(2), flag.Arg(3)

	log.SetFlags(log.LstdFlags | log.Lmsgprefix)
	log.SetPrefix("transform ")

	switch *metricsBackend {
	case "none", "":
	case "prompush":
		b, err := prompush.NewBackend(*job, *pushgatewayURL)
		if err != nil {
			log.Fatalf("metrics: %v", err)
		}
		metrics.SetBackend(b)
	default:
		log.Fatalf("unknown metrics backend %q", *metricsBackend)
	}

	opt := pipeline.Options{Workers: pipeline.WorkersFromEnv(*workers)}
	if *verbose {
		log.Printf("start events=%s products=%s countries=%s out=%s workers=%d",
			eventsPath, productsPath, countriesPath, outputPath, opt.Workers)
	}

	start := time.Now()
	stats, err := pipeline.Run(eventsPath, productsPath, countriesPath, outputPath, opt)
	metrics.RecordStage(*job, "transform", err, time.Since(start))
	if err != nil {
		_ = metrics.Flush()
		log.Fatalf("run: %v", err)
	}

	metrics.RecordRows(*job, "raw", stats.RawRows)
	metrics.RecordRows(*job, "parse_dropped", stats.ParseDropped)
	metrics.RecordRows(*job, "filter_dropped", stats.FilterDropped)
	metrics.RecordRows(*job, "deduped", stats.Deduped)
	metrics.RecordRows(*job, "aggregated", stats.AggregateRows)
	if err := metrics.Flush(); err != nil {
		log.Printf("metrics: flush: %v", err)
	}

	if *verbose {
		for _, s := range stats.DropSamples {
			log.Printf("dropped %s", s)
		}
	}
	log.Printf("done elapsed=%s %s", time.Since(start).Truncate(time.Millisecond), stats.Summary())
}

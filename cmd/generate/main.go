// Command generate writes the synthetic input tables (events plus the two
// dimensions) for a transform or benchmark run. Equal seeds produce equal
// files.
package main

import (
	"flag"
	"log"
	"time"

	"salespipe/internal/config"
	"salespipe/internal/gen"
)

func main() {
	var (
		rows        = flag.Int("rows", config.DefaultRows, "number of event rows")
		numProducts = flag.Int("num-products", config.DefaultNumProducts, "product dimension cardinality")
		seed        = flag.Int64("seed", config.DefaultSeed, "RNG seed")
		outDir      = flag.String("out-dir", config.DefaultDataDir, "output directory")
	)
	flag.Parse()

	log.SetFlags(log.LstdFlags | log.Lmsgprefix)
	log.SetPrefix("generate ")

	start := time.Now()
	paths, err := gen.Generate(gen.Config{
		Rows:        *rows,
		NumProducts: *numProducts,
		Seed:        *seed,
		OutDir:      *outDir,
	})
	if err != nil {
		log.Fatalf("generate: %v", err)
	}
	log.Printf("done rows=%d num_products=%d seed=%d elapsed=%s events=%s products=%s countries=%s",
		*rows, *numProducts, *seed, time.Since(start).Truncate(time.Millisecond),
		paths.Events, paths.ProductDim, paths.CountryDim)
}

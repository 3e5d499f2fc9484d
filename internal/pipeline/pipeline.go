package pipeline

import (
	"fmt"
	"os"
	"strconv"
)

// Options tunes a run without affecting its output.
type Options struct {
	// Workers bounds the derive stage's parallelism; <= 1 means sequential.
	Workers int
}

// Stats is the end-of-run row accounting. The invariant is
//
//	RawRows = SkippedRows + ParseDropped + FilterDropped + Filtered
//	Filtered >= Deduped >= Deduped - DroppedProduct - DroppedCountry = derived rows
//
// Stats never influence output content.
type Stats struct {
	EventStats
	Deduped        int64
	DroppedProduct int64
	DroppedCountry int64
	CustomerDays   int64
	AggregateRows  int64
}

// Run executes the whole transform: three input tables in, one canonically
// sorted aggregate table out. Row-level defects are absorbed silently;
// input- and output-level defects abort with an error and leave no output
// file behind.
func Run(eventsPath, productDimPath, countryDimPath, outputPath string, opt Options) (Stats, error) {
	products, err := LoadProductDim(productDimPath)
	if err != nil {
		return Stats{}, err
	}
	countries, err := LoadCountryDim(countryDimPath)
	if err != nil {
		return Stats{}, err
	}
	events, evStats, err := LoadEvents(eventsPath)
	if err != nil {
		return Stats{}, err
	}

	deduped := Dedup(events)
	derived, drops := Derive(deduped, products, countries, opt.Workers)
	spend := CustomerDaySpend(derived)
	flags := VIPFlags(derived, spend)
	rows := AggregateAll(derived, flags)

	stats := Stats{
		EventStats:     evStats,
		Deduped:        int64(len(deduped)),
		DroppedProduct: drops.Product,
		DroppedCountry: drops.Country,
		CustomerDays:   int64(len(spend)),
		AggregateRows:  int64(len(rows)),
	}

	if err := WriteOutput(outputPath, rows); err != nil {
		return stats, err
	}
	return stats, nil
}

// Transform is the pure core: the deterministic mapping from materialized
// inputs to the sorted aggregate table. It never reads or mutates its inputs
// beyond iteration and always yields the same rows for the same inputs,
// regardless of Options.
func Transform(events []Event, products map[int64]Product, countries map[string]Country, opt Options) []ResultRow {
	deduped := Dedup(events)
	derived, _ := Derive(deduped, products, countries, opt.Workers)
	spend := CustomerDaySpend(derived)
	flags := VIPFlags(derived, spend)
	return AggregateAll(derived, flags)
}

// WorkersFromEnv resolves the derive worker count: explicit flag value when
// positive, else the SALESPIPE_WORKERS environment variable, else 1.
func WorkersFromEnv(flagValue int) int {
	if flagValue > 0 {
		return flagValue
	}
	if s := os.Getenv("SALESPIPE_WORKERS"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			return n
		}
	}
	return 1
}

// Summary renders the run stats as the one-line key=value form used in logs.
func (s Stats) Summary() string {
	return fmt.Sprintf(
		"raw_rows=%d skipped_rows=%d parse_dropped=%d filter_dropped=%d filtered=%d deduped=%d dropped_product=%d dropped_country=%d customer_days=%d aggregate_rows=%d",
		s.RawRows, s.SkippedRows, s.ParseDropped, s.FilterDropped, s.Filtered,
		s.Deduped, s.DroppedProduct, s.DroppedCountry, s.CustomerDays, s.AggregateRows,
	)
}

// Package gen produces the synthetic input tables: a seeded, deterministic
// generator for events plus the two dimension tables, including a controlled
// rate of malformed values so the transform's row-exclusion paths are
// exercised. The same seed always yields the same bytes.
package gen

import (
	"encoding/csv"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Config controls a generation run.
type Config struct {
	Rows        int   // number of event rows
	NumProducts int   // product dimension cardinality
	Seed        int64 // RNG seed
	OutDir      string
}

// Paths names the three generated files.
type Paths struct {
	Events     string
	ProductDim string
	CountryDim string
}

var categories = []string{
	"electronics", "apparel", "home", "grocery",
	"sports", "books", "beauty", "toys",
}

// countryFactor rows are emitted in this (sorted) order.
type countryFactor struct {
	code       string
	fxToUSDPPM int64
	riskBPS    int64
	taxBPS     int64
}

var countryFactors = []countryFactor{
	{"AU", 660000, 10250, 1000},
	{"CA", 740000, 10150, 500},
	{"DE", 1080000, 9950, 1900},
	{"FR", 1090000, 10050, 2000},
	{"GB", 1260000, 10200, 2000},
	{"IN", 12000, 10800, 1800},
	{"SG", 740000, 9900, 900},
	{"US", 1000000, 10000, 850},
}

var (
	customerTiers  = []string{"bronze", "silver", "gold", "platinum"}
	tierWeights    = []float64{0.45, 0.30, 0.18, 0.07}
	paymentMethods = []string{"card", "bank_transfer", "wallet", "upi", "cod"}
	paymentWeights = []float64{0.58, 0.12, 0.16, 0.10, 0.04}
	statuses       = []string{"COMPLETE", "PENDING", "CANCELLED"}
	statusWeights  = []float64{0.74, 0.17, 0.09}
)

// weightedChoice picks one item; weights need not sum to exactly 1.
func weightedChoice(rng *rand.Rand, items []string, weights []float64) string {
	total := 0.0
	for _, w := range weights {
		total += w
	}
	r := rng.Float64() * total
	for i, w := range weights {
		if r < w {
			return items[i]
		}
		r -= w
	}
	return items[len(items)-1]
}

// maybeBadInt returns the value as text, or an empty/unparseable string at
// the given injection rates.
func maybeBadInt(v int64, rng *rand.Rand, emptyRate, badRate float64) string {
	r := rng.Float64()
	if r < emptyRate {
		return ""
	}
	if r < emptyRate+badRate {
		return "bad"
	}
	return strconv.FormatInt(v, 10)
}

func maybeBadStatus(s string, rng *rand.Rand) string {
	r := rng.Float64()
	if r < 0.008 {
		return ""
	}
	if r < 0.012 {
		return "INVALID"
	}
	return s
}

func maybeBadCountry(c string, rng *rand.Rand) string {
	r := rng.Float64()
	if r < 0.004 {
		return ""
	}
	if r < 0.008 {
		return "ZZ" // syntactically fine, absent from the dimension
	}
	return c
}

func maybeBadTier(t string, rng *rand.Rand) string {
	r := rng.Float64()
	if r < 0.008 {
		return ""
	}
	if r < 0.012 {
		return "diamond"
	}
	return t
}

func maybeBadEventTS(ts string, rng *rand.Rand) string {
	r := rng.Float64()
	if r < 0.004 {
		return ""
	}
	if r < 0.008 {
		return ts[:10] + " " + ts[11:] // break the 'T' separator
	}
	return ts
}

// Generate writes the three input CSVs under cfg.OutDir.
func Generate(cfg Config) (Paths, error) {
	if cfg.Rows <= 0 {
		return Paths{}, fmt.Errorf("gen: rows must be > 0")
	}
	if cfg.NumProducts <= 0 {
		return Paths{}, fmt.Errorf("gen: num products must be > 0")
	}
	if err := os.MkdirAll(cfg.OutDir, 0o755); err != nil {
		return Paths{}, fmt.Errorf("gen: create out dir: %w", err)
	}

	paths := Paths{
		Events:     filepath.Join(cfg.OutDir, "events.csv"),
		ProductDim: filepath.Join(cfg.OutDir, "dim_products.csv"),
		CountryDim: filepath.Join(cfg.OutDir, "dim_countries.csv"),
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	if err := writeProductDim(paths.ProductDim, cfg.NumProducts, rng); err != nil {
		return Paths{}, err
	}
	if err := writeCountryDim(paths.CountryDim); err != nil {
		return Paths{}, err
	}
	if err := writeEvents(paths.Events, cfg.Rows, cfg.NumProducts, rng); err != nil {
		return Paths{}, err
	}
	return paths, nil
}

func writeProductDim(path string, numProducts int, rng *rand.Rand) error {
	return writeCSV(path, func(w *csv.Writer) error {
		if err := w.Write([]string{"product_id", "category", "margin_bps", "weight_grams"}); err != nil {
			return err
		}
		for id := 1; id <= numProducts; id++ {
			row := []string{
				strconv.Itoa(id),
				categories[rng.Intn(len(categories))],
				strconv.Itoa(1600 + rng.Intn(7200-1600+1)),
				strconv.Itoa(120 + rng.Intn(4500-120+1)),
			}
			if err := w.Write(row); err != nil {
				return err
			}
		}
		return nil
	})
}

func writeCountryDim(path string) error {
	return writeCSV(path, func(w *csv.Writer) error {
		if err := w.Write([]string{"country", "fx_to_usd_ppm", "risk_bps", "tax_bps"}); err != nil {
			return err
		}
		for _, c := range countryFactors {
			row := []string{
				c.code,
				strconv.FormatInt(c.fxToUSDPPM, 10),
				strconv.FormatInt(c.riskBPS, 10),
				strconv.FormatInt(c.taxBPS, 10),
			}
			if err := w.Write(row); err != nil {
				return err
			}
		}
		return nil
	})
}

func writeEvents(path string, rows, numProducts int, rng *rand.Rand) error {
	startDate := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	return writeCSV(path, func(w *csv.Writer) error {
		header := []string{
			"event_id", "event_version", "event_ts", "event_date",
			"customer_id", "product_id", "amount_cents", "quantity",
			"discount_bps", "shipping_cents", "status", "country",
			"customer_tier", "payment_method",
		}
		if err := w.Write(header); err != nil {
			return err
		}

		for i := 0; i < rows; i++ {
			var eventID string
			eventVersion := 1
			// A slice of rows replays an earlier event_id with a new version,
			// feeding the dedup stage.
			if i > 0 && rng.Float64() < 0.08 {
				eventID = fmt.Sprintf("E%012d", rng.Intn(i))
				eventVersion = 1 + rng.Intn(8)
			} else {
				eventID = fmt.Sprintf("E%012d", i)
			}

			day := startDate.AddDate(0, 0, rng.Intn(90))
			eventDate := day.Format("2006-01-02")
			eventTS := fmt.Sprintf("%sT%02d:%02d:%02d", eventDate, rng.Intn(24), rng.Intn(60), rng.Intn(60))

			row := []string{
				eventID,
				strconv.Itoa(eventVersion),
				maybeBadEventTS(eventTS, rng),
				eventDate,
				strconv.Itoa(1 + rng.Intn(120000)),
				strconv.Itoa(1 + rng.Intn(numProducts)),
				maybeBadInt(int64(100+rng.Intn(50000-100+1)), rng, 0.01, 0.005),
				maybeBadInt(int64(1+rng.Intn(10)), rng, 0.01, 0.005),
				maybeBadInt(int64(rng.Intn(3501)), rng, 0.01, 0.005),
				maybeBadInt(int64(rng.Intn(2501)), rng, 0.008, 0.004),
				maybeBadStatus(weightedChoice(rng, statuses, statusWeights), rng),
				maybeBadCountry(countryFactors[rng.Intn(len(countryFactors))].code, rng),
				maybeBadTier(weightedChoice(rng, customerTiers, tierWeights), rng),
				weightedChoice(rng, paymentMethods, paymentWeights),
			}
			if err := w.Write(row); err != nil {
				return err
			}
		}
		return nil
	})
}

// writeCSV opens path, hands a csv.Writer to fill, and flushes/closes it.
func writeCSV(path string, fill func(w *csv.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("gen: create %s: %w", path, err)
	}
	w := csv.NewWriter(f)
	if err := fill(w); err != nil {
		f.Close()
		return fmt.Errorf("gen: write %s: %w", path, err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("gen: flush %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("gen: close %s: %w", path, err)
	}
	return nil
}

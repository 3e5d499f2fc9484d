package pipeline

import (
	"fmt"
	"os"
	"strings"

	"salespipe/internal/csvtab"
)

// ProductColumns is the required header set for the product dimension.
var ProductColumns = []string{"product_id", "category", "margin_bps", "weight_grams"}

// CountryColumns is the required header set for the country dimension.
var CountryColumns = []string{"country", "fx_to_usd_ppm", "risk_bps", "tax_bps"}

// LoadProductDim reads the product dimension keyed by product_id. Rows with a
// non-positive key are excluded; a later duplicate key overwrites an earlier
// one. Attribute values are clamped into their domain ranges.
func LoadProductDim(path string) (map[int64]Product, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open product dim: %w", err)
	}
	defer f.Close()

	t, err := csvtab.Read(f, ProductColumns, csvtab.Options{})
	if err != nil {
		return nil, fmt.Errorf("read product dim: %w", err)
	}

	dim := make(map[int64]Product, len(t.Rows))
	for _, row := range t.Rows {
		id := parseInt(row[0])
		if id <= 0 {
			continue
		}
		category := strings.ToLower(strings.TrimSpace(row[1]))
		if category == "" {
			category = "unknown"
		}
		dim[id] = Product{
			Category:    category,
			MarginBPS:   clampInt(parseInt(row[2]), 0, 9500),
			WeightGrams: clampInt(parseInt(row[3]), 1, 20000),
		}
	}
	return dim, nil
}

// LoadCountryDim reads the country dimension keyed by uppercased country code.
func LoadCountryDim(path string) (map[string]Country, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open country dim: %w", err)
	}
	defer f.Close()

	t, err := csvtab.Read(f, CountryColumns, csvtab.Options{})
	if err != nil {
		return nil, fmt.Errorf("read country dim: %w", err)
	}

	dim := make(map[string]Country, len(t.Rows))
	for _, row := range t.Rows {
		code := strings.ToUpper(strings.TrimSpace(row[0]))
		if code == "" {
			continue
		}
		dim[code] = Country{
			FxToUSDPPM: clampInt(parseInt(row[1]), 1, 2500000),
			RiskBPS:    clampInt(parseInt(row[2]), 1, 20000),
			TaxBPS:     clampInt(parseInt(row[3]), 0, 5000),
		}
	}
	return dim, nil
}

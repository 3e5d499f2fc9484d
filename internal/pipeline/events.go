package pipeline

import (
	"fmt"
	"os"
	"strings"

	"salespipe/internal/csvtab"
)

// EventColumns is the required header set for the events table.
var EventColumns = []string{
	"event_id",
	"event_version",
	"event_ts",
	"event_date",
	"customer_id",
	"product_id",
	"amount_cents",
	"quantity",
	"discount_bps",
	"shipping_cents",
	"status",
	"country",
	"customer_tier",
}

// Positional indexes into EventColumns-projected rows.
const (
	colEventID = iota
	colEventVersion
	colEventTS
	colEventDate
	colCustomerID
	colProductID
	colAmountCents
	colQuantity
	colDiscountBPS
	colShippingCents
	colStatus
	colCountry
	colCustomerTier
)

// Domain caps for the unbounded numeric event columns. With these in place
// every product in the derivation chain stays far inside int64, so a single
// absurd input value cannot overflow and silently corrupt totals:
// gross <= maxAmountCents*maxQuantity + 25000 ~ 1e12, and the largest
// intermediate (net * fx_to_usd_ppm) stays under 4e18.
const (
	maxAmountCents = 100_000_000 // $1M per item
	maxQuantity    = 10_000
)

var validTiers = map[string]bool{
	"bronze":   true,
	"silver":   true,
	"gold":     true,
	"platinum": true,
}

// maxDropSamples bounds the per-run examples kept for dropped rows.
const maxDropSamples = 5

// EventStats accounts for rows entering and leaving the parse/filter stages.
// Counts and samples are diagnostics only; they never influence output
// content.
type EventStats struct {
	RawRows       int64 // data rows read (excluding header)
	SkippedRows   int64 // unparseable/short rows dropped by the reader
	ParseDropped  int64 // rows failing structural/domain validation
	FilterDropped int64 // rows failing the status/amount/quantity filter
	Filtered      int64 // rows surviving both stages

	// DropSamples holds the first few dropped rows for log output.
	DropSamples []string
}

func (s *EventStats) sample(kind string, rowNum int, row []string) {
	if len(s.DropSamples) >= maxDropSamples {
		return
	}
	s.DropSamples = append(s.DropSamples,
		fmt.Sprintf("%s row=%d event_id=%q status=%q", kind, rowNum, row[colEventID], row[colStatus]))
}

// parseEvent coerces one projected row into an Event. ok=false marks a
// structural defect (empty id/ts/date, non-positive customer or product id);
// the row is excluded from all downstream processing.
func parseEvent(row []string) (Event, bool) {
	e := Event{
		ID:            strings.TrimSpace(row[colEventID]),
		Version:       parseInt(row[colEventVersion]),
		TS:            strings.TrimSpace(row[colEventTS]),
		Date:          strings.TrimSpace(row[colEventDate]),
		CustomerID:    parseInt(row[colCustomerID]),
		ProductID:     parseInt(row[colProductID]),
		AmountCents:   clampInt(parseInt(row[colAmountCents]), 0, maxAmountCents),
		Quantity:      clampInt(parseInt(row[colQuantity]), 0, maxQuantity),
		DiscountBPS:   clampInt(parseInt(row[colDiscountBPS]), 0, 5000),
		ShippingCents: clampInt(parseInt(row[colShippingCents]), 0, 25000),
		Country:       strings.ToUpper(strings.TrimSpace(row[colCountry])),
		Tier:          strings.ToLower(strings.TrimSpace(row[colCustomerTier])),
	}
	if e.ID == "" || e.TS == "" || e.Date == "" {
		return Event{}, false
	}
	if e.CustomerID <= 0 || e.ProductID <= 0 {
		return Event{}, false
	}
	if !validTiers[e.Tier] {
		e.Tier = "unknown"
	}
	return e, true
}

// keepEvent is the eligibility filter: completed orders with positive money
// and quantity.
func keepEvent(row []string, e Event) bool {
	status := strings.ToUpper(strings.TrimSpace(row[colStatus]))
	return status == "COMPLETE" && e.AmountCents > 0 && e.Quantity > 0
}

// LoadEvents reads, parses, and filters the events table, preserving input
// order for the surviving rows. Row-level defects are excluded and counted;
// a missing column or unreadable file is fatal.
func LoadEvents(path string) ([]Event, EventStats, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, EventStats{}, fmt.Errorf("open events: %w", err)
	}
	defer f.Close()

	t, err := csvtab.Read(f, EventColumns, csvtab.Options{})
	if err != nil {
		return nil, EventStats{}, fmt.Errorf("read events: %w", err)
	}

	stats := EventStats{
		RawRows:     int64(len(t.Rows)) + int64(t.Skipped),
		SkippedRows: int64(t.Skipped),
	}
	events := make([]Event, 0, len(t.Rows))
	for i, row := range t.Rows {
		e, ok := parseEvent(row)
		if !ok {
			stats.ParseDropped++
			stats.sample("parse", i+2, row) // +2: header line plus 1-based
			continue
		}
		if !keepEvent(row, e) {
			stats.FilterDropped++
			stats.sample("filter", i+2, row)
			continue
		}
		stats.Filtered++
		events = append(events, e)
	}
	return events, stats, nil
}

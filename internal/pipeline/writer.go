package pipeline

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// OutputColumns is the exact output header: the composite key fields followed
// by the aggregate measures. Column order is part of the contract.
var OutputColumns = []string{
	"event_date",
	"customer_tier",
	"category",
	"country",
	"time_bucket",
	"order_size_bucket",
	"order_count",
	"vip_customer_orders",
	"total_quantity",
	"total_net_usd_cents",
	"total_profit_usd_cents",
	"total_risk_adjusted_usd_cents",
	"avg_item_price_usd_cents",
	"heavy_item_orders",
}

// encodeRow renders one result row. The average item price is derived here
// from the totals using the pinned rounding rule.
func encodeRow(r ResultRow) []string {
	avg := roundDiv(r.TotalNetUSDCents, r.TotalQuantity)
	return []string{
		r.Date,
		r.Tier,
		r.Category,
		r.Country,
		r.TimeBucket,
		r.SizeBucket,
		strconv.FormatInt(r.OrderCount, 10),
		strconv.FormatInt(r.VIPOrders, 10),
		strconv.FormatInt(r.TotalQuantity, 10),
		strconv.FormatInt(r.TotalNetUSDCents, 10),
		strconv.FormatInt(r.TotalProfitUSDCents, 10),
		strconv.FormatInt(r.TotalRiskAdjUSDCents, 10),
		strconv.FormatInt(avg, 10),
		strconv.FormatInt(r.HeavyItemOrders, 10),
	}
}

// WriteOutput serializes the sorted result table to path. The file is
// written to a temporary sibling and renamed into place, so either a
// complete table appears at path or nothing does.
func WriteOutput(path string, rows []ResultRow) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".salespipe-out-*")
	if err != nil {
		return fmt.Errorf("create temp output: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after successful rename

	bw := bufio.NewWriterSize(tmp, 1<<16)
	w := csv.NewWriter(bw)

	if err := w.Write(OutputColumns); err != nil {
		tmp.Close()
		return fmt.Errorf("write header: %w", err)
	}
	for _, r := range rows {
		if err := w.Write(encodeRow(r)); err != nil {
			tmp.Close()
			return fmt.Errorf("write row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		tmp.Close()
		return fmt.Errorf("flush output: %w", err)
	}
	if err := bw.Flush(); err != nil {
		tmp.Close()
		return fmt.Errorf("flush output: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close output: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("finalize output: %w", err)
	}
	return nil
}

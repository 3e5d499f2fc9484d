package bench

import (
	"fmt"
	"sort"
	"strings"
)

// VariantSummary aggregates all runs of one variant.
type VariantSummary struct {
	Variant       string  `json:"variant"`
	Runs          int     `json:"runs"`
	MeanWallSec   float64 `json:"mean_wall_sec"`
	MedianWallSec float64 `json:"median_wall_sec"`
	MinWallSec    float64 `json:"min_wall_sec"`
	MaxWallSec    float64 `json:"max_wall_sec"`
	MeanCPUPct    float64 `json:"mean_cpu_pct"`
	MeanMaxRSSMB  float64 `json:"mean_max_rss_mb"`
	RowsPerSec    float64 `json:"rows_per_sec"` // input rows / median wall
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

func median(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	s := append([]float64(nil), xs...)
	sort.Float64s(s)
	mid := len(s) / 2
	if len(s)%2 == 1 {
		return s[mid]
	}
	return (s[mid-1] + s[mid]) / 2
}

// Summarize folds the per-run metrics into one summary per variant, in the
// order variants first appear.
func Summarize(runs []RunMetrics, inputRows int64) []VariantSummary {
	order := []string{}
	byVariant := map[string][]RunMetrics{}
	for _, r := range runs {
		if _, ok := byVariant[r.Variant]; !ok {
			order = append(order, r.Variant)
		}
		byVariant[r.Variant] = append(byVariant[r.Variant], r)
	}

	out := make([]VariantSummary, 0, len(order))
	for _, name := range order {
		rs := byVariant[name]
		walls := make([]float64, len(rs))
		cpus := make([]float64, len(rs))
		rsss := make([]float64, len(rs))
		minW, maxW := rs[0].WallSec, rs[0].WallSec
		for i, r := range rs {
			walls[i] = r.WallSec
			if r.WallSec > 0 {
				cpus[i] = (r.UserSec + r.SysSec) / r.WallSec * 100
			}
			rsss[i] = float64(r.MaxRSSKB) / 1024
			if r.WallSec < minW {
				minW = r.WallSec
			}
			if r.WallSec > maxW {
				maxW = r.WallSec
			}
		}
		med := median(walls)
		s := VariantSummary{
			Variant:       name,
			Runs:          len(rs),
			MeanWallSec:   mean(walls),
			MedianWallSec: med,
			MinWallSec:    minW,
			MaxWallSec:    maxW,
			MeanCPUPct:    mean(cpus),
			MeanMaxRSSMB:  mean(rsss),
		}
		if med > 0 && inputRows > 0 {
			s.RowsPerSec = float64(inputRows) / med
		}
		out = append(out, s)
	}
	return out
}

// Speedups renders pairwise median-wall ratios between variants, baseline
// first.
func Speedups(summaries []VariantSummary) []string {
	if len(summaries) < 2 {
		return nil
	}
	base := summaries[0]
	out := make([]string, 0, len(summaries)-1)
	for _, s := range summaries[1:] {
		if s.MedianWallSec <= 0 {
			continue
		}
		out = append(out, fmt.Sprintf("%s/%s=%.2fx", base.Variant, s.Variant, base.MedianWallSec/s.MedianWallSec))
	}
	return out
}

// Describe renders a summary as the one-line key=value form used in logs.
func (s VariantSummary) Describe() string {
	var b strings.Builder
	fmt.Fprintf(&b, "variant=%s runs=%d mean_wall=%.3fs median_wall=%.3fs min=%.3fs max=%.3fs cpu=%.0f%% max_rss=%.1fMB",
		s.Variant, s.Runs, s.MeanWallSec, s.MedianWallSec, s.MinWallSec, s.MaxWallSec, s.MeanCPUPct, s.MeanMaxRSSMB)
	if s.RowsPerSec > 0 {
		fmt.Fprintf(&b, " rows_per_sec=%.0f", s.RowsPerSec)
	}
	return b.String()
}

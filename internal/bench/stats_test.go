package bench

import (
	"math"
	"strings"
	"testing"
)

func runMetric(variant string, run int, wall, user, sys float64, rss int64) RunMetrics {
	return RunMetrics{Variant: variant, Run: run, WallSec: wall, UserSec: user, SysSec: sys, MaxRSSKB: rss}
}

func TestMeanAndMedian(t *testing.T) {
	if got := mean([]float64{1, 2, 3}); got != 2 {
		t.Errorf("mean = %v, want 2", got)
	}
	if got := mean(nil); got != 0 {
		t.Errorf("mean(nil) = %v, want 0", got)
	}
	if got := median([]float64{3, 1, 2}); got != 2 {
		t.Errorf("odd median = %v, want 2", got)
	}
	if got := median([]float64{4, 1, 2, 3}); got != 2.5 {
		t.Errorf("even median = %v, want 2.5", got)
	}
}

func TestSummarizePerVariant(t *testing.T) {
	runs := []RunMetrics{
		runMetric("go", 1, 2.0, 1.5, 0.2, 100*1024),
		runMetric("rust", 1, 1.0, 0.8, 0.1, 50*1024),
		runMetric("go", 2, 4.0, 3.0, 0.5, 120*1024),
		runMetric("rust", 2, 1.2, 0.9, 0.1, 52*1024),
	}
	sums := Summarize(runs, 1_000_000)
	if len(sums) != 2 {
		t.Fatalf("summaries = %d, want 2", len(sums))
	}
	// first-appearance order preserved
	if sums[0].Variant != "go" || sums[1].Variant != "rust" {
		t.Fatalf("order = %s, %s", sums[0].Variant, sums[1].Variant)
	}
	g := sums[0]
	if g.Runs != 2 || g.MeanWallSec != 3.0 || g.MedianWallSec != 3.0 || g.MinWallSec != 2.0 || g.MaxWallSec != 4.0 {
		t.Fatalf("go summary = %+v", g)
	}
	if math.Abs(g.MeanMaxRSSMB-110) > 1e-9 {
		t.Errorf("go rss = %v, want 110", g.MeanMaxRSSMB)
	}
	wantRPS := 1_000_000.0 / 3.0
	if math.Abs(g.RowsPerSec-wantRPS) > 1e-6 {
		t.Errorf("go rows/sec = %v, want %v", g.RowsPerSec, wantRPS)
	}
}

func TestSpeedups(t *testing.T) {
	sums := []VariantSummary{
		{Variant: "go", MedianWallSec: 3.0},
		{Variant: "rust", MedianWallSec: 1.5},
	}
	got := Speedups(sums)
	if len(got) != 1 || got[0] != "go/rust=2.00x" {
		t.Fatalf("speedups = %v", got)
	}
	if Speedups(sums[:1]) != nil {
		t.Error("single variant should yield no speedups")
	}
}

func TestDescribeMentionsVariant(t *testing.T) {
	s := VariantSummary{Variant: "go", Runs: 3, MedianWallSec: 1.25}
	if out := s.Describe(); !strings.Contains(out, "variant=go") || !strings.Contains(out, "median_wall=1.250s") {
		t.Fatalf("describe = %q", out)
	}
}

func TestWriteReports(t *testing.T) {
	dir := t.TempDir()
	jsonPath, csvPath, err := WriteReports(dir, Report{
		Job:       "test",
		Timestamp: "20250101T000000Z",
		Runs: []RunMetrics{
			runMetric("go", 1, 1.0, 0.8, 0.1, 1024),
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	for _, p := range []string{jsonPath, csvPath} {
		if !strings.Contains(p, "20250101T000000Z") {
			t.Errorf("report path %s missing timestamp", p)
		}
	}
}

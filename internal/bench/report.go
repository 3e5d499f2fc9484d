package bench

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Report is the full artifact of a benchmark session.
type Report struct {
	Job       string           `json:"job"`
	Timestamp string           `json:"timestamp"`
	InputRows int64            `json:"input_rows"`
	Seed      int64            `json:"seed"`
	Runs      []RunMetrics     `json:"runs"`
	Summaries []VariantSummary `json:"summaries"`
	Speedups  []string         `json:"speedups,omitempty"`
}

// WriteReports persists the report as a JSON document plus a flat per-run CSV
// under dir, both named with the session timestamp. It returns the two paths.
func WriteReports(dir string, r Report) (jsonPath, csvPath string, err error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", "", fmt.Errorf("bench: create results dir: %w", err)
	}
	if r.Timestamp == "" {
		r.Timestamp = time.Now().UTC().Format("20060102T150405Z")
	}
	jsonPath = filepath.Join(dir, fmt.Sprintf("bench_%s.json", r.Timestamp))
	csvPath = filepath.Join(dir, fmt.Sprintf("bench_%s.csv", r.Timestamp))

	blob, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", "", fmt.Errorf("bench: marshal report: %w", err)
	}
	if err := os.WriteFile(jsonPath, blob, 0o644); err != nil {
		return "", "", fmt.Errorf("bench: write %s: %w", jsonPath, err)
	}

	f, err := os.Create(csvPath)
	if err != nil {
		return "", "", fmt.Errorf("bench: create %s: %w", csvPath, err)
	}
	w := csv.NewWriter(f)
	header := []string{"variant", "run", "wall_sec", "user_sec", "sys_sec", "max_rss_kb", "exit_status"}
	if err := w.Write(header); err != nil {
		f.Close()
		return "", "", fmt.Errorf("bench: write %s: %w", csvPath, err)
	}
	for _, m := range r.Runs {
		row := []string{
			m.Variant,
			strconv.Itoa(m.Run),
			strconv.FormatFloat(m.WallSec, 'f', 6, 64),
			strconv.FormatFloat(m.UserSec, 'f', 6, 64),
			strconv.FormatFloat(m.SysSec, 'f', 6, 64),
			strconv.FormatInt(m.MaxRSSKB, 10),
			strconv.Itoa(m.ExitStatus),
		}
		if err := w.Write(row); err != nil {
			f.Close()
			return "", "", fmt.Errorf("bench: write %s: %w", csvPath, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return "", "", fmt.Errorf("bench: flush %s: %w", csvPath, err)
	}
	if err := f.Close(); err != nil {
		return "", "", fmt.Errorf("bench: close %s: %w", csvPath, err)
	}
	return jsonPath, csvPath, nil
}

package gen

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestGenerateIsSeedDeterministic(t *testing.T) {
	dirA := t.TempDir()
	dirB := t.TempDir()
	cfg := Config{Rows: 500, NumProducts: 40, Seed: 7}

	cfg.OutDir = dirA
	pa, err := Generate(cfg)
	if err != nil {
		t.Fatal(err)
	}
	cfg.OutDir = dirB
	pb, err := Generate(cfg)
	if err != nil {
		t.Fatal(err)
	}

	for _, pair := range [][2]string{
		{pa.Events, pb.Events},
		{pa.ProductDim, pb.ProductDim},
		{pa.CountryDim, pb.CountryDim},
	} {
		a, err := os.ReadFile(pair[0])
		if err != nil {
			t.Fatal(err)
		}
		b, err := os.ReadFile(pair[1])
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(a, b) {
			t.Errorf("%s and %s differ for equal seeds", pair[0], pair[1])
		}
	}
}

func TestGenerateShapes(t *testing.T) {
	dir := t.TempDir()
	paths, err := Generate(Config{Rows: 200, NumProducts: 25, Seed: 1, OutDir: dir})
	if err != nil {
		t.Fatal(err)
	}

	events := readAll(t, paths.Events)
	if len(events) != 201 { // header + rows
		t.Fatalf("events rows = %d, want 201", len(events))
	}
	if events[0][0] != "event_id" || events[0][13] != "payment_method" {
		t.Fatalf("events header = %v", events[0])
	}

	products := readAll(t, paths.ProductDim)
	if len(products) != 26 {
		t.Fatalf("product rows = %d, want 26", len(products))
	}

	countries := readAll(t, paths.CountryDim)
	if len(countries) != len(countryFactors)+1 {
		t.Fatalf("country rows = %d, want %d", len(countries), len(countryFactors)+1)
	}
	for i, c := range countryFactors {
		if countries[i+1][0] != c.code {
			t.Fatalf("country[%d] = %s, want %s", i, countries[i+1][0], c.code)
		}
	}
}

func TestGenerateInjectsDuplicateEventIDs(t *testing.T) {
	dir := t.TempDir()
	paths, err := Generate(Config{Rows: 5000, NumProducts: 50, Seed: 3, OutDir: dir})
	if err != nil {
		t.Fatal(err)
	}
	rows := readAll(t, paths.Events)[1:]
	seen := map[string]int{}
	for _, r := range rows {
		seen[r[0]]++
	}
	dups := 0
	for _, n := range seen {
		if n > 1 {
			dups++
		}
	}
	if dups == 0 {
		t.Fatal("expected some duplicated event_ids at 5000 rows")
	}
	if !strings.HasPrefix(rows[0][0], "E") {
		t.Fatalf("event id format = %q", rows[0][0])
	}
}

func TestGenerateRejectsBadConfig(t *testing.T) {
	if _, err := Generate(Config{Rows: 0, NumProducts: 5, OutDir: t.TempDir()}); err == nil {
		t.Fatal("rows=0 accepted")
	}
	if _, err := Generate(Config{Rows: 5, NumProducts: 0, OutDir: t.TempDir()}); err == nil {
		t.Fatal("num_products=0 accepted")
	}
}

func readAll(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	return rows
}

func TestGeneratePathsUnderOutDir(t *testing.T) {
	dir := t.TempDir()
	paths, err := Generate(Config{Rows: 10, NumProducts: 5, Seed: 1, OutDir: dir})
	if err != nil {
		t.Fatal(err)
	}
	for _, p := range []string{paths.Events, paths.ProductDim, paths.CountryDim} {
		if filepath.Dir(p) != dir {
			t.Errorf("%s not under %s", p, dir)
		}
	}
}

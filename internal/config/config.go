// Package config defines the JSON-serializable configuration model for a
// benchmark session: how much data to generate, which transform variants to
// time, and where results and optional database loads go. Decoding uses the
// standard library; a validator reports issues without mutating the value.
//
// Example (trimmed):
//
//	{
//	  "job": "sales_agg_bench",
//	  "rows": 1000000,
//	  "runs": 5,
//	  "seed": 42,
//	  "variants": [
//	    { "name": "go", "command": ["./bin/transform"] }
//	  ],
//	  "load": { "kind": "sqlite", "dsn": "bench.db", "table_prefix": "report" }
//	}
package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// Session is the top-level object decoded from a benchmark config file.
type Session struct {
	// Job names the session; it labels metrics and report files.
	Job string `json:"job"`

	// Rows is the number of synthetic event rows to generate.
	Rows int `json:"rows"`

	// Runs is the number of timed executions per variant.
	Runs int `json:"runs"`

	// Seed drives the data generator; equal seeds mean equal inputs.
	Seed int64 `json:"seed"`

	// NumProducts is the product dimension cardinality.
	NumProducts int `json:"num_products"`

	// DataDir receives the generated input files.
	DataDir string `json:"data_dir"`

	// ResultsDir receives benchmark reports and variant outputs.
	ResultsDir string `json:"results_dir"`

	// Variants lists the transform implementations to time. The first one is
	// the speedup baseline.
	Variants []Variant `json:"variants"`

	// Load optionally pushes each variant's verified output into a database.
	Load Load `json:"load"`
}

// Variant is one transform implementation: a base argv that the harness
// extends with the input and output paths.
type Variant struct {
	Name    string   `json:"name"`
	Command []string `json:"command"`
}

// Load configures the optional database load after validation.
type Load struct {
	// Kind selects the storage backend ("sqlite", "postgres", "mysql");
	// empty disables loading.
	Kind string `json:"kind"`

	// DSN is the backend connection string.
	DSN string `json:"dsn"`

	// TablePrefix names the target tables; the variant name is appended.
	TablePrefix string `json:"table_prefix"`

	// BatchSize bounds rows per insert; 0 uses the default.
	BatchSize int `json:"batch_size"`
}

// Defaults applied by Load for absent fields.
const (
	DefaultRows        = 100000
	DefaultRuns        = 3
	DefaultSeed        = 42
	DefaultNumProducts = 2500
	DefaultDataDir     = "data"
	DefaultResultsDir  = "results"
	DefaultBatchSize   = 10000
)

// LoadFile decodes a Session from a JSON file and fills defaults for fields
// the file leaves unset. Validation is separate; see Validate.
func LoadFile(path string) (Session, error) {
	blob, err := os.ReadFile(path)
	if err != nil {
		return Session{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	var s Session
	if err := json.Unmarshal(blob, &s); err != nil {
		return Session{}, fmt.Errorf("config: decode %s: %w", path, err)
	}
	s.fillDefaults()
	return s, nil
}

func (s *Session) fillDefaults() {
	if s.Rows == 0 {
		s.Rows = DefaultRows
	}
	if s.Runs == 0 {
		s.Runs = DefaultRuns
	}
	if s.Seed == 0 {
		s.Seed = DefaultSeed
	}
	if s.NumProducts == 0 {
		s.NumProducts = DefaultNumProducts
	}
	if s.DataDir == "" {
		s.DataDir = DefaultDataDir
	}
	if s.ResultsDir == "" {
		s.ResultsDir = DefaultResultsDir
	}
	if s.Load.BatchSize == 0 {
		s.Load.BatchSize = DefaultBatchSize
	}
}

// Package storage defines the storage-agnostic contracts for loading the
// aggregate report into a database, plus the factory that backend packages
// register themselves with at init time.
package storage

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// Config selects and parameterizes a backend.
type Config struct {
	Kind    string   // backend name, e.g. "sqlite", "postgres", "mysql"
	DSN     string   // backend-specific connection string
	Table   string   // target table name
	Columns []string // ordered column names for inserts
}

// Repository is the minimal surface a backend must provide: bulk insert,
// raw statement execution (DDL), and cleanup.
type Repository interface {
	// CopyFrom inserts rows (aligned to columns order) using the backend's
	// most efficient bulk primitive and reports the number inserted.
	CopyFrom(ctx context.Context, columns []string, rows [][]any) (int64, error)

	// Exec runs a single SQL statement, typically DDL.
	Exec(ctx context.Context, sql string) error

	Close()
}

// Factory opens a Repository for a Config.
type Factory func(ctx context.Context, cfg Config) (Repository, error)

var (
	mu        sync.RWMutex
	factories = map[string]Factory{}
)

// Register installs (or replaces) the factory for a backend kind. Backend
// packages call this from init(); importing storage/all pulls them all in.
func Register(kind string, fn Factory) {
	mu.Lock()
	defer mu.Unlock()
	factories[kind] = fn
}

// New opens a Repository for cfg.Kind, or lists the registered kinds when
// the requested one is unknown. The table name is validated here because
// backends interpolate it into SQL text.
func New(ctx context.Context, cfg Config) (Repository, error) {
	if cfg.Table != "" {
		if err := ValidateTableName(cfg.Table); err != nil {
			return nil, err
		}
	}
	mu.RLock()
	fn, ok := factories[cfg.Kind]
	mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("storage: unknown kind %q (registered: %v)", cfg.Kind, Kinds())
	}
	return fn(ctx, cfg)
}

// Kinds returns the registered backend names, sorted.
func Kinds() []string {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]string, 0, len(factories))
	for k := range factories {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

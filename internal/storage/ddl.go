package storage

import (
	"context"
	"fmt"
	"regexp"
	"strings"
)

// ColumnKind is the backend-neutral column type used by the report table.
type ColumnKind string

const (
	KindText    ColumnKind = "text"
	KindInteger ColumnKind = "integer"
)

// ColumnDef is one column of a table definition.
type ColumnDef struct {
	Name string
	Kind ColumnKind
}

// Definition describes the table a load run targets. Recreate drops any
// existing table first so repeated loads start from a clean slate.
type Definition struct {
	Table    string
	Columns  []ColumnDef
	Recreate bool
}

// sqlTypes maps the neutral kinds to a backend's DDL type names.
var sqlTypes = map[string]map[ColumnKind]string{
	"sqlite":   {KindText: "TEXT", KindInteger: "INTEGER"},
	"postgres": {KindText: "TEXT", KindInteger: "BIGINT"},
	"mysql":    {KindText: "VARCHAR(64)", KindInteger: "BIGINT"},
}

// CreateSQL renders the CREATE TABLE statement for the given backend kind.
func (d Definition) CreateSQL(kind string) (string, error) {
	types, ok := sqlTypes[kind]
	if !ok {
		return "", fmt.Errorf("storage: no DDL types for kind %q", kind)
	}
	cols := make([]string, 0, len(d.Columns))
	for _, c := range d.Columns {
		t, ok := types[c.Kind]
		if !ok {
			return "", fmt.Errorf("storage: column %s: unknown kind %q", c.Name, c.Kind)
		}
		cols = append(cols, fmt.Sprintf("%s %s", c.Name, t))
	}
	return fmt.Sprintf("CREATE TABLE %s (%s)", d.Table, strings.Join(cols, ", ")), nil
}

// identSegment is the shape of a safe SQL identifier segment. Table names are
// interpolated into DDL and INSERT statements, so anything outside this shape
// is rejected before any SQL is built.
var identSegment = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ValidateTableName accepts a bare identifier or a single schema-qualified
// name ("schema.table"); each segment must match identSegment.
func ValidateTableName(name string) error {
	if name == "" {
		return fmt.Errorf("storage: table name must not be empty")
	}
	segs := strings.Split(name, ".")
	if len(segs) > 2 {
		return fmt.Errorf("storage: invalid table name %q", name)
	}
	for _, s := range segs {
		if !identSegment.MatchString(s) {
			return fmt.Errorf("storage: invalid table name %q", name)
		}
	}
	return nil
}

// EnsureTable applies the definition through repo.Exec: an optional DROP
// followed by CREATE TABLE.
func EnsureTable(ctx context.Context, repo Repository, kind string, def Definition) error {
	if err := ValidateTableName(def.Table); err != nil {
		return err
	}
	if len(def.Columns) == 0 {
		return fmt.Errorf("storage: table %s: no columns", def.Table)
	}
	if def.Recreate {
		if err := repo.Exec(ctx, "DROP TABLE IF EXISTS "+def.Table); err != nil {
			return fmt.Errorf("storage: drop %s: %w", def.Table, err)
		}
	}
	create, err := def.CreateSQL(kind)
	if err != nil {
		return err
	}
	if err := repo.Exec(ctx, create); err != nil {
		return fmt.Errorf("storage: create %s: %w", def.Table, err)
	}
	return nil
}

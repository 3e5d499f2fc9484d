package storage

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"salespipe/internal/csvtab"
	"salespipe/internal/pipeline"
)

// reportKeyColumns is the count of leading text columns in the report
// schema; everything after is an integer measure.
const reportKeyColumns = 6

// ReportDefinition builds the table definition for the aggregate report.
func ReportDefinition(table string, recreate bool) Definition {
	cols := make([]ColumnDef, len(pipeline.OutputColumns))
	for i, name := range pipeline.OutputColumns {
		kind := KindInteger
		if i < reportKeyColumns {
			kind = KindText
		}
		cols[i] = ColumnDef{Name: name, Kind: kind}
	}
	return Definition{Table: table, Columns: cols, Recreate: recreate}
}

// LoadReport reads a report CSV from path, (re)creates the target table, and
// streams the rows into it in batches. It returns the inserted row count.
func LoadReport(ctx context.Context, repo Repository, kind, table, path string, batchSize int) (int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("storage: open report %s: %w", path, err)
	}
	tab, err := csvtab.Read(f, pipeline.OutputColumns, csvtab.Options{})
	f.Close()
	if err != nil {
		return 0, fmt.Errorf("storage: read report %s: %w", path, err)
	}

	def := ReportDefinition(table, true)
	if err := EnsureTable(ctx, repo, kind, def); err != nil {
		return 0, err
	}

	in := make(chan []any, batchSize)
	go func() {
		defer close(in)
		for _, rec := range tab.Rows {
			row := make([]any, len(rec))
			for i, v := range rec {
				if i < reportKeyColumns {
					row[i] = v
					continue
				}
				n, err := strconv.ParseInt(v, 10, 64)
				if err != nil {
					row[i] = v // let the backend reject it
					continue
				}
				row[i] = n
			}
			select {
			case in <- row:
			case <-ctx.Done():
				return
			}
		}
	}()

	return LoadBatches(ctx, pipeline.OutputColumns, in, batchSize, repo.CopyFrom)
}

// Package csvtab reads delimited-text tables with a header row into fully
// materialized, positionally projected string rows. Callers name the columns
// they need; the reader resolves them by folded header name and soft-fails
// individual bad rows while treating a missing required column or an empty
// input as a hard error.
package csvtab

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Options configures table reading. Zero values give a comma-delimited,
// space-trimming reader.
type Options struct {
	// Comma is the field delimiter; ',' when zero.
	Comma rune

	// TrimSpace trims leading/trailing spaces from each projected value.
	TrimSpace bool
}

// Table is a materialized projection of the input: one []string per surviving
// row, aligned to the requested column order.
type Table struct {
	// Columns is the requested column order; Rows[i][j] belongs to Columns[j].
	Columns []string

	// Rows holds the projected data rows in input order.
	Rows [][]string

	// Skipped counts data rows dropped for parse errors or short width.
	Skipped int
}

// utf8BOM is stripped from the first header cell if present.
const utf8BOM = "\uFEFF"

// headerFold strips diacritics so that localized headers still resolve
// (e.g. "Catégorie" -> "categorie").
var headerFold = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Read consumes all of r and returns the projection onto want. It fails when
// the input has no header row or when any wanted column is absent from the
// header; individual malformed data rows are skipped and counted.
func Read(r io.Reader, want []string, opt Options) (*Table, error) {
	if len(want) == 0 {
		return nil, fmt.Errorf("csvtab: no columns requested")
	}

	cr := csv.NewReader(r)
	if opt.Comma != 0 {
		cr.Comma = opt.Comma
	}
	cr.FieldsPerRecord = -1 // width enforced per wanted column below
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("csvtab: empty input, no header row")
	}
	if err != nil {
		return nil, fmt.Errorf("csvtab: read header: %w", err)
	}

	idx := make(map[string]int, len(header))
	for i, col := range header {
		c := strings.TrimSpace(col)
		if i == 0 {
			c = strings.TrimPrefix(c, utf8BOM)
		}
		idx[FoldHeader(c)] = i
	}

	pos := make([]int, len(want))
	var missing []string
	for j, name := range want {
		i, ok := idx[FoldHeader(name)]
		if !ok {
			missing = append(missing, name)
			continue
		}
		pos[j] = i
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("csvtab: missing required column(s): %s", strings.Join(missing, ", "))
	}

	t := &Table{Columns: want}
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Skipped++
			continue
		}

		projected := make([]string, len(want))
		ok := true
		for j, i := range pos {
			if i >= len(row) {
				ok = false
				break
			}
			v := row[i]
			if opt.TrimSpace {
				v = strings.TrimSpace(v)
			}
			projected[j] = v
		}
		if !ok {
			t.Skipped++
			continue
		}
		t.Rows = append(t.Rows, projected)
	}

	return t, nil
}

// FoldHeader produces the canonical lookup form of a header cell: trimmed,
// diacritics removed, lowercased, spaces to underscores.
func FoldHeader(s string) string {
	s = strings.TrimSpace(s)
	if folded, _, err := transform.String(headerFold, s); err == nil {
		s = folded
	}
	return strings.ReplaceAll(strings.ToLower(s), " ", "_")
}

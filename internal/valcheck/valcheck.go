// Package valcheck compares transform outputs for byte equality. Two digests
// are computed per file: SHA-256 as the authoritative fingerprint and XXH3 as
// a fast cross-check, alongside a CSV row count for friendlier diagnostics
// when files diverge.
package valcheck

import (
	"crypto/sha256"
	"encoding/csv"
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"github.com/zeebo/xxh3"
	"golang.org/x/sync/errgroup"
)

// FileSummary fingerprints one output file.
type FileSummary struct {
	Path   string `json:"path"`
	Rows   int64  `json:"rows"` // data rows, header excluded
	Bytes  int64  `json:"bytes"`
	SHA256 string `json:"sha256"`
	XXH3   string `json:"xxh3"`
}

// Summarize reads the file once, feeding both digests while counting CSV
// records.
func Summarize(path string) (FileSummary, error) {
	f, err := os.Open(path)
	if err != nil {
		return FileSummary{}, fmt.Errorf("valcheck: open %s: %w", path, err)
	}
	defer f.Close()

	sha := sha256.New()
	xxh := xxh3.New()
	tee := io.TeeReader(f, io.MultiWriter(sha, xxh))

	r := csv.NewReader(tee)
	r.FieldsPerRecord = -1
	r.ReuseRecord = true

	var records int64
	for {
		_, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return FileSummary{}, fmt.Errorf("valcheck: read %s: %w", path, err)
		}
		records++
	}
	// Drain anything left unread so the digests cover the whole file.
	if _, err := io.Copy(io.MultiWriter(sha, xxh), f); err != nil {
		return FileSummary{}, fmt.Errorf("valcheck: drain %s: %w", path, err)
	}

	info, err := f.Stat()
	if err != nil {
		return FileSummary{}, fmt.Errorf("valcheck: stat %s: %w", path, err)
	}

	rows := records
	if rows > 0 {
		rows-- // header
	}
	return FileSummary{
		Path:   path,
		Rows:   rows,
		Bytes:  info.Size(),
		SHA256: hex.EncodeToString(sha.Sum(nil)),
		XXH3:   fmt.Sprintf("%016x", xxh.Sum64()),
	}, nil
}

// Result is the outcome of comparing two outputs.
type Result struct {
	A     FileSummary `json:"a"`
	B     FileSummary `json:"b"`
	Match bool        `json:"match"`
}

// Compare summarizes both files concurrently and reports whether they are
// byte-identical.
func Compare(pathA, pathB string) (Result, error) {
	var a, b FileSummary
	var g errgroup.Group
	g.Go(func() error {
		var err error
		a, err = Summarize(pathA)
		return err
	})
	g.Go(func() error {
		var err error
		b, err = Summarize(pathB)
		return err
	})
	if err := g.Wait(); err != nil {
		return Result{}, err
	}
	return Result{A: a, B: b, Match: a.SHA256 == b.SHA256 && a.Bytes == b.Bytes}, nil
}

// Describe renders a result as the one-line key=value form used in logs.
func (r Result) Describe() string {
	return fmt.Sprintf("match=%t rows_a=%d rows_b=%d sha_a=%s sha_b=%s",
		r.Match, r.A.Rows, r.B.Rows, short(r.A.SHA256), short(r.B.SHA256))
}

func short(h string) string {
	if len(h) > 12 {
		return h[:12]
	}
	return h
}

package storage

import (
	"context"
	"errors"
	"testing"
)

func feed(rows [][]any) <-chan []any {
	in := make(chan []any, len(rows))
	for _, r := range rows {
		in <- r
	}
	close(in)
	return in
}

func TestLoadBatchesGroupsRows(t *testing.T) {
	rows := [][]any{{1}, {2}, {3}, {4}, {5}}
	var batches [][]int
	copyFn := func(ctx context.Context, cols []string, batch [][]any) (int64, error) {
		b := make([]int, len(batch))
		for i, r := range batch {
			b[i] = r[0].(int)
		}
		batches = append(batches, b)
		return int64(len(batch)), nil
	}

	total, err := LoadBatches(context.Background(), []string{"v"}, feed(rows), 2, copyFn)
	if err != nil {
		t.Fatal(err)
	}
	if total != 5 {
		t.Fatalf("total = %d, want 5", total)
	}
	if len(batches) != 3 || len(batches[0]) != 2 || len(batches[2]) != 1 {
		t.Fatalf("batches = %v, want sizes 2,2,1", batches)
	}
}

func TestLoadBatchesPropagatesCopyError(t *testing.T) {
	boom := errors.New("boom")
	copyFn := func(ctx context.Context, cols []string, batch [][]any) (int64, error) {
		return 0, boom
	}
	_, err := LoadBatches(context.Background(), []string{"v"}, feed([][]any{{1}, {2}}), 2, copyFn)
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want boom", err)
	}
}

func TestLoadBatchesRejectsBadArgs(t *testing.T) {
	noop := func(ctx context.Context, cols []string, batch [][]any) (int64, error) { return 0, nil }
	if _, err := LoadBatches(context.Background(), nil, feed(nil), 0, noop); err == nil {
		t.Error("batchSize=0 accepted")
	}
	if _, err := LoadBatches(context.Background(), nil, feed(nil), 1, nil); err == nil {
		t.Error("nil copyFn accepted")
	}
}

func TestLoadBatchesStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	in := make(chan []any) // never fed, never closed
	_, err := LoadBatches(ctx, []string{"v"}, in, 2, func(ctx context.Context, cols []string, batch [][]any) (int64, error) {
		return int64(len(batch)), nil
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}

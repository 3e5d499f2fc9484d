package pipeline

import (
	"reflect"
	"testing"
)

func ev(id string, version int64, ts string) Event {
	return Event{ID: id, Version: version, TS: ts}
}

func TestDedupHighestVersionWins(t *testing.T) {
	in := []Event{
		ev("A", 1, "2025-01-01T10:00:00"),
		ev("A", 3, "2025-01-01T09:00:00"),
		ev("A", 2, "2025-01-01T11:00:00"),
	}
	out := Dedup(in)
	if len(out) != 1 || out[0].Version != 3 {
		t.Fatalf("Dedup = %+v, want single version 3", out)
	}
}

func TestDedupVersionTieBreaksOnTS(t *testing.T) {
	in := []Event{
		ev("A", 2, "2025-01-01T10:00:00"),
		ev("A", 2, "2025-01-01T12:00:00"),
		ev("A", 2, "2025-01-01T11:00:00"),
	}
	out := Dedup(in)
	if len(out) != 1 || out[0].TS != "2025-01-01T12:00:00" {
		t.Fatalf("Dedup = %+v, want latest TS winner", out)
	}
}

func TestDedupFullTieKeepsFirstSeen(t *testing.T) {
	first := ev("A", 2, "2025-01-01T10:00:00")
	first.CustomerID = 1
	second := ev("A", 2, "2025-01-01T10:00:00")
	second.CustomerID = 2

	out := Dedup([]Event{first, second})
	if len(out) != 1 || out[0].CustomerID != 1 {
		t.Fatalf("Dedup = %+v, want first occurrence kept", out)
	}
}

func TestDedupPreservesFirstSeenOrder(t *testing.T) {
	in := []Event{
		ev("C", 1, "t1"),
		ev("A", 1, "t1"),
		ev("B", 1, "t1"),
		ev("A", 5, "t2"), // upgrades A in place, order unchanged
	}
	out := Dedup(in)
	ids := make([]string, len(out))
	for i, e := range out {
		ids[i] = e.ID
	}
	want := []string{"C", "A", "B"}
	if !reflect.DeepEqual(ids, want) {
		t.Fatalf("survivor order = %v, want %v", ids, want)
	}
	if out[1].Version != 5 {
		t.Fatalf("A version = %d, want 5", out[1].Version)
	}
}

func TestDedupEmpty(t *testing.T) {
	if out := Dedup(nil); out != nil {
		t.Fatalf("Dedup(nil) = %v, want nil", out)
	}
}

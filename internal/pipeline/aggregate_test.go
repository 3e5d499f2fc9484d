package pipeline

import "testing"

func dRow(date, tier, cat, country, tb, sb string, qty, net int64) Derived {
	return Derived{
		Date: date, Tier: tier, Category: cat, Country: country,
		TimeBucket: tb, SizeBucket: sb,
		Quantity: qty, NetUSDCents: net,
		ProfitUSDCents: net / 4, RiskAdjUSDCents: net, HeavyItemOrder: 0,
	}
}

func TestAggregateAllGroupsAndSums(t *testing.T) {
	rows := []Derived{
		dRow("2025-01-01", "gold", "books", "US", "night", "single", 1, 100),
		dRow("2025-01-01", "gold", "books", "US", "night", "single", 2, 300),
		dRow("2025-01-01", "gold", "books", "CA", "night", "single", 1, 500),
	}
	flags := []int64{1, 0, 0}

	out := AggregateAll(rows, flags)
	if len(out) != 2 {
		t.Fatalf("groups = %d, want 2", len(out))
	}
	// CA sorts before US within otherwise equal keys.
	if out[0].Country != "CA" || out[1].Country != "US" {
		t.Fatalf("order = %s, %s; want CA, US", out[0].Country, out[1].Country)
	}
	us := out[1]
	if us.OrderCount != 2 || us.VIPOrders != 1 || us.TotalQuantity != 3 || us.TotalNetUSDCents != 400 {
		t.Fatalf("US aggregate = %+v", us.Aggregate)
	}
}

func TestAggregateAllKeysDistinctAndSorted(t *testing.T) {
	rows := []Derived{
		dRow("2025-01-02", "gold", "books", "US", "night", "single", 1, 100),
		dRow("2025-01-01", "silver", "books", "US", "night", "single", 1, 100),
		dRow("2025-01-01", "gold", "toys", "US", "night", "single", 1, 100),
		dRow("2025-01-01", "gold", "books", "US", "morning", "single", 1, 100),
		dRow("2025-01-01", "gold", "books", "US", "morning", "bulk", 4, 100),
	}
	out := AggregateAll(rows, make([]int64, len(rows)))
	if len(out) != 5 {
		t.Fatalf("groups = %d, want 5", len(out))
	}
	seen := map[Key]bool{}
	for i, r := range out {
		if seen[r.Key] {
			t.Fatalf("duplicate key %+v", r.Key)
		}
		seen[r.Key] = true
		if i > 0 && !out[i-1].Key.Less(r.Key) {
			t.Fatalf("rows %d and %d out of order: %+v, %+v", i-1, i, out[i-1].Key, r.Key)
		}
	}
}

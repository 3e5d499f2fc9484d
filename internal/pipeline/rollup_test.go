package pipeline

import "testing"

func TestCustomerDaySpendSumsAcrossEvents(t *testing.T) {
	rows := []Derived{
		{Date: "2025-01-01", CustomerID: 1, NetUSDCents: 30000},
		{Date: "2025-01-01", CustomerID: 1, NetUSDCents: 25000},
		{Date: "2025-01-02", CustomerID: 1, NetUSDCents: 10000},
		{Date: "2025-01-01", CustomerID: 2, NetUSDCents: 49999},
	}
	spend := CustomerDaySpend(rows)
	if got := spend[CustomerDay{"2025-01-01", 1}]; got != 55000 {
		t.Errorf("customer 1 day 1 spend = %d, want 55000", got)
	}
	if got := spend[CustomerDay{"2025-01-02", 1}]; got != 10000 {
		t.Errorf("customer 1 day 2 spend = %d, want 10000", got)
	}
}

func TestVIPFlagsThreshold(t *testing.T) {
	rows := []Derived{
		{Date: "2025-01-01", CustomerID: 1, NetUSDCents: 30000},
		{Date: "2025-01-01", CustomerID: 1, NetUSDCents: 25000}, // day total 55000
		{Date: "2025-01-02", CustomerID: 1, NetUSDCents: 10000}, // separate day, not VIP
		{Date: "2025-01-01", CustomerID: 2, NetUSDCents: 49999}, // just below
		{Date: "2025-01-01", CustomerID: 3, NetUSDCents: 50000}, // exactly at threshold
	}
	flags := VIPFlags(rows, CustomerDaySpend(rows))
	want := []int64{1, 1, 0, 0, 1}
	for i, f := range flags {
		if f != want[i] {
			t.Errorf("flags[%d] = %d, want %d", i, f, want[i])
		}
	}
}

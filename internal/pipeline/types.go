// Package pipeline implements the deterministic sales aggregate transform:
// parse → filter → dedup → join → derive → bucket → rollup → aggregate →
// serialize. The output is a canonically sorted CSV table that is
// byte-identical across runs (and across independent implementations of the
// same contract), so every stage here is a total function with pinned
// tie-breaks and integer-only arithmetic.
package pipeline

// Event is one validated raw transaction row. All monetary values are integer
// cents; rates are integer basis points or parts-per-million.
type Event struct {
	ID            string
	Version       int64
	TS            string // "2006-01-02T15:04:05"
	Date          string // "2006-01-02"
	CustomerID    int64
	ProductID     int64
	AmountCents   int64 // clamped [0, 100000000]
	Quantity      int64 // clamped [0, 10000]
	DiscountBPS   int64 // clamped [0, 5000]
	ShippingCents int64 // clamped [0, 25000]
	Country       string // uppercased
	Tier          string // lowercased; one of validTiers or "unknown"
}

// Product is one product dimension row, keyed by product_id.
type Product struct {
	Category    string
	MarginBPS   int64 // clamped [0, 9500]
	WeightGrams int64 // clamped [1, 20000]
}

// Country is one country dimension row, keyed by country code.
type Country struct {
	FxToUSDPPM int64 // clamped [1, 2500000]
	RiskBPS    int64 // clamped [1, 20000]
	TaxBPS     int64 // clamped [0, 5000]
}

// Derived is a joined, derived, bucketed event ready for rollup and
// aggregation. It is immutable once produced.
type Derived struct {
	Date            string
	CustomerID      int64
	Tier            string
	Category        string
	Country         string
	TimeBucket      string
	SizeBucket      string
	Quantity        int64
	NetUSDCents     int64
	ProfitUSDCents  int64
	RiskAdjUSDCents int64
	HeavyItemOrder  int64 // 0 or 1
}

// Key is the six-column composite aggregation key. Field order here is the
// output sort order.
type Key struct {
	Date       string
	Tier       string
	Category   string
	Country    string
	TimeBucket string
	SizeBucket string
}

// Less reports whether k orders before o: ascending, field by field in
// declaration order, byte-wise string comparison. This is the output ordering
// contract.
func (k Key) Less(o Key) bool {
	if k.Date != o.Date {
		return k.Date < o.Date
	}
	if k.Tier != o.Tier {
		return k.Tier < o.Tier
	}
	if k.Category != o.Category {
		return k.Category < o.Category
	}
	if k.Country != o.Country {
		return k.Country < o.Country
	}
	if k.TimeBucket != o.TimeBucket {
		return k.TimeBucket < o.TimeBucket
	}
	return k.SizeBucket < o.SizeBucket
}

// Aggregate accumulates the measures for one composite key.
type Aggregate struct {
	OrderCount           int64
	VIPOrders            int64
	TotalQuantity        int64
	TotalNetUSDCents     int64
	TotalProfitUSDCents  int64
	TotalRiskAdjUSDCents int64
	HeavyItemOrders      int64
}

// ResultRow is one output row: a key plus its finished measures. The average
// item price is derived at serialization time from the totals.
type ResultRow struct {
	Key
	Aggregate
}

// CustomerDay identifies a per-customer, per-day rollup bucket.
type CustomerDay struct {
	Date       string
	CustomerID int64
}

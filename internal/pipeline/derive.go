package pipeline

import (
	"golang.org/x/sync/errgroup"
)

// DimDrops counts deduplicated events excluded because a foreign key had no
// dimension match. Joins are inner joins by policy: an unmatched event
// contributes nothing to any downstream stage.
type DimDrops struct {
	Product int64
	Country int64
}

type dropReason uint8

const (
	dropNone dropReason = iota
	dropProduct
	dropCountry
)

// deriveOne joins one event against both dimensions and computes the full
// derivation chain. Each step depends only on earlier values and uses
// roundDiv, so the result is exact and reproducible.
func deriveOne(e Event, products map[int64]Product, countries map[string]Country) (Derived, dropReason) {
	p, ok := products[e.ProductID]
	if !ok {
		return Derived{}, dropProduct
	}
	c, ok := countries[e.Country]
	if !ok {
		return Derived{}, dropCountry
	}

	gross := e.AmountCents*e.Quantity + e.ShippingCents
	discount := roundDiv(gross*e.DiscountBPS, 10000)
	taxable := gross - discount
	if taxable < 0 {
		taxable = 0
	}
	tax := roundDiv(taxable*c.TaxBPS, 10000)
	net := taxable + tax

	netUSD := roundDiv(net*c.FxToUSDPPM, 1000000)
	cost := roundDiv(netUSD*(10000-p.MarginBPS), 10000)
	profit := netUSD - cost
	riskAdj := roundDiv(netUSD*c.RiskBPS, 10000)

	var heavy int64
	if p.WeightGrams*e.Quantity >= heavyOrderGrams {
		heavy = 1
	}

	return Derived{
		Date:            e.Date,
		CustomerID:      e.CustomerID,
		Tier:            e.Tier,
		Category:        p.Category,
		Country:         e.Country,
		TimeBucket:      timeBucketFromHour(parseEventHour(e.TS)),
		SizeBucket:      orderSizeBucket(e.Quantity),
		Quantity:        e.Quantity,
		NetUSDCents:     netUSD,
		ProfitUSDCents:  profit,
		RiskAdjUSDCents: riskAdj,
		HeavyItemOrder:  heavy,
	}, dropNone
}

// Derive maps deduplicated events to derived records, dropping events with
// unmatched foreign keys. Rows are independent, so the map may fan out over
// workers; results are written into an index-addressed slice and compacted
// sequentially, which makes the parallel path provably equivalent to the
// sequential one. workers <= 1 runs inline.
func Derive(events []Event, products map[int64]Product, countries map[string]Country, workers int) ([]Derived, DimDrops) {
	if len(events) == 0 {
		return nil, DimDrops{}
	}

	type slot struct {
		d    Derived
		drop dropReason
	}
	slots := make([]slot, len(events))

	if workers <= 1 {
		for i, e := range events {
			slots[i].d, slots[i].drop = deriveOne(e, products, countries)
		}
	} else {
		if workers > len(events) {
			workers = len(events)
		}
		var g errgroup.Group
		chunk := (len(events) + workers - 1) / workers
		for lo := 0; lo < len(events); lo += chunk {
			lo, hi := lo, lo+chunk
			if hi > len(events) {
				hi = len(events)
			}
			g.Go(func() error {
				for i := lo; i < hi; i++ {
					slots[i].d, slots[i].drop = deriveOne(events[i], products, countries)
				}
				return nil
			})
		}
		_ = g.Wait() // workers never return errors
	}

	var drops DimDrops
	out := make([]Derived, 0, len(events))
	for i := range slots {
		switch slots[i].drop {
		case dropProduct:
			drops.Product++
		case dropCountry:
			drops.Country++
		default:
			out = append(out, slots[i].d)
		}
	}
	return out, drops
}

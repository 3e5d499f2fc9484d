package pipeline

import "sort"

// AggregateAll groups derived rows by the six-column composite key and sums
// the measures, reading the pre-assigned VIP flags. The grouping structure is
// owned here and consumed exactly once to produce the sorted result; keys in
// the output are pairwise distinct and ascend per Key.Less.
func AggregateAll(rows []Derived, vipFlags []int64) []ResultRow {
	groups := make(map[Key]*Aggregate)
	for i, r := range rows {
		k := Key{
			Date:       r.Date,
			Tier:       r.Tier,
			Category:   r.Category,
			Country:    r.Country,
			TimeBucket: r.TimeBucket,
			SizeBucket: r.SizeBucket,
		}
		agg, ok := groups[k]
		if !ok {
			agg = &Aggregate{}
			groups[k] = agg
		}
		agg.OrderCount++
		agg.VIPOrders += vipFlags[i]
		agg.TotalQuantity += r.Quantity
		agg.TotalNetUSDCents += r.NetUSDCents
		agg.TotalProfitUSDCents += r.ProfitUSDCents
		agg.TotalRiskAdjUSDCents += r.RiskAdjUSDCents
		agg.HeavyItemOrders += r.HeavyItemOrder
	}

	out := make([]ResultRow, 0, len(groups))
	for k, agg := range groups {
		out = append(out, ResultRow{Key: k, Aggregate: *agg})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key.Less(out[j].Key) })
	return out
}

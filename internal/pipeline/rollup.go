package pipeline

// CustomerDaySpend sums net USD cents per (event_date, customer_id) across
// all derived events. This pass must complete before any VIP flag is read;
// the stages communicate only through the returned map.
func CustomerDaySpend(rows []Derived) map[CustomerDay]int64 {
	spend := make(map[CustomerDay]int64)
	for _, r := range rows {
		spend[CustomerDay{Date: r.Date, CustomerID: r.CustomerID}] += r.NetUSDCents
	}
	return spend
}

// VIPFlags assigns the per-event VIP flag (1 or 0) from a completed rollup:
// an event is VIP when its customer's total net spend that day reaches the
// fixed threshold. flags[i] corresponds to rows[i].
func VIPFlags(rows []Derived, spend map[CustomerDay]int64) []int64 {
	flags := make([]int64, len(rows))
	for i, r := range rows {
		if spend[CustomerDay{Date: r.Date, CustomerID: r.CustomerID}] >= vipDailySpendUSDCents {
			flags[i] = 1
		}
	}
	return flags
}

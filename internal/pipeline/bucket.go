package pipeline

// Bucket boundaries are fixed constants shared with every other
// implementation of this contract; all ranges are half-open [lo, hi).

// heavyOrderGrams is the total order weight at and above which an order
// counts as a heavy-item order.
const heavyOrderGrams = 5000

// vipDailySpendUSDCents is the customer-day net spend at and above which the
// customer's orders that day are flagged VIP.
const vipDailySpendUSDCents = 50000

// parseEventHour extracts the hour from a "YYYY-MM-DDTHH:MM:SS" timestamp.
// Anything not matching that shape yields -1.
func parseEventHour(ts string) int64 {
	if len(ts) < 13 || ts[10] != 'T' {
		return -1
	}
	h := parseInt(ts[11:13])
	if h < 0 || h > 23 {
		return -1
	}
	return h
}

// timeBucketFromHour partitions the day into four named quarters.
func timeBucketFromHour(hour int64) string {
	switch {
	case hour >= 0 && hour < 6:
		return "night"
	case hour >= 6 && hour < 12:
		return "morning"
	case hour >= 12 && hour < 18:
		return "afternoon"
	case hour >= 18 && hour < 24:
		return "evening"
	default:
		return "unknown"
	}
}

// orderSizeBucket classifies an order by quantity.
func orderSizeBucket(quantity int64) string {
	switch {
	case quantity <= 1:
		return "single"
	case quantity <= 3:
		return "small_multi"
	default:
		return "bulk"
	}
}

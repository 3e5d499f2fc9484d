package pipeline

import (
	"strconv"
	"strings"
)

// parseInt is the total integer coercion used for every numeric column: any
// value that does not parse as a base-10 integer maps to 0. Downstream domain
// checks (<= 0 etc.) then decide whether the row survives.
func parseInt(s string) int64 {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// clampInt pins v into [lo, hi].
func clampInt(v, lo, hi int64) int64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// roundDiv divides n by d rounding half up. Non-positive numerator or
// denominator yields 0. All monetary derivations go through this single
// function; it is the pinned rounding rule of the output contract.
func roundDiv(n, d int64) int64 {
	if n <= 0 || d <= 0 {
		return 0
	}
	return (n + d/2) / d
}

package analysis

import (
	"gonum.org/v1/gonum/stat"
)

// Volatility computes a rolling instability measure: for each day, the
// population standard deviation of day-to-day differences within the
// trailing `window` days. A difference exists only between two consecutive
// calendar days that both have a present value, and is anchored to its
// ending day: the window over day i covers the differences ending on days
// [i-window+1, i], so the earliest one reaches back to the day just before
// the window. A day's volatility is nil with fewer than 2 valid differences
// in its window; a constant series yields exactly 0.
//
// Population (divide-by-n) rather than sample standard deviation is used so
// two identical consecutive differences already report zero instability.
func Volatility(values []*float64, window int) []*float64 {
	n := len(values)
	out := make([]*float64, n)
	if n < 2 || window < 2 {
		return out
	}

	// diffs[i] is the change from day i-1 to day i, or nil.
	diffs := make([]*float64, n)
	for i := 1; i < n; i++ {
		if values[i] == nil || values[i-1] == nil {
			continue
		}
		d := *values[i] - *values[i-1]
		diffs[i] = &d
	}

	for i := 0; i < n; i++ {
		start := i - window + 1
		if start < 1 {
			start = 1
		}
		xs := make([]float64, 0, window)
		for j := start; j <= i; j++ {
			if diffs[j] != nil {
				xs = append(xs, *diffs[j])
			}
		}
		if len(xs) < 2 {
			continue
		}
		sd := stat.PopStdDev(xs, nil)
		out[i] = &sd
	}
	return out
}

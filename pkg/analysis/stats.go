package analysis

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/evanwhit/moodscope/pkg/model"
)

// MinCorrelationSamples is the minimum number of mutually-present day pairs
// required before a Pearson coefficient is reported.
const MinCorrelationSamples = 3

// Correlation computes the Pearson coefficient between two index-aligned
// per-day series, using only days where both values are present. Returns nil
// with fewer than MinCorrelationSamples pairs or when either masked series
// has zero variance. The result is clamped to [-1, 1].
func Correlation(x, y []*float64) *float64 {
	n := len(x)
	if len(y) < n {
		n = len(y)
	}

	xs := make([]float64, 0, n)
	ys := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		if x[i] == nil || y[i] == nil {
			continue
		}
		xs = append(xs, *x[i])
		ys = append(ys, *y[i])
	}
	if len(xs) < MinCorrelationSamples {
		return nil
	}
	if stat.Variance(xs, nil) == 0 || stat.Variance(ys, nil) == 0 {
		return nil
	}

	r := stat.Correlation(xs, ys, nil)
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return nil
	}
	r = clamp(r, -1, 1)
	return &r
}

// SlidingAverage computes, for each day, the mean of present values among
// the trailing `window` calendar days ending at that day. A window of 0 (or
// one longer than the series) means whole history up to the day. A day's
// value is nil when its window holds no present values.
func SlidingAverage(values []*float64, window int) []*float64 {
	out := make([]*float64, len(values))
	for i := range values {
		start := 0
		if window > 0 && i-window+1 > 0 {
			start = i - window + 1
		}
		var sum float64
		count := 0
		for j := start; j <= i; j++ {
			if values[j] == nil {
				continue
			}
			sum += *values[j]
			count++
		}
		if count == 0 {
			continue
		}
		mean := sum / float64(count)
		out[i] = &mean
	}
	return out
}

// ClassifyTrend compares the mean of the most recent `window` days against
// the preceding window of equal length. The direction is empty when either
// window has no valid samples.
func ClassifyTrend(values []*float64, window int, threshold float64) model.TrendResult {
	if window <= 0 || len(values) == 0 {
		return model.TrendResult{}
	}

	recentStart := len(values) - window
	if recentStart < 0 {
		recentStart = 0
	}
	priorStart := recentStart - window
	if priorStart < 0 {
		priorStart = 0
	}

	recent := presentMean(values[recentStart:])
	prior := presentMean(values[priorStart:recentStart])
	if recent == nil || prior == nil {
		return model.TrendResult{RecentMean: recent, PriorMean: prior}
	}

	diff := *recent - *prior
	dir := model.TrendStable
	switch {
	case diff > threshold:
		dir = model.TrendUp
	case diff < -threshold:
		dir = model.TrendDown
	}
	return model.TrendResult{Direction: dir, RecentMean: recent, PriorMean: prior}
}

// presentMean averages the present values in a window, or nil when none are.
func presentMean(values []*float64) *float64 {
	xs := make([]float64, 0, len(values))
	for _, v := range values {
		if v != nil {
			xs = append(xs, *v)
		}
	}
	if len(xs) == 0 {
		return nil
	}
	m := stat.Mean(xs, nil)
	return &m
}

// FloatValues widens a per-day integer level slice to floats, preserving
// absence.
func FloatValues(levels []*int) []*float64 {
	out := make([]*float64, len(levels))
	for i, lv := range levels {
		if lv != nil {
			f := float64(*lv)
			out[i] = &f
		}
	}
	return out
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

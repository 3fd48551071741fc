package analysis

import (
	"math"
	"testing"

	"pgregory.net/rapid"

	"github.com/evanwhit/moodscope/pkg/model"
	"github.com/evanwhit/moodscope/pkg/testutil"
)

func floats(values ...float64) []*float64 {
	out := make([]*float64, len(values))
	for i := range values {
		v := values[i]
		out[i] = &v
	}
	return out
}

func TestCorrelation_PerfectlyLinear(t *testing.T) {
	x := floats(1, 2, 3, 4, 5)
	y := floats(2, 4, 6, 8, 10)

	testutil.AssertPresent(t, "correlation", Correlation(x, y), 1.0, 1e-9)
	testutil.AssertPresent(t, "anti-correlation", Correlation(x, floats(10, 8, 6, 4, 2)), -1.0, 1e-9)
}

func TestCorrelation_TooFewPairs(t *testing.T) {
	x := []*float64{testutil.Float(1), nil, testutil.Float(3), nil, nil}
	y := []*float64{testutil.Float(2), testutil.Float(4), testutil.Float(6), nil, nil}

	// Only 2 mutually-present pairs
	testutil.AssertAbsent(t, "correlation", Correlation(x, y))
}

func TestCorrelation_ZeroVariance(t *testing.T) {
	constant := floats(3, 3, 3, 3, 3)
	varying := floats(1, 2, 3, 4, 5)

	testutil.AssertAbsent(t, "constant vs varying", Correlation(constant, varying))
	testutil.AssertAbsent(t, "constant vs constant", Correlation(constant, constant))
}

func TestCorrelation_IgnoresAbsentDays(t *testing.T) {
	// Absent days must be masked out, not treated as zero.
	x := []*float64{testutil.Float(1), nil, testutil.Float(2), nil, testutil.Float(3), testutil.Float(4)}
	y := []*float64{testutil.Float(2), testutil.Float(99), testutil.Float(4), nil, testutil.Float(6), testutil.Float(8)}

	testutil.AssertPresent(t, "masked correlation", Correlation(x, y), 1.0, 1e-9)
}

func TestCorrelation_Properties(t *testing.T) {
	genSeries := func(t *rapid.T, n int, label string) []*float64 {
		out := make([]*float64, n)
		for i := range out {
			if rapid.Bool().Draw(t, label+"_present") {
				v := rapid.Float64Range(0, 4).Draw(t, label+"_value")
				out[i] = &v
			}
		}
		return out
	}

	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(0, 60).Draw(t, "n")
		x := genSeries(t, n, "x")
		y := genSeries(t, n, "y")

		r := Correlation(x, y)
		if r == nil {
			return
		}
		if *r < -1 || *r > 1 {
			t.Fatalf("coefficient %v out of [-1, 1]", *r)
		}

		// Symmetry
		rev := Correlation(y, x)
		if rev == nil {
			t.Fatalf("Correlation(y, x) absent but Correlation(x, y) = %v", *r)
		}
		if math.Abs(*r-*rev) > 1e-12 {
			t.Fatalf("asymmetric: %v vs %v", *r, *rev)
		}
	})
}

func TestSlidingAverage_TrailingWindow(t *testing.T) {
	values := floats(2, 2, 2, 3, 3)
	out := SlidingAverage(values, 3)

	// Early days use however much history exists.
	testutil.AssertPresent(t, "day 0", out[0], 2.0, 1e-9)
	testutil.AssertPresent(t, "day 1", out[1], 2.0, 1e-9)
	testutil.AssertPresent(t, "day 2", out[2], 2.0, 1e-9)
	testutil.AssertPresent(t, "day 3", out[3], 7.0/3.0, 1e-9)
	testutil.AssertPresent(t, "day 4", out[4], 8.0/3.0, 1e-9)
}

func TestSlidingAverage_WholeHistory(t *testing.T) {
	values := floats(0, 4, 2)
	out := SlidingAverage(values, 0)

	testutil.AssertPresent(t, "day 0", out[0], 0.0, 1e-9)
	testutil.AssertPresent(t, "day 1", out[1], 2.0, 1e-9)
	testutil.AssertPresent(t, "day 2", out[2], 2.0, 1e-9)
}

func TestSlidingAverage_SkipsAbsentDays(t *testing.T) {
	values := []*float64{nil, testutil.Float(2), nil, testutil.Float(4)}
	out := SlidingAverage(values, 2)

	testutil.AssertAbsent(t, "day 0", out[0])
	testutil.AssertPresent(t, "day 1", out[1], 2.0, 1e-9)
	testutil.AssertPresent(t, "day 2", out[2], 2.0, 1e-9)
	testutil.AssertPresent(t, "day 3", out[3], 4.0, 1e-9)
}

func TestSlidingAverage_Properties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(0, 40).Draw(t, "n")
		window := rapid.IntRange(0, 10).Draw(t, "window")
		values := make([]*float64, n)
		for i := range values {
			if rapid.Bool().Draw(t, "present") {
				v := rapid.Float64Range(0, 4).Draw(t, "value")
				values[i] = &v
			}
		}

		out := SlidingAverage(values, window)
		if len(out) != n {
			t.Fatalf("length %d, want %d", len(out), n)
		}
		for i, m := range out {
			if m == nil {
				continue
			}
			// Means stay within the value bounds.
			if *m < 0 || *m > 4 {
				t.Fatalf("day %d mean %v out of [0, 4]", i, *m)
			}
		}
	})
}

func TestClassifyTrend_Directions(t *testing.T) {
	up := ClassifyTrend(floats(1, 1, 1, 3, 3, 3), 3, 0.3)
	if up.Direction != model.TrendUp {
		t.Errorf("expected up, got %q", up.Direction)
	}

	down := ClassifyTrend(floats(3, 3, 3, 1, 1, 1), 3, 0.3)
	if down.Direction != model.TrendDown {
		t.Errorf("expected down, got %q", down.Direction)
	}

	stable := ClassifyTrend(floats(2, 2, 2, 2, 2, 2), 3, 0.3)
	if stable.Direction != model.TrendStable {
		t.Errorf("expected stable, got %q", stable.Direction)
	}
}

func TestClassifyTrend_ThresholdBoundary(t *testing.T) {
	// A shift exactly at the threshold stays stable; strictly beyond flips.
	atThreshold := ClassifyTrend(floats(2, 2, 2.3, 2.3), 2, 0.3)
	if atThreshold.Direction != model.TrendStable {
		t.Errorf("expected stable at threshold, got %q", atThreshold.Direction)
	}

	beyond := ClassifyTrend(floats(2, 2, 2.4, 2.4), 2, 0.3)
	if beyond.Direction != model.TrendUp {
		t.Errorf("expected up beyond threshold, got %q", beyond.Direction)
	}
}

func TestClassifyTrend_RampSeries(t *testing.T) {
	gen := testutil.NewDefault()
	series := BuildDailySeries(gen.Ramp(28, 0, 4))

	// Depression climbs steadily across the ramp while the other dimensions
	// hold at the floor.
	depression := FloatValues(series.Values(model.Depression))
	if got := ClassifyTrend(depression, 14, 0.3); got.Direction != model.TrendUp {
		t.Errorf("expected up trend on a rising ramp, got %q", got.Direction)
	}

	elevation := FloatValues(series.Values(model.Elevation))
	if got := ClassifyTrend(elevation, 14, 0.3); got.Direction != model.TrendStable {
		t.Errorf("expected stable trend on a flat dimension, got %q", got.Direction)
	}
}

func TestClassifyTrend_InsufficientData(t *testing.T) {
	empty := ClassifyTrend(nil, 3, 0.3)
	if empty.Direction != "" {
		t.Errorf("expected empty direction for no data, got %q", empty.Direction)
	}

	// Recent window present but no prior window at all.
	short := ClassifyTrend(floats(2, 2), 3, 0.3)
	if short.Direction != "" {
		t.Errorf("expected empty direction without a prior window, got %q", short.Direction)
	}
}

func TestFloatValues_PreservesAbsence(t *testing.T) {
	levels := []*int{testutil.Int(2), nil, testutil.Int(4)}
	out := FloatValues(levels)

	testutil.AssertPresent(t, "index 0", out[0], 2.0, 1e-9)
	testutil.AssertAbsent(t, "index 1", out[1])
	testutil.AssertPresent(t, "index 2", out[2], 4.0, 1e-9)
}

package testutil

import (
	"math"
	"testing"

	"github.com/evanwhit/moodscope/pkg/model"
)

// Int returns a pointer to v.
func Int(v int) *int {
	return &v
}

// Float returns a pointer to v.
func Float(v float64) *float64 {
	return &v
}

// AssertPresent verifies got is non-nil and within tol of want.
func AssertPresent(t *testing.T, name string, got *float64, want, tol float64) {
	t.Helper()
	if got == nil {
		t.Errorf("%s: expected %v, got absent", name, want)
		return
	}
	if math.Abs(*got-want) > tol {
		t.Errorf("%s: expected %v, got %v", name, want, *got)
	}
}

// AssertAbsent verifies got is nil.
func AssertAbsent(t *testing.T, name string, got *float64) {
	t.Helper()
	if got != nil {
		t.Errorf("%s: expected absent, got %v", name, *got)
	}
}

// AssertSeriesLen verifies the series spans the expected number of days.
func AssertSeriesLen(t *testing.T, series model.DailySeries, expected int) {
	t.Helper()
	if series.Len() != expected {
		t.Errorf("expected series of %d days, got %d", expected, series.Len())
	}
}

// AssertNoDuplicateIDs verifies all observation IDs are unique.
func AssertNoDuplicateIDs(t *testing.T, observations []model.Observation) {
	t.Helper()
	seen := make(map[string]bool)
	for _, obs := range observations {
		if seen[obs.ID] {
			t.Errorf("duplicate observation ID: %s", obs.ID)
		}
		seen[obs.ID] = true
	}
}

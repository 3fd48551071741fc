package model

import "time"

// Day is one calendar slot in a DailySeries. Levels are nil on days without
// a mood observation for that dimension. Categories holds the keys of every
// categorical flag active on that day.
type Day struct {
	Date       time.Time           `json:"date"`
	Levels     [NumDimensions]*int `json:"levels"`
	Categories map[string]bool     `json:"categories,omitempty"`
	HasMood    bool                `json:"has_mood"`
}

// HasCategory reports whether the category is flagged on this day.
func (d Day) HasCategory(c Category) bool {
	return d.Categories[c.Key()]
}

// DailySeries is an ordered, gapless sequence of calendar days. Invariant:
// exactly one entry per day, dates strictly increasing, no skipped dates.
type DailySeries struct {
	Days []Day `json:"days"`
}

// Len returns the number of days in the series.
func (s DailySeries) Len() int { return len(s.Days) }

// Empty reports whether the series covers no days. Consumers treat an empty
// series as "no data", not an error.
func (s DailySeries) Empty() bool { return len(s.Days) == 0 }

// Start returns the first day's date, or the zero time for an empty series.
func (s DailySeries) Start() time.Time {
	if len(s.Days) == 0 {
		return time.Time{}
	}
	return s.Days[0].Date
}

// End returns the last day's date, or the zero time for an empty series.
func (s DailySeries) End() time.Time {
	if len(s.Days) == 0 {
		return time.Time{}
	}
	return s.Days[len(s.Days)-1].Date
}

// Values extracts the per-day level slice for one dimension. The slice is
// index-aligned with Days; nil entries mark absent days.
func (s DailySeries) Values(dim Dimension) []*int {
	values := make([]*int, len(s.Days))
	for i := range s.Days {
		values[i] = s.Days[i].Levels[dim]
	}
	return values
}

// IndexOf returns the series index of the given calendar day, or -1 when the
// day falls outside the covered range.
func (s DailySeries) IndexOf(date time.Time) int {
	if len(s.Days) == 0 {
		return -1
	}
	d := DateOf(date)
	idx := int(d.Sub(s.Days[0].Date).Hours() / 24)
	if idx < 0 || idx >= len(s.Days) {
		return -1
	}
	return idx
}

// CategoryKeys returns the set of category keys that appear on at least one
// day. Callers sort when determinism matters.
func (s DailySeries) CategoryKeys() map[string]bool {
	keys := make(map[string]bool)
	for i := range s.Days {
		for k := range s.Days[i].Categories {
			keys[k] = true
		}
	}
	return keys
}

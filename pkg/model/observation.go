// Package model defines the core data types for mood and health tracking.
package model

import "time"

// Kind classifies a raw observation entry.
type Kind string

const (
	KindMood   Kind = "mood"
	KindNote   Kind = "note"
	KindEvent  Kind = "event"
	KindMedia  Kind = "media"
	KindQuote  Kind = "quote"
	KindCustom Kind = "custom"
)

// IsValid reports whether k is a recognized observation kind.
func (k Kind) IsValid() bool {
	switch k {
	case KindMood, KindNote, KindEvent, KindMedia, KindQuote, KindCustom:
		return true
	}
	return false
}

// Dimension indexes one of the four tracked mood dimensions.
type Dimension int

const (
	Elevation Dimension = iota
	Depression
	Anxiety
	Irritability

	// NumDimensions is the number of tracked mood dimensions.
	NumDimensions = 4
)

var dimensionNames = [NumDimensions]string{"elevation", "depression", "anxiety", "irritability"}

// String returns the lowercase dimension name.
func (d Dimension) String() string {
	if d < 0 || int(d) >= NumDimensions {
		return "unknown"
	}
	return dimensionNames[d]
}

// Dimensions returns all four mood dimensions in canonical order.
func Dimensions() [NumDimensions]Dimension {
	return [NumDimensions]Dimension{Elevation, Depression, Anxiety, Irritability}
}

// MaxLevel is the upper bound of the 0..MaxLevel mood level scale.
const MaxLevel = 4

// Observation is a single raw journal entry. Levels are meaningful only when
// Kind is KindMood; a nil level means the dimension was not recorded.
// Timestamps are immutable once created.
type Observation struct {
	ID         string              `json:"id"`
	Timestamp  time.Time           `json:"timestamp"`
	Kind       Kind                `json:"kind"`
	Levels     [NumDimensions]*int `json:"levels,omitempty"`
	Symptoms   []string            `json:"symptoms,omitempty"`
	Activities []string            `json:"activities,omitempty"`
	Social     []string            `json:"social,omitempty"`
	Text       string              `json:"text,omitempty"`
	EventLabel string              `json:"event_label,omitempty"`
}

// Date returns the observation's calendar day at UTC midnight.
func (o Observation) Date() time.Time {
	return DateOf(o.Timestamp)
}

// Clone returns a deep copy of the observation.
func (o Observation) Clone() Observation {
	cp := o
	for i, lv := range o.Levels {
		if lv != nil {
			v := *lv
			cp.Levels[i] = &v
		}
	}
	cp.Symptoms = append([]string(nil), o.Symptoms...)
	cp.Activities = append([]string(nil), o.Activities...)
	cp.Social = append([]string(nil), o.Social...)
	return cp
}

// HealthObservation carries auxiliary health metrics for one calendar day.
// All fields are independently optional; at most one value per day per metric.
type HealthObservation struct {
	Date          time.Time `json:"date"`
	Weight        *float64  `json:"weight,omitempty"`
	SleepHours    *float64  `json:"sleep_hours,omitempty"`
	Distance      *float64  `json:"distance,omitempty"`
	ActiveEnergy  *float64  `json:"active_energy,omitempty"`
	MenstrualFlow *int      `json:"menstrual_flow,omitempty"`
}

// Clone returns a deep copy of the health observation.
func (h HealthObservation) Clone() HealthObservation {
	cp := h
	cp.Weight = cloneFloatPtr(h.Weight)
	cp.SleepHours = cloneFloatPtr(h.SleepHours)
	cp.Distance = cloneFloatPtr(h.Distance)
	cp.ActiveEnergy = cloneFloatPtr(h.ActiveEnergy)
	if h.MenstrualFlow != nil {
		v := *h.MenstrualFlow
		cp.MenstrualFlow = &v
	}
	return cp
}

func cloneFloatPtr(p *float64) *float64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// DateOf truncates t to its calendar day at UTC midnight.
func DateOf(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

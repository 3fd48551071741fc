// Package testutil provides deterministic fixture generators for mood
// journals. All generators produce reproducible output for stable tests.
package testutil

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/evanwhit/moodscope/pkg/model"
)

// GeneratorConfig controls observation generation.
type GeneratorConfig struct {
	Seed     int64     // Random seed for determinism (0 = use current time)
	IDPrefix string    // Prefix for observation IDs (default: "TEST")
	BaseDate time.Time // Date of the first generated day (default: fixed date)
}

// DefaultConfig returns a config suitable for most tests.
func DefaultConfig() GeneratorConfig {
	return GeneratorConfig{
		Seed:     42, // Deterministic
		IDPrefix: "TEST",
		BaseDate: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

// Generator creates observation fixtures with various shapes.
type Generator struct {
	cfg GeneratorConfig
	rng *rand.Rand
}

// New creates a Generator with the given config.
func New(cfg GeneratorConfig) *Generator {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	if cfg.BaseDate.IsZero() {
		cfg.BaseDate = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	}
	if cfg.IDPrefix == "" {
		cfg.IDPrefix = "TEST"
	}
	return &Generator{
		cfg: cfg,
		rng: rand.New(rand.NewSource(seed)),
	}
}

// NewDefault creates a Generator with default config.
func NewDefault() *Generator {
	return New(DefaultConfig())
}

// Day returns the date offset days after the base date, at noon UTC.
// Noon keeps timestamps comfortably inside the calendar day.
func (g *Generator) Day(offset int) time.Time {
	d := g.cfg.BaseDate.AddDate(0, 0, offset)
	return time.Date(d.Year(), d.Month(), d.Day(), 12, 0, 0, 0, time.UTC)
}

// Mood creates a single mood observation on the given day offset with all
// four dimensions set to the same level.
func (g *Generator) Mood(offset, level int) model.Observation {
	levels := [model.NumDimensions]*int{}
	for i := range levels {
		v := level
		levels[i] = &v
	}
	return model.Observation{
		ID:        fmt.Sprintf("%s-%04d", g.cfg.IDPrefix, offset),
		Timestamp: g.Day(offset),
		Kind:      model.KindMood,
		Levels:    levels,
	}
}

// MoodLevels creates a mood observation with explicit per-dimension levels.
// A negative level leaves that dimension unset.
func (g *Generator) MoodLevels(offset int, elevation, depression, anxiety, irritability int) model.Observation {
	obs := model.Observation{
		ID:        fmt.Sprintf("%s-%04d", g.cfg.IDPrefix, offset),
		Timestamp: g.Day(offset),
		Kind:      model.KindMood,
	}
	for i, v := range []int{elevation, depression, anxiety, irritability} {
		if v >= 0 {
			level := v
			obs.Levels[i] = &level
		}
	}
	return obs
}

// Constant creates a gapless run of days with every dimension held at level.
func (g *Generator) Constant(days, level int) []model.Observation {
	out := make([]model.Observation, 0, days)
	for i := 0; i < days; i++ {
		out = append(out, g.Mood(i, level))
	}
	return out
}

// Ramp creates a run of days where depression climbs from low to high while
// the other dimensions stay at low. Useful for trend classification tests.
func (g *Generator) Ramp(days, low, high int) []model.Observation {
	out := make([]model.Observation, 0, days)
	for i := 0; i < days; i++ {
		level := low
		if days > 1 {
			level = low + (high-low)*i/(days-1)
		}
		out = append(out, g.MoodLevels(i, low, level, low, low))
	}
	return out
}

// RandomWalk creates a run of days where each dimension performs an
// independent bounded random walk. Deterministic for a fixed seed.
func (g *Generator) RandomWalk(days int) []model.Observation {
	levels := [model.NumDimensions]int{2, 2, 2, 2}
	out := make([]model.Observation, 0, days)
	for i := 0; i < days; i++ {
		for d := range levels {
			step := g.rng.Intn(3) - 1
			levels[d] += step
			if levels[d] < 0 {
				levels[d] = 0
			}
			if levels[d] > model.MaxLevel {
				levels[d] = model.MaxLevel
			}
		}
		out = append(out, g.MoodLevels(i, levels[0], levels[1], levels[2], levels[3]))
	}
	return out
}

// Event creates an explicit event observation on the given day offset.
func (g *Generator) Event(offset int, label string) model.Observation {
	return model.Observation{
		ID:         fmt.Sprintf("%s-evt-%04d", g.cfg.IDPrefix, offset),
		Timestamp:  g.Day(offset),
		Kind:       model.KindEvent,
		EventLabel: label,
	}
}

// Note creates a note observation with free text on the given day offset.
func (g *Generator) Note(offset int, text string) model.Observation {
	return model.Observation{
		ID:        fmt.Sprintf("%s-note-%04d", g.cfg.IDPrefix, offset),
		Timestamp: g.Day(offset),
		Kind:      model.KindNote,
		Text:      text,
	}
}

// WithCategories returns obs with the given symptom and activity names
// attached.
func WithCategories(obs model.Observation, symptoms, activities []string) model.Observation {
	obs.Symptoms = append([]string(nil), symptoms...)
	obs.Activities = append([]string(nil), activities...)
	return obs
}

// Health creates a health observation for the given day offset.
func (g *Generator) Health(offset int, sleepHours, weight float64) model.HealthObservation {
	s, w := sleepHours, weight
	return model.HealthObservation{
		Date:       model.DateOf(g.Day(offset)),
		SleepHours: &s,
		Weight:     &w,
	}
}

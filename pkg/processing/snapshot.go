// Package processing orchestrates analysis runs: it captures an immutable
// snapshot of the observation data, fans the independent derivations out
// across goroutines, and publishes the merged result atomically. Starting a
// new run supersedes the previous one; superseded tasks may finish but their
// writes are discarded and never surface.
package processing

import (
	"github.com/evanwhit/moodscope/pkg/config"
	"github.com/evanwhit/moodscope/pkg/model"
)

// Snapshot is an immutable copy of the full record set plus resolved
// settings, taken once when a run starts. No component mutates it; worker
// tasks read it freely without locking.
type Snapshot struct {
	Observations []model.Observation
	Health       []model.HealthObservation
	Settings     config.Settings
}

// NewSnapshot deep-copies the inputs so later mutations by the caller cannot
// leak into an in-flight run. Settings are normalized here so every task
// sees the same resolved values.
func NewSnapshot(observations []model.Observation, health []model.HealthObservation, settings config.Settings) *Snapshot {
	snap := &Snapshot{
		Observations: make([]model.Observation, len(observations)),
		Health:       make([]model.HealthObservation, len(health)),
		Settings:     settings.Clone(),
	}
	for i := range observations {
		snap.Observations[i] = observations[i].Clone()
	}
	for i := range health {
		snap.Health[i] = health[i].Clone()
	}
	snap.Settings.Normalize()
	return snap
}

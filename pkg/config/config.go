// Package config handles loading and saving moodscope settings.
//
// Configuration follows the XDG Base Directory specification:
//   - Config: ~/.config/moodscope/config.yaml
//   - State:  ~/.local/state/moodscope/
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Default analysis parameters.
const (
	DefaultButterflyShortDays   = 7
	DefaultButterflyLongDays    = 28
	DefaultVolatilityWindowDays = 14
	DefaultTrendWindowDays      = 14
	DefaultTrendThreshold       = 0.3
	DefaultMinInfluenceSamples  = 3
)

// DefaultSlidingWindows are the standard sliding-average window lengths in
// days, in addition to the whole-history average (window 0).
var DefaultSlidingWindows = []int{30, 90, 180}

// Settings holds the analysis parameters and category registries consumed by
// a processing run.
type Settings struct {
	SlidingWindows       []int   `yaml:"sliding_windows,omitempty"`
	ButterflyShortDays   int     `yaml:"butterfly_short_days,omitempty"`
	ButterflyLongDays    int     `yaml:"butterfly_long_days,omitempty"`
	VolatilityWindowDays int     `yaml:"volatility_window_days,omitempty"`
	TrendWindowDays      int     `yaml:"trend_window_days,omitempty"`
	TrendThreshold       float64 `yaml:"trend_threshold,omitempty"`
	MinInfluenceSamples  int     `yaml:"min_influence_samples,omitempty"`

	// Category registries: ordered lists of recognized labels.
	Symptoms   []string `yaml:"symptoms,omitempty"`
	Activities []string `yaml:"activities,omitempty"`
	Social     []string `yaml:"social,omitempty"`
}

// DefaultSettings returns Settings with sensible defaults.
func DefaultSettings() Settings {
	return Settings{
		SlidingWindows:       append([]int(nil), DefaultSlidingWindows...),
		ButterflyShortDays:   DefaultButterflyShortDays,
		ButterflyLongDays:    DefaultButterflyLongDays,
		VolatilityWindowDays: DefaultVolatilityWindowDays,
		TrendWindowDays:      DefaultTrendWindowDays,
		TrendThreshold:       DefaultTrendThreshold,
		MinInfluenceSamples:  DefaultMinInfluenceSamples,
	}
}

// Normalize replaces unusable values with defaults. It never fails: a bad
// settings file degrades to defaults rather than aborting analysis.
func (s *Settings) Normalize() {
	if len(s.SlidingWindows) == 0 {
		s.SlidingWindows = append([]int(nil), DefaultSlidingWindows...)
	}
	windows := s.SlidingWindows[:0]
	for _, w := range s.SlidingWindows {
		if w > 0 {
			windows = append(windows, w)
		}
	}
	s.SlidingWindows = windows
	if len(s.SlidingWindows) == 0 {
		s.SlidingWindows = append([]int(nil), DefaultSlidingWindows...)
	}
	if s.ButterflyShortDays <= 0 {
		s.ButterflyShortDays = DefaultButterflyShortDays
	}
	if s.ButterflyLongDays <= 0 {
		s.ButterflyLongDays = DefaultButterflyLongDays
	}
	if s.VolatilityWindowDays < 2 {
		s.VolatilityWindowDays = DefaultVolatilityWindowDays
	}
	if s.TrendWindowDays <= 0 {
		s.TrendWindowDays = DefaultTrendWindowDays
	}
	if s.TrendThreshold <= 0 {
		s.TrendThreshold = DefaultTrendThreshold
	}
	if s.MinInfluenceSamples <= 0 {
		s.MinInfluenceSamples = DefaultMinInfluenceSamples
	}
}

// Clone returns a deep copy of the settings.
func (s Settings) Clone() Settings {
	cp := s
	cp.SlidingWindows = append([]int(nil), s.SlidingWindows...)
	cp.Symptoms = append([]string(nil), s.Symptoms...)
	cp.Activities = append([]string(nil), s.Activities...)
	cp.Social = append([]string(nil), s.Social...)
	return cp
}

// ConfigDir returns the XDG config directory for moodscope.
func ConfigDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "moodscope")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "moodscope")
}

// StateDir returns the XDG state directory for moodscope.
func StateDir() string {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, "moodscope")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".local", "state", "moodscope")
}

// ConfigPath returns the full path to config.yaml.
func ConfigPath() string {
	dir := ConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.yaml")
}

// Load reads settings from the XDG config directory.
// Returns DefaultSettings if the file doesn't exist.
func Load() (Settings, error) {
	path := ConfigPath()
	if path == "" {
		return DefaultSettings(), nil
	}
	return LoadFrom(path)
}

// LoadFrom reads settings from a specific path.
// Returns DefaultSettings if the file doesn't exist.
func LoadFrom(path string) (Settings, error) {
	cfg := DefaultSettings()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	cfg.Normalize()
	return cfg, nil
}

// SaveTo writes settings to a specific path.
func SaveTo(cfg Settings, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

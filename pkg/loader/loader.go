// Package loader reads mood and health observations from JSONL files.
//
// Loading is robust by design: malformed lines and records without a
// timestamp are skipped and counted, never fatal. A sparse or partially
// corrupt journal still yields every record that can be recovered.
package loader

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	json "github.com/goccy/go-json"

	"github.com/evanwhit/moodscope/pkg/metrics"
	"github.com/evanwhit/moodscope/pkg/model"
)

// DataDirEnvVar is the environment variable overriding the data directory.
const DataDirEnvVar = "MOODSCOPE_DIR"

// PreferredJSONLNames defines the lookup order for observation data files.
var PreferredJSONLNames = []string{"observations.jsonl", "moods.jsonl"}

// HealthJSONLName is the conventional health metrics file name.
const HealthJSONLName = "health.jsonl"

// maxLineBytes bounds a single JSONL record; longer lines are skipped.
const maxLineBytes = 1 << 20

// GetDataDir returns the data directory, respecting MOODSCOPE_DIR.
// Falls back to <base>/.moodscope (cwd if base is empty).
func GetDataDir(base string) (string, error) {
	if envDir := os.Getenv(DataDirEnvVar); envDir != "" {
		return envDir, nil
	}
	if base == "" {
		var err error
		base, err = os.Getwd()
		if err != nil {
			return "", fmt.Errorf("getting working directory: %w", err)
		}
	}
	return filepath.Join(base, ".moodscope"), nil
}

// FindJSONLPath locates the observation JSONL file in the given directory,
// preferring the canonical observations.jsonl.
func FindJSONLPath(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("reading data directory: %w", err)
	}
	names := make(map[string]bool, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			names[e.Name()] = true
		}
	}
	for _, preferred := range PreferredJSONLNames {
		if names[preferred] {
			return filepath.Join(dir, preferred), nil
		}
	}
	return "", fmt.Errorf("no observation file in %s (looked for %v)", dir, PreferredJSONLNames)
}

// LoadResult reports what a load recovered and what it had to skip.
type LoadResult struct {
	Observations []model.Observation
	Skipped      int
}

// LoadObservations reads a JSONL observation file.
func LoadObservations(path string) (LoadResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return LoadResult{}, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()
	return ParseObservations(f)
}

// ParseObservations decodes observations line by line. Lines that fail to
// decode, records with an unrecognized kind, and records without a timestamp
// are skipped and counted.
func ParseObservations(r io.Reader) (LoadResult, error) {
	defer metrics.Timer(metrics.OpJSONParsing)()

	var result LoadResult
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxLineBytes)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var obs model.Observation
		if err := json.Unmarshal(line, &obs); err != nil {
			result.Skipped++
			continue
		}
		if obs.Timestamp.IsZero() || !obs.Kind.IsValid() {
			result.Skipped++
			continue
		}
		result.Observations = append(result.Observations, obs)
	}
	if err := scanner.Err(); err != nil {
		return result, fmt.Errorf("scanning observations: %w", err)
	}

	// Stable chronological order keeps downstream aggregation deterministic
	// regardless of how the journal was appended.
	sort.SliceStable(result.Observations, func(i, j int) bool {
		return result.Observations[i].Timestamp.Before(result.Observations[j].Timestamp)
	})
	return result, nil
}

// HealthResult reports recovered health records and skip count.
type HealthResult struct {
	Health  []model.HealthObservation
	Skipped int
}

// LoadHealth reads a JSONL health metrics file. A missing file is not an
// error; health metrics are optional.
func LoadHealth(path string) (HealthResult, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return HealthResult{}, nil
		}
		return HealthResult{}, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()
	return ParseHealth(f)
}

// ParseHealth decodes health observations line by line. At most one record
// per calendar day survives; later records win per the append-only journal
// convention.
func ParseHealth(r io.Reader) (HealthResult, error) {
	var result HealthResult
	byDay := make(map[string]model.HealthObservation)
	var order []string

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxLineBytes)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var h model.HealthObservation
		if err := json.Unmarshal(line, &h); err != nil {
			result.Skipped++
			continue
		}
		if h.Date.IsZero() {
			result.Skipped++
			continue
		}
		h.Date = model.DateOf(h.Date)
		key := h.Date.Format("2006-01-02")
		if prev, ok := byDay[key]; ok {
			byDay[key] = mergeHealth(prev, h)
		} else {
			byDay[key] = h
			order = append(order, key)
		}
	}
	if err := scanner.Err(); err != nil {
		return result, fmt.Errorf("scanning health records: %w", err)
	}

	sort.Strings(order)
	for _, key := range order {
		result.Health = append(result.Health, byDay[key])
	}
	return result, nil
}

// mergeHealth overlays newer per-metric values onto an existing day record.
func mergeHealth(old, next model.HealthObservation) model.HealthObservation {
	merged := old
	if next.Weight != nil {
		merged.Weight = next.Weight
	}
	if next.SleepHours != nil {
		merged.SleepHours = next.SleepHours
	}
	if next.Distance != nil {
		merged.Distance = next.Distance
	}
	if next.ActiveEnergy != nil {
		merged.ActiveEnergy = next.ActiveEnergy
	}
	if next.MenstrualFlow != nil {
		merged.MenstrualFlow = next.MenstrualFlow
	}
	return merged
}

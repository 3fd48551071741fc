package datasource

import (
	"fmt"
	"path/filepath"

	"github.com/evanwhit/moodscope/pkg/loader"
	"github.com/evanwhit/moodscope/pkg/model"
)

// Load reads observations and health records from the detected source in the
// data directory. Health records come from the database when the source is
// SQLite, otherwise from the optional health.jsonl beside the journal.
func Load(dir string) ([]model.Observation, []model.HealthObservation, error) {
	source, err := Detect(dir)
	if err != nil {
		return nil, nil, err
	}
	return LoadSource(source)
}

// LoadSource reads from an already-detected source.
func LoadSource(source DataSource) ([]model.Observation, []model.HealthObservation, error) {
	switch source.Type {
	case SourceTypeSQLite:
		reader, err := NewSQLiteReader(source)
		if err != nil {
			return nil, nil, err
		}
		defer reader.Close()
		observations, err := reader.LoadObservations()
		if err != nil {
			return nil, nil, err
		}
		health, err := reader.LoadHealth()
		if err != nil {
			return nil, nil, err
		}
		return observations, health, nil

	case SourceTypeJSONL:
		result, err := loader.LoadObservations(source.Path)
		if err != nil {
			return nil, nil, err
		}
		healthPath := filepath.Join(filepath.Dir(source.Path), loader.HealthJSONLName)
		healthResult, err := loader.LoadHealth(healthPath)
		if err != nil {
			return nil, nil, err
		}
		return result.Observations, healthResult.Health, nil

	default:
		return nil, nil, fmt.Errorf("unknown source type: %s", source.Type)
	}
}

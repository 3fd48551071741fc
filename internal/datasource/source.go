// Package datasource detects and loads the observation store backing a
// moodscope data directory: a SQLite database when present, otherwise the
// JSONL journal.
package datasource

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/evanwhit/moodscope/pkg/loader"
)

// SourceType identifies the type of data source.
type SourceType string

const (
	// SourceTypeSQLite is a SQLite database (moods.db).
	SourceTypeSQLite SourceType = "sqlite"
	// SourceTypeJSONL is a JSONL journal file.
	SourceTypeJSONL SourceType = "jsonl"
)

// SQLiteFileName is the conventional database file name.
const SQLiteFileName = "moods.db"

// DataSource represents a detected source of observation data.
type DataSource struct {
	Type    SourceType `json:"type"`
	Path    string     `json:"path"`
	ModTime time.Time  `json:"mod_time"`
	Size    int64      `json:"size"`
}

// String returns a human-readable description of the source.
func (s DataSource) String() string {
	return fmt.Sprintf("%s (%s, mod=%s)", s.Path, s.Type, s.ModTime.Format(time.RFC3339))
}

// Detect finds the observation store inside dir. SQLite is preferred over
// JSONL when both exist, since the database reflects the most recent state.
func Detect(dir string) (DataSource, error) {
	dbPath := filepath.Join(dir, SQLiteFileName)
	if info, err := os.Stat(dbPath); err == nil && !info.IsDir() {
		return DataSource{
			Type:    SourceTypeSQLite,
			Path:    dbPath,
			ModTime: info.ModTime(),
			Size:    info.Size(),
		}, nil
	}

	jsonlPath, err := loader.FindJSONLPath(dir)
	if err != nil {
		return DataSource{}, fmt.Errorf("no observation source in %s: %w", dir, err)
	}
	info, err := os.Stat(jsonlPath)
	if err != nil {
		return DataSource{}, fmt.Errorf("stat %s: %w", jsonlPath, err)
	}
	return DataSource{
		Type:    SourceTypeJSONL,
		Path:    jsonlPath,
		ModTime: info.ModTime(),
		Size:    info.Size(),
	}, nil
}

package datasource

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	_ "modernc.org/sqlite"

	"github.com/evanwhit/moodscope/pkg/model"
)

// SQLiteReader provides read access to a moodscope SQLite database.
type SQLiteReader struct {
	db   *sql.DB
	path string
}

// NewSQLiteReader opens a database for reading.
func NewSQLiteReader(source DataSource) (*SQLiteReader, error) {
	if source.Type != SourceTypeSQLite {
		return nil, fmt.Errorf("source is not SQLite: %s", source.Type)
	}

	dsn := fmt.Sprintf("file:%s?mode=ro&_busy_timeout=5000", source.Path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("cannot open database: %w", err)
	}

	pragmas := []string{
		"PRAGMA cache_size = -16000",
		"PRAGMA temp_store = MEMORY",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			// Non-fatal; reads still work without the tuning.
			continue
		}
	}

	return &SQLiteReader{db: db, path: source.Path}, nil
}

// Close closes the database connection.
func (r *SQLiteReader) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// LoadObservations reads all observations, oldest first. Rows that cannot be
// decoded are skipped, matching the JSONL loader's robustness policy.
func (r *SQLiteReader) LoadObservations() ([]model.Observation, error) {
	rows, err := r.db.Query(`
		SELECT id, timestamp, kind, levels, symptoms, activities, social, text, event_label
		FROM observations
		ORDER BY timestamp ASC`)
	if err != nil {
		return nil, fmt.Errorf("querying observations: %w", err)
	}
	defer rows.Close()

	var observations []model.Observation
	for rows.Next() {
		var (
			obs       model.Observation
			ts        string
			kind      string
			levelsRaw sql.NullString
			sympRaw   sql.NullString
			actRaw    sql.NullString
			socRaw    sql.NullString
			text      sql.NullString
			label     sql.NullString
		)
		if err := rows.Scan(&obs.ID, &ts, &kind, &levelsRaw, &sympRaw, &actRaw, &socRaw, &text, &label); err != nil {
			continue
		}
		when, err := parseTimestamp(ts)
		if err != nil {
			continue
		}
		obs.Timestamp = when
		obs.Kind = model.Kind(kind)
		if !obs.Kind.IsValid() {
			continue
		}
		if levelsRaw.Valid && levelsRaw.String != "" {
			_ = json.Unmarshal([]byte(levelsRaw.String), &obs.Levels)
		}
		obs.Symptoms = decodeStringList(sympRaw)
		obs.Activities = decodeStringList(actRaw)
		obs.Social = decodeStringList(socRaw)
		obs.Text = text.String
		obs.EventLabel = label.String

		observations = append(observations, obs)
	}
	if err := rows.Err(); err != nil {
		return observations, fmt.Errorf("iterating observations: %w", err)
	}
	return observations, nil
}

// LoadHealth reads all health records, oldest first.
func (r *SQLiteReader) LoadHealth() ([]model.HealthObservation, error) {
	rows, err := r.db.Query(`
		SELECT date, weight, sleep_hours, distance, active_energy, menstrual_flow
		FROM health
		ORDER BY date ASC`)
	if err != nil {
		if isMissingTable(err) {
			// Health metrics are optional; an older database simply has none.
			return nil, nil
		}
		return nil, fmt.Errorf("querying health records: %w", err)
	}
	defer rows.Close()

	var health []model.HealthObservation
	for rows.Next() {
		var (
			h      model.HealthObservation
			date   string
			weight sql.NullFloat64
			sleep  sql.NullFloat64
			dist   sql.NullFloat64
			energy sql.NullFloat64
			flow   sql.NullInt64
		)
		if err := rows.Scan(&date, &weight, &sleep, &dist, &energy, &flow); err != nil {
			continue
		}
		when, err := parseTimestamp(date)
		if err != nil {
			continue
		}
		h.Date = model.DateOf(when)
		if weight.Valid {
			h.Weight = &weight.Float64
		}
		if sleep.Valid {
			h.SleepHours = &sleep.Float64
		}
		if dist.Valid {
			h.Distance = &dist.Float64
		}
		if energy.Valid {
			h.ActiveEnergy = &energy.Float64
		}
		if flow.Valid {
			v := int(flow.Int64)
			h.MenstrualFlow = &v
		}
		health = append(health, h)
	}
	if err := rows.Err(); err != nil {
		return health, fmt.Errorf("iterating health records: %w", err)
	}
	return health, nil
}

func decodeStringList(raw sql.NullString) []string {
	if !raw.Valid || raw.String == "" {
		return nil
	}
	var list []string
	if err := json.Unmarshal([]byte(raw.String), &list); err != nil {
		return nil
	}
	return list
}

func parseTimestamp(s string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}

func isMissingTable(err error) bool {
	return err != nil && strings.Contains(err.Error(), "no such table")
}

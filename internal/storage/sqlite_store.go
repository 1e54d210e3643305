package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/calumwright/praxis/internal/models"
	_ "modernc.org/sqlite"
)

type SQLiteStore struct {
	path string
	db   *sql.DB
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{
		path: path,
	}
}

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS settings (
	key TEXT PRIMARY KEY,
	value TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS sessions (
	id TEXT PRIMARY KEY,
	completion TEXT NOT NULL,
	started_at TEXT NOT NULL,
	practice_id TEXT NOT NULL DEFAULT '',
	practice_mode TEXT NOT NULL DEFAULT '',
	domain TEXT NOT NULL DEFAULT '',
	config_snapshot TEXT,
	schedule_matched TEXT,
	satisfied_obligation INTEGER,
	created_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_sessions_started_at ON sessions(started_at);
`

func (s *SQLiteStore) Init() error {
	// Create config directory if it doesn't exist
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	if _, err := s.db.Exec(sqliteSchema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	// Initialize default settings if not present
	if _, err := s.GetSettings(); err != nil {
		defaultSettings := models.Settings{
			Timezone:      "Local",
			PrecisionMode: models.PrecisionCurriculum,
		}
		if err := s.SaveSettings(defaultSettings); err != nil {
			return fmt.Errorf("failed to save default settings: %w", err)
		}
	}

	return nil
}

func (s *SQLiteStore) Load() error {
	if s.db != nil {
		return nil
	}

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return fmt.Errorf("storage not initialized, run 'praxis init' first")
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	// Schema statements are idempotent, so reloading an older database
	// picks up any missing tables.
	if _, err := s.db.Exec(sqliteSchema); err != nil {
		return fmt.Errorf("failed to verify schema: %w", err)
	}

	return nil
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLiteStore) GetSettings() (models.Settings, error) {
	rows, err := s.db.Query("SELECT key, value FROM settings")
	if err != nil {
		return models.Settings{}, err
	}
	defer rows.Close()

	settings := models.Settings{}
	count := 0
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return models.Settings{}, err
		}
		count++
		switch key {
		case "timezone":
			settings.Timezone = value
		case "active_path_id":
			settings.ActivePathID = value
		case "curriculum_start_date":
			settings.CurriculumStartDate = value
		case "practice_time_slots":
			if value != "" {
				if err := json.Unmarshal([]byte(value), &settings.PracticeTimeSlots); err != nil {
					return models.Settings{}, fmt.Errorf("parsing practice_time_slots: %w", err)
				}
			}
		case "selected_days_of_week":
			if value != "" {
				if err := json.Unmarshal([]byte(value), &settings.SelectedDaysOfWeek); err != nil {
					return models.Settings{}, fmt.Errorf("parsing selected_days_of_week: %w", err)
				}
			}
		case "precision_mode":
			settings.PrecisionMode = models.PrecisionMode(value)
		case "vacation_active":
			settings.VacationActive = value == "true"
		case "benchmark_recorded_at":
			if value != "" {
				v := value
				settings.BenchmarkRecordedAt = &v
			}
		}
	}
	if err := rows.Err(); err != nil {
		return models.Settings{}, err
	}
	if count == 0 {
		return models.Settings{}, fmt.Errorf("settings not initialized")
	}

	return settings, nil
}

func (s *SQLiteStore) SaveSettings(settings models.Settings) error {
	slots, err := json.Marshal(settings.PracticeTimeSlots)
	if err != nil {
		return fmt.Errorf("failed to serialize practice_time_slots: %w", err)
	}
	days, err := json.Marshal(settings.SelectedDaysOfWeek)
	if err != nil {
		return fmt.Errorf("failed to serialize selected_days_of_week: %w", err)
	}
	benchmark := ""
	if settings.BenchmarkRecordedAt != nil {
		benchmark = *settings.BenchmarkRecordedAt
	}

	pairs := map[string]string{
		"timezone":              settings.Timezone,
		"active_path_id":        settings.ActivePathID,
		"curriculum_start_date": settings.CurriculumStartDate,
		"practice_time_slots":   string(slots),
		"selected_days_of_week": string(days),
		"precision_mode":        string(settings.PrecisionMode),
		"vacation_active":       fmt.Sprintf("%t", settings.VacationActive),
		"benchmark_recorded_at": benchmark,
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for key, value := range pairs {
		_, err := tx.Exec(`
			INSERT INTO settings (key, value) VALUES (?, ?)
			ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, value)
		if err != nil {
			return fmt.Errorf("failed to save setting %s: %w", key, err)
		}
	}

	return tx.Commit()
}

func (s *SQLiteStore) AddSession(session models.Session) error {
	if err := session.Validate(); err != nil {
		return err
	}
	return s.upsertSession(session, `
		INSERT INTO sessions (id, completion, started_at, practice_id, practice_mode, domain,
			config_snapshot, schedule_matched, satisfied_obligation, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
}

func (s *SQLiteStore) UpdateSession(session models.Session) error {
	if err := session.Validate(); err != nil {
		return err
	}
	return s.upsertSession(session, `
		INSERT INTO sessions (id, completion, started_at, practice_id, practice_mode, domain,
			config_snapshot, schedule_matched, satisfied_obligation, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			completion = excluded.completion,
			started_at = excluded.started_at,
			practice_id = excluded.practice_id,
			practice_mode = excluded.practice_mode,
			domain = excluded.domain,
			config_snapshot = excluded.config_snapshot,
			schedule_matched = excluded.schedule_matched,
			satisfied_obligation = excluded.satisfied_obligation`)
}

func (s *SQLiteStore) upsertSession(session models.Session, query string) error {
	configSnapshot, scheduleMatched, err := marshalSessionBlobs(session)
	if err != nil {
		return err
	}

	var satisfied sql.NullBool
	if session.SatisfiedObligation != nil {
		satisfied = sql.NullBool{Bool: *session.SatisfiedObligation, Valid: true}
	}

	createdAt := session.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	_, err = s.db.Exec(query,
		session.ID, string(session.Completion), session.StartedAt,
		session.PracticeID, session.PracticeMode, session.Domain,
		configSnapshot, scheduleMatched, satisfied,
		createdAt.Format(time.RFC3339))
	return err
}

func marshalSessionBlobs(session models.Session) (sql.NullString, sql.NullString, error) {
	var configSnapshot, scheduleMatched sql.NullString
	if session.ConfigSnapshot != nil {
		data, err := json.Marshal(session.ConfigSnapshot)
		if err != nil {
			return configSnapshot, scheduleMatched, fmt.Errorf("failed to serialize config snapshot: %w", err)
		}
		configSnapshot = sql.NullString{String: string(data), Valid: true}
	}
	if session.ScheduleMatched != nil {
		data, err := json.Marshal(session.ScheduleMatched)
		if err != nil {
			return configSnapshot, scheduleMatched, fmt.Errorf("failed to serialize schedule match: %w", err)
		}
		scheduleMatched = sql.NullString{String: string(data), Valid: true}
	}
	return configSnapshot, scheduleMatched, nil
}

const sessionColumns = `id, completion, started_at, practice_id, practice_mode, domain,
	config_snapshot, schedule_matched, satisfied_obligation, created_at`

func (s *SQLiteStore) GetSession(id string) (models.Session, error) {
	row := s.db.QueryRow(`
		SELECT `+sessionColumns+`
		FROM sessions WHERE id = ?`, id)
	session, err := scanSession(row)
	if err == sql.ErrNoRows {
		return models.Session{}, fmt.Errorf("session not found: %s", id)
	}
	return session, err
}

func (s *SQLiteStore) GetAllSessions() ([]models.Session, error) {
	return s.querySessions(`
		SELECT ` + sessionColumns + `
		FROM sessions ORDER BY started_at ASC`)
}

func (s *SQLiteStore) GetSessionsInRange(startDay, endDay string) ([]models.Session, error) {
	return s.querySessions(`
		SELECT `+sessionColumns+`
		FROM sessions
		WHERE substr(started_at, 1, 10) >= ? AND substr(started_at, 1, 10) <= ?
		ORDER BY started_at ASC`, startDay, endDay)
}

func (s *SQLiteStore) querySessions(query string, args ...interface{}) ([]models.Session, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []models.Session
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, session)
	}
	return sessions, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSession(row rowScanner) (models.Session, error) {
	var session models.Session
	var completion, createdAt string
	var configSnapshot, scheduleMatched sql.NullString
	var satisfied sql.NullBool

	err := row.Scan(&session.ID, &completion, &session.StartedAt,
		&session.PracticeID, &session.PracticeMode, &session.Domain,
		&configSnapshot, &scheduleMatched, &satisfied, &createdAt)
	if err != nil {
		return models.Session{}, err
	}

	session.Completion = models.Completion(completion)
	if configSnapshot.Valid {
		snapshot := &models.ConfigSnapshot{}
		if err := json.Unmarshal([]byte(configSnapshot.String), snapshot); err != nil {
			return models.Session{}, fmt.Errorf("failed to parse config snapshot for session %s: %w", session.ID, err)
		}
		session.ConfigSnapshot = snapshot
	}
	if scheduleMatched.Valid {
		match := &models.ScheduleMatch{}
		if err := json.Unmarshal([]byte(scheduleMatched.String), match); err != nil {
			return models.Session{}, fmt.Errorf("failed to parse schedule match for session %s: %w", session.ID, err)
		}
		session.ScheduleMatched = match
	}
	if satisfied.Valid {
		v := satisfied.Bool
		session.SatisfiedObligation = &v
	}
	session.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return models.Session{}, fmt.Errorf("failed to parse created_at for session %s: %w", session.ID, err)
	}

	return session, nil
}

func (s *SQLiteStore) DeleteSession(id string) error {
	result, err := s.db.Exec("DELETE FROM sessions WHERE id = ?", id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("session not found: %s", id)
	}
	return nil
}

func (s *SQLiteStore) GetConfigPath() string {
	return s.path
}

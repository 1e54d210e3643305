package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/calumwright/praxis/internal/constants"
	"github.com/calumwright/praxis/internal/logger"
	"github.com/calumwright/praxis/internal/models"
	_ "github.com/lib/pq"
)

type PostgresStore struct {
	connStr string
	db      *sql.DB
}

func NewPostgresStore(connStr string) *PostgresStore {
	s := &PostgresStore{
		connStr: connStr,
	}
	s.ensureSearchPath()
	return s
}

func (s *PostgresStore) ensureSearchPath() {
	// Ensure search_path is pinned to the app schema in the connection string
	if strings.HasPrefix(s.connStr, "postgres://") || strings.HasPrefix(s.connStr, "postgresql://") {
		u, err := url.Parse(s.connStr)
		if err != nil {
			logger.Warn("Failed to parse Postgres connection string", "error", err)
			return
		}
		q := u.Query()
		if q.Get("search_path") == "" {
			q.Set("search_path", constants.AppName)
			u.RawQuery = q.Encode()
			s.connStr = u.String()
		}
	} else {
		if !hasSearchPathParam(s.connStr) {
			s.connStr = strings.TrimSpace(s.connStr) + " search_path=" + constants.AppName
		}
	}
}

// hasSearchPathParam returns true if the given DSN-style connection string
// contains a search_path parameter key (case-insensitive).
func hasSearchPathParam(connStr string) bool {
	for _, part := range strings.Fields(connStr) {
		kv := strings.SplitN(part, "=", 2)
		if len(kv) != 2 {
			continue
		}
		if strings.EqualFold(kv[0], "search_path") {
			return true
		}
	}
	return false
}

const postgresSchema = `
CREATE SCHEMA IF NOT EXISTS ` + constants.AppName + `;

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
	config_snapshot JSONB,
	schedule_matched JSONB,
	satisfied_obligation BOOLEAN,
	created_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_sessions_started_at ON sessions(started_at);
`

func (s *PostgresStore) Init() error {
	db, err := sql.Open("postgres", s.connStr)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	if err := s.db.Ping(); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if _, err := s.db.Exec(postgresSchema); err != nil {
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

func (s *PostgresStore) Load() error {
	if s.db != nil {
		return nil
	}

	db, err := sql.Open("postgres", s.connStr)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	if err := s.db.Ping(); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	var exists bool
	err = s.db.QueryRow(`
		SELECT EXISTS (
			SELECT 1 FROM information_schema.tables
			WHERE table_schema = $1 AND table_name = 'settings'
		)`, constants.AppName).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check schema: %w", err)
	}
	if !exists {
		return fmt.Errorf("storage not initialized, run 'praxis init' first")
	}

	return nil
}

func (s *PostgresStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *PostgresStore) GetSettings() (models.Settings, error) {
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

func (s *PostgresStore) SaveSettings(settings models.Settings) error {
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
			INSERT INTO settings (key, value) VALUES ($1, $2)
			ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, value)
		if err != nil {
			return fmt.Errorf("failed to save setting %s: %w", key, err)
		}
	}

	return tx.Commit()
}

func (s *PostgresStore) AddSession(session models.Session) error {
	if err := session.Validate(); err != nil {
		return err
	}
	return s.upsertSession(session, `
		INSERT INTO sessions (id, completion, started_at, practice_id, practice_mode, domain,
			config_snapshot, schedule_matched, satisfied_obligation, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`)
}

func (s *PostgresStore) UpdateSession(session models.Session) error {
	if err := session.Validate(); err != nil {
		return err
	}
	return s.upsertSession(session, `
		INSERT INTO sessions (id, completion, started_at, practice_id, practice_mode, domain,
			config_snapshot, schedule_matched, satisfied_obligation, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
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

func (s *PostgresStore) upsertSession(session models.Session, query string) error {
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

func (s *PostgresStore) GetSession(id string) (models.Session, error) {
	row := s.db.QueryRow(`
		SELECT `+sessionColumns+`
		FROM sessions WHERE id = $1`, id)
	session, err := scanSession(row)
	if err == sql.ErrNoRows {
		return models.Session{}, fmt.Errorf("session not found: %s", id)
	}
	return session, err
}

func (s *PostgresStore) GetAllSessions() ([]models.Session, error) {
	return s.querySessions(`
		SELECT ` + sessionColumns + `
		FROM sessions ORDER BY started_at ASC`)
}

func (s *PostgresStore) GetSessionsInRange(startDay, endDay string) ([]models.Session, error) {
	return s.querySessions(`
		SELECT `+sessionColumns+`
		FROM sessions
		WHERE substr(started_at, 1, 10) >= $1 AND substr(started_at, 1, 10) <= $2
		ORDER BY started_at ASC`, startDay, endDay)
}

func (s *PostgresStore) querySessions(query string, args ...interface{}) ([]models.Session, error) {
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

func (s *PostgresStore) DeleteSession(id string) error {
	result, err := s.db.Exec("DELETE FROM sessions WHERE id = $1", id)
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

func (s *PostgresStore) GetConfigPath() string {
	return s.connStr
}

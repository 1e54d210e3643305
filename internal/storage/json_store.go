package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/calumwright/praxis/internal/models"
)

type Store struct {
	Version  int                       `json:"version"`
	Settings models.Settings           `json:"settings"`
	Sessions map[string]models.Session `json:"sessions"`
}

type JSONStore struct {
	path  string
	store *Store
}

func NewJSONStore(configPath string) *JSONStore {
	return &JSONStore{
		path: configPath,
	}
}

func (s *JSONStore) Init() error {
	// Create config directory if it doesn't exist
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("storage already initialized at %s", s.path)
	}

	s.store = &Store{
		Version: 1,
		Settings: models.Settings{
			Timezone:      "Local",
			PrecisionMode: models.PrecisionCurriculum,
		},
		Sessions: make(map[string]models.Session),
	}

	return s.save()
}

func (s *JSONStore) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("storage not initialized, run 'praxis init' first")
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	s.store = &Store{}
	if err := json.Unmarshal(data, s.store); err != nil {
		return fmt.Errorf("failed to parse storage: %w", err)
	}

	if s.store.Sessions == nil {
		s.store.Sessions = make(map[string]models.Session)
	}

	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) save() error {
	data, err := json.MarshalIndent(s.store, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}

	return nil
}

func (s *JSONStore) GetSettings() (models.Settings, error) {
	if s.store == nil {
		return models.Settings{}, fmt.Errorf("storage not loaded")
	}
	return s.store.Settings, nil
}

func (s *JSONStore) SaveSettings(settings models.Settings) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}
	s.store.Settings = settings
	return s.save()
}

func (s *JSONStore) AddSession(session models.Session) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}
	if err := session.Validate(); err != nil {
		return err
	}
	if session.CreatedAt.IsZero() {
		session.CreatedAt = time.Now()
	}

	s.store.Sessions[session.ID] = session
	return s.save()
}

func (s *JSONStore) GetSession(id string) (models.Session, error) {
	if s.store == nil {
		return models.Session{}, fmt.Errorf("storage not loaded")
	}

	session, ok := s.store.Sessions[id]
	if !ok {
		return models.Session{}, fmt.Errorf("session not found: %s", id)
	}

	return session, nil
}

func (s *JSONStore) GetAllSessions() ([]models.Session, error) {
	if s.store == nil {
		return nil, fmt.Errorf("storage not loaded")
	}

	sessions := make([]models.Session, 0, len(s.store.Sessions))
	for _, session := range s.store.Sessions {
		sessions = append(sessions, session)
	}
	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].StartedAt < sessions[j].StartedAt
	})

	return sessions, nil
}

func (s *JSONStore) GetSessionsInRange(startDay, endDay string) ([]models.Session, error) {
	all, err := s.GetAllSessions()
	if err != nil {
		return nil, err
	}

	var sessions []models.Session
	for _, session := range all {
		if len(session.StartedAt) < 10 {
			continue
		}
		day := session.StartedAt[:10]
		if day >= startDay && day <= endDay {
			sessions = append(sessions, session)
		}
	}

	return sessions, nil
}

func (s *JSONStore) UpdateSession(session models.Session) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}
	if err := session.Validate(); err != nil {
		return err
	}
	if _, ok := s.store.Sessions[session.ID]; !ok {
		return fmt.Errorf("session not found: %s", session.ID)
	}

	s.store.Sessions[session.ID] = session
	return s.save()
}

func (s *JSONStore) DeleteSession(id string) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}
	if _, ok := s.store.Sessions[id]; !ok {
		return fmt.Errorf("session not found: %s", id)
	}

	delete(s.store.Sessions, id)
	return s.save()
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}

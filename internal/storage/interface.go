package storage

import (
	"net/url"
	"strings"

	"github.com/calumwright/praxis/internal/models"
)

// Provider is the storage backend contract. Implementations persist the
// settings singleton and the practice session log.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Settings
	GetSettings() (models.Settings, error)
	SaveSettings(models.Settings) error

	// Sessions
	AddSession(models.Session) error
	GetSession(id string) (models.Session, error)
	GetAllSessions() ([]models.Session, error)
	// GetSessionsInRange returns sessions whose started-at date key falls in
	// [startDay, endDay], both inclusive, ordered by start time ascending.
	GetSessionsInRange(startDay, endDay string) ([]models.Session, error)
	UpdateSession(models.Session) error
	DeleteSession(id string) error

	// Utils
	GetConfigPath() string
}

// HasEmbeddedCredentials reports whether a PostgreSQL connection string
// carries an inline password. Those are rejected at startup; credentials
// belong in the OS keyring, the environment, or .pgpass.
func HasEmbeddedCredentials(connStr string) bool {
	if strings.HasPrefix(connStr, "postgres://") || strings.HasPrefix(connStr, "postgresql://") {
		u, err := url.Parse(connStr)
		if err != nil {
			return false
		}
		if u.User == nil {
			return false
		}
		_, hasPassword := u.User.Password()
		return hasPassword
	}

	// DSN format: space-separated key=value pairs
	for _, part := range strings.Fields(connStr) {
		kv := strings.SplitN(part, "=", 2)
		if len(kv) != 2 {
			continue
		}
		if strings.EqualFold(kv[0], "password") && kv[1] != "" {
			return true
		}
	}
	return false
}

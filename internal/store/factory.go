package store

import (
	"fmt"

	"strokewatch-server/internal/models"
)

// Backend names accepted by New.
const (
	BackendMySQL  = "mysql"
	BackendMemory = "memory"
)

// New builds a Store for the configured backend. The memory backend needs
// no DSN and loses everything on restart; it exists for tests and local
// development.
func New(backend, dsn string) (Store, error) {
	switch backend {
	case BackendMySQL:
		db, err := models.InitDB(models.DatabaseConfig{DSN: dsn})
		if err != nil {
			return nil, fmt.Errorf("opening mysql store: %w", err)
		}
		return NewGorm(db), nil
	case BackendMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", backend)
	}
}

package storage

import (
	"fmt"

	"github.com/AnasSayed27/GoalsApp/internal"
	"github.com/AnasSayed27/GoalsApp/internal/config"
)

// NewStore picks the backend configured by STORAGE_BACKEND.
func NewStore(cfg *config.Config, logger internal.Logger) (Store, error) {
	switch cfg.Backend {
	case "file":
		return NewFileStore(cfg.DataDir, logger)
	case "sqlite":
		return NewSQLiteStore(cfg.SQLitePath, logger)
	case "postgres":
		return NewPostgresStore(cfg.DBDSN, logger)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}

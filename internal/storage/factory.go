package storage

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/arma-type-things/reforger-types-sub001/internal/config"
	"github.com/arma-type-things/reforger-types-sub001/internal/storage/gormstore"
	"github.com/arma-type-things/reforger-types-sub001/internal/storage/memory"
)

// NewBackend creates a storage backend based on configuration.
func NewBackend(cfg config.StorageConfig, log zerolog.Logger) (Backend, error) {
	switch cfg.Type {
	case "postgres":
		return gormstore.NewPostgres(cfg.SQLite, log), nil
	case "sqlite":
		return gormstore.NewSQLite(cfg.SQLite, log), nil
	case "memory":
		return memory.New(), nil
	default:
		return nil, fmt.Errorf("unknown storage type: %s", cfg.Type)
	}
}

package database

import (
	"github.com/bllokusync/bllokusync/internal/common/config"
	"gorm.io/driver/postgres"
)

// NewPostgres creates a new PostgreSQL-backed Database
func NewPostgres(cfg *config.DatabaseConfig) (Database, error) {
	return newORMDB(postgres.Open(cfg.GetDSN()))
}

package database

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bllokusync/bllokusync/internal/common/config"
	"github.com/glebarez/sqlite"
)

// NewSQLite creates a new SQLite-backed Database
func NewSQLite(cfg *config.DatabaseConfig) (Database, error) {
	dir := filepath.Dir(cfg.DBName)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	return newORMDB(sqlite.Open(cfg.DBName))
}

package database

import (
	"github.com/bllokusync/bllokusync/internal/common/config"
	"gorm.io/driver/mysql"
)

// NewMySQL creates a new MySQL-backed Database
func NewMySQL(cfg *config.DatabaseConfig) (Database, error) {
	return newORMDB(mysql.Open(cfg.GetDSN()))
}

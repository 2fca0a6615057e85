package database

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/bllokusync/bllokusync/internal/common/config"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// IsNotFound reports whether err means the requested row does not exist
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// IsDuplicateKey reports whether err is a unique constraint violation.
// Driver error types differ, so the check falls back to message matching.
func IsDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "UNIQUE constraint") ||
		strings.Contains(msg, "Duplicate entry")
}

// EnsureSuperAdmin upserts the bootstrap manager account from configuration.
// Called once at startup; a no-op when no username is configured.
func EnsureSuperAdmin(ctx context.Context, db Database, cfg *config.SuperAdminConfig) error {
	if cfg == nil || cfg.Username == "" || cfg.Password == "" {
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(cfg.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	existing, err := db.GetUserByUsername(ctx, cfg.Username)
	if err != nil {
		if !IsNotFound(err) {
			return err
		}
		now := time.Now()
		return db.CreateUser(ctx, &User{
			Username:  cfg.Username,
			Password:  string(hashed),
			Role:      RoleAdmin,
			IsActive:  true,
			CreatedAt: now,
			UpdatedAt: now,
		})
	}

	existing.Password = string(hashed)
	existing.Role = RoleAdmin
	existing.IsActive = true
	existing.UpdatedAt = time.Now()
	return db.UpdateUser(ctx, existing)
}

package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/stepaks675/sproutcard/internal/apperrors"
)

// SettingRepository provides data access for the key/value setting table,
// used for operator-managed values such as the encrypted provider API key.
type SettingRepository struct {
	db *sql.DB
}

// NewSettingRepository creates a new SettingRepository with the provided database connection.
func NewSettingRepository(db *sql.DB) *SettingRepository {
	return &SettingRepository{db: db}
}

// GetSetting retrieves the value stored under key.
// Returns apperrors.ErrSettingNotFound when the key has never been set.
func (r *SettingRepository) GetSetting(key string) (string, error) {
	var value string
	err := r.db.QueryRow(`SELECT value FROM setting WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", apperrors.ErrSettingNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to query setting table: %w", err)
	}
	return value, nil
}

// SetSetting stores or replaces the value under key.
func (r *SettingRepository) SetSetting(ctx context.Context, key, value string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO setting (key, value)
		VALUES (?, ?)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to upsert setting %q: %w", key, err)
	}
	return nil
}

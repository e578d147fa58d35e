package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/stepaks675/sproutcard/internal/apperrors"
	"github.com/stepaks675/sproutcard/internal/database"
	"github.com/stepaks675/sproutcard/internal/repository"
	"github.com/stepaks675/sproutcard/internal/secrets"
	"github.com/stepaks675/sproutcard/internal/version"
)

// settingProviderAPIKey is the setting row holding the encrypted provider key.
const settingProviderAPIKey = "provider_api_key"

// apiKeySetter is the part of the provider client the system service needs
// when the stored credential is rotated.
type apiKeySetter interface {
	SetAPIKey(key string)
}

// SystemService handles system-related operations: health, version, and the
// provider credential stored encrypted at rest.
type SystemService struct {
	db          *sql.DB
	settingRepo *repository.SettingRepository
	codec       *secrets.Codec // nil when no FERNET_KEY is configured
	provider    apiKeySetter
}

// NewSystemService creates a new SystemService
func NewSystemService(db *sql.DB, settingRepo *repository.SettingRepository, codec *secrets.Codec, providerClient apiKeySetter) *SystemService {
	return &SystemService{
		db:          db,
		settingRepo: settingRepo,
		codec:       codec,
		provider:    providerClient,
	}
}

// CheckHealth checks the health of the system
func (s *SystemService) CheckHealth() error {
	return database.HealthCheck(s.db)
}

// CheckVersion returns the application version
func (s *SystemService) CheckVersion() string {
	return version.Version
}

// SetProviderKey encrypts and stores a new provider API key and rotates the
// running client to it immediately.
func (s *SystemService) SetProviderKey(ctx context.Context, plainKey string) error {
	if s.codec == nil {
		return apperrors.ErrMissingFernetKey
	}

	token, err := s.codec.Encrypt(plainKey)
	if err != nil {
		return fmt.Errorf("failed to encrypt provider key: %w", err)
	}
	if err := s.settingRepo.SetSetting(ctx, settingProviderAPIKey, token); err != nil {
		return err
	}

	s.provider.SetAPIKey(plainKey)
	return nil
}

// LoadProviderKey decrypts the stored provider API key.
// Returns apperrors.ErrProviderKeyNotSet when no key has been stored.
func (s *SystemService) LoadProviderKey() (string, error) {
	if s.codec == nil {
		return "", apperrors.ErrMissingFernetKey
	}

	token, err := s.settingRepo.GetSetting(settingProviderAPIKey)
	if errors.Is(err, apperrors.ErrSettingNotFound) {
		return "", apperrors.ErrProviderKeyNotSet
	}
	if err != nil {
		return "", err
	}

	return s.codec.Decrypt(token)
}

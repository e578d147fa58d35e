package apperrors

import "errors"

// Domain entity errors represent missing entities in the system.
var (
	// ErrRecapNotFound indicates that a recap with the given ID does not exist.
	ErrRecapNotFound = errors.New("recap not found")

	// ErrSettingNotFound indicates that a settings key has never been stored.
	ErrSettingNotFound = errors.New("setting not found")
)

// Business logic errors represent validation failures or constraint violations.
var (
	// ErrInvalidWalletAddress indicates that a wallet address is not a valid
	// 0x-prefixed hex address.
	ErrInvalidWalletAddress = errors.New("invalid wallet address")

	// ErrInvalidRecapID indicates that a recap ID is not a valid UUID.
	ErrInvalidRecapID = errors.New("invalid recap ID format")

	// ErrEmptyWalletAddress indicates that a required wallet parameter is missing.
	ErrEmptyWalletAddress = errors.New("wallet address cannot be empty")
)

// Configuration errors.
var (
	// ErrMissingFernetKey indicates that credential encryption was requested
	// but no FERNET_KEY is configured.
	ErrMissingFernetKey = errors.New("fernet key not configured")

	// ErrProviderKeyNotSet indicates that no provider API key is available
	// from either the environment or the settings store.
	ErrProviderKeyNotSet = errors.New("provider API key not set")
)

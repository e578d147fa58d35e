package testutil

import (
	"database/sql"
	"testing"
	"time"

	"github.com/fernet/fernet-go"

	"github.com/stepaks675/sproutcard/internal/repository"
	"github.com/stepaks675/sproutcard/internal/secrets"
	"github.com/stepaks675/sproutcard/internal/service"
)

// TestPriceCacheTTL is the cache freshness window used by test services.
const TestPriceCacheTTL = 10 * time.Minute

// TestWalletAddress is a syntactically valid wallet address for tests.
const TestWalletAddress = "0x742d35cc6634c0532925a3b844bc454e4438f44e"

// NewTestPriceService creates a PriceService backed by the test database and
// the given mock provider.
func NewTestPriceService(t *testing.T, db *sql.DB, mock *MockProvider) *service.PriceService {
	t.Helper()

	priceRepo := repository.NewPriceRepository(db)
	return service.NewPriceService(priceRepo, mock, TestPriceCacheTTL)
}

// NewTestRecapService creates a RecapService wired to the test database and
// the given mock provider, scanning the given chains.
func NewTestRecapService(t *testing.T, db *sql.DB, mock *MockProvider, chains []string) *service.RecapService {
	t.Helper()

	recapRepo := repository.NewRecapRepository(db)
	priceService := NewTestPriceService(t, db, mock)
	return service.NewRecapService(mock, priceService, recapRepo, chains)
}

// NewTestSystemService creates a SystemService with a freshly generated
// encryption key, so provider key storage can be exercised end to end.
func NewTestSystemService(t *testing.T, db *sql.DB, mock *MockProvider) *service.SystemService {
	t.Helper()

	settingRepo := repository.NewSettingRepository(db)
	return service.NewSystemService(db, settingRepo, NewTestCodec(t), mock)
}

// NewTestCodec creates a secrets codec with a random key.
func NewTestCodec(t *testing.T) *secrets.Codec {
	t.Helper()

	var key fernet.Key
	if err := key.Generate(); err != nil {
		t.Fatalf("Failed to generate fernet key: %v", err)
	}

	codec, err := secrets.NewCodec(key.Encode())
	if err != nil {
		t.Fatalf("Failed to create secrets codec: %v", err)
	}
	return codec
}

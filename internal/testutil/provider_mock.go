package testutil

import (
	"context"
	"sync"

	"github.com/stepaks675/sproutcard/internal/model"
)

// MockProvider is a mock implementation of provider.Client for testing.
// It returns predefined per-chain data instead of making actual API calls.
type MockProvider struct {
	mu sync.Mutex

	// SwapsByChain is the swap history returned per chain
	SwapsByChain map[string][]model.RawSwapRecord
	// PricesByChain is the price table returned per chain
	PricesByChain map[string]map[string]float64
	// SwapsErr is the error to return from FetchAllSwaps, per chain
	SwapsErr map[string]error
	// PricesErr is the error to return from GetTokenPrices, per chain
	PricesErr map[string]error

	// SwapCalls tracks how many times FetchAllSwaps was called
	SwapCalls int
	// PriceCalls tracks how many times GetTokenPrices was called
	PriceCalls int
	// APIKey records the most recent key passed to SetAPIKey
	APIKey string
}

// NewMockProvider creates an empty mock provider. A chain without configured
// data behaves like a wallet with no activity there.
func NewMockProvider() *MockProvider {
	return &MockProvider{
		SwapsByChain:  make(map[string][]model.RawSwapRecord),
		PricesByChain: make(map[string]map[string]float64),
		SwapsErr:      make(map[string]error),
		PricesErr:     make(map[string]error),
	}
}

// WithSwaps configures the swap history returned for a chain.
func (m *MockProvider) WithSwaps(chain string, records []model.RawSwapRecord) *MockProvider {
	m.SwapsByChain[chain] = records
	return m
}

// WithPrices configures the price table returned for a chain.
func (m *MockProvider) WithPrices(chain string, prices map[string]float64) *MockProvider {
	m.PricesByChain[chain] = prices
	return m
}

// WithSwapsError makes FetchAllSwaps fail for a chain.
func (m *MockProvider) WithSwapsError(chain string, err error) *MockProvider {
	m.SwapsErr[chain] = err
	return m
}

// WithPricesError makes GetTokenPrices fail for a chain.
func (m *MockProvider) WithPricesError(chain string, err error) *MockProvider {
	m.PricesErr[chain] = err
	return m
}

// SetAPIKey records the rotated key so tests can assert on it.
func (m *MockProvider) SetAPIKey(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.APIKey = key
}

// FetchAllSwaps returns the configured swap history for the chain.
func (m *MockProvider) FetchAllSwaps(_ context.Context, chain, _ string) ([]model.RawSwapRecord, error) {
	m.mu.Lock()
	m.SwapCalls++
	m.mu.Unlock()

	if err := m.SwapsErr[chain]; err != nil {
		return nil, err
	}
	return m.SwapsByChain[chain], nil
}

// GetTokenPrices returns the configured prices for the requested addresses.
// Addresses without a configured quote are absent from the result, matching
// the real provider's behavior.
func (m *MockProvider) GetTokenPrices(_ context.Context, chain string, addresses []string) (map[string]float64, error) {
	m.mu.Lock()
	m.PriceCalls++
	m.mu.Unlock()

	if err := m.PricesErr[chain]; err != nil {
		return nil, err
	}

	result := make(map[string]float64)
	for _, address := range addresses {
		if price, ok := m.PricesByChain[chain][address]; ok {
			result[address] = price
		}
	}
	return result, nil
}

// Package provider implements the HTTP client for the swap-data provider:
// paginated wallet swap history and batched token price lookups, per chain.
package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/stepaks675/sproutcard/internal/model"
)

// Client is the provider capability the recap pipeline depends on.
// Implementations must tolerate partial results: an empty swap page or a
// price map with missing addresses is valid data, not an error.
type Client interface {
	// FetchAllSwaps returns the wallet's complete swap history on one chain,
	// concatenated across pages.
	FetchAllSwaps(ctx context.Context, chain, wallet string) ([]model.RawSwapRecord, error)

	// GetTokenPrices returns current USD unit prices for the given token
	// addresses on one chain. Addresses without a quote are absent from the
	// result.
	GetTokenPrices(ctx context.Context, chain string, addresses []string) (map[string]float64, error)
}

// maxSwapPages caps the pagination loop so a provider bug that keeps
// returning a cursor cannot spin forever.
const maxSwapPages = 50

// HTTPClient talks to the provider's REST API.
type HTTPClient struct {
	httpClient *http.Client
	baseURL    string

	mu     sync.RWMutex
	apiKey string
}

// NewHTTPClient creates a provider client for the given base URL and API key.
func NewHTTPClient(baseURL, apiKey string) *HTTPClient {
	return &HTTPClient{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
	}
}

// SetAPIKey swaps the key used for subsequent requests. Called when the
// stored provider credential is rotated through the system API.
func (c *HTTPClient) SetAPIKey(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.apiKey = key
}

func (c *HTTPClient) currentAPIKey() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.apiKey
}

// GetWalletSwaps fetches a single page of swap history.
func (c *HTTPClient) GetWalletSwaps(ctx context.Context, chain, wallet, cursor string) (SwapPage, error) {
	endpoint := fmt.Sprintf("%s/v1/%s/wallet/%s/swaps", c.baseURL, url.PathEscape(chain), url.PathEscape(wallet))
	if cursor != "" {
		endpoint += "?cursor=" + url.QueryEscape(cursor)
	}

	var page SwapPage
	if err := c.getJSON(ctx, endpoint, &page); err != nil {
		return SwapPage{}, fmt.Errorf("failed to fetch swap page for %s on %s: %w", wallet, chain, err)
	}
	return page, nil
}

// FetchAllSwaps runs the pagination loop until the provider reports no next
// cursor, the cursor stops advancing, or the page cap is reached.
func (c *HTTPClient) FetchAllSwaps(ctx context.Context, chain, wallet string) ([]model.RawSwapRecord, error) {
	var records []model.RawSwapRecord
	cursor := ""

	for page := 0; page < maxSwapPages; page++ {
		swapPage, err := c.GetWalletSwaps(ctx, chain, wallet, cursor)
		if err != nil {
			return nil, err
		}
		records = append(records, swapPage.Records...)

		if swapPage.NextCursor == "" || swapPage.NextCursor == cursor {
			break
		}
		cursor = swapPage.NextCursor
	}

	return records, nil
}

// GetTokenPrices fetches current USD prices for a batch of addresses on one
// chain. Non-finite or absent quotes are simply missing from the result.
func (c *HTTPClient) GetTokenPrices(ctx context.Context, chain string, addresses []string) (map[string]float64, error) {
	if len(addresses) == 0 {
		return map[string]float64{}, nil
	}

	endpoint := fmt.Sprintf(
		"%s/v1/%s/prices?addresses=%s",
		c.baseURL,
		url.PathEscape(chain),
		url.QueryEscape(strings.Join(addresses, ",")),
	)

	var resp priceResponse
	if err := c.getJSON(ctx, endpoint, &resp); err != nil {
		return nil, fmt.Errorf("failed to fetch prices on %s: %w", chain, err)
	}

	prices := make(map[string]float64, len(resp.Prices))
	for address, price := range resp.Prices {
		prices[address] = price.Float64()
	}
	return prices, nil
}

// getJSON executes a GET against the provider and decodes the JSON body.
func (c *HTTPClient) getJSON(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}

	req.Header.Set("Accept", "application/json")
	if key := c.currentAPIKey(); key != "" {
		req.Header.Set("X-API-Key", key)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("provider returned status %d", resp.StatusCode)
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode provider response: %w", err)
	}
	return nil
}

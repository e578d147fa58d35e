package service

import (
	"context"
	"log"
	"time"

	"github.com/stepaks675/sproutcard/internal/provider"
	"github.com/stepaks675/sproutcard/internal/repository"
)

// PriceService serves current token prices, fronting the provider with the
// SQLite cache so repeated recaps for the same assets do not hammer the
// price endpoint.
type PriceService struct {
	priceRepo *repository.PriceRepository
	provider  provider.Client
	ttl       time.Duration
}

// NewPriceService creates a new PriceService with the provided repository and provider dependencies.
func NewPriceService(priceRepo *repository.PriceRepository, providerClient provider.Client, ttl time.Duration) *PriceService {
	return &PriceService{
		priceRepo: priceRepo,
		provider:  providerClient,
		ttl:       ttl,
	}
}

// GetPrices returns USD prices for the given addresses on one chain,
// serving fresh cached quotes where available and fetching the rest from
// the provider.
//
// Whatever was resolved is always returned, even alongside an error: a
// provider outage should degrade to "price whatever the cache still knows",
// not to an empty table.
func (s *PriceService) GetPrices(ctx context.Context, chain string, addresses []string) (map[string]float64, error) {
	cached, err := s.priceRepo.GetFreshPrices(chain, addresses, time.Now().Add(-s.ttl))
	if err != nil {
		// Cache trouble must not block a recap; treat everything as missing.
		log.Printf("price cache lookup failed for chain %s: %v", chain, err)
		cached = make(map[string]float64)
	}

	var missing []string
	for _, address := range addresses {
		if _, ok := cached[address]; !ok {
			missing = append(missing, address)
		}
	}
	if len(missing) == 0 {
		return cached, nil
	}

	fetched, err := s.provider.GetTokenPrices(ctx, chain, missing)
	if err != nil {
		return cached, err
	}

	if err := s.priceRepo.UpsertPrices(ctx, chain, fetched, time.Now()); err != nil {
		log.Printf("failed to cache prices for chain %s: %v", chain, err)
	}

	for address, price := range fetched {
		cached[address] = price
	}
	return cached, nil
}

// PurgeExpired deletes cache rows older than the freshness TTL. Wired to the
// cron scheduler so the cache does not accumulate dead quotes.
func (s *PriceService) PurgeExpired() error {
	deleted, err := s.priceRepo.DeleteOlderThan(time.Now().Add(-s.ttl))
	if err != nil {
		return err
	}
	if deleted > 0 {
		log.Printf("purged %d expired price cache entries", deleted)
	}
	return nil
}

package service

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/stepaks675/sproutcard/internal/model"
	"github.com/stepaks675/sproutcard/internal/provider"
	"github.com/stepaks675/sproutcard/internal/recap"
	"github.com/stepaks675/sproutcard/internal/repository"
)

// priceLookupTimeout bounds each per-chain price request. One slow chain
// must not hold the whole recap hostage; its assets just value at 0.
const priceLookupTimeout = 10 * time.Second

// RecapService orchestrates one accounting run end to end: fetch the
// wallet's swap history across all configured chains, replay it through the
// ledger, price the resolved holdings, and store the finished recap for the
// share page.
type RecapService struct {
	provider     provider.Client
	priceService *PriceService
	recapRepo    *repository.RecapRepository
	chains       []string
}

// NewRecapService creates a new RecapService with the provided provider, service and repository dependencies.
func NewRecapService(
	providerClient provider.Client,
	priceService *PriceService,
	recapRepo *repository.RecapRepository,
	chains []string,
) *RecapService {
	return &RecapService{
		provider:     providerClient,
		priceService: priceService,
		recapRepo:    recapRepo,
		chains:       chains,
	}
}

// BuildRecap computes and stores the trading recap for one wallet.
//
// Upstream trouble is handled locally: a chain whose history cannot be
// fetched contributes no events, malformed records are dropped during
// normalization, and assets without a usable quote value at 0. A wallet with
// no eligible activity yields a zero-valued recap, never an error. The only
// failure surfaced to the caller is being unable to store the result.
func (s *RecapService) BuildRecap(ctx context.Context, wallet string) (model.RecapRecord, error) {
	var events []model.SwapEvent
	for _, chain := range s.chains {
		records, err := s.provider.FetchAllSwaps(ctx, chain, wallet)
		if err != nil {
			log.Printf("failed to fetch swaps for wallet %s on %s: %v", wallet, chain, err)
			continue
		}
		events = append(events, recap.NormalizeAll(chain, records)...)
	}

	summary := recap.NewLedger().Replay(events)
	assets := recap.ResolveCanonical(summary)
	prices := s.lookupPrices(ctx, recap.GroupByChain(assets))
	result := recap.Valuate(summary, assets, prices)

	record := model.RecapRecord{
		ID:        uuid.New().String(),
		Wallet:    wallet,
		Result:    result,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.recapRepo.InsertRecap(ctx, record); err != nil {
		return model.RecapRecord{}, fmt.Errorf("failed to store recap: %w", err)
	}

	return record, nil
}

// GetRecap retrieves a previously computed recap by its share ID.
func (s *RecapService) GetRecap(id string) (model.RecapRecord, error) {
	return s.recapRepo.GetRecap(id)
}

// lookupPrices fans out one price request per chain and merges the partial
// tables. Chains are independent and their contributions additive, so no
// ordering is needed between them; a failed chain only means its assets are
// missing from the table.
func (s *RecapService) lookupPrices(ctx context.Context, addressesByChain map[string][]string) recap.PriceTable {
	table := make(recap.PriceTable, len(addressesByChain))
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	for chain, addresses := range addressesByChain {
		g.Go(func() error {
			callCtx, cancel := context.WithTimeout(ctx, priceLookupTimeout)
			defer cancel()

			prices, err := s.priceService.GetPrices(callCtx, chain, addresses)
			if err != nil {
				log.Printf("price lookup failed for chain %s: %v", chain, err)
			}
			if len(prices) == 0 {
				return nil
			}

			mu.Lock()
			table.Set(chain, prices)
			mu.Unlock()
			return nil
		})
	}

	// Goroutines always return nil; failures degrade to missing prices.
	_ = g.Wait()

	return table
}

package recap

import "github.com/stepaks675/sproutcard/internal/model"

// ResolveCanonical picks at most one (chain, address) representation per
// symbol, so a bridged or wrapped asset held on several chains is priced
// once instead of once per chain.
//
// Only token keys with a positive remaining amount whose symbol is still
// held are eligible; among those the largest remaining amount wins. Keys are
// scanned in the order the ledger first recorded them, so an equal-amount
// tie goes to the earliest-recorded key and the outcome is reproducible.
func ResolveCanonical(summary model.LedgerSummary) []model.CanonicalAsset {
	best := make(map[string]int)
	var symbolOrder []string

	for i, key := range summary.TokenKeys {
		if key.Amount <= 0 {
			continue
		}
		if summary.Holdings[key.Symbol] <= 0 {
			continue
		}
		current, seen := best[key.Symbol]
		if !seen {
			best[key.Symbol] = i
			symbolOrder = append(symbolOrder, key.Symbol)
			continue
		}
		if key.Amount > summary.TokenKeys[current].Amount {
			best[key.Symbol] = i
		}
	}

	assets := make([]model.CanonicalAsset, 0, len(symbolOrder))
	for _, symbol := range symbolOrder {
		key := summary.TokenKeys[best[symbol]]
		assets = append(assets, model.CanonicalAsset{
			Symbol:  symbol,
			Chain:   key.Chain,
			Address: key.Address,
			Amount:  key.Amount,
		})
	}
	return assets
}

// GroupByChain groups the resolved addresses per chain for batched price
// lookups.
func GroupByChain(assets []model.CanonicalAsset) map[string][]string {
	byChain := make(map[string][]string)
	for _, asset := range assets {
		byChain[asset.Chain] = append(byChain[asset.Chain], asset.Address)
	}
	return byChain
}

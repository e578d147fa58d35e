package recap

import (
	"math"

	"github.com/stepaks675/sproutcard/internal/model"
)

// RoundingPrecision is the factor used to round USD figures to cents before
// they leave the engine.
const RoundingPrecision = 100

// PriceTable maps chain -> token address -> current USD unit price. Partial
// tables are expected: a chain whose price lookup failed simply has no entry.
type PriceTable map[string]map[string]float64

// Lookup returns the price for a (chain, address) pair if one was fetched.
func (t PriceTable) Lookup(chain, address string) (float64, bool) {
	prices, ok := t[chain]
	if !ok {
		return 0, false
	}
	price, ok := prices[address]
	return price, ok
}

// Set records one chain's price map, replacing any previous entry.
func (t PriceTable) Set(chain string, prices map[string]float64) {
	t[chain] = prices
}

// Valuate combines the ledger summary, the resolved canonical assets and the
// fetched prices into the final recap figures.
//
// A resolved asset with no usable quote contributes 0 to holdingsValueUsd
// but its quantity still appears in holdings. Invested capital is the
// magnitude of the deepest cumulative net outflow seen during replay, so
// recycled capital (sell then rebuy) is not double-counted.
func Valuate(summary model.LedgerSummary, assets []model.CanonicalAsset, prices PriceTable) model.ValuationResult {
	var holdingsValue float64
	for _, asset := range assets {
		price, ok := prices.Lookup(asset.Chain, asset.Address)
		if !ok || math.IsNaN(price) || math.IsInf(price, 0) {
			continue
		}
		holdingsValue += asset.Amount * price
	}

	holdings := make(map[string]float64)
	var remainingCost float64
	for symbol, quantity := range summary.Holdings {
		if quantity <= 0 {
			continue
		}
		holdings[symbol] = quantity
		remainingCost += summary.CostBasisUsd[symbol]
	}

	unrealized := holdingsValue - remainingCost

	return model.ValuationResult{
		Pnl:              roundUsd(summary.RealizedPnlUsd + unrealized),
		RealizedPnlUsd:   roundUsd(summary.RealizedPnlUsd),
		UnrealizedPnlUsd: roundUsd(unrealized),
		InvestedUsd:      roundUsd(summary.PeakDeployedUsd),
		Holdings:         holdings,
		HoldingsValueUsd: roundUsd(holdingsValue),
	}
}

func roundUsd(v float64) float64 {
	return math.Round(v*RoundingPrecision) / RoundingPrecision
}

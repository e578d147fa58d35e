package model

import "time"

// LedgerSummary is the immutable outcome of replaying one wallet's swap
// history: realized profit, the deepest cumulative cash outflow, and the
// final per-symbol and per-address holdings.
type LedgerSummary struct {
	RealizedPnlUsd  float64
	PeakDeployedUsd float64 // magnitude of the most negative cash-flow trace value

	// Holdings and CostBasisUsd are keyed by asset symbol and include
	// zeroed-out positions; filtering happens at valuation time.
	Holdings     map[string]float64
	CostBasisUsd map[string]float64

	// TokenKeys preserves the order in which addresses were first recorded,
	// making canonical resolution reproducible across runs.
	TokenKeys []TokenKey
}

// CanonicalAsset is the single (chain, address) representation chosen for a
// symbol by the resolver, with the amount held at that address.
type CanonicalAsset struct {
	Symbol  string
	Chain   string
	Address string
	Amount  float64
}

// ValuationResult is the final recap figure set. The JSON field names are a
// contract with the presentation layer and must not change.
type ValuationResult struct {
	Pnl              float64            `json:"pnl"`
	RealizedPnlUsd   float64            `json:"realizedPnlUsd"`
	UnrealizedPnlUsd float64            `json:"unrealizedPnlUsd"`
	InvestedUsd      float64            `json:"investedUsd"`
	Holdings         map[string]float64 `json:"holdings"`
	HoldingsValueUsd float64            `json:"holdingsValueUsd"`
}

// RecapRecord is a stored recap: the valuation result plus the identifiers
// the share page needs to retrieve it later.
type RecapRecord struct {
	ID        string          `json:"id"`
	Wallet    string          `json:"wallet"`
	Result    ValuationResult `json:"result"`
	CreatedAt time.Time       `json:"createdAt"`
}

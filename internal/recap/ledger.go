package recap

import (
	"math"
	"sort"

	"github.com/stepaks675/sproutcard/internal/model"
)

// Ledger replays a wallet's swap events in chronological order, maintaining
// per-symbol quantity and average cost basis plus secondary per-address
// bookkeeping used for canonical asset resolution.
//
// One Ledger owns all state for exactly one accounting run. Symbols and
// token keys are tracked with explicit insertion-order indexes so the
// summary (and everything downstream of it) is deterministic.
type Ledger struct {
	positions   map[string]*model.Position
	symbolOrder []string

	tokenKeys     map[string]*model.TokenKey
	tokenKeyOrder []string

	realizedPnlUsd float64
	cashFlowUsd    float64 // cumulative net flow: buys subtract, sells add
	minCashFlowUsd float64 // most negative value the trace ever reached
}

// NewLedger creates an empty ledger for a single run.
func NewLedger() *Ledger {
	return &Ledger{
		positions: make(map[string]*model.Position),
		tokenKeys: make(map[string]*model.TokenKey),
	}
}

// Replay processes the full event sequence and produces the run summary.
//
// Events are sorted ascending by raw timestamp before replay: average-cost
// accounting is order-dependent and a single out-of-order swap corrupts all
// downstream cost-basis math. ISO-8601 timestamps sort correctly as plain
// strings, with ties broken by original input order (stable sort). The input
// slice is not modified.
func (l *Ledger) Replay(events []model.SwapEvent) model.LedgerSummary {
	ordered := make([]model.SwapEvent, len(events))
	copy(ordered, events)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Timestamp < ordered[j].Timestamp
	})

	for _, event := range ordered {
		switch event.Kind {
		case model.KindBuy:
			l.applyBuy(event)
		case model.KindSell:
			l.applySell(event)
		}
	}

	return l.summary()
}

// applyBuy increases the symbol's position by the trade and records the
// capital outlay on the cash-flow trace.
func (l *Ledger) applyBuy(event model.SwapEvent) {
	pos := l.position(event.AssetSymbol)
	pos.HeldQuantity += event.Quantity
	pos.CostBasisUsd += event.UsdAmount

	l.cashFlowUsd -= event.UsdAmount
	if l.cashFlowUsd < l.minCashFlowUsd {
		l.minCashFlowUsd = l.cashFlowUsd
	}

	if event.TokenAddress != "" {
		l.tokenKey(event.Chain, event.TokenAddress, event.AssetSymbol).Amount += event.Quantity
	}
}

// applySell disposes up to the held quantity and realizes PnL against the
// average cost at the time of sale. A sell against a zero holding is an
// impossible transition and is skipped.
func (l *Ledger) applySell(event model.SwapEvent) {
	pos, ok := l.positions[event.AssetSymbol]
	if !ok || pos.HeldQuantity <= 0 {
		return
	}

	soldQty := math.Min(event.Quantity, pos.HeldQuantity)
	// Proceeds scale with the portion actually sold.
	proceeds := event.UsdAmount * (soldQty / event.Quantity)

	// Average cost per unit is taken before the position mutates.
	avgCostPerUnit := pos.CostBasisUsd / pos.HeldQuantity
	realizedCost := avgCostPerUnit * soldQty

	l.realizedPnlUsd += proceeds - realizedCost

	pos.CostBasisUsd -= realizedCost
	if pos.CostBasisUsd < 0 {
		pos.CostBasisUsd = 0 // absorb float rounding
	}
	pos.HeldQuantity -= soldQty
	if pos.HeldQuantity <= 0 {
		pos.HeldQuantity = 0
		pos.CostBasisUsd = 0
	}

	l.cashFlowUsd += proceeds
	if l.cashFlowUsd < l.minCashFlowUsd {
		l.minCashFlowUsd = l.cashFlowUsd
	}

	// The per-address balance never goes below zero, even when the sell
	// disposes more than was ever recorded at this address.
	if event.TokenAddress != "" {
		if key, exists := l.tokenKeys[tokenKeyID(event.Chain, event.TokenAddress)]; exists {
			key.Amount -= math.Min(key.Amount, soldQty)
		}
	}
}

// position returns the symbol's position, creating it on first use.
func (l *Ledger) position(symbol string) *model.Position {
	pos, ok := l.positions[symbol]
	if !ok {
		pos = &model.Position{Symbol: symbol}
		l.positions[symbol] = pos
		l.symbolOrder = append(l.symbolOrder, symbol)
	}
	return pos
}

// tokenKey returns the per-address entry, creating it on first use.
func (l *Ledger) tokenKey(chain, address, symbol string) *model.TokenKey {
	id := tokenKeyID(chain, address)
	key, ok := l.tokenKeys[id]
	if !ok {
		key = &model.TokenKey{Chain: chain, Address: address, Symbol: symbol}
		l.tokenKeys[id] = key
		l.tokenKeyOrder = append(l.tokenKeyOrder, id)
	}
	return key
}

func tokenKeyID(chain, address string) string {
	return chain + ":" + address
}

func (l *Ledger) summary() model.LedgerSummary {
	holdings := make(map[string]float64, len(l.symbolOrder))
	costBasis := make(map[string]float64, len(l.symbolOrder))
	for _, symbol := range l.symbolOrder {
		pos := l.positions[symbol]
		holdings[symbol] = pos.HeldQuantity
		costBasis[symbol] = pos.CostBasisUsd
	}

	tokenKeys := make([]model.TokenKey, 0, len(l.tokenKeyOrder))
	for _, id := range l.tokenKeyOrder {
		tokenKeys = append(tokenKeys, *l.tokenKeys[id])
	}

	return model.LedgerSummary{
		RealizedPnlUsd:  l.realizedPnlUsd,
		PeakDeployedUsd: math.Abs(l.minCashFlowUsd),
		Holdings:        holdings,
		CostBasisUsd:    costBasis,
		TokenKeys:       tokenKeys,
	}
}

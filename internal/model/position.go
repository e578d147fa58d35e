package model

// Position tracks the running holding for one asset symbol during a ledger
// replay: quantity held and the aggregate USD cost of that quantity under
// the average-cost method.
//
// Invariant: CostBasisUsd is 0 whenever HeldQuantity is 0. A position is
// never removed once created; it can reach a zero state and be revived by a
// later buy.
type Position struct {
	Symbol       string
	HeldQuantity float64
	CostBasisUsd float64
}

// TokenKey is the secondary, per-address bookkeeping entry: how much of a
// symbol's total holding was acquired at a specific on-chain address. The
// same symbol may carry several token keys when the asset is bridged across
// chains or traded in wrapped and unwrapped form.
type TokenKey struct {
	Chain   string
	Address string
	Symbol  string
	Amount  float64
}

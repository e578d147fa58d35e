package model

// Trade kinds recognized by the accounting engine. Anything else coming from
// the provider (approvals, transfers, liquidity events) is skipped.
const (
	KindBuy  = "buy"
	KindSell = "sell"
)

// RawSwapRecord is one trade exactly as the swap-data provider reports it,
// before any validation. Both sides of the swap are carried: the bought side
// describes the asset acquired, the sold side the asset disposed.
type RawSwapRecord struct {
	Timestamp string   `json:"timestamp"`
	Type      string   `json:"type"`
	Pair      string   `json:"pair"`
	Bought    SwapSide `json:"bought"`
	Sold      SwapSide `json:"sold"`
	TxHash    string   `json:"txHash,omitempty"`
}

// SwapSide is one leg of a swap: how much of a token moved, its USD notional
// and the token's chain-scoped contract address.
type SwapSide struct {
	Amount    FlexFloat `json:"amount"`
	UsdAmount FlexFloat `json:"usdAmount"`
	Address   string    `json:"address,omitempty"`
}

// SwapEvent is the canonical, validated form of one trade. Immutable once
// built; the ledger replays a slice of these.
//
// Timestamp keeps the provider's raw ISO-8601 string: lexicographic order of
// these strings equals chronological order, which is all the ledger needs.
type SwapEvent struct {
	Chain        string
	Timestamp    string
	Kind         string // KindBuy or KindSell
	AssetSymbol  string
	Quantity     float64
	UsdAmount    float64
	TokenAddress string // asset acquired on buy / disposed on sell; may be empty
}

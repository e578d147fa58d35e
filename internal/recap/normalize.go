// Package recap implements the swap-history accounting engine. It normalizes
// raw provider records into canonical swap events, replays them through an
// average-cost position ledger, resolves one canonical on-chain
// representation per asset, and values the remaining holdings.
//
// The engine performs no I/O and holds no state outside a single run, so it
// can be invoked concurrently for different wallets without cross-talk.
package recap

import (
	"math"
	"strings"

	"github.com/stepaks675/sproutcard/internal/model"
)

// Normalize maps one raw provider record onto a canonical SwapEvent.
//
// Returns false when the record is unusable: unknown trade type, missing
// pair label, or a non-positive or non-finite amount on the traded side.
// Malformed upstream records are skipped rather than surfaced; a recap with
// slightly reduced fidelity beats a failed recap.
func Normalize(chain string, raw model.RawSwapRecord) (model.SwapEvent, bool) {
	kind := strings.ToLower(strings.TrimSpace(raw.Type))
	if kind != model.KindBuy && kind != model.KindSell {
		return model.SwapEvent{}, false
	}

	symbol, ok := deriveSymbol(raw.Pair)
	if !ok {
		return model.SwapEvent{}, false
	}

	// On a buy the wallet acquires the base asset, on a sell it disposes it.
	side := raw.Bought
	if kind == model.KindSell {
		side = raw.Sold
	}

	quantity := side.Amount.Float64()
	usd := side.UsdAmount.Float64()
	if !isPositiveFinite(quantity) || !isPositiveFinite(usd) {
		return model.SwapEvent{}, false
	}

	return model.SwapEvent{
		Chain:        chain,
		Timestamp:    raw.Timestamp,
		Kind:         kind,
		AssetSymbol:  symbol,
		Quantity:     quantity,
		UsdAmount:    usd,
		TokenAddress: side.Address,
	}, true
}

// NormalizeAll maps a batch of raw records for one chain, dropping the
// unusable ones.
func NormalizeAll(chain string, raws []model.RawSwapRecord) []model.SwapEvent {
	events := make([]model.SwapEvent, 0, len(raws))
	for _, raw := range raws {
		if event, ok := Normalize(chain, raw); ok {
			events = append(events, event)
		}
	}
	return events
}

// deriveSymbol extracts the traded asset from a slash-delimited pair label:
// the base side wins ("WETH/USDC" -> "WETH"), and a leading W/w is stripped
// when something remains, so wrapped and unwrapped variants of the same
// asset share one symbol ("WETH" -> "ETH").
func deriveSymbol(pair string) (string, bool) {
	base, _, _ := strings.Cut(pair, "/")
	base = strings.TrimSpace(base)
	if base == "" {
		return "", false
	}
	if (base[0] == 'W' || base[0] == 'w') && len(base) > 1 {
		base = base[1:]
	}
	return base, true
}

func isPositiveFinite(v float64) bool {
	return v > 0 && !math.IsNaN(v) && !math.IsInf(v, 0)
}

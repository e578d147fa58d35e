package recap

import (
	"encoding/json"
	"testing"

	"github.com/stepaks675/sproutcard/internal/model"
)

// TestNormalize_SymbolDerivation tests the pair-label to symbol mapping.
//
// WHY: every downstream position is keyed by the derived symbol. A wrong
// derivation silently splits one asset into two positions, which corrupts
// cost basis for the whole recap.
func TestNormalize_SymbolDerivation(t *testing.T) {
	tests := []struct {
		name       string
		pair       string
		wantSymbol string
		wantOK     bool
	}{
		{name: "wrapped base is unwrapped", pair: "WETH/USDC", wantSymbol: "ETH", wantOK: true},
		{name: "lowercase wrapped prefix is stripped", pair: "wBTC/USDT", wantSymbol: "BTC", wantOK: true},
		{name: "plain base is kept", pair: "SOL/USDC", wantSymbol: "SOL", wantOK: true},
		{name: "single W is not stripped", pair: "W/USDC", wantSymbol: "W", wantOK: true},
		{name: "label without quote side", pair: "PEPE", wantSymbol: "PEPE", wantOK: true},
		{name: "empty label yields no event", pair: "", wantOK: false},
		{name: "label with empty base yields no event", pair: "/USDC", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := model.RawSwapRecord{
				Timestamp: "2024-03-01T10:00:00Z",
				Type:      "buy",
				Pair:      tt.pair,
				Bought:    model.SwapSide{Amount: 1, UsdAmount: 100, Address: "0xaaa"},
			}

			event, ok := Normalize("ethereum", raw)

			if ok != tt.wantOK {
				t.Fatalf("Normalize() ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && event.AssetSymbol != tt.wantSymbol {
				t.Errorf("Expected symbol %q, got %q", tt.wantSymbol, event.AssetSymbol)
			}
		})
	}
}

// TestNormalize_DropsMalformedRecords verifies that dirty upstream data is
// skipped rather than surfaced as an error.
func TestNormalize_DropsMalformedRecords(t *testing.T) {
	valid := model.RawSwapRecord{
		Timestamp: "2024-03-01T10:00:00Z",
		Type:      "buy",
		Pair:      "ETH/USDC",
		Bought:    model.SwapSide{Amount: 2, UsdAmount: 5000, Address: "0xaaa"},
	}

	t.Run("accepts a valid record", func(t *testing.T) {
		event, ok := Normalize("ethereum", valid)
		if !ok {
			t.Fatal("Expected valid record to normalize")
		}
		if event.Quantity != 2 || event.UsdAmount != 5000 {
			t.Errorf("Expected quantity 2 and usd 5000, got %v and %v", event.Quantity, event.UsdAmount)
		}
		if event.TokenAddress != "0xaaa" {
			t.Errorf("Expected token address 0xaaa, got %q", event.TokenAddress)
		}
	})

	t.Run("drops unknown trade type", func(t *testing.T) {
		raw := valid
		raw.Type = "approve"
		if _, ok := Normalize("ethereum", raw); ok {
			t.Error("Expected unknown trade type to be dropped")
		}
	})

	t.Run("accepts trade type case-insensitively", func(t *testing.T) {
		raw := valid
		raw.Type = "BUY"
		if _, ok := Normalize("ethereum", raw); !ok {
			t.Error("Expected uppercase trade type to be accepted")
		}
	})

	t.Run("drops zero quantity", func(t *testing.T) {
		raw := valid
		raw.Bought.Amount = 0
		if _, ok := Normalize("ethereum", raw); ok {
			t.Error("Expected zero quantity to be dropped")
		}
	})

	t.Run("drops negative usd amount", func(t *testing.T) {
		raw := valid
		raw.Bought.UsdAmount = -100
		if _, ok := Normalize("ethereum", raw); ok {
			t.Error("Expected negative usd amount to be dropped")
		}
	})

	t.Run("sell reads the sold side", func(t *testing.T) {
		raw := model.RawSwapRecord{
			Timestamp: "2024-03-02T10:00:00Z",
			Type:      "sell",
			Pair:      "ETH/USDC",
			Bought:    model.SwapSide{Amount: 5000, UsdAmount: 5000, Address: "0xusdc"},
			Sold:      model.SwapSide{Amount: 2, UsdAmount: 5000, Address: "0xeth"},
		}
		event, ok := Normalize("ethereum", raw)
		if !ok {
			t.Fatal("Expected sell record to normalize")
		}
		if event.Quantity != 2 {
			t.Errorf("Expected quantity from sold side (2), got %v", event.Quantity)
		}
		if event.TokenAddress != "0xeth" {
			t.Errorf("Expected address from sold side, got %q", event.TokenAddress)
		}
	})
}

// TestNormalize_CoercesStringAmounts verifies that provider payloads with
// stringified numbers still normalize, and unparseable amounts drop the
// record instead of failing the page decode.
func TestNormalize_CoercesStringAmounts(t *testing.T) {
	payload := `{
		"timestamp": "2024-03-01T10:00:00Z",
		"type": "buy",
		"pair": "WETH/USDC",
		"bought": {"amount": "1.5", "usdAmount": 3000, "address": "0xaaa"}
	}`

	var raw model.RawSwapRecord
	if err := json.Unmarshal([]byte(payload), &raw); err != nil {
		t.Fatalf("Failed to decode payload: %v", err)
	}

	event, ok := Normalize("ethereum", raw)
	if !ok {
		t.Fatal("Expected record with string amount to normalize")
	}
	if event.Quantity != 1.5 {
		t.Errorf("Expected quantity 1.5, got %v", event.Quantity)
	}

	t.Run("unparseable amount drops the record only", func(t *testing.T) {
		bad := `{
			"timestamp": "2024-03-01T10:00:00Z",
			"type": "buy",
			"pair": "WETH/USDC",
			"bought": {"amount": "n/a", "usdAmount": 3000}
		}`
		var rec model.RawSwapRecord
		if err := json.Unmarshal([]byte(bad), &rec); err != nil {
			t.Fatalf("Decode should tolerate bad amounts, got: %v", err)
		}
		if _, ok := Normalize("ethereum", rec); ok {
			t.Error("Expected record with unparseable amount to be dropped")
		}
	})
}

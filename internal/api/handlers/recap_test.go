package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stepaks675/sproutcard/internal/model"
	"github.com/stepaks675/sproutcard/internal/service"
	"github.com/stepaks675/sproutcard/internal/testutil"
)

func setupRecapHandler(t *testing.T, mock *testutil.MockProvider) (*RecapHandler, *service.RecapService) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	rs := testutil.NewTestRecapService(t, db, mock, []string{"ethereum"})
	return NewRecapHandler(rs), rs
}

func TestRecapHandler_CreateRecap(t *testing.T) {
	t.Run("computes and stores a recap for a valid wallet", func(t *testing.T) {
		mock := testutil.NewMockProvider().
			WithSwaps("ethereum", []model.RawSwapRecord{
				{
					Timestamp: "2024-03-01T10:00:00Z",
					Type:      "buy",
					Pair:      "TOK/USDC",
					Bought:    model.SwapSide{Amount: 10, UsdAmount: 1000, Address: "0xtok"},
				},
			}).
			WithPrices("ethereum", map[string]float64{"0xtok": 150})

		handler, _ := setupRecapHandler(t, mock)

		payload, _ := json.Marshal(CreateRecapRequest{Wallet: testutil.TestWalletAddress})
		req := httptest.NewRequest(http.MethodPost, "/api/recap", bytes.NewReader(payload))
		w := httptest.NewRecorder()

		handler.CreateRecap(w, req)

		if w.Code != http.StatusCreated {
			t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
		}

		var response RecapResponse
		if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}

		if response.ID == "" {
			t.Error("Expected a generated recap ID")
		}
		if response.Wallet != testutil.TestWalletAddress {
			t.Errorf("Expected wallet echoed back, got '%s'", response.Wallet)
		}
		if response.Result.HoldingsValueUsd != 1500 {
			t.Errorf("Expected holdings value 1500, got %v", response.Result.HoldingsValueUsd)
		}
		if response.Result.Pnl != 500 {
			t.Errorf("Expected pnl 500, got %v", response.Result.Pnl)
		}
	})

	t.Run("rejects a malformed wallet address", func(t *testing.T) {
		handler, _ := setupRecapHandler(t, testutil.NewMockProvider())

		body := strings.NewReader(`{"wallet": "not-an-address"}`)
		req := httptest.NewRequest(http.MethodPost, "/api/recap", body)
		w := httptest.NewRecorder()

		handler.CreateRecap(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("rejects a malformed body", func(t *testing.T) {
		handler, _ := setupRecapHandler(t, testutil.NewMockProvider())

		body := strings.NewReader(`{"wallet": `)
		req := httptest.NewRequest(http.MethodPost, "/api/recap", body)
		w := httptest.NewRecorder()

		handler.CreateRecap(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d: %s", w.Code, w.Body.String())
		}
	})
}

func TestRecapHandler_GetRecap(t *testing.T) {
	t.Run("serves a previously stored recap", func(t *testing.T) {
		mock := testutil.NewMockProvider().
			WithSwaps("ethereum", []model.RawSwapRecord{
				{
					Timestamp: "2024-03-01T10:00:00Z",
					Type:      "buy",
					Pair:      "TOK/USDC",
					Bought:    model.SwapSide{Amount: 4, UsdAmount: 400, Address: "0xtok"},
				},
			}).
			WithPrices("ethereum", map[string]float64{"0xtok": 100})

		handler, rs := setupRecapHandler(t, mock)

		stored, err := rs.BuildRecap(context.Background(), testutil.TestWalletAddress)
		if err != nil {
			t.Fatalf("Failed to build recap: %v", err)
		}

		req := testutil.NewRequestWithURLParams(
			http.MethodGet,
			"/api/recap/"+stored.ID,
			map[string]string{"recapId": stored.ID},
		)
		w := httptest.NewRecorder()

		handler.GetRecap(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var response RecapResponse
		if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}

		if response.ID != stored.ID {
			t.Errorf("Expected ID '%s', got '%s'", stored.ID, response.ID)
		}
		if response.Result.HoldingsValueUsd != stored.Result.HoldingsValueUsd {
			t.Errorf("Expected holdings value %v, got %v",
				stored.Result.HoldingsValueUsd, response.Result.HoldingsValueUsd)
		}
	})

	t.Run("returns 404 for an unknown recap ID", func(t *testing.T) {
		handler, _ := setupRecapHandler(t, testutil.NewMockProvider())

		unknownID := "5b0c3a52-8e0e-4b0a-9a5a-57c0a19de0af"
		req := testutil.NewRequestWithURLParams(
			http.MethodGet,
			"/api/recap/"+unknownID,
			map[string]string{"recapId": unknownID},
		)
		w := httptest.NewRecorder()

		handler.GetRecap(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("Expected 404, got %d: %s", w.Code, w.Body.String())
		}
	})
}

package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stepaks675/sproutcard/internal/testutil"
)

func TestSystemHandler_Health(t *testing.T) {
	setupHandler := func(t *testing.T) (*SystemHandler, *sql.DB) {
		t.Helper()
		db := testutil.SetupTestDB(t)
		ss := testutil.NewTestSystemService(t, db, testutil.NewMockProvider())
		return NewSystemHandler(ss), db
	}

	t.Run("returns healthy status when database is connected", func(t *testing.T) {
		handler, _ := setupHandler(t)

		req := httptest.NewRequest(http.MethodGet, "/api/system/health", nil)
		w := httptest.NewRecorder()

		handler.Health(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var response HealthResponse
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&response)

		if response.Status != "healthy" {
			t.Errorf("Expected status 'healthy', got '%s'", response.Status)
		}

		if response.Database != "connected" {
			t.Errorf("Expected database 'connected', got '%s'", response.Database)
		}

		if response.Error != "" {
			t.Errorf("Expected no error, got '%s'", response.Error)
		}
	})

	t.Run("returns 503 when database is disconnected", func(t *testing.T) {
		handler, db := setupHandler(t)

		// Close the database connection to simulate failure
		db.Close()

		req := httptest.NewRequest(http.MethodGet, "/api/system/health", nil)
		w := httptest.NewRecorder()

		handler.Health(w, req)

		if w.Code != http.StatusServiceUnavailable {
			t.Errorf("Expected 503, got %d: %s", w.Code, w.Body.String())
		}
	})
}

func TestSystemHandler_Version(t *testing.T) {
	t.Run("returns version information successfully", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		ss := testutil.NewTestSystemService(t, db, testutil.NewMockProvider())
		handler := NewSystemHandler(ss)

		req := httptest.NewRequest(http.MethodGet, "/api/system/version", nil)
		w := httptest.NewRecorder()

		handler.Version(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var response VersionResponse
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&response)

		if response.AppVersion == "" {
			t.Error("Expected app_version to be populated")
		}
	})
}

func TestSystemHandler_SetProviderKey(t *testing.T) {
	setupHandler := func(t *testing.T) (*SystemHandler, *testutil.MockProvider) {
		t.Helper()
		db := testutil.SetupTestDB(t)
		mock := testutil.NewMockProvider()
		ss := testutil.NewTestSystemService(t, db, mock)
		return NewSystemHandler(ss), mock
	}

	t.Run("stores the key and rotates the running client", func(t *testing.T) {
		handler, mock := setupHandler(t)

		body := strings.NewReader(`{"apiKey": "sk-new-key"}`)
		req := httptest.NewRequest(http.MethodPut, "/api/system/provider-key", body)
		w := httptest.NewRecorder()

		handler.SetProviderKey(w, req)

		if w.Code != http.StatusNoContent {
			t.Errorf("Expected 204, got %d: %s", w.Code, w.Body.String())
		}

		if mock.APIKey != "sk-new-key" {
			t.Errorf("Expected provider client rotated to 'sk-new-key', got '%s'", mock.APIKey)
		}
	})

	t.Run("rejects an empty key", func(t *testing.T) {
		handler, _ := setupHandler(t)

		body := strings.NewReader(`{"apiKey": ""}`)
		req := httptest.NewRequest(http.MethodPut, "/api/system/provider-key", body)
		w := httptest.NewRecorder()

		handler.SetProviderKey(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("rejects a malformed body", func(t *testing.T) {
		handler, _ := setupHandler(t)

		body := strings.NewReader(`{"apiKey": `)
		req := httptest.NewRequest(http.MethodPut, "/api/system/provider-key", body)
		w := httptest.NewRecorder()

		handler.SetProviderKey(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d: %s", w.Code, w.Body.String())
		}
	})
}

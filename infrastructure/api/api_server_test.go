package api_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/helixml/subway"
	"github.com/helixml/subway/infrastructure/api"
)

func newTestClient(t *testing.T) *subway.Client {
	t.Helper()
	tmpDir := t.TempDir()
	client, err := subway.New(
		subway.WithSQLite(filepath.Join(tmpDir, "test.db")),
		subway.WithDataDir(tmpDir),
	)
	if err != nil {
		t.Fatalf("create client: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func serve(handler http.Handler, method, path, body, key string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if key != "" {
		req.Header.Set("X-API-KEY", key)
	}
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w
}

func TestAPIServer_ReadEndpointsOpen_WriteEndpointsProtected(t *testing.T) {
	client := newTestClient(t)
	handler := api.NewAPIServer(client, []string{"test-secret-key"}).Handler()

	station := `{"data":{"type":"station","attributes":{"name":"Gangnam"}}}`

	t.Run("GET /api/v1/stations returns 200 without API key", func(t *testing.T) {
		if w := serve(handler, http.MethodGet, "/api/v1/stations", "", ""); w.Code != http.StatusOK {
			t.Errorf("status = %d, want %d", w.Code, http.StatusOK)
		}
	})

	t.Run("GET /api/v1/lines returns 200 without API key", func(t *testing.T) {
		if w := serve(handler, http.MethodGet, "/api/v1/lines", "", ""); w.Code != http.StatusOK {
			t.Errorf("status = %d, want %d", w.Code, http.StatusOK)
		}
	})

	t.Run("POST /api/v1/stations without key returns 401", func(t *testing.T) {
		w := serve(handler, http.MethodPost, "/api/v1/stations", station, "")
		if w.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want %d; body: %s", w.Code, http.StatusUnauthorized, w.Body.String())
		}
	})

	t.Run("POST /api/v1/stations with valid key returns 201", func(t *testing.T) {
		w := serve(handler, http.MethodPost, "/api/v1/stations", station, "test-secret-key")
		if w.Code != http.StatusCreated {
			t.Errorf("status = %d, want %d; body: %s", w.Code, http.StatusCreated, w.Body.String())
		}
	})

	t.Run("DELETE /api/v1/lines/1/sections without key returns 401", func(t *testing.T) {
		w := serve(handler, http.MethodDelete, "/api/v1/lines/1/sections?station_id=1", "", "")
		if w.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want %d", w.Code, http.StatusUnauthorized)
		}
	})
}

func TestAPIServer_Health(t *testing.T) {
	client := newTestClient(t)
	handler := api.NewAPIServer(client, nil, api.WithVersion("9.9.9")).Handler()

	for _, path := range []string{"/health", "/healthz"} {
		w := serve(handler, http.MethodGet, path, "", "")
		if w.Code != http.StatusOK {
			t.Fatalf("%s: status = %d, want %d", path, w.Code, http.StatusOK)
		}
		var body struct {
			Status  string `json:"status"`
			Version string `json:"version"`
		}
		if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if body.Status != "healthy" || body.Version != "9.9.9" {
			t.Errorf("%s: body = %+v", path, body)
		}
	}

	if err := client.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if w := serve(handler, http.MethodGet, "/health", "", ""); w.Code != http.StatusServiceUnavailable {
		t.Errorf("closed client: status = %d, want %d", w.Code, http.StatusServiceUnavailable)
	}
}

func TestAPIServer_CorrelationHeader(t *testing.T) {
	client := newTestClient(t)
	handler := api.NewAPIServer(client, nil).Handler()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/lines/999", nil)
	req.Header.Set("X-Correlation-ID", "trace-1")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", w.Code, http.StatusNotFound)
	}
	if got := w.Header().Get("X-Correlation-ID"); got != "trace-1" {
		t.Errorf("X-Correlation-ID = %q, want trace-1", got)
	}
}

func TestAPIServer_CORS(t *testing.T) {
	client := newTestClient(t)
	handler := api.NewAPIServer(client, nil, api.WithCORSOrigins([]string{"https://map.example.com"})).Handler()

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/lines", nil)
	req.Header.Set("Origin", "https://map.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "https://map.example.com" {
		t.Errorf("Access-Control-Allow-Origin = %q", got)
	}
}

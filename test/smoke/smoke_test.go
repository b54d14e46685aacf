// Package smoke provides smoke tests for the subway API.
// Expects a running subway server at rootURL; skipped when none answers.
package smoke

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"testing"
	"time"
)

const (
	defaultRootURL = "http://127.0.0.1:8080"
	contentType    = "application/vnd.api+json"
)

var (
	rootURL = envOr("SMOKE_ROOT_URL", defaultRootURL)
	baseURL = rootURL + "/api/v1"
	apiKey  = os.Getenv("SMOKE_API_KEY")
	client  = &http.Client{Timeout: 10 * time.Second}
)

type resource struct {
	Type          string                     `json:"type"`
	ID            string                     `json:"id"`
	Attributes    map[string]any             `json:"attributes"`
	Relationships map[string]json.RawMessage `json:"relationships"`
}

type document struct {
	Data     json.RawMessage `json:"data"`
	Included []resource      `json:"included"`
	Meta     map[string]any  `json:"meta"`
}

type errorDocument struct {
	Errors []struct {
		Status string `json:"status"`
		Detail string `json:"detail"`
	} `json:"errors"`
}

func TestSmoke(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping smoke test in short mode")
	}
	verifyHealth(t)

	suffix := strconv.FormatInt(time.Now().UnixNano(), 36)
	gangnam := createStation(t, "Gangnam "+suffix)
	yeoksam := createStation(t, "Yeoksam "+suffix)
	seolleung := createStation(t, "Seolleung "+suffix)
	samseong := createStation(t, "Samseong "+suffix)
	jamsil := createStation(t, "Jamsil "+suffix)

	lineID := createLine(t, "Line 2 "+suffix, "green", gangnam, seolleung, 10)
	t.Cleanup(func() { deleteLine(t, lineID) })

	t.Run("line_not_found", func(t *testing.T) {
		rsp := do(t, http.MethodGet, baseURL+"/lines/99999999", nil)
		expectStatus(t, rsp, http.StatusNotFound)
	})

	t.Run("add_section_splits_existing", func(t *testing.T) {
		rsp := do(t, http.MethodPost, fmt.Sprintf("%s/lines/%s/sections", baseURL, lineID), sectionBody(gangnam, yeoksam, 4))
		expectStatus(t, rsp, http.StatusCreated)
		assertOrder(t, lineID, gangnam, yeoksam, seolleung)
	})

	t.Run("add_section_extends_terminus", func(t *testing.T) {
		rsp := do(t, http.MethodPost, fmt.Sprintf("%s/lines/%s/sections", baseURL, lineID), sectionBody(seolleung, samseong, 5))
		expectStatus(t, rsp, http.StatusCreated)
		assertOrder(t, lineID, gangnam, yeoksam, seolleung, samseong)
	})

	t.Run("add_section_rejects_unknown_station", func(t *testing.T) {
		rsp := do(t, http.MethodPost, fmt.Sprintf("%s/lines/%s/sections", baseURL, lineID), sectionBody(gangnam, "99999999", 2))
		expectStatus(t, rsp, http.StatusNotFound)
	})

	t.Run("add_section_rejects_invalid_distance", func(t *testing.T) {
		rsp := do(t, http.MethodPost, fmt.Sprintf("%s/lines/%s/sections", baseURL, lineID), sectionBody(gangnam, jamsil, 4))
		expectStatus(t, rsp, http.StatusBadRequest)
	})

	t.Run("add_section_rejects_disconnected", func(t *testing.T) {
		other := createStation(t, "Jamsilnaru "+suffix)
		rsp := do(t, http.MethodPost, fmt.Sprintf("%s/lines/%s/sections", baseURL, lineID), sectionBody(jamsil, other, 2))
		expectStatus(t, rsp, http.StatusBadRequest)
	})

	t.Run("add_section_rejects_duplicate", func(t *testing.T) {
		rsp := do(t, http.MethodPost, fmt.Sprintf("%s/lines/%s/sections", baseURL, lineID), sectionBody(gangnam, samseong, 3))
		expectStatus(t, rsp, http.StatusBadRequest)
	})

	t.Run("remove_interior_station", func(t *testing.T) {
		rsp := do(t, http.MethodDelete, fmt.Sprintf("%s/lines/%s/sections?station_id=%s", baseURL, lineID, yeoksam), nil)
		expectStatus(t, rsp, http.StatusOK)
		assertOrder(t, lineID, gangnam, seolleung, samseong)
	})

	t.Run("remove_terminus_station", func(t *testing.T) {
		rsp := do(t, http.MethodDelete, fmt.Sprintf("%s/lines/%s/sections?station_id=%s", baseURL, lineID, samseong), nil)
		expectStatus(t, rsp, http.StatusOK)
		assertOrder(t, lineID, gangnam, seolleung)
	})

	t.Run("remove_rejects_single_section", func(t *testing.T) {
		rsp := do(t, http.MethodDelete, fmt.Sprintf("%s/lines/%s/sections?station_id=%s", baseURL, lineID, gangnam), nil)
		expectStatus(t, rsp, http.StatusBadRequest)
	})
}

func verifyHealth(t *testing.T) {
	t.Helper()
	rsp, err := client.Get(rootURL + "/health")
	if err != nil {
		t.Skipf("no subway server at %s: %v", rootURL, err)
	}
	defer func() { _ = rsp.Body.Close() }()
	if rsp.StatusCode != http.StatusOK {
		t.Fatalf("expected healthy server, got %d", rsp.StatusCode)
	}
}

func createStation(t *testing.T, name string) string {
	t.Helper()
	body := map[string]any{"data": map[string]any{
		"type":       "station",
		"attributes": map[string]any{"name": name},
	}}
	rsp := do(t, http.MethodPost, baseURL+"/stations", body)
	expectStatus(t, rsp, http.StatusCreated)
	var r resource
	decodeData(t, rsp, &r)
	if r.ID == "" {
		t.Fatalf("expected station ID for %q", name)
	}
	return r.ID
}

func createLine(t *testing.T, name, color, up, down string, length int) string {
	t.Helper()
	body := map[string]any{"data": map[string]any{
		"type": "line",
		"attributes": map[string]any{
			"name":            name,
			"color":           color,
			"up_station_id":   mustID(t, up),
			"down_station_id": mustID(t, down),
			"length":          length,
		},
	}}
	rsp := do(t, http.MethodPost, baseURL+"/lines", body)
	expectStatus(t, rsp, http.StatusCreated)
	var r resource
	decodeData(t, rsp, &r)
	return r.ID
}

func deleteLine(t *testing.T, id string) {
	rsp := do(t, http.MethodDelete, baseURL+"/lines/"+id, nil)
	if rsp.StatusCode != http.StatusNoContent {
		t.Logf("cleanup: delete line %s returned %d", id, rsp.StatusCode)
	}
}

func sectionBody(up, down string, length int) map[string]any {
	upID, _ := strconv.ParseInt(up, 10, 64)
	downID, _ := strconv.ParseInt(down, 10, 64)
	return map[string]any{"data": map[string]any{
		"type": "section",
		"attributes": map[string]any{
			"up_station_id":   upID,
			"down_station_id": downID,
			"length":          length,
		},
	}}
}

func assertOrder(t *testing.T, lineID string, want ...string) {
	t.Helper()
	rsp := do(t, http.MethodGet, fmt.Sprintf("%s/lines/%s/stations", baseURL, lineID), nil)
	expectStatus(t, rsp, http.StatusOK)
	var stations []resource
	decodeData(t, rsp, &stations)
	if len(stations) != len(want) {
		t.Fatalf("expected %d stations, got %d", len(want), len(stations))
	}
	for i, s := range stations {
		if s.ID != want[i] {
			t.Fatalf("station %d: expected %s, got %s", i, want[i], s.ID)
		}
	}
}

func mustID(t *testing.T, s string) int64 {
	t.Helper()
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		t.Fatalf("parse id %q: %v", s, err)
	}
	return id
}

type response struct {
	StatusCode int
	Body       []byte
}

func do(t *testing.T, method, url string, body any) response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req, err := http.NewRequest(method, url, &buf)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Header.Set("Content-Type", contentType)
	if apiKey != "" {
		req.Header.Set("X-API-KEY", apiKey)
	}
	rsp, err := client.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	defer func() { _ = rsp.Body.Close() }()
	var out bytes.Buffer
	if _, err := out.ReadFrom(rsp.Body); err != nil {
		t.Fatalf("read body: %v", err)
	}
	return response{StatusCode: rsp.StatusCode, Body: out.Bytes()}
}

func expectStatus(t *testing.T, rsp response, want int) {
	t.Helper()
	if rsp.StatusCode == want {
		return
	}
	var errs errorDocument
	_ = json.Unmarshal(rsp.Body, &errs)
	if len(errs.Errors) > 0 {
		t.Fatalf("expected %d, got %d: %s", want, rsp.StatusCode, errs.Errors[0].Detail)
	}
	t.Fatalf("expected %d, got %d: %s", want, rsp.StatusCode, string(rsp.Body))
}

func decodeData(t *testing.T, rsp response, v any) {
	t.Helper()
	var doc document
	if err := json.Unmarshal(rsp.Body, &doc); err != nil {
		t.Fatalf("decode document: %v", err)
	}
	if err := json.Unmarshal(doc.Data, v); err != nil {
		t.Fatalf("decode data: %v", err)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

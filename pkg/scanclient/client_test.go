package scanclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newGateway(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client, err := New(Options{BaseURL: srv.URL, APIKey: "test-key"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return client
}

func TestNewRequiresBaseURL(t *testing.T) {
	if _, err := New(Options{}); err == nil {
		t.Fatal("expected error for missing base URL")
	}
}

func TestHealthOK(t *testing.T) {
	client := newGateway(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/health" || r.Method != http.MethodGet {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("Authorization = %q", got)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"ok": true})
	})
	if err := client.Health(context.Background()); err != nil {
		t.Fatalf("Health: %v", err)
	}
}

func TestScanSendsIDAndDecodesResult(t *testing.T) {
	client := newGateway(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/notion/scan" || r.Method != http.MethodPost {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["id"] != "12345678" {
			t.Errorf("id = %v", body["id"])
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"ok": true, "scannedId": "12345678", "pageId": "p1",
			"firstName": "Ada", "lastName": "Lovelace", "fullName": "Ada Lovelace",
		})
	})

	res, err := client.Scan(context.Background(), "12345678")
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if !res.OK || res.PageID != "p1" || res.FullName != "Ada Lovelace" {
		t.Errorf("result = %+v", res)
	}
}

func TestScanAmbiguousConflict(t *testing.T) {
	client := newGateway(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"error": "ambiguous match",
			"matches": []map[string]any{
				{"id": "p1", "title": "12345678"},
				{"id": "p2", "title": "1234 5678"},
			},
		})
	})

	_, err := client.Scan(context.Background(), "12345678")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error = %v, want *APIError", err)
	}
	if apiErr.Status != http.StatusConflict || apiErr.Message != "ambiguous match" {
		t.Errorf("apiErr = %+v", apiErr)
	}
	if len(apiErr.Matches) != 2 || apiErr.Matches[1].Title != "1234 5678" {
		t.Errorf("matches = %+v", apiErr.Matches)
	}
}

func TestScanNotFound(t *testing.T) {
	client := newGateway(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]any{"error": "no page matches scanned id"})
	})

	_, err := client.Scan(context.Background(), "12345678")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error = %v, want *APIError", err)
	}
	if apiErr.Status != http.StatusNotFound {
		t.Errorf("status = %d", apiErr.Status)
	}
}

func TestSearch(t *testing.T) {
	client := newGateway(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["query"] != "Ada" || body["page_size"] != float64(5) {
			t.Errorf("body = %v", body)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"results": []map[string]any{{"id": "p1", "title": "Ada"}},
		})
	})

	results, err := client.Search(context.Background(), "Ada", 5)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 1 || results[0].ID != "p1" {
		t.Errorf("results = %+v", results)
	}
}

func TestPatchProperty(t *testing.T) {
	client := newGateway(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPatch || r.URL.Path != "/api/notion/pages/p1/property" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["propertyName"] != "Score" || body["value"] != "42" {
			t.Errorf("body = %v", body)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"ok": true, "pageId": "p1", "propertyName": "Score", "type": "number",
		})
	})

	res, err := client.PatchProperty(context.Background(), "p1", "Score", "42")
	if err != nil {
		t.Fatalf("PatchProperty: %v", err)
	}
	if res.Type != "number" {
		t.Errorf("result = %+v", res)
	}
}

func TestNonJSONErrorBody(t *testing.T) {
	client := newGateway(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream exploded"))
	})

	err := client.Health(context.Background())
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error = %v, want *APIError", err)
	}
	if apiErr.Status != http.StatusBadGateway || apiErr.Message != "upstream exploded" {
		t.Errorf("apiErr = %+v", apiErr)
	}
}

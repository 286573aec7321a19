package notion

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"go.uber.org/zap"

	"github.com/attendo-cloud/scangate/internal/domain"
	"github.com/attendo-cloud/scangate/internal/domain/property"
	"github.com/attendo-cloud/scangate/internal/metrics"
)

func TestMain(m *testing.M) {
	metrics.RegisterUpstreamMetrics()
	os.Exit(m.Run())
}

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(Config{
		Token:   "test-token",
		BaseURL: server.URL,
		Logger:  zap.NewNop(),
	})
}

func pageJSON(id, title string) map[string]any {
	return map[string]any{
		"object": "page",
		"id":     id,
		"url":    "https://notion.so/" + id,
		"properties": map[string]any{
			"ID": map[string]any{
				"id":   "title",
				"type": "title",
				"title": []map[string]any{
					{"plain_text": title},
				},
			},
		},
	}
}

func TestSearch(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/search" || r.Method != http.MethodPost {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer test-token" {
			t.Errorf("unexpected auth header: %s", r.Header.Get("Authorization"))
		}
		if r.Header.Get("Notion-Version") == "" {
			t.Error("missing Notion-Version header")
		}

		var req map[string]any
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req["query"] != "12345678" {
			t.Errorf("query = %v", req["query"])
		}
		if req["page_size"] != float64(20) {
			t.Errorf("page_size = %v", req["page_size"])
		}

		_ = json.NewEncoder(w).Encode(map[string]any{
			"results": []any{
				pageJSON("p1", "12345678"),
				map[string]any{"object": "database", "id": "db1"},
			},
		})
	}))

	results, err := client.Search(context.Background(), "12345678", 20)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("results = %d, want 1 (non-page objects filtered)", len(results))
	}
	if results[0].ID != "p1" || results[0].Title != "12345678" {
		t.Errorf("result = %+v", results[0])
	}
}

func TestRetrievePage(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/pages/p1" || r.Method != http.MethodGet {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode(pageJSON("p1", "12345678"))
	}))

	page, err := client.RetrievePage(context.Background(), "p1")
	if err != nil {
		t.Fatalf("RetrievePage failed: %v", err)
	}
	if page.ID != "p1" || page.Title() != "12345678" {
		t.Errorf("page = %+v", page)
	}
}

func TestUpdateProperties(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/pages/p1" || r.Method != http.MethodPatch {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var req struct {
			Properties map[string]map[string]any `json:"properties"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req.Properties["2025-WD"]["checkbox"] != true {
			t.Errorf("properties = %v", req.Properties)
		}
		_ = json.NewEncoder(w).Encode(pageJSON("p1", "12345678"))
	}))

	_, err := client.UpdateProperties(context.Background(), "p1",
		map[string]any{"2025-WD": map[string]any{"checkbox": true}})
	if err != nil {
		t.Fatalf("UpdateProperties failed: %v", err)
	}
}

func TestUpstreamErrorParsing(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"object":  "error",
			"status":  404,
			"code":    "object_not_found",
			"message": "Could not find page",
		})
	}))

	_, err := client.RetrievePage(context.Background(), "missing")
	if !errors.Is(err, domain.ErrUpstream) {
		t.Fatalf("expected ErrUpstream, got %v", err)
	}

	var upErr *domain.UpstreamError
	if !errors.As(err, &upErr) {
		t.Fatal("expected UpstreamError")
	}
	if upErr.Status != 404 || upErr.Code != "object_not_found" {
		t.Errorf("error = %+v", upErr)
	}
	if upErr.Message != "Could not find page" {
		t.Errorf("message = %q", upErr.Message)
	}
}

func TestRetrieveProperty_SimpleItem(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/pages/p1/properties/num" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"object": "property_item",
			"type":   "number",
			"number": 42,
		})
	}))

	val, err := client.RetrieveProperty(context.Background(), "p1", "num")
	if err != nil {
		t.Fatalf("RetrieveProperty failed: %v", err)
	}
	if val.Type != property.TypeNumber || val.PlainText() != "42" {
		t.Errorf("value = %+v", val)
	}
}

func TestRetrieveProperty_PaginatedRuns(t *testing.T) {
	calls := 0
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		switch r.URL.Query().Get("start_cursor") {
		case "":
			_ = json.NewEncoder(w).Encode(map[string]any{
				"object": "list",
				"results": []any{
					map[string]any{
						"object":    "property_item",
						"type":      "rich_text",
						"rich_text": map[string]any{"plain_text": "DOC-"},
					},
				},
				"has_more":    true,
				"next_cursor": "c2",
			})
		case "c2":
			_ = json.NewEncoder(w).Encode(map[string]any{
				"object": "list",
				"results": []any{
					map[string]any{
						"object":    "property_item",
						"type":      "rich_text",
						"rich_text": map[string]any{"plain_text": "99"},
					},
				},
				"has_more": false,
			})
		default:
			t.Errorf("unexpected cursor: %s", r.URL.Query().Get("start_cursor"))
		}
	}))

	val, err := client.RetrieveProperty(context.Background(), "p1", "doc")
	if err != nil {
		t.Fatalf("RetrieveProperty failed: %v", err)
	}
	if calls != 2 {
		t.Errorf("calls = %d, want 2 (cursor followed)", calls)
	}
	if val.PlainText() != "DOC-99" {
		t.Errorf("assembled value = %q, want DOC-99", val.PlainText())
	}
}

func TestRetrieveProperty_RollupArray(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"object": "list",
			"results": []any{
				map[string]any{
					"object":    "property_item",
					"type":      "rich_text",
					"rich_text": map[string]any{"plain_text": "Ada"},
				},
			},
			"has_more": false,
			"property_item": map[string]any{
				"type":   "rollup",
				"rollup": map[string]any{"type": "array"},
			},
		})
	}))

	val, err := client.RetrieveProperty(context.Background(), "p1", "roll")
	if err != nil {
		t.Fatalf("RetrieveProperty failed: %v", err)
	}
	if val.Type != property.TypeRollup {
		t.Fatalf("type = %s, want rollup", val.Type)
	}
	if val.PlainText() != "Ada" {
		t.Errorf("rollup text = %q, want Ada", val.PlainText())
	}
}

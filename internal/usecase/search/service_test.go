package search

import (
	"context"
	"errors"
	"testing"

	"github.com/attendo-cloud/scangate/internal/domain"
)

type mockGateway struct {
	results      []domain.PageSummary
	err          error
	lastQuery    string
	lastPageSize int
}

func (m *mockGateway) Search(_ context.Context, query string, pageSize int) ([]domain.PageSummary, error) {
	m.lastQuery = query
	m.lastPageSize = pageSize
	return m.results, m.err
}

func TestSearch_EmptyQuery(t *testing.T) {
	svc := New(&mockGateway{})
	if _, err := svc.Search(context.Background(), "   ", 10); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestSearch_PageSizeDefaults(t *testing.T) {
	gw := &mockGateway{}
	svc := New(gw)

	if _, err := svc.Search(context.Background(), "alice", 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gw.lastPageSize != 20 {
		t.Errorf("default page size = %d, want 20", gw.lastPageSize)
	}

	if _, err := svc.Search(context.Background(), "alice", 500); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gw.lastPageSize != 100 {
		t.Errorf("clamped page size = %d, want 100", gw.lastPageSize)
	}
}

func TestSearch_PassesResults(t *testing.T) {
	gw := &mockGateway{results: []domain.PageSummary{{ID: "1", Title: "alice"}}}
	svc := New(gw)

	results, err := svc.Search(context.Background(), "alice", 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 1 || results[0].ID != "1" {
		t.Errorf("results = %v", results)
	}
	if gw.lastQuery != "alice" {
		t.Errorf("query = %q", gw.lastQuery)
	}
}

func TestSearch_UpstreamError(t *testing.T) {
	gw := &mockGateway{err: &domain.UpstreamError{Status: 500, Message: "boom"}}
	svc := New(gw)

	if _, err := svc.Search(context.Background(), "alice", 10); !errors.Is(err, domain.ErrUpstream) {
		t.Fatalf("expected ErrUpstream, got %v", err)
	}
}

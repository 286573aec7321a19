// Package scan implements the scan-and-mark-attendance flow: resolve a
// scanned identifier to the unique page titled with it, set the attendance
// checkbox, and read the person's fields back from the fresh page.
package scan

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/attendo-cloud/scangate/internal/domain"
	"github.com/attendo-cloud/scangate/internal/domain/property"
	domscan "github.com/attendo-cloud/scangate/internal/domain/scan"
	"github.com/attendo-cloud/scangate/internal/metrics"
)

const defaultSearchCap = 20

// Service runs the scan flow against the Notion gateway.
type Service struct {
	gw             Gateway
	attendanceProp string
	searchCap      int
	logger         *zap.Logger
}

// Result is the scan response payload.
type Result struct {
	ScannedID string
	PageID    string
	Title     string
	FirstName string
	LastName  string
	FullName  string
	Doc       string
	// Properties carries the raw post-update property mapping when the
	// caller asked for debug output.
	Properties map[string]property.Value
}

// New creates a scan service. attendanceProp is the checkbox property name
// marked on a successful scan.
func New(gw Gateway, attendanceProp string, logger *zap.Logger) *Service {
	return &Service{
		gw:             gw,
		attendanceProp: attendanceProp,
		searchCap:      defaultSearchCap,
		logger:         logger,
	}
}

// WithSearchCap overrides the search result window. Duplicate titles beyond
// the window are invisible to the resolver; that is an accepted limitation of
// the flow, not something this service compensates for.
func (s *Service) WithSearchCap(limit int) *Service {
	if limit > 0 {
		s.searchCap = limit
	}
	return s
}

// Scan resolves the identifier, marks attendance, and extracts the person's
// fields from the re-retrieved page.
func (s *Service) Scan(ctx context.Context, id string) (Result, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Result{}, fmt.Errorf("%w: id is required", domain.ErrValidation)
	}

	match, err := s.resolve(ctx, id)
	if err != nil {
		return Result{}, err
	}

	payload, err := property.UpdatePayload(property.TypeCheckbox, true)
	if err != nil {
		return Result{}, fmt.Errorf("build attendance payload: %w", err)
	}
	// Unconditional: re-marking an already-present page is the same end state.
	if _, err := s.gw.UpdateProperties(ctx, match.ID, map[string]any{s.attendanceProp: payload}); err != nil {
		return Result{}, fmt.Errorf("mark attendance: %w", err)
	}

	// Re-retrieve instead of reusing the update response: formula and rollup
	// properties may not be recomputed in the update body yet.
	page, err := s.gw.RetrievePage(ctx, match.ID)
	if err != nil {
		return Result{}, fmt.Errorf("retrieve updated page: %w", err)
	}

	first, last := s.extractNames(ctx, page)
	res := Result{
		ScannedID:  id,
		PageID:     page.ID,
		Title:      page.Title(),
		FirstName:  first,
		LastName:   last,
		FullName:   composeFullName(first, last),
		Doc:        s.extract(ctx, page, domscan.DocumentKeys),
		Properties: page.Properties,
	}

	s.logger.Info("attendance marked",
		zap.String("scanned_id", id),
		zap.String("page_id", page.ID),
	)
	return res, nil
}

// resolve finds the unique page whose title equals the scanned id under
// whitespace-insensitive comparison. The search itself runs on the raw id;
// equality, not search ranking, decides the match.
func (s *Service) resolve(ctx context.Context, id string) (domain.PageSummary, error) {
	results, err := s.gw.Search(ctx, id, s.searchCap)
	if err != nil {
		return domain.PageSummary{}, fmt.Errorf("search scanned id: %w", err)
	}

	var matches []domain.PageSummary
	for _, r := range results {
		if domscan.TitleEquals(r.Title, id) {
			matches = append(matches, r)
		}
	}

	switch len(matches) {
	case 0:
		metrics.ScanOutcomesTotal.WithLabelValues("no_match").Inc()
		return domain.PageSummary{}, &domain.NoMatchError{ScannedID: id, Seen: len(results)}
	case 1:
		metrics.ScanOutcomesTotal.WithLabelValues("match").Inc()
		return matches[0], nil
	default:
		metrics.ScanOutcomesTotal.WithLabelValues("ambiguous").Inc()
		return domain.PageSummary{}, &domain.AmbiguousMatchError{ScannedID: id, Matches: matches}
	}
}

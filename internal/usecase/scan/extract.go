package scan

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/attendo-cloud/scangate/internal/domain"
	domscan "github.com/attendo-cloud/scangate/internal/domain/scan"
)

// extract resolves a logical field against the page's literal property names
// and renders it as plain text. An empty inline value triggers one on-demand
// property fetch, which covers rollups the page body truncated. Absence is
// valid: the result is "" and never an error.
func (s *Service) extract(ctx context.Context, page domain.Page, candidates domscan.CandidateKeys) string {
	keys := make([]string, 0, len(page.Properties))
	for k := range page.Properties {
		keys = append(keys, k)
	}
	literal, ok := candidates.Resolve(keys)
	if !ok {
		return ""
	}

	val := page.Properties[literal]
	if text := val.PlainText(); text != "" {
		return text
	}

	if val.ID == "" {
		return ""
	}
	fetched, err := s.gw.RetrieveProperty(ctx, page.ID, val.ID)
	if err != nil {
		// Best effort: the field stays empty rather than failing the scan.
		s.logger.Warn("property refetch failed",
			zap.String("page_id", page.ID),
			zap.String("property", literal),
			zap.Error(err),
		)
		return ""
	}
	return fetched.PlainText()
}

// extractNames pulls first and last name independently; when both come back
// empty, the combined full-name candidates are tried and split at the first
// whitespace run. The split is a documented heuristic, not a guarantee for
// multi-token surnames.
func (s *Service) extractNames(ctx context.Context, page domain.Page) (first, last string) {
	first = s.extract(ctx, page, domscan.FirstNameKeys)
	last = s.extract(ctx, page, domscan.LastNameKeys)
	if first != "" || last != "" {
		return first, last
	}

	full := s.extract(ctx, page, domscan.FullNameKeys)
	return domscan.SplitFullName(full)
}

func composeFullName(first, last string) string {
	return strings.TrimSpace(first + " " + last)
}

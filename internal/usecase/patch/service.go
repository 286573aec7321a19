// Package patch updates a single named property on a page, deriving the
// update payload shape from the property's declared type.
package patch

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/attendo-cloud/scangate/internal/domain"
	"github.com/attendo-cloud/scangate/internal/domain/property"
	domscan "github.com/attendo-cloud/scangate/internal/domain/scan"
)

// Service handles single-property updates.
type Service struct {
	gw     Gateway
	logger *zap.Logger
}

// Result reports what was patched.
type Result struct {
	PageID       string
	PropertyName string
	Type         property.Type
}

// New creates a patch service.
func New(gw Gateway, logger *zap.Logger) *Service {
	return &Service{gw: gw, logger: logger}
}

// Patch sets one property on a page. The property is located by literal name
// first, then by folded comparison (case/whitespace/punctuation-insensitive),
// and the payload shape follows its declared type.
func (s *Service) Patch(ctx context.Context, pageID, propertyName string, value any) (Result, error) {
	if strings.TrimSpace(pageID) == "" {
		return Result{}, fmt.Errorf("%w: pageId is required", domain.ErrValidation)
	}
	if strings.TrimSpace(propertyName) == "" {
		return Result{}, fmt.Errorf("%w: propertyName is required", domain.ErrValidation)
	}

	page, err := s.gw.RetrievePage(ctx, pageID)
	if err != nil {
		return Result{}, fmt.Errorf("retrieve page: %w", err)
	}

	literal, ok := resolvePropertyName(page, propertyName)
	if !ok {
		return Result{}, fmt.Errorf("%w: %q", domain.ErrUnknownProperty, propertyName)
	}
	val := page.Properties[literal]

	payload, err := property.UpdatePayload(val.Type, value)
	if err != nil {
		return Result{}, fmt.Errorf("build update payload for %q: %w", literal, err)
	}

	if _, err := s.gw.UpdateProperties(ctx, pageID, map[string]any{literal: payload}); err != nil {
		return Result{}, fmt.Errorf("update property: %w", err)
	}

	s.logger.Info("property patched",
		zap.String("page_id", pageID),
		zap.String("property", literal),
		zap.String("type", string(val.Type)),
	)
	return Result{PageID: pageID, PropertyName: literal, Type: val.Type}, nil
}

func resolvePropertyName(page domain.Page, name string) (string, bool) {
	if _, ok := page.Properties[name]; ok {
		return name, true
	}
	keys := make([]string, 0, len(page.Properties))
	for k := range page.Properties {
		keys = append(keys, k)
	}
	return domscan.CandidateKeys{name}.Resolve(keys)
}

// Package health reports service liveness.
package health

import (
	"context"

	"github.com/attendo-cloud/scangate/internal/version"
)

// Status is the health check payload.
type Status struct {
	OK      bool   `json:"ok"`
	Version string `json:"version,omitempty"`
}

// Service answers health checks. The gateway holds no state and no
// connections of its own, so liveness is unconditional; Notion reachability
// surfaces through the operations themselves.
type Service struct{}

// New creates a health service.
func New() *Service {
	return &Service{}
}

// Check reports liveness.
func (s *Service) Check(_ context.Context) Status {
	return Status{OK: true, Version: version.Version}
}

package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/gee/internal/core/domain"
	"github.com/custodia-labs/gee/internal/core/ports/driven"
	"github.com/custodia-labs/gee/internal/core/ports/driving"
)

// Ensure StatusService implements the interface.
var _ driving.StatusService = (*StatusService)(nil)

// StatusService reports GitHub API quota.
type StatusService struct {
	source driven.GitHubSource
}

// NewStatusService creates a status service.
func NewStatusService(source driven.GitHubSource) *StatusService {
	return &StatusService{source: source}
}

// RateLimits returns the current core and search quota. It is never cached.
func (s *StatusService) RateLimits(ctx context.Context) (*domain.RateLimitStatus, error) {
	status, err := s.source.RateLimits(ctx)
	if err != nil {
		return nil, fmt.Errorf("get rate limits: %w", err)
	}
	return status, nil
}

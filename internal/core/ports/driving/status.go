package driving

import (
	"context"

	"github.com/custodia-labs/gee/internal/core/domain"
)

// StatusService reports GitHub API quota.
type StatusService interface {
	// RateLimits returns the current core and search rate-limit windows.
	RateLimits(ctx context.Context) (*domain.RateLimitStatus, error)
}

package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/gee/internal/core/domain"
)

func TestStatusService_RateLimits(t *testing.T) {
	reset := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	source := newFakeSource()
	source.rateLimits = &domain.RateLimitStatus{
		Core:   domain.RateWindow{Remaining: 4990, Limit: 5000, Reset: reset},
		Search: domain.RateWindow{Remaining: 29, Limit: 30, Reset: reset},
	}

	status, err := NewStatusService(source).RateLimits(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 4990, status.Core.Remaining)
	assert.Equal(t, 30, status.Search.Limit)

	_, _ = NewStatusService(source).RateLimits(context.Background())
	assert.Equal(t, 2, source.callCount("rate_limit"))
}

func TestStatusService_RateLimitsError(t *testing.T) {
	source := newFakeSource()
	source.errs["rate_limit"] = errors.New("unauthorised")

	status, err := NewStatusService(source).RateLimits(context.Background())

	require.Error(t, err)
	assert.Nil(t, status)
	assert.Contains(t, err.Error(), "get rate limits")
}

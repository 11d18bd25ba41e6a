package services

import (
	"context"

	"github.com/custodia-labs/gee/internal/core/ports/driven"
	"github.com/custodia-labs/gee/internal/logger"
)

var cacheLog = logger.Scope("cache")

// Wrap returns the value cached under key, or calls fetch and caches its result.
// A nil cache always calls fetch. Cache failures are logged and treated as a
// miss; they never fail the wrapped operation. Fetch errors are not cached.
func Wrap[T any](
	ctx context.Context, cache driven.Cache, key string, fetch func(ctx context.Context) (T, error),
) (T, error) {
	if cache != nil {
		var cached T
		hit, err := cache.Get(ctx, key, &cached)
		switch {
		case err != nil:
			cacheLog.Warn("read %s: %v", key, err)
		case hit:
			cacheLog.Debug("hit %s", key)
			return cached, nil
		default:
			cacheLog.Debug("miss %s", key)
		}
	}

	value, err := fetch(ctx)
	if err != nil {
		var zero T
		return zero, err
	}

	if cache != nil {
		if err := cache.Set(ctx, key, value); err != nil {
			cacheLog.Warn("write %s: %v", key, err)
		}
	}
	return value, nil
}

package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/gee/internal/core/domain"
	"github.com/custodia-labs/gee/internal/logger"
)

var pageLog = logger.Scope("paginate")

// Collect pulls every page of a listing and concatenates the results.
//
// Pages are requested from 1 upwards at domain.DefaultPerPage items. The
// listing is exhausted as soon as a page holds fewer items than requested,
// so a final page of exactly DefaultPerPage items costs one extra, empty fetch.
func Collect[T any](
	ctx context.Context, fetch func(ctx context.Context, page domain.Page) ([]T, error),
) ([]T, error) {
	var all []T
	page := domain.FirstPage()

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		items, err := fetch(ctx, page)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", page.Number, err)
		}
		pageLog.Debug("page %d returned %d item(s)", page.Number, len(items))

		all = append(all, items...)
		if len(items) < page.PerPage {
			return all, nil
		}
		page = page.Next()
	}
}

package services

import (
	"context"
	"fmt"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/gee/internal/core/domain"
	"github.com/custodia-labs/gee/internal/core/ports/driven"
)

// UserAggregator discovers the users of a repository through every discovery step.
type UserAggregator struct {
	source    driven.GitHubSource
	cache     driven.Cache
	ownerMode domain.OwnerMode
}

// NewUserAggregator creates an aggregator. cache may be nil.
func NewUserAggregator(source driven.GitHubSource, cache driven.Cache, ownerMode domain.OwnerMode) *UserAggregator {
	if ownerMode == "" {
		ownerMode = domain.OwnerAsStep
	}
	return &UserAggregator{
		source:    source,
		cache:     cache,
		ownerMode: ownerMode,
	}
}

// Steps returns the discovery steps run for each repository, in declaration order.
func (a *UserAggregator) Steps() []domain.DiscoveryStep {
	steps := domain.AllDiscoverySteps()
	if a.ownerMode == domain.OwnerAppended {
		return steps[1:]
	}
	return steps
}

type stepResult struct {
	index   int
	handles []string
}

// Aggregate runs every discovery step concurrently and merges their handles
// into one deduplicated set.
//
// Only the calling goroutine touches the set. A finished step is merged once
// every step declared before it has merged, so yields are deterministic and
// the first declared step returning a handle gets the credit for it. onYield
// is called at each merge, from the calling goroutine. The first failing step
// cancels the others and fails the whole aggregation.
func (a *UserAggregator) Aggregate(
	ctx context.Context, repo domain.RepositoryRef, onYield func(domain.DiscoveryYield),
) (*domain.Discovery, error) {
	steps := a.Steps()

	g, gctx := errgroup.WithContext(ctx)
	completed := make(chan stepResult, len(steps))
	for i, step := range steps {
		g.Go(func() error {
			handles, err := a.runStep(gctx, repo, step)
			if err != nil {
				return fmt.Errorf("%s: %w", step.Label(), err)
			}
			completed <- stepResult{index: i, handles: handles}
			return nil
		})
	}

	waitErr := make(chan error, 1)
	go func() {
		waitErr <- g.Wait()
		close(completed)
	}()

	users := domain.NewUserSet()
	yields := make([]domain.DiscoveryYield, len(steps))
	pending := make([][]string, len(steps))
	done := make([]bool, len(steps))
	next := 0

	for result := range completed {
		pending[result.index] = result.handles
		done[result.index] = true

		for next < len(steps) && done[next] {
			yields[next] = domain.DiscoveryYield{
				Step:       steps[next],
				TotalFound: len(pending[next]),
				NewlyAdded: users.Merge(pending[next]),
			}
			pending[next] = nil
			if onYield != nil {
				onYield(yields[next])
			}
			next++
		}
	}

	if err := <-waitErr; err != nil {
		return nil, fmt.Errorf("discover users of %s: %w", repo, err)
	}

	if a.ownerMode == domain.OwnerAppended {
		users.Add(repo.Owner)
	}

	return &domain.Discovery{Users: users, Yields: yields}, nil
}

// runStep returns the handles of one step, through the cache for remote steps.
func (a *UserAggregator) runStep(ctx context.Context, repo domain.RepositoryRef, step domain.DiscoveryStep) ([]string, error) {
	if step == domain.StepOwner {
		return []string{repo.Owner}, nil
	}
	return Wrap(ctx, a.cache, step.CacheKey(repo), func(ctx context.Context) ([]string, error) {
		handles, err := a.fetchStep(ctx, repo, step)
		if err != nil {
			return nil, err
		}
		// Deleted accounts come back without a login.
		return slices.DeleteFunc(handles, func(h string) bool { return h == "" }), nil
	})
}

func (a *UserAggregator) fetchStep(ctx context.Context, repo domain.RepositoryRef, step domain.DiscoveryStep) ([]string, error) {
	switch step {
	case domain.StepStargazers:
		return Collect(ctx, func(ctx context.Context, page domain.Page) ([]string, error) {
			return a.source.ListStargazers(ctx, repo, page)
		})

	case domain.StepWatchers:
		return Collect(ctx, func(ctx context.Context, page domain.Page) ([]string, error) {
			return a.source.ListWatchers(ctx, repo, page)
		})

	case domain.StepForkOwners:
		owners, err := Collect(ctx, func(ctx context.Context, page domain.Page) ([]string, error) {
			return a.source.ListForkOwners(ctx, repo, page)
		})
		if err != nil {
			return nil, err
		}
		return domain.Unique(owners), nil

	case domain.StepIssueParticipants:
		issues, err := Collect(ctx, func(ctx context.Context, page domain.Page) ([]driven.IssueParticipants, error) {
			return a.source.ListIssueParticipants(ctx, repo, page)
		})
		if err != nil {
			return nil, err
		}
		return issueParticipants(issues), nil

	case domain.StepIssueCommenters:
		commenters, err := Collect(ctx, func(ctx context.Context, page domain.Page) ([]string, error) {
			return a.source.ListIssueCommenters(ctx, repo, page)
		})
		if err != nil {
			return nil, err
		}
		return domain.Unique(commenters), nil

	default:
		return nil, fmt.Errorf("%w: unknown discovery step %q", domain.ErrInvalidInput, step)
	}
}

// issueParticipants flattens reporters then assignees into one deduplicated list.
func issueParticipants(issues []driven.IssueParticipants) []string {
	reporters := make([]string, 0, len(issues))
	var assignees []string
	for _, issue := range issues {
		reporters = append(reporters, issue.Reporter)
		assignees = append(assignees, issue.Assignees...)
	}
	return domain.Unique(append(reporters, assignees...))
}

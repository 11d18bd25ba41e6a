package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/custodia-labs/gee/internal/core/domain"
	"github.com/custodia-labs/gee/internal/core/ports/driven"
	"github.com/custodia-labs/gee/internal/core/ports/driving"
	"github.com/custodia-labs/gee/internal/logger"
)

// Ensure ExtractService implements the interface.
var _ driving.Extractor = (*ExtractService)(nil)

var extractLog = logger.Scope("extract")

// ExtractService sequences topic lookup, user discovery and email resolution
// for each repository of a run.
type ExtractService struct {
	source     driven.GitHubSource
	cache      driven.Cache
	aggregator *UserAggregator
	resolver   *EmailResolver
}

// NewExtractService creates an extract service. cache may be nil.
func NewExtractService(source driven.GitHubSource, cache driven.Cache, ownerMode domain.OwnerMode) *ExtractService {
	return &ExtractService{
		source:     source,
		cache:      cache,
		aggregator: NewUserAggregator(source, cache, ownerMode),
		resolver:   NewEmailResolver(source, cache),
	}
}

// ValidateExtractRequest checks that exactly one of repositories or query is set.
// Blank repository entries are ignored.
func ValidateExtractRequest(req driving.ExtractRequest) error {
	hasRepos := len(nonBlank(req.Repositories)) > 0
	hasQuery := strings.TrimSpace(req.Query) != ""
	if hasRepos == hasQuery {
		return domain.ErrConflictingInput
	}
	return nil
}

// Extract processes every requested repository strictly one after another.
// The request is validated before any network call. The first failing
// repository aborts the run and the sink is not flushed.
func (s *ExtractService) Extract(
	ctx context.Context, req driving.ExtractRequest, observer driving.ExtractObserver, sink driven.ReportSink,
) (*domain.BatchSummary, error) {
	if err := ValidateExtractRequest(req); err != nil {
		return nil, err
	}
	if observer == nil {
		observer = driving.NopObserver{}
	}

	runID := uuid.NewString()
	extractLog.Info("run %s started", runID)

	repos, err := s.ResolveRepositories(ctx, req)
	if err != nil {
		return nil, err
	}
	observer.RepositoriesResolved(repos)

	reports := make([]domain.RepositoryReport, 0, len(repos))
	for _, repo := range repos {
		report, err := s.ExtractRepository(ctx, repo, observer)
		if err != nil {
			return nil, err
		}

		path, err := sink.Write(report)
		if err != nil {
			return nil, fmt.Errorf("export %s: %w", repo, err)
		}
		observer.RepositoryCompleted(report, path)
		reports = append(reports, *report)
	}

	exportPath, err := sink.Flush()
	if err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}

	summary := Summarise(reports)
	summary.RunID = runID
	summary.ExportPath = exportPath
	extractLog.Info("run %s finished: %d repositories, %d unique users", runID, len(reports), summary.Unique.Users)
	return &summary, nil
}

// ResolveRepositories returns the explicit repositories of the request, or
// pages through the search query.
func (s *ExtractService) ResolveRepositories(ctx context.Context, req driving.ExtractRequest) ([]domain.RepositoryRef, error) {
	if err := ValidateExtractRequest(req); err != nil {
		return nil, err
	}

	if query := strings.TrimSpace(req.Query); query != "" {
		names, err := Wrap(ctx, s.cache, "search-repo-"+query, func(ctx context.Context) ([]string, error) {
			return Collect(ctx, func(ctx context.Context, page domain.Page) ([]string, error) {
				return s.source.SearchRepositories(ctx, query, page)
			})
		})
		if err != nil {
			return nil, fmt.Errorf("search repositories %q: %w", query, err)
		}
		return domain.ParseRepositoryRefs(names)
	}

	return domain.ParseRepositoryRefs(nonBlank(req.Repositories))
}

// ExtractRepository fetches topics, discovers users and resolves their emails.
func (s *ExtractService) ExtractRepository(
	ctx context.Context, repo domain.RepositoryRef, observer driving.ExtractObserver,
) (*domain.RepositoryReport, error) {
	if observer == nil {
		observer = driving.NopObserver{}
	}
	observer.RepositoryStarted(repo)

	topicsKey := repo.CacheKey("topics")
	topics, err := Wrap(ctx, s.cache, topicsKey, func(ctx context.Context) ([]string, error) {
		return s.source.ListTopics(ctx, repo)
	})
	if err != nil {
		return nil, fmt.Errorf("list topics of %s: %w", repo, err)
	}
	observer.TopicsFetched(repo, topics)

	discovery, err := s.aggregator.Aggregate(ctx, repo, func(y domain.DiscoveryYield) {
		observer.StepMerged(repo, y)
	})
	if err != nil {
		return nil, err
	}
	observer.UsersDiscovered(repo, discovery.Users.Len())

	users, err := s.resolver.Resolve(ctx, discovery.Users.Handles())
	if err != nil {
		return nil, fmt.Errorf("resolve users of %s: %w", repo, err)
	}

	return domain.NewRepositoryReport(repo, topics, users, discovery.Yields), nil
}

func nonBlank(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

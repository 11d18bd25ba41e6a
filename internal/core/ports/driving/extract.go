package driving

import (
	"context"

	"github.com/custodia-labs/gee/internal/core/domain"
	"github.com/custodia-labs/gee/internal/core/ports/driven"
)

// ExtractRequest selects the repositories of an extraction run.
// Exactly one of Repositories or Query must be set.
type ExtractRequest struct {
	// Repositories are explicit "owner/name" identifiers.
	Repositories []string

	// Query is a GitHub repository search query.
	Query string
}

// Extractor runs the user discovery and email inference pipeline.
type Extractor interface {
	// Extract processes every requested repository one at a time, hands each
	// finished report to sink and returns the batch summary.
	Extract(
		ctx context.Context, req ExtractRequest, observer ExtractObserver, sink driven.ReportSink,
	) (*domain.BatchSummary, error)

	// ExtractRepository processes a single repository.
	ExtractRepository(
		ctx context.Context, repo domain.RepositoryRef, observer ExtractObserver,
	) (*domain.RepositoryReport, error)
}

// ExtractObserver receives progress notifications from an extraction run.
// Calls are made from the goroutine driving the run, never concurrently.
type ExtractObserver interface {
	// RepositoriesResolved is called once with the repositories to analyse.
	RepositoriesResolved(repos []domain.RepositoryRef)

	// RepositoryStarted is called before a repository is processed.
	RepositoryStarted(repo domain.RepositoryRef)

	// TopicsFetched is called with the repository topics.
	TopicsFetched(repo domain.RepositoryRef, topics []string)

	// StepMerged is called each time a discovery step is merged.
	StepMerged(repo domain.RepositoryRef, yield domain.DiscoveryYield)

	// UsersDiscovered is called with the final number of distinct users.
	UsersDiscovered(repo domain.RepositoryRef, count int)

	// RepositoryCompleted is called with the finished report and the path it
	// was exported to, if the sink wrote one.
	RepositoryCompleted(report *domain.RepositoryReport, exportPath string)
}

// NopObserver ignores every notification.
type NopObserver struct{}

func (NopObserver) RepositoriesResolved([]domain.RepositoryRef) {}
func (NopObserver) RepositoryStarted(domain.RepositoryRef) {}
func (NopObserver) TopicsFetched(domain.RepositoryRef, []string) {}
func (NopObserver) StepMerged(domain.RepositoryRef, domain.DiscoveryYield) {}
func (NopObserver) UsersDiscovered(domain.RepositoryRef, int) {}
func (NopObserver) RepositoryCompleted(*domain.RepositoryReport, string) {}

package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/custodia-labs/gee/internal/core/domain"
	"github.com/custodia-labs/gee/internal/core/ports/driven"
)

// fakeSource implements driven.GitHubSource over in-memory listings.
// Errors and delays are keyed by call name, e.g. "watchers" or "events:carol".
type fakeSource struct {
	stargazers []string
	watchers   []string
	forkOwners []string
	issues     []driven.IssueParticipants
	commenters []string
	profiles   map[string]domain.Profile
	events     map[string][]domain.PublicEvent
	topics     []string
	search     []string
	rateLimits *domain.RateLimitStatus

	errs   map[string]error
	delays map[string]time.Duration

	mu    sync.Mutex
	calls map[string]int
}

var _ driven.GitHubSource = (*fakeSource)(nil)

func newFakeSource() *fakeSource {
	return &fakeSource{
		profiles: make(map[string]domain.Profile),
		events:   make(map[string][]domain.PublicEvent),
		errs:     make(map[string]error),
		delays:   make(map[string]time.Duration),
		calls:    make(map[string]int),
	}
}

func (f *fakeSource) record(ctx context.Context, name string) error {
	f.mu.Lock()
	f.calls[name]++
	delay := f.delays[name]
	err := f.errs[name]
	f.mu.Unlock()

	if delay > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}
	return err
}

func (f *fakeSource) callCount(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

func pageOf[T any](items []T, page domain.Page) []T {
	start := (page.Number - 1) * page.PerPage
	if start >= len(items) {
		return nil
	}
	end := min(start+page.PerPage, len(items))
	return items[start:end]
}

func (f *fakeSource) ListStargazers(ctx context.Context, _ domain.RepositoryRef, page domain.Page) ([]string, error) {
	if err := f.record(ctx, "stargazers"); err != nil {
		return nil, err
	}
	return pageOf(f.stargazers, page), nil
}

func (f *fakeSource) ListWatchers(ctx context.Context, _ domain.RepositoryRef, page domain.Page) ([]string, error) {
	if err := f.record(ctx, "watchers"); err != nil {
		return nil, err
	}
	return pageOf(f.watchers, page), nil
}

func (f *fakeSource) ListForkOwners(ctx context.Context, _ domain.RepositoryRef, page domain.Page) ([]string, error) {
	if err := f.record(ctx, "forks"); err != nil {
		return nil, err
	}
	return pageOf(f.forkOwners, page), nil
}

func (f *fakeSource) ListIssueParticipants(
	ctx context.Context, _ domain.RepositoryRef, page domain.Page,
) ([]driven.IssueParticipants, error) {
	if err := f.record(ctx, "issues"); err != nil {
		return nil, err
	}
	return pageOf(f.issues, page), nil
}

func (f *fakeSource) ListIssueCommenters(ctx context.Context, _ domain.RepositoryRef, page domain.Page) ([]string, error) {
	if err := f.record(ctx, "comments"); err != nil {
		return nil, err
	}
	return pageOf(f.commenters, page), nil
}

func (f *fakeSource) GetUser(ctx context.Context, handle string) (domain.Profile, error) {
	if err := f.record(ctx, "user:"+handle); err != nil {
		return domain.Profile{}, err
	}
	if p, ok := f.profiles[handle]; ok {
		return p, nil
	}
	return domain.Profile{Handle: handle}, nil
}

func (f *fakeSource) ListPublicEvents(ctx context.Context, handle string, page domain.Page) ([]domain.PublicEvent, error) {
	if err := f.record(ctx, "events:"+handle); err != nil {
		return nil, err
	}
	return pageOf(f.events[handle], page), nil
}

func (f *fakeSource) ListTopics(ctx context.Context, _ domain.RepositoryRef) ([]string, error) {
	if err := f.record(ctx, "topics"); err != nil {
		return nil, err
	}
	return f.topics, nil
}

func (f *fakeSource) SearchRepositories(ctx context.Context, _ string, page domain.Page) ([]string, error) {
	if err := f.record(ctx, "search"); err != nil {
		return nil, err
	}
	return pageOf(f.search, page), nil
}

func (f *fakeSource) RateLimits(ctx context.Context) (*domain.RateLimitStatus, error) {
	if err := f.record(ctx, "rate_limit"); err != nil {
		return nil, err
	}
	return f.rateLimits, nil
}

// handles generates n distinct logins with a prefix.
func handles(prefix string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("%s%d", prefix, i)
	}
	return out
}

func pushEvent(emails ...string) domain.PublicEvent {
	return domain.PublicEvent{Type: domain.PushEventType, CommitEmails: emails}
}

// recordingSink implements driven.ReportSink in memory.
type recordingSink struct {
	written  []*domain.RepositoryReport
	flushed  bool
	writeErr error
}

func (s *recordingSink) Write(report *domain.RepositoryReport) (string, error) {
	if s.writeErr != nil {
		return "", s.writeErr
	}
	s.written = append(s.written, report)
	return report.Repo.FileStem() + ".csv", nil
}

func (s *recordingSink) Flush() (string, error) {
	s.flushed = true
	return "", nil
}

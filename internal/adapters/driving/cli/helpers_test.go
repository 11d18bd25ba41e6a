package cli

import (
	"bytes"
	"context"
	"sync"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/custodia-labs/gee/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/gee/internal/connectors/github"
	"github.com/custodia-labs/gee/internal/core/domain"
	"github.com/custodia-labs/gee/internal/core/ports/driven"
	"github.com/custodia-labs/gee/internal/core/services"
)

// stubSource serves a fixed repository: bob stars it and declares an
// email, carol watches it and pushed twice with the same address.
type stubSource struct {
	mu    sync.Mutex
	calls map[string]int
}

var _ driven.GitHubSource = (*stubSource)(nil)

func newStubSource() *stubSource {
	return &stubSource{calls: make(map[string]int)}
}

func (s *stubSource) record(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls[name]++
}

func (s *stubSource) callCount(name string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[name]
}

func firstPage(page domain.Page, handles ...string) []string {
	if page.Number > 1 {
		return nil
	}
	return handles
}

func (s *stubSource) ListStargazers(_ context.Context, _ domain.RepositoryRef, page domain.Page) ([]string, error) {
	s.record("stargazers")
	return firstPage(page, "bob"), nil
}

func (s *stubSource) ListWatchers(_ context.Context, _ domain.RepositoryRef, page domain.Page) ([]string, error) {
	s.record("watchers")
	return firstPage(page, "carol"), nil
}

func (s *stubSource) ListForkOwners(context.Context, domain.RepositoryRef, domain.Page) ([]string, error) {
	s.record("forks")
	return nil, nil
}

func (s *stubSource) ListIssueParticipants(
	context.Context, domain.RepositoryRef, domain.Page,
) ([]driven.IssueParticipants, error) {
	s.record("issues")
	return nil, nil
}

func (s *stubSource) ListIssueCommenters(context.Context, domain.RepositoryRef, domain.Page) ([]string, error) {
	s.record("comments")
	return nil, nil
}

func (s *stubSource) GetUser(_ context.Context, handle string) (domain.Profile, error) {
	s.record("user:" + handle)
	p := domain.Profile{Handle: handle}
	if handle == "bob" {
		p.DisplayName = "Bob"
		p.DeclaredEmail = "bob@x.com"
	}
	return p, nil
}

func (s *stubSource) ListPublicEvents(_ context.Context, handle string, page domain.Page) ([]domain.PublicEvent, error) {
	s.record("events:" + handle)
	if handle != "carol" || page.Number > 1 {
		return nil, nil
	}
	return []domain.PublicEvent{
		{Type: domain.PushEventType, CommitEmails: []string{"carol@y.com"}},
		{Type: domain.PushEventType, CommitEmails: []string{"carol@y.com"}},
	}, nil
}

func (s *stubSource) ListTopics(context.Context, domain.RepositoryRef) ([]string, error) {
	s.record("topics")
	return []string{"cli", "go"}, nil
}

func (s *stubSource) SearchRepositories(_ context.Context, _ string, page domain.Page) ([]string, error) {
	s.record("search")
	return firstPage(page, "alice/tool"), nil
}

func (s *stubSource) RateLimits(context.Context) (*domain.RateLimitStatus, error) {
	s.record("rate_limit")
	return &domain.RateLimitStatus{
		Core:   domain.RateWindow{Remaining: 4999, Limit: 5000},
		Search: domain.RateWindow{Remaining: 29, Limit: 30},
	}, nil
}

// testEnv isolates one command execution.
type testEnv struct {
	source *stubSource
	store  *memory.ConfigStore
	config github.Config
	built  int
}

// setupCLI injects an in-memory settings service and the stub source, and
// restores package state when the test ends.
func setupCLI(t *testing.T) *testEnv {
	t.Helper()
	t.Setenv(EnvToken, "")

	env := &testEnv{source: newStubSource(), store: memory.NewConfigStore()}

	origSettings := settingsService
	origFactory := newGitHubSource
	settingsService = services.NewSettingsService(env.store)
	newGitHubSource = func(_ context.Context, cfg github.Config) (driven.GitHubSource, error) {
		env.config = cfg
		env.built++
		return env.source, nil
	}

	t.Cleanup(func() {
		settingsService = origSettings
		newGitHubSource = origFactory
		resetFlags(rootCmd)
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetIn(nil)
	})
	resetFlags(rootCmd)
	return env
}

// resetFlags returns every flag of cmd and its children to its default.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	cmd.PersistentFlags().VisitAll(reset)
	cmd.Flags().VisitAll(reset)
	for _, child := range cmd.Commands() {
		resetFlags(child)
	}
}

// run executes the root command with args and returns its output.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

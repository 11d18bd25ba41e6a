package driven

import (
	"context"

	"github.com/custodia-labs/gee/internal/core/domain"
)

// IssueParticipants are the people attached to one issue.
type IssueParticipants struct {
	// Reporter is the login of the issue author.
	Reporter string

	// Assignees are the logins assigned to the issue.
	Assignees []string
}

// GitHubSource is the remote data source consumed by the core.
// Listing methods return a single page; the core drives pagination.
type GitHubSource interface {
	// ListStargazers returns the logins of one page of stargazers.
	ListStargazers(ctx context.Context, repo domain.RepositoryRef, page domain.Page) ([]string, error)

	// ListWatchers returns the logins of one page of watchers.
	ListWatchers(ctx context.Context, repo domain.RepositoryRef, page domain.Page) ([]string, error)

	// ListForkOwners returns the owner login of each fork on one page.
	ListForkOwners(ctx context.Context, repo domain.RepositoryRef, page domain.Page) ([]string, error)

	// ListIssueParticipants returns the reporter and assignees of each issue on one page.
	ListIssueParticipants(
		ctx context.Context, repo domain.RepositoryRef, page domain.Page,
	) ([]IssueParticipants, error)

	// ListIssueCommenters returns the author login of each comment on one page
	// of repository-wide issue comments.
	ListIssueCommenters(ctx context.Context, repo domain.RepositoryRef, page domain.Page) ([]string, error)

	// GetUser fetches a user's public profile.
	GetUser(ctx context.Context, handle string) (domain.Profile, error)

	// ListPublicEvents returns one page of a user's public events.
	ListPublicEvents(ctx context.Context, handle string, page domain.Page) ([]domain.PublicEvent, error)

	// ListTopics returns every topic of a repository in a single call.
	ListTopics(ctx context.Context, repo domain.RepositoryRef) ([]string, error)

	// SearchRepositories returns the full names of one page of search results.
	SearchRepositories(ctx context.Context, query string, page domain.Page) ([]string, error)

	// RateLimits returns the current quota of the core and search buckets.
	RateLimits(ctx context.Context) (*domain.RateLimitStatus, error)
}

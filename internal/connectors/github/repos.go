package github

import (
	"context"

	gh "github.com/google/go-github/v80/github"

	"github.com/custodia-labs/gee/internal/core/domain"
)

// ListStargazers returns the logins of one page of stargazers.
func (c *Client) ListStargazers(ctx context.Context, repo domain.RepositoryRef, page domain.Page) ([]string, error) {
	opts := listOptions(page)
	stargazers, err := call(ctx, c, c.core, "list stargazers", func() ([]*gh.Stargazer, *gh.Response, error) {
		return c.gh.Activity.ListStargazers(ctx, repo.Owner, repo.Name, &opts)
	})
	if err != nil {
		return nil, err
	}

	out := make([]string, len(stargazers))
	for i, s := range stargazers {
		out[i] = s.GetUser().GetLogin()
	}
	return out, nil
}

// ListWatchers returns the logins of one page of watchers.
func (c *Client) ListWatchers(ctx context.Context, repo domain.RepositoryRef, page domain.Page) ([]string, error) {
	opts := listOptions(page)
	watchers, err := call(ctx, c, c.core, "list watchers", func() ([]*gh.User, *gh.Response, error) {
		return c.gh.Activity.ListWatchers(ctx, repo.Owner, repo.Name, &opts)
	})
	if err != nil {
		return nil, err
	}
	return logins(watchers), nil
}

// ListForkOwners returns the owner login of each fork on one page.
func (c *Client) ListForkOwners(ctx context.Context, repo domain.RepositoryRef, page domain.Page) ([]string, error) {
	opts := &gh.RepositoryListForksOptions{ListOptions: listOptions(page)}
	forks, err := call(ctx, c, c.core, "list forks", func() ([]*gh.Repository, *gh.Response, error) {
		return c.gh.Repositories.ListForks(ctx, repo.Owner, repo.Name, opts)
	})
	if err != nil {
		return nil, err
	}

	out := make([]string, len(forks))
	for i, fork := range forks {
		out[i] = fork.GetOwner().GetLogin()
	}
	return out, nil
}

// ListTopics returns every topic of a repository in one call.
func (c *Client) ListTopics(ctx context.Context, repo domain.RepositoryRef) ([]string, error) {
	topics, err := call(ctx, c, c.core, "list topics", func() ([]string, *gh.Response, error) {
		return c.gh.Repositories.ListAllTopics(ctx, repo.Owner, repo.Name)
	})
	if err != nil {
		return nil, err
	}
	if topics == nil {
		topics = []string{}
	}
	return topics, nil
}

// SearchRepositories returns the full names of one page of search results.
// A page past the search result cap is reported as empty.
func (c *Client) SearchRepositories(ctx context.Context, query string, page domain.Page) ([]string, error) {
	opts := &gh.SearchOptions{ListOptions: listOptions(page)}
	result, err := call(ctx, c, c.search, "search repositories",
		func() (*gh.RepositoriesSearchResult, *gh.Response, error) {
			return c.gh.Search.Repositories(ctx, query, opts)
		})
	if err != nil {
		if page.Number > 1 && isUnprocessable(err) {
			clientLog.Debug("search %q capped at page %d", query, page.Number)
			return nil, nil
		}
		return nil, err
	}

	out := make([]string, len(result.Repositories))
	for i, r := range result.Repositories {
		out[i] = r.GetFullName()
	}
	return out, nil
}

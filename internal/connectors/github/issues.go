package github

import (
	"context"

	gh "github.com/google/go-github/v80/github"

	"github.com/custodia-labs/gee/internal/core/domain"
	"github.com/custodia-labs/gee/internal/core/ports/driven"
)

// ListIssueParticipants returns the reporter and assignees of each open
// issue on one page. Pull requests are listed as issues by GitHub and are
// included.
func (c *Client) ListIssueParticipants(
	ctx context.Context, repo domain.RepositoryRef, page domain.Page,
) ([]driven.IssueParticipants, error) {
	opts := &gh.IssueListByRepoOptions{ListOptions: listOptions(page)}
	issues, err := call(ctx, c, c.core, "list issues", func() ([]*gh.Issue, *gh.Response, error) {
		return c.gh.Issues.ListByRepo(ctx, repo.Owner, repo.Name, opts)
	})
	if err != nil {
		return nil, err
	}

	out := make([]driven.IssueParticipants, len(issues))
	for i, issue := range issues {
		out[i] = driven.IssueParticipants{
			Reporter:  issue.GetUser().GetLogin(),
			Assignees: logins(issue.Assignees),
		}
	}
	return out, nil
}

// ListIssueCommenters returns the author login of each issue comment of the
// repository on one page.
func (c *Client) ListIssueCommenters(ctx context.Context, repo domain.RepositoryRef, page domain.Page) ([]string, error) {
	opts := &gh.IssueListCommentsOptions{ListOptions: listOptions(page)}
	comments, err := call(ctx, c, c.core, "list issue comments", func() ([]*gh.IssueComment, *gh.Response, error) {
		// Issue number 0 lists the comments of every issue.
		return c.gh.Issues.ListComments(ctx, repo.Owner, repo.Name, 0, opts)
	})
	if err != nil {
		return nil, err
	}

	out := make([]string, len(comments))
	for i, comment := range comments {
		out[i] = comment.GetUser().GetLogin()
	}
	return out, nil
}

package github

import (
	"context"
	"encoding/json"

	gh "github.com/google/go-github/v80/github"

	"github.com/custodia-labs/gee/internal/core/domain"
)

// pushPayload is the part of a PushEvent payload carrying commit authors.
type pushPayload struct {
	Commits []struct {
		Author struct {
			Email string `json:"email"`
		} `json:"author"`
	} `json:"commits"`
}

// ListPublicEvents returns one page of a user's public events. Commit author
// emails are extracted for push events. GitHub only serves a bounded event
// history; a page past that bound is reported as empty.
func (c *Client) ListPublicEvents(ctx context.Context, handle string, page domain.Page) ([]domain.PublicEvent, error) {
	opts := listOptions(page)
	events, err := call(ctx, c, c.core, "list events", func() ([]*gh.Event, *gh.Response, error) {
		return c.gh.Activity.ListEventsPerformedByUser(ctx, handle, true, &opts)
	})
	if err != nil {
		if page.Number > 1 && isUnprocessable(err) {
			clientLog.Debug("events of %s capped at page %d", handle, page.Number)
			return nil, nil
		}
		return nil, err
	}

	out := make([]domain.PublicEvent, len(events))
	for i, e := range events {
		out[i] = domain.PublicEvent{Type: e.GetType()}
		if out[i].IsPush() {
			out[i].CommitEmails = commitEmails(e.RawPayload)
		}
	}
	return out, nil
}

// commitEmails decodes the commit author emails of a push payload.
// An undecodable payload yields no emails.
func commitEmails(raw *json.RawMessage) []string {
	if raw == nil {
		return nil
	}
	var payload pushPayload
	if err := json.Unmarshal(*raw, &payload); err != nil {
		clientLog.Debug("decode push payload: %v", err)
		return nil
	}

	emails := make([]string, 0, len(payload.Commits))
	for _, commit := range payload.Commits {
		emails = append(emails, commit.Author.Email)
	}
	return emails
}

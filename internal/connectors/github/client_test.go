package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/gee/internal/core/domain"
	"github.com/custodia-labs/gee/internal/core/ports/driven"
)

var testRepo = domain.RepositoryRef{Owner: "acme", Name: "widget"}

// newTestClient serves mux and returns an unthrottled client pointing at it.
func newTestClient(t *testing.T, mux *http.ServeMux, creds domain.Credentials) *Client {
	t.Helper()
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	client, err := NewClient(context.Background(), Config{
		Credentials:             creds,
		RequestsPerSecond:       1000,
		SearchRequestsPerSecond: 1000,
		BaseURL:                 server.URL,
	})
	require.NoError(t, err)
	return client
}

// serveJSON registers a handler writing body and checking the page query.
func serveJSON(t *testing.T, mux *http.ServeMux, path, wantPage, body string) {
	t.Helper()
	mux.HandleFunc(path, func(w http.ResponseWriter, r *http.Request) {
		if wantPage != "" {
			assert.Equal(t, wantPage, r.URL.Query().Get("page"))
			assert.Equal(t, "100", r.URL.Query().Get("per_page"))
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, body)
	})
}

func TestClient_ListStargazers(t *testing.T) {
	mux := http.NewServeMux()
	serveJSON(t, mux, "/repos/acme/widget/stargazers", "2",
		`[{"starred_at":"2024-01-01T00:00:00Z","user":{"login":"x"}},{"user":{"login":"y"}}]`)
	client := newTestClient(t, mux, domain.Credentials{})

	logins, err := client.ListStargazers(context.Background(), testRepo, domain.Page{Number: 2, PerPage: 100})

	require.NoError(t, err)
	assert.Equal(t, []string{"x", "y"}, logins)
}

func TestClient_ListWatchers(t *testing.T) {
	mux := http.NewServeMux()
	serveJSON(t, mux, "/repos/acme/widget/subscribers", "1", `[{"login":"w1"},{"login":"w2"}]`)
	client := newTestClient(t, mux, domain.Credentials{})

	logins, err := client.ListWatchers(context.Background(), testRepo, domain.FirstPage())

	require.NoError(t, err)
	assert.Equal(t, []string{"w1", "w2"}, logins)
}

func TestClient_ListForkOwners(t *testing.T) {
	mux := http.NewServeMux()
	serveJSON(t, mux, "/repos/acme/widget/forks", "1",
		`[{"full_name":"u/widget","owner":{"login":"u"}},{"full_name":"u/widget-2","owner":{"login":"u"}}]`)
	client := newTestClient(t, mux, domain.Credentials{})

	owners, err := client.ListForkOwners(context.Background(), testRepo, domain.FirstPage())

	require.NoError(t, err)
	assert.Equal(t, []string{"u", "u"}, owners, "one entry per fork")
}

func TestClient_ListIssueParticipants(t *testing.T) {
	mux := http.NewServeMux()
	serveJSON(t, mux, "/repos/acme/widget/issues", "1", `[
		{"number":1,"user":{"login":"r1"},"assignees":[{"login":"a1"},{"login":"a2"}]},
		{"number":2,"user":{"login":"r2"},"assignees":[]}
	]`)
	client := newTestClient(t, mux, domain.Credentials{})

	issues, err := client.ListIssueParticipants(context.Background(), testRepo, domain.FirstPage())

	require.NoError(t, err)
	assert.Equal(t, []driven.IssueParticipants{
		{Reporter: "r1", Assignees: []string{"a1", "a2"}},
		{Reporter: "r2", Assignees: []string{}},
	}, issues)
}

func TestClient_ListIssueCommenters(t *testing.T) {
	mux := http.NewServeMux()
	serveJSON(t, mux, "/repos/acme/widget/issues/comments", "1",
		`[{"id":1,"user":{"login":"c1"}},{"id":2,"user":{"login":"c1"}}]`)
	client := newTestClient(t, mux, domain.Credentials{})

	commenters, err := client.ListIssueCommenters(context.Background(), testRepo, domain.FirstPage())

	require.NoError(t, err)
	assert.Equal(t, []string{"c1", "c1"}, commenters)
}

func TestClient_GetUser(t *testing.T) {
	mux := http.NewServeMux()
	serveJSON(t, mux, "/users/bob", "", `{"login":"bob","name":"Bob B","email":"bob@x.com"}`)
	client := newTestClient(t, mux, domain.Credentials{})

	profile, err := client.GetUser(context.Background(), "bob")

	require.NoError(t, err)
	assert.Equal(t, domain.Profile{Handle: "bob", DisplayName: "Bob B", DeclaredEmail: "bob@x.com"}, profile)
}

func TestClient_GetUser_NotFound(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/users/ghost", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"message":"Not Found"}`)
	})
	client := newTestClient(t, mux, domain.Credentials{})

	_, err := client.GetUser(context.Background(), "ghost")

	require.Error(t, err)
	assert.True(t, IsNotFound(err))
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Contains(t, err.Error(), "get user")
}

func TestClient_ListPublicEvents(t *testing.T) {
	mux := http.NewServeMux()
	serveJSON(t, mux, "/users/carol/events/public", "1", `[
		{"type":"PushEvent","payload":{"commits":[
			{"author":{"email":"carol@y.com"}},
			{"author":{"email":"1+carol@users.noreply.github.com"}}
		]}},
		{"type":"WatchEvent","payload":{"action":"started"}}
	]`)
	client := newTestClient(t, mux, domain.Credentials{})

	events, err := client.ListPublicEvents(context.Background(), "carol", domain.FirstPage())

	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, domain.PublicEvent{
		Type:         domain.PushEventType,
		CommitEmails: []string{"carol@y.com", "1+carol@users.noreply.github.com"},
	}, events[0])
	assert.Equal(t, domain.PublicEvent{Type: "WatchEvent"}, events[1])
}

func TestClient_ListPublicEvents_PaginationCap(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/users/busy/events/public", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		fmt.Fprint(w, `{"message":"In order to keep the API fast for everyone, pagination is limited for this resource."}`)
	})
	client := newTestClient(t, mux, domain.Credentials{})

	t.Run("past the first page is empty", func(t *testing.T) {
		events, err := client.ListPublicEvents(context.Background(), "busy", domain.Page{Number: 4, PerPage: 100})

		require.NoError(t, err)
		assert.Empty(t, events)
	})

	t.Run("first page fails", func(t *testing.T) {
		_, err := client.ListPublicEvents(context.Background(), "busy", domain.FirstPage())

		require.Error(t, err)
		assert.True(t, isUnprocessable(err))
	})
}

func TestClient_ListTopics(t *testing.T) {
	mux := http.NewServeMux()
	serveJSON(t, mux, "/repos/acme/widget/topics", "", `{"names":["cli","go"]}`)
	client := newTestClient(t, mux, domain.Credentials{})

	topics, err := client.ListTopics(context.Background(), testRepo)

	require.NoError(t, err)
	assert.Equal(t, []string{"cli", "go"}, topics)
}

func TestClient_ListTopics_None(t *testing.T) {
	mux := http.NewServeMux()
	serveJSON(t, mux, "/repos/acme/widget/topics", "", `{"names":[]}`)
	client := newTestClient(t, mux, domain.Credentials{})

	topics, err := client.ListTopics(context.Background(), testRepo)

	require.NoError(t, err)
	assert.NotNil(t, topics)
	assert.Empty(t, topics)
}

func TestClient_SearchRepositories(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/search/repositories", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "topic:cli language:go", r.URL.Query().Get("q"))
		fmt.Fprint(w, `{"total_count":2,"items":[{"full_name":"a/one"},{"full_name":"b/two"}]}`)
	})
	client := newTestClient(t, mux, domain.Credentials{})

	names, err := client.SearchRepositories(context.Background(), "topic:cli language:go", domain.FirstPage())

	require.NoError(t, err)
	assert.Equal(t, []string{"a/one", "b/two"}, names)
}

func TestClient_RateLimits(t *testing.T) {
	mux := http.NewServeMux()
	serveJSON(t, mux, "/rate_limit", "", `{"resources":{
		"core":{"limit":5000,"remaining":4321,"reset":1700000000},
		"search":{"limit":30,"remaining":29,"reset":1700000060}
	}}`)
	client := newTestClient(t, mux, domain.Credentials{})

	status, err := client.RateLimits(context.Background())

	require.NoError(t, err)
	assert.Equal(t, domain.RateWindow{Remaining: 4321, Limit: 5000, Reset: time.Unix(1700000000, 0)}, normalise(status.Core))
	assert.Equal(t, domain.RateWindow{Remaining: 29, Limit: 30, Reset: time.Unix(1700000060, 0)}, normalise(status.Search))
}

// normalise drops the location so times compare by instant.
func normalise(w domain.RateWindow) domain.RateWindow {
	w.Reset = time.Unix(w.Reset.Unix(), 0)
	return w
}

func TestClient_RateLimitExceeded(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/users/bob", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set(HeaderRateLimit, "60")
		w.Header().Set(HeaderRateRemaining, "0")
		w.Header().Set(HeaderRateReset, "1700000000")
		w.WriteHeader(http.StatusForbidden)
		fmt.Fprint(w, `{"message":"API rate limit exceeded"}`)
	})
	client := newTestClient(t, mux, domain.Credentials{})

	_, err := client.GetUser(context.Background(), "bob")

	require.Error(t, err)
	assert.True(t, IsRateLimited(err))
	assert.ErrorIs(t, err, domain.ErrRateLimited)

	var rlErr *RateLimitError
	require.True(t, errors.As(err, &rlErr))
	assert.Equal(t, int64(1700000000), rlErr.ResetAt.Unix())
	assert.Equal(t, 0, client.core.Remaining())
}

func TestClient_Authentication(t *testing.T) {
	tests := []struct {
		name   string
		creds  domain.Credentials
		assert func(t *testing.T, r *http.Request)
	}{
		{
			name:  "personal access token",
			creds: domain.Credentials{Token: "ghp_abc"},
			assert: func(t *testing.T, r *http.Request) {
				assert.Equal(t, "Bearer ghp_abc", r.Header.Get("Authorization"))
			},
		},
		{
			name:  "oauth app",
			creds: domain.Credentials{ClientID: "id", ClientSecret: "secret"},
			assert: func(t *testing.T, r *http.Request) {
				user, pass, ok := r.BasicAuth()
				assert.True(t, ok)
				assert.Equal(t, "id", user)
				assert.Equal(t, "secret", pass)
			},
		},
		{
			name:  "anonymous",
			creds: domain.Credentials{},
			assert: func(t *testing.T, r *http.Request) {
				assert.Empty(t, r.Header.Get("Authorization"))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mux := http.NewServeMux()
			mux.HandleFunc("/users/bob", func(w http.ResponseWriter, r *http.Request) {
				tt.assert(t, r)
				fmt.Fprint(w, `{"login":"bob"}`)
			})
			client := newTestClient(t, mux, tt.creds)

			_, err := client.GetUser(context.Background(), "bob")
			require.NoError(t, err)
		})
	}
}

func TestNewClient_AssumedQuota(t *testing.T) {
	anonymous, err := NewClient(context.Background(), Config{})
	require.NoError(t, err)
	assert.Equal(t, AnonymousRateLimit, anonymous.core.Limit())
	assert.Equal(t, SearchRateLimit, anonymous.search.Limit())

	authenticated, err := NewClient(context.Background(), Config{Credentials: domain.Credentials{Token: "t"}})
	require.NoError(t, err)
	assert.Equal(t, GitHubRateLimit, authenticated.core.Limit())
	assert.Equal(t, "https://api.github.com/", authenticated.GitHub().BaseURL.String())
}

func TestConfigFromSettings(t *testing.T) {
	settings := domain.DefaultSettings()
	settings.Credentials.Token = "t"

	cfg := ConfigFromSettings(settings).withDefaults()

	assert.Equal(t, "t", cfg.Credentials.Token)
	assert.InDelta(t, domain.DefaultRequestsPerSecond, cfg.RequestsPerSecond, 0.0001)
	assert.InDelta(t, SearchRate, cfg.SearchRequestsPerSecond, 0.0001)
	assert.Equal(t, DefaultTimeout, cfg.Timeout)
}

package github

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	gh "github.com/google/go-github/v80/github"

	"github.com/custodia-labs/gee/internal/core/domain"
	"github.com/custodia-labs/gee/internal/core/ports/driven"
	"github.com/custodia-labs/gee/internal/logger"
)

const (
	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 30 * time.Second
)

// Ensure Client implements the interface.
var _ driven.GitHubSource = (*Client)(nil)

var clientLog = logger.Scope("github")

// Client wraps the go-github client with rate limiting and error mapping.
// Every list method fetches exactly one page and returns one entry per
// item of that page, so callers can detect the last page by its length.
type Client struct {
	gh     *gh.Client
	core   *RateLimiter
	search *RateLimiter
}

// NewClient creates a GitHub API client.
func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	cfg = cfg.withDefaults()

	client := gh.NewClient(cfg.httpClient(ctx))
	if cfg.BaseURL != "" {
		base := cfg.BaseURL
		if !strings.HasSuffix(base, "/") {
			base += "/"
		}
		u, err := url.Parse(base)
		if err != nil {
			return nil, fmt.Errorf("parse base url: %w", err)
		}
		client.BaseURL = u
	}

	clientLog.Debug("authenticating with method %s", cfg.Credentials.Method())
	return &Client{
		gh:     client,
		core:   NewRateLimiter("core", cfg.RequestsPerSecond, cfg.coreLimit()),
		search: NewRateLimiter("search", cfg.SearchRequestsPerSecond, SearchRateLimit),
	}, nil
}

// GitHub returns the underlying go-github client.
func (c *Client) GitHub() *gh.Client {
	return c.gh
}

// GetUser fetches the public profile of a user.
func (c *Client) GetUser(ctx context.Context, handle string) (domain.Profile, error) {
	user, err := call(ctx, c, c.core, "get user", func() (*gh.User, *gh.Response, error) {
		return c.gh.Users.Get(ctx, handle)
	})
	if err != nil {
		return domain.Profile{}, err
	}
	return domain.Profile{
		Handle:        user.GetLogin(),
		DisplayName:   user.GetName(),
		DeclaredEmail: user.GetEmail(),
	}, nil
}

// RateLimits returns the current core and search quota.
// The rate limit endpoint does not consume quota and is not throttled.
func (c *Client) RateLimits(ctx context.Context) (*domain.RateLimitStatus, error) {
	limits, _, err := c.gh.RateLimit.Get(ctx)
	if err != nil {
		return nil, c.wrapError(err, "get rate limit")
	}
	return &domain.RateLimitStatus{
		Core:   rateWindow(limits.GetCore()),
		Search: rateWindow(limits.GetSearch()),
	}, nil
}

func rateWindow(r *gh.Rate) domain.RateWindow {
	if r == nil {
		return domain.RateWindow{}
	}
	return domain.RateWindow{
		Remaining: r.Remaining,
		Limit:     r.Limit,
		Reset:     r.Reset.Time,
	}
}

// call waits for the limiter, runs one request and maps its error.
func call[T any](
	ctx context.Context, c *Client, limiter *RateLimiter, operation string,
	do func() (T, *gh.Response, error),
) (T, error) {
	var zero T
	if err := limiter.Wait(ctx); err != nil {
		return zero, fmt.Errorf("rate limit wait: %w", err)
	}

	result, resp, err := do()
	if resp != nil {
		limiter.UpdateFromResponse(resp.Response)
	}
	if err != nil {
		return zero, c.wrapError(err, operation)
	}
	return result, nil
}

// listOptions converts a page request to go-github list options.
func listOptions(page domain.Page) gh.ListOptions {
	return gh.ListOptions{Page: page.Number, PerPage: page.PerPage}
}

// logins returns the login of every user, keeping one entry per user.
func logins(users []*gh.User) []string {
	out := make([]string, len(users))
	for i, u := range users {
		out[i] = u.GetLogin()
	}
	return out
}

// wrapError converts go-github errors to our error types.
func (c *Client) wrapError(err error, operation string) error {
	if err == nil {
		return nil
	}

	var rateLimitErr *gh.RateLimitError
	if errors.As(err, &rateLimitErr) {
		return fmt.Errorf("%s: %w", operation, &RateLimitError{
			ResetAt:   rateLimitErr.Rate.Reset.Time,
			Remaining: rateLimitErr.Rate.Remaining,
			Limit:     rateLimitErr.Rate.Limit,
		})
	}

	var abuseErr *gh.AbuseRateLimitError
	if errors.As(err, &abuseErr) {
		resetAt := time.Now()
		if abuseErr.RetryAfter != nil {
			resetAt = resetAt.Add(*abuseErr.RetryAfter)
		}
		return fmt.Errorf("%s: %w", operation, &RateLimitError{ResetAt: resetAt})
	}

	var ghErr *gh.ErrorResponse
	if errors.As(err, &ghErr) && ghErr.Response != nil {
		apiErr := &APIError{
			StatusCode: ghErr.Response.StatusCode,
			Message:    ghErr.Message,
		}
		if ghErr.Response.Request != nil {
			apiErr.URL = ghErr.Response.Request.URL.String()
		}
		return fmt.Errorf("%s: %w", operation, apiErr)
	}

	return fmt.Errorf("%s: %w", operation, err)
}

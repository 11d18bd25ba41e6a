package github

import (
	"context"
	"net/http"
	"time"

	gh "github.com/google/go-github/v80/github"
	"golang.org/x/oauth2"

	"github.com/custodia-labs/gee/internal/core/domain"
)

// Config holds the settings of a GitHub client.
type Config struct {
	// Credentials select the authentication method.
	// Empty credentials send anonymous requests.
	Credentials domain.Credentials

	// RequestsPerSecond throttles core API requests.
	// Default: ProactiveRate
	RequestsPerSecond float64

	// SearchRequestsPerSecond throttles search API requests.
	// Default: SearchRate
	SearchRequestsPerSecond float64

	// BaseURL overrides the API endpoint, e.g. for GitHub Enterprise.
	// Default: https://api.github.com/
	BaseURL string

	// Timeout bounds each HTTP request.
	// Default: DefaultTimeout
	Timeout time.Duration
}

// ConfigFromSettings builds a client configuration from user settings.
func ConfigFromSettings(settings domain.Settings) Config {
	return Config{
		Credentials:       settings.Credentials,
		RequestsPerSecond: settings.RequestsPerSecond,
	}
}

func (c Config) withDefaults() Config {
	if c.RequestsPerSecond <= 0 {
		c.RequestsPerSecond = ProactiveRate
	}
	if c.SearchRequestsPerSecond <= 0 {
		c.SearchRequestsPerSecond = SearchRate
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	return c
}

// httpClient returns an HTTP client authenticating with the configured credentials.
func (c Config) httpClient(ctx context.Context) *http.Client {
	var hc *http.Client
	switch c.Credentials.Method() {
	case domain.AuthMethodPAT:
		ts := oauth2.StaticTokenSource(
			&oauth2.Token{AccessToken: c.Credentials.Token},
		)
		hc = oauth2.NewClient(ctx, ts)
	case domain.AuthMethodOAuthApp:
		hc = (&gh.BasicAuthTransport{
			Username: c.Credentials.ClientID,
			Password: c.Credentials.ClientSecret,
		}).Client()
	default:
		hc = &http.Client{}
	}
	hc.Timeout = c.Timeout
	return hc
}

// coreLimit is the hourly core quota assumed before the first response.
func (c Config) coreLimit() int {
	if c.Credentials.Method() == domain.AuthMethodNone {
		return AnonymousRateLimit
	}
	return GitHubRateLimit
}

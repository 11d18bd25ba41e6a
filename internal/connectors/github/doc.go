// Package github implements the GitHub source used to discover the users of
// a repository and to infer their email addresses.
//
// # Architecture
//
// The package follows the driven port pattern defined in [driven.GitHubSource].
// It comprises the following components:
//
//   - Client: one method per REST listing, each fetching a single page
//   - RateLimiter: proactive and reactive throttling per rate-limit bucket
//   - Config: authentication, throttling and endpoint settings
//
// Paging is driven by the caller. List methods return one entry per item of
// the requested page, so a page shorter than the requested size marks the end
// of the listing.
//
// # Authentication
//
// Three authentication methods are supported:
//
//   - Personal Access Tokens (PAT): sent as a bearer token through
//     golang.org/x/oauth2. 5,000 requests per hour.
//
//   - OAuth App: the client id and secret are sent with basic
//     authentication, raising the limit for public data to 5,000
//     requests per hour.
//
//   - Anonymous: no credentials, 60 requests per hour.
//
// # Rate Limiting
//
// Core and search endpoints have separate buckets, each with its own
// RateLimiter:
//
//  1. Proactive throttling: a token bucket limits core requests to
//     approximately 1.2 requests per second and search requests to one
//     every two seconds.
//
//  2. Reactive handling: the limiter monitors X-RateLimit-Remaining and
//     X-RateLimit-Reset headers. When the remaining quota falls under a
//     buffer, it waits until the reset time before continuing.
//
// Requests are never retried. An exhausted quota is returned as a
// [RateLimitError], which matches [domain.ErrRateLimited].
//
// # Pagination Caps
//
// The events and search endpoints refuse pages past a fixed history with a
// 422 response. Such a page is reported as empty, ending the listing.
//
// # Example Usage
//
//	client, err := github.NewClient(ctx, github.ConfigFromSettings(settings))
//	if err != nil {
//	    return err
//	}
//
//	logins, err := client.ListStargazers(ctx, repo, domain.FirstPage())
package github

package services

import (
	"context"
	"fmt"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/gee/internal/core/domain"
	"github.com/custodia-labs/gee/internal/core/ports/driven"
)

// EmailResolver resolves profiles and infers emails for discovered users.
type EmailResolver struct {
	source driven.GitHubSource
	cache  driven.Cache
}

// NewEmailResolver creates a resolver. cache may be nil.
func NewEmailResolver(source driven.GitHubSource, cache driven.Cache) *EmailResolver {
	return &EmailResolver{source: source, cache: cache}
}

// Resolve resolves every handle concurrently. The result keeps the input order.
// Any failure fails the whole batch.
func (r *EmailResolver) Resolve(ctx context.Context, handles []string) ([]domain.ResolvedUser, error) {
	resolved := make([]domain.ResolvedUser, len(handles))

	g, gctx := errgroup.WithContext(ctx)
	for i, handle := range handles {
		g.Go(func() error {
			user, err := r.ResolveUser(gctx, handle)
			if err != nil {
				return err
			}
			resolved[i] = user
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return resolved, nil
}

// ResolveUser fetches a profile and, when it declares no email, infers
// candidates from the user's public push events. Events are never fetched
// for a profile with a declared email.
func (r *EmailResolver) ResolveUser(ctx context.Context, handle string) (domain.ResolvedUser, error) {
	profile, err := Wrap(ctx, r.cache, "info-"+handle, func(ctx context.Context) (domain.Profile, error) {
		return r.source.GetUser(ctx, handle)
	})
	if err != nil {
		return domain.ResolvedUser{}, fmt.Errorf("get user %s: %w", handle, err)
	}

	user := domain.ResolvedUser{
		Handle:      profile.Handle,
		DisplayName: profile.DisplayName,
	}
	if user.Handle == "" {
		user.Handle = handle
	}

	if profile.HasDeclaredEmail() {
		user.Emails = []string{profile.DeclaredEmail}
		return user, nil
	}

	events, err := r.pushEvents(ctx, handle)
	if err != nil {
		return domain.ResolvedUser{}, fmt.Errorf("list events of %s: %w", handle, err)
	}
	user.Emails = InferEmails(events)
	return user, nil
}

// pushEvents returns the push events of a user. Only push events are cached.
func (r *EmailResolver) pushEvents(ctx context.Context, handle string) ([]domain.PublicEvent, error) {
	return Wrap(ctx, r.cache, "push-events-"+handle, func(ctx context.Context) ([]domain.PublicEvent, error) {
		events, err := Collect(ctx, func(ctx context.Context, page domain.Page) ([]domain.PublicEvent, error) {
			return r.source.ListPublicEvents(ctx, handle, page)
		})
		if err != nil {
			return nil, err
		}
		pushes := make([]domain.PublicEvent, 0, len(events))
		for _, e := range events {
			if e.IsPush() {
				pushes = append(pushes, e)
			}
		}
		return pushes, nil
	})
}

// InferEmails extracts commit author emails from push events, drops
// privacy-proxy addresses and ranks the rest by occurrence.
func InferEmails(events []domain.PublicEvent) []string {
	var emails []string
	for _, e := range events {
		if !e.IsPush() {
			continue
		}
		for _, email := range e.CommitEmails {
			if email == "" || domain.IsPrivacyProxy(email) {
				continue
			}
			emails = append(emails, email)
		}
	}
	return RankByOccurrence(emails)
}

// RankByOccurrence returns the distinct values ordered by descending count.
// Equal counts keep first-seen order.
func RankByOccurrence(values []string) []string {
	counts := make(map[string]int, len(values))
	ranked := make([]string, 0, len(values))
	for _, v := range values {
		if counts[v] == 0 {
			ranked = append(ranked, v)
		}
		counts[v]++
	}

	slices.SortStableFunc(ranked, func(a, b string) int {
		return counts[b] - counts[a]
	})
	return ranked
}

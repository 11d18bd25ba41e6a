package domain

import "math"

// RepositoryReport is the result of processing one repository.
type RepositoryReport struct {
	// Repo is the processed repository.
	Repo RepositoryRef

	// Topics are the repository topics.
	Topics []string

	// ResolvedUsers are the discovered users in discovery order.
	ResolvedUsers []ResolvedUser

	// Yields record what each discovery step contributed, in merge order.
	Yields []DiscoveryYield

	// UsersCount is the number of distinct users discovered.
	UsersCount int

	// EmailsCount is the number of users with at least one email.
	EmailsCount int

	// EmailRate is round(EmailsCount/UsersCount*100), 0 without users.
	EmailRate int
}

// NewRepositoryReport assembles a report and computes its counts.
func NewRepositoryReport(
	repo RepositoryRef, topics []string, users []ResolvedUser, yields []DiscoveryYield,
) *RepositoryReport {
	counts := CountEmails(users)
	return &RepositoryReport{
		Repo:          repo,
		Topics:        topics,
		ResolvedUsers: users,
		Yields:        yields,
		UsersCount:    counts.Users,
		EmailsCount:   counts.Emails,
		EmailRate:     counts.Rate,
	}
}

// EmailRate returns round(emails/users*100). It returns 0 when users is 0.
func EmailRate(emails, users int) int {
	if users <= 0 {
		return 0
	}
	return int(math.Round(float64(emails) / float64(users) * 100))
}

// EmailCounts is a users/emails/rate triple.
type EmailCounts struct {
	Users  int
	Emails int
	Rate   int
}

// CountEmails counts users and users with at least one email.
func CountEmails(users []ResolvedUser) EmailCounts {
	c := EmailCounts{Users: len(users)}
	for _, u := range users {
		if u.HasEmail() {
			c.Emails++
		}
	}
	c.Rate = EmailRate(c.Emails, c.Users)
	return c
}

// BatchSummary is the cross-repository reduction of a batch.
type BatchSummary struct {
	// RunID identifies the extraction run.
	RunID string

	// Reports are the per-repository reports in processing order.
	Reports []RepositoryReport

	// Totals sums per-repository counts. A user present in
	// several repositories is counted once per repository.
	Totals EmailCounts

	// Unique counts users deduplicated by handle across repositories.
	Unique EmailCounts

	// UniqueUsers are the deduplicated users, first occurrence wins.
	UniqueUsers []ResolvedUser

	// ExportPath is the single export file, when every report went to one file.
	ExportPath string
}

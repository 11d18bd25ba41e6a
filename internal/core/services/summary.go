package services

import "github.com/custodia-labs/gee/internal/core/domain"

// Summarise reduces per-repository reports into a batch summary.
// Totals add up per-repository counts; Unique counts each handle once,
// keeping its first occurrence.
func Summarise(reports []domain.RepositoryReport) domain.BatchSummary {
	summary := domain.BatchSummary{Reports: reports}

	seen := domain.NewUserSet()
	for _, report := range reports {
		summary.Totals.Users += report.UsersCount
		summary.Totals.Emails += report.EmailsCount

		for _, user := range report.ResolvedUsers {
			if seen.Add(user.Handle) {
				summary.UniqueUsers = append(summary.UniqueUsers, user)
			}
		}
	}

	summary.Totals.Rate = domain.EmailRate(summary.Totals.Emails, summary.Totals.Users)
	summary.Unique = domain.CountEmails(summary.UniqueUsers)
	return summary
}

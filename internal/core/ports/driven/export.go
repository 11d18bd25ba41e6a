package driven

import "github.com/custodia-labs/gee/internal/core/domain"

// ReportSink receives finished repository reports.
type ReportSink interface {
	// Write accepts one complete report. Implementations writing one file per
	// repository persist it immediately and return the path written.
	// Implementations writing a single file return an empty path.
	Write(report *domain.RepositoryReport) (string, error)

	// Flush persists anything buffered and returns the path written, if any.
	Flush() (string, error)
}

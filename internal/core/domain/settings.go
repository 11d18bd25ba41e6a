package domain

import "time"

// Defaults applied when neither configuration nor flags set a value.
const (
	DefaultMaxEmails         = 3
	DefaultCacheExpiryDays   = 7
	DefaultRequestsPerSecond = 1.2
)

// Settings holds the effective configuration of an extraction run.
type Settings struct {
	// Credentials authenticate against the GitHub API.
	Credentials Credentials

	// MaxEmails is the number of email columns in the export.
	MaxEmails int

	// CacheExpiryDays is how long cached responses stay valid.
	// Zero disables the persistent cache.
	CacheExpiryDays int

	// CachePath is the directory holding the cache database.
	// Empty selects the default location.
	CachePath string

	// OwnerMode selects where the repository owner enters the funnel.
	OwnerMode OwnerMode

	// RequestsPerSecond is the proactive client-side throttle for core API calls.
	RequestsPerSecond float64
}

// DefaultSettings returns settings with every default applied.
func DefaultSettings() Settings {
	return Settings{
		MaxEmails:         DefaultMaxEmails,
		CacheExpiryDays:   DefaultCacheExpiryDays,
		OwnerMode:         OwnerAsStep,
		RequestsPerSecond: DefaultRequestsPerSecond,
	}
}

// CacheTTL returns the cache expiry as a duration.
func (s Settings) CacheTTL() time.Duration {
	return time.Duration(s.CacheExpiryDays) * 24 * time.Hour
}

// CacheEnabled reports whether the persistent cache should be used.
func (s Settings) CacheEnabled() bool {
	return s.CacheExpiryDays > 0
}

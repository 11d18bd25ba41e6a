package driven

import "context"

// Cache is a key-value store with time-based expiry.
// Values are encoded by the implementation; callers pass pointers to decode into.
//
// Keys form a namespace shared across runs:
//
//   - "<step>-<owner>/<repo>": handles found by a discovery step
//   - "topics-<owner>/<repo>": repository topics
//   - "info-<handle>": user profile
//   - "push-events-<handle>": push events of a user
//   - "search-repo-<query>": repository search results
type Cache interface {
	// Get decodes the value stored under key into dst.
	// Returns false when the key is absent or expired.
	Get(ctx context.Context, key string, dst any) (bool, error)

	// Set stores value under key, replacing any previous entry.
	Set(ctx context.Context, key string, value any) error
}

package domain

import "time"

// RateWindow is the quota of one GitHub rate-limit bucket.
type RateWindow struct {
	Remaining int
	Limit     int
	Reset     time.Time
}

// RateLimitStatus is the quota of the buckets gee consumes.
type RateLimitStatus struct {
	Core   RateWindow
	Search RateWindow
}

// Package domain defines the core business entities for gee.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - RepositoryRef: an owner/name pair identifying a repository
//   - UserSet: the deduplicated, insertion-ordered set of discovered handles
//   - DiscoveryStep and DiscoveryYield: the discovery funnel and its per-step yield
//   - Profile, PublicEvent and ResolvedUser: profile data and inferred emails
//   - RepositoryReport and BatchSummary: per-repository and cross-repository results
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain

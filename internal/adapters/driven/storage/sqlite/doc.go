// Package sqlite provides the persistent response cache.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that
// requires no CGO, enabling easy cross-compilation. Values are stored as JSON
// under the cache key namespace shared by every service, so a later run
// reuses listings, profiles and push events fetched by an earlier one.
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory. Each migration is a pair of .up.sql and .down.sql files.
//
// # Expiry
//
// Every entry carries an absolute expiry time derived from the cache TTL.
// Expired entries are never returned and are deleted when the store opens.
//
// # Data Location
//
// By default, the database is stored at ~/.gee/cache/cache.db
//
// # Thread Safety
//
// All operations are thread-safe. Concurrent writers are serialised through
// a single connection.
package sqlite

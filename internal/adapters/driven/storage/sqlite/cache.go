package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/custodia-labs/gee/internal/core/ports/driven"
)

// cacheStore implements driven.Cache.
type cacheStore struct {
	store *Store
	ttl   time.Duration
}

var _ driven.Cache = (*cacheStore)(nil)

// Get decodes the live entry for key into dst.
// Returns false and no error if the key is absent or expired.
func (c *cacheStore) Get(ctx context.Context, key string, dst any) (bool, error) {
	var value []byte
	err := c.store.db.QueryRowContext(ctx, `
		SELECT value FROM cache_entries WHERE key = ? AND expires_at > ?
	`, key, c.store.now().Unix()).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("querying cache entry: %w", err)
	}

	if err := json.Unmarshal(value, dst); err != nil {
		return false, fmt.Errorf("decoding cache entry %s: %w", key, err)
	}
	return true, nil
}

// Set stores value under key, replacing any previous entry.
func (c *cacheStore) Set(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encoding cache entry %s: %w", key, err)
	}

	now := c.store.now()
	_, err = c.store.db.ExecContext(ctx, `
		INSERT INTO cache_entries (key, value, created_at, expires_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			created_at = excluded.created_at,
			expires_at = excluded.expires_at
	`, key, data, now.Unix(), now.Add(c.ttl).Unix())
	if err != nil {
		return fmt.Errorf("saving cache entry: %w", err)
	}
	return nil
}

package ratingcache

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"proflens/internal/rating"
)

// Entry is one cache row as exposed to the management CLI.
type Entry struct {
	Key        string
	Resolution rating.Resolution
	ExpiresAt  *time.Time
	CachedAt   time.Time
}

// List returns all entries sorted by most recently cached. Expired and
// unreadable rows are included so operators can see exactly what is stored.
func (s *Store) List(ctx context.Context) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT cache_key, payload_json, expires_at, cached_at
         FROM rating_cache ORDER BY cached_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list cache entries: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			entry     Entry
			payload   string
			expiresAt sql.NullString
			cachedAt  string
		)
		if err := rows.Scan(&entry.Key, &payload, &expiresAt, &cachedAt); err != nil {
			return nil, fmt.Errorf("scan cache entry: %w", err)
		}
		_ = json.Unmarshal([]byte(payload), &entry.Resolution)
		if parsed, err := time.Parse(timeLayout, cachedAt); err == nil {
			entry.CachedAt = parsed
		}
		if expiresAt.Valid {
			if parsed, err := time.Parse(timeLayout, expiresAt.String); err == nil {
				entry.ExpiresAt = &parsed
			}
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// Remove deletes one entry by key.
func (s *Store) Remove(ctx context.Context, key string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM rating_cache WHERE cache_key = ?`, key)
	if err != nil {
		return fmt.Errorf("remove cache entry: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("cache key %q not found", key)
	}
	return nil
}

// Clear removes all entries.
func (s *Store) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM rating_cache`); err != nil {
		return fmt.Errorf("clear cache: %w", err)
	}
	return nil
}

// Count returns the number of stored entries, fresh or expired.
func (s *Store) Count(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM rating_cache`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count cache entries: %w", err)
	}
	return count, nil
}

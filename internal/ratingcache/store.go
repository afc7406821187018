package ratingcache

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"proflens/internal/logging"
	"proflens/internal/rating"
)

const timeLayout = time.RFC3339Nano

// Store persists resolved ratings in SQLite with per-entry expiration.
// Entries are full-row overwrites; concurrent writers for the same key race
// on last-write-wins, which is safe because values are immutable snapshots.
type Store struct {
	db     *sql.DB
	path   string
	logger *slog.Logger
}

// Open initializes or connects to the cache database at path.
func Open(path string, logger *slog.Logger) (*Store, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("cache database path required")
	}
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create cache directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	const schema = `
        CREATE TABLE IF NOT EXISTS rating_cache (
            cache_key    TEXT PRIMARY KEY,
            payload_json TEXT NOT NULL,
            expires_at   TEXT,
            cached_at    TEXT NOT NULL
        )`
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &Store{
		db:     db,
		path:   path,
		logger: logging.NewComponentLogger(logger, "ratingcache"),
	}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Key builds the deterministic cache key for one instructor at one school:
// school id (or "unknown"), surname, and given name, uppercased.
func Key(schoolID, firstName, lastName string) string {
	if strings.TrimSpace(schoolID) == "" {
		schoolID = "unknown"
	}
	return strings.ToUpper(schoolID) + "|" + strings.ToUpper(lastName) + "|" + strings.ToUpper(firstName)
}

// GetWithTTL returns the cached resolution for key if present and fresh.
// Expired or unparseable entries are deleted and reported as a miss; there is
// no background sweep.
func (s *Store) GetWithTTL(ctx context.Context, key string) (rating.Resolution, bool, error) {
	var payload string
	var expiresAt sql.NullString

	row := s.db.QueryRowContext(ctx,
		`SELECT payload_json, expires_at FROM rating_cache WHERE cache_key = ?`, key)
	if err := row.Scan(&payload, &expiresAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return rating.Resolution{}, false, nil
		}
		return rating.Resolution{}, false, fmt.Errorf("read cache entry: %w", err)
	}

	if expiresAt.Valid {
		expiry, err := time.Parse(timeLayout, expiresAt.String)
		if err != nil || !time.Now().Before(expiry) {
			if delErr := s.delete(ctx, key); delErr != nil {
				return rating.Resolution{}, false, delErr
			}
			return rating.Resolution{}, false, nil
		}
	}

	var res rating.Resolution
	if err := json.Unmarshal([]byte(payload), &res); err != nil || !res.Valid() {
		// Corrupt payloads are a miss, not a failure.
		s.logger.Warn("discarding unreadable cache entry",
			logging.String(logging.FieldEventType, "cache_entry_corrupt"),
			logging.String("cache_key", key))
		if delErr := s.delete(ctx, key); delErr != nil {
			return rating.Resolution{}, false, delErr
		}
		return rating.Resolution{}, false, nil
	}

	return res, true, nil
}

// SetWithTTL stores a resolution under key. A non-positive ttl means the
// entry never expires. Existing entries are fully replaced.
func (s *Store) SetWithTTL(ctx context.Context, key string, res rating.Resolution, ttl time.Duration) error {
	payload, err := json.Marshal(res)
	if err != nil {
		return fmt.Errorf("marshal cache entry: %w", err)
	}

	now := time.Now().UTC()
	var expiresAt any
	if ttl > 0 {
		expiresAt = now.Add(ttl).Format(timeLayout)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO rating_cache (cache_key, payload_json, expires_at, cached_at)
         VALUES (?, ?, ?, ?)
         ON CONFLICT(cache_key) DO UPDATE SET
             payload_json = excluded.payload_json,
             expires_at = excluded.expires_at,
             cached_at = excluded.cached_at`,
		key, string(payload), expiresAt, now.Format(timeLayout))
	if err != nil {
		return fmt.Errorf("write cache entry: %w", err)
	}

	s.logger.Debug("cached resolution",
		logging.String("cache_key", key),
		logging.Bool("not_found", res.NotFound),
		logging.Duration("ttl", ttl))
	return nil
}

func (s *Store) delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM rating_cache WHERE cache_key = ?`, key); err != nil {
		return fmt.Errorf("delete cache entry: %w", err)
	}
	return nil
}

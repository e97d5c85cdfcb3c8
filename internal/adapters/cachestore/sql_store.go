package cachestore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// SQLStore is a Postgres-backed CacheStore. Each row carries its own
// created_at and ttl_seconds; expiry is evaluated on read, so a stale row
// is a miss until the next Put overwrites it.
type SQLStore struct {
	DB *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{DB: db}
}

// InitSchema creates the cache table. Safe to run repeatedly.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init cache schema: db is nil")
	}

	q := `
	CREATE TABLE IF NOT EXISTS flight_cache (
		signature   TEXT PRIMARY KEY,
		payload     BYTEA NOT NULL,
		created_at  TIMESTAMPTZ NOT NULL,
		ttl_seconds BIGINT NOT NULL
	);
	`
	if _, err := db.Exec(q); err != nil {
		return fmt.Errorf("init cache schema: create flight_cache table: %w", err)
	}
	return nil
}

func (s *SQLStore) Get(ctx context.Context, signature string) ([]byte, bool, error) {
	if s.DB == nil {
		return nil, false, errors.New("sql cache get: db is nil")
	}
	if signature == "" {
		return nil, false, errors.New("sql cache get: signature must be non-empty")
	}

	q := `
	SELECT payload, created_at, ttl_seconds
	FROM flight_cache
	WHERE signature = $1;
	`

	var (
		payload    []byte
		createdAt  time.Time
		ttlSeconds int64
	)
	err := s.DB.QueryRowContext(ctx, q, signature).Scan(&payload, &createdAt, &ttlSeconds)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("sql cache get %q: %w", signature, err)
	}

	if time.Now().After(createdAt.Add(time.Duration(ttlSeconds) * time.Second)) {
		return nil, false, nil
	}
	return payload, true, nil
}

func (s *SQLStore) Put(ctx context.Context, signature string, payload []byte, ttl time.Duration) error {
	if s.DB == nil {
		return errors.New("sql cache put: db is nil")
	}
	if signature == "" {
		return errors.New("sql cache put: signature must be non-empty")
	}

	q := `
	INSERT INTO flight_cache (signature, payload, created_at, ttl_seconds)
	VALUES ($1, $2, $3, $4)
	ON CONFLICT (signature) DO UPDATE
	SET payload     = EXCLUDED.payload,
		created_at  = EXCLUDED.created_at,
		ttl_seconds = EXCLUDED.ttl_seconds;
	`
	if _, err := s.DB.ExecContext(ctx, q, signature, payload, time.Now().UTC(), int64(ttl.Seconds())); err != nil {
		return fmt.Errorf("sql cache put %q: %w", signature, err)
	}
	return nil
}

// DeleteStale removes rows past their TTL and returns how many were
// dropped. Used by the cache maintenance tool; reads never serve stale rows
// either way.
func (s *SQLStore) DeleteStale(ctx context.Context) (int64, error) {
	if s.DB == nil {
		return 0, errors.New("sql cache delete stale: db is nil")
	}

	q := `
	DELETE FROM flight_cache
	WHERE created_at + ttl_seconds * INTERVAL '1 second' < NOW();
	`
	res, err := s.DB.ExecContext(ctx, q)
	if err != nil {
		return 0, fmt.Errorf("sql cache delete stale: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("sql cache delete stale: rows affected: %w", err)
	}
	return n, nil
}

func (s *SQLStore) Close() error {
	if s.DB == nil {
		return nil
	}
	return s.DB.Close()
}

package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Session is the locally persisted view of an authenticated session. The
// alert journal keys its seen-flags on the session id, so sessions survive
// process restarts.
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Roles     []string  `json:"roles"`
	CreatedAt time.Time `json:"created_at"`
}

// MigrationSessions is the SQL DDL for the sessions table. It is safe to
// execute multiple times (uses IF NOT EXISTS). Callers run this at
// application startup as an auto-migration step.
const MigrationSessions = `
CREATE TABLE IF NOT EXISTS sessions (
    id           TEXT PRIMARY KEY,
    session_json JSONB NOT NULL,
    created_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
    expires_at   TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_sessions_expires_at
    ON sessions (expires_at);
`

// ---------------------------------------------------------------------------
// pgRow / pgConn abstractions (allow unit testing without a real DB)
// ---------------------------------------------------------------------------

// pgRow represents a single row returned by QueryRow.
type pgRow interface {
	Scan(dest ...any) error
}

// pgConn is the minimal database interface required by PGSessionStore.
// Both *pgxpool.Pool (via a thin adapter) and test mocks implement this.
type pgConn interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgRow
	Exec(ctx context.Context, sql string, args ...any) error
}

// ---------------------------------------------------------------------------
// PGSessionStore
// ---------------------------------------------------------------------------

// PGSessionStore persists sessions in the sessions table as JSONB with an
// explicit expires_at column that the database uses for filtering.
type PGSessionStore struct {
	db  pgConn
	ttl time.Duration
}

// NewPGSessionStore creates a PG-backed store. The db parameter must satisfy
// the pgConn interface -- use NewPGSessionStoreFromPool to wrap a
// *pgxpool.Pool, or pass a mock in tests.
func NewPGSessionStore(db pgConn, ttl time.Duration) *PGSessionStore {
	return &PGSessionStore{db: db, ttl: ttl}
}

// Save inserts or replaces (upsert) the session in the database.
func (s *PGSessionStore) Save(ctx context.Context, sess *Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	expiresAt := sess.CreatedAt.Add(s.ttl)

	const query = `INSERT INTO sessions (id, session_json, created_at, expires_at)
VALUES ($1, $2, $3, $4)
ON CONFLICT (id) DO UPDATE SET session_json = EXCLUDED.session_json,
                               created_at   = EXCLUDED.created_at,
                               expires_at   = EXCLUDED.expires_at`

	if err := s.db.Exec(ctx, query, sess.ID, data, sess.CreatedAt, expiresAt); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Get selects the session only if it has not expired. A missing or expired
// session yields (nil, nil).
func (s *PGSessionStore) Get(ctx context.Context, id string) (*Session, error) {
	const query = `SELECT session_json FROM sessions
WHERE id = $1 AND expires_at > now()`

	var data []byte
	if err := s.db.QueryRow(ctx, query, id).Scan(&data); err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get session: %w", err)
	}

	sess := &Session{}
	if err := json.Unmarshal(data, sess); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}
	return sess, nil
}

// Delete removes the session regardless of expiry.
func (s *PGSessionStore) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM sessions WHERE id = $1`
	if err := s.db.Exec(ctx, query, id); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// Cleanup deletes all expired rows from the table.
func (s *PGSessionStore) Cleanup(ctx context.Context) error {
	const query = `DELETE FROM sessions WHERE expires_at <= now()`
	if err := s.db.Exec(ctx, query); err != nil {
		return fmt.Errorf("cleanup sessions: %w", err)
	}
	return nil
}

// isNoRows returns true when the error represents a "no rows" condition.
// It works with both pgx (pgx.ErrNoRows) and the mock used in tests.
func isNoRows(err error) bool {
	if err == pgx.ErrNoRows {
		return true
	}
	return err != nil && strings.Contains(err.Error(), "no rows")
}

// ---------------------------------------------------------------------------
// pgxPoolWrapper adapts *pgxpool.Pool to the pgConn interface
// ---------------------------------------------------------------------------

// pgxPoolWrapper wraps a *pgxpool.Pool so it satisfies the pgConn interface.
// The adapter is necessary because pgxpool.Pool.Exec returns
// (pgconn.CommandTag, error) whereas pgConn.Exec returns only error.
type pgxPoolWrapper struct {
	pool *pgxpool.Pool
}

func (w *pgxPoolWrapper) QueryRow(ctx context.Context, sql string, args ...any) pgRow {
	return w.pool.QueryRow(ctx, sql, args...)
}

func (w *pgxPoolWrapper) Exec(ctx context.Context, sql string, args ...any) error {
	_, err := w.pool.Exec(ctx, sql, args...)
	return err
}

// NewPGSessionStoreFromPool creates a PG-backed store directly from a
// *pgxpool.Pool. This is the recommended constructor for production use.
func NewPGSessionStoreFromPool(pool *pgxpool.Pool, ttl time.Duration) *PGSessionStore {
	return &PGSessionStore{
		db:  &pgxPoolWrapper{pool: pool},
		ttl: ttl,
	}
}

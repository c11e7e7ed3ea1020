package alerts

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// MigrationAlertJournal creates the table tracking which alerts each
// session has been shown. Rows are swept together with expired
// sessions.
const MigrationAlertJournal = `
CREATE TABLE IF NOT EXISTS alert_journal (
    session_id TEXT NOT NULL,
    alert_key  TEXT NOT NULL,
    seen_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
    PRIMARY KEY (session_id, alert_key)
);
CREATE INDEX IF NOT EXISTS idx_alert_journal_seen_at ON alert_journal (seen_at);
`

type pgRow interface {
	Scan(dest ...any) error
}

type pgConn interface {
	Exec(ctx context.Context, sql string, args ...any) error
	QueryRow(ctx context.Context, sql string, args ...any) pgRow
}

// PGJournal persists seen alerts in PostgreSQL.
type PGJournal struct {
	db pgConn
}

// NewPGJournal wraps a pgConn, used in tests.
func NewPGJournal(db pgConn) *PGJournal {
	return &PGJournal{db: db}
}

// NewPGJournalFromPool wraps a pgxpool.Pool.
func NewPGJournalFromPool(pool *pgxpool.Pool) *PGJournal {
	return &PGJournal{db: &pgxPoolWrapper{pool: pool}}
}

// Seen reports whether the session has already been shown the alert.
func (j *PGJournal) Seen(ctx context.Context, sessionID, alertKey string) (bool, error) {
	var one int
	err := j.db.QueryRow(ctx,
		`SELECT 1 FROM alert_journal WHERE session_id = $1 AND alert_key = $2`,
		sessionID, alertKey,
	).Scan(&one)
	if err != nil {
		if isNoRows(err) {
			return false, nil
		}
		return false, fmt.Errorf("query alert journal: %w", err)
	}
	return true, nil
}

// MarkSeen records the alert as shown. Replays are idempotent.
func (j *PGJournal) MarkSeen(ctx context.Context, sessionID, alertKey string) error {
	err := j.db.Exec(ctx,
		`INSERT INTO alert_journal (session_id, alert_key, seen_at)
		 VALUES ($1, $2, now())
		 ON CONFLICT (session_id, alert_key) DO NOTHING`,
		sessionID, alertKey,
	)
	if err != nil {
		return fmt.Errorf("insert alert journal: %w", err)
	}
	return nil
}

// Cleanup deletes journal rows older than the given age.
func (j *PGJournal) Cleanup(ctx context.Context, olderThan time.Duration) error {
	err := j.db.Exec(ctx,
		`DELETE FROM alert_journal WHERE seen_at < now() - $1::interval`,
		fmt.Sprintf("%d seconds", int(olderThan.Seconds())),
	)
	if err != nil {
		return fmt.Errorf("cleanup alert journal: %w", err)
	}
	return nil
}

func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows) || strings.Contains(err.Error(), "no rows")
}

// pgxPoolWrapper adapts a pgxpool.Pool to the pgConn interface.
type pgxPoolWrapper struct {
	pool *pgxpool.Pool
}

func (w *pgxPoolWrapper) Exec(ctx context.Context, sql string, args ...any) error {
	_, err := w.pool.Exec(ctx, sql, args...)
	return err
}

func (w *pgxPoolWrapper) QueryRow(ctx context.Context, sql string, args ...any) pgRow {
	return w.pool.QueryRow(ctx, sql, args...)
}

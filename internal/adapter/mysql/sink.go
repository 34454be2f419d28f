package mysql

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	_ "github.com/go-sql-driver/mysql"

	"stopwatch/internal/domain"
)

// Client implements ports.Sink by writing finished sessions to MySQL.
type Client struct {
	db  *sql.DB
	log *slog.Logger
}

// NewClient opens a MySQL connection using the provided DSN.
// Example DSN: user:pass@tcp(host:3306)/dbname?parseTime=true&multiStatements=true
func NewClient(ctx context.Context, dsn string, log *slog.Logger) (*Client, error) {
	if dsn == "" {
		return nil, errors.New("mysql: DSN is required")
	}
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}
	// Archiving happens once per reset; a small pool is plenty.
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(30 * time.Minute)

	c, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(c); err != nil {
		db.Close()
		return nil, err
	}
	return &Client{db: db, log: log}, nil
}

// ArchiveSession upserts the session row and replaces its intervals in a
// single transaction.
func (c *Client) ArchiveSession(ctx context.Context, s domain.Session) error {
	tx, err := c.db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return err
	}
	const upsertSession = `
INSERT INTO stopwatch_sessions
  (id, started_at, ended_at, total_elapsed_ms, interval_count)
VALUES
  (?, ?, ?, ?, ?)
ON DUPLICATE KEY UPDATE
  started_at=VALUES(started_at),
  ended_at=VALUES(ended_at),
  total_elapsed_ms=VALUES(total_elapsed_ms),
  interval_count=VALUES(interval_count);
`
	if _, err := tx.ExecContext(ctx, upsertSession,
		s.ID,
		msToTime(s.StartedAt),
		msToTime(s.EndedAt),
		s.TotalElapsedMs,
		len(s.Intervals),
	); err != nil {
		tx.Rollback()
		return err
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM stopwatch_intervals WHERE session_id = ?", s.ID); err != nil {
		tx.Rollback()
		return err
	}

	stmt, err := tx.PrepareContext(ctx, `
INSERT INTO stopwatch_intervals
  (session_id, position, started_at, elapsed_ms)
VALUES
  (?, ?, ?, ?);
`)
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()

	for i, e := range s.Intervals {
		var elapsed int64
		if e.ElapsedMs != nil {
			elapsed = *e.ElapsedMs
		}
		if _, err := stmt.ExecContext(ctx, s.ID, i, msToTime(e.StartedAt), elapsed); err != nil {
			tx.Rollback()
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	c.log.Info("mysql sink archived session",
		slog.String("session", s.ID),
		slog.Int("intervals", len(s.Intervals)),
	)
	return nil
}

// Close closes the underlying DB. Not wired via interface to keep ports minimal.
func (c *Client) Close() error { return c.db.Close() }

func msToTime(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}

package storage

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultHistory is how many snapshots SQLite keeps when no limit is given.
const DefaultHistory = 20

// SQLite keeps task snapshots as rows of a sqlite table. Every save adds a
// row; the newest row is the current state and older rows beyond the history
// limit are pruned.
type SQLite struct {
	db      *sql.DB
	history int
	now     func() time.Time
}

// OpenSQLite opens (creating and migrating if needed) the database at path.
func OpenSQLite(path string, history int) (*SQLite, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("sqlite path required")
	}
	db, err := openDB(path)
	if err != nil {
		return nil, err
	}
	if err := RunMigrations(path); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	if history <= 0 {
		history = DefaultHistory
	}
	return &SQLite{
		db:      db,
		history: history,
		now:     func() time.Time { return time.Now().UTC() },
	}, nil
}

// Close closes the database.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// OpenReader returns the newest snapshot body.
func (s *SQLite) OpenReader() (io.ReadCloser, error) {
	var body string
	err := s.db.QueryRowContext(context.Background(),
		`SELECT body FROM snapshots ORDER BY seq DESC LIMIT 1`).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errors.New("no snapshot stored")
	}
	if err != nil {
		return nil, fmt.Errorf("query snapshot: %w", err)
	}
	return io.NopCloser(strings.NewReader(body)), nil
}

// OpenWriter buffers a snapshot; the row is written when the writer is closed.
func (s *SQLite) OpenWriter() (io.WriteCloser, error) {
	if err := s.db.PingContext(context.Background()); err != nil {
		return nil, fmt.Errorf("ping db: %w", err)
	}
	return &snapshotWriter{s: s}, nil
}

// Count returns the number of stored snapshots.
func (s *SQLite) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM snapshots`).Scan(&n)
	return n, err
}

func (s *SQLite) insert(body string) error {
	return withTx(s.db, func(tx *sql.Tx) error {
		if _, err := tx.Exec(`INSERT INTO snapshots(id, saved_at, body) VALUES (?, ?, ?)`,
			uuid.NewString(), s.now(), body); err != nil {
			return fmt.Errorf("insert snapshot: %w", err)
		}
		if _, err := tx.Exec(`
	DELETE FROM snapshots
	WHERE seq NOT IN (SELECT seq FROM snapshots ORDER BY seq DESC LIMIT ?)`, s.history); err != nil {
			return fmt.Errorf("prune snapshots: %w", err)
		}
		return nil
	})
}

type snapshotWriter struct {
	s      *SQLite
	buf    bytes.Buffer
	closed bool
}

func (w *snapshotWriter) Write(p []byte) (int, error) {
	if w.closed {
		return 0, errors.New("snapshot writer closed")
	}
	return w.buf.Write(p)
}

func (w *snapshotWriter) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	return w.s.insert(w.buf.String())
}

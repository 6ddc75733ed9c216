// Package journal records provisioning runs in a SQLite database.
// The journal is an audit trail; runs never read it back to skip downloads.
package journal

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/joeblew999/carto-fonts/pkg/font"
	"github.com/zeromicro/go-zero/core/stores/sqlx"
	_ "modernc.org/sqlite"
)

// Run statuses.
const (
	StatusRunning   = "running"
	StatusSucceeded = "succeeded"
	StatusFailed    = "failed"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id TEXT PRIMARY KEY,
	variant TEXT NOT NULL,
	status TEXT NOT NULL,
	reason TEXT,
	error TEXT,
	started_at DATETIME NOT NULL,
	finished_at DATETIME
);

CREATE TABLE IF NOT EXISTS files (
	id TEXT PRIMARY KEY,
	run_id TEXT NOT NULL,
	name TEXT NOT NULL,
	url TEXT NOT NULL,
	path TEXT NOT NULL,
	size INTEGER NOT NULL,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (run_id) REFERENCES runs(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_files_run ON files(run_id);
CREATE INDEX IF NOT EXISTS idx_files_name ON files(name);
`

// Journal wraps the SQLite run history.
type Journal struct {
	db   *sql.DB
	conn sqlx.SqlConn
	path string
}

// Run is one row of the runs table.
type Run struct {
	ID         string         `db:"id"`
	Variant    string         `db:"variant"`
	Status     string         `db:"status"`
	Reason     sql.NullString `db:"reason"`
	Error      sql.NullString `db:"error"`
	StartedAt  string         `db:"started_at"`
	FinishedAt sql.NullString `db:"finished_at"`
}

// File is one row of the files table.
type File struct {
	ID        string `db:"id"`
	RunID     string `db:"run_id"`
	Name      string `db:"name"`
	URL       string `db:"url"`
	Path      string `db:"path"`
	Size      int64  `db:"size"`
	CreatedAt string `db:"created_at"`
}

// Open opens or creates the journal at path.
func Open(path string) (*Journal, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create journal directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}

	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("execute pragma %q: %w", pragma, err)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return &Journal{
		db:   db,
		conn: sqlx.NewSqlConnFromDB(db, sqlx.WithAcceptable(sqliteAcceptable)),
		path: path,
	}, nil
}

// Path returns the database file path.
func (j *Journal) Path() string {
	return j.path
}

// Close closes the database.
func (j *Journal) Close() error {
	return j.db.Close()
}

// StartRun inserts a running row and returns its id.
func (j *Journal) StartRun(ctx context.Context, variant string) (string, error) {
	id := uuid.New().String()
	_, err := j.conn.ExecCtx(ctx,
		"insert into runs (id, variant, status, started_at) values (?, ?, ?, ?)",
		id, variant, StatusRunning, now())
	if err != nil {
		return "", fmt.Errorf("start run: %w", err)
	}
	return id, nil
}

// FinishRun records the files a run wrote and its outcome.
// Files are recorded for failed runs too, since they stay on disk.
func (j *Journal) FinishRun(ctx context.Context, runID string, files []font.FileInfo, reason string, runErr error) error {
	return j.conn.TransactCtx(ctx, func(ctx context.Context, session sqlx.Session) error {
		for _, f := range files {
			if _, err := session.ExecCtx(ctx,
				"insert into files (id, run_id, name, url, path, size, created_at) values (?, ?, ?, ?, ?, ?, ?)",
				uuid.New().String(), runID, f.Name, f.URL, f.Path, f.Size, now()); err != nil {
				return fmt.Errorf("record file %s: %w", f.Name, err)
			}
		}

		status, errText := StatusSucceeded, sql.NullString{}
		if runErr != nil {
			status = StatusFailed
			errText = sql.NullString{String: runErr.Error(), Valid: true}
		}
		_, err := session.ExecCtx(ctx,
			"update runs set status = ?, reason = ?, error = ?, finished_at = ? where id = ?",
			status, sql.NullString{String: reason, Valid: reason != ""}, errText, now(), runID)
		return err
	})
}

// GetRun returns one run.
func (j *Journal) GetRun(ctx context.Context, runID string) (Run, error) {
	var r Run
	err := j.conn.QueryRowCtx(ctx, &r,
		"select id, variant, status, reason, error, started_at, finished_at from runs where id = ?", runID)
	return r, err
}

// Files returns the files recorded for a run, in name order.
func (j *Journal) Files(ctx context.Context, runID string) ([]File, error) {
	var files []File
	err := j.conn.QueryRowsCtx(ctx, &files,
		"select id, run_id, name, url, path, size, created_at from files where run_id = ? order by name", runID)
	return files, err
}

// RecentRuns returns the latest runs, newest first.
func (j *Journal) RecentRuns(ctx context.Context, limit int) ([]Run, error) {
	var runs []Run
	err := j.conn.QueryRowsCtx(ctx, &runs,
		"select id, variant, status, reason, error, started_at, finished_at from runs order by started_at desc, rowid desc limit ?", limit)
	return runs, err
}

// timeLayout has fixed-width fractions so stored timestamps sort as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

func now() string {
	return time.Now().UTC().Format(timeLayout)
}

// sqliteAcceptable keeps "database is locked" contention from tripping the breaker.
func sqliteAcceptable(err error) bool {
	return err == nil || strings.Contains(err.Error(), "database is locked")
}

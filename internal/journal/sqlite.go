package journal

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
	mu sync.RWMutex
}

// NewSQLiteStore opens the journal. Use ":memory:" for an in-memory database, or a
// file path for persistent storage.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	// An in-memory database exists per connection.
	db.SetMaxOpenConns(1)

	store := &SQLiteStore{db: db}
	if err := store.initialize(); err != nil {
		_ = db.Close() // Best effort cleanup on initialization error
		return nil, fmt.Errorf("initialize schema: %w", err)
	}
	return store, nil
}

func (s *SQLiteStore) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT NOT NULL UNIQUE,
		process_id TEXT NOT NULL,
		identifier TEXT NOT NULL,
		year_id TEXT NOT NULL,
		started INTEGER NOT NULL,
		finished INTEGER NOT NULL,
		status TEXT NOT NULL,
		issues INTEGER NOT NULL,
		anchor TEXT NOT NULL,
		problems TEXT
	);
	CREATE INDEX IF NOT EXISTS idx_runs_identifier ON runs(identifier);
	CREATE INDEX IF NOT EXISTS idx_runs_started ON runs(started);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Record implements Store.
func (s *SQLiteStore) Record(ctx context.Context, run Run) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var problems []byte
	if len(run.Problems) > 0 {
		var err error
		problems, err = json.Marshal(run.Problems)
		if err != nil {
			return fmt.Errorf("marshal problems: %w", err)
		}
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (run_id, process_id, identifier, year_id, started, finished, status, issues, anchor, problems)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.RunID, run.ProcessID, run.Identifier, run.YearID,
		run.Started.UnixMilli(), run.Finished.UnixMilli(),
		string(run.Status), run.Issues, run.Anchor, problems,
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	return nil
}

// History implements Store.
func (s *SQLiteStore) History(ctx context.Context, identifier string, limit int) ([]Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT run_id, process_id, identifier, year_id, started, finished, status, issues, anchor, problems
		FROM runs WHERE ? = '' OR identifier = ? ORDER BY started DESC, id DESC LIMIT ?`,
		identifier, identifier, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var started, finished int64
		var status string
		var problems []byte
		if err := rows.Scan(&r.RunID, &r.ProcessID, &r.Identifier, &r.YearID,
			&started, &finished, &status, &r.Issues, &r.Anchor, &problems); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		r.Started = time.UnixMilli(started)
		r.Finished = time.UnixMilli(finished)
		r.Status = Status(status)
		if len(problems) > 0 {
			if err := json.Unmarshal(problems, &r.Problems); err != nil {
				return nil, fmt.Errorf("unmarshal problems: %w", err)
			}
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return runs, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}

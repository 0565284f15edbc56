// Package journal keeps a history of export runs in SQLite.
package journal

import (
	"context"
	"time"
)

// Status is the final state of an export run.
type Status string

const (
	StatusSuccess Status = "success"
	StatusFailed  Status = "failed"
)

// Run is one export of a process.
type Run struct {
	RunID      string
	ProcessID  string
	Identifier string
	YearID     string
	Started    time.Time
	Finished   time.Time
	Status     Status
	Issues     int
	// Anchor is what happened to the newspaper anchor, see metrics.MergeLabel.
	Anchor   string
	Problems []string
}

// Duration returns how long the run took.
func (r Run) Duration() time.Duration {
	return r.Finished.Sub(r.Started)
}

// Store persists export runs.
type Store interface {
	// Record appends a finished run.
	Record(ctx context.Context, run Run) error

	// History returns the most recent runs first. An empty identifier matches all
	// newspapers; limit <= 0 returns every run.
	History(ctx context.Context, identifier string, limit int) ([]Run, error)

	// Close closes the store and releases resources.
	Close() error
}

// NopStore discards runs.
type NopStore struct{}

func (NopStore) Record(context.Context, Run) error                   { return nil }
func (NopStore) History(context.Context, string, int) ([]Run, error) { return nil, nil }
func (NopStore) Close() error                                        { return nil }

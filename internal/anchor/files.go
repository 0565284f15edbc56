package anchor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"git.home.luguber.info/inful/newspaperexport/internal/logfields"
	"git.home.luguber.info/inful/newspaperexport/internal/mets"
	"git.home.luguber.info/inful/newspaperexport/internal/storage"
)

// Result describes the outcome of a file merge.
type Result struct {
	// Merged is false when the new volumes were already listed.
	Merged  bool
	Volumes []Volume
}

// Merger merges anchor files through a storage provider.
type Merger struct {
	fs     storage.Provider
	locker Locker
}

// NewMerger returns a Merger. A nil locker disables locking.
func NewMerger(fs storage.Provider, locker Locker) *Merger {
	if locker == nil {
		locker = NopLocker{}
	}
	return &Merger{fs: fs, locker: locker}
}

// Lock takes the lock for an identifier. Callers use it to keep the existence
// check, merge and relocation of one newspaper's anchor together.
func (m *Merger) Lock(ctx context.Context, identifier string) (func() error, error) {
	return m.locker.Lock(ctx, identifier)
}

// MergeFiles merges the volumes of the anchor at newPath into the anchor at
// existingPath and rewrites existingPath. The new file is left in place. When the
// volumes are already listed the existing file is not touched and Merged is
// false. Any other error leaves the existing file unchanged.
func (m *Merger) MergeFiles(existingPath, newPath string) (*Result, error) {
	existingData, err := m.fs.ReadFile(existingPath)
	if err != nil {
		return nil, fmt.Errorf("read existing anchor: %w", err)
	}
	existingDoc, err := mets.Parse(existingData)
	if err != nil {
		return nil, fmt.Errorf("existing anchor %s: %w", existingPath, err)
	}
	existing, err := ReadVolumes(existingDoc)
	if err != nil {
		return nil, fmt.Errorf("existing anchor %s: %w", existingPath, err)
	}

	newData, err := m.fs.ReadFile(newPath)
	if err != nil {
		return nil, fmt.Errorf("read new anchor: %w", err)
	}
	newDoc, err := mets.Parse(newData)
	if err != nil {
		return nil, fmt.Errorf("new anchor %s: %w", newPath, err)
	}
	incoming, err := ReadVolumes(newDoc)
	if err != nil {
		return nil, fmt.Errorf("new anchor %s: %w", newPath, err)
	}

	merged, err := Merge(existing, incoming)
	if errors.Is(err, ErrNoMergeNeeded) {
		slog.Info("Anchor already lists the exported volume", logfields.Path(existingPath))
		return &Result{Merged: false, Volumes: existing}, nil
	}
	if err != nil {
		return nil, err
	}

	if err := WriteVolumes(existingDoc, merged); err != nil {
		return nil, err
	}
	out, err := mets.Bytes(existingDoc)
	if err != nil {
		return nil, fmt.Errorf("serialize anchor: %w", err)
	}
	if err := m.fs.WriteFile(existingPath, out); err != nil {
		return nil, fmt.Errorf("write anchor: %w", err)
	}
	slog.Info("Merged anchor",
		logfields.Path(existingPath),
		logfields.Count(len(merged)))
	return &Result{Merged: true, Volumes: merged}, nil
}

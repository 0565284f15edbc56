package commands

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/newspaperexport/internal/anchor"
	"git.home.luguber.info/inful/newspaperexport/internal/foundation/errors"
	"git.home.luguber.info/inful/newspaperexport/internal/storage"
)

// MergeAnchorCmd implements the 'merge-anchor' command.
type MergeAnchorCmd struct {
	Existing string `arg:"" help:"Anchor file that receives the volumes" type:"existingfile"`
	New      string `arg:"" help:"Anchor file whose volumes are added" type:"existingfile"`
	LockDir  string `name:"lock-dir" help:"Directory for the lock file (defaults to .locks next to the folder of the existing anchor)"`
}

func (m *MergeAnchorCmd) Run(_ *Global, _ *CLI) error {
	lockDir := m.LockDir
	if lockDir == "" {
		lockDir = anchor.DefaultLockDir(filepath.Dir(m.Existing))
	}
	merger := anchor.NewMerger(storage.NewOS(), anchor.NewFileLocker(lockDir))

	identifier := strings.TrimSuffix(filepath.Base(m.Existing), ".xml")
	unlock, err := merger.Lock(context.Background(), identifier)
	if err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to lock anchor").
			WithContext("identifier", identifier).Build()
	}
	defer func() {
		if err := unlock(); err != nil {
			slog.Warn("Failed to release anchor lock", "error", err)
		}
	}()

	res, err := merger.MergeFiles(m.Existing, m.New)
	if err != nil {
		return errors.WrapError(err, errors.CategoryMets, "failed to merge anchor").
			WithContext("existing", m.Existing).
			WithContext("new", m.New).
			Build()
	}
	if !res.Merged {
		fmt.Printf("%s already lists every volume of %s\n", m.Existing, m.New)
		return nil
	}
	fmt.Printf("Merged %s into %s (%d volumes)\n", m.New, m.Existing, len(res.Volumes))
	return nil
}

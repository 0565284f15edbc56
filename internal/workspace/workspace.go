package workspace

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/newspaperexport/internal/logfields"
	"git.home.luguber.info/inful/newspaperexport/internal/storage"
)

// ErrNotCreated is returned when the workspace is used before Create.
var ErrNotCreated = errors.New("workspace not created")

// Manager handles the staging directory of one export run
type Manager struct {
	fs      storage.Provider
	baseDir string
	runID   string
	dir     string
}

// NewManager creates a workspace manager below baseDir. An empty baseDir uses the
// system temp directory and an empty runID gets a fresh UUID.
func NewManager(fs storage.Provider, baseDir, runID string) *Manager {
	if baseDir == "" {
		baseDir = os.TempDir()
	}
	if runID == "" {
		runID = uuid.NewString()
	}
	return &Manager{fs: fs, baseDir: baseDir, runID: runID}
}

// RunID returns the identifier used in the directory name
func (m *Manager) RunID() string {
	return m.runID
}

// Create creates the staging directory
func (m *Manager) Create() error {
	dir := filepath.Join(m.baseDir, "mets_export-"+m.runID)
	if err := m.fs.MkdirAll(dir); err != nil {
		return fmt.Errorf("failed to create workspace directory: %w", err)
	}
	m.dir = dir
	slog.Debug("Created workspace", logfields.Path(dir), logfields.RunID(m.runID))
	return nil
}

// GetPath returns the path to the staging directory
func (m *Manager) GetPath() string {
	return m.dir
}

// File returns the path of name inside the staging directory.
func (m *Manager) File(name string) (string, error) {
	if m.dir == "" {
		return "", ErrNotCreated
	}
	return filepath.Join(m.dir, name), nil
}

// Files lists the staged files
func (m *Manager) Files() ([]string, error) {
	if m.dir == "" {
		return nil, ErrNotCreated
	}
	return m.fs.List(m.dir)
}

// Cleanup removes the staging directory. Calling it twice is a no-op.
func (m *Manager) Cleanup() error {
	if m.dir == "" {
		return nil
	}
	if err := m.fs.RemoveAll(m.dir); err != nil {
		return fmt.Errorf("failed to cleanup workspace: %w", err)
	}
	slog.Debug("Cleaned up workspace", logfields.Path(m.dir))
	m.dir = ""
	return nil
}

package workspace

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"git.home.luguber.info/inful/newspaperexport/internal/storage"
)

func TestManager_CreateAndCleanup(t *testing.T) {
	tempBase := t.TempDir()
	mgr := NewManager(storage.NewOS(), tempBase, "")

	if err := mgr.Create(); err != nil {
		t.Fatalf("Create() failed: %v", err)
	}

	wsPath := mgr.GetPath()
	if wsPath == "" {
		t.Fatal("GetPath() returned empty string")
	}
	if !strings.HasPrefix(filepath.Base(wsPath), "mets_export-") {
		t.Errorf("Expected run directory, got: %s", wsPath)
	}
	if !strings.HasSuffix(wsPath, mgr.RunID()) {
		t.Errorf("Expected run id %s in path %s", mgr.RunID(), wsPath)
	}
	if _, err := os.Stat(wsPath); os.IsNotExist(err) {
		t.Errorf("Workspace directory does not exist: %s", wsPath)
	}

	if err := mgr.Cleanup(); err != nil {
		t.Fatalf("Cleanup() failed: %v", err)
	}
	if _, err := os.Stat(wsPath); !os.IsNotExist(err) {
		t.Errorf("Workspace directory still exists after cleanup: %s", wsPath)
	}
	if err := mgr.Cleanup(); err != nil {
		t.Fatalf("second Cleanup() failed: %v", err)
	}
}

func TestManager_FixedRunID(t *testing.T) {
	fs := storage.NewMemory()
	mgr := NewManager(fs, "/tmp/staging", "run-1")
	if err := mgr.Create(); err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if got := mgr.GetPath(); got != "/tmp/staging/mets_export-run-1" {
		t.Errorf("unexpected path: %s", got)
	}

	path, err := mgr.File("1234.xml")
	if err != nil {
		t.Fatalf("File() failed: %v", err)
	}
	if err := fs.WriteFile(path, []byte("x")); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}
	if err := fs.MkdirAll(filepath.Join(mgr.GetPath(), "images")); err != nil {
		t.Fatalf("MkdirAll() failed: %v", err)
	}

	files, err := mgr.Files()
	if err != nil {
		t.Fatalf("Files() failed: %v", err)
	}
	if len(files) != 1 || files[0] != "1234.xml" {
		t.Errorf("expected only the staged file, got %v", files)
	}
}

func TestManager_NotCreated(t *testing.T) {
	mgr := NewManager(storage.NewMemory(), "/tmp", "x")
	if _, err := mgr.File("a"); err != ErrNotCreated {
		t.Errorf("expected ErrNotCreated, got %v", err)
	}
	if _, err := mgr.Files(); err != ErrNotCreated {
		t.Errorf("expected ErrNotCreated, got %v", err)
	}
}

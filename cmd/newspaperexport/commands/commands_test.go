package commands

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/newspaperexport/internal/config"
	"git.home.luguber.info/inful/newspaperexport/internal/journal"
)

func writeAnchor(t *testing.T, path string, years ...string) {
	t.Helper()
	var divs strings.Builder
	for i, y := range years {
		fmt.Fprintf(&divs, `<mets:div ID="LOG_%04d" ORDER="%s" TYPE="NewspaperVolume">`+
			`<mets:mptr LOCTYPE="URL" xlink:href="https://viewer/zeitung_%s.xml"/></mets:div>`, i+1, y, y)
	}
	xml := `<?xml version="1.0" encoding="UTF-8"?>
<mets:mets xmlns:mets="http://www.loc.gov/METS/" xmlns:xlink="http://www.w3.org/1999/xlink">
<mets:structMap TYPE="LOGICAL"><mets:div ID="LOG_0000" TYPE="Newspaper">` + divs.String() + `</mets:div></mets:structMap>
</mets:mets>`
	require.NoError(t, os.WriteFile(path, []byte(xml), 0o600))
}

func TestMergeAnchorCmd(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "export")
	existing := filepath.Join(dir, "zeitung.xml")
	incoming := filepath.Join(root, "new", "zeitung.xml")
	require.NoError(t, os.MkdirAll(dir, 0o750))
	require.NoError(t, os.MkdirAll(filepath.Dir(incoming), 0o750))
	writeAnchor(t, existing, "1921", "1923")
	writeAnchor(t, incoming, "1922")

	cmd := &MergeAnchorCmd{Existing: existing, New: incoming}
	require.NoError(t, cmd.Run(&Global{}, &CLI{}))

	data, err := os.ReadFile(existing)
	require.NoError(t, err)
	out := string(data)
	i21 := strings.Index(out, "zeitung_1921.xml")
	i22 := strings.Index(out, "zeitung_1922.xml")
	i23 := strings.Index(out, "zeitung_1923.xml")
	require.True(t, i21 >= 0 && i22 >= 0 && i23 >= 0, out)
	assert.Less(t, i21, i22)
	assert.Less(t, i22, i23)
	assert.Contains(t, out, `ID="LOG_0003"`)

	// the lock file stays out of the export folder
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "zeitung.xml", entries[0].Name())
	assert.FileExists(t, filepath.Join(root, ".locks", ".zeitung.lock"))

	// merging the same volume again is a no-op
	before := out
	require.NoError(t, cmd.Run(&Global{}, &CLI{}))
	data, err = os.ReadFile(existing)
	require.NoError(t, err)
	assert.Equal(t, before, string(data))
}

func TestMergeAnchorCmd_Malformed(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, "zeitung.xml")
	require.NoError(t, os.WriteFile(existing, []byte(`<mets:mets xmlns:mets="http://www.loc.gov/METS/"/>`), 0o600))
	incoming := filepath.Join(dir, "other.xml")
	writeAnchor(t, incoming, "1922")

	err := (&MergeAnchorCmd{Existing: existing, New: incoming}).Run(&Global{}, &CLI{})
	require.Error(t, err)
}

func TestRunInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "newspaperexport.yaml")
	require.NoError(t, RunInit(path, false))
	require.Error(t, RunInit(path, false), "existing file must not be overwritten")
	require.NoError(t, RunInit(path, true))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.NotEmpty(t, cfg.Projects)
}

func TestOpenJournal(t *testing.T) {
	store, err := openJournal(&config.Config{})
	require.NoError(t, err)
	assert.IsType(t, journal.NopStore{}, store)

	path := filepath.Join(t.TempDir(), "nested", "journal.db")
	store, err = openJournal(&config.Config{Journal: config.JournalConfig{Path: path}})
	require.NoError(t, err)
	require.NoError(t, store.Close())
	assert.FileExists(t, path)
}

func TestPrintHistory(t *testing.T) {
	started := time.Date(2024, 3, 1, 12, 0, 0, 0, time.Local)
	var buf bytes.Buffer
	require.NoError(t, printHistory(&buf, []journal.Run{{
		ProcessID:  "42",
		Identifier: "zeitung",
		YearID:     "zeitung_1923",
		Started:    started,
		Finished:   started.Add(1500 * time.Millisecond),
		Status:     journal.StatusFailed,
		Anchor:     "created",
		Problems:   []string{"first", "second"},
	}}))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "STARTED"))
	assert.Contains(t, lines[1], "2024-03-01 12:00:00")
	assert.Contains(t, lines[1], "zeitung_1923")
	assert.Contains(t, lines[1], "1.5s")
	assert.Contains(t, lines[1], "first; second")
}

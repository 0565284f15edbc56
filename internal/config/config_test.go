package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/newspaperexport/internal/foundation/errors"
)

func TestParse_AppliesDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`
projects:
  - export:
      export_folder: /export
`))
	require.NoError(t, err)

	assert.Equal(t, LogLevelInfo, cfg.Log.Level)
	assert.Equal(t, LogFormatText, cfg.Log.Format)
	assert.Equal(t, DefaultMetadataRoles(), cfg.Metadata)
	assert.Equal(t, DefaultDocStructRoles(), cfg.DocStruct)
	assert.Equal(t, Wildcard, cfg.Projects[0].Project)
	assert.Equal(t, Wildcard, cfg.Projects[0].Step)
}

func TestParse_KeepsOverridesAndExpandsEnv(t *testing.T) {
	t.Setenv("NPX_EXPORT", "/data/export")
	cfg, err := Parse([]byte(`
log: {level: DEBUG, format: json}
metadata:
  identifier: RecordID
projects:
  - project: Zeitungen
    step: Export
    export:
      export_folder: ${NPX_EXPORT}
    mets_url: {url: "https://x/", add_file_extension: true}
    rights_owner: Library
`))
	require.NoError(t, err)

	assert.Equal(t, LogLevelDebug, cfg.Log.Level)
	assert.Equal(t, LogFormatJSON, cfg.Log.Format)
	assert.Equal(t, "RecordID", cfg.Metadata.Identifier)
	assert.Equal(t, "DateIssued", cfg.Metadata.IssueDate)
	assert.Equal(t, "/data/export", cfg.Projects[0].Export.ExportFolder)
	assert.Equal(t, "Library", cfg.Projects[0].METS.RightsOwner)
	assert.Equal(t, "https://x/1234.xml", cfg.Projects[0].MetsURL.Link("1234"))
}

func TestResolve_Order(t *testing.T) {
	cfg := &Config{Projects: []ProjectSettings{
		{Project: "*", Step: "*", ResolverURL: "any"},
		{Project: "P", Step: "*", ResolverURL: "project"},
		{Project: "*", Step: "S", ResolverURL: "step"},
		{Project: "P", Step: "S", ResolverURL: "exact"},
	}}

	tests := []struct {
		project, step, want string
	}{
		{"P", "S", "exact"},
		{"Q", "S", "step"},
		{"P", "T", "project"},
		{"Q", "T", "any"},
	}
	for _, tt := range tests {
		got, err := cfg.Resolve(tt.project, tt.step)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got.ResolverURL, "%s/%s", tt.project, tt.step)
	}
}

func TestResolve_NoMatch(t *testing.T) {
	cfg := &Config{Projects: []ProjectSettings{{Project: "P", Step: "S"}}}
	_, err := cfg.Resolve("Q", "S")
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryConfig))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"no projects", "log: {level: info}\n"},
		{"missing export folder", "projects:\n  - project: P\n"},
		{"images without folder", "projects:\n  - export: {export_folder: /x, images: true}\n"},
		{"duplicate", "projects:\n  - export: {export_folder: /x}\n  - export: {export_folder: /y}\n"},
		{"incomplete file group", "projects:\n  - export: {export_folder: /x}\n    filegroups: [{name: DEFAULT}]\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			require.Error(t, err)
			assert.True(t, errors.HasCategory(err, errors.CategoryConfig))
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryConfig))
}

func TestInit_WritesLoadableConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, Init(path, false))
	require.Error(t, Init(path, false))
	require.NoError(t, Init(path, true))

	t.Setenv("HOME", "/home/export")
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/home/export/.newspaperexport/journal.db", cfg.Journal.Path)
	require.Len(t, cfg.Projects[0].FileGroups, 2)
	assert.Equal(t, "PRESENTATION", cfg.Projects[0].FileGroups[0].Name)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "$(meta.CatalogIDDigital)")
}

func TestLogLevel_Slog(t *testing.T) {
	assert.Equal(t, LogLevelWarn, NormalizeLogLevel(" Warning "))
	assert.Equal(t, LogLevelInfo, NormalizeLogLevel("verbose"))
	assert.Equal(t, "DEBUG", LogLevelDebug.Slog().String())
}

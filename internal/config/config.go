// Package config loads the newspaper export configuration: role mappings,
// per-project export settings and the ambient logging, journal and metrics
// settings.
package config

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/newspaperexport/internal/foundation/errors"
	"git.home.luguber.info/inful/newspaperexport/internal/mets"
)

// Wildcard matches any project or step.
const Wildcard = "*"

// Config is the plugin configuration.
type Config struct {
	Log       LogConfig         `yaml:"log"`
	Journal   JournalConfig     `yaml:"journal"`
	Metrics   MetricsConfig     `yaml:"metrics"`
	Staging   StagingConfig     `yaml:"staging"`
	LockDir   string            `yaml:"lock_dir,omitempty"` // defaults to .locks beside the export folder
	Metadata  MetadataRoles     `yaml:"metadata"`
	DocStruct DocStructRoles    `yaml:"docstruct"`
	Projects  []ProjectSettings `yaml:"projects"`
}

// LogConfig selects the slog handler.
type LogConfig struct {
	Level  LogLevel  `yaml:"level"`
	Format LogFormat `yaml:"format"`
}

// JournalConfig enables the SQLite export journal when Path is set.
type JournalConfig struct {
	Path string `yaml:"path,omitempty"`
}

// MetricsConfig enables the Prometheus textfile when Textfile is set.
type MetricsConfig struct {
	Textfile string `yaml:"textfile,omitempty"`
}

// StagingConfig controls where per-run staging directories are created.
type StagingConfig struct {
	Dir string `yaml:"dir,omitempty"`
}

// MetadataRoles maps export roles to metadata type names.
type MetadataRoles struct {
	Identifier         string `yaml:"identifier"`
	ZDBIDAnalog        string `yaml:"zdbidanalog"`
	ZDBIDDigital       string `yaml:"zdbiddigital"`
	IssueDate          string `yaml:"issueDate"`
	YearDate           string `yaml:"yearDate"`
	TitleLabel         string `yaml:"titleLabel"`
	ModsTitle          string `yaml:"modsTitle"`
	IssueNumber        string `yaml:"issueNumber"`
	SortNumber         string `yaml:"sortNumber"`
	Language           string `yaml:"language"`
	Location           string `yaml:"location"`
	Licence            string `yaml:"licence"`
	ResourceType       string `yaml:"resourceType"`
	PURL               string `yaml:"purl"`
	AnchorID           string `yaml:"anchorId"`
	AnchorTitle        string `yaml:"anchorTitle"`
	AnchorZDBIDDigital string `yaml:"anchorZDBIdDigital"`
}

// DocStructRoles maps export roles to structural type names.
type DocStructRoles struct {
	Newspaper     string `yaml:"newspaper"`
	Year          string `yaml:"year"`
	Month         string `yaml:"month"`
	Day           string `yaml:"day"`
	Issue         string `yaml:"issue"`
	NewspaperStub string `yaml:"newspaperStub"`
}

// ProjectSettings is one project/step scoped block of export settings.
type ProjectSettings struct {
	Project     string          `yaml:"project"`
	Step        string          `yaml:"step"`
	Export      ExportSettings  `yaml:"export"`
	MetsURL     MetsURL         `yaml:"mets_url"`
	ResolverURL string          `yaml:"resolver_url"`
	METS        mets.Parameters `yaml:",inline"`
	// FileGroups replace the project's default file groups when set.
	FileGroups []FileGroup `yaml:"filegroups,omitempty"`
}

// ExportSettings is the output layout.
type ExportSettings struct {
	SubfolderPerIssue bool   `yaml:"subfolder_per_issue"`
	Images            bool   `yaml:"images"`
	Fulltext          bool   `yaml:"fulltext"`
	ExportFolder      string `yaml:"export_folder"`
	ExportImageFolder string `yaml:"export_image_folder,omitempty"`
	ExportAltoFolder  string `yaml:"export_alto_folder,omitempty"`
}

// MetsURL is the base for links between exported documents.
type MetsURL struct {
	URL              string `yaml:"url"`
	AddFileExtension bool   `yaml:"add_file_extension"`
}

// Link returns the URL of the exported document with the given identifier.
func (m MetsURL) Link(identifier string) string {
	if m.AddFileExtension {
		return m.URL + identifier + ".xml"
	}
	return m.URL + identifier
}

// FileGroup declares one METS file group.
type FileGroup struct {
	Name     string `yaml:"name"`
	Path     string `yaml:"path"`
	Mimetype string `yaml:"mimetype"`
	Suffix   string `yaml:"suffix"`
	// Folder names the process folder that must contain files for the group to be written.
	Folder               string `yaml:"folder,omitempty"`
	FilesToIgnore        string `yaml:"files_to_ignore,omitempty"`
	MimetypeFromFilename bool   `yaml:"mimetype_from_filename,omitempty"`
}

// Load reads a configuration file. A .env file in the working directory is loaded
// first so that ${VAR} references can be expanded.
func Load(configPath string) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("No .env file loaded", "error", err)
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- path from the command line
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.ConfigError("configuration file not found").
				WithContext("path", configPath).Build()
		}
		return nil, errors.WrapError(err, errors.CategoryConfig, "failed to read config file").
			WithContext("path", configPath).Build()
	}
	return Parse(data)
}

// Parse decodes, defaults and validates configuration content.
func Parse(data []byte) (*Config, error) {
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, errors.WrapError(err, errors.CategoryConfig, "failed to parse config").Build()
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Resolve returns the settings for a project and step. Lookup order is exact
// (project, step), then (*, step), then (project, *), then (*, *).
func (c *Config) Resolve(project, step string) (*ProjectSettings, error) {
	candidates := [][2]string{
		{project, step},
		{Wildcard, step},
		{project, Wildcard},
		{Wildcard, Wildcard},
	}
	for _, cand := range candidates {
		for i := range c.Projects {
			p := &c.Projects[i]
			if p.Project == cand[0] && p.Step == cand[1] {
				return p, nil
			}
		}
	}
	return nil, errors.ConfigError(fmt.Sprintf("no export settings for project %q and step %q", project, step)).
		WithContext("project", project).
		WithContext("step", step).
		Build()
}

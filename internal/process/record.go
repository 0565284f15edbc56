package process

import (
	"fmt"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/newspaperexport/internal/config"
	"git.home.luguber.info/inful/newspaperexport/internal/docstruct"
	"git.home.luguber.info/inful/newspaperexport/internal/foundation/errors"
	"git.home.luguber.info/inful/newspaperexport/internal/mets"
	"git.home.luguber.info/inful/newspaperexport/internal/storage"
)

// Well-known folder names.
const (
	FolderMedia  = "media"
	FolderMaster = "master"
	FolderALTO   = "alto"
)

// Record is a workflow process.
type Record struct {
	ID           string            `yaml:"id"`
	Title        string            `yaml:"title"`
	Project      string            `yaml:"project"`
	Step         string            `yaml:"step"`
	Ruleset      string            `yaml:"ruleset,omitempty"`
	MetadataFile string            `yaml:"metadata_file"`
	Folders      map[string]string `yaml:"folders,omitempty"`
	Defaults     Defaults          `yaml:"defaults"`
}

// Defaults are the project settings used where the export configuration has none.
type Defaults struct {
	METS       mets.Parameters    `yaml:"mets"`
	FileGroups []config.FileGroup `yaml:"filegroups,omitempty"`
}

// Folder returns the path of a named process folder.
func (r *Record) Folder(name string) (string, bool) {
	p, ok := r.Folders[name]
	return p, ok && p != ""
}

// Store reads and writes process data through a storage provider.
type Store struct {
	fs storage.Provider
}

// NewStore returns a Store.
func NewStore(fs storage.Provider) *Store {
	return &Store{fs: fs}
}

// Load reads a process record and resolves its relative paths.
func (s *Store) Load(path string) (*Record, error) {
	data, err := s.fs.ReadFile(path)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to read process record").
			WithContext("path", path).Build()
	}
	var rec Record
	if err := yaml.Unmarshal(data, &rec); err != nil {
		return nil, errors.WrapError(err, errors.CategoryValidation, "failed to parse process record").
			WithContext("path", path).Build()
	}
	if rec.ID == "" {
		return nil, errors.ValidationError("process record has no id").WithContext("path", path).Build()
	}
	if rec.MetadataFile == "" {
		return nil, errors.ValidationError("process record has no metadata_file").
			WithContext("path", path).WithContext("process_id", rec.ID).Build()
	}

	base := filepath.Dir(path)
	resolve := func(p string) string {
		if p == "" || filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(base, p)
	}
	rec.Ruleset = resolve(rec.Ruleset)
	rec.MetadataFile = resolve(rec.MetadataFile)
	for k, v := range rec.Folders {
		rec.Folders[k] = resolve(v)
	}
	return &rec, nil
}

// Ruleset returns the ruleset of a process. Without a ruleset file the built-in
// newspaper ruleset is used.
func (s *Store) Ruleset(rec *Record) (*docstruct.Ruleset, error) {
	if rec.Ruleset == "" {
		return docstruct.NewspaperRuleset(), nil
	}
	data, err := s.fs.ReadFile(rec.Ruleset)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to read ruleset").
			WithContext("path", rec.Ruleset).Build()
	}
	rs, err := docstruct.ParseRuleset(data)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryValidation, "invalid ruleset").
			WithContext("path", rec.Ruleset).Build()
	}
	return rs, nil
}

// ReadMetadata decodes the metadata file of a process.
func (s *Store) ReadMetadata(rec *Record, rs *docstruct.Ruleset) (*docstruct.Document, error) {
	data, err := s.fs.ReadFile(rec.MetadataFile)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to read metadata file").
			WithContext("path", rec.MetadataFile).Build()
	}
	doc, err := docstruct.Decode(rs, data)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryValidation, "invalid metadata file").
			WithContext("path", rec.MetadataFile).Build()
	}
	return doc, nil
}

// WriteMetadata replaces the metadata file of a process. The content is written
// next to the file first and moved over it.
func (s *Store) WriteMetadata(rec *Record, doc *docstruct.Document) error {
	data, err := docstruct.Encode(doc)
	if err != nil {
		return errors.WrapError(err, errors.CategoryInternal, "failed to encode metadata").Build()
	}
	tmp := fmt.Sprintf("%s.%s.tmp", rec.MetadataFile, rec.ID)
	if err := s.fs.WriteFile(tmp, data); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to write metadata file").
			WithContext("path", tmp).Build()
	}
	if err := s.fs.Move(tmp, rec.MetadataFile); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to replace metadata file").
			WithContext("path", rec.MetadataFile).Build()
	}
	return nil
}

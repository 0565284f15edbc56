package docstruct

// Authority links a value to an authority file record.
type Authority struct {
	ID    string `yaml:"id,omitempty"`
	URI   string `yaml:"uri,omitempty"`
	Value string `yaml:"value,omitempty"`
}

func (a *Authority) clone() *Authority {
	if a == nil {
		return nil
	}
	c := *a
	return &c
}

// Metadata is a single typed value.
type Metadata struct {
	Type      string     `yaml:"type"`
	Value     string     `yaml:"value"`
	Authority *Authority `yaml:"authority,omitempty"`
}

// NamePart is a typed fragment of a person or corporate name.
type NamePart struct {
	Type  string `yaml:"type"`
	Value string `yaml:"value"`
}

// Person is a person metadata entry. Role is its metadata type.
type Person struct {
	Role      string     `yaml:"role"`
	FirstName string     `yaml:"first_name,omitempty"`
	LastName  string     `yaml:"last_name,omitempty"`
	NameParts []NamePart `yaml:"name_parts,omitempty"`
	Authority *Authority `yaml:"authority,omitempty"`
}

// Corporate is a corporate body metadata entry. Role is its metadata type.
type Corporate struct {
	Role      string     `yaml:"role"`
	MainName  string     `yaml:"main_name,omitempty"`
	SubNames  []NamePart `yaml:"sub_names,omitempty"`
	PartName  string     `yaml:"part_name,omitempty"`
	Authority *Authority `yaml:"authority,omitempty"`
}

// Group is a nested metadata group with the same shape as a node's descriptive content.
type Group struct {
	Type       string      `yaml:"type"`
	Metadata   []Metadata  `yaml:"metadata,omitempty"`
	Persons    []Person    `yaml:"persons,omitempty"`
	Corporates []Corporate `yaml:"corporates,omitempty"`
	Groups     []Group     `yaml:"groups,omitempty"`
}

// FileGroup is a virtual grouping of file references written to the METS fileSec.
type FileGroup struct {
	Name        string
	PathToFiles string
	Mimetype    string
	Suffix      string
	// FilesToIgnore is a comma separated list of mimetypes or extensions to skip.
	FilesToIgnore string
	// UseOriginalFiles keeps the page file name and derives the mimetype from it.
	UseOriginalFiles bool
	Main             bool
}

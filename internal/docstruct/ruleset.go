package docstruct

import (
	"errors"
	"fmt"
	"slices"

	"gopkg.in/yaml.v3"
)

var (
	// ErrUnknownType is returned when a structural type is not declared in the ruleset.
	ErrUnknownType = errors.New("docstruct: unknown structural type")
	// ErrTypeNotAllowedAsChild is returned when a parent type does not permit a child type.
	ErrTypeNotAllowedAsChild = errors.New("docstruct: type not allowed as child")
	// ErrMetadataTypeNotAllowed is returned when a node type does not permit a metadata type.
	ErrMetadataTypeNotAllowed = errors.New("docstruct: metadata type not allowed")
	// ErrForeignNode is returned when a node from another document is attached.
	ErrForeignNode = errors.New("docstruct: node belongs to another document")
)

// DocStructType describes one structural type of the ruleset.
type DocStructType struct {
	Name   string `yaml:"name"`
	Anchor bool   `yaml:"anchor,omitempty"`
	// Children lists the type names allowed below this type.
	Children []string `yaml:"children,omitempty"`
	// Metadata restricts the metadata types a node may carry. Empty means any declared type.
	Metadata []string `yaml:"metadata,omitempty"`
}

// IsAnchor reports whether the type is a multi-volume umbrella type.
func (t *DocStructType) IsAnchor() bool {
	return t != nil && t.Anchor
}

// MetadataType describes one metadata type of the ruleset.
type MetadataType struct {
	Name      string `yaml:"name"`
	Person    bool   `yaml:"person,omitempty"`
	Corporate bool   `yaml:"corporate,omitempty"`
}

// Ruleset is the type system of a document.
type Ruleset struct {
	DocStructTypes []*DocStructType `yaml:"docstruct_types"`
	MetadataTypes  []MetadataType   `yaml:"metadata_types"`
	GroupTypes     []string         `yaml:"group_types,omitempty"`
}

// ParseRuleset decodes a YAML ruleset.
func ParseRuleset(data []byte) (*Ruleset, error) {
	var rs Ruleset
	if err := yaml.Unmarshal(data, &rs); err != nil {
		return nil, fmt.Errorf("parse ruleset: %w", err)
	}
	if len(rs.DocStructTypes) == 0 {
		return nil, fmt.Errorf("parse ruleset: no docstruct types")
	}
	return &rs, nil
}

// DocStructType returns the named structural type or nil.
func (r *Ruleset) DocStructType(name string) *DocStructType {
	for _, t := range r.DocStructTypes {
		if t.Name == name {
			return t
		}
	}
	return nil
}

// MetadataType returns the named metadata type or nil.
func (r *Ruleset) MetadataType(name string) *MetadataType {
	for i := range r.MetadataTypes {
		if r.MetadataTypes[i].Name == name {
			return &r.MetadataTypes[i]
		}
	}
	return nil
}

// HasGroupType reports whether the group type is declared.
func (r *Ruleset) HasGroupType(name string) bool {
	return slices.Contains(r.GroupTypes, name)
}

// AllowsChild reports whether parent may contain child.
func (r *Ruleset) AllowsChild(parent, child *DocStructType) bool {
	if parent == nil || child == nil {
		return false
	}
	return slices.Contains(parent.Children, child.Name)
}

// AllowsMetadata reports whether a node of type t may carry metadata of the named type.
func (r *Ruleset) AllowsMetadata(t *DocStructType, metadataType string) bool {
	if r.MetadataType(metadataType) == nil {
		return false
	}
	if t == nil || len(t.Metadata) == 0 {
		return true
	}
	return slices.Contains(t.Metadata, metadataType)
}

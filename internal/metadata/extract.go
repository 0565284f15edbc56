// Package metadata resolves export roles to metadata values and backfills the
// descriptive metadata a newspaper export requires.
package metadata

import (
	"strings"
	"unicode"

	"git.home.luguber.info/inful/newspaperexport/internal/docstruct"
)

// Values holds the first value per metadata type of a node.
type Values map[string]string

// Extract collects the direct metadata of n. When a type occurs more than once
// the first entry wins.
func Extract(n *docstruct.Node) Values {
	v := Values{}
	for _, md := range n.AllMetadata() {
		if _, ok := v[md.Type]; !ok {
			v[md.Type] = md.Value
		}
	}
	return v
}

// Get returns the value for a metadata type or "".
func (v Values) Get(typeName string) string {
	return v[typeName]
}

// Has reports whether the type has a non-blank value.
func (v Values) Has(typeName string) bool {
	return !IsBlank(v[typeName])
}

// IsBlank reports whether s is empty or whitespace only.
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// IsNumeric reports whether s is non-empty and consists of digits only.
func IsNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

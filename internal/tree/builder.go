// Package tree builds the year/month/day skeleton of a newspaper anchor from a
// flat list of dated issues.
package tree

import (
	"fmt"

	"git.home.luguber.info/inful/newspaperexport/internal/config"
	"git.home.luguber.info/inful/newspaperexport/internal/docstruct"
	"git.home.luguber.info/inful/newspaperexport/internal/foundation/errors"
)

// Entry is one issue to place below the year.
type Entry struct {
	// Date must already be validated as YYYY-MM-DD.
	Date string
	// Label is copied as the summary's label metadata when non-empty.
	Label string
	// Link is the URL of the exported issue document.
	Link string
}

// Builder grows the month/day/issue-summary nodes of a year node.
type Builder struct {
	types     config.DocStructRoles
	labelType string
}

// NewBuilder returns a Builder using the structural types of types and the
// metadata type labelType for summary labels.
func NewBuilder(types config.DocStructRoles, labelType string) *Builder {
	return &Builder{types: types, labelType: labelType}
}

// MonthKey returns the YYYY-MM prefix of a date.
func MonthKey(date string) string { return date[:7] }

// DayKey returns the YYYY-MM-DD prefix of a date.
func DayKey(date string) string { return date[:10] }

// Add places one issue below year. Month and day nodes are matched by exact order
// label and created at the end when missing. The year order label is set from the
// date when it is still empty. The new issue summary is returned.
func (b *Builder) Add(year *docstruct.Node, e Entry) (*docstruct.Node, error) {
	if len(e.Date) < 10 {
		return nil, errors.ValidationError(fmt.Sprintf("Issue date %s has the wrong format. Expected is YYYY-MM-DD", e.Date)).Build()
	}
	if year.OrderLabel == "" {
		year.OrderLabel = e.Date[:4]
	}

	month, err := b.child(year, b.types.Month, MonthKey(e.Date))
	if err != nil {
		return nil, err
	}
	day, err := b.child(month, b.types.Day, DayKey(e.Date))
	if err != nil {
		return nil, err
	}

	summary, err := year.Document().CreateNode(b.types.Issue)
	if err != nil {
		return nil, structureError(err, b.types.Issue)
	}
	summary.OrderLabel = e.Date
	summary.Link = e.Link
	if e.Label != "" {
		if err := summary.AddMetadata(docstruct.Metadata{Type: b.labelType, Value: e.Label}); err != nil {
			return nil, structureError(err, b.types.Issue)
		}
	}
	if err := day.AddChild(summary); err != nil {
		return nil, structureError(err, b.types.Issue)
	}
	return summary, nil
}

// Build adds every entry in order and stops at the first error.
func (b *Builder) Build(year *docstruct.Node, entries []Entry) error {
	for _, e := range entries {
		if _, err := b.Add(year, e); err != nil {
			return err
		}
	}
	return nil
}

func (b *Builder) child(parent *docstruct.Node, typeName, key string) (*docstruct.Node, error) {
	if n := parent.FindChild(key); n != nil {
		return n, nil
	}
	n, err := parent.Document().CreateNode(typeName)
	if err != nil {
		return nil, structureError(err, typeName)
	}
	n.OrderLabel = key
	if err := parent.AddChild(n); err != nil {
		return nil, structureError(err, typeName)
	}
	return n, nil
}

func structureError(err error, typeName string) error {
	return errors.WrapError(err, errors.CategoryStructure, "cannot build date hierarchy").
		WithContext("type", typeName).
		Build()
}

package errors

import "maps"

// ErrorCategory names the subsystem a failure came from.
type ErrorCategory string

const (
	CategoryValidation ErrorCategory = "validation"
	CategoryConfig     ErrorCategory = "config"

	// CategoryStructure marks node type combinations the ruleset does not permit.
	CategoryStructure ErrorCategory = "structure"

	CategoryFileSystem ErrorCategory = "filesystem"
	CategoryMets       ErrorCategory = "mets"
	CategoryJournal    ErrorCategory = "journal"
	CategoryInternal   ErrorCategory = "internal"
)

// Family groups categories by how an export reacts to them.
type Family string

const (
	FamilyValidation Family = "validation_failure"
	FamilyStructure  Family = "structural_incompatibility"
	FamilyResource   Family = "resource_failure"
	FamilySetup      Family = "setup_failure"
	FamilyInternal   Family = "internal_failure"
)

// Family returns the failure family of the category.
func (c ErrorCategory) Family() Family {
	switch c {
	case CategoryValidation:
		return FamilyValidation
	case CategoryStructure:
		return FamilyStructure
	case CategoryFileSystem, CategoryMets, CategoryJournal:
		return FamilyResource
	case CategoryConfig:
		return FamilySetup
	default:
		return FamilyInternal
	}
}

// Unit is the piece of work a failure terminates.
type Unit string

const (
	UnitExport Unit = "export"
	UnitIssue  Unit = "issue"
	UnitNode   Unit = "node"
	UnitMerge  Unit = "merge"
	UnitCopy   Unit = "copy"
)

func (c ErrorCategory) defaultUnit() Unit {
	if c == CategoryStructure {
		return UnitNode
	}
	return UnitExport
}

// ErrorContext carries structured values attached to a failure.
type ErrorContext map[string]any

// Merge returns a new context holding c overlaid with other.
func (c ErrorContext) Merge(other ErrorContext) ErrorContext {
	result := make(ErrorContext, len(c)+len(other))
	maps.Copy(result, c)
	maps.Copy(result, other)
	return result
}

// String returns the string value stored under key.
func (c ErrorContext) String(key string) (string, bool) {
	s, ok := c[key].(string)
	return s, ok
}

package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFamilies(t *testing.T) {
	tests := []struct {
		category ErrorCategory
		family   Family
	}{
		{CategoryValidation, FamilyValidation},
		{CategoryStructure, FamilyStructure},
		{CategoryFileSystem, FamilyResource},
		{CategoryMets, FamilyResource},
		{CategoryJournal, FamilyResource},
		{CategoryConfig, FamilySetup},
		{CategoryInternal, FamilyInternal},
		{ErrorCategory("other"), FamilyInternal},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.family, tt.category.Family(), tt.category)
	}
}

func TestDefaultUnits(t *testing.T) {
	assert.Equal(t, UnitExport, ValidationError("no date").Build().Unit())
	assert.True(t, ValidationError("no date").Build().AbortsExport())

	structure := StructureError("NewspaperDay not allowed below Newspaper").Build()
	assert.Equal(t, UnitNode, structure.Unit())
	assert.False(t, structure.AbortsExport())

	merge := MetsError("cannot parse anchor").Ends(UnitMerge).Build()
	assert.Equal(t, UnitMerge, merge.Unit())
	assert.False(t, merge.AbortsExport())
}

func TestWrapError(t *testing.T) {
	cause := errors.New("permission denied")
	err := WrapError(cause, CategoryFileSystem, "move failed").
		WithContext("path", "/export/1234.xml").
		Build()

	require.ErrorIs(t, err, cause)
	assert.Equal(t, cause, err.Cause())
	assert.Equal(t, "move failed", err.Message())
	assert.Equal(t, "[filesystem:export] move failed: permission denied", err.Error())

	path, ok := err.Context().String("path")
	require.True(t, ok)
	assert.Equal(t, "/export/1234.xml", path)
}

func TestAsClassified(t *testing.T) {
	outer := fmt.Errorf("merge: %w", MetsError("cannot parse anchor").Build())

	classified, ok := AsClassified(outer)
	require.True(t, ok)
	assert.Equal(t, CategoryMets, classified.Category())
	assert.True(t, HasCategory(outer, CategoryMets))
	assert.False(t, HasCategory(outer, CategoryValidation))

	assert.Equal(t, CategoryInternal, GetCategory(errors.New("plain")))
	assert.False(t, HasCategory(nil, CategoryInternal))
}

func TestWithContextCopies(t *testing.T) {
	base := ValidationError("missing identifier").Build()
	derived := base.WithContext("field", "CatalogIDDigital")

	_, ok := base.Context()["field"]
	assert.False(t, ok)
	v, _ := derived.Context().String("field")
	assert.Equal(t, "CatalogIDDigital", v)
	assert.ErrorIs(t, derived, base)
}

func TestErrorContextMerge(t *testing.T) {
	a := ErrorContext{"x": 1, "y": 2}
	merged := a.Merge(ErrorContext{"y": 3})
	assert.Equal(t, ErrorContext{"x": 1, "y": 3}, merged)
	assert.Equal(t, 2, a["y"])

	var empty ErrorContext
	assert.Equal(t, ErrorContext{"y": 3}, empty.Merge(ErrorContext{"y": 3}))
}

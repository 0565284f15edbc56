package docstruct

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocument_CreateNodeUnknownType(t *testing.T) {
	doc := NewDocument(NewspaperRuleset())
	_, err := doc.CreateNode("Monograph")
	require.ErrorIs(t, err, ErrUnknownType)
}

func TestNode_AddChildChecksRuleset(t *testing.T) {
	doc := NewDocument(NewspaperRuleset())
	newspaper, err := doc.CreateNode("Newspaper")
	require.NoError(t, err)
	year, err := doc.CreateNode("NewspaperVolume")
	require.NoError(t, err)
	day, err := doc.CreateNode("NewspaperDay")
	require.NoError(t, err)

	require.NoError(t, newspaper.AddChild(year))
	assert.Same(t, newspaper, year.Parent())

	err = newspaper.AddChild(day)
	require.ErrorIs(t, err, ErrTypeNotAllowedAsChild)
	assert.Len(t, newspaper.Children(), 1)
}

func TestNode_AddChildRejectsForeignNode(t *testing.T) {
	rs := NewspaperRuleset()
	a := NewDocument(rs)
	b := NewDocument(rs)
	parent, _ := a.CreateNode("Newspaper")
	child, _ := b.CreateNode("NewspaperVolume")

	require.ErrorIs(t, parent.AddChild(child), ErrForeignNode)
	require.ErrorIs(t, a.SetLogical(child), ErrForeignNode)
}

func TestNode_MetadataRules(t *testing.T) {
	doc := NewDocument(NewspaperRuleset())
	page, _ := doc.CreateNode("page")

	require.NoError(t, page.AddMetadata(Metadata{Type: "physPageNumber", Value: "1"}))
	err := page.AddMetadata(Metadata{Type: "TitleDocMain", Value: "x"})
	require.ErrorIs(t, err, ErrMetadataTypeNotAllowed)

	issue, _ := doc.CreateNode("NewspaperIssue")
	require.ErrorIs(t, issue.AddMetadata(Metadata{Type: "Undeclared"}), ErrMetadataTypeNotAllowed)
	require.ErrorIs(t, issue.AddGroup(Group{Type: "Undeclared"}), ErrMetadataTypeNotAllowed)
}

func TestNode_MetadataByTypeKeepsOrder(t *testing.T) {
	doc := NewDocument(NewspaperRuleset())
	issue, _ := doc.CreateNode("NewspaperIssue")
	require.NoError(t, issue.AddMetadata(Metadata{Type: "TitleDocMain", Value: "first"}))
	require.NoError(t, issue.AddMetadata(Metadata{Type: "CurrentNo", Value: "7"}))
	require.NoError(t, issue.AddMetadata(Metadata{Type: "TitleDocMain", Value: "second"}))

	got := issue.MetadataByType("TitleDocMain")
	require.Len(t, got, 2)
	assert.Equal(t, "first", got[0].Value)
	assert.Equal(t, "second", got[1].Value)

	require.NoError(t, issue.SetMetadataValue("TitleDocMain", "changed"))
	assert.Equal(t, "changed", issue.MetadataByType("TitleDocMain")[0].Value)
	assert.Len(t, issue.AllMetadata(), 3)
}

func TestNode_FindChild(t *testing.T) {
	doc := NewDocument(NewspaperRuleset())
	year, _ := doc.CreateNode("NewspaperVolume")
	month, _ := doc.CreateNode("NewspaperMonth")
	month.OrderLabel = "2023-01"
	require.NoError(t, year.AddChild(month))

	assert.Same(t, month, year.FindChild("2023-01"))
	assert.Nil(t, year.FindChild("2023-1"))
}

func TestParseRuleset(t *testing.T) {
	content := `docstruct_types:
  - name: Newspaper
    anchor: true
    children: [NewspaperVolume]
  - name: NewspaperVolume
metadata_types:
  - name: TitleDocMain
  - name: Author
    person: true
group_types: [Subject]
`
	rs, err := ParseRuleset([]byte(content))
	require.NoError(t, err)
	assert.True(t, rs.DocStructType("Newspaper").IsAnchor())
	assert.False(t, rs.DocStructType("NewspaperVolume").IsAnchor())
	assert.True(t, rs.MetadataType("Author").Person)
	assert.True(t, rs.HasGroupType("Subject"))
	assert.True(t, rs.AllowsChild(rs.DocStructType("Newspaper"), rs.DocStructType("NewspaperVolume")))
}

func TestParseRuleset_Invalid(t *testing.T) {
	_, err := ParseRuleset([]byte("docstruct_types: ["))
	require.Error(t, err)

	_, err = ParseRuleset([]byte("metadata_types: []\n"))
	require.Error(t, err)
}

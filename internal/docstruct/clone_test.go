package docstruct

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleIssue(t *testing.T, doc *Document) *Node {
	t.Helper()
	issue, err := doc.CreateNode("NewspaperIssue")
	require.NoError(t, err)
	require.NoError(t, issue.AddMetadata(Metadata{
		Type:      "TitleDocMain",
		Value:     "Morning edition",
		Authority: &Authority{ID: "gnd", URI: "https://d-nb.info/gnd/", Value: "123"},
	}))
	require.NoError(t, issue.AddPerson(Person{
		Role:      "Author",
		FirstName: "Ada",
		LastName:  "Lovelace",
		NameParts: []NamePart{{Type: "date", Value: "1815-1852"}},
	}))
	require.NoError(t, issue.AddCorporate(Corporate{
		Role:     "Publisher",
		MainName: "Daily Press",
		SubNames: []NamePart{{Type: "sub", Value: "Print shop"}},
	}))
	require.NoError(t, issue.AddGroup(Group{
		Type:     "PublicationPlace",
		Metadata: []Metadata{{Type: "PlaceOfPublication", Value: "Berlin"}},
		Groups:   []Group{{Type: "Subject", Metadata: []Metadata{{Type: "TitleDocMain", Value: "nested"}}}},
	}))
	issue.OrderLabel = "2023-01-01"
	issue.Link = "https://example.org/x.xml"
	return issue
}

func TestClone_CopiesContent(t *testing.T) {
	rs := NewspaperRuleset()
	src := sampleIssue(t, NewDocument(rs))
	dst := NewDocument(rs)

	clone, err := Clone(src, dst)
	require.NoError(t, err)

	assert.Same(t, dst, clone.Document())
	assert.Equal(t, src.TypeName(), clone.TypeName())
	assert.Equal(t, src.AllMetadata(), clone.AllMetadata())
	assert.Equal(t, src.Persons(), clone.Persons())
	assert.Equal(t, src.Corporates(), clone.Corporates())
	assert.Equal(t, src.Groups(), clone.Groups())

	assert.Empty(t, clone.OrderLabel)
	assert.Empty(t, clone.Link)
	assert.Nil(t, clone.Parent())
}

func TestClone_DoesNotShareState(t *testing.T) {
	rs := NewspaperRuleset()
	src := sampleIssue(t, NewDocument(rs))
	clone, err := Clone(src, NewDocument(rs))
	require.NoError(t, err)

	clone.metadata[0].Value = "changed"
	clone.metadata[0].Authority.Value = "999"
	clone.persons[0].NameParts[0].Value = "changed"
	clone.corporates[0].SubNames[0].Value = "changed"
	clone.groups[0].Metadata[0].Value = "changed"
	clone.groups[0].Groups[0].Metadata[0].Value = "changed"
	require.NoError(t, clone.AddMetadata(Metadata{Type: "CurrentNo", Value: "1"}))

	assert.Equal(t, "Morning edition", src.AllMetadata()[0].Value)
	assert.Equal(t, "123", src.AllMetadata()[0].Authority.Value)
	assert.Equal(t, "1815-1852", src.Persons()[0].NameParts[0].Value)
	assert.Equal(t, "Print shop", src.Corporates()[0].SubNames[0].Value)
	assert.Equal(t, "Berlin", src.Groups()[0].Metadata[0].Value)
	assert.Equal(t, "nested", src.Groups()[0].Groups[0].Metadata[0].Value)
	assert.Len(t, src.AllMetadata(), 1)
}

func TestCloneAs_SkipsDisallowedMetadata(t *testing.T) {
	rs := NewspaperRuleset()
	src := sampleIssue(t, NewDocument(rs))

	page, err := CloneAs("page", src, NewDocument(rs))
	require.NoError(t, err)
	assert.Empty(t, page.AllMetadata())
	assert.Empty(t, page.Persons())
}

func TestCloneAs_UnknownType(t *testing.T) {
	rs := NewspaperRuleset()
	src := sampleIssue(t, NewDocument(rs))

	_, err := CloneAs("Monograph", src, NewDocument(rs))
	require.ErrorIs(t, err, ErrUnknownType)
}

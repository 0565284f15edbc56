package docstruct

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleProcessFile = `physical:
  type: BoundBook
  children:
    - type: page
      id: PHYS_0001
      image_name: images/00000001.tif
      metadata:
        - {type: physPageNumber, value: "1"}
    - type: page
      id: PHYS_0002
      image_name: images/00000002.tif
logical:
  type: Newspaper
  metadata:
    - {type: CatalogIDDigital, value: "1234"}
  children:
    - type: NewspaperVolume
      metadata:
        - {type: PublicationYear, value: "2023"}
      children:
        - type: NewspaperIssue
          metadata:
            - {type: DateIssued, value: "2023-01-02"}
          pages: [PHYS_0002, PHYS_0001]
`

func TestDecode_ResolvesPages(t *testing.T) {
	doc, err := Decode(NewspaperRuleset(), []byte(sampleProcessFile))
	require.NoError(t, err)

	require.Len(t, doc.Pages(), 2)
	issue := doc.Logical().Children()[0].Children()[0]
	refs := issue.References()
	require.Len(t, refs, 2)
	assert.Same(t, doc.Pages()[1], refs[0])
	assert.Same(t, doc.Pages()[0], refs[1])
	assert.Equal(t, "images/00000001.tif", doc.Pages()[0].ImageName)
}

func TestDecode_Errors(t *testing.T) {
	rs := NewspaperRuleset()

	_, err := Decode(rs, []byte("physical:\n  type: BoundBook\n"))
	require.Error(t, err)

	_, err = Decode(rs, []byte("logical:\n  type: Newspaper\n  children:\n    - type: NewspaperDay\n"))
	require.ErrorIs(t, err, ErrTypeNotAllowedAsChild)

	_, err = Decode(rs, []byte("logical:\n  type: NewspaperIssue\n  pages: [PHYS_0009]\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PHYS_0009")
}

func TestEncode_PreservesStructure(t *testing.T) {
	rs := NewspaperRuleset()
	doc, err := Decode(rs, []byte(sampleProcessFile))
	require.NoError(t, err)
	year := doc.Logical().Children()[0]
	require.NoError(t, year.AddMetadata(Metadata{Type: "MainTitle", Value: "1923"}))

	data, err := Encode(doc)
	require.NoError(t, err)

	again, err := Decode(rs, data)
	require.NoError(t, err)
	assert.Equal(t, "1923", again.Logical().Children()[0].MetadataByType("MainTitle")[0].Value)
	issue := again.Logical().Children()[0].Children()[0]
	require.Len(t, issue.References(), 2)
	assert.Equal(t, "PHYS_0002", issue.References()[0].ID)
}

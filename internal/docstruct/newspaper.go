package docstruct

// NewspaperRuleset returns the built-in ruleset for newspaper processes. It is
// used when a process does not name a ruleset file.
func NewspaperRuleset() *Ruleset {
	return &Ruleset{
		DocStructTypes: []*DocStructType{
			{Name: "Newspaper", Anchor: true, Children: []string{"NewspaperVolume"}},
			{Name: "NewspaperStub", Anchor: true, Children: []string{"NewspaperVolume"}},
			{Name: "NewspaperVolume", Children: []string{"NewspaperMonth", "NewspaperIssue"}},
			{Name: "NewspaperMonth", Children: []string{"NewspaperDay"}},
			{Name: "NewspaperDay", Children: []string{"NewspaperIssue"}},
			{Name: "NewspaperIssue", Children: []string{"Article", "Supplement"}},
			{Name: "Article"},
			{Name: "Supplement", Children: []string{"Article"}},
			{Name: "BoundBook", Children: []string{"page"}},
			{Name: "page", Metadata: []string{"physPageNumber", "logicalPageNumber"}},
		},
		MetadataTypes: []MetadataType{
			{Name: "CatalogIDDigital"},
			{Name: "CatalogIDPeriodicalDB"},
			{Name: "CatalogIDPeriodicalDBDigital"},
			{Name: "AnchorZDBIdDigital"},
			{Name: "AnchorID"},
			{Name: "AnchorTitle"},
			{Name: "TitleDocMain"},
			{Name: "MainTitle"},
			{Name: "DateIssued"},
			{Name: "PublicationYear"},
			{Name: "CurrentNo"},
			{Name: "CurrentNoSorting"},
			{Name: "DocLanguage"},
			{Name: "PlaceOfPublication"},
			{Name: "AccessLicense"},
			{Name: "TypeOfResource"},
			{Name: "_purl"},
			{Name: "physPageNumber"},
			{Name: "logicalPageNumber"},
			{Name: "Author", Person: true},
			{Name: "Editor", Person: true},
			{Name: "Publisher", Corporate: true},
		},
		GroupTypes: []string{"PublicationPlace", "Subject"},
	}
}

package config

// DefaultMetadataRoles returns the metadata type names of the built-in
// newspaper ruleset.
func DefaultMetadataRoles() MetadataRoles {
	return MetadataRoles{
		Identifier:         "CatalogIDDigital",
		ZDBIDAnalog:        "CatalogIDPeriodicalDB",
		ZDBIDDigital:       "CatalogIDPeriodicalDBDigital",
		IssueDate:          "DateIssued",
		YearDate:           "PublicationYear",
		TitleLabel:         "TitleDocMain",
		ModsTitle:          "MainTitle",
		IssueNumber:        "CurrentNo",
		SortNumber:         "CurrentNoSorting",
		Language:           "DocLanguage",
		Location:           "PlaceOfPublication",
		Licence:            "AccessLicense",
		ResourceType:       "TypeOfResource",
		PURL:               "_purl",
		AnchorID:           "AnchorID",
		AnchorTitle:        "AnchorTitle",
		AnchorZDBIDDigital: "AnchorZDBIdDigital",
	}
}

// DefaultDocStructRoles returns the structural type names of the built-in
// newspaper ruleset.
func DefaultDocStructRoles() DocStructRoles {
	return DocStructRoles{
		Newspaper:     "Newspaper",
		Year:          "NewspaperVolume",
		Month:         "NewspaperMonth",
		Day:           "NewspaperDay",
		Issue:         "NewspaperIssue",
		NewspaperStub: "NewspaperStub",
	}
}

func (c *Config) applyDefaults() {
	c.Log.Level = NormalizeLogLevel(string(c.Log.Level))
	c.Log.Format = NormalizeLogFormat(string(c.Log.Format))

	fill := func(dst *string, def string) {
		if *dst == "" {
			*dst = def
		}
	}

	md := DefaultMetadataRoles()
	fill(&c.Metadata.Identifier, md.Identifier)
	fill(&c.Metadata.ZDBIDAnalog, md.ZDBIDAnalog)
	fill(&c.Metadata.ZDBIDDigital, md.ZDBIDDigital)
	fill(&c.Metadata.IssueDate, md.IssueDate)
	fill(&c.Metadata.YearDate, md.YearDate)
	fill(&c.Metadata.TitleLabel, md.TitleLabel)
	fill(&c.Metadata.ModsTitle, md.ModsTitle)
	fill(&c.Metadata.IssueNumber, md.IssueNumber)
	fill(&c.Metadata.SortNumber, md.SortNumber)
	fill(&c.Metadata.Language, md.Language)
	fill(&c.Metadata.Location, md.Location)
	fill(&c.Metadata.Licence, md.Licence)
	fill(&c.Metadata.ResourceType, md.ResourceType)
	fill(&c.Metadata.PURL, md.PURL)
	fill(&c.Metadata.AnchorID, md.AnchorID)
	fill(&c.Metadata.AnchorTitle, md.AnchorTitle)
	fill(&c.Metadata.AnchorZDBIDDigital, md.AnchorZDBIDDigital)

	ds := DefaultDocStructRoles()
	fill(&c.DocStruct.Newspaper, ds.Newspaper)
	fill(&c.DocStruct.Year, ds.Year)
	fill(&c.DocStruct.Month, ds.Month)
	fill(&c.DocStruct.Day, ds.Day)
	fill(&c.DocStruct.Issue, ds.Issue)
	fill(&c.DocStruct.NewspaperStub, ds.NewspaperStub)

	for i := range c.Projects {
		p := &c.Projects[i]
		fill(&p.Project, Wildcard)
		fill(&p.Step, Wildcard)
	}
}

package mets

// Parameters are the header, rights and pointer settings written into every METS
// document of an export.
type Parameters struct {
	RightsOwner                string `yaml:"rights_owner,omitempty"`
	RightsOwnerLogo            string `yaml:"rights_owner_logo,omitempty"`
	RightsOwnerSiteURL         string `yaml:"rights_owner_site_url,omitempty"`
	RightsOwnerContact         string `yaml:"rights_owner_contact,omitempty"`
	DigiprovPresentation       string `yaml:"digiprov_presentation,omitempty"`
	DigiprovReference          string `yaml:"digiprov_reference,omitempty"`
	DigiprovPresentationAnchor string `yaml:"digiprov_presentation_anchor,omitempty"`
	DigiprovReferenceAnchor    string `yaml:"digiprov_reference_anchor,omitempty"`
	RightsLicense              string `yaml:"rights_license,omitempty"`
	RightsSponsor              string `yaml:"rights_sponsor,omitempty"`
	RightsSponsorLogo          string `yaml:"rights_sponsor_logo,omitempty"`
	RightsSponsorSiteURL       string `yaml:"rights_sponsor_site_url,omitempty"`
	PURL                       string `yaml:"purl,omitempty"`
	ContentIDs                 string `yaml:"content_ids,omitempty"`
	PointerPath                string `yaml:"mets_pointer_path,omitempty"`
	PointerPathAnchor          string `yaml:"mets_pointer_path_anchor,omitempty"`

	// ProcessID is written to the header agent note.
	ProcessID string `yaml:"-"`
}

func (p *Parameters) fields() []*string {
	return []*string{
		&p.RightsOwner, &p.RightsOwnerLogo, &p.RightsOwnerSiteURL, &p.RightsOwnerContact,
		&p.DigiprovPresentation, &p.DigiprovReference, &p.DigiprovPresentationAnchor, &p.DigiprovReferenceAnchor,
		&p.RightsLicense, &p.RightsSponsor, &p.RightsSponsorLogo, &p.RightsSponsorSiteURL,
		&p.PURL, &p.ContentIDs, &p.PointerPath, &p.PointerPathAnchor,
	}
}

// WithDefaults returns p with every empty field taken from fallback.
func (p Parameters) WithDefaults(fallback Parameters) Parameters {
	out := p
	dst, src := out.fields(), fallback.fields()
	for i := range dst {
		if *dst[i] == "" {
			*dst[i] = *src[i]
		}
	}
	if out.ProcessID == "" {
		out.ProcessID = fallback.ProcessID
	}
	return out
}

// Map returns p with fn applied to every field.
func (p Parameters) Map(fn func(string) string) Parameters {
	out := p
	for _, f := range out.fields() {
		*f = fn(*f)
	}
	return out
}

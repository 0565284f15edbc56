package mets

import (
	"github.com/beevik/etree"

	"git.home.luguber.info/inful/newspaperexport/internal/docstruct"
)

func hasDescriptive(n *docstruct.Node) bool {
	return len(n.AllMetadata()) > 0 || len(n.Persons()) > 0 ||
		len(n.Corporates()) > 0 || len(n.Groups()) > 0
}

// dmdSecs assigns logical IDs in document order and writes one dmdSec per node
// with descriptive content.
func (r *render) dmdSecs(n *docstruct.Node, depth int) {
	id := r.nextLogID(n)
	if hasDescriptive(n) {
		r.dmdSec(n, id)
	}
	if depth == 0 {
		return
	}
	for _, c := range n.Children() {
		r.dmdSecs(c, depth-1)
	}
}

func (r *render) dmdSec(n *docstruct.Node, id string) {
	sec := r.root.CreateElement("mets:dmdSec")
	sec.CreateAttr("ID", "DMD"+id)
	mdWrap := sec.CreateElement("mets:mdWrap")
	mdWrap.CreateAttr("MDTYPE", "MODS")
	mods := mdWrap.CreateElement("mets:xmlData").CreateElement("mods:mods")

	if title := firstValue(n, r.w.Roles.Title); title != "" {
		mods.CreateElement("mods:titleInfo").CreateElement("mods:title").SetText(title)
	}
	if ident := firstValue(n, r.w.Roles.Identifier); ident != "" {
		rid := mods.CreateElement("mods:recordInfo").CreateElement("mods:recordIdentifier")
		rid.SetText(ident)
	}

	goobi := mods.CreateElement("mods:extension").CreateElement("goobi:goobi")
	writeContent(goobi, n.AllMetadata(), n.Persons(), n.Corporates(), n.Groups())
}

func writeContent(parent *etree.Element, mds []docstruct.Metadata, persons []docstruct.Person,
	corporates []docstruct.Corporate, groups []docstruct.Group) {
	for _, md := range mds {
		el := parent.CreateElement("goobi:metadata")
		el.CreateAttr("name", md.Type)
		authority(el, md.Authority)
		el.SetText(md.Value)
	}
	for _, p := range persons {
		el := parent.CreateElement("goobi:metadata")
		el.CreateAttr("name", p.Role)
		el.CreateAttr("type", "person")
		authority(el, p.Authority)
		text(el, "goobi:firstName", p.FirstName)
		text(el, "goobi:lastName", p.LastName)
		if p.LastName != "" || p.FirstName != "" {
			display := p.LastName
			if p.FirstName != "" {
				display += ", " + p.FirstName
			}
			text(el, "goobi:displayName", display)
		}
		nameParts(el, p.NameParts)
	}
	for _, c := range corporates {
		el := parent.CreateElement("goobi:metadata")
		el.CreateAttr("name", c.Role)
		el.CreateAttr("type", "corporate")
		authority(el, c.Authority)
		text(el, "goobi:mainName", c.MainName)
		for _, sub := range c.SubNames {
			text(el, "goobi:subName", sub.Value)
		}
		text(el, "goobi:partName", c.PartName)
	}
	for _, g := range groups {
		el := parent.CreateElement("goobi:metadata")
		el.CreateAttr("name", g.Type)
		el.CreateAttr("type", "group")
		writeContent(el, g.Metadata, g.Persons, g.Corporates, g.Groups)
	}
}

func authority(el *etree.Element, a *docstruct.Authority) {
	if a == nil {
		return
	}
	if a.ID != "" {
		el.CreateAttr("authority", a.ID)
	}
	if a.URI != "" {
		el.CreateAttr("authorityURI", a.URI)
	}
	if a.Value != "" {
		el.CreateAttr("valueURI", a.Value)
	}
}

func nameParts(el *etree.Element, parts []docstruct.NamePart) {
	for _, np := range parts {
		part := el.CreateElement("goobi:namePart")
		part.CreateAttr("type", np.Type)
		part.SetText(np.Value)
	}
}

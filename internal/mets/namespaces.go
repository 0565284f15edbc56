package mets

import "github.com/beevik/etree"

// XML namespaces used in exported documents.
const (
	NamespaceMETS  = "http://www.loc.gov/METS/"
	NamespaceMODS  = "http://www.loc.gov/mods/v3"
	NamespaceXLink = "http://www.w3.org/1999/xlink"
	NamespaceGoobi = "http://meta.goobi.org/v1.5.1/"
	NamespaceDV    = "http://dfg-viewer.de/"
	NamespaceXSI   = "http://www.w3.org/2001/XMLSchema-instance"

	schemaLocation = "http://www.loc.gov/METS/ http://www.loc.gov/standards/mets/mets.xsd " +
		"http://www.loc.gov/mods/v3 http://www.loc.gov/standards/mods/mods.xsd"
)

// Structural map types.
const (
	StructMapLogical  = "LOGICAL"
	StructMapPhysical = "PHYSICAL"
)

// StructMap returns the first mets:structMap child of the root with the given TYPE.
func StructMap(doc *etree.Document, typ string) *etree.Element {
	root := doc.Root()
	if root == nil {
		return nil
	}
	for _, el := range root.ChildElements() {
		if isMETS(el, "structMap") && el.SelectAttrValue("TYPE", "") == typ {
			return el
		}
	}
	return nil
}

// ChildDivs returns the mets:div children of el.
func ChildDivs(el *etree.Element) []*etree.Element {
	var out []*etree.Element
	for _, c := range el.ChildElements() {
		if isMETS(c, "div") {
			out = append(out, c)
		}
	}
	return out
}

// Child returns the first METS child element of el with the given local name.
func Child(el *etree.Element, local string) *etree.Element {
	for _, c := range el.ChildElements() {
		if isMETS(c, local) {
			return c
		}
	}
	return nil
}

// Href returns the xlink:href attribute of el.
func Href(el *etree.Element) (string, bool) {
	for _, a := range el.Attr {
		if a.Key == "href" && a.NamespaceURI() == NamespaceXLink {
			return a.Value, true
		}
	}
	return "", false
}

func isMETS(el *etree.Element, local string) bool {
	return el.Tag == local && el.NamespaceURI() == NamespaceMETS
}

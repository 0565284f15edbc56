package mets

import (
	"fmt"

	"github.com/beevik/etree"
	"github.com/jonboulle/clockwork"

	"git.home.luguber.info/inful/newspaperexport/internal/docstruct"
)

// Roles names the metadata types the writer lifts into MODS and div attributes.
type Roles struct {
	// Label is written as the div LABEL.
	Label string
	// Title is written as mods:titleInfo/mods:title.
	Title string
	// Identifier is written as mods:recordInfo/mods:recordIdentifier.
	Identifier string
}

// Writer renders documents as METS.
type Writer struct {
	Params  Parameters
	Roles   Roles
	Creator string
	Clock   clockwork.Clock
}

// NewWriter returns a Writer with the given parameters.
func NewWriter(params Parameters, roles Roles, creator string) *Writer {
	return &Writer{Params: params, Roles: roles, Creator: creator, Clock: clockwork.NewRealClock()}
}

type render struct {
	w      *Writer
	doc    *etree.Document
	root   *etree.Element
	logIDs map[*docstruct.Node]string
	phyIDs map[*docstruct.Node]string
	logSeq int
}

func (w *Writer) begin() *render {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	root := doc.CreateElement("mets:mets")
	root.CreateAttr("xmlns:mets", NamespaceMETS)
	root.CreateAttr("xmlns:mods", NamespaceMODS)
	root.CreateAttr("xmlns:goobi", NamespaceGoobi)
	root.CreateAttr("xmlns:xlink", NamespaceXLink)
	root.CreateAttr("xmlns:dv", NamespaceDV)
	root.CreateAttr("xmlns:xsi", NamespaceXSI)
	root.CreateAttr("xsi:schemaLocation", schemaLocation)

	r := &render{
		w:      w,
		doc:    doc,
		root:   root,
		logIDs: map[*docstruct.Node]string{},
		phyIDs: map[*docstruct.Node]string{},
	}
	r.header()
	return r
}

func (r *render) header() {
	clock := r.w.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	hdr := r.root.CreateElement("mets:metsHdr")
	hdr.CreateAttr("CREATEDATE", clock.Now().UTC().Format("2006-01-02T15:04:05"))
	agent := hdr.CreateElement("mets:agent")
	agent.CreateAttr("OTHERTYPE", "SOFTWARE")
	agent.CreateAttr("ROLE", "CREATOR")
	agent.CreateAttr("TYPE", "OTHER")
	agent.CreateElement("mets:name").SetText(r.w.Creator)
	if r.w.Params.ProcessID != "" {
		agent.CreateElement("mets:note").SetText("Process " + r.w.Params.ProcessID)
	}
}

// Document renders a full document: descriptive sections for every logical node,
// rights and provenance, file groups, both structural maps and the structLink
// section. An anchor-type logical root without a link points to the anchor
// pointer path.
func (w *Writer) Document(doc *docstruct.Document) (*etree.Document, error) {
	logical := doc.Logical()
	if logical == nil {
		return nil, fmt.Errorf("mets: document has no logical root")
	}
	r := w.begin()
	r.dmdSecs(logical, -1)
	r.amdSec(false)

	fileIDs := r.fileSec(doc)

	sm := r.root.CreateElement("mets:structMap")
	sm.CreateAttr("TYPE", StructMapLogical)
	r.logicalDiv(sm, logical, -1, true)

	if phys := doc.Physical(); phys != nil {
		r.physical(phys, fileIDs)
		r.structLink(logical)
	}
	return r.doc, nil
}

// Anchor renders the anchor document of a newspaper: the logical root with one
// pointer div per child volume. Each volume div points to the URL in its Link.
func (w *Writer) Anchor(doc *docstruct.Document) (*etree.Document, error) {
	logical := doc.Logical()
	if logical == nil {
		return nil, fmt.Errorf("mets: document has no logical root")
	}
	r := w.begin()
	r.dmdSecs(logical, 1)
	r.amdSec(true)

	sm := r.root.CreateElement("mets:structMap")
	sm.CreateAttr("TYPE", StructMapLogical)
	r.logicalDiv(sm, logical, 1, false)
	return r.doc, nil
}

// Bytes serializes doc with two-space indentation.
func Bytes(doc *etree.Document) ([]byte, error) {
	doc.Indent(2)
	return doc.WriteToBytes()
}

func (r *render) nextLogID(n *docstruct.Node) string {
	id := fmt.Sprintf("LOG_%04d", r.logSeq)
	r.logSeq++
	r.logIDs[n] = id
	return id
}

// logicalDiv writes n and its descendants up to depth levels below it; a negative
// depth is unlimited.
func (r *render) logicalDiv(parent *etree.Element, n *docstruct.Node, depth int, anchorPointer bool) {
	id, ok := r.logIDs[n]
	if !ok {
		id = r.nextLogID(n)
	}
	div := parent.CreateElement("mets:div")
	div.CreateAttr("ID", id)
	if hasDescriptive(n) {
		div.CreateAttr("DMDID", "DMD"+id)
	}
	if n.Parent() == nil {
		div.CreateAttr("ADMID", "AMD")
	}
	if label := firstValue(n, r.w.Roles.Label); label != "" {
		div.CreateAttr("LABEL", label)
	}
	if n.Order != "" {
		div.CreateAttr("ORDER", n.Order)
	}
	if n.OrderLabel != "" {
		div.CreateAttr("ORDERLABEL", n.OrderLabel)
	}
	if n.ContentIDs != "" {
		div.CreateAttr("CONTENTIDS", n.ContentIDs)
	}
	div.CreateAttr("TYPE", n.TypeName())

	link := n.Link
	if link == "" && anchorPointer && n.Parent() == nil && n.Type().IsAnchor() {
		link = r.w.Params.PointerPathAnchor
	}
	if link != "" {
		mptr := div.CreateElement("mets:mptr")
		mptr.CreateAttr("LOCTYPE", "URL")
		mptr.CreateAttr("xlink:href", link)
	}

	if depth == 0 {
		return
	}
	for _, c := range n.Children() {
		r.logicalDiv(div, c, depth-1, anchorPointer)
	}
}

func (r *render) amdSec(anchor bool) {
	p := r.w.Params
	amd := r.root.CreateElement("mets:amdSec")
	amd.CreateAttr("ID", "AMD")

	rights := wrap(amd, "mets:rightsMD", "RIGHTS", "DVRIGHTS").CreateElement("dv:rights")
	text(rights, "dv:owner", p.RightsOwner)
	text(rights, "dv:ownerLogo", p.RightsOwnerLogo)
	text(rights, "dv:ownerSiteURL", p.RightsOwnerSiteURL)
	text(rights, "dv:ownerContact", p.RightsOwnerContact)
	text(rights, "dv:license", p.RightsLicense)
	text(rights, "dv:sponsor", p.RightsSponsor)
	text(rights, "dv:sponsorLogo", p.RightsSponsorLogo)
	text(rights, "dv:sponsorSiteURL", p.RightsSponsorSiteURL)

	presentation, reference := p.DigiprovPresentation, p.DigiprovReference
	if anchor {
		presentation, reference = p.DigiprovPresentationAnchor, p.DigiprovReferenceAnchor
	}
	links := wrap(amd, "mets:digiprovMD", "DIGIPROV", "DVLINKS").CreateElement("dv:links")
	text(links, "dv:reference", reference)
	text(links, "dv:presentation", presentation)
}

func wrap(parent *etree.Element, tag, id, otherType string) *etree.Element {
	sec := parent.CreateElement(tag)
	sec.CreateAttr("ID", id)
	mdWrap := sec.CreateElement("mets:mdWrap")
	mdWrap.CreateAttr("MDTYPE", "OTHER")
	mdWrap.CreateAttr("MIMETYPE", "text/xml")
	mdWrap.CreateAttr("OTHERMDTYPE", otherType)
	return mdWrap.CreateElement("mets:xmlData")
}

func text(parent *etree.Element, tag, value string) {
	if value == "" {
		return
	}
	parent.CreateElement(tag).SetText(value)
}

func firstValue(n *docstruct.Node, typeName string) string {
	if typeName == "" {
		return ""
	}
	if mds := n.MetadataByType(typeName); len(mds) > 0 {
		return mds[0].Value
	}
	return ""
}

// Parse reads METS XML.
func Parse(data []byte) (*etree.Document, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("mets: parse: %w", err)
	}
	if doc.Root() == nil {
		return nil, fmt.Errorf("mets: parse: empty document")
	}
	return doc, nil
}

package docstruct

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// nodeRecord is the on-disk shape of a node in a process metadata file.
type nodeRecord struct {
	Type       string        `yaml:"type"`
	ID         string        `yaml:"id,omitempty"`
	OrderLabel string        `yaml:"order_label,omitempty"`
	Order      string        `yaml:"order,omitempty"`
	Link       string        `yaml:"link,omitempty"`
	ContentIDs string        `yaml:"content_ids,omitempty"`
	ImageName  string        `yaml:"image_name,omitempty"`
	Metadata   []Metadata    `yaml:"metadata,omitempty"`
	Persons    []Person      `yaml:"persons,omitempty"`
	Corporates []Corporate   `yaml:"corporates,omitempty"`
	Groups     []Group       `yaml:"groups,omitempty"`
	Pages      []string      `yaml:"pages,omitempty"`
	Children   []*nodeRecord `yaml:"children,omitempty"`
}

type documentRecord struct {
	Logical  *nodeRecord `yaml:"logical"`
	Physical *nodeRecord `yaml:"physical,omitempty"`
}

// Encode renders a document as a YAML process metadata file. Logical nodes refer
// to physical nodes by ID.
func Encode(doc *Document) ([]byte, error) {
	rec := documentRecord{}
	if doc.physical != nil {
		rec.Physical = encodeNode(doc.physical)
	}
	if doc.logical != nil {
		rec.Logical = encodeNode(doc.logical)
	}
	out, err := yaml.Marshal(&rec)
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	return out, nil
}

func encodeNode(n *Node) *nodeRecord {
	r := &nodeRecord{
		Type:       n.typ.Name,
		ID:         n.ID,
		OrderLabel: n.OrderLabel,
		Order:      n.Order,
		Link:       n.Link,
		ContentIDs: n.ContentIDs,
		ImageName:  n.ImageName,
		Metadata:   n.metadata,
		Persons:    n.persons,
		Corporates: n.corporates,
		Groups:     n.groups,
	}
	for _, ref := range n.refs {
		r.Pages = append(r.Pages, ref.ID)
	}
	for _, c := range n.children {
		r.Children = append(r.Children, encodeNode(c))
	}
	return r
}

// Decode parses a YAML process metadata file against a ruleset. Every node,
// metadata entry and child relation is checked by the ruleset.
func Decode(rs *Ruleset, data []byte) (*Document, error) {
	var rec documentRecord
	if err := yaml.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	if rec.Logical == nil {
		return nil, fmt.Errorf("decode document: missing logical tree")
	}

	doc := NewDocument(rs)
	pages := map[string]*Node{}
	if rec.Physical != nil {
		phys, err := doc.decodeNode(rec.Physical, pages, true)
		if err != nil {
			return nil, err
		}
		doc.physical = phys
	}
	logical, err := doc.decodeNode(rec.Logical, pages, false)
	if err != nil {
		return nil, err
	}
	doc.logical = logical
	return doc, nil
}

func (d *Document) decodeNode(r *nodeRecord, pages map[string]*Node, physical bool) (*Node, error) {
	n, err := d.CreateNode(r.Type)
	if err != nil {
		return nil, err
	}
	n.ID = r.ID
	n.OrderLabel = r.OrderLabel
	n.Order = r.Order
	n.Link = r.Link
	n.ContentIDs = r.ContentIDs
	n.ImageName = r.ImageName
	if physical && n.ID != "" {
		pages[n.ID] = n
	}

	for _, md := range r.Metadata {
		if err := n.AddMetadata(md); err != nil {
			return nil, err
		}
	}
	for _, p := range r.Persons {
		if err := n.AddPerson(p); err != nil {
			return nil, err
		}
	}
	for _, c := range r.Corporates {
		if err := n.AddCorporate(c); err != nil {
			return nil, err
		}
	}
	for _, g := range r.Groups {
		if err := n.AddGroup(g); err != nil {
			return nil, err
		}
	}
	for _, id := range r.Pages {
		target, ok := pages[id]
		if !ok {
			return nil, fmt.Errorf("decode document: %s refers to unknown page %q", r.Type, id)
		}
		n.refs = append(n.refs, target)
	}
	for _, cr := range r.Children {
		child, err := d.decodeNode(cr, pages, physical)
		if err != nil {
			return nil, err
		}
		if err := n.AddChild(child); err != nil {
			return nil, err
		}
	}
	return n, nil
}

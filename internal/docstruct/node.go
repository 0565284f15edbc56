package docstruct

import (
	"fmt"
)

// Node is a typed element of a logical or physical tree.
type Node struct {
	doc    *Document
	typ    *DocStructType
	parent *Node

	// ID identifies physical nodes for references in the metadata file.
	ID         string
	OrderLabel string
	// Order is the sequence value written as the METS ORDER attribute.
	Order      string
	Link       string
	ContentIDs string
	ImageName  string

	metadata   []Metadata
	persons    []Person
	corporates []Corporate
	groups     []Group
	children   []*Node
	refs       []*Node
}

// Type returns the structural type of the node.
func (n *Node) Type() *DocStructType { return n.typ }

// TypeName returns the name of the structural type.
func (n *Node) TypeName() string { return n.typ.Name }

// Document returns the owning document.
func (n *Node) Document() *Document { return n.doc }

// Parent returns the parent node or nil.
func (n *Node) Parent() *Node { return n.parent }

// Children returns the child nodes in order.
func (n *Node) Children() []*Node { return n.children }

// AllMetadata returns the metadata entries in order.
func (n *Node) AllMetadata() []Metadata { return n.metadata }

// Persons returns the person entries in order.
func (n *Node) Persons() []Person { return n.persons }

// Corporates returns the corporate entries in order.
func (n *Node) Corporates() []Corporate { return n.corporates }

// Groups returns the metadata groups in order.
func (n *Node) Groups() []Group { return n.groups }

// References returns the physical nodes this node refers to.
func (n *Node) References() []*Node { return n.refs }

// MetadataByType returns all metadata entries of the given type in order.
func (n *Node) MetadataByType(typeName string) []Metadata {
	var out []Metadata
	for _, md := range n.metadata {
		if md.Type == typeName {
			out = append(out, md)
		}
	}
	return out
}

// AddMetadata appends a metadata entry after checking the ruleset.
func (n *Node) AddMetadata(md Metadata) error {
	if !n.doc.ruleset.AllowsMetadata(n.typ, md.Type) {
		return fmt.Errorf("%w: %s on %s", ErrMetadataTypeNotAllowed, md.Type, n.typ.Name)
	}
	n.metadata = append(n.metadata, md)
	return nil
}

// SetMetadataValue sets the value of the first entry of typeName or appends a new entry.
func (n *Node) SetMetadataValue(typeName, value string) error {
	for i := range n.metadata {
		if n.metadata[i].Type == typeName {
			n.metadata[i].Value = value
			return nil
		}
	}
	return n.AddMetadata(Metadata{Type: typeName, Value: value})
}

// AddPerson appends a person entry after checking the ruleset.
func (n *Node) AddPerson(p Person) error {
	if !n.doc.ruleset.AllowsMetadata(n.typ, p.Role) {
		return fmt.Errorf("%w: person %s on %s", ErrMetadataTypeNotAllowed, p.Role, n.typ.Name)
	}
	n.persons = append(n.persons, p)
	return nil
}

// AddCorporate appends a corporate entry after checking the ruleset.
func (n *Node) AddCorporate(c Corporate) error {
	if !n.doc.ruleset.AllowsMetadata(n.typ, c.Role) {
		return fmt.Errorf("%w: corporate %s on %s", ErrMetadataTypeNotAllowed, c.Role, n.typ.Name)
	}
	n.corporates = append(n.corporates, c)
	return nil
}

// AddGroup appends a metadata group after checking the ruleset.
func (n *Node) AddGroup(g Group) error {
	if !n.doc.ruleset.HasGroupType(g.Type) {
		return fmt.Errorf("%w: group %s on %s", ErrMetadataTypeNotAllowed, g.Type, n.typ.Name)
	}
	n.groups = append(n.groups, g)
	return nil
}

// AddChild appends child as the last child of n.
func (n *Node) AddChild(child *Node) error {
	if child.doc != n.doc {
		return ErrForeignNode
	}
	if !n.doc.ruleset.AllowsChild(n.typ, child.typ) {
		return fmt.Errorf("%w: %s below %s", ErrTypeNotAllowedAsChild, child.typ.Name, n.typ.Name)
	}
	child.parent = n
	n.children = append(n.children, child)
	return nil
}

// AddReference links n to a physical node of the same document.
func (n *Node) AddReference(target *Node) error {
	if target.doc != n.doc {
		return ErrForeignNode
	}
	n.refs = append(n.refs, target)
	return nil
}

// FindChild returns the first direct child whose order label equals label.
func (n *Node) FindChild(label string) *Node {
	for _, c := range n.children {
		if c.OrderLabel == label {
			return c
		}
	}
	return nil
}

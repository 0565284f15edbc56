package docstruct

import "fmt"

// Document owns one logical and one physical tree plus the file groups used when
// the document is serialized.
type Document struct {
	ruleset    *Ruleset
	logical    *Node
	physical   *Node
	FileGroups []FileGroup
}

// NewDocument creates an empty document bound to a ruleset.
func NewDocument(rs *Ruleset) *Document {
	return &Document{ruleset: rs}
}

// Ruleset returns the document's type system.
func (d *Document) Ruleset() *Ruleset { return d.ruleset }

// Logical returns the logical root.
func (d *Document) Logical() *Node { return d.logical }

// Physical returns the physical root.
func (d *Document) Physical() *Node { return d.physical }

// CreateNode creates a detached node of the named type owned by d.
func (d *Document) CreateNode(typeName string) (*Node, error) {
	t := d.ruleset.DocStructType(typeName)
	if t == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, typeName)
	}
	return &Node{doc: d, typ: t}, nil
}

// SetLogical sets the logical root.
func (d *Document) SetLogical(n *Node) error {
	if n.doc != d {
		return ErrForeignNode
	}
	d.logical = n
	return nil
}

// SetPhysical sets the physical root.
func (d *Document) SetPhysical(n *Node) error {
	if n.doc != d {
		return ErrForeignNode
	}
	d.physical = n
	return nil
}

// AddFileGroup attaches a file group.
func (d *Document) AddFileGroup(fg FileGroup) {
	d.FileGroups = append(d.FileGroups, fg)
}

// Pages returns the children of the physical root.
func (d *Document) Pages() []*Node {
	if d.physical == nil {
		return nil
	}
	return d.physical.children
}

package docstruct

import (
	"log/slog"
	"slices"

	"git.home.luguber.info/inful/newspaperexport/internal/logfields"
)

// Clone deep-copies the descriptive content of src into a new detached node of the
// same type owned by dst. See CloneAs.
func Clone(src *Node, dst *Document) (*Node, error) {
	return CloneAs(src.TypeName(), src, dst)
}

// CloneAs deep-copies the descriptive content of src into a new detached node of
// typeName owned by dst. Metadata, persons, corporates and groups are copied in
// order; an entry the target type does not permit is logged and skipped. Order
// label, link, image name, children and references are not copied.
//
// The only error is a failure to create the node in dst.
func CloneAs(typeName string, src *Node, dst *Document) (*Node, error) {
	n, err := dst.CreateNode(typeName)
	if err != nil {
		return nil, err
	}

	for _, md := range src.metadata {
		if err := n.AddMetadata(cloneMetadata(md)); err != nil {
			skipped(typeName, err)
		}
	}
	for _, p := range src.persons {
		if err := n.AddPerson(clonePerson(p)); err != nil {
			skipped(typeName, err)
		}
	}
	for _, c := range src.corporates {
		if err := n.AddCorporate(cloneCorporate(c)); err != nil {
			skipped(typeName, err)
		}
	}
	for _, g := range src.groups {
		if err := n.AddGroup(cloneGroup(g)); err != nil {
			skipped(typeName, err)
		}
	}
	return n, nil
}

func skipped(typeName string, err error) {
	slog.Info("Skipping entry during clone", logfields.DocType(typeName), logfields.Error(err))
}

func cloneMetadata(md Metadata) Metadata {
	return Metadata{Type: md.Type, Value: md.Value, Authority: md.Authority.clone()}
}

func clonePerson(p Person) Person {
	return Person{
		Role:      p.Role,
		FirstName: p.FirstName,
		LastName:  p.LastName,
		NameParts: slices.Clone(p.NameParts),
		Authority: p.Authority.clone(),
	}
}

func cloneCorporate(c Corporate) Corporate {
	return Corporate{
		Role:      c.Role,
		MainName:  c.MainName,
		SubNames:  slices.Clone(c.SubNames),
		PartName:  c.PartName,
		Authority: c.Authority.clone(),
	}
}

func cloneGroup(g Group) Group {
	out := Group{Type: g.Type}
	for _, md := range g.Metadata {
		out.Metadata = append(out.Metadata, cloneMetadata(md))
	}
	for _, p := range g.Persons {
		out.Persons = append(out.Persons, clonePerson(p))
	}
	for _, c := range g.Corporates {
		out.Corporates = append(out.Corporates, cloneCorporate(c))
	}
	for _, sub := range g.Groups {
		out.Groups = append(out.Groups, cloneGroup(sub))
	}
	return out
}

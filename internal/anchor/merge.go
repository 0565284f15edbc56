package anchor

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/beevik/etree"

	"git.home.luguber.info/inful/newspaperexport/internal/logfields"
	"git.home.luguber.info/inful/newspaperexport/internal/mets"
)

var (
	// ErrNoMergeNeeded is returned when the new anchor lists a volume the existing
	// anchor already has, i.e. a year is exported again.
	ErrNoMergeNeeded = errors.New("anchor: volume already present, no merge needed")
	// ErrMalformedAnchor is returned when an anchor's LOGICAL structMap cannot be read.
	ErrMalformedAnchor = errors.New("anchor: malformed structMap")
)

// rootDiv returns the top-level div of the LOGICAL structMap.
func rootDiv(doc *etree.Document) (*etree.Element, error) {
	sm := mets.StructMap(doc, mets.StructMapLogical)
	if sm == nil {
		return nil, fmt.Errorf("%w: no LOGICAL structMap", ErrMalformedAnchor)
	}
	div := mets.Child(sm, "div")
	if div == nil {
		return nil, fmt.Errorf("%w: LOGICAL structMap has no div", ErrMalformedAnchor)
	}
	return div, nil
}

// ReadVolumes returns the volume divs of an anchor in document order. Entries
// whose URL matches an earlier entry are dropped.
func ReadVolumes(doc *etree.Document) ([]Volume, error) {
	root, err := rootDiv(doc)
	if err != nil {
		return nil, err
	}

	var volumes []Volume
	seen := map[string]bool{}
	for _, div := range mets.ChildDivs(root) {
		mptr := mets.Child(div, "mptr")
		if mptr == nil {
			return nil, fmt.Errorf("%w: volume div %q has no mptr", ErrMalformedAnchor, div.SelectAttrValue("ID", ""))
		}
		url, ok := mets.Href(mptr)
		if !ok {
			return nil, fmt.Errorf("%w: volume div %q has no xlink:href", ErrMalformedAnchor, div.SelectAttrValue("ID", ""))
		}
		v := Volume{
			Label:      div.SelectAttrValue("LABEL", ""),
			Type:       div.SelectAttrValue("TYPE", ""),
			URL:        url,
			ContentIDs: div.SelectAttrValue("CONTENTIDS", ""),
			Order:      div.SelectAttrValue("ORDER", ""),
		}
		if seen[v.Key()] {
			slog.Debug("Volume already merged", logfields.URL(url))
			continue
		}
		seen[v.Key()] = true
		volumes = append(volumes, v)
	}
	return volumes, nil
}

// Merge appends incoming to existing and returns the sorted result. If any
// incoming volume is already present, ErrNoMergeNeeded is returned and nothing is
// added.
func Merge(existing, incoming []Volume) ([]Volume, error) {
	keys := make(map[string]bool, len(existing))
	for _, v := range existing {
		keys[v.Key()] = true
	}

	merged := slices.Clone(existing)
	for _, v := range incoming {
		if keys[v.Key()] {
			return nil, fmt.Errorf("%w: %s", ErrNoMergeNeeded, v.URL)
		}
		keys[v.Key()] = true
		merged = append(merged, v)
	}
	slices.SortStableFunc(merged, Compare)
	return merged, nil
}

// WriteVolumes replaces the volume divs of an anchor with volumes. Divs are
// numbered LOG_0001 upwards and every pointer URL ends in .xml.
func WriteVolumes(doc *etree.Document, volumes []Volume) error {
	root, err := rootDiv(doc)
	if err != nil {
		return err
	}
	for _, div := range mets.ChildDivs(root) {
		root.RemoveChild(div)
	}

	prefix := root.Space
	if prefix != "" {
		prefix += ":"
	}
	xlink := xlinkPrefix(root)

	for i, v := range volumes {
		div := root.CreateElement(prefix + "div")
		div.CreateAttr("ID", fmt.Sprintf("LOG_%04d", i+1))
		if v.Label != "" {
			div.CreateAttr("LABEL", v.Label)
		}
		if v.ContentIDs != "" {
			div.CreateAttr("CONTENTIDS", v.ContentIDs)
		}
		if v.Order != "" {
			div.CreateAttr("ORDER", v.Order)
			div.CreateAttr("ORDERLABEL", v.Order)
		}
		div.CreateAttr("TYPE", v.Type)

		url := v.URL
		if !strings.HasSuffix(url, ".xml") {
			url += ".xml"
		}
		mptr := div.CreateElement(prefix + "mptr")
		mptr.CreateAttr("LOCTYPE", "URL")
		mptr.CreateAttr(xlink+":href", url)
	}
	return nil
}

// xlinkPrefix returns the prefix bound to the XLink namespace in scope of el,
// declaring "xlink" on the document root when none is bound.
func xlinkPrefix(el *etree.Element) string {
	for e := el; e != nil; e = e.Parent() {
		for _, a := range e.Attr {
			if a.Space == "xmlns" && a.Value == mets.NamespaceXLink {
				return a.Key
			}
		}
	}
	root := el
	for root.Parent() != nil && root.Parent().Parent() != nil {
		root = root.Parent()
	}
	root.CreateAttr("xmlns:xlink", mets.NamespaceXLink)
	return "xlink"
}

package mets

import (
	"fmt"
	"mime"
	"path"
	"strings"

	"github.com/beevik/etree"

	"git.home.luguber.info/inful/newspaperexport/internal/docstruct"
)

// fileSec writes one fileGrp per file group, main groups first, and returns the
// file IDs per page.
func (r *render) fileSec(doc *docstruct.Document) map[*docstruct.Node][]string {
	ids := map[*docstruct.Node][]string{}
	pages := doc.Pages()
	if len(doc.FileGroups) == 0 || len(pages) == 0 {
		return ids
	}

	groups := make([]docstruct.FileGroup, 0, len(doc.FileGroups))
	for _, fg := range doc.FileGroups {
		if fg.Main {
			groups = append(groups, fg)
		}
	}
	for _, fg := range doc.FileGroups {
		if !fg.Main {
			groups = append(groups, fg)
		}
	}

	sec := r.root.CreateElement("mets:fileSec")
	for _, fg := range groups {
		grp := sec.CreateElement("mets:fileGrp")
		grp.CreateAttr("USE", fg.Name)
		for i, page := range pages {
			href, mimetype, ok := fileLocation(fg, page.ImageName)
			if !ok {
				continue
			}
			id := fmt.Sprintf("FILE_%04d_%s", i+1, fg.Name)
			file := grp.CreateElement("mets:file")
			file.CreateAttr("ID", id)
			file.CreateAttr("MIMETYPE", mimetype)
			loc := file.CreateElement("mets:FLocat")
			loc.CreateAttr("LOCTYPE", "URL")
			loc.CreateAttr("xlink:href", href)
			ids[page] = append(ids[page], id)
		}
	}
	return ids
}

// fileLocation returns the URL and mimetype of a page image inside a file group.
// Groups using original files keep the file name and derive the mimetype from it.
func fileLocation(fg docstruct.FileGroup, imageName string) (href, mimetype string, ok bool) {
	base := path.Base(imageName)
	ext := path.Ext(base)
	if !fg.UseOriginalFiles {
		suffix := strings.TrimSpace(fg.Suffix)
		return fg.PathToFiles + strings.TrimSuffix(base, ext) + "." + suffix, fg.Mimetype, true
	}

	mimetype = mime.TypeByExtension(strings.ToLower(ext))
	if i := strings.IndexByte(mimetype, ';'); i >= 0 {
		mimetype = mimetype[:i]
	}
	if mimetype == "" {
		mimetype = "application/octet-stream"
	}
	if ignored(fg.FilesToIgnore, ext, mimetype) {
		return "", "", false
	}
	return fg.PathToFiles + base, mimetype, true
}

// ignored reports whether a file matches the comma separated ignore list, which
// may contain mimetypes or extensions with or without the leading dot.
func ignored(list, ext, mimetype string) bool {
	ext = strings.TrimPrefix(strings.ToLower(ext), ".")
	for _, item := range strings.Split(list, ",") {
		item = strings.ToLower(strings.TrimSpace(item))
		if item == "" {
			continue
		}
		if item == mimetype || strings.TrimPrefix(item, ".") == ext {
			return true
		}
	}
	return false
}

func (r *render) physical(phys *docstruct.Node, fileIDs map[*docstruct.Node][]string) {
	sm := r.root.CreateElement("mets:structMap")
	sm.CreateAttr("TYPE", StructMapPhysical)
	seq := sm.CreateElement("mets:div")
	seq.CreateAttr("ID", "PHYS_0000")
	seq.CreateAttr("TYPE", "physSequence")

	for i, page := range phys.Children() {
		id := fmt.Sprintf("PHYS_%04d", i+1)
		r.phyIDs[page] = id
		div := seq.CreateElement("mets:div")
		div.CreateAttr("ID", id)
		order := firstValue(page, "physPageNumber")
		if order == "" {
			order = fmt.Sprint(i + 1)
		}
		div.CreateAttr("ORDER", order)
		if label := firstValue(page, "logicalPageNumber"); label != "" {
			div.CreateAttr("ORDERLABEL", label)
		} else if page.OrderLabel != "" {
			div.CreateAttr("ORDERLABEL", page.OrderLabel)
		}
		div.CreateAttr("TYPE", page.TypeName())
		for _, fid := range fileIDs[page] {
			div.CreateElement("mets:fptr").CreateAttr("FILEID", fid)
		}
	}
}

func (r *render) structLink(logical *docstruct.Node) {
	var links []*etree.Element
	var walk func(n *docstruct.Node)
	walk = func(n *docstruct.Node) {
		from := r.logIDs[n]
		for _, ref := range n.References() {
			to, ok := r.phyIDs[ref]
			if !ok || from == "" {
				continue
			}
			link := etree.NewElement("mets:smLink")
			link.CreateAttr("xlink:from", from)
			link.CreateAttr("xlink:to", to)
			links = append(links, link)
		}
		for _, c := range n.Children() {
			walk(c)
		}
	}
	walk(logical)
	if len(links) == 0 {
		return
	}
	sl := r.root.CreateElement("mets:structLink")
	for _, l := range links {
		sl.AddChild(l)
	}
}

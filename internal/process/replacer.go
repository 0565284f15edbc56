package process

import (
	"regexp"
	"strings"

	"git.home.luguber.info/inful/newspaperexport/internal/docstruct"
)

var metaVariable = regexp.MustCompile(`\$\(meta\.(?:(topstruct|firstchild)\.)?([^)]+)\)`)

// Replacer substitutes process and metadata variables in configuration values:
// $(processid), $(processtitle), $(projectname), $(stepname), $(meta.X),
// $(meta.topstruct.X) and $(meta.firstchild.X).
//
// $(meta.X) prefers the first child of the logical root and falls back to the
// root itself. Unknown metadata resolves to the empty string.
type Replacer struct {
	top    *docstruct.Node
	first  *docstruct.Node
	simple *strings.Replacer
}

// NewReplacer returns a Replacer for a process and its metadata. doc may be nil.
func NewReplacer(rec *Record, doc *docstruct.Document) *Replacer {
	r := &Replacer{
		simple: strings.NewReplacer(
			"$(processid)", rec.ID,
			"$(processtitle)", rec.Title,
			"$(projectname)", rec.Project,
			"$(stepname)", rec.Step,
		),
	}
	if doc != nil && doc.Logical() != nil {
		r.top = doc.Logical()
		if children := r.top.Children(); len(children) > 0 {
			r.first = children[0]
		}
	}
	return r
}

// Replace returns s with every known variable substituted.
func (r *Replacer) Replace(s string) string {
	if !strings.Contains(s, "$(") {
		return s
	}
	s = r.simple.Replace(s)
	return metaVariable.ReplaceAllStringFunc(s, func(match string) string {
		m := metaVariable.FindStringSubmatch(match)
		level, typeName := m[1], m[2]
		switch level {
		case "topstruct":
			return value(r.top, typeName)
		case "firstchild":
			return value(r.first, typeName)
		}
		if v := value(r.first, typeName); v != "" {
			return v
		}
		return value(r.top, typeName)
	})
}

func value(n *docstruct.Node, typeName string) string {
	if n == nil {
		return ""
	}
	if mds := n.MetadataByType(typeName); len(mds) > 0 {
		return mds[0].Value
	}
	return ""
}

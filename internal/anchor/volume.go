package anchor

import (
	"strings"

	"golang.org/x/text/cases"
)

// Volume is one volume div of an anchor's LOGICAL structMap.
type Volume struct {
	Label      string
	Type       string
	URL        string
	ContentIDs string
	Order      string
}

// NormalizeURL removes the .xml file extension used to tell volume URLs apart.
func NormalizeURL(url string) string {
	return strings.ReplaceAll(url, ".xml", "")
}

// Key is the identity of the volume within an anchor.
func (v Volume) Key() string {
	return NormalizeURL(v.URL)
}

var fold = cases.Fold()

func compareFold(a, b string) int {
	return strings.Compare(fold.String(a), fold.String(b))
}

// Compare orders volumes by Order when both have one and by URL otherwise, both
// case-insensitively. Equal orders fall back to the URL.
func Compare(a, b Volume) int {
	if a.Order != "" && b.Order != "" {
		if c := compareFold(a.Order, b.Order); c != 0 {
			return c
		}
	}
	return compareFold(a.URL, b.URL)
}

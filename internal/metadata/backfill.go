package metadata

import (
	"fmt"
	"log/slog"
	"regexp"

	"git.home.luguber.info/inful/newspaperexport/internal/config"
	"git.home.luguber.info/inful/newspaperexport/internal/docstruct"
	"git.home.luguber.info/inful/newspaperexport/internal/foundation/errors"
	"git.home.luguber.info/inful/newspaperexport/internal/logfields"
)

// DatePattern is the required format of issue dates.
var DatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// Inherited are values copied down from ancestors when a descendant lacks them.
type Inherited struct {
	Language string
	Location string
	Licence  string
}

// Override returns i with the non-blank values of v replacing the inherited ones.
func (i Inherited) Override(v Values, roles config.MetadataRoles) Inherited {
	out := i
	if v.Has(roles.Language) {
		out.Language = v.Get(roles.Language)
	}
	if v.Has(roles.Location) {
		out.Location = v.Get(roles.Location)
	}
	if v.Has(roles.Licence) {
		out.Licence = v.Get(roles.Licence)
	}
	return out
}

// Newspaper holds the values read from the logical root.
type Newspaper struct {
	Identifier string
	ZDBAnalog  string
	ZDBDigital string
	Label      string
	Inherited  Inherited
}

// Volume holds the values read from the year volume.
type Volume struct {
	Identifier string
	Label      string
	Year       string
	Inherited  Inherited
}

// Issue holds the values of a backfilled issue.
type Issue struct {
	Identifier string
	Label      string
	Date       string
	SortNumber string
}

// Backfiller adds missing metadata to the nodes of a source document.
type Backfiller struct {
	roles       config.MetadataRoles
	resolverURL string
}

// NewBackfiller returns a Backfiller for the given role mapping. resolverURL is
// the prefix of synthesized PURLs.
func NewBackfiller(roles config.MetadataRoles, resolverURL string) *Backfiller {
	return &Backfiller{roles: roles, resolverURL: resolverURL}
}

// add appends a metadata entry. A type the node does not permit is logged and
// skipped.
func (b *Backfiller) add(n *docstruct.Node, typeName, value string) {
	if err := n.AddMetadata(docstruct.Metadata{Type: typeName, Value: value}); err != nil {
		slog.Info("Cannot add backfilled metadata",
			logfields.DocType(n.TypeName()),
			slog.String("metadata", typeName),
			logfields.Error(err))
	}
}

func (b *Backfiller) title(n *docstruct.Node, v Values) {
	if !v.Has(b.roles.ModsTitle) && v.Has(b.roles.TitleLabel) {
		b.add(n, b.roles.ModsTitle, v.Get(b.roles.TitleLabel))
	}
}

func (b *Backfiller) sortNumber(n *docstruct.Node, v Values) string {
	sortNo := v.Get(b.roles.SortNumber)
	if IsBlank(sortNo) && IsNumeric(v.Get(b.roles.IssueNumber)) {
		sortNo = v.Get(b.roles.IssueNumber)
		b.add(n, b.roles.SortNumber, sortNo)
	}
	return sortNo
}

func (b *Backfiller) inherit(n *docstruct.Node, v Values, in Inherited) {
	if !v.Has(b.roles.Language) && !IsBlank(in.Language) {
		b.add(n, b.roles.Language, in.Language)
	}
	if !v.Has(b.roles.Location) && !IsBlank(in.Location) {
		b.add(n, b.roles.Location, in.Location)
	}
	if !v.Has(b.roles.Licence) && !IsBlank(in.Licence) {
		b.add(n, b.roles.Licence, in.Licence)
	}
}

// Newspaper backfills the main title of the logical root and checks the
// identifiers every export needs.
func (b *Backfiller) Newspaper(n *docstruct.Node) (Newspaper, error) {
	v := Extract(n)
	b.title(n, v)

	np := Newspaper{
		Identifier: v.Get(b.roles.Identifier),
		ZDBAnalog:  v.Get(b.roles.ZDBIDAnalog),
		ZDBDigital: v.Get(b.roles.ZDBIDDigital),
		Label:      v.Get(b.roles.TitleLabel),
		Inherited:  Inherited{}.Override(v, b.roles),
	}
	if IsBlank(np.ZDBAnalog) || IsBlank(np.ZDBDigital) || IsBlank(np.Identifier) {
		return np, errors.ValidationError("Export aborted, ZDB id or record id are missing").
			WithContext("identifier", np.Identifier).
			Build()
	}
	return np, nil
}

// Volume backfills the year volume: main title, sort number and values inherited
// from the newspaper.
func (b *Backfiller) Volume(n *docstruct.Node, np Newspaper) Volume {
	v := Extract(n)
	b.title(n, v)
	b.sortNumber(n, v)
	b.inherit(n, v, np.Inherited)

	return Volume{
		Identifier: v.Get(b.roles.Identifier),
		Label:      v.Get(b.roles.TitleLabel),
		Year:       v.Get(b.roles.YearDate),
		Inherited:  np.Inherited.Override(v, b.roles),
	}
}

// Issue backfills one issue and validates its publication date.
func (b *Backfiller) Issue(n *docstruct.Node, np Newspaper, vol Volume) (Issue, error) {
	v := Extract(n)
	b.title(n, v)
	sortNo := b.sortNumber(n, v)
	b.inherit(n, v, vol.Inherited)

	if !v.Has(b.roles.ZDBIDAnalog) && !IsBlank(np.ZDBAnalog) {
		b.add(n, b.roles.ZDBIDAnalog, np.ZDBAnalog)
	}
	if !v.Has(b.roles.AnchorZDBIDDigital) && !IsBlank(np.ZDBDigital) {
		b.add(n, b.roles.AnchorZDBIDDigital, np.ZDBDigital)
	}

	date := v.Get(b.roles.IssueDate)
	id := v.Get(b.roles.Identifier)
	if IsBlank(id) {
		id = fmt.Sprintf("%s_%s_%s", np.Identifier, date, sortNo)
		b.add(n, b.roles.Identifier, id)
	}
	if !v.Has(b.roles.ResourceType) {
		b.add(n, b.roles.ResourceType, "text")
	}
	if !v.Has(b.roles.PURL) {
		b.add(n, b.roles.PURL, b.resolverURL+id)
	}
	if !v.Has(b.roles.AnchorID) {
		b.add(n, b.roles.AnchorID, np.Identifier)
	}
	if !v.Has(b.roles.AnchorTitle) {
		b.add(n, b.roles.AnchorTitle, np.Label)
	}

	issue := Issue{Identifier: id, Label: v.Get(b.roles.TitleLabel), Date: date, SortNumber: sortNo}
	if err := ValidateDate(date); err != nil {
		return issue, err
	}
	return issue, nil
}

// ValidateDate checks an issue date against DatePattern.
func ValidateDate(date string) error {
	if IsBlank(date) {
		return errors.ValidationError("Abort export, issue has no publication date").Build()
	}
	if !DatePattern.MatchString(date) {
		return errors.ValidationError(fmt.Sprintf("Issue date %s has the wrong format. Expected is YYYY-MM-DD", date)).
			WithContext("date", date).
			Build()
	}
	return nil
}

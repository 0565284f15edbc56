package export

import (
	"context"
	"log/slog"
	"path/filepath"

	"git.home.luguber.info/inful/newspaperexport/internal/docstruct"
	"git.home.luguber.info/inful/newspaperexport/internal/foundation/errors"
	"git.home.luguber.info/inful/newspaperexport/internal/logfields"
	"git.home.luguber.info/inful/newspaperexport/internal/metadata"
	"git.home.luguber.info/inful/newspaperexport/internal/observability"
	"git.home.luguber.info/inful/newspaperexport/internal/tree"
)

// buildSkeleton creates the newspaper and year nodes of the anchor document.
func (r *run) buildSkeleton() error {
	types := r.e.cfg.DocStruct
	doc := docstruct.NewDocument(r.rs)

	np, err := docstruct.CloneAs(types.Newspaper, r.source.Logical(), doc)
	if err != nil {
		return structureError(err, "Cannot create newspaper", types.Newspaper)
	}
	if err := doc.SetLogical(np); err != nil {
		return structureError(err, "Cannot create newspaper", types.Newspaper)
	}
	year, err := docstruct.CloneAs(types.Year, r.volumeNode, doc)
	if err != nil {
		return structureError(err, "Cannot create year", types.Year)
	}
	year.OrderLabel = r.volume.Year
	if err := np.AddChild(year); err != nil {
		return structureError(err, "Cannot add year to newspaper", types.Year)
	}

	r.anchorDoc = doc
	r.year = year
	return nil
}

// exportIssues backfills every issue of the volume, writes its document to the
// staging directory and adds it to the year. An issue whose structure cannot be
// assembled is skipped; a validation failure aborts the export.
func (r *run) exportIssues(ctx context.Context) error {
	if err := r.buildSkeleton(); err != nil {
		return err
	}
	builder := tree.NewBuilder(r.e.cfg.DocStruct, r.e.cfg.Metadata.TitleLabel)

	for _, n := range r.volumeNode.Children() {
		issue, err := r.backfiller.Issue(n, r.newspaper, r.volume)
		if err != nil {
			return err
		}
		issueCtx := observability.WithStage(ctx, "issue")

		if err := r.exportIssue(issueCtx, n, issue); err != nil {
			if ce, ok := errors.AsClassified(err); ok && !ce.AbortsExport() {
				observability.WarnContext(issueCtx, "Skipping issue",
					logfields.Issue(issue.Identifier), logfields.Error(err))
				continue
			}
			return err
		}

		entry := tree.Entry{Date: issue.Date, Label: issue.Label, Link: r.metsURL.Link(issue.Identifier)}
		if _, err := builder.Add(r.year, entry); err != nil {
			return err
		}
		r.result.Issues++
	}
	observability.InfoContext(ctx, "Exported issues", logfields.Count(r.result.Issues))
	return nil
}

// exportIssue assembles the standalone document of one issue: stubs for the
// newspaper, year, month and day above a copy of the issue, and copies of the
// pages it references.
func (r *run) exportIssue(ctx context.Context, src *docstruct.Node, issue metadata.Issue) error {
	types := r.e.cfg.DocStruct
	doc := docstruct.NewDocument(r.rs)
	link := r.metsURL.Link

	stub, err := r.stubNode(doc, types.NewspaperStub, r.newspaper.Label)
	if err != nil {
		return err
	}
	stub.Link = link(r.newspaper.Identifier)
	if err := doc.SetLogical(stub); err != nil {
		return structureError(err, "Cannot create newspaper stub", types.NewspaperStub)
	}

	year, err := r.stubNode(doc, types.Year, r.volume.Label)
	if err != nil {
		return err
	}
	year.OrderLabel = issue.Date[:4]
	year.Link = link(r.volume.Identifier)

	month, err := r.stubNode(doc, types.Month, "")
	if err != nil {
		return err
	}
	month.OrderLabel = tree.MonthKey(issue.Date)

	day, err := r.stubNode(doc, types.Day, "")
	if err != nil {
		return err
	}
	day.OrderLabel = tree.DayKey(issue.Date)

	node, err := docstruct.CloneAs(types.Issue, src, doc)
	if err != nil {
		return structureError(err, "Cannot copy issue", types.Issue)
	}

	chain := []*docstruct.Node{stub, year, month, day, node}
	for i := 1; i < len(chain); i++ {
		if err := chain[i-1].AddChild(chain[i]); err != nil {
			return structureError(err, "Cannot add "+chain[i].TypeName()+" to "+chain[i-1].TypeName(), chain[i].TypeName())
		}
	}

	if err := r.copyPages(doc, src, node); err != nil {
		return err
	}

	folderID := r.volume.Identifier
	if r.settings.Export.SubfolderPerIssue {
		folderID = issue.Identifier
	}
	r.attachFileGroups(doc, folderID)
	if r.usesOriginalFiles() {
		r.matchOriginalFiles(ctx, doc)
	}

	if err := r.stageDocument(doc, issue.Identifier+".xml", false); err != nil {
		return err
	}
	observability.DebugContext(ctx, "Staged issue", logfields.Issue(issue.Identifier), logfields.Date(issue.Date))

	r.issues = append(r.issues, issueDocument{doc: doc, folderID: folderID})
	return nil
}

// stubNode creates a node carrying at most one label entry.
func (r *run) stubNode(doc *docstruct.Document, typeName, label string) (*docstruct.Node, error) {
	n, err := doc.CreateNode(typeName)
	if err != nil {
		return nil, structureError(err, "Cannot create "+typeName, typeName)
	}
	if label != "" {
		if err := n.AddMetadata(docstruct.Metadata{Type: r.e.cfg.Metadata.TitleLabel, Value: label}); err != nil {
			slog.Info("Skipping stub label", logfields.DocType(typeName), logfields.Error(err))
		}
	}
	return n, nil
}

// copyPages adds the pages referenced by src below a new page container and links
// them from node.
func (r *run) copyPages(doc *docstruct.Document, src, node *docstruct.Node) error {
	srcPhys := r.source.Physical()
	if srcPhys == nil {
		return nil
	}
	container, err := doc.CreateNode(srcPhys.TypeName())
	if err != nil {
		return structureError(err, "Cannot create page container", srcPhys.TypeName())
	}
	if err := doc.SetPhysical(container); err != nil {
		return structureError(err, "Cannot create page container", srcPhys.TypeName())
	}

	for _, ref := range src.References() {
		page, err := docstruct.Clone(ref, doc)
		if err != nil {
			return structureError(err, "Cannot copy page", ref.TypeName())
		}
		page.ImageName = filepath.Base(ref.ImageName)
		page.OrderLabel = ref.OrderLabel
		if err := container.AddChild(page); err != nil {
			return structureError(err, "Cannot add page", ref.TypeName())
		}
		if err := node.AddReference(page); err != nil {
			return structureError(err, "Cannot link page", ref.TypeName())
		}
	}
	return nil
}

func structureError(err error, msg, typeName string) error {
	return errors.WrapError(err, errors.CategoryStructure, msg).
		WithContext("type", typeName).
		Ends(errors.UnitIssue).
		Build()
}

package export

import (
	"context"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/newspaperexport/internal/docstruct"
	"git.home.luguber.info/inful/newspaperexport/internal/logfields"
	"git.home.luguber.info/inful/newspaperexport/internal/observability"
	"git.home.luguber.info/inful/newspaperexport/internal/process"
)

// issueDocument is an exported issue kept for the copy-out.
type issueDocument struct {
	doc      *docstruct.Document
	folderID string
}

// copyOut copies the page images and ALTO files of the exported issues next to
// the export when enabled. Missing files are logged and do not fail the export.
func (r *run) copyOut(ctx context.Context) error {
	exp := r.settings.Export
	images := exp.Images || r.e.images
	fulltext := exp.Fulltext || r.e.fulltext
	for _, is := range r.issues {
		if images {
			r.copyFiles(ctx, is.doc, process.FolderMedia, exp.ExportImageFolder, is.folderID, filepath.Base)
		}
		if fulltext {
			r.copyFiles(ctx, is.doc, process.FolderALTO, exp.ExportAltoFolder, is.folderID, altoName)
		}
	}
	return nil
}

func altoName(imageName string) string {
	return stem(imageName) + ".xml"
}

// copyFiles copies one file per page from a process folder into target. The
// target gets a folderID subdirectory unless it names the placeholder itself.
func (r *run) copyFiles(ctx context.Context, doc *docstruct.Document, folder, target, folderID string, fileName func(string) string) {
	if target == "" {
		observability.WarnContext(ctx, "No copy target configured", logfields.Stage("copy_"+folder))
		return
	}
	dir, ok := r.rec.Folder(folder)
	if !ok || !r.e.fs.IsDir(dir) {
		observability.WarnContext(ctx, "Process folder missing, nothing copied", logfields.Path(dir), logfields.Stage("copy_"+folder))
		return
	}

	if strings.Contains(target, catalogIDPlaceholder) {
		target = r.expandPath(target, folderID)
	} else {
		target = filepath.Join(r.replacer.Replace(target), folderID)
	}

	copied := 0
	for _, page := range doc.Pages() {
		name := fileName(page.ImageName)
		src := filepath.Join(dir, name)
		if err := r.e.fs.Copy(src, filepath.Join(target, name)); err != nil {
			observability.WarnContext(ctx, "Failed to copy file", logfields.Path(src), logfields.Error(err))
			continue
		}
		copied++
	}
	observability.DebugContext(ctx, "Copied files", logfields.Path(target), logfields.Count(copied))
}

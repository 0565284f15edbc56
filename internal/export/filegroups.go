package export

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/newspaperexport/internal/config"
	"git.home.luguber.info/inful/newspaperexport/internal/docstruct"
	"git.home.luguber.info/inful/newspaperexport/internal/logfields"
	"git.home.luguber.info/inful/newspaperexport/internal/observability"
	"git.home.luguber.info/inful/newspaperexport/internal/process"
)

const (
	// catalogIDPlaceholder in file group paths and copy targets is replaced by
	// the issue or year identifier.
	catalogIDPlaceholder = "$(meta.CatalogIDDigital)"
	mainFileGroup        = "PRESENTATION"
)

// availableFileGroups returns the configured file groups whose process folder
// holds files. Groups without a folder are always available.
func (r *run) availableFileGroups(ctx context.Context) []config.FileGroup {
	groups := r.settings.FileGroups
	if len(groups) == 0 {
		groups = r.rec.Defaults.FileGroups
	}

	out := make([]config.FileGroup, 0, len(groups))
	for _, fg := range groups {
		if fg.Folder == "" {
			out = append(out, fg)
			continue
		}
		dir, ok := r.rec.Folder(fg.Folder)
		if !ok || !r.e.fs.IsDir(dir) {
			observability.DebugContext(ctx, "Skipping file group without folder",
				slog.String("filegroup", fg.Name), slog.String("folder", fg.Folder))
			continue
		}
		files, err := r.e.fs.List(dir)
		if err != nil || len(files) == 0 {
			observability.DebugContext(ctx, "Skipping file group with empty folder",
				slog.String("filegroup", fg.Name), logfields.Path(dir))
			continue
		}
		out = append(out, fg)
	}
	return out
}

// expandPath replaces the catalog id placeholder with folderID and substitutes
// the remaining variables.
func (r *run) expandPath(p, folderID string) string {
	return r.replacer.Replace(strings.ReplaceAll(p, catalogIDPlaceholder, folderID))
}

func (r *run) attachFileGroups(doc *docstruct.Document, folderID string) {
	for _, fg := range r.fileGroups {
		doc.AddFileGroup(docstruct.FileGroup{
			Name:             fg.Name,
			PathToFiles:      r.expandPath(fg.Path, folderID),
			Mimetype:         fg.Mimetype,
			Suffix:           fg.Suffix,
			FilesToIgnore:    fg.FilesToIgnore,
			UseOriginalFiles: fg.MimetypeFromFilename,
			Main:             fg.Name == mainFileGroup,
		})
	}
}

func (r *run) usesOriginalFiles() bool {
	for _, fg := range r.fileGroups {
		if fg.MimetypeFromFilename {
			return true
		}
	}
	return false
}

// matchOriginalFiles replaces page image names by the name of the media file
// with the same stem, compared case-insensitively. The first match wins; pages
// without a match keep their name.
func (r *run) matchOriginalFiles(ctx context.Context, doc *docstruct.Document) {
	dir, ok := r.rec.Folder(process.FolderMedia)
	if !ok {
		return
	}
	files, err := r.e.fs.List(dir)
	if err != nil {
		observability.WarnContext(ctx, "Cannot list media folder", logfields.Path(dir), logfields.Error(err))
		return
	}
	for _, page := range doc.Pages() {
		want := stem(page.ImageName)
		for _, f := range files {
			if strings.EqualFold(want, stem(f)) {
				page.ImageName = f
				break
			}
		}
	}
}

func stem(name string) string {
	base := filepath.Base(name)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

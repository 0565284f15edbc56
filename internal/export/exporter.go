package export

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/jonboulle/clockwork"

	"git.home.luguber.info/inful/newspaperexport/internal/anchor"
	"git.home.luguber.info/inful/newspaperexport/internal/config"
	"git.home.luguber.info/inful/newspaperexport/internal/docstruct"
	"git.home.luguber.info/inful/newspaperexport/internal/foundation/errors"
	"git.home.luguber.info/inful/newspaperexport/internal/journal"
	"git.home.luguber.info/inful/newspaperexport/internal/logfields"
	"git.home.luguber.info/inful/newspaperexport/internal/metadata"
	"git.home.luguber.info/inful/newspaperexport/internal/metrics"
	"git.home.luguber.info/inful/newspaperexport/internal/mets"
	"git.home.luguber.info/inful/newspaperexport/internal/observability"
	"git.home.luguber.info/inful/newspaperexport/internal/process"
	"git.home.luguber.info/inful/newspaperexport/internal/storage"
	"git.home.luguber.info/inful/newspaperexport/internal/workspace"
)

// DefaultCreator is the agent name written into METS headers.
const DefaultCreator = "newspaperexport"

// Exporter exports newspaper processes.
type Exporter struct {
	cfg       *config.Config
	fs        storage.Provider
	processes *process.Store
	recorder  metrics.Recorder
	journal   journal.Store
	clock     clockwork.Clock
	locker    anchor.Locker
	creator   string
	images    bool
	fulltext  bool
}

// NewExporter returns an Exporter that reads and writes through fs.
func NewExporter(cfg *config.Config, fs storage.Provider) *Exporter {
	return &Exporter{
		cfg:       cfg,
		fs:        fs,
		processes: process.NewStore(fs),
		recorder:  metrics.NoopRecorder{},
		journal:   journal.NopStore{},
		clock:     clockwork.NewRealClock(),
		creator:   DefaultCreator,
	}
}

// WithRecorder sets the metrics recorder.
func (e *Exporter) WithRecorder(r metrics.Recorder) *Exporter {
	e.recorder = r
	return e
}

// WithJournal sets the store finished runs are recorded in.
func (e *Exporter) WithJournal(j journal.Store) *Exporter {
	e.journal = j
	return e
}

// WithClock allows injecting a fake clock (for testing).
func (e *Exporter) WithClock(c clockwork.Clock) *Exporter {
	e.clock = c
	return e
}

// WithLocker sets the anchor lock. By default a file lock in the configured lock
// directory or in .locks beside the export folder is used.
func (e *Exporter) WithLocker(l anchor.Locker) *Exporter {
	e.locker = l
	return e
}

// WithCreator sets the agent name written into METS headers.
func (e *Exporter) WithCreator(name string) *Exporter {
	e.creator = name
	return e
}

// WithImages forces the image copy regardless of the project settings.
func (e *Exporter) WithImages(enabled bool) *Exporter {
	e.images = enabled
	return e
}

// WithFulltext forces the ALTO copy regardless of the project settings.
func (e *Exporter) WithFulltext(enabled bool) *Exporter {
	e.fulltext = enabled
	return e
}

// Export runs the export of one process. The returned Result is never nil; when
// the export fails the error is returned as well and Result.Problems says why.
func (e *Exporter) Export(ctx context.Context, rec *process.Record) (*Result, error) {
	ws := workspace.NewManager(e.fs, e.cfg.Staging.Dir, "")
	res := &Result{RunID: ws.RunID(), ProcessID: rec.ID, Started: e.clock.Now()}

	ctx = observability.WithRunID(ctx, res.RunID)
	ctx = observability.WithProcessID(ctx, rec.ID)
	observability.InfoContext(ctx, "Starting export", slog.String("title", rec.Title))

	r := &run{e: e, rec: rec, ws: ws, result: res}
	err := r.export(ctx)
	if err != nil {
		res.addProblem(err)
	}
	e.finish(ctx, res)
	return res, err
}

func (e *Exporter) finish(ctx context.Context, res *Result) {
	res.Finished = e.clock.Now()
	duration := res.Finished.Sub(res.Started)

	status := journal.StatusSuccess
	outcome := metrics.ResultSuccess
	if !res.OK() {
		status = journal.StatusFailed
		outcome = metrics.ResultFailed
	}
	e.recorder.ObserveExportDuration(duration)
	e.recorder.IncExportOutcome(outcome)
	e.recorder.AddIssuesExported(res.Issues)
	if res.Anchor != "" {
		e.recorder.IncAnchorMerge(res.Anchor)
	}

	if err := e.journal.Record(ctx, journal.Run{
		RunID:      res.RunID,
		ProcessID:  res.ProcessID,
		Identifier: res.Identifier,
		YearID:     res.YearID,
		Started:    res.Started,
		Finished:   res.Finished,
		Status:     status,
		Issues:     res.Issues,
		Anchor:     string(res.Anchor),
		Problems:   res.Problems,
	}); err != nil {
		observability.WarnContext(ctx, "Failed to record export in journal", logfields.Error(err))
	}

	attrs := []slog.Attr{
		logfields.Count(res.Issues),
		logfields.DurationMS(float64(duration.Milliseconds())),
	}
	if res.OK() {
		observability.InfoContext(ctx, "Export finished", attrs...)
		return
	}
	for _, p := range res.Problems {
		attrs = append(attrs, slog.String("problem", p))
	}
	observability.ErrorContext(ctx, "Export failed", attrs...)
}

// run is the state of one export.
type run struct {
	e      *Exporter
	rec    *process.Record
	ws     *workspace.Manager
	result *Result

	settings     *config.ProjectSettings
	rs           *docstruct.Ruleset
	source       *docstruct.Document
	replacer     *process.Replacer
	params       mets.Parameters
	fileGroups   []config.FileGroup
	metsURL      config.MetsURL
	exportFolder string

	backfiller *metadata.Backfiller
	backfilled bool
	volumeNode *docstruct.Node
	newspaper  metadata.Newspaper
	volume     metadata.Volume

	anchorDoc *docstruct.Document
	year      *docstruct.Node
	issues    []issueDocument
	merger    *anchor.Merger
}

// stage runs fn as a named, timed export stage.
func (r *run) stage(ctx context.Context, name string, fn func(context.Context) error) error {
	start := r.e.clock.Now()
	ctx = observability.WithStage(ctx, name)
	err := fn(ctx)
	r.e.recorder.ObserveStageDuration(name, r.e.clock.Since(start))
	if err != nil {
		r.e.recorder.IncStageResult(name, metrics.ResultFailed)
		return err
	}
	r.e.recorder.IncStageResult(name, metrics.ResultSuccess)
	observability.DebugContext(ctx, "Stage complete")
	return nil
}

func (r *run) export(ctx context.Context) error {
	if err := r.stage(ctx, "load", r.load); err != nil {
		return err
	}

	saved := false
	defer func() {
		// Backfilled metadata is kept even when the export fails.
		if r.backfilled && !saved {
			if err := r.saveMetadata(ctx); err != nil {
				observability.WarnContext(ctx, "Failed to save metadata", logfields.Error(err))
			}
		}
	}()

	if err := r.stage(ctx, "backfill", r.backfill); err != nil {
		return err
	}
	ctx = observability.WithIdentifier(ctx, r.newspaper.Identifier)

	if err := r.ws.Create(); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to create staging directory").Build()
	}
	defer func() {
		if err := r.ws.Cleanup(); err != nil {
			observability.WarnContext(ctx, "Failed to cleanup staging directory", logfields.Error(err))
		}
	}()

	if err := r.stage(ctx, "issues", r.exportIssues); err != nil {
		return err
	}
	if err := r.stage(ctx, "metadata", r.saveMetadata); err != nil {
		return err
	}
	saved = true
	if err := r.stage(ctx, "year", r.writeYear); err != nil {
		return err
	}

	// The anchor lock covers the existence check, the merge and the move of
	// the anchor into the export folder.
	unlock, err := r.lockAnchor(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err := unlock(); err != nil {
			observability.WarnContext(ctx, "Failed to release anchor lock", logfields.Error(err))
		}
	}()

	if err := r.stage(ctx, "anchor", r.mergeAnchor); err != nil {
		return err
	}
	if err := r.stage(ctx, "relocate", r.relocate); err != nil {
		return err
	}
	return r.stage(ctx, "copy", r.copyOut)
}

// load resolves the settings of the process and reads its metadata.
func (r *run) load(ctx context.Context) error {
	cfg := r.e.cfg
	settings, err := cfg.Resolve(r.rec.Project, r.rec.Step)
	if err != nil {
		return err
	}
	r.settings = settings

	if r.rs, err = r.e.processes.Ruleset(r.rec); err != nil {
		return err
	}
	if r.source, err = r.e.processes.ReadMetadata(r.rec, r.rs); err != nil {
		return err
	}

	r.replacer = process.NewReplacer(r.rec, r.source)
	r.params = settings.METS.WithDefaults(r.rec.Defaults.METS).Map(r.replacer.Replace)
	r.params.ProcessID = r.rec.ID
	r.exportFolder = r.replacer.Replace(settings.Export.ExportFolder)
	r.metsURL = settings.MetsURL
	r.metsURL.URL = r.replacer.Replace(r.metsURL.URL)
	r.fileGroups = r.availableFileGroups(ctx)
	r.backfiller = metadata.NewBackfiller(cfg.Metadata, r.replacer.Replace(settings.ResolverURL))
	return nil
}

// backfill checks the newspaper and volume and adds their missing metadata.
func (r *run) backfill(ctx context.Context) error {
	logical := r.source.Logical()
	if logical == nil {
		return errors.ValidationError("Export aborted, metadata has no logical structure").Build()
	}
	if !logical.Type().IsAnchor() {
		return errors.ValidationError(logical.TypeName() + " has the wrong type. It is not an anchor.").Build()
	}

	r.backfilled = true
	np, err := r.backfiller.Newspaper(logical)
	if err != nil {
		return err
	}
	r.newspaper = np
	r.result.Identifier = np.Identifier

	children := logical.Children()
	if len(children) == 0 {
		return errors.ValidationError("Export aborted, newspaper has no volume").
			WithContext("identifier", np.Identifier).Build()
	}
	r.volumeNode = children[0]
	r.volume = r.backfiller.Volume(r.volumeNode, np)
	r.result.YearID = r.volume.Identifier

	if metadata.IsBlank(r.volume.Identifier) {
		return errors.ValidationError("Export aborted, year identifier is missing").
			WithContext("identifier", np.Identifier).Build()
	}
	if r.volume.Identifier == np.Identifier {
		return errors.ValidationError("Export aborted, year and newspaper share the identifier " + np.Identifier).Build()
	}
	observability.DebugContext(ctx, "Backfilled newspaper and volume", logfields.Year(r.volume.Identifier))
	return nil
}

func (r *run) saveMetadata(ctx context.Context) error {
	if err := r.e.processes.WriteMetadata(r.rec, r.source); err != nil {
		return err
	}
	observability.DebugContext(ctx, "Saved process metadata", logfields.Path(r.rec.MetadataFile))
	return nil
}

func (r *run) writer() *mets.Writer {
	md := r.e.cfg.Metadata
	w := mets.NewWriter(r.params, mets.Roles{Label: md.TitleLabel, Title: md.ModsTitle, Identifier: md.Identifier}, r.e.creator)
	w.Clock = r.e.clock
	return w
}

// stageDocument renders doc and writes it to the staging directory as name.
func (r *run) stageDocument(doc *docstruct.Document, name string, asAnchor bool) error {
	w := r.writer()
	render := w.Document
	if asAnchor {
		render = w.Anchor
	}
	out, err := render(doc)
	if err != nil {
		return errors.WrapError(err, errors.CategoryMets, "failed to render document").WithContext("file", name).Build()
	}
	data, err := mets.Bytes(out)
	if err != nil {
		return errors.WrapError(err, errors.CategoryMets, "failed to serialize document").WithContext("file", name).Build()
	}
	path, err := r.ws.File(name)
	if err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to stage document").Build()
	}
	if err := r.e.fs.WriteFile(path, data); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to write document").
			WithContext("path", path).Build()
	}
	return nil
}

// writeYear stages the year document and the anchor. The volume points to its
// own file only from the anchor.
func (r *run) writeYear(ctx context.Context) error {
	r.year.Order = r.year.OrderLabel
	r.year.ContentIDs = r.params.ContentIDs

	if err := r.stageDocument(r.anchorDoc, r.volume.Identifier+".xml", false); err != nil {
		return err
	}

	r.year.Link = r.params.PointerPath
	if r.year.Link == "" {
		r.year.Link = r.metsURL.Link(r.volume.Identifier)
	}
	if err := r.stageDocument(r.anchorDoc, r.newspaper.Identifier+".xml", true); err != nil {
		return err
	}
	observability.InfoContext(ctx, "Staged year and anchor", logfields.Year(r.volume.Identifier))
	return nil
}

func lockDir(configured, exportFolder string) string {
	if configured != "" {
		return configured
	}
	return anchor.DefaultLockDir(exportFolder)
}

func (r *run) lockAnchor(ctx context.Context) (func() error, error) {
	locker := r.e.locker
	if locker == nil {
		locker = anchor.NewFileLocker(lockDir(r.e.cfg.LockDir, r.exportFolder))
	}
	r.merger = anchor.NewMerger(r.e.fs, locker)

	unlock, err := r.merger.Lock(ctx, r.newspaper.Identifier)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to lock anchor").
			WithContext("identifier", r.newspaper.Identifier).Build()
	}
	return unlock, nil
}

// mergeAnchor merges the staged anchor into an existing one in the export folder.
// A failed merge leaves the existing anchor untouched and does not fail the export.
func (r *run) mergeAnchor(ctx context.Context) error {
	name := r.newspaper.Identifier + ".xml"
	existing := filepath.Join(r.exportFolder, name)
	found, err := r.e.fs.Exists(existing)
	if err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to check for existing anchor").
			WithContext("path", existing).Build()
	}
	if !found {
		r.result.Anchor = metrics.MergeCreated
		return nil
	}

	staged, err := r.ws.File(name)
	if err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to locate staged anchor").Build()
	}
	res, err := r.merger.MergeFiles(existing, staged)
	switch {
	case err != nil:
		r.result.Anchor = metrics.MergeFailed
		observability.ErrorContext(ctx, "Failed to merge anchor", logfields.Path(existing), logfields.Error(err))
	case res.Merged:
		r.result.Anchor = metrics.MergeMerged
	default:
		r.result.Anchor = metrics.MergeUnchanged
	}
	if err := r.e.fs.Remove(staged); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to remove staged anchor").
			WithContext("path", staged).Build()
	}
	return nil
}

// relocate moves every staged file into the export folder.
func (r *run) relocate(ctx context.Context) error {
	files, err := r.ws.Files()
	if err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to list staged files").Build()
	}
	for _, name := range files {
		src, err := r.ws.File(name)
		if err != nil {
			return errors.WrapError(err, errors.CategoryFileSystem, "failed to locate staged file").Build()
		}
		dst := filepath.Join(r.exportFolder, name)
		if err := r.e.fs.Move(src, dst); err != nil {
			return errors.WrapError(err, errors.CategoryFileSystem, "failed to move file to export folder").
				WithContext("path", dst).Build()
		}
		r.result.Files = append(r.result.Files, dst)
	}
	observability.InfoContext(ctx, "Moved files to export folder",
		logfields.Path(r.exportFolder), logfields.Count(len(files)))
	return nil
}

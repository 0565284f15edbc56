package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/newspaperexport/internal/export"
	"git.home.luguber.info/inful/newspaperexport/internal/logfields"
	"git.home.luguber.info/inful/newspaperexport/internal/metrics"
	"git.home.luguber.info/inful/newspaperexport/internal/process"
	"git.home.luguber.info/inful/newspaperexport/internal/storage"
	"git.home.luguber.info/inful/newspaperexport/internal/version"
)

// ExportCmd implements the 'export' command.
type ExportCmd struct {
	Process  string `arg:"" help:"Process record file" type:"existingfile"`
	Images   bool   `help:"Copy page images regardless of the project settings"`
	Fulltext bool   `help:"Copy ALTO files regardless of the project settings"`
}

func (e *ExportCmd) Run(_ *Global, root *CLI) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}
	fs := storage.NewOS()
	rec, err := process.NewStore(fs).Load(e.Process)
	if err != nil {
		return err
	}

	store, err := openJournal(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			slog.Warn("Failed to close journal", logfields.Error(err))
		}
	}()

	reg := prom.NewRegistry()
	exporter := export.NewExporter(cfg, fs).
		WithRecorder(metrics.NewPrometheusRecorder(reg)).
		WithJournal(store).
		WithCreator(version.Agent(export.DefaultCreator)).
		WithImages(e.Images).
		WithFulltext(e.Fulltext)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	res, exportErr := exporter.Export(ctx, rec)
	if cfg.Metrics.Textfile != "" {
		if err := metrics.WriteTextfile(cfg.Metrics.Textfile, reg); err != nil {
			slog.Warn("Failed to write metrics textfile", logfields.Path(cfg.Metrics.Textfile), logfields.Error(err))
		}
	}
	if exportErr != nil {
		return exportErr
	}

	fmt.Printf("Exported %d issues of %s (anchor %s)\n", res.Issues, res.YearID, res.Anchor)
	return nil
}

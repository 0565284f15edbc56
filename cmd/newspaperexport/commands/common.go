package commands

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/newspaperexport/internal/config"
	"git.home.luguber.info/inful/newspaperexport/internal/foundation/errors"
	"git.home.luguber.info/inful/newspaperexport/internal/journal"
)

// Global context passed to subcommands.
type Global struct {
	Logger *slog.Logger
}

// CLI definition & global flags.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path" default:"newspaperexport.yaml"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Export      ExportCmd      `cmd:"" help:"Export one newspaper process"`
	MergeAnchor MergeAnchorCmd `cmd:"" name:"merge-anchor" help:"Merge the volumes of one anchor file into another"`
	History     HistoryCmd     `cmd:"" help:"List recorded exports"`
	Init        InitCmd        `cmd:"" help:"Write an example configuration file"`
}

// AfterApply runs after flag parsing; setup logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	return nil
}

// loadConfig reads the configuration and switches logging to its settings.
// --verbose still wins over the configured level.
func loadConfig(root *CLI) (*config.Config, error) {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return nil, err
	}
	level := cfg.Log.Level.Slog()
	if root.Verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler = slog.NewTextHandler(os.Stderr, opts)
	if cfg.Log.Format == config.LogFormatJSON {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))
	return cfg, nil
}

// openJournal opens the configured export journal. Without a path exports are
// not recorded.
func openJournal(cfg *config.Config) (journal.Store, error) {
	if cfg.Journal.Path == "" {
		return journal.NopStore{}, nil
	}
	if err := os.MkdirAll(filepath.Dir(cfg.Journal.Path), 0o750); err != nil {
		return nil, errors.WrapError(err, errors.CategoryJournal, "failed to create journal directory").
			WithContext("path", cfg.Journal.Path).Build()
	}
	store, err := journal.NewSQLiteStore(cfg.Journal.Path)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryJournal, "failed to open journal").
			WithContext("path", cfg.Journal.Path).Build()
	}
	return store, nil
}

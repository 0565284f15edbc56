package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"git.home.luguber.info/inful/newspaperexport/internal/foundation/errors"
	"git.home.luguber.info/inful/newspaperexport/internal/journal"
)

// HistoryCmd implements the 'history' command.
type HistoryCmd struct {
	Identifier string `arg:"" optional:"" help:"Only show exports of this newspaper identifier"`
	Limit      int    `short:"n" help:"Maximum number of runs to show (-1 for all)" default:"20"`
}

func (h *HistoryCmd) Run(_ *Global, root *CLI) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}
	if cfg.Journal.Path == "" {
		return errors.ConfigError("journal.path is not configured").Build()
	}
	store, err := openJournal(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	runs, err := store.History(context.Background(), h.Identifier, h.Limit)
	if err != nil {
		return errors.WrapError(err, errors.CategoryJournal, "failed to read journal").Build()
	}
	return printHistory(os.Stdout, runs)
}

func printHistory(w io.Writer, runs []journal.Run) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "STARTED\tPROCESS\tIDENTIFIER\tYEAR\tSTATUS\tISSUES\tANCHOR\tDURATION\tPROBLEMS")
	for _, r := range runs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%d\t%s\t%s\t%s\n",
			r.Started.Local().Format(time.DateTime),
			r.ProcessID,
			r.Identifier,
			r.YearID,
			r.Status,
			r.Issues,
			r.Anchor,
			r.Duration().Round(time.Millisecond),
			strings.Join(r.Problems, "; "),
		)
	}
	return tw.Flush()
}

package main

import (
	"log/slog"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/newspaperexport/cmd/newspaperexport/commands"
	"git.home.luguber.info/inful/newspaperexport/internal/foundation/errors"
	"git.home.luguber.info/inful/newspaperexport/internal/version"
)

func main() {
	cli := &commands.CLI{}
	ctx := kong.Parse(cli,
		kong.Name("newspaperexport"),
		kong.Description("Export newspaper processes as METS/MODS anchor, year and issue documents."),
		kong.UsageOnError(),
		kong.Vars{"version": version.Version},
	)

	if err := ctx.Run(&commands.Global{Logger: slog.Default()}, cli); err != nil {
		errors.NewCLIErrorAdapter(cli.Verbose, slog.Default()).HandleError(err)
	}
}

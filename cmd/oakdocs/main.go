// Command oakdocs generates, checks and serves the Oak Chain documentation-site configuration.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/oakdocs/cmd/oakdocs/commands"
	foundation "git.home.luguber.info/inful/oakdocs/internal/foundation/errors"
	"git.home.luguber.info/inful/oakdocs/internal/version"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var cli commands.CLI
	global := &commands.Global{Stdout: os.Stdout}
	kctx := kong.Parse(&cli,
		kong.Name("oakdocs"),
		kong.Description("Generate, verify and inspect the Oak Chain documentation-site configuration."),
		kong.UsageOnError(),
		kong.Vars{"version": version.String()},
		kong.BindTo(ctx, (*context.Context)(nil)),
		kong.Bind(global, &cli),
	)

	if err := kctx.Run(); err != nil {
		stop()
		foundation.NewCLIErrorAdapter(cli.Verbose, slog.Default()).HandleError(err)
	}
}

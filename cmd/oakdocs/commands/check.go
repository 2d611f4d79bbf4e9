package commands

import (
	"context"
	"fmt"

	"git.home.luguber.info/inful/oakdocs/internal/generator"
)

// CheckCmd implements the 'check' command.
type CheckCmd struct {
	ContentDir string `name:"content-dir" short:"d" help:"Content directory (overrides content.dir)" type:"path"`
	Strict     bool   `help:"Treat dead links as errors even when the site tolerates them"`
}

func (c *CheckCmd) Run(ctx context.Context, global *Global, root *CLI) error {
	cfg, err := root.loadConfig()
	if err != nil {
		return err
	}
	if err := applyDirs(cfg, c.ContentDir, ""); err != nil {
		return err
	}
	if c.Strict {
		strict := false
		cfg.Site.IgnoreDeadLinks = &strict
	}

	res, err := generator.New(cfg).Check(ctx)
	if err != nil {
		return err
	}
	out := global.out()
	for _, b := range res.Links.Broken {
		fmt.Fprintf(out, "dead link (ignored): %s in %s\n", b.Link, b.Source)
	}
	fmt.Fprintf(out, "OK: %d links checked, %d skipped, %d routes\n", res.Links.Checked, res.Links.Skipped, res.Routes.Len())
	return nil
}

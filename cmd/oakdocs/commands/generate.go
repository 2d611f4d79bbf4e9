package commands

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/oakdocs/internal/config"
	"git.home.luguber.info/inful/oakdocs/internal/generator"
	"git.home.luguber.info/inful/oakdocs/internal/metrics"
)

// GenerateCmd implements the 'generate' command.
type GenerateCmd struct {
	ContentDir string `name:"content-dir" short:"d" help:"Content directory (overrides content.dir)" type:"path"`
	Output     string `short:"o" help:"Output directory (overrides output.dir)" type:"path"`
	NoClean    bool   `name:"no-clean" help:"Keep existing files in the output directory"`
}

func (g *GenerateCmd) Run(ctx context.Context, global *Global, root *CLI) error {
	cfg, err := root.loadConfig()
	if err != nil {
		return err
	}
	if err := applyDirs(cfg, g.ContentDir, g.Output); err != nil {
		return err
	}
	if g.NoClean {
		cfg.Output.Clean = false
	}

	rec, _ := newRecorder(cfg)
	res, err := generator.New(cfg, generator.WithRecorder(rec), generator.WithLogger(slog.Default())).Generate(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(global.out(), "Generated %s (%d routes, %d broken links tolerated) in %s\n",
		cfg.Output.Dir, res.Routes.Len(), len(res.Links.Broken), res.Elapsed.Round(time.Millisecond))
	return nil
}

// applyDirs overlays command-line directories and re-validates the result.
func applyDirs(cfg *config.Config, contentDir, output string) error {
	if contentDir != "" {
		cfg.Content.Dir = contentDir
	}
	if output != "" {
		cfg.Output.Dir = output
	}
	return cfg.Validate()
}

// newRecorder returns a Prometheus recorder and its handler when metrics are enabled.
func newRecorder(cfg *config.Config) (metrics.Recorder, http.Handler) {
	if !cfg.Metrics.Enabled {
		return metrics.NoopRecorder{}, nil
	}
	reg := prom.NewRegistry()
	return metrics.NewPrometheusRecorder(reg), metrics.HTTPHandler(reg)
}

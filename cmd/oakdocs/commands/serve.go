package commands

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"git.home.luguber.info/inful/oakdocs/internal/generator"
	"git.home.luguber.info/inful/oakdocs/internal/logfields"
	"git.home.luguber.info/inful/oakdocs/internal/server"
	"git.home.luguber.info/inful/oakdocs/internal/theme"
	"git.home.luguber.info/inful/oakdocs/internal/watch"
)

// ServeCmd implements the 'serve' command.
type ServeCmd struct {
	Addr       string `help:"Listen address (overrides server.addr)"`
	ContentDir string `name:"content-dir" short:"d" help:"Content directory (overrides content.dir)" type:"path"`
	Output     string `short:"o" help:"Output directory (overrides output.dir)" type:"path"`
	NoWatch    bool   `name:"no-watch" help:"Do not regenerate on file changes"`
}

func (s *ServeCmd) Run(ctx context.Context, root *CLI) error {
	cfg, err := root.loadConfig()
	if err != nil {
		return err
	}
	if err := applyDirs(cfg, s.ContentDir, s.Output); err != nil {
		return err
	}
	if s.Addr != "" {
		cfg.Server.Addr = s.Addr
	}

	log := slog.Default()
	rec, metricsHandler := newRecorder(cfg)
	reg := theme.NewRegistry()
	srv := server.New(log, metricsHandler)

	// Each pass reloads the tool configuration; the component registry is
	// shared so re-bootstrapping on reload leaves it unchanged. The watcher
	// follows content.dir when a reload moves it.
	var w *watch.Watcher
	watched := cfg.Content.Dir
	first := true
	regenerate := func(ctx context.Context) error {
		current := cfg
		if !first {
			reloaded, err := root.loadConfig()
			if err != nil {
				return err
			}
			if err := applyDirs(reloaded, s.ContentDir, s.Output); err != nil {
				return err
			}
			current = reloaded
		}
		first = false
		if w != nil && current.Content.Dir != watched {
			if err := w.SwitchTree(watched, current.Content.Dir); err != nil {
				return err
			}
			log.Info("Watching new content directory", logfields.Path(current.Content.Dir))
			watched = current.Content.Dir
		}
		res, err := generator.New(current,
			generator.WithRecorder(rec),
			generator.WithLogger(log),
			generator.WithRegistry(reg),
		).Generate(ctx)
		if err != nil {
			return err
		}
		srv.Publish(res)
		return nil
	}
	if err := regenerate(ctx); err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(ctx)
	if !s.NoWatch {
		var err error
		w, err = watch.New(regenerate, watch.WithLogger(log))
		if err != nil {
			return err
		}
		if err := w.AddTree(cfg.Content.Dir); err != nil {
			return err
		}
		if root.Config != "" {
			if err := w.AddFile(root.Config); err != nil {
				log.Warn("Not watching tool configuration", logfields.Path(root.Config), logfields.Error(err))
			}
		}
		g.Go(func() error { return w.Run(ctx) })
	}
	g.Go(func() error { return srv.ListenAndServe(ctx, cfg.Server.Addr) })
	return g.Wait()
}

// Package generator composes the Oak Chain site configuration, verifies it
// against the content tree and writes the artifacts consumed by the external
// site generator.
package generator

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/oakdocs/internal/config"
	"git.home.luguber.info/inful/oakdocs/internal/content"
	foundation "git.home.luguber.info/inful/oakdocs/internal/foundation/errors"
	"git.home.luguber.info/inful/oakdocs/internal/linkverify"
	"git.home.luguber.info/inful/oakdocs/internal/logfields"
	"git.home.luguber.info/inful/oakdocs/internal/metrics"
	"git.home.luguber.info/inful/oakdocs/internal/site"
	"git.home.luguber.info/inful/oakdocs/internal/theme"
)

// Stage names used for metrics and logs.
const (
	StageValidate = "validate"
	StageTheme    = "theme"
	StageDiscover = "discover"
	StageVerify   = "verify"
	StageWrite    = "write"
)

// Generator runs generation passes. A Generator may be reused; the theme
// registry is shared between passes so repeated runs re-bootstrap idempotently.
type Generator struct {
	cfg      *config.Config
	registry *theme.Registry
	recorder metrics.Recorder
	logger   *slog.Logger
	now      func() time.Time
	newID    func() string
}

// Option customises a Generator.
type Option func(*Generator)

// WithRecorder sets the metrics recorder.
func WithRecorder(r metrics.Recorder) Option {
	return func(g *Generator) {
		if r != nil {
			g.recorder = r
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(g *Generator) {
		if l != nil {
			g.logger = l
		}
	}
}

// WithRegistry shares a component registry with the caller.
func WithRegistry(reg *theme.Registry) Option {
	return func(g *Generator) {
		if reg != nil {
			g.registry = reg
		}
	}
}

// New returns a generator for the given tool configuration.
func New(cfg *config.Config, opts ...Option) *Generator {
	if cfg == nil {
		cfg = config.Default()
	}
	g := &Generator{
		cfg:      cfg,
		registry: theme.NewRegistry(),
		recorder: metrics.NoopRecorder{},
		logger:   slog.Default(),
		now:      time.Now,
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Registry returns the component registry used by the generator.
func (g *Generator) Registry() *theme.Registry { return g.registry }

// Result is the outcome of a generation pass.
type Result struct {
	BuildID string
	Site    *site.SiteConfig
	Theme   *theme.Theme
	Routes  *content.Table
	Links   linkverify.Report
	Outcome metrics.Outcome
	Started time.Time
	Elapsed time.Duration
}

// Check runs every stage except writing artifacts.
func (g *Generator) Check(ctx context.Context) (*Result, error) {
	return g.run(ctx, false)
}

// Generate runs a full pass and writes artifacts to the output directory.
func (g *Generator) Generate(ctx context.Context) (*Result, error) {
	return g.run(ctx, true)
}

func (g *Generator) run(ctx context.Context, write bool) (res *Result, err error) {
	res = &Result{BuildID: g.newID(), Started: g.now()}
	log := g.logger.With(logfields.BuildID(res.BuildID))
	defer func() {
		res.Elapsed = g.now().Sub(res.Started)
		res.Outcome = outcomeFor(err, res.Links)
		g.recorder.ObserveGenerationDuration(res.Elapsed)
		g.recorder.IncGenerationOutcome(res.Outcome)
		if err != nil {
			log.Error("Generation failed", logfields.Error(err))
			return
		}
		log.Info("Generation completed",
			slog.String("outcome", string(res.Outcome)),
			logfields.DurationMS(float64(res.Elapsed.Microseconds())/1000),
			logfields.Count(res.Routes.Len()))
	}()

	steps := []stage{
		{StageValidate, g.stageValidate},
		{StageTheme, g.stageTheme},
		{StageDiscover, g.stageDiscover},
		{StageVerify, g.stageVerify},
	}
	if write {
		steps = append(steps, stage{StageWrite, g.stageWrite})
	}
	for _, st := range steps {
		if cerr := ctx.Err(); cerr != nil {
			return res, cerr
		}
		t0 := g.now()
		serr := st.fn(ctx, res)
		g.recorder.ObserveStageDuration(st.name, g.now().Sub(t0))
		if serr != nil {
			return res, serr
		}
		log.Debug("Stage completed", slog.String("stage", st.name))
	}
	return res, nil
}

type stage struct {
	name string
	fn   func(context.Context, *Result) error
}

func (g *Generator) stageValidate(_ context.Context, res *Result) error {
	res.Site = g.cfg.SiteConfig()
	return res.Site.Validate()
}

func (g *Generator) stageTheme(_ context.Context, res *Result) error {
	th, err := theme.EnhanceApp(g.registry)
	if err != nil {
		return foundation.WrapError(err, foundation.CategoryBuild, "theme bootstrap failed").Build()
	}
	res.Theme = th
	g.recorder.SetRegisteredComponents(g.registry.Len())
	return nil
}

func (g *Generator) stageDiscover(ctx context.Context, res *Result) error {
	routes, err := content.Discover(ctx, g.cfg.Content.Dir)
	if err != nil {
		return err
	}
	res.Routes = routes
	g.recorder.SetRoutes(routes.Len())
	return nil
}

func (g *Generator) stageVerify(_ context.Context, res *Result) error {
	rep, err := linkverify.New(res.Routes, res.Site.Base, g.logger).Verify(res.Site)
	res.Links = rep
	g.recorder.SetBrokenLinks(len(rep.Broken))
	return err
}

func (g *Generator) stageWrite(_ context.Context, res *Result) error {
	dir := g.cfg.Output.Dir
	if g.cfg.Output.Clean {
		if err := cleanDir(dir); err != nil {
			return err
		}
	}
	return writeArtifacts(dir, res)
}

func cleanDir(dir string) error {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return foundation.WrapError(err, foundation.CategoryFileSystem, "resolve output directory").WithContext("path", dir).Build()
	}
	if abs == filepath.Dir(abs) {
		return foundation.ValidationError("refusing to clean filesystem root").WithContext("path", abs).Build()
	}
	if err := os.RemoveAll(abs); err != nil {
		return foundation.WrapError(err, foundation.CategoryFileSystem, "clean output directory").WithContext("path", abs).Build()
	}
	return nil
}

func outcomeFor(err error, links linkverify.Report) metrics.Outcome {
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return metrics.OutcomeCanceled
	case err != nil:
		return metrics.OutcomeFailed
	case !links.OK():
		return metrics.OutcomeWarning
	default:
		return metrics.OutcomeSuccess
	}
}

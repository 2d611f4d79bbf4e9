// Package linkverify checks that every internal link configured for the
// site (navigation, sidebar, social links) and every internal link written in
// content resolves to a known route.
package linkverify

import (
	"fmt"
	"log/slog"
	"strings"

	"git.home.luguber.info/inful/oakdocs/internal/content"
	foundation "git.home.luguber.info/inful/oakdocs/internal/foundation/errors"
	"git.home.luguber.info/inful/oakdocs/internal/logfields"
	"git.home.luguber.info/inful/oakdocs/internal/nav"
	"git.home.luguber.info/inful/oakdocs/internal/site"
)

// BrokenLink is a link that does not resolve to a route.
type BrokenLink struct {
	Source string `json:"source"` // where the link was declared
	Link   string `json:"link"`
}

// Report summarises a verification pass.
type Report struct {
	Checked  int          `json:"checked"`
	Skipped  int          `json:"skipped"` // external links and anchors
	Broken   []BrokenLink `json:"broken,omitempty"`
	Tolerant bool         `json:"tolerant"`
}

// OK reports whether no broken links were found.
func (r Report) OK() bool { return len(r.Broken) == 0 }

// Verifier resolves links against a route table.
type Verifier struct {
	routes *content.Table
	base   string
	logger *slog.Logger
}

// New returns a verifier. base is the site base path and is stripped from
// links before lookup.
func New(routes *content.Table, base string, logger *slog.Logger) *Verifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &Verifier{routes: routes, base: base, logger: logger}
}

func (v *Verifier) check(rep *Report, source, link string) {
	switch {
	case nav.IsExternal(link), strings.HasPrefix(link, "#"), link == "":
		rep.Skipped++
		return
	case !nav.IsInternal(link):
		// Relative content links are resolved by the renderer against the page; skip them here.
		rep.Skipped++
		return
	}
	rep.Checked++
	if !v.routes.Has(nav.StripBase(v.base, link)) {
		rep.Broken = append(rep.Broken, BrokenLink{Source: source, Link: link})
	}
}

// Collect checks the configured links and the links of every page without
// deciding whether the outcome is fatal.
func (v *Verifier) Collect(cfg *site.SiteConfig) Report {
	rep := Report{Tolerant: cfg.IgnoreDeadLinks}
	for _, ref := range cfg.Links() {
		v.check(&rep, ref.Where, ref.Link)
	}
	for _, p := range v.routes.Pages() {
		for _, l := range p.Links {
			v.check(&rep, "page "+p.File, l)
		}
	}
	return rep
}

// Verify checks every link. Broken links are fatal unless the site tolerates
// dead links, in which case they are logged as warnings and no error is returned.
func (v *Verifier) Verify(cfg *site.SiteConfig) (Report, error) {
	rep := v.Collect(cfg)
	if rep.OK() {
		v.logger.Debug("Link verification passed", slog.Int("checked", rep.Checked))
		return rep, nil
	}
	if rep.Tolerant {
		for _, b := range rep.Broken {
			v.logger.Warn("Dead link ignored", logfields.Source(b.Source), logfields.Link(b.Link))
		}
		return rep, nil
	}
	links := make([]string, 0, len(rep.Broken))
	for _, b := range rep.Broken {
		links = append(links, fmt.Sprintf("%s (%s)", b.Link, b.Source))
	}
	return rep, foundation.ValidationError(fmt.Sprintf("%d dead link(s): %s", len(rep.Broken), strings.Join(links, ", "))).
		WithContext("broken", links).
		Build()
}

package commands

import (
	"encoding/json"
	"fmt"

	foundation "git.home.luguber.info/inful/oakdocs/internal/foundation/errors"
	"git.home.luguber.info/inful/oakdocs/internal/nav"
)

// ResolveCmd implements the 'resolve' command.
type ResolveCmd struct {
	Path string `arg:"" help:"Page path, e.g. /adr/003-aeron-consensus"`
	JSON bool   `name:"json" help:"Print the groups as JSON"`
}

func (r *ResolveCmd) Run(global *Global, root *CLI) error {
	cfg, err := root.loadConfig()
	if err != nil {
		return err
	}
	groups, prefix, ok := cfg.SiteConfig().SidebarFor(r.Path)
	if !ok {
		return foundation.NotFoundError(fmt.Sprintf("no sidebar for %s", r.Path)).WithContext("path", r.Path).Build()
	}

	out := global.out()
	if r.JSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			Path   string      `json:"path"`
			Prefix string      `json:"prefix"`
			Groups []nav.Group `json:"groups"`
		}{nav.NormalizePath(r.Path), prefix, groups})
	}

	fmt.Fprintf(out, "%s -> %s\n", nav.NormalizePath(r.Path), prefix)
	for _, g := range groups {
		marker := ""
		if g.Collapsed {
			marker = " (collapsed)"
		}
		fmt.Fprintf(out, "  %s%s\n", g.Text, marker)
		for _, it := range g.Items {
			fmt.Fprintf(out, "    %-40s %s\n", it.Text, it.Link)
		}
	}
	return nil
}

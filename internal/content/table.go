package content

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	foundation "git.home.luguber.info/inful/oakdocs/internal/foundation/errors"
	"git.home.luguber.info/inful/oakdocs/internal/logfields"
)

// Table is the set of content routes known to the site.
type Table struct {
	pages map[string]Page
}

// NewTable builds a table from pages. Later pages with the same route replace earlier ones.
func NewTable(pages ...Page) *Table {
	t := &Table{pages: make(map[string]Page, len(pages))}
	for _, p := range pages {
		t.pages[p.Route] = p
	}
	return t
}

// Len returns the number of routes.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.pages)
}

// Routes returns every route, sorted.
func (t *Table) Routes() []string {
	out := make([]string, 0, len(t.pages))
	for r := range t.pages {
		out = append(out, r)
	}
	slices.Sort(out)
	return out
}

// Pages returns every page sorted by route.
func (t *Table) Pages() []Page {
	out := make([]Page, 0, len(t.pages))
	for _, r := range t.Routes() {
		out = append(out, t.pages[r])
	}
	return out
}

// Lookup resolves a site-absolute link to a page. Query and fragment are
// ignored; ".html" and ".md" suffixes are accepted; "/x" also matches the
// directory index "/x/" and "/x/" matches the page "/x".
func (t *Table) Lookup(link string) (Page, bool) {
	if t == nil {
		return Page{}, false
	}
	if i := strings.IndexAny(link, "?#"); i >= 0 {
		link = link[:i]
	}
	if link == "" {
		return Page{}, false
	}
	for _, ext := range []string{".html", ".md"} {
		link = strings.TrimSuffix(link, ext)
	}
	if strings.HasSuffix(link, "/index") {
		link = strings.TrimSuffix(link, "index")
	}
	if p, ok := t.pages[link]; ok {
		return p, true
	}
	alt := link + "/"
	if strings.HasSuffix(link, "/") {
		alt = strings.TrimSuffix(link, "/")
	}
	if p, ok := t.pages[alt]; ok && alt != "" {
		return p, true
	}
	return Page{}, false
}

// Has reports whether link resolves to a page.
func (t *Table) Has(link string) bool {
	_, ok := t.Lookup(link)
	return ok
}

func skipDir(name string) bool {
	return name != "." && (strings.HasPrefix(name, ".") || name == "node_modules" || name == "public")
}

// Discover walks dir and returns the route table of every markdown file.
// Hidden directories (e.g. generator config dirs), node_modules and public
// assets are skipped.
func Discover(ctx context.Context, dir string) (*Table, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, foundation.WrapError(err, foundation.CategoryContent, "content directory not readable").
			WithContext("path", dir).
			Build()
	}
	if !info.IsDir() {
		return nil, foundation.ContentError("content path is not a directory").WithContext("path", dir).Build()
	}

	var pages []Page
	walkErr := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if d.IsDir() {
			if skipDir(d.Name()) && p != dir {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.EqualFold(filepath.Ext(d.Name()), ".md") {
			return nil
		}
		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return err
		}
		src, err := os.ReadFile(p)
		if err != nil {
			return err
		}
		page := ParsePage(filepath.ToSlash(rel), src)
		slog.Debug("Discovered page", logfields.Route(page.Route), logfields.Path(page.File))
		pages = append(pages, page)
		return nil
	})
	if walkErr != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, foundation.WrapError(walkErr, foundation.CategoryContent, "content discovery failed").
			WithContext("path", dir).
			Build()
	}
	return NewTable(pages...), nil
}

// Package testutil provides content-tree fixtures and artifact assertions for tests.
package testutil

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"git.home.luguber.info/inful/oakdocs/internal/nav"
	"git.home.luguber.info/inful/oakdocs/internal/site"
)

// WriteFile writes body to root/rel, creating parent directories.
func WriteFile(t testing.TB, root, rel, body string) string {
	t.Helper()
	p := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(p), err)
	}
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", p, err)
	}
	return p
}

// FileForRoute returns the content-relative markdown file serving route.
func FileForRoute(route string) string {
	rel := strings.TrimPrefix(route, "/")
	if rel == "" || strings.HasSuffix(rel, "/") {
		return rel + "index.md"
	}
	return rel + ".md"
}

// WriteOakChainDocs writes one page for every internal link of the Oak Chain
// site except the routes in skip. It returns the routes written.
func WriteOakChainDocs(t testing.TB, dir string, skip ...string) []string {
	t.Helper()
	var written []string
	for _, ref := range site.OakChain().Links() {
		if !nav.IsInternal(ref.Link) || slices.Contains(skip, ref.Link) || slices.Contains(written, ref.Link) {
			continue
		}
		body := "# " + ref.Link + "\n\nSee [the guide](/guide/).\n"
		if ref.Link == "/architecture/consensus" {
			body += "\n```mermaid\ngraph LR\n  Leader-->Follower\n```\n"
		}
		WriteFile(t, dir, FileForRoute(ref.Link), body)
		written = append(written, ref.Link)
	}
	return written
}

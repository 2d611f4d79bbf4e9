// Package content builds the route table of a documentation content tree.
// Markdown is parsed for inspection only (titles, links, diagram blocks).
package content

import (
	"bytes"
	"path"
	"strings"

	"github.com/adrg/frontmatter"
	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"git.home.luguber.info/inful/oakdocs/internal/diagram"
)

// Page is one markdown file mapped to a route.
type Page struct {
	Route    string   `json:"route"`
	File     string   `json:"file"` // slash-separated, relative to the content root
	Title    string   `json:"title"`
	Links    []string `json:"links,omitempty"`
	Diagrams int      `json:"diagrams,omitempty"`
}

// RouteFor maps a content-relative markdown path to its route.
// "index.md" maps to its directory; other files drop the extension.
func RouteFor(rel string) string {
	rel = strings.TrimPrefix(path.Clean("/"+strings.ReplaceAll(rel, "\\", "/")), "/")
	dir, file := path.Split(rel)
	stem := strings.TrimSuffix(file, path.Ext(file))
	if strings.EqualFold(stem, "index") {
		return "/" + dir
	}
	return "/" + dir + stem
}

type pageMatter struct {
	Title string `yaml:"title"`
}

// ParsePage inspects a markdown file's bytes.
func ParsePage(rel string, src []byte) Page {
	p := Page{Route: RouteFor(rel), File: strings.ReplaceAll(rel, "\\", "/")}

	var fm pageMatter
	body, err := frontmatter.Parse(bytes.NewReader(src), &fm)
	if err != nil {
		// Malformed frontmatter is left to the renderer to report; inspect the raw file.
		body = src
	} else {
		p.Title = fm.Title
	}

	root := goldmark.New().Parser().Parse(text.NewReader(body))
	_ = gmast.Walk(root, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *gmast.Heading:
			if p.Title == "" && node.Level == 1 {
				p.Title = headingText(node, body)
			}
		case *gmast.Link:
			p.Links = append(p.Links, string(node.Destination))
		case *gmast.AutoLink:
			p.Links = append(p.Links, string(node.URL(body)))
		}
		return gmast.WalkContinue, nil
	})
	p.Diagrams = diagram.CountBlocks(body)

	if p.Title == "" {
		p.Title = fallbackTitle(p.File)
	}
	return p
}

func headingText(h *gmast.Heading, src []byte) string {
	var b strings.Builder
	for c := h.FirstChild(); c != nil; c = c.NextSibling() {
		collectText(c, src, &b)
	}
	return strings.TrimSpace(b.String())
}

func collectText(n gmast.Node, src []byte, b *strings.Builder) {
	if t, ok := n.(*gmast.Text); ok {
		b.Write(t.Segment.Value(src))
		if t.SoftLineBreak() {
			b.WriteByte(' ')
		}
		return
	}
	if s, ok := n.(*gmast.String); ok {
		b.Write(s.Value)
		return
	}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		collectText(c, src, b)
	}
}

func fallbackTitle(file string) string {
	stem := strings.TrimSuffix(path.Base(file), path.Ext(file))
	if strings.EqualFold(stem, "index") {
		if dir := path.Base(path.Dir(file)); dir != "." && dir != "/" {
			stem = dir
		} else {
			stem = "home"
		}
	}
	return cases.Title(language.English).String(strings.NewReplacer("-", " ", "_", " ").Replace(stem))
}

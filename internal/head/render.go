package head

import (
	"bytes"
	"fmt"
	"io"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

func (e Entry) node() *html.Node {
	tag := normalizeTag(e.Tag)
	n := &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
	}
	for _, a := range e.Attrs {
		n.Attr = append(n.Attr, html.Attribute{Key: a.Key, Val: a.Value})
	}
	if e.Content != "" {
		n.AppendChild(&html.Node{Type: html.TextNode, Data: e.Content})
	}
	return n
}

// Render writes every entry, one per line, in list order. An invalid list is
// rejected before anything is written.
func Render(w io.Writer, entries List) error {
	if err := entries.Validate(); err != nil {
		return err
	}
	for i, e := range entries {
		if err := html.Render(w, e.node()); err != nil {
			return fmt.Errorf("render head entry %d (%s): %w", i, e.Tag, err)
		}
		if _, err := io.WriteString(w, "\n"); err != nil {
			return err
		}
	}
	return nil
}

// HTML renders the list to a string.
func (l List) HTML() (string, error) {
	var buf bytes.Buffer
	if err := Render(&buf, l); err != nil {
		return "", err
	}
	return buf.String(), nil
}

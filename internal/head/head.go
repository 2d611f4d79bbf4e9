// Package head models document-head entries (icons, social preview metadata)
// attached verbatim to every rendered page.
package head

import (
	"strings"

	foundation "git.home.luguber.info/inful/oakdocs/internal/foundation/errors"
)

// Attr is a single attribute. Attributes keep their declaration order.
type Attr struct {
	Key   string
	Value string
}

// A returns an attribute.
func A(key, value string) Attr { return Attr{Key: key, Value: value} }

// Entry is one element injected into the document head.
type Entry struct {
	Tag     string
	Attrs   []Attr
	Content string // inline body for script/style/noscript/title
}

var allowedTags = map[string]bool{
	"meta":     true,
	"link":     true,
	"script":   true,
	"style":    true,
	"base":     true,
	"noscript": true,
	"title":    true,
}

// bodyTags may carry inline content; every other allowed tag is void.
var bodyTags = map[string]bool{
	"script":   true,
	"style":    true,
	"noscript": true,
	"title":    true,
}

func normalizeTag(tag string) string {
	return strings.ToLower(strings.TrimSpace(tag))
}

// New validates and returns a head entry.
func New(tag string, attrs ...Attr) (Entry, error) {
	e := Entry{Tag: normalizeTag(tag), Attrs: append([]Attr(nil), attrs...)}
	if err := e.validate(); err != nil {
		return Entry{}, err
	}
	return e, nil
}

func (e Entry) validate() error {
	if !allowedTags[e.Tag] {
		return foundation.ValidationError("unsupported head element").
			WithContext("tag", e.Tag).
			Build()
	}
	for _, a := range e.Attrs {
		if strings.TrimSpace(a.Key) == "" {
			return foundation.ValidationError("head attribute key is required").
				WithContext("tag", e.Tag).
				Build()
		}
	}
	if e.Content != "" && !bodyTags[e.Tag] {
		return foundation.ValidationError("void head element cannot have content").
			WithContext("tag", e.Tag).
			Build()
	}
	return nil
}

func must(tag string, attrs ...Attr) Entry {
	e, err := New(tag, attrs...)
	if err != nil {
		panic(err)
	}
	return e
}

// Meta returns a meta entry.
func Meta(attrs ...Attr) Entry { return must("meta", attrs...) }

// Link returns a link entry.
func Link(attrs ...Attr) Entry { return must("link", attrs...) }

// Script returns a script entry with an inline body.
func Script(body string, attrs ...Attr) Entry {
	e := must("script", attrs...)
	e.Content = body
	return e
}

// Get returns the value of the first attribute named key.
func (e Entry) Get(key string) (string, bool) {
	for _, a := range e.Attrs {
		if a.Key == key {
			return a.Value, true
		}
	}
	return "", false
}

// List is the ordered head configuration. Duplicates are allowed.
type List []Entry

// Count returns how many entries use tag.
func (l List) Count(tag string) int {
	n := 0
	for _, e := range l {
		if e.Tag == tag {
			n++
		}
	}
	return n
}

// Validate re-checks every entry, for lists decoded from files.
func (l List) Validate() error {
	for i, e := range l {
		e.Tag = normalizeTag(e.Tag)
		if err := e.validate(); err != nil {
			if c, ok := foundation.AsClassified(err); ok {
				return c.WithContext("index", i)
			}
			return err
		}
	}
	return nil
}

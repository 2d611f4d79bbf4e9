package nav

import (
	"strings"

	foundation "git.home.luguber.info/inful/oakdocs/internal/foundation/errors"
)

// Item is a single navigation entry. An empty Link means the entry is a label only.
type Item struct {
	Text string `yaml:"text" json:"text"`
	Link string `yaml:"link,omitempty" json:"link,omitempty"`
}

// NewItem validates and returns a navigation item.
func NewItem(text, link string) (Item, error) {
	if strings.TrimSpace(text) == "" {
		return Item{}, foundation.ValidationError("navigation item text is required").
			WithContext("link", link).
			Build()
	}
	if link != "" && !IsInternal(link) && !IsExternal(link) {
		return Item{}, foundation.ValidationError("navigation link must be site-absolute or an external URL").
			WithContext("text", text).
			WithContext("link", link).
			Build()
	}
	return Item{Text: text, Link: link}, nil
}

// MustItem is like NewItem but panics on invalid input. It is meant for
// configuration declared as literal data.
func MustItem(text, link string) Item {
	it, err := NewItem(text, link)
	if err != nil {
		panic(err)
	}
	return it
}

// HasLink reports whether the item points anywhere.
func (i Item) HasLink() bool { return i.Link != "" }

// IsExternal reports whether link leaves the site.
func IsExternal(link string) bool {
	l := strings.ToLower(link)
	return strings.HasPrefix(l, "http://") || strings.HasPrefix(l, "https://") || strings.HasPrefix(l, "mailto:")
}

// IsInternal reports whether link is a site-absolute route reference.
func IsInternal(link string) bool {
	return strings.HasPrefix(link, "/") && !strings.HasPrefix(link, "//")
}

// Group is a titled, ordered set of items in the sidebar.
type Group struct {
	Text      string `yaml:"text" json:"text"`
	Items     []Item `yaml:"items" json:"items"`
	Collapsed bool   `yaml:"collapsed,omitempty" json:"collapsed,omitempty"`
}

// NewGroup validates and returns a sidebar group. Groups must not be empty.
func NewGroup(text string, items ...Item) (Group, error) {
	if strings.TrimSpace(text) == "" {
		return Group{}, foundation.ValidationError("sidebar group text is required").Build()
	}
	if len(items) == 0 {
		return Group{}, foundation.ValidationError("sidebar group must contain at least one item").
			WithContext("group", text).
			Build()
	}
	return Group{Text: text, Items: append([]Item(nil), items...)}, nil
}

// MustGroup is like NewGroup but panics on invalid input.
func MustGroup(text string, items ...Item) Group {
	g, err := NewGroup(text, items...)
	if err != nil {
		panic(err)
	}
	return g
}

// Collapsible returns a copy of g rendered collapsed by default.
func (g Group) Collapsible() Group {
	g.Items = append([]Item(nil), g.Items...)
	g.Collapsed = true
	return g
}

func (g Group) clone() Group {
	g.Items = append([]Item(nil), g.Items...)
	return g
}

// NavBar is the top navigation, rendered left to right in declaration order.
type NavBar []Item

// LinkRef pairs a configured link with a human-readable description of where it was declared.
type LinkRef struct {
	Where string
	Link  string
}

// Links returns every linked entry of the bar.
func (n NavBar) Links() []LinkRef {
	var refs []LinkRef
	for _, it := range n {
		if it.HasLink() {
			refs = append(refs, LinkRef{Where: "nav > " + it.Text, Link: it.Link})
		}
	}
	return refs
}

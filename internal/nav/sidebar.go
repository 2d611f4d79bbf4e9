package nav

import (
	"strings"

	foundation "git.home.luguber.info/inful/oakdocs/internal/foundation/errors"
)

// RootPrefix is the fallback sidebar key.
const RootPrefix = "/"

type sidebarEntry struct {
	prefix string
	groups []Group
}

// SidebarMap maps route prefixes to ordered sidebar groups. Keys keep their
// declaration order; lookups use longest-prefix matching.
type SidebarMap struct {
	entries []sidebarEntry
}

// NewSidebarMap returns an empty sidebar map.
func NewSidebarMap() *SidebarMap { return &SidebarMap{} }

// ValidatePrefix checks that prefix is usable as a sidebar key: it must start
// with a slash and, unless it is the root, end with one.
func ValidatePrefix(prefix string) error {
	if !strings.HasPrefix(prefix, "/") {
		return foundation.ValidationError("sidebar prefix must start with '/'").
			WithContext("prefix", prefix).
			Build()
	}
	if prefix != RootPrefix && !strings.HasSuffix(prefix, "/") {
		return foundation.ValidationError("sidebar prefix must end with '/'").
			WithContext("prefix", prefix).
			Build()
	}
	if strings.ContainsAny(prefix, "?#") {
		return foundation.ValidationError("sidebar prefix must not contain a query or fragment").
			WithContext("prefix", prefix).
			Build()
	}
	return nil
}

// Add registers groups under prefix. Duplicate prefixes are rejected.
func (m *SidebarMap) Add(prefix string, groups ...Group) error {
	if err := ValidatePrefix(prefix); err != nil {
		return err
	}
	if _, ok := m.index(prefix); ok {
		return foundation.ValidationError("duplicate sidebar prefix").
			WithContext("prefix", prefix).
			Build()
	}
	if len(groups) == 0 {
		return foundation.ValidationError("sidebar prefix has no groups").
			WithContext("prefix", prefix).
			Build()
	}
	cloned := make([]Group, 0, len(groups))
	for _, g := range groups {
		if _, err := NewGroup(g.Text, g.Items...); err != nil {
			return err
		}
		for _, it := range g.Items {
			if _, err := NewItem(it.Text, it.Link); err != nil {
				return err
			}
		}
		cloned = append(cloned, g.clone())
	}
	m.entries = append(m.entries, sidebarEntry{prefix: prefix, groups: cloned})
	return nil
}

// MustAdd is like Add but panics on error.
func (m *SidebarMap) MustAdd(prefix string, groups ...Group) *SidebarMap {
	if err := m.Add(prefix, groups...); err != nil {
		panic(err)
	}
	return m
}

func (m *SidebarMap) index(prefix string) (int, bool) {
	if m == nil {
		return -1, false
	}
	for i, e := range m.entries {
		if e.prefix == prefix {
			return i, true
		}
	}
	return -1, false
}

// Prefixes returns the keys in declaration order.
func (m *SidebarMap) Prefixes() []string {
	if m == nil {
		return nil
	}
	out := make([]string, len(m.entries))
	for i, e := range m.entries {
		out[i] = e.prefix
	}
	return out
}

// Len returns the number of keys.
func (m *SidebarMap) Len() int {
	if m == nil {
		return 0
	}
	return len(m.entries)
}

// Get returns the groups registered at exactly prefix.
func (m *SidebarMap) Get(prefix string) ([]Group, bool) {
	i, ok := m.index(prefix)
	if !ok {
		return nil, false
	}
	return cloneGroups(m.entries[i].groups), true
}

// Resolve returns the sidebar that applies to pagePath: the groups of the
// longest key that prefixes the path, else the root key. ok is false when
// neither matches.
func (m *SidebarMap) Resolve(pagePath string) (groups []Group, prefix string, ok bool) {
	if m == nil {
		return nil, "", false
	}
	p := NormalizePath(pagePath)
	best := -1
	for i, e := range m.entries {
		if !matches(e.prefix, p) {
			continue
		}
		if best < 0 || len(e.prefix) > len(m.entries[best].prefix) {
			best = i
		}
	}
	if best < 0 {
		return nil, "", false
	}
	e := m.entries[best]
	return cloneGroups(e.groups), e.prefix, true
}

func matches(prefix, path string) bool {
	if strings.HasPrefix(path, prefix) {
		return true
	}
	// "/adr" addresses the "/adr/" section root.
	return path+"/" == prefix
}

// NormalizePath strips query and fragment and guarantees a leading slash.
func NormalizePath(p string) string {
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return p
}

// StripBase removes the site base path from p when p lies under it. The base
// only matches whole segments, so base "/oak/" leaves "/oakley/x" unchanged.
func StripBase(base, p string) string {
	root := strings.TrimSuffix(base, "/")
	if root == "" {
		return p
	}
	rest, ok := strings.CutPrefix(p, root)
	if !ok {
		return p
	}
	switch {
	case rest == "":
		return "/"
	case strings.HasPrefix(rest, "/"), strings.HasPrefix(rest, "?"), strings.HasPrefix(rest, "#"):
		return NormalizePath(rest)
	default:
		return p
	}
}

// Links returns every sidebar link in declaration order.
func (m *SidebarMap) Links() []LinkRef {
	if m == nil {
		return nil
	}
	var refs []LinkRef
	for _, e := range m.entries {
		for _, g := range e.groups {
			for _, it := range g.Items {
				if !it.HasLink() {
					continue
				}
				refs = append(refs, LinkRef{
					Where: "sidebar " + e.prefix + " > " + g.Text + " > " + it.Text,
					Link:  it.Link,
				})
			}
		}
	}
	return refs
}

func cloneGroups(in []Group) []Group {
	out := make([]Group, len(in))
	for i, g := range in {
		out[i] = g.clone()
	}
	return out
}

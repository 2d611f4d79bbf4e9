package nav

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
	"pgregory.net/rapid"

	foundation "git.home.luguber.info/inful/oakdocs/internal/foundation/errors"
)

func sampleSidebar(t *testing.T) *SidebarMap {
	t.Helper()
	m := NewSidebarMap()
	require.NoError(t, m.Add("/",
		MustGroup("Introduction", MustItem("What is Oak Chain", "/guide/"), MustItem("Getting Started", "/guide/getting-started")),
		MustGroup("Concepts", MustItem("Consensus", "/guide/consensus")),
	))
	require.NoError(t, m.Add("/adr/",
		MustGroup("Architecture Decisions", MustItem("ADR-003 Aeron Consensus", "/adr/003-aeron-consensus")),
	))
	return m
}

func TestResolveLongestPrefixWins(t *testing.T) {
	m := sampleSidebar(t)

	groups, prefix, ok := m.Resolve("/adr/003-aeron-consensus")
	require.True(t, ok)
	assert.Equal(t, "/adr/", prefix)
	want, _ := m.Get("/adr/")
	assert.Equal(t, want, groups)
}

func TestResolveFallsBackToRoot(t *testing.T) {
	m := sampleSidebar(t)

	tests := []struct {
		path   string
		prefix string
	}{
		{"/guide/consensus", "/"},
		{"/", "/"},
		{"guide/getting-started", "/"},
		{"/adr", "/adr/"},
		{"/adr/", "/adr/"},
		{"/adr/003-aeron-consensus#decision", "/adr/"},
		{"/adrs/other", "/"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			_, prefix, ok := m.Resolve(tt.path)
			require.True(t, ok)
			assert.Equal(t, tt.prefix, prefix)
		})
	}
}

func TestResolveWithoutRoot(t *testing.T) {
	m := NewSidebarMap().MustAdd("/adr/", MustGroup("ADRs", MustItem("Index", "/adr/")))

	_, _, ok := m.Resolve("/guide/")
	assert.False(t, ok)

	var nilMap *SidebarMap
	_, _, ok = nilMap.Resolve("/")
	assert.False(t, ok)
}

func TestResolveReturnsCopies(t *testing.T) {
	m := sampleSidebar(t)
	groups, _, _ := m.Resolve("/guide/")
	groups[0].Items[0].Text = "mutated"

	again, _, _ := m.Resolve("/guide/")
	assert.Equal(t, "What is Oak Chain", again[0].Items[0].Text)
}

func TestAddRejectsMalformedKeys(t *testing.T) {
	g := MustGroup("G", MustItem("I", "/i"))
	for _, prefix := range []string{"adr/", "/adr", "", "/adr/?x=1/"} {
		t.Run(prefix, func(t *testing.T) {
			err := NewSidebarMap().Add(prefix, g)
			require.Error(t, err)
			assert.True(t, foundation.HasCategory(err, foundation.CategoryValidation))
		})
	}

	m := NewSidebarMap().MustAdd("/", g)
	assert.Error(t, m.Add("/", g), "duplicate prefix")
	assert.Error(t, m.Add("/empty/"), "no groups")
	assert.Error(t, m.Add("/bad/", Group{Text: "Empty"}), "group without items")
}

func TestDeclarationOrderPreserved(t *testing.T) {
	m := sampleSidebar(t)

	assert.Equal(t, []string{"/", "/adr/"}, m.Prefixes())
	root, _ := m.Get("/")
	require.Len(t, root, 2)
	assert.Equal(t, "Introduction", root[0].Text)
	assert.Equal(t, "Concepts", root[1].Text)
	assert.Equal(t, "/guide/", root[0].Items[0].Link)
	assert.Equal(t, "/guide/getting-started", root[0].Items[1].Link)

	links := m.Links()
	require.Len(t, links, 4)
	assert.Equal(t, "/adr/003-aeron-consensus", links[3].Link)
	assert.True(t, strings.HasPrefix(links[3].Where, "sidebar /adr/"))
}

func TestYAMLKeepsKeyOrder(t *testing.T) {
	m := NewSidebarMap().
		MustAdd("/zeta/", MustGroup("Z", MustItem("z", "/zeta/"))).
		MustAdd("/", MustGroup("Root", MustItem("home", "/"))).
		MustAdd("/alpha/", MustGroup("A", MustItem("a", "/alpha/")))

	out, err := yaml.Marshal(m)
	require.NoError(t, err)
	s := string(out)
	zeta, root, alpha := strings.Index(s, "/zeta/:"), strings.Index(s, "\n/:"), strings.Index(s, "\n/alpha/:")
	require.True(t, zeta >= 0 && root > 0 && alpha > 0, s)
	assert.Less(t, zeta, root)
	assert.Less(t, root, alpha)

	var back SidebarMap
	require.NoError(t, yaml.Unmarshal(out, &back))
	assert.Equal(t, m.Prefixes(), back.Prefixes())
	for _, p := range m.Prefixes() {
		a, _ := m.Get(p)
		b, _ := back.Get(p)
		assert.Equal(t, a, b)
	}
}

func TestYAMLRejectsInvalidKeys(t *testing.T) {
	var m SidebarMap
	err := yaml.Unmarshal([]byte("adr:\n  - text: ADRs\n    items:\n      - text: x\n        link: /adr/\n"), &m)
	assert.Error(t, err)
}

func TestJSONKeepsKeyOrder(t *testing.T) {
	m := sampleSidebar(t)
	out, err := json.Marshal(m)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(out), `{"/":`))

	var back SidebarMap
	require.NoError(t, json.Unmarshal(out, &back))
	assert.Equal(t, m.Prefixes(), back.Prefixes())
}

func TestStripBase(t *testing.T) {
	tests := []struct {
		base, path, want string
	}{
		{"/", "/guide/", "/guide/"},
		{"", "/guide/", "/guide/"},
		{"/oak/", "/oak/guide/", "/guide/"},
		{"/oak/", "/oak", "/"},
		{"/oak/", "/oak/", "/"},
		{"/oak/", "/oak#top", "/"},
		{"/oak/", "/oakley/x", "/oakley/x"},
		{"/oak/", "/guide/", "/guide/"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, StripBase(tt.base, tt.path), "%s + %s", tt.base, tt.path)
	}
}

func TestResolvePropertyLongestPrefix(t *testing.T) {
	segment := rapid.StringMatching(`[a-z]{1,6}`)
	rapid.Check(t, func(t *rapid.T) {
		parts := rapid.SliceOfN(segment, 1, 4).Draw(t, "parts")
		depth := rapid.IntRange(1, len(parts)).Draw(t, "depth")

		m := NewSidebarMap()
		g := MustGroup("root", MustItem("home", "/"))
		if err := m.Add(RootPrefix, g); err != nil {
			t.Fatal(err)
		}
		// Register every ancestor prefix up to depth.
		key := "/"
		for i := 0; i < depth; i++ {
			key += parts[i] + "/"
			if err := m.Add(key, MustGroup(key, MustItem("x", key))); err != nil {
				t.Fatal(err)
			}
		}
		page := "/" + strings.Join(parts, "/") + "/page"
		_, got, ok := m.Resolve(page)
		if !ok {
			t.Fatalf("no sidebar for %s", page)
		}
		if got != key {
			t.Fatalf("Resolve(%q) = %q, want %q", page, got, key)
		}
	})
}

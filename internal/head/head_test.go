package head

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
	"gopkg.in/yaml.v3"
)

// metaTags parses rendered head markup and returns every meta element in document order.
func metaTags(t *testing.T, markup string) []*html.Node {
	t.Helper()
	doc, err := html.Parse(strings.NewReader("<html><head>" + markup + "</head><body></body></html>"))
	require.NoError(t, err)
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "meta" {
			out = append(out, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return out
}

func TestRenderOpenGraphMetaInOrder(t *testing.T) {
	entries := List{
		Meta(A("property", "og:title"), A("content", "Oak Chain")),
		Meta(A("property", "og:type"), A("content", "website")),
	}
	var buf strings.Builder
	require.NoError(t, Render(&buf, entries))

	metas := metaTags(t, buf.String())
	require.Len(t, metas, 2)
	assert.Equal(t, []html.Attribute{{Key: "property", Val: "og:title"}, {Key: "content", Val: "Oak Chain"}}, metas[0].Attr)
	assert.Equal(t, []html.Attribute{{Key: "property", Val: "og:type"}, {Key: "content", Val: "website"}}, metas[1].Attr)
}

func TestRenderVerbatimNoEntriesAddedOrDropped(t *testing.T) {
	entries := List{
		Link(A("rel", "icon"), A("type", "image/svg+xml"), A("href", "/logo.svg")),
		Meta(A("name", "theme-color"), A("content", "#0b0f14")),
		Meta(A("name", "theme-color"), A("content", "#0b0f14")),
		Script("window.oak = true", A("type", "module")),
	}
	out, err := entries.HTML()
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, lines, len(entries))
	assert.Equal(t, `<link rel="icon" type="image/svg+xml" href="/logo.svg"/>`, lines[0])
	assert.Equal(t, lines[1], lines[2], "duplicates render verbatim")
	assert.Equal(t, `<script type="module">window.oak = true</script>`, lines[3])
	assert.Equal(t, 2, entries.Count("meta"))
}

func TestRenderEscapesAttributeValues(t *testing.T) {
	out, err := List{Meta(A("content", `a "quoted" <value>`))}.HTML()
	require.NoError(t, err)
	assert.Contains(t, out, `content="a &#34;quoted&#34; &lt;value&gt;"`)
}

func TestNewRejectsUnknownTags(t *testing.T) {
	_, err := New("div", A("class", "x"))
	assert.Error(t, err)
	_, err = New("meta", A("", "x"))
	assert.Error(t, err)

	e, err := New(" META ", A("charset", "utf-8"))
	require.NoError(t, err)
	assert.Equal(t, "meta", e.Tag)
	v, ok := e.Get("charset")
	assert.True(t, ok)
	assert.Equal(t, "utf-8", v)
}

func TestListValidate(t *testing.T) {
	assert.NoError(t, List{Meta(A("name", "x"))}.Validate())
	assert.Error(t, List{Meta(A("name", "x")), {Tag: "iframe"}}.Validate())
}

func TestYAMLPreservesAttributeOrder(t *testing.T) {
	entries := List{
		Meta(A("property", "og:title"), A("content", "Oak Chain")),
		Script("console.log(1)"),
	}
	out, err := yaml.Marshal(entries)
	require.NoError(t, err)
	assert.Less(t, strings.Index(string(out), "property"), strings.Index(string(out), "content"))

	var back List
	require.NoError(t, yaml.Unmarshal(out, &back))
	assert.Equal(t, entries, back)
}

func TestJSONPreservesAttributeOrder(t *testing.T) {
	entries := List{Meta(A("property", "og:type"), A("content", "website"))}
	out, err := json.Marshal(entries)
	require.NoError(t, err)
	assert.Equal(t, `[["meta",{"property":"og:type","content":"website"}]]`, string(out))

	var back List
	require.NoError(t, json.Unmarshal(out, &back))
	assert.Equal(t, entries, back)
}

func TestVoidElementWithContentIsRejected(t *testing.T) {
	var entries List
	src := "- [meta, {name: x}, body]\n- [meta, {property: \"og:type\", content: website}]\n"
	require.NoError(t, yaml.Unmarshal([]byte(src), &entries))
	require.Len(t, entries, 2)

	assert.Error(t, entries.Validate())

	var buf strings.Builder
	assert.Error(t, Render(&buf, entries))
	assert.Empty(t, buf.String(), "nothing is written for an invalid list")

	out, err := entries.HTML()
	assert.Error(t, err)
	assert.Empty(t, out)

	_, err = List{{Tag: "title", Content: "Oak Chain"}}.HTML()
	assert.NoError(t, err)
}

func TestDecodedTagsAreNormalized(t *testing.T) {
	var fromYAML List
	require.NoError(t, yaml.Unmarshal([]byte("- [\" META \", {charset: utf-8}]\n"), &fromYAML))
	require.Len(t, fromYAML, 1)
	assert.Equal(t, "meta", fromYAML[0].Tag)

	var fromJSON List
	require.NoError(t, json.Unmarshal([]byte(`[[" Link ",{"rel":"icon","href":"/logo.svg"}]]`), &fromJSON))
	require.Len(t, fromJSON, 1)
	assert.Equal(t, "link", fromJSON[0].Tag)

	out, err := append(fromYAML, fromJSON...).HTML()
	require.NoError(t, err)
	assert.Equal(t, "<meta charset=\"utf-8\"/>\n<link rel=\"icon\" href=\"/logo.svg\"/>\n", out)
}

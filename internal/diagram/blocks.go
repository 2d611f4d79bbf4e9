package diagram

import (
	"strings"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Language is the fenced code block info string the renderer rewrites.
const Language = "mermaid"

// CountBlocks counts fenced mermaid blocks in a markdown body. It only inspects
// the document; rendering is left to the external diagram extension.
func CountBlocks(body []byte) int {
	root := goldmark.New().Parser().Parse(text.NewReader(body))
	n := 0
	_ = gmast.Walk(root, func(node gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		if fcb, ok := node.(*gmast.FencedCodeBlock); ok {
			if strings.EqualFold(string(fcb.Language(body)), Language) {
				n++
			}
		}
		return gmast.WalkContinue, nil
	})
	return n
}

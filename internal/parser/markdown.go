package parser

import (
	"io"
	"strings"

	"github.com/dgallion1/grafbreak/internal/doctree"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// MarkdownParser handles Markdown files using goldmark.
// Paragraphs and list items become leaves; code and raw HTML blocks are skipped.
type MarkdownParser struct{}

func (p *MarkdownParser) Parse(r io.Reader, filename string) (*doctree.DocTree, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	doc := goldmark.New().Parser().Parse(text.NewReader(src))

	o := newOutline()
	var walk func(ast.Node)
	walk = func(n ast.Node) {
		switch node := n.(type) {
		case *ast.Heading:
			o.heading(node.Level, inlineText(node, src))
			return
		case *ast.Paragraph, *ast.TextBlock:
			o.paragraph(inlineText(node, src), 0)
			return
		case *ast.FencedCodeBlock, *ast.CodeBlock, *ast.HTMLBlock, *ast.ThematicBreak:
			return
		}
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			walk(c)
		}
	}
	walk(doc)

	return o.tree(titleFrom(filename)), nil
}

// inlineText flattens the inline children of a block, dropping markup.
func inlineText(n ast.Node, src []byte) string {
	var buf strings.Builder
	var collect func(ast.Node)
	collect = func(n ast.Node) {
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			switch t := c.(type) {
			case *ast.Text:
				buf.Write(t.Segment.Value(src))
				if t.HardLineBreak() || t.SoftLineBreak() {
					buf.WriteByte('\n')
				}
			case *ast.String:
				buf.Write(t.Value)
			case *ast.AutoLink:
				buf.Write(t.Label(src))
			case *ast.RawHTML:
			default:
				collect(c)
			}
		}
	}
	collect(n)
	return strings.TrimSpace(buf.String())
}

package parser

import (
	"strings"

	"github.com/dgallion1/grafbreak/internal/doctree"
)

// outline assembles a DocTree from a flat stream of headings and paragraphs.
// A heading of level n nests under the nearest preceding heading of lower level.
type outline struct {
	root  *doctree.DocNode
	stack []outlineEntry
}

type outlineEntry struct {
	node  *doctree.DocNode
	level int
}

func newOutline() *outline {
	root := &doctree.DocNode{}
	return &outline{root: root, stack: []outlineEntry{{node: root, level: 0}}}
}

func (o *outline) heading(level int, title string) {
	title = strings.TrimSpace(title)
	if title == "" {
		return
	}
	n := &doctree.DocNode{Title: title}
	for len(o.stack) > 1 && o.stack[len(o.stack)-1].level >= level {
		o.stack = o.stack[:len(o.stack)-1]
	}
	parent := o.stack[len(o.stack)-1].node
	parent.Children = append(parent.Children, n)
	o.stack = append(o.stack, outlineEntry{node: n, level: level})
}

func (o *outline) paragraph(text string, page int) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	parent := o.stack[len(o.stack)-1].node
	parent.Children = append(parent.Children, &doctree.DocNode{Text: text, Page: page})
}

func (o *outline) tree(title string) *doctree.DocTree {
	return &doctree.DocTree{Title: title, Children: o.root.Children}
}

// splitBlankLines separates text into blocks divided by one or more blank lines.
func splitBlankLines(text string) []string {
	var blocks []string
	var current strings.Builder
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			if current.Len() > 0 {
				blocks = append(blocks, current.String())
				current.Reset()
			}
			continue
		}
		if current.Len() > 0 {
			current.WriteString("\n")
		}
		current.WriteString(strings.TrimRight(line, " \t\r"))
	}
	if current.Len() > 0 {
		blocks = append(blocks, current.String())
	}
	return blocks
}

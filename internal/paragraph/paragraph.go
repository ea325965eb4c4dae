// Package paragraph flattens a parsed document into the paragraphs that get
// line-broken one at a time.
package paragraph

import (
	"strings"
	"unicode/utf8"

	"github.com/dgallion1/grafbreak/internal/doctree"
	"github.com/dgallion1/grafbreak/internal/metrics"
)

// Config controls which paragraphs are collected.
type Config struct {
	MinRunes int // Paragraphs shorter than this are dropped.
}

// DefaultConfig keeps every non-empty paragraph.
func DefaultConfig() Config {
	return Config{MinRunes: 1}
}

// Collect walks a DocTree in document order and returns its paragraphs with
// heading breadcrumbs. Parsers emit one leaf per paragraph, so each text
// node is one paragraph with its whitespace runs collapsed to a single space.
func Collect(tree *doctree.DocTree, cfg Config) []doctree.Paragraph {
	if tree == nil {
		return nil
	}
	if cfg.MinRunes <= 0 {
		cfg.MinRunes = 1
	}

	c := &collector{cfg: cfg}
	for _, child := range tree.Children {
		c.walk(child, nil)
	}
	return c.out
}

type collector struct {
	cfg Config
	out []doctree.Paragraph
}

func (c *collector) walk(node *doctree.DocNode, breadcrumb []string) {
	bc := breadcrumb
	if node.Title != "" {
		bc = append(copyBreadcrumb(breadcrumb), node.Title)
	}

	if text := Normalize(node.Text); text != "" && utf8.RuneCountInString(text) >= c.cfg.MinRunes {
		c.out = append(c.out, doctree.Paragraph{
			Text:       text,
			Index:      len(c.out),
			Breadcrumb: copyBreadcrumb(bc),
			Page:       node.Page,
		})
	}

	for _, child := range node.Children {
		c.walk(child, bc)
	}
}

// Normalize collapses every run of breakable whitespace to one space and trims
// the ends. No-break spaces are left in place.
func Normalize(text string) string {
	return strings.Join(strings.FieldsFunc(text, isBreakableSpace), " ")
}

func isBreakableSpace(r rune) bool {
	return metrics.IsBreakableSpace(string(r))
}

func copyBreadcrumb(bc []string) []string {
	if len(bc) == 0 {
		return nil
	}
	out := make([]string, len(bc))
	copy(out, bc)
	return out
}

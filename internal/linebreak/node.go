package linebreak

import (
	"github.com/dgallion1/grafbreak/internal/metrics"
	"github.com/rivo/uniseg"
)

// Kind tags the three node variants.
type Kind uint8

const (
	KindBox Kind = iota
	KindGlue
	KindPenalty
)

func (k Kind) String() string {
	switch k {
	case KindBox:
		return "box"
	case KindGlue:
		return "glue"
	case KindPenalty:
		return "penalty"
	default:
		return "unknown"
	}
}

// Node is a box, glue or penalty. Fields that do not apply to a kind stay zero.
type Node struct {
	Kind    Kind
	Width   int
	Stretch float64
	Shrink  float64
	Penalty int
	Flagged bool
}

// Box returns an unbreakable node of width w.
func Box(w int) Node { return Node{Kind: KindBox, Width: w} }

// Glue returns a breakable space.
func Glue(w int, stretch, shrink float64) Node {
	return Node{Kind: KindGlue, Width: w, Stretch: stretch, Shrink: shrink}
}

// Penalty returns an optional break costing p.
func Penalty(w, p int, flagged bool) Node {
	return Node{Kind: KindPenalty, Width: w, Penalty: p, Flagged: flagged}
}

// Build turns text into one node per grapheme cluster. ASCII whitespace becomes
// glue and an explicit hyphen becomes a flagged penalty; neither gets a box.
// No-break spaces are measured as boxes so a line never ends on one.
// Node i always stands for grapheme i, which Annotate relies on.
func Build(text string, opts Options) ([]Node, error) {
	nodes := make([]Node, 0, len(text))
	hyphen := metrics.HyphenPenalty()

	prev := ""
	gr := uniseg.NewGraphemes(text)
	for gr.Next() {
		g := gr.Str()
		pos := len(nodes)

		switch {
		case metrics.IsBreakableSpace(g):
			gl, ok := metrics.GlueFor(prev)
			if !ok {
				gl = metrics.WordGlue
			}
			nodes = append(nodes, Glue(gl.Width, gl.Stretch, gl.Shrink))
		case g == "-":
			nodes = append(nodes, Penalty(hyphen.Width, opts.HyphenPenalty, hyphen.Flagged))
		default:
			w, ok := metrics.WidthOf(g)
			if !ok {
				if opts.RejectUnknown {
					return nil, &UnrecognizedCharacterError{Position: pos, Grapheme: g}
				}
				w = 0
			}
			nodes = append(nodes, Box(w))
		}
		prev = g
	}
	return nodes, nil
}

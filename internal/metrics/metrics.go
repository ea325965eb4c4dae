package metrics

import (
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// Glue is the width and elasticity of an inter-word space.
type Glue struct {
	Width   int
	Stretch float64
	Shrink  float64
}

// Penalty is the cost and width of an optional break.
type Penalty struct {
	Width   int
	Value   int
	Flagged bool
}

// Character widths from Knuth and Plass, "Breaking Paragraphs Into Lines"
// (Digital Typography, p. 75). Uppercase letters other than C and I mirror
// their lowercase widths. Digits and the extra sentence punctuation are
// additions of ours.
var widths = map[string]int{
	"a": 9, "b": 10, "c": 8, "d": 10, "e": 8, "f": 6, "g": 9, "h": 10, "i": 5,
	"j": 6, "k": 10, "l": 5, "m": 15, "n": 10, "o": 9, "p": 10, "q": 10,
	"r": 7, "s": 7, "t": 7, "u": 10, "v": 9, "w": 13, "x": 10, "y": 10, "z": 8,

	"A": 9, "B": 10, "C": 13, "D": 10, "E": 8, "F": 6, "G": 9, "H": 10, "I": 6,
	"J": 6, "K": 10, "L": 5, "M": 15, "N": 10, "O": 9, "P": 10, "Q": 10,
	"R": 7, "S": 7, "T": 7, "U": 10, "V": 9, "W": 13, "X": 10, "Y": 10, "Z": 8,

	"0": 9, "1": 9, "2": 9, "3": 9, "4": 9, "5": 9, "6": 9, "7": 9, "8": 9, "9": 9,

	"-": 6, ",": 5, ";": 5, ".": 5, "'": 5, ":": 5, "!": 5, "?": 5,

	// No-break spaces are boxes. The figure space matches a digit.
	"\u00a0": 6, "\u202f": 3, "\u2007": 9,
}

var (
	WordGlue      = Glue{Width: 6, Stretch: 3, Shrink: 2}
	CommaGlue     = Glue{Width: 6, Stretch: 4, Shrink: 2}
	SemicolonGlue = Glue{Width: 6, Stretch: 4, Shrink: 1}
	PeriodGlue    = Glue{Width: 8, Stretch: 6, Shrink: 1}
)

var glue = map[string]Glue{
	" ": WordGlue,
	",": CommaGlue,
	";": SemicolonGlue,
	".": PeriodGlue,
	"!": PeriodGlue,
	"?": PeriodGlue,
}

// DefaultHyphenPenalty is the cost of ending a line at an explicit hyphen.
const DefaultHyphenPenalty = 50

// WidthOf returns the typeset width of a grapheme. Graphemes outside the
// table are decomposed and measured by their base character, so a
// precomposed or combining "é" measures like "e".
func WidthOf(g string) (int, bool) {
	if w, ok := widths[g]; ok {
		return w, true
	}
	base, ok := baseOf(g)
	if !ok {
		return 0, false
	}
	w, ok := widths[base]
	return w, ok
}

// GlueFor returns the glue that follows g. A space yields word glue; the
// sentence punctuation yields the glue that belongs after it.
func GlueFor(g string) (Glue, bool) {
	gl, ok := glue[g]
	return gl, ok
}

// IsBreakableSpace reports whether g is whitespace a line may end on. Only
// ASCII space, tab and line endings qualify; other Unicode spaces do not.
func IsBreakableSpace(g string) bool {
	switch g {
	case " ", "\t", "\n", "\r", "\r\n", "\v", "\f":
		return true
	}
	return false
}

// HyphenPenalty is the flagged penalty used for an explicit hyphen.
func HyphenPenalty() Penalty {
	return Penalty{Width: widths["-"], Value: DefaultHyphenPenalty, Flagged: true}
}

// baseOf strips combining marks from the canonical decomposition of g.
func baseOf(g string) (string, bool) {
	d := norm.NFD.String(g)
	r, size := utf8.DecodeRuneInString(d)
	if r == utf8.RuneError || size == len(d) && d == g {
		return "", false
	}
	for _, m := range d[size:] {
		if !unicode.Is(unicode.Mn, m) {
			return "", false
		}
	}
	return string(r), true
}

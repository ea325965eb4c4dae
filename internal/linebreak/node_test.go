package linebreak

import (
	"errors"
	"testing"
)

func TestBuild_OneNodePerGrapheme(t *testing.T) {
	nodes, err := Build("lime-tree, ok", DefaultOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(nodes) != 13 {
		t.Fatalf("expected 13 nodes, got %d", len(nodes))
	}

	want := []Kind{
		KindBox, KindBox, KindBox, KindBox, KindPenalty,
		KindBox, KindBox, KindBox, KindBox, KindBox,
		KindGlue, KindBox, KindBox,
	}
	for i, k := range want {
		if nodes[i].Kind != k {
			t.Errorf("node %d: expected %s, got %s", i, k, nodes[i].Kind)
		}
	}
}

func TestBuild_HyphenIsFlaggedPenalty(t *testing.T) {
	opts := DefaultOptions()
	opts.HyphenPenalty = 120
	nodes, err := Build("a-b", opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	p := nodes[1]
	if p.Kind != KindPenalty || !p.Flagged {
		t.Fatalf("expected flagged penalty, got %+v", p)
	}
	if p.Penalty != 120 {
		t.Errorf("expected configured penalty 120, got %d", p.Penalty)
	}
	if p.Width != 6 {
		t.Errorf("expected hyphen width 6, got %d", p.Width)
	}
}

func TestBuild_GlueFollowsPunctuation(t *testing.T) {
	nodes, err := Build("a, b; c. d e", DefaultOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tests := []struct {
		idx     int
		width   int
		stretch float64
		shrink  float64
	}{
		{2, 6, 4, 2},  // after comma
		{5, 6, 4, 1},  // after semicolon
		{8, 8, 6, 1},  // after period
		{10, 6, 3, 2}, // between words
	}
	for _, tt := range tests {
		n := nodes[tt.idx]
		if n.Kind != KindGlue || n.Width != tt.width || n.Stretch != tt.stretch || n.Shrink != tt.shrink {
			t.Errorf("node %d: expected glue (%d,%g,%g), got %+v", tt.idx, tt.width, tt.stretch, tt.shrink, n)
		}
	}
}

func TestBuild_WhitespaceBecomesGlue(t *testing.T) {
	nodes, err := Build("a\nb\tc\r\nd", DefaultOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(nodes) != 7 {
		t.Fatalf("expected 7 nodes, got %d", len(nodes))
	}
	for _, i := range []int{1, 3, 5} {
		if nodes[i].Kind != KindGlue {
			t.Errorf("node %d: expected glue, got %s", i, nodes[i].Kind)
		}
	}
}

func TestBuild_NoBreakSpacesAreBoxes(t *testing.T) {
	tests := []struct {
		name  string
		space string
		width int
	}{
		{"no-break space", "\u00a0", 6},
		{"narrow no-break space", "\u202f", 3},
		{"figure space", "\u2007", 9},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			opts.RejectUnknown = true
			nodes, err := Build("a"+tt.space+"b", opts)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if nodes[1].Kind != KindBox || nodes[1].Width != tt.width {
				t.Errorf("expected box of width %d, got %+v", tt.width, nodes[1])
			}
		})
	}
}

func TestLayout_NeverBreaksAtNoBreakSpace(t *testing.T) {
	// Plain spaces here would break at [2 5]; with no-break spaces the
	// paragraph cannot be split and overflows the line instead.
	_, err := New(optsAt(26, 10)).Layout("aa\u00a0bb\u00a0cc")
	if !errors.Is(err, ErrNoFeasibleBreak) {
		t.Fatalf("expected ErrNoFeasibleBreak, got %v", err)
	}

	res, err := New(optsAt(500, 10)).Layout("aa\u00a0bb cc")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Positions) != 0 {
		t.Errorf("expected no breaks, got %v", res.Positions)
	}

	// "aa\u00a0bb " is exactly 50 wide; the rest fits on a filled last line.
	res, err = New(optsAt(50, 10)).Layout("aa\u00a0bb cc\u00a0dd")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Positions) != 1 || res.Positions[0] != 5 {
		t.Errorf("expected the only break at the plain space (5), got %v", res.Positions)
	}
}

func TestBuild_MultiByteGraphemes(t *testing.T) {
	// Precomposed and combining forms are each a single grapheme.
	nodes, err := Build("\u00e9 e\u0301", DefaultOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(nodes) != 3 {
		t.Fatalf("expected 3 nodes, got %d", len(nodes))
	}
	if nodes[0].Width != 8 || nodes[2].Width != 8 {
		t.Errorf("expected accented e to measure like e, got %d and %d", nodes[0].Width, nodes[2].Width)
	}
}

func TestBuild_UnknownPlaceholder(t *testing.T) {
	nodes, err := Build("a@b", DefaultOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(nodes) != 3 {
		t.Fatalf("expected placeholder to keep 3 nodes, got %d", len(nodes))
	}
	if nodes[1].Kind != KindBox || nodes[1].Width != 0 {
		t.Errorf("expected zero-width box placeholder, got %+v", nodes[1])
	}
}

func TestBuild_UnknownRejected(t *testing.T) {
	opts := DefaultOptions()
	opts.RejectUnknown = true

	_, err := Build("ab\U0001F600c", opts)
	if !errors.Is(err, ErrUnrecognizedCharacter) {
		t.Fatalf("expected ErrUnrecognizedCharacter, got %v", err)
	}
	var uc *UnrecognizedCharacterError
	if !errors.As(err, &uc) {
		t.Fatalf("expected *UnrecognizedCharacterError, got %T", err)
	}
	if uc.Position != 2 {
		t.Errorf("expected position 2, got %d", uc.Position)
	}
	if uc.Grapheme != "\U0001F600" {
		t.Errorf("expected offending grapheme, got %q", uc.Grapheme)
	}
}

func TestKindString(t *testing.T) {
	tests := []struct {
		k    Kind
		want string
	}{
		{KindBox, "box"},
		{KindGlue, "glue"},
		{KindPenalty, "penalty"},
		{Kind(9), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.k.String(); got != tt.want {
			t.Errorf("Kind(%d).String() = %q, want %q", tt.k, got, tt.want)
		}
	}
}

package metrics

import "testing"

func TestWidthOf(t *testing.T) {
	tests := []struct {
		name string
		g    string
		want int
		ok   bool
	}{
		{"lowercase m", "m", 15, true},
		{"uppercase C", "C", 13, true},
		{"uppercase I", "I", 6, true},
		{"uppercase mirrors lowercase", "W", 13, true},
		{"hyphen", "-", 6, true},
		{"comma", ",", 5, true},
		{"apostrophe", "'", 5, true},
		{"digit", "7", 9, true},
		{"precomposed e acute", "\u00e9", 8, true},
		{"combining e acute", "e\u0301", 8, true},
		{"space has no box", " ", 0, false},
		{"no-break space", "\u00a0", 6, true},
		{"figure space", "\u2007", 9, true},
		{"unknown symbol", "@", 0, false},
		{"emoji", "\U0001F600", 0, false},
		{"empty", "", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := WidthOf(tt.g)
			if ok != tt.ok || got != tt.want {
				t.Errorf("WidthOf(%q) = (%d, %v), want (%d, %v)", tt.g, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestGlueFor(t *testing.T) {
	tests := []struct {
		g    string
		want Glue
		ok   bool
	}{
		{" ", Glue{Width: 6, Stretch: 3, Shrink: 2}, true},
		{",", Glue{Width: 6, Stretch: 4, Shrink: 2}, true},
		{";", Glue{Width: 6, Stretch: 4, Shrink: 1}, true},
		{".", Glue{Width: 8, Stretch: 6, Shrink: 1}, true},
		{"?", PeriodGlue, true},
		{"a", Glue{}, false},
	}

	for _, tt := range tests {
		got, ok := GlueFor(tt.g)
		if ok != tt.ok || got != tt.want {
			t.Errorf("GlueFor(%q) = (%+v, %v), want (%+v, %v)", tt.g, got, ok, tt.want, tt.ok)
		}
	}
}

func TestHyphenPenalty(t *testing.T) {
	p := HyphenPenalty()
	if p.Value != 50 {
		t.Errorf("expected penalty 50, got %d", p.Value)
	}
	if p.Width != 6 {
		t.Errorf("expected hyphen width 6, got %d", p.Width)
	}
	if !p.Flagged {
		t.Error("expected hyphen penalty to be flagged")
	}
}

func TestIsBreakableSpace(t *testing.T) {
	tests := []struct {
		g    string
		want bool
	}{
		{" ", true},
		{"\t", true},
		{"\n", true},
		{"\r\n", true},
		{"\u00a0", false},
		{"\u202f", false},
		{"\u2007", false},
		{"\u2003", false},
		{"a", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsBreakableSpace(tt.g); got != tt.want {
			t.Errorf("IsBreakableSpace(%q) = %v, want %v", tt.g, got, tt.want)
		}
	}
}

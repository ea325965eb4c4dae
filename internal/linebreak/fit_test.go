package linebreak

import (
	"math"
	"testing"
)

func TestAdjustmentRatio(t *testing.T) {
	from := Breakpoint{TotalWidth: 100, TotalStretch: 10, TotalShrink: 4}

	tests := []struct {
		name string
		to   Breakpoint
		want float64
	}{
		{"exact fit", Breakpoint{TotalWidth: 150, TotalStretch: 16, TotalShrink: 8}, 0},
		{"stretch", Breakpoint{TotalWidth: 140, TotalStretch: 15, TotalShrink: 6}, 2},
		{"shrink", Breakpoint{TotalWidth: 153, TotalStretch: 16, TotalShrink: 8}, -0.75},
		{"no stretch", Breakpoint{TotalWidth: 140, TotalStretch: 10, TotalShrink: 6}, math.Inf(1)},
		{"no shrink", Breakpoint{TotalWidth: 160, TotalStretch: 16, TotalShrink: 4}, math.Inf(-1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AdjustmentRatio(from, tt.to, 50)
			if got != tt.want {
				t.Errorf("AdjustmentRatio = %g, want %g", got, tt.want)
			}
		})
	}
}

func TestFeasible(t *testing.T) {
	tests := []struct {
		r, max float64
		want   bool
	}{
		{0, 10, true},
		{-1, 10, true},
		{-1.01, 10, false},
		{10, 10, true},
		{10.5, 10, false},
		{math.Inf(1), 10, false},
		{math.Inf(-1), 10, false},
		{0.5, 0, false},
	}
	for _, tt := range tests {
		if got := Feasible(tt.r, tt.max); got != tt.want {
			t.Errorf("Feasible(%g, %g) = %v, want %v", tt.r, tt.max, got, tt.want)
		}
	}
}

func TestLineRatio_LastLineFill(t *testing.T) {
	from := Breakpoint{TotalWidth: 100}
	short := Breakpoint{TotalWidth: 120, Forced: true}
	if r := lineRatio(from, short, 50); r != 0 {
		t.Errorf("expected short last line to fit, got %g", r)
	}

	long := Breakpoint{TotalWidth: 160, TotalShrink: 4, Forced: true}
	if r := lineRatio(from, long, 50); r != -2.5 {
		t.Errorf("expected overlong last line to shrink, got %g", r)
	}
}

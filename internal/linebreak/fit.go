package linebreak

import "math"

// LineWidth is the natural width of the line from one breakpoint to the next.
func LineWidth(from, to Breakpoint) int {
	return to.TotalWidth - from.TotalWidth
}

// AdjustmentRatio is the share of the line's stretch (positive) or shrink
// (negative) needed to set it at target. A line that must change size but
// has no elasticity reports +Inf or -Inf.
func AdjustmentRatio(from, to Breakpoint, target int) float64 {
	width := LineWidth(from, to)
	switch {
	case width < target:
		stretch := to.TotalStretch - from.TotalStretch
		if stretch <= 0 {
			return math.Inf(1)
		}
		return float64(target-width) / stretch
	case width > target:
		shrink := to.TotalShrink - from.TotalShrink
		if shrink <= 0 {
			return math.Inf(-1)
		}
		return -float64(width-target) / shrink
	default:
		return 0
	}
}

// Feasible reports whether ratio lies in [-1, ratioMax].
func Feasible(ratio, ratioMax float64) bool {
	return ratio >= -1 && ratio <= ratioMax
}

// lineRatio is AdjustmentRatio with paragraph fill: the last line is never
// stretched, so a short last line fits exactly.
func lineRatio(from, to Breakpoint, target int) float64 {
	if to.Forced && LineWidth(from, to) <= target {
		return 0
	}
	return AdjustmentRatio(from, to, target)
}

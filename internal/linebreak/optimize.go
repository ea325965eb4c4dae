package linebreak

import "math"

// Path is the optimizer's breakpoint arena and the index of the terminal
// breakpoint in it. Predecessor fields index into Arena.
type Path struct {
	Arena    []Breakpoint
	Terminal int
}

// Optimize runs the active-breakpoint search over a feasible set produced by
// Scan. The feasible slice is not modified; chosen breakpoints are copied
// into the returned arena.
func Optimize(feasible []Breakpoint, opts Options) (*Path, error) {
	arena := []Breakpoint{start()}
	active := []int{0}

	for _, b := range feasible {
		best := noPredecessor
		bestTotal := math.Inf(1)

		next := make([]int, 0, len(active)+1)
		for _, ai := range active {
			a := arena[ai]
			r := lineRatio(a, b, opts.TargetWidth)

			if Feasible(r, opts.RatioMax) {
				total := a.TotalDemerits + demerits(r, a, b, opts)
				if total < bestTotal {
					best, bestTotal = ai, total
				}
			}
			// Lines from a only get longer, so a too-tight a never recovers.
			if r >= -1 && !b.Forced {
				next = append(next, ai)
			}
		}

		if best != noPredecessor {
			nb := b
			nb.TotalDemerits = bestTotal
			nb.Predecessor = best
			nb.Line = arena[best].Line + 1
			arena = append(arena, nb)
			if b.Forced {
				return &Path{Arena: arena, Terminal: len(arena) - 1}, nil
			}
			next = append(next, len(arena)-1)
		}

		if len(next) == 0 {
			return nil, &NoFeasibleBreakError{RatioMax: opts.RatioMax, Position: b.Position}
		}
		active = next
	}

	// Scan always ends with a forced breakpoint, so only an empty feasible
	// set gets here.
	return nil, &NoFeasibleBreakError{RatioMax: opts.RatioMax}
}

// demerits is the cost of a line from a to b set at ratio r.
func demerits(r float64, a, b Breakpoint, opts Options) float64 {
	d := 100 * math.Pow(math.Abs(r), 3)
	if !b.Forced {
		d += float64(b.Penalty)
	}
	if a.Flagged && b.Flagged {
		d += opts.FlaggedDemerits
	}
	if b.Forced && a.Flagged {
		d += opts.FinalHyphenDemerits
	}
	return d
}

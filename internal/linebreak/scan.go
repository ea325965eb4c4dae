package linebreak

// noPredecessor marks a breakpoint that starts the paragraph.
const noPredecessor = -1

// Breakpoint is a place a line may end. Position is the index of the node
// the line ends with. Totals are prefix sums from the paragraph start
// through that node.
type Breakpoint struct {
	Position      int
	Line          int
	TotalWidth    int
	TotalStretch  float64
	TotalShrink   float64
	TotalDemerits float64
	Predecessor   int // arena index, noPredecessor for the start

	Penalty int
	Flagged bool
	Forced  bool // end of paragraph
}

// start is the implicit breakpoint before the first node.
func start() Breakpoint {
	return Breakpoint{Predecessor: noPredecessor}
}

// Scan returns the feasible breakpoints of nodes in order. A glue preceded by
// a box or a flagged penalty is feasible. The last element is always the
// forced end of the paragraph; a feasible node in last place is folded into it.
// Scan returns nil for an empty sequence.
func Scan(nodes []Node) []Breakpoint {
	if len(nodes) == 0 {
		return nil
	}

	var (
		feasible []Breakpoint
		width    int
		stretch  float64
		shrink   float64
	)
	last := len(nodes) - 1
	for i, n := range nodes {
		width += n.Width
		stretch += n.Stretch
		shrink += n.Shrink

		if i == last || !isFeasible(nodes, i) {
			continue
		}
		feasible = append(feasible, Breakpoint{
			Position:     i,
			TotalWidth:   width,
			TotalStretch: stretch,
			TotalShrink:  shrink,
			Predecessor:  noPredecessor,
			Penalty:      penaltyOf(n),
			Flagged:      n.Flagged,
		})
	}

	return append(feasible, Breakpoint{
		Position:     last,
		TotalWidth:   width,
		TotalStretch: stretch,
		TotalShrink:  shrink,
		Predecessor:  noPredecessor,
		Forced:       true,
	})
}

func isFeasible(nodes []Node, i int) bool {
	switch nodes[i].Kind {
	case KindGlue:
		return i > 0 && nodes[i-1].Kind == KindBox
	case KindPenalty:
		return nodes[i].Flagged
	default:
		return false
	}
}

func penaltyOf(n Node) int {
	if n.Kind != KindPenalty {
		return 0
	}
	return n.Penalty
}

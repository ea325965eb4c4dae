package linebreak

import (
	"sort"

	"github.com/rivo/uniseg"
)

// DefaultMarker is the soft hyphen.
const DefaultMarker = "\u00ad"

// Reconstruct walks predecessor links back from the terminal breakpoint and
// returns the chosen break positions in increasing order. The terminal
// itself is the end of the paragraph and is not included.
func Reconstruct(p *Path) []int {
	if p == nil {
		return nil
	}
	var positions []int
	// The start breakpoint is the only one without a predecessor.
	for i := p.Arena[p.Terminal].Predecessor; i != noPredecessor && p.Arena[i].Predecessor != noPredecessor; i = p.Arena[i].Predecessor {
		positions = append(positions, p.Arena[i].Position)
	}
	for l, r := 0, len(positions)-1; l < r; l, r = l+1, r-1 {
		positions[l], positions[r] = positions[r], positions[l]
	}
	return positions
}

// Annotate inserts marker after the grapheme at each position. Insertion
// runs from the highest position down so byte offsets computed on the
// original text stay valid. Positions outside the text are ignored.
func Annotate(text string, positions []int, marker string) string {
	if len(positions) == 0 || marker == "" {
		return text
	}

	// ends[i] is the byte offset just past grapheme i.
	var ends []int
	state := -1
	rest := text
	offset := 0
	for len(rest) > 0 {
		var cluster string
		cluster, rest, _, state = uniseg.FirstGraphemeClusterInString(rest, state)
		offset += len(cluster)
		ends = append(ends, offset)
	}

	desc := append([]int(nil), positions...)
	sort.Sort(sort.Reverse(sort.IntSlice(desc)))

	out := []byte(text)
	prev := -1
	for _, pos := range desc {
		if pos < 0 || pos >= len(ends) || pos == prev {
			continue
		}
		prev = pos
		at := ends[pos]
		out = append(out[:at], append([]byte(marker), out[at:]...)...)
	}
	return string(out)
}

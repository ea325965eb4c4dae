package linebreak

import "github.com/dgallion1/grafbreak/internal/metrics"

// Options controls a layout pass.
type Options struct {
	TargetWidth         int     // line width in typesetting units
	RatioMax            float64 // loosest acceptable adjustment ratio
	HyphenPenalty       int     // cost of ending a line at a hyphen
	FlaggedDemerits     float64 // two hyphenated lines in a row
	FinalHyphenDemerits float64 // hyphenated line right before the last line
	Marker              string  // inserted at every chosen break
	RejectUnknown       bool    // fail on graphemes missing from the metrics table
}

// DefaultOptions returns the Knuth-Plass example settings.
func DefaultOptions() Options {
	return Options{
		TargetWidth:         390,
		RatioMax:            10,
		HyphenPenalty:       metrics.DefaultHyphenPenalty,
		FlaggedDemerits:     3000,
		FinalHyphenDemerits: 5000,
		Marker:              DefaultMarker,
	}
}

// Line describes one line of a finished layout. Start and End are node
// (grapheme) indices, both inclusive.
type Line struct {
	Start    int     `json:"start"`
	End      int     `json:"end"`
	Width    int     `json:"width"`
	Ratio    float64 `json:"ratio"`
	Demerits float64 `json:"demerits"`
}

// Result is the outcome of breaking one paragraph.
type Result struct {
	Annotated string  `json:"annotated"`
	Positions []int   `json:"positions"`
	Lines     []Line  `json:"lines"`
	Demerits  float64 `json:"demerits"`
}

// Breaker lays out paragraphs with fixed options. It holds no per-call
// state and is safe for concurrent use.
type Breaker struct {
	opts Options
}

// New returns a Breaker. Zero-valued width, tolerance and marker fall back
// to DefaultOptions.
func New(opts Options) *Breaker {
	def := DefaultOptions()
	if opts.TargetWidth <= 0 {
		opts.TargetWidth = def.TargetWidth
	}
	if opts.RatioMax < 0 {
		opts.RatioMax = def.RatioMax
	}
	if opts.Marker == "" {
		opts.Marker = def.Marker
	}
	return &Breaker{opts: opts}
}

// Options returns the effective options.
func (b *Breaker) Options() Options { return b.opts }

// Layout breaks text into lines. Empty text yields an empty result with the
// text unchanged.
func (b *Breaker) Layout(text string) (*Result, error) {
	if text == "" {
		return &Result{Annotated: text, Positions: []int{}, Lines: []Line{}}, nil
	}

	nodes, err := Build(text, b.opts)
	if err != nil {
		return nil, err
	}
	path, err := Optimize(Scan(nodes), b.opts)
	if err != nil {
		return nil, err
	}

	positions := Reconstruct(path)
	if positions == nil {
		positions = []int{}
	}
	return &Result{
		Annotated: Annotate(text, positions, b.opts.Marker),
		Positions: positions,
		Lines:     lines(path, b.opts),
		Demerits:  path.Arena[path.Terminal].TotalDemerits,
	}, nil
}

// Break returns text with a marker at every chosen break.
func (b *Breaker) Break(text string) (string, error) {
	res, err := b.Layout(text)
	if err != nil {
		return "", err
	}
	return res.Annotated, nil
}

// BreakParagraph breaks text with default options at the given width and
// ratio tolerance.
func BreakParagraph(text string, targetWidth int, ratioMax float64) (string, error) {
	opts := DefaultOptions()
	opts.TargetWidth = targetWidth
	opts.RatioMax = ratioMax
	return New(opts).Break(text)
}

// lines lists the chosen path from the first line to the last.
func lines(p *Path, opts Options) []Line {
	var chain []int
	for i := p.Terminal; i != noPredecessor; i = p.Arena[i].Predecessor {
		chain = append(chain, i)
	}

	out := make([]Line, 0, len(chain)-1)
	for k := len(chain) - 1; k > 0; k-- {
		from, to := p.Arena[chain[k]], p.Arena[chain[k-1]]
		startAt := from.Position + 1
		if from.Predecessor == noPredecessor {
			startAt = 0
		}
		out = append(out, Line{
			Start:    startAt,
			End:      to.Position,
			Width:    LineWidth(from, to),
			Ratio:    lineRatio(from, to, opts.TargetWidth),
			Demerits: to.TotalDemerits - from.TotalDemerits,
		})
	}
	return out
}

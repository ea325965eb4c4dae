package linebreak

import (
	"errors"
	"fmt"
)

// Sentinel errors for errors.Is checks.
var (
	ErrUnrecognizedCharacter = errors.New("linebreak: unrecognized character")
	ErrNoFeasibleBreak       = errors.New("linebreak: no feasible break")
)

// UnrecognizedCharacterError reports a grapheme missing from the metrics
// table when unknown characters are rejected.
type UnrecognizedCharacterError struct {
	Position int // grapheme index
	Grapheme string
}

func (e *UnrecognizedCharacterError) Error() string {
	return fmt.Sprintf("linebreak: unrecognized character %q at position %d", e.Grapheme, e.Position)
}

func (e *UnrecognizedCharacterError) Is(target error) bool {
	return target == ErrUnrecognizedCharacter
}

// NoFeasibleBreakError is returned when no set of breaks keeps every line
// within the ratio tolerance. Position is the node where the search ran dry.
type NoFeasibleBreakError struct {
	RatioMax float64
	Position int
}

func (e *NoFeasibleBreakError) Error() string {
	return fmt.Sprintf("linebreak: no feasible break at node %d with ratio tolerance %g", e.Position, e.RatioMax)
}

func (e *NoFeasibleBreakError) Is(target error) bool {
	return target == ErrNoFeasibleBreak
}

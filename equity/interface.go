// Package equity scores positions that the search does not play out to the
// end.
package equity

import (
	"github.com/domino14/gridgame/board"
	"github.com/domino14/gridgame/lines"
)

// Evaluator is a static evaluator. The score is from self's point of
// view; larger is better for self.
type Evaluator interface {
	Evaluate(g lines.Grid, self board.Token) int
}

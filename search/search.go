// Package search holds what the two tree explorers have in common, so a
// caller can swap one exploration strategy for another.
package search

import (
	"fmt"

	"github.com/domino14/gridgame/board"
)

// Infinity is the value of a won position. Every heuristic score stays
// well inside it.
const Infinity = 10000000

// Result is the outcome of one search: the score of the position for the
// side that asked, and the recommended move. Row and Col are -1 when no
// move was found.
type Result struct {
	Score int
	Row   int
	Col   int
	Nodes uint64
}

// NoMove is the result of a search that found nothing to play.
func NoMove(score int) Result {
	return Result{Score: score, Row: -1, Col: -1}
}

// HasMove is false when the search could not recommend anything.
func (r Result) HasMove() bool {
	return r.Col >= 0
}

func (r Result) String() string {
	return fmt.Sprintf("<score: %d row: %d col: %d nodes: %d>", r.Score, r.Row, r.Col, r.Nodes)
}

// Explorer searches the game tree below b for the best move for who.
// Implementations must leave b as they found it.
type Explorer interface {
	Solve(b *board.Board, who board.Token) Result
}

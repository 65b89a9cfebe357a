package equity

import (
	"github.com/domino14/gridgame/board"
	"github.com/domino14/gridgame/lines"
)

// OpenPathCalculator is the mobility heuristic for the free-placement
// game: lines self can still complete minus lines the opponent can.
type OpenPathCalculator struct{}

func (OpenPathCalculator) Evaluate(g lines.Grid, self board.Token) int {
	return OpenPaths(g, self) - OpenPaths(g, self.Opponent())
}

// OpenPaths counts the whole lines (rows, columns and the two long
// diagonals) that hold no opponent token.
func OpenPaths(g lines.Grid, who board.Token) int {
	n := g.Width()
	opp := who.Opponent()
	paths := 0
	for _, line := range lines.All(g, n) {
		if len(line) != n {
			continue
		}
		open := true
		for _, t := range line {
			if t == opp {
				open = false
				break
			}
		}
		if open {
			paths++
		}
	}
	return paths
}

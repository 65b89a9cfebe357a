// Package rules decides when a position is over.
package rules

import (
	"github.com/domino14/gridgame/board"
	"github.com/domino14/gridgame/lines"
)

// RunLength is how many tokens in a row win the gravity game. The
// free-placement game needs a whole line, i.e. the board dimension.
const RunLength = 4

// HasWin is true if any window of n cells on any line holds n copies of
// the same player's token.
func HasWin(g lines.Grid, n int) bool {
	_, ok := Winner(g, n)
	return ok
}

// Winner returns the token that completed a run of n, if any. If somehow
// both players have one, the first run found is reported.
func Winner(g lines.Grid, n int) (board.Token, bool) {
	if n <= 0 {
		return board.Empty, false
	}
	for _, line := range lines.All(g, n) {
		for k := 0; k+n <= len(line); k++ {
			if t, ok := homogeneous(line[k : k+n]); ok {
				return t, true
			}
		}
	}
	return board.Empty, false
}

// HasWinFor is true if t has a run of n.
func HasWinFor(g lines.Grid, n int, t board.Token) bool {
	if n <= 0 {
		return false
	}
	for _, line := range lines.All(g, n) {
		for k := 0; k+n <= len(line); k++ {
			if w, ok := homogeneous(line[k : k+n]); ok && w == t {
				return true
			}
		}
	}
	return false
}

func homogeneous(w []board.Token) (board.Token, bool) {
	if len(w) == 0 {
		return board.Empty, false
	}
	first := w[0]
	if first == board.Empty {
		return board.Empty, false
	}
	for _, t := range w[1:] {
		if t != first {
			return board.Empty, false
		}
	}
	return first, true
}

// IsFull is true when no column has an empty top cell. On a gravity board
// that means no cell is empty; free-placement callers count cells instead.
func IsFull(g lines.Grid) bool {
	for c := 0; c < g.Width(); c++ {
		if g.Column(c)[0] == board.Empty {
			return false
		}
	}
	return true
}

// IsEmpty is true when every bottom cell is empty. For a gravity board
// that means no token has been played.
func IsEmpty(g lines.Grid) bool {
	for c := 0; c < g.Width(); c++ {
		col := g.Column(c)
		if col[len(col)-1] != board.Empty {
			return false
		}
	}
	return true
}

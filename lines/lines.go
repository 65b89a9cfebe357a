// Package lines derives the rows, columns and diagonals of a grid. Win
// detection and evaluation both work off these.
package lines

import "github.com/domino14/gridgame/board"

// Grid is what the extractor needs from a board.
type Grid interface {
	Width() int
	Height() int
	// Column returns column i from top to bottom.
	Column(i int) []board.Token
	// Line returns row i from left to right.
	Line(i int) []board.Token
	// Diagonals returns all diagonals, in both directions, of at least
	// minLen cells.
	Diagonals(minLen int) [][]board.Token
}

// All returns every row, then every column, then every diagonal of at
// least minLen cells.
func All(g Grid, minLen int) [][]board.Token {
	diags := g.Diagonals(minLen)
	out := make([][]board.Token, 0, g.Height()+g.Width()+len(diags))
	for i := 0; i < g.Height(); i++ {
		out = append(out, g.Line(i))
	}
	for i := 0; i < g.Width(); i++ {
		out = append(out, g.Column(i))
	}
	return append(out, diags...)
}

// Windows returns the contiguous slices of length n of a line. The slices
// share storage with the line.
func Windows(line []board.Token, n int) [][]board.Token {
	if n <= 0 || len(line) < n {
		return nil
	}
	out := make([][]board.Token, 0, len(line)-n+1)
	for k := 0; k+n <= len(line); k++ {
		out = append(out, line[k:k+n])
	}
	return out
}

// EachWindow calls fn for every length-n window of every line of g. It
// saves the allocations of building the window list.
func EachWindow(g Grid, n int, fn func(w []board.Token)) {
	for _, line := range All(g, n) {
		for k := 0; k+n <= len(line); k++ {
			fn(line[k : k+n])
		}
	}
}

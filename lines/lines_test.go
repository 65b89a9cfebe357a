package lines_test

import (
	"testing"

	"github.com/matryer/is"

	"github.com/domino14/gridgame/board"
	"github.com/domino14/gridgame/lines"
)

func TestAllConnectFour(t *testing.T) {
	is := is.New(t)
	b := board.NewConnectFourBoard()
	all := lines.All(b, 4)
	// 6 rows, 7 columns, 12 diagonals.
	is.Equal(len(all), 25)
	is.Equal(len(all[0]), 7)
	is.Equal(len(all[6]), 6)

	windows := 0
	lines.EachWindow(b, 4, func(w []board.Token) {
		is.Equal(len(w), 4)
		windows++
	})
	is.Equal(windows, 69)
}

func TestAllTicTacToe(t *testing.T) {
	is := is.New(t)
	b, err := board.FromNotation("XO1/1X1/O2")
	is.NoErr(err)
	all := lines.All(b, 3)
	is.Equal(len(all), 8)
	is.Equal(all[0], []board.Token{board.PlayerA, board.PlayerB, board.Empty})
	// first column, top to bottom
	is.Equal(all[3], []board.Token{board.PlayerA, board.Empty, board.PlayerB})
	// main diagonal
	is.Equal(all[6], []board.Token{board.PlayerA, board.PlayerA, board.Empty})
}

func TestWindows(t *testing.T) {
	is := is.New(t)
	line := []board.Token{board.PlayerA, board.PlayerB, board.Empty, board.PlayerA, board.PlayerA}
	ws := lines.Windows(line, 4)
	is.Equal(len(ws), 2)
	is.Equal(ws[1], []board.Token{board.PlayerB, board.Empty, board.PlayerA, board.PlayerA})
	is.Equal(len(lines.Windows(line, 6)), 0)
	is.Equal(len(lines.Windows(line, 0)), 0)
}

func TestExtractionDoesNotMutate(t *testing.T) {
	is := is.New(t)
	b, err := board.FromNotation("7/7/7/7/2O4/1XXO3")
	is.NoErr(err)
	before := b.Copy()
	for _, l := range lines.All(b, 4) {
		for i := range l {
			l[i] = board.PlayerB
		}
	}
	is.True(b.Equals(before))
}

package game

import (
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/matryer/is"
	"github.com/rs/zerolog"

	"github.com/domino14/gridgame/board"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	os.Exit(m.Run())
}

func TestNewGame(t *testing.T) {
	is := is.New(t)
	g, err := New(VariantConnectFour)
	is.NoErr(err)
	is.Equal(g.Board().Width(), 7)
	is.Equal(g.Board().Height(), 6)
	is.Equal(g.OnTurn(), board.PlayerA)
	is.Equal(g.RunLength(), 4)
	is.True(!g.Over())
	is.True(g.Uid() != "")

	g, err = New(VariantTicTacToe)
	is.NoErr(err)
	is.Equal(g.Board().Width(), 3)
	is.Equal(g.RunLength(), 3)

	_, err = New("chess")
	is.True(errors.Is(err, ErrUnknownVariant))
}

func TestParseVariant(t *testing.T) {
	is := is.New(t)
	v, err := ParseVariant("connect4")
	is.NoErr(err)
	is.Equal(v, VariantConnectFour)
	v, err = ParseVariant("ttt")
	is.NoErr(err)
	is.Equal(v, VariantTicTacToe)
	_, err = ParseVariant("go")
	is.True(errors.Is(err, ErrUnknownVariant))
}

func TestConnectFourWin(t *testing.T) {
	is := is.New(t)
	g, _ := New(VariantConnectFour)
	// X builds a column on 3, O answers on 4
	for _, col := range []int{3, 4, 3, 4, 3, 4} {
		is.NoErr(g.PlayColumn(col))
	}
	is.True(!g.Over())
	is.Equal(g.OnTurn(), board.PlayerA)
	is.NoErr(g.PlayColumn(3))
	is.True(g.Over())
	w, ok := g.Winner()
	is.True(ok)
	is.Equal(w, board.PlayerA)
	// the winner stays on turn
	is.Equal(g.OnTurn(), board.PlayerA)
	is.Equal(g.Turn(), 7)

	last, ok := g.LastTurn()
	is.True(ok)
	is.Equal(last, Turn{Player: board.PlayerA, Row: 2, Col: 3})

	is.True(errors.Is(g.PlayColumn(0), ErrGameOver))
	is.True(errors.Is(g.PlayCell(0, 0), ErrWrongVariant))
}

func TestConnectFourErrors(t *testing.T) {
	is := is.New(t)
	g, _ := New(VariantConnectFour)
	is.True(errors.Is(g.PlayColumn(7), board.ErrColumnOutOfRange))
	for i := 0; i < 6; i++ {
		is.NoErr(g.PlayColumn(0))
	}
	is.True(errors.Is(g.PlayColumn(0), board.ErrColumnFull))
	// a failed move does not pass the turn
	is.Equal(g.OnTurn(), board.PlayerA)
	is.Equal(len(g.History()), 6)
}

func TestTicTacToeDraw(t *testing.T) {
	is := is.New(t)
	g, _ := New(VariantTicTacToe)
	is.True(errors.Is(g.PlayColumn(0), ErrWrongVariant))

	// X O X / X O O / O X X
	for _, cell := range [][2]int{{0, 0}, {0, 1}, {0, 2}, {1, 1}, {1, 0}, {2, 0}, {2, 1}, {1, 2}, {2, 2}} {
		is.NoErr(g.PlayCell(cell[0], cell[1]))
	}
	is.True(g.Over())
	_, ok := g.Winner()
	is.True(!ok)
	is.Equal(g.Board().Notation(), "XOX/XOO/OXX")
}

func TestTicTacToeErrors(t *testing.T) {
	is := is.New(t)
	g, _ := New(VariantTicTacToe)
	is.NoErr(g.PlayCell(1, 1))
	is.True(errors.Is(g.PlayCell(1, 1), board.ErrCellOccupied))
	is.True(errors.Is(g.PlayCell(3, 0), board.ErrCellOutOfRange))
	is.Equal(g.OnTurn(), board.PlayerB)
}

func TestNewFromBoard(t *testing.T) {
	is := is.New(t)

	b, err := board.FromNotation("7/7/7/7/O6/XXX1O2")
	is.NoErr(err)
	g, err := NewFromBoard(VariantConnectFour, b)
	is.NoErr(err)
	is.Equal(g.OnTurn(), board.PlayerB)
	is.True(!g.Over())
	// the game owns a copy
	is.NoErr(g.PlayColumn(3))
	is.Equal(b.At(5, 3), board.Empty)

	b, _ = board.FromNotation("XXX/OO1/3")
	g, err = NewFromBoard(VariantTicTacToe, b)
	is.NoErr(err)
	is.True(g.Over())
	w, ok := g.Winner()
	is.True(ok)
	is.Equal(w, board.PlayerA)

	b, _ = board.FromNotation("XXX/3/3")
	_, err = NewFromBoard(VariantTicTacToe, b)
	is.True(errors.Is(err, ErrInconsistentCount))

	b, _ = board.FromNotation("7/7/7/7/X6/7")
	_, err = NewFromBoard(VariantConnectFour, b)
	is.True(errors.Is(err, board.ErrFloatingToken))

	b, _ = board.FromNotation("3/3/3")
	_, err = NewFromBoard(VariantConnectFour, b)
	is.True(errors.Is(err, ErrWrongVariant))
}

func TestDisplayText(t *testing.T) {
	is := is.New(t)
	g, _ := New(VariantConnectFour)
	is.NoErr(g.PlayColumn(3))
	txt := g.ToDisplayText()
	is.True(strings.Contains(txt, "-> Player O"))
	is.True(strings.Contains(txt, "Turn 1:"))
	is.True(strings.Contains(txt, "X played column 3"))
	is.True(strings.HasSuffix(txt, "7/7/7/7/7/3X3"))

	g, _ = New(VariantTicTacToe)
	for _, cell := range [][2]int{{0, 0}, {1, 1}, {0, 1}, {2, 2}, {0, 2}} {
		is.NoErr(g.PlayCell(cell[0], cell[1]))
	}
	txt = g.ToDisplayText()
	is.True(strings.Contains(txt, "Game is over. Winner: X"))
	is.True(strings.Contains(txt, "X played row 0 column 2"))
	is.True(!strings.Contains(txt, "->"))
}

package player

import (
	"errors"
	"os"
	"testing"

	"github.com/matryer/is"
	"github.com/rs/zerolog"

	"github.com/domino14/gridgame/board"
	"github.com/domino14/gridgame/equity"
	"github.com/domino14/gridgame/search"
	"github.com/domino14/gridgame/search/alphabeta"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	os.Exit(m.Run())
}

// fixedExplorer always recommends the same column and counts its calls.
type fixedExplorer struct {
	col   int
	calls int
}

func (f *fixedExplorer) Solve(b *board.Board, who board.Token) search.Result {
	f.calls++
	if f.col < 0 {
		return search.NoMove(-search.Infinity)
	}
	return search.Result{Col: f.col, Row: 0}
}

func newC4Player(is *is.I) *ConnectFourPlayer {
	pc, err := equity.NewPatternCalculator()
	is.NoErr(err)
	return NewConnectFourPlayer(alphabeta.NewSolver(pc))
}

func mustBoard(is *is.I, pos string) *board.Board {
	b, err := board.FromNotation(pos)
	is.NoErr(err)
	return b
}

func TestEmptyBoardPlaysCenter(t *testing.T) {
	is := is.New(t)
	ex := &fixedExplorer{col: 0}
	p := NewConnectFourPlayer(ex)
	for _, tok := range []board.Token{board.PlayerA, board.PlayerB} {
		col, err := p.Play(board.NewConnectFourBoard(), tok)
		is.NoErr(err)
		is.Equal(col, 3)
	}
	is.Equal(ex.calls, 0)
}

func TestImmediateWinSkipsSearch(t *testing.T) {
	is := is.New(t)
	ex := &fixedExplorer{col: 6}
	p := NewConnectFourPlayer(ex)

	col, err := p.Play(mustBoard(is, "7/7/7/7/7/XXX4"), board.PlayerA)
	is.NoErr(err)
	is.Equal(col, 3)

	// leftmost winning column
	col, err = p.Play(mustBoard(is, "7/7/7/X5O/X5O/X4OO"), board.PlayerA)
	is.NoErr(err)
	is.Equal(col, 0)
	col, err = p.Play(mustBoard(is, "7/7/7/X5O/X5O/X4OO"), board.PlayerB)
	is.NoErr(err)
	is.Equal(col, 6)

	is.Equal(ex.calls, 0)
}

func TestSearchRecommendation(t *testing.T) {
	is := is.New(t)
	p := newC4Player(is)
	b := mustBoard(is, "7/7/7/7/O6/XXX1O2")
	before := b.Copy()

	col, err := p.Play(b, board.PlayerB)
	is.NoErr(err)
	is.Equal(col, 3)
	is.True(b.Equals(before))

	col, err = p.Play(mustBoard(is, "7/7/7/7/7/3X3"), board.PlayerB)
	is.NoErr(err)
	is.Equal(col, 3)
}

func TestOneOpenColumn(t *testing.T) {
	is := is.New(t)
	b := mustBoard(is, "OXOX1XO/XOXOXOX/XOXOXOX/OXOXOXO/OXOXOXO/XOXOXOX")
	is.Equal(OpenColumns(b), []int{4})

	for _, tok := range []board.Token{board.PlayerA, board.PlayerB} {
		col, err := newC4Player(is).Play(b, tok)
		is.NoErr(err)
		is.Equal(col, 4)

		col, err = NewConnectFourPlayer(&fixedExplorer{col: -1}).Play(b, tok)
		is.NoErr(err)
		is.Equal(col, 4)
	}
}

func TestFallbackToCenter(t *testing.T) {
	is := is.New(t)

	// no move from the search
	p := NewConnectFourPlayer(&fixedExplorer{col: -1})
	col, err := p.Play(mustBoard(is, "7/7/7/7/7/X6"), board.PlayerB)
	is.NoErr(err)
	is.Equal(col, 3)

	// a full column from the search; 2 and 4 are equally close, 2 comes first
	b := mustBoard(is, "3X3/3O3/3X3/3O3/3X3/3O3")
	p = NewConnectFourPlayer(&fixedExplorer{col: 3})
	col, err = p.Play(b, board.PlayerA)
	is.NoErr(err)
	is.Equal(col, 2)

	// off the board
	p = NewConnectFourPlayer(&fixedExplorer{col: 9})
	col, err = p.Play(mustBoard(is, "7/7/7/7/7/X6"), board.PlayerB)
	is.NoErr(err)
	is.Equal(col, 3)
}

func TestFullBoard(t *testing.T) {
	is := is.New(t)
	b := mustBoard(is, "OXOXOXO/XOXOXOX/XOXOXOX/OXOXOXO/OXOXOXO/XOXOXOX")

	_, err := newC4Player(is).Play(b, board.PlayerA)
	is.True(errors.Is(err, board.ErrBoardFull))

	_, err = RandomPlayer{}.Play(b, board.PlayerA)
	is.True(errors.Is(err, board.ErrBoardFull))
}

func TestRandomPlayer(t *testing.T) {
	is := is.New(t)
	b := mustBoard(is, "3X3/3O3/3X3/3O3/3X3/3O3")
	var p Player = RandomPlayer{}
	seen := map[int]bool{}
	for i := 0; i < 200; i++ {
		col, err := p.Play(b, board.PlayerA)
		is.NoErr(err)
		is.True(col != 3)
		is.True(b.ColumnOpen(col))
		seen[col] = true
	}
	is.True(len(seen) > 1)
}

func TestTicTacToePlayer(t *testing.T) {
	is := is.New(t)
	p := NewTicTacToePlayer(9)

	b := board.NewTicTacToeBoard()
	row, col, err := p.Play(b, board.PlayerB)
	is.NoErr(err)
	is.Equal(row, 2)
	is.Equal(col, 2)
	is.Equal(b.NumTokens(), 0)

	row, col, err = p.Play(mustBoard(is, "XX1/1O1/3"), board.PlayerB)
	is.NoErr(err)
	is.Equal(row, 0)
	is.Equal(col, 2)

	_, _, err = p.Play(mustBoard(is, "XOX/OXO/OXO"), board.PlayerB)
	is.True(errors.Is(err, board.ErrBoardFull))

	p.SetLevel(0)
	is.Equal(p.Level(), 1)
	row, col, err = p.Play(board.NewTicTacToeBoard(), board.PlayerB)
	is.NoErr(err)
	is.Equal(row, 1)
	is.Equal(col, 1)
}

package minimax

import (
	"os"
	"testing"

	"github.com/matryer/is"
	"github.com/rs/zerolog"

	"github.com/domino14/gridgame/board"
	"github.com/domino14/gridgame/search"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	os.Exit(m.Run())
}

// The computer plays O, the human X.
func TestFindBestMove(t *testing.T) {
	is := is.New(t)

	type testcase struct {
		pos   string
		who   board.Token
		level int
		score int
		row   int
		col   int
		nodes uint64
	}
	for _, tc := range []testcase{
		// every first move draws; the last cell scanned is kept
		{"3/3/3", board.PlayerB, FullDepth, 0, 2, 2, 549945},
		{"3/3/3", board.PlayerB, 0, 4, 1, 1, 9},
		{"3/3/3", board.PlayerB, 1, 1, 1, 1, 81},
		{"X2/3/3", board.PlayerB, FullDepth, 0, 1, 1, 59704},
		{"X2/3/3", board.PlayerB, 1, -1, 1, 1, 64},
		// block the top row
		{"XX1/1O1/3", board.PlayerB, FullDepth, 0, 0, 2, 934},
		{"XX1/1O1/3", board.PlayerB, 1, 0, 0, 2, 36},
		{"O1X/1X1/3", board.PlayerB, FullDepth, 0, 2, 0, 932},
		// take the win
		{"OO1/XX1/X2", board.PlayerB, FullDepth, search.Infinity, 0, 2, 25},
		// X can fork whatever O does, so every cell loses and the last is kept
		{"XX1/O2/3", board.PlayerB, FullDepth, -search.Infinity, 2, 2, 1018},
		// from the human's side the fork is a win
		{"XX1/1O1/3", board.PlayerA, FullDepth, -search.Infinity, 2, 2, 875},
		{"XOX/OXO/OX1", board.PlayerB, 3, 0, 2, 2, 1},
	} {
		b, err := board.FromNotation(tc.pos)
		is.NoErr(err)
		s := NewSolver(b, board.PlayerB)
		score, row, col := s.FindBestMove(tc.who, tc.level)
		is.Equal(score, tc.score)
		is.Equal(row, tc.row)
		is.Equal(col, tc.col)
		is.Equal(s.Nodes(), tc.nodes)
	}
}

func TestBoardRestored(t *testing.T) {
	is := is.New(t)
	b, err := board.FromNotation("X2/1O1/3")
	is.NoErr(err)
	before := b.Copy()

	s := NewSolver(b, board.PlayerB)
	s.FindBestMove(board.PlayerB, FullDepth)
	is.True(b.Equals(before))
}

func TestFullBoard(t *testing.T) {
	is := is.New(t)
	b, err := board.FromNotation("XOX/OXO/OXO")
	is.NoErr(err)
	s := NewSolver(board.NewTicTacToeBoard(), board.PlayerB)
	res := s.Solve(b, board.PlayerB)
	is.True(!res.HasMove())
	is.Equal(res.Score, -search.Infinity)
	is.Equal(res.Nodes, uint64(0))
}

func TestSolve(t *testing.T) {
	is := is.New(t)
	s := NewSolver(board.NewTicTacToeBoard(), board.PlayerB)
	s.SetLevel(-4)
	is.Equal(s.Level(), 0)
	s.SetLevel(FullDepth)

	b, err := board.FromNotation("OO1/XX1/X2")
	is.NoErr(err)
	res := s.Solve(b, board.PlayerB)
	is.Equal(res.Score, search.Infinity)
	is.Equal(res.Row, 0)
	is.Equal(res.Col, 2)
	is.True(res.HasMove())
}

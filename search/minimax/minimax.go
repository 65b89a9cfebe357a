// Package minimax searches the free-placement game with plain minimax. One
// board is shared by the whole search: every move is placed in place and
// taken back before the next one is tried, so the search must stay on a
// single goroutine.
package minimax

import (
	"time"

	"github.com/rs/zerolog/log"

	"github.com/domino14/gridgame/board"
	"github.com/domino14/gridgame/equity"
	"github.com/domino14/gridgame/rules"
	"github.com/domino14/gridgame/search"
)

// FullDepth is enough levels to search a 3x3 board to the end.
const FullDepth = 8

type Solver struct {
	board     *board.Board
	computer  board.Token
	evaluator equity.OpenPathCalculator
	runLength int
	level     int

	nodes uint64
}

// NewSolver searches b on behalf of computer, the maximizing side. All
// scores are from computer's point of view.
func NewSolver(b *board.Board, computer board.Token) *Solver {
	return &Solver{
		board:     b,
		computer:  computer,
		runLength: b.Width(),
		level:     FullDepth,
	}
}

// SetLevel sets the number of levels searched below the first move by
// Solve. A level of 0 scores every first move with the heuristic.
func (s *Solver) SetLevel(l int) {
	if l < 0 {
		l = 0
	}
	s.level = l
}

func (s *Solver) Level() int {
	return s.level
}

func (s *Solver) Nodes() uint64 {
	return s.nodes
}

func (s *Solver) sign(who board.Token) int {
	if who == s.computer {
		return 1
	}
	return -1
}

func (s *Solver) full() bool {
	return s.board.NumTokens() == s.board.Width()*s.board.Height()
}

// FindBestMove tries every empty cell in row-major order for who. It returns
// the best score and the cell that got it; among equal scores the last cell
// tried wins. Row and col are -1 only if the board has no empty cell.
func (s *Solver) FindBestMove(who board.Token, level int) (int, int, int) {
	sign := s.sign(who)
	score := -sign * search.Infinity
	row, col := -1, -1

	for _, cell := range s.board.EmptyCells() {
		r, c := cell[0], cell[1]
		if err := s.board.Set(r, c, who); err != nil {
			// EmptyCells just said otherwise.
			panic(err)
		}
		s.nodes++

		var v int
		switch {
		case s.wins(who):
			v = sign * search.Infinity
		case s.full():
			v = 0
		case level == 0:
			v = s.evaluator.Evaluate(s.board, s.computer)
		default:
			v, _, _ = s.FindBestMove(who.Opponent(), level-1)
		}
		if sign*v >= sign*score {
			score, row, col = v, r, c
		}
		s.board.Clear(r, c)
	}
	return score, row, col
}

func (s *Solver) wins(who board.Token) bool {
	return rules.HasWinFor(s.board, s.runLength, who)
}

// Solve searches b for who, to the configured level. b replaces the board
// the solver was created with.
func (s *Solver) Solve(b *board.Board, who board.Token) search.Result {
	s.board = b
	s.runLength = b.Width()
	s.nodes = 0
	tstart := time.Now()

	score, row, col := s.FindBestMove(who, s.level)
	res := search.NoMove(score)
	res.Nodes = s.nodes
	if col >= 0 {
		res.Row, res.Col = row, col
	}
	log.Debug().
		Int("level", s.level).
		Int("score", score).
		Int("row", row).
		Int("col", col).
		Uint64("nodes", s.nodes).
		Float64("time-elapsed-sec", time.Since(tstart).Seconds()).
		Msg("minimax-returning")
	return res
}

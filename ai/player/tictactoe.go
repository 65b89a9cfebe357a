package player

import (
	"github.com/domino14/gridgame/board"
	"github.com/domino14/gridgame/search/minimax"
)

// TicTacToePlayer searches the free-placement game. Level is the look-ahead
// a user asks for; it counts the computer's own move, so the search below
// that move runs level-1 deep.
type TicTacToePlayer struct {
	level int
}

func NewTicTacToePlayer(level int) *TicTacToePlayer {
	p := &TicTacToePlayer{}
	p.SetLevel(level)
	return p
}

func (p *TicTacToePlayer) SetLevel(level int) {
	p.level = max(level, 1)
}

func (p *TicTacToePlayer) Level() int {
	return p.level
}

// Play returns the cell self should take. b is not modified.
func (p *TicTacToePlayer) Play(b *board.Board, self board.Token) (int, int, error) {
	sim := b.Copy()
	s := minimax.NewSolver(sim, self)
	s.SetLevel(p.level - 1)
	res := s.Solve(sim, self)
	if !res.HasMove() {
		return -1, -1, board.ErrBoardFull
	}
	return res.Row, res.Col, nil
}

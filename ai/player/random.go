package player

import (
	"lukechampine.com/frand"

	"github.com/domino14/gridgame/board"
)

// RandomPlayer drops its token in any open column. The zero value draws
// from the global generator.
type RandomPlayer struct {
	rng *frand.RNG
}

// NewSeededRandomPlayer draws from rng, so that games can be replayed.
func NewSeededRandomPlayer(rng *frand.RNG) RandomPlayer {
	return RandomPlayer{rng: rng}
}

func (p RandomPlayer) Play(b *board.Board, _ board.Token) (int, error) {
	open := OpenColumns(b)
	if len(open) == 0 {
		return -1, board.ErrBoardFull
	}
	if p.rng != nil {
		return open[p.rng.Intn(len(open))], nil
	}
	return open[frand.Intn(len(open))], nil
}

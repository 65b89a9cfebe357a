// Package player is an automatic player of the grid games. It wraps the
// search engines with the shortcuts and fallbacks a real opponent needs.
package player

import (
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/domino14/gridgame/board"
	"github.com/domino14/gridgame/rules"
	"github.com/domino14/gridgame/search"
)

// Player picks a column to drop a token in.
type Player interface {
	Play(b *board.Board, self board.Token) (int, error)
}

// ConnectFourPlayer is the gravity-game move selector. It only asks the
// explorer when no cheaper answer exists, and it always comes back with a
// legal column while the board has one.
type ConnectFourPlayer struct {
	explorer search.Explorer
}

func NewConnectFourPlayer(ex search.Explorer) *ConnectFourPlayer {
	return &ConnectFourPlayer{explorer: ex}
}

func (p *ConnectFourPlayer) Explorer() search.Explorer {
	return p.explorer
}

// OpenColumns lists the columns that can still take a token, ascending.
func OpenColumns(b *board.Board) []int {
	return lo.Filter(lo.Range(b.Width()), func(col int, _ int) bool {
		return b.ColumnOpen(col)
	})
}

func (p *ConnectFourPlayer) Play(b *board.Board, self board.Token) (int, error) {
	open := OpenColumns(b)
	if len(open) == 0 {
		return -1, board.ErrBoardFull
	}
	center := b.Width() / 2
	if rules.IsEmpty(b) {
		return center, nil
	}

	for _, col := range open {
		sim := b.Copy()
		if _, err := sim.Play(col, self); err != nil {
			continue
		}
		if rules.HasWinFor(sim, rules.RunLength, self) {
			log.Debug().Int("col", col).Msg("immediate-win")
			return col, nil
		}
	}

	res := p.explorer.Solve(b, self)
	if res.HasMove() {
		_, err := b.Copy().Play(res.Col, self)
		if err == nil {
			return res.Col, nil
		}
		log.Warn().Err(err).Int("col", res.Col).Msg("search-recommended-illegal-column")
	} else {
		log.Debug().Int("score", res.Score).Msg("search-found-no-move")
	}

	return closestTo(open, center), nil
}

// closestTo returns the first column in cols nearest to center.
func closestTo(cols []int, center int) int {
	return lo.MinBy(cols, func(a, b int) bool {
		return abs(a-center) < abs(b-center)
	})
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Package game runs the turn loop of either variant: whose turn it is,
// what has been played, and when the game is over.
package game

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/domino14/gridgame/board"
	"github.com/domino14/gridgame/rules"
)

type Variant string

const (
	VariantConnectFour Variant = "c4"
	VariantTicTacToe   Variant = "ttt"
)

var (
	ErrGameOver          = errors.New("game is over")
	ErrWrongVariant      = errors.New("move does not fit this variant")
	ErrUnknownVariant    = errors.New("unknown variant")
	ErrInconsistentCount = errors.New("token counts cannot arise from alternating play")
)

// ParseVariant accepts the short names used on the command line.
func ParseVariant(s string) (Variant, error) {
	switch s {
	case "c4", "connect4", "connectfour":
		return VariantConnectFour, nil
	case "ttt", "tictactoe":
		return VariantTicTacToe, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownVariant, s)
}

type PlayState int

const (
	Playing PlayState = iota
	GameOver
)

// Game is the state of one game. It enforces whose turn it is and stops
// accepting moves once somebody completes a run or the board fills up.
// PlayerA always moves first; in tic-tac-toe that is the human.
type Game struct {
	uid       string
	variant   Variant
	board     *board.Board
	runLength int

	onturn  board.Token
	playing PlayState
	winner  board.Token
	history []Turn
}

// New starts an empty game.
func New(variant Variant) (*Game, error) {
	var b *board.Board
	switch variant {
	case VariantConnectFour:
		b = board.NewConnectFourBoard()
	case VariantTicTacToe:
		b = board.NewTicTacToeBoard()
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownVariant, variant)
	}
	return newGame(variant, b, board.PlayerA), nil
}

// NewFromBoard continues a game from a position. The side on turn follows
// from the token counts, since PlayerA always moves first.
func NewFromBoard(variant Variant, b *board.Board) (*Game, error) {
	switch variant {
	case VariantConnectFour:
		if b.Width() != board.ConnectFourWidth || b.Height() != board.ConnectFourHeight {
			return nil, fmt.Errorf("%w: board is %dx%d", ErrWrongVariant, b.Width(), b.Height())
		}
		if err := b.ValidateGravity(); err != nil {
			return nil, err
		}
	case VariantTicTacToe:
		if b.Width() != board.TicTacToeDim || b.Height() != board.TicTacToeDim {
			return nil, fmt.Errorf("%w: board is %dx%d", ErrWrongVariant, b.Width(), b.Height())
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownVariant, variant)
	}

	na, nb := countTokens(b)
	var onturn board.Token
	switch na - nb {
	case 0:
		onturn = board.PlayerA
	case 1:
		onturn = board.PlayerB
	default:
		return nil, fmt.Errorf("%w: %d X, %d O", ErrInconsistentCount, na, nb)
	}
	g := newGame(variant, b.Copy(), onturn)
	g.checkOver()
	return g, nil
}

func newGame(variant Variant, b *board.Board, onturn board.Token) *Game {
	runLength := rules.RunLength
	if variant == VariantTicTacToe {
		runLength = b.Width()
	}
	g := &Game{
		uid:       uuid.NewString(),
		variant:   variant,
		board:     b,
		runLength: runLength,
		onturn:    onturn,
		playing:   Playing,
	}
	log.Debug().Str("uid", g.uid).Str("variant", string(variant)).Msg("new-game")
	return g
}

func countTokens(b *board.Board) (int, int) {
	na, nb := 0, 0
	for r := 0; r < b.Height(); r++ {
		for c := 0; c < b.Width(); c++ {
			switch b.At(r, c) {
			case board.PlayerA:
				na++
			case board.PlayerB:
				nb++
			}
		}
	}
	return na, nb
}

// PlayColumn drops the token of the side on turn into col.
func (g *Game) PlayColumn(col int) error {
	if g.variant != VariantConnectFour {
		return ErrWrongVariant
	}
	if g.playing == GameOver {
		return ErrGameOver
	}
	row, err := g.board.Play(col, g.onturn)
	if err != nil {
		return err
	}
	g.afterMove(row, col)
	return nil
}

// PlayCell places the token of the side on turn at row, col.
func (g *Game) PlayCell(row, col int) error {
	if g.variant != VariantTicTacToe {
		return ErrWrongVariant
	}
	if g.playing == GameOver {
		return ErrGameOver
	}
	if err := g.board.Set(row, col, g.onturn); err != nil {
		return err
	}
	g.afterMove(row, col)
	return nil
}

func (g *Game) afterMove(row, col int) {
	g.history = append(g.history, Turn{Player: g.onturn, Row: row, Col: col})
	g.checkOver()
	if g.playing == Playing {
		g.onturn = g.onturn.Opponent()
	}
}

func (g *Game) checkOver() {
	if w, ok := rules.Winner(g.board, g.runLength); ok {
		g.playing = GameOver
		g.winner = w
		log.Debug().Str("uid", g.uid).Str("winner", w.String()).Int("turns", len(g.history)).Msg("game-won")
		return
	}
	if g.board.NumTokens() == g.board.Width()*g.board.Height() {
		g.playing = GameOver
		log.Debug().Str("uid", g.uid).Int("turns", len(g.history)).Msg("game-drawn")
	}
}

func (g *Game) Uid() string {
	return g.uid
}

func (g *Game) Variant() Variant {
	return g.variant
}

func (g *Game) RunLength() int {
	return g.runLength
}

func (g *Game) OnTurn() board.Token {
	return g.onturn
}

func (g *Game) Playing() PlayState {
	return g.playing
}

func (g *Game) Over() bool {
	return g.playing == GameOver
}

func (g *Game) History() []Turn {
	return g.history
}

func (g *Game) Turn() int {
	return len(g.history)
}

func (g *Game) SetUid(uid string) {
	g.uid = uid
}

func (g *Game) Board() *board.Board {
	return g.board
}

func (g *Game) LastTurn() (Turn, bool) {
	return lastTurn(g.history)
}

// Winner returns the token that completed a run. ok is false while the
// game is on and after a draw.
func (g *Game) Winner() (board.Token, bool) {
	return g.winner, g.playing == GameOver && g.winner != board.Empty
}

func lastTurn(h []Turn) (Turn, bool) {
	if len(h) == 0 {
		return Turn{}, false
	}
	return h[len(h)-1], true
}

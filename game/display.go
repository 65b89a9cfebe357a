package game

import (
	"fmt"
	"strings"

	"github.com/domino14/gridgame/board"
)

func addText(lines []string, row int, hpad int, text string) []string {
	for len(lines) <= row {
		lines = append(lines, "")
	}
	lines[row] = lines[row] + strings.Repeat(" ", hpad) + text
	return lines
}

// ToDisplayText turns the current state of the game into a displayable
// string.
func (g *Game) ToDisplayText() string {
	var bt string
	if g.variant == VariantTicTacToe {
		bt = g.board.ToGridText()
	} else {
		bt = g.board.ToDisplayText()
	}
	bts := strings.Split(strings.TrimRight(bt, "\n"), "\n")
	hpadding := 3
	vpadding := 1

	for i, p := range []board.Token{board.PlayerA, board.PlayerB} {
		marker := ""
		if g.playing == Playing && g.onturn == p {
			marker = "-> "
		}
		bts = addText(bts, vpadding+i, hpadding, fmt.Sprintf("%sPlayer %s", marker, p))
	}

	bts = addText(bts, vpadding+3, hpadding, fmt.Sprintf("Turn %d:", len(g.history)))
	if t, ok := g.LastTurn(); ok {
		bts = addText(bts, vpadding+4, hpadding, summary(g.variant, t))
	}

	if g.playing == GameOver {
		if w, ok := g.Winner(); ok {
			bts = addText(bts, vpadding+5, hpadding, fmt.Sprintf("Game is over. Winner: %s", w))
		} else {
			bts = addText(bts, vpadding+5, hpadding, "Game is over. No winner.")
		}
	}

	return strings.Join(append(bts, g.board.Notation()), "\n")
}

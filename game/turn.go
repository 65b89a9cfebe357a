package game

import (
	"fmt"

	"github.com/domino14/gridgame/board"
)

// Turn is one move in the history of a game. Row is where the token came
// to rest, so gravity moves record it too.
type Turn struct {
	Player board.Token
	Row    int
	Col    int
}

func (t Turn) String() string {
	return fmt.Sprintf("%s (%d,%d)", t.Player, t.Row, t.Col)
}

// summary describes t for a variant the way a user would enter it.
func summary(v Variant, t Turn) string {
	if v == VariantConnectFour {
		return fmt.Sprintf("%s played column %d", t.Player, t.Col)
	}
	return fmt.Sprintf("%s played row %d column %d", t.Player, t.Row, t.Col)
}

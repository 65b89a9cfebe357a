package board

// A Token is the mark occupying a single cell.
type Token uint8

const (
	Empty Token = iota
	PlayerA
	PlayerB
)

// Opponent returns the other player's token. Empty has no opponent.
func (t Token) Opponent() Token {
	switch t {
	case PlayerA:
		return PlayerB
	case PlayerB:
		return PlayerA
	}
	return Empty
}

func (t Token) String() string {
	switch t {
	case PlayerA:
		return "X"
	case PlayerB:
		return "O"
	}
	return "."
}

// IsPlayer is true for either player's token.
func (t Token) IsPlayer() bool {
	return t == PlayerA || t == PlayerB
}

// TokenFromRune is the inverse of String. Both cases are accepted.
func TokenFromRune(r rune) (Token, bool) {
	switch r {
	case 'X', 'x':
		return PlayerA, true
	case 'O', 'o':
		return PlayerB, true
	case '.':
		return Empty, true
	}
	return Empty, false
}

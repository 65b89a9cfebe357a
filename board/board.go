// Package board holds the grid that both game variants are played on.
// Row 0 is the top row; a gravity move fills the lowest empty cell of a
// column, while a free placement may fill any empty cell.
package board

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// ConnectFourWidth and ConnectFourHeight are the dimensions of the
	// standard gravity board.
	ConnectFourWidth  = 7
	ConnectFourHeight = 6
	// TicTacToeDim is the side of the free-placement board.
	TicTacToeDim = 3
)

var (
	ErrColumnFull       = errors.New("column is full")
	ErrColumnOutOfRange = errors.New("column out of range")
	ErrCellOccupied     = errors.New("cell is occupied")
	ErrCellOutOfRange   = errors.New("cell out of range")
	ErrBoardFull        = errors.New("board is full")
	ErrInvalidToken     = errors.New("invalid token")
)

// Board is a width x height grid of tokens.
type Board struct {
	width  int
	height int
	cells  []Token
}

// NewBoard creates an empty board of the given dimensions.
func NewBoard(width, height int) *Board {
	return &Board{
		width:  width,
		height: height,
		cells:  make([]Token, width*height),
	}
}

// NewConnectFourBoard creates an empty 7x6 board.
func NewConnectFourBoard() *Board {
	return NewBoard(ConnectFourWidth, ConnectFourHeight)
}

// NewTicTacToeBoard creates an empty 3x3 board.
func NewTicTacToeBoard() *Board {
	return NewBoard(TicTacToeDim, TicTacToeDim)
}

func (b *Board) Width() int {
	return b.width
}

func (b *Board) Height() int {
	return b.height
}

func (b *Board) idx(row, col int) int {
	return row*b.width + col
}

func (b *Board) inBounds(row, col int) bool {
	return row >= 0 && row < b.height && col >= 0 && col < b.width
}

// At returns the token at the given cell. It panics if the cell is out of
// range, like a slice index would.
func (b *Board) At(row, col int) Token {
	if !b.inBounds(row, col) {
		panic(fmt.Sprintf("cell (%d, %d) out of range for %dx%d board",
			row, col, b.width, b.height))
	}
	return b.cells[b.idx(row, col)]
}

// Play drops t into col. The token lands in the lowest empty cell; the row
// it landed in is returned.
func (b *Board) Play(col int, t Token) (int, error) {
	if col < 0 || col >= b.width {
		return -1, ErrColumnOutOfRange
	}
	if !t.IsPlayer() {
		return -1, ErrInvalidToken
	}
	for r := b.height - 1; r >= 0; r-- {
		if b.cells[b.idx(r, col)] == Empty {
			b.cells[b.idx(r, col)] = t
			return r, nil
		}
	}
	return -1, ErrColumnFull
}

// Set places t at an empty cell, without gravity.
func (b *Board) Set(row, col int, t Token) error {
	if !b.inBounds(row, col) {
		return ErrCellOutOfRange
	}
	if !t.IsPlayer() {
		return ErrInvalidToken
	}
	if b.cells[b.idx(row, col)] != Empty {
		return ErrCellOccupied
	}
	b.cells[b.idx(row, col)] = t
	return nil
}

// Clear empties a cell. Only search code undoing its own placement should
// call this.
func (b *Board) Clear(row, col int) {
	b.cells[b.idx(row, col)] = Empty
}

// ColumnOpen is true if the top cell of col is empty.
func (b *Board) ColumnOpen(col int) bool {
	return col >= 0 && col < b.width && b.cells[b.idx(0, col)] == Empty
}

// Column returns column i from top to bottom, so index 0 is the top cell.
func (b *Board) Column(i int) []Token {
	col := make([]Token, b.height)
	for r := 0; r < b.height; r++ {
		col[r] = b.cells[b.idx(r, i)]
	}
	return col
}

// Line returns row i from left to right.
func (b *Board) Line(i int) []Token {
	line := make([]Token, b.width)
	copy(line, b.cells[b.idx(i, 0):b.idx(i, 0)+b.width])
	return line
}

// Diagonals returns every diagonal of at least minLen cells. Down-right
// diagonals come first, then down-left ones; each walks from its top or
// side start cell towards the bottom row.
func (b *Board) Diagonals(minLen int) [][]Token {
	var diags [][]Token
	walk := func(r, c, dc int) {
		var d []Token
		for b.inBounds(r, c) {
			d = append(d, b.cells[b.idx(r, c)])
			r++
			c += dc
		}
		if len(d) >= minLen {
			diags = append(diags, d)
		}
	}
	// (+1, +1): start on the top row, then down the left edge.
	for c := 0; c < b.width; c++ {
		walk(0, c, 1)
	}
	for r := 1; r < b.height; r++ {
		walk(r, 0, 1)
	}
	// (+1, -1): start on the top row, then down the right edge.
	for c := 0; c < b.width; c++ {
		walk(0, c, -1)
	}
	for r := 1; r < b.height; r++ {
		walk(r, b.width-1, -1)
	}
	return diags
}

// EmptyCells lists the empty cells in row-major order.
func (b *Board) EmptyCells() [][2]int {
	var out [][2]int
	for r := 0; r < b.height; r++ {
		for c := 0; c < b.width; c++ {
			if b.cells[b.idx(r, c)] == Empty {
				out = append(out, [2]int{r, c})
			}
		}
	}
	return out
}

// NumTokens counts occupied cells.
func (b *Board) NumTokens() int {
	n := 0
	for _, t := range b.cells {
		if t != Empty {
			n++
		}
	}
	return n
}

// Copy returns a deep copy; mutating it never affects b.
func (b *Board) Copy() *Board {
	cells := make([]Token, len(b.cells))
	copy(cells, b.cells)
	return &Board{width: b.width, height: b.height, cells: cells}
}

// CopyFrom overwrites b with the contents of other, reusing b's storage
// when the dimensions match.
func (b *Board) CopyFrom(other *Board) {
	if len(b.cells) != len(other.cells) {
		b.cells = make([]Token, len(other.cells))
	}
	b.width = other.width
	b.height = other.height
	copy(b.cells, other.cells)
}

// Equals compares dimensions and every cell.
func (b *Board) Equals(other *Board) bool {
	if b.width != other.width || b.height != other.height {
		return false
	}
	for i := range b.cells {
		if b.cells[i] != other.cells[i] {
			return false
		}
	}
	return true
}

// ToDisplayText renders the board with column indices on top, the way the
// gravity game is shown.
func (b *Board) ToDisplayText() string {
	var sb strings.Builder
	for c := 0; c < b.width; c++ {
		fmt.Fprintf(&sb, " %d", c)
	}
	sb.WriteString("\n")
	for r := 0; r < b.height; r++ {
		for c := 0; c < b.width; c++ {
			sb.WriteString("|")
			sb.WriteString(b.cells[b.idx(r, c)].String())
		}
		sb.WriteString("|\n")
	}
	return sb.String()
}

// ToGridText renders the board with row and column indices and ruled
// borders, the way the free-placement game is shown.
func (b *Board) ToGridText() string {
	var sb strings.Builder
	sep := "  +" + strings.Repeat("-+", b.width) + "\n"
	sb.WriteString("  ")
	for c := 0; c < b.width; c++ {
		fmt.Fprintf(&sb, " %d", c)
	}
	sb.WriteString("\n")
	for r := 0; r < b.height; r++ {
		sb.WriteString(sep)
		fmt.Fprintf(&sb, "%d ", r)
		for c := 0; c < b.width; c++ {
			t := b.cells[b.idx(r, c)]
			sym := " "
			if t != Empty {
				sym = t.String()
			}
			sb.WriteString("|" + sym)
		}
		sb.WriteString("|\n")
	}
	sb.WriteString(sep)
	return sb.String()
}

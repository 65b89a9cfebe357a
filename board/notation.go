package board

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

var (
	ErrBadNotation   = errors.New("bad board notation")
	ErrFloatingToken = errors.New("token is not supported from below")
)

// FromNotation parses a board written row by row from the top, rows
// separated by slashes. X and O are tokens and a number is a run of empty
// cells, so an empty connect-four board is "7/7/7/7/7/7".
func FromNotation(s string) (*Board, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("%w: empty string", ErrBadNotation)
	}
	rows := strings.Split(s, "/")
	parsed := make([][]Token, len(rows))
	width := -1
	for i, row := range rows {
		var cells []Token
		digits := ""
		flush := func() error {
			if digits == "" {
				return nil
			}
			n, err := strconv.Atoi(digits)
			if err != nil {
				return err
			}
			for j := 0; j < n; j++ {
				cells = append(cells, Empty)
			}
			digits = ""
			return nil
		}
		for _, r := range row {
			if unicode.IsDigit(r) {
				digits += string(r)
				continue
			}
			if err := flush(); err != nil {
				return nil, fmt.Errorf("%w: row %d: %v", ErrBadNotation, i, err)
			}
			t, ok := TokenFromRune(r)
			if !ok {
				return nil, fmt.Errorf("%w: row %d: unexpected %q", ErrBadNotation, i, r)
			}
			cells = append(cells, t)
		}
		if err := flush(); err != nil {
			return nil, fmt.Errorf("%w: row %d: %v", ErrBadNotation, i, err)
		}
		if width == -1 {
			width = len(cells)
		} else if len(cells) != width {
			return nil, fmt.Errorf("%w: row %d has %d cells, expected %d",
				ErrBadNotation, i, len(cells), width)
		}
		parsed[i] = cells
	}
	if width == 0 {
		return nil, fmt.Errorf("%w: zero-width board", ErrBadNotation)
	}
	b := NewBoard(width, len(rows))
	for r, cells := range parsed {
		copy(b.cells[b.idx(r, 0):], cells)
	}
	return b, nil
}

// Notation is the inverse of FromNotation.
func (b *Board) Notation() string {
	rows := make([]string, b.height)
	for r := 0; r < b.height; r++ {
		var sb strings.Builder
		run := 0
		for c := 0; c < b.width; c++ {
			t := b.cells[b.idx(r, c)]
			if t == Empty {
				run++
				continue
			}
			if run > 0 {
				sb.WriteString(strconv.Itoa(run))
				run = 0
			}
			sb.WriteString(t.String())
		}
		if run > 0 {
			sb.WriteString(strconv.Itoa(run))
		}
		rows[r] = sb.String()
	}
	return strings.Join(rows, "/")
}

// ValidateGravity checks that every occupied cell sits on the bottom row or
// on another token.
func (b *Board) ValidateGravity() error {
	for c := 0; c < b.width; c++ {
		for r := 0; r < b.height-1; r++ {
			if b.cells[b.idx(r, c)] != Empty && b.cells[b.idx(r+1, c)] == Empty {
				return fmt.Errorf("%w: row %d column %d", ErrFloatingToken, r, c)
			}
		}
	}
	return nil
}

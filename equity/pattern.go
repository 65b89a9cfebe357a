package equity

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"github.com/domino14/gridgame/board"
	"github.com/domino14/gridgame/lines"
	"github.com/domino14/gridgame/rules"
)

//go:embed weights.yaml
var defaultWeights []byte

// PatternLength is the window size the weight table is keyed on.
const PatternLength = rules.RunLength

// numPatterns is 3^PatternLength.
const numPatterns = 81

var ErrBadPattern = errors.New("bad weight pattern")

// WeightTable maps a role pattern such as "pppn" to its weight. Roles are
// relative: p is whoever is being evaluated and o the opponent, so the same
// table serves both players.
type WeightTable map[string]int

// PatternCalculator sums table weights over every window of four cells on
// the board.
type PatternCalculator struct {
	table WeightTable
	// resolved holds, per self token, the weight of every concrete window
	// indexed by windowIndex. Patterns missing from the table weigh 0.
	resolved [3][numPatterns]int
}

// NewPatternCalculator uses the built-in weight table.
func NewPatternCalculator() (*PatternCalculator, error) {
	return NewPatternCalculatorFromBytes(defaultWeights)
}

// NewPatternCalculatorFromFile loads a weight table in the same YAML
// format as the built-in one.
func NewPatternCalculatorFromFile(path string) (*PatternCalculator, error) {
	bts, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	pc, err := NewPatternCalculatorFromBytes(bts)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	log.Info().Str("path", path).Int("patterns", len(pc.table)).Msg("loaded-weight-table")
	return pc, nil
}

// NewPatternCalculatorFromBytes parses a YAML weight table.
func NewPatternCalculatorFromBytes(bts []byte) (*PatternCalculator, error) {
	table := WeightTable{}
	if err := yaml.Unmarshal(bts, &table); err != nil {
		return nil, err
	}
	pc := &PatternCalculator{table: table}
	for _, self := range []board.Token{board.PlayerA, board.PlayerB} {
		for pattern, weight := range table {
			w, err := resolve(pattern, self)
			if err != nil {
				return nil, err
			}
			pc.resolved[self][windowIndex(w)] = weight
		}
	}
	return pc, nil
}

// resolve substitutes concrete tokens for the roles in pattern.
func resolve(pattern string, self board.Token) ([]board.Token, error) {
	if len(pattern) != PatternLength {
		return nil, fmt.Errorf("%w: %q has length %d", ErrBadPattern, pattern, len(pattern))
	}
	w := make([]board.Token, PatternLength)
	for i, r := range pattern {
		switch r {
		case 'p':
			w[i] = self
		case 'o':
			w[i] = self.Opponent()
		case 'n':
			w[i] = board.Empty
		default:
			return nil, fmt.Errorf("%w: %q has unknown role %q", ErrBadPattern, pattern, r)
		}
	}
	return w, nil
}

// windowIndex reads a window as a base-3 number.
func windowIndex(w []board.Token) int {
	idx := 0
	for _, t := range w {
		idx = idx*3 + int(t)
	}
	return idx
}

// Table returns the role-relative weights.
func (pc *PatternCalculator) Table() WeightTable {
	return pc.table
}

// Weight is the weight of one concrete window seen by self.
func (pc *PatternCalculator) Weight(w []board.Token, self board.Token) int {
	if len(w) != PatternLength || !self.IsPlayer() {
		return 0
	}
	return pc.resolved[self][windowIndex(w)]
}

// Evaluate folds the weight of every length-4 window over the rows,
// columns and diagonals of g.
func (pc *PatternCalculator) Evaluate(g lines.Grid, self board.Token) int {
	if !self.IsPlayer() {
		return 0
	}
	weights := &pc.resolved[self]
	score := 0
	lines.EachWindow(g, PatternLength, func(w []board.Token) {
		score += weights[windowIndex(w)]
	})
	return score
}

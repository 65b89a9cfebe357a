package equity_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/domino14/gridgame/board"
	"github.com/domino14/gridgame/config"
	"github.com/domino14/gridgame/equity"
)

func mustBoard(t *testing.T, s string) *board.Board {
	t.Helper()
	b, err := board.FromNotation(s)
	if err != nil {
		t.Fatal(err)
	}
	return b
}

func TestDefaultTable(t *testing.T) {
	pc, err := equity.NewPatternCalculator()
	assert.Nil(t, err)

	table := pc.Table()
	assert.Equal(t, 80, len(table))
	assert.Equal(t, 10000, table["pppp"])
	assert.Equal(t, -10000, table["oooo"])
	assert.Equal(t, 1000, table["pppn"])
	assert.Equal(t, -5000, table["ooon"])
	assert.Equal(t, 0, table["nnnn"])
	_, ok := table["oppn"]
	assert.False(t, ok)
}

func TestWeightIsRoleRelative(t *testing.T) {
	pc, err := equity.NewPatternCalculator()
	assert.Nil(t, err)

	a, b, n := board.PlayerA, board.PlayerB, board.Empty
	type testcase struct {
		window []board.Token
		forA   int
		forB   int
	}
	for _, tc := range []testcase{
		{[]board.Token{a, a, a, n}, 1000, -5000},
		{[]board.Token{n, b, b, b}, -5000, 1000},
		{[]board.Token{a, a, a, a}, 10000, -10000},
		{[]board.Token{a, b, a, b}, -10, 10},
		{[]board.Token{a, a, b, b}, 0, 0},
		{[]board.Token{b, a, a, n}, 0, -40}, // oppn is not in the table
		{[]board.Token{n, n, n, n}, 0, 0},
	} {
		assert.Equal(t, tc.forA, pc.Weight(tc.window, a))
		assert.Equal(t, tc.forB, pc.Weight(tc.window, b))
	}
	assert.Equal(t, 0, pc.Weight([]board.Token{a, a, a}, a))
	assert.Equal(t, 0, pc.Weight([]board.Token{a, a, a, n}, n))
}

func TestPatternEvaluate(t *testing.T) {
	pc, err := equity.NewPatternCalculator()
	assert.Nil(t, err)

	type testcase struct {
		pos  string
		forA int
		forB int
	}
	for _, tc := range []testcase{
		{"7/7/7/7/7/7", 0, 0},
		{"7/7/7/7/7/3X3", 175, -175},
		{"7/7/7/7/7/XXX4", 1235, -5225},
		{"7/7/7/7/O6/XXX4", 1115, -5105},
		{"7/7/7/7/3O3/XXX4", 965, -4955},
		{"7/7/7/7/2O4/1XXO3", -140, 170},
	} {
		b := mustBoard(t, tc.pos)
		assert.Equal(t, tc.forA, pc.Evaluate(b, board.PlayerA), tc.pos)
		assert.Equal(t, tc.forB, pc.Evaluate(b, board.PlayerB), tc.pos)
	}
}

func TestOpenThreeSigns(t *testing.T) {
	pc, err := equity.NewPatternCalculator()
	assert.Nil(t, err)
	// An open three is good for its owner and bad for the other side,
	// whichever concrete token owns it.
	for _, pos := range []string{"7/7/7/7/7/XXX4", "7/7/7/7/7/OOO4"} {
		b := mustBoard(t, pos)
		owner := b.At(5, 0)
		assert.Greater(t, pc.Evaluate(b, owner), 0)
		assert.Less(t, pc.Evaluate(b, owner.Opponent()), 0)
	}
}

func TestBadTables(t *testing.T) {
	_, err := equity.NewPatternCalculatorFromBytes([]byte("pppp: 1\nppxp: 2\n"))
	assert.True(t, errors.Is(err, equity.ErrBadPattern))

	_, err = equity.NewPatternCalculatorFromBytes([]byte("ppp: 1\n"))
	assert.True(t, errors.Is(err, equity.ErrBadPattern))

	_, err = equity.NewPatternCalculatorFromBytes([]byte("pppp: 1\npppp: 2\n"))
	assert.NotNil(t, err)
}

func TestTableFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "weights.yaml")
	assert.Nil(t, os.WriteFile(path, []byte("pnnn: 7\n"), 0o644))

	pc, err := equity.NewPatternCalculatorFromFile(path)
	assert.Nil(t, err)
	b := mustBoard(t, "7/7/7/7/7/X6")
	// Only the bottom row window starting at column 0 reads pnnn.
	assert.Equal(t, 7, pc.Evaluate(b, board.PlayerA))
	assert.Equal(t, 0, pc.Evaluate(b, board.PlayerB))

	_, err = equity.NewPatternCalculatorFromFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.NotNil(t, err)
}

func TestSharedCalculator(t *testing.T) {
	cfg := config.DefaultConfig()
	pc1, err := equity.GetPatternCalculator(cfg)
	assert.Nil(t, err)
	pc2, err := equity.GetPatternCalculator(cfg)
	assert.Nil(t, err)
	assert.Same(t, pc1, pc2)
	assert.Equal(t, 80, len(pc1.Table()))

	path := filepath.Join(t.TempDir(), "weights.yaml")
	assert.Nil(t, os.WriteFile(path, []byte("pnnn: 7\n"), 0o644))
	cfg.Set(config.ConfigWeightsPath, path)
	pc3, err := equity.GetPatternCalculator(cfg)
	assert.Nil(t, err)
	assert.NotSame(t, pc1, pc3)
	assert.Equal(t, 1, len(pc3.Table()))

	cfg.Set(config.ConfigWeightsPath, filepath.Join(t.TempDir(), "nope.yaml"))
	_, err = equity.GetPatternCalculator(cfg)
	assert.NotNil(t, err)

	_, err = equity.PatternCacheLoadFunc(cfg, "leaves:foo")
	assert.NotNil(t, err)
}

func TestOpenPaths(t *testing.T) {
	var opc equity.OpenPathCalculator

	empty := board.NewTicTacToeBoard()
	assert.Equal(t, 8, equity.OpenPaths(empty, board.PlayerA))
	assert.Equal(t, 0, opc.Evaluate(empty, board.PlayerB))

	center := mustBoard(t, "3/1X1/3")
	assert.Equal(t, 8, equity.OpenPaths(center, board.PlayerA))
	assert.Equal(t, 4, equity.OpenPaths(center, board.PlayerB))
	assert.Equal(t, 4, opc.Evaluate(center, board.PlayerA))
	assert.Equal(t, -4, opc.Evaluate(center, board.PlayerB))

	corner := mustBoard(t, "X2/3/3")
	assert.Equal(t, 3, opc.Evaluate(corner, board.PlayerA))

	full := mustBoard(t, "XOX/XOO/OXX")
	v := opc.Evaluate(full, board.PlayerA)
	assert.True(t, v >= -8 && v <= 8)
}

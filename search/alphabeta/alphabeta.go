// Package alphabeta implements the gravity-game search: depth-limited
// minimax with alpha-beta pruning. Every branch plays on its own copy of
// the board, so sibling subtrees never share state.
package alphabeta

import (
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/domino14/gridgame/board"
	"github.com/domino14/gridgame/equity"
	"github.com/domino14/gridgame/rules"
	"github.com/domino14/gridgame/search"
)

// thanks Wikipedia:
/**function alphabeta(node, depth, α, β, maximizingPlayer) is
    if depth = 0 or node is a terminal node then
        return the heuristic value of node
    if maximizingPlayer then
        value := −∞
        for each child of node do
            value := max(value, alphabeta(child, depth − 1, α, β, FALSE))
            α := max(α, value)
            if α ≥ β then
                break (* β cut-off *)
        return value
    else
        value := +∞
        for each child of node do
            value := min(value, alphabeta(child, depth − 1, α, β, TRUE))
            β := min(β, value)
            if α ≥ β then
                break (* α cut-off *)
        return value
**/

// DefaultDepth is how many plies the search looks ahead, whatever the
// phase of the game.
const DefaultDepth = 5

// Solver implements the minimax + alphabeta algorithm.
type Solver struct {
	evaluator equity.Evaluator
	depth     int
	threads   int
	// With pruning disabled the same tree is searched exhaustively. Used to
	// check that pruning never changes the answer.
	disablePruning bool

	nodes atomic.Uint64
}

// NewSolver creates a single-threaded solver searching DefaultDepth plies.
func NewSolver(ev equity.Evaluator) *Solver {
	return &Solver{
		evaluator: ev,
		depth:     DefaultDepth,
		threads:   1,
	}
}

func (s *Solver) SetDepth(d int) {
	if d < 1 {
		d = 1
	}
	s.depth = d
}

func (s *Solver) Depth() int {
	return s.depth
}

// SetThreads splits the root moves over up to n goroutines. The answer is
// the same as with one thread.
func (s *Solver) SetThreads(n int) {
	if n < 1 {
		n = 1
	}
	s.threads = n
}

func (s *Solver) SetPruning(on bool) {
	s.disablePruning = !on
}

// Nodes is the number of positions visited by the last Solve.
func (s *Solver) Nodes() uint64 {
	return s.nodes.Load()
}

// Minimax searches depth plies below b. self is the maximizing side and
// opp the minimizing side; maximizing says whose turn it is at b. It
// returns the score and the first column (in ascending order) that
// achieved it, or -1 if no column did better than the starting bound.
//
// b is never modified.
func (s *Solver) Minimax(b *board.Board, depth int, maximizing bool,
	alpha, beta int, self, opp board.Token) (int, int) {

	s.nodes.Add(1)
	// A completed run ends the game; it is never expanded further. The
	// player who completed it is the one who just moved.
	if w, ok := rules.Winner(b, rules.RunLength); ok {
		if w == self {
			return search.Infinity, -1
		}
		return -search.Infinity, -1
	}
	if depth == 0 || rules.IsFull(b) {
		return s.evaluator.Evaluate(b, self), -1
	}

	bestCol := -1
	if maximizing {
		maxEval := -search.Infinity
		for col := 0; col < b.Width(); col++ {
			if !b.ColumnOpen(col) {
				continue
			}
			child := b.Copy()
			if _, err := child.Play(col, self); err != nil {
				continue
			}
			eval, _ := s.Minimax(child, depth-1, false, alpha, beta, self, opp)
			if eval > maxEval {
				maxEval = eval
				bestCol = col
			}
			alpha = max(alpha, eval)
			if beta <= alpha && !s.disablePruning {
				break
			}
		}
		return maxEval, bestCol
	}

	minEval := search.Infinity
	for col := 0; col < b.Width(); col++ {
		if !b.ColumnOpen(col) {
			continue
		}
		child := b.Copy()
		if _, err := child.Play(col, opp); err != nil {
			continue
		}
		eval, _ := s.Minimax(child, depth-1, true, alpha, beta, self, opp)
		if eval < minEval {
			minEval = eval
			bestCol = col
		}
		beta = min(beta, eval)
		if beta <= alpha && !s.disablePruning {
			break
		}
	}
	return minEval, bestCol
}

// Solve searches the configured depth below b for who.
func (s *Solver) Solve(b *board.Board, who board.Token) search.Result {
	log.Debug().
		Int("depth", s.depth).
		Int("threads", s.threads).
		Bool("pruning", !s.disablePruning).
		Msg("alphabeta-solve-config")

	tstart := time.Now()
	s.nodes.Store(0)

	var score, col int
	if s.threads > 1 {
		score, col = s.solveRootParallel(b, who)
	} else {
		score, col = s.Minimax(b, s.depth, true, -search.Infinity, search.Infinity,
			who, who.Opponent())
	}

	res := search.NoMove(score)
	res.Nodes = s.nodes.Load()
	if col >= 0 {
		res.Col = col
		res.Row = landingRow(b, col)
	}
	log.Debug().
		Int("score", score).
		Int("col", col).
		Uint64("nodes", res.Nodes).
		Float64("time-elapsed-sec", time.Since(tstart).Seconds()).
		Msg("solve-returning")
	return res
}

type rootResult struct {
	score    int
	searched bool
}

// solveRootParallel searches each root column in its own goroutine with a
// full window and folds the results in column order with the same strict
// test as Minimax. A root child whose value beats every column to its left
// gets that exact value from the serial search too, so both agree on the
// score and the column.
func (s *Solver) solveRootParallel(b *board.Board, self board.Token) (int, int) {
	opp := self.Opponent()
	if rules.HasWin(b, rules.RunLength) || s.depth == 0 || rules.IsFull(b) {
		return s.Minimax(b, s.depth, true, -search.Infinity, search.Infinity, self, opp)
	}
	s.nodes.Add(1)
	results := make([]rootResult, b.Width())
	g := errgroup.Group{}
	g.SetLimit(s.threads)
	for col := 0; col < b.Width(); col++ {
		if !b.ColumnOpen(col) {
			continue
		}
		g.Go(func() error {
			child := b.Copy()
			if _, err := child.Play(col, self); err != nil {
				return err
			}
			eval, _ := s.Minimax(child, s.depth-1, false,
				-search.Infinity, search.Infinity, self, opp)
			results[col] = rootResult{score: eval, searched: true}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Err(err).Msg("parallel-root-search-failed")
		return s.Minimax(b, s.depth, true, -search.Infinity, search.Infinity, self, opp)
	}

	best, bestCol := -search.Infinity, -1
	for col, r := range results {
		if r.searched && r.score > best {
			best = r.score
			bestCol = col
		}
	}
	return best, bestCol
}

func landingRow(b *board.Board, col int) int {
	c := b.Column(col)
	for r := len(c) - 1; r >= 0; r-- {
		if c[r] == board.Empty {
			return r
		}
	}
	return -1
}

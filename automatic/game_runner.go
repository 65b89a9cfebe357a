// Package automatic plays connect-four games between computer players,
// logs every turn, and tallies the results.
package automatic

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"lukechampine.com/frand"

	"github.com/domino14/gridgame/ai/player"
	"github.com/domino14/gridgame/board"
	"github.com/domino14/gridgame/config"
	"github.com/domino14/gridgame/equity"
	"github.com/domino14/gridgame/game"
	"github.com/domino14/gridgame/search/alphabeta"
)

const (
	SearchPlayer = "search"
	RandomPlayer = "random"
)

// GameRunner is the master struct here for the automatic game logic.
type GameRunner struct {
	game    *game.Game
	config  *config.Config
	logchan chan string

	names   [2]string
	players [2]player.Player

	openingPlies int
	seed         *[32]byte
	rng          *frand.RNG
}

// NewGameRunner creates a runner where the search player plays itself.
func NewGameRunner(logchan chan string, cfg *config.Config) (*GameRunner, error) {
	r := &GameRunner{logchan: logchan, config: cfg}
	if err := r.Init(SearchPlayer, SearchPlayer); err != nil {
		return nil, err
	}
	return r, nil
}

// Init sets up the two players by name. player1 moves first.
func (r *GameRunner) Init(player1, player2 string) error {
	for idx, name := range []string{player1, player2} {
		p, err := r.newPlayer(name)
		if err != nil {
			return err
		}
		r.names[idx] = name
		r.players[idx] = p
	}
	return nil
}

func (r *GameRunner) newPlayer(name string) (player.Player, error) {
	switch name {
	case SearchPlayer:
		pc, err := equity.GetPatternCalculator(r.config)
		if err != nil {
			return nil, err
		}
		s := alphabeta.NewSolver(pc)
		s.SetDepth(r.config.GetInt(config.ConfigSearchDepth))
		s.SetThreads(r.config.GetInt(config.ConfigSearchThreads))
		return player.NewConnectFourPlayer(s), nil
	case RandomPlayer:
		return player.NewSeededRandomPlayer(r.rng), nil
	}
	return nil, fmt.Errorf("unknown player type %q", name)
}

// SetOpeningPlies makes the first n moves of every game random, so that
// two deterministic players do not replay the same game forever.
func (r *GameRunner) SetOpeningPlies(n int) {
	r.openingPlies = max(n, 0)
}

// Seed makes the random choices of the following games reproducible.
func (r *GameRunner) Seed(seed [32]byte) {
	r.seed = &seed
}

// StartGame sets up a fresh board.
func (r *GameRunner) StartGame() error {
	g, err := game.New(game.VariantConnectFour)
	if err != nil {
		return err
	}
	r.game = g
	if r.seed != nil {
		r.rng = frand.NewCustom(r.seed[:], 1024, 12)
		r.game.SetUid(fmt.Sprintf("%x", r.seed[:6]))
	}
	for idx, name := range r.names {
		if name == RandomPlayer {
			r.players[idx] = player.NewSeededRandomPlayer(r.rng)
		}
	}
	return nil
}

func (r *GameRunner) Game() *game.Game {
	return r.game
}

func (r *GameRunner) playerIdx(t board.Token) int {
	if t == board.PlayerA {
		return 0
	}
	return 1
}

func (r *GameRunner) randomColumn() int {
	open := player.OpenColumns(r.game.Board())
	if r.rng != nil {
		return open[r.rng.Intn(len(open))]
	}
	return open[frand.Intn(len(open))]
}

// PlayTurn asks the player on turn for a column and plays it.
func (r *GameRunner) PlayTurn() error {
	if r.game.Over() {
		return game.ErrGameOver
	}
	onturn := r.game.OnTurn()
	idx := r.playerIdx(onturn)

	var col int
	var err error
	if r.game.Turn() < r.openingPlies {
		col = r.randomColumn()
	} else {
		col, err = r.players[idx].Play(r.game.Board(), onturn)
		if err != nil {
			return err
		}
	}
	if err := r.game.PlayColumn(col); err != nil {
		return err
	}

	if r.logchan != nil {
		last, _ := r.game.LastTurn()
		result := ""
		if r.game.Over() {
			result = "draw"
			if _, ok := r.game.Winner(); ok {
				result = "win"
			}
		}
		r.logchan <- fmt.Sprintf("%v,%v,%v,%v,%v,%v,%v\n",
			r.names[idx]+"-"+fmt.Sprint(idx+1),
			r.game.Uid(),
			r.game.Turn(),
			onturn,
			last.Col,
			last.Row,
			result)
	}
	log.Debug().Str("uid", r.game.Uid()).Int("turn", r.game.Turn()).Int("col", col).Msg("played-turn")
	return nil
}

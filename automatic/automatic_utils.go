package automatic

// Data collection for automatic games. Computer vs computer, etc.

import (
	"context"
	"errors"
	"expvar"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"github.com/domino14/gridgame/board"
	"github.com/domino14/gridgame/config"
	"github.com/domino14/gridgame/stats"
)

var (
	CVCCounter *expvar.Int
	IsPlaying  *expvar.Int
)

func init() {
	CVCCounter = expvar.NewInt("cvcCounter")
	IsPlaying = expvar.NewInt("isPlaying")
}

const logHeader = "playerID,gameID,turn,token,column,row,result\n"

// GameResult is the outcome of one finished game.
type GameResult struct {
	GameID string
	Winner board.Token
	Turns  int
}

// Summary tallies a batch of games from the point of view of the first
// player.
type Summary struct {
	Games    int
	WinsA    int
	WinsB    int
	Draws    int
	Length   stats.Statistic
	FirstWin stats.Proportion
}

// Summarize tallies results.
func Summarize(results []GameResult) *Summary {
	s := &Summary{Games: len(results)}
	s.WinsA = lo.CountBy(results, func(r GameResult) bool { return r.Winner == board.PlayerA })
	s.WinsB = lo.CountBy(results, func(r GameResult) bool { return r.Winner == board.PlayerB })
	s.Draws = s.Games - s.WinsA - s.WinsB
	for _, r := range results {
		s.Length.Push(float64(r.Turns))
		switch r.Winner {
		case board.PlayerA:
			s.FirstWin.Win()
		case board.PlayerB:
			s.FirstWin.Loss()
		default:
			s.FirstWin.Draw()
		}
	}
	return s
}

func (s *Summary) String() string {
	if s.Games == 0 {
		return "Games played: 0\n"
	}
	var sb strings.Builder
	pct := func(n int) float64 { return 100.0 * float64(n) / float64(s.Games) }
	fmt.Fprintf(&sb, "Games played: %d\n", s.Games)
	fmt.Fprintf(&sb, "%s wins: %d (%.3f%%)\n", board.PlayerA, s.WinsA, pct(s.WinsA))
	fmt.Fprintf(&sb, "%s wins: %d (%.3f%%)\n", board.PlayerB, s.WinsB, pct(s.WinsB))
	fmt.Fprintf(&sb, "Draws: %d (%.3f%%)\n", s.Draws, pct(s.Draws))
	low, high := s.FirstWin.Interval(95)
	fmt.Fprintf(&sb, "First player score: %.3f (95%% CI %.3f - %.3f)\n", s.FirstWin.Rate(), low, high)
	fmt.Fprintf(&sb, "Mean length: %.3f  Stdev: %.3f\n", s.Length.Mean(), s.Length.Stdev())
	return sb.String()
}

// CompVsComp plays out a game to the end.
func (r *GameRunner) CompVsComp() (GameResult, error) {
	if err := r.StartGame(); err != nil {
		return GameResult{}, err
	}
	for !r.game.Over() {
		if err := r.PlayTurn(); err != nil {
			return GameResult{}, err
		}
	}
	res := GameResult{GameID: r.game.Uid(), Turns: r.game.Turn()}
	if w, ok := r.game.Winner(); ok {
		res.Winner = w
	}
	log.Debug().Str("uid", res.GameID).Str("winner", res.Winner.String()).
		Int("turns", res.Turns).Msg("game-over")
	return res, nil
}

type CompVCompOptions struct {
	NumGames       int
	Threads        int
	OutputFilename string
	Player1        string
	Player2        string
	OpeningPlies   int
	// Seeds, when given, make game i use Seeds[i % len(Seeds)].
	Seeds [][32]byte
}

type job struct {
	idx int
}

// StartCompVComp plays opts.NumGames games on opts.Threads workers, writing
// every turn to opts.OutputFilename. It returns when all games are done or
// ctx is cancelled; games already started are finished either way.
func StartCompVComp(ctx context.Context, cfg *config.Config, opts CompVCompOptions) (*Summary, error) {
	if IsPlaying.Value() > 0 {
		return nil, errors.New("games are already being played, please wait till complete")
	}
	threads := max(opts.Threads, 1)
	p1 := lo.Ternary(opts.Player1 == "", SearchPlayer, opts.Player1)
	p2 := lo.Ternary(opts.Player2 == "", SearchPlayer, opts.Player2)

	// Set up every runner first so a bad player name fails early.
	runners := make([]*GameRunner, threads)
	logChan := make(chan string, 100)
	for i := range runners {
		runners[i] = &GameRunner{logchan: logChan, config: cfg}
		if err := runners[i].Init(p1, p2); err != nil {
			return nil, err
		}
		runners[i].SetOpeningPlies(opts.OpeningPlies)
	}

	logfile, err := os.Create(opts.OutputFilename)
	if err != nil {
		return nil, err
	}
	log.Info().Int("games", opts.NumGames).Int("threads", threads).
		Str("player1", p1).Str("player2", p2).Msg("starting-autoplay")

	loggerDone := make(chan error, 1)
	go func() {
		var werr error
		if _, err := logfile.WriteString(logHeader); err != nil {
			werr = err
		}
		for msg := range logChan {
			if werr != nil {
				continue
			}
			if _, err := logfile.WriteString(msg); err != nil {
				werr = err
			}
		}
		if err := logfile.Close(); err != nil && werr == nil {
			werr = err
		}
		log.Info().Msg("exiting-turn-logger")
		loggerDone <- werr
	}()

	CVCCounter.Set(0)
	jobs := make(chan job, 100)
	results := make(chan GameResult, 100)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer close(jobs)
		for i := 0; i < opts.NumGames; i++ {
			select {
			case <-gctx.Done():
				log.Info().Int("queued", i).Msg("got-stop-signal")
				return nil
			case jobs <- job{idx: i}:
			}
		}
		log.Info().Msg("finished-queueing-jobs")
		return nil
	})
	for _, r := range runners {
		g.Go(func() error {
			IsPlaying.Add(1)
			defer IsPlaying.Add(-1)
			for j := range jobs {
				if gctx.Err() != nil {
					continue
				}
				if len(opts.Seeds) > 0 {
					r.Seed(opts.Seeds[j.idx%len(opts.Seeds)])
				}
				res, err := r.CompVsComp()
				if err != nil {
					return err
				}
				CVCCounter.Add(1)
				results <- res
			}
			return nil
		})
	}

	collected := make(chan []GameResult, 1)
	go func() {
		var all []GameResult
		for res := range results {
			all = append(all, res)
		}
		collected <- all
	}()

	gerr := g.Wait()
	close(logChan)
	close(results)
	all := <-collected
	if err := <-loggerDone; err != nil && gerr == nil {
		gerr = err
	}
	if gerr != nil {
		return nil, gerr
	}
	log.Info().Int("games", len(all)).Msg("all-games-finished")
	return Summarize(all), nil
}

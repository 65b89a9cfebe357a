package shell

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/domino14/gridgame/automatic"
	"github.com/domino14/gridgame/board"
	"github.com/domino14/gridgame/config"
	"github.com/domino14/gridgame/equity"
	"github.com/domino14/gridgame/game"
)

type Response struct {
	message string
}

type CmdOptions map[string][]string

func (c CmdOptions) String(key string) string {
	v := c[key]
	if len(v) > 0 {
		return v[0]
	}
	return ""
}

func (c CmdOptions) Int(key string) (int, error) {
	v := c[key]
	if len(v) == 0 {
		return 0, errors.New(key + " not found in options")
	}
	return strconv.Atoi(v[0])
}

func (c CmdOptions) IntDefault(key string, defaultI int) (int, error) {
	v := c[key]
	if len(v) == 0 {
		return defaultI, nil
	}
	return strconv.Atoi(v[0])
}

func (c CmdOptions) Bool(key string) bool {
	v := c[key]
	if len(v) == 0 {
		return false
	}
	return strings.ToLower(v[0]) == "true"
}

func msg(message string) *Response {
	return &Response{message: message}
}

func (sc *ShellController) newGame(cmd *shellcmd) (*Response, error) {
	variant := game.VariantConnectFour
	if len(cmd.args) > 0 {
		var err error
		variant, err = game.ParseVariant(cmd.args[0])
		if err != nil {
			return nil, err
		}
	}
	g, err := game.New(variant)
	if err != nil {
		return nil, err
	}
	sc.game = g
	return msg(sc.game.ToDisplayText()), nil
}

func (sc *ShellController) load(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) == 0 {
		return nil, errors.New("need arguments for load")
	}
	notation := cmd.args[len(cmd.args)-1]
	b, err := board.FromNotation(notation)
	if err != nil {
		return nil, err
	}
	var variant game.Variant
	if len(cmd.args) > 1 {
		variant, err = game.ParseVariant(cmd.args[0])
		if err != nil {
			return nil, err
		}
	} else if b.Width() == 3 && b.Height() == 3 {
		variant = game.VariantTicTacToe
	} else {
		variant = game.VariantConnectFour
	}
	g, err := game.NewFromBoard(variant, b)
	if err != nil {
		return nil, err
	}
	sc.game = g
	return msg(sc.game.ToDisplayText()), nil
}

func (sc *ShellController) show(cmd *shellcmd) (*Response, error) {
	if sc.game == nil {
		return nil, errNoGame
	}
	return msg(sc.game.ToDisplayText()), nil
}

func (sc *ShellController) gid(cmd *shellcmd) (*Response, error) {
	if sc.game == nil {
		return nil, errors.New("no currently loaded game")
	}
	return msg(sc.game.Uid()), nil
}

func (sc *ShellController) play(cmd *shellcmd) (*Response, error) {
	if sc.game == nil {
		return nil, errNoGame
	}
	coords := make([]int, len(cmd.args))
	for i, a := range cmd.args {
		n, err := strconv.Atoi(a)
		if err != nil {
			return nil, fmt.Errorf("%q is not a number", a)
		}
		coords[i] = n
	}
	var err error
	switch sc.game.Variant() {
	case game.VariantConnectFour:
		if len(coords) != 1 {
			return nil, errors.New("usage: play <column>")
		}
		err = sc.game.PlayColumn(coords[0])
	case game.VariantTicTacToe:
		if len(coords) != 2 {
			return nil, errors.New("usage: play <row> <column>")
		}
		err = sc.game.PlayCell(coords[0], coords[1])
	}
	if err != nil {
		return nil, err
	}
	return msg(sc.game.ToDisplayText()), nil
}

// aiplay has the computer move for whoever is on turn.
func (sc *ShellController) aiplay(cmd *shellcmd) (*Response, error) {
	if sc.game == nil {
		return nil, errNoGame
	}
	if sc.game.Over() {
		return nil, game.ErrGameOver
	}
	b := sc.game.Board()
	onturn := sc.game.OnTurn()
	switch sc.game.Variant() {
	case game.VariantConnectFour:
		col, err := sc.c4player.Play(b, onturn)
		if err != nil {
			return nil, err
		}
		if err := sc.game.PlayColumn(col); err != nil {
			return nil, err
		}
	case game.VariantTicTacToe:
		row, col, err := sc.tttplayer.Play(b, onturn)
		if err != nil {
			return nil, err
		}
		if err := sc.game.PlayCell(row, col); err != nil {
			return nil, err
		}
	}
	return msg(sc.game.ToDisplayText()), nil
}

func (sc *ShellController) eval(cmd *shellcmd) (*Response, error) {
	if sc.game == nil {
		return nil, errNoGame
	}
	b := sc.game.Board()
	onturn := sc.game.OnTurn()
	var sb strings.Builder
	switch sc.game.Variant() {
	case game.VariantConnectFour:
		fmt.Fprintf(&sb, "Pattern score for %s: %d\n", onturn, sc.evaluator.Evaluate(b, onturn))
		res := sc.solver.Solve(b.Copy(), onturn)
		fmt.Fprintf(&sb, "Search (depth %d): %s", sc.solver.Depth(), res)
	case game.VariantTicTacToe:
		fmt.Fprintf(&sb, "Open paths for %s: %d (%s: %d)", onturn,
			equity.OpenPaths(b, onturn), onturn.Opponent(), equity.OpenPaths(b, onturn.Opponent()))
	}
	return msg(sb.String()), nil
}

func (sc *ShellController) settingsText() string {
	return fmt.Sprintf("depth: %d\nthreads: %d\nlevel: %d",
		sc.solver.Depth(), sc.config.GetInt(config.ConfigSearchThreads), sc.tttplayer.Level())
}

func (sc *ShellController) set(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) == 0 {
		return msg(sc.settingsText()), nil
	}
	if len(cmd.args) != 2 {
		return nil, errors.New("usage: set depth|threads|level <n>")
	}
	opt := cmd.args[0]
	n, err := strconv.Atoi(cmd.args[1])
	if err != nil {
		return nil, fmt.Errorf("%q is not a number", cmd.args[1])
	}
	if n < 1 {
		return nil, fmt.Errorf("%s must be at least 1", opt)
	}
	switch opt {
	case "depth":
		sc.solver.SetDepth(n)
		sc.config.Set(config.ConfigSearchDepth, n)
	case "threads":
		sc.solver.SetThreads(n)
		sc.config.Set(config.ConfigSearchThreads, n)
	case "level":
		sc.tttplayer.SetLevel(n)
		sc.config.Set(config.ConfigTTTLevel, n)
	default:
		return nil, fmt.Errorf("unknown setting %q", opt)
	}
	return msg("set " + opt + " to " + strconv.Itoa(n)), nil
}

func (sc *ShellController) autoplay(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) > 0 && cmd.args[0] == "stop" {
		if !sc.autoplayRunning() {
			return nil, errors.New("no autoplay is running")
		}
		sc.autoplayCancel()
		sc.waitAutoplay()
		return msg("autoplay stopped"), nil
	}
	if sc.autoplayRunning() {
		return nil, errors.New("autoplay is already running; use autoplay stop")
	}
	numGames := 100
	if len(cmd.args) > 0 {
		var err error
		numGames, err = strconv.Atoi(cmd.args[0])
		if err != nil || numGames < 1 {
			return nil, fmt.Errorf("bad number of games %q", cmd.args[0])
		}
	}
	threads, err := cmd.options.IntDefault("threads", 1)
	if err != nil {
		return nil, err
	}
	opening, err := cmd.options.IntDefault("opening", 0)
	if err != nil {
		return nil, err
	}
	opts := automatic.CompVCompOptions{
		NumGames:       numGames,
		Threads:        threads,
		OutputFilename: sc.config.GetString(config.ConfigGamesLogPath),
		Player1:        automatic.SearchPlayer,
		Player2:        automatic.SearchPlayer,
		OpeningPlies:   opening,
	}
	if vs := cmd.options.String("vs"); vs != "" {
		opts.Player2 = vs
	}
	if p1 := cmd.options.String("first"); p1 != "" {
		opts.Player1 = p1
	}
	if out := cmd.options.String("logfile"); out != "" {
		opts.OutputFilename = out
	}
	if path := cmd.options.String("seeds"); path != "" {
		opts.Seeds, err = automatic.LoadSeeds(path)
		if err != nil {
			return nil, err
		}
	}

	// set may change the shell's config while the batch runs.
	cfg := sc.config.Snapshot()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	sc.autoplayCancel = cancel
	sc.autoplayDone = done
	go func() {
		defer close(done)
		defer cancel()
		summary, err := automatic.StartCompVComp(ctx, cfg, opts)
		if err != nil {
			log.Err(err).Msg("autoplay-failed")
			sc.showError(err)
			return
		}
		log.Info().Int("games", summary.Games).Str("logfile", opts.OutputFilename).Msg("autoplay-done")
		sc.showMessage(summary.String())
	}()
	return msg(fmt.Sprintf("playing %d games in the background; turns are logged to %s",
		numGames, opts.OutputFilename)), nil
}

// autoplayRunning reports whether a background batch is still playing. A
// batch that has finished on its own is cleared.
func (sc *ShellController) autoplayRunning() bool {
	if sc.autoplayDone == nil {
		return false
	}
	select {
	case <-sc.autoplayDone:
		sc.waitAutoplay()
		return false
	default:
		return true
	}
}

// waitAutoplay blocks until a background autoplay batch, if any, finishes.
func (sc *ShellController) waitAutoplay() {
	if sc.autoplayDone == nil {
		return
	}
	<-sc.autoplayDone
	sc.autoplayDone = nil
	sc.autoplayCancel = nil
}

func (sc *ShellController) analyzeLog(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) == 0 {
		return nil, errors.New("need a log file to analyze")
	}
	summary, err := automatic.AnalyzeLogFile(cmd.args[0])
	if err != nil {
		return nil, err
	}
	return msg(summary.String()), nil
}

func (sc *ShellController) help(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) == 0 {
		return usage("standard")
	}
	return usageTopic(cmd.args[0])
}

package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"
	"syscall"

	"github.com/chzyer/readline"
	"github.com/kballard/go-shellquote"
	"github.com/rs/zerolog/log"

	"github.com/domino14/gridgame/ai/player"
	"github.com/domino14/gridgame/config"
	"github.com/domino14/gridgame/equity"
	"github.com/domino14/gridgame/game"
	"github.com/domino14/gridgame/search/alphabeta"
)

var (
	errNoData            = errors.New("no data in this line")
	errWrongOptionSyntax = errors.New("wrong format; all options need arguments")
	errNoGame            = errors.New("please start or load a game first")
	errQuit              = errors.New("sending quit signal")
)

type ShellController struct {
	l          *readline.Instance
	out        io.Writer
	outLock    sync.Mutex
	config     *config.Config
	execPath   string
	gitVersion string

	game      *game.Game
	evaluator *equity.PatternCalculator
	solver    *alphabeta.Solver
	c4player  *player.ConnectFourPlayer
	tttplayer *player.TicTacToePlayer

	autoplayCancel context.CancelFunc
	autoplayDone   chan struct{}
}

type shellcmd struct {
	cmd     string
	args    []string
	options CmdOptions
}

func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

func showMessage(msg string, w io.Writer) {
	io.WriteString(w, msg)
	io.WriteString(w, "\n")
}

// NewShellController sets up the players from cfg and a readline instance
// for the interactive loop.
func NewShellController(cfg *config.Config, execPath, gitVersion string) *ShellController {
	sc := newController(cfg, os.Stderr)
	sc.execPath = execPath
	sc.gitVersion = gitVersion

	l, err := readline.NewEx(&readline.Config{
		Prompt:          "\033[31mgridgame>\033[0m ",
		HistoryFile:     cfg.GetString(config.ConfigHistoryFile),
		AutoComplete:    NewShellCompleter(sc),
		EOFPrompt:       "exit",
		InterruptPrompt: "^C",

		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})
	if err != nil {
		panic(err)
	}
	sc.l = l
	sc.out = l.Stderr()
	return sc
}

func newController(cfg *config.Config, out io.Writer) *ShellController {
	sc := &ShellController{config: cfg, out: out}

	var err error
	sc.evaluator, err = equity.GetPatternCalculator(cfg)
	if err != nil {
		log.Err(err).Str("path", cfg.GetString(config.ConfigWeightsPath)).
			Msg("falling-back-to-default-weights")
		sc.evaluator, err = equity.NewPatternCalculator()
		if err != nil {
			// The built-in table is embedded; it always parses.
			panic(err)
		}
	}
	sc.solver = alphabeta.NewSolver(sc.evaluator)
	sc.solver.SetDepth(cfg.GetInt(config.ConfigSearchDepth))
	sc.solver.SetThreads(cfg.GetInt(config.ConfigSearchThreads))
	sc.c4player = player.NewConnectFourPlayer(sc.solver)
	sc.tttplayer = player.NewTicTacToePlayer(cfg.GetInt(config.ConfigTTTLevel))
	return sc
}

// showMessage may be called from a background autoplay batch.
func (sc *ShellController) showMessage(msg string) {
	sc.outLock.Lock()
	defer sc.outLock.Unlock()
	showMessage(msg, sc.out)
}

func (sc *ShellController) showError(err error) {
	sc.showMessage("Error: " + err.Error())
}

func extractFields(line string) (*shellcmd, error) {
	fields, err := shellquote.Split(line)
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, errNoData
	}
	cmd := fields[0]
	var args []string
	options := CmdOptions{}
	for idx := 1; idx < len(fields); idx++ {
		f := fields[idx]
		if isOption(f) {
			if idx == len(fields)-1 {
				return nil, errWrongOptionSyntax
			}
			key := f[1:]
			options[key] = append(options[key], fields[idx+1])
			idx++
			continue
		}
		args = append(args, f)
	}
	return &shellcmd{cmd: cmd, args: args, options: options}, nil
}

// isOption is true for -name but not for a negative number.
func isOption(f string) bool {
	if len(f) < 2 || f[0] != '-' {
		return false
	}
	_, err := strconv.Atoi(f)
	return err != nil
}

func (sc *ShellController) standardModeSwitch(line string, sig chan os.Signal) (*Response, error) {
	cmd, err := extractFields(line)
	if err != nil {
		return nil, err
	}
	switch cmd.cmd {
	case "exit":
		sig <- syscall.SIGINT
		return nil, errQuit
	case "help":
		return sc.help(cmd)
	case "new":
		return sc.newGame(cmd)
	case "load":
		return sc.load(cmd)
	case "show":
		return sc.show(cmd)
	case "gid":
		return sc.gid(cmd)
	case "play":
		return sc.play(cmd)
	case "ai", "aiplay":
		return sc.aiplay(cmd)
	case "eval":
		return sc.eval(cmd)
	case "set":
		return sc.set(cmd)
	case "autoplay":
		return sc.autoplay(cmd)
	case "analyze-log":
		return sc.analyzeLog(cmd)
	case "script":
		return sc.script(cmd)
	default:
		log.Debug().Msgf("you said: %v", strconv.Quote(line))
		return nil, fmt.Errorf("unknown command %q; type help for a list", cmd.cmd)
	}
}

// Execute runs a single command line, as given on the command line of the
// executable.
func (sc *ShellController) Execute(sig chan os.Signal, line string) {
	sc.runLine(sig, line)
	sc.waitAutoplay()
}

func (sc *ShellController) runLine(sig chan os.Signal, line string) bool {
	resp, err := sc.standardModeSwitch(line, sig)
	if errors.Is(err, errQuit) {
		return false
	}
	if err != nil {
		sc.showError(err)
		return true
	}
	if resp != nil && resp.message != "" {
		sc.showMessage(resp.message)
	}
	return true
}

func (sc *ShellController) Loop(sig chan os.Signal) {
	defer sc.l.Close()

	for {
		line, err := sc.l.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				sig <- syscall.SIGINT
				break
			} else {
				continue
			}
		} else if err == io.EOF {
			sig <- syscall.SIGINT
			break
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if !sc.runLine(sig, line) {
			break
		}
	}
	log.Debug().Msgf("Exiting readline loop...")
}

// Cleanup stops a running autoplay batch.
func (sc *ShellController) Cleanup() {
	if sc.autoplayCancel != nil {
		sc.autoplayCancel()
	}
	sc.waitAutoplay()
}

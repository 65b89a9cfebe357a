package shell

import (
	"strconv"
	"strings"

	"github.com/kballard/go-shellquote"
	"github.com/samber/lo"

	"github.com/domino14/gridgame/ai/player"
	"github.com/domino14/gridgame/automatic"
	"github.com/domino14/gridgame/game"
)

// ShellCompleter provides context-aware autocomplete for shell commands
type ShellCompleter struct {
	sc *ShellController
}

func NewShellCompleter(sc *ShellController) *ShellCompleter {
	return &ShellCompleter{sc: sc}
}

// CommandMetadata holds autocomplete information for a command
type CommandMetadata struct {
	Options []string // Available options for this command (e.g., "-threads")
	Args    []string // Possible argument values (for non-option arguments)
}

var commandMetadata = map[string]CommandMetadata{
	"new": {
		Args: []string{"c4", "ttt"},
	},
	"load": {
		Args: []string{"c4", "ttt"},
	},
	"autoplay": {
		Options: []string{"-threads", "-first", "-vs", "-opening", "-logfile", "-seeds"},
		Args:    []string{"stop"},
	},
	"set": {
		Args: []string{"depth", "threads", "level"},
	},
	"help": {
		Args: commandNames,
	},
}

// Common command names for command completion
var commandNames = []string{
	"help", "new", "load", "show", "play", "ai", "eval", "set", "autoplay",
	"analyze-log", "gid", "script", "exit",
}

var playerNames = []string{automatic.SearchPlayer, automatic.RandomPlayer}

// Do implements the readline.AutoComplete interface
// It provides context-aware autocomplete based on what's been typed
func (c *ShellCompleter) Do(line []rune, pos int) ([][]rune, int) {
	// Get the text up to the cursor position
	text := string(line[:pos])

	// Parse the line using shellquote to handle quoted strings properly
	fields, err := shellquote.Split(text)
	if err != nil {
		// If we can't parse, fall back to simple space splitting
		fields = strings.Fields(text)
	}

	// Check if we're in the middle of typing a word or just after a space
	endsWithSpace := len(text) > 0 && text[len(text)-1] == ' '

	var prefix string
	var completions []string

	if len(fields) == 0 || (len(fields) == 1 && !endsWithSpace) {
		if len(fields) == 1 {
			prefix = fields[0]
		}
		completions = commandNames
	} else {
		cmdName := fields[0]

		if !endsWithSpace {
			prefix = fields[len(fields)-1]
		}

		// Get the last complete field to check context
		var lastCompleteField string
		if endsWithSpace {
			lastCompleteField = fields[len(fields)-1]
		} else if len(fields) > 1 {
			lastCompleteField = fields[len(fields)-2]
		}

		switch lastCompleteField {
		case "-vs", "-first":
			completions = playerNames
		}

		// Suggest the open columns when playing connect four.
		if cmdName == "play" && completions == nil && c.sc.game != nil &&
			c.sc.game.Variant() == game.VariantConnectFour {
			completions = lo.Map(player.OpenColumns(c.sc.game.Board()),
				func(col int, _ int) string { return strconv.Itoa(col) })
		}

		if completions == nil {
			if metadata, exists := commandMetadata[cmdName]; exists {
				if strings.HasPrefix(prefix, "-") || len(metadata.Args) == 0 {
					completions = metadata.Options
				} else {
					completions = metadata.Args
				}
			}
		}
	}

	// Filter completions based on prefix
	var matches [][]rune
	for _, completion := range completions {
		if strings.HasPrefix(completion, prefix) {
			// Return only the part that needs to be added
			suffix := completion[len(prefix):]
			matches = append(matches, []rune(suffix))
		}
	}

	return matches, len(prefix)
}

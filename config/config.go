package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	ConfigDebug         = "debug"
	ConfigSearchDepth   = "search-depth"
	ConfigSearchThreads = "search-threads"
	ConfigTTTLevel      = "ttt-level"
	ConfigWeightsPath   = "weights-path"
	ConfigCPUProfile    = "cpu-profile"
	ConfigGamesLogPath  = "games-log-path"
	ConfigHistoryFile   = "history-file"
	ConfigFile          = "config-file"
)

// Config wraps viper. Values come from, in increasing priority: the
// defaults below, an optional YAML config file, GRIDGAME_* environment
// variables, and command-line flags.
type Config struct {
	*viper.Viper
}

func DefaultConfig() *Config {
	c := &Config{viper.New()}
	c.setDefaults()
	return c
}

func (c *Config) setDefaults() {
	c.SetDefault(ConfigDebug, false)
	c.SetDefault(ConfigSearchDepth, 5)
	c.SetDefault(ConfigSearchThreads, 1)
	c.SetDefault(ConfigTTTLevel, 9)
	c.SetDefault(ConfigWeightsPath, "")
	c.SetDefault(ConfigCPUProfile, "")
	c.SetDefault(ConfigGamesLogPath, "/tmp/gridgame-games.csv")
	c.SetDefault(ConfigHistoryFile, "/tmp/gridgame_readline.tmp")
}

// Load parses args as flags and reads the environment. Arguments that are
// not flags are left for the caller (see Args).
func (c *Config) Load(args []string) ([]string, error) {
	if c.Viper == nil {
		c.Viper = viper.New()
	}
	c.setDefaults()

	fs := pflag.NewFlagSet("gridgame", pflag.ContinueOnError)
	fs.Bool(ConfigDebug, false, "debug logging on")
	fs.Int(ConfigSearchDepth, 5, "plies searched by the connect-four engine")
	fs.Int(ConfigSearchThreads, 1, "goroutines used to split the connect-four root")
	fs.Int(ConfigTTTLevel, 9, "tic-tac-toe look-ahead, at least 1")
	fs.String(ConfigWeightsPath, "", "YAML file overriding the built-in pattern weights")
	fs.String(ConfigCPUProfile, "", "write a CPU profile to this file")
	fs.String(ConfigGamesLogPath, "/tmp/gridgame-games.csv", "CSV log written by autoplay")
	fs.String(ConfigHistoryFile, "/tmp/gridgame_readline.tmp", "shell history file")
	fs.String(ConfigFile, "", "optional YAML config file")
	// Everything after the first argument is a shell command line.
	fs.SetInterspersed(false)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if err := c.BindPFlags(fs); err != nil {
		return nil, err
	}

	c.SetEnvPrefix("GRIDGAME")
	c.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	c.AutomaticEnv()

	if cfgFile := c.GetString(ConfigFile); cfgFile != "" {
		c.SetConfigFile(cfgFile)
		if err := c.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if errors.As(err, &notFound) || os.IsNotExist(err) {
				log.Warn().Str("path", cfgFile).Msg("config-file-not-found")
			} else {
				return nil, err
			}
		}
	}
	return fs.Args(), nil
}

// AdjustRelativePaths makes the weights path absolute relative to basepath,
// the directory of the executable.
func (c *Config) AdjustRelativePaths(basepath string) {
	p := c.GetString(ConfigWeightsPath)
	if p == "" || filepath.IsAbs(p) {
		return
	}
	abs := filepath.Join(basepath, p)
	if _, err := os.Stat(p); err == nil {
		return
	}
	log.Debug().Str("from", p).Str("to", abs).Msg("adjusted-weights-path")
	c.Set(ConfigWeightsPath, abs)
}

// Snapshot copies every current setting into a new Config. Viper is not
// safe for concurrent use, so a background job reads a snapshot while the
// shell keeps changing the original.
func (c *Config) Snapshot() *Config {
	s := DefaultConfig()
	for _, k := range c.AllKeys() {
		s.Set(k, c.Get(k))
	}
	return s
}

// SanitizedSettings returns all settings, for logging.
func (c *Config) SanitizedSettings() map[string]any {
	return c.AllSettings()
}

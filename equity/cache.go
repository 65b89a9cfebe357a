package equity

import (
	"errors"
	"strings"

	"github.com/domino14/gridgame/cache"
	"github.com/domino14/gridgame/config"
)

const weightsKeyPrefix = "weights:"

// PatternCacheLoadFunc builds the calculator for a key of the form
// weights:<path>. An empty path means the built-in table.
func PatternCacheLoadFunc(cfg *config.Config, key string) (any, error) {
	path, ok := strings.CutPrefix(key, weightsKeyPrefix)
	if !ok {
		return nil, errors.New("patterncacheloadfunc - bad cache key: " + key)
	}
	if path == "" {
		return NewPatternCalculator()
	}
	return NewPatternCalculatorFromFile(path)
}

// GetPatternCalculator returns the calculator for the weight table named
// in cfg. Calculators are read-only, so one is shared by every caller.
func GetPatternCalculator(cfg *config.Config) (*PatternCalculator, error) {
	key := weightsKeyPrefix + cfg.GetString(config.ConfigWeightsPath)
	obj, err := cache.Load(cfg, key, PatternCacheLoadFunc)
	if err != nil {
		return nil, err
	}
	return obj.(*PatternCalculator), nil
}

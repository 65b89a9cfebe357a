package cache

import (
	"errors"
	"os"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/matryer/is"
	"github.com/rs/zerolog"

	"github.com/domino14/gridgame/config"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	os.Exit(m.Run())
}

func TestLoadOnce(t *testing.T) {
	is := is.New(t)
	cfg := config.DefaultConfig()
	var calls atomic.Int32
	loader := func(cfg *config.Config, key string) (any, error) {
		calls.Add(1)
		return "value-of-" + key, nil
	}

	objs := make([]any, 8)
	errs := make([]error, 8)
	var wg sync.WaitGroup
	for i := range objs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			objs[i], errs[i] = Load(cfg, "once", loader)
		}()
	}
	wg.Wait()
	for i := range objs {
		is.NoErr(errs[i])
		is.Equal(objs[i], "value-of-once")
	}
	is.Equal(calls.Load(), int32(1))
}

func TestFailedLoadIsRetried(t *testing.T) {
	is := is.New(t)
	cfg := config.DefaultConfig()
	fail := true
	loader := func(cfg *config.Config, key string) (any, error) {
		if fail {
			return nil, errors.New("not yet")
		}
		return 42, nil
	}
	_, err := Load(cfg, "retry", loader)
	is.True(err != nil)

	fail = false
	obj, err := Load(cfg, "retry", loader)
	is.NoErr(err)
	is.Equal(obj, 42)
}

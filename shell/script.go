package shell

import (
	"errors"
	"net/http"

	"github.com/cjoudrey/gluahttp"
	"github.com/rs/zerolog/log"
	lua "github.com/yuin/gopher-lua"
	luajson "layeh.com/gopher-json"
)

func getShell(L *lua.LState) *ShellController {
	shell := L.GetGlobal("gridgame_shell")
	ud, ok := shell.(*lua.LUserData)
	if !ok {
		panic("luserdata not right type")
	}
	sc, ok := ud.Value.(*ShellController)
	if !ok {
		panic("shellcontroller not right type")
	}
	return sc
}

// command wraps a shell command so a script can call it with its arguments
// as one string. The function returns what the command would print, or a
// string starting with ERROR.
func command(name string, handler func(*ShellController, *shellcmd) (*Response, error)) lua.LGFunction {
	return func(L *lua.LState) int {
		lv := L.OptString(1, "")
		sc := getShell(L)
		cmd, err := extractFields(name + " " + lv)
		if err != nil {
			log.Err(err).Msg("error-parsing-" + name)
			L.Push(lua.LString("ERROR: " + err.Error()))
			return 1
		}
		r, err := handler(sc, cmd)
		if err != nil {
			log.Err(err).Msg("error-executing-" + name)
			L.Push(lua.LString("ERROR: " + err.Error()))
			return 1
		}
		if r == nil {
			L.Push(lua.LString(""))
			return 1
		}
		L.Push(lua.LString(r.message))
		// return number of results pushed to stack.
		return 1
	}
}

// State pushes a table describing the current game, or nil.
func State(L *lua.LState) int {
	sc := getShell(L)
	if sc.game == nil {
		L.Push(lua.LNil)
		return 1
	}
	tbl := L.NewTable()
	tbl.RawSetString("notation", lua.LString(sc.game.Board().Notation()))
	tbl.RawSetString("variant", lua.LString(string(sc.game.Variant())))
	tbl.RawSetString("onturn", lua.LString(sc.game.OnTurn().String()))
	tbl.RawSetString("turn", lua.LNumber(sc.game.Turn()))
	tbl.RawSetString("over", lua.LBool(sc.game.Over()))
	if w, ok := sc.game.Winner(); ok {
		tbl.RawSetString("winner", lua.LString(w.String()))
	}
	L.Push(tbl)
	return 1
}

func (sc *ShellController) script(cmd *shellcmd) (*Response, error) {
	if cmd.args == nil {
		return nil, errors.New("need arguments for script")
	}

	filepath := cmd.args[0]

	L := lua.NewState()
	defer L.Close()

	luajson.Preload(L)
	L.PreloadModule("http", gluahttp.NewHttpModule(&http.Client{}).Loader)

	lsc := L.NewUserData()
	lsc.Value = sc

	L.SetGlobal("gridgame_shell", lsc)
	L.SetGlobal("gridgame_new", L.NewFunction(command("new", (*ShellController).newGame)))
	L.SetGlobal("gridgame_load", L.NewFunction(command("load", (*ShellController).load)))
	L.SetGlobal("gridgame_show", L.NewFunction(command("show", (*ShellController).show)))
	L.SetGlobal("gridgame_play", L.NewFunction(command("play", (*ShellController).play)))
	L.SetGlobal("gridgame_ai", L.NewFunction(command("ai", (*ShellController).aiplay)))
	L.SetGlobal("gridgame_eval", L.NewFunction(command("eval", (*ShellController).eval)))
	L.SetGlobal("gridgame_set", L.NewFunction(command("set", (*ShellController).set)))
	L.SetGlobal("gridgame_gid", L.NewFunction(command("gid", (*ShellController).gid)))
	L.SetGlobal("gridgame_state", L.NewFunction(State))

	top := L.GetTop()
	if err := L.DoFile(filepath); err != nil {
		log.Err(err).Msg("there was a error")
		return nil, err
	}
	if L.GetTop() == top {
		return nil, nil
	}
	// A script that returns a value gets it printed as JSON.
	ret := L.Get(-1)
	if ret == lua.LNil {
		return nil, nil
	}
	bts, err := luajson.Encode(ret)
	if err != nil {
		return nil, err
	}
	return msg(string(bts)), nil
}

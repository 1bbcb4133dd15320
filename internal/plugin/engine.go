// Package plugin loads Lua palette plugins: small scripts that extend the
// insertion menu with extra symbols.
//
// Each script runs in its own sandboxed Lua state with only the base,
// table, and string libraries opened. A script that fails to load or run
// is logged and skipped; plugins never abort editor startup.
package plugin

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	lua "github.com/yuin/gopher-lua"
)

// ErrNilHost is returned when the engine is created without a host.
var ErrNilHost = errors.New("plugin host cannot be nil")

// Host receives the registrations plugins make.
type Host interface {
	// RegisterSymbol adds a symbol entry to the insertion menu.
	RegisterSymbol(name, code, glyph string, aliases []string) error
}

// Logger is the subset of the app logger the engine needs.
type Logger interface {
	Warn(msg string, args ...any)
	Debug(msg string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Debug(string, ...any) {}

// Engine loads and runs palette plugins.
type Engine struct {
	host Host
	log  Logger
}

// NewEngine creates a plugin engine reporting into the given host.
func NewEngine(host Host, log Logger) (*Engine, error) {
	if host == nil {
		return nil, ErrNilHost
	}
	if log == nil {
		log = nopLogger{}
	}
	return &Engine{host: host, log: log}, nil
}

// LoadDir runs every *.lua script in dir, in lexical order. A missing
// directory is not an error. Script failures are logged and skipped; the
// returned count is the number of scripts that ran cleanly.
func (e *Engine) LoadDir(dir string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("reading plugin dir %s: %w", dir, err)
	}

	var scripts []string
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		scripts = append(scripts, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(scripts)

	loaded := 0
	for _, script := range scripts {
		if err := e.Run(script); err != nil {
			e.log.Warn("plugin %s failed: %v", script, err)
			continue
		}
		e.log.Debug("plugin %s loaded", script)
		loaded++
	}
	return loaded, nil
}

// Run executes a single plugin script in a fresh sandboxed state.
func (e *Engine) Run(script string) error {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	defer L.Close()

	// Open a minimal library set; no io, os, or debug access.
	for _, open := range []struct {
		name string
		fn   lua.LGFunction
	}{
		{lua.BaseLibName, lua.OpenBase},
		{lua.TabLibName, lua.OpenTable},
		{lua.StringLibName, lua.OpenString},
	} {
		if err := L.CallByParam(lua.P{
			Fn:      L.NewFunction(open.fn),
			NRet:    0,
			Protect: true,
		}, lua.LString(open.name)); err != nil {
			return fmt.Errorf("opening lua lib %s: %w", open.name, err)
		}
	}

	e.registerAPI(L)

	if err := L.DoFile(script); err != nil {
		return fmt.Errorf("running %s: %w", script, err)
	}
	return nil
}

// registerAPI exposes the quill global table to scripts.
func (e *Engine) registerAPI(L *lua.LState) {
	api := L.NewTable()
	L.SetGlobal("quill", api)

	L.SetField(api, "symbol", L.NewFunction(func(L *lua.LState) int {
		name := L.CheckString(1)
		code := L.CheckString(2)
		glyph := L.CheckString(3)

		var aliases []string
		if L.GetTop() >= 4 {
			tbl := L.CheckTable(4)
			tbl.ForEach(func(_, v lua.LValue) {
				if s, ok := v.(lua.LString); ok {
					aliases = append(aliases, string(s))
				}
			})
		}

		if err := e.host.RegisterSymbol(name, code, glyph, aliases); err != nil {
			L.RaiseError("register symbol %s: %s", code, err.Error())
		}
		return 0
	}))
}

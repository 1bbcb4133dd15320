// Package app wires the editor components together and runs the main
// event loop: expression tree, caret, renderer, terminal backend, input
// dispatch, insertion palette, plugins, and configuration.
package app

import (
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"

	"github.com/quillmath/quill/internal/config"
	"github.com/quillmath/quill/internal/engine/caret"
	"github.com/quillmath/quill/internal/engine/tree"
	"github.com/quillmath/quill/internal/input"
	"github.com/quillmath/quill/internal/menu"
	"github.com/quillmath/quill/internal/plugin"
	"github.com/quillmath/quill/internal/render"
	"github.com/quillmath/quill/internal/render/backend"
)

// Application is the central coordinator for all editor components.
type Application struct {
	opts   Options
	cfg    config.Config
	logger *Logger

	root       *tree.Expression
	caret      *caret.Caret
	renderer   *render.Renderer
	backend    *backend.Terminal
	dispatcher *input.Dispatcher
	menu       *menu.Menu

	watcher *config.Watcher
	logFile *os.File

	// Palette state. paletteOpen is read by the blink goroutine during
	// redraw; the query is only touched by the event loop.
	paletteOpen atomic.Bool
	queryMu     sync.Mutex
	query       []rune

	running  atomic.Bool
	quitting atomic.Bool

	shutdownOnce sync.Once
}

// Options configures the application.
type Options struct {
	// ConfigPath is the path to the configuration file.
	ConfigPath string

	// PluginDir overrides the configured plugin directory.
	PluginDir string

	// LogLevel overrides the configured logging level.
	LogLevel string

	// Debug forces debug-level logging.
	Debug bool
}

// New creates an application with the given options.
func New(opts Options) (*Application, error) {
	app := &Application{
		opts:     opts,
		renderer: render.New(),
	}

	if err := app.bootstrap(); err != nil {
		app.Shutdown()
		return nil, err
	}
	return app, nil
}

// bootstrap initializes all components in dependency order.
func (app *Application) bootstrap() error {
	var err error

	// 1. Configuration.
	app.cfg, err = config.Load(app.opts.ConfigPath)
	if err != nil {
		return &InitError{Component: "config", Err: err}
	}

	// 2. Logging.
	if err := app.initLogging(); err != nil {
		return &InitError{Component: "logging", Err: err}
	}

	// 3. Expression tree and caret.
	app.root = tree.NewExpression()
	app.caret = caret.New(app.root,
		caret.WithBlinkPeriod(app.cfg.Caret.BlinkPeriod()),
		caret.WithQuiescentWindow(app.cfg.Caret.QuiescentWindow()),
	)

	// 4. Insertion palette.
	registry := menu.NewRegistry()
	if err := menu.RegisterBuiltins(registry); err != nil {
		return &InitError{Component: "menu", Err: err}
	}
	app.menu = menu.New(registry, app.caret)

	// 5. Palette plugins.
	if err := app.loadPlugins(); err != nil {
		return &InitError{Component: "plugins", Err: err}
	}

	// 6. Input dispatch.
	app.dispatcher = input.NewDispatcher(app.caret)
	app.dispatcher.OnMenuRequested(app.openPalette)
	app.dispatcher.OnQuitRequested(func() { app.quitting.Store(true) })

	// 7. Editor notifications. The handler only wakes the event loop:
	// notifications can arrive from the blink-ticker goroutine, and the
	// tree must only be read where it is mutated, on the event loop.
	if _, err := app.caret.OnChange(app.requestRedraw); err != nil {
		return &InitError{Component: "caret", Err: err}
	}
	if _, err := app.caret.OnFocusRequested(app.closePalette); err != nil {
		return &InitError{Component: "caret", Err: err}
	}

	// 8. Configuration live reload.
	if app.opts.ConfigPath != "" {
		app.watcher, err = config.NewWatcher(app.opts.ConfigPath, app.applyConfig,
			config.WithErrorHandler(func(err error) {
				app.logger.Warn("config reload failed: %v", err)
			}))
		if err != nil {
			// The editor still works without live reload.
			app.logger.Warn("config watcher unavailable: %v", err)
		}
	}

	return nil
}

// initLogging builds the application logger from config and options.
func (app *Application) initLogging() error {
	level := app.cfg.Logging.Level
	if app.opts.LogLevel != "" {
		level = app.opts.LogLevel
	}

	var out io.Writer = io.Discard
	if app.cfg.Logging.File != "" {
		f, err := os.OpenFile(app.cfg.Logging.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("opening log file %s: %w", app.cfg.Logging.File, err)
		}
		app.logFile = f
		out = f
	}

	app.logger = NewLogger(ParseLogLevel(level), out)
	if level == "none" {
		app.logger.Disable()
	}
	if app.opts.Debug {
		app.logger.Enable()
		app.logger.SetLevel(LogLevelDebug)
	}
	return nil
}

// loadPlugins runs the palette plugin scripts against the menu's registry.
func (app *Application) loadPlugins() error {
	dir := app.cfg.Plugins.Dir
	if app.opts.PluginDir != "" {
		dir = app.opts.PluginDir
	}
	if dir == "" {
		return nil
	}

	host := &paletteHost{registry: app.menu.Registry()}
	eng, err := plugin.NewEngine(host, app.logger.WithComponent("plugin"))
	if err != nil {
		return err
	}
	loaded, err := eng.LoadDir(dir)
	if err != nil {
		return err
	}
	if loaded > 0 {
		app.logger.Info("loaded %d palette plugins from %s", loaded, dir)
	}
	return nil
}

// applyConfig applies a live-reloaded configuration. Caret timing and
// plugins are fixed at startup; only logging settings take effect.
func (app *Application) applyConfig(cfg config.Config) {
	app.logger.SetLevel(ParseLogLevel(cfg.Logging.Level))
	if cfg.Logging.Level == "none" {
		app.logger.Disable()
	} else {
		app.logger.Enable()
	}
	app.logger.Info("configuration reloaded")
}

// SetBackend attaches the display backend. Must be called before Run.
func (app *Application) SetBackend(term *backend.Terminal) error {
	if app.running.Load() {
		return ErrAlreadyRunning
	}
	app.backend = term
	return nil
}

// Caret returns the application's caret. Exposed for tests.
func (app *Application) Caret() *caret.Caret { return app.caret }

// Menu returns the insertion palette.
func (app *Application) Menu() *menu.Menu { return app.menu }

// Logger returns the application logger.
func (app *Application) Logger() *Logger {
	if app.logger == nil {
		return NullLogger
	}
	return app.logger
}

// Shutdown releases all resources. Safe to call more than once.
func (app *Application) Shutdown() {
	app.shutdownOnce.Do(func() {
		app.quitting.Store(true)
		if app.watcher != nil {
			_ = app.watcher.Close()
		}
		if app.caret != nil {
			app.caret.Close()
		}
		if app.backend != nil && app.running.Load() {
			app.backend.Fini()
		}
		if app.logFile != nil {
			_ = app.logFile.Close()
		}
	})
}

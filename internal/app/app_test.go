package app

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/quillmath/quill/internal/render/backend"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want LogLevel
	}{
		{"debug", LogLevelDebug},
		{"DEBUG", LogLevelDebug},
		{"info", LogLevelInfo},
		{"warn", LogLevelWarn},
		{"warning", LogLevelWarn},
		{"error", LogLevelError},
		{"bogus", LogLevelInfo},
		{"", LogLevelInfo},
	}
	for _, tt := range tests {
		if got := ParseLogLevel(tt.in); got != tt.want {
			t.Errorf("ParseLogLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestLoggerLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(LogLevelWarn, &buf)

	log.Debug("hidden")
	log.Info("hidden")
	log.Warn("visible %d", 1)
	log.Error("visible %d", 2)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("low-level messages leaked: %q", out)
	}
	if !strings.Contains(out, "[WARN] quill: visible 1") {
		t.Errorf("missing warn line: %q", out)
	}
	if !strings.Contains(out, "[ERROR] quill: visible 2") {
		t.Errorf("missing error line: %q", out)
	}
}

func TestLoggerComponentTag(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(LogLevelDebug, &buf)
	log.WithComponent("plugin").Debug("loaded")

	if !strings.Contains(buf.String(), "quill/plugin: loaded") {
		t.Errorf("missing component tag: %q", buf.String())
	}
}

func TestNullLoggerDiscards(t *testing.T) {
	// Must not panic despite its zero-value output.
	NullLogger.Error("dropped %s", "silently")
}

func newTestApp(t *testing.T, opts Options) *Application {
	t.Helper()
	application, err := New(opts)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(application.Shutdown)
	return application
}

func attachSimulation(t *testing.T, application *Application) *backend.Terminal {
	t.Helper()
	term := backend.NewSimulation()
	if err := term.Init(); err != nil {
		t.Fatalf("initializing simulation backend: %v", err)
	}
	if err := application.SetBackend(term); err != nil {
		t.Fatalf("SetBackend: %v", err)
	}
	return term
}

func TestNewWithDefaults(t *testing.T) {
	application := newTestApp(t, Options{})

	if application.Caret() == nil {
		t.Fatal("expected caret")
	}
	if results := application.Menu().Search("alpha"); len(results) == 0 {
		t.Error("expected builtin alpha entry")
	}

	// Shutdown twice is safe.
	application.Shutdown()
	application.Shutdown()
}

func TestNewRejectsMalformedConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quill.toml")
	if err := os.WriteFile(path, []byte("broken = ["), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	var initErr *InitError
	if _, err := New(Options{ConfigPath: path}); !errors.As(err, &initErr) {
		t.Fatalf("expected InitError, got %v", err)
	} else if initErr.Component != "config" {
		t.Errorf("expected config component, got %q", initErr.Component)
	}
}

func TestRunWithoutBackend(t *testing.T) {
	application := newTestApp(t, Options{})
	if err := application.Run(); !errors.Is(err, ErrNoBackend) {
		t.Errorf("expected ErrNoBackend, got %v", err)
	}
}

func TestPluginSymbolsReachPalette(t *testing.T) {
	dir := t.TempDir()
	script := `quill.symbol("Planck constant", "hbar", "ℏ", {"planck"})`
	if err := os.WriteFile(filepath.Join(dir, "physics.lua"), []byte(script), 0o644); err != nil {
		t.Fatalf("writing plugin: %v", err)
	}

	application := newTestApp(t, Options{PluginDir: dir})

	results := application.Menu().Search("planck")
	if len(results) == 0 {
		t.Fatal("expected plugin symbol in palette")
	}
	if results[0].Entry.Code != "hbar" {
		t.Errorf("expected hbar, got %q", results[0].Entry.Code)
	}
}

func TestKeyEventInsertsSymbol(t *testing.T) {
	application := newTestApp(t, Options{})
	attachSimulation(t, application)

	application.handleKey(tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone))

	if got := application.Caret().Position(); got != 1 {
		t.Errorf("expected position 1, got %d", got)
	}
	nodes := application.Caret().Root().Nodes()
	if len(nodes) != 1 || nodes[0].Symbol() != "x" {
		t.Errorf("unexpected root contents: %v", nodes)
	}
}

func TestPaletteInsertFlow(t *testing.T) {
	application := newTestApp(t, Options{})
	attachSimulation(t, application)

	// Backslash opens the palette and takes focus from the caret.
	application.handleKey(tcell.NewEventKey(tcell.KeyRune, '\\', tcell.ModNone))
	if !application.paletteOpen.Load() {
		t.Fatal("expected palette open")
	}
	if application.Caret().Focused() {
		t.Error("caret should be blurred while palette is open")
	}

	for _, r := range "pi" {
		application.handleKey(tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone))
	}
	application.handleKey(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone))

	if application.paletteOpen.Load() {
		t.Error("palette should close after selection")
	}
	if !application.Caret().Focused() {
		t.Error("caret should regain focus after selection")
	}
	nodes := application.Caret().Root().Nodes()
	if len(nodes) != 1 || nodes[0].Symbol() != "π" {
		t.Errorf("expected π inserted, got %v", nodes)
	}
}

func TestPaletteEscapeCancels(t *testing.T) {
	application := newTestApp(t, Options{})
	attachSimulation(t, application)

	application.handleKey(tcell.NewEventKey(tcell.KeyRune, '\\', tcell.ModNone))
	application.handleKey(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone))

	if application.paletteOpen.Load() {
		t.Error("palette should close on escape")
	}
	if got := application.Caret().Root().Len(); got != 0 {
		t.Errorf("escape should insert nothing, root has %d nodes", got)
	}
}

func TestQuitChordStopsLoop(t *testing.T) {
	application := newTestApp(t, Options{})
	attachSimulation(t, application)

	application.handleKey(tcell.NewEventKey(tcell.KeyCtrlQ, 0, tcell.ModCtrl))
	if !application.quitting.Load() {
		t.Error("expected quit flag after ctrl+q")
	}
}

func TestChangeNotificationWakesLoopInsteadOfRendering(t *testing.T) {
	application := newTestApp(t, Options{})
	term := attachSimulation(t, application)

	// Mutating the tree fires a change notification. The subscriber must
	// not render on the notifying goroutine — the blink ticker publishes
	// on its own goroutine concurrently with tree mutation — so all it
	// may do is wake the event loop.
	application.handleKey(tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone))

	if _, err := term.NodeAt(1, 1); !errors.Is(err, backend.ErrElementNotRendered) {
		t.Errorf("notification must not draw directly, got %v", err)
	}

	woken := false
	for i := 0; i < 4 && !woken; i++ {
		_, woken = term.PollEvent().(*tcell.EventInterrupt)
	}
	if !woken {
		t.Fatal("expected a redraw wake on the event queue")
	}
}

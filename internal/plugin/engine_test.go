package plugin

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

type recordedSymbol struct {
	name, code, glyph string
	aliases           []string
}

type fakeHost struct {
	symbols []recordedSymbol
	fail    bool
}

func (h *fakeHost) RegisterSymbol(name, code, glyph string, aliases []string) error {
	if h.fail {
		return errors.New("registry full")
	}
	h.symbols = append(h.symbols, recordedSymbol{name, code, glyph, aliases})
	return nil
}

func writeScript(t *testing.T, dir, name, body string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
		t.Fatalf("writing script: %v", err)
	}
}

func TestNewEngineNilHost(t *testing.T) {
	if _, err := NewEngine(nil, nil); !errors.Is(err, ErrNilHost) {
		t.Errorf("expected ErrNilHost, got %v", err)
	}
}

func TestRunRegistersSymbol(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "aleph.lua", `quill.symbol("aleph", "aleph", "ℵ", {"alef"})`)

	host := &fakeHost{}
	eng, err := NewEngine(host, nil)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	if err := eng.Run(filepath.Join(dir, "aleph.lua")); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(host.symbols) != 1 {
		t.Fatalf("expected 1 symbol, got %d", len(host.symbols))
	}
	got := host.symbols[0]
	if got.name != "aleph" || got.code != "aleph" || got.glyph != "ℵ" {
		t.Errorf("unexpected symbol: %+v", got)
	}
	if len(got.aliases) != 1 || got.aliases[0] != "alef" {
		t.Errorf("expected alias alef, got %v", got.aliases)
	}
}

func TestRunHostFailureRaisesError(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "bad.lua", `quill.symbol("x", "x", "x")`)

	eng, err := NewEngine(&fakeHost{fail: true}, nil)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	if err := eng.Run(filepath.Join(dir, "bad.lua")); err == nil {
		t.Error("expected error when host rejects registration")
	}
}

func TestLoadDirSkipsFailingScripts(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "01-good.lua", `quill.symbol("wp", "wp", "℘")`)
	writeScript(t, dir, "02-broken.lua", `this is not lua`)
	writeScript(t, dir, "03-good.lua", `quill.symbol("hbar", "hbar", "ℏ")`)
	writeScript(t, dir, "notes.txt", `ignored`)

	host := &fakeHost{}
	eng, err := NewEngine(host, nil)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}

	loaded, err := eng.LoadDir(dir)
	if err != nil {
		t.Fatalf("LoadDir: %v", err)
	}
	if loaded != 2 {
		t.Errorf("expected 2 loaded scripts, got %d", loaded)
	}
	if len(host.symbols) != 2 {
		t.Fatalf("expected 2 symbols, got %d", len(host.symbols))
	}
	// Lexical order.
	if host.symbols[0].code != "wp" || host.symbols[1].code != "hbar" {
		t.Errorf("unexpected registration order: %+v", host.symbols)
	}
}

func TestLoadDirMissingDirectory(t *testing.T) {
	eng, err := NewEngine(&fakeHost{}, nil)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	loaded, err := eng.LoadDir(filepath.Join(t.TempDir(), "does-not-exist"))
	if err != nil {
		t.Errorf("missing dir should not error, got %v", err)
	}
	if loaded != 0 {
		t.Errorf("expected 0 loaded, got %d", loaded)
	}
}

func TestSandboxExcludesOS(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "escape.lua", `os.getenv("HOME")`)

	eng, err := NewEngine(&fakeHost{}, nil)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	if err := eng.Run(filepath.Join(dir, "escape.lua")); err == nil {
		t.Error("expected error: os library must not be available")
	}
}

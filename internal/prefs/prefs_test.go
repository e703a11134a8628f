package prefs

import (
	"os"
	"path/filepath"
	"testing"
)

func TestOpen_DefaultPathUnderHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	s, err := Open("")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	want := filepath.Join(home, ".config", "pexgrid", "prefs.toml")
	if s.Path() != want {
		t.Fatalf("Path = %q, want %q", s.Path(), want)
	}
	if p := s.Load(); p.Theme != "" {
		t.Fatalf("missing file gave Theme %q", p.Theme)
	}
}

func TestSaveTheme_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "prefs.toml")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := s.SaveTheme(" Slate "); err != nil {
		t.Fatalf("SaveTheme: %v", err)
	}
	if got := s.Load().Theme; got != "Slate" {
		t.Fatalf("Theme = %q, want Slate", got)
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Fatalf("temp file left behind: %v", err)
	}
}

func TestSaveTheme_RejectsEmpty(t *testing.T) {
	s, _ := Open(filepath.Join(t.TempDir(), "prefs.toml"))
	if err := s.SaveTheme("  "); err == nil {
		t.Fatalf("expected an error for an empty theme")
	}
}

func TestLoad_InvalidTOMLIsIgnored(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.toml")
	if err := os.WriteFile(path, []byte("not valid toml {{{\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	s, _ := Open(path)
	if p := s.Load(); p.Theme != "" {
		t.Fatalf("Theme = %q from an invalid file", p.Theme)
	}
}

// Package prefs persists choices made inside the UI, currently the theme
// picked with T. The file lives next to config.toml at
// ~/.config/pexgrid/prefs.toml and is rewritten on every change.
package prefs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	toml "github.com/pelletier/go-toml/v2"
)

// DefaultPath is used when Open receives an empty path.
const DefaultPath = "~/.config/pexgrid/prefs.toml"

// Prefs holds the persisted values. Empty fields mean "not chosen yet".
type Prefs struct {
	Theme string `toml:"theme,omitempty"`
}

// Store reads and writes one preferences file.
type Store struct {
	path string
	mu   sync.Mutex
}

// Open resolves path (expanding ~) without touching the file.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		path = DefaultPath
	}
	resolved, err := expandPath(path)
	if err != nil {
		return nil, err
	}
	return &Store{path: resolved}, nil
}

// Path returns the resolved file path.
func (s *Store) Path() string { return s.path }

// Load returns the stored preferences. A missing or unreadable file yields
// zero Prefs; only the caller's fallbacks decide what that means.
func (s *Store) Load() Prefs {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		return Prefs{}
	}
	var p Prefs
	if err := toml.Unmarshal(data, &p); err != nil {
		return Prefs{}
	}
	p.Theme = strings.TrimSpace(p.Theme)
	return p
}

// SaveTheme records name as the preferred theme, keeping other fields.
func (s *Store) SaveTheme(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errors.New("theme name is empty")
	}
	p := s.Load()
	p.Theme = name
	return s.save(p)
}

func (s *Store) save(p Prefs) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create prefs dir: %w", err)
	}
	data, err := toml.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal prefs: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replace prefs: %w", err)
	}
	return nil
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}

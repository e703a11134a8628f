package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config captures everything pexgrid reads at startup.
type Config struct {
	APIKey         string
	APIBase        string
	LocalBase      string // directory or http(s) URL; empty disables the local step
	DefaultQuery   string
	PerPage        int
	Theme          string
	Previews       bool
	RequestTimeout time.Duration // zero means no timeout
	LogFile        string
	LogLevel       string
	LogFormat      string
}

// APIKeyEnv names the environment variable holding the Pexels credential.
const APIKeyEnv = "PEXELS_API_KEY"

const (
	defaultConfigPath = "~/.config/pexgrid/config.toml"
	defaultAPIBase    = "https://api.pexels.com"
	defaultQuery      = "nature"
	defaultPerPage    = 15
	defaultTheme      = "Dracula"
	defaultLogFile    = "~/.local/state/pexgrid/pexgrid.log"
	defaultLogLevel   = "info"
	defaultLogFormat  = "text"
	maxPerPage        = 80
)

// Load locates and parses the config, falling back to defaults when missing.
// PEXELS_API_KEY, when set, takes precedence over api_key in the file.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := defaults()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			applyEnv(&cfg)
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		APIKey         string `toml:"api_key"`
		APIBase        string `toml:"api_base"`
		LocalBase      string `toml:"local_base"`
		DefaultQuery   string `toml:"default_query"`
		PerPage        int    `toml:"per_page"`
		Theme          string `toml:"theme"`
		Previews       *bool  `toml:"previews"`
		RequestTimeout string `toml:"request_timeout"`
		LogFile        string `toml:"log_file"`
		LogLevel       string `toml:"log_level"`
		LogFormat      string `toml:"log_format"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	cfg.APIKey = strings.TrimSpace(raw.APIKey)
	cfg.APIBase = orDefault(raw.APIBase, defaultAPIBase)
	cfg.DefaultQuery = orDefault(raw.DefaultQuery, defaultQuery)
	cfg.Theme = orDefault(raw.Theme, defaultTheme)
	cfg.LogLevel = strings.ToLower(orDefault(raw.LogLevel, defaultLogLevel))
	cfg.LogFormat = strings.ToLower(orDefault(raw.LogFormat, defaultLogFormat))
	cfg.LogFile = mustExpand(orDefault(raw.LogFile, defaultLogFile))

	if raw.PerPage > 0 {
		cfg.PerPage = min(raw.PerPage, maxPerPage)
	}
	if raw.Previews != nil {
		cfg.Previews = *raw.Previews
	}
	if timeout := strings.TrimSpace(raw.RequestTimeout); timeout != "" {
		d, err := time.ParseDuration(timeout)
		if err != nil || d < 0 {
			return Config{}, fmt.Errorf("parse config: invalid request_timeout %q", raw.RequestTimeout)
		}
		cfg.RequestTimeout = d
	}
	if local := strings.TrimSpace(raw.LocalBase); local != "" {
		if strings.Contains(local, "://") {
			cfg.LocalBase = local
		} else {
			cfg.LocalBase = mustExpand(local)
		}
	}

	applyEnv(&cfg)
	return cfg, nil
}

// HasAPIKey reports whether a credential is configured.
func (c Config) HasAPIKey() bool {
	return strings.TrimSpace(c.APIKey) != ""
}

func defaults() Config {
	return Config{
		APIBase:      defaultAPIBase,
		DefaultQuery: defaultQuery,
		PerPage:      defaultPerPage,
		Theme:        defaultTheme,
		Previews:     true,
		LogFile:      mustExpand(defaultLogFile),
		LogLevel:     defaultLogLevel,
		LogFormat:    defaultLogFormat,
	}
}

func applyEnv(cfg *Config) {
	if key := strings.TrimSpace(os.Getenv(APIKeyEnv)); key != "" {
		cfg.APIKey = key
	}
}

func orDefault(value, fallback string) string {
	if trimmed := strings.TrimSpace(value); trimmed != "" {
		return trimmed
	}
	return fallback
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}

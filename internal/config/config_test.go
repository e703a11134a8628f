package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoad_MissingConfigFallsBackToDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv(APIKeyEnv, "")

	cfg, err := Load(filepath.Join(home, "does-not-exist.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIBase != defaultAPIBase {
		t.Fatalf("APIBase = %q, want %q", cfg.APIBase, defaultAPIBase)
	}
	if cfg.DefaultQuery != "nature" || cfg.PerPage != 15 {
		t.Fatalf("DefaultQuery/PerPage = %q/%d, want nature/15", cfg.DefaultQuery, cfg.PerPage)
	}
	if !cfg.Previews {
		t.Fatalf("Previews = false, want true by default")
	}
	if cfg.HasAPIKey() {
		t.Fatalf("HasAPIKey() = true, want false without env or file")
	}
	if cfg.LocalBase != "" {
		t.Fatalf("LocalBase = %q, want empty", cfg.LocalBase)
	}
	wantLog, err := expandPath(defaultLogFile)
	if err != nil {
		t.Fatalf("expandPath(defaultLogFile) returned error: %v", err)
	}
	if cfg.LogFile != wantLog {
		t.Fatalf("LogFile = %q, want %q", cfg.LogFile, wantLog)
	}
}

func TestLoad_ParsesAndTrimsConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv(APIKeyEnv, "")

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`
api_key = "  file-key  "
api_base = " http://127.0.0.1:9999 "
local_base = "  ~/pexels  "
default_query = " ocean "
per_page = 200
theme = "Slate"
previews = false
request_timeout = "3s"
log_level = "DEBUG"
log_format = "json"
`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIKey != "file-key" {
		t.Fatalf("APIKey = %q, want file-key", cfg.APIKey)
	}
	if cfg.APIBase != "http://127.0.0.1:9999" {
		t.Fatalf("APIBase = %q", cfg.APIBase)
	}
	if cfg.LocalBase != filepath.Join(home, "pexels") {
		t.Fatalf("LocalBase = %q, want it under HOME %q", cfg.LocalBase, home)
	}
	if cfg.DefaultQuery != "ocean" {
		t.Fatalf("DefaultQuery = %q, want ocean", cfg.DefaultQuery)
	}
	if cfg.PerPage != maxPerPage {
		t.Fatalf("PerPage = %d, want capped %d", cfg.PerPage, maxPerPage)
	}
	if cfg.Theme != "Slate" || cfg.Previews {
		t.Fatalf("Theme/Previews = %q/%v, want Slate/false", cfg.Theme, cfg.Previews)
	}
	if cfg.RequestTimeout != 3*time.Second {
		t.Fatalf("RequestTimeout = %v, want 3s", cfg.RequestTimeout)
	}
	if cfg.LogLevel != "debug" || cfg.LogFormat != "json" {
		t.Fatalf("LogLevel/LogFormat = %q/%q, want debug/json", cfg.LogLevel, cfg.LogFormat)
	}
}

func TestLoad_URLLocalBaseKeptVerbatim(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`local_base = "http://localhost:5173"`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.LocalBase != "http://localhost:5173" {
		t.Fatalf("LocalBase = %q, want URL unchanged", cfg.LocalBase)
	}
}

func TestLoad_EnvOverridesFileKey(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv(APIKeyEnv, " env-key ")

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`api_key = "file-key"`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIKey != "env-key" {
		t.Fatalf("APIKey = %q, want env-key", cfg.APIKey)
	}

	cfg, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIKey != "env-key" {
		t.Fatalf("APIKey without file = %q, want env-key", cfg.APIKey)
	}
}

func TestLoad_EmptyValuesUseDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv(APIKeyEnv, "")

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`
api_base = "   "
default_query = ""
per_page = 0
`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIBase != defaultAPIBase || cfg.DefaultQuery != defaultQuery || cfg.PerPage != defaultPerPage {
		t.Fatalf("cfg = %#v, want defaults", cfg)
	}
	if !cfg.Previews {
		t.Fatalf("Previews = false, want default true when unset")
	}
}

func TestLoad_InvalidTOMLFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`api_key = [`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	_, err := Load(path)
	if err == nil {
		t.Fatalf("Load returned nil error, want parse error")
	}
	if !strings.Contains(err.Error(), "parse config") {
		t.Fatalf("Load error = %q, want it to mention parse config", err.Error())
	}
}

func TestLoad_InvalidTimeoutFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`request_timeout = "soon"`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := Load(path); err == nil || !strings.Contains(err.Error(), "request_timeout") {
		t.Fatalf("Load error = %v, want request_timeout error", err)
	}
}

func TestExpandPath_ExpandsTildeAndReturnsAbs(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := expandPath("~/a/b")
	if err != nil {
		t.Fatalf("expandPath returned error: %v", err)
	}
	want := filepath.Join(home, "a/b")
	if got != want {
		t.Fatalf("expandPath = %q, want %q", got, want)
	}
}

func TestExpandPath_EmptyErrors(t *testing.T) {
	if _, err := expandPath("   "); err == nil {
		t.Fatalf("expandPath returned nil error, want error")
	}
}

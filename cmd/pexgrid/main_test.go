package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := newRootCmd()
	root.SetArgs(args)
	root.SetOut(&out)
	root.SetErr(&errOut)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestPrefetch_RequiresQueries(t *testing.T) {
	if _, err := execute(t, "prefetch"); err == nil {
		t.Fatalf("prefetch without queries should fail")
	}
}

func TestRoot_RejectsPositionalArgs(t *testing.T) {
	if _, err := execute(t, "ocean"); err == nil {
		t.Fatalf("root command should not take positional args")
	}
}

func TestPrefetch_Flags(t *testing.T) {
	cmd := newPrefetchCmd(new(string))
	if got, _ := cmd.Flags().GetInt("concurrency"); got != 2 {
		t.Fatalf("concurrency default = %d, want 2", got)
	}
	if got, _ := cmd.Flags().GetFloat64("rate"); got != 1 {
		t.Fatalf("rate default = %v, want 1", got)
	}
}

func TestPrefetch_ReportsSummary(t *testing.T) {
	t.Setenv("PEXELS_API_KEY", "secret")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("query") == "beach" {
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte(`{"error":"Rate limit exceeded"}`))
			return
		}
		_, _ = w.Write([]byte(`{"photos":[]}`))
	}))
	defer srv.Close()

	dir := t.TempDir()
	config := filepath.Join(dir, "config.toml")
	body := "api_base = \"" + srv.URL + "\"\nlocal_base = \"" + filepath.ToSlash(filepath.Join(dir, "docs")) + "\"\n"
	if err := os.WriteFile(config, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	out, err := execute(t, "prefetch", "--config", config, "--rate", "1000", "ocean", "beach")
	if err == nil {
		t.Fatalf("a failed query should make the command fail")
	}
	if !strings.Contains(out, "saved 1, skipped 0, failed 1") {
		t.Fatalf("summary missing:\n%s", out)
	}
	if !strings.Contains(out, "beach: ") || !strings.Contains(out, "Rate limit exceeded") {
		t.Fatalf("failure detail missing:\n%s", out)
	}
	if _, err := os.Stat(filepath.Join(dir, "docs", "api", "ocean.json")); err != nil {
		t.Fatalf("ocean document not written: %v", err)
	}
}

func TestLogs_PrintsFilteredTail(t *testing.T) {
	dir := t.TempDir()
	logFile := filepath.Join(dir, "pexgrid.log")
	if err := os.WriteFile(logFile, []byte("level=INFO msg=a\nlevel=ERROR msg=b\n"), 0o644); err != nil {
		t.Fatalf("write log: %v", err)
	}
	config := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(config, []byte("log_file = \""+filepath.ToSlash(logFile)+"\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	out, err := execute(t, "logs", "--config", config, "--level", "error")
	if err != nil {
		t.Fatalf("logs: %v", err)
	}
	if out != "level=ERROR msg=b\n" {
		t.Fatalf("output = %q", out)
	}
}

package logtail

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Read returns at most maxLines from the end of the file at path whose level
// is at least minLevel. A missing file yields no lines. maxLines <= 0 returns
// every matching line.
func Read(path string, maxLines int, minLevel slog.Level) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer func() { _ = file.Close() }()

	lines, err := Tail(file, maxLines, minLevel)
	if err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}
	return lines, nil
}

// Tail keeps the last maxLines matching lines of r in a ring.
func Tail(r io.Reader, maxLines int, minLevel slog.Level) ([]string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var ring []string
	next, count := 0, 0
	for scanner.Scan() {
		line := scanner.Text()
		if lvl, ok := LineLevel(line); ok && lvl < minLevel {
			continue
		}
		if maxLines <= 0 {
			ring = append(ring, line)
			continue
		}
		if len(ring) < maxLines {
			ring = append(ring, line)
		} else {
			ring[next] = line
		}
		next = (next + 1) % maxLines
		count++
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if maxLines <= 0 || count <= maxLines {
		return ring, nil
	}
	out := make([]string, 0, maxLines)
	out = append(out, ring[next:]...)
	return append(out, ring[:next]...), nil
}

// LineLevel extracts the slog level from a text or JSON record. Lines
// without one (stack traces, blank lines) report ok=false and are kept.
func LineLevel(line string) (slog.Level, bool) {
	trimmed := strings.TrimSpace(line)
	if strings.HasPrefix(trimmed, "{") {
		var rec struct {
			Level string `json:"level"`
		}
		if err := json.Unmarshal([]byte(trimmed), &rec); err != nil || rec.Level == "" {
			return 0, false
		}
		return parseLevel(rec.Level)
	}
	for _, field := range strings.Fields(trimmed) {
		if value, ok := strings.CutPrefix(field, "level="); ok {
			return parseLevel(value)
		}
	}
	return 0, false
}

// ParseLevel accepts debug, info, warn or error in any case.
func ParseLevel(name string) (slog.Level, error) {
	lvl, ok := parseLevel(name)
	if !ok {
		return 0, fmt.Errorf("unknown log level %q", name)
	}
	return lvl, nil
}

func parseLevel(name string) (slog.Level, bool) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(name))); err != nil {
		return 0, false
	}
	return lvl, true
}

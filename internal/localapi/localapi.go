// Package localapi reads and writes pre-fetched search documents addressed
// as <base>/api/<query>.json. The base is either a directory or an
// http(s) URL serving the same layout.
package localapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/five82/pexgrid/internal/pexels"
)

// ErrNotFound reports that no document exists for the query.
var ErrNotFound = errors.New("local resource not found")

// ErrUnsafeQuery reports a query that cannot be mapped to a file name.
var ErrUnsafeQuery = errors.New("query cannot be used as a file name")

// ErrReadOnly reports a Save against a URL base.
var ErrReadOnly = errors.New("local source is not a directory")

const maxDocumentBytes = 4 << 20

// Source resolves pre-fetched documents.
type Source struct {
	dir     string
	baseURL *url.URL
	http    *http.Client
}

// New builds a Source for base. A base containing "://" is treated as a URL,
// anything else as a directory path.
func New(base string, client *http.Client) (*Source, error) {
	trimmed := strings.TrimSpace(base)
	if trimmed == "" {
		return nil, fmt.Errorf("local base is empty")
	}
	if client == nil {
		client = http.DefaultClient
	}
	if strings.Contains(trimmed, "://") {
		u, err := url.Parse(trimmed)
		if err != nil {
			return nil, fmt.Errorf("parse local base %q: %w", base, err)
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return nil, fmt.Errorf("local base %q: unsupported scheme %q", base, u.Scheme)
		}
		u.Path = strings.TrimRight(u.Path, "/")
		u.RawQuery = ""
		u.Fragment = ""
		return &Source{baseURL: u, http: client}, nil
	}
	dir, err := filepath.Abs(trimmed)
	if err != nil {
		return nil, fmt.Errorf("resolve local base: %w", err)
	}
	return &Source{dir: dir, http: client}, nil
}

// Writable reports whether Save can store documents.
func (s *Source) Writable() bool {
	return s != nil && s.dir != ""
}

// Location returns where the document for query lives.
func (s *Source) Location(query string) (string, error) {
	if s.baseURL != nil {
		return s.baseURL.String() + "/api/" + url.PathEscape(query) + ".json", nil
	}
	if !safeName(query) {
		return "", ErrUnsafeQuery
	}
	return filepath.Join(s.dir, "api", query+".json"), nil
}

// Load returns the photos stored for query.
func (s *Source) Load(ctx context.Context, query string) ([]pexels.Photo, error) {
	if s == nil {
		return nil, ErrNotFound
	}
	loc, err := s.Location(query)
	if err != nil {
		return nil, err
	}
	if s.baseURL != nil {
		return s.loadURL(ctx, loc)
	}
	return loadFile(loc)
}

// Save writes photos as the document for query, creating directories as needed.
func (s *Source) Save(query string, photos []pexels.Photo) error {
	if !s.Writable() {
		return ErrReadOnly
	}
	loc, err := s.Location(query)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(loc), 0o755); err != nil {
		return fmt.Errorf("create api dir: %w", err)
	}
	if photos == nil {
		photos = []pexels.Photo{}
	}
	data, err := json.MarshalIndent(pexels.SearchResponse{Photos: photos, PerPage: len(photos)}, "", "  ")
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	tmp := loc + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write document: %w", err)
	}
	if err := os.Rename(tmp, loc); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replace document: %w", err)
	}
	return nil
}

func (s *Source) loadURL(ctx context.Context, loc string) ([]pexels.Photo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, loc, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrNotFound
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, fmt.Errorf("local resource returned status %d", resp.StatusCode)
	}
	return pexels.DecodePhotos(io.LimitReader(resp.Body, maxDocumentBytes))
}

func loadFile(path string) ([]pexels.Photo, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("open document: %w", err)
	}
	defer func() { _ = file.Close() }()
	return pexels.DecodePhotos(io.LimitReader(file, maxDocumentBytes))
}

func safeName(query string) bool {
	if query == "" || query == "." || query == ".." {
		return false
	}
	return !strings.ContainsAny(query, "/\\\x00")
}

// Has reports whether a document for query exists in a directory source.
func (s *Source) Has(query string) bool {
	if !s.Writable() {
		return false
	}
	loc, err := s.Location(query)
	if err != nil {
		return false
	}
	_, err = os.Stat(loc)
	return err == nil
}

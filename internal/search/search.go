// Package search implements the fetch path behind a committed query: the
// local pre-fetched document first, the remote API as a fallback.
package search

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/five82/pexgrid/internal/pexels"
)

// User-facing messages.
const (
	MsgMissingCredential = "Missing API key."
	MsgGenericRemote     = "Could not load images."
	MsgGenericFailure    = "Could not load images, try a different search."
)

// ErrMissingCredential is returned when the remote fallback is needed but no
// API key was configured.
var ErrMissingCredential = errors.New("missing api key")

// LocalLoader reads pre-fetched documents. *localapi.Source implements it.
type LocalLoader interface {
	Load(ctx context.Context, query string) ([]pexels.Photo, error)
}

// Options configure an Orchestrator.
type Options struct {
	Local  LocalLoader // nil skips the local step
	Remote pexels.Searcher
	APIKey string
	Logger *slog.Logger
}

// Orchestrator resolves a query to a result set.
type Orchestrator struct {
	local  LocalLoader
	remote pexels.Searcher
	apiKey string
	logger *slog.Logger
}

// New builds an Orchestrator.
func New(opts Options) *Orchestrator {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Orchestrator{
		local:  opts.Local,
		remote: opts.Remote,
		apiKey: strings.TrimSpace(opts.APIKey),
		logger: logger.With(slog.String("component", "search")),
	}
}

// Fetch returns the photos for query. A usable local document wins and the
// remote API is not contacted; any local failure falls through silently.
func (o *Orchestrator) Fetch(ctx context.Context, query string) ([]pexels.Photo, error) {
	if o.local != nil {
		photos, err := o.local.Load(ctx, query)
		if err == nil {
			o.logger.Debug("served from local document",
				slog.String("query", query),
				slog.Int("results", len(photos)))
			return photos, nil
		}
		o.logger.Debug("local document unavailable",
			slog.String("query", query),
			slog.String("error", err.Error()))
	}

	if o.apiKey == "" {
		return nil, ErrMissingCredential
	}
	if o.remote == nil {
		return nil, fmt.Errorf("remote search not configured")
	}
	photos, err := o.remote.Search(ctx, query, o.apiKey)
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", query, err)
	}
	if photos == nil {
		photos = []pexels.Photo{}
	}
	return photos, nil
}

// Message maps a fetch error to the text shown to the user.
func Message(err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, ErrMissingCredential) {
		return MsgMissingCredential
	}
	var apiErr *pexels.APIError
	if errors.As(err, &apiErr) {
		if apiErr.Message != "" {
			return apiErr.Message
		}
		return MsgGenericRemote
	}
	if msg := strings.TrimSpace(err.Error()); msg != "" {
		return msg
	}
	return MsgGenericFailure
}

// Package prefetch fills a local document store with search responses so the
// UI can serve those queries without contacting the API.
package prefetch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/five82/pexgrid/internal/pexels"
)

// Store persists documents. *localapi.Source implements it.
type Store interface {
	Has(query string) bool
	Save(query string, photos []pexels.Photo) error
}

// Options configure a Runner.
type Options struct {
	Remote      pexels.Searcher
	Store       Store
	APIKey      string
	Concurrency int        // parallel searches; zero means 2
	Rate        rate.Limit // searches per second; zero means 1
	Overwrite   bool       // refetch queries that already have a document
	Logger      *slog.Logger
}

// Report summarizes a run.
type Report struct {
	Saved   []string
	Skipped []string
	Failed  map[string]error
}

// Runner executes prefetch batches.
type Runner struct {
	opts    Options
	limiter *rate.Limiter
	logger  *slog.Logger
}

// ErrMissingCredential is returned before any work when no API key is set.
var ErrMissingCredential = errors.New("missing api key")

// New builds a Runner.
func New(opts Options) *Runner {
	if opts.Concurrency <= 0 {
		opts.Concurrency = 2
	}
	if opts.Rate <= 0 {
		opts.Rate = 1
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Runner{
		opts:    opts,
		limiter: rate.NewLimiter(opts.Rate, 1),
		logger:  logger.With(slog.String("component", "prefetch")),
	}
}

// Run fetches every query and stores the results. Failures of single queries
// are collected in the report; only a cancelled context aborts the batch.
func (r *Runner) Run(ctx context.Context, queries []string) (Report, error) {
	report := Report{Failed: make(map[string]error)}
	if strings.TrimSpace(r.opts.APIKey) == "" {
		return report, ErrMissingCredential
	}
	if r.opts.Remote == nil || r.opts.Store == nil {
		return report, fmt.Errorf("prefetch requires a remote client and a store")
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.opts.Concurrency)

	for _, query := range dedupe(queries) {
		if !r.opts.Overwrite && r.opts.Store.Has(query) {
			report.Skipped = append(report.Skipped, query)
			r.logger.Info("document exists, skipping", slog.String("query", query))
			continue
		}
		g.Go(func() error {
			if err := r.limiter.Wait(gctx); err != nil {
				return err
			}
			err := r.fetchOne(gctx, query)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				report.Failed[query] = err
				r.logger.Warn("prefetch failed",
					slog.String("query", query),
					slog.String("error", err.Error()))
				return nil
			}
			report.Saved = append(report.Saved, query)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return report, fmt.Errorf("prefetch aborted: %w", err)
	}
	return report, nil
}

func (r *Runner) fetchOne(ctx context.Context, query string) error {
	photos, err := r.opts.Remote.Search(ctx, query, strings.TrimSpace(r.opts.APIKey))
	if err != nil {
		return fmt.Errorf("search: %w", err)
	}
	if err := r.opts.Store.Save(query, photos); err != nil {
		return fmt.Errorf("save: %w", err)
	}
	r.logger.Info("document saved",
		slog.String("query", query),
		slog.Int("results", len(photos)))
	return nil
}

func dedupe(queries []string) []string {
	seen := make(map[string]struct{}, len(queries))
	out := make([]string, 0, len(queries))
	for _, q := range queries {
		q = strings.TrimSpace(q)
		if q == "" {
			continue
		}
		if _, ok := seen[q]; ok {
			continue
		}
		seen[q] = struct{}{}
		out = append(out, q)
	}
	return out
}

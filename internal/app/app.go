package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"golang.org/x/time/rate"

	"github.com/five82/pexgrid/internal/config"
	"github.com/five82/pexgrid/internal/localapi"
	"github.com/five82/pexgrid/internal/logging"
	"github.com/five82/pexgrid/internal/logtail"
	"github.com/five82/pexgrid/internal/pexels"
	"github.com/five82/pexgrid/internal/prefetch"
	"github.com/five82/pexgrid/internal/prefs"
	"github.com/five82/pexgrid/internal/preview"
	"github.com/five82/pexgrid/internal/search"
	"github.com/five82/pexgrid/internal/ui"
)

// Options configure the pexgrid TUI.
type Options struct {
	ConfigPath string // empty uses ~/.config/pexgrid/config.toml
	Query      string // overrides default_query when set
	Theme      string // overrides theme when set
	PrefsPath  string // empty uses ~/.config/pexgrid/prefs.toml
}

// Run boots the pexgrid TUI until the user quits or the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, closer, err := logging.New(logging.Config{
		Level:    cfg.LogLevel,
		Format:   cfg.LogFormat,
		FilePath: cfg.LogFile,
	})
	if err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	defer func() { _ = closer.Close() }()

	orchestrator, err := newSearch(cfg, logger)
	if err != nil {
		return err
	}

	var images ui.ImageLoader
	if cfg.Previews {
		images = preview.NewFetcher(nil, logger)
	}

	// A theme picked in the UI outlives the config default until changed again.
	var saveTheme func(string) error
	var savedTheme string
	if store, err := prefs.Open(opts.PrefsPath); err != nil {
		logger.Warn("preferences unavailable", slog.String("error", err.Error()))
	} else {
		savedTheme = store.Load().Theme
		saveTheme = store.SaveTheme
	}

	query := firstNonEmpty(opts.Query, cfg.DefaultQuery)
	logger.Info("pexgrid starting",
		slog.String("query", query),
		slog.String("api_base", cfg.APIBase),
		slog.String("local_base", cfg.LocalBase),
		slog.Bool("api_key", cfg.HasAPIKey()),
		slog.Bool("previews", cfg.Previews))

	err = ui.Run(ui.Options{
		Context:   ctx,
		Search:    orchestrator,
		Images:    images,
		Query:     query,
		ThemeName: firstNonEmpty(opts.Theme, savedTheme, cfg.Theme),
		Logger:    logger,
		SaveTheme: saveTheme,
	})
	if err != nil {
		logger.Error("ui exited", slog.String("error", err.Error()))
		return fmt.Errorf("run ui: %w", err)
	}
	logger.Info("pexgrid stopped")
	return nil
}

// PrefetchOptions configure a prefetch batch.
type PrefetchOptions struct {
	ConfigPath  string
	Queries     []string
	Concurrency int     // zero uses the runner default
	Rate        float64 // searches per second; zero uses the runner default
	Overwrite   bool
	LogWriter   io.Writer // nil writes to stderr
}

// Prefetch saves search responses for each query into the directory named
// by local_base, so later searches for them are served locally.
func Prefetch(ctx context.Context, opts PrefetchOptions) (prefetch.Report, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return prefetch.Report{}, fmt.Errorf("load config: %w", err)
	}

	writer := opts.LogWriter
	if writer == nil {
		writer = os.Stderr
	}
	logger, closer, err := logging.New(logging.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		Writer: writer,
	})
	if err != nil {
		return prefetch.Report{}, fmt.Errorf("init logging: %w", err)
	}
	defer func() { _ = closer.Close() }()

	if cfg.LocalBase == "" {
		return prefetch.Report{}, fmt.Errorf("prefetch needs local_base set to a directory")
	}
	store, err := localapi.New(cfg.LocalBase, nil)
	if err != nil {
		return prefetch.Report{}, fmt.Errorf("open local store: %w", err)
	}
	if !store.Writable() {
		return prefetch.Report{}, fmt.Errorf("local_base %q: %w", cfg.LocalBase, localapi.ErrReadOnly)
	}

	client, err := newClient(cfg, logger)
	if err != nil {
		return prefetch.Report{}, err
	}

	runner := prefetch.New(prefetch.Options{
		Remote:      client,
		Store:       store,
		APIKey:      cfg.APIKey,
		Concurrency: opts.Concurrency,
		Rate:        rate.Limit(opts.Rate),
		Overwrite:   opts.Overwrite,
		Logger:      logger,
	})
	report, err := runner.Run(ctx, opts.Queries)
	if err != nil {
		return report, fmt.Errorf("prefetch: %w", err)
	}
	logger.Info("prefetch finished",
		slog.Int("saved", len(report.Saved)),
		slog.Int("skipped", len(report.Skipped)),
		slog.Int("failed", len(report.Failed)))
	return report, nil
}

// LogsOptions select which log lines Logs returns.
type LogsOptions struct {
	ConfigPath string
	Lines      int    // zero or less returns the whole file
	MinLevel   string // blank keeps every level
}

// Logs returns the tail of the log file named by the configuration.
func Logs(opts LogsOptions) ([]string, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	minLevel := slog.LevelDebug
	if strings.TrimSpace(opts.MinLevel) != "" {
		if minLevel, err = logtail.ParseLevel(opts.MinLevel); err != nil {
			return nil, err
		}
	}
	return logtail.Read(cfg.LogFile, opts.Lines, minLevel)
}

func newClient(cfg config.Config, logger *slog.Logger) (*pexels.Client, error) {
	client, err := pexels.NewClient(pexels.Options{
		BaseURL: cfg.APIBase,
		PerPage: cfg.PerPage,
		Timeout: cfg.RequestTimeout,
		Logger:  logger,
	})
	if err != nil {
		return nil, fmt.Errorf("init pexels client: %w", err)
	}
	return client, nil
}

func newSearch(cfg config.Config, logger *slog.Logger) (*search.Orchestrator, error) {
	client, err := newClient(cfg, logger)
	if err != nil {
		return nil, err
	}
	opts := search.Options{
		Remote: client,
		APIKey: cfg.APIKey,
		Logger: logger,
	}
	if cfg.LocalBase != "" {
		source, err := localapi.New(cfg.LocalBase, &http.Client{Timeout: cfg.RequestTimeout})
		if err != nil {
			return nil, fmt.Errorf("open local source: %w", err)
		}
		opts.Local = source
	}
	return search.New(opts), nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

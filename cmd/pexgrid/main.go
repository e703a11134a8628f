package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/five82/pexgrid/internal/app"
)

// version is set at build time via ldflags
var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	// A .env file is optional; only a malformed one is worth reporting.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "pexgrid: load .env: %v\n", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "pexgrid: %v\n", err)
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	var opts app.Options

	root := &cobra.Command{
		Use:   "pexgrid",
		Short: "Search Pexels photos from the terminal",
		Long: `pexgrid searches the Pexels photo API and shows the results as a grid
of terminal previews. Click a photo (or select it and press enter) to enlarge it.

The API key is read from PEXELS_API_KEY (a .env file in the working directory
is loaded first) or from api_key in ~/.config/pexgrid/config.toml.`,
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Run(cmd.Context(), opts)
		},
	}
	root.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "config file (default is ~/.config/pexgrid/config.toml)")
	root.Flags().StringVarP(&opts.Query, "query", "q", "", "initial search (default from config, else \"nature\")")
	root.Flags().StringVar(&opts.Theme, "theme", "", "color theme: Dracula, Nightfox or Slate")

	root.AddCommand(newPrefetchCmd(&opts.ConfigPath), newLogsCmd(&opts.ConfigPath))
	return root
}

func newPrefetchCmd(configPath *string) *cobra.Command {
	var opts app.PrefetchOptions

	cmd := &cobra.Command{
		Use:   "prefetch QUERY...",
		Short: "Save search results into the local document directory",
		Long: `Fetch each query from the Pexels API and write the response to
<local_base>/api/<query>.json. Later searches for those queries are served
from disk without contacting the API.

Examples:
  pexgrid prefetch ocean forest "city night"
  pexgrid prefetch --overwrite --rate 0.5 nature`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.ConfigPath = *configPath
			opts.Queries = args
			opts.LogWriter = cmd.ErrOrStderr()

			report, err := app.Prefetch(cmd.Context(), opts)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "saved %d, skipped %d, failed %d\n",
				len(report.Saved), len(report.Skipped), len(report.Failed))

			failed := make([]string, 0, len(report.Failed))
			for q := range report.Failed {
				failed = append(failed, q)
			}
			sort.Strings(failed)
			for _, q := range failed {
				fmt.Fprintf(out, "  %s: %v\n", q, report.Failed[q])
			}

			if err != nil {
				return err
			}
			if len(failed) > 0 {
				return fmt.Errorf("%d of %d queries failed", len(failed), len(report.Saved)+len(failed))
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&opts.Concurrency, "concurrency", 2, "searches to run in parallel")
	cmd.Flags().Float64Var(&opts.Rate, "rate", 1, "maximum searches per second")
	cmd.Flags().BoolVar(&opts.Overwrite, "overwrite", false, "refetch queries that already have a document")
	return cmd
}

func newLogsCmd(configPath *string) *cobra.Command {
	var opts app.LogsOptions

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Print the end of the pexgrid log file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.ConfigPath = *configPath
			lines, err := app.Logs(opts)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, line := range lines {
				fmt.Fprintln(out, line)
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&opts.Lines, "lines", "n", 100, "number of lines to show (0 for all)")
	cmd.Flags().StringVar(&opts.MinLevel, "level", "", "only show records at or above this level (debug, info, warn, error)")
	return cmd
}

// Package app provides the orchestration layer for the pexgrid application.
//
// # Overview
//
// This package wires together configuration, logging, the search clients and
// the UI. It is the composition root where all dependencies are initialized
// and connected.
//
// # Architecture
//
// Run follows a simple initialization pattern:
//
//  1. Load ~/.config/pexgrid/config.toml (PEXELS_API_KEY overrides api_key)
//  2. Open the rotated log file; the terminal belongs to the UI
//  3. Build the Pexels client and, when local_base is set, the local source
//  4. Combine them in a search.Orchestrator (local first, remote fallback)
//  5. Read prefs.toml for a theme chosen in an earlier session
//  6. Start the TUI and block until the user exits or the context cancels
//
// Prefetch shares steps 1 and 3 but logs to stderr and feeds a
// prefetch.Runner that writes documents under local_base. Logs only loads
// the configuration and tails log_file through logtail.
//
// # Data Flow
//
//	┌──────────────┐
//	│   Run()      │ Initialize everything
//	└──────┬───────┘
//	       │
//	       ├─────> config.Load()        Read config and credential
//	       ├─────> logging.New()        File logger (lumberjack)
//	       ├─────> pexels.NewClient()   Remote search
//	       ├─────> localapi.New()       Optional pre-fetched documents
//	       ├─────> search.New()         Fetch orchestrator
//	       ├─────> preview.NewFetcher() Image downloads (previews = true)
//	       ├─────> prefs.Open()         Saved theme, rewritten on T
//	       └─────> ui.Run()             Start TUI (blocks)
//
// # Error Handling
//
// Fatal errors are returned from Run: unreadable or invalid configuration,
// an unusable log path, a malformed api_base or local_base. Everything that
// can go wrong during a search (missing key, HTTP failures, bad documents)
// is shown in the UI instead.
//
// # Usage Example
//
//	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
//	defer cancel()
//
//	if err := app.Run(ctx, app.Options{Query: "ocean"}); err != nil {
//		log.Fatalf("pexgrid failed: %v", err)
//	}
package app

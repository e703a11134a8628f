// Package config loads pexgrid's settings.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/pexgrid/config.toml (default)
//  3. If the config file doesn't exist, fall back to hardcoded defaults
//  4. If the file exists but fields are missing/empty, use defaults
//  5. PEXELS_API_KEY, when set, replaces api_key
//
// The cmd layer loads a .env file from the working directory before calling
// Load, so PEXELS_API_KEY may also live there.
//
// # TOML Format
//
//	api_key         = ""                      # prefer PEXELS_API_KEY
//	api_base        = "https://api.pexels.com"
//	local_base      = "~/pexgrid"             # or "http://localhost:5173"
//	default_query   = "nature"
//	per_page        = 15                      # capped at 80
//	theme           = "Dracula"
//	previews        = true
//	request_timeout = "0s"                    # 0 disables the timeout
//	log_file        = "~/.local/state/pexgrid/pexgrid.log"
//	log_level       = "info"                  # debug|info|warn|error
//	log_format      = "text"                  # text|json
//
// Tilde expansion is applied to local_base (when it is not a URL) and log_file.
//
// # Error Handling
//
// Load returns errors for path expansion failures, read errors other than a
// missing file, TOML parse errors and an unparseable request_timeout.
// A missing credential is not a config error; it surfaces in the UI when a
// remote search is attempted.
package config

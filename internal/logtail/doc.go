// Package logtail reads the end of pexgrid's log file for the logs
// subcommand.
//
// Read keeps a ring of the last N lines in a single pass, so memory stays
// proportional to N rather than to the file size. Records written by the
// logging package (slog text or JSON) can be filtered by level; lines that
// carry no level are always kept.
//
//	lines, err := logtail.Read(cfg.LogFile, 200, slog.LevelWarn)
//
// A missing log file is not an error; it just has no lines yet. Rotated
// backups are not read.
package logtail

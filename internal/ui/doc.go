// Package ui provides the terminal user interface for pexgrid.
//
// # Architecture Overview
//
// The UI is a Bubble Tea program. All search state lives in a state.State
// value and changes only through state.Reduce; the Model adds what is purely
// presentational (terminal size, focus, scroll offset, theme, downloaded
// previews) and turns reducer effects into commands.
//
// # Package Structure
//
//   - app.go: Model, Update loop, key and mouse handling, commands, Run
//   - view.go: header, search line, status line, grid tiles, overlay, footer
//   - layout.go: grid and overlay geometry shared by rendering and hit testing
//   - previews.go: per-search cache of downloaded and rendered images
//   - keys.go, help.go: key bindings and the help modal
//   - theme.go, style_helpers.go: color themes and background-safe rendering
//
// # Event Flow
//
//  1. New commits the configured query; Init runs the first fetch.
//  2. A fetch command always ends in exactly one state.FetchSucceeded or
//     state.FetchFailed tagged with its sequence number; stale ones are dropped.
//  3. Successful results trigger thumbnail downloads; enlarging a photo
//     downloads its largest source.
//  4. Clicking a tile (or enter on the selection) opens the overlay. Escape,
//     the close button, or a click outside the box dismisses it. The escape
//     binding is only enabled while the overlay is open.
//
// # External Dependencies
//
//   - state: reducer and events
//   - search: user-facing error messages
//   - preview: half-block image rendering
package ui

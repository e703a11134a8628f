// Package state holds the search screen's state and the transitions that
// change it.
//
// # Overview
//
// State is a plain value. Reduce takes the current State and one Event and
// returns the next State plus an Effect. Reduce performs no I/O: when a
// transition needs a search, it returns Effect{Fetch: true} and the caller
// (the UI) runs the fetch and later feeds FetchSucceeded or FetchFailed back in.
//
//	Mounted / Submitted ──→ Reduce ──→ Effect{Fetch, Query, Seq}
//	                                        │
//	                           search.Orchestrator.Fetch
//	                                        │
//	FetchSucceeded / FetchFailed ──→ Reduce ──→ State (Loading=false)
//
// # Transitions
//
//   - DraftChanged: stores the input text verbatim
//   - Submitted: trims the draft; blank drafts change nothing and request no fetch
//   - Mounted: commits the initial query (DefaultQuery when blank)
//   - commit (internal): sets Query, bumps Seq, sets Loading, clears Err,
//     Photos and the overlay
//   - FetchSucceeded / FetchFailed: settle the cycle whose Seq matches
//   - PhotoEnlarged / OverlayDismissed: open and close the overlay
//   - SelectionMoved: moves the keyboard cursor within the grid
//
// # Sequencing
//
// Every commit increments Seq. Completions carrying an older Seq are ignored,
// so a slow earlier search cannot overwrite the results of a later one.
//
// # Outcome
//
// After a cycle settles exactly one of results, the empty notice, or the
// error is visible. Outcome encodes that rule for the presenter.
package state

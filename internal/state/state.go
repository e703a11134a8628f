package state

import (
	"strings"

	"github.com/five82/pexgrid/internal/pexels"
)

// DefaultQuery is searched on start when no other query is configured.
const DefaultQuery = "nature"

// State is everything the presenter renders from.
type State struct {
	Draft     string // uncommitted input text, verbatim
	Query     string // committed query, never blank once Committed
	Committed bool
	Loading   bool
	Err       string
	Photos    []pexels.Photo
	Selected  int // keyboard cursor into Photos
	Enlarged  int // index into Photos; meaningful only when Overlay is set
	Overlay   bool
	Seq       uint64 // token of the fetch whose completion is authoritative
}

// Outcome names the single thing the status area shows.
type Outcome int

const (
	OutcomeIdle Outcome = iota
	OutcomeLoading
	OutcomeError
	OutcomeEmpty
	OutcomeResults
)

// Outcome reports which of loading, error, empty notice or results is visible.
func (s State) Outcome() Outcome {
	switch {
	case s.Loading:
		return OutcomeLoading
	case s.Err != "":
		return OutcomeError
	case len(s.Photos) > 0:
		return OutcomeResults
	case s.Committed:
		return OutcomeEmpty
	default:
		return OutcomeIdle
	}
}

// EnlargedPhoto returns the photo shown in the overlay, if any.
func (s State) EnlargedPhoto() (pexels.Photo, bool) {
	if !s.Overlay || s.Enlarged < 0 || s.Enlarged >= len(s.Photos) {
		return pexels.Photo{}, false
	}
	return s.Photos[s.Enlarged], true
}

// SelectedPhoto returns the photo under the keyboard cursor, if any.
func (s State) SelectedPhoto() (pexels.Photo, bool) {
	if s.Selected < 0 || s.Selected >= len(s.Photos) {
		return pexels.Photo{}, false
	}
	return s.Photos[s.Selected], true
}

// Event is a discrete input to Reduce.
type Event interface{ event() }

// Mounted starts the first search with Query.
type Mounted struct{ Query string }

// DraftChanged replaces the input text.
type DraftChanged struct{ Text string }

// Submitted commits the draft.
type Submitted struct{}

// FetchSucceeded carries the result of fetch Seq.
type FetchSucceeded struct {
	Seq    uint64
	Photos []pexels.Photo
}

// FetchFailed carries the user-facing message of fetch Seq.
type FetchFailed struct {
	Seq     uint64
	Message string
}

// PhotoEnlarged opens the overlay on Photos[Index].
type PhotoEnlarged struct{ Index int }

// OverlayDismissed closes the overlay.
type OverlayDismissed struct{}

// SelectionMoved moves the cursor by Delta, clamped to the grid.
type SelectionMoved struct{ Delta int }

func (Mounted) event()          {}
func (DraftChanged) event()     {}
func (Submitted) event()        {}
func (FetchSucceeded) event()   {}
func (FetchFailed) event()      {}
func (PhotoEnlarged) event()    {}
func (OverlayDismissed) event() {}
func (SelectionMoved) event()   {}

// Effect asks the caller to run a fetch for Query tagged with Seq.
type Effect struct {
	Fetch bool
	Query string
	Seq   uint64
}

// Reduce applies ev to s. It never performs I/O; a returned Effect with
// Fetch set is the only way a search is requested.
func Reduce(s State, ev Event) (State, Effect) {
	switch ev := ev.(type) {
	case Mounted:
		query := strings.TrimSpace(ev.Query)
		if query == "" {
			query = DefaultQuery
		}
		return commit(s, query)

	case DraftChanged:
		s.Draft = ev.Text
		return s, Effect{}

	case Submitted:
		query := strings.TrimSpace(s.Draft)
		if query == "" {
			return s, Effect{}
		}
		return commit(s, query)

	case FetchSucceeded:
		if ev.Seq != s.Seq {
			return s, Effect{}
		}
		s.Loading = false
		s.Err = ""
		s.Photos = clonePhotos(ev.Photos)
		s.Selected = 0
		return s, Effect{}

	case FetchFailed:
		if ev.Seq != s.Seq {
			return s, Effect{}
		}
		s.Loading = false
		s.Err = ev.Message
		if s.Err == "" {
			s.Err = "Could not load images, try a different search."
		}
		s.Photos = nil
		return s, Effect{}

	case PhotoEnlarged:
		if ev.Index < 0 || ev.Index >= len(s.Photos) {
			return s, Effect{}
		}
		s.Overlay = true
		s.Enlarged = ev.Index
		s.Selected = ev.Index
		return s, Effect{}

	case OverlayDismissed:
		s.Overlay = false
		s.Enlarged = 0
		return s, Effect{}

	case SelectionMoved:
		if len(s.Photos) == 0 {
			s.Selected = 0
			return s, Effect{}
		}
		next := s.Selected + ev.Delta
		if next < 0 {
			next = 0
		}
		if next > len(s.Photos)-1 {
			next = len(s.Photos) - 1
		}
		s.Selected = next
		return s, Effect{}
	}
	return s, Effect{}
}

// commit records query and starts a fetch cycle for it.
func commit(s State, query string) (State, Effect) {
	s.Query = query
	s.Committed = true
	s.Seq++
	s.Loading = true
	s.Err = ""
	s.Photos = nil
	s.Selected = 0
	s.Overlay = false
	s.Enlarged = 0
	return s, Effect{Fetch: true, Query: query, Seq: s.Seq}
}

func clonePhotos(photos []pexels.Photo) []pexels.Photo {
	if len(photos) == 0 {
		return nil
	}
	dup := make([]pexels.Photo, len(photos))
	copy(dup, photos)
	return dup
}

package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/pexgrid/internal/pexels"
)

func photos(names ...string) []pexels.Photo {
	out := make([]pexels.Photo, len(names))
	for i, n := range names {
		out[i] = pexels.Photo{ID: pexels.PhotoID(n), Photographer: n, Src: pexels.PhotoSrc{Medium: n + ".jpg"}}
	}
	return out
}

func TestMounted_StartsDefaultFetch(t *testing.T) {
	s, eff := Reduce(State{}, Mounted{})
	assert.Equal(t, Effect{Fetch: true, Query: DefaultQuery, Seq: 1}, eff)
	assert.True(t, s.Loading)
	assert.True(t, s.Committed)
	assert.Equal(t, OutcomeLoading, s.Outcome())
}

func TestSubmitted_BlankDraftIsNoop(t *testing.T) {
	base, _ := Reduce(State{}, Mounted{Query: "nature"})
	base, _ = Reduce(base, FetchSucceeded{Seq: base.Seq, Photos: photos("a")})

	for _, draft := range []string{"", "   ", "\t\n"} {
		s, _ := Reduce(base, DraftChanged{Text: draft})
		next, eff := Reduce(s, Submitted{})
		assert.False(t, eff.Fetch, "draft %q must not fetch", draft)
		assert.Equal(t, s, next, "draft %q must not change state", draft)
		assert.Equal(t, "nature", next.Query)
	}
}

func TestSubmitted_TrimsAndCommits(t *testing.T) {
	s, _ := Reduce(State{}, Mounted{Query: "nature"})
	s, _ = Reduce(s, DraftChanged{Text: "  red fox "})
	assert.Equal(t, "  red fox ", s.Draft, "draft is stored verbatim")

	s, eff := Reduce(s, Submitted{})
	require.True(t, eff.Fetch)
	assert.Equal(t, "red fox", eff.Query)
	assert.Equal(t, uint64(2), eff.Seq)
	assert.Equal(t, "red fox", s.Query)
}

func TestFetchStart_ClearsPreviousCycle(t *testing.T) {
	s, _ := Reduce(State{}, Mounted{Query: "a"})
	s, _ = Reduce(s, FetchSucceeded{Seq: s.Seq, Photos: photos("x", "y")})
	s, _ = Reduce(s, PhotoEnlarged{Index: 1})
	require.True(t, s.Overlay)

	s, _ = Reduce(s, DraftChanged{Text: "b"})
	s, _ = Reduce(s, Submitted{})
	assert.True(t, s.Loading)
	assert.Empty(t, s.Err)
	assert.Nil(t, s.Photos, "stale results must not stay visible")
	assert.False(t, s.Overlay, "overlay closes with a new search")
}

func TestSettledOutcomesAreExclusive(t *testing.T) {
	start, _ := Reduce(State{}, Mounted{Query: "q"})

	ok, _ := Reduce(start, FetchSucceeded{Seq: start.Seq, Photos: photos("a")})
	empty, _ := Reduce(start, FetchSucceeded{Seq: start.Seq, Photos: []pexels.Photo{}})
	failed, _ := Reduce(start, FetchFailed{Seq: start.Seq, Message: "Rate limit exceeded"})
	blank, _ := Reduce(start, FetchFailed{Seq: start.Seq})

	for name, tc := range map[string]struct {
		s    State
		want Outcome
	}{
		"results": {ok, OutcomeResults},
		"empty":   {empty, OutcomeEmpty},
		"error":   {failed, OutcomeError},
		"blank":   {blank, OutcomeError},
	} {
		assert.False(t, tc.s.Loading, name)
		assert.Equal(t, tc.want, tc.s.Outcome(), name)
	}
	assert.Equal(t, "Rate limit exceeded", failed.Err)
	assert.NotEmpty(t, blank.Err)
	assert.Empty(t, failed.Photos)
}

func TestStaleCompletionsAreDiscarded(t *testing.T) {
	s, first := Reduce(State{}, Mounted{Query: "slow"})
	s, _ = Reduce(s, DraftChanged{Text: "fast"})
	s, second := Reduce(s, Submitted{})
	require.NotEqual(t, first.Seq, second.Seq)

	s, _ = Reduce(s, FetchSucceeded{Seq: second.Seq, Photos: photos("fast1")})
	s, _ = Reduce(s, FetchSucceeded{Seq: first.Seq, Photos: photos("slow1", "slow2")})
	require.Len(t, s.Photos, 1)
	assert.Equal(t, "fast1", s.Photos[0].Photographer)

	s, _ = Reduce(s, FetchFailed{Seq: first.Seq, Message: "late failure"})
	assert.Empty(t, s.Err)
	assert.Equal(t, OutcomeResults, s.Outcome())
}

func TestEnlargeAndDismiss(t *testing.T) {
	s, _ := Reduce(State{}, Mounted{Query: "q"})
	s, _ = Reduce(s, FetchSucceeded{Seq: s.Seq, Photos: photos("a", "b")})

	same, _ := Reduce(s, PhotoEnlarged{Index: 5})
	assert.False(t, same.Overlay, "out of range index is ignored")

	s, _ = Reduce(s, PhotoEnlarged{Index: 1})
	p, ok := s.EnlargedPhoto()
	require.True(t, ok)
	assert.Equal(t, pexels.PhotoID("b"), p.ID)
	assert.Equal(t, 1, s.Selected)

	s, _ = Reduce(s, OverlayDismissed{})
	_, ok = s.EnlargedPhoto()
	assert.False(t, ok)
	assert.Len(t, s.Photos, 2, "dismissal keeps results")
}

func TestSelectionMovedClamps(t *testing.T) {
	s, _ := Reduce(State{}, Mounted{Query: "q"})
	s, _ = Reduce(s, SelectionMoved{Delta: 3})
	assert.Equal(t, 0, s.Selected)

	s, _ = Reduce(s, FetchSucceeded{Seq: s.Seq, Photos: photos("a", "b", "c")})
	s, _ = Reduce(s, SelectionMoved{Delta: 10})
	assert.Equal(t, 2, s.Selected)
	s, _ = Reduce(s, SelectionMoved{Delta: -1})
	assert.Equal(t, 1, s.Selected)
	s, _ = Reduce(s, SelectionMoved{Delta: -10})
	assert.Equal(t, 0, s.Selected)

	p, ok := s.SelectedPhoto()
	require.True(t, ok)
	assert.Equal(t, "a", p.Photographer)
}

func TestIdleBeforeAnyCommit(t *testing.T) {
	assert.Equal(t, OutcomeIdle, State{}.Outcome())
}

package ui

import "testing"

func TestTruncate(t *testing.T) {
	cases := []struct {
		in    string
		limit int
		want  string
	}{
		{"short", 10, "short"},
		{"  spaced   out  ", 20, "spaced out"},
		{"Photo by Someone Long", 12, "Photo by ..."},
		{"abcdef", 3, "abc"},
		{"abc", 0, ""},
		{"", 5, ""},
	}
	for _, tc := range cases {
		if got := truncate(tc.in, tc.limit); got != tc.want {
			t.Fatalf("truncate(%q, %d) = %q, want %q", tc.in, tc.limit, got, tc.want)
		}
	}
}

func TestPadRight(t *testing.T) {
	if got := padRight("ab", 4); got != "ab  " {
		t.Fatalf("padRight = %q", got)
	}
	if got := padRight("abcdef", 4); got != "abcdef" {
		t.Fatalf("padRight should not cut: %q", got)
	}
}

func TestEmptyNotice(t *testing.T) {
	if got := emptyNotice("xyz123"); got != `No results for "xyz123".` {
		t.Fatalf("emptyNotice = %q", got)
	}
}

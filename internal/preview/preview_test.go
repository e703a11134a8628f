package preview

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func solid(w, h int, c color.Color) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func TestFit(t *testing.T) {
	cases := []struct {
		name         string
		w, h         int
		cols, rows   int
		wantW, wantH int
	}{
		{"landscape limited by width", 400, 200, 20, 10, 20, 10},
		{"portrait limited by height", 200, 400, 20, 5, 5, 10},
		{"square", 100, 100, 10, 10, 10, 10},
		{"odd height rounds down", 100, 30, 10, 10, 10, 2},
		{"empty image", 0, 0, 10, 10, 0, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			gotW, gotH := Fit(image.Rect(0, 0, tc.w, tc.h), tc.cols, tc.rows)
			if gotW != tc.wantW || gotH != tc.wantH {
				t.Fatalf("Fit = %dx%d, want %dx%d", gotW, gotH, tc.wantW, tc.wantH)
			}
		})
	}
}

func TestRender_ExactDimensions(t *testing.T) {
	out := Render(solid(300, 100, color.RGBA{R: 200, A: 255}), 12, 4)
	lines := strings.Split(out, "\n")
	if len(lines) != 4 {
		t.Fatalf("Render produced %d lines, want 4", len(lines))
	}
	for i, line := range lines {
		if w := lipgloss.Width(line); w != 12 {
			t.Fatalf("line %d width = %d, want 12", i, w)
		}
	}
	if !strings.Contains(out, upperHalfBlock) {
		t.Fatalf("Render output has no half blocks: %q", out)
	}
}

func TestRender_NilImageIsBlank(t *testing.T) {
	out := Render(nil, 5, 2)
	if out != "     \n     " {
		t.Fatalf("Render(nil) = %q, want blank block", out)
	}
	if Render(nil, 0, 2) != "" {
		t.Fatalf("Render with zero cols should be empty")
	}
}

func TestFetcher_FetchDecodesPNG(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, solid(4, 2, color.White)); err != nil {
		t.Fatalf("png.Encode: %v", err)
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/ok.png" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(buf.Bytes())
	}))
	t.Cleanup(server.Close)

	f := NewFetcher(server.Client(), nil)
	img, err := f.Fetch(context.Background(), server.URL+"/ok.png")
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	if img.Bounds().Dx() != 4 || img.Bounds().Dy() != 2 {
		t.Fatalf("bounds = %v, want 4x2", img.Bounds())
	}

	if _, err := f.Fetch(context.Background(), server.URL+"/missing.png"); err == nil {
		t.Fatalf("Fetch returned nil error for 404")
	}
	if _, err := f.Fetch(context.Background(), " "); err == nil {
		t.Fatalf("Fetch returned nil error for empty url")
	}
}

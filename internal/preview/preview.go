// Package preview turns photo URLs into terminal half-block renderings.
package preview

import (
	"context"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"  // register decoder
	_ "image/jpeg" // register decoder
	_ "image/png"  // register decoder
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // register decoder
)

const (
	maxImageBytes  = 24 << 20
	requestTimeout = 20 * time.Second
	upperHalfBlock = "▀"
)

// Fetcher downloads and decodes images.
type Fetcher struct {
	http   *http.Client
	logger *slog.Logger
}

// NewFetcher builds a Fetcher. A nil client uses a client with a 20s timeout.
func NewFetcher(client *http.Client, logger *slog.Logger) *Fetcher {
	if client == nil {
		client = &http.Client{Timeout: requestTimeout}
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Fetcher{http: client, logger: logger.With(slog.String("component", "preview"))}
}

// Fetch downloads the image at rawURL.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (image.Image, error) {
	if strings.TrimSpace(rawURL) == "" {
		return nil, fmt.Errorf("image url is empty")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "image/*")

	resp, err := f.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("image %s returned status %d", rawURL, resp.StatusCode)
	}
	img, format, err := image.Decode(io.LimitReader(resp.Body, maxImageBytes))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	f.logger.Debug("image loaded",
		slog.String("url", rawURL),
		slog.String("format", format),
		slog.Int("width", img.Bounds().Dx()),
		slog.Int("height", img.Bounds().Dy()))
	return img, nil
}

// Fit returns the pixel size of img scaled to fit cols x rows cells, where
// each cell holds two vertically stacked pixels.
func Fit(bounds image.Rectangle, cols, rows int) (int, int) {
	w, h := bounds.Dx(), bounds.Dy()
	if w <= 0 || h <= 0 || cols <= 0 || rows <= 0 {
		return 0, 0
	}
	maxW, maxH := float64(cols), float64(rows*2)
	scale := min(maxW/float64(w), maxH/float64(h))
	outW := max(1, int(float64(w)*scale+0.5))
	outH := max(2, int(float64(h)*scale+0.5))
	outW = min(outW, cols)
	outH = min(outH, rows*2)
	if outH%2 == 1 {
		outH--
	}
	return outW, outH
}

// Render draws img into exactly rows lines of cols cells, centered, using
// the upper half block with foreground for the top pixel and background for
// the bottom one.
func Render(img image.Image, cols, rows int) string {
	if cols <= 0 || rows <= 0 {
		return ""
	}
	blank := strings.Repeat(" ", cols)
	if img == nil {
		return strings.TrimSuffix(strings.Repeat(blank+"\n", rows), "\n")
	}
	w, h := Fit(img.Bounds(), cols, rows)
	if w == 0 || h == 0 {
		return strings.TrimSuffix(strings.Repeat(blank+"\n", rows), "\n")
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)

	cellRows := h / 2
	top := (rows - cellRows) / 2
	left := (cols - w) / 2
	right := cols - w - left

	lines := make([]string, 0, rows)
	for i := 0; i < top; i++ {
		lines = append(lines, blank)
	}
	for y := 0; y < cellRows; y++ {
		var b strings.Builder
		b.WriteString(strings.Repeat(" ", left))
		for x := 0; x < w; x++ {
			upper := dst.RGBAAt(x, y*2)
			lower := dst.RGBAAt(x, y*2+1)
			b.WriteString(lipgloss.NewStyle().
				Foreground(lipgloss.Color(hex(upper))).
				Background(lipgloss.Color(hex(lower))).
				Render(upperHalfBlock))
		}
		b.WriteString(strings.Repeat(" ", right))
		lines = append(lines, b.String())
	}
	for len(lines) < rows {
		lines = append(lines, blank)
	}
	return strings.Join(lines, "\n")
}

func hex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

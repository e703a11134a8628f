package ui

import (
	"image"

	"github.com/five82/pexgrid/internal/preview"
)

type previewStatus int

const (
	previewMissing previewStatus = iota
	previewPending
	previewReady
	previewFailed
)

type renderKey struct {
	url        string
	cols, rows int
}

// previewCache holds downloaded images for the current result set and their
// rendered forms. It is shared by every copy of the Model and only touched
// from the Bubble Tea event loop. Each new search starts a new generation;
// downloads finishing for an older generation are dropped.
type previewCache struct {
	gen      uint64
	images   map[string]image.Image
	pending  map[string]bool
	failed   map[string]bool
	rendered map[renderKey]string
}

func newPreviewCache() *previewCache {
	c := &previewCache{}
	c.reset()
	return c
}

func (c *previewCache) reset() {
	c.gen++
	c.images = make(map[string]image.Image)
	c.pending = make(map[string]bool)
	c.failed = make(map[string]bool)
	c.rendered = make(map[renderKey]string)
}

// claim marks url as pending and reports whether the caller should fetch it.
func (c *previewCache) claim(url string) (uint64, bool) {
	if c.status(url) != previewMissing {
		return 0, false
	}
	c.pending[url] = true
	return c.gen, true
}

func (c *previewCache) store(msg previewMsg) {
	if msg.gen != c.gen {
		return
	}
	delete(c.pending, msg.url)
	if msg.err != nil || msg.img == nil {
		c.failed[msg.url] = true
		return
	}
	c.images[msg.url] = msg.img
}

func (c *previewCache) status(url string) previewStatus {
	switch {
	case c.images[url] != nil:
		return previewReady
	case c.pending[url]:
		return previewPending
	case c.failed[url]:
		return previewFailed
	default:
		return previewMissing
	}
}

// render returns the half-block rendering of url at cols x rows, or false
// when the image has not arrived.
func (c *previewCache) render(url string, cols, rows int) (string, bool) {
	img := c.images[url]
	if img == nil {
		return "", false
	}
	k := renderKey{url: url, cols: cols, rows: rows}
	if out, ok := c.rendered[k]; ok {
		return out, true
	}
	out := preview.Render(img, cols, rows)
	c.rendered[k] = out
	return out, true
}

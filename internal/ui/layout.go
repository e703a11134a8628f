package ui

// Screen rows above the grid are header, search input, status and a spacer.
const (
	rowSearch = 1
	gridTop   = 4
)

// Tile geometry, in terminal cells.
const (
	// tileWidth is the outer width of a tile including its border.
	tileWidth = 30

	// tileMinWidth is the narrowest a tile shrinks to on small terminals.
	tileMinWidth = 16

	// tileImageRows is the image height inside a tile when previews are on.
	tileImageRows = 8

	// tileCaptionRows holds the credit line and the alt text.
	tileCaptionRows = 2

	// tileGap separates adjacent tile columns.
	tileGap = 1
)

// Overlay geometry.
const (
	overlayMaxWidth = 100
	overlayMinWidth = 24

	// overlayTextRows covers photographer, alt, url, spacer and the button.
	overlayTextRows = 5

	// Border plus padding on each axis.
	overlayChromeX = 6
	overlayChromeY = 4

	closeLabel = "[ Close ]"
)

// gridLayout describes where tiles land on screen.
type gridLayout struct {
	top       int // screen row of the first visible tile row
	cols      int // tiles per row
	tileW     int // outer tile width
	tileH     int // outer tile height
	imageRows int // image rows inside a tile, 0 when previews are off
	visible   int // tile rows that fit on screen
}

// rows returns how many tile rows n photos occupy.
func (g gridLayout) rows(n int) int {
	if g.cols <= 0 || n <= 0 {
		return 0
	}
	return (n + g.cols - 1) / g.cols
}

// grid computes the tile layout for the current terminal size.
func (m Model) grid() gridLayout {
	g := gridLayout{top: gridTop}

	g.tileW = min(tileWidth, max(tileMinWidth, m.width))
	g.cols = max(1, (m.width+tileGap)/(g.tileW+tileGap))

	if m.previewsEnabled() {
		g.imageRows = tileImageRows
	}
	g.tileH = 2 + g.imageRows + tileCaptionRows

	// One row is reserved for the footer.
	avail := m.height - gridTop - 1
	g.visible = max(1, avail/g.tileH)
	return g
}

// tileAt maps a screen cell to the photo index under it.
func (m Model) tileAt(x, y int) (int, bool) {
	g := m.grid()
	if x < 0 || y < g.top {
		return 0, false
	}
	row := (y - g.top) / g.tileH
	if row >= g.visible {
		return 0, false
	}
	stride := g.tileW + tileGap
	col := x / stride
	if col >= g.cols || x%stride >= g.tileW {
		return 0, false
	}
	idx := (m.scroll+row)*g.cols + col
	if idx >= len(m.state.Photos) {
		return 0, false
	}
	return idx, true
}

// rect is a screen region in cells.
type rect struct {
	x, y, w, h int
}

func (r rect) contains(x, y int) bool {
	return x >= r.x && x < r.x+r.w && y >= r.y && y < r.y+r.h
}

// overlayLayout describes the enlarged view box on screen.
type overlayLayout struct {
	box       rect // outer box, border included
	imageCols int
	imageRows int
	close     rect // the close button
}

// overlay computes the overlay box for the current terminal size.
func (m Model) overlay() overlayLayout {
	var o overlayLayout

	w := min(m.width-4, overlayMaxWidth)
	w = max(w, min(overlayMinWidth, m.width))
	o.imageCols = max(0, w-overlayChromeX)

	contentH := overlayTextRows
	if m.previewsEnabled() {
		avail := m.height - 2 - overlayChromeY - overlayTextRows - 1
		o.imageRows = max(0, min(avail, o.imageCols/2))
		if o.imageRows > 0 {
			contentH += o.imageRows + 1
		}
	}
	h := contentH + overlayChromeY

	o.box = rect{
		x: max(0, (m.width-w)/2),
		y: max(0, (m.height-h)/2),
		w: w,
		h: h,
	}
	// Button sits on the last content line, after the left border and padding.
	o.close = rect{
		x: o.box.x + 1 + 2,
		y: o.box.y + 1 + 1 + contentH - 1,
		w: len(closeLabel),
		h: 1,
	}
	return o
}

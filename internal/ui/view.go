package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/pexgrid/internal/pexels"
	"github.com/five82/pexgrid/internal/state"
)

// renderMain renders header, search line, status, grid and footer, filling
// exactly the terminal height.
func (m Model) renderMain() string {
	lines := []string{
		m.renderHeader(),
		m.renderSearch(),
		m.renderStatus(),
		"",
	}

	avail := max(0, m.height-len(lines)-1)
	grid := m.renderGrid()
	if len(grid) > avail {
		grid = grid[:avail]
	}
	lines = append(lines, grid...)
	for len(lines) < m.height-1 {
		lines = append(lines, "")
	}

	lines = append(lines, m.renderFooter())
	return strings.Join(lines, "\n")
}

// renderHeader renders the title bar.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	parts := []string{
		bg.Render("pexgrid", styles.Logo),
		bg.Render("Pexels image search", styles.MutedText),
	}
	if m.state.Committed {
		parts = append(parts,
			bg.Render("query", styles.FaintText)+bg.Space()+
				bg.Render(truncate(m.state.Query, 40), styles.AccentText))
	}
	parts = append(parts, bg.Render(m.theme.Name, styles.FaintText))

	return styles.Header.Width(m.width).MaxHeight(1).Render(bg.Join(parts, "  "))
}

// renderSearch renders the query input line.
func (m Model) renderSearch() string {
	styles := m.theme.Styles()
	marker := "  "
	if m.input.Focused() {
		marker = styles.AccentText.Render("> ")
	}
	return lipgloss.NewStyle().MaxWidth(m.width).Render(marker + m.input.View())
}

// renderStatus renders the single status line: loading, error, empty
// notice or a result count. Never more than one.
func (m Model) renderStatus() string {
	styles := m.theme.Styles()
	line := ""
	switch m.state.Outcome() {
	case state.OutcomeLoading:
		line = m.spinner.View() + " " + styles.MutedText.Render("Loading images...")
	case state.OutcomeError:
		line = styles.DangerText.Render("Error: " + m.state.Err)
	case state.OutcomeEmpty:
		line = styles.WarningText.Render(emptyNotice(m.state.Query))
	case state.OutcomeResults:
		n := len(m.state.Photos)
		line = styles.MutedText.Render(fmt.Sprintf("%d %s for \"%s\"", n, pluralize(n, "photo", "photos"), m.state.Query))
	}
	return lipgloss.NewStyle().MaxWidth(m.width).Render("  " + line)
}

func emptyNotice(query string) string {
	return "No results for \"" + query + "\"."
}

// renderGrid renders the visible tile rows.
func (m Model) renderGrid() []string {
	if m.state.Outcome() != state.OutcomeResults {
		return nil
	}
	g := m.grid()
	photos := m.state.Photos
	gap := strings.Repeat(" ", tileGap)

	var lines []string
	for r := m.scroll; r < m.scroll+g.visible; r++ {
		start := r * g.cols
		if start >= len(photos) {
			break
		}
		end := min(start+g.cols, len(photos))
		tiles := make([]string, 0, 2*(end-start))
		for i := start; i < end; i++ {
			if i > start {
				tiles = append(tiles, gap)
			}
			tiles = append(tiles, m.renderTile(i, photos[i], g))
		}
		row := lipgloss.JoinHorizontal(lipgloss.Top, tiles...)
		lines = append(lines, strings.Split(row, "\n")...)
	}
	return lines
}

// renderTile renders one grid tile: preview, credit line and alt text.
func (m Model) renderTile(i int, p pexels.Photo, g gridLayout) string {
	styles := m.theme.Styles()
	inner := g.tileW - 2

	frame, credit := styles.Tile, styles.Text
	if i == m.state.Selected {
		frame, credit = styles.TileSelected, styles.Selected
	}

	var b []string
	if g.imageRows > 0 {
		b = append(b, m.renderImage(p.Src.Medium, inner, g.imageRows))
	}
	b = append(b,
		credit.Render(padRight(truncate("Photo by "+p.Photographer, inner), inner)),
		styles.MutedText.Render(padRight(truncate(p.Alt, inner), inner)),
	)
	return frame.Width(inner).Render(strings.Join(b, "\n"))
}

// renderImage renders the preview for url, or a placeholder of the same size.
func (m Model) renderImage(url string, cols, rows int) string {
	if out, ok := m.previews.render(url, cols, rows); ok {
		return out
	}
	label := "no preview"
	if m.previews.status(url) == previewPending {
		label = "loading"
	}
	return lipgloss.Place(cols, rows, lipgloss.Center, lipgloss.Center,
		m.theme.Styles().FaintText.Render(truncate(label, cols)))
}

// renderOverlay renders the enlarged photo centered over a plain backdrop.
// Placement is computed by overlay() so mouse hit testing matches.
func (m Model) renderOverlay(p pexels.Photo) string {
	styles := m.theme.Styles()
	o := m.overlay()
	contentW := o.imageCols
	src := p.BestSrc()

	var lines []string
	if o.imageRows > 0 {
		lines = append(lines, m.renderImage(src, o.imageCols, o.imageRows), "")
	}

	hint := "esc close  y copy url"
	if m.notice != "" {
		hint = m.notice
	}
	hint = truncate(hint, contentW-len(closeLabel)-2)

	lines = append(lines,
		styles.Text.Bold(true).Render(truncate("Photo by "+p.Photographer, contentW)),
		styles.MutedText.Render(truncate(p.Alt, contentW)),
		styles.InfoText.Render(truncate(src, contentW)),
		"",
		styles.Button.Render(closeLabel)+"  "+styles.FaintText.Render(hint),
	)
	box := styles.Overlay.Width(o.box.w - 2).Render(strings.Join(lines, "\n"))

	bg := NewBgStyle(m.theme.Background)
	screen := bg.Block(m.width, m.height)
	for i, line := range strings.Split(box, "\n") {
		y := o.box.y + i
		if y >= len(screen) {
			break
		}
		right := m.width - o.box.x - lipgloss.Width(line)
		screen[y] = bg.Spaces(o.box.x) + line + bg.Spaces(right)
	}
	return strings.Join(screen, "\n")
}

// renderFooter renders the short key help, prefixed by any notice.
func (m Model) renderFooter() string {
	styles := m.theme.Styles()
	content := m.help.View(m.keys)
	if m.notice != "" {
		content = styles.SuccessText.Render(m.notice) + "  " + content
	}
	return styles.Footer.Width(m.width).MaxHeight(1).Render(content)
}

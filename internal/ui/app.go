package ui

import (
	"context"
	"errors"
	"image"
	"log/slog"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/pexgrid/internal/pexels"
	"github.com/five82/pexgrid/internal/search"
	"github.com/five82/pexgrid/internal/state"
)

// Searcher runs one search. *search.Orchestrator satisfies it.
type Searcher interface {
	Fetch(ctx context.Context, query string) ([]pexels.Photo, error)
}

// ImageLoader downloads one preview image. *preview.Fetcher satisfies it.
type ImageLoader interface {
	Fetch(ctx context.Context, url string) (image.Image, error)
}

// Options configures the UI.
type Options struct {
	Context   context.Context
	Search    Searcher
	Images    ImageLoader // nil disables image previews
	Query     string      // first search; blank uses state.DefaultQuery
	ThemeName string
	Logger    *slog.Logger
	Clipboard func(string) error // nil writes to the system clipboard
	SaveTheme func(string) error // called after T cycles the theme; may be nil
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	search    Searcher
	images    ImageLoader
	logger    *slog.Logger
	copyURL   func(string) error
	saveTheme func(string) error
	initial   state.Effect

	// Search state, changed only through state.Reduce
	state state.State

	// UI state
	theme    Theme
	keys     keyMap
	help     help.Model
	input    textinput.Model
	spinner  spinner.Model
	width    int
	height   int
	ready    bool
	showHelp bool
	scroll   int // first visible tile row
	notice   string

	previews *previewCache
}

// New creates a new Bubble Tea model. The first search is committed here so
// the initial frame already shows the loading state; Init runs it.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	copyURL := opts.Clipboard
	if copyURL == nil {
		copyURL = clipboard.WriteAll
	}

	input := textinput.New()
	input.Prompt = "Search: "
	input.Placeholder = "Search images... (press /)"
	input.CharLimit = 200

	m := Model{
		ctx:      ctx,
		search:   opts.Search,
		images:   opts.Images,
		logger:   logger.With(slog.String("component", "ui")),
		copyURL:  copyURL,
		keys:     DefaultKeyMap(),
		help:     help.New(),
		input:    input,
		spinner:  spinner.New(spinner.WithSpinner(spinner.Dot)),
		previews: newPreviewCache(),
	}
	m.saveTheme = opts.SaveTheme
	m.applyTheme(GetTheme(opts.ThemeName))
	m.state, m.initial = state.Reduce(m.state, state.Mounted{Query: opts.Query})
	m.syncBindings()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.fetch(m.initial), m.spinner.Tick)
}

// Update implements tea.Model. Key bindings and scrolling are reconciled
// after every message so they always match the state just produced.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.update(msg)
	next.syncBindings()
	next.keepSelectionVisible()
	return next, cmd
}

func (m Model) update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.help.Width = msg.Width
		m.input.Width = max(10, msg.Width-len(m.input.Prompt)-4)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case spinner.TickMsg:
		// Letting the tick drop ends the animation until the next fetch.
		if !m.state.Loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case state.FetchSucceeded:
		if msg.Seq != m.state.Seq {
			m.logger.Debug("discarding stale results", slog.Uint64("seq", msg.Seq))
			return m, nil
		}
		m.dispatch(msg)
		m.scroll = 0
		return m, m.loadThumbnails()

	case state.FetchFailed:
		if msg.Seq != m.state.Seq {
			m.logger.Debug("discarding stale failure", slog.Uint64("seq", msg.Seq))
			return m, nil
		}
		m.dispatch(msg)
		return m, nil

	case previewMsg:
		if msg.err != nil {
			m.logger.Debug("preview unavailable",
				slog.String("url", msg.url),
				slog.String("error", msg.err.Error()))
		}
		m.previews.store(msg)
		return m, nil

	case themeSavedMsg:
		if msg.err != nil {
			m.logger.Warn("save theme failed", slog.String("error", msg.err.Error()))
		}
		return m, nil

	case copiedMsg:
		if msg.err != nil {
			m.logger.Warn("clipboard write failed", slog.String("error", msg.err.Error()))
			m.notice = "Copy failed"
		} else {
			m.notice = "Copied image URL"
		}
		return m, nil
	}

	// Cursor blink and other input internals.
	if m.input.Focused() {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	if photo, ok := m.state.EnlargedPhoto(); ok {
		return m.renderOverlay(photo)
	}
	return m.renderMain()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	// Any key closes help
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	if m.input.Focused() {
		return m.handleInputKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Dismiss):
		m.dispatch(state.OverlayDismissed{})
		return m, nil

	case key.Matches(msg, m.keys.Copy):
		return m, m.copyEnlarged()

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.applyTheme(GetTheme(NextTheme(m.theme.Name)))
		return m, m.persistTheme()
	}

	// The grid is inert behind the overlay.
	if m.state.Overlay {
		return m, nil
	}
	return m.handleGridKey(msg)
}

// handleInputKey processes keys while the search input has focus.
func (m Model) handleInputKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Submit):
		cmd := m.dispatch(state.Submitted{})
		if cmd != nil {
			m.input.Blur()
		}
		return m, cmd

	case key.Matches(msg, m.keys.Blur):
		m.input.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if value := m.input.Value(); value != m.state.Draft {
		m.dispatch(state.DraftChanged{Text: value})
	}
	return m, cmd
}

// handleGridKey processes navigation keys for the photo grid.
func (m Model) handleGridKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	cols := m.grid().cols
	count := len(m.state.Photos)

	switch {
	case key.Matches(msg, m.keys.Focus):
		m.notice = ""
		cmd := m.input.Focus()
		return m, cmd
	case key.Matches(msg, m.keys.Enlarge):
		cmd := m.enlarge(m.state.Selected)
		return m, cmd
	case key.Matches(msg, m.keys.Up):
		m.dispatch(state.SelectionMoved{Delta: -cols})
	case key.Matches(msg, m.keys.Down):
		m.dispatch(state.SelectionMoved{Delta: cols})
	case key.Matches(msg, m.keys.Left):
		m.dispatch(state.SelectionMoved{Delta: -1})
	case key.Matches(msg, m.keys.Right):
		m.dispatch(state.SelectionMoved{Delta: 1})
	case key.Matches(msg, m.keys.Top):
		m.dispatch(state.SelectionMoved{Delta: -count})
	case key.Matches(msg, m.keys.Bottom):
		m.dispatch(state.SelectionMoved{Delta: count})
	}
	return m, nil
}

// handleMouse processes clicks and wheel scrolling.
func (m Model) handleMouse(msg tea.MouseMsg) (Model, tea.Cmd) {
	if m.showHelp || msg.Action != tea.MouseActionPress {
		return m, nil
	}

	switch msg.Button {
	case tea.MouseButtonWheelUp, tea.MouseButtonWheelDown:
		if m.state.Overlay {
			return m, nil
		}
		delta := m.grid().cols
		if msg.Button == tea.MouseButtonWheelUp {
			delta = -delta
		}
		m.dispatch(state.SelectionMoved{Delta: delta})
		return m, nil
	case tea.MouseButtonLeft:
	default:
		return m, nil
	}

	if m.state.Overlay {
		o := m.overlay()
		switch {
		case o.close.contains(msg.X, msg.Y):
			m.dispatch(state.OverlayDismissed{})
		case o.box.contains(msg.X, msg.Y):
			// Clicks on the content itself keep the overlay open.
		default:
			m.dispatch(state.OverlayDismissed{})
		}
		return m, nil
	}

	if msg.Y == rowSearch {
		cmd := m.input.Focus()
		return m, cmd
	}
	if idx, ok := m.tileAt(msg.X, msg.Y); ok {
		m.input.Blur()
		cmd := m.enlarge(idx)
		return m, cmd
	}
	return m, nil
}

// dispatch reduces ev into the model and returns the command for any
// fetch it requested.
func (m *Model) dispatch(ev state.Event) tea.Cmd {
	var eff state.Effect
	m.state, eff = state.Reduce(m.state, ev)
	if !eff.Fetch {
		return nil
	}
	m.scroll = 0
	m.notice = ""
	m.previews.reset()
	return tea.Batch(m.fetch(eff), m.spinner.Tick)
}

// enlarge opens the overlay on Photos[idx] and loads its full-size preview.
func (m *Model) enlarge(idx int) tea.Cmd {
	m.dispatch(state.PhotoEnlarged{Index: idx})
	photo, ok := m.state.EnlargedPhoto()
	if !ok {
		return nil
	}
	m.notice = ""
	return m.loadImage(photo.BestSrc())
}

// syncBindings enables the bindings that apply to the current state. The
// overlay bindings are held exactly while the overlay is open.
func (m *Model) syncBindings() {
	overlay := m.state.Overlay
	typing := m.input.Focused()

	m.keys.Dismiss.SetEnabled(overlay)
	m.keys.Copy.SetEnabled(overlay)

	m.keys.Submit.SetEnabled(typing)
	m.keys.Blur.SetEnabled(typing)
	m.keys.Focus.SetEnabled(!typing && !overlay)
	m.keys.Enlarge.SetEnabled(!typing && !overlay && len(m.state.Photos) > 0)
}

// keepSelectionVisible scrolls the grid so the selected tile is on screen.
func (m *Model) keepSelectionVisible() {
	if !m.ready {
		return
	}
	g := m.grid()
	total := g.rows(len(m.state.Photos))
	if total == 0 {
		m.scroll = 0
		return
	}
	row := m.state.Selected / g.cols
	if row < m.scroll {
		m.scroll = row
	}
	if row >= m.scroll+g.visible {
		m.scroll = row - g.visible + 1
	}
	m.scroll = max(0, min(m.scroll, total-g.visible))
}

func (m *Model) applyTheme(t Theme) {
	m.theme = t
	styles := t.Styles()
	m.help.Styles.ShortKey = styles.AccentText
	m.help.Styles.ShortDesc = styles.MutedText
	m.help.Styles.ShortSeparator = styles.FaintText
	m.help.Styles.FullKey = styles.AccentText
	m.help.Styles.FullDesc = styles.MutedText
	m.help.Styles.FullSeparator = styles.FaintText
	m.help.Styles.Ellipsis = styles.FaintText
	m.spinner.Style = styles.AccentText
	m.input.PromptStyle = styles.AccentText
	m.input.TextStyle = styles.Text
	m.input.PlaceholderStyle = styles.FaintText
}

func (m Model) previewsEnabled() bool {
	return m.images != nil
}

// Messages

type previewMsg struct {
	gen uint64
	url string
	img image.Image
	err error
}

type copiedMsg struct {
	err error
}

type themeSavedMsg struct {
	err error
}

// Commands

// fetch runs one search. Every path out of it, a panic included, yields
// exactly one completion event tagged with the effect's sequence number.
func (m Model) fetch(eff state.Effect) tea.Cmd {
	if !eff.Fetch {
		return nil
	}
	ctx, searcher, logger := m.ctx, m.search, m.logger
	return func() (msg tea.Msg) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("search panicked",
					slog.String("query", eff.Query),
					slog.Any("panic", r))
				msg = state.FetchFailed{Seq: eff.Seq, Message: search.MsgGenericFailure}
			}
		}()

		if searcher == nil {
			return state.FetchFailed{Seq: eff.Seq, Message: search.MsgGenericFailure}
		}
		photos, err := searcher.Fetch(ctx, eff.Query)
		if err != nil {
			logger.Warn("search failed",
				slog.String("query", eff.Query),
				slog.String("error", err.Error()))
			return state.FetchFailed{Seq: eff.Seq, Message: search.Message(err)}
		}
		logger.Info("search completed",
			slog.String("query", eff.Query),
			slog.Int("results", len(photos)))
		return state.FetchSucceeded{Seq: eff.Seq, Photos: photos}
	}
}

// loadThumbnails requests the grid-sized preview of every photo.
func (m Model) loadThumbnails() tea.Cmd {
	if !m.previewsEnabled() {
		return nil
	}
	cmds := make([]tea.Cmd, 0, len(m.state.Photos))
	for _, p := range m.state.Photos {
		cmds = append(cmds, m.loadImage(p.Src.Medium))
	}
	return tea.Batch(cmds...)
}

func (m Model) loadImage(url string) tea.Cmd {
	if !m.previewsEnabled() || url == "" {
		return nil
	}
	gen, ok := m.previews.claim(url)
	if !ok {
		return nil
	}
	ctx, images := m.ctx, m.images
	return func() tea.Msg {
		img, err := images.Fetch(ctx, url)
		return previewMsg{gen: gen, url: url, img: img, err: err}
	}
}

func (m Model) copyEnlarged() tea.Cmd {
	photo, ok := m.state.EnlargedPhoto()
	if !ok {
		return nil
	}
	url, write := photo.BestSrc(), m.copyURL
	return func() tea.Msg {
		return copiedMsg{err: write(url)}
	}
}

func (m Model) persistTheme() tea.Cmd {
	if m.saveTheme == nil {
		return nil
	}
	name, save := m.theme.Name, m.saveTheme
	return func() tea.Msg {
		return themeSavedMsg{err: save(name)}
	}
}

// Run starts the Bubble Tea program and blocks until the user quits or the
// context is cancelled.
func Run(opts Options) error {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	opts.Context = ctx

	p := tea.NewProgram(New(opts),
		tea.WithContext(ctx),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion())
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

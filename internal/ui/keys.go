package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application.
type keyMap struct {
	// Global
	Quit       key.Binding
	Help       key.Binding
	CycleTheme key.Binding

	// Search input
	Focus  key.Binding
	Submit key.Binding
	Blur   key.Binding

	// Grid navigation
	Up      key.Binding
	Down    key.Binding
	Left    key.Binding
	Right   key.Binding
	Top     key.Binding
	Bottom  key.Binding
	Enlarge key.Binding

	// Overlay
	Dismiss key.Binding
	Copy    key.Binding
}

// DefaultKeyMap returns the default key bindings. Dismiss starts disabled
// and is only enabled while the overlay is open.
func DefaultKeyMap() keyMap {
	k := keyMap{
		// Global
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "Toggle help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),

		// Search input
		Focus: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "Search"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Run search"),
		),
		Blur: key.NewBinding(
			key.WithKeys("esc", "tab"),
			key.WithHelp("esc", "Leave search"),
		),

		// Grid navigation
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "Move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "Move down"),
		),
		Left: key.NewBinding(
			key.WithKeys("h", "left"),
			key.WithHelp("h/left", "Move left"),
		),
		Right: key.NewBinding(
			key.WithKeys("l", "right"),
			key.WithHelp("l/right", "Move right"),
		),
		Top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "First photo"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "Last photo"),
		),
		Enlarge: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Enlarge photo"),
		),

		// Overlay
		Dismiss: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Close preview"),
		),
		Copy: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "Copy image URL"),
		),
	}
	k.Dismiss.SetEnabled(false)
	k.Copy.SetEnabled(false)
	return k
}

// ShortHelp returns key bindings for the short help view. Disabled
// bindings are skipped by the help renderer.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Focus, k.Enlarge, k.Dismiss, k.Copy, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Focus, k.Submit, k.Blur},
		{k.Up, k.Down, k.Left, k.Right, k.Top, k.Bottom},
		{k.Enlarge, k.Dismiss, k.Copy},
		{k.CycleTheme, k.Help, k.Quit},
	}
}

// Package screen defines the contract between the router and each view.
package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/circuitz/internal/ui/layout"
)

// Screen is one page of the TUI.
type Screen interface {
	Init() tea.Cmd

	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the content area only; the app draws header and footer.
	View(width, height int) string

	// Title is shown in the header.
	Title() string
}

// KeyHintProvider lets a screen replace the default footer hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// StatusProvider lets a screen show a short status in the header's right
// corner, e.g. the active topology.
type StatusProvider interface {
	Status() string
}

// BackgroundUpdater lets a screen that is covered by another keep receiving
// the results of work it started, such as an async request or a spinner
// tick. Screens ignore messages they do not own.
type BackgroundUpdater interface {
	UpdateBackground(msg tea.Msg) tea.Cmd
}

// Leaver is told when the screen is removed from the stack.
type Leaver interface {
	Leave()
}

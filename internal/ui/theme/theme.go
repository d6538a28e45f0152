package theme

import (
	"charm.land/lipgloss/v2"
)

// Color palette, bench-instrument dark with a red accent
var (
	Primary   = lipgloss.Color("#DC2626") // Signal Red
	Secondary = lipgloss.Color("#60A5FA") // Probe Blue
	Accent    = lipgloss.Color("#FACC15") // Amber
	Success   = lipgloss.Color("#4ADE80") // Green
	Error     = lipgloss.Color("#F87171") // Light Red
	Text      = lipgloss.Color("#E2E8F0") // Off-white
	TextDim   = lipgloss.Color("#64748B") // Slate
	BgDark    = lipgloss.Color("#050A14") // Near Black
	BgCard    = lipgloss.Color("#0A1120") // Panel
	Border    = lipgloss.Color("#1E293B") // Slate
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		Align(lipgloss.Center)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim).
			Align(lipgloss.Center)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)

	// Label is the small caps heading above a panel value.
	Label = lipgloss.NewStyle().
		Foreground(TextDim).
		Bold(true)

	// Strong renders **bold** runs in explanations.
	Strong = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FFFFFF")).
		Bold(true)
)

// Layout
var (
	Header = lipgloss.NewStyle().
		Background(BgCard).
		Padding(0, 2)

	Footer = lipgloss.NewStyle().
		Background(BgCard).
		Padding(0, 2)

	Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(0, 1)

	// Wire colors the schematic.
	Wire = lipgloss.NewStyle().
		Foreground(Secondary)
)

// States
var (
	Selected = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	Unselected = lipgloss.NewStyle().
			Foreground(Text)

	Correct = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Incorrect = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	Unknown = lipgloss.NewStyle().
		Foreground(Primary).
		Bold(true)
)

// Components
var (
	ButtonActive = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Padding(0, 2)

	ButtonInactive = lipgloss.NewStyle().
			Foreground(Text).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Border).
			Padding(0, 2)
)

package home

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/circuitz/internal/ui/theme"
)

const bannerArt = `┌─┐┬┬─┐┌─┐┬ ┬┬┌┬┐┌─┐
│  │├┬┘│  │ ││ │ ┌─┘
└─┘┴┴└─└─┘└─┘┴ ┴ └─┘`

const bannerCompact = "C I R C U I T Z"

// renderBanner falls back to spaced letters below 40 columns.
func renderBanner(width int) string {
	style := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	if width < 40 {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}

package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme/palette helpers.
//
// The board must remain readable on both light and dark terminal
// backgrounds, so every color is a lipgloss.AdaptiveColor. Faint styling is
// applied only on dark backgrounds (faint text on light terminals often
// becomes illegible).

func ac(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

func faintIfDark(st lipgloss.Style) lipgloss.Style {
	if lipgloss.HasDarkBackground() {
		return st.Faint(true)
	}
	return st
}

// hasColor reports whether the terminal advertises any color support at all;
// monochrome terminals get plain bordered output.
func hasColor() bool {
	return termenv.ColorProfile() != termenv.Ascii
}

var (
	colorMuted  lipgloss.TerminalColor = ac("240", "243")
	colorAccent lipgloss.TerminalColor = ac("27", "62") // blue

	colorSelectedBorder lipgloss.TerminalColor = ac("232", "255")
	colorCardBorder     lipgloss.TerminalColor = ac("250", "243")
	colorColumnBorder   lipgloss.TerminalColor = ac("248", "240")

	colorTagFg lipgloss.TerminalColor = ac("27", "111")

	colorWarn    lipgloss.TerminalColor = ac("130", "214") // orange
	colorError   lipgloss.TerminalColor = ac("124", "203") // red
	colorOverdue lipgloss.TerminalColor = ac("124", "203")
	colorDueSoon lipgloss.TerminalColor = ac("130", "214")

	colorTabSelectedBg lipgloss.TerminalColor = ac("#e9e9e9", "#262626")
	colorTabSelectedFg lipgloss.TerminalColor = ac("235", "255")
)

var (
	styleTab = lipgloss.NewStyle().Padding(0, 1).Foreground(colorMuted)

	styleTabSelected = lipgloss.NewStyle().Padding(0, 1).
				Background(colorTabSelectedBg).
				Foreground(colorTabSelectedFg).
				Bold(true)

	styleColumn = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorColumnBorder).
			Padding(0, 1)

	styleColumnSelected = styleColumn.
				BorderForeground(colorSelectedBorder)

	styleColumnTitle = lipgloss.NewStyle().Bold(true)

	styleCard = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(colorCardBorder).
			Padding(0, 1)

	styleCardSelected = styleCard.
				BorderForeground(colorSelectedBorder).
				Bold(true)

	styleTag = lipgloss.NewStyle().Foreground(colorTagFg)

	styleStatusInfo  = lipgloss.NewStyle().Foreground(colorMuted)
	styleStatusWarn  = lipgloss.NewStyle().Foreground(colorWarn)
	styleStatusError = lipgloss.NewStyle().Foreground(colorError).Bold(true)

	styleOverlay = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(colorAccent).
			Padding(1, 2)

	styleOverlayTitle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)

	styleFieldLabel = lipgloss.NewStyle().Foreground(colorMuted)

	styleItemSelected = lipgloss.NewStyle().
				Background(colorTabSelectedBg).
				Foreground(colorTabSelectedFg)

	styleButton = lipgloss.NewStyle().Padding(0, 2).Foreground(colorMuted)

	styleButtonActive = lipgloss.NewStyle().Padding(0, 2).
				Background(colorAccent).
				Foreground(ac("255", "235")).
				Bold(true)
)

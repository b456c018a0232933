package ui

import "charm.land/lipgloss/v2"

// Color palette - Purple + Cyan/Teal theme
var (
	ColorPrimary     = lipgloss.Color("#7C3AED") // Purple
	ColorSecondary   = lipgloss.Color("#06B6D4") // Cyan
	ColorMuted       = lipgloss.Color("#6B7280") // Gray
	ColorBorder      = lipgloss.Color("#374151") // Dark gray
	ColorText        = lipgloss.Color("#F9FAFB") // Light text
	ColorTextMuted   = lipgloss.Color("#B0B8C4") // Muted text
	ColorTextInverse = lipgloss.Color("#1F2937") // Dark text for light backgrounds
	ColorWarning     = lipgloss.Color("#F59E0B") // Amber
	ColorError       = lipgloss.Color("#EF4444") // Red for errors
	ColorSuccess     = lipgloss.Color("#10B981") // Green for success
)

// Heading styles
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	LabelStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorSecondary)
)

// Catalog list styles
var (
	CurrentMarkerStyle = lipgloss.NewStyle().
				Foreground(ColorSuccess).
				Bold(true)

	CurrentNameStyle = lipgloss.NewStyle().
				Foreground(ColorText).
				Bold(true)

	NameStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	IDStyle = lipgloss.NewStyle().
		Foreground(ColorMuted)

	DescriptionStyle = lipgloss.NewStyle().
				Foreground(ColorTextMuted).
				Italic(true)
)

// Status styles
var (
	StatusOKStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess)

	StatusWarnStyle = lipgloss.NewStyle().
			Foreground(ColorWarning)

	StatusErrorStyle = lipgloss.NewStyle().
				Foreground(ColorError).
				Bold(true)
)

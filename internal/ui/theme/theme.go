package theme

import (
	"charm.land/lipgloss/v2"
)

// Color palette. Clinical blues and teals, readable on dark terminals.
var (
	Primary   = lipgloss.Color("#0EA5E9") // Sky Blue
	Secondary = lipgloss.Color("#14B8A6") // Teal
	Accent    = lipgloss.Color("#F59E0B") // Amber
	Text      = lipgloss.Color("#F8FAFC") // White
	TextDim   = lipgloss.Color("#94A3B8") // Slate
	BgCard    = lipgloss.Color("#1E293B") // Dark Slate
	Border    = lipgloss.Color("#334155") // Slate
)

// Chat transcript
var (
	UserLine = lipgloss.NewStyle().
			Foreground(Secondary).
			Bold(true)

	BotLine = lipgloss.NewStyle().
		Foreground(Text)

	Pending = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)
)

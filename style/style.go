package style

import (
	"charm.land/lipgloss/v2"
)

var (
	BorderColor = lipgloss.Color("240")                                 // Subtle warm grey border
	HlStyle     = lipgloss.NewStyle().Background(lipgloss.Color("240")) // Selected field
	HlRowStyle  = lipgloss.NewStyle().Background(lipgloss.Color("235")) // Very subtle warm grey row
	MutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("246")) // Warm muted grey text
	MarkStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("214")) // Entity dependent
	ErrorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("167"))
	UnStyle     = lipgloss.NewStyle()
)

// KindStyle returns the badge style for a filter kind
func KindStyle(kind string) lipgloss.Style {
	switch kind {
	case "join":
		return lipgloss.NewStyle().Foreground(lipgloss.Color("75"))
	case "join_set":
		return lipgloss.NewStyle().Foreground(lipgloss.Color("141"))
	case "db_filter":
		return lipgloss.NewStyle().Foreground(lipgloss.Color("108"))
	}
	return MutedStyle
}

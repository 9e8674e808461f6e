package filterbar

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	nt "joinfilter/entity"
	"joinfilter/style"
)

// renderFooter renders position and join counts, padded to width
func renderFooter(current int, filters nt.Filters, width int) string {

	left := fmt.Sprintf("%d/%d", current, len(filters))
	right := fmt.Sprintf("join %d  join_set %d", filters.Count(nt.Join), filters.Count(nt.JoinSet))

	padding := max(width-lipgloss.Width(left)-lipgloss.Width(right), 1)

	return style.MutedStyle.Render(left + strings.Repeat(" ", padding) + right)
}

// Package filterbar is a terminal view of a filter array and its entity marks.
package filterbar

import (
	"context"
	"fmt"
	"slices"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"joinfilter/annotate"
	nt "joinfilter/entity"
	"joinfilter/style"
)

// AnnotateFunc annotates filters for the given selection.
type AnnotateFunc func(ctx context.Context, filters nt.Filters, sel annotate.Selection) (nt.Filters, error)

// Bar lists filters, lets them be toggled or removed, and re-annotates on demand.
type Bar struct {
	filters   nt.Filters
	selection annotate.Selection
	annotate  AnnotateFunc

	selectedIndex int
	errorString   string
	generation    int

	width  int
	height int

	ctx    context.Context
	logger nt.Logger
}

func New(ctx context.Context, filters nt.Filters, sel annotate.Selection, fn AnnotateFunc, lgr nt.Logger) Bar {
	return Bar{
		ctx:       ctx,
		logger:    lgr,
		filters:   filters,
		selection: sel,
		annotate:  fn,
	}
}

// Filters returns the filters as currently edited.
func (bar Bar) Filters() nt.Filters {
	return bar.filters
}

// Selection returns the entity selection as currently edited.
func (bar Bar) Selection() annotate.Selection {
	return bar.selection
}

func (bar Bar) Init() tea.Cmd {
	return bar.annotateCmd()
}

func (bar Bar) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case AnnotatedMsg:
		// filters were edited while annotating
		if msg.Generation != bar.generation {
			bar.logger.Info(bar.ctx, "dropping stale annotation", "generation", msg.Generation, "current", bar.generation)
			break
		}
		bar.filters = msg.Filters
		bar.errorString = ""

	case ErrorMsg:
		bar.logger.Error(bar.ctx, "filter bar", msg.Err)
		bar.errorString = msg.Err.Error()

	case tea.WindowSizeMsg:
		bar.width = msg.Width
		bar.height = msg.Height

	case tea.KeyPressMsg:
		return bar.handleKey(msg)
	}

	return bar, nil
}

func (bar Bar) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return bar, tea.Quit

	case "up":
		if bar.selectedIndex > 0 {
			bar.selectedIndex--
		}

	case "down":
		if bar.selectedIndex < len(bar.filters)-1 {
			bar.selectedIndex++
		}

	case "t":
		if bar.valid() {
			flt := bar.filters[bar.selectedIndex]
			flt.SetMeta(nt.MetaDisabled, !flt.Disabled())
			bar.generation++
		}

	case "d":
		if bar.valid() {
			bar.filters = slices.Delete(slices.Clone(bar.filters), bar.selectedIndex, bar.selectedIndex+1)
			bar.generation++
			if bar.selectedIndex >= len(bar.filters) && bar.selectedIndex > 0 {
				bar.selectedIndex--
			}
		}

	case "e":
		bar.selection.Disabled = !bar.selection.Disabled
		bar.generation++
		return bar, bar.annotateCmd()

	case "a":
		bar.generation++
		return bar, bar.annotateCmd()
	}

	return bar, nil
}

func (bar Bar) valid() bool {
	return bar.selectedIndex >= 0 && bar.selectedIndex < len(bar.filters)
}

// annotateCmd annotates a copy of the filters, the view keeps reading its own
func (bar Bar) annotateCmd() tea.Cmd {

	if bar.annotate == nil {
		return nil
	}
	filters := bar.filters.Clone()
	sel := bar.selection
	generation := bar.generation

	return func() tea.Msg {
		annotated, err := bar.annotate(bar.ctx, filters, sel)
		if err != nil {
			return ErrorMsg{Err: err}
		}
		return AnnotatedMsg{Filters: annotated, Generation: generation}
	}
}

// row renders one filter line
func (bar Bar) row(i int, flt nt.Filter) string {

	enabledStr := "x"
	if flt.Disabled() {
		enabledStr = " "
	}
	enabledStr = "[" + enabledStr + "]"

	kind := string(flt.Kind())
	kindStr := style.KindStyle(kind).Render(fmt.Sprintf("%-9s", kind))

	markStr := ""
	depends, _ := flt.MetaValue(nt.MetaDependsOnSelectedEntities).Bool()
	mark, _ := flt.MetaValue(nt.MetaMarkDependOnSelectedEntities).Bool()
	off, _ := flt.MetaValue(nt.MetaDependsOnSelectedEntitiesDisabled).Bool()
	switch {
	case off:
		markStr = style.MutedStyle.Render(" (entity disabled)")
	case depends && mark:
		markStr = style.MarkStyle.Render(" *")
	}

	line := fmt.Sprintf("%s %s %s%s", enabledStr, kindStr, flt.Label(), markStr)
	if i == bar.selectedIndex {
		return "> " + style.HlRowStyle.Render(line)
	}
	return "  " + line
}

func (bar Bar) View() tea.View {
	var content strings.Builder

	entity := bar.selection.URI
	if entity == "" {
		entity = "(none)"
	}
	if bar.selection.Disabled {
		entity += " (disabled)"
	}
	content.WriteString("Entity: " + entity + "\n\n")

	if len(bar.filters) == 0 {
		content.WriteString(style.MutedStyle.Render("(no filters)") + "\n")
	}
	for i, flt := range bar.filters {
		content.WriteString(bar.row(i, flt) + "\n")
	}

	if len(bar.filters) > 0 {
		content.WriteString("\n" + renderFooter(bar.selectedIndex+1, bar.filters, 66) + "\n")
	}

	if bar.errorString != "" {
		content.WriteString("\n" + style.ErrorStyle.Render(bar.errorString) + "\n")
	}

	helpText := "t: toggle  d: delete  e: entity on/off  a: annotate  ↑↓: move  q: quit"
	content.WriteString("\n" + style.MutedStyle.Render(helpText))

	dialogStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(style.BorderColor).
		Padding(1, 2).
		Width(72)

	dialog := dialogStyle.Render(content.String())

	// Center the dialog
	if bar.width > 0 && bar.height > 0 {
		dialogHeight := strings.Count(dialog, "\n") + 1
		dialogWidth := 76 // Approximate width with border

		vPad := max((bar.height-dialogHeight)/2, 0)
		hPad := max((bar.width-dialogWidth)/2, 0)

		dialogLayer := lipgloss.NewLayer("filterbar", dialog).
			X(hPad).
			Y(vPad)

		return tea.NewView(dialogLayer)
	}

	dialogLayer := lipgloss.NewLayer("filterbar", dialog)
	return tea.NewView(dialogLayer)
}

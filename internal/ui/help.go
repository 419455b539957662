package ui

import (
	"strings"

	"sift/internal/model"

	"github.com/charmbracelet/lipgloss"
)

// RenderHelp renders context-sensitive help footer.
func RenderHelp(screen model.Screen, mode model.Mode, width int) string {
	if mode == model.ModeInsert {
		return renderInputHelp(width)
	}

	switch screen {
	case model.ScreenTables:
		return renderTablesHelp(width)
	case model.ScreenTable:
		return renderTableHelp(width)
	default:
		return renderDefaultHelp(width)
	}
}

func renderTablesHelp(width int) string {
	keys := []string{
		helpKey("j/k", "navigate"),
		helpKey("enter", "open"),
		helpKey("r", "reload"),
		helpKey("?", "help"),
		helpKey("q", "quit"),
	}
	return renderHelpLine(keys, width)
}

func renderTableHelp(width int) string {
	keys := []string{
		helpKey("j/k", "navigate"),
		helpKey("tab", "next col"),
		helpKey("s/S", "sort"),
		helpKey("f", "filter"),
		helpKey("/", "search"),
		helpKey("x", "clear filters"),
		helpKey("N", "load order"),
		helpKey("R", "reset all"),
		helpKey("u", "undo"),
		helpKey("b", "tables"),
	}
	return renderHelpLine(keys, width)
}

func renderInputHelp(width int) string {
	keys := []string{
		helpKey("enter", "apply"),
		helpKey("esc", "cancel"),
	}
	return renderHelpLine(keys, width)
}

func renderDefaultHelp(width int) string {
	keys := []string{
		helpKey("j/k", "navigate"),
		helpKey("q", "quit"),
	}
	return renderHelpLine(keys, width)
}

func helpKey(key, desc string) string {
	return HelpKeyStyle.Render(key) + " " + HelpDescStyle.Render(desc)
}

func renderHelpLine(keys []string, width int) string {
	line := strings.Join(keys, "  ")
	return FooterStyle.Width(width).Render(line)
}

// RenderFullHelp renders the full help screen.
func RenderFullHelp(width, height int) string {
	content := lipgloss.NewStyle().
		Width(width-4).
		Height(height-6).
		Padding(1, 2)

	sections := []string{
		titleSection("Navigation"),
		helpSection([]helpItem{
			{"j / ↓", "Move down"},
			{"k / ↑", "Move up"},
			{"gg / G", "Jump to top / bottom"},
			{"ctrl+d / ctrl+u", "Half page down / up"},
			{"enter / l", "Open table"},
			{"b / h / esc", "Back to table list"},
			{"?", "Toggle help"},
			{"q", "Quit"},
		}),
		titleSection("Columns"),
		helpSection([]helpItem{
			{"tab / shift+tab", "Cycle active column"},
			{": then 1-9", "Jump to column"},
			{"c / C", "Hide active column / show all"},
		}),
		titleSection("Sorting"),
		helpSection([]helpItem{
			{"s / S", "Sort by active column asc/desc"},
			{"o / O", "Add active column to the sort asc/desc"},
			{"t", "Cycle asc, desc, unsorted"},
			{"N", "Drop sorting and restore load order"},
		}),
		titleSection("Filtering"),
		helpSection([]helpItem{
			{"f", "Edit filter of active column"},
			{"n", "Filter active column by selected value"},
			{"/", "Search all columns"},
			{"z", "Switch search between smart and fuzzy"},
			{"x", "Clear every filter and the search"},
		}),
		titleSection("Reset"),
		helpSection([]helpItem{
			{"R", "Clear filters, search and sorting"},
			{"u / ctrl+r", "Undo / redo filter, sort and reset"},
		}),
	}

	helpText := content.Render(strings.Join(sections, "\n\n"))

	return lipgloss.JoinVertical(
		lipgloss.Left,
		TitleStyle.Width(width).Render("Help"),
		helpText,
		FooterStyle.Width(width).Render(HelpKeyStyle.Render("esc")+" "+HelpDescStyle.Render("close help")),
	)
}

type helpItem struct {
	key  string
	desc string
}

func titleSection(title string) string {
	return LabelStyle.Render(title)
}

func helpSection(items []helpItem) string {
	var lines []string
	for _, item := range items {
		lines = append(lines, "  "+HelpKeyStyle.Render(item.key)+" - "+HelpDescStyle.Render(item.desc))
	}
	return strings.Join(lines, "\n")
}

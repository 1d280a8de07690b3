package ui

import (
	"fmt"
	"strings"
)

// renderHelp renders the full-screen key reference. Any key dismisses it.
func (m Model) renderHelp() string {
	styles := m.theme.Styles()

	sections := []struct {
		title string
		keys  []struct{ key, desc string }
	}{
		{
			title: "Filters",
			keys: []struct{ key, desc string }{
				{"p", "edit price bounds"},
				{"r", "cycle minimum rating (1, 2, 3, 4, 4.5, any)"},
				{"v", "cycle minimum reviews (10, 50, 100, 500, any)"},
				{"s", "cycle sort column (id, name, price, rating, reviews)"},
				{"o", "toggle sort order"},
				{"R", "reset all filters"},
			},
		},
		{
			title: "Navigation",
			keys: []struct{ key, desc string }{
				{"←/h  →/l", "previous / next page"},
				{"g  G", "first / last page"},
				{"↑/k  ↓/j", "move row selection"},
				{"tab, c", "toggle table / charts view"},
			},
		},
		{
			title: "Actions",
			keys: []struct{ key, desc string }{
				{"/", "search and ingest new products"},
				{"T", "cycle color theme"},
				{"?", "toggle this help"},
				{"q, ctrl+c", "quit"},
			},
		},
	}

	var b strings.Builder
	b.WriteString(styles.Logo.Render(" WBSCOPE"))
	b.WriteString(styles.MutedText.Render("  marketplace catalog dashboard"))
	b.WriteString("\n\n")
	for _, section := range sections {
		b.WriteString(styles.AccentText.Render(" " + section.title))
		b.WriteString("\n")
		for _, binding := range section.keys {
			b.WriteString(fmt.Sprintf("   %s %s\n",
				styles.Text.Render(padRight(binding.key, 12)),
				styles.MutedText.Render(binding.desc)))
		}
		b.WriteString("\n")
	}
	b.WriteString(styles.FaintText.Render(" press any key to close"))

	return styles.Panel.Render(b.String())
}

package ui

import (
	"fmt"
	"strings"

	"github.com/ddanshin/wbscope/internal/filter"
)

// renderHeader renders the top bar: logo, catalog aggregates, and per-feed
// status. Each feed reports its own loading/error state; one failing feed
// never hides another feed's data.
func (m Model) renderHeader() string {
	styles := m.theme.Styles()
	view := m.coord.View()

	parts := []string{styles.Logo.Render("WBSCOPE")}

	total := 0
	if view.Pagination != nil {
		total = view.Pagination.Total
	}
	parts = append(parts, fmt.Sprintf("%s %s",
		styles.MutedText.Render("products:"),
		styles.Text.Render(groupDigits(fmt.Sprintf("%d", total)))))

	if len(view.Products) > 0 {
		parts = append(parts, fmt.Sprintf("%s %s",
			styles.MutedText.Render("avg price:"),
			styles.Text.Render(formatPrice(averageEffectivePrice(view.Products)))))
		parts = append(parts, fmt.Sprintf("%s %s",
			styles.MutedText.Render("avg rating:"),
			styles.Text.Render(fmt.Sprintf("%.1f", averageRating(view.Products)))))
	}

	if view.LoadingProducts {
		parts = append(parts, m.spin.View()+styles.AccentText.Render("products"))
	}
	if view.LoadingStats {
		parts = append(parts, m.spin.View()+styles.AccentText.Render("stats"))
	}
	if view.Searching {
		parts = append(parts, m.spin.View()+styles.WarningText.Render("searching… this can take a while"))
	}

	if view.Notice != "" {
		parts = append(parts, styles.SuccessText.Render(view.Notice))
	}
	if view.ProductsErr != "" {
		parts = append(parts, styles.DangerText.Render("products: "+view.ProductsErr))
	}
	if view.StatsErr != "" {
		parts = append(parts, styles.DangerText.Render("stats: "+view.StatsErr))
	}
	if view.SearchErr != "" {
		parts = append(parts, styles.DangerText.Render("search: "+view.SearchErr))
	}

	return styles.Header.Width(m.width).Render(strings.Join(parts, "  "))
}

// renderFilterBar shows the active criteria so the table is always
// interpretable without opening any editor.
func (m Model) renderFilterBar() string {
	styles := m.theme.Styles()
	f := m.filters

	var parts []string

	if f.MinPrice != nil || f.MaxPrice != nil {
		low, high := "0", "∞"
		if f.MinPrice != nil {
			low = formatPrice(*f.MinPrice)
		}
		if f.MaxPrice != nil {
			high = formatPrice(*f.MaxPrice)
		}
		parts = append(parts, fmt.Sprintf("%s %s – %s", styles.MutedText.Render("price:"), low, high))
	}

	rating := "any"
	if f.MinRating != nil {
		rating = fmt.Sprintf("%v+", *f.MinRating)
	}
	parts = append(parts, fmt.Sprintf("%s %s", styles.MutedText.Render("rating:"), rating))

	reviews := "any"
	if f.MinReviews != nil {
		reviews = fmt.Sprintf("%d+", *f.MinReviews)
	}
	parts = append(parts, fmt.Sprintf("%s %s", styles.MutedText.Render("reviews:"), reviews))

	parts = append(parts, fmt.Sprintf("%s %s %s",
		styles.MutedText.Render("sort:"),
		sortLabel(f.SortBy),
		sortArrow(f.SortOrder)))

	return styles.Footer.Width(m.width).Render(strings.Join(parts, "  •  "))
}

// renderCommandBar lists the active key bindings.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles()

	switch m.mode {
	case inputSearch:
		return styles.Footer.Width(m.width).Render(
			styles.AccentText.Render("add products ") + m.searchInput.View() +
				styles.MutedText.Render("  enter: search  esc: cancel"))
	case inputPrice:
		return styles.Footer.Width(m.width).Render(
			styles.AccentText.Render("price bounds ") +
				m.priceInputs[0].View() + " – " + m.priceInputs[1].View() +
				styles.MutedText.Render("  tab: switch  enter: apply  esc: cancel"))
	}

	bindings := []struct{ key, desc string }{
		{"/", "add"},
		{"p", "price"},
		{"r", "rating"},
		{"v", "reviews"},
		{"s", "sort"},
		{"o", "order"},
		{"R", "reset"},
		{"←→", "page"},
		{"tab", "charts"},
		{"?", "help"},
		{"q", "quit"},
	}

	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		parts = append(parts, styles.AccentText.Render(b.key)+styles.MutedText.Render(" "+b.desc))
	}
	return styles.Footer.Width(m.width).Render(strings.Join(parts, "  "))
}

// renderMain renders the full UI.
func (m Model) renderMain() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderFilterBar())
	b.WriteString("\n")
	b.WriteString(m.renderCommandBar())
	b.WriteString("\n")

	switch m.currentView {
	case ViewCharts:
		b.WriteString(m.renderCharts())
	default:
		b.WriteString(m.renderTable())
	}

	return b.String()
}

func sortLabel(key filter.SortKey) string {
	switch key {
	case filter.SortName:
		return "name"
	case filter.SortPrice:
		return "price"
	case filter.SortRating:
		return "rating"
	case filter.SortReviews:
		return "reviews"
	default:
		return "id"
	}
}

func sortArrow(order filter.SortOrder) string {
	if order == filter.Descending {
		return "↓"
	}
	return "↑"
}

package ui

import (
	"fmt"
	"strings"
)

// Column widths for the product table. NAME absorbs whatever width remains.
const (
	colID       = 8
	colPrice    = 12
	colDiscount = 7
	colRating   = 7
	colReviews  = 9
	colCategory = 18
	minNameCol  = 16
)

// renderTable renders the product list with the selected row highlighted,
// followed by the pagination strip.
func (m Model) renderTable() string {
	styles := m.theme.Styles()
	view := m.coord.View()

	nameWidth := m.width - colID - colPrice - colDiscount - colRating - colReviews - colCategory - 8
	if nameWidth < minNameCol {
		nameWidth = minNameCol
	}

	var b strings.Builder

	header := fmt.Sprintf(" %s %s %s %s %s %s %s",
		padRight("ID", colID),
		padRight("NAME", nameWidth),
		padRight("CATEGORY", colCategory),
		padLeft("PRICE", colPrice),
		padLeft("DISC", colDiscount),
		padLeft("RATING", colRating),
		padLeft("REVIEWS", colReviews))
	b.WriteString(styles.MutedText.Bold(true).Render(header))
	b.WriteString("\n")

	if len(view.Products) == 0 {
		empty := "No products match the current filters"
		if view.LoadingProducts {
			empty = "Loading products…"
		}
		b.WriteString(styles.FaintText.Render(" " + empty))
		b.WriteString("\n")
	}

	for i, p := range view.Products {
		price := formatPrice(p.EffectivePrice())
		category := p.Category
		if category == "" {
			category = "—"
		}

		line := fmt.Sprintf(" %s %s %s %s %s %s %s",
			padRight(fmt.Sprintf("%d", p.ID), colID),
			padRight(p.Name, nameWidth),
			padRight(category, colCategory),
			padLeft(price, colPrice),
			padLeft(formatDiscount(p), colDiscount),
			padLeft(formatRating(p.Rating), colRating),
			padLeft(formatReviews(p.ReviewsCount), colReviews))

		if i == m.selectedRow {
			b.WriteString(styles.Selected.Render(line))
		} else if p.HasDiscount() {
			b.WriteString(styles.Text.Render(line))
		} else {
			b.WriteString(styles.FaintText.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString(m.renderPagination())
	return b.String()
}

// renderPagination renders the "shown x–y of z" summary and a window of at
// most five page numbers around the current page, server envelope only.
func (m Model) renderPagination() string {
	styles := m.theme.Styles()
	view := m.coord.View()

	pagination := view.Pagination
	if pagination == nil || pagination.Pages <= 1 {
		return ""
	}

	first := (pagination.Page-1)*pagination.PerPage + 1
	last := pagination.Page * pagination.PerPage
	if last > pagination.Total {
		last = pagination.Total
	}
	summary := fmt.Sprintf("shown %d–%d of %d", first, last, pagination.Total)

	var pages []string
	if pagination.HasPrev {
		pages = append(pages, styles.AccentText.Render("‹"))
	}
	for _, p := range pageWindow(pagination.Page, pagination.Pages, 5) {
		label := fmt.Sprintf(" %d ", p)
		if p == pagination.Page {
			pages = append(pages, styles.Selected.Render(label))
		} else {
			pages = append(pages, styles.MutedText.Render(label))
		}
	}
	if pagination.HasNext {
		pages = append(pages, styles.AccentText.Render("›"))
	}

	return styles.Footer.Width(m.width).Render(
		styles.MutedText.Render(summary) + "   " + strings.Join(pages, ""))
}

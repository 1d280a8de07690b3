package ui

import (
	"fmt"
	"strings"
)

const (
	histogramBarWidth = 40
	scatterRows       = 10
	scatterCols       = 50
)

// renderCharts renders the statistics view: a price distribution histogram
// and a discount-vs-rating scatter. The data comes from the stats feed,
// which is computed over the full filter predicate regardless of the page.
func (m Model) renderCharts() string {
	styles := m.theme.Styles()
	view := m.coord.View()

	if view.Stats == nil {
		text := "No statistics loaded yet"
		if view.LoadingStats {
			text = "Loading statistics…"
		}
		return styles.FaintText.Render(" " + text)
	}

	var b strings.Builder

	b.WriteString(styles.Text.Bold(true).Render(
		fmt.Sprintf(" Price distribution (%d products)", view.Stats.TotalProducts)))
	b.WriteString("\n")
	b.WriteString(m.renderHistogram())
	b.WriteString("\n")
	b.WriteString(styles.Text.Bold(true).Render(" Discount vs rating"))
	b.WriteString("\n")
	b.WriteString(m.renderScatter())

	return b.String()
}

func (m Model) renderHistogram() string {
	styles := m.theme.Styles()
	buckets := m.coord.View().Stats.PriceDistribution

	if len(buckets) == 0 {
		return styles.FaintText.Render(" no data") + "\n"
	}

	maxCount := 0
	labelWidth := 0
	for _, bucket := range buckets {
		if bucket.Count > maxCount {
			maxCount = bucket.Count
		}
		if n := len([]rune(bucket.Range)); n > labelWidth {
			labelWidth = n
		}
	}

	var b strings.Builder
	for _, bucket := range buckets {
		width := 0
		if maxCount > 0 {
			width = bucket.Count * histogramBarWidth / maxCount
		}
		if bucket.Count > 0 && width == 0 {
			width = 1
		}
		b.WriteString(fmt.Sprintf(" %s %s %s\n",
			styles.MutedText.Render(padLeft(bucket.Range, labelWidth)),
			styles.AccentText.Render(strings.Repeat("█", width)),
			styles.FaintText.Render(fmt.Sprintf("%d", bucket.Count))))
	}
	return b.String()
}

// renderScatter plots each matching product on a rating (x, 0–5) by
// discount percentage (y) grid.
func (m Model) renderScatter() string {
	styles := m.theme.Styles()
	points := m.coord.View().Stats.DiscountVsRating

	if len(points) == 0 {
		return styles.FaintText.Render(" no data") + "\n"
	}

	maxDiscount := 0.0
	for _, point := range points {
		if point.DiscountPercentage != nil && *point.DiscountPercentage > maxDiscount {
			maxDiscount = *point.DiscountPercentage
		}
	}
	if maxDiscount == 0 {
		maxDiscount = 1
	}

	grid := make([][]int, scatterRows)
	for i := range grid {
		grid[i] = make([]int, scatterCols)
	}
	for _, point := range points {
		if point.Rating == nil || point.DiscountPercentage == nil {
			continue
		}
		col := int(*point.Rating / 5 * float64(scatterCols-1))
		row := int(*point.DiscountPercentage / maxDiscount * float64(scatterRows-1))
		if col < 0 || col >= scatterCols || row < 0 || row >= scatterRows {
			continue
		}
		// Row 0 is the top of the plot, highest discount.
		grid[scatterRows-1-row][col]++
	}

	var b strings.Builder
	for i, row := range grid {
		label := "      "
		if i == 0 {
			label = padLeft(fmt.Sprintf("%.0f%%", maxDiscount), 6)
		} else if i == scatterRows-1 {
			label = padLeft("0%", 6)
		}
		b.WriteString(styles.MutedText.Render(" " + label + " "))
		for _, count := range row {
			switch {
			case count == 0:
				b.WriteString(styles.FaintText.Render("·"))
			case count < 3:
				b.WriteString(styles.AccentText.Render("•"))
			default:
				b.WriteString(styles.WarningText.Render("●"))
			}
		}
		b.WriteString("\n")
	}
	b.WriteString(styles.MutedText.Render("        " + padRight("0", scatterCols-1) + "5"))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render("        rating →"))
	b.WriteString("\n")
	return b.String()
}

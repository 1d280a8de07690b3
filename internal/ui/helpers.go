package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ddanshin/wbscope/internal/catalog"
)

// groupDigits inserts thin spaces between thousands groups: 1234567 -> "1 234 567".
func groupDigits(s string) string {
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

// formatPrice renders a ruble amount without fractional kopecks.
func formatPrice(v float64) string {
	return groupDigits(strconv.FormatFloat(v, 'f', 0, 64)) + " ₽"
}

// formatRating renders a rating to one decimal, or a dash when absent.
func formatRating(rating *float64) string {
	if rating == nil {
		return "—"
	}
	return strconv.FormatFloat(*rating, 'f', 1, 64)
}

// formatReviews renders a review count with digit grouping, zero when absent.
func formatReviews(count *int) string {
	if count == nil {
		return "0"
	}
	return groupDigits(strconv.Itoa(*count))
}

// formatDiscount renders the "-N%" badge text for a discounted product.
func formatDiscount(p catalog.Product) string {
	if !p.HasDiscount() {
		return ""
	}
	return fmt.Sprintf("-%.0f%%", *p.DiscountPercentage)
}

// averageEffectivePrice is the mean of effective prices on the visible page.
func averageEffectivePrice(products []catalog.Product) float64 {
	if len(products) == 0 {
		return 0
	}
	var sum float64
	for _, p := range products {
		sum += p.EffectivePrice()
	}
	return sum / float64(len(products))
}

// averageRating is the mean rating on the visible page; unrated products
// count as zero, matching the original dashboard's header card.
func averageRating(products []catalog.Product) float64 {
	if len(products) == 0 {
		return 0
	}
	var sum float64
	for _, p := range products {
		if p.Rating != nil {
			sum += *p.Rating
		}
	}
	return sum / float64(len(products))
}

// truncate shortens s to max runes, ellipsized.
func truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max == 1 {
		return "…"
	}
	return string(runes[:max-1]) + "…"
}

// padRight pads or truncates s to exactly width runes.
func padRight(s string, width int) string {
	runes := []rune(s)
	if len(runes) >= width {
		return truncate(s, width)
	}
	return s + strings.Repeat(" ", width-len(runes))
}

// padLeft right-aligns s within width runes.
func padLeft(s string, width int) string {
	runes := []rune(s)
	if len(runes) >= width {
		return truncate(s, width)
	}
	return strings.Repeat(" ", width-len(runes)) + s
}

// pageWindow returns up to max page numbers centered on current, clamped to
// [1, total]. Mirrors the pagination strip of the original dashboard.
func pageWindow(current, total, max int) []int {
	if total <= 0 || max <= 0 {
		return nil
	}
	start := current - max/2
	if start < 1 {
		start = 1
	}
	end := start + max - 1
	if end > total {
		end = total
		start = end - max + 1
		if start < 1 {
			start = 1
		}
	}
	pages := make([]int, 0, end-start+1)
	for p := start; p <= end; p++ {
		pages = append(pages, p)
	}
	return pages
}

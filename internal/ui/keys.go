package ui

import (
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ddanshin/wbscope/internal/filter"
	"github.com/ddanshin/wbscope/internal/prefs"
)

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Any key closes the help overlay.
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	switch m.mode {
	case inputSearch:
		return m.handleSearchKey(msg)
	case inputPrice:
		return m.handlePriceKey(msg)
	}

	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "?":
		m.showHelp = true
		return m, nil

	case "T":
		m.theme = GetTheme(NextTheme(m.theme.Name))
		if m.prefsPath != "" {
			_ = prefs.Save(m.prefsPath, prefs.Prefs{Theme: m.theme.Name})
		}
		return m, nil

	case "tab", "c":
		if m.currentView == ViewTable {
			m.currentView = ViewCharts
		} else {
			m.currentView = ViewTable
		}
		return m, nil

	case "/":
		m.mode = inputSearch
		m.searchInput.SetValue("")
		return m, m.searchInput.Focus()

	case "p":
		return m.openPriceEditor()

	case "r":
		return m, m.applyChange(cycleRating(m.filters.MinRating))

	case "v":
		return m, m.applyChange(cycleReviews(m.filters.MinReviews))

	case "s":
		return m, m.applyChange(filter.Change{SortBy: nextSortKey(m.filters.SortBy)})

	case "o":
		order := filter.Ascending
		if m.filters.SortOrder == filter.Ascending {
			order = filter.Descending
		}
		return m, m.applyChange(filter.Change{SortOrder: order})

	case "R":
		m.filters.Reset(m.bounds)
		m.selectedRow = 0
		return m, tea.Batch(m.refreshProducts(), m.refreshStats())

	case "left", "h":
		return m.changePage(-1)

	case "right", "l":
		return m.changePage(+1)

	case "g", "home":
		return m.gotoPage(1)

	case "G", "end":
		if pagination := m.coord.View().Pagination; pagination != nil && pagination.Pages > 0 {
			return m.gotoPage(pagination.Pages)
		}
		return m, nil

	case "j", "down":
		if count := len(m.coord.View().Products); m.selectedRow < count-1 {
			m.selectedRow++
		}
		return m, nil

	case "k", "up":
		if m.selectedRow > 0 {
			m.selectedRow--
		}
		return m, nil
	}

	return m, nil
}

// handleSearchKey drives the ingestion query input.
func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "esc":
		m.mode = inputNone
		m.searchInput.Blur()
		return m, nil

	case "enter":
		value := m.searchInput.Value()
		m.mode = inputNone
		m.searchInput.Blur()
		m.searchInput.SetValue("")

		query, ok := m.coord.BeginSearch(value)
		if !ok {
			// Blank query or a search already in flight: no request.
			return m, nil
		}
		return m, parseCmd(m.ctx, m.client, query, m.parseLimit)
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}

// openPriceEditor seeds the price inputs from the active bounds.
func (m Model) openPriceEditor() (tea.Model, tea.Cmd) {
	m.mode = inputPrice
	m.priceFocusIdx = 0
	for i, value := range []*float64{m.filters.MinPrice, m.filters.MaxPrice} {
		if value != nil {
			m.priceInputs[i].SetValue(strconv.FormatFloat(*value, 'f', -1, 64))
		} else {
			m.priceInputs[i].SetValue("")
		}
		m.priceInputs[i].Blur()
	}
	return m, m.priceInputs[0].Focus()
}

// handlePriceKey drives the price bounds editor.
func (m Model) handlePriceKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "esc":
		m.mode = inputNone
		for i := range m.priceInputs {
			m.priceInputs[i].Blur()
		}
		return m, nil

	case "tab", "shift+tab", "up", "down":
		m.priceInputs[m.priceFocusIdx].Blur()
		m.priceFocusIdx = (m.priceFocusIdx + 1) % len(m.priceInputs)
		return m, m.priceInputs[m.priceFocusIdx].Focus()

	case "enter":
		m.mode = inputNone
		change := filter.Change{}
		if v, err := strconv.ParseFloat(strings.TrimSpace(m.priceInputs[0].Value()), 64); err == nil && v >= 0 {
			change.MinPrice = &v
		}
		if v, err := strconv.ParseFloat(strings.TrimSpace(m.priceInputs[1].Value()), 64); err == nil && v >= 0 {
			change.MaxPrice = &v
		}
		for i := range m.priceInputs {
			m.priceInputs[i].Blur()
		}
		if change.MinPrice == nil && change.MaxPrice == nil {
			return m, nil
		}
		return m, m.applyChange(change)
	}

	var cmd tea.Cmd
	m.priceInputs[m.priceFocusIdx], cmd = m.priceInputs[m.priceFocusIdx].Update(msg)
	return m, cmd
}

// changePage moves one page in either direction, trusting the server's
// has_prev/has_next flags rather than recomputing them.
func (m Model) changePage(delta int) (tea.Model, tea.Cmd) {
	pagination := m.coord.View().Pagination
	if pagination == nil {
		return m, nil
	}
	if delta < 0 && !pagination.HasPrev {
		return m, nil
	}
	if delta > 0 && !pagination.HasNext {
		return m, nil
	}
	return m.gotoPage(m.filters.Page + delta)
}

func (m Model) gotoPage(page int) (tea.Model, tea.Cmd) {
	if page == m.filters.Page {
		return m, nil
	}
	return m, m.applyChange(filter.Change{Page: &page})
}

// cycleRating steps through the rating thresholds and wraps back to "any".
func cycleRating(current *float64) filter.Change {
	if current == nil {
		step := filter.RatingSteps[0]
		return filter.Change{MinRating: &step}
	}
	for i, step := range filter.RatingSteps {
		if *current == step {
			if i+1 < len(filter.RatingSteps) {
				next := filter.RatingSteps[i+1]
				return filter.Change{MinRating: &next}
			}
			return filter.Change{ClearMinRating: true}
		}
	}
	return filter.Change{ClearMinRating: true}
}

// cycleReviews steps through the review-count thresholds, wrapping to "any".
func cycleReviews(current *int) filter.Change {
	if current == nil {
		step := filter.ReviewSteps[0]
		return filter.Change{MinReviews: &step}
	}
	for i, step := range filter.ReviewSteps {
		if *current == step {
			if i+1 < len(filter.ReviewSteps) {
				next := filter.ReviewSteps[i+1]
				return filter.Change{MinReviews: &next}
			}
			return filter.Change{ClearMinReviews: true}
		}
	}
	return filter.Change{ClearMinReviews: true}
}

func nextSortKey(current filter.SortKey) filter.SortKey {
	for i, key := range filter.SortKeys {
		if key == current {
			return filter.SortKeys[(i+1)%len(filter.SortKeys)]
		}
	}
	return filter.SortKeys[0]
}

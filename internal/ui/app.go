package ui

import (
	"context"
	"errors"
	"net/url"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ddanshin/wbscope/internal/catalog"
	"github.com/ddanshin/wbscope/internal/feed"
	"github.com/ddanshin/wbscope/internal/filter"
	"github.com/ddanshin/wbscope/internal/prefs"
)

// View represents the current active view.
type View int

const (
	ViewTable View = iota
	ViewCharts
)

// inputMode tracks which text input overlay owns the keyboard.
type inputMode int

const (
	inputNone inputMode = iota
	inputSearch
	inputPrice
)

// Options configures the UI.
type Options struct {
	Context    context.Context
	Client     catalog.Fetcher
	ParseLimit int
	ThemeName  string
	PrefsPath  string
}

// Model is the root application state for Bubble Tea. All mutation happens
// on the update loop; async work only ever comes back as messages.
type Model struct {
	// Configuration
	ctx        context.Context
	client     catalog.Fetcher
	parseLimit int
	prefsPath  string

	// UI state
	theme       Theme
	currentView View
	width       int
	height      int
	ready       bool
	showHelp    bool

	// Query state
	filters filter.Filters
	bounds  filter.PriceRange
	coord   *feed.Coordinator

	// Table state
	selectedRow int

	// Input overlays
	mode          inputMode
	searchInput   textinput.Model
	priceInputs   [2]textinput.Model // min, max
	priceFocusIdx int

	spin spinner.Model
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	parseLimit := opts.ParseLimit
	if parseLimit <= 0 {
		parseLimit = 50
	}

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = "Dracula"
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	theme := GetTheme(themeName)

	search := textinput.New()
	search.Placeholder = "query, e.g. smartphone"
	search.CharLimit = 120
	search.Width = 40

	var price [2]textinput.Model
	for i, label := range []string{"min price", "max price"} {
		in := textinput.New()
		in.Placeholder = label
		in.CharLimit = 12
		in.Width = 12
		price[i] = in
	}

	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Accent))

	return Model{
		ctx:         ctx,
		client:      opts.Client,
		parseLimit:  parseLimit,
		prefsPath:   prefsPath,
		theme:       theme,
		currentView: ViewTable,
		filters:     filter.Default(),
		bounds:      filter.DefaultPriceRange,
		coord:       &feed.Coordinator{},
		searchInput: search,
		priceInputs: price,
		spin:        spin,
	}
}

// Init implements tea.Model. Both feeds load immediately on start.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.refreshProducts(),
		m.refreshStats(),
		m.spin.Tick,
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case productsMsg:
		return m.handleProducts(msg)

	case statsMsg:
		m.coord.ApplyStats(msg.gen, msg.stats, msg.err)
		return m, nil

	case parseMsg:
		if m.coord.ApplySearch(msg.result, msg.err) {
			// Successful ingestion invalidates the product list only.
			// The refresh uses the filters current right now, so the view
			// the user is looking at is the one that updates.
			return m, m.refreshProducts()
		}
		return m, nil
	}

	return m, nil
}

// handleProducts reconciles a product list response and, when it was
// applied, keeps the observed price range and row selection in step.
func (m Model) handleProducts(msg productsMsg) (tea.Model, tea.Cmd) {
	if !m.coord.ApplyProducts(msg.gen, msg.page, msg.err) {
		return m, nil
	}
	if msg.err != nil {
		return m, nil
	}

	// Track the price spread of what is on screen, but only adopt it while
	// the user has not customized the bounds away from the previous
	// observed range.
	if m.filters.BoundsEqual(m.bounds) {
		if observed, ok := filter.ObserveRange(msg.page.Products); ok {
			m.bounds = observed
		}
	}

	if count := len(msg.page.Products); count == 0 {
		m.selectedRow = 0
	} else if m.selectedRow >= count {
		m.selectedRow = count - 1
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.showHelp {
		return m.renderHelp()
	}

	return m.renderMain()
}

// Messages

type productsMsg struct {
	gen  uint64
	page *catalog.ProductPage
	err  error
}

type statsMsg struct {
	gen   uint64
	stats *catalog.Stats
	err   error
}

type parseMsg struct {
	result *catalog.ParseResult
	err    error
}

// Commands

// refreshProducts registers a new generation for the product feed and
// returns the command that fetches it. The captured token lets the update
// loop discard this response if a newer request supersedes it.
func (m *Model) refreshProducts() tea.Cmd {
	gen := m.coord.BeginProducts()
	return fetchProductsCmd(m.ctx, m.client, gen, m.filters.Values())
}

// refreshStats is the stats counterpart of refreshProducts. The page number
// is deliberately absent from the encoded query.
func (m *Model) refreshStats() tea.Cmd {
	gen := m.coord.BeginStats()
	return fetchStatsCmd(m.ctx, m.client, gen, m.filters.StatsValues())
}

// applyChange merges a filter change and refreshes exactly the feeds it
// invalidated: both on a criteria change, the list alone on pagination.
func (m *Model) applyChange(change filter.Change) tea.Cmd {
	m.filters.Apply(change)
	m.selectedRow = 0

	plan := feed.PlanRefresh(change)
	var cmds []tea.Cmd
	if plan.Products {
		cmds = append(cmds, m.refreshProducts())
	}
	if plan.Stats {
		cmds = append(cmds, m.refreshStats())
	}
	return tea.Batch(cmds...)
}

func fetchProductsCmd(ctx context.Context, client catalog.Fetcher, gen uint64, params url.Values) tea.Cmd {
	return func() tea.Msg {
		page, err := client.FetchProducts(ctx, params)
		return productsMsg{gen: gen, page: page, err: err}
	}
}

func fetchStatsCmd(ctx context.Context, client catalog.Fetcher, gen uint64, params url.Values) tea.Cmd {
	return func() tea.Msg {
		stats, err := client.FetchStats(ctx, params)
		return statsMsg{gen: gen, stats: stats, err: err}
	}
}

func parseCmd(ctx context.Context, client catalog.Fetcher, query string, limit int) tea.Cmd {
	return func() tea.Msg {
		result, err := client.Parse(ctx, query, limit)
		return parseMsg{result: result, err: err}
	}
}

// Run starts the Bubble Tea program and blocks until the user quits or the
// context is cancelled. Cancellation is a normal exit, not an error.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx))
	_, err := p.Run()
	if err != nil && (errors.Is(err, tea.ErrProgramKilled) || errors.Is(err, context.Canceled)) {
		return nil
	}
	return err
}

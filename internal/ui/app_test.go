package ui

import (
	"context"
	"net/url"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ddanshin/wbscope/internal/catalog"
)

// fakeFetcher is an in-memory catalog.Fetcher. Each product fetch returns a
// page whose single product ID is the sequence number of that call, so
// tests can tell which response is which.
type fakeFetcher struct {
	productCalls []url.Values
	statsCalls   []url.Values
	parseCalls   []string
	parseResult  *catalog.ParseResult
	err          error
}

func (f *fakeFetcher) FetchProducts(_ context.Context, params url.Values) (*catalog.ProductPage, error) {
	f.productCalls = append(f.productCalls, params)
	if f.err != nil {
		return nil, f.err
	}
	seq := int64(len(f.productCalls))
	return &catalog.ProductPage{
		Products:   []catalog.Product{{ID: seq, Name: "product", Price: 100}},
		Pagination: catalog.Pagination{Page: 1, PerPage: 20, Total: 1, Pages: 1},
	}, nil
}

func (f *fakeFetcher) FetchStats(_ context.Context, params url.Values) (*catalog.Stats, error) {
	f.statsCalls = append(f.statsCalls, params)
	if f.err != nil {
		return nil, f.err
	}
	return &catalog.Stats{TotalProducts: 1}, nil
}

func (f *fakeFetcher) Parse(_ context.Context, query string, limit int) (*catalog.ParseResult, error) {
	f.parseCalls = append(f.parseCalls, query)
	if f.err != nil {
		return nil, f.err
	}
	if f.parseResult != nil {
		return f.parseResult, nil
	}
	return &catalog.ParseResult{Success: true, Count: 3}, nil
}

func newTestModel(fake *fakeFetcher) Model {
	return New(Options{
		Context:    context.Background(),
		Client:     fake,
		ParseLimit: 50,
		PrefsPath:  "/dev/null/unused", // never written in tests
	})
}

// collectMsgs executes a command tree synchronously and flattens the
// resulting messages.
func collectMsgs(t *testing.T, cmd tea.Cmd) []tea.Msg {
	t.Helper()
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var msgs []tea.Msg
		for _, inner := range batch {
			msgs = append(msgs, collectMsgs(t, inner)...)
		}
		return msgs
	}
	return []tea.Msg{msg}
}

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", next)
	}
	return model, cmd
}

func TestFilterChangeRefreshesBothFeeds(t *testing.T) {
	fake := &fakeFetcher{}
	m := newTestModel(fake)

	m, cmd := update(t, m, keyRune('r')) // min rating -> 1
	for _, msg := range collectMsgs(t, cmd) {
		m, _ = update(t, m, msg)
	}

	if len(fake.productCalls) != 1 || len(fake.statsCalls) != 1 {
		t.Fatalf("calls = %d products, %d stats, want 1 each",
			len(fake.productCalls), len(fake.statsCalls))
	}
	if got := fake.productCalls[0].Get("min_rating"); got != "1" {
		t.Fatalf("products min_rating = %q, want 1", got)
	}
	if got := fake.productCalls[0].Get("page"); got != "1" {
		t.Fatalf("products page = %q, want reset to 1", got)
	}
	if fake.statsCalls[0].Has("page") {
		t.Fatalf("stats query carries page: %v", fake.statsCalls[0])
	}
	if got := fake.statsCalls[0].Get("min_rating"); got != "1" {
		t.Fatalf("stats min_rating = %q, want 1", got)
	}

	view := m.coord.View()
	if len(view.Products) != 1 || view.Stats == nil {
		t.Fatalf("view not populated: %+v", view)
	}
}

func TestPageChangeSkipsStats(t *testing.T) {
	fake := &fakeFetcher{}
	m := newTestModel(fake)

	// Load an initial multi-page result so pagination allows moving.
	gen := m.coord.BeginProducts()
	m.coord.ApplyProducts(gen, &catalog.ProductPage{
		Products:   []catalog.Product{{ID: 1, Name: "p", Price: 10}},
		Pagination: catalog.Pagination{Page: 1, PerPage: 20, Total: 60, Pages: 3, HasNext: true},
	}, nil)

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyRight})
	for _, msg := range collectMsgs(t, cmd) {
		m, _ = update(t, m, msg)
	}

	if len(fake.productCalls) != 1 {
		t.Fatalf("product calls = %d, want 1", len(fake.productCalls))
	}
	if len(fake.statsCalls) != 0 {
		t.Fatalf("stats calls = %d, want 0 on page-only change", len(fake.statsCalls))
	}
	if got := fake.productCalls[0].Get("page"); got != "2" {
		t.Fatalf("page param = %q, want 2", got)
	}
	if m.filters.Page != 2 {
		t.Fatalf("filters page = %d, want 2", m.filters.Page)
	}
}

func TestLateResponseForSupersededFiltersDiscarded(t *testing.T) {
	fake := &fakeFetcher{}
	m := newTestModel(fake)

	// Two overlapping refreshes: A (min rating) then B (sort order).
	m, cmdA := update(t, m, keyRune('r'))
	m, cmdB := update(t, m, keyRune('o'))

	msgsA := collectMsgs(t, cmdA)
	msgsB := collectMsgs(t, cmdB)

	// B's responses land first, then A's arrive late.
	for _, msg := range msgsB {
		m, _ = update(t, m, msg)
	}
	for _, msg := range msgsA {
		m, _ = update(t, m, msg)
	}

	// Product fetches ran in issue order, so A's payload has ID 1 and B's
	// has ID 2. The view must keep B.
	view := m.coord.View()
	if len(view.Products) != 1 || view.Products[0].ID != 2 {
		t.Fatalf("products = %+v, want the later request's payload (ID 2)", view.Products)
	}
	if view.LoadingProducts {
		t.Fatalf("products still loading after latest response")
	}
}

func TestSearchFlowRefreshesProductsOnce(t *testing.T) {
	fake := &fakeFetcher{}
	m := newTestModel(fake)

	m, _ = update(t, m, keyRune('/'))
	for _, r := range "phone" {
		m, _ = update(t, m, keyRune(r))
	}
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if !m.coord.View().Searching {
		t.Fatalf("search not marked in flight")
	}

	var refreshCmds []tea.Cmd
	for _, msg := range collectMsgs(t, cmd) {
		var followUp tea.Cmd
		m, followUp = update(t, m, msg)
		if followUp != nil {
			refreshCmds = append(refreshCmds, followUp)
		}
	}

	if len(fake.parseCalls) != 1 || fake.parseCalls[0] != "phone" {
		t.Fatalf("parse calls = %v, want one call with phone", fake.parseCalls)
	}
	if len(refreshCmds) != 1 {
		t.Fatalf("follow-up commands = %d, want exactly one products refresh", len(refreshCmds))
	}

	for _, msg := range collectMsgs(t, refreshCmds[0]) {
		m, _ = update(t, m, msg)
	}
	if len(fake.productCalls) != 1 {
		t.Fatalf("product calls = %d, want 1 after successful ingestion", len(fake.productCalls))
	}
	if len(fake.statsCalls) != 0 {
		t.Fatalf("stats calls = %d, want 0 from ingestion", len(fake.statsCalls))
	}
	if got := m.coord.View().Notice; got != "added 3 products" {
		t.Fatalf("notice = %q", got)
	}
}

func TestBlankSearchIsNoOp(t *testing.T) {
	fake := &fakeFetcher{}
	m := newTestModel(fake)

	m, _ = update(t, m, keyRune('/'))
	for _, r := range "   " {
		m, _ = update(t, m, keyRune(r))
	}
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if cmd != nil {
		t.Fatalf("blank search produced a command")
	}
	if len(fake.parseCalls) != 0 {
		t.Fatalf("parse calls = %v, want none", fake.parseCalls)
	}
	if m.coord.View().Searching {
		t.Fatalf("searching flag set for blank query")
	}
}

func TestFailedSearchDoesNotRefresh(t *testing.T) {
	fake := &fakeFetcher{parseResult: &catalog.ParseResult{Success: false, Message: "nothing found"}}
	m := newTestModel(fake)

	m, _ = update(t, m, keyRune('/'))
	m, _ = update(t, m, keyRune('x'))
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	for _, msg := range collectMsgs(t, cmd) {
		var followUp tea.Cmd
		m, followUp = update(t, m, msg)
		if followUp != nil {
			t.Fatalf("failed search produced a follow-up command")
		}
	}

	if len(fake.productCalls) != 0 {
		t.Fatalf("product calls = %d, want 0 after failed ingestion", len(fake.productCalls))
	}
	if got := m.coord.View().SearchErr; got != "nothing found" {
		t.Fatalf("search err = %q, want server message", got)
	}
}

func TestObservedRangeAdoptedOnlyWithDefaultBounds(t *testing.T) {
	fake := &fakeFetcher{}
	m := newTestModel(fake)

	gen := m.coord.BeginProducts()
	page := &catalog.ProductPage{
		Products:   []catalog.Product{{ID: 1, Name: "a", Price: 450}, {ID: 2, Name: "b", Price: 2310}},
		Pagination: catalog.Pagination{Page: 1, PerPage: 20, Total: 2, Pages: 1},
	}
	m, _ = update(t, m, productsMsg{gen: gen, page: page})

	if m.bounds.Min != 400 || m.bounds.Max != 2400 {
		t.Fatalf("bounds = %v, want observed 400..2400", m.bounds)
	}

	// Customize the bounds, then load again: the observed range must not
	// clobber the user's choice.
	low, high := 500.0, 1000.0
	m.filters.MinPrice = &low
	m.filters.MaxPrice = &high

	gen = m.coord.BeginProducts()
	m, _ = update(t, m, productsMsg{gen: gen, page: page})

	if m.bounds.Min != 400 || m.bounds.Max != 2400 {
		t.Fatalf("bounds changed under customized filters: %v", m.bounds)
	}
}

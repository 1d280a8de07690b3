package feed

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"

	"github.com/ddanshin/wbscope/internal/catalog"
	"github.com/ddanshin/wbscope/internal/filter"
)

// View is the reconciled, render-ready snapshot of all three feeds. On a
// feed failure the last-good data stays in place; a stale table beats a
// blank one.
type View struct {
	Products   []catalog.Product
	Pagination *catalog.Pagination
	Stats      *catalog.Stats

	LoadingProducts bool
	LoadingStats    bool
	Searching       bool

	ProductsErr string
	StatsErr    string
	SearchErr   string

	// Notice reports the outcome of the last successful ingestion,
	// e.g. "added 12 products".
	Notice string
}

// Coordinator owns the per-feed request generations and the reconciled
// view. It is single-writer: only the UI update loop calls into it, so the
// generation check is the only supersession mechanism needed. In-flight
// HTTP requests are never cancelled; their responses are simply discarded
// once a newer request has been issued for the same feed.
type Coordinator struct {
	productsGen uint64
	statsGen    uint64
	view        View
}

// View returns the current snapshot. Callers treat slices as read-only.
func (c *Coordinator) View() View {
	return c.view
}

// BeginProducts registers a new product list request and returns its
// generation token. Any response carrying an older token is stale.
func (c *Coordinator) BeginProducts() uint64 {
	c.productsGen++
	c.view.LoadingProducts = true
	return c.productsGen
}

// ApplyProducts reconciles a product list response. It reports false and
// mutates nothing when the token has been superseded, so out-of-order
// completions can never roll the visible list back to older filters.
func (c *Coordinator) ApplyProducts(gen uint64, page *catalog.ProductPage, err error) bool {
	if gen != c.productsGen {
		return false
	}
	c.view.LoadingProducts = false
	if err != nil {
		c.view.ProductsErr = Classify(err)
		return true
	}
	c.view.Products = page.Products
	pagination := page.Pagination
	c.view.Pagination = &pagination
	c.view.ProductsErr = ""
	return true
}

// BeginStats registers a new statistics request and returns its token.
func (c *Coordinator) BeginStats() uint64 {
	c.statsGen++
	c.view.LoadingStats = true
	return c.statsGen
}

// ApplyStats reconciles a statistics response with the same
// last-request-wins rule as ApplyProducts. Stats failures never touch the
// product list and vice versa.
func (c *Coordinator) ApplyStats(gen uint64, stats *catalog.Stats, err error) bool {
	if gen != c.statsGen {
		return false
	}
	c.view.LoadingStats = false
	if err != nil {
		c.view.StatsErr = Classify(err)
		return true
	}
	c.view.Stats = stats
	c.view.StatsErr = ""
	return true
}

// BeginSearch gates the one-shot ingestion request. It returns the trimmed
// query and false when the query is blank or a search is already running;
// in both cases no request may be issued and no state changes.
func (c *Coordinator) BeginSearch(query string) (string, bool) {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" || c.view.Searching {
		return "", false
	}
	c.view.Searching = true
	c.view.SearchErr = ""
	c.view.Notice = ""
	return trimmed, true
}

// ApplySearch reconciles the ingestion response. It reports whether the
// product list is now stale and due for a refresh: true only for an
// explicit success, in which case the caller re-fetches with whatever
// filters are current at this moment. Failed or errored ingestions leave
// the list alone.
func (c *Coordinator) ApplySearch(result *catalog.ParseResult, err error) bool {
	c.view.Searching = false
	if err != nil {
		c.view.SearchErr = Classify(err)
		return false
	}
	if !result.Success {
		message := strings.TrimSpace(result.Message)
		if message == "" {
			message = "search failed"
		}
		c.view.SearchErr = message
		return false
	}
	c.view.Notice = fmt.Sprintf("added %d products", result.Count)
	return true
}

// Plan decides which feeds a filter change invalidates. The product list
// always reloads; stats ignore pagination, so re-fetching them on a pure
// page change is skipped.
type Plan struct {
	Products bool
	Stats    bool
}

// PlanRefresh maps a filter change to the feeds that must reload.
func PlanRefresh(change filter.Change) Plan {
	return Plan{
		Products: true,
		Stats:    !change.PageOnly(),
	}
}

// Classify converts a feed-boundary error into a short human-readable
// message. Errors never propagate past this layer; each feed renders its
// own message next to its last-good data.
func Classify(err error) string {
	if err == nil {
		return ""
	}

	var statusErr *catalog.StatusError
	if errors.As(err, &statusErr) {
		switch {
		case statusErr.Code == http.StatusNotFound:
			return "endpoint not found"
		case statusErr.Code >= 500:
			return fmt.Sprintf("backend error (status %d)", statusErr.Code)
		default:
			return fmt.Sprintf("request rejected (status %d)", statusErr.Code)
		}
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return "backend timed out"
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return "backend timed out"
	}

	msg := err.Error()
	switch {
	case strings.Contains(msg, "connection refused"):
		return "backend not running"
	case strings.Contains(msg, "no such host"):
		return "backend host not found"
	case strings.Contains(msg, "decode response"):
		return "unexpected response from backend"
	default:
		return "request failed"
	}
}

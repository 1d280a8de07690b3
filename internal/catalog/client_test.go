package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"
)

func TestParseBaseURL_DefaultsAndNormalizes(t *testing.T) {
	u, err := parseBaseURL("")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Scheme != "http" {
		t.Fatalf("scheme = %q, want http", u.Scheme)
	}
	if u.Host != defaultAPIBase {
		t.Fatalf("host = %q, want %q", u.Host, defaultAPIBase)
	}

	u, err = parseBaseURL("http://example.com:1234/path?x=1#frag")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Path != "" || u.RawQuery != "" || u.Fragment != "" {
		t.Fatalf("url not normalized: %q", u.String())
	}
}

func TestClient_FetchesEndpointsAndEncodesQueries(t *testing.T) {
	t.Parallel()

	var gotProductsQuery url.Values
	var gotStatsQuery url.Values
	var gotParseBody parseRequest
	var gotUserAgent string

	rating := 4.5
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserAgent = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json")

		switch r.URL.Path {
		case "/api/products/":
			gotProductsQuery = r.URL.Query()
			_ = json.NewEncoder(w).Encode(ProductPage{
				Products:   []Product{{ID: 42, Name: "Widget", Price: 990, Rating: &rating}},
				Pagination: Pagination{Page: 2, PerPage: 20, Total: 41, Pages: 3, HasPrev: true, HasNext: true},
			})
		case "/api/products/stats/":
			gotStatsQuery = r.URL.Query()
			_ = json.NewEncoder(w).Encode(Stats{
				TotalProducts:     41,
				PriceDistribution: []PriceBucket{{Range: "0-1000", Count: 10}},
			})
		case "/api/products/parse/":
			if r.Method != http.MethodPost {
				http.Error(w, "method", http.StatusMethodNotAllowed)
				return
			}
			_ = json.NewDecoder(r.Body).Decode(&gotParseBody)
			_ = json.NewEncoder(w).Encode(ParseResult{Success: true, Count: 12})
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)

	params := url.Values{}
	params.Set("min_price", "0")
	params.Set("sort_by", "id")
	params.Set("sort_order", "asc")
	params.Set("page", "2")

	page, err := c.FetchProducts(ctx, params)
	if err != nil {
		t.Fatalf("FetchProducts returned error: %v", err)
	}
	if len(page.Products) != 1 || page.Products[0].ID != 42 {
		t.Fatalf("FetchProducts products = %#v, want 1 item id=42", page.Products)
	}
	if page.Pagination.Total != 41 || !page.Pagination.HasNext {
		t.Fatalf("FetchProducts pagination = %#v, want total=41 has_next", page.Pagination)
	}
	if gotProductsQuery.Get("min_price") != "0" ||
		gotProductsQuery.Get("sort_by") != "id" ||
		gotProductsQuery.Get("sort_order") != "asc" ||
		gotProductsQuery.Get("page") != "2" {
		t.Fatalf("FetchProducts query = %v, want params encoded", gotProductsQuery)
	}

	statsParams := url.Values{}
	statsParams.Set("min_rating", "4.5")

	stats, err := c.FetchStats(ctx, statsParams)
	if err != nil {
		t.Fatalf("FetchStats returned error: %v", err)
	}
	if stats.TotalProducts != 41 || len(stats.PriceDistribution) != 1 {
		t.Fatalf("FetchStats payload = %#v, want total=41 one bucket", stats)
	}
	if gotStatsQuery.Get("min_rating") != "4.5" {
		t.Fatalf("FetchStats query = %v, want min_rating=4.5", gotStatsQuery)
	}
	if gotStatsQuery.Has("page") {
		t.Fatalf("FetchStats query carries page param: %v", gotStatsQuery)
	}

	result, err := c.Parse(ctx, "phone", 50)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if !result.Success || result.Count != 12 {
		t.Fatalf("Parse result = %#v, want success count=12", result)
	}
	if gotParseBody.Query != "phone" || gotParseBody.Limit != 50 {
		t.Fatalf("Parse body = %#v, want query=phone limit=50", gotParseBody)
	}

	if gotUserAgent == "" || !strings.HasPrefix(gotUserAgent, "wbscope/") {
		t.Fatalf("User-Agent = %q, want wbscope/*", gotUserAgent)
	}
}

func TestClient_ParseReportsApplicationFailure(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(ParseResult{Success: false, Message: "scraper busy"})
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	result, err := c.Parse(context.Background(), "phone", 50)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if result.Success || result.Message != "scraper busy" {
		t.Fatalf("Parse result = %#v, want failure with message", result)
	}
}

func TestClient_HTTPErrorAndDecodeError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/products/":
			http.Error(w, "nope", http.StatusInternalServerError)
		case "/api/products/stats/":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte("{not-json"))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	_, err = c.FetchProducts(context.Background(), url.Values{})
	var statusErr *StatusError
	if !errors.As(err, &statusErr) || statusErr.Code != http.StatusInternalServerError {
		t.Fatalf("FetchProducts error = %v, want StatusError 500", err)
	}

	_, err = c.FetchStats(context.Background(), url.Values{})
	if err == nil || !strings.Contains(err.Error(), "decode response") {
		t.Fatalf("FetchStats error = %v, want decode response error", err)
	}
}

func TestProduct_EffectivePriceAndDiscount(t *testing.T) {
	discounted := 750.0
	pct := 25.0
	withDiscount := Product{Price: 1000, DiscountedPrice: &discounted, DiscountPercentage: &pct}
	if got := withDiscount.EffectivePrice(); got != 750 {
		t.Fatalf("EffectivePrice = %v, want 750", got)
	}
	if !withDiscount.HasDiscount() {
		t.Fatalf("HasDiscount = false, want true")
	}

	plain := Product{Price: 1000}
	if got := plain.EffectivePrice(); got != 1000 {
		t.Fatalf("EffectivePrice = %v, want 1000", got)
	}
	if plain.HasDiscount() {
		t.Fatalf("HasDiscount = true, want false")
	}

	zero := 0.0
	zeroPct := Product{Price: 1000, DiscountPercentage: &zero}
	if zeroPct.HasDiscount() {
		t.Fatalf("HasDiscount = true for zero percentage, want false")
	}
}

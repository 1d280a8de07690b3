package filter

import (
	"math"
	"net/url"
	"strconv"

	"github.com/ddanshin/wbscope/internal/catalog"
)

// SortKey names a server-side sort column.
type SortKey string

// Sort keys accepted by the backend.
const (
	SortID      SortKey = "id"
	SortName    SortKey = "name"
	SortPrice   SortKey = "price"
	SortRating  SortKey = "rating"
	SortReviews SortKey = "reviews_count"
)

// SortKeys lists the accepted keys in UI cycling order.
var SortKeys = []SortKey{SortID, SortName, SortPrice, SortRating, SortReviews}

// ParseSortKey validates a raw sort key at the input boundary.
func ParseSortKey(raw string) (SortKey, bool) {
	for _, key := range SortKeys {
		if raw == string(key) {
			return key, true
		}
	}
	return "", false
}

// SortOrder names a sort direction.
type SortOrder string

const (
	Ascending  SortOrder = "asc"
	Descending SortOrder = "desc"
)

// RatingSteps are the minimum-rating thresholds the UI offers.
var RatingSteps = []float64{1, 2, 3, 4, 4.5}

// ReviewSteps are the minimum-review-count thresholds the UI offers.
var ReviewSteps = []int{10, 50, 100, 500}

// PriceRange bounds the price slider and the reset defaults.
type PriceRange struct {
	Min float64
	Max float64
}

// DefaultPriceRange is the fallback used before any products are observed.
var DefaultPriceRange = PriceRange{Min: 0, Max: 100000}

// Filters is the single source of truth for the active query criteria.
// Nil pointer fields mean "unset": the server applies its own default.
type Filters struct {
	MinPrice   *float64
	MaxPrice   *float64
	MinRating  *float64
	MinReviews *int
	SortBy     SortKey
	SortOrder  SortOrder
	Page       int
}

// Default returns the filter state used at startup.
func Default() Filters {
	bounds := DefaultPriceRange
	return Filters{
		MinPrice:  &bounds.Min,
		MaxPrice:  &bounds.Max,
		SortBy:    SortID,
		SortOrder: Ascending,
		Page:      1,
	}
}

// Change is a partial mutation of Filters. Zero-valued fields are left
// untouched; the Clear flags distinguish "unset this threshold" from
// "leave it alone".
type Change struct {
	MinPrice        *float64
	MaxPrice        *float64
	MinRating       *float64
	ClearMinRating  bool
	MinReviews      *int
	ClearMinReviews bool
	SortBy          SortKey
	SortOrder       SortOrder
	Page            *int
}

// PageOnly reports whether the change touches nothing but the page number.
// Page-only changes keep the current result set valid and do not require a
// stats refresh.
func (c Change) PageOnly() bool {
	return c.Page != nil &&
		c.MinPrice == nil && c.MaxPrice == nil &&
		c.MinRating == nil && !c.ClearMinRating &&
		c.MinReviews == nil && !c.ClearMinReviews &&
		c.SortBy == "" && c.SortOrder == ""
}

// Apply merges the change into the filter state. Any change beyond the page
// number invalidates the notion of "current page" of the old result set, so
// Page resets to 1 except for page-only changes.
func (f *Filters) Apply(c Change) {
	if c.PageOnly() {
		f.SetPage(*c.Page)
		return
	}
	if c.MinPrice != nil {
		f.MinPrice = c.MinPrice
	}
	if c.MaxPrice != nil {
		f.MaxPrice = c.MaxPrice
	}
	if c.MinRating != nil {
		f.MinRating = c.MinRating
	}
	if c.ClearMinRating {
		f.MinRating = nil
	}
	if c.MinReviews != nil {
		f.MinReviews = c.MinReviews
	}
	if c.ClearMinReviews {
		f.MinReviews = nil
	}
	if c.SortBy != "" {
		f.SortBy = c.SortBy
	}
	if c.SortOrder != "" {
		f.SortOrder = c.SortOrder
	}
	f.Page = 1
}

// SetPage moves to page n without touching any other criterion. The server
// may still reject an out-of-range page; the caller renders whatever comes
// back.
func (f *Filters) SetPage(n int) {
	if n < 1 {
		n = 1
	}
	f.Page = n
}

// Reset restores default criteria: price bounds from the given range,
// thresholds cleared, default sort, first page. Nothing of the prior state
// survives.
func (f *Filters) Reset(bounds PriceRange) {
	minPrice := bounds.Min
	maxPrice := bounds.Max
	*f = Filters{
		MinPrice:  &minPrice,
		MaxPrice:  &maxPrice,
		SortBy:    SortID,
		SortOrder: Ascending,
		Page:      1,
	}
}

// BoundsEqual reports whether the filter's price bounds are exactly the
// given range. Used to decide if the user has customized the bounds.
func (f Filters) BoundsEqual(bounds PriceRange) bool {
	return f.MinPrice != nil && f.MaxPrice != nil &&
		*f.MinPrice == bounds.Min && *f.MaxPrice == bounds.Max
}

// Values derives the wire parameters for the product list endpoint. Unset
// fields are omitted so the server applies its own defaults; zero is a real
// value and is kept. Numbers serialize with a stable decimal form.
func (f Filters) Values() url.Values {
	values := f.StatsValues()
	if f.Page > 0 {
		values.Set("page", strconv.Itoa(f.Page))
	}
	return values
}

// StatsValues derives the wire parameters for the stats endpoint: identical
// to Values minus the page, which stats ignore.
func (f Filters) StatsValues() url.Values {
	values := url.Values{}
	if f.MinPrice != nil {
		values.Set("min_price", formatNumber(*f.MinPrice))
	}
	if f.MaxPrice != nil {
		values.Set("max_price", formatNumber(*f.MaxPrice))
	}
	if f.MinRating != nil {
		values.Set("min_rating", formatNumber(*f.MinRating))
	}
	if f.MinReviews != nil {
		values.Set("min_reviews", strconv.Itoa(*f.MinReviews))
	}
	if f.SortBy != "" {
		values.Set("sort_by", string(f.SortBy))
	}
	if f.SortOrder != "" {
		values.Set("sort_order", string(f.SortOrder))
	}
	return values
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// ObserveRange derives a price range from the effective prices of loaded
// products, widened to whole hundreds. Returns false when there is nothing
// to observe.
func ObserveRange(products []catalog.Product) (PriceRange, bool) {
	if len(products) == 0 {
		return PriceRange{}, false
	}
	low := products[0].EffectivePrice()
	high := low
	for _, p := range products[1:] {
		price := p.EffectivePrice()
		if price < low {
			low = price
		}
		if price > high {
			high = price
		}
	}
	return PriceRange{
		Min: math.Floor(low/100) * 100,
		Max: math.Ceil(high/100) * 100,
	}, true
}

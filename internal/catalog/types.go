package catalog

// Product describes a scraped marketplace product as returned by the backend.
// All fields are server-owned; the client never mutates them.
type Product struct {
	ID                 int64    `json:"id"`
	Name               string   `json:"name"`
	Category           string   `json:"category"`
	Price              float64  `json:"price"`
	DiscountedPrice    *float64 `json:"discounted_price"`
	DiscountPercentage *float64 `json:"discount_percentage"`
	Rating             *float64 `json:"rating"`
	ReviewsCount       *int     `json:"reviews_count"`
}

// EffectivePrice returns the discounted price when a discount applies,
// otherwise the list price.
func (p Product) EffectivePrice() float64 {
	if p.DiscountedPrice != nil {
		return *p.DiscountedPrice
	}
	return p.Price
}

// HasDiscount reports whether a non-zero discount applies to the product.
func (p Product) HasDiscount() bool {
	return p.DiscountPercentage != nil && *p.DiscountPercentage > 0
}

// Pagination mirrors the server's pagination envelope. The client trusts
// these values and never recomputes pages/has_next from total itself.
type Pagination struct {
	Page    int  `json:"page"`
	PerPage int  `json:"per_page"`
	Total   int  `json:"total"`
	Pages   int  `json:"pages"`
	HasPrev bool `json:"has_prev"`
	HasNext bool `json:"has_next"`
}

// ProductPage mirrors the payload returned by GET /api/products/.
type ProductPage struct {
	Products   []Product  `json:"products"`
	Pagination Pagination `json:"pagination"`
}

// PriceBucket is one bar of the price distribution histogram.
type PriceBucket struct {
	Range string `json:"range"`
	Count int    `json:"count"`
}

// ScatterPoint is one product in the discount-vs-rating scatter series.
type ScatterPoint struct {
	Name               string   `json:"name"`
	Rating             *float64 `json:"rating"`
	DiscountPercentage *float64 `json:"discount_percentage"`
}

// Stats mirrors the payload returned by GET /api/products/stats/. It is
// computed server-side over the same filter predicate as the product list,
// ignoring pagination.
type Stats struct {
	TotalProducts     int            `json:"total_products"`
	PriceDistribution []PriceBucket  `json:"price_distribution"`
	DiscountVsRating  []ScatterPoint `json:"discount_vs_rating"`
}

// ParseResult mirrors the payload returned by POST /api/products/parse/.
// Success is an application-level flag: the request may complete with 200
// and still report a failed ingestion.
type ParseResult struct {
	Success bool   `json:"success"`
	Count   int    `json:"count"`
	Message string `json:"message"`
}

// parseRequest is the JSON body sent to the ingestion endpoint.
type parseRequest struct {
	Query string `json:"query"`
	Limit int    `json:"limit"`
}

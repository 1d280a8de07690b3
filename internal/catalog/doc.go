// Package catalog provides the HTTP client for the marketplace analytics
// backend.
//
// The backend exposes three independent views: a paginated product list, a
// set of aggregate statistics over the same filter predicate, and an
// on-demand ingestion trigger that scrapes new products by free-text query.
// This package owns the wire types for all three and a thin Client that
// issues the requests. It performs no retries, no caching, and no state
// reconciliation; supersession of in-flight requests is handled one layer
// up, in internal/feed.
//
// Error shape: transport failures are wrapped with context, non-2xx
// responses become *StatusError, and a 2xx ingestion response carrying
// success=false is returned as a plain ParseResult for the caller to
// interpret.
package catalog

// Package filter owns the query criteria for the catalog views and their
// deterministic translation into wire parameters.
//
// Filters is a single-writer value: only the UI update loop mutates it, in
// response to discrete user actions. The page-reset invariant lives in
// Apply — any change beyond pagination returns the view to page 1, because
// the old result set's page numbering no longer means anything.
//
// Values/StatsValues encode the omission rule the backend relies on: unset
// criteria are absent from the query string entirely, letting the server
// pick its defaults and keeping request URLs canonical.
package filter

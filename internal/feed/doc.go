// Package feed reconciles the three independent backend feeds — product
// list, aggregate statistics, and on-demand ingestion — into one consistent
// view.
//
// The central correctness property is last-request-wins per feed: every
// request captures a generation token at issue time, and its response is
// applied only while that token is still the feed's newest. A response that
// lost the race is discarded outright, success or failure, so the visible
// data always reflects the most recently requested filter set regardless of
// network completion order.
//
// Failures are isolated per feed. One feed's error never blanks another
// feed's data, and a refresh failure keeps the previous payload on screen
// with the error recorded beside it.
package feed

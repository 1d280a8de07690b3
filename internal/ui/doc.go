// Package ui implements the Bubble Tea terminal interface for wbscope.
//
// The model-update-view loop is the application's scheduler: every state
// mutation happens on the update goroutine in response to a discrete
// message (key press, window resize, feed response), which is what makes
// the filter/fetch orchestration auditable. Network calls run as tea.Cmd
// functions off-loop and come back as messages carrying the generation
// token captured at issue time; internal/feed decides whether each response
// is still current before any state changes.
//
// Key files:
//
//   - app.go: root Model, Update dispatch, fetch commands and messages
//   - keys.go: key bindings, filter mutation, search and price inputs
//   - header.go: status bar, active-filter bar, command bar
//   - table.go: product table and pagination strip
//   - charts.go: price histogram and discount-vs-rating scatter
//   - theme.go: color themes (cycled with T, persisted via prefs)
package ui

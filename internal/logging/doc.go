// Package logging assembles structured slog loggers and formatting helpers used
// across vadset.
//
// It owns the console/JSON handlers, centralizes level and output plumbing,
// and exposes context-aware helpers so pipeline code can tag log lines with
// the run ID, dataset class and stage. A no-op logger is provided for tests
// and wiring code that cannot fail.
package logging

// Package main hosts the vadset CLI entrypoint and command graph.
//
// The speech and not-speech commands each build one half of a two-class
// voice-activity dataset: they resolve configuration, run preflight checks,
// take the output lock, then hand off to the matching pipeline package and
// render its report. The verify, doctor and config commands are support
// tooling around those runs.
//
// Keep this package thin: sampling, copying and transcoding live in the
// internal packages so they can be tested without a terminal.
package main

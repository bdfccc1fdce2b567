// Package dataset holds the types shared by the speech and not-speech
// pipelines: class labels, per-artifact results, run reports, error markers
// and the context keys used to tag log lines with run metadata.
//
// The pipelines themselves live in their own packages and share no runtime
// state; this package only gives their results a common shape.
package dataset

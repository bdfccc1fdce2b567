// Package preflight provides readiness checks for the inputs, output root and
// external tools a dataset run depends on.
//
// These checks run in two contexts:
//   - The speech and not-speech commands call RunAll before sampling. Any
//     failure stops the run before a single file is written.
//   - The doctor command runs the individual checks to display their status.
package preflight

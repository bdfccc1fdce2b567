// Package speech assembles the speech half of the dataset.
//
// Candidates are every file with the configured extension below the source
// tree. A seeded sample is drawn from them, and each selected file is
// resampled by ffmpeg into the output directory under a name built from its
// trailing path components. Files already present at their destination are
// skipped, so runs can be repeated or resumed.
package speech

// Package notspeech assembles the not-speech half of the dataset from a
// labelled sound-event corpus.
//
// The manifest is a JSON array of {fname, labels} records. Records whose
// comma-separated labels include the exclusion label (Human_voice by default)
// are dropped, a seeded sample is drawn from the rest, and each sampled clip
// is copied byte for byte into the output directory. Existing outputs are
// left alone.
package notspeech

package preflight

import (
	"context"
	"fmt"

	"vadset/internal/config"
	"vadset/internal/dataset"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string `json:"name"`
	Passed bool   `json:"passed"`
	Detail string `json:"detail"`

	marker error
}

// RunAll executes the checks a run of class needs before any file is touched.
// Dry runs skip the transcoder check since nothing is spawned.
func RunAll(ctx context.Context, cfg *config.Config, class dataset.Class, dryRun bool) []Result {
	if cfg == nil {
		return nil
	}

	var results []Result
	switch class {
	case dataset.ClassSpeech:
		results = append(results, CheckDirectoryReadable("Speech source", cfg.Speech.SourceDir))
		if !dryRun {
			results = append(results, CheckTranscoder(ctx, cfg.Transcode.Binary))
		}
	case dataset.ClassNotSpeech:
		results = append(results, CheckFileReadable("Manifest", cfg.NotSpeech.Manifest))
		results = append(results, CheckDirectoryReadable("Not-speech audio", cfg.NotSpeech.AudioDir))
	}
	if !dryRun {
		results = append(results, CheckOutputRoot("Output directory", cfg.Paths.OutputDir))
	}
	return results
}

// Err returns an error describing the first failed result, or nil.
func Err(results []Result) error {
	for _, r := range results {
		if r.Passed {
			continue
		}
		if r.marker != nil {
			return dataset.Wrap(r.marker, "preflight", r.Name, r.Detail, nil)
		}
		return fmt.Errorf("preflight: %s: %s", r.Name, r.Detail)
	}
	return nil
}

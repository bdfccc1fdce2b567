package notspeech

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"vadset/internal/dataset"
	"vadset/internal/fileutil"
	"vadset/internal/logging"
	"vadset/internal/sampling"
)

// Options configures a not-speech run.
type Options struct {
	Manifest     string
	AudioDir     string
	Extension    string
	OutputDir    string
	Count        int
	ExcludeLabel string
	Seed         uint64
	DryRun       bool
}

// ProgressFunc is called after each sampled file is handled.
type ProgressFunc func(done, total int, artifact dataset.Artifact)

// Pipeline samples manifest records that lack the exclusion label and copies
// their audio into the output directory unchanged.
type Pipeline struct {
	opts     Options
	progress ProgressFunc
	logger   *slog.Logger
}

// New constructs a not-speech pipeline.
func New(opts Options, logger *slog.Logger) *Pipeline {
	return &Pipeline{
		opts:   opts,
		logger: logging.NewComponentLogger(logger, "not-speech"),
	}
}

// OnProgress installs a progress callback. While one is installed the run
// does not write its periodic progress log lines.
func (p *Pipeline) OnProgress(fn ProgressFunc) *Pipeline {
	p.progress = fn
	return p
}

// Run executes the pipeline, stopping at the first failure.
func (p *Pipeline) Run(ctx context.Context) (dataset.Report, error) {
	ctx = dataset.WithClass(ctx, dataset.ClassNotSpeech)
	runID, _ := dataset.RunIDFromContext(ctx)
	report := dataset.Report{
		RunID:     runID,
		Class:     dataset.ClassNotSpeech,
		Seed:      p.opts.Seed,
		Requested: p.opts.Count,
		DryRun:    p.opts.DryRun,
	}
	logger := logging.WithContext(ctx, p.logger)

	records, err := LoadManifest(p.opts.Manifest)
	if err != nil {
		return report, err
	}
	kept, excluded := Exclude(records, p.opts.ExcludeLabel)
	report.Candidates = len(kept)
	report.Excluded = excluded
	logging.WithContext(dataset.WithStage(ctx, "load"), p.logger).Info("manifest loaded",
		logging.String("manifest", p.opts.Manifest),
		logging.Int("records", len(records)),
		logging.Int("excluded", excluded),
		logging.String("exclude_label", p.opts.ExcludeLabel),
	)

	selected, err := sampling.Sample(kept, p.opts.Count, p.opts.Seed)
	if err != nil {
		return report, dataset.Wrap(nil, "not-speech", "sample", "", err)
	}
	logging.WithContext(dataset.WithStage(ctx, "sample"), p.logger).Debug("not-speech sample drawn",
		logging.Int("selected", len(selected)),
		logging.Uint64("seed", p.opts.Seed),
	)

	if !p.opts.DryRun {
		if err := os.MkdirAll(p.opts.OutputDir, 0o755); err != nil {
			return report, fmt.Errorf("create not-speech output dir: %w", err)
		}
	}

	sampler := logging.NewProgressSampler(10)
	report.Artifacts = make([]dataset.Artifact, 0, len(selected))
	for i, rec := range selected {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		artifact, err := p.process(ctx, rec)
		if err != nil {
			return report, err
		}
		report.Artifacts = append(report.Artifacts, artifact)
		logger.Debug("not-speech file handled",
			logging.String("source", artifact.Source),
			logging.String("action", string(artifact.Action)),
		)
		if p.progress != nil {
			p.progress(i+1, len(selected), artifact)
		} else if sampler.ShouldLog(i+1, len(selected)) {
			logger.Info("not-speech progress", logging.Int("done", i+1), logging.Int("total", len(selected)))
		}
	}

	logger.Info("not-speech run complete",
		logging.Int("created", report.Count(dataset.ActionCreated)),
		logging.Int("skipped", report.Count(dataset.ActionSkipped)),
		logging.Int("planned", report.Count(dataset.ActionPlanned)),
	)
	return report, nil
}

func (p *Pipeline) process(ctx context.Context, rec Record) (dataset.Artifact, error) {
	src := SourcePath(p.opts.AudioDir, rec.Fname, p.opts.Extension)
	dst := filepath.Join(p.opts.OutputDir, filepath.Base(src))
	artifact := dataset.Artifact{Source: src, Destination: dst}

	ctx = dataset.WithStage(ctx, "check")
	exists, err := fileutil.Exists(dst)
	if err != nil {
		return artifact, p.fail(ctx, rec, fmt.Errorf("check %s: %w", dst, err))
	}
	if exists {
		artifact.Action = dataset.ActionSkipped
		artifact.Bytes = fileutil.Size(dst)
		return artifact, nil
	}
	if p.opts.DryRun {
		if _, err := os.Stat(src); err != nil {
			return artifact, p.fail(ctx, rec, sourceError(src, err))
		}
		artifact.Action = dataset.ActionPlanned
		return artifact, nil
	}

	ctx = dataset.WithStage(ctx, "copy")
	written, err := fileutil.CopyVerified(src, dst)
	if err != nil {
		return artifact, p.fail(ctx, rec, sourceError(src, err))
	}
	artifact.Action = dataset.ActionCreated
	artifact.Bytes = written
	return artifact, nil
}

func (p *Pipeline) fail(ctx context.Context, rec Record, err error) error {
	logging.ErrorWithContext(logging.WithContext(ctx, p.logger), "not-speech file failed", "not_speech_file_failed",
		logging.String("fname", rec.Fname),
		logging.Error(err),
		logging.String(logging.FieldErrorHint, "check the audio directory matches the manifest"),
	)
	return err
}

func sourceError(src string, err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return dataset.Wrap(dataset.ErrNotFound, "not-speech", "copy", src, err)
	}
	return dataset.Wrap(nil, "not-speech", "copy", src, err)
}

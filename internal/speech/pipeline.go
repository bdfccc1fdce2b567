package speech

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"vadset/internal/dataset"
	"vadset/internal/fileutil"
	"vadset/internal/logging"
	"vadset/internal/sampling"
	"vadset/internal/transcode"
)

// Options configures a speech run.
type Options struct {
	SourceDir      string
	Extension      string
	OutputDir      string
	Count          int
	SampleRate     int
	NameComponents int
	NameSeparator  string
	Seed           uint64
	DryRun         bool
}

// Verifier checks a freshly transcoded file before it is published.
type Verifier func(path string, sampleRate int) error

// ProgressFunc is called after each sampled file is handled.
type ProgressFunc func(done, total int, artifact dataset.Artifact)

// Pipeline samples speech clips from a corpus tree and resamples each one into
// the output directory.
type Pipeline struct {
	opts       Options
	transcoder transcode.Transcoder
	verify     Verifier
	progress   ProgressFunc
	logger     *slog.Logger
}

// New constructs a speech pipeline.
func New(opts Options, transcoder transcode.Transcoder, logger *slog.Logger) *Pipeline {
	return &Pipeline{
		opts:       opts,
		transcoder: transcoder,
		logger:     logging.NewComponentLogger(logger, "speech"),
	}
}

// WithVerifier installs a post-transcode check.
func (p *Pipeline) WithVerifier(v Verifier) *Pipeline {
	p.verify = v
	return p
}

// OnProgress installs a progress callback. While one is installed the run
// does not write its periodic progress log lines.
func (p *Pipeline) OnProgress(fn ProgressFunc) *Pipeline {
	p.progress = fn
	return p
}

// Run executes the pipeline. Existing destinations are left untouched, so a
// re-run with the same corpus and seed only fills in what is missing. The
// first failure aborts the run.
func (p *Pipeline) Run(ctx context.Context) (dataset.Report, error) {
	ctx = dataset.WithClass(ctx, dataset.ClassSpeech)
	runID, _ := dataset.RunIDFromContext(ctx)
	report := dataset.Report{
		RunID:     runID,
		Class:     dataset.ClassSpeech,
		Seed:      p.opts.Seed,
		Requested: p.opts.Count,
		DryRun:    p.opts.DryRun,
	}
	if p.transcoder == nil && !p.opts.DryRun {
		return report, errors.New("speech: transcoder is required")
	}
	logger := logging.WithContext(ctx, p.logger)

	candidates, err := Discover(p.opts.SourceDir, p.opts.Extension)
	if err != nil {
		return report, err
	}
	report.Candidates = len(candidates)
	logging.WithContext(dataset.WithStage(ctx, "discover"), p.logger).Info("speech candidates discovered",
		logging.String("source", p.opts.SourceDir),
		logging.Int("candidates", len(candidates)),
	)

	selected, err := sampling.Sample(candidates, p.opts.Count, p.opts.Seed)
	if err != nil {
		return report, dataset.Wrap(nil, "speech", "sample", "", err)
	}
	logging.WithContext(dataset.WithStage(ctx, "sample"), p.logger).Debug("speech sample drawn",
		logging.Int("selected", len(selected)),
		logging.Uint64("seed", p.opts.Seed),
	)

	if !p.opts.DryRun {
		if err := os.MkdirAll(p.opts.OutputDir, 0o755); err != nil {
			return report, fmt.Errorf("create speech output dir: %w", err)
		}
	}

	sampler := logging.NewProgressSampler(10)
	report.Artifacts = make([]dataset.Artifact, 0, len(selected))
	for i, src := range selected {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		artifact, err := p.process(ctx, src)
		if err != nil {
			return report, err
		}
		report.Artifacts = append(report.Artifacts, artifact)
		logger.Debug("speech file handled",
			logging.String("source", artifact.Source),
			logging.String("destination", artifact.Destination),
			logging.String("action", string(artifact.Action)),
		)
		if p.progress != nil {
			p.progress(i+1, len(selected), artifact)
		} else if sampler.ShouldLog(i+1, len(selected)) {
			logger.Info("speech progress", logging.Int("done", i+1), logging.Int("total", len(selected)))
		}
	}

	logger.Info("speech run complete",
		logging.Int("created", report.Count(dataset.ActionCreated)),
		logging.Int("skipped", report.Count(dataset.ActionSkipped)),
		logging.Int("planned", report.Count(dataset.ActionPlanned)),
	)
	return report, nil
}

// process handles one sampled file. Failures are logged with the stage they
// happened in before being returned.
func (p *Pipeline) process(ctx context.Context, src string) (dataset.Artifact, error) {
	artifact := dataset.Artifact{Source: src}
	ctx = dataset.WithStage(ctx, "name")
	name, err := DestinationName(src, p.opts.NameComponents, p.opts.NameSeparator)
	if err != nil {
		return artifact, p.fail(ctx, src, err)
	}
	dst := filepath.Join(p.opts.OutputDir, name)
	artifact.Destination = dst

	ctx = dataset.WithStage(ctx, "check")
	exists, err := fileutil.Exists(dst)
	if err != nil {
		return artifact, p.fail(ctx, src, fmt.Errorf("check %s: %w", dst, err))
	}
	if exists {
		artifact.Action = dataset.ActionSkipped
		artifact.Bytes = fileutil.Size(dst)
		return artifact, nil
	}
	if p.opts.DryRun {
		artifact.Action = dataset.ActionPlanned
		return artifact, nil
	}

	ctx = dataset.WithStage(ctx, "transcode")
	partial := fileutil.PartialPath(dst)
	if err := p.transcoder.Transcode(ctx, src, partial, p.opts.SampleRate); err != nil {
		_ = os.Remove(partial)
		if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
			return artifact, err
		}
		return artifact, p.fail(ctx, src, dataset.Wrap(nil, "speech", "transcode", src, err))
	}
	if p.verify != nil {
		ctx = dataset.WithStage(ctx, "verify")
		if err := p.verify(partial, p.opts.SampleRate); err != nil {
			_ = os.Remove(partial)
			return artifact, p.fail(ctx, src, dataset.Wrap(dataset.ErrExternalTool, "speech", "verify", src, err))
		}
	}
	ctx = dataset.WithStage(ctx, "publish")
	if err := fileutil.Publish(partial, dst); err != nil {
		return artifact, p.fail(ctx, src, fmt.Errorf("publish %s: %w", dst, err))
	}
	artifact.Action = dataset.ActionCreated
	artifact.Bytes = fileutil.Size(dst)
	return artifact, nil
}

func (p *Pipeline) fail(ctx context.Context, src string, err error) error {
	logging.ErrorWithContext(logging.WithContext(ctx, p.logger), "speech file failed", "speech_file_failed",
		logging.String("source", src),
		logging.Error(err),
		logging.String(logging.FieldErrorHint, "fix or remove the source file and re-run"),
	)
	return err
}

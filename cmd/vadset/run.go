package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"vadset/internal/config"
	"vadset/internal/dataset"
	"vadset/internal/logging"
	"vadset/internal/preflight"
	"vadset/internal/runlock"
)

// runFlags are the per-run overrides shared by the speech and not-speech
// commands. Only flags the user actually set replace config values.
type runFlags struct {
	count    int
	seed     uint64
	source   string
	manifest string
	output   string
	dryRun   bool
}

func (f *runFlags) register(cmd *cobra.Command, class dataset.Class) {
	flags := cmd.Flags()
	flags.IntVarP(&f.count, "count", "n", 0, "Number of files to sample (defaults to the configured count)")
	flags.Uint64Var(&f.seed, "seed", 0, "Sampling seed (defaults to the configured seed)")
	switch class {
	case dataset.ClassSpeech:
		flags.StringVar(&f.source, "source", "", "Root of the speech corpus")
	case dataset.ClassNotSpeech:
		flags.StringVar(&f.source, "source", "", "Directory holding the manifest's audio files")
		flags.StringVar(&f.manifest, "manifest", "", "Ground-truth manifest (JSON array of {fname, labels})")
	}
	flags.StringVarP(&f.output, "output", "o", "", "Output root directory")
	flags.BoolVar(&f.dryRun, "dry-run", false, "Sample and report planned actions without writing files")
}

func (f *runFlags) apply(cmd *cobra.Command, cfg *config.Config, class dataset.Class) error {
	flags := cmd.Flags()
	if flags.Changed("count") {
		if class == dataset.ClassSpeech {
			cfg.Speech.Count = f.count
		} else {
			cfg.NotSpeech.Count = f.count
		}
	}
	if flags.Changed("seed") {
		cfg.Sampling.Seed = f.seed
	}
	if flags.Changed("source") {
		if class == dataset.ClassSpeech {
			cfg.Speech.SourceDir = f.source
		} else {
			cfg.NotSpeech.AudioDir = f.source
		}
	}
	if flags.Changed("manifest") {
		cfg.NotSpeech.Manifest = f.manifest
	}
	if flags.Changed("output") {
		cfg.Paths.OutputDir = f.output
	}
	return cfg.Finalize()
}

// classRun executes one pipeline with the run-scoped context and logger.
type classRun func(ctx context.Context, logger *slog.Logger, progress *progressReporter) (dataset.Report, error)

// runClass wraps a pipeline with preflight checks, the output lock, progress
// display and report rendering.
func runClass(cmd *cobra.Command, cc *commandContext, cfg *config.Config, class dataset.Class, classDir string, dryRun bool, run classRun) error {
	logger, err := cc.newLogger(cmd, cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	ctx := dataset.WithRunID(cmd.Context(), uuid.NewString())
	runLogger := logging.WithContext(dataset.WithClass(ctx, class), logging.NewComponentLogger(logger, "cli"))
	runLogger.Info("run starting",
		logging.String("output", classDir),
		logging.Uint64("seed", cfg.Sampling.Seed),
		logging.Bool("dry_run", dryRun),
	)

	if err := preflight.Err(preflight.RunAll(ctx, cfg, class, dryRun)); err != nil {
		return err
	}

	if !dryRun {
		if err := cfg.EnsureOutputDirectories(classDir); err != nil {
			return err
		}
		lock, err := runlock.Acquire(cfg.LockPath())
		if err != nil {
			return err
		}
		runLogger.Debug("run lock acquired", logging.String("lock", lock.Path()))
		defer func() {
			if err := lock.Release(); err != nil {
				runLogger.Warn("release run lock", logging.String("lock", lock.Path()), logging.Error(err))
			}
		}()
	}

	progress := newProgressReporter(cmd.ErrOrStderr(), class, !cc.jsonOutput())
	report, err := run(ctx, logger, progress)
	progress.finish()
	if err != nil {
		return err
	}
	return renderReport(cmd, report, classDir, cc.jsonOutput())
}

package main

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"

	"vadset/internal/dataset"
	"vadset/internal/notspeech"
)

func newNotSpeechCommand(ctx *commandContext) *cobra.Command {
	var flags runFlags

	cmd := &cobra.Command{
		Use:   "not-speech",
		Short: "Sample non-voice clips from a labelled manifest and copy them",
		Long: "Loads the ground-truth manifest, drops every record labelled with the exclusion\n" +
			"label, draws a seeded sample of the rest and copies each clip into <output>/not-speech.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if err := flags.apply(cmd, cfg, dataset.ClassNotSpeech); err != nil {
				return err
			}

			classDir := cfg.NotSpeechDir()
			return runClass(cmd, ctx, cfg, dataset.ClassNotSpeech, classDir, flags.dryRun,
				func(runCtx context.Context, logger *slog.Logger, progress *progressReporter) (dataset.Report, error) {
					pipeline := notspeech.New(notspeech.Options{
						Manifest:     cfg.NotSpeech.Manifest,
						AudioDir:     cfg.NotSpeech.AudioDir,
						Extension:    cfg.NotSpeech.Extension,
						OutputDir:    classDir,
						Count:        cfg.NotSpeech.Count,
						ExcludeLabel: cfg.NotSpeech.ExcludeLabel,
						Seed:         cfg.Sampling.Seed,
						DryRun:       flags.dryRun,
					}, logger)
					if progress != nil {
						pipeline.OnProgress(progress.update)
					}
					return pipeline.Run(runCtx)
				})
		},
	}

	flags.register(cmd, dataset.ClassNotSpeech)
	return cmd
}

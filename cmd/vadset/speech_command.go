package main

import (
	"context"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"vadset/internal/dataset"
	"vadset/internal/speech"
	"vadset/internal/transcode"
	"vadset/internal/wavcheck"
)

func newSpeechCommand(ctx *commandContext) *cobra.Command {
	var flags runFlags

	cmd := &cobra.Command{
		Use:   "speech",
		Short: "Sample speech clips and resample them with ffmpeg",
		Long: "Walks the speech corpus, draws a seeded sample of clips and resamples each one\n" +
			"into <output>/speech, named after its last path components. Existing outputs are skipped.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if err := flags.apply(cmd, cfg, dataset.ClassSpeech); err != nil {
				return err
			}

			classDir := cfg.SpeechDir()
			return runClass(cmd, ctx, cfg, dataset.ClassSpeech, classDir, flags.dryRun,
				func(runCtx context.Context, logger *slog.Logger, progress *progressReporter) (dataset.Report, error) {
					timeout := time.Duration(cfg.Transcode.TimeoutSeconds) * time.Second
					ffmpeg := transcode.NewFFmpeg(cfg.Transcode.Binary, timeout, logger)
					pipeline := speech.New(speech.Options{
						SourceDir:      cfg.Speech.SourceDir,
						Extension:      cfg.Speech.Extension,
						OutputDir:      classDir,
						Count:          cfg.Speech.Count,
						SampleRate:     cfg.Speech.SampleRate,
						NameComponents: cfg.Speech.NameComponents,
						NameSeparator:  cfg.Speech.NameSeparator,
						Seed:           cfg.Sampling.Seed,
						DryRun:         flags.dryRun,
					}, ffmpeg, logger)
					if progress != nil {
						pipeline.OnProgress(progress.update)
					}
					if cfg.Transcode.VerifyOutput {
						pipeline.WithVerifier(wavcheck.CheckSampleRate)
					}
					return pipeline.Run(runCtx)
				})
		},
	}

	flags.register(cmd, dataset.ClassSpeech)
	return cmd
}

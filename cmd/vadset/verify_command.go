package main

import (
	"fmt"
	"path/filepath"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"vadset/internal/config"
	"vadset/internal/dataset"
	"vadset/internal/wavcheck"
)

type verifyEntry struct {
	Path            string  `json:"path"`
	SampleRate      int     `json:"sample_rate"`
	Channels        int     `json:"channels"`
	BitDepth        int     `json:"bit_depth"`
	DurationSeconds float64 `json:"duration_seconds"`
	OK              bool    `json:"ok"`
	Error           string  `json:"error,omitempty"`
}

type verifyJSON struct {
	Directory  string        `json:"directory"`
	SampleRate int           `json:"sample_rate"`
	Checked    int           `json:"checked"`
	Failed     int           `json:"failed"`
	Files      []verifyEntry `json:"files"`
}

func newVerifyCommand(ctx *commandContext) *cobra.Command {
	var dirFlag string
	var showAll bool

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Check that speech outputs are WAV files at the configured sample rate",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			dir := cfg.SpeechDir()
			if dirFlag != "" {
				if dir, err = config.ExpandPath(dirFlag); err != nil {
					return fmt.Errorf("resolve directory: %w", err)
				}
			}

			results, err := wavcheck.VerifyDir(dir, cfg.Speech.Extension, cfg.Speech.SampleRate)
			if err != nil {
				return dataset.Wrap(dataset.ErrNotFound, "verify", "read directory", dir, err)
			}

			failed := 0
			for _, r := range results {
				if !r.OK() {
					failed++
				}
			}

			if ctx.jsonOutput() {
				payload := verifyJSON{
					Directory:  dir,
					SampleRate: cfg.Speech.SampleRate,
					Checked:    len(results),
					Failed:     failed,
					Files:      make([]verifyEntry, 0, len(results)),
				}
				for _, r := range results {
					payload.Files = append(payload.Files, toVerifyEntry(r))
				}
				if err := writeJSON(cmd, payload); err != nil {
					return err
				}
			} else {
				renderVerify(cmd, dir, results, failed, showAll)
			}

			if failed > 0 {
				return fmt.Errorf("verify: %d of %d file(s) in %s failed", failed, len(results), dir)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dirFlag, "dir", "", "Directory to check (defaults to the speech output directory)")
	cmd.Flags().BoolVar(&showAll, "all", false, "List every file, not only failures")
	return cmd
}

func toVerifyEntry(r wavcheck.Result) verifyEntry {
	entry := verifyEntry{
		Path:            r.Path,
		SampleRate:      r.SampleRate,
		Channels:        r.Channels,
		BitDepth:        r.BitDepth,
		DurationSeconds: r.Duration.Seconds(),
		OK:              r.OK(),
	}
	if r.Err != nil {
		entry.Error = r.Err.Error()
	}
	return entry
}

func renderVerify(cmd *cobra.Command, dir string, results []wavcheck.Result, failed int, showAll bool) {
	out := cmd.OutOrStdout()
	colorize := shouldColorize(out)

	rows := make([][]string, 0, len(results))
	for _, r := range results {
		if r.OK() && !showAll {
			continue
		}
		status := "ok"
		if r.Err != nil {
			status = r.Err.Error()
		}
		rows = append(rows, []string{
			filepath.Base(r.Path),
			strconv.Itoa(r.SampleRate),
			strconv.Itoa(r.Channels),
			r.Duration.Round(time.Millisecond).String(),
			status,
		})
	}
	if len(rows) > 0 {
		fmt.Fprintln(out, renderTable([]column{
			leftColumn("File"),
			rightColumn("Rate"),
			rightColumn("Channels"),
			rightColumn("Duration"),
			leftColumn("Status"),
		}, rows))
	}

	switch {
	case len(results) == 0:
		fmt.Fprintln(out, renderStatusLine("Verify", statusWarn, "no files found in "+dir, colorize))
	case failed > 0:
		fmt.Fprintln(out, renderStatusLine("Verify", statusError, fmt.Sprintf("%d of %d file(s) failed", failed, len(results)), colorize))
	default:
		fmt.Fprintln(out, renderStatusLine("Verify", statusOK, fmt.Sprintf("%d file(s) ok", len(results)), colorize))
	}
}

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"vadset/internal/deps"
	"vadset/internal/preflight"
)

type doctorJSON struct {
	Dependencies []deps.Status     `json:"dependencies"`
	Paths        []preflight.Result `json:"paths"`
	Healthy      bool              `json:"healthy"`
}

func newDoctorCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Report whether ffmpeg and the configured inputs are available",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			statuses := preflight.CheckSystemDeps(cmd.Context(), cfg.Transcode.Binary)
			paths := []preflight.Result{
				preflight.CheckDirectoryReadable("Speech source", cfg.Speech.SourceDir),
				preflight.CheckFileReadable("Manifest", cfg.NotSpeech.Manifest),
				preflight.CheckDirectoryReadable("Not-speech audio", cfg.NotSpeech.AudioDir),
				preflight.CheckOutputRoot("Output directory", cfg.Paths.OutputDir),
			}

			problems := len(deps.Missing(statuses))
			for _, p := range paths {
				if !p.Passed {
					problems++
				}
			}

			if ctx.jsonOutput() {
				if err := writeJSON(cmd, doctorJSON{Dependencies: statuses, Paths: paths, Healthy: problems == 0}); err != nil {
					return err
				}
			} else {
				out := cmd.OutOrStdout()
				colorize := shouldColorize(out)
				for _, line := range renderSectionHeader("Dependencies", colorize) {
					fmt.Fprintln(out, line)
				}
				for _, line := range dependencyLines(statuses, colorize) {
					fmt.Fprintln(out, line)
				}
				fmt.Fprintln(out)
				for _, line := range renderSectionHeader("Paths", colorize) {
					fmt.Fprintln(out, line)
				}
				for _, p := range paths {
					kind := statusOK
					if !p.Passed {
						kind = statusError
					}
					fmt.Fprintln(out, renderStatusLine(p.Name, kind, p.Detail, colorize))
				}
			}

			if problems > 0 {
				return fmt.Errorf("doctor: %d problem(s) found", problems)
			}
			return nil
		},
	}
}

func dependencyLines(statuses []deps.Status, colorize bool) []string {
	lines := make([]string, 0, len(statuses)+1)
	missing := make([]string, 0)
	for _, dep := range statuses {
		if dep.Available {
			message := "Ready"
			if dep.Path != "" {
				message = fmt.Sprintf("Ready (%s)", dep.Path)
			}
			if dep.Version != "" {
				message += ", " + dep.Version
			}
			lines = append(lines, renderStatusLine(dep.Name, statusOK, message, colorize))
			continue
		}

		detail := strings.TrimSpace(dep.Detail)
		if detail == "" {
			detail = "not available"
		}
		kind := statusError
		if dep.Optional {
			kind = statusWarn
		}
		lines = append(lines, renderStatusLine(dep.Name, kind, detail, colorize))
		if !dep.Optional {
			missing = append(missing, dep.Name)
		}
	}
	if len(missing) > 0 {
		lines = append(lines, renderStatusLine("Missing", statusWarn, strings.Join(missing, ", ")+" (speech runs need ffmpeg on PATH)", colorize))
	}
	return lines
}

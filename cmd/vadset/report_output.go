package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"vadset/internal/dataset"
)

// reportJSON is the --json form of a run report.
type reportJSON struct {
	dataset.Report
	OutputDir    string `json:"output_dir"`
	Created      int    `json:"created"`
	Skipped      int    `json:"skipped"`
	Planned      int    `json:"planned"`
	BytesWritten int64  `json:"bytes_written"`
}

func renderReport(cmd *cobra.Command, report dataset.Report, outputDir string, asJSON bool) error {
	if asJSON {
		return writeJSON(cmd, reportJSON{
			Report:       report,
			OutputDir:    outputDir,
			Created:      report.Count(dataset.ActionCreated),
			Skipped:      report.Count(dataset.ActionSkipped),
			Planned:      report.Count(dataset.ActionPlanned),
			BytesWritten: report.BytesWritten(),
		})
	}

	out := cmd.OutOrStdout()
	colorize := shouldColorize(out)
	for _, line := range renderSectionHeader(classTitle(report.Class)+" dataset", colorize) {
		fmt.Fprintln(out, line)
	}
	fmt.Fprintln(out, renderTable([]column{leftColumn("Field"), rightColumn("Value")}, reportRows(report)))
	fmt.Fprintln(out, reportStatusLine(report, outputDir, colorize))
	return nil
}

func reportRows(report dataset.Report) [][]string {
	rows := [][]string{
		{"Run", report.RunID},
		{"Seed", strconv.FormatUint(report.Seed, 10)},
		{"Candidates", humanize.Comma(int64(report.Candidates))},
	}
	if report.Class == dataset.ClassNotSpeech {
		rows = append(rows, []string{"Excluded", humanize.Comma(int64(report.Excluded))})
	}
	rows = append(rows,
		[]string{"Requested", humanize.Comma(int64(report.Requested))},
		[]string{"Created", strconv.Itoa(report.Count(dataset.ActionCreated))},
		[]string{"Skipped", strconv.Itoa(report.Count(dataset.ActionSkipped))},
	)
	if report.DryRun {
		rows = append(rows, []string{"Planned", strconv.Itoa(report.Count(dataset.ActionPlanned))})
	}
	rows = append(rows,
		[]string{"Written", humanize.Bytes(uint64(report.BytesWritten()))},
		[]string{"Dry run", yesNo(report.DryRun)},
	)
	return rows
}

func reportStatusLine(report dataset.Report, outputDir string, colorize bool) string {
	if report.DryRun {
		msg := fmt.Sprintf("dry run, %d file(s) would be written to %s", report.Count(dataset.ActionPlanned), outputDir)
		return renderStatusLine("Result", statusInfo, msg, colorize)
	}
	total := len(report.Artifacts)
	msg := fmt.Sprintf("%d file(s) present in %s", total, outputDir)
	return renderStatusLine("Result", statusOK, msg, colorize)
}

// classTitle turns a class name such as "not-speech" into "Not Speech".
func classTitle(class dataset.Class) string {
	words := strings.ReplaceAll(string(class), "-", " ")
	return cases.Title(language.English).String(words)
}

package transcode

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"vadset/internal/dataset"
	"vadset/internal/logging"
)

// Transcoder re-encodes a single audio file at the requested sample rate.
// Implementations must either produce output or return an error; the caller
// owns the output path and removes it on failure.
type Transcoder interface {
	Transcode(ctx context.Context, input, output string, sampleRate int) error
}

// stderrTailBytes bounds how much ffmpeg diagnostic output is kept for errors.
const stderrTailBytes = 2048

// FFmpeg runs the ffmpeg command-line tool, one process per file.
type FFmpeg struct {
	Binary  string
	Timeout time.Duration
	Logger  *slog.Logger
}

// NewFFmpeg returns an FFmpeg transcoder. An empty binary means "ffmpeg" on PATH.
func NewFFmpeg(binary string, timeout time.Duration, logger *slog.Logger) *FFmpeg {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = "ffmpeg"
	}
	return &FFmpeg{
		Binary:  binary,
		Timeout: timeout,
		Logger:  logging.NewComponentLogger(logger, "ffmpeg"),
	}
}

// Args returns the ffmpeg argument list for a conversion. The output is
// written with -y because callers hand ffmpeg a fresh partial path.
func Args(input, output string, sampleRate int) []string {
	return []string{
		"-hide_banner",
		"-nostdin",
		"-loglevel", "error",
		"-y",
		"-i", input,
		"-ar", strconv.Itoa(sampleRate),
		output,
	}
}

// Transcode runs ffmpeg and blocks until it exits. A non-zero exit status is
// reported as dataset.ErrExternalTool with the exit code and stderr tail.
func (f *FFmpeg) Transcode(ctx context.Context, input, output string, sampleRate int) error {
	if strings.TrimSpace(input) == "" || strings.TrimSpace(output) == "" {
		return errors.New("ffmpeg transcode: empty path")
	}
	if sampleRate <= 0 {
		return fmt.Errorf("ffmpeg transcode: invalid sample rate %d", sampleRate)
	}

	if f.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.Timeout)
		defer cancel()
	}

	args := Args(input, output, sampleRate)
	cmd := exec.CommandContext(ctx, f.Binary, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	logger := logging.WithContext(ctx, f.Logger)
	logger.Debug("running ffmpeg", logging.String("binary", f.Binary), logging.Any("args", args))

	start := time.Now()
	err := cmd.Run()
	if err == nil {
		logger.Debug("ffmpeg finished", logging.Duration("elapsed", time.Since(start)))
		return nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		if errors.Is(ctxErr, context.DeadlineExceeded) {
			return dataset.Wrap(dataset.ErrExternalTool, "transcode", "ffmpeg", fmt.Sprintf("timed out after %s", f.Timeout), ctxErr)
		}
		return ctxErr
	}

	detail := tail(stderr.String(), stderrTailBytes)
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		msg := fmt.Sprintf("exit status %d for %s", exitErr.ExitCode(), input)
		if detail != "" {
			msg += ": " + detail
		}
		return dataset.Wrap(dataset.ErrExternalTool, "transcode", "ffmpeg", msg, nil)
	}
	return dataset.Wrap(dataset.ErrExternalTool, "transcode", "ffmpeg", "start "+f.Binary, err)
}

func tail(s string, limit int) string {
	s = strings.TrimSpace(s)
	if len(s) <= limit {
		return s
	}
	cut := len(s) - limit
	for cut < len(s) && !utf8.RuneStart(s[cut]) {
		cut++
	}
	return "..." + s[cut:]
}

package logging_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"vadset/internal/config"
	"vadset/internal/dataset"
	"vadset/internal/logging"
)

func TestNewFromConfigWritesLogFile(t *testing.T) {
	cfg := config.Default()
	cfg.Paths.LogDir = filepath.Join(t.TempDir(), "logs")

	var stderr bytes.Buffer
	logger, err := logging.NewFromConfig(&cfg, &stderr)
	if err != nil {
		t.Fatalf("NewFromConfig returned error: %v", err)
	}
	logger.Info("hello from test")
	if !strings.Contains(stderr.String(), "hello from test") {
		t.Fatalf("expected message on writer, got %q", stderr.String())
	}

	content, err := os.ReadFile(cfg.LogFile())
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(content), "hello from test") {
		t.Fatalf("expected message in log file, got %q", content)
	}
}

func TestWriterAndOutputPathsBothReceiveLines(t *testing.T) {
	var buf bytes.Buffer
	path := filepath.Join(t.TempDir(), "logs", "vadset.log")
	logger, err := logging.New(logging.Options{Writer: &buf, OutputPaths: []string{path}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Info("fan out")

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(content), "fan out") || !strings.Contains(buf.String(), "fan out") {
		t.Fatalf("expected line in both outputs, file=%q writer=%q", content, buf.String())
	}
}

func TestConsoleLoggerFormat(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "console", Level: "info", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logging.NewComponentLogger(logger, "speech").Info("transcoded file",
		logging.String("dest", "a b.wav"),
		logging.Int("index", 3),
		logging.Error(errors.New("none")),
	)

	line := buf.String()
	for _, want := range []string{" INFO speech: transcoded file", `dest="a b.wav"`, "index=3", "error=none"} {
		if !strings.Contains(line, want) {
			t.Fatalf("expected %q in %q", want, line)
		}
	}
	if strings.Contains(line, "component=") {
		t.Fatalf("component should be rendered as prefix, got %q", line)
	}
	if strings.Contains(line, ".go:") {
		t.Fatalf("expected no caller information in info logs, got %q", line)
	}
}

func TestConsoleLoggerIncludesCallerForDebug(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "console", Level: "debug", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Debug("message with caller")
	if !strings.Contains(buf.String(), "logger_test.go:") {
		t.Fatalf("expected caller information in debug logs, got %q", buf.String())
	}
}

func TestConsoleLoggerGroupsFlatten(t *testing.T) {
	var buf bytes.Buffer
	logger, _ := logging.New(logging.Options{Writer: &buf})
	logger.WithGroup("sample").Info("picked", logging.Int("count", 2))
	if !strings.Contains(buf.String(), "sample.count=2") {
		t.Fatalf("expected grouped key, got %q", buf.String())
	}
}

func TestConsoleLoggerGroupAppliesOnlyToLaterAttrs(t *testing.T) {
	var buf bytes.Buffer
	logger, _ := logging.New(logging.Options{Writer: &buf})
	logger.With("a", 1).WithGroup("g").Info("m", "b", 2)

	out := buf.String()
	if !strings.Contains(out, " a=1 ") || !strings.Contains(out, "g.b=2") {
		t.Fatalf("expected a=1 and g.b=2, got %q", out)
	}
	if strings.Contains(out, "g.a=") {
		t.Fatalf("group leaked onto earlier attribute: %q", out)
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger, _ := logging.New(logging.Options{Level: "warn", Writer: &buf})
	logger.Info("hidden")
	logger.Warn("shown")
	if strings.Contains(buf.String(), "hidden") || !strings.Contains(buf.String(), "shown") {
		t.Fatalf("unexpected filtering result: %q", buf.String())
	}
}

func TestJSONLoggerKeys(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "json", Level: "info", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Info("copied file", logging.String("dest", "x.wav"))

	var payload map[string]any
	if err := json.Unmarshal(buf.Bytes(), &payload); err != nil {
		t.Fatalf("decode json: %v (%q)", err, buf.String())
	}
	if payload["msg"] != "copied file" || payload["level"] != "info" || payload["dest"] != "x.wav" {
		t.Fatalf("unexpected payload: %#v", payload)
	}
	if _, ok := payload["ts"]; !ok {
		t.Fatalf("expected ts key: %#v", payload)
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "xml", Writer: &bytes.Buffer{}}); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestWithContextAddsRunFields(t *testing.T) {
	var buf bytes.Buffer
	logger, _ := logging.New(logging.Options{Writer: &buf})

	ctx := dataset.WithRunID(context.Background(), "run-123")
	ctx = dataset.WithClass(ctx, dataset.ClassNotSpeech)
	ctx = dataset.WithStage(ctx, "copy")
	logging.WithContext(ctx, logger).Info("stage started")

	for _, want := range []string{"run_id=run-123", "class=not-speech", "stage=copy"} {
		if !strings.Contains(buf.String(), want) {
			t.Fatalf("expected %q in %q", want, buf.String())
		}
	}
}

func TestErrorWithContextInjectsDefaults(t *testing.T) {
	var buf bytes.Buffer
	logger, _ := logging.New(logging.Options{Writer: &buf})
	logging.ErrorWithContext(logger, "transcode failed", "transcode_failed", logging.String(logging.FieldErrorHint, "install ffmpeg"))
	out := buf.String()
	if !strings.Contains(out, "event_type=transcode_failed") || !strings.Contains(out, `error_hint="install ffmpeg"`) {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestNopLoggerDiscards(t *testing.T) {
	logger := logging.NewNop()
	if logger.Enabled(context.Background(), 12) {
		t.Fatal("nop logger should not be enabled")
	}
	logging.WithContext(context.Background(), nil).Info("ignored")
}

package preflight

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"vadset/internal/dataset"
	"vadset/internal/testsupport"
)

func TestCheckDirectoryAccess_OK(t *testing.T) {
	dir := t.TempDir()
	result := CheckDirectoryAccess("test", dir)
	if !result.Passed {
		t.Fatalf("expected pass for temp dir, got: %s", result.Detail)
	}
}

func TestCheckDirectoryReadable_NotExist(t *testing.T) {
	result := CheckDirectoryReadable("test", filepath.Join(t.TempDir(), "nope"))
	if result.Passed {
		t.Fatal("expected failure for missing dir")
	}
	if result.Detail == "" {
		t.Fatal("expected non-empty detail")
	}
}

func TestCheckDirectoryReadable_NotDir(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	result := CheckDirectoryReadable("test", f)
	if result.Passed {
		t.Fatal("expected failure for file path")
	}
}

func TestCheckFileReadable(t *testing.T) {
	dir := t.TempDir()
	f := filepath.Join(dir, "eval.json")
	if err := os.WriteFile(f, []byte("[]"), 0o644); err != nil {
		t.Fatal(err)
	}
	if result := CheckFileReadable("Manifest", f); !result.Passed {
		t.Fatalf("expected pass, got %s", result.Detail)
	}
	if result := CheckFileReadable("Manifest", dir); result.Passed {
		t.Fatal("expected failure for directory")
	}
	if result := CheckFileReadable("Manifest", filepath.Join(dir, "missing.json")); result.Passed {
		t.Fatal("expected failure for missing file")
	}
}

func TestCheckOutputRoot_NotYetCreated(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audio.2k", "nested")
	result := CheckOutputRoot("Output directory", path)
	if !result.Passed {
		t.Fatalf("expected pass for creatable dir, got: %s", result.Detail)
	}
}

func TestCheckTranscoder(t *testing.T) {
	bin := testsupport.WriteStub(t, t.TempDir(), "ffmpeg", "#!/bin/sh\necho 'ffmpeg version test'\n")
	if result := CheckTranscoder(context.Background(), bin); !result.Passed {
		t.Fatalf("expected pass, got %s", result.Detail)
	}
	result := CheckTranscoder(context.Background(), "clearly-not-present-ffmpeg")
	if result.Passed {
		t.Fatal("expected failure for missing binary")
	}
	if err := Err([]Result{result}); !errors.Is(err, dataset.ErrExternalTool) {
		t.Fatalf("expected ErrExternalTool, got %v", err)
	}
}

func TestRunAll_NilConfig(t *testing.T) {
	if results := RunAll(context.Background(), nil, dataset.ClassSpeech, false); results != nil {
		t.Fatal("expected nil results for nil config")
	}
}

func TestRunAll_Speech(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithStubbedBinaries())
	if err := os.MkdirAll(cfg.Speech.SourceDir, 0o755); err != nil {
		t.Fatal(err)
	}

	results := RunAll(context.Background(), cfg, dataset.ClassSpeech, false)
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	if err := Err(results); err != nil {
		t.Fatalf("unexpected failure: %v", err)
	}

	dry := RunAll(context.Background(), cfg, dataset.ClassSpeech, true)
	if len(dry) != 1 {
		t.Fatalf("expected only the source check for a dry run, got %d", len(dry))
	}
}

func TestRunAll_NotSpeechMissingManifest(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	if err := os.MkdirAll(cfg.NotSpeech.AudioDir, 0o755); err != nil {
		t.Fatal(err)
	}

	results := RunAll(context.Background(), cfg, dataset.ClassNotSpeech, false)
	err := Err(results)
	if !errors.Is(err, dataset.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

package main

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"vadset/internal/dataset"
	"vadset/internal/runlock"
	"vadset/internal/testsupport"
)

func TestSpeechCommandTranscodesAndSkips(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"speech", "--count", "2"}, env.configPath)
	if err != nil {
		t.Fatalf("speech: %v", err)
	}
	requireContains(t, out, "== Speech dataset ==")
	requireContains(t, out, "Created")

	names := listNames(t, env.cfg.SpeechDir())
	if len(names) != 2 {
		t.Fatalf("expected 2 speech files, got %v", names)
	}
	for _, name := range names {
		data, err := os.ReadFile(filepath.Join(env.cfg.SpeechDir(), name))
		if err != nil {
			t.Fatalf("read output: %v", err)
		}
		// The stub ffmpeg writes its argument list into the output file.
		requireContains(t, string(data), "-ar 44100")
	}

	out, _, err = runCLI(t, []string{"--json", "speech", "--count", "2"}, env.configPath)
	if err != nil {
		t.Fatalf("second speech run: %v", err)
	}
	var report reportJSON
	if err := json.Unmarshal([]byte(out), &report); err != nil {
		t.Fatalf("decode report: %v\n%s", err, out)
	}
	if report.Skipped != 2 || report.Created != 0 {
		t.Fatalf("expected 2 skipped on re-run, got created=%d skipped=%d", report.Created, report.Skipped)
	}
	if report.Class != dataset.ClassSpeech || report.RunID == "" {
		t.Fatalf("unexpected report header %+v", report.Report)
	}
}

func TestSpeechCommandFlagsOverrideConfig(t *testing.T) {
	env := setupCLITestEnv(t)
	output := filepath.Join(env.baseDir, "elsewhere")

	out, _, err := runCLI(t, []string{"--json", "speech", "--count", "3", "--seed", "7", "--output", output}, env.configPath)
	if err != nil {
		t.Fatalf("speech: %v", err)
	}
	var report reportJSON
	if err := json.Unmarshal([]byte(out), &report); err != nil {
		t.Fatalf("decode report: %v", err)
	}
	if report.Seed != 7 || report.Requested != 3 {
		t.Fatalf("flags not applied: seed=%d requested=%d", report.Seed, report.Requested)
	}
	if got := len(listNames(t, filepath.Join(output, "speech"))); got != 3 {
		t.Fatalf("expected 3 files under the flag output dir, got %d", got)
	}
}

func TestSpeechCommandFailingTranscoder(t *testing.T) {
	env := setupCLITestEnv(t)
	env.cfg.Transcode.Binary = testsupport.WriteStub(t, filepath.Join(env.baseDir, "failbin"), "ffmpeg", testsupport.StubFails)
	writeTestConfig(t, env.configPath, env.cfg)

	_, _, err := runCLI(t, []string{"speech", "--count", "2"}, env.configPath)
	if !errors.Is(err, dataset.ErrExternalTool) {
		t.Fatalf("expected ErrExternalTool, got %v", err)
	}
	if code := exitCode(err); code != 3 {
		t.Fatalf("expected exit code 3, got %d", code)
	}
	for _, name := range listNames(t, env.cfg.SpeechDir()) {
		t.Fatalf("no output expected after failure, found %s", name)
	}
}

func TestSpeechCommandDryRun(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"speech", "--count", "2", "--dry-run"}, env.configPath)
	if err != nil {
		t.Fatalf("speech dry run: %v", err)
	}
	requireContains(t, out, "dry run")
	if _, err := os.Stat(env.cfg.Paths.OutputDir); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("dry run created the output root: %v", err)
	}
}

func TestSpeechCommandRefusesLockedOutput(t *testing.T) {
	env := setupCLITestEnv(t)
	lock, err := runlock.Acquire(env.cfg.LockPath())
	if err != nil {
		t.Fatalf("acquire lock: %v", err)
	}
	defer lock.Release()

	_, _, err = runCLI(t, []string{"speech", "--count", "1"}, env.configPath)
	if !errors.Is(err, dataset.ErrLocked) {
		t.Fatalf("expected ErrLocked, got %v", err)
	}
	if code := exitCode(err); code != 4 {
		t.Fatalf("expected exit code 4, got %d", code)
	}
}

func TestNotSpeechCommandExcludesVoice(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"--json", "not-speech", "--count", "3"}, env.configPath)
	if err != nil {
		t.Fatalf("not-speech: %v", err)
	}
	var report reportJSON
	if err := json.Unmarshal([]byte(out), &report); err != nil {
		t.Fatalf("decode report: %v", err)
	}
	if report.Excluded != 2 || report.Candidates != 3 || report.Created != 3 {
		t.Fatalf("unexpected report %+v", report)
	}
	names := listNames(t, env.cfg.NotSpeechDir())
	slices.Sort(names)
	if !slices.Equal(names, []string{"1277.wav", "253463.wav", "37199.wav"}) {
		t.Fatalf("unexpected not-speech outputs %v", names)
	}
}

func TestNotSpeechCommandInsufficientCandidates(t *testing.T) {
	env := setupCLITestEnv(t)

	_, _, err := runCLI(t, []string{"not-speech", "--count", "4"}, env.configPath)
	if !errors.Is(err, dataset.ErrInsufficientCandidates) {
		t.Fatalf("expected ErrInsufficientCandidates, got %v", err)
	}
	if code := exitCode(err); code != 1 {
		t.Fatalf("expected exit code 1, got %d", code)
	}
}

func TestNotSpeechCommandMissingManifest(t *testing.T) {
	env := setupCLITestEnv(t)

	_, _, err := runCLI(t, []string{"not-speech", "--manifest", filepath.Join(env.baseDir, "nope.json")}, env.configPath)
	if !errors.Is(err, dataset.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestInvalidCountIsConfigurationError(t *testing.T) {
	env := setupCLITestEnv(t)

	_, _, err := runCLI(t, []string{"speech", "--count", "0"}, env.configPath)
	if !errors.Is(err, dataset.ErrConfiguration) {
		t.Fatalf("expected ErrConfiguration, got %v", err)
	}
	if code := exitCode(err); code != 2 {
		t.Fatalf("expected exit code 2, got %d", code)
	}
}

func TestVerifyCommand(t *testing.T) {
	env := setupCLITestEnv(t)
	dir := env.cfg.SpeechDir()
	testsupport.WriteWAV(t, filepath.Join(dir, "good.wav"), 44100, 1, 100)

	out, _, err := runCLI(t, []string{"verify"}, env.configPath)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	requireContains(t, out, "1 file(s) ok")

	testsupport.WriteWAV(t, filepath.Join(dir, "slow.wav"), 16000, 1, 100)
	out, _, err = runCLI(t, []string{"verify"}, env.configPath)
	if err == nil {
		t.Fatal("expected verify failure")
	}
	requireContains(t, out, "slow.wav")
	requireContains(t, out, "1 of 2 file(s) failed")
}

func TestDoctorCommand(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"doctor"}, env.configPath)
	if err != nil {
		t.Fatalf("doctor: %v\n%s", err, out)
	}
	requireContains(t, out, "FFmpeg:")
	requireContains(t, out, "[OK] Ready")
	requireContains(t, out, "Manifest:")
}

func TestExitCodeForCancel(t *testing.T) {
	if code := exitCode(context.Canceled); code != 1 {
		t.Fatalf("expected 1 for cancel, got %d", code)
	}
	if code := exitCode(nil); code != 0 {
		t.Fatalf("expected 0 for nil, got %d", code)
	}
}

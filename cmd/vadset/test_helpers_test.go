package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"vadset/internal/config"
	"vadset/internal/testsupport"
)

type cliTestEnv struct {
	cfg        *config.Config
	configPath string
	baseDir    string
}

var manifestEntries = []testsupport.ManifestEntry{
	{Fname: "37199", Labels: "Electric_guitar,Guitar,Music"},
	{Fname: "175151", Labels: "Human_voice,Speech"},
	{Fname: "253463", Labels: "Dog,Animal"},
	{Fname: "329838", Labels: "Giggle,Laughter,Human_voice"},
	{Fname: "1277", Labels: "Rain,Water"},
}

// setupCLITestEnv builds a config file pointing at a small speech corpus, a
// five-record manifest with matching audio, and a stub ffmpeg on PATH.
func setupCLITestEnv(t *testing.T, opts ...testsupport.ConfigOption) *cliTestEnv {
	t.Helper()

	opts = append([]testsupport.ConfigOption{testsupport.WithStubbedBinaries()}, opts...)
	cfg := testsupport.NewConfig(t, opts...)
	base := testsupport.BaseDir(cfg)

	homeDir := filepath.Join(base, "home")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", homeDir)

	testsupport.WriteCorpus(t, cfg.Speech.SourceDir,
		"id10270/5r0dWxy17C8/00001.wav",
		"id10270/5r0dWxy17C8/00002.wav",
		"id10271/1gtz-CUIygI/00001.wav",
	)
	testsupport.WriteManifest(t, cfg.NotSpeech.Manifest, manifestEntries)
	for i, e := range manifestEntries {
		testsupport.WriteFile(t, filepath.Join(cfg.NotSpeech.AudioDir, e.Fname+".wav"), int64(200+i))
	}

	configPath := filepath.Join(base, "vadset.toml")
	writeTestConfig(t, configPath, cfg)

	return &cliTestEnv{cfg: cfg, configPath: configPath, baseDir: base}
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeTestConfig(t *testing.T, path string, cfg *config.Config) {
	t.Helper()
	data, err := cfg.Encode()
	if err != nil {
		t.Fatalf("encode config: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func listNames(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir %s: %v", dir, err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}

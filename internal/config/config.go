package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"vadset/internal/dataset"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains output layout and log directory configuration.
type Paths struct {
	OutputDir       string `toml:"output_dir"`
	SpeechSubdir    string `toml:"speech_subdir"`
	NotSpeechSubdir string `toml:"not_speech_subdir"`
	LogDir          string `toml:"log_dir"`
}

// Speech contains configuration for the speech sampler+transcoder.
type Speech struct {
	SourceDir      string `toml:"source_dir"`
	Extension      string `toml:"extension"`
	Count          int    `toml:"count"`
	SampleRate     int    `toml:"sample_rate"`
	NameComponents int    `toml:"name_components"`
	NameSeparator  string `toml:"name_separator"`
}

// NotSpeech contains configuration for the not-speech sampler+copier.
type NotSpeech struct {
	Manifest     string `toml:"manifest"`
	AudioDir     string `toml:"audio_dir"`
	Extension    string `toml:"extension"`
	Count        int    `toml:"count"`
	ExcludeLabel string `toml:"exclude_label"`
}

// Sampling contains the pseudo-random generator settings.
type Sampling struct {
	Seed uint64 `toml:"seed"`
}

// Transcode contains configuration for the external conversion tool.
type Transcode struct {
	Binary         string `toml:"binary"`
	VerifyOutput   bool   `toml:"verify_output"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for vadset.
//
// Configuration sections:
//   - Paths: output root, per-class subdirectories, optional log directory
//   - Speech: speech corpus location, sample size and resampling target
//   - NotSpeech: manifest, audio directory, sample size and exclusion label
//   - Sampling: seed shared by both pipelines
//   - Transcode: ffmpeg binary, post-transcode verification, timeout
//   - Logging: log format and level
type Config struct {
	Paths     Paths     `toml:"paths"`
	Speech    Speech    `toml:"speech"`
	NotSpeech NotSpeech `toml:"not_speech"`
	Sampling  Sampling  `toml:"sampling"`
	Transcode Transcode `toml:"transcode"`
	Logging   Logging   `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/vadset/config.toml")
}

// Load locates, parses, and validates a configuration file. Environment
// overrides are applied after the file. The returned config has all path
// fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("%w: parse config %s: %w", dataset.ErrConfiguration, resolvedPath, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Finalize(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

// Finalize normalizes and validates the config. Callers that modify a loaded
// config (for example from command-line flags) call it again afterwards.
func (c *Config) Finalize() error {
	if err := c.normalize(); err != nil {
		return err
	}
	return c.Validate()
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("vadset.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// SpeechDir returns the destination directory for speech artifacts.
func (c *Config) SpeechDir() string {
	return filepath.Join(c.Paths.OutputDir, c.Paths.SpeechSubdir)
}

// NotSpeechDir returns the destination directory for not-speech artifacts.
func (c *Config) NotSpeechDir() string {
	return filepath.Join(c.Paths.OutputDir, c.Paths.NotSpeechSubdir)
}

// LockPath returns the advisory lock file guarding the output root.
func (c *Config) LockPath() string {
	return filepath.Join(c.Paths.OutputDir, ".vadset.lock")
}

// LogFile returns the log file path, or "" when file logging is disabled.
func (c *Config) LogFile() string {
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		return ""
	}
	return filepath.Join(c.Paths.LogDir, "vadset.log")
}

// EnsureOutputDirectories creates the output root and the given class
// subdirectory.
func (c *Config) EnsureOutputDirectories(classDir string) error {
	for _, dir := range []string{c.Paths.OutputDir, classDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// Encode renders the config as TOML.
func (c *Config) Encode() ([]byte, error) {
	return toml.Marshal(c)
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"vadset/internal/dataset"
)

// Validate ensures the configuration is usable. Returned errors carry the
// dataset.ErrConfiguration marker.
func (c *Config) Validate() error {
	for _, check := range []func() error{
		c.validatePaths,
		c.validateSpeech,
		c.validateNotSpeech,
		c.validateTranscode,
		c.validateLogging,
	} {
		if err := check(); err != nil {
			return fmt.Errorf("%w: %w", dataset.ErrConfiguration, err)
		}
	}
	return nil
}

func (c *Config) validatePaths() error {
	for key, sub := range map[string]string{
		"paths.speech_subdir":     c.Paths.SpeechSubdir,
		"paths.not_speech_subdir": c.Paths.NotSpeechSubdir,
	} {
		if sub == "" || sub == "." || filepath.IsAbs(sub) || strings.Contains(sub, "..") || strings.ContainsAny(sub, `/\`) {
			return fmt.Errorf("%s must be a plain directory name inside paths.output_dir", key)
		}
	}
	if filepath.Clean(c.Paths.SpeechSubdir) == filepath.Clean(c.Paths.NotSpeechSubdir) {
		return errors.New("paths.speech_subdir and paths.not_speech_subdir must differ")
	}
	return nil
}

func (c *Config) validateSpeech() error {
	if err := ensurePositiveMap(map[string]int{
		"speech.count":           c.Speech.Count,
		"speech.sample_rate":     c.Speech.SampleRate,
		"speech.name_components": c.Speech.NameComponents,
	}); err != nil {
		return err
	}
	if c.Speech.SourceDir == "" {
		return errors.New("speech.source_dir must be set")
	}
	if strings.ContainsAny(c.Speech.NameSeparator, `/\`) {
		return errors.New("speech.name_separator must not contain path separators")
	}
	return nil
}

func (c *Config) validateNotSpeech() error {
	if c.NotSpeech.Count <= 0 {
		return errors.New("not_speech.count must be positive")
	}
	if c.NotSpeech.Manifest == "" {
		return errors.New("not_speech.manifest must be set")
	}
	if c.NotSpeech.AudioDir == "" {
		return errors.New("not_speech.audio_dir must be set")
	}
	if c.NotSpeech.ExcludeLabel == "" {
		return errors.New("not_speech.exclude_label must be set")
	}
	if strings.Contains(c.NotSpeech.ExcludeLabel, ",") {
		return errors.New("not_speech.exclude_label must be a single label without commas")
	}
	return nil
}

func (c *Config) validateTranscode() error {
	if c.Transcode.TimeoutSeconds < 0 {
		return errors.New("transcode.timeout_seconds must not be negative")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}

func ensurePositiveMap(values map[string]int) error {
	for key, value := range values {
		if value <= 0 {
			return fmt.Errorf("%s must be positive", key)
		}
	}
	return nil
}

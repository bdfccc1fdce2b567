package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	if err := c.normalizeSpeech(); err != nil {
		return err
	}
	if err := c.normalizeNotSpeech(); err != nil {
		return err
	}
	c.normalizeTranscode()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.OutputDir) == "" {
		c.Paths.OutputDir = defaultOutputDir
	}
	if c.Paths.OutputDir, err = expandPath(strings.TrimSpace(c.Paths.OutputDir)); err != nil {
		return fmt.Errorf("paths.output_dir: %w", err)
	}
	c.Paths.SpeechSubdir = strings.TrimSpace(c.Paths.SpeechSubdir)
	if c.Paths.SpeechSubdir == "" {
		c.Paths.SpeechSubdir = defaultSpeechSubdir
	}
	c.Paths.NotSpeechSubdir = strings.TrimSpace(c.Paths.NotSpeechSubdir)
	if c.Paths.NotSpeechSubdir == "" {
		c.Paths.NotSpeechSubdir = defaultNotSpeechSubdir
	}
	if c.Paths.LogDir, err = expandPath(strings.TrimSpace(c.Paths.LogDir)); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeSpeech() error {
	var err error
	if c.Speech.SourceDir, err = expandPath(strings.TrimSpace(c.Speech.SourceDir)); err != nil {
		return fmt.Errorf("speech.source_dir: %w", err)
	}
	c.Speech.Extension = normalizeExtension(c.Speech.Extension)
	return nil
}

func (c *Config) normalizeNotSpeech() error {
	var err error
	if c.NotSpeech.Manifest, err = expandPath(strings.TrimSpace(c.NotSpeech.Manifest)); err != nil {
		return fmt.Errorf("not_speech.manifest: %w", err)
	}
	if c.NotSpeech.AudioDir, err = expandPath(strings.TrimSpace(c.NotSpeech.AudioDir)); err != nil {
		return fmt.Errorf("not_speech.audio_dir: %w", err)
	}
	c.NotSpeech.Extension = normalizeExtension(c.NotSpeech.Extension)
	c.NotSpeech.ExcludeLabel = strings.TrimSpace(c.NotSpeech.ExcludeLabel)
	return nil
}

func (c *Config) normalizeTranscode() {
	c.Transcode.Binary = strings.TrimSpace(c.Transcode.Binary)
	if c.Transcode.Binary == "" {
		c.Transcode.Binary = defaultTranscodeBinary
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}

func normalizeExtension(ext string) string {
	ext = strings.TrimSpace(ext)
	if ext == "" {
		return defaultAudioExtension
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}

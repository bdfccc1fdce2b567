package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"

	"vadset/internal/dataset"
)

// envOverrides lists the settings that can be supplied as VADSET_* variables.
// Nil fields were not set in the environment.
type envOverrides struct {
	OutputDir      *string `envconfig:"OUTPUT_DIR"`
	SpeechSource   *string `envconfig:"SPEECH_SOURCE_DIR"`
	SpeechCount    *int    `envconfig:"SPEECH_COUNT"`
	Manifest       *string `envconfig:"NOT_SPEECH_MANIFEST"`
	AudioDir       *string `envconfig:"NOT_SPEECH_AUDIO_DIR"`
	NotSpeechCount *int    `envconfig:"NOT_SPEECH_COUNT"`
	Seed           *uint64 `envconfig:"SEED"`
	FFmpeg         *string `envconfig:"FFMPEG"`
	LogLevel       *string `envconfig:"LOG_LEVEL"`
	LogFormat      *string `envconfig:"LOG_FORMAT"`
}

const envPrefix = "vadset"

func (c *Config) applyEnv() error {
	var env envOverrides
	if err := envconfig.Process(envPrefix, &env); err != nil {
		return fmt.Errorf("%w: environment overrides: %w", dataset.ErrConfiguration, err)
	}
	setString(&c.Paths.OutputDir, env.OutputDir)
	setString(&c.Speech.SourceDir, env.SpeechSource)
	setInt(&c.Speech.Count, env.SpeechCount)
	setString(&c.NotSpeech.Manifest, env.Manifest)
	setString(&c.NotSpeech.AudioDir, env.AudioDir)
	setInt(&c.NotSpeech.Count, env.NotSpeechCount)
	if env.Seed != nil {
		c.Sampling.Seed = *env.Seed
	}
	setString(&c.Transcode.Binary, env.FFmpeg)
	setString(&c.Logging.Level, env.LogLevel)
	setString(&c.Logging.Format, env.LogFormat)
	return nil
}

func setString(dst *string, v *string) {
	if v != nil && *v != "" {
		*dst = *v
	}
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

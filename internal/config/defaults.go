package config

const (
	defaultOutputDir         = "audio.2k"
	defaultSpeechSubdir      = "speech"
	defaultNotSpeechSubdir   = "not-speech"
	defaultSpeechSourceDir   = "vox1_test_wav"
	defaultAudioExtension    = ".wav"
	defaultSpeechCount       = 1000
	defaultSampleRate        = 44100
	defaultNameComponents    = 3
	defaultNameSeparator     = "-"
	defaultManifestPath      = "fsd50k/FSD50K.ground_truth/eval.json"
	defaultNotSpeechAudioDir = "fsd50k/FSD50K.eval_audio"
	defaultNotSpeechCount    = 1000
	defaultExcludeLabel      = "Human_voice"
	defaultSeed              = 42
	defaultTranscodeBinary   = "ffmpeg"
	defaultLogFormat         = "console"
	defaultLogLevel          = "info"
)

// Default returns a Config populated with repository defaults. The values
// reproduce the original 2k-file dataset build.
func Default() Config {
	return Config{
		Paths: Paths{
			OutputDir:       defaultOutputDir,
			SpeechSubdir:    defaultSpeechSubdir,
			NotSpeechSubdir: defaultNotSpeechSubdir,
		},
		Speech: Speech{
			SourceDir:      defaultSpeechSourceDir,
			Extension:      defaultAudioExtension,
			Count:          defaultSpeechCount,
			SampleRate:     defaultSampleRate,
			NameComponents: defaultNameComponents,
			NameSeparator:  defaultNameSeparator,
		},
		NotSpeech: NotSpeech{
			Manifest:     defaultManifestPath,
			AudioDir:     defaultNotSpeechAudioDir,
			Extension:    defaultAudioExtension,
			Count:        defaultNotSpeechCount,
			ExcludeLabel: defaultExcludeLabel,
		},
		Sampling: Sampling{
			Seed: defaultSeed,
		},
		Transcode: Transcode{
			Binary: defaultTranscodeBinary,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}

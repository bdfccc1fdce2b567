package testsupport

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// ManifestEntry mirrors one record of an FSD50K-style ground-truth manifest.
type ManifestEntry struct {
	Fname  string `json:"fname"`
	Labels string `json:"labels"`
	Mids   string `json:"mids,omitempty"`
}

// WriteManifest encodes entries as a JSON array at path.
func WriteManifest(t testing.TB, path string, entries []ManifestEntry) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		t.Fatalf("marshal manifest: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
}

// WriteCorpus creates one small file per relative path under root and returns
// the absolute paths in the order given.
func WriteCorpus(t testing.TB, root string, relPaths ...string) []string {
	t.Helper()

	out := make([]string, 0, len(relPaths))
	for i, rel := range relPaths {
		path := filepath.Join(root, filepath.FromSlash(rel))
		WriteFile(t, path, int64(64+i))
		out = append(out, path)
	}
	return out
}

// WriteWAV writes a 16-bit PCM WAV file with the given sample rate, channel
// count and number of frames of silence.
func WriteWAV(t testing.TB, path string, sampleRate, channels, frames int) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()

	enc := wav.NewEncoder(f, sampleRate, 16, channels, 1)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: channels, SampleRate: sampleRate},
		Data:           make([]int, frames*channels),
		SourceBitDepth: 16,
	}
	if err := enc.Write(buf); err != nil {
		t.Fatalf("encode wav %s: %v", path, err)
	}
	if err := enc.Close(); err != nil {
		t.Fatalf("close wav encoder %s: %v", path, err)
	}
}

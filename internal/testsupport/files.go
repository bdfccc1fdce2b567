package testsupport

import (
	"os"
	"path/filepath"
	"testing"
)

const (
	// StubWritesOutput mimics a successful ffmpeg run: the argument list is
	// written to the final argument. "-version" prints a version line.
	StubWritesOutput = "#!/bin/sh\nif [ \"$1\" = \"-version\" ]; then echo \"ffmpeg version stub\"; exit 0; fi\nfor last; do :; done\necho \"$@\" > \"$last\"\nexit 0\n"
	// StubFails mimics ffmpeg rejecting its input.
	StubFails = "#!/bin/sh\necho \"Invalid data found when processing input\" >&2\nexit 1\n"
)

// WriteFile fills the target path with the requested number of bytes using a
// simple repeating pattern. A size <= 0 writes a single byte.
func WriteFile(t testing.TB, path string, size int64) {
	t.Helper()

	if size <= 0 {
		size = 1
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()

	const chunkSize = 32 * 1024
	buf := make([]byte, chunkSize)
	for i := range buf {
		buf[i] = 0x42
	}

	remaining := size
	for remaining > 0 {
		toWrite := min(int64(chunkSize), remaining)
		if _, err := f.Write(buf[:toWrite]); err != nil {
			t.Fatalf("write %s: %v", path, err)
		}
		remaining -= toWrite
	}
}

// WriteStub writes an executable shell script named name into dir and returns
// its path.
func WriteStub(t testing.TB, dir, name, script string) string {
	t.Helper()

	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir bin dir: %v", err)
	}
	target := filepath.Join(dir, name)
	if err := os.WriteFile(target, []byte(script), 0o755); err != nil {
		t.Fatalf("write stub %s: %v", name, err)
	}
	return target
}

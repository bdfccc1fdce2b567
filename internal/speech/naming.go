package speech

import (
	"errors"
	"path/filepath"
	"strings"
)

// DestinationName flattens the trailing components of a source path into a
// single file name, e.g. with n=3 and sep="-":
//
//	vox1_test_wav/id10270/5r0dWxy17C8/00001.wav -> id10270-5r0dWxy17C8-00001.wav
//
// The speaker and video directories keep names unique across the corpus.
// Paths with fewer than n components use all of them.
func DestinationName(path string, n int, sep string) (string, error) {
	if n <= 0 {
		return "", errors.New("destination name: component count must be positive")
	}
	parts := pathComponents(path)
	if len(parts) == 0 {
		return "", errors.New("destination name: empty path")
	}
	if len(parts) > n {
		parts = parts[len(parts)-n:]
	}
	return strings.Join(parts, sep), nil
}

func pathComponents(path string) []string {
	slashed := filepath.ToSlash(filepath.Clean(path))
	raw := strings.Split(slashed, "/")
	parts := raw[:0]
	for _, p := range raw {
		if p == "" || p == "." {
			continue
		}
		parts = append(parts, p)
	}
	return parts
}

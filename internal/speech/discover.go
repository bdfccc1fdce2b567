package speech

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"vadset/internal/dataset"
)

// Discover returns every file under root whose name ends in ext, at any depth.
// Paths are returned in lexical walk order so the candidate list, and hence
// the sample drawn from it, does not depend on directory enumeration order.
func Discover(root, ext string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, dataset.Wrap(dataset.ErrNotFound, "speech", "discover", "source directory "+root, err)
	}
	if !info.IsDir() {
		return nil, dataset.Wrap(dataset.ErrNotFound, "speech", "discover", fmt.Sprintf("source %s is not a directory", root), nil)
	}

	var paths []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if strings.HasSuffix(d.Name(), ext) && len(d.Name()) > len(ext) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}
	return paths, nil
}

package fileutil

import (
	"bytes"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// ErrDestinationExists is returned when publishing would replace an existing file.
var ErrDestinationExists = errors.New("destination already exists")

// Exists reports whether anything is present at path. Errors other than
// "does not exist" are returned so callers do not mistake an unreadable
// directory for a missing file.
func Exists(path string) (bool, error) {
	_, err := os.Lstat(path)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	default:
		return false, err
	}
}

// PartialPath returns a hidden sibling of dst used while the artifact is being
// written. The original extension is kept so tools that infer the container
// from the file name still work.
func PartialPath(dst string) string {
	dir, base := filepath.Split(dst)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	id := strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	return filepath.Join(dir, "."+stem+".partial-"+id+ext)
}

// IsPartial reports whether name looks like a PartialPath leftover.
func IsPartial(name string) bool {
	base := filepath.Base(name)
	return strings.HasPrefix(base, ".") && strings.Contains(base, ".partial-")
}

// Publish moves a finished partial file into its final location. It refuses to
// replace an existing destination; the partial file is removed in that case.
func Publish(partial, dst string) error {
	exists, err := Exists(dst)
	if err != nil {
		_ = os.Remove(partial)
		return fmt.Errorf("stat destination: %w", err)
	}
	if exists {
		_ = os.Remove(partial)
		return fmt.Errorf("%w: %s", ErrDestinationExists, dst)
	}
	if err := os.Rename(partial, dst); err != nil {
		_ = os.Remove(partial)
		return fmt.Errorf("publish %s: %w", dst, err)
	}
	return nil
}

// CopyVerified copies src to dst with SHA256 + size integrity verification and
// returns the number of bytes written. The data is staged in a partial file and
// only renamed into place once verified, so dst is either absent or complete.
func CopyVerified(src, dst string) (int64, error) {
	srcInfo, err := os.Stat(src)
	if err != nil {
		return 0, fmt.Errorf("stat source: %w", err)
	}
	if !srcInfo.Mode().IsRegular() {
		return 0, fmt.Errorf("source %s is not a regular file", src)
	}

	partial := PartialPath(dst)
	written, err := copyHashed(src, partial, srcInfo.Size())
	if err != nil {
		_ = os.Remove(partial)
		return 0, err
	}
	if err := Publish(partial, dst); err != nil {
		return 0, err
	}
	return written, nil
}

func copyHashed(src, dst string, srcSize int64) (int64, error) {
	in, err := os.Open(src)
	if err != nil {
		return 0, err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return 0, err
	}
	defer func() {
		_ = out.Close()
	}()

	srcHasher := sha256.New()
	dstHasher := sha256.New()
	tee := io.TeeReader(in, srcHasher)
	multi := io.MultiWriter(out, dstHasher)

	written, err := io.Copy(multi, tee)
	if err != nil {
		return 0, err
	}
	if err := out.Close(); err != nil {
		return 0, err
	}

	if written != srcSize {
		return 0, fmt.Errorf("copy size mismatch: source %d bytes, copied %d bytes", srcSize, written)
	}
	if !bytes.Equal(srcHasher.Sum(nil), dstHasher.Sum(nil)) {
		return 0, errors.New("copy hash mismatch: file corrupted during copy")
	}
	return written, nil
}

// Size returns the size of the file at path, or 0 when it cannot be read.
func Size(path string) int64 {
	info, err := os.Stat(path)
	if err != nil {
		return 0
	}
	return info.Size()
}

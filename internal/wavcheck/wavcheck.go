// Package wavcheck inspects WAV headers to confirm transcoded output has the
// expected sample rate.
package wavcheck

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/go-audio/wav"

	"vadset/internal/fileutil"
)

var (
	// ErrInvalidWAV marks files that are not readable RIFF/WAVE audio.
	ErrInvalidWAV = errors.New("invalid wav file")
	// ErrSampleRate marks files whose sample rate differs from the target.
	ErrSampleRate = errors.New("unexpected sample rate")
)

// Info describes a WAV file's format.
type Info struct {
	Path       string        `json:"path"`
	SampleRate int           `json:"sample_rate"`
	Channels   int           `json:"channels"`
	BitDepth   int           `json:"bit_depth"`
	Duration   time.Duration `json:"duration"`
}

// Inspect reads the format header of the WAV file at path.
func Inspect(path string) (Info, error) {
	f, err := os.Open(path)
	if err != nil {
		return Info{}, err
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return Info{}, fmt.Errorf("%w: %s", ErrInvalidWAV, path)
	}
	info := Info{
		Path:       path,
		SampleRate: int(dec.SampleRate),
		Channels:   int(dec.NumChans),
		BitDepth:   int(dec.BitDepth),
	}
	if err := dec.FwdToPCM(); err != nil {
		return Info{}, fmt.Errorf("%w: %s: %v", ErrInvalidWAV, path, err)
	}
	bytesPerSecond := int64(info.SampleRate) * int64(info.Channels) * int64(info.BitDepth/8)
	if bytesPerSecond > 0 {
		info.Duration = time.Duration(dec.PCMLen() * int64(time.Second) / bytesPerSecond)
	}
	return info, nil
}

// CheckSampleRate fails unless path is a valid WAV at want Hz.
func CheckSampleRate(path string, want int) error {
	info, err := Inspect(path)
	if err != nil {
		return err
	}
	if info.SampleRate != want {
		return fmt.Errorf("%w: %s is %d Hz, want %d Hz", ErrSampleRate, filepath.Base(path), info.SampleRate, want)
	}
	return nil
}

// Result is the outcome of checking one file.
type Result struct {
	Info
	Err error `json:"-"`
}

// OK reports whether the file passed.
func (r Result) OK() bool { return r.Err == nil }

// VerifyDir checks every file in dir with extension ext. Hidden partial files
// are ignored. Per-file failures are reported in the results; the returned
// error is only for an unreadable directory.
func VerifyDir(dir, ext string, want int) ([]Result, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || fileutil.IsPartial(e.Name()) {
			continue
		}
		if !strings.EqualFold(filepath.Ext(e.Name()), ext) {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	results := make([]Result, 0, len(names))
	for _, name := range names {
		path := filepath.Join(dir, name)
		info, err := Inspect(path)
		if err == nil && info.SampleRate != want {
			err = fmt.Errorf("%w: %d Hz, want %d Hz", ErrSampleRate, info.SampleRate, want)
		}
		info.Path = path
		results = append(results, Result{Info: info, Err: err})
	}
	return results, nil
}

package notspeech

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"vadset/internal/dataset"
)

// Record is one entry of a ground-truth manifest.
type Record struct {
	Fname  string `json:"fname"`
	Labels string `json:"labels"`
}

// UnmarshalJSON accepts fname as either a string or a bare number; FSD50K
// exports use numeric clip ids.
func (r *Record) UnmarshalJSON(data []byte) error {
	var raw struct {
		Fname  json.RawMessage `json:"fname"`
		Labels string          `json:"labels"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	r.Labels = raw.Labels
	r.Fname = ""
	trimmed := bytes.TrimSpace(raw.Fname)
	if len(trimmed) == 0 || string(trimmed) == "null" {
		return nil
	}
	if trimmed[0] == '"' {
		return json.Unmarshal(trimmed, &r.Fname)
	}
	var num json.Number
	if err := json.Unmarshal(trimmed, &num); err != nil {
		return fmt.Errorf("fname: %w", err)
	}
	if _, err := strconv.ParseInt(num.String(), 10, 64); err != nil {
		return fmt.Errorf("fname %s is not an integer id", num)
	}
	r.Fname = num.String()
	return nil
}

// LabelList splits the comma-separated label field.
func (r Record) LabelList() []string {
	if strings.TrimSpace(r.Labels) == "" {
		return nil
	}
	parts := strings.Split(r.Labels, ",")
	labels := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			labels = append(labels, p)
		}
	}
	return labels
}

// HasLabel reports whether label is one of the record's labels. Matching is
// exact per label, so "Human_voice" does not match "Human_voice_group".
func (r Record) HasLabel(label string) bool {
	for _, l := range r.LabelList() {
		if l == label {
			return true
		}
	}
	return false
}

// LoadManifest reads a JSON array of records. Every record must carry an
// identifier that names a file directly inside the audio directory.
func LoadManifest(path string) ([]Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, dataset.Wrap(dataset.ErrNotFound, "not-speech", "load manifest", path, err)
		}
		return nil, dataset.Wrap(dataset.ErrManifest, "not-speech", "load manifest", path, err)
	}
	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, dataset.Wrap(dataset.ErrManifest, "not-speech", "decode manifest", path, err)
	}
	for i, rec := range records {
		if strings.TrimSpace(rec.Fname) == "" {
			return nil, dataset.Wrap(dataset.ErrManifest, "not-speech", "decode manifest", fmt.Sprintf("%s: record %d has no fname", path, i), nil)
		}
		if strings.ContainsAny(rec.Fname, `/\`) || rec.Fname == "." || rec.Fname == ".." {
			return nil, dataset.Wrap(dataset.ErrManifest, "not-speech", "decode manifest", fmt.Sprintf("%s: record %d fname %q is not a plain file id", path, i, rec.Fname), nil)
		}
	}
	return records, nil
}

// Exclude drops every record carrying label and reports how many were dropped.
// The relative order of kept records is preserved.
func Exclude(records []Record, label string) ([]Record, int) {
	kept := make([]Record, 0, len(records))
	for _, rec := range records {
		if rec.HasLabel(label) {
			continue
		}
		kept = append(kept, rec)
	}
	return kept, len(records) - len(kept)
}

// SourcePath maps a record identifier to its audio file.
func SourcePath(audioDir, fname, ext string) string {
	return filepath.Join(audioDir, fname+ext)
}

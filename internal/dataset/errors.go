package dataset

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrExternalTool           = errors.New("external tool error")
	ErrNotFound               = errors.New("not found")
	ErrInsufficientCandidates = errors.New("insufficient candidates")
	ErrConfiguration          = errors.New("configuration error")
	ErrManifest               = errors.New("manifest error")
	ErrLocked                 = errors.New("output directory locked")
)

// Wrap builds an error message that includes stage context while tagging it with
// the provided marker for later classification. The marker should be one of the
// exported sentinel errors above.
func Wrap(marker error, stage, operation, message string, err error) error {
	detail := buildDetail(stage, operation, message)
	if marker == nil {
		return wrapUnmarked(detail, err)
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

func wrapUnmarked(detail string, err error) error {
	if err != nil {
		return fmt.Errorf("%s: %w", detail, err)
	}
	return errors.New(detail)
}

// ExitCode maps a run error to a process exit status. Every failure stops the
// run; the code only tells scripts which kind of failure it was.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, ErrConfiguration):
		return 2
	case errors.Is(err, ErrExternalTool):
		return 3
	case errors.Is(err, ErrLocked):
		return 4
	default:
		return 1
	}
}

func buildDetail(stage, operation, message string) string {
	parts := make([]string, 0, 3)
	if stage = strings.TrimSpace(stage); stage != "" {
		parts = append(parts, stage)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "dataset failure"
	}
	return strings.Join(parts, ": ")
}

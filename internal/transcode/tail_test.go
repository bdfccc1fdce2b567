package transcode

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestTailKeepsShortInput(t *testing.T) {
	if got := tail("  short error \n", 64); got != "short error" {
		t.Fatalf("unexpected tail %q", got)
	}
}

func TestTailCutsOnRuneBoundary(t *testing.T) {
	for _, prefix := range []string{"", "x", "xy"} {
		s := prefix + strings.Repeat("é", 1500) + "end"
		got := tail(s, stderrTailBytes)
		if !utf8.ValidString(got) {
			t.Fatalf("prefix %q: tail is not valid UTF-8", prefix)
		}
		if !strings.HasPrefix(got, "...") || !strings.HasSuffix(got, "end") {
			t.Fatalf("prefix %q: unexpected tail shape %q", prefix, got[:16])
		}
		if n := len(got) - len("..."); n > stderrTailBytes {
			t.Fatalf("prefix %q: tail kept %d bytes, limit %d", prefix, n, stderrTailBytes)
		}
	}
}

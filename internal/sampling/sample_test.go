package sampling

import (
	"errors"
	"fmt"
	"slices"
	"testing"

	"vadset/internal/dataset"
)

func candidates(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("item-%03d", i)
	}
	return out
}

func TestSampleIsDeterministicForSeed(t *testing.T) {
	items := candidates(50)
	first, err := Sample(items, 10, DefaultSeed)
	if err != nil {
		t.Fatalf("Sample: %v", err)
	}
	for i := 0; i < 5; i++ {
		again, err := Sample(items, 10, DefaultSeed)
		if err != nil {
			t.Fatalf("Sample: %v", err)
		}
		if !slices.Equal(first, again) {
			t.Fatalf("run %d differs: %v vs %v", i, first, again)
		}
	}
}

// The selection for a fixed seed is part of the dataset's identity: changing
// the generator or the draw loop changes which files are picked.
func TestSampleDefaultSeedSelection(t *testing.T) {
	got, err := Sample(candidates(50), 5, DefaultSeed)
	if err != nil {
		t.Fatalf("Sample: %v", err)
	}
	want := []string{"item-030", "item-019", "item-032", "item-027", "item-048"}
	if !slices.Equal(got, want) {
		t.Fatalf("seed %d selection changed:\n got %v\nwant %v", DefaultSeed, got, want)
	}
}

func TestSampleWithoutReplacement(t *testing.T) {
	items := candidates(20)
	for seed := uint64(0); seed < 25; seed++ {
		got, err := Sample(items, 20, seed)
		if err != nil {
			t.Fatalf("seed %d: %v", seed, err)
		}
		seen := make(map[string]struct{}, len(got))
		for _, v := range got {
			if _, dup := seen[v]; dup {
				t.Fatalf("seed %d: duplicate %q in %v", seed, v, got)
			}
			seen[v] = struct{}{}
		}
		if len(seen) != len(items) {
			t.Fatalf("seed %d: expected full permutation, got %d unique", seed, len(seen))
		}
	}
}

func TestSampleSeedsDiffer(t *testing.T) {
	items := candidates(100)
	a, _ := Sample(items, 10, 1)
	b, _ := Sample(items, 10, 2)
	if slices.Equal(a, b) {
		t.Fatalf("expected different seeds to produce different samples: %v", a)
	}
}

func TestSampleDoesNotModifyInput(t *testing.T) {
	items := candidates(10)
	orig := slices.Clone(items)
	if _, err := Sample(items, 5, DefaultSeed); err != nil {
		t.Fatalf("Sample: %v", err)
	}
	if !slices.Equal(items, orig) {
		t.Fatalf("input modified: %v", items)
	}
}

func TestSampleUndersizedPoolFails(t *testing.T) {
	_, err := Sample(candidates(3), 4, DefaultSeed)
	if !errors.Is(err, dataset.ErrInsufficientCandidates) {
		t.Fatalf("expected ErrInsufficientCandidates, got %v", err)
	}
}

func TestSampleEdgeCounts(t *testing.T) {
	got, err := Sample(candidates(3), 0, DefaultSeed)
	if err != nil || len(got) != 0 {
		t.Fatalf("expected empty sample, got %v (%v)", got, err)
	}
	got, err = Sample([]string(nil), 0, DefaultSeed)
	if err != nil || len(got) != 0 {
		t.Fatalf("expected empty sample from nil, got %v (%v)", got, err)
	}
	if _, err := Sample(candidates(3), -1, DefaultSeed); !errors.Is(err, ErrInvalidCount) {
		t.Fatalf("expected ErrInvalidCount, got %v", err)
	}
}

func TestSampleResultCannotGrowIntoPool(t *testing.T) {
	got, err := Sample(candidates(10), 3, DefaultSeed)
	if err != nil {
		t.Fatalf("Sample: %v", err)
	}
	if cap(got) != 3 {
		t.Fatalf("expected capped slice, cap=%d", cap(got))
	}
}

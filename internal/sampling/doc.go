// Package sampling draws reproducible subsets from candidate lists.
//
// Sample picks n distinct elements without replacement using a PCG generator
// seeded from the caller-supplied seed, so the same candidate list and seed
// always yield the same subset in the same order. Requests larger than the
// pool fail with ErrInsufficientCandidates instead of truncating.
package sampling

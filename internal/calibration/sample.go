// Package calibration implements the scored quiz that assigns an archetype
// and a starting skill: randomized question sampling, a reversible score
// ledger, and the session engine that drives one quiz from first answer to
// finalized result.
package calibration

import (
	crand "crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"math/rand"

	"github.com/kestrelgames/onboarding-core-go/internal/catalog"
)

// ErrInsufficientPool indicates a sample size larger than the master pool.
// This is a configuration error: pools are authored to always cover the
// configured sample size, so hitting this at runtime is fatal.
var ErrInsufficientPool = errors.New("sample size exceeds question pool")

// ErrInvalidSampleSize indicates a non-positive sample size.
var ErrInvalidSampleSize = errors.New("sample size must be positive")

// NewSeed generates a high-entropy seed from crypto/rand for the session
// PRNG. Sessions themselves are deterministic with respect to the seed.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	return int64(binary.LittleEndian.Uint64(b[:])), nil
}

// Sample returns n distinct questions drawn from pool by uniformly shuffling
// a copy of the pool and taking its prefix. The pool itself is never mutated.
// Identical seeds yield identical samples.
func Sample(pool []catalog.Question, n int, seed int64) ([]catalog.Question, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSampleSize, n)
	}
	if n > len(pool) {
		return nil, fmt.Errorf("%w: want %d of %d", ErrInsufficientPool, n, len(pool))
	}
	shuffled := make([]catalog.Question, len(pool))
	copy(shuffled, pool)
	rng := rand.New(rand.NewSource(seed))
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	return shuffled[:n], nil
}

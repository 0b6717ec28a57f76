package calibration

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kestrelgames/onboarding-core-go/internal/catalog"
)

func testPool(n int) []catalog.Question {
	pool := make([]catalog.Question, n)
	for i := range pool {
		pool[i] = catalog.Question{
			ID:     string(rune('a' + i)),
			Prompt: "prompt",
			Options: []catalog.Option{
				{Label: "one", Category: catalog.ArchetypeCipher},
				{Label: "two", Category: catalog.ArchetypeSpecter},
				{Label: "three", Category: catalog.ArchetypeOracle},
			},
		}
	}
	return pool
}

// TestSampleReturnsExactlyN verifies the sampling bound for every valid n.
func TestSampleReturnsExactlyN(t *testing.T) {
	pool := testPool(10)
	for n := 1; n <= len(pool); n++ {
		got, err := Sample(pool, n, 42)
		require.NoError(t, err, "n=%d", n)
		require.Len(t, got, n)

		seen := make(map[string]bool, n)
		inPool := make(map[string]bool, len(pool))
		for _, q := range pool {
			inPool[q.ID] = true
		}
		for _, q := range got {
			assert.False(t, seen[q.ID], "duplicate question %s for n=%d", q.ID, n)
			assert.True(t, inPool[q.ID], "question %s not from pool", q.ID)
			seen[q.ID] = true
		}
	}
}

// TestSampleDeterministicBySeed verifies identical seeds yield identical samples.
func TestSampleDeterministicBySeed(t *testing.T) {
	pool := testPool(10)
	a, err := Sample(pool, 6, 7)
	require.NoError(t, err)
	b, err := Sample(pool, 6, 7)
	require.NoError(t, err)
	require.Equal(t, a, b)

	c, err := Sample(pool, 6, 8)
	require.NoError(t, err)
	assert.NotEqual(t, a, c, "different seeds should shuffle differently")
}

// TestSampleRejectsOversizedN verifies the InsufficientPoolSize failure mode.
func TestSampleRejectsOversizedN(t *testing.T) {
	pool := testPool(3)
	_, err := Sample(pool, 4, 1)
	require.ErrorIs(t, err, ErrInsufficientPool)
}

// TestSampleRejectsNonPositiveN verifies zero and negative sizes fail.
func TestSampleRejectsNonPositiveN(t *testing.T) {
	pool := testPool(3)
	for _, n := range []int{0, -1} {
		_, err := Sample(pool, n, 1)
		require.ErrorIs(t, err, ErrInvalidSampleSize, "n=%d", n)
	}
}

// TestSampleLeavesPoolUntouched verifies the master pool is never reordered.
func TestSampleLeavesPoolUntouched(t *testing.T) {
	pool := testPool(10)
	before := make([]string, len(pool))
	for i, q := range pool {
		before[i] = q.ID
	}
	_, err := Sample(pool, 10, 99)
	require.NoError(t, err)
	for i, q := range pool {
		assert.Equal(t, before[i], q.ID)
	}
}

package calibration

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kestrelgames/onboarding-core-go/internal/catalog"
)

// TestLedgerRecordUndoInverse verifies the record/undo inverse law: undoing
// every record restores the all-zero ledger.
func TestLedgerRecordUndoInverse(t *testing.T) {
	l := NewLedger()
	seq := []catalog.Category{
		catalog.ArchetypeCipher,
		catalog.ArchetypeSpecter,
		catalog.ArchetypeCipher,
		catalog.ArchetypeOracle,
		catalog.ArchetypeSpecter,
	}
	for _, c := range seq {
		l.Record(c)
	}
	require.Equal(t, len(seq), l.Len())
	require.Equal(t, 2, l.Count(catalog.ArchetypeCipher))

	for i := len(seq) - 1; i >= 0; i-- {
		c, err := l.UndoLast()
		require.NoError(t, err)
		assert.Equal(t, seq[i], c, "undo must pop in reverse order")
	}
	assert.Zero(t, l.Len())
	assert.Empty(t, l.Counts())
}

// TestLedgerUndoEmpty verifies undo against an empty history fails.
func TestLedgerUndoEmpty(t *testing.T) {
	l := NewLedger()
	_, err := l.UndoLast()
	require.ErrorIs(t, err, ErrEmptyHistory)
}

// TestLedgerUndoRestoresExactCounts verifies an undo restores the counts the
// ledger held before the matching record.
func TestLedgerUndoRestoresExactCounts(t *testing.T) {
	l := NewLedger()
	l.Record(catalog.ArchetypeBreaker)
	l.Record(catalog.ArchetypeBreaker)
	before := l.Counts()

	l.Record(catalog.ArchetypeCourier)
	_, err := l.UndoLast()
	require.NoError(t, err)
	assert.Equal(t, before, l.Counts())
	_, ok := l.Counts()[catalog.ArchetypeCourier]
	assert.False(t, ok, "zeroed categories are removed entirely")
}

// TestLedgerWinnerTieBreak verifies ties resolve to the first-declared
// category regardless of record order.
func TestLedgerWinnerTieBreak(t *testing.T) {
	l := NewLedger()
	l.Record(catalog.ArchetypeArchitect)
	l.Record(catalog.ArchetypeCipher)
	assert.Equal(t, catalog.ArchetypeCipher, l.Winner(catalog.Archetypes))

	l2 := NewLedger()
	l2.Record(catalog.ArchetypeCipher)
	l2.Record(catalog.ArchetypeArchitect)
	assert.Equal(t, catalog.ArchetypeCipher, l2.Winner(catalog.Archetypes))
}

// TestLedgerWinnerMaxCount verifies the plain maximum case.
func TestLedgerWinnerMaxCount(t *testing.T) {
	l := NewLedger()
	l.Record(catalog.ArchetypeOracle)
	l.Record(catalog.ArchetypeOracle)
	l.Record(catalog.ArchetypeCipher)
	assert.Equal(t, catalog.ArchetypeOracle, l.Winner(catalog.Archetypes))
}

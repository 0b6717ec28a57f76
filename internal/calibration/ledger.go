package calibration

import (
	"errors"

	"github.com/kestrelgames/onboarding-core-go/internal/catalog"
)

// ErrEmptyHistory indicates an undo against a ledger with no recorded votes.
var ErrEmptyHistory = errors.New("ledger history is empty")

// Ledger is the per-category vote count for one session, backed by an ordered
// history so every record can be undone exactly. Invariant: counts[c] equals
// the number of history entries for c at all times.
type Ledger struct {
	counts  map[catalog.Category]int
	history []catalog.Category
}

// NewLedger returns an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{counts: make(map[catalog.Category]int)}
}

// Record appends a vote for the category.
func (l *Ledger) Record(c catalog.Category) {
	l.history = append(l.history, c)
	l.counts[c]++
}

// UndoLast pops the most recent vote and returns its category. The ledger is
// restored to exactly the state it held before the matching Record call;
// categories whose count reaches zero are removed entirely.
func (l *Ledger) UndoLast() (catalog.Category, error) {
	if len(l.history) == 0 {
		return "", ErrEmptyHistory
	}
	c := l.history[len(l.history)-1]
	l.history = l.history[:len(l.history)-1]
	l.counts[c]--
	if l.counts[c] == 0 {
		delete(l.counts, c)
	}
	return c, nil
}

// Len returns the number of recorded votes.
func (l *Ledger) Len() int { return len(l.history) }

// Count returns the vote count for one category.
func (l *Ledger) Count(c catalog.Category) int { return l.counts[c] }

// Counts returns a copy of the current tallies.
func (l *Ledger) Counts() map[catalog.Category]int {
	out := make(map[catalog.Category]int, len(l.counts))
	for c, n := range l.counts {
		out[c] = n
	}
	return out
}

// Winner returns the category with the highest count. Ties break to the
// category appearing first in priority order, so identical vote sequences
// always produce identical winners. Categories outside priority are ignored.
func (l *Ledger) Winner(priority []catalog.Category) catalog.Category {
	var winner catalog.Category
	best := -1
	for _, c := range priority {
		if n := l.counts[c]; n > best {
			winner = c
			best = n
		}
	}
	return winner
}

package calibration

import (
	"errors"
	"fmt"

	"github.com/kestrelgames/onboarding-core-go/internal/catalog"
)

// Mode selects which identity tier a session calibrates.
type Mode int

const (
	ModeUnspecified Mode = iota
	// ModeArchetype scores answers against the archetype roster.
	ModeArchetype
	// ModeSkill scores answers against skill lanes and resolves the winner
	// through the locked archetype's skill table row.
	ModeSkill
)

func (m Mode) String() string {
	switch m {
	case ModeArchetype:
		return "archetype"
	case ModeSkill:
		return "skill"
	default:
		return "unspecified"
	}
}

// ErrAtStart indicates a back navigation at the first question. The caller
// recovers by leaving the session and returning to the screen that opened it.
var ErrAtStart = errors.New("session is at its first question")

// ErrInvalidOption indicates an option index outside the current question's
// options. This is a collaborator bug and is surfaced, never clamped.
var ErrInvalidOption = errors.New("option index out of range")

// ErrNoLockedArchetype indicates a skill session started without an archetype
// result to lock against. Configuration error, not user-facing.
var ErrNoLockedArchetype = errors.New("skill session requires a locked archetype")

// ErrSessionFinalized indicates an answer or back call after finalization.
var ErrSessionFinalized = errors.New("session already finalized")

// Status reports whether a session continues or has finalized.
type Status int

const (
	StatusContinue Status = iota + 1
	StatusFinalized
)

// Result is the outcome of a finalized session.
type Result struct {
	Mode Mode
	// Archetype is the winning archetype in archetype mode, or the locked
	// archetype a skill session was parameterized with. It is never derived
	// independently in skill mode.
	Archetype catalog.Category
	Info      catalog.ArchetypeInfo
	// Lane and Skill are set only in skill mode.
	Lane   catalog.Category
	Skill  *catalog.Skill
	Counts map[catalog.Category]int
}

// Step is the outcome of one answer: either the next question or the
// finalized result.
type Step struct {
	Status Status
	Next   *catalog.Question
	Result *Result
}

// Engine runs one quiz session over a sampled question set. It is a purely
// in-memory object; abandoning it at any point leaves nothing behind.
type Engine struct {
	mode      Mode
	questions []catalog.Question
	cursor    int
	ledger    *Ledger
	locked    catalog.Category
	finalized bool
}

// StartArchetype opens an archetype-mode session over n questions sampled
// from pool with a fresh random seed.
func StartArchetype(pool []catalog.Question, n int) (*Engine, error) {
	seed, err := NewSeed()
	if err != nil {
		return nil, err
	}
	return StartArchetypeSeeded(pool, n, seed)
}

// StartArchetypeSeeded is StartArchetype with an explicit sampling seed.
func StartArchetypeSeeded(pool []catalog.Question, n int, seed int64) (*Engine, error) {
	qs, err := Sample(pool, n, seed)
	if err != nil {
		return nil, err
	}
	return &Engine{mode: ModeArchetype, questions: qs, ledger: NewLedger()}, nil
}

// StartSkill opens a skill-mode session locked to a previously calibrated
// archetype.
func StartSkill(pool []catalog.Question, n int, locked catalog.Category) (*Engine, error) {
	seed, err := NewSeed()
	if err != nil {
		return nil, err
	}
	return StartSkillSeeded(pool, n, locked, seed)
}

// StartSkillSeeded is StartSkill with an explicit sampling seed.
func StartSkillSeeded(pool []catalog.Question, n int, locked catalog.Category, seed int64) (*Engine, error) {
	if locked == "" {
		return nil, ErrNoLockedArchetype
	}
	if _, err := catalog.Info(locked); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoLockedArchetype, err)
	}
	qs, err := Sample(pool, n, seed)
	if err != nil {
		return nil, err
	}
	return &Engine{mode: ModeSkill, questions: qs, ledger: NewLedger(), locked: locked}, nil
}

// Mode returns the session mode.
func (e *Engine) Mode() Mode { return e.mode }

// Len returns the number of questions in the session.
func (e *Engine) Len() int { return len(e.questions) }

// Cursor returns the index of the current question, equal to the number of
// answers currently recorded.
func (e *Engine) Cursor() int { return e.cursor }

// Counts returns a copy of the current ledger tallies.
func (e *Engine) Counts() map[catalog.Category]int { return e.ledger.Counts() }

// Current returns the question awaiting an answer, or false once the session
// has finalized.
func (e *Engine) Current() (catalog.Question, bool) {
	if e.finalized || e.cursor >= len(e.questions) {
		return catalog.Question{}, false
	}
	return e.questions[e.cursor], true
}

// Answer records the chosen option for the current question and advances the
// cursor. When the last question is answered the session finalizes and the
// winning result is returned.
func (e *Engine) Answer(optionIndex int) (Step, error) {
	if e.finalized {
		return Step{}, ErrSessionFinalized
	}
	q := e.questions[e.cursor]
	if optionIndex < 0 || optionIndex >= len(q.Options) {
		return Step{}, fmt.Errorf("%w: %d for question %s", ErrInvalidOption, optionIndex, q.ID)
	}
	e.ledger.Record(q.Options[optionIndex].Category)
	e.cursor++
	if e.cursor < len(e.questions) {
		next := e.questions[e.cursor]
		return Step{Status: StatusContinue, Next: &next}, nil
	}
	result, err := e.finalize()
	if err != nil {
		return Step{}, err
	}
	e.finalized = true
	return Step{Status: StatusFinalized, Result: result}, nil
}

// Back undoes the most recent answer and returns the question it belonged to,
// now replayable. At the first question it returns ErrAtStart and leaves the
// session untouched.
func (e *Engine) Back() (catalog.Question, error) {
	if e.finalized {
		return catalog.Question{}, ErrSessionFinalized
	}
	if e.cursor == 0 {
		return catalog.Question{}, ErrAtStart
	}
	if _, err := e.ledger.UndoLast(); err != nil {
		return catalog.Question{}, err
	}
	e.cursor--
	return e.questions[e.cursor], nil
}

func (e *Engine) finalize() (*Result, error) {
	switch e.mode {
	case ModeArchetype:
		winner := e.ledger.Winner(catalog.Archetypes)
		info, err := catalog.Info(winner)
		if err != nil {
			return nil, err
		}
		return &Result{Mode: e.mode, Archetype: winner, Info: info, Counts: e.ledger.Counts()}, nil
	case ModeSkill:
		lane := e.ledger.Winner(catalog.Lanes)
		skill, err := catalog.SkillAt(e.locked, catalog.LaneIndex(lane))
		if err != nil {
			return nil, err
		}
		info, err := catalog.Info(e.locked)
		if err != nil {
			return nil, err
		}
		return &Result{Mode: e.mode, Archetype: e.locked, Info: info, Lane: lane, Skill: &skill, Counts: e.ledger.Counts()}, nil
	default:
		return nil, fmt.Errorf("finalize: unsupported mode %d", e.mode)
	}
}

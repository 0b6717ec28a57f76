// Package catalog holds the authored, runtime-immutable calibration content:
// the archetype roster, the per-archetype skill table, and the two question
// master pools. Content is validated once at startup; after that the rest of
// the system treats every identifier in here as a stable fact.
package catalog

import (
	"errors"
	"fmt"
)

// Category is a stable scoring identifier. Archetype categories and skill-lane
// categories are disjoint sets; a ledger only ever sees one of the two.
type Category string

// Archetype categories. Declaration order is the tie-break priority order:
// when two archetypes finish a calibration with equal scores, the one declared
// first wins.
const (
	ArchetypeCipher    Category = "cipher"
	ArchetypeSpecter   Category = "specter"
	ArchetypeOracle    Category = "oracle"
	ArchetypeBreaker   Category = "breaker"
	ArchetypeCourier   Category = "courier"
	ArchetypeArchitect Category = "architect"
)

// Skill-lane categories used by the generic skill pool. Declaration order is
// the tie-break priority order, and the position of the winning lane in this
// list is the index into the skill table.
const (
	LanePower   Category = "power"
	LaneFinesse Category = "finesse"
	LaneFocus   Category = "focus"
)

// Archetypes lists every archetype category in tie-break priority order.
var Archetypes = []Category{
	ArchetypeCipher,
	ArchetypeSpecter,
	ArchetypeOracle,
	ArchetypeBreaker,
	ArchetypeCourier,
	ArchetypeArchitect,
}

// Lanes lists every skill-lane category in tie-break priority order.
var Lanes = []Category{LanePower, LaneFinesse, LaneFocus}

// ErrUnknownArchetype indicates a skill lookup against an archetype that is
// not in the roster.
var ErrUnknownArchetype = errors.New("unknown archetype")

// ErrLaneOutOfRange indicates a skill lane index outside the skill table row.
var ErrLaneOutOfRange = errors.New("skill lane index out of range")

// ArchetypeInfo describes an archetype for presentation.
type ArchetypeInfo struct {
	ID          Category `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Icon        string   `json:"icon"`
}

// Skill describes one entry of an archetype's skill row.
type Skill struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

var archetypeInfos = map[Category]ArchetypeInfo{
	ArchetypeCipher:    {ID: ArchetypeCipher, Name: "Cipher", Description: "Reads systems the way others read rooms.", Icon: "glyph-key"},
	ArchetypeSpecter:   {ID: ArchetypeSpecter, Name: "Specter", Description: "Moves through networks without leaving a trace.", Icon: "glyph-ghost"},
	ArchetypeOracle:    {ID: ArchetypeOracle, Name: "Oracle", Description: "Sees the pattern three moves before it forms.", Icon: "glyph-eye"},
	ArchetypeBreaker:   {ID: ArchetypeBreaker, Name: "Breaker", Description: "When the lock won't turn, removes the door.", Icon: "glyph-hammer"},
	ArchetypeCourier:   {ID: ArchetypeCourier, Name: "Courier", Description: "Fast hands, faster exits, cargo always intact.", Icon: "glyph-wing"},
	ArchetypeArchitect: {ID: ArchetypeArchitect, Name: "Architect", Description: "Builds the maze everyone else gets lost in.", Icon: "glyph-grid"},
}

// skillTable maps each archetype to its three skills, indexed by lane
// position: 0 power, 1 finesse, 2 focus.
var skillTable = map[Category][3]Skill{
	ArchetypeCipher: {
		{Name: "Brute Decrypt", Description: "Shatter weak keys by sheer throughput.", Icon: "skill-anvil"},
		{Name: "Sidechannel", Description: "Let the hardware whisper its secrets.", Icon: "skill-ear"},
		{Name: "Deep Parse", Description: "Hold the whole protocol in your head at once.", Icon: "skill-lens"},
	},
	ArchetypeSpecter: {
		{Name: "Blackout", Description: "Kill every camera on the block.", Icon: "skill-eclipse"},
		{Name: "Ghostwalk", Description: "Session hijacks that never trip a sensor.", Icon: "skill-mist"},
		{Name: "Long Watch", Description: "Sit silent in a system for months.", Icon: "skill-owl"},
	},
	ArchetypeOracle: {
		{Name: "Floodcast", Description: "Predict by saturating every feed at once.", Icon: "skill-storm"},
		{Name: "Thread Pull", Description: "One loose datum unravels the whole story.", Icon: "skill-needle"},
		{Name: "Quiet Model", Description: "A forecast refined until it stops being a guess.", Icon: "skill-orrery"},
	},
	ArchetypeBreaker: {
		{Name: "Overload", Description: "Push the stack until something gives.", Icon: "skill-surge"},
		{Name: "Glasscut", Description: "A single precise fault in the right place.", Icon: "skill-shard"},
		{Name: "Slow Fracture", Description: "Patience applied at the weakest seam.", Icon: "skill-crack"},
	},
	ArchetypeCourier: {
		{Name: "Ramrun", Description: "Straight through the checkpoint at full burn.", Icon: "skill-comet"},
		{Name: "Switchback", Description: "Six handoffs, zero witnesses.", Icon: "skill-fork"},
		{Name: "Cold Route", Description: "The path nobody thinks to watch.", Icon: "skill-compass"},
	},
	ArchetypeArchitect: {
		{Name: "Bastion", Description: "Walls that fail loudly and never quietly.", Icon: "skill-tower"},
		{Name: "Trapdoor", Description: "Every corridor you build has a second use.", Icon: "skill-hatch"},
		{Name: "Blueprint", Description: "Design held steady against every revision.", Icon: "skill-scroll"},
	},
}

// Info returns the presentation record for an archetype.
func Info(a Category) (ArchetypeInfo, error) {
	info, ok := archetypeInfos[a]
	if !ok {
		return ArchetypeInfo{}, fmt.Errorf("%w: %s", ErrUnknownArchetype, a)
	}
	return info, nil
}

// SkillAt resolves the skill table entry for an archetype and lane index.
func SkillAt(a Category, lane int) (Skill, error) {
	row, ok := skillTable[a]
	if !ok {
		return Skill{}, fmt.Errorf("%w: %s", ErrUnknownArchetype, a)
	}
	if lane < 0 || lane >= len(row) {
		return Skill{}, fmt.Errorf("%w: %d", ErrLaneOutOfRange, lane)
	}
	return row[lane], nil
}

// LaneIndex returns the position of a skill-lane category in priority order,
// or -1 when the category is not a lane.
func LaneIndex(c Category) int {
	for i, lane := range Lanes {
		if lane == c {
			return i
		}
	}
	return -1
}

// Validate checks the authored content for internal consistency. It is run
// once at startup; any error here is a configuration error and fatal.
func Validate() error {
	for _, a := range Archetypes {
		if _, ok := archetypeInfos[a]; !ok {
			return fmt.Errorf("archetype %s has no info record", a)
		}
		if _, ok := skillTable[a]; !ok {
			return fmt.Errorf("archetype %s has no skill table row", a)
		}
	}
	if err := validatePool(ArchetypePool, Archetypes); err != nil {
		return fmt.Errorf("archetype pool: %w", err)
	}
	if err := validatePool(SkillPool, Lanes); err != nil {
		return fmt.Errorf("skill pool: %w", err)
	}
	return nil
}

func validatePool(pool []Question, allowed []Category) error {
	seen := make(map[string]bool, len(pool))
	for _, q := range pool {
		if q.ID == "" || q.Prompt == "" {
			return fmt.Errorf("question %q is missing id or prompt", q.ID)
		}
		if seen[q.ID] {
			return fmt.Errorf("duplicate question id %q", q.ID)
		}
		seen[q.ID] = true
		if len(q.Options) != 3 {
			return fmt.Errorf("question %q has %d options, want 3", q.ID, len(q.Options))
		}
		for _, opt := range q.Options {
			if !containsCategory(allowed, opt.Category) {
				return fmt.Errorf("question %q option %q maps to unknown category %q", q.ID, opt.Label, opt.Category)
			}
		}
	}
	return nil
}

func containsCategory(set []Category, c Category) bool {
	for _, s := range set {
		if s == c {
			return true
		}
	}
	return false
}

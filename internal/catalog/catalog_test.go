package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestValidateAuthoredContent verifies the shipped catalog is coherent.
func TestValidateAuthoredContent(t *testing.T) {
	require.NoError(t, Validate())
}

// TestPoolShapes verifies the authored pool sizes and option counts.
func TestPoolShapes(t *testing.T) {
	assert.GreaterOrEqual(t, len(ArchetypePool), 10)
	assert.Len(t, SkillPool, 3)
	for _, q := range append(append([]Question{}, ArchetypePool...), SkillPool...) {
		assert.Len(t, q.Options, 3, "question %s", q.ID)
	}
}

// TestSkillAtResolvesEveryCell verifies the full archetype x lane table.
func TestSkillAtResolvesEveryCell(t *testing.T) {
	for _, a := range Archetypes {
		for lane := range Lanes {
			skill, err := SkillAt(a, lane)
			require.NoError(t, err, "%s lane %d", a, lane)
			assert.NotEmpty(t, skill.Name)
			assert.NotEmpty(t, skill.Description)
		}
	}
}

// TestSkillAtRejectsBadInputs verifies lookup failure modes.
func TestSkillAtRejectsBadInputs(t *testing.T) {
	_, err := SkillAt(Category("nobody"), 0)
	require.ErrorIs(t, err, ErrUnknownArchetype)

	_, err = SkillAt(ArchetypeCipher, 3)
	require.ErrorIs(t, err, ErrLaneOutOfRange)
	_, err = SkillAt(ArchetypeCipher, -1)
	require.ErrorIs(t, err, ErrLaneOutOfRange)
}

// TestLaneIndexMatchesDeclarationOrder pins the lane positions the skill
// table rows are indexed by.
func TestLaneIndexMatchesDeclarationOrder(t *testing.T) {
	assert.Equal(t, 0, LaneIndex(LanePower))
	assert.Equal(t, 1, LaneIndex(LaneFinesse))
	assert.Equal(t, 2, LaneIndex(LaneFocus))
	assert.Equal(t, -1, LaneIndex(ArchetypeCipher))
}

// TestInfoKnownAndUnknown verifies archetype info lookup.
func TestInfoKnownAndUnknown(t *testing.T) {
	info, err := Info(ArchetypeOracle)
	require.NoError(t, err)
	assert.Equal(t, "Oracle", info.Name)

	_, err = Info(Category("missing"))
	require.ErrorIs(t, err, ErrUnknownArchetype)
}

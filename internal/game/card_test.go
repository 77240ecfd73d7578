package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSquadAssignsMissingInstanceIDs(t *testing.T) {
	raw := testSquad()
	for i := range raw {
		raw[i].InstanceID = ""
	}

	squad, err := NewSquad(raw)
	require.NoError(t, err)

	seen := map[string]bool{}
	for _, c := range squad {
		require.NotEmpty(t, c.InstanceID)
		assert.False(t, seen[c.InstanceID])
		seen[c.InstanceID] = true
	}
	// The input is left untouched.
	assert.Empty(t, raw[0].InstanceID)
}

func TestNewSquadKeepsSuppliedInstanceIDs(t *testing.T) {
	raw := testSquad()

	squad, err := NewSquad(raw)
	require.NoError(t, err)

	for i := range raw {
		assert.Equal(t, raw[i].InstanceID, squad[i].InstanceID)
	}
}

func TestNewSquadRejectsWrongSize(t *testing.T) {
	_, err := NewSquad(testSquad()[:14])
	assert.Error(t, err)

	_, err = NewSquad(append(testSquad(), testCard("Extra", PositionForward, 1, 1)))
	assert.Error(t, err)
}

func TestNewSquadRejectsInvalidPosition(t *testing.T) {
	raw := testSquad()
	raw[7].Position = "COACH"

	_, err := NewSquad(raw)
	assert.Error(t, err)
}

func TestNewSquadRejectsDuplicateInstanceIDs(t *testing.T) {
	raw := testSquad()
	raw[1].InstanceID = raw[0].InstanceID

	_, err := NewSquad(raw)
	assert.Error(t, err)
}

func TestPositionValid(t *testing.T) {
	for _, p := range Positions {
		assert.True(t, p.Valid())
	}
	assert.False(t, Position("COACH").Valid())
	assert.False(t, Position("").Valid())
}

func TestFindCard(t *testing.T) {
	squad := testSquad()

	assert.Equal(t, 0, findCard(squad, squad[0].InstanceID))
	assert.Equal(t, 14, findCard(squad, squad[14].InstanceID))
	assert.Equal(t, -1, findCard(squad, "missing"))
}

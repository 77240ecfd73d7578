package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSnapshotRejectsTerminalRuns(t *testing.T) {
	r := testRun(RunConfig{})
	require.True(t, r.Abandon())

	_, ok := r.Snapshot()
	assert.False(t, ok)
}

func TestSnapshotIsADeepCopy(t *testing.T) {
	r := testRun(RunConfig{})
	snap, ok := r.Snapshot()
	require.True(t, ok)

	handBefore := snap.Run.Hand[0].Name
	r.Hand[0].Name = "Mutated"
	r.ComboLevels[ComboPointPair] = 9

	assert.Equal(t, handBefore, snap.Run.Hand[0].Name)
	assert.Equal(t, 1, snap.Run.ComboLevels.Level(ComboPointPair))
}

func TestSnapshotEncodeDecodeRoundtrip(t *testing.T) {
	r := testRun(RunConfig{ModifierPool: testModifierPool(6)})
	r.Equipped = append(r.Equipped, r.ModifierPool[0])
	r.Coins = 11
	r.ComboLevels[ComboFormation] = 3

	snap, ok := r.Snapshot()
	require.True(t, ok)

	data, err := snap.Encode()
	require.NoError(t, err)
	decoded, err := DecodeSnapshot(data)
	require.NoError(t, err)

	assert.Equal(t, snap.Run.ID, decoded.Run.ID)
	assert.Equal(t, snap.Run.Phase, decoded.Run.Phase)
	assert.Equal(t, snap.Run.Coins, decoded.Run.Coins)
	assert.Equal(t, snap.Run.Hand, decoded.Run.Hand)
	assert.Equal(t, snap.Run.Deck, decoded.Run.Deck)
	assert.Equal(t, snap.Run.Equipped, decoded.Run.Equipped)
	assert.Equal(t, 3, decoded.Run.ComboLevels.Level(ComboFormation))
	assert.Equal(t, snap.Version, decoded.Version)
}

func TestChecksumIgnoresSaveTime(t *testing.T) {
	r := testRun(RunConfig{})
	snap, ok := r.Snapshot()
	require.True(t, ok)

	sum := snap.Checksum()
	snap.SavedAt = snap.SavedAt.Add(24 * time.Hour)

	assert.Equal(t, sum, snap.Checksum())
}

func TestChecksumDetectsStateChanges(t *testing.T) {
	r := testRun(RunConfig{})
	snap, ok := r.Snapshot()
	require.True(t, ok)
	sum := snap.Checksum()

	snap.Run.Coins++
	assert.NotEqual(t, sum, snap.Checksum())
}

func TestChecksumStableAcrossMapIterationOrder(t *testing.T) {
	r := testRun(RunConfig{})
	snap, ok := r.Snapshot()
	require.True(t, ok)

	sum := snap.Checksum()
	for i := 0; i < 10; i++ {
		assert.Equal(t, sum, snap.Checksum())
	}
}

func TestValidateRoundtrip(t *testing.T) {
	r := testRun(RunConfig{ModifierPool: testModifierPool(6)})
	r.Phase = PhaseStageComplete
	require.True(t, r.ContinueToShop())

	snap, ok := r.Snapshot()
	require.True(t, ok)
	assert.NoError(t, ValidateRoundtrip(snap))
}

func TestRestoreProducesAPlayableRun(t *testing.T) {
	r := testRun(RunConfig{})
	snap, ok := r.Snapshot()
	require.True(t, ok)

	restored, err := snap.Restore(zap.NewNop())
	require.NoError(t, err)

	assert.Equal(t, r.ID, restored.ID)
	assert.Equal(t, PhasePlaying, restored.Phase)
	assert.Equal(t, r.Hand, restored.Hand)

	// The restored run accepts actions immediately.
	require.True(t, restored.ToggleSelect(restored.Hand[0].InstanceID))
	_, played := restored.PlayHand()
	assert.True(t, played)
}

func TestRestoreRejectsTerminalSnapshot(t *testing.T) {
	r := testRun(RunConfig{})
	snap, ok := r.Snapshot()
	require.True(t, ok)
	snap.Run.Phase = PhaseRunLost

	_, err := snap.Restore(nil)
	assert.Error(t, err)
}

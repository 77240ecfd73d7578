package store

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gafferdeck/gaffer-server-go/internal/game"
	"github.com/gafferdeck/gaffer-server-go/internal/progress"
)

func testSnapshot(t *testing.T) *game.RunSnapshot {
	t.Helper()
	squad := make([]game.Card, 0, game.SquadSize)
	for i := 0; i < game.SquadSize; i++ {
		pos := game.PositionMidfielder
		if i == 0 {
			pos = game.PositionGoalkeeper
		}
		squad = append(squad, game.Card{
			PlayerID: i + 1,
			Name:     fmt.Sprintf("P%d", i+1),
			Position: pos,
			Points:   i + 1,
		})
	}
	r, err := game.NewRun(game.RunConfig{Squad: squad, Seed: 5})
	require.NoError(t, err)
	require.True(t, r.Start())
	snap, ok := r.Snapshot()
	require.True(t, ok)
	return snap
}

func TestMemoryStoreSnapshotLifecycle(t *testing.T) {
	s := NewMemoryStore()
	defer s.Close()
	ctx := context.Background()
	snap := testSnapshot(t)

	loaded, err := s.LoadSnapshot(ctx, "m1")
	require.NoError(t, err)
	assert.Nil(t, loaded)

	require.NoError(t, s.SaveSnapshot(ctx, "m1", snap))

	loaded, err = s.LoadSnapshot(ctx, "m1")
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, snap.Run.ID, loaded.Run.ID)
	assert.Equal(t, snap.Checksum(), loaded.Checksum())

	require.NoError(t, s.ClearSnapshot(ctx, "m1"))
	loaded, err = s.LoadSnapshot(ctx, "m1")
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestMemoryStoreSnapshotsAreScopedPerManager(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, s.SaveSnapshot(ctx, "m1", testSnapshot(t)))

	loaded, err := s.LoadSnapshot(ctx, "m2")
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestMemoryStoreProgressRoundtrip(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	p := progress.NewManagerProgress("m1", "Alex", "Alex FC", 12)
	p.Record(progress.RunRecord{Gameweek: 12, Won: true, FinalScore: 900}, 13)

	require.NoError(t, s.SaveProgress(ctx, p))

	loaded, err := s.LoadProgress(ctx, "m1")
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, p.UnlockedWeeks, loaded.UnlockedWeeks)
	require.Len(t, loaded.RunHistory, 1)
	assert.Equal(t, 900, loaded.RunHistory[0].FinalScore)

	// The stored copy is insulated from later caller mutation.
	p.UnlockedWeeks[0] = 99
	reloaded, err := s.LoadProgress(ctx, "m1")
	require.NoError(t, err)
	assert.Equal(t, 12, reloaded.UnlockedWeeks[0])
}

func TestMemoryStoreLoadProgressUnknownManager(t *testing.T) {
	s := NewMemoryStore()

	loaded, err := s.LoadProgress(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

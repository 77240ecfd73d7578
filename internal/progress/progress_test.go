package progress

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gafferdeck/gaffer-server-go/internal/game"
)

func TestNewManagerProgressStartsWithOneWeek(t *testing.T) {
	p := NewManagerProgress("m1", "Alex", "Alex FC", 12)

	assert.True(t, p.Unlocked(12))
	assert.False(t, p.Unlocked(13))
	assert.Empty(t, p.RunHistory)
}

func TestRecordWinUnlocksNextWeek(t *testing.T) {
	p := NewManagerProgress("m1", "Alex", "Alex FC", 12)

	p.Record(RunRecord{Gameweek: 12, Won: true, FinalScore: 4000, Timestamp: time.Now()}, 13)

	require.Len(t, p.RunHistory, 1)
	assert.True(t, p.Unlocked(13))
}

func TestRecordLossUnlocksNothing(t *testing.T) {
	p := NewManagerProgress("m1", "Alex", "Alex FC", 12)

	p.Record(RunRecord{Gameweek: 12, Won: false}, 13)

	require.Len(t, p.RunHistory, 1)
	assert.False(t, p.Unlocked(13))
}

func TestRecordWithNoWeekLeftToUnlock(t *testing.T) {
	p := NewManagerProgress("m1", "Alex", "Alex FC", 38)

	p.Record(RunRecord{Gameweek: 38, Won: true}, -1)

	assert.Equal(t, []int{38}, p.UnlockedWeeks)
}

func TestRecordDoesNotDuplicateUnlockedWeeks(t *testing.T) {
	p := NewManagerProgress("m1", "Alex", "Alex FC", 12)

	p.Record(RunRecord{Gameweek: 12, Won: true}, 13)
	p.Record(RunRecord{Gameweek: 12, Won: true}, 13)

	assert.Equal(t, []int{12, 13}, p.UnlockedWeeks)
	assert.Len(t, p.RunHistory, 2)
}

func TestNextUnlock(t *testing.T) {
	p := NewManagerProgress("m1", "Alex", "Alex FC", 12)
	p.Record(RunRecord{Gameweek: 12, Won: true}, 13)

	assert.Equal(t, 14, p.NextUnlock([]int{12, 13, 14, 15}))
	assert.Equal(t, -1, p.NextUnlock([]int{12, 13}))
}

func TestNewRunRecordFromFinishedRun(t *testing.T) {
	squad := make([]game.Card, 0, game.SquadSize)
	for i := 0; i < game.SquadSize; i++ {
		squad = append(squad, game.Card{
			PlayerID: i + 1,
			Name:     "P",
			Position: game.PositionMidfielder,
			Points:   i,
		})
	}
	r, err := game.NewRun(game.RunConfig{Squad: squad, Seed: 1})
	require.NoError(t, err)
	require.True(t, r.Start())
	require.True(t, r.Abandon())

	rec := NewRunRecord(r, 12)

	assert.Equal(t, 12, rec.Gameweek)
	assert.Equal(t, 1, rec.AnteReached)
	assert.Equal(t, game.StageLow, rec.StageReached)
	assert.False(t, rec.Won)
	assert.Zero(t, rec.FinalScore)
	assert.False(t, rec.Timestamp.IsZero())
}

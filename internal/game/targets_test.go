package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoreTargetTable(t *testing.T) {
	assert.Equal(t, 100, ScoreTarget(1, StageLow, nil))
	assert.Equal(t, 200, ScoreTarget(1, StageHigh, nil))
	assert.Equal(t, 350, ScoreTarget(1, StageAdverse, nil))
	assert.Equal(t, 8000, ScoreTarget(8, StageLow, nil))
	assert.Equal(t, 28000, ScoreTarget(8, StageAdverse, nil))
}

func TestScoreTargetsStrictlyIncrease(t *testing.T) {
	prev := 0
	for ante := 1; ante <= 8; ante++ {
		for _, stage := range []Stage{StageLow, StageHigh, StageAdverse} {
			target := ScoreTarget(ante, stage, nil)
			assert.Greater(t, target, prev, "ante %d stage %s", ante, stage)
			prev = target
		}
	}
}

func TestScoreTargetUsesOpponentOnAdverseStagesOnly(t *testing.T) {
	opp := &LeagueOpponent{ManagerID: 1, ManagerName: "Rival", Score: 60}

	assert.Equal(t, 60*15, ScoreTarget(3, StageAdverse, opp))
	// Low and high stages ignore the opponent.
	assert.Equal(t, 450, ScoreTarget(3, StageLow, opp))
	assert.Equal(t, 800, ScoreTarget(3, StageHigh, opp))
}

func TestOpponentTargetScalingPerAnte(t *testing.T) {
	opp := &LeagueOpponent{Score: 50}

	assert.Equal(t, 250, OpponentTarget(1, opp))
	assert.Equal(t, 2000, OpponentTarget(5, opp))
	assert.Equal(t, 12500, OpponentTarget(8, opp))
	// Out-of-range antes fall back to the final ante's factor.
	assert.Equal(t, 12500, OpponentTarget(99, opp))
}

func TestAssignOpponentsSortsWeakestFirst(t *testing.T) {
	opponents := []LeagueOpponent{
		{ManagerID: 1, Score: 90},
		{ManagerID: 2, Score: 30},
		{ManagerID: 3, Score: 60},
	}

	assigned := AssignOpponents(opponents, 8)

	require.Len(t, assigned, 8)
	for i := 1; i < len(assigned); i++ {
		assert.GreaterOrEqual(t, assigned[i].Score, assigned[i-1].Score)
	}
	// Three opponents rotate across eight antes.
	assert.Equal(t, 2, assigned[0].ManagerID)
	assert.Equal(t, 3, assigned[1].ManagerID)
	assert.Equal(t, 1, assigned[2].ManagerID)
	assert.Equal(t, 2, assigned[3].ManagerID)
}

func TestAssignOpponentsStridesLargeLeagues(t *testing.T) {
	var opponents []LeagueOpponent
	for i := 1; i <= 16; i++ {
		opponents = append(opponents, LeagueOpponent{ManagerID: i, Score: i * 10})
	}

	assigned := AssignOpponents(opponents, 8)

	require.Len(t, assigned, 8)
	// Every second opponent is sampled, weakest first.
	assert.Equal(t, 10, assigned[0].Score)
	assert.Equal(t, 30, assigned[1].Score)
	assert.Equal(t, 150, assigned[7].Score)
}

func TestAssignOpponentsEmpty(t *testing.T) {
	assert.Nil(t, AssignOpponents(nil, 8))
}

func TestCalculateReward(t *testing.T) {
	rules := DefaultRules()

	// Base 3 for a low stage, 2 unused plays, interest 7/5 = 1.
	assert.Equal(t, 6, CalculateReward(StageLow, 2, 7, rules))
	assert.Equal(t, 4, CalculateReward(StageHigh, 0, 0, rules))
	assert.Equal(t, 5, CalculateReward(StageAdverse, 0, 4, rules))
}

func TestCalculateRewardCapsInterest(t *testing.T) {
	rules := DefaultRules()

	// 100 coins would earn 20 interest uncapped.
	assert.Equal(t, 3+0+rules.MaxInterest, CalculateReward(StageLow, 0, 100, rules))
}

package game

import "sort"

// Stage is one of the three sub-stages of an ante, each with its own score
// target.
type Stage string

const (
	StageLow     Stage = "low"
	StageHigh    Stage = "high"
	StageAdverse Stage = "adverse"
)

// baseRewards is the coin reward for clearing a stage, before the unused-play
// bonus and interest.
var baseRewards = map[Stage]int{
	StageLow:     3,
	StageHigh:    4,
	StageAdverse: 5,
}

// scoreTargets is the fixed target table per ante and stage.
var scoreTargets = map[int]map[Stage]int{
	1: {StageLow: 100, StageHigh: 200, StageAdverse: 350},
	2: {StageLow: 250, StageHigh: 450, StageAdverse: 800},
	3: {StageLow: 450, StageHigh: 800, StageAdverse: 1400},
	4: {StageLow: 800, StageHigh: 1500, StageAdverse: 2600},
	5: {StageLow: 1400, StageHigh: 2600, StageAdverse: 4500},
	6: {StageLow: 2500, StageHigh: 4500, StageAdverse: 8000},
	7: {StageLow: 4500, StageHigh: 8000, StageAdverse: 15000},
	8: {StageLow: 8000, StageHigh: 15000, StageAdverse: 28000},
}

// opponentScaling scales a league opponent's historical score into an
// adverse-stage target, per ante.
var opponentScaling = map[int]int{
	1: 5, 2: 10, 3: 15, 4: 25, 5: 40, 6: 80, 7: 150, 8: 250,
}

// LeagueOpponent is one historical opponent score record, consumed by the
// adverse-stage target calculation in league-comparison mode.
type LeagueOpponent struct {
	ManagerID   int    `json:"manager_id"`
	ManagerName string `json:"manager_name"`
	TeamName    string `json:"team_name"`
	Score       int    `json:"score"`
	Rank        int    `json:"rank"`
}

// ScoreTarget returns the score target for an ante and stage. In
// league-comparison mode the adverse target is seeded by the assigned
// opponent's score instead of the fixed table.
func ScoreTarget(ante int, stage Stage, opponent *LeagueOpponent) int {
	if stage == StageAdverse && opponent != nil {
		return OpponentTarget(ante, opponent)
	}
	if targets, ok := scoreTargets[ante]; ok {
		if t, ok := targets[stage]; ok {
			return t
		}
	}
	return 999999
}

// OpponentTarget scales an opponent's score by the per-ante factor.
func OpponentTarget(ante int, opponent *LeagueOpponent) int {
	scaling, ok := opponentScaling[ante]
	if !ok {
		scaling = opponentScaling[len(opponentScaling)]
	}
	return opponent.Score * scaling
}

// AssignOpponents assigns one opponent per ante, sorted weakest to strongest.
// With more opponents than antes the list is sampled at an even stride; with
// fewer, opponents repeat in rotation.
func AssignOpponents(opponents []LeagueOpponent, totalAntes int) []LeagueOpponent {
	if len(opponents) == 0 || totalAntes <= 0 {
		return nil
	}
	sorted := append([]LeagueOpponent(nil), opponents...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Score < sorted[j].Score })

	assigned := make([]LeagueOpponent, totalAntes)
	if len(sorted) >= totalAntes {
		step := float64(len(sorted)) / float64(totalAntes)
		for i := 0; i < totalAntes; i++ {
			assigned[i] = sorted[int(float64(i)*step)]
		}
	} else {
		for i := 0; i < totalAntes; i++ {
			assigned[i] = sorted[i%len(sorted)]
		}
	}
	return assigned
}

// CalculateReward computes the coin reward for clearing a stage: a base per
// stage kind, one coin per unused play, and capped interest on savings.
func CalculateReward(stage Stage, playsRemaining, coins int, rules Rules) int {
	interest := coins / rules.InterestStep
	if interest > rules.MaxInterest {
		interest = rules.MaxInterest
	}
	return baseRewards[stage] + playsRemaining + interest
}

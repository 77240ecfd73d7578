package game

import (
	"fmt"

	"go.uber.org/zap"
)

// testCard builds a card with a unique instance id.
var testCardSeq int

func testCard(name string, pos Position, clubID, points int) Card {
	testCardSeq++
	return Card{
		PlayerID:   testCardSeq,
		InstanceID: fmt.Sprintf("card-%d", testCardSeq),
		Name:       name,
		Position:   pos,
		ClubID:     clubID,
		Club:       fmt.Sprintf("C%d", clubID),
		Points:     points,
	}
}

// testSquad builds a valid 15-card squad with distinct point values spread
// across clubs and positions.
func testSquad() []Card {
	var squad []Card
	positions := []Position{
		PositionGoalkeeper, PositionGoalkeeper,
		PositionDefender, PositionDefender, PositionDefender, PositionDefender, PositionDefender,
		PositionMidfielder, PositionMidfielder, PositionMidfielder, PositionMidfielder, PositionMidfielder,
		PositionForward, PositionForward, PositionForward,
	}
	for i, pos := range positions {
		squad = append(squad, testCard(fmt.Sprintf("P%d", i+1), pos, i%4+1, i+1))
	}
	return squad
}

// testRun builds a started run with a deterministic seed.
func testRun(cfg RunConfig) *Run {
	if cfg.Squad == nil {
		cfg.Squad = testSquad()
	}
	if cfg.Seed == 0 {
		cfg.Seed = 42
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	r, err := NewRun(cfg)
	if err != nil {
		panic(err)
	}
	r.Start()
	return r
}

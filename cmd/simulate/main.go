// Command simulate plays one run offline with a generated sample squad and
// prints every scoring trace. Useful for eyeballing balance changes without a
// client.
package main

import (
	"flag"
	"fmt"
	"os"
	"sort"

	"go.uber.org/zap"

	"github.com/gafferdeck/gaffer-server-go/internal/game"
	"github.com/gafferdeck/gaffer-server-go/internal/progress"
)

var (
	seed    = flag.Int64("seed", 1, "random seed for the run")
	verbose = flag.Bool("v", false, "print every scoring step")
)

func main() {
	flag.Parse()

	logger := zap.NewNop()
	run, err := game.NewRun(game.RunConfig{
		Squad:        sampleSquad(),
		ModifierPool: sampleModifiers(),
		Rules:        game.DefaultRules(),
		Seed:         *seed,
		Logger:       logger,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create run: %v\n", err)
		os.Exit(1)
	}
	run.Start()

	for !run.Phase.Terminal() {
		switch run.Phase {
		case game.PhasePlaying:
			playGreedy(run)
		case game.PhaseScoring:
			run.FinishScoring()
		case game.PhaseStageComplete:
			fmt.Printf("== ante %d %s cleared (%d / %d)\n", run.Ante, run.Stage, run.StageScore, run.ScoreTarget)
			run.ContinueToShop()
		case game.PhaseShop:
			shopGreedy(run)
			run.LeaveShop()
		}
	}

	rec := progress.NewRunRecord(run, 1)
	fmt.Printf("\nrun finished: won=%v ante=%d stage=%s score=%d\n",
		rec.Won, rec.AnteReached, rec.StageReached, rec.FinalScore)
}

// playGreedy selects the highest-point cards up to the play cap and plays
// them.
func playGreedy(run *game.Run) {
	hand := append([]game.Card(nil), run.Hand...)
	sort.SliceStable(hand, func(i, j int) bool { return hand[i].Points > hand[j].Points })

	limit := run.PlayCap()
	for i := 0; i < limit && i < len(hand); i++ {
		run.ToggleSelect(hand[i].InstanceID)
	}
	result, ok := run.PlayHand()
	if !ok {
		return
	}
	fmt.Printf("ante %d %s: %s → %d (%d × %d)  [%d / %d]\n",
		run.Ante, run.Stage, result.Combo.Name, result.FinalScore,
		result.TotalChips, result.TotalMult, run.StageScore+result.FinalScore, run.ScoreTarget)
	if *verbose {
		for _, step := range result.Steps {
			fmt.Printf("    %-16s %s\n", step.Type, step.Label)
		}
	}
}

// shopGreedy buys the first affordable modifier, if any.
func shopGreedy(run *game.Run) {
	if run.Shop == nil {
		return
	}
	for _, m := range run.Shop.Modifiers {
		if run.BuyModifier(m.ID) {
			fmt.Printf("   bought %s (%s, %d coins left)\n", m.Name, m.Rarity, run.Coins)
			break
		}
	}
}

// sampleSquad builds a plausible 15-card weekly squad.
func sampleSquad() []game.Card {
	type row struct {
		name   string
		pos    game.Position
		club   int
		points int
		goals  int
		assists int
		cs     int
		dream  bool
	}
	rows := []row{
		{"Ramsdale", game.PositionGoalkeeper, 1, 6, 0, 0, 1, false},
		{"Saliba", game.PositionDefender, 1, 8, 0, 0, 1, true},
		{"White", game.PositionDefender, 1, 6, 0, 1, 1, false},
		{"Trippier", game.PositionDefender, 2, 9, 0, 2, 1, true},
		{"Botman", game.PositionDefender, 2, 6, 0, 0, 1, false},
		{"Saka", game.PositionMidfielder, 1, 12, 1, 1, 0, true},
		{"Odegaard", game.PositionMidfielder, 1, 8, 1, 0, 0, false},
		{"Gordon", game.PositionMidfielder, 2, 7, 1, 0, 0, false},
		{"Barnes", game.PositionMidfielder, 2, 2, 0, 0, 0, false},
		{"Son", game.PositionMidfielder, 3, 13, 2, 0, 0, true},
		{"Isak", game.PositionForward, 2, 10, 2, 0, 0, false},
		{"Wilson", game.PositionForward, 2, 2, 0, 0, 0, false},
		{"Richarlison", game.PositionForward, 3, 6, 1, 0, 0, false},
		{"Turner", game.PositionGoalkeeper, 1, 2, 0, 0, 0, false},
		{"Kiwior", game.PositionDefender, 1, 1, 0, 0, 0, false},
	}
	clubs := map[int]string{1: "ARS", 2: "NEW", 3: "TOT"}
	cards := make([]game.Card, len(rows))
	for i, r := range rows {
		cards[i] = game.Card{
			PlayerID:    i + 1,
			Name:        r.name,
			Position:    r.pos,
			ClubID:      r.club,
			Club:        clubs[r.club],
			Points:      r.points,
			Goals:       r.goals,
			Assists:     r.assists,
			CleanSheets: r.cs,
			InDreamTeam: r.dream,
		}
	}
	return cards
}

// sampleModifiers builds a small modifier pool in the shape a data
// collaborator would supply.
func sampleModifiers() []game.Modifier {
	return []game.Modifier{
		{ID: "mod-haaland-gw7", Name: "Haaland GW7", Description: "Hat-trick legend! ×2.0 mult when a scorer is played",
			Rarity: game.RarityLegendary, Effect: game.EffectMultMult, Value: 2.0, Condition: game.ConditionHasScorer},
		{ID: "mod-salah-gw3", Name: "Cpt Salah GW3", Description: "Captain pick: +3 mult",
			Rarity: game.RarityRare, Effect: game.EffectAddMult, Value: 3, Condition: game.ConditionAlways},
		{ID: "mod-kdb-gw5", Name: "De Bruyne GW5", Description: "Playmaker: +20 chips when MID played",
			Rarity: game.RarityUncommon, Effect: game.EffectAddChips, Value: 20, Condition: game.ConditionHasMidfield},
		{ID: "mod-gabriel-gw9", Name: "Gabriel GW9", Description: "Clean sheet: +25 chips when DEF/GKP played",
			Rarity: game.RarityUncommon, Effect: game.EffectAddChips, Value: 25, Condition: game.ConditionHasDefence},
		{ID: "mod-watkins-gw2", Name: "Watkins GW2", Description: "Brace! +4 mult when FWD played",
			Rarity: game.RarityCommon, Effect: game.EffectAddMult, Value: 4, Condition: game.ConditionHasForward},
		{ID: "mod-bruno-gw11", Name: "Bruno GW11", Description: "Reliable: +8 chips",
			Rarity: game.RarityCommon, Effect: game.EffectAddChips, Value: 8, Condition: game.ConditionAlways},
	}
}

package game

import (
	"fmt"
	"math"
)

// TacticMultPerLevel is the mult bonus a combo gains per level above 1.
const TacticMultPerLevel = 2

// ComboLevels maps combo types to their current level. Levels start at 1 and
// are raised by purchased tactic upgrades.
type ComboLevels map[ComboType]int

// NewComboLevels returns the level table with every combo at level 1.
func NewComboLevels() ComboLevels {
	levels := make(ComboLevels, len(ComboCatalog))
	for _, def := range ComboCatalog {
		levels[def.Type] = 1
	}
	return levels
}

// Level returns the level for a combo type, defaulting to 1.
func (l ComboLevels) Level(t ComboType) int {
	if lv, ok := l[t]; ok && lv >= 1 {
		return lv
	}
	return 1
}

// ScoringStepType tags one entry of the scoring trace.
type ScoringStepType string

const (
	StepComboAnnounce  ScoringStepType = "combo_announce"
	StepCardScore      ScoringStepType = "card_score"
	StepModifierEffect ScoringStepType = "modifier_effect"
	StepFinalCalc      ScoringStepType = "final_calc"
)

// ScoringStep is one entry of the ordered scoring trace. Chips and Mult carry
// the cumulative running totals at that point, so a presentation layer can
// reveal the calculation incrementally. CardIndex is the play-order index for
// card steps and -1 otherwise.
type ScoringStep struct {
	Type      ScoringStepType `json:"type"`
	Label     string          `json:"label"`
	CardIndex int             `json:"card_index"`
	Chips     int             `json:"chips"`
	Mult      int             `json:"mult"`
}

// ScoringResult is the outcome of scoring one play. The trace exists purely
// to support incremental reveal; callers that don't need it may read only the
// totals.
type ScoringResult struct {
	Combo      ComboResult   `json:"combo"`
	AllCombos  []ComboResult `json:"all_combos"`
	Steps      []ScoringStep `json:"steps"`
	TotalChips int           `json:"total_chips"`
	TotalMult  int           `json:"total_mult"`
	FinalScore int           `json:"final_score"`
}

// CalculateScore runs the deterministic scoring pipeline over a play:
//
//  1. every detected combo adds base mult + level bonus,
//  2. every played card adds max(points, 0) chips unless an adverse effect
//     disables its position,
//  3. equipped modifiers apply in equip order when their condition holds;
//     multiplicative effects round to the nearest integer,
//  4. a halve-mult adverse effect replaces mult with max(1, mult/2),
//  5. final score = chips × mult.
//
// It is a pure function of its inputs and never mutates run state.
func CalculateScore(played []Card, best ComboResult, allCombos []ComboResult, modifiers []Modifier, levels ComboLevels, adverse *AdverseEffect) ScoringResult {
	combos := allCombos
	if len(combos) == 0 {
		combos = []ComboResult{best}
	}

	var steps []ScoringStep
	chips := 0
	mult := 0

	for _, c := range combos {
		level := levels.Level(c.Type)
		comboMult := c.BaseMult + (level-1)*TacticMultPerLevel
		mult += comboMult

		label := fmt.Sprintf("%s: +%d mult", c.Name, comboMult)
		if level > 1 {
			label = fmt.Sprintf("%s (Lv%d): +%d mult", c.Name, level, comboMult)
		}
		steps = append(steps, ScoringStep{
			Type: StepComboAnnounce, Label: label, CardIndex: -1, Chips: chips, Mult: mult,
		})
	}

	for i, card := range played {
		points := card.Points
		if points < 0 {
			points = 0
		}
		var label string
		switch {
		case adverse.DisablesCard(card):
			points = 0
			label = fmt.Sprintf("%s (blocked!)", card.Name)
		case points > 0:
			label = fmt.Sprintf("%s +%dpts", card.Name, points)
		default:
			label = fmt.Sprintf("%s (0pts)", card.Name)
		}
		chips += points
		steps = append(steps, ScoringStep{
			Type: StepCardScore, Label: label, CardIndex: i, Chips: chips, Mult: mult,
		})
	}

	for _, m := range modifiers {
		if !m.Condition.Met(played) {
			continue
		}
		var label string
		switch m.Effect {
		case EffectAddChips:
			chips += int(m.Value)
			label = fmt.Sprintf("%s: +%d chips", m.Name, int(m.Value))
		case EffectAddMult:
			mult += int(m.Value)
			label = fmt.Sprintf("%s: +%d mult", m.Name, int(m.Value))
		case EffectMultMult:
			mult = int(math.Round(float64(mult) * m.Value))
			label = fmt.Sprintf("%s: ×%g mult", m.Name, m.Value)
		default:
			continue
		}
		steps = append(steps, ScoringStep{
			Type: StepModifierEffect, Label: label, CardIndex: -1, Chips: chips, Mult: mult,
		})
	}

	if adverse != nil && adverse.Kind == AdverseHalveMult {
		mult = mult / 2
		if mult < 1 {
			mult = 1
		}
		steps = append(steps, ScoringStep{
			Type:      StepModifierEffect,
			Label:     fmt.Sprintf("%s: mult halved → ×%d", adverse.Name, mult),
			CardIndex: -1, Chips: chips, Mult: mult,
		})
	}

	finalScore := chips * mult
	steps = append(steps, ScoringStep{
		Type:      StepFinalCalc,
		Label:     fmt.Sprintf("%d × %d = %d", chips, mult, finalScore),
		CardIndex: -1, Chips: chips, Mult: mult,
	})

	return ScoringResult{
		Combo:      best,
		AllCombos:  combos,
		Steps:      steps,
		TotalChips: chips,
		TotalMult:  mult,
		FinalScore: finalScore,
	}
}

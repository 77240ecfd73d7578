package game

import "math/rand"

// AdverseKind is the closed set of adverse-stage rule overrides.
type AdverseKind string

const (
	AdverseDisableForwards AdverseKind = "disable_fwd"
	AdverseDisableDefence  AdverseKind = "disable_def_gkp"
	AdverseTightFormation  AdverseKind = "max_cards_3"
	AdverseHalveMult       AdverseKind = "halve_mult"
)

// AdverseEffect is a per-adverse-stage rule override ("boss" effect).
type AdverseEffect struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Kind        AdverseKind `json:"kind"`
}

// AdverseEffects lists every adverse effect one of which is selected at
// random when an adverse stage begins.
var AdverseEffects = []AdverseEffect{
	{ID: "no_forwards", Name: "Attack Ban", Description: "Forwards score 0 chips", Kind: AdverseDisableForwards},
	{ID: "no_defenders", Name: "Defense Breakdown", Description: "Defenders & goalkeepers score 0 chips", Kind: AdverseDisableDefence},
	{ID: "limited_play", Name: "Tight Formation", Description: "Maximum 3 cards per play", Kind: AdverseTightFormation},
	{ID: "halve_mult", Name: "Tactical Nullification", Description: "All multipliers halved", Kind: AdverseHalveMult},
}

// randomAdverseEffect picks one effect uniformly.
func randomAdverseEffect(rng *rand.Rand) *AdverseEffect {
	e := AdverseEffects[rng.Intn(len(AdverseEffects))]
	return &e
}

// DisablesCard reports whether the effect zeroes this card's chip contribution.
func (e *AdverseEffect) DisablesCard(c Card) bool {
	if e == nil {
		return false
	}
	switch e.Kind {
	case AdverseDisableForwards:
		return c.Position == PositionForward
	case AdverseDisableDefence:
		return c.Position == PositionDefender || c.Position == PositionGoalkeeper
	}
	return false
}

// PlayCap returns the selection cap under this effect, given the normal cap.
func (e *AdverseEffect) PlayCap(normal int) int {
	if e != nil && e.Kind == AdverseTightFormation && normal > 3 {
		return 3
	}
	return normal
}

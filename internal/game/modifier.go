package game

// Rarity is a modifier card's rarity tier.
type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityUncommon  Rarity = "uncommon"
	RarityRare      Rarity = "rare"
	RarityLegendary Rarity = "legendary"
)

// sellPrices is the fixed sell-back price per rarity.
var sellPrices = map[Rarity]int{
	RarityCommon:    2,
	RarityUncommon:  3,
	RarityRare:      4,
	RarityLegendary: 5,
}

// SellPrice returns the coins refunded when a modifier of this rarity is sold.
func (r Rarity) SellPrice() int {
	if p, ok := sellPrices[r]; ok {
		return p
	}
	return sellPrices[RarityCommon]
}

// ModifierEffect is the kind of scoring effect a modifier applies.
type ModifierEffect string

const (
	EffectAddChips ModifierEffect = "add_chips"
	EffectAddMult  ModifierEffect = "add_mult"
	EffectMultMult ModifierEffect = "mult_mult"
)

// ModifierCondition gates when a modifier fires during scoring.
type ModifierCondition string

const (
	ConditionAlways      ModifierCondition = "always"
	ConditionHasScorer   ModifierCondition = "has_scorer"
	ConditionHasForward  ModifierCondition = "has_fwd"
	ConditionHasDefence  ModifierCondition = "has_def_or_gkp"
	ConditionHasMidfield ModifierCondition = "has_mid"
)

// Met evaluates the condition against the played cards.
func (c ModifierCondition) Met(played []Card) bool {
	switch c {
	case ConditionAlways:
		return true
	case ConditionHasScorer:
		for _, card := range played {
			if card.Goals > 0 {
				return true
			}
		}
	case ConditionHasForward:
		for _, card := range played {
			if card.Position == PositionForward {
				return true
			}
		}
	case ConditionHasDefence:
		for _, card := range played {
			if card.Position == PositionDefender || card.Position == PositionGoalkeeper {
				return true
			}
		}
	case ConditionHasMidfield:
		for _, card := range played {
			if card.Position == PositionMidfielder {
				return true
			}
		}
	}
	return false
}

// Modifier is a persistent passive effect ("joker"). Equipped modifiers apply
// to every play until sold; a larger candidate pool may exist but only
// equipped ones affect scoring.
//
// Value is the effect magnitude: chips to add, mult to add, or the factor for
// a multiplicative effect (e.g. 1.5).
type Modifier struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Rarity      Rarity            `json:"rarity"`
	Effect      ModifierEffect    `json:"effect"`
	Value       float64           `json:"value"`
	Condition   ModifierCondition `json:"condition"`
}

// MaxEquippedModifiers caps how many modifiers may be active at once.
const MaxEquippedModifiers = 5

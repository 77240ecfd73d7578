package game

// Rules holds the tunable parameters of a run. Defaults match the reference
// balance; deployments may override them through configuration.
type Rules struct {
	HandSize     int `json:"hand_size" mapstructure:"hand_size"`
	MaxPlays     int `json:"max_plays" mapstructure:"max_plays"`
	MaxDiscards  int `json:"max_discards" mapstructure:"max_discards"`
	MaxSelected  int `json:"max_selected" mapstructure:"max_selected"`
	TotalAntes   int `json:"total_antes" mapstructure:"total_antes"`
	InterestStep int `json:"interest_step" mapstructure:"interest_step"`
	MaxInterest  int `json:"max_interest" mapstructure:"max_interest"`

	ShopModifierCount int `json:"shop_modifier_count" mapstructure:"shop_modifier_count"`
	ModifierPrice     int `json:"modifier_price" mapstructure:"modifier_price"`
	TacticPrice       int `json:"tactic_price" mapstructure:"tactic_price"`
	TransferPrice     int `json:"transfer_price" mapstructure:"transfer_price"`
}

// DefaultRules returns the reference rule set.
func DefaultRules() Rules {
	return Rules{
		HandSize:          8,
		MaxPlays:          4,
		MaxDiscards:       3,
		MaxSelected:       5,
		TotalAntes:        8,
		InterestStep:      5,
		MaxInterest:       5,
		ShopModifierCount: 3,
		ModifierPrice:     5,
		TacticPrice:       8,
		TransferPrice:     6,
	}
}

// sanitize clamps nonsensical overrides back to the defaults.
func (r Rules) sanitize() Rules {
	def := DefaultRules()
	if r.HandSize <= 0 {
		r.HandSize = def.HandSize
	}
	if r.MaxPlays <= 0 {
		r.MaxPlays = def.MaxPlays
	}
	if r.MaxDiscards < 0 {
		r.MaxDiscards = def.MaxDiscards
	}
	if r.MaxSelected <= 0 {
		r.MaxSelected = def.MaxSelected
	}
	if r.TotalAntes <= 0 {
		r.TotalAntes = def.TotalAntes
	}
	if r.InterestStep <= 0 {
		r.InterestStep = def.InterestStep
	}
	if r.MaxInterest < 0 {
		r.MaxInterest = def.MaxInterest
	}
	if r.ShopModifierCount < 0 {
		r.ShopModifierCount = def.ShopModifierCount
	}
	if r.ModifierPrice <= 0 {
		r.ModifierPrice = def.ModifierPrice
	}
	if r.TacticPrice <= 0 {
		r.TacticPrice = def.TacticPrice
	}
	if r.TransferPrice <= 0 {
		r.TransferPrice = def.TransferPrice
	}
	return r
}

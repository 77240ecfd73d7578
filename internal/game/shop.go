package game

import "go.uber.org/zap"

// TacticOffer is a shop item that permanently raises one combo type's level.
type TacticOffer struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	ComboType  ComboType `json:"combo_type"`
	LevelBonus int       `json:"level_bonus"`
}

// ShopOffer is the fixed bundle offered on each shop visit: up to three
// modifier candidates drawn without replacement from the pool (excluding
// equipped ones), exactly one tactic and exactly one pre-resolved transfer.
// Items are removed from the offer as they are bought.
type ShopOffer struct {
	Modifiers     []Modifier   `json:"modifiers"`
	ModifierPrice int          `json:"modifier_price"`
	Tactic        *TacticOffer `json:"tactic,omitempty"`
	TacticPrice   int          `json:"tactic_price"`
	Transfer      *Transfer    `json:"transfer,omitempty"`
	TransferPrice int          `json:"transfer_price"`
}

// generateShopOffer rolls a fresh shop bundle from the run's pools.
func (r *Run) generateShopOffer() *ShopOffer {
	equipped := make(map[string]bool, len(r.Equipped))
	for _, m := range r.Equipped {
		equipped[m.ID] = true
	}
	available := make([]Modifier, 0, len(r.ModifierPool))
	for _, m := range r.ModifierPool {
		if !equipped[m.ID] {
			available = append(available, m)
		}
	}
	shuffled := make([]Modifier, len(available))
	copy(shuffled, available)
	r.rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	count := r.Rules.ShopModifierCount
	if count > len(shuffled) {
		count = len(shuffled)
	}

	def := ComboCatalog[r.rng.Intn(len(ComboCatalog))]
	tactic := &TacticOffer{
		ID:         "tactic-" + string(def.Type),
		Name:       def.Name + " Training",
		ComboType:  def.Type,
		LevelBonus: 1,
	}
	transfer := randomTransfer(r.rng, r.Squad)

	return &ShopOffer{
		Modifiers:     shuffled[:count],
		ModifierPrice: r.Rules.ModifierPrice,
		Tactic:        tactic,
		TacticPrice:   r.Rules.TacticPrice,
		Transfer:      &transfer,
		TransferPrice: r.Rules.TransferPrice,
	}
}

// BuyModifier purchases an offered modifier and equips it. Insufficient funds
// or a full equipment slate reject the purchase with no state change.
func (r *Run) BuyModifier(modifierID string) bool {
	if r.Phase != PhaseShop || r.Shop == nil {
		return false
	}
	if r.Coins < r.Shop.ModifierPrice || len(r.Equipped) >= MaxEquippedModifiers {
		return false
	}
	for i, m := range r.Shop.Modifiers {
		if m.ID == modifierID {
			r.Equipped = append(r.Equipped, m)
			r.Shop.Modifiers = append(r.Shop.Modifiers[:i], r.Shop.Modifiers[i+1:]...)
			r.Coins -= r.Shop.ModifierPrice
			r.logger.Debug("modifier bought",
				zap.String("run_id", r.ID),
				zap.String("modifier", m.ID),
				zap.Int("coins", r.Coins),
			)
			return true
		}
	}
	return false
}

// BuyTactic purchases the offered tactic, raising its combo's level.
func (r *Run) BuyTactic() bool {
	if r.Phase != PhaseShop || r.Shop == nil || r.Shop.Tactic == nil {
		return false
	}
	if r.Coins < r.Shop.TacticPrice {
		return false
	}
	t := r.Shop.Tactic
	r.ComboLevels[t.ComboType] = r.ComboLevels.Level(t.ComboType) + t.LevelBonus
	r.Coins -= r.Shop.TacticPrice
	r.Shop.Tactic = nil
	r.logger.Debug("tactic bought",
		zap.String("run_id", r.ID),
		zap.String("combo", string(t.ComboType)),
		zap.Int("level", r.ComboLevels.Level(t.ComboType)),
	)
	return true
}

// BuyTransfer purchases the offered transfer and applies its pre-resolved
// mutation to both the live deck zones and the squad template, so the change
// survives reshuffles for the rest of the run.
func (r *Run) BuyTransfer() bool {
	if r.Phase != PhaseShop || r.Shop == nil || r.Shop.Transfer == nil {
		return false
	}
	if r.Coins < r.Shop.TransferPrice {
		return false
	}
	t := *r.Shop.Transfer
	r.Squad = applyTransfer(r.Squad, t)
	r.Deck = applyTransfer(r.Deck, t)
	r.Hand = applyTransfer(r.Hand, t)
	r.DiscardPile = applyTransfer(r.DiscardPile, t)
	r.Coins -= r.Shop.TransferPrice
	r.Shop.Transfer = nil
	r.logger.Debug("transfer bought",
		zap.String("run_id", r.ID),
		zap.String("transfer", t.ID),
		zap.String("target", t.TargetID),
	)
	return true
}

// SellModifier sells an equipped modifier for its rarity-dependent price,
// refunding coins immediately. Selling is allowed in any non-terminal phase,
// independent of shop-visit timing.
func (r *Run) SellModifier(modifierID string) bool {
	if r.Phase.Terminal() {
		return false
	}
	for i, m := range r.Equipped {
		if m.ID == modifierID {
			r.Equipped = append(r.Equipped[:i], r.Equipped[i+1:]...)
			r.Coins += m.Rarity.SellPrice()
			r.logger.Debug("modifier sold",
				zap.String("run_id", r.ID),
				zap.String("modifier", m.ID),
				zap.Int("coins", r.Coins),
			)
			return true
		}
	}
	return false
}

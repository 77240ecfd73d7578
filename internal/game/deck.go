package game

import "math/rand"

// Shuffle returns a uniformly random permutation of cards using Fisher-Yates.
// The input slice is not modified.
func Shuffle(rng *rand.Rand, cards []Card) []Card {
	out := make([]Card, len(cards))
	copy(out, cards)
	for i := len(out) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// Deal takes up to handSize cards off the top of the deck.
func Deal(deck []Card, handSize int) (hand, remaining []Card) {
	return Draw(deck, handSize)
}

// Draw takes up to n cards off the top of the deck. No randomness is involved
// beyond the prior shuffle.
func Draw(deck []Card, n int) (drawn, remaining []Card) {
	if n > len(deck) {
		n = len(deck)
	}
	drawn = append([]Card(nil), deck[:n]...)
	remaining = append([]Card(nil), deck[n:]...)
	return drawn, remaining
}

// refillHand tops the hand back up to handSize. The deck is drained first;
// only when the deck is empty and the hand is still short is the discard pile
// reshuffled into a fresh deck and drawn from. The discard pile is never drawn
// from directly. If deck and discard together cannot fill the hand, the hand
// is left short rather than padded.
func refillHand(rng *rand.Rand, hand, deck, discard []Card, handSize int) (newHand, newDeck, newDiscard []Card) {
	newHand = append([]Card(nil), hand...)
	newDeck = append([]Card(nil), deck...)
	newDiscard = append([]Card(nil), discard...)

	if need := handSize - len(newHand); need > 0 {
		var drawn []Card
		drawn, newDeck = Draw(newDeck, need)
		newHand = append(newHand, drawn...)
	}

	if len(newHand) < handSize && len(newDeck) == 0 && len(newDiscard) > 0 {
		newDeck = Shuffle(rng, newDiscard)
		newDiscard = nil
		var drawn []Card
		drawn, newDeck = Draw(newDeck, handSize-len(newHand))
		newHand = append(newHand, drawn...)
	}

	return newHand, newDeck, newDiscard
}

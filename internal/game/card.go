package game

import (
	"fmt"

	"github.com/google/uuid"
)

// Position is a player's role category.
type Position string

const (
	PositionGoalkeeper Position = "GKP"
	PositionDefender   Position = "DEF"
	PositionMidfielder Position = "MID"
	PositionForward    Position = "FWD"
)

// Positions lists all role categories in conventional order.
var Positions = []Position{PositionGoalkeeper, PositionDefender, PositionMidfielder, PositionForward}

// Valid reports whether p is one of the four role categories.
func (p Position) Valid() bool {
	switch p {
	case PositionGoalkeeper, PositionDefender, PositionMidfielder, PositionForward:
		return true
	}
	return false
}

// Card is a playable card derived from one player's weekly performance.
// PlayerID is the stable identity and may repeat within a run if a duplication
// effect has fired; InstanceID is unique across deck, hand and discard pile
// for the lifetime of a run.
type Card struct {
	PlayerID   int      `json:"player_id"`
	InstanceID string   `json:"instance_id"`
	Name       string   `json:"name"`
	Position   Position `json:"position"`
	ClubID     int      `json:"club_id"`
	Club       string   `json:"club"`

	Points      int  `json:"points"`
	Goals       int  `json:"goals"`
	Assists     int  `json:"assists"`
	CleanSheets int  `json:"clean_sheets"`
	Bonus       int  `json:"bonus"`
	InDreamTeam bool `json:"in_dream_team"`
}

// SquadSize is the number of cards a weekly squad must supply:
// 11 starters plus 4 bench players, all treated as one shuffleable pool.
const SquadSize = 15

// NewSquad validates a supplied squad and assigns instance ids where missing.
// A malformed squad is a collaborator contract violation and fails fast.
func NewSquad(cards []Card) ([]Card, error) {
	if len(cards) != SquadSize {
		return nil, fmt.Errorf("squad must contain exactly %d cards, got %d", SquadSize, len(cards))
	}

	squad := make([]Card, len(cards))
	copy(squad, cards)

	seen := make(map[string]struct{}, len(squad))
	for i := range squad {
		c := &squad[i]
		if !c.Position.Valid() {
			return nil, fmt.Errorf("card %q has invalid position %q", c.Name, c.Position)
		}
		if c.InstanceID == "" {
			c.InstanceID = uuid.NewString()
		}
		if _, dup := seen[c.InstanceID]; dup {
			return nil, fmt.Errorf("duplicate card instance id %q", c.InstanceID)
		}
		seen[c.InstanceID] = struct{}{}
	}
	return squad, nil
}

// findCard returns the index of the card with the given instance id, or -1.
func findCard(cards []Card, instanceID string) int {
	for i := range cards {
		if cards[i].InstanceID == instanceID {
			return i
		}
	}
	return -1
}

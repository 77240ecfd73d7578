package game

import (
	"fmt"
	"math/rand"
)

// TransferKind is the closed set of one-shot card mutations.
type TransferKind string

const (
	TransferSwapPosition TransferKind = "swap_position"
	TransferBoostPoints  TransferKind = "boost_points"
	TransferSuperSub     TransferKind = "super_sub"
)

// Transfer is a one-shot shop item that permanently mutates one card. The
// target and resulting delta are resolved when the offer is generated, not at
// purchase time, so the buyer previews the exact outcome before paying.
//
// Exactly one variant's fields are meaningful, selected by Kind:
// NewPosition for swaps, PointsDelta for the two point boosts.
type Transfer struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Kind        TransferKind `json:"kind"`

	TargetID    string   `json:"target_id"`
	TargetName  string   `json:"target_name"`
	NewPosition Position `json:"new_position,omitempty"`
	PointsDelta int      `json:"points_delta,omitempty"`
	Preview     string   `json:"preview"`
}

// transferTemplate is an unresolved catalog entry.
type transferTemplate struct {
	id   string
	name string
	kind TransferKind
}

var transferCatalog = []transferTemplate{
	{id: "swap_pos", name: "Position Swap", kind: TransferSwapPosition},
	{id: "form_inject", name: "Form Injection", kind: TransferBoostPoints},
	{id: "super_sub", name: "Super Sub", kind: TransferSuperSub},
}

// rollTransfer resolves a transfer template against the current squad,
// fixing its target card and delta.
func rollTransfer(rng *rand.Rand, tpl transferTemplate, squad []Card) Transfer {
	t := Transfer{ID: tpl.id, Name: tpl.name, Kind: tpl.kind}
	if len(squad) == 0 {
		return t
	}

	switch tpl.kind {
	case TransferSwapPosition:
		target := squad[rng.Intn(len(squad))]
		others := make([]Position, 0, 3)
		for _, p := range Positions {
			if p != target.Position {
				others = append(others, p)
			}
		}
		newPos := others[rng.Intn(len(others))]
		t.TargetID = target.InstanceID
		t.TargetName = target.Name
		t.NewPosition = newPos
		t.Preview = fmt.Sprintf("%s → %s", target.Position, newPos)
		t.Description = fmt.Sprintf("%s: %s → %s", target.Name, target.Position, newPos)
	case TransferBoostPoints:
		target := squad[rng.Intn(len(squad))]
		t.TargetID = target.InstanceID
		t.TargetName = target.Name
		t.PointsDelta = 5
		t.Preview = "+5pts"
		t.Description = fmt.Sprintf("%s +5pts (%d → %d)", target.Name, target.Points, target.Points+5)
	case TransferSuperSub:
		weakest := squad[0]
		for _, c := range squad[1:] {
			if c.Points < weakest.Points {
				weakest = c
			}
		}
		t.TargetID = weakest.InstanceID
		t.TargetName = weakest.Name
		t.PointsDelta = 3
		t.Preview = "+3pts"
		t.Description = fmt.Sprintf("%s +3pts (%d → %d)", weakest.Name, weakest.Points, weakest.Points+3)
	}
	return t
}

// randomTransfer rolls one random transfer against the squad.
func randomTransfer(rng *rand.Rand, squad []Card) Transfer {
	tpl := transferCatalog[rng.Intn(len(transferCatalog))]
	return rollTransfer(rng, tpl, squad)
}

// applyTransfer applies a pre-resolved transfer to a card pool and returns
// the mutated copy. A missing target leaves the pool unchanged.
func applyTransfer(cards []Card, t Transfer) []Card {
	out := append([]Card(nil), cards...)
	idx := findCard(out, t.TargetID)
	if idx < 0 {
		return out
	}
	switch t.Kind {
	case TransferSwapPosition:
		if t.NewPosition.Valid() {
			out[idx].Position = t.NewPosition
		}
	case TransferBoostPoints, TransferSuperSub:
		out[idx].Points += t.PointsDelta
	}
	return out
}

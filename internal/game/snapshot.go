package game

import (
	"bytes"
	"crypto/sha256"
	"encoding/gob"
	"encoding/hex"
	"fmt"
	"math/rand"
	"sort"
	"time"

	"go.uber.org/zap"
)

// RunSnapshot is a point-in-time serialization of a run, sufficient to fully
// reconstruct it without re-deriving randomness: every random outcome (deck
// order, shop offers, adverse effect) is materialized in the state itself.
type RunSnapshot struct {
	Run     Run
	SavedAt time.Time
	Version int
}

const snapshotVersion = 1

// Snapshot captures the run's current state. Valid after any transition that
// leaves the run in a stable, resumable phase; terminal runs have nothing to
// resume and return false.
func (r *Run) Snapshot() (*RunSnapshot, bool) {
	if r.Phase.Terminal() {
		return nil, false
	}
	return &RunSnapshot{
		Run:     r.copyState(),
		SavedAt: time.Now(),
		Version: snapshotVersion,
	}, true
}

// copyState returns a deep copy of the run's serializable state.
func (r *Run) copyState() Run {
	cp := *r
	cp.Squad = append([]Card(nil), r.Squad...)
	cp.Deck = append([]Card(nil), r.Deck...)
	cp.Hand = append([]Card(nil), r.Hand...)
	cp.DiscardPile = append([]Card(nil), r.DiscardPile...)
	cp.Selected = append([]string(nil), r.Selected...)
	cp.ModifierPool = append([]Modifier(nil), r.ModifierPool...)
	cp.Equipped = append([]Modifier(nil), r.Equipped...)
	cp.Opponents = append([]LeagueOpponent(nil), r.Opponents...)
	cp.ComboLevels = make(ComboLevels, len(r.ComboLevels))
	for k, v := range r.ComboLevels {
		cp.ComboLevels[k] = v
	}
	if r.CurrentOpponent != nil {
		opp := *r.CurrentOpponent
		cp.CurrentOpponent = &opp
	}
	if r.Adverse != nil {
		adv := *r.Adverse
		cp.Adverse = &adv
	}
	if r.Shop != nil {
		shop := *r.Shop
		shop.Modifiers = append([]Modifier(nil), r.Shop.Modifiers...)
		if r.Shop.Tactic != nil {
			t := *r.Shop.Tactic
			shop.Tactic = &t
		}
		if r.Shop.Transfer != nil {
			t := *r.Shop.Transfer
			shop.Transfer = &t
		}
		cp.Shop = &shop
	}
	if r.LastScoring != nil {
		s := *r.LastScoring
		s.AllCombos = append([]ComboResult(nil), r.LastScoring.AllCombos...)
		s.Steps = append([]ScoringStep(nil), r.LastScoring.Steps...)
		cp.LastScoring = &s
	}
	cp.logger = nil
	cp.rng = nil
	return cp
}

// Restore reconstructs a live run from the snapshot. The random source is
// reseeded from the run seed mixed with the save time; resumed randomness
// does not need to continue the original stream because no random decision is
// pending in a resumable phase.
func (s *RunSnapshot) Restore(logger *zap.Logger) (*Run, error) {
	if s.Run.Phase.Terminal() {
		return nil, fmt.Errorf("cannot restore terminal run %s", s.Run.ID)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	r := s.Run.copyState()
	r.logger = logger
	r.rng = rand.New(rand.NewSource(s.Run.Seed ^ s.SavedAt.UnixNano()))
	return &r, nil
}

// Encode serializes the snapshot with gob.
func (s *RunSnapshot) Encode() ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(s); err != nil {
		return nil, fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return buf.Bytes(), nil
}

// DecodeSnapshot deserializes a snapshot produced by Encode.
func DecodeSnapshot(data []byte) (*RunSnapshot, error) {
	var s RunSnapshot
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&s); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	return &s, nil
}

// Checksum computes a deterministic SHA-256 checksum of the snapshot, built
// from a canonical representation that is independent of map iteration order
// and of the save timestamp.
func (s *RunSnapshot) Checksum() string {
	hash := sha256.Sum256([]byte(s.buildDeterministicRepresentation()))
	return hex.EncodeToString(hash[:])
}

// buildDeterministicRepresentation renders the run state as a canonical
// string. Zone order matters (it is the draw order), so zones are not sorted;
// maps are.
func (s *RunSnapshot) buildDeterministicRepresentation() string {
	var buf bytes.Buffer
	r := &s.Run

	fmt.Fprintf(&buf, "RUN:%s|%s|%d|%s|%d|%d|%d|%d|%d|%d\n",
		r.ID, r.Phase, r.Ante, r.Stage, r.ScoreTarget, r.StageScore, r.RunScore,
		r.PlaysRemaining, r.DiscardsRemaining, r.Coins)

	writeZone := func(name string, cards []Card) {
		fmt.Fprintf(&buf, "%s:", name)
		for i, c := range cards {
			if i > 0 {
				buf.WriteByte(',')
			}
			fmt.Fprintf(&buf, "%s/%d/%s/%d", c.InstanceID, c.PlayerID, c.Position, c.Points)
		}
		buf.WriteByte('\n')
	}
	writeZone("SQUAD", r.Squad)
	writeZone("DECK", r.Deck)
	writeZone("HAND", r.Hand)
	writeZone("DISCARD", r.DiscardPile)

	fmt.Fprintf(&buf, "SELECTED:%v\n", r.Selected)

	for _, m := range r.Equipped {
		fmt.Fprintf(&buf, "EQUIPPED:%s|%s|%g|%s\n", m.ID, m.Effect, m.Value, m.Condition)
	}

	levelKeys := make([]string, 0, len(r.ComboLevels))
	for k := range r.ComboLevels {
		levelKeys = append(levelKeys, string(k))
	}
	sort.Strings(levelKeys)
	for _, k := range levelKeys {
		fmt.Fprintf(&buf, "LEVEL:%s=%d\n", k, r.ComboLevels[ComboType(k)])
	}

	if r.Adverse != nil {
		fmt.Fprintf(&buf, "ADVERSE:%s\n", r.Adverse.Kind)
	}
	if r.CurrentOpponent != nil {
		fmt.Fprintf(&buf, "OPPONENT:%d|%d\n", r.CurrentOpponent.ManagerID, r.CurrentOpponent.Score)
	}
	if r.Shop != nil {
		for _, m := range r.Shop.Modifiers {
			fmt.Fprintf(&buf, "SHOP_MOD:%s\n", m.ID)
		}
		if r.Shop.Tactic != nil {
			fmt.Fprintf(&buf, "SHOP_TACTIC:%s\n", r.Shop.Tactic.ComboType)
		}
		if r.Shop.Transfer != nil {
			fmt.Fprintf(&buf, "SHOP_TRANSFER:%s|%s\n", r.Shop.Transfer.Kind, r.Shop.Transfer.TargetID)
		}
	}
	return buf.String()
}

// ValidateRoundtrip checks that a snapshot survives encode/decode without
// data loss by comparing checksums.
func ValidateRoundtrip(s *RunSnapshot) error {
	data, err := s.Encode()
	if err != nil {
		return err
	}
	decoded, err := DecodeSnapshot(data)
	if err != nil {
		return err
	}
	if s.Checksum() != decoded.Checksum() {
		return fmt.Errorf("checksum mismatch after roundtrip")
	}
	return nil
}

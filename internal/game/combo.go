package game

// ComboType identifies a named pattern over played cards.
type ComboType string

const (
	ComboBenchWarmer    ComboType = "BENCH_WARMER"
	ComboPartnership    ComboType = "PARTNERSHIP"
	ComboGoalThreat     ComboType = "GOAL_THREAT"
	ComboAssistKings    ComboType = "ASSIST_KINGS"
	ComboCleanSheetWall ComboType = "CLEAN_SHEET_WALL"
	ComboClubTrio       ComboType = "CLUB_TRIO"
	ComboMidfieldEngine ComboType = "MIDFIELD_ENGINE"
	ComboStrikeForce    ComboType = "STRIKE_FORCE"
	ComboFormation      ComboType = "FORMATION"
	ComboDreamTeam      ComboType = "DREAM_TEAM"
	ComboHatTrickHero   ComboType = "HAT_TRICK_HERO"
	ComboFullSquad      ComboType = "FULL_SQUAD"
	ComboPointPair      ComboType = "POINT_PAIR"
	ComboTwoPair        ComboType = "TWO_PAIR"
	ComboThreeOfAKind   ComboType = "POINT_THREE_OF_A_KIND"
	ComboFullHouse      ComboType = "FULL_HOUSE"
	ComboFourOfAKind    ComboType = "POINT_FOUR_OF_A_KIND"
	ComboFiveOfAKind    ComboType = "POINT_FIVE_OF_A_KIND"
)

// ComboTier orders combos by power, lowest to highest.
type ComboTier string

const (
	TierBronze  ComboTier = "bronze"
	TierSilver  ComboTier = "silver"
	TierGold    ComboTier = "gold"
	TierDiamond ComboTier = "diamond"
)

// ComboDefinition is a static catalog entry.
type ComboDefinition struct {
	Type        ComboType `json:"type"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	BaseMult    int       `json:"base_mult"`
	Tier        ComboTier `json:"tier"`
}

// ComboResult is a detected combo together with the cards that matched it.
type ComboResult struct {
	Type         ComboType `json:"type"`
	Name         string    `json:"name"`
	BaseMult     int       `json:"base_mult"`
	Tier         ComboTier `json:"tier"`
	MatchedCards []Card    `json:"matched_cards"`
}

// ComboCatalog lists every combo in detection priority order: tier from
// highest to lowest, then decreasing base mult within a tier. Bench Warmer is
// the universal fallback and must stay last.
var ComboCatalog = []ComboDefinition{
	{ComboFiveOfAKind, "Point Five of a Kind", "5 cards with identical points", 12, TierDiamond},
	{ComboFullSquad, "Full Squad", "5 players from the same club", 10, TierDiamond},
	{ComboFourOfAKind, "Point Four of a Kind", "4 cards with identical points", 8, TierDiamond},
	{ComboHatTrickHero, "Hat-Trick Hero", "A player with 3+ goals", 7, TierDiamond},
	{ComboFullHouse, "Full House", "A point pair + point three of a kind", 6, TierGold},
	{ComboDreamTeam, "Dream Team", "2+ players in the weekly dream team", 6, TierGold},
	{ComboThreeOfAKind, "Point Three of a Kind", "3 cards with identical points", 5, TierGold},
	{ComboFormation, "Formation", "GKP + DEF + MID + FWD in one play", 5, TierGold},
	{ComboStrikeForce, "Strike Force", "2+ forwards who scored", 5, TierGold},
	{ComboTwoPair, "Two Pair", "2 different pairs of matching points", 3, TierSilver},
	{ComboCleanSheetWall, "Clean Sheet Wall", "3+ DEF/GKP with clean sheets", 3, TierSilver},
	{ComboClubTrio, "Club Trio", "3 players from the same club", 3, TierSilver},
	{ComboMidfieldEngine, "Midfield Engine", "3+ midfielders", 3, TierSilver},
	{ComboPointPair, "Point Pair", "2 cards with identical points", 2, TierBronze},
	{ComboAssistKings, "Assist Kings", "2+ players with assists", 2, TierBronze},
	{ComboGoalThreat, "Goal Threat", "2+ players who scored", 2, TierBronze},
	{ComboPartnership, "Partnership", "2 players from the same club", 2, TierBronze},
	{ComboBenchWarmer, "Bench Warmer", "Any single card", 1, TierBronze},
}

// ComboByType indexes the catalog by type.
var ComboByType = func() map[ComboType]ComboDefinition {
	m := make(map[ComboType]ComboDefinition, len(ComboCatalog))
	for _, def := range ComboCatalog {
		m[def.Type] = def
	}
	return m
}()

// pointCombos is the identical-points family. Its members overlap by
// construction, so only the highest-priority match may be reported.
var pointCombos = map[ComboType]bool{
	ComboPointPair:    true,
	ComboTwoPair:      true,
	ComboThreeOfAKind: true,
	ComboFullHouse:    true,
	ComboFourOfAKind:  true,
	ComboFiveOfAKind:  true,
}

// cardGroup is one equivalence class of played cards, in encounter order.
type cardGroup struct {
	key   int
	cards []Card
}

// groupBy buckets cards by an integer key, preserving first-encounter order
// of both groups and members. Ordering matters: oversized groups are truncated
// to the first cards seen.
func groupBy(cards []Card, key func(Card) int) []cardGroup {
	var groups []cardGroup
	index := make(map[int]int)
	for _, c := range cards {
		k := key(c)
		if i, ok := index[k]; ok {
			groups[i].cards = append(groups[i].cards, c)
		} else {
			index[k] = len(groups)
			groups = append(groups, cardGroup{key: k, cards: []Card{c}})
		}
	}
	return groups
}

func groupByPoints(cards []Card) []cardGroup {
	return groupBy(cards, func(c Card) int { return c.Points })
}

func groupByClub(cards []Card) []cardGroup {
	return groupBy(cards, func(c Card) int { return c.ClubID })
}

// firstGroupOfSize returns the first group with at least n members, truncated
// to exactly n, or nil.
func firstGroupOfSize(groups []cardGroup, n int) []Card {
	for _, g := range groups {
		if len(g.cards) >= n {
			return g.cards[:n]
		}
	}
	return nil
}

func filterCards(cards []Card, keep func(Card) bool) []Card {
	var out []Card
	for _, c := range cards {
		if keep(c) {
			out = append(out, c)
		}
	}
	return out
}

// comboDetectors maps each combo to its predicate. A detector returns the
// matched subset of the play, or nil when the pattern is absent.
var comboDetectors = map[ComboType]func([]Card) []Card{
	ComboFiveOfAKind: func(cards []Card) []Card {
		return firstGroupOfSize(groupByPoints(cards), 5)
	},
	ComboFourOfAKind: func(cards []Card) []Card {
		return firstGroupOfSize(groupByPoints(cards), 4)
	},
	ComboThreeOfAKind: func(cards []Card) []Card {
		return firstGroupOfSize(groupByPoints(cards), 3)
	},
	ComboPointPair: func(cards []Card) []Card {
		return firstGroupOfSize(groupByPoints(cards), 2)
	},
	ComboTwoPair: func(cards []Card) []Card {
		var pairs [][]Card
		for _, g := range groupByPoints(cards) {
			if len(g.cards) >= 2 {
				pairs = append(pairs, g.cards[:2])
			}
			if len(pairs) == 2 {
				return append(append([]Card(nil), pairs[0]...), pairs[1]...)
			}
		}
		return nil
	},
	ComboFullHouse: func(cards []Card) []Card {
		// One group supplies the triple, a different group the pair. No card
		// is counted in both.
		var three, pair []Card
		for _, g := range groupByPoints(cards) {
			if three == nil && len(g.cards) >= 3 {
				three = g.cards[:3]
			} else if pair == nil && len(g.cards) >= 2 {
				pair = g.cards[:2]
			}
		}
		if three == nil || pair == nil {
			return nil
		}
		return append(append([]Card(nil), three...), pair...)
	},
	ComboFullSquad: func(cards []Card) []Card {
		return firstGroupOfSize(groupByClub(cards), 5)
	},
	ComboClubTrio: func(cards []Card) []Card {
		for _, g := range groupByClub(cards) {
			if len(g.cards) >= 3 {
				return g.cards
			}
		}
		return nil
	},
	ComboPartnership: func(cards []Card) []Card {
		for _, g := range groupByClub(cards) {
			if len(g.cards) >= 2 {
				return g.cards
			}
		}
		return nil
	},
	ComboHatTrickHero: func(cards []Card) []Card {
		for _, c := range cards {
			if c.Goals >= 3 {
				return []Card{c}
			}
		}
		return nil
	},
	ComboDreamTeam: func(cards []Card) []Card {
		dreamers := filterCards(cards, func(c Card) bool { return c.InDreamTeam })
		if len(dreamers) >= 2 {
			return dreamers
		}
		return nil
	},
	ComboFormation: func(cards []Card) []Card {
		present := make(map[Position]bool, 4)
		for _, c := range cards {
			present[c.Position] = true
		}
		for _, p := range Positions {
			if !present[p] {
				return nil
			}
		}
		return cards
	},
	ComboStrikeForce: func(cards []Card) []Card {
		fwds := filterCards(cards, func(c Card) bool {
			return c.Position == PositionForward && c.Goals > 0
		})
		if len(fwds) >= 2 {
			return fwds
		}
		return nil
	},
	ComboCleanSheetWall: func(cards []Card) []Card {
		wall := filterCards(cards, func(c Card) bool {
			return (c.Position == PositionDefender || c.Position == PositionGoalkeeper) && c.CleanSheets > 0
		})
		if len(wall) >= 3 {
			return wall
		}
		return nil
	},
	ComboMidfieldEngine: func(cards []Card) []Card {
		mids := filterCards(cards, func(c Card) bool { return c.Position == PositionMidfielder })
		if len(mids) >= 3 {
			return mids
		}
		return nil
	},
	ComboAssistKings: func(cards []Card) []Card {
		assisters := filterCards(cards, func(c Card) bool { return c.Assists > 0 })
		if len(assisters) >= 2 {
			return assisters
		}
		return nil
	},
	ComboGoalThreat: func(cards []Card) []Card {
		scorers := filterCards(cards, func(c Card) bool { return c.Goals > 0 })
		if len(scorers) >= 2 {
			return scorers
		}
		return nil
	},
	ComboBenchWarmer: func(cards []Card) []Card {
		if len(cards) >= 1 {
			return cards[:1]
		}
		return nil
	},
}

func resultFor(def ComboDefinition, matched []Card) ComboResult {
	return ComboResult{
		Type:         def.Type,
		Name:         def.Name,
		BaseMult:     def.BaseMult,
		Tier:         def.Tier,
		MatchedCards: matched,
	}
}

// DetectBest returns the highest-priority combo matching the play. Bench
// Warmer matches any non-empty play, so detection never fails for one.
func DetectBest(cards []Card) ComboResult {
	for _, def := range ComboCatalog {
		if matched := comboDetectors[def.Type](cards); matched != nil {
			return resultFor(def, matched)
		}
	}
	// Unreachable for non-empty plays; empty plays are rejected upstream.
	fallback := ComboCatalog[len(ComboCatalog)-1]
	return resultFor(fallback, nil)
}

// DetectAll returns every matching combo in priority order. The
// identical-points family is mutually exclusive: only its first match is
// reported. Bench Warmer is dropped whenever any other combo matched.
// Matched subsets of independently reported combos may share card instances.
func DetectAll(cards []Card) []ComboResult {
	var results []ComboResult
	pointComboSeen := false

	for _, def := range ComboCatalog {
		matched := comboDetectors[def.Type](cards)
		if matched == nil {
			continue
		}
		if pointCombos[def.Type] {
			if pointComboSeen {
				continue
			}
			pointComboSeen = true
		}
		results = append(results, resultFor(def, matched))
	}

	if len(results) > 1 {
		kept := results[:0]
		for _, r := range results {
			if r.Type != ComboBenchWarmer {
				kept = append(kept, r)
			}
		}
		results = kept
	}
	return results
}

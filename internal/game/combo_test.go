package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func comboTypes(results []ComboResult) []ComboType {
	types := make([]ComboType, len(results))
	for i, r := range results {
		types[i] = r.Type
	}
	return types
}

func TestDetectBestSingleCardFallsBackToBenchWarmer(t *testing.T) {
	play := []Card{testCard("Solo", PositionMidfielder, 1, 6)}

	best := DetectBest(play)

	assert.Equal(t, ComboBenchWarmer, best.Type)
	assert.Equal(t, 1, best.BaseMult)
	require.Len(t, best.MatchedCards, 1)
	assert.Equal(t, "Solo", best.MatchedCards[0].Name)
}

func TestDetectBestPointPair(t *testing.T) {
	play := []Card{
		testCard("A", PositionForward, 1, 10),
		testCard("B", PositionMidfielder, 2, 10),
	}

	best := DetectBest(play)

	assert.Equal(t, ComboPointPair, best.Type)
	assert.Equal(t, 2, best.BaseMult)
	assert.Len(t, best.MatchedCards, 2)
}

func TestDetectBestPrefersHigherPriority(t *testing.T) {
	// Five identical-points cards from the same club match both Point Five of
	// a Kind and Full Squad; the higher catalog entry wins.
	var play []Card
	for i := 0; i < 5; i++ {
		play = append(play, testCard("P", PositionMidfielder, 7, 9))
	}

	best := DetectBest(play)

	assert.Equal(t, ComboFiveOfAKind, best.Type)
	assert.Equal(t, 12, best.BaseMult)
	assert.Len(t, best.MatchedCards, 5)
}

func TestDetectBestHatTrickHero(t *testing.T) {
	scorer := testCard("Haaland", PositionForward, 1, 17)
	scorer.Goals = 3
	play := []Card{scorer, testCard("B", PositionDefender, 2, 2)}

	best := DetectBest(play)

	assert.Equal(t, ComboHatTrickHero, best.Type)
	require.Len(t, best.MatchedCards, 1)
	assert.Equal(t, "Haaland", best.MatchedCards[0].Name)
}

func TestDetectBestFullHouseUsesDistinctGroups(t *testing.T) {
	play := []Card{
		testCard("T1", PositionMidfielder, 1, 8),
		testCard("T2", PositionMidfielder, 2, 8),
		testCard("T3", PositionDefender, 3, 8),
		testCard("P1", PositionForward, 4, 4),
		testCard("P2", PositionDefender, 1, 4),
	}

	best := DetectBest(play)

	assert.Equal(t, ComboFullHouse, best.Type)
	require.Len(t, best.MatchedCards, 5)
	points := map[int]int{}
	for _, c := range best.MatchedCards {
		points[c.Points]++
	}
	assert.Equal(t, 3, points[8])
	assert.Equal(t, 2, points[4])
}

func TestDetectBestFormation(t *testing.T) {
	play := []Card{
		testCard("GK", PositionGoalkeeper, 1, 1),
		testCard("D", PositionDefender, 2, 2),
		testCard("M", PositionMidfielder, 3, 3),
		testCard("F", PositionForward, 4, 4),
	}

	best := DetectBest(play)

	assert.Equal(t, ComboFormation, best.Type)
	assert.Len(t, best.MatchedCards, 4)
}

func TestDetectBestCleanSheetWall(t *testing.T) {
	var play []Card
	for i, pos := range []Position{PositionGoalkeeper, PositionDefender, PositionDefender} {
		c := testCard("W", pos, i+1, i+1)
		c.CleanSheets = 1
		play = append(play, c)
	}

	best := DetectBest(play)

	assert.Equal(t, ComboCleanSheetWall, best.Type)
	assert.Len(t, best.MatchedCards, 3)
}

func TestDetectBestStrikeForceRequiresScoringForwards(t *testing.T) {
	f1 := testCard("F1", PositionForward, 1, 6)
	f1.Goals = 1
	f2 := testCard("F2", PositionForward, 2, 5)
	f2.Goals = 2

	best := DetectBest([]Card{f1, f2})
	assert.Equal(t, ComboStrikeForce, best.Type)

	// A forward without a goal does not count.
	f2.Goals = 0
	best = DetectBest([]Card{f1, f2})
	assert.NotEqual(t, ComboStrikeForce, best.Type)
}

func TestDetectTruncatesOversizedGroupInEncounterOrder(t *testing.T) {
	a := testCard("A", PositionMidfielder, 1, 7)
	b := testCard("B", PositionDefender, 2, 3)
	c := testCard("C", PositionForward, 3, 7)
	d := testCard("D", PositionDefender, 4, 7)

	best := DetectBest([]Card{a, b, c, d})

	require.Equal(t, ComboThreeOfAKind, best.Type)
	require.Len(t, best.MatchedCards, 3)
	assert.Equal(t, a.InstanceID, best.MatchedCards[0].InstanceID)
	assert.Equal(t, c.InstanceID, best.MatchedCards[1].InstanceID)
	assert.Equal(t, d.InstanceID, best.MatchedCards[2].InstanceID)
}

func TestDetectAllPointFamilyIsMutuallyExclusive(t *testing.T) {
	play := []Card{
		testCard("A", PositionMidfielder, 1, 9),
		testCard("B", PositionDefender, 2, 9),
		testCard("C", PositionForward, 3, 9),
	}

	types := comboTypes(DetectAll(play))

	assert.Contains(t, types, ComboThreeOfAKind)
	assert.NotContains(t, types, ComboPointPair)
	assert.NotContains(t, types, ComboTwoPair)
}

func TestDetectAllDropsBenchWarmerWhenOtherCombosMatch(t *testing.T) {
	play := []Card{
		testCard("A", PositionForward, 1, 10),
		testCard("B", PositionMidfielder, 2, 10),
	}

	types := comboTypes(DetectAll(play))

	assert.Contains(t, types, ComboPointPair)
	assert.NotContains(t, types, ComboBenchWarmer)
}

func TestDetectAllSingleUnmatchedCardIsBenchWarmerOnly(t *testing.T) {
	play := []Card{testCard("Solo", PositionDefender, 1, 2)}

	results := DetectAll(play)

	require.Len(t, results, 1)
	assert.Equal(t, ComboBenchWarmer, results[0].Type)
}

func TestDetectAllReportsIndependentCombosTogether(t *testing.T) {
	// Two scoring forwards from the same club with identical points: Strike
	// Force, Goal Threat, Partnership and Point Pair all fire on one play.
	f1 := testCard("F1", PositionForward, 9, 8)
	f1.Goals = 1
	f2 := testCard("F2", PositionForward, 9, 8)
	f2.Goals = 1

	types := comboTypes(DetectAll([]Card{f1, f2}))

	assert.Contains(t, types, ComboStrikeForce)
	assert.Contains(t, types, ComboGoalThreat)
	assert.Contains(t, types, ComboPartnership)
	assert.Contains(t, types, ComboPointPair)
}

func TestDetectAllFirstResultMatchesDetectBest(t *testing.T) {
	plays := [][]Card{
		{testCard("A", PositionMidfielder, 1, 4)},
		{testCard("A", PositionForward, 1, 6), testCard("B", PositionDefender, 2, 6)},
		{testCard("A", PositionMidfielder, 3, 1), testCard("B", PositionMidfielder, 3, 2), testCard("C", PositionMidfielder, 3, 3)},
	}
	for _, play := range plays {
		results := DetectAll(play)
		require.NotEmpty(t, results)
		assert.Equal(t, DetectBest(play).Type, results[0].Type)
	}
}

func TestDetectAllPreservesCatalogOrder(t *testing.T) {
	priority := make(map[ComboType]int, len(ComboCatalog))
	for i, def := range ComboCatalog {
		priority[def.Type] = i
	}

	f1 := testCard("F1", PositionForward, 5, 7)
	f1.Goals = 1
	f2 := testCard("F2", PositionForward, 5, 7)
	f2.Goals = 1
	m := testCard("M", PositionMidfielder, 5, 3)

	results := DetectAll([]Card{f1, f2, m})
	require.True(t, len(results) > 1)
	for i := 1; i < len(results); i++ {
		assert.Less(t, priority[results[i-1].Type], priority[results[i].Type])
	}
}

func TestComboCatalogEndsWithBenchWarmer(t *testing.T) {
	require.NotEmpty(t, ComboCatalog)
	assert.Equal(t, ComboBenchWarmer, ComboCatalog[len(ComboCatalog)-1].Type)
	assert.Len(t, ComboByType, len(ComboCatalog))
	for _, def := range ComboCatalog {
		_, ok := comboDetectors[def.Type]
		assert.True(t, ok, "missing detector for %s", def.Type)
	}
}

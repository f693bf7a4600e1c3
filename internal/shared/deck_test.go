package shared

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildDeckComposition(t *testing.T) {
	assert := assert.New(t)
	deck := BuildDeck()

	require.Len(t, deck, DeckSize)

	ids := map[string]bool{}
	perColor := map[Color]int{}
	wilds := map[Value]int{}
	for _, c := range deck {
		assert.False(ids[c.ID], "duplicate card id %s", c.ID)
		ids[c.ID] = true
		if c.IsWild() {
			wilds[c.Value]++
			continue
		}
		perColor[c.Color]++
	}

	for _, color := range PlayableColors {
		assert.Equal(20, perColor[color], "color %s", color)
	}
	assert.Equal(4, wilds[ValueChange])
	assert.Equal(4, wilds[ValuePlus4])
}

func TestDeckSizeCountsEveryCard(t *testing.T) {
	colored, wild := 0, 0
	for _, c := range BuildDeck() {
		if c.IsWild() {
			wild++
		} else {
			colored++
		}
	}

	assert.Equal(t, 80, colored)
	assert.Equal(t, 8, wild)
	assert.Equal(t, 88, DeckSize)
	assert.Equal(t, colored+wild, DeckSize)
}

func TestBuildDeckTwoCopiesPerColoredValue(t *testing.T) {
	counts := map[string]int{}
	for _, c := range BuildDeck() {
		if !c.IsWild() {
			counts[string(c.Color)+"/"+string(c.Value)]++
		}
	}
	assert.Len(t, counts, 40)
	for key, n := range counts {
		assert.Equal(t, 2, n, key)
	}
}

func TestShuffleReturnsPermutationWithoutMutatingInput(t *testing.T) {
	deck := BuildDeck()
	original := make([]Card, len(deck))
	copy(original, deck)

	shuffled := Shuffle(deck)

	assert.Equal(t, original, deck, "input must not be reordered")
	assert.ElementsMatch(t, deck, shuffled)
}

func TestShuffleEmpty(t *testing.T) {
	assert.Empty(t, Shuffle(nil))
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want Color
		ok   bool
	}{
		{"red", Red, true},
		{"yellow", Yellow, true},
		{"wild", "", false},
		{"Red", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseColor(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDrawPenalty(t *testing.T) {
	assert.Equal(t, 2, Card{Color: Red, Value: ValuePlus2}.DrawPenalty())
	assert.Equal(t, 4, Card{Color: Wild, Value: ValuePlus4}.DrawPenalty())
	assert.Equal(t, 0, Card{Color: Wild, Value: ValueChange}.DrawPenalty())
	assert.Equal(t, 0, Card{Color: Blue, Value: "7"}.DrawPenalty())
}

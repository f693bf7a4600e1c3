package shared

import (
	"fmt"
	"math/rand/v2"
)

// DeckSize is the number of cards in a full deck.
const DeckSize = 88

// Values printed on each color. "0" is a legal value but the deck carries none.
var coloredValues = []Value{"1", "2", "3", "4", "5", "6", "7", "8", "9", ValuePlus2}

// BuildDeck creates the deck in a fixed order: two copies of every colored
// value (80 cards) plus four color-change and four plus4 wilds.
func BuildDeck() []Card {
	cards := make([]Card, 0, DeckSize)
	for _, color := range PlayableColors {
		for _, value := range coloredValues {
			for copyNum := 1; copyNum <= 2; copyNum++ {
				cards = append(cards, Card{
					ID:    fmt.Sprintf("%s-%s-%d", color, value, copyNum),
					Color: color,
					Value: value,
				})
			}
		}
	}

	for i := 0; i < 4; i++ {
		cards = append(cards,
			Card{ID: fmt.Sprintf("change-%d", i), Color: Wild, Value: ValueChange},
			Card{ID: fmt.Sprintf("plus4-%d", i), Color: Wild, Value: ValuePlus4},
		)
	}
	return cards
}

// Shuffle returns a uniformly shuffled copy of cards. The input is left untouched.
func Shuffle(cards []Card) []Card {
	out := make([]Card, len(cards))
	copy(out, cards)
	for i := len(out) - 1; i > 0; i-- {
		j := rand.IntN(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}

package shared

// Color represents the color of a card. Wild cards carry Wild.
type Color string

const (
	Red    Color = "red"
	Blue   Color = "blue"
	Green  Color = "green"
	Yellow Color = "yellow"
	Wild   Color = "wild"
)

// Value represents the face value of a card.
type Value string

const (
	ValuePlus2  Value = "plus2"
	ValueChange Value = "change" // Wild color change
	ValuePlus4  Value = "plus4"  // Wild draw four
)

// PlayableColors are the colors a wild card can be turned into.
var PlayableColors = []Color{Red, Blue, Green, Yellow}

// Card represents a single card. Cards are never mutated once built.
type Card struct {
	ID    string `json:"id"`    // Stable identifier distinguishing duplicates
	Color Color  `json:"color"` // The color of the card
	Value Value  `json:"value"` // The face value of the card
}

// IsWild reports whether the card has no color of its own.
func (c Card) IsWild() bool {
	return c.Color == Wild
}

// IsPenalty reports whether the card forces the next player to draw.
func (c Card) IsPenalty() bool {
	return c.Value == ValuePlus2 || c.Value == ValuePlus4
}

// DrawPenalty returns how many cards the card adds to a pending draw.
func (c Card) DrawPenalty() int {
	switch c.Value {
	case ValuePlus2:
		return 2
	case ValuePlus4:
		return 4
	}
	return 0
}

// ParseColor converts a client-supplied color into one of the playable colors.
func ParseColor(s string) (Color, bool) {
	for _, c := range PlayableColors {
		if string(c) == s {
			return c, true
		}
	}
	return "", false
}

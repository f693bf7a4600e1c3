package shared

// Pile is an ordered stack of cards. The front is the next card drawn;
// the back is the top of a discard pile.
type Pile struct {
	Cards []Card
}

// NewPile creates a pile holding a copy of cards.
func NewPile(cards []Card) Pile {
	p := Pile{Cards: make([]Card, len(cards))}
	copy(p.Cards, cards)
	return p
}

// Len returns the number of cards in the pile.
func (p *Pile) Len() int {
	return len(p.Cards)
}

// Top returns the most recently pushed card.
func (p *Pile) Top() (Card, bool) {
	if len(p.Cards) == 0 {
		return Card{}, false
	}
	return p.Cards[len(p.Cards)-1], true
}

// Push places a card on top of the pile.
func (p *Pile) Push(card Card) {
	p.Cards = append(p.Cards, card)
}

// PushBottom places a card under every other card of a draw pile.
func (p *Pile) PushBottom(cards ...Card) {
	p.Cards = append(p.Cards, cards...)
}

// PopFront removes and returns the next card to draw.
func (p *Pile) PopFront() (Card, bool) {
	if len(p.Cards) == 0 {
		return Card{}, false
	}
	card := p.Cards[0]
	p.Cards = p.Cards[1:]
	return card, true
}

// Reclaim removes every card except the top one and returns them.
func (p *Pile) Reclaim() []Card {
	if len(p.Cards) <= 1 {
		return nil
	}
	top := p.Cards[len(p.Cards)-1]
	rest := make([]Card, len(p.Cards)-1)
	copy(rest, p.Cards[:len(p.Cards)-1])
	p.Cards = []Card{top}
	return rest
}

// Deal hands out cardsPerPlayer consecutive cards to each player in order.
// Returns nil, leaving the pile untouched, if there are not enough cards.
func (p *Pile) Deal(numPlayers, cardsPerPlayer int) [][]Card {
	if len(p.Cards) < numPlayers*cardsPerPlayer {
		return nil
	}

	dealt := make([][]Card, numPlayers)
	start := 0
	for i := 0; i < numPlayers; i++ {
		end := start + cardsPerPlayer
		// Copy so hands never alias the pile's backing array
		hand := make([]Card, cardsPerPlayer)
		copy(hand, p.Cards[start:end])
		dealt[i] = hand
		start = end
	}
	p.Cards = p.Cards[start:]
	return dealt
}

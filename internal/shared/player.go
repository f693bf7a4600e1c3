package shared

// Player represents a seat in a room.
type Player struct {
	ID     string // Transport connection identifier
	Name   string // Display name, unique per room ignoring case
	Hand   []Card // Cards currently held, in the order received
	IsHost bool
}

// NewPlayer creates a new player with the given ID and name.
func NewPlayer(id string, name string, isHost bool) *Player {
	return &Player{
		ID:     id,
		Name:   name,
		Hand:   []Card{},
		IsHost: isHost,
	}
}

// AddCard adds a card to the player's hand.
func (p *Player) AddCard(card Card) {
	p.Hand = append(p.Hand, card)
}

// RemoveCard removes the card with the given ID from the player's hand.
func (p *Player) RemoveCard(cardID string) (Card, bool) {
	for i, c := range p.Hand {
		if c.ID == cardID {
			p.Hand = append(p.Hand[:i], p.Hand[i+1:]...)
			return c, true
		}
	}
	return Card{}, false
}

// FindCard looks up a card in the player's hand by ID.
func (p *Player) FindCard(cardID string) (Card, bool) {
	for _, c := range p.Hand {
		if c.ID == cardID {
			return c, true
		}
	}
	return Card{}, false
}

// HasPenaltyCard reports whether the player can answer a pending draw.
func (p *Player) HasPenaltyCard() bool {
	for _, c := range p.Hand {
		if c.IsPenalty() {
			return true
		}
	}
	return false
}

// TakeHand empties the player's hand and returns what it held.
func (p *Player) TakeHand() []Card {
	hand := p.Hand
	p.Hand = []Card{}
	return hand
}

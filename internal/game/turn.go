package game

import (
	"fmt"

	"uno-game/internal/shared"

	"github.com/rs/zerolog/log"
)

// IsLegalPlay checks whether card may be played on top. While a draw is
// pending only penalty cards may be played, whatever their color.
func IsLegalPlay(card, top shared.Card, chosenColor shared.Color, pendingDraw int) bool {
	if pendingDraw > 0 {
		return card.IsPenalty()
	}
	if card.IsWild() {
		return true
	}
	if chosenColor != "" && card.Color == chosenColor {
		return true
	}
	return card.Color == top.Color || card.Value == top.Value
}

// TopCard returns the card on top of the discard pile.
func (s *Session) TopCard() (shared.Card, bool) {
	return s.DiscardPile.Top()
}

// checkInPlay rejects actions outside a running round.
func (s *Session) checkInPlay() error {
	if !s.Started {
		return ErrNotStarted
	}
	if s.Winner != "" {
		return ErrGameOver
	}
	return nil
}

// checkTurn returns the acting player if it is their turn.
func (s *Session) checkTurn(playerID string) (*shared.Player, error) {
	current := s.CurrentPlayer()
	if current == nil || current.ID != playerID {
		return nil, ErrNotYourTurn
	}
	return current, nil
}

// PlayCard plays cardID from the acting player's hand and resolves its effect.
// chosenColor is only read for wild cards and may be empty.
func (s *Session) PlayCard(playerID, cardID string, chosenColor string) error {
	if err := s.checkInPlay(); err != nil {
		return err
	}
	player, err := s.checkTurn(playerID)
	if err != nil {
		return err
	}
	card, found := player.FindCard(cardID)
	if !found {
		return ErrCardNotInHand
	}
	top, _ := s.TopCard()
	if !IsLegalPlay(card, top, s.ChosenColor, s.PendingDraw) {
		return ErrIllegalPlay
	}
	var color shared.Color
	if card.IsWild() && chosenColor != "" {
		c, ok := shared.ParseColor(chosenColor)
		if !ok {
			return NewError(IllegalPlay, fmt.Sprintf("Unknown color %q.", chosenColor))
		}
		color = c
	}

	player.RemoveCard(card.ID)
	s.DiscardPile.Push(card)
	s.ChosenColor = ""
	s.MustRespond = false

	switch {
	case card.IsPenalty():
		s.PendingDraw += card.DrawPenalty()
		s.ChosenColor = color
		s.advanceTurn()
		next := s.CurrentPlayer()
		if s.Rules.Stacking && next.HasPenaltyCard() {
			s.MustRespond = true
		} else {
			s.drawCards(next, s.PendingDraw)
			s.PendingDraw = 0
			s.advanceTurn()
		}
	case card.Value == shared.ValueChange:
		s.ChosenColor = color
		s.advanceTurn()
	default:
		s.advanceTurn()
	}

	if len(player.Hand) == 0 {
		s.Winner = player.Name
		s.addSystemMessage(fmt.Sprintf("%s wins the game!", player.Name))
		log.Info().Str("room_code", s.RoomCode).Str("winner", player.Name).Msg("Game won")
	}
	return nil
}

// RequestDraw draws one card for the acting player and passes the turn.
func (s *Session) RequestDraw(playerID string) error {
	if err := s.checkInPlay(); err != nil {
		return err
	}
	player, err := s.checkTurn(playerID)
	if err != nil {
		return err
	}
	if s.PendingDraw > 0 {
		return ErrPendingDrawActive
	}

	s.drawCard(player)
	s.advanceTurn()
	return nil
}

// AcceptPendingDraw makes the acting player take the whole pending draw and
// passes the turn. It returns the number of cards drawn; zero means no-op.
func (s *Session) AcceptPendingDraw(playerID string) (int, error) {
	if err := s.checkInPlay(); err != nil {
		return 0, err
	}
	player, err := s.checkTurn(playerID)
	if err != nil {
		return 0, err
	}
	if s.PendingDraw == 0 {
		return 0, nil
	}

	drawn := s.drawCards(player, s.PendingDraw)
	s.PendingDraw = 0
	s.MustRespond = false
	s.advanceTurn()
	return drawn, nil
}

// drawCards draws up to n cards for player and returns how many were drawn.
func (s *Session) drawCards(player *shared.Player, n int) int {
	drawn := 0
	for i := 0; i < n; i++ {
		if _, ok := s.drawCard(player); !ok {
			break
		}
		drawn++
	}
	return drawn
}

// drawCard moves the next card of the draw pile into player's hand,
// reshuffling the discard pile under its top card when the draw pile is empty.
func (s *Session) drawCard(player *shared.Player) (shared.Card, bool) {
	if s.DrawPile.Len() == 0 {
		reclaimed := s.DiscardPile.Reclaim()
		if len(reclaimed) > 0 {
			s.DrawPile = shared.NewPile(s.shuffleCards(reclaimed))
			log.Debug().Str("room_code", s.RoomCode).Int("cards", len(reclaimed)).Msg("Discard pile reshuffled into draw pile")
		}
	}

	card, ok := s.DrawPile.PopFront()
	if !ok {
		return shared.Card{}, false
	}
	player.AddCard(card)
	return card, true
}

// advanceTurn moves to the next seat in the current direction.
func (s *Session) advanceTurn() {
	n := len(s.Players)
	if n == 0 {
		return
	}
	s.CurrentPlayerIndex = ((s.CurrentPlayerIndex+s.Direction)%n + n) % n
}

package game

import "uno-game/internal/shared"

// PlayerSummary is what every viewer may see about a seat.
type PlayerSummary struct {
	ID              string        `json:"id"`
	Name            string        `json:"name"`
	CardCount       int           `json:"card_count"`
	Cards           []shared.Card `json:"cards,omitempty"` // Viewer's own seat only
	IsHost          bool          `json:"is_host"`
	IsCurrentPlayer bool          `json:"is_current_player"`
}

// PlayerView is one player's projection of a session. It is the only form
// in which session state may leave the process.
type PlayerView struct {
	RoomCode        string          `json:"room_code"`
	Players         []PlayerSummary `json:"players"`
	TopCard         *shared.Card    `json:"top_card,omitempty"`
	DeckCount       int             `json:"deck_count"`
	CurrentPlayerID string          `json:"current_player_id,omitempty"`
	ChosenColor     shared.Color    `json:"chosen_color,omitempty"`
	Direction       int             `json:"direction"`
	Started         bool            `json:"started"`
	Winner          string          `json:"winner,omitempty"`
	PendingDraw     int             `json:"pending_draw"`
	MustRespond     bool            `json:"must_respond"`
	CanStack        bool            `json:"can_stack"`
	MyCards         []shared.Card   `json:"my_cards"`
	IsMyTurn        bool            `json:"is_my_turn"`
	Chat            []ChatEntry     `json:"chat"`
}

// Sanitize builds the view of s seen by viewerID. Other players' hands are
// reduced to counts.
func Sanitize(s *Session, viewerID string) PlayerView {
	current := s.CurrentPlayer()
	view := PlayerView{
		RoomCode:    s.RoomCode,
		Players:     make([]PlayerSummary, 0, len(s.Players)),
		DeckCount:   s.DrawPile.Len(),
		ChosenColor: s.ChosenColor,
		Direction:   s.Direction,
		Started:     s.Started,
		Winner:      s.Winner,
		PendingDraw: s.PendingDraw,
		MyCards:     []shared.Card{},
		Chat:        tailChat(s.Chat, s.Rules.ChatView),
	}
	if top, ok := s.TopCard(); ok {
		view.TopCard = &top
	}
	if current != nil {
		view.CurrentPlayerID = current.ID
		view.IsMyTurn = current.ID == viewerID
		view.MustRespond = s.MustRespond && view.IsMyTurn
	}

	for _, p := range s.Players {
		summary := PlayerSummary{
			ID:              p.ID,
			Name:            p.Name,
			CardCount:       len(p.Hand),
			IsHost:          p.IsHost,
			IsCurrentPlayer: current != nil && current.ID == p.ID,
		}
		if p.ID == viewerID {
			summary.Cards = copyCards(p.Hand)
			view.MyCards = copyCards(p.Hand)
			view.CanStack = p.HasPenaltyCard()
		}
		view.Players = append(view.Players, summary)
	}
	return view
}

// Broadcast builds one view per seated player, keyed by player ID.
func Broadcast(s *Session) map[string]PlayerView {
	views := make(map[string]PlayerView, len(s.Players))
	for _, p := range s.Players {
		views[p.ID] = Sanitize(s, p.ID)
	}
	return views
}

func tailChat(chat []ChatEntry, limit int) []ChatEntry {
	start := 0
	if limit > 0 && len(chat) > limit {
		start = len(chat) - limit
	}
	out := make([]ChatEntry, len(chat)-start)
	copy(out, chat[start:])
	return out
}

func copyCards(cards []shared.Card) []shared.Card {
	out := make([]shared.Card, len(cards))
	copy(out, cards)
	return out
}

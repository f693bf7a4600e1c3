package game

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"uno-game/internal/shared"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/text/cases"
)

const maxNameLength = 20

// ChatEntry is one line of a room's chat log.
type ChatEntry struct {
	ID     string    `json:"id"`
	Author string    `json:"author,omitempty"` // Empty for system entries
	Text   string    `json:"text"`
	System bool      `json:"system"`
	SentAt time.Time `json:"sent_at"`
}

// Session holds the authoritative state of one room.
type Session struct {
	ID                 string
	RoomCode           string
	Players            []*shared.Player // Slice order is turn order
	DrawPile           shared.Pile
	DiscardPile        shared.Pile
	CurrentPlayerIndex int
	Direction          int
	ChosenColor        shared.Color // Set only while a wild card is on top
	PendingDraw        int
	MustRespond        bool // Current player must stack or accept PendingDraw
	Started            bool
	Winner             string
	Chat               []ChatEntry
	Rules              Rules

	shuffle func([]shared.Card) []shared.Card
}

// NewSession creates a one-player session hosted by hostID.
func NewSession(roomCode, hostID, hostName string, rules Rules) *Session {
	return &Session{
		ID:        uuid.NewString(),
		RoomCode:  strings.ToUpper(roomCode),
		Players:   []*shared.Player{shared.NewPlayer(hostID, strings.TrimSpace(hostName), true)},
		Direction: 1,
		Chat:      []ChatEntry{},
		Rules:     rules,
		shuffle:   shared.Shuffle,
	}
}

// ValidateName checks a display name before it is used to create or join a room.
func ValidateName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return NewError(InvalidRequest, "Name cannot be empty.")
	}
	if utf8.RuneCountInString(name) > maxNameLength {
		return NewError(InvalidRequest, fmt.Sprintf("Name cannot be longer than %d characters.", maxNameLength))
	}
	return nil
}

// Join appends a non-host player.
func (s *Session) Join(playerID, name string) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	name = strings.TrimSpace(name)
	if len(s.Players) >= s.Rules.MaxPlayers {
		return ErrRoomFull
	}
	if s.Started {
		return ErrAlreadyStarted
	}
	if s.PlayerIndex(playerID) != -1 {
		return ErrAlreadyInRoom
	}
	folder := cases.Fold()
	folded := folder.String(name)
	for _, p := range s.Players {
		if folder.String(p.Name) == folded {
			return ErrNameTaken
		}
	}

	s.Players = append(s.Players, shared.NewPlayer(playerID, name, false))
	s.addSystemMessage(fmt.Sprintf("%s joined the room.", name))
	return nil
}

// Start deals the first round. Only the host can start.
func (s *Session) Start(requesterID string) error {
	if !s.isHost(requesterID) {
		return ErrNotHost
	}
	if s.Started {
		return ErrAlreadyStarted
	}
	if len(s.Players) < s.Rules.MinPlayers {
		return ErrNotEnoughPlayers
	}

	s.deal()
	log.Info().Str("room_code", s.RoomCode).Int("players", len(s.Players)).Msg("Game started")
	return nil
}

// Restart resets the round in place, keeping the roster, and deals again.
func (s *Session) Restart(requesterID string) error {
	if !s.isHost(requesterID) {
		return ErrNotHost
	}
	if len(s.Players) < s.Rules.MinPlayers {
		return ErrNotEnoughPlayers
	}

	s.addSystemMessage("The host restarted the game.")
	s.deal()
	log.Info().Str("room_code", s.RoomCode).Msg("Game restarted")
	return nil
}

// deal rebuilds every pile from a fresh deck and reveals the first card.
func (s *Session) deal() {
	for _, p := range s.Players {
		p.Hand = []shared.Card{}
	}
	s.DiscardPile = shared.Pile{}
	s.CurrentPlayerIndex = 0
	s.Direction = 1
	s.ChosenColor = ""
	s.PendingDraw = 0
	s.MustRespond = false
	s.Winner = ""

	s.DrawPile = shared.NewPile(s.shuffleCards(shared.BuildDeck()))
	hands := s.DrawPile.Deal(len(s.Players), s.Rules.HandSize)
	for i, hand := range hands {
		s.Players[i].Hand = hand
	}

	// The deck always holds plain colored cards, so this terminates.
	for {
		card, _ := s.DrawPile.PopFront()
		if card.IsWild() || card.Value == shared.ValuePlus2 {
			s.DrawPile.PushBottom(card)
			continue
		}
		s.DiscardPile.Push(card)
		break
	}
	s.Started = true
}

// RemovePlayer drops a departing player, returning their cards to the
// bottom of the draw pile and handing over host and turn as needed.
func (s *Session) RemovePlayer(playerID string) (*shared.Player, bool) {
	idx := s.PlayerIndex(playerID)
	if idx == -1 {
		return nil, false
	}
	player := s.Players[idx]
	wasCurrent := s.CurrentPlayer()
	s.Players = append(s.Players[:idx], s.Players[idx+1:]...)
	s.DrawPile.PushBottom(player.TakeHand()...)

	if len(s.Players) == 0 {
		return player, true
	}
	if player.IsHost {
		player.IsHost = false
		s.Players[0].IsHost = true
	}
	if idx < s.CurrentPlayerIndex {
		s.CurrentPlayerIndex--
	}
	if s.CurrentPlayerIndex >= len(s.Players) {
		s.CurrentPlayerIndex = 0
	}
	if current := s.CurrentPlayer(); current != wasCurrent {
		// A new player holds the turn and decides afresh on a pending draw.
		s.MustRespond = s.PendingDraw > 0 && s.Rules.Stacking && current.HasPenaltyCard()
	}
	s.addSystemMessage(fmt.Sprintf("%s left the room.", player.Name))
	return player, true
}

// SendChat appends a player's message to the chat log.
func (s *Session) SendChat(playerID, text string) error {
	player := s.PlayerByID(playerID)
	if player == nil {
		return ErrNotInRoom
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return NewError(InvalidRequest, "Message cannot be empty.")
	}
	if utf8.RuneCountInString(text) > s.Rules.MaxChatLength {
		return NewError(InvalidRequest, fmt.Sprintf("Message cannot be longer than %d characters.", s.Rules.MaxChatLength))
	}
	s.appendChat(ChatEntry{Author: player.Name, Text: text})
	return nil
}

// SayUno records a player's UNO call. It has no effect on the rules.
func (s *Session) SayUno(playerID string) (string, error) {
	player := s.PlayerByID(playerID)
	if player == nil {
		return "", ErrNotInRoom
	}
	if len(player.Hand) != 1 {
		return "", ErrUnoNotAllowed
	}
	s.addSystemMessage(fmt.Sprintf("%s says UNO!", player.Name))
	return player.Name, nil
}

func (s *Session) addSystemMessage(text string) {
	s.appendChat(ChatEntry{Text: text, System: true})
}

func (s *Session) appendChat(entry ChatEntry) {
	entry.ID = uuid.NewString()
	entry.SentAt = time.Now().UTC()
	s.Chat = append(s.Chat, entry)
	if limit := s.Rules.ChatLimit; limit > 0 && len(s.Chat) > limit {
		s.Chat = s.Chat[len(s.Chat)-limit:]
	}
}

func (s *Session) shuffleCards(cards []shared.Card) []shared.Card {
	if s.shuffle == nil {
		return shared.Shuffle(cards)
	}
	return s.shuffle(cards)
}

func (s *Session) isHost(playerID string) bool {
	p := s.PlayerByID(playerID)
	return p != nil && p.IsHost
}

// CurrentPlayer returns the player whose turn it is, or nil for an empty room.
func (s *Session) CurrentPlayer() *shared.Player {
	if s.CurrentPlayerIndex < 0 || s.CurrentPlayerIndex >= len(s.Players) {
		return nil
	}
	return s.Players[s.CurrentPlayerIndex]
}

// CardTotal counts every card the session holds.
func (s *Session) CardTotal() int {
	total := s.DrawPile.Len() + s.DiscardPile.Len()
	for _, p := range s.Players {
		total += len(p.Hand)
	}
	return total
}

// PlayerByID finds a player by their ID.
func (s *Session) PlayerByID(playerID string) *shared.Player {
	for _, p := range s.Players {
		if p.ID == playerID {
			return p
		}
	}
	return nil
}

// PlayerIndex finds the seat of a player by their ID. Returns -1 if not found.
func (s *Session) PlayerIndex(playerID string) int {
	for i, p := range s.Players {
		if p.ID == playerID {
			return i
		}
	}
	return -1
}

package game

import (
	"strings"
	"sync"

	"uno-game/internal/shared"

	"github.com/rs/zerolog/log"
)

// Registry maps room codes to sessions and player IDs to room codes.
// A player ID belongs to at most one room.
type Registry struct {
	mu         sync.Mutex
	rules      Rules
	sessions   map[string]*Session
	playerRoom map[string]string
}

// Departure describes the outcome of a disconnect.
type Departure struct {
	RoomCode string
	Player   *shared.Player
	Session  *Session // nil once the room has been deleted
}

// NewRegistry creates an empty registry whose sessions use rules.
func NewRegistry(rules Rules) *Registry {
	return &Registry{
		rules:      rules,
		sessions:   make(map[string]*Session),
		playerRoom: make(map[string]string),
	}
}

// NormalizeRoomCode returns the canonical form of a room code.
func NormalizeRoomCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Create registers a new session hosted by hostID. An existing code is
// never overwritten.
func (r *Registry) Create(roomCode, hostID, hostName string) (*Session, error) {
	if err := ValidateName(hostName); err != nil {
		return nil, err
	}
	code := NormalizeRoomCode(roomCode)

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.sessions[code]; exists {
		return nil, ErrRoomExists
	}
	if _, inRoom := r.playerRoom[hostID]; inRoom {
		return nil, ErrAlreadyInRoom
	}

	s := NewSession(code, hostID, hostName, r.rules)
	r.sessions[code] = s
	r.playerRoom[hostID] = code
	log.Info().Str("room_code", code).Str("player_id", hostID).Msg("Room created")
	return s, nil
}

// Exists reports whether a room code is in use.
func (r *Registry) Exists(roomCode string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.sessions[NormalizeRoomCode(roomCode)]
	return ok
}

// Get looks up a session. Callers that mutate the session should use Do.
func (r *Registry) Get(roomCode string) (*Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[NormalizeRoomCode(roomCode)]
	if !ok {
		return nil, ErrRoomNotFound
	}
	return s, nil
}

// Join seats playerID in an existing room.
func (r *Registry) Join(roomCode, playerID, name string) (*Session, error) {
	code := NormalizeRoomCode(roomCode)

	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[code]
	if !ok {
		return nil, ErrRoomNotFound
	}
	if _, inRoom := r.playerRoom[playerID]; inRoom {
		return nil, ErrAlreadyInRoom
	}
	if err := s.Join(playerID, name); err != nil {
		return nil, err
	}
	r.playerRoom[playerID] = code
	log.Info().Str("room_code", code).Str("player_id", playerID).Int("players", len(s.Players)).Msg("Player joined room")
	return s, nil
}

// Do runs fn against the session under the registry lock, so mutations of
// a room never interleave. fn must not call back into the registry.
func (r *Registry) Do(roomCode string, fn func(*Session) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[NormalizeRoomCode(roomCode)]
	if !ok {
		return ErrRoomNotFound
	}
	return fn(s)
}

// Remove deletes a session and forgets its players.
func (r *Registry) Remove(roomCode string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.removeLocked(NormalizeRoomCode(roomCode))
}

func (r *Registry) removeLocked(code string) bool {
	s, ok := r.sessions[code]
	if !ok {
		return false
	}
	for _, p := range s.Players {
		if r.playerRoom[p.ID] == code {
			delete(r.playerRoom, p.ID)
		}
	}
	delete(r.sessions, code)
	log.Info().Str("room_code", code).Msg("Room deleted")
	return true
}

// Disconnect removes playerID from its room, deleting the room once empty.
// It cannot fail; ok is false only when the player was in no room.
func (r *Registry) Disconnect(playerID string) (Departure, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	code, inRoom := r.playerRoom[playerID]
	if !inRoom {
		return Departure{}, false
	}
	delete(r.playerRoom, playerID)

	s, ok := r.sessions[code]
	if !ok {
		return Departure{RoomCode: code}, false
	}
	player, removed := s.RemovePlayer(playerID)
	if !removed {
		return Departure{RoomCode: code}, false
	}

	dep := Departure{RoomCode: code, Player: player, Session: s}
	if len(s.Players) == 0 {
		r.removeLocked(code)
		dep.Session = nil
	}
	log.Info().Str("room_code", code).Str("player_id", playerID).Bool("room_deleted", dep.Session == nil).Msg("Player left room")
	return dep, true
}

// RoomOf returns the room code playerID is seated in.
func (r *Registry) RoomOf(playerID string) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	code, ok := r.playerRoom[playerID]
	return code, ok
}

// Len returns the number of active rooms.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Clear drops every room. Used by tests.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions = make(map[string]*Session)
	r.playerRoom = make(map[string]string)
}

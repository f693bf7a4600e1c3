package protocol

import (
	"encoding/json"

	"uno-game/internal/game"
)

// Message represents a generic WebSocket message structure.
type Message struct {
	Type    string          `json:"type"`              // e.g. "join_room", "play_card"
	Payload json.RawMessage `json:"payload,omitempty"` // Decoded per message type
}

// Client -> server message types.
const (
	TypeCreateRoom        = "create_room"
	TypeJoinRoom          = "join_room"
	TypeStartGame         = "start_game"
	TypeRestartGame       = "restart_game"
	TypePlayCard          = "play_card"
	TypeDrawCard          = "draw_card"
	TypeAcceptPendingDraw = "accept_pending_draw"
	TypeSayUno            = "say_uno"
	TypeSendChatMessage   = "send_chat_message"
	TypePing              = "ping"
)

// Server -> client message types.
const (
	TypeRoomCreated = "room_created"
	TypeGameState   = "game_state"
	TypeUnoDeclared = "uno_declared"
	TypePlayerLeft  = "player_left"
	TypeError       = "error"
	TypePong        = "pong"
)

// --- Client -> Server Payload Structs ---

type CreateRoomPayload struct {
	PlayerName string `json:"player_name"`
}

type JoinRoomPayload struct {
	RoomCode   string `json:"room_code"`
	PlayerName string `json:"player_name"`
}

// RoomPayload is used by start_game, restart_game, draw_card,
// accept_pending_draw and say_uno.
type RoomPayload struct {
	RoomCode string `json:"room_code"`
}

type PlayCardPayload struct {
	RoomCode    string `json:"room_code"`
	CardID      string `json:"card_id"`
	ChosenColor string `json:"chosen_color,omitempty"` // Wild cards only
}

type ChatPayload struct {
	RoomCode string `json:"room_code"`
	Text     string `json:"text"`
}

// --- Server -> Client Payload Structs ---

type RoomCreatedPayload struct {
	RoomCode string `json:"room_code"`
	PlayerID string `json:"player_id"`
}

type GameStatePayload struct {
	State game.PlayerView `json:"state"`
}

type UnoDeclaredPayload struct {
	PlayerID   string `json:"player_id"`
	PlayerName string `json:"player_name"`
}

type PlayerLeftPayload struct {
	PlayerID   string `json:"player_id"`
	PlayerName string `json:"player_name"`
}

type ErrorPayload struct {
	Kind    game.ErrorKind `json:"kind"`
	Message string         `json:"message"`
}

// NewMessage encodes a message envelope with the given payload.
func NewMessage(msgType string, payload any) ([]byte, error) {
	if payload == nil {
		return json.Marshal(Message{Type: msgType})
	}

	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Message{
		Type:    msgType,
		Payload: payloadBytes,
	})
}

// NewError builds an error message from any error, classifying it by kind.
func NewError(err error) ([]byte, error) {
	return NewMessage(TypeError, ErrorPayload{
		Kind:    game.KindOf(err),
		Message: err.Error(),
	})
}

// Decode unmarshals the payload of msg into v. An empty payload leaves v
// untouched.
func Decode(msg Message, v any) error {
	if len(msg.Payload) == 0 {
		return nil
	}
	if err := json.Unmarshal(msg.Payload, v); err != nil {
		return game.NewError(game.InvalidRequest, "malformed "+msg.Type+" payload")
	}
	return nil
}

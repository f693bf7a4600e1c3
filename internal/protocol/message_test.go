package protocol

import (
	"encoding/json"
	"errors"
	"testing"

	"uno-game/internal/game"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMessageWithoutPayload(t *testing.T) {
	raw, err := NewMessage(TypePong, nil)
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"pong"}`, string(raw))
}

func TestNewMessageWithPayload(t *testing.T) {
	raw, err := NewMessage(TypeRoomCreated, RoomCreatedPayload{RoomCode: "ABC123", PlayerID: "p1"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"room_created","payload":{"room_code":"ABC123","player_id":"p1"}}`, string(raw))
}

func TestNewError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind game.ErrorKind
	}{
		{"game error", game.ErrNotYourTurn, game.NotYourTurn},
		{"foreign error", errors.New("disk on fire"), game.Internal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw, err := NewError(tt.err)
			require.NoError(t, err)

			var msg Message
			require.NoError(t, json.Unmarshal(raw, &msg))
			assert.Equal(t, TypeError, msg.Type)
			var payload ErrorPayload
			require.NoError(t, json.Unmarshal(msg.Payload, &payload))
			assert.Equal(t, tt.kind, payload.Kind)
			assert.Equal(t, tt.err.Error(), payload.Message)
		})
	}
}

func TestDecode(t *testing.T) {
	var msg Message
	require.NoError(t, json.Unmarshal([]byte(`{"type":"play_card","payload":{"room_code":"abc123","card_id":"change-0","chosen_color":"red"}}`), &msg))

	var payload PlayCardPayload
	require.NoError(t, Decode(msg, &payload))
	assert.Equal(t, PlayCardPayload{RoomCode: "abc123", CardID: "change-0", ChosenColor: "red"}, payload)

	bad := Message{Type: TypePlayCard, Payload: json.RawMessage(`"nope"`)}
	assert.ErrorIs(t, Decode(bad, &payload), game.NewError(game.InvalidRequest, ""))

	empty := RoomPayload{RoomCode: "keep"}
	require.NoError(t, Decode(Message{Type: TypeStartGame}, &empty))
	assert.Equal(t, "keep", empty.RoomCode)
}

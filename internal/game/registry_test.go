package game

import (
	"errors"
	"testing"

	"uno-game/internal/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryCreateAndGet(t *testing.T) {
	assert := assert.New(t)
	r := NewRegistry(DefaultRules())

	s, err := r.Create("abcdef", "host", "Alice")
	require.NoError(t, err)
	assert.Equal("ABCDEF", s.RoomCode)

	got, err := r.Get("AbCdEf")
	require.NoError(t, err)
	assert.Same(s, got)
	assert.True(r.Exists("abcdef"))

	code, ok := r.RoomOf("host")
	assert.True(ok)
	assert.Equal("ABCDEF", code)

	_, err = r.Get("ZZZZZZ")
	assert.ErrorIs(err, ErrRoomNotFound)
}

func TestRegistryCreateRejections(t *testing.T) {
	r := NewRegistry(DefaultRules())
	_, err := r.Create("ABCDEF", "host", "Alice")
	require.NoError(t, err)

	_, err = r.Create("abcdef", "other", "Bob")
	assert.ErrorIs(t, err, ErrRoomExists)

	_, err = r.Create("QWERTY", "host", "Alice")
	assert.ErrorIs(t, err, ErrAlreadyInRoom)

	_, err = r.Create("QWERTY", "other", "")
	assert.Equal(t, InvalidRequest, KindOf(err))
	assert.Equal(t, 1, r.Len())
}

func TestRegistryJoin(t *testing.T) {
	r := NewRegistry(DefaultRules())
	_, err := r.Create("ABCDEF", "host", "Alice")
	require.NoError(t, err)

	s, err := r.Join("abcdef", "p1", "Bob")
	require.NoError(t, err)
	assert.Len(t, s.Players, 2)
	code, ok := r.RoomOf("p1")
	assert.True(t, ok)
	assert.Equal(t, "ABCDEF", code)

	_, err = r.Join("NOPE00", "p2", "Carol")
	assert.ErrorIs(t, err, ErrRoomNotFound)

	_, err = r.Join("ABCDEF", "p1", "Bobby")
	assert.ErrorIs(t, err, ErrAlreadyInRoom)

	_, err = r.Join("ABCDEF", "p2", "ALICE")
	assert.ErrorIs(t, err, ErrNameTaken)
	_, ok = r.RoomOf("p2")
	assert.False(t, ok, "failed join must not touch the index")
}

func TestRegistryDo(t *testing.T) {
	r := NewRegistry(DefaultRules())
	_, err := r.Create("ABCDEF", "host", "Alice")
	require.NoError(t, err)
	_, err = r.Join("ABCDEF", "p1", "Bob")
	require.NoError(t, err)

	err = r.Do("abcdef", func(s *Session) error { return s.Start("host") })
	require.NoError(t, err)

	sentinel := errors.New("boom")
	assert.Equal(t, sentinel, r.Do("ABCDEF", func(*Session) error { return sentinel }))
	assert.ErrorIs(t, r.Do("NOPE00", func(*Session) error { return nil }), ErrRoomNotFound)
}

func TestRegistryDisconnectTransfersHostAndClampsTurn(t *testing.T) {
	assert := assert.New(t)
	r := NewRegistry(DefaultRules())
	_, err := r.Create("ABCDEF", "a", "Alice")
	require.NoError(t, err)
	_, err = r.Join("ABCDEF", "b", "Bob")
	require.NoError(t, err)
	_, err = r.Join("ABCDEF", "c", "Carol")
	require.NoError(t, err)
	require.NoError(t, r.Do("ABCDEF", func(s *Session) error { return s.Start("a") }))

	dep, ok := r.Disconnect("a")

	require.True(t, ok)
	assert.Equal("ABCDEF", dep.RoomCode)
	assert.Equal("Alice", dep.Player.Name)
	require.NotNil(t, dep.Session)
	s := dep.Session
	require.Len(t, s.Players, 2)
	assert.True(s.Players[0].IsHost)
	assert.Equal("b", s.Players[0].ID)
	assert.Equal(0, s.CurrentPlayerIndex)
	assert.Equal(shared.DeckSize, s.CardTotal())
	assert.Contains(s.Chat[len(s.Chat)-1].Text, "Alice left")
	_, inRoom := r.RoomOf("a")
	assert.False(inRoom)

	s.CurrentPlayerIndex = 1
	_, ok = r.Disconnect("c")
	require.True(t, ok)
	assert.Equal(0, s.CurrentPlayerIndex)
	assert.Equal("b", s.CurrentPlayer().ID)
}

func TestRegistryDisconnectLastPlayerDeletesRoom(t *testing.T) {
	r := NewRegistry(DefaultRules())
	_, err := r.Create("ABCDEF", "a", "Alice")
	require.NoError(t, err)

	dep, ok := r.Disconnect("a")

	require.True(t, ok)
	assert.Nil(t, dep.Session)
	assert.Equal(t, 0, r.Len())
	_, err = r.Get("ABCDEF")
	assert.ErrorIs(t, err, ErrRoomNotFound)

	_, ok = r.Disconnect("a")
	assert.False(t, ok)
}

func TestRegistryRemoveAndClear(t *testing.T) {
	r := NewRegistry(DefaultRules())
	_, err := r.Create("ABCDEF", "a", "Alice")
	require.NoError(t, err)
	_, err = r.Join("ABCDEF", "b", "Bob")
	require.NoError(t, err)

	assert.True(t, r.Remove("abcdef"))
	assert.False(t, r.Remove("abcdef"))
	_, ok := r.RoomOf("b")
	assert.False(t, ok)

	_, err = r.Create("QWERTY", "b", "Bob")
	require.NoError(t, err)
	r.Clear()
	assert.Equal(t, 0, r.Len())
	_, ok = r.RoomOf("b")
	assert.False(t, ok)
}

package server

import (
	"context"
	"errors"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"uno-game/internal/database"
	"uno-game/internal/game"
	"uno-game/internal/protocol"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	roomCodeLength   = 6
	roomCodeAttempts = 16
)

// ResultStore records finished games.
type ResultStore interface {
	Insert(result database.GameResult) error
}

// clientMessage is a message along with the client that sent it. A non-nil
// err means the frame could not be decoded.
type clientMessage struct {
	client  *Client
	message protocol.Message
	err     error
}

// Hub owns every connection and forwards requests to the session registry.
// All requests and disconnects are handled one at a time by Run.
type Hub struct {
	clients        map[string]*Client
	registry       *game.Registry
	results        ResultStore
	processMessage chan clientMessage
	register       chan *Client
	unregister     chan *Client
	clientMu       sync.RWMutex
	newRoomCode    func() string
	done           chan struct{} // Closed once Run returns
}

// NewHub creates a hub backed by registry. results may be nil.
func NewHub(registry *game.Registry, results ResultStore) *Hub {
	return &Hub{
		clients:        make(map[string]*Client),
		registry:       registry,
		results:        results,
		processMessage: make(chan clientMessage),
		register:       make(chan *Client),
		unregister:     make(chan *Client),
		newRoomCode:    generateRoomCode,
		done:           make(chan struct{}),
	}
}

// generateRoomCode creates a random alphanumeric room code.
func generateRoomCode() string {
	const letters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	var sb strings.Builder
	for i := 0; i < roomCodeLength; i++ {
		sb.WriteByte(letters[rand.IntN(len(letters))])
	}
	return sb.String()
}

// Run processes registrations, disconnects and messages until ctx is done.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return
		case client := <-h.register:
			h.registerClient(client)
		case client := <-h.unregister:
			h.unregisterClient(client)
		case msg := <-h.processMessage:
			if msg.err != nil {
				h.sendError(msg.client, game.NewError(game.InvalidRequest, "Invalid message format."))
				continue
			}
			h.handleMessage(msg.client, msg.message)
		}
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.clientMu.RLock()
	defer h.clientMu.RUnlock()
	return len(h.clients)
}

func (h *Hub) registerClient(client *Client) {
	if client.ID == "" {
		client.ID = uuid.NewString()
	}
	h.clientMu.Lock()
	h.clients[client.ID] = client
	h.clientMu.Unlock()
	log.Info().Str("client_id", client.ID).Msg("Client connected")
}

func (h *Hub) unregisterClient(client *Client) {
	h.clientMu.Lock()
	current, exists := h.clients[client.ID]
	if exists && current == client {
		delete(h.clients, client.ID)
		close(client.send)
	}
	h.clientMu.Unlock()
	if !exists || current != client {
		return
	}
	log.Info().Str("client_id", client.ID).Msg("Client disconnected")

	dep, ok := h.registry.Disconnect(client.ID)
	if !ok || dep.Session == nil {
		return
	}
	left, err := protocol.NewMessage(protocol.TypePlayerLeft, protocol.PlayerLeftPayload{
		PlayerID:   dep.Player.ID,
		PlayerName: dep.Player.Name,
	})
	if err != nil {
		log.Error().Err(err).Msg("Error creating player_left message")
		return
	}
	h.broadcastToRoom(dep.RoomCode, left)
	h.broadcastState(dep.RoomCode)
}

func (h *Hub) closeAll() {
	h.clientMu.Lock()
	defer h.clientMu.Unlock()
	for id, client := range h.clients {
		close(client.send)
		delete(h.clients, id)
	}
}

// handleMessage processes a message received from a client.
func (h *Hub) handleMessage(client *Client, msg protocol.Message) {
	h.clientMu.RLock()
	registered := h.clients[client.ID] == client
	h.clientMu.RUnlock()
	if !registered {
		return
	}

	var err error
	switch msg.Type {
	case protocol.TypeCreateRoom:
		err = h.handleCreateRoom(client, msg)
	case protocol.TypeJoinRoom:
		err = h.handleJoinRoom(client, msg)
	case protocol.TypeStartGame:
		err = h.handleRoomAction(client, msg, func(s *game.Session) error {
			return s.Start(client.ID)
		})
	case protocol.TypeRestartGame:
		err = h.handleRoomAction(client, msg, func(s *game.Session) error {
			return s.Restart(client.ID)
		})
	case protocol.TypePlayCard:
		err = h.handlePlayCard(client, msg)
	case protocol.TypeDrawCard:
		err = h.handleRoomAction(client, msg, func(s *game.Session) error {
			return s.RequestDraw(client.ID)
		})
	case protocol.TypeAcceptPendingDraw:
		err = h.handleRoomAction(client, msg, func(s *game.Session) error {
			_, err := s.AcceptPendingDraw(client.ID)
			return err
		})
	case protocol.TypeSayUno:
		err = h.handleSayUno(client, msg)
	case protocol.TypeSendChatMessage:
		err = h.handleChat(client, msg)
	case protocol.TypePing:
		pong, _ := protocol.NewMessage(protocol.TypePong, nil)
		h.sendMessageToClient(client.ID, pong)
	default:
		log.Warn().Str("client_id", client.ID).Str("type", msg.Type).Msg("Received unknown message type")
		err = game.NewError(game.InvalidRequest, "Unknown message type.")
	}

	if err != nil {
		log.Debug().Err(err).Str("client_id", client.ID).Str("type", msg.Type).Msg("Request rejected")
		h.sendError(client, err)
	}
}

func (h *Hub) handleCreateRoom(client *Client, msg protocol.Message) error {
	var payload protocol.CreateRoomPayload
	if err := protocol.Decode(msg, &payload); err != nil {
		return err
	}

	var code string
	for attempt := 0; ; attempt++ {
		if attempt == roomCodeAttempts {
			return game.NewError(game.Internal, "Could not allocate a room code.")
		}
		s, err := h.registry.Create(h.newRoomCode(), client.ID, payload.PlayerName)
		if errors.Is(err, game.ErrRoomExists) {
			log.Debug().Msg("Generated room code collided, retrying")
			continue
		}
		if err != nil {
			return err
		}
		code = s.RoomCode
		break
	}

	created, err := protocol.NewMessage(protocol.TypeRoomCreated, protocol.RoomCreatedPayload{
		RoomCode: code,
		PlayerID: client.ID,
	})
	if err != nil {
		return err
	}
	h.sendMessageToClient(client.ID, created)
	h.broadcastState(code)
	return nil
}

func (h *Hub) handleJoinRoom(client *Client, msg protocol.Message) error {
	var payload protocol.JoinRoomPayload
	if err := protocol.Decode(msg, &payload); err != nil {
		return err
	}
	if strings.TrimSpace(payload.RoomCode) == "" {
		return game.NewError(game.InvalidRequest, "Room code cannot be empty.")
	}
	s, err := h.registry.Join(payload.RoomCode, client.ID, payload.PlayerName)
	if err != nil {
		return err
	}
	h.broadcastState(s.RoomCode)
	return nil
}

func (h *Hub) handlePlayCard(client *Client, msg protocol.Message) error {
	var payload protocol.PlayCardPayload
	if err := protocol.Decode(msg, &payload); err != nil {
		return err
	}
	_, err := h.act(client, payload.RoomCode, func(s *game.Session) error {
		return s.PlayCard(client.ID, payload.CardID, payload.ChosenColor)
	})
	return err
}

func (h *Hub) handleSayUno(client *Client, msg protocol.Message) error {
	var payload protocol.RoomPayload
	if err := protocol.Decode(msg, &payload); err != nil {
		return err
	}
	var name string
	code, err := h.act(client, payload.RoomCode, func(s *game.Session) error {
		var err error
		name, err = s.SayUno(client.ID)
		return err
	})
	if err != nil {
		return err
	}
	declared, err := protocol.NewMessage(protocol.TypeUnoDeclared, protocol.UnoDeclaredPayload{
		PlayerID:   client.ID,
		PlayerName: name,
	})
	if err != nil {
		return err
	}
	h.broadcastToRoom(code, declared)
	return nil
}

func (h *Hub) handleChat(client *Client, msg protocol.Message) error {
	var payload protocol.ChatPayload
	if err := protocol.Decode(msg, &payload); err != nil {
		return err
	}
	_, err := h.act(client, payload.RoomCode, func(s *game.Session) error {
		return s.SendChat(client.ID, payload.Text)
	})
	return err
}

// handleRoomAction runs an action whose payload only names the room.
func (h *Hub) handleRoomAction(client *Client, msg protocol.Message, action func(*game.Session) error) error {
	var payload protocol.RoomPayload
	if err := protocol.Decode(msg, &payload); err != nil {
		return err
	}
	_, err := h.act(client, payload.RoomCode, action)
	return err
}

// act applies action to the client's room, records a newly decided game and
// broadcasts the resulting state. It returns the room code acted on.
func (h *Hub) act(client *Client, roomCode string, action func(*game.Session) error) (string, error) {
	code, err := h.roomOf(client, roomCode)
	if err != nil {
		return "", err
	}

	var result *database.GameResult
	err = h.registry.Do(code, func(s *game.Session) error {
		decided := s.Winner != ""
		if err := action(s); err != nil {
			return err
		}
		if !decided && s.Winner != "" {
			r := resultOf(s)
			result = &r
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	if result != nil {
		h.recordResult(*result)
	}
	h.broadcastState(code)
	return code, nil
}

// roomOf resolves the room a request targets. An empty code means the
// client's current room.
func (h *Hub) roomOf(client *Client, requested string) (string, error) {
	if requested != "" && !h.registry.Exists(requested) {
		return "", game.ErrRoomNotFound
	}
	code, ok := h.registry.RoomOf(client.ID)
	if !ok {
		return "", game.ErrNotInRoom
	}
	if requested != "" && game.NormalizeRoomCode(requested) != code {
		return "", game.ErrNotInRoom
	}
	return code, nil
}

func resultOf(s *game.Session) database.GameResult {
	names := make([]string, len(s.Players))
	for i, p := range s.Players {
		names[i] = p.Name
	}
	return database.GameResult{
		ID:          uuid.NewString(),
		RoomCode:    s.RoomCode,
		Winner:      s.Winner,
		Players:     names,
		PlayerCount: len(names),
		FinishedAt:  time.Now().UTC().Format(time.RFC3339),
	}
}

func (h *Hub) recordResult(result database.GameResult) {
	if h.results == nil {
		return
	}
	if err := h.results.Insert(result); err != nil {
		log.Error().Err(err).Str("room_code", result.RoomCode).Msg("Failed to record game result")
		return
	}
	log.Info().Str("room_code", result.RoomCode).Str("winner", result.Winner).Msg("Game result recorded")
}

// broadcastState sends every player in the room their own view.
func (h *Hub) broadcastState(roomCode string) {
	var views map[string]game.PlayerView
	err := h.registry.Do(roomCode, func(s *game.Session) error {
		views = game.Broadcast(s)
		return nil
	})
	if err != nil {
		return
	}
	for playerID, view := range views {
		msg, err := protocol.NewMessage(protocol.TypeGameState, protocol.GameStatePayload{State: view})
		if err != nil {
			log.Error().Err(err).Str("room_code", roomCode).Msg("Error creating game_state message")
			continue
		}
		h.sendMessageToClient(playerID, msg)
	}
}

// broadcastToRoom sends the same message to every player in the room.
func (h *Hub) broadcastToRoom(roomCode string, message []byte) {
	var ids []string
	err := h.registry.Do(roomCode, func(s *game.Session) error {
		for _, p := range s.Players {
			ids = append(ids, p.ID)
		}
		return nil
	})
	if err != nil {
		return
	}
	for _, id := range ids {
		h.sendMessageToClient(id, message)
	}
}

func (h *Hub) sendError(client *Client, err error) {
	msg, mErr := protocol.NewError(err)
	if mErr != nil {
		log.Error().Err(mErr).Str("client_id", client.ID).Msg("Error creating error message")
		return
	}
	h.sendMessageToClient(client.ID, msg)
}

// sendMessageToClient queues a message without blocking. A client whose
// queue is full is disconnected.
func (h *Hub) sendMessageToClient(clientID string, message []byte) {
	h.clientMu.RLock()
	defer h.clientMu.RUnlock()
	client, ok := h.clients[clientID]
	if !ok {
		log.Debug().Str("client_id", clientID).Msg("Could not find client to send message")
		return
	}

	select {
	case client.send <- message:
	default:
		log.Warn().Str("client_id", clientID).Msg("Send queue full, dropping client")
		go h.requestUnregister(client)
	}
}

// submit queues a message for the Run loop. It reports false once the loop
// has stopped.
func (h *Hub) submit(msg clientMessage) bool {
	select {
	case h.processMessage <- msg:
		return true
	case <-h.done:
		return false
	}
}

// requestUnregister hands client to the Run loop, giving up once it has stopped.
func (h *Hub) requestUnregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

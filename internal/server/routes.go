package server

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"uno-game/internal/database"
	"uno-game/internal/game"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

// ResultReader serves stored game results.
type ResultReader interface {
	GetAll() ([]database.GameResult, error)
	GetByPlayer(playerName string) ([]database.GameResult, error)
}

// RoomSummary is the public, hand-free description of a room.
type RoomSummary struct {
	RoomCode   string   `json:"room_code"`
	Players    []string `json:"players"`
	MaxPlayers int      `json:"max_players"`
	Started    bool     `json:"started"`
	Winner     string   `json:"winner,omitempty"`
}

// NewRouter wires the WebSocket endpoint, the JSON API and static files.
func NewRouter(hub *Hub, upgrader *websocket.Upgrader, results ResultReader, staticDir string) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)

	r.Get("/ws", func(w http.ResponseWriter, r *http.Request) {
		ServeWs(hub, upgrader, w, r)
	})
	r.Get("/health", hub.HealthHandler)
	r.Route("/api", func(r chi.Router) {
		r.Get("/rooms/{roomCode}", hub.GetRoomHandler)
		r.Get("/results", func(w http.ResponseWriter, r *http.Request) {
			GetResultsHandler(results, w, r)
		})
		r.Get("/results/player/{name}", func(w http.ResponseWriter, r *http.Request) {
			GetResultsByPlayerHandler(results, w, r)
		})
	})
	if staticDir != "" {
		r.Handle("/*", http.FileServer(http.Dir(staticDir)))
	}

	log.Info().Msg("Registered routes: /ws, /health, /api/rooms/{roomCode}, /api/results, /api/results/player/{name}")
	return r
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		log.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("duration", time.Since(start)).
			Msg("HTTP request")
	})
}

// HealthHandler reports liveness with room and connection counts.
func (h *Hub) HealthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"rooms":   h.registry.Len(),
		"clients": h.ClientCount(),
	})
}

// GetRoomHandler returns a room summary so clients can check a code before joining.
func (h *Hub) GetRoomHandler(w http.ResponseWriter, r *http.Request) {
	var summary RoomSummary
	err := h.registry.Do(chi.URLParam(r, "roomCode"), func(s *game.Session) error {
		summary = RoomSummary{
			RoomCode:   s.RoomCode,
			Players:    make([]string, len(s.Players)),
			MaxPlayers: s.Rules.MaxPlayers,
			Started:    s.Started,
			Winner:     s.Winner,
		}
		for i, p := range s.Players {
			summary.Players[i] = p.Name
		}
		return nil
	})
	if err != nil {
		http.Error(w, "Room not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func GetResultsByPlayerHandler(results ResultReader, w http.ResponseWriter, r *http.Request) {
	player := chi.URLParam(r, "name")
	if player == "" {
		http.Error(w, "Player name is required", http.StatusBadRequest)
		return
	}

	found, err := results.GetByPlayer(player)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			http.Error(w, "No results found for player", http.StatusNotFound)
			return
		}
		log.Error().Err(err).Str("player", player).Msg("Failed to fetch results")
		http.Error(w, "Failed to fetch results", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, found)
}

func GetResultsHandler(results ResultReader, w http.ResponseWriter, r *http.Request) {
	all, err := results.GetAll()
	if err != nil {
		log.Error().Err(err).Msg("Failed to fetch results")
		http.Error(w, "Failed to fetch results", http.StatusInternalServerError)
		return
	}
	if all == nil {
		all = []database.GameResult{}
	}
	writeJSON(w, http.StatusOK, all)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("Failed to encode response")
	}
}

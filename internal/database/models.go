package database

// GameResult is a finished game as stored in the results table.
type GameResult struct {
	ID          string   `json:"id"`
	RoomCode    string   `json:"room_code"`
	Winner      string   `json:"winner"`
	Players     []string `json:"players"` // In seat order
	PlayerCount int      `json:"player_count"`
	FinishedAt  string   `json:"finished_at"` // RFC 3339
}

package websocket

import (
	"encoding/json"

	"github.com/movegrid/tictactoe-backend/internal/entity"
)

// Message is the envelope for every frame in both directions.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// MovePayload carries a raw move request. Cell is a pointer so a missing
// field is distinguishable from cell 0.
type MovePayload struct {
	Cell *int `json:"cell"`
}

// ResponsePayload is what the server writes back for every action.
type ResponsePayload struct {
	PlayerID string    `json:"player_id,omitempty"`
	Game     *GameView `json:"game,omitempty"`
	Error    string    `json:"error,omitempty"`
}

// GameView is the client-facing session snapshot. The board here is the
// projected view of the move log, computed at send time.
type GameView struct {
	ID           string   `json:"id"`
	Board        []string `json:"board"`
	Moves        []int    `json:"moves"`
	Turn         string   `json:"turn,omitempty"`
	Status       string   `json:"status"`
	Winner       string   `json:"winner,omitempty"`
	WinningCells []int    `json:"winning_cells,omitempty"`
}

func newGameView(game *entity.Game) (*GameView, error) {
	board, err := game.Board()
	if err != nil {
		return nil, err
	}

	return &GameView{
		ID:           game.ID,
		Board:        board[:],
		Moves:        game.Moves,
		Turn:         game.Turn(),
		Status:       game.Status,
		Winner:       game.Winner,
		WinningCells: game.WinningCells,
	}, nil
}

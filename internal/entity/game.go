package entity

import (
	"fmt"

	"github.com/movegrid/tictactoe-backend/internal/apperror"
	"github.com/movegrid/tictactoe-backend/internal/tictactoe"
)

const (
	StatusFinished = "finished"
	StatusOngoing  = "ongoing"

	WinnerTie = "-"
)

// Game is one hot-seat session. Moves is the append-only record of played
// cells and the sole source of truth: board, turn and outcome are all
// derived from it.
type Game struct {
	ID           string `json:"id"`
	Moves        []int  `json:"moves"`
	Status       string `json:"status"`
	Winner       string `json:"winner,omitempty"`
	WinningCells []int  `json:"winning_cells,omitempty"`
	PlayerID     string `json:"player_id,omitempty"`
}

// NewGame - a fresh session, immediately playable: hot-seat games have
// nobody to wait for.
func NewGame(id string) *Game {
	return &Game{
		ID:     id,
		Moves:  []int{},
		Status: StatusOngoing,
	}
}

// Board - the projected view of the move log. Never stored.
func (that *Game) Board() (tictactoe.Board, error) {
	board, err := tictactoe.Project(that.Moves)
	if err != nil {
		return board, fmt.Errorf("failed to project board: %w", err)
	}

	return board, nil
}

// Turn - the mark that plays next, empty once the game is finished.
func (that *Game) Turn() string {
	if that.IsFinished() {
		return ""
	}

	return tictactoe.MarkForPly(len(that.Moves))
}

// CellOccupied - reports whether a cell already appears in the move log.
func (that *Game) CellOccupied(cell int) bool {
	for _, played := range that.Moves {
		if played == cell {
			return true
		}
	}

	return false
}

// Conclude - records a terminal conclusion on the session.
func (that *Game) Conclude(conclusion tictactoe.Conclusion) {
	that.Status = StatusFinished

	if conclusion.State == tictactoe.Won {
		that.Winner = conclusion.Mark
		that.WinningCells = conclusion.Cells
		return
	}

	that.Winner = WinnerTie
}

func (that *Game) IsFinished() bool {
	return that.Status == StatusFinished
}

func (that *Game) IsOngoing() bool {
	return that.Status == StatusOngoing
}

func (that *Game) ConfirmOngoingState() error {
	switch {
	case that.IsFinished():
		return apperror.ErrGameFinished
	case that.IsOngoing():
		return nil
	default:
		return fmt.Errorf("%w: %s", apperror.ErrUnknownGameStatus, that.Status)
	}
}

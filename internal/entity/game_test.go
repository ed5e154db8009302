package entity

import (
	"testing"

	"github.com/movegrid/tictactoe-backend/internal/apperror"
	"github.com/movegrid/tictactoe-backend/internal/tictactoe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGame(t *testing.T) {
	// Given: a fresh session
	game := NewGame("123")

	// Then: the move log is empty, the game is immediately playable, X is up
	assert.Equal(t, "123", game.ID)
	assert.Empty(t, game.Moves)
	assert.Equal(t, StatusOngoing, game.Status)
	assert.Equal(t, tictactoe.MarkX, game.Turn())
	assert.NoError(t, game.ConfirmOngoingState())
}

func TestGameStatusMethods(t *testing.T) {
	t.Run("IsFinished returns true when game status is finished", func(t *testing.T) {
		game := &Game{Status: StatusFinished}
		assert.True(t, game.IsFinished())
	})

	t.Run("IsOngoing returns true when game status is ongoing", func(t *testing.T) {
		game := &Game{Status: StatusOngoing}
		assert.True(t, game.IsOngoing())
	})
}

func TestGame_ConfirmOngoingState(t *testing.T) {
	t.Run("Returns nil when game is ongoing", func(t *testing.T) {
		game := &Game{Status: StatusOngoing}
		assert.NoError(t, game.ConfirmOngoingState())
	})

	t.Run("Returns ErrGameFinished when game is finished", func(t *testing.T) {
		game := &Game{Status: StatusFinished}
		assert.ErrorIs(t, game.ConfirmOngoingState(), apperror.ErrGameFinished)
	})

	t.Run("Returns error for unknown game status", func(t *testing.T) {
		game := &Game{Status: "unknown"}

		err := game.ConfirmOngoingState()

		require.Error(t, err)
		assert.ErrorIs(t, err, apperror.ErrUnknownGameStatus)
	})
}

func TestGame_Turn(t *testing.T) {
	t.Run("Alternates with the move log length", func(t *testing.T) {
		// Given: an ongoing session
		game := &Game{Status: StatusOngoing}

		// Then: the turn flips after every appended move
		assert.Equal(t, tictactoe.MarkX, game.Turn())

		game.Moves = append(game.Moves, 4)
		assert.Equal(t, tictactoe.MarkO, game.Turn())

		game.Moves = append(game.Moves, 0)
		assert.Equal(t, tictactoe.MarkX, game.Turn())
	})

	t.Run("Empty once the game is finished", func(t *testing.T) {
		game := &Game{Status: StatusFinished, Moves: []int{0, 4, 1, 3, 2}}
		assert.Empty(t, game.Turn())
	})
}

func TestGame_CellOccupied(t *testing.T) {
	// Given: a session with cells 4 and 0 played
	game := &Game{Moves: []int{4, 0}}

	assert.True(t, game.CellOccupied(4))
	assert.True(t, game.CellOccupied(0))
	assert.False(t, game.CellOccupied(8))
}

func TestGame_Board(t *testing.T) {
	// Given: a session three plies in
	game := &Game{Moves: []int{4, 0, 8}}

	// When: projecting the board
	board, err := game.Board()

	// Then: the view matches the log
	require.NoError(t, err)
	assert.Equal(t, tictactoe.Board{tictactoe.MarkO, "", "", "", tictactoe.MarkX, "", "", "", tictactoe.MarkX}, board)
}

func TestGame_Conclude(t *testing.T) {
	t.Run("Records winner and cells for a won game", func(t *testing.T) {
		// Given: an ongoing session and a won conclusion
		game := &Game{Status: StatusOngoing, Moves: []int{0, 4, 1, 3, 2}}

		// When: concluding the session
		game.Conclude(tictactoe.Conclusion{State: tictactoe.Won, Cells: []int{0, 1, 2}, Mark: tictactoe.MarkX})

		// Then: the session is finished with X's winning row on record
		assert.Equal(t, StatusFinished, game.Status)
		assert.Equal(t, tictactoe.MarkX, game.Winner)
		assert.Equal(t, []int{0, 1, 2}, game.WinningCells)
	})

	t.Run("Records a tie for a drawn game", func(t *testing.T) {
		game := &Game{Status: StatusOngoing, Moves: []int{4, 0, 6, 3, 5, 2, 1, 7, 8}}

		game.Conclude(tictactoe.Conclusion{State: tictactoe.Drawn})

		assert.Equal(t, StatusFinished, game.Status)
		assert.Equal(t, WinnerTie, game.Winner)
		assert.Empty(t, game.WinningCells)
	})
}

package tictactoe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectWins(t *testing.T) {
	t.Run("Empty board has no wins", func(t *testing.T) {
		assert.Empty(t, DetectWins(Board{}))
	})

	t.Run("Finds a completed top row", func(t *testing.T) {
		// Given: the board projected from the log [0,4,1,3,2]
		board, err := Project([]int{0, 4, 1, 3, 2})
		require.NoError(t, err)
		require.Equal(t, Board{MarkX, MarkX, MarkX, MarkO, MarkO, "", "", "", ""}, board)

		// When: scanning for wins
		wins := DetectWins(board)

		// Then: exactly the top row matches
		assert.Equal(t, [][3]int{{0, 1, 2}}, wins)
	})

	t.Run("Finds a completed column for O", func(t *testing.T) {
		// Given: O holds the middle column
		board := Board{MarkX, MarkO, "", MarkX, MarkO, "", "", MarkO, MarkX}

		wins := DetectWins(board)

		assert.Equal(t, [][3]int{{1, 4, 7}}, wins)
	})

	t.Run("Finds both diagonals at once in declaration order", func(t *testing.T) {
		// Given: X on every even cell, O on every odd cell
		board := Board{MarkX, MarkO, MarkX, MarkO, MarkX, MarkO, MarkX, MarkO, MarkX}

		// When: scanning for wins
		wins := DetectWins(board)

		// Then: both diagonals match, main diagonal first
		assert.Equal(t, [][3]int{{0, 4, 8}, {2, 4, 6}}, wins)
	})

	t.Run("Full drawn board has no wins", func(t *testing.T) {
		board := Board{
			MarkX, MarkX, MarkO,
			MarkO, MarkO, MarkX,
			MarkX, MarkX, MarkO,
		}

		assert.Empty(t, DetectWins(board))
	})
}

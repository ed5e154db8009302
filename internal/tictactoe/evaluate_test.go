package tictactoe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluate(t *testing.T) {
	t.Run("No conclusion before the fifth ply", func(t *testing.T) {
		// Given: every prefix of a game shorter than five plies
		moves := []int{0, 4, 1, 3}

		for n := 0; n <= len(moves); n++ {
			// When: evaluating the prefix
			conclusion, err := Evaluate(moves[:n])

			// Then: the game is still open
			require.NoError(t, err)
			assert.Equal(t, Undetermined, conclusion.State, "log length %d", n)
			assert.False(t, conclusion.IsTerminal())
		}
	})

	t.Run("Single-pattern win carries its three cells and mark", func(t *testing.T) {
		// Given: X completes the top row on the fifth ply
		conclusion, err := Evaluate([]int{0, 4, 1, 3, 2})

		// Then: the game is won by X on cells 0, 1, 2
		require.NoError(t, err)
		assert.Equal(t, Won, conclusion.State)
		assert.Equal(t, []int{0, 1, 2}, conclusion.Cells)
		assert.Equal(t, MarkX, conclusion.Mark)
		assert.True(t, conclusion.IsTerminal())
	})

	t.Run("Double win merges both diagonals into five cells", func(t *testing.T) {
		// Given: a log filling the board left to right, X on every even cell
		conclusion, err := Evaluate([]int{0, 1, 2, 3, 4, 5, 6, 7, 8})

		// Then: both diagonals win for X, their union deduplicated
		require.NoError(t, err)
		assert.Equal(t, Won, conclusion.State)
		assert.Equal(t, []int{0, 2, 4, 6, 8}, conclusion.Cells)
		assert.Equal(t, MarkX, conclusion.Mark)
	})

	t.Run("Full board without a win is drawn", func(t *testing.T) {
		// Given: nine plies with no completed pattern
		conclusion, err := Evaluate([]int{4, 0, 6, 3, 5, 2, 1, 7, 8})

		// Then: the game is drawn with no cells and no mark
		require.NoError(t, err)
		assert.Equal(t, Drawn, conclusion.State)
		assert.Empty(t, conclusion.Cells)
		assert.Empty(t, conclusion.Mark)
		assert.True(t, conclusion.IsTerminal())
	})

	t.Run("Evaluation is idempotent", func(t *testing.T) {
		// Given: one move log evaluated twice
		moves := []int{0, 4, 1, 3, 2}

		first, err := Evaluate(moves)
		require.NoError(t, err)

		second, err := Evaluate(moves)
		require.NoError(t, err)

		// Then: both evaluations agree exactly
		assert.Equal(t, first, second)
	})

	t.Run("A win stays detected with trailing plies in the log", func(t *testing.T) {
		// Given: O completes the middle column on ply 6, then the log keeps
		// growing past the point the game should have stopped
		moves := []int{0, 1, 2, 4, 3, 7, 5}
		board, err := Project(moves[:6])
		require.NoError(t, err)
		require.Equal(t, [][3]int{{1, 4, 7}}, DetectWins(board))

		// When: evaluating the longer log
		conclusion, err := Evaluate(moves)

		// Then: the same win is still reported
		require.NoError(t, err)
		assert.Equal(t, Won, conclusion.State)
		assert.Equal(t, []int{1, 4, 7}, conclusion.Cells)
		assert.Equal(t, MarkO, conclusion.Mark)
	})

	t.Run("Mixed-mark double win fails the invariant check", func(t *testing.T) {
		// Given: a log that passes validation but broke the game contract
		// elsewhere: X completed row 0 on ply 5, yet the log kept growing
		// until O completed row 2 as well
		conclusion, err := Evaluate([]int{0, 6, 1, 7, 2, 8})

		// Then: the conflicting marks are rejected, not silently unioned
		require.ErrorIs(t, err, ErrInconsistentWin)
		assert.Empty(t, conclusion.State)
	})

	t.Run("Malformed logs fail fast", func(t *testing.T) {
		_, err := Evaluate([]int{0, 0})
		assert.ErrorIs(t, err, ErrDuplicateCell)

		_, err = Evaluate([]int{0, 10})
		assert.ErrorIs(t, err, ErrInvalidCellIndex)

		_, err = Evaluate(make([]int, 10))
		assert.ErrorIs(t, err, ErrOversizedLog)
	})
}

func TestWinningCells_RejectsTooManyPatterns(t *testing.T) {
	// Given: a board no alternating game can reach, where every pattern wins
	var board Board
	for cell := range board {
		board[cell] = MarkX
	}

	wins := DetectWins(board)
	require.Len(t, wins, len(WinningPatterns))

	// When: merging the matched patterns
	_, _, err := winningCells(board, wins)

	// Then: anything past two simultaneous patterns is rejected
	assert.ErrorIs(t, err, ErrInconsistentWin)
}

// The scenario plays one full drawn game ply by ply, checking the conclusion
// after every accepted move the way the application does.
func TestEvaluate_FullGame(t *testing.T) {
	moves := []int{4, 0, 6, 3, 5, 2, 1, 7, 8}

	for n := 1; n <= len(moves); n++ {
		conclusion, err := Evaluate(moves[:n])
		require.NoError(t, err)

		if n < len(moves) {
			assert.Equal(t, Undetermined, conclusion.State, "after ply %d", n)
			continue
		}

		assert.Equal(t, Drawn, conclusion.State)
	}

	// The five-ply prefix leaves X on cells 4, 5, 6 with no pattern complete.
	board, err := Project(moves[:5])
	require.NoError(t, err)
	assert.Equal(t, Board{MarkO, "", "", MarkO, MarkX, MarkX, MarkX, "", ""}, board)
	assert.Empty(t, DetectWins(board))
}

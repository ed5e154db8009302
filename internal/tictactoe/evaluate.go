package tictactoe

import (
	"errors"
	"fmt"
	"sort"
)

const (
	// Undetermined - the game is still open.
	Undetermined = "undetermined"
	// Won - one player completed at least one winning pattern.
	Won = "won"
	// Drawn - the board is full with no winner.
	Drawn = "drawn"
)

// minPliesForWin - the first player needs three plies and the second player
// two before any pattern can be complete.
const minPliesForWin = 5

// ErrInconsistentWin - the detected wins violate the 3x3 geometry: more than
// two simultaneous patterns, or winning cells with mixed marks. Only a move
// log that broke the alternation contract elsewhere can produce this.
var ErrInconsistentWin = errors.New("inconsistent win state")

// Conclusion is the outcome of evaluating a move log. Cells and Mark are set
// only for a won game; a draw carries neither.
type Conclusion struct {
	State string `json:"state"`
	Cells []int  `json:"cells,omitempty"`
	Mark  string `json:"mark,omitempty"`
}

func (that *Conclusion) IsTerminal() bool {
	return that.State == Won || that.State == Drawn
}

// Evaluate - the game-over rule, run once after every accepted move. It is a
// pure function of the move log: the same log always yields the same
// conclusion.
func Evaluate(moves []int) (Conclusion, error) {
	if err := ValidateLog(moves); err != nil {
		return Conclusion{}, err
	}

	// No pattern can be complete before the 5th ply.
	if len(moves) < minPliesForWin {
		return Conclusion{State: Undetermined}, nil
	}

	board, err := Project(moves)
	if err != nil {
		return Conclusion{}, err
	}

	wins := DetectWins(board)
	if len(wins) > 0 {
		cells, mark, err := winningCells(board, wins)
		if err != nil {
			return Conclusion{}, err
		}

		return Conclusion{State: Won, Cells: cells, Mark: mark}, nil
	}

	if len(moves) == BoardSize {
		return Conclusion{State: Drawn}, nil
	}

	return Conclusion{State: Undetermined}, nil
}

// winningCells - merges the matched patterns into one deduplicated, sorted
// cell set and reads the winning mark off the board. Two patterns at once is
// the maximum the grid allows (they share exactly one cell), and every
// winning cell must carry the same mark; both are checked rather than
// assumed.
func winningCells(board Board, wins [][3]int) ([]int, string, error) {
	if len(wins) > 2 {
		return nil, "", fmt.Errorf("%w: %d patterns matched", ErrInconsistentWin, len(wins))
	}

	mark := board[wins[0][0]]

	var seen [BoardSize]bool
	cells := make([]int, 0, 2*len(wins)+1)
	for _, pattern := range wins {
		for _, cell := range pattern {
			if board[cell] != mark {
				return nil, "", fmt.Errorf("%w: cell %d holds %q, want %q", ErrInconsistentWin, cell, board[cell], mark)
			}

			if seen[cell] {
				continue
			}
			seen[cell] = true
			cells = append(cells, cell)
		}
	}

	sort.Ints(cells)

	return cells, mark, nil
}

package tictactoe

import (
	"errors"
	"fmt"
)

const (
	MarkX = "X"
	MarkO = "O"

	EmptyCell = ""

	// BoardSize is the number of cells on the 3x3 grid.
	BoardSize = 9
)

var (
	ErrInvalidCellIndex = errors.New("cell index out of range")
	ErrDuplicateCell    = errors.New("cell played twice")
	ErrOversizedLog     = errors.New("move log longer than board")
)

// Board is the per-cell occupancy of the grid, derived from a move log.
// It is a computed view and never the source of truth.
type Board [BoardSize]string

// MarkForPly - returns the mark that plays ply i. X always opens, marks
// strictly alternate.
func MarkForPly(ply int) string {
	if ply%2 == 0 {
		return MarkX
	}
	return MarkO
}

// ValidateLog - checks a move log against the core contract: at most 9
// entries, every entry in 0..8, no cell played twice. Violations are caller
// bugs, so the first one found is returned immediately.
func ValidateLog(moves []int) error {
	if len(moves) > BoardSize {
		return fmt.Errorf("%w: %d moves", ErrOversizedLog, len(moves))
	}

	var seen [BoardSize]bool
	for _, cell := range moves {
		if cell < 0 || cell >= BoardSize {
			return fmt.Errorf("%w: cell %d", ErrInvalidCellIndex, cell)
		}

		if seen[cell] {
			return fmt.Errorf("%w: cell %d", ErrDuplicateCell, cell)
		}
		seen[cell] = true
	}

	return nil
}

// Project - derives the board from a move log. Each cell holds the mark of
// the ply that played it, by parity, or stays empty. An empty log yields an
// all-empty board.
func Project(moves []int) (Board, error) {
	var board Board

	if err := ValidateLog(moves); err != nil {
		return board, err
	}

	for ply, cell := range moves {
		board[cell] = MarkForPly(ply)
	}

	return board, nil
}

package tictactoe

// WinningPatterns - the 8 cell triples that decide a game: three rows, three
// columns, two diagonals, in that order. Detection results keep this order.
var WinningPatterns = [8][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// DetectWins - returns every winning pattern whose three cells hold the same
// non-empty mark. Scans the whole board fresh each call; an empty result is
// the normal ongoing-game case, not an error.
func DetectWins(board Board) [][3]int {
	var wins [][3]int

	for _, pattern := range WinningPatterns {
		a, b, c := board[pattern[0]], board[pattern[1]], board[pattern[2]]
		if a != EmptyCell && a == b && b == c {
			wins = append(wins, pattern)
		}
	}

	return wins
}

package entity

// Mark is the content of a single board cell.
type Mark string

const (
	EmptyCell Mark = ""
	HumanMark Mark = "X"
	BotMark   Mark = "O"
)

// Outcome is derived from a board, never stored.
type Outcome string

const (
	OutcomeInProgress  Outcome = "in_progress"
	OutcomeHumanWin    Outcome = "human_win"
	OutcomeComputerWin Outcome = "computer_win"
	OutcomeDraw        Outcome = "draw"
)

const BoardSize = 9

// WinningLines - rows, columns and diagonals, in scan order.
var WinningLines = [8][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// Board is laid out row-major: 0,1,2 / 3,4,5 / 6,7,8.
type Board [BoardSize]Mark

// CheckWinner returns the mark occupying the first fully owned winning line
// and the line itself. It returns EmptyCell when no line is complete.
func (that Board) CheckWinner() (Mark, []int) {
	for _, line := range WinningLines {
		a, b, c := that[line[0]], that[line[1]], that[line[2]]
		if a != EmptyCell && a == b && b == c {
			return a, []int{line[0], line[1], line[2]}
		}
	}

	return EmptyCell, nil
}

func (that Board) IsFull() bool {
	for _, cell := range that {
		if cell == EmptyCell {
			return false
		}
	}

	return true
}

// EmptyCells returns free indices in ascending order.
func (that Board) EmptyCells() []int {
	cells := make([]int, 0, BoardSize)
	for i, cell := range that {
		if cell == EmptyCell {
			cells = append(cells, i)
		}
	}

	return cells
}

func (that Board) IsEmptyCell(cell int) bool {
	return cell >= 0 && cell < BoardSize && that[cell] == EmptyCell
}

func (that Board) Outcome() Outcome {
	winner, _ := that.CheckWinner()

	switch {
	case winner == HumanMark:
		return OutcomeHumanWin
	case winner == BotMark:
		return OutcomeComputerWin
	case that.IsFull():
		return OutcomeDraw
	default:
		return OutcomeInProgress
	}
}

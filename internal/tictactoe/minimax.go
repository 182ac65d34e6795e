package tictactoe

import (
	"math"

	"github.com/rocketscienceinc/tictactoe-portfolio/internal/entity"
)

const winScore = 10

// Strategy picks the cell the computer plays on the given board.
// It returns -1 when the board has no empty cell.
type Strategy func(board entity.Board) int

// BestMove searches the whole remaining game tree and returns the empty cell
// with the highest minimax score. Ties go to the lowest index.
func BestMove(board entity.Board) int {
	bestScore := math.MinInt
	bestMove := -1

	for _, cell := range board.EmptyCells() {
		next := board
		next[cell] = entity.BotMark

		score := minimax(next, 0, false)
		if score > bestScore {
			bestScore = score
			bestMove = cell
		}
	}

	return bestMove
}

// minimax scores a position from the computer's point of view.
// Faster wins and slower losses score better.
func minimax(board entity.Board, depth int, maximizing bool) int {
	switch winner, _ := board.CheckWinner(); winner {
	case entity.BotMark:
		return winScore - depth
	case entity.HumanMark:
		return depth - winScore
	}

	if board.IsFull() {
		return 0
	}

	if maximizing {
		best := math.MinInt
		for _, cell := range board.EmptyCells() {
			next := board
			next[cell] = entity.BotMark
			best = max(best, minimax(next, depth+1, false))
		}
		return best
	}

	best := math.MaxInt
	for _, cell := range board.EmptyCells() {
		next := board
		next[cell] = entity.HumanMark
		best = min(best, minimax(next, depth+1, true))
	}
	return best
}

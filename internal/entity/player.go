package entity

import "time"

const TicTacToeGame = "Tic Tac Toe"

// Player is the in-memory identity of one game session.
type Player struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
}

// ScoreRecord is a single leaderboard entry.
type ScoreRecord struct {
	Name      string    `json:"name"`
	Game      string    `json:"game"`
	Score     int       `json:"score"`
	Timestamp time.Time `json:"timestamp"`
}

func NewScoreRecord(player Player, game string) *ScoreRecord {
	return &ScoreRecord{
		Name:  player.Name,
		Game:  game,
		Score: player.Score,
	}
}

package tictactoe

import (
	"strings"

	"github.com/rocketscienceinc/tictactoe-portfolio/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-portfolio/internal/entity"
)

type Turn string

const (
	TurnHuman    Turn = "human"
	TurnComputer Turn = "computer"
)

// Signal reports what a transition did.
type Signal string

const (
	// SignalNone - the call was rejected and nothing changed.
	SignalNone         Signal = ""
	SignalStarted      Signal = "started"
	SignalComputerTurn Signal = "computer_turn"
	SignalHumanTurn    Signal = "human_turn"
	SignalHumanWin     Signal = "human_win"
	SignalComputerWin  Signal = "computer_win"
	SignalDraw         Signal = "draw"
	SignalReset        Signal = "reset"
)

// IsRoundOver - the signal ends the round and a reset should follow.
func (that Signal) IsRoundOver() bool {
	return that == SignalHumanWin || that == SignalComputerWin || that == SignalDraw
}

// State is a read-only snapshot for rendering.
type State struct {
	Board       entity.Board   `json:"board"`
	Turn        Turn           `json:"turn"`
	Started     bool           `json:"started"`
	RoundOver   bool           `json:"round_over"`
	Outcome     entity.Outcome `json:"outcome"`
	WinningLine []int          `json:"winning_line,omitempty"`
	Player      entity.Player  `json:"player"`
}

// Session is one player's game against the computer. It is not safe for
// concurrent use.
type Session struct {
	board     entity.Board
	turn      Turn
	started   bool
	roundOver bool
	player    entity.Player

	strategy Strategy
}

type Option func(*Session)

// WithStrategy replaces the minimax opponent.
func WithStrategy(strategy Strategy) Option {
	return func(session *Session) {
		session.strategy = strategy
	}
}

func NewSession(opts ...Option) *Session {
	session := &Session{
		turn:     TurnHuman,
		strategy: BestMove,
	}

	for _, opt := range opts {
		opt(session)
	}

	return session
}

// Start names the player and opens a fresh round. The cumulative score is kept.
func (that *Session) Start(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return apperror.ErrInvalidInput
	}

	that.player.Name = name
	that.started = true
	that.ResetRound()

	return nil
}

// ApplyHumanMove marks the cell for the human. Illegal moves are no-ops and
// return SignalNone. SignalComputerTurn means ComputerMove is due next.
func (that *Session) ApplyHumanMove(cell int) Signal {
	if !that.started || that.roundOver || that.turn != TurnHuman {
		return SignalNone
	}

	if !that.board.IsEmptyCell(cell) {
		return SignalNone
	}

	that.board[cell] = entity.HumanMark

	return that.evaluate(entity.HumanMark)
}

// ComputerMove plays the strategy's cell. It is a no-op unless it is the
// computer's turn in an unfinished round.
func (that *Session) ComputerMove() Signal {
	if !that.started || that.roundOver || that.turn != TurnComputer {
		return SignalNone
	}

	cell := that.strategy(that.board)
	if !that.board.IsEmptyCell(cell) {
		return SignalNone
	}

	that.board[cell] = entity.BotMark

	return that.evaluate(entity.BotMark)
}

// Play applies the human move and, when due, the computer reply right away.
func (that *Session) Play(cell int) Signal {
	signal := that.ApplyHumanMove(cell)
	if signal != SignalComputerTurn {
		return signal
	}

	return that.ComputerMove()
}

// ResetRound clears the board and hands the turn to the human.
func (that *Session) ResetRound() {
	that.board = entity.Board{}
	that.turn = TurnHuman
	that.roundOver = false
}

func (that *Session) State() State {
	_, line := that.board.CheckWinner()

	return State{
		Board:       that.board,
		Turn:        that.turn,
		Started:     that.started,
		RoundOver:   that.roundOver,
		Outcome:     that.board.Outcome(),
		WinningLine: line,
		Player:      that.player,
	}
}

func (that *Session) Player() entity.Player {
	return that.player
}

func (that *Session) evaluate(mover entity.Mark) Signal {
	switch winner, _ := that.board.CheckWinner(); winner {
	case entity.HumanMark:
		that.player.Score++
		that.roundOver = true
		return SignalHumanWin
	case entity.BotMark:
		that.roundOver = true
		return SignalComputerWin
	}

	if that.board.IsFull() {
		that.roundOver = true
		return SignalDraw
	}

	if mover == entity.HumanMark {
		that.turn = TurnComputer
		return SignalComputerTurn
	}

	that.turn = TurnHuman
	return SignalHumanTurn
}

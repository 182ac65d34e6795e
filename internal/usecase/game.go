package usecase

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/rocketscienceinc/tictactoe-portfolio/internal/entity"
	"github.com/rocketscienceinc/tictactoe-portfolio/internal/tictactoe"
)

type scoreReporter interface {
	Report(ctx context.Context, record *entity.ScoreRecord)
}

// Notifier receives every state change made by a scheduled continuation.
// It is called with the use case locked and must not call back into it.
type Notifier func(state tictactoe.State, signal tictactoe.Signal)

// Delays are UX pauses only; zero values run continuations immediately.
type Delays struct {
	ComputerMove time.Duration
	WinReset     time.Duration
	DrawReset    time.Duration
}

// GameUseCase drives one Session for one connected player. Human actions run
// synchronously; the computer reply and the post-round reset run later on
// timers that are dropped when the round they belong to is gone.
type GameUseCase struct {
	ctx    context.Context
	logger *slog.Logger

	reporter scoreReporter
	delays   Delays
	notify   Notifier

	mu         sync.Mutex
	session    *tictactoe.Session
	generation uint64
	timers     []*time.Timer
	closed     bool
}

func NewGameUseCase(ctx context.Context, logger *slog.Logger, reporter scoreReporter, delays Delays, notify Notifier, opts ...tictactoe.Option) *GameUseCase {
	if notify == nil {
		notify = func(tictactoe.State, tictactoe.Signal) {}
	}

	return &GameUseCase{
		ctx:      ctx,
		logger:   logger.With("component", "game"),
		reporter: reporter,
		delays:   delays,
		notify:   notify,
		session:  tictactoe.NewSession(opts...),
	}
}

// Start names the player and opens a fresh round.
func (that *GameUseCase) Start(name string) (tictactoe.State, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if err := that.session.Start(name); err != nil {
		return that.session.State(), err
	}

	that.cancelPending()
	that.logger.Info("game started", "player", that.session.Player().Name)

	return that.session.State(), nil
}

// SelectCell applies the human move. Illegal moves return SignalNone.
func (that *GameUseCase) SelectCell(cell int) (tictactoe.State, tictactoe.Signal) {
	that.mu.Lock()
	defer that.mu.Unlock()

	signal := that.session.ApplyHumanMove(cell)
	if signal != tictactoe.SignalNone {
		that.handleSignal(signal)
	}

	return that.session.State(), signal
}

// Reset clears the board at any time and drops pending continuations.
func (that *GameUseCase) Reset() tictactoe.State {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.cancelPending()
	that.session.ResetRound()

	return that.session.State()
}

func (that *GameUseCase) State() tictactoe.State {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.session.State()
}

// Close stops pending timers. The use case is unusable afterwards.
func (that *GameUseCase) Close() {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.cancelPending()
	that.closed = true
}

// handleSignal must be called with mu held.
func (that *GameUseCase) handleSignal(signal tictactoe.Signal) {
	log := that.logger.With("method", "handleSignal", "signal", signal)

	switch signal {
	case tictactoe.SignalComputerTurn:
		that.schedule(that.delays.ComputerMove, that.session.ComputerMove)
	case tictactoe.SignalHumanWin:
		player := that.session.Player()
		log.Info("player won a round", "player", player.Name, "score", player.Score)

		that.reporter.Report(that.ctx, entity.NewScoreRecord(player, entity.TicTacToeGame))
		that.schedule(that.delays.WinReset, that.resetRound)
	case tictactoe.SignalComputerWin:
		that.schedule(that.delays.WinReset, that.resetRound)
	case tictactoe.SignalDraw:
		that.schedule(that.delays.DrawReset, that.resetRound)
	}
}

// schedule runs step after delay unless the round changed in the meantime.
// Must be called with mu held.
func (that *GameUseCase) schedule(delay time.Duration, step func() tictactoe.Signal) {
	generation := that.generation

	timer := time.AfterFunc(delay, func() {
		that.mu.Lock()
		defer that.mu.Unlock()

		if that.closed || generation != that.generation {
			return
		}

		signal := step()
		if signal == tictactoe.SignalNone {
			return
		}

		that.handleSignal(signal)
		// under mu: subscribers see transitions in order
		that.notify(that.session.State(), signal)
	})

	that.timers = append(that.timers, timer)
}

// resetRound is the scheduled end-of-round reset. Must be called with mu held.
func (that *GameUseCase) resetRound() tictactoe.Signal {
	that.cancelPending()
	that.session.ResetRound()

	return tictactoe.SignalReset
}

// cancelPending must be called with mu held.
func (that *GameUseCase) cancelPending() {
	for _, timer := range that.timers {
		timer.Stop()
	}

	that.timers = nil
	that.generation++
}

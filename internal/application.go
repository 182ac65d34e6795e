package application

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/tictactoe-portfolio/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-portfolio/internal/config"
	"github.com/rocketscienceinc/tictactoe-portfolio/internal/repository"
	"github.com/rocketscienceinc/tictactoe-portfolio/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-portfolio/internal/service"
	"github.com/rocketscienceinc/tictactoe-portfolio/internal/tictactoe"
	"github.com/rocketscienceinc/tictactoe-portfolio/internal/usecase"
	"github.com/rocketscienceinc/tictactoe-portfolio/transport/rest"
	"github.com/rocketscienceinc/tictactoe-portfolio/transport/websocket"
)

const (
	driverRedis  = "redis"
	driverSQLite = "sqlite"
)

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()

	leaderboardRepo, closeStorage, err := initLeaderboardRepository(ctx, conf)
	if err != nil {
		return err
	}

	defer func() {
		if err := closeStorage(); err != nil {
			log.Error("could not close storage", "error", err)
		}
	}()

	leaderboard := usecase.NewLeaderboardUseCase(logger, leaderboardRepo, conf.Leaderboard.DefaultLimit)

	reporter := service.NewScoreReporter(logger, conf.Leaderboard.URL, conf.Leaderboard.Timeout)
	defer reporter.Wait()

	delays := usecase.Delays{
		ComputerMove: conf.Game.ComputerDelay,
		WinReset:     conf.Game.WinResetDelay,
		DrawReset:    conf.Game.DrawResetDelay,
	}

	newGame := func(notify func(tictactoe.State, tictactoe.Signal)) websocket.GameUseCase {
		return usecase.NewGameUseCase(ctx, logger, reporter, delays, notify)
	}

	// run HTTP server
	httpErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "port", conf.HTTPPort)
		if httpErr := rest.New(logger, leaderboard).Start(ctx, conf.HTTPPort); httpErr != nil {
			log.Error("HTTP server error", "error", httpErr)
			httpErrCh <- httpErr
		}
	}()

	// run Websocket server
	wsErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting WebSocket server", "port", conf.SocketPort)
		if wsErr := websocket.New(logger, newGame).Start(ctx, conf.SocketPort); wsErr != nil {
			log.Error("WebSocket server error", "error", wsErr)
			wsErrCh <- wsErr
		}
	}()

	select {
	case err = <-httpErrCh:
		return fmt.Errorf("HTTP server error: %w", err)
	case err = <-wsErrCh:
		return fmt.Errorf("WebSocket server error: %w", err)
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
		return nil
	}
}

// initLeaderboardRepository opens the configured storage. The returned func closes it.
func initLeaderboardRepository(ctx context.Context, conf *config.Config) (repository.LeaderboardRepository, func() error, error) {
	switch conf.Storage.Driver {
	case driverRedis:
		redisStorage, err := storage.NewRedisStorage(ctx, conf.Redis.GetRedisAddr())
		if err != nil {
			return nil, nil, fmt.Errorf("could not connect to redis storage: %w", err)
		}

		repo := repository.NewLeaderboardRepository(redisStorage.Connection, conf.Leaderboard.MaxRecords)
		return repo, redisStorage.Close, nil
	case driverSQLite:
		sqliteStorage, err := storage.NewSQLiteStorage(conf.Storage.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("could not open sqlite storage: %w", err)
		}

		if err = sqliteStorage.Init(ctx); err != nil {
			_ = sqliteStorage.Close()
			return nil, nil, fmt.Errorf("could not init sqlite storage: %w", err)
		}

		repo := repository.NewSQLiteLeaderboardRepository(sqliteStorage.Connection, conf.Leaderboard.MaxRecords)
		return repo, sqliteStorage.Close, nil
	default:
		return nil, nil, fmt.Errorf("%w: %q", apperror.ErrUnknownDriver, conf.Storage.Driver)
	}
}

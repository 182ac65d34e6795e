package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/rocketscienceinc/tictactoe-portfolio/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-portfolio/internal/entity"
)

type leaderboardRepository interface {
	Save(ctx context.Context, record *entity.ScoreRecord) error
	List(ctx context.Context, game string) ([]*entity.ScoreRecord, error)
}

type LeaderboardUseCase struct {
	logger *slog.Logger

	repo         leaderboardRepository
	defaultLimit int
	now          func() time.Time
}

func NewLeaderboardUseCase(logger *slog.Logger, repo leaderboardRepository, defaultLimit int) *LeaderboardUseCase {
	return &LeaderboardUseCase{
		logger:       logger.With("component", "leaderboard"),
		repo:         repo,
		defaultLimit: defaultLimit,
		now:          time.Now,
	}
}

// Submit validates and stores a record. The timestamp is set here.
func (that *LeaderboardUseCase) Submit(ctx context.Context, record *entity.ScoreRecord) (*entity.ScoreRecord, error) {
	log := that.logger.With("method", "Submit")

	if record == nil {
		return nil, apperror.ErrInvalidRecord
	}

	stored := &entity.ScoreRecord{
		Name:      strings.TrimSpace(record.Name),
		Game:      record.Game,
		Score:     record.Score,
		Timestamp: that.now().UTC(),
	}

	if stored.Name == "" || stored.Game == "" {
		return nil, apperror.ErrInvalidRecord
	}

	if err := that.repo.Save(ctx, stored); err != nil {
		return nil, fmt.Errorf("failed to save score record: %w", err)
	}

	log.Info("score record saved", "player", stored.Name, "game", stored.Game, "score", stored.Score)

	return stored, nil
}

// Top returns up to limit records for game, highest score first. Ties keep
// insertion order. A limit <= 0 falls back to the default.
func (that *LeaderboardUseCase) Top(ctx context.Context, game string, limit int) ([]*entity.ScoreRecord, error) {
	records, err := that.repo.List(ctx, game)
	if err != nil {
		return nil, fmt.Errorf("failed to list score records: %w", err)
	}

	if limit <= 0 {
		limit = that.defaultLimit
	}

	slices.SortStableFunc(records, func(a, b *entity.ScoreRecord) int {
		return b.Score - a.Score
	})

	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}

	return records, nil
}

package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/tictactoe-portfolio/internal/entity"
)

const leaderboardKey = "leaderboard:records"

// LeaderboardRepository stores score records in insertion order and keeps
// only the most recent maxRecords of them.
type LeaderboardRepository interface {
	Save(ctx context.Context, record *entity.ScoreRecord) error
	// List returns stored records oldest first. An empty game returns all.
	List(ctx context.Context, game string) ([]*entity.ScoreRecord, error)
}

type dbLeaderboard struct {
	client     *redis.Client
	maxRecords int
}

func NewLeaderboardRepository(client *redis.Client, maxRecords int) LeaderboardRepository {
	return &dbLeaderboard{
		client:     client,
		maxRecords: maxRecords,
	}
}

func (that *dbLeaderboard) Save(ctx context.Context, record *entity.ScoreRecord) error {
	recordJSON, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal score record: %w", err)
	}

	_, err = that.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.RPush(ctx, leaderboardKey, recordJSON)
		if that.maxRecords > 0 {
			pipe.LTrim(ctx, leaderboardKey, int64(-that.maxRecords), -1)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to save score record: %w", err)
	}

	return nil
}

func (that *dbLeaderboard) List(ctx context.Context, game string) ([]*entity.ScoreRecord, error) {
	response, err := that.client.LRange(ctx, leaderboardKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get score records: %w", err)
	}

	records := make([]*entity.ScoreRecord, 0, len(response))
	for _, raw := range response {
		var record entity.ScoreRecord
		if err = json.Unmarshal([]byte(raw), &record); err != nil {
			return nil, fmt.Errorf("failed to unmarshal score record: %w", err)
		}

		if game != "" && record.Game != game {
			continue
		}

		records = append(records, &record)
	}

	return records, nil
}

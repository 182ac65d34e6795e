package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rocketscienceinc/tictactoe-portfolio/internal/entity"
)

type sqliteLeaderboard struct {
	conn       *sql.DB
	maxRecords int
}

// NewSQLiteLeaderboardRepository expects the score_records table created by
// storage.SQLiteStorage.Init.
func NewSQLiteLeaderboardRepository(conn *sql.DB, maxRecords int) LeaderboardRepository {
	return &sqliteLeaderboard{
		conn:       conn,
		maxRecords: maxRecords,
	}
}

func (that *sqliteLeaderboard) Save(ctx context.Context, record *entity.ScoreRecord) error {
	tx, err := that.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("can't begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := `INSERT INTO score_records (name, game, score, timestamp) VALUES (?, ?, ?, ?)`

	timestamp := record.Timestamp.UTC().Format(time.RFC3339Nano)
	if _, err = tx.ExecContext(ctx, query, record.Name, record.Game, record.Score, timestamp); err != nil {
		return fmt.Errorf("can't save score record: %w", err)
	}

	if that.maxRecords > 0 {
		prune := `DELETE FROM score_records WHERE id NOT IN (
			SELECT id FROM score_records ORDER BY id DESC LIMIT ?
		)`

		if _, err = tx.ExecContext(ctx, prune, that.maxRecords); err != nil {
			return fmt.Errorf("can't prune score records: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("can't commit score record: %w", err)
	}

	return nil
}

func (that *sqliteLeaderboard) List(ctx context.Context, game string) ([]*entity.ScoreRecord, error) {
	query := `SELECT name, game, score, timestamp FROM score_records WHERE (? = '' OR game = ?) ORDER BY id`

	rows, err := that.conn.QueryContext(ctx, query, game, game)
	if err != nil {
		return nil, fmt.Errorf("can't list score records: %w", err)
	}
	defer rows.Close()

	var records []*entity.ScoreRecord
	for rows.Next() {
		var (
			record    entity.ScoreRecord
			timestamp string
		)

		if err = rows.Scan(&record.Name, &record.Game, &record.Score, &timestamp); err != nil {
			return nil, fmt.Errorf("can't scan score record: %w", err)
		}

		if record.Timestamp, err = time.Parse(time.RFC3339Nano, timestamp); err != nil {
			return nil, fmt.Errorf("can't parse timestamp: %w", err)
		}

		records = append(records, &record)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("can't read score records: %w", err)
	}

	return records, nil
}

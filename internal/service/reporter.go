package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/rocketscienceinc/tictactoe-portfolio/internal/entity"
)

var ErrUnexpectedStatus = errors.New("unexpected leaderboard status")

type ScoreReporter interface {
	// Report submits the record in the background. It never blocks on the
	// network and never returns an error.
	Report(ctx context.Context, record *entity.ScoreRecord)
	// Wait blocks until every in-flight report has finished.
	Wait()
}

type scoreReporter struct {
	logger *slog.Logger

	client *http.Client
	url    string

	wg sync.WaitGroup
}

type reportRequest struct {
	Name  string `json:"name"`
	Game  string `json:"game"`
	Score int    `json:"score"`
}

// NewScoreReporter - posts score records to the leaderboard endpoint at url.
func NewScoreReporter(logger *slog.Logger, url string, timeout time.Duration) ScoreReporter {
	return &scoreReporter{
		logger: logger.With("component", "score-reporter"),
		client: &http.Client{Timeout: timeout},
		url:    url,
	}
}

func (that *scoreReporter) Report(ctx context.Context, record *entity.ScoreRecord) {
	if record == nil || record.Name == "" || record.Score == 0 {
		return
	}

	payload := reportRequest{
		Name:  record.Name,
		Game:  record.Game,
		Score: record.Score,
	}

	that.wg.Add(1)
	go func() {
		defer that.wg.Done()

		log := that.logger.With("method", "Report", "player", payload.Name, "score", payload.Score)

		if err := that.submit(context.WithoutCancel(ctx), payload); err != nil {
			log.Error("failed to save player score", "error", err)
			return
		}

		log.Debug("player score saved")
	}()
}

func (that *scoreReporter) Wait() {
	that.wg.Wait()
}

func (that *scoreReporter) submit(ctx context.Context, payload reportRequest) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal score: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, that.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := that.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to post score: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	return nil
}

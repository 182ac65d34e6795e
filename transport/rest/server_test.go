package rest

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-portfolio/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-portfolio/internal/entity"
)

type mockLeaderboard struct {
	mock.Mock
}

func (that *mockLeaderboard) Submit(ctx context.Context, record *entity.ScoreRecord) (*entity.ScoreRecord, error) {
	args := that.Called(ctx, record)

	stored, _ := args.Get(0).(*entity.ScoreRecord)
	return stored, args.Error(1)
}

func (that *mockLeaderboard) Top(ctx context.Context, game string, limit int) ([]*entity.ScoreRecord, error) {
	args := that.Called(ctx, game, limit)

	records, _ := args.Get(0).([]*entity.ScoreRecord)
	return records, args.Error(1)
}

func newTestServer(leaderboard leaderboardUseCase) http.Handler {
	return New(slog.New(slog.NewJSONHandler(io.Discard, nil)), leaderboard).Handler()
}

func doRequest(t *testing.T, handler http.Handler, method, target, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	var decoded map[string]any
	if rec.Header().Get("Content-Type") == "application/json" {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decoded))
	}

	return rec, decoded
}

func TestServer_Ping(t *testing.T) {
	rec, _ := doRequest(t, newTestServer(&mockLeaderboard{}), http.MethodGet, "/ping", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "pong", rec.Body.String())
}

func TestServer_SavePlayer(t *testing.T) {
	t.Run("Saves a valid record", func(t *testing.T) {
		// Given: a leaderboard that accepts records
		leaderboard := &mockLeaderboard{}
		want := &entity.ScoreRecord{Name: "Ada", Game: entity.TicTacToeGame, Score: 3}
		leaderboard.On("Submit", mock.Anything, want).Return(want, nil).Once()

		// When: posting a record
		rec, body := doRequest(t, newTestServer(leaderboard), http.MethodPost, "/api/players",
			`{"name":"Ada","game":"Tic Tac Toe","score":3}`)

		// Then: success is reported
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, true, body["success"])
		leaderboard.AssertExpectations(t)
	})

	t.Run("Rejects malformed bodies", func(t *testing.T) {
		bodies := []string{
			`not json`,
			`{"name":"Ada","game":"Tic Tac Toe"}`,
			`{"name":"Ada","game":"Tic Tac Toe","score":"3"}`,
		}

		for _, payload := range bodies {
			leaderboard := &mockLeaderboard{}

			rec, body := doRequest(t, newTestServer(leaderboard), http.MethodPost, "/api/players", payload)

			assert.Equal(t, http.StatusBadRequest, rec.Code, payload)
			assert.Equal(t, false, body["success"])
			assert.Equal(t, "Invalid player data", body["error"])
			leaderboard.AssertNotCalled(t, "Submit", mock.Anything, mock.Anything)
		}
	})

	t.Run("Maps invalid records to 400", func(t *testing.T) {
		leaderboard := &mockLeaderboard{}
		leaderboard.On("Submit", mock.Anything, mock.Anything).Return(nil, apperror.ErrInvalidRecord)

		rec, body := doRequest(t, newTestServer(leaderboard), http.MethodPost, "/api/players",
			`{"name":" ","game":"Tic Tac Toe","score":1}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, false, body["success"])
	})

	t.Run("Maps storage failures to 500", func(t *testing.T) {
		leaderboard := &mockLeaderboard{}
		leaderboard.On("Submit", mock.Anything, mock.Anything).Return(nil, errors.New("boom"))

		rec, body := doRequest(t, newTestServer(leaderboard), http.MethodPost, "/api/players",
			`{"name":"Ada","game":"Tic Tac Toe","score":1}`)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "Failed to save player data", body["error"])
	})
}

func TestServer_ListPlayers(t *testing.T) {
	t.Run("Passes the game filter and limit", func(t *testing.T) {
		// Given: a leaderboard with one record
		leaderboard := &mockLeaderboard{}
		leaderboard.On("Top", mock.Anything, entity.TicTacToeGame, 5).
			Return([]*entity.ScoreRecord{{Name: "Ada", Game: entity.TicTacToeGame, Score: 3}}, nil).Once()

		// When: listing players
		rec, body := doRequest(t, newTestServer(leaderboard), http.MethodGet, "/api/players?game=Tic+Tac+Toe&limit=5", "")

		// Then: the records are returned
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, true, body["success"])
		players, ok := body["players"].([]any)
		require.True(t, ok)
		require.Len(t, players, 1)
		assert.Equal(t, "Ada", players[0].(map[string]any)["name"])
		leaderboard.AssertExpectations(t)
	})

	t.Run("Non-numeric limit falls back to the default", func(t *testing.T) {
		leaderboard := &mockLeaderboard{}
		leaderboard.On("Top", mock.Anything, "", 0).Return(nil, nil).Once()

		rec, body := doRequest(t, newTestServer(leaderboard), http.MethodGet, "/api/players?limit=abc", "")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, []any{}, body["players"])
		leaderboard.AssertExpectations(t)
	})

	t.Run("Maps storage failures to 500", func(t *testing.T) {
		leaderboard := &mockLeaderboard{}
		leaderboard.On("Top", mock.Anything, "", 0).Return(nil, errors.New("boom"))

		rec, body := doRequest(t, newTestServer(leaderboard), http.MethodGet, "/api/players", "")

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, false, body["success"])
	})
}

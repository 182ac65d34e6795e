package rest

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/rocketscienceinc/tictactoe-portfolio/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-portfolio/internal/entity"
)

type savePlayerRequest struct {
	Name  string `json:"name"`
	Game  string `json:"game"`
	Score *int   `json:"score"`
}

type savePlayerResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type listPlayersResponse struct {
	Success bool                  `json:"success"`
	Players []*entity.ScoreRecord `json:"players"`
}

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func (that *Server) handleSavePlayer(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "handleSavePlayer")

	var req savePlayerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Score == nil {
		that.writeError(w, http.StatusBadRequest, "Invalid player data")
		return
	}

	record := &entity.ScoreRecord{
		Name:  req.Name,
		Game:  req.Game,
		Score: *req.Score,
	}

	_, err := that.leaderboard.Submit(r.Context(), record)
	if errors.Is(err, apperror.ErrInvalidRecord) {
		that.writeError(w, http.StatusBadRequest, "Invalid player data")
		return
	}
	if err != nil {
		log.Error("failed to save player data", "error", err)
		that.writeError(w, http.StatusInternalServerError, "Failed to save player data")
		return
	}

	that.writeJSON(w, http.StatusOK, savePlayerResponse{Success: true, Message: "Player data saved successfully"})
}

func (that *Server) handleListPlayers(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "handleListPlayers")

	game := r.URL.Query().Get("game")

	// non-numeric limits fall back to the default
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	players, err := that.leaderboard.Top(r.Context(), game, limit)
	if err != nil {
		log.Error("failed to read player data", "error", err)
		that.writeError(w, http.StatusInternalServerError, "Failed to read player data")
		return
	}

	if players == nil {
		players = []*entity.ScoreRecord{}
	}

	that.writeJSON(w, http.StatusOK, listPlayersResponse{Success: true, Players: players})
}

package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/rocketscienceinc/tictactoe-portfolio/internal/entity"
)

const shutdownTimeout = 5 * time.Second

type leaderboardUseCase interface {
	Submit(ctx context.Context, record *entity.ScoreRecord) (*entity.ScoreRecord, error)
	Top(ctx context.Context, game string, limit int) ([]*entity.ScoreRecord, error)
}

type Server struct {
	logger      *slog.Logger
	leaderboard leaderboardUseCase

	router *chi.Mux
}

func New(logger *slog.Logger, leaderboard leaderboardUseCase) *Server {
	server := &Server{
		logger:      logger.With("component", "rest"),
		leaderboard: leaderboard,
		router:      chi.NewRouter(),
	}

	server.router.Use(middleware.RequestID)
	server.router.Use(middleware.RealIP)
	server.router.Use(middleware.Recoverer)
	server.router.Use(middleware.Timeout(10 * time.Second))

	server.router.Get("/ping", server.handlePing)

	server.router.Route("/api/players", func(r chi.Router) {
		r.Post("/", server.handleSavePlayer)
		r.Get("/", server.handleListPlayers)
	})

	return server
}

func (that *Server) Handler() http.Handler {
	return that.router
}

// Start - starts HTTP server and stops it when ctx is done.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      that.router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			that.logger.Error("failed to shutdown server", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

func (that *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		that.logger.Error("failed to write response", "error", err)
	}
}

func (that *Server) writeError(w http.ResponseWriter, status int, message string) {
	that.writeJSON(w, status, errorResponse{Success: false, Error: message})
}

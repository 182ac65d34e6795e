package websocket

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-portfolio/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-portfolio/internal/tictactoe"
)

func decodePayload(msg *Message) (RequestPayload, error) {
	var payload RequestPayload
	if len(msg.Payload) == 0 {
		return payload, nil
	}

	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		return payload, fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	return payload, nil
}

func (that *Server) handleStart(conn *connection, msg *Message) error {
	log := that.logger.With("method", "handleStart")

	payload, err := decodePayload(msg)
	if err != nil {
		return conn.sendError(msg.Action, "invalid payload")
	}

	state, err := conn.game.Start(payload.Name)
	if errors.Is(err, apperror.ErrInvalidInput) {
		return conn.sendError(msg.Action, err.Error())
	}
	if err != nil {
		log.Error("failed to start game", "error", err)
		return conn.sendError(msg.Action, "failed to start game")
	}

	return conn.send(msg.Action, ResponsePayload{State: &state, Signal: tictactoe.SignalStarted})
}

// handleMove answers an illegal move with the unchanged state and no signal.
func (that *Server) handleMove(conn *connection, msg *Message) error {
	payload, err := decodePayload(msg)
	if err != nil || payload.Cell == nil {
		return conn.sendError(msg.Action, "cell is required")
	}

	state, signal := conn.game.SelectCell(*payload.Cell)

	return conn.send(msg.Action, ResponsePayload{State: &state, Signal: signal})
}

func (that *Server) handleReset(conn *connection, msg *Message) error {
	state := conn.game.Reset()

	return conn.send(msg.Action, ResponsePayload{State: &state, Signal: tictactoe.SignalReset})
}

func (that *Server) handleState(conn *connection, msg *Message) error {
	state := conn.game.State()

	return conn.send(msg.Action, ResponsePayload{State: &state})
}

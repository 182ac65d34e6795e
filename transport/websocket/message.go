package websocket

import (
	"encoding/json"

	"github.com/rocketscienceinc/tictactoe-portfolio/internal/tictactoe"
)

const (
	actionStart = "game:start"
	actionMove  = "game:move"
	actionReset = "game:reset"
	actionState = "game:state"
	actionError = "error"
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type RequestPayload struct {
	Name string `json:"name,omitempty"`
	Cell *int   `json:"cell,omitempty"`
}

type ResponsePayload struct {
	State  *tictactoe.State `json:"state,omitempty"`
	Signal tictactoe.Signal `json:"signal,omitempty"`
	Error  string           `json:"error,omitempty"`
}

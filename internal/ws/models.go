package ws

import (
	"encoding/json"
)

const (
	EventNewGame = "new_game"
	EventState   = "state"
	EventMove    = "move"
	EventRestart = "restart"
)

type Incoming struct {
	Event string          `json:"event"`
	ID    int             `json:"id"`
	Data  json.RawMessage `json:"data"`
}

// Outgoing answers the Incoming message with the same ID. Data is a models.GameResponse
// unless Error is set.
type Outgoing struct {
	ID    int    `json:"id"`
	Data  any    `json:"data,omitempty"`
	Error string `json:"error,omitempty"`
}

package ws

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/gofiber/contrib/websocket"
	"github.com/lk16/reversi/internal/game"
	"github.com/lk16/reversi/internal/models"
	"github.com/lk16/reversi/internal/services"
)

var errNoGame = errors.New("no game started, send a new_game event first")

// Handler plays one game per websocket connection.
type Handler struct {
	services   *services.Services
	ws         *websocket.Conn
	controller *game.Controller
}

// NewHandler creates a new Handler.
func NewHandler(ws *websocket.Conn, services *services.Services) *Handler {
	return &Handler{services: services, ws: ws}
}

func (h *Handler) readMessage() (*Incoming, error) {
	var req Incoming

	msgType, msg, err := h.ws.ReadMessage()
	if err != nil {
		return nil, fmt.Errorf("ws read error: %w", err)
	}

	slog.Debug("read ws message", "msgType", msgType, "msg", msg)

	if msgType != websocket.TextMessage {
		return nil, fmt.Errorf("unexpected message type: %d", msgType)
	}

	if err = json.Unmarshal(msg, &req); err != nil {
		return nil, fmt.Errorf("unmarshal error: %w", err)
	}

	return &req, nil
}

func (h *Handler) writeMessage(outgoing *Outgoing) error {
	msg, err := json.Marshal(outgoing)
	if err != nil {
		return fmt.Errorf("marshal error: %w", err)
	}

	slog.Debug("write ws message", "msg", string(msg))

	if err = h.ws.WriteMessage(websocket.TextMessage, msg); err != nil {
		return fmt.Errorf("write error: %w", err)
	}

	return nil
}

func (h *Handler) handleMessage(req *Incoming) (*Outgoing, error) {
	if req.Event == "" {
		return nil, errors.New("event field is either empty or missing")
	}

	var resp *models.GameResponse
	var err error

	switch req.Event {
	case EventNewGame:
		resp, err = h.handleNewGame(req)
	case EventState:
		resp, err = h.handleState()
	case EventMove:
		resp, err = h.handleMove(req)
	case EventRestart:
		resp, err = h.handleRestart()
	default:
		return nil, fmt.Errorf("unknown event: %s", req.Event)
	}

	if err != nil {
		return nil, err
	}

	return &Outgoing{ID: req.ID, Data: resp}, nil
}

// Handle handles the websocket connection. Invalid requests are answered with an error,
// the connection is closed on transport errors only.
func (h *Handler) Handle() error {
	for {
		req, err := h.readMessage()
		if err != nil {
			return fmt.Errorf("ws read error: %w", err)
		}

		resp, err := h.handleMessage(req)
		if err != nil {
			slog.Warn("ws request failed", "event", req.Event, "error", err)
			resp = &Outgoing{ID: req.ID, Error: err.Error()}
		}

		if err = h.writeMessage(resp); err != nil {
			return fmt.Errorf("ws write error: %w", err)
		}
	}
}

func (h *Handler) handleNewGame(req *Incoming) (*models.GameResponse, error) {
	var reqData models.NewGameRequest
	if len(req.Data) > 0 {
		if err := json.Unmarshal(req.Data, &reqData); err != nil {
			return nil, fmt.Errorf("ws new game request unmarshal error: %w", err)
		}
	}

	gameCfg, err := reqData.Resolve(h.services.Config.Game)
	if err != nil {
		return nil, err
	}

	controller, err := h.services.NewGame(gameCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to start game: %w", err)
	}

	h.controller = controller
	return models.NewGameResponse("", h.controller), nil
}

func (h *Handler) handleState() (*models.GameResponse, error) {
	if h.controller == nil {
		return nil, errNoGame
	}

	return models.NewGameResponse("", h.controller), nil
}

func (h *Handler) handleMove(req *Incoming) (*models.GameResponse, error) {
	if h.controller == nil {
		return nil, errNoGame
	}

	var reqData models.MoveRequest
	if err := json.Unmarshal(req.Data, &reqData); err != nil {
		return nil, fmt.Errorf("ws move request unmarshal error: %w", err)
	}

	if err := reqData.Validate(); err != nil {
		return nil, err
	}

	applied := h.controller.HumanMove(*reqData.Row, *reqData.Col)
	if applied {
		if err := h.controller.Advance(); err != nil {
			return nil, err
		}
	}

	return models.NewGameResponse("", h.controller).WithApplied(applied), nil
}

func (h *Handler) handleRestart() (*models.GameResponse, error) {
	if h.controller == nil {
		return nil, errNoGame
	}

	restarted, err := h.controller.Restart()
	if err != nil {
		return nil, err
	}

	if err = restarted.Advance(); err != nil {
		return nil, err
	}

	h.controller = restarted
	return models.NewGameResponse("", h.controller), nil
}

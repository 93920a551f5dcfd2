package models

import (
	"errors"
	"strings"

	"github.com/lk16/reversi/internal/config"
	"github.com/lk16/reversi/internal/game"
	"github.com/lk16/reversi/internal/othello"
)

// NewGameRequest is the payload to start a game. Missing fields take the server defaults.
type NewGameRequest struct {
	Size      *int          `json:"size,omitempty"`
	HumanSide *othello.Side `json:"human_side,omitempty"`
	EndRule   *game.EndRule `json:"end_rule,omitempty"`
	Policy    string        `json:"policy,omitempty"`
}

// Resolve merges the request into a copy of defaults and validates the result.
func (r NewGameRequest) Resolve(defaults *config.GameConfig) (*config.GameConfig, error) {
	resolved := *defaults

	if r.Size != nil {
		resolved.BoardSize = *r.Size
	}

	if r.HumanSide != nil {
		resolved.HumanSide = *r.HumanSide
	}

	if r.EndRule != nil {
		resolved.EndRule = *r.EndRule
	}

	if r.Policy != "" {
		resolved.Policy = strings.ToLower(r.Policy)
	}

	if err := resolved.Validate(); err != nil {
		return nil, err
	}

	return &resolved, nil
}

// MoveRequest is the payload to place a disc for the human.
type MoveRequest struct {
	Row *int `json:"row"`
	Col *int `json:"col"`
}

// Validate checks that both coordinates are present.
func (r MoveRequest) Validate() error {
	if r.Row == nil || r.Col == nil {
		return errors.New("row and col are required")
	}
	return nil
}

// GameResponse is the state of a game as seen by clients.
type GameResponse struct {
	ID           string               `json:"id,omitempty"`
	Size         int                  `json:"size"`
	Rows         []string             `json:"rows"`
	State        game.State           `json:"state"`
	Turn         *othello.Side        `json:"turn"`
	HumanSide    othello.Side         `json:"human_side"`
	ComputerSide othello.Side         `json:"computer_side"`
	EndRule      game.EndRule         `json:"end_rule"`
	LegalMoves   []othello.Coord      `json:"legal_moves"`
	Counts       map[othello.Side]int `json:"counts"`
	Result       string               `json:"result,omitempty"`
	LastMove     *othello.Coord       `json:"last_move"`
	Applied      *bool                `json:"applied,omitempty"`
}

// NewGameResponse describes the game of controller. Legal moves are listed for the human
// only, and only when it is the human's turn.
func NewGameResponse(id string, controller *game.Controller) *GameResponse {
	board := controller.Board()

	resp := &GameResponse{
		ID:           id,
		Size:         board.Size(),
		Rows:         board.Rows(),
		State:        controller.State(),
		HumanSide:    controller.HumanSide(),
		ComputerSide: controller.ComputerSide(),
		EndRule:      controller.Options().EndRule,
		LegalMoves:   []othello.Coord{},
		Counts: map[othello.Side]int{
			othello.First:  board.Count(othello.First),
			othello.Second: board.Count(othello.Second),
		},
	}

	if result, over := controller.Result(); over {
		resp.Result = result.String()
	} else {
		turn := controller.Turn()
		resp.Turn = &turn
	}

	if controller.State() == game.AwaitingHumanMove {
		resp.LegalMoves = board.LegalMoves(controller.HumanSide())
	}

	if lastMove := controller.LastMove(); lastMove != othello.NoMove {
		resp.LastMove = &lastMove
	}

	return resp
}

// WithApplied sets whether the requested move was played.
func (r *GameResponse) WithApplied(applied bool) *GameResponse {
	r.Applied = &applied
	return r
}

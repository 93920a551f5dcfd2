package game

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/lk16/reversi/internal/othello"
)

var (
	ErrInvalidOpponentMove = errors.New("invalid opponent move")
	ErrNotComputerTurn     = errors.New("not the computer's turn")
)

// State is the state of the turn state machine.
type State int

const (
	AwaitingHumanMove State = iota
	AwaitingComputerMove
	GameOver
)

func (s State) String() string {
	switch s {
	case AwaitingHumanMove:
		return "awaiting_human_move"
	case AwaitingComputerMove:
		return "awaiting_computer_move"
	case GameOver:
		return "game_over"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *State) UnmarshalText(text []byte) error {
	for _, state := range []State{AwaitingHumanMove, AwaitingComputerMove, GameOver} {
		if state.String() == string(text) {
			*s = state
			return nil
		}
	}
	return fmt.Errorf("invalid state: %q", text)
}

// Policy picks the computer's move. It returns othello.NoMove when side cannot move.
type Policy interface {
	ChooseMove(board *othello.Board, side othello.Side) othello.Coord
}

// PolicyFunc adapts a function to the Policy interface.
type PolicyFunc func(board *othello.Board, side othello.Side) othello.Coord

// ChooseMove calls f.
func (f PolicyFunc) ChooseMove(board *othello.Board, side othello.Side) othello.Coord {
	return f(board, side)
}

// Controller sequences the turns of one human against the computer on a single board.
// It is not safe for concurrent use.
type Controller struct {
	options Options
	policy  Policy

	board    *othello.Board
	state    State
	turn     othello.Side
	lastMove othello.Coord
	result   othello.Result
}

// NewController starts a new game from the opening position. The first side always opens.
func NewController(options Options, policy Policy) (*Controller, error) {
	if err := options.Validate(); err != nil {
		return nil, err
	}

	if policy == nil {
		return nil, errors.New("policy is required")
	}

	board, err := othello.NewBoardStart(options.Size)
	if err != nil {
		return nil, fmt.Errorf("failed to create board: %w", err)
	}

	return newController(options, policy, board, othello.First), nil
}

// NewControllerWithStart starts a game from a custom position with turn to move. This
// allows for custom start positions for debugging. Restart goes back to the opening
// position of the start board's size.
func NewControllerWithStart(options Options, policy Policy, start *othello.Board, turn othello.Side) (*Controller, error) {
	options.Size = start.Size()

	if err := options.Validate(); err != nil {
		return nil, err
	}

	if policy == nil {
		return nil, errors.New("policy is required")
	}

	return newController(options, policy, start.Clone(), turn), nil
}

func newController(options Options, policy Policy, board *othello.Board, turn othello.Side) *Controller {
	c := &Controller{
		options:  options,
		policy:   policy,
		board:    board,
		turn:     turn,
		lastMove: othello.NoMove,
	}

	c.state = c.stateForTurn()

	// Tiny boards and custom positions can start without legal moves.
	c.checkGameEnd()

	return c
}

// Restart builds a new controller with a fresh board and the same options and policy.
func (c *Controller) Restart() (*Controller, error) {
	return NewController(c.options, c.policy)
}

// Options returns the options the game was started with.
func (c *Controller) Options() Options {
	return c.options
}

// State returns the current state.
func (c *Controller) State() State {
	return c.state
}

// Turn returns the side to move. It is meaningless once the game is over.
func (c *Controller) Turn() othello.Side {
	return c.turn
}

// HumanSide returns the side played by the human.
func (c *Controller) HumanSide() othello.Side {
	return c.options.HumanSide
}

// ComputerSide returns the side played by the computer.
func (c *Controller) ComputerSide() othello.Side {
	return c.options.HumanSide.Opponent()
}

// Board returns a snapshot of the board.
func (c *Controller) Board() *othello.Board {
	return c.board.Clone()
}

// LastMove returns the last placed disc, or othello.NoMove before the first move.
func (c *Controller) LastMove() othello.Coord {
	return c.lastMove
}

// Result returns the outcome of the game and whether the game is over.
func (c *Controller) Result() (othello.Result, bool) {
	return c.result, c.state == GameOver
}

// HumanMove plays the human's disc on (row, col). Moves outside the human's turn and illegal
// moves are ignored. It returns whether the move was played.
func (c *Controller) HumanMove(row, col int) bool {
	if c.state != AwaitingHumanMove {
		slog.Debug("Ignoring move outside human turn", "row", row, "col", col, "state", c.state)
		return false
	}

	side := c.HumanSide()
	if !c.board.IsLegalMove(row, col, side) {
		slog.Debug("Ignoring illegal move", "row", row, "col", col, "side", side)
		return false
	}

	c.place(othello.Coord{Row: row, Col: col}, side)
	return true
}

// ComputerMove asks the policy for a move and plays it. An invalid answer leaves the
// game untouched and returns ErrInvalidOpponentMove, unless the fallback policy provides
// a valid move.
func (c *Controller) ComputerMove() error {
	if c.state != AwaitingComputerMove {
		return fmt.Errorf("%w: state is %s", ErrNotComputerTurn, c.state)
	}

	side := c.ComputerSide()

	move := c.policy.ChooseMove(c.board.Clone(), side)
	if !c.isValidMove(move, side) {
		slog.Warn("Invalid place", "row", move.Row, "col", move.Col, "side", side)

		if c.options.Fallback == nil {
			return fmt.Errorf("%w: %s for %s", ErrInvalidOpponentMove, move, side)
		}

		fallback := c.options.Fallback.ChooseMove(c.board.Clone(), side)
		if !c.isValidMove(fallback, side) {
			return fmt.Errorf("%w: %s for %s, fallback returned %s", ErrInvalidOpponentMove, move, side, fallback)
		}

		slog.Info("Using fallback move", "row", fallback.Row, "col", fallback.Col, "side", side)
		move = fallback
	}

	c.place(move, side)
	return nil
}

// Advance plays computer moves until the human is to move or the game is over.
func (c *Controller) Advance() error {
	for c.state == AwaitingComputerMove {
		if err := c.ComputerMove(); err != nil {
			return err
		}
	}
	return nil
}

func (c *Controller) isValidMove(move othello.Coord, side othello.Side) bool {
	return c.board.IsLegalMove(move.Row, move.Col, side) && !c.board.IsOccupied(move.Row, move.Col)
}

func (c *Controller) place(move othello.Coord, side othello.Side) {
	c.board.Place(move.Row, move.Col, side)
	c.lastMove = move

	c.turn = side.Opponent()
	c.state = c.stateForTurn()

	c.checkGameEnd()
}

func (c *Controller) stateForTurn() State {
	if c.turn == c.HumanSide() {
		return AwaitingHumanMove
	}
	return AwaitingComputerMove
}

// checkGameEnd moves to GameOver when the end rule says so, and handles passing.
func (c *Controller) checkGameEnd() {
	toMove := c.board.CountLegalMoves(c.turn)
	other := c.board.CountLegalMoves(c.turn.Opponent())

	switch c.options.EndRule {
	case EndWhenBothBlocked:
		if toMove > 0 {
			return
		}
		if other > 0 {
			slog.Debug("Side passes", "side", c.turn)
			c.turn = c.turn.Opponent()
			c.state = c.stateForTurn()
			return
		}
	default:
		if toMove > 0 && other > 0 {
			return
		}
	}

	c.state = GameOver
	c.result = c.board.Result()

	slog.Info(
		"Game over",
		"result", c.result,
		c.HumanSide().String(), c.board.Count(c.HumanSide()),
		c.ComputerSide().String(), c.board.Count(c.ComputerSide()),
	)
}

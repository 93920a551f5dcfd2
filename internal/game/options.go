package game

import (
	"fmt"
	"strings"

	"github.com/lk16/reversi/internal/othello"
)

// EndRule decides when a game is over.
type EndRule int

const (
	// EndWhenEitherBlocked ends the game as soon as one side has no legal move.
	EndWhenEitherBlocked EndRule = iota

	// EndWhenBothBlocked lets a side without moves pass and ends the game only when
	// neither side can move.
	EndWhenBothBlocked
)

func (r EndRule) String() string {
	switch r {
	case EndWhenEitherBlocked:
		return "either"
	case EndWhenBothBlocked:
		return "both"
	default:
		return fmt.Sprintf("EndRule(%d)", int(r))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (r EndRule) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *EndRule) UnmarshalText(text []byte) error {
	rule, err := ParseEndRule(string(text))
	if err != nil {
		return err
	}
	*r = rule
	return nil
}

// ParseEndRule parses "either" or "both".
func ParseEndRule(name string) (EndRule, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "either":
		return EndWhenEitherBlocked, nil
	case "both":
		return EndWhenBothBlocked, nil
	default:
		return EndWhenEitherBlocked, fmt.Errorf("invalid end rule: %q", name)
	}
}

// Options configures a game.
type Options struct {
	// Size is the number of rows and columns of the board.
	Size int

	// HumanSide is the side played by the human. The computer plays the other one.
	HumanSide othello.Side

	// EndRule decides when the game is over.
	EndRule EndRule

	// Fallback is consulted once when the policy returns an invalid move. Nil disables it.
	Fallback Policy
}

// DefaultOptions returns the options of a default game: 6x6, human opens.
func DefaultOptions() Options {
	return Options{
		Size:      othello.DefaultBoardSize,
		HumanSide: othello.First,
		EndRule:   EndWhenEitherBlocked,
	}
}

// Validate checks the options.
func (o Options) Validate() error {
	if err := othello.ValidateSize(o.Size); err != nil {
		return err
	}

	if o.HumanSide != othello.First && o.HumanSide != othello.Second {
		return fmt.Errorf("invalid human side: %d", int(o.HumanSide))
	}

	if o.EndRule != EndWhenEitherBlocked && o.EndRule != EndWhenBothBlocked {
		return fmt.Errorf("invalid end rule: %d", int(o.EndRule))
	}

	return nil
}

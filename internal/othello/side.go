package othello

import (
	"fmt"
	"strconv"
	"strings"
)

// Side is one of the two players.
type Side int

const (
	First Side = iota
	Second
)

// Opponent returns the other side.
func (s Side) Opponent() Side {
	return First + Second - s
}

// String returns the disc color of the side.
func (s Side) String() string {
	switch s {
	case First:
		return "black"
	case Second:
		return "white"
	default:
		return fmt.Sprintf("Side(%d)", int(s))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s Side) MarshalText() ([]byte, error) {
	if s != First && s != Second {
		return nil, fmt.Errorf("invalid side: %d", int(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Side) UnmarshalText(text []byte) error {
	side, err := ParseSide(string(text))
	if err != nil {
		return err
	}
	*s = side
	return nil
}

// ParseSide parses a side from its color name. "first" and "second" are accepted too.
func ParseSide(name string) (Side, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "black", "first", "x":
		return First, nil
	case "white", "second", "o":
		return Second, nil
	default:
		return First, fmt.Errorf("invalid side: %q", name)
	}
}

// Result is the outcome of a finished position.
type Result int

const (
	ResultFirstWins Result = iota
	ResultSecondWins
	ResultDraw
)

// String returns a short description of the result.
func (r Result) String() string {
	switch r {
	case ResultFirstWins:
		return First.String() + " wins"
	case ResultSecondWins:
		return Second.String() + " wins"
	case ResultDraw:
		return "draw"
	default:
		return fmt.Sprintf("Result(%d)", int(r))
	}
}

// Winner returns the winning side, or false for a draw.
func (r Result) Winner() (Side, bool) {
	switch r {
	case ResultFirstWins:
		return First, true
	case ResultSecondWins:
		return Second, true
	default:
		return First, false
	}
}

// Coord is a cell on the board.
type Coord struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// NoMove is returned by move pickers when a side has no legal move.
var NoMove = Coord{Row: -1, Col: -1}

// String returns the coordinate in field notation, e.g. "c4" for row 3, column 2.
func (c Coord) String() string {
	if c == NoMove {
		return "--"
	}
	if c.Col < 0 || c.Col >= MaxBoardSize || c.Row < 0 {
		return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
	}
	return fmt.Sprintf("%s%d", ColumnLabel(c.Col), c.Row+1)
}

// ColumnLabel names columns a to z, then A to F for the widest boards.
func ColumnLabel(col int) string {
	if col < 26 {
		return string(rune('a' + col))
	}
	return string(rune('A' + col - 26))
}

// ParseCoord parses field notation as returned by Coord.String.
func ParseCoord(field string) (Coord, error) {
	field = strings.TrimSpace(field)
	if field == "--" {
		return NoMove, nil
	}

	if len(field) < 2 {
		return NoMove, fmt.Errorf("invalid field: %q", field)
	}

	var col int
	switch letter := field[0]; {
	case letter >= 'a' && letter <= 'z':
		col = int(letter - 'a')
	case letter >= 'A' && letter < 'A'+MaxBoardSize-26:
		col = int(letter-'A') + 26
	default:
		return NoMove, fmt.Errorf("invalid column in field: %q", field)
	}

	row, err := strconv.Atoi(field[1:])
	if err != nil || row < 1 || row > MaxBoardSize {
		return NoMove, fmt.Errorf("invalid row in field: %q", field)
	}

	return Coord{Row: row - 1, Col: col}, nil
}

package othello

import (
	"errors"
	"fmt"
	"strings"
)

const (
	MinBoardSize     = 2
	MaxBoardSize     = 32
	DefaultBoardSize = 6
)

var (
	ErrInvalidBoardSize = errors.New("invalid board size")
	ErrOutOfRange       = errors.New("coordinate out of range")
	ErrEmptyCell        = errors.New("cell is empty")
)

// cell is the occupancy of a single square.
type cell uint8

const (
	empty cell = iota
	firstDisc
	secondDisc
)

func discOf(side Side) cell {
	if side == Second {
		return secondDisc
	}
	return firstDisc
}

// Board is the grid occupancy together with the legal moves of both sides.
// It is mutated only by Place.
type Board struct {
	size  int
	cells []cell

	// legal holds the legal move mask for each side, indexed by Side.
	legal [2][]bool
}

// ValidateSize checks that size is an even number within the supported range.
func ValidateSize(size int) error {
	if size < MinBoardSize || size > MaxBoardSize || size%2 != 0 {
		return fmt.Errorf("%w: %d, must be even and between %d and %d",
			ErrInvalidBoardSize, size, MinBoardSize, MaxBoardSize)
	}
	return nil
}

func newBoardEmpty(size int) *Board {
	return &Board{
		size:  size,
		cells: make([]cell, size*size),
		legal: [2][]bool{
			make([]bool, size*size),
			make([]bool, size*size),
		},
	}
}

// NewBoardStart creates a board with the four center cells filled.
func NewBoardStart(size int) (*Board, error) {
	if err := ValidateSize(size); err != nil {
		return nil, err
	}

	b := newBoardEmpty(size)

	center := size / 2
	b.set(center, center-1, firstDisc)
	b.set(center, center, secondDisc)
	b.set(center-1, center-1, secondDisc)
	b.set(center-1, center, firstDisc)

	b.recomputeLegalMoves()
	return b, nil
}

// NewBoardFromRows creates a board from one string per row, using 'x' for the first side,
// 'o' for the second side and '.' for empty cells.
func NewBoardFromRows(rows []string) (*Board, error) {
	size := len(rows)
	if err := ValidateSize(size); err != nil {
		return nil, err
	}

	b := newBoardEmpty(size)

	for row, line := range rows {
		if len(line) != size {
			return nil, fmt.Errorf("row %d has %d cells, expected %d", row, len(line), size)
		}

		for col, char := range strings.ToLower(line) {
			switch char {
			case 'x':
				b.set(row, col, firstDisc)
			case 'o':
				b.set(row, col, secondDisc)
			case '.':
			default:
				return nil, fmt.Errorf("invalid cell %q at row %d, column %d", char, row, col)
			}
		}
	}

	b.recomputeLegalMoves()
	return b, nil
}

func (b *Board) inRange(row, col int) bool {
	return row >= 0 && col >= 0 && row < b.size && col < b.size
}

func (b *Board) set(row, col int, c cell) {
	b.cells[row*b.size+col] = c
}

func (b *Board) at(row, col int) cell {
	return b.cells[row*b.size+col]
}

// Size returns the number of rows (and columns) of the board.
func (b *Board) Size() int {
	return b.size
}

// IsOccupied returns whether a disc is on the cell. Off-board cells are never occupied.
func (b *Board) IsOccupied(row, col int) bool {
	return b.inRange(row, col) && b.at(row, col) != empty
}

// ColorAt returns the side owning the disc on the cell.
func (b *Board) ColorAt(row, col int) (Side, error) {
	if !b.inRange(row, col) {
		return First, fmt.Errorf("%w: (%d, %d)", ErrOutOfRange, row, col)
	}

	switch b.at(row, col) {
	case firstDisc:
		return First, nil
	case secondDisc:
		return Second, nil
	default:
		return First, fmt.Errorf("%w: (%d, %d)", ErrEmptyCell, row, col)
	}
}

// IsLegalMove returns whether side may play on the cell.
func (b *Board) IsLegalMove(row, col int, side Side) bool {
	if !b.inRange(row, col) {
		return false
	}
	return b.legal[side][row*b.size+col]
}

// CountLegalMoves returns the number of legal moves of side.
func (b *Board) CountLegalMoves(side Side) int {
	count := 0
	for _, legal := range b.legal[side] {
		if legal {
			count++
		}
	}
	return count
}

// LegalMoves returns the legal moves of side in row-major order.
func (b *Board) LegalMoves(side Side) []Coord {
	moves := make([]Coord, 0)
	for index, legal := range b.legal[side] {
		if legal {
			moves = append(moves, Coord{Row: index / b.size, Col: index % b.size})
		}
	}
	return moves
}

// Place puts a disc of side on the cell, flips the captured discs and recomputes the legal
// moves of both sides. It does not check legality: callers gate it with IsLegalMove.
// Placing on an occupied cell overwrites it. Off-board coordinates are ignored.
func (b *Board) Place(row, col int, side Side) {
	if !b.inRange(row, col) {
		return
	}

	disc := discOf(side)
	b.set(row, col, disc)

	captures := Captures(b, row, col, side)
	for index, captured := range captures.mask {
		if captured {
			b.cells[index] = disc
		}
	}

	b.recomputeLegalMoves()
}

// recomputeLegalMoves rebuilds both legal move masks from scratch.
func (b *Board) recomputeLegalMoves() {
	for row := range b.size {
		for col := range b.size {
			index := row*b.size + col
			occupied := b.at(row, col) != empty

			for _, side := range []Side{First, Second} {
				b.legal[side][index] = !occupied && CaptureGain(b, row, col, side) > 0
			}
		}
	}
}

// Count returns the number of discs of side.
func (b *Board) Count(side Side) int {
	disc := discOf(side)
	count := 0
	for _, c := range b.cells {
		if c == disc {
			count++
		}
	}
	return count
}

// DiscCount returns the number of discs on the board.
func (b *Board) DiscCount() int {
	return b.Count(First) + b.Count(Second)
}

// Result compares the disc counts of both sides.
func (b *Board) Result() Result {
	first, second := b.Count(First), b.Count(Second)

	switch {
	case first > second:
		return ResultFirstWins
	case second > first:
		return ResultSecondWins
	default:
		return ResultDraw
	}
}

// WinningSide returns the side with the most discs, or false on a tie.
func (b *Board) WinningSide() (Side, bool) {
	return b.Result().Winner()
}

// Clone returns a deep copy of the board.
func (b *Board) Clone() *Board {
	clone := &Board{
		size:  b.size,
		cells: append([]cell(nil), b.cells...),
	}
	for side := range b.legal {
		clone.legal[side] = append([]bool(nil), b.legal[side]...)
	}
	return clone
}

// Equal checks if two boards have the same occupancy.
func (b *Board) Equal(other *Board) bool {
	if b.size != other.size {
		return false
	}
	for i := range b.cells {
		if b.cells[i] != other.cells[i] {
			return false
		}
	}
	return true
}

// Rows returns the board in the format accepted by NewBoardFromRows.
func (b *Board) Rows() []string {
	rows := make([]string, b.size)
	for row := range b.size {
		var sb strings.Builder
		for col := range b.size {
			switch b.at(row, col) {
			case firstDisc:
				sb.WriteByte('x')
			case secondDisc:
				sb.WriteByte('o')
			default:
				sb.WriteByte('.')
			}
		}
		rows[row] = sb.String()
	}
	return rows
}

// String returns the rows of the board separated by slashes.
func (b *Board) String() string {
	return strings.Join(b.Rows(), "/")
}

// ASCIIArtLines returns the ascii art lines for the board, marking legal moves of side.
func (b *Board) ASCIIArtLines(side Side) []string {
	lines := make([]string, 0, b.size+2)

	header := "+--"
	for col := range b.size {
		header += ColumnLabel(col) + "-"
	}
	lines = append(lines, header+"+")

	for row := range b.size {
		line := fmt.Sprintf("%2d ", row+1)

		for col := range b.size {
			switch {
			case b.at(row, col) == secondDisc:
				line += "○ "
			case b.at(row, col) == firstDisc:
				line += "● "
			case b.IsLegalMove(row, col, side):
				line += "· "
			default:
				line += "  "
			}
		}

		lines = append(lines, line+"|")
	}

	lines = append(lines, "+"+strings.Repeat("-", 2*b.size+2)+"+")
	return lines
}

// Print prints the board to the console. This is used for debugging.
func (b *Board) Print(side Side) {
	for _, line := range b.ASCIIArtLines(side) {
		fmt.Println(line)
	}
}

package othello

// Grid is the read-only view of a board that the capture scan needs.
type Grid interface {
	Size() int
	IsOccupied(row, col int) bool
	ColorAt(row, col int) (Side, error)
}

// directions holds the 8 ray directions as row and column steps.
var directions = [8][2]int{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}

// CaptureSet marks every cell that changes color as a result of one placement.
type CaptureSet struct {
	size int
	mask []bool
}

func newCaptureSet(size int) CaptureSet {
	return CaptureSet{
		size: size,
		mask: make([]bool, size*size),
	}
}

// Contains returns whether the cell is captured. Off-board cells never are.
func (cs CaptureSet) Contains(row, col int) bool {
	if row < 0 || col < 0 || row >= cs.size || col >= cs.size {
		return false
	}
	return cs.mask[row*cs.size+col]
}

// Len returns the number of captured cells.
func (cs CaptureSet) Len() int {
	count := 0
	for _, captured := range cs.mask {
		if captured {
			count++
		}
	}
	return count
}

// Cells returns the captured cells in row-major order.
func (cs CaptureSet) Cells() []Coord {
	cells := make([]Coord, 0)
	for index, captured := range cs.mask {
		if captured {
			cells = append(cells, Coord{Row: index / cs.size, Col: index % cs.size})
		}
	}
	return cells
}

// Captures returns the opposing discs that side captures by playing at (row, col).
// The origin cell itself is not inspected: callers check that it is empty.
func Captures(g Grid, row, col int, side Side) CaptureSet {
	size := g.Size()
	captures := newCaptureSet(size)

	if row < 0 || col < 0 || row >= size || col >= size {
		return captures
	}

	for _, dir := range directions {
		dy, dx := dir[0], dir[1]

		// Walk over the opponent's run until we leave it.
		s := 1
		for {
			r, c := row+dy*s, col+dx*s
			if !g.IsOccupied(r, c) {
				// Off-board or empty: no anchor in this direction.
				s = 0
				break
			}

			color, err := g.ColorAt(r, c)
			if err != nil {
				s = 0
				break
			}

			if color == side {
				break
			}
			s++
		}

		// s is the distance to the anchor, 0 if there is none.
		for dist := 1; dist < s; dist++ {
			captures.mask[(row+dy*dist)*size+col+dx*dist] = true
		}
	}

	return captures
}

// CaptureGain returns how many discs side captures by playing at (row, col).
func CaptureGain(g Grid, row, col int, side Side) int {
	return Captures(g, row, col, side).Len()
}

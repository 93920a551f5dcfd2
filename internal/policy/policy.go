// Package policy contains the move pickers used for the computer player.
package policy

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"

	"github.com/lk16/reversi/internal/game"
	"github.com/lk16/reversi/internal/othello"
)

var ErrUnknownPolicy = errors.New("unknown policy")

// Names lists the policies known by ByName.
var Names = []string{"greedy", "random", "corners"}

// ByName creates the policy with the given name. The seed is used by random policies only.
func ByName(name string, seed int64) (game.Policy, error) {
	switch strings.ToLower(name) {
	case "greedy":
		return Greedy{}, nil
	case "random":
		return NewRandom(rand.New(rand.NewSource(seed))), nil //nolint:gosec
	case "corners":
		return Corners{}, nil
	default:
		return nil, fmt.Errorf("%w: %q, expected one of %s", ErrUnknownPolicy, name, strings.Join(Names, ", "))
	}
}

// Greedy picks the move that flips the most discs. Ties go to the first move in row-major
// order.
type Greedy struct{}

// ChooseMove implements game.Policy.
func (Greedy) ChooseMove(board *othello.Board, side othello.Side) othello.Coord {
	return bestBy(board, side, func(move othello.Coord) int {
		return othello.CaptureGain(board, move.Row, move.Col, side)
	})
}

// Random picks a uniformly random legal move.
type Random struct {
	rng *rand.Rand
}

// NewRandom creates a Random policy drawing from rng.
func NewRandom(rng *rand.Rand) *Random {
	return &Random{rng: rng}
}

// ChooseMove implements game.Policy.
func (r *Random) ChooseMove(board *othello.Board, side othello.Side) othello.Coord {
	moves := board.LegalMoves(side)
	if len(moves) == 0 {
		return othello.NoMove
	}
	return moves[r.rng.Intn(len(moves))]
}

// Corners prefers corners, avoids squares next to empty corners, then flips the most discs.
type Corners struct{}

const (
	cornerWeight   = 1000
	edgeWeight     = 100
	xSquarePenalty = -500
)

// ChooseMove implements game.Policy.
func (Corners) ChooseMove(board *othello.Board, side othello.Side) othello.Coord {
	return bestBy(board, side, func(move othello.Coord) int {
		return squareWeight(board, move) + othello.CaptureGain(board, move.Row, move.Col, side)
	})
}

// squareWeight scores a square by its position on the board.
func squareWeight(board *othello.Board, move othello.Coord) int {
	last := board.Size() - 1

	onRowEdge := move.Row == 0 || move.Row == last
	onColEdge := move.Col == 0 || move.Col == last

	if onRowEdge && onColEdge {
		return cornerWeight
	}

	// Squares diagonally next to an empty corner give that corner away.
	for _, corner := range []othello.Coord{{Row: 0, Col: 0}, {Row: 0, Col: last}, {Row: last, Col: 0}, {Row: last, Col: last}} {
		dr, dc := move.Row-corner.Row, move.Col-corner.Col
		if (dr == 1 || dr == -1) && (dc == 1 || dc == -1) && !board.IsOccupied(corner.Row, corner.Col) {
			return xSquarePenalty
		}
	}

	if onRowEdge || onColEdge {
		return edgeWeight
	}

	return 0
}

// bestBy returns the legal move with the highest score, the first one on ties.
func bestBy(board *othello.Board, side othello.Side, score func(othello.Coord) int) othello.Coord {
	best := othello.NoMove
	bestScore := 0

	for _, move := range board.LegalMoves(side) {
		s := score(move)
		if best == othello.NoMove || s > bestScore {
			best = move
			bestScore = s
		}
	}

	return best
}

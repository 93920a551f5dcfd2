package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/lk16/reversi/internal/othello"
)

func main() {
	boardString := flag.String("board", "", "the board to show, rows separated by slashes, e.g. \"ox/xo\"")
	size := flag.Int("size", othello.DefaultBoardSize, "size of the start board when -board is not set")
	moves := flag.String("moves", "", "comma separated moves to play, e.g. \"c2,b2\", black moves first")
	flag.Parse()

	board, err := loadBoard(*boardString, *size)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	turn, err := playMoves(board, *moves)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	board.Print(turn)
	fmt.Printf("%s to move, black %d, white %d\n", turn, board.Count(othello.First), board.Count(othello.Second))
}

func loadBoard(boardString string, size int) (*othello.Board, error) {
	if boardString == "" {
		return othello.NewBoardStart(size)
	}
	return othello.NewBoardFromRows(strings.Split(boardString, "/"))
}

// playMoves plays moves in turn, letting a side without legal moves pass. It returns the side to move.
func playMoves(board *othello.Board, moves string) (othello.Side, error) {
	turn := othello.First

	if moves == "" {
		return turn, nil
	}

	for _, field := range strings.Split(moves, ",") {
		if board.CountLegalMoves(turn) == 0 {
			turn = turn.Opponent()
		}

		move, err := othello.ParseCoord(field)
		if err != nil {
			return turn, err
		}

		if !board.IsLegalMove(move.Row, move.Col, turn) {
			return turn, fmt.Errorf("illegal move %s for %s", move, turn)
		}

		board.Place(move.Row, move.Col, turn)
		turn = turn.Opponent()
	}

	return turn, nil
}

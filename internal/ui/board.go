// Package ui contains the tview widgets of the terminal client.
package ui

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/lk16/reversi/internal/game"
	"github.com/lk16/reversi/internal/othello"
)

const (
	// Columns left of the board, used by the row numbers.
	rowLabelWidth = 3

	// Every cell is 2 characters wide for a square appearance.
	cellWidth = 2
)

var (
	boardStyle      = tcell.StyleDefault.Background(tcell.ColorDarkGreen)
	boardStyleAlt   = tcell.StyleDefault.Background(tcell.ColorGreen)
	cursorStyle     = tcell.StyleDefault.Background(tcell.ColorOlive)
	lastMoveStyle   = tcell.StyleDefault.Background(tcell.ColorTeal)
	labelStyle      = tcell.StyleDefault
	labelStyleFocus = tcell.StyleDefault.Background(tcell.ColorOlive)
)

// BoardView shows a game and lets the human play it with the keyboard or mouse.
// All methods must be called from the tview event loop.
type BoardView struct {
	Box *tview.Box

	app        *tview.Application
	status     *tview.TextView
	controller *game.Controller
	delay      time.Duration

	// after runs f once d has passed. It is replaced in tests.
	after func(d time.Duration, f func())

	selRow int
	selCol int

	// generation is bumped on restart so computer moves scheduled for an old game are dropped.
	generation int
	pending    bool
	err        error
}

// NewBoardView creates a board for controller. The computer plays delay after the human.
func NewBoardView(app *tview.Application, status *tview.TextView, controller *game.Controller, delay time.Duration) *BoardView {
	b := &BoardView{
		Box:        tview.NewBox(),
		app:        app,
		status:     status,
		controller: controller,
		delay:      delay,
		selRow:     -1,
		selCol:     -1,
	}

	b.after = func(d time.Duration, f func()) {
		time.AfterFunc(d, func() {
			b.app.QueueUpdateDraw(f)
		})
	}

	b.Box.SetDrawFunc(func(screen tcell.Screen, x, y, width, height int) (int, int, int, int) {
		b.draw(screen, x, y)
		size := b.controller.Board().Size()
		return x, y, rowLabelWidth + size*cellWidth, size + 1
	})

	b.Box.SetMouseCapture(func(action tview.MouseAction, event *tcell.EventMouse) (tview.MouseAction, *tcell.EventMouse) {
		if action != tview.MouseLeftClick {
			return action, event
		}

		x, y, _, _ := b.Box.GetInnerRect()
		mouseX, mouseY := event.Position()

		row, col, ok := b.cellAt(mouseX-x, mouseY-y)
		if !ok {
			return action, event
		}

		b.selRow, b.selCol = row, col
		b.Place()
		return action, nil
	})

	return b
}

// Start schedules the computer's first move if it opens.
func (b *BoardView) Start() {
	b.refreshStatus()
	b.scheduleComputerMove()
}

// Controller returns the game being played.
func (b *BoardView) Controller() *game.Controller {
	return b.controller
}

// Selected returns the cursor position, or othello.NoMove if there is no cursor.
func (b *BoardView) Selected() othello.Coord {
	return othello.Coord{Row: b.selRow, Col: b.selCol}
}

// MoveSelection moves the cursor. The first move places it in the middle of the board.
func (b *BoardView) MoveSelection(rows, cols int) {
	size := b.controller.Board().Size()

	if b.selRow == -1 && b.selCol == -1 {
		b.selRow, b.selCol = size/2, size/2
		return
	}

	b.selRow = max(0, min(size-1, b.selRow+rows))
	b.selCol = max(0, min(size-1, b.selCol+cols))
}

// ResetSelection removes the cursor.
func (b *BoardView) ResetSelection() {
	b.selRow, b.selCol = -1, -1
}

// Place plays the human's move at the cursor. It returns whether the move was played.
func (b *BoardView) Place() bool {
	if b.selRow == -1 && b.selCol == -1 {
		return false
	}

	if !b.controller.HumanMove(b.selRow, b.selCol) {
		return false
	}

	b.refreshStatus()
	b.scheduleComputerMove()
	return true
}

// Restart starts a new game with the same settings.
func (b *BoardView) Restart() error {
	restarted, err := b.controller.Restart()
	if err != nil {
		return err
	}

	b.controller = restarted
	b.generation++
	b.pending = false
	b.err = nil
	b.ResetSelection()

	b.Start()
	return nil
}

// HandleKey handles key presses for the board. It calls quit on q or escape.
func (b *BoardView) HandleKey(event *tcell.EventKey, quit func()) *tcell.EventKey {
	switch event.Key() {
	case tcell.KeyUp:
		b.MoveSelection(-1, 0)
	case tcell.KeyDown:
		b.MoveSelection(1, 0)
	case tcell.KeyLeft:
		b.MoveSelection(0, -1)
	case tcell.KeyRight:
		b.MoveSelection(0, 1)
	case tcell.KeyEnter:
		b.Place()
	case tcell.KeyEsc:
		quit()
	case tcell.KeyRune:
		switch event.Rune() {
		case 'k':
			b.MoveSelection(-1, 0)
		case 'j':
			b.MoveSelection(1, 0)
		case 'h':
			b.MoveSelection(0, -1)
		case 'l':
			b.MoveSelection(0, 1)
		case ' ':
			b.Place()
		case 'r':
			if err := b.Restart(); err != nil {
				slog.Error("Failed to restart game", "error", err)
			}
		case 'q':
			quit()
		default:
			return event
		}
	default:
		return event
	}

	return nil
}

func (b *BoardView) scheduleComputerMove() {
	if b.pending || b.controller.State() != game.AwaitingComputerMove {
		return
	}

	b.pending = true
	generation := b.generation

	b.after(b.delay, func() {
		if generation != b.generation {
			return
		}
		b.pending = false
		b.playComputerMove()
	})
}

func (b *BoardView) playComputerMove() {
	if err := b.controller.ComputerMove(); err != nil {
		slog.Error("Computer move failed", "error", err)
		b.err = err
		b.refreshStatus()
		return
	}

	b.refreshStatus()

	// The human may have to pass.
	b.scheduleComputerMove()
}

// cellAt converts a position relative to the board's top left corner to a cell.
func (b *BoardView) cellAt(x, y int) (row, col int, ok bool) {
	size := b.controller.Board().Size()

	if x < rowLabelWidth || y < 1 {
		return 0, 0, false
	}

	row = y - 1
	col = (x - rowLabelWidth) / cellWidth

	if row >= size || col >= size {
		return 0, 0, false
	}

	return row, col, true
}

func (b *BoardView) draw(screen tcell.Screen, x, y int) {
	board := b.controller.Board()
	size := board.Size()
	lastMove := b.controller.LastMove()

	var hints []othello.Coord
	if b.controller.State() == game.AwaitingHumanMove {
		hints = board.LegalMoves(b.controller.HumanSide())
	}

	isHint := make(map[othello.Coord]bool, len(hints))
	for _, hint := range hints {
		isHint[hint] = true
	}

	// Column labels
	for col := range size {
		style := labelStyle
		if col == b.selCol {
			style = labelStyleFocus
		}
		label := []rune(othello.ColumnLabel(col))[0]
		screen.SetContent(x+rowLabelWidth+col*cellWidth, y, label, nil, style)
		screen.SetContent(x+rowLabelWidth+col*cellWidth+1, y, ' ', nil, style)
	}

	for row := range size {
		style := labelStyle
		if row == b.selRow {
			style = labelStyleFocus
		}
		for i, r := range fmt.Sprintf("%2d ", row+1) {
			screen.SetContent(x+i, y+1+row, r, nil, style)
		}

		for col := range size {
			coord := othello.Coord{Row: row, Col: col}

			style := boardStyle
			if (row+col)%2 == 1 {
				style = boardStyleAlt
			}

			switch coord {
			case b.Selected():
				style = cursorStyle
			case lastMove:
				style = lastMoveStyle
			}

			r := ' '
			if side, err := board.ColorAt(row, col); err == nil {
				r = discRune(side)
				style = style.Foreground(discColor(side))
			} else if isHint[coord] {
				r = '·'
				style = style.Foreground(discColor(b.controller.HumanSide()))
			}

			screen.SetContent(x+rowLabelWidth+col*cellWidth, y+1+row, r, nil, style)
			screen.SetContent(x+rowLabelWidth+col*cellWidth+1, y+1+row, ' ', nil, style)
		}
	}
}

func (b *BoardView) refreshStatus() {
	if b.status != nil {
		b.status.SetText(b.statusText())
	}
}

func (b *BoardView) statusText() string {
	board := b.controller.Board()
	human := b.controller.HumanSide()
	computer := b.controller.ComputerSide()

	var sb strings.Builder

	fmt.Fprintf(&sb, "  You play %s %c\n", human, discRune(human))
	fmt.Fprintf(&sb, "  %c %d   %c %d\n\n",
		discRune(othello.First), board.Count(othello.First),
		discRune(othello.Second), board.Count(othello.Second))

	switch {
	case b.err != nil:
		fmt.Fprintf(&sb, "  Computer is stuck: %s\n", b.err)
	case b.controller.State() == game.GameOver:
		result, _ := b.controller.Result()
		sb.WriteString("  " + resultText(result, human) + "\n")
	case b.controller.State() == game.AwaitingHumanMove:
		fmt.Fprintf(&sb, "  %c Your move\n", discRune(human))
	default:
		fmt.Fprintf(&sb, "  %c Thinking...\n", discRune(computer))
	}

	sb.WriteString(`
  hjkl/↑↓←→ move   ⏎/space play
  r restart   q quit`)

	return sb.String()
}

func resultText(result othello.Result, human othello.Side) string {
	winner, ok := result.Winner()
	switch {
	case !ok:
		return "Draw"
	case winner == human:
		return "Player win!"
	default:
		return "Computer win!"
	}
}

func discRune(side othello.Side) rune {
	if side == othello.First {
		return '●'
	}
	return '○'
}

func discColor(side othello.Side) tcell.Color {
	if side == othello.First {
		return tcell.ColorBlack
	}
	return tcell.ColorWhite
}

package ui

import (
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/stretchr/testify/require"

	"github.com/lk16/reversi/internal/game"
	"github.com/lk16/reversi/internal/othello"
	"github.com/lk16/reversi/internal/policy"
)

type scheduled struct {
	delay time.Duration
	f     func()
}

func newTestBoard(t *testing.T, options game.Options) (*BoardView, *[]scheduled) {
	t.Helper()

	controller, err := game.NewController(options, policy.Greedy{})
	require.NoError(t, err)

	b := NewBoardView(nil, tview.NewTextView(), controller, 500*time.Millisecond)

	queue := &[]scheduled{}
	b.after = func(d time.Duration, f func()) {
		*queue = append(*queue, scheduled{delay: d, f: f})
	}

	b.Start()
	return b, queue
}

func runScheduled(queue *[]scheduled) {
	for len(*queue) > 0 {
		next := (*queue)[0]
		*queue = (*queue)[1:]
		next.f()
	}
}

func TestBoardView_MoveSelection(t *testing.T) {
	b, _ := newTestBoard(t, game.DefaultOptions())
	require.Equal(t, othello.NoMove, b.Selected())

	b.MoveSelection(0, 1)
	require.Equal(t, othello.Coord{Row: 3, Col: 3}, b.Selected())

	for range 10 {
		b.MoveSelection(-1, 1)
	}
	require.Equal(t, othello.Coord{Row: 0, Col: 5}, b.Selected())

	b.ResetSelection()
	require.Equal(t, othello.NoMove, b.Selected())
}

func TestBoardView_PlaceAndComputerReply(t *testing.T) {
	b, queue := newTestBoard(t, game.DefaultOptions())
	require.Empty(t, *queue)

	// No cursor, nothing to place.
	require.False(t, b.Place())

	b.selRow, b.selCol = 0, 0
	require.False(t, b.Place())

	b.selRow, b.selCol = 1, 2
	require.True(t, b.Place())
	require.Equal(t, game.AwaitingComputerMove, b.Controller().State())
	require.Len(t, *queue, 1)
	require.Equal(t, 500*time.Millisecond, (*queue)[0].delay)
	require.Contains(t, b.status.GetText(false), "Thinking")

	runScheduled(queue)
	require.Equal(t, game.AwaitingHumanMove, b.Controller().State())
	require.Equal(t, 6, b.Controller().Board().DiscCount())
	require.Contains(t, b.status.GetText(false), "Your move")
}

func TestBoardView_ComputerOpens(t *testing.T) {
	options := game.DefaultOptions()
	options.HumanSide = othello.Second

	b, queue := newTestBoard(t, options)
	require.Len(t, *queue, 1)

	runScheduled(queue)
	require.Equal(t, game.AwaitingHumanMove, b.Controller().State())
	require.Equal(t, othello.Coord{Row: 1, Col: 2}, b.Controller().LastMove())
}

func TestBoardView_RestartDropsPendingMove(t *testing.T) {
	b, queue := newTestBoard(t, game.DefaultOptions())

	b.selRow, b.selCol = 1, 2
	require.True(t, b.Place())
	require.Len(t, *queue, 1)

	require.NoError(t, b.Restart())
	require.Equal(t, othello.NoMove, b.Selected())

	runScheduled(queue)
	require.Equal(t, game.AwaitingHumanMove, b.Controller().State())
	require.Equal(t, 4, b.Controller().Board().DiscCount())
}

func TestBoardView_HandleKey(t *testing.T) {
	b, queue := newTestBoard(t, game.DefaultOptions())

	quit := false
	press := func(key tcell.Key, r rune) *tcell.EventKey {
		return b.HandleKey(tcell.NewEventKey(key, r, tcell.ModNone), func() { quit = true })
	}

	require.Nil(t, press(tcell.KeyRight, 0))
	require.Equal(t, othello.Coord{Row: 3, Col: 3}, b.Selected())

	require.Nil(t, press(tcell.KeyRune, 'h'))
	require.Nil(t, press(tcell.KeyRune, 'k'))
	require.Nil(t, press(tcell.KeyRune, 'k'))
	require.Equal(t, othello.Coord{Row: 1, Col: 2}, b.Selected())

	require.Nil(t, press(tcell.KeyEnter, 0))
	require.Equal(t, 5, b.Controller().Board().DiscCount())
	runScheduled(queue)

	require.Nil(t, press(tcell.KeyRune, 'r'))
	require.Equal(t, 4, b.Controller().Board().DiscCount())

	require.NotNil(t, press(tcell.KeyRune, 'x'))
	require.False(t, quit)

	require.Nil(t, press(tcell.KeyRune, 'q'))
	require.True(t, quit)
}

func TestBoardView_Draw(t *testing.T) {
	b, _ := newTestBoard(t, game.DefaultOptions())
	b.selRow, b.selCol = 0, 0

	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	defer screen.Fini()
	screen.SetSize(40, 20)

	b.draw(screen, 0, 0)

	content := func(x, y int) rune {
		r, _, _, _ := screen.GetContent(x, y)
		return r
	}

	// Column labels
	require.Equal(t, 'a', content(rowLabelWidth, 0))
	require.Equal(t, 'f', content(rowLabelWidth+5*cellWidth, 0))

	// Row labels
	require.Equal(t, '1', content(1, 1))

	// Opening discs: (2,2) is Second, (2,3) is First
	require.Equal(t, '○', content(rowLabelWidth+2*cellWidth, 3))
	require.Equal(t, '●', content(rowLabelWidth+3*cellWidth, 3))

	// Legal move hint for the human at (1,2)
	require.Equal(t, '·', content(rowLabelWidth+2*cellWidth, 2))

	_, _, style, _ := screen.GetContent(rowLabelWidth, 1)
	require.Equal(t, cursorStyle, style)

	row, col, ok := b.cellAt(rowLabelWidth+2*cellWidth+1, 2)
	require.True(t, ok)
	require.Equal(t, 1, row)
	require.Equal(t, 2, col)

	_, _, ok = b.cellAt(1, 2)
	require.False(t, ok)
}

func TestBoardView_StatusText(t *testing.T) {
	options := game.DefaultOptions()
	options.Size = 2

	b, _ := newTestBoard(t, options)
	text := b.statusText()
	require.True(t, strings.Contains(text, "Draw"), text)

	require.Equal(t, "Player win!", resultText(othello.ResultSecondWins, othello.Second))
	require.Equal(t, "Computer win!", resultText(othello.ResultFirstWins, othello.Second))
}

func TestBoardView_MouseClick(t *testing.T) {
	b, queue := newTestBoard(t, game.DefaultOptions())

	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	defer screen.Fini()
	screen.SetSize(40, 20)

	b.Box.SetRect(0, 0, 40, 20)
	b.Box.Draw(screen)

	click := func(x, y int) {
		event := tcell.NewEventMouse(x, y, tcell.Button1, tcell.ModNone)
		b.Box.MouseHandler()(tview.MouseLeftClick, event, func(tview.Primitive) {})
	}

	// Row labels are not cells.
	click(1, 2)
	require.Equal(t, othello.NoMove, b.Selected())
	require.Equal(t, 4, b.Controller().Board().DiscCount())

	// Illegal cell: the cursor moves, nothing is played.
	click(rowLabelWidth, 1)
	require.Equal(t, othello.Coord{Row: 0, Col: 0}, b.Selected())
	require.Equal(t, 4, b.Controller().Board().DiscCount())

	// Second character of the cell at (1, 2)
	click(rowLabelWidth+2*cellWidth+1, 2)
	require.Equal(t, othello.Coord{Row: 1, Col: 2}, b.Selected())
	require.Equal(t, othello.Coord{Row: 1, Col: 2}, b.Controller().LastMove())
	require.Equal(t, 5, b.Controller().Board().DiscCount())
	require.Len(t, *queue, 1)
}

// tui is a terminal client to play reversi against the computer.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/lk16/reversi/internal/config"
	"github.com/lk16/reversi/internal/game"
	"github.com/lk16/reversi/internal/othello"
	"github.com/lk16/reversi/internal/policy"
	"github.com/lk16/reversi/internal/ui"
)

var (
	flagSize   = flag.Int("size", 0, "Board size, even and between 2 and 32")
	flagColor  = flag.String("color", "", "Player color (black or white)")
	flagRule   = flag.String("rule", "", "End the game when either or both sides cannot move")
	flagPolicy = flag.String("policy", "", "Computer policy ("+strings.Join(policy.Names, ", ")+")")
)

func main() {
	flag.Parse()

	config.LoadDotEnv()

	logFile, err := config.OpenLogFile()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logFile.Close()

	config.SetLogOutput(logFile)

	cfg := config.LoadGameConfig()
	if err = applyFlags(cfg); err != nil {
		fmt.Fprintln(os.Stderr, err)
		flag.Usage()
		os.Exit(2) //nolint:gocritic
	}

	if err = run(cfg); err != nil {
		slog.Error("Terminal client failed", "error", err)
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// applyFlags overrides the environment settings with the command line flags.
func applyFlags(cfg *config.GameConfig) error {
	if *flagSize != 0 {
		cfg.BoardSize = *flagSize
	}

	if *flagColor != "" {
		side, err := othello.ParseSide(*flagColor)
		if err != nil {
			return err
		}
		cfg.HumanSide = side
	}

	if *flagRule != "" {
		rule, err := game.ParseEndRule(*flagRule)
		if err != nil {
			return err
		}
		cfg.EndRule = rule
	}

	if *flagPolicy != "" {
		cfg.Policy = *flagPolicy
	}

	return cfg.Validate()
}

func run(cfg *config.GameConfig) error {
	computer, err := cfg.NewPolicy()
	if err != nil {
		return err
	}

	controller, err := game.NewController(cfg.Options(), computer)
	if err != nil {
		return fmt.Errorf("failed to start game: %w", err)
	}

	app := tview.NewApplication()

	status := tview.NewTextView()
	status.SetBorder(true)
	status.SetBorderPadding(0, 0, 1, 1)
	status.SetTitle(" Status ")
	status.SetTitleAlign(tview.AlignLeft)

	board := ui.NewBoardView(app, status, controller, cfg.ComputerDelay)

	board.Box.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		return board.HandleKey(event, app.Stop)
	})

	size := cfg.BoardSize
	layout := tview.NewFlex().
		AddItem(board.Box, 2*size+4, 0, true).
		AddItem(status, 0, 1, false)

	slog.Info("Starting game", "size", size, "human_side", cfg.HumanSide, "end_rule", cfg.EndRule, "policy", cfg.Policy)
	board.Start()

	return app.SetRoot(layout, true).EnableMouse(true).Run()
}

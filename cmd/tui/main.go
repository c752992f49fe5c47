package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/saeidalz13/battleship-solo/controller"
	"github.com/saeidalz13/battleship-solo/internal/config"
	"github.com/saeidalz13/battleship-solo/internal/logger"
	"github.com/saeidalz13/battleship-solo/internal/tui"
	mb "github.com/saeidalz13/battleship-solo/models/battleship"
)

func main() {
	cfg := config.MustLoad()

	name := flag.String("name", mb.DefaultHumanName, "Your name on the board")
	boardSize := flag.Int("board-size", cfg.BoardSize, "Board width and height")
	animation := flag.Duration("animation", tui.DefaultAnimationDelay, "How long each shot is shown")
	logFile := flag.String("log-file", "battleship.log", "Where to write logs since the terminal is taken")
	flag.Parse()

	f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintln(os.Stderr, "could not open log file:", err)
		os.Exit(1)
	}
	defer f.Close()
	l := logger.New(cfg.Stage, cfg.LogLevel, f)

	game, err := mb.NewGame(
		mb.WithGridSize(*boardSize),
		mb.WithPlayerNames(*name, ""),
	)
	if err != nil {
		l.Error("could not create game", "err", err)
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	view := tui.NewView()
	gc := controller.New(game, view,
		controller.WithLogger(l),
		controller.WithVerbose(cfg.Verbose || l.GetLevel() <= log.DebugLevel),
		controller.WithStartDelay(cfg.StartDelay),
		controller.WithThinkDelay(cfg.ThinkDelay),
	)

	start := time.Now()
	p := tea.NewProgram(tui.NewModel(gc, view, tui.WithAnimationDelay(*animation)), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		l.Error("tui stopped", "err", err)
		os.Exit(1)
	}
	l.Info("session over", "game", game.Uuid(), "duration", time.Since(start).Round(time.Second))
}

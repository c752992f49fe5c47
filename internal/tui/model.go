package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/saeidalz13/battleship-solo/controller"
	mb "github.com/saeidalz13/battleship-solo/models/battleship"
)

const (
	DefaultAnimationDelay = time.Millisecond * 300
	maxLogLines           = 8
)

type Model struct {
	gc     *controller.GameController
	game   *mb.Game
	events chan tea.Msg

	animationDelay time.Duration
	cursor         mb.Coordinates
	status         string
	recent         []string
	over           bool
}

type ModelOption func(*Model)

// WithAnimationDelay sets how long a shot or turn change is shown before the
// controller is told the presentation is done.
func WithAnimationDelay(d time.Duration) ModelOption {
	return func(m *Model) {
		m.animationDelay = d
	}
}

// NewModel expects gc to publish into view.
func NewModel(gc *controller.GameController, view *View, optFuncs ...ModelOption) Model {
	m := Model{
		gc:             gc,
		game:           gc.Game(),
		events:         view.events,
		animationDelay: DefaultAnimationDelay,
		status:         "Get ready...",
	}
	for _, opt := range optFuncs {
		opt(&m)
	}
	return m
}

func (m Model) Cursor() mb.Coordinates {
	return m.cursor
}

func (m Model) Status() string {
	return m.status
}

func (m Model) Recent() []string {
	return m.recent
}

func (m Model) IsOver() bool {
	return m.over
}

func (m Model) Init() tea.Cmd {
	gc := m.gc
	return tea.Batch(waitForEvent(m.events), func() tea.Msg {
		gc.Start()
		return nil
	})
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.onKey(msg)

	case shotMsg:
		m.pushRecent(describeShot(controller.ShotEvent(msg)))
		target := msg.Target
		return m, tea.Batch(waitForEvent(m.events), m.after(func() tea.Msg {
			return presentedMsg{target: target}
		}))

	case presentedMsg:
		gc := m.gc
		return m, func() tea.Msg {
			gc.PresentationCompleted(msg.target)
			return nil
		}

	case turnMsg:
		if !msg.IsActive {
			return m, waitForEvent(m.events)
		}
		if msg.Player.IsHuman() {
			m.status = "Your turn. Pick a target and press enter."
		} else {
			m.status = fmt.Sprintf("%s is aiming...", msg.Player.Name())
		}
		player := msg.Player
		return m, tea.Batch(waitForEvent(m.events), m.after(func() tea.Msg {
			return readyMsg{player: player}
		}))

	case readyMsg:
		gc := m.gc
		return m, func() tea.Msg {
			gc.BoardReady(msg.player)
			return nil
		}

	case gameOverMsg:
		m.over = true
		switch {
		case msg.Err != nil:
			m.status = "Game aborted: " + msg.Err.Error()
		case msg.Winner != nil:
			m.status = fmt.Sprintf("%s wins! Press q to quit.", msg.Winner.Name())
		}
		return m, nil
	}

	return m, nil
}

func (m Model) onKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	size := m.game.GridSize()

	switch msg.String() {
	case "q", "ctrl+c":
		m.gc.Stop()
		return m, tea.Quit
	case "up", "k":
		if m.cursor.Y > 0 {
			m.cursor.Y--
		}
	case "down", "j":
		if m.cursor.Y < size-1 {
			m.cursor.Y++
		}
	case "left", "h":
		if m.cursor.X > 0 {
			m.cursor.X--
		}
	case "right", "l":
		if m.cursor.X < size-1 {
			m.cursor.X++
		}
	case "enter", " ":
		if m.over {
			return m, nil
		}
		gc, target := m.gc, m.cursor
		return m, func() tea.Msg {
			gc.ShootRequested(target)
			return nil
		}
	}
	return m, nil
}

func (m Model) after(fn func() tea.Msg) tea.Cmd {
	if m.animationDelay <= 0 {
		return fn
	}
	return tea.Tick(m.animationDelay, func(time.Time) tea.Msg {
		return fn()
	})
}

func (m *Model) pushRecent(line string) {
	m.recent = append([]string{line}, m.recent...)
	if len(m.recent) > maxLogLines {
		m.recent = m.recent[:maxLogLines]
	}
}

func describeShot(ev controller.ShotEvent) string {
	code := ev.Result.Coordinates.Code()
	switch {
	case ev.Result.Sunk:
		return fmt.Sprintf("%s sunk %s's %s at %s", ev.Shooter.Name(), ev.Target.Name(), ev.Result.Ship.Name(), code)
	case ev.Result.Hit:
		return fmt.Sprintf("%s hit at %s", ev.Shooter.Name(), code)
	default:
		return fmt.Sprintf("%s missed at %s", ev.Shooter.Name(), code)
	}
}

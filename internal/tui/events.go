package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/saeidalz13/battleship-solo/controller"
	mb "github.com/saeidalz13/battleship-solo/models/battleship"
)

const eventBufferSize = 64

type shotMsg controller.ShotEvent
type turnMsg controller.TurnEvent
type gameOverMsg controller.GameOverEvent

// presentedMsg and readyMsg fire once the matching animation delay elapsed.
type presentedMsg struct{ target *mb.Player }
type readyMsg struct{ player *mb.Player }

// View turns controller events into tea messages. The program picks them up
// through waitForEvent.
type View struct {
	events chan tea.Msg
}

var _ controller.Interface = (*View)(nil)

func NewView() *View {
	return &View{events: make(chan tea.Msg, eventBufferSize)}
}

func (v *View) ShotResolved(ev controller.ShotEvent) {
	v.events <- shotMsg(ev)
}

func (v *View) TurnChanged(ev controller.TurnEvent) {
	v.events <- turnMsg(ev)
}

func (v *View) GameEnded(ev controller.GameOverEvent) {
	v.events <- gameOverMsg(ev)
}

func waitForEvent(events chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		return <-events
	}
}

package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	mb "github.com/saeidalz13/battleship-solo/models/battleship"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	activeStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	shipStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	hitStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
	missStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("33"))
	cursorStyle = lipgloss.NewStyle().Reverse(true)
	boardStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	statusStyle = lipgloss.NewStyle().Italic(true).MarginTop(1)
)

const (
	glyphWater = "·"
	glyphShip  = "■"
	glyphHit   = "✕"
	glyphMiss  = "o"
)

func (m Model) View() string {
	human, computer := m.game.HumanPlayer, m.game.ComputerPlayer

	boards := lipgloss.JoinHorizontal(lipgloss.Top,
		renderSide(human, false, nil),
		"  ",
		renderSide(computer, true, &m.cursor),
	)

	var b strings.Builder
	b.WriteString(titleStyle.Render("BATTLESHIP"))
	b.WriteString("\n")
	b.WriteString(boards)
	b.WriteString("\n")
	b.WriteString(statusStyle.Render(m.status))
	b.WriteString("\n\n")
	for _, line := range m.recent {
		b.WriteString(labelStyle.Render(line))
		b.WriteString("\n")
	}
	b.WriteString(labelStyle.Render("\narrows/hjkl move · enter shoot · q quit"))
	return b.String()
}

// renderSide draws one player's board. Enemy boards hide intact ship parts.
func renderSide(p *mb.Player, enemy bool, cursor *mb.Coordinates) string {
	header := p.Name()
	if p.IsActive() {
		header = activeStyle.Render("▶ " + header)
	}

	var b strings.Builder
	b.WriteString(header)
	b.WriteString("\n")
	b.WriteString(renderBoard(p.Board(), enemy, cursor))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("Damages: %d  Sunk: %d/%d", p.Damages(), p.SunkShips(), len(p.Fleet())))
	return boardStyle.Render(b.String())
}

func renderBoard(board *mb.Board, enemy bool, cursor *mb.Coordinates) string {
	size := board.Size()

	var b strings.Builder
	b.WriteString("   ")
	for x := 0; x < size; x++ {
		b.WriteString(labelStyle.Render(string(rune('A' + x))))
		b.WriteString(" ")
	}
	b.WriteString("\n")

	for y := 0; y < size; y++ {
		b.WriteString(labelStyle.Render(fmt.Sprintf("%2d ", y+1)))
		for x := 0; x < size; x++ {
			c := mb.NewCoordinates(x, y)
			cell := renderCell(board, c, enemy)
			if cursor != nil && *cursor == c {
				cell = cursorStyle.Render(cell)
			}
			b.WriteString(cell)
			b.WriteString(" ")
		}
		if y < size-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func renderCell(board *mb.Board, c mb.Coordinates, enemy bool) string {
	switch board.At(c).Kind {
	case mb.CellMissed:
		return missStyle.Render(glyphMiss)
	case mb.CellOccupied:
		if board.IsCellResolved(c) {
			return hitStyle.Render(glyphHit)
		}
		if enemy {
			return glyphWater
		}
		return shipStyle.Render(glyphShip)
	default:
		return glyphWater
	}
}

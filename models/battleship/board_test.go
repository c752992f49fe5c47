package battleship_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mb "github.com/saeidalz13/battleship-solo/models/battleship"
)

func TestCanPlaceShip(t *testing.T) {
	tests := []struct {
		name     string
		size     int
		start    mb.Coordinates
		dir      mb.Direction
		expected bool
	}{
		{name: "runs off the right edge", size: 3, start: mb.NewCoordinates(8, 0), dir: mb.DirectionX, expected: false},
		{name: "touches the right edge", size: 3, start: mb.NewCoordinates(7, 0), dir: mb.DirectionX, expected: true},
		{name: "runs off the bottom edge", size: 5, start: mb.NewCoordinates(0, 6), dir: mb.DirectionY, expected: false},
		{name: "touches the bottom edge", size: 5, start: mb.NewCoordinates(0, 5), dir: mb.DirectionY, expected: true},
		{name: "start outside the board", size: 2, start: mb.NewCoordinates(-1, 0), dir: mb.DirectionX, expected: false},
		{name: "single cell in the corner", size: 1, start: mb.NewCoordinates(9, 9), dir: mb.DirectionY, expected: true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			board := mb.NewBoard(10)
			ship := mb.NewShip("test", test.size)
			assert.Equal(t, test.expected, board.CanPlaceShip(ship, test.start, test.dir))

			// checking never mutates the board
			assert.Empty(t, board.Ships())
			assert.False(t, board.HasShipPartAt(test.start))
		})
	}
}

func TestDeployShipRejectsOverlap(t *testing.T) {
	board := mb.NewBoard(10)
	battleship := mb.NewShip("Battleship", 4)
	require.True(t, board.DeployShip(battleship, mb.NewCoordinates(2, 2), mb.DirectionX))

	crossing := mb.NewShip("Destroyer", 3)
	assert.False(t, board.CanPlaceShip(crossing, mb.NewCoordinates(3, 0), mb.DirectionY))
	assert.False(t, board.DeployShip(crossing, mb.NewCoordinates(3, 0), mb.DirectionY))

	// neighbors are fine
	assert.True(t, board.DeployShip(crossing, mb.NewCoordinates(2, 3), mb.DirectionX))
	assert.Len(t, board.Ships(), 2)
}

func TestDeployShipOnlyOnce(t *testing.T) {
	board := mb.NewBoard(10)
	ship := mb.NewShip("Patrol Boat", 2)
	require.True(t, board.DeployShip(ship, mb.NewCoordinates(0, 0), mb.DirectionX))
	assert.False(t, board.DeployShip(ship, mb.NewCoordinates(5, 5), mb.DirectionX))
	assert.False(t, board.HasShipPartAt(mb.NewCoordinates(5, 5)))
}

func TestShipPartCoordinates(t *testing.T) {
	board := mb.NewBoard(10)
	vertical := mb.NewShip("Submarine", 3)
	require.True(t, board.DeployShip(vertical, mb.NewCoordinates(4, 1), mb.DirectionY))

	assert.Equal(t, []mb.Coordinates{
		mb.NewCoordinates(4, 1),
		mb.NewCoordinates(4, 2),
		mb.NewCoordinates(4, 3),
	}, board.ShipPartCoordinates(vertical))

	assert.Nil(t, board.ShipPartCoordinates(mb.NewShip("not deployed", 2)))
}

func TestTakeHitSinksShip(t *testing.T) {
	board := mb.NewBoard(10)
	ship := mb.NewShip("Patrol Boat", 2)
	require.True(t, board.DeployShip(ship, mb.NewCoordinates(0, 0), mb.DirectionX))

	result, ok := board.TakeHit(mb.NewCoordinates(0, 0))
	require.True(t, ok)
	assert.True(t, result.Hit)
	assert.False(t, result.Sunk)
	assert.Same(t, ship, result.Ship)

	result, ok = board.TakeHit(mb.NewCoordinates(1, 0))
	require.True(t, ok)
	assert.True(t, result.Hit)
	assert.True(t, result.Sunk)

	// repeat shot is a no-op
	_, ok = board.TakeHit(mb.NewCoordinates(0, 0))
	assert.False(t, ok)
	assert.Equal(t, 2, ship.NumHits())
}

func TestTakeHitMiss(t *testing.T) {
	board := mb.NewBoard(10)
	c := mb.NewCoordinates(5, 5)

	result, ok := board.TakeHit(c)
	require.True(t, ok)
	assert.False(t, result.Hit)
	assert.False(t, result.Sunk)
	assert.Nil(t, result.Ship)
	assert.Equal(t, c, result.Coordinates)
	assert.Equal(t, mb.CellMissed, board.At(c).Kind)
	assert.True(t, board.IsCellMissed(c))
	assert.True(t, board.IsCellResolved(c))

	_, ok = board.TakeHit(c)
	assert.False(t, ok)
	assert.Equal(t, mb.CellMissed, board.At(c).Kind)
}

func TestTakeHitOutOfBounds(t *testing.T) {
	board := mb.NewBoard(4)
	_, ok := board.TakeHit(mb.NewCoordinates(4, 0))
	assert.False(t, ok)
}

func TestShipAt(t *testing.T) {
	board := mb.NewBoard(10)
	ship := mb.NewShip("Destroyer", 3)
	require.True(t, board.DeployShip(ship, mb.NewCoordinates(1, 1), mb.DirectionX))

	found, part := board.ShipAt(mb.NewCoordinates(3, 1))
	assert.Same(t, ship, found)
	assert.Same(t, ship.Part(2), part)

	found, part = board.ShipAt(mb.NewCoordinates(0, 0))
	assert.Nil(t, found)
	assert.Nil(t, part)
}

func TestBoardClear(t *testing.T) {
	board := mb.NewBoard(10)
	require.True(t, board.DeployShip(mb.NewShip("Destroyer", 3), mb.NewCoordinates(0, 0), mb.DirectionX))
	_, _ = board.TakeHit(mb.NewCoordinates(9, 9))

	board.Clear()
	assert.Empty(t, board.Ships())
	assert.Equal(t, mb.CellEmpty, board.At(mb.NewCoordinates(0, 0)).Kind)
	assert.Equal(t, mb.CellEmpty, board.At(mb.NewCoordinates(9, 9)).Kind)
}

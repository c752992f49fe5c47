package battleship_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cerr "github.com/saeidalz13/battleship-solo/internal/error"
	mb "github.com/saeidalz13/battleship-solo/models/battleship"
)

func sinkAll(t *testing.T, p *mb.Player) {
	t.Helper()
	for _, ship := range p.Fleet() {
		for _, c := range p.Board().ShipPartCoordinates(ship) {
			_, ok := p.TakeHit(c)
			require.True(t, ok)
		}
	}
}

func TestNewGameDefaults(t *testing.T) {
	game, err := mb.NewGame(mb.WithRandom(newRand(1)))
	require.NoError(t, err)

	assert.Len(t, game.Uuid(), 6)
	assert.Equal(t, mb.DefaultGridSize, game.GridSize())
	assert.Equal(t, mb.DefaultHumanName, game.HumanPlayer.Name())
	assert.Equal(t, mb.DefaultComputerName, game.ComputerPlayer.Name())
	assert.True(t, game.HumanPlayer.IsHuman())
	assert.True(t, game.ComputerPlayer.IsComputer())
	assert.False(t, game.IsFinished())

	for _, p := range game.GetPlayers() {
		assert.Len(t, p.Board().Ships(), len(mb.DefaultFleet))
		assert.False(t, p.IsActive())
	}
	assert.Nil(t, game.Winner())
}

func TestNewGameOptions(t *testing.T) {
	fleet := mb.FleetSpec{{Name: "Patrol Boat", Size: 2}}
	game, err := mb.NewGame(
		mb.WithGridSize(4),
		mb.WithFleet(fleet),
		mb.WithRandom(newRand(2)),
		mb.WithPlayerNames("Trinity", ""),
	)
	require.NoError(t, err)

	assert.Equal(t, 4, game.GridSize())
	assert.Equal(t, "Trinity", game.HumanPlayer.Name())
	assert.Equal(t, mb.DefaultComputerName, game.ComputerPlayer.Name())
	assert.Len(t, game.ComputerPlayer.Fleet(), 1)
	assert.Same(t, game.ComputerPlayer, game.GetOpponent(game.HumanPlayer))
	assert.Same(t, game.HumanPlayer, game.GetOpponent(game.ComputerPlayer))
}

func TestNewGameInvalidBoard(t *testing.T) {
	_, err := mb.NewGame(mb.WithGridSize(3))
	require.Error(t, err)
	assert.ErrorIs(t, err, cerr.ErrInvalidBoardConfiguration)
}

func TestGameWinner(t *testing.T) {
	fleet := mb.FleetSpec{{Name: "Patrol Boat", Size: 2}}
	game, err := mb.NewGame(mb.WithGridSize(4), mb.WithFleet(fleet), mb.WithRandom(newRand(3)))
	require.NoError(t, err)

	sinkAll(t, game.ComputerPlayer)
	assert.Same(t, game.HumanPlayer, game.Winner())

	// both sunk is not a win for anybody
	sinkAll(t, game.HumanPlayer)
	assert.Nil(t, game.Winner())
}

func TestGameManager(t *testing.T) {
	bgm := mb.NewBattleshipGameManager()

	game, err := bgm.CreateGame(mb.WithRandom(newRand(4)))
	require.NoError(t, err)
	assert.Equal(t, 1, bgm.Count())

	found, err := bgm.GetGame(game.Uuid())
	require.NoError(t, err)
	assert.Same(t, game, found)

	bgm.TerminateGame(game.Uuid())
	assert.Equal(t, 0, bgm.Count())
	assert.True(t, game.IsFinished())

	_, err = bgm.GetGame(game.Uuid())
	assert.ErrorIs(t, err, cerr.ErrGameNotFound)

	_, err = bgm.CreateGame(mb.WithGridSize(2))
	assert.ErrorIs(t, err, cerr.ErrInvalidBoardConfiguration)
	assert.Equal(t, 0, bgm.Count())
}

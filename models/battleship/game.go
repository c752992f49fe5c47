package battleship

import (
	"math/rand/v2"
	"sync"

	"github.com/google/uuid"
)

const (
	DefaultHumanName    = "Neo"
	DefaultComputerName = "Agent Smith"
)

type Game struct {
	isFinished     bool
	uuid           string
	gridSize       int
	fleet          FleetSpec
	rnd            Random
	humanName      string
	computerName   string
	HumanPlayer    *Player
	ComputerPlayer *Player
	mu             sync.RWMutex
}

type GameOption func(*Game) error

func WithGridSize(gridSize int) GameOption {
	return func(g *Game) error {
		g.gridSize = gridSize
		return nil
	}
}

func WithFleet(fleet FleetSpec) GameOption {
	return func(g *Game) error {
		g.fleet = fleet
		return nil
	}
}

func WithRandom(rnd Random) GameOption {
	return func(g *Game) error {
		g.rnd = rnd
		return nil
	}
}

func WithPlayerNames(human, computer string) GameOption {
	return func(g *Game) error {
		if human != "" {
			g.humanName = human
		}
		if computer != "" {
			g.computerName = computer
		}
		return nil
	}
}

// NewGame validates the configuration first and then deploys both fleets.
func NewGame(optFuncs ...GameOption) (*Game, error) {
	game := Game{
		uuid:         uuid.NewString()[:6],
		gridSize:     DefaultGridSize,
		fleet:        DefaultFleet,
		humanName:    DefaultHumanName,
		computerName: DefaultComputerName,
	}

	for _, opt := range optFuncs {
		if err := opt(&game); err != nil {
			return nil, err
		}
	}
	if game.rnd == nil {
		game.rnd = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	if err := ValidateFleet(game.gridSize, game.fleet); err != nil {
		return nil, err
	}

	game.HumanPlayer = NewPlayer(game.humanName, PlayerTypeHuman, game.gridSize, game.fleet)
	game.ComputerPlayer = NewPlayer(game.computerName, PlayerTypeComputer, game.gridSize, game.fleet)

	for _, player := range game.GetPlayers() {
		if err := player.DeployFleet(game.rnd); err != nil {
			return nil, err
		}
	}

	return &game, nil
}

func (g *Game) Uuid() string {
	return g.uuid
}

func (g *Game) GridSize() int {
	return g.gridSize
}

func (g *Game) Random() Random {
	return g.rnd
}

// returns a slice of players in the order of human then computer.
func (g *Game) GetPlayers() []*Player {
	return []*Player{g.HumanPlayer, g.ComputerPlayer}
}

func (g *Game) GetOpponent(player *Player) *Player {
	if player == g.HumanPlayer {
		return g.ComputerPlayer
	}
	return g.HumanPlayer
}

// Winner returns the only side whose opponent is sunk, or nil while both
// fleets (or, which must never happen, neither) are still afloat.
func (g *Game) Winner() *Player {
	humanSunk := g.HumanPlayer.IsSunk()
	computerSunk := g.ComputerPlayer.IsSunk()

	switch {
	case humanSunk && !computerSunk:
		return g.ComputerPlayer
	case computerSunk && !humanSunk:
		return g.HumanPlayer
	default:
		return nil
	}
}

func (g *Game) FinishGame() {
	g.mu.Lock()
	g.isFinished = true
	g.mu.Unlock()
}

func (g *Game) IsFinished() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.isFinished
}

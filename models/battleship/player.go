package battleship

import (
	"sync"

	cerr "github.com/saeidalz13/battleship-solo/internal/error"
)

const (
	// Per ship attempts before the current round is abandoned.
	maxPlacementAttempts = 1000

	// Rounds of a full fleet deployment on a cleared board.
	maxDeploymentRounds = 50
)

type PlayerType uint8

const (
	PlayerTypeHuman PlayerType = iota
	PlayerTypeComputer
)

func (pt PlayerType) String() string {
	switch pt {
	case PlayerTypeHuman:
		return "human"
	case PlayerTypeComputer:
		return "computer"
	default:
		return "unknown"
	}
}

type Player struct {
	name       string
	playerType PlayerType
	gridSize   int
	board      *Board
	fleet      []*Ship

	// isActive marks the side whose turn it is to shoot; an active
	// player cannot be shot at.
	isActive bool
	canPlay  bool
	mu       sync.RWMutex
}

func NewPlayer(name string, playerType PlayerType, gridSize int, fleet FleetSpec) *Player {
	return &Player{
		name:       name,
		playerType: playerType,
		gridSize:   gridSize,
		board:      NewBoard(gridSize),
		fleet:      fleet.Build(),
	}
}

func (p *Player) Name() string {
	return p.name
}

func (p *Player) Type() PlayerType {
	return p.playerType
}

func (p *Player) IsHuman() bool {
	return p.playerType == PlayerTypeHuman
}

func (p *Player) IsComputer() bool {
	return p.playerType == PlayerTypeComputer
}

func (p *Player) GridSize() int {
	return p.gridSize
}

func (p *Player) Board() *Board {
	return p.board
}

func (p *Player) Fleet() []*Ship {
	return p.fleet
}

func (p *Player) IsActive() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.isActive
}

// SetActive reports whether the flag actually changed.
func (p *Player) SetActive(active bool) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.isActive == active {
		return false
	}
	p.isActive = active
	return true
}

func (p *Player) CanPlay() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.canPlay
}

func (p *Player) SetCanPlay(canPlay bool) {
	p.mu.Lock()
	p.canPlay = canPlay
	p.mu.Unlock()
}

// ValidateFleet checks that the fleet can be deployed at all on a board of
// the given size, before any placement is attempted.
func ValidateFleet(gridSize int, fleet FleetSpec) error {
	if gridSize < 1 || gridSize > MaxCodableBoardSize {
		return cerr.ErrBoardSizeOutOfRange(gridSize, MaxCodableBoardSize)
	}
	if len(fleet) == 0 {
		return cerr.ErrEmptyFleet()
	}

	for _, s := range fleet {
		if s.Size < 1 {
			return cerr.ErrInvalidShipSize(s.Name, s.Size)
		}
		if s.Size > gridSize {
			return cerr.ErrBoardTooSmall(gridSize, s.Size, s.Name)
		}
	}

	if fleet.Footprint() > gridSize*gridSize {
		return cerr.ErrFleetTooLarge(gridSize, fleet.Footprint())
	}
	return nil
}

// DeployFleet places every ship at a random start and direction, retrying
// until it fits. A round that gets stuck is restarted on a cleared board.
func (p *Player) DeployFleet(rnd Random) error {
	specs := make(FleetSpec, 0, len(p.fleet))
	for _, ship := range p.fleet {
		specs = append(specs, ShipSpec{Name: ship.Name(), Size: ship.Size()})
	}
	if err := ValidateFleet(p.gridSize, specs); err != nil {
		return err
	}

	var stuck *Ship
	for round := 0; round < maxDeploymentRounds; round++ {
		p.board.Clear()

		stuck = nil
		for _, ship := range p.fleet {
			if !p.deployShip(rnd, ship) {
				stuck = ship
				break
			}
		}

		if stuck == nil {
			return nil
		}
	}

	p.board.Clear()
	return cerr.ErrFleetDeploymentFailed(stuck.Name(), maxDeploymentRounds)
}

func (p *Player) deployShip(rnd Random, ship *Ship) bool {
	for attempt := 0; attempt < maxPlacementAttempts; attempt++ {
		start := RandomCoordinates(rnd, p.gridSize)
		if p.board.DeployShip(ship, start, RandomDirection(rnd)) {
			return true
		}
	}
	return false
}

// TakeHit only reaches the board while the player is not active.
func (p *Player) TakeHit(c Coordinates) (ShotResult, bool) {
	if p.IsActive() {
		return ShotResult{}, false
	}
	return p.board.TakeHit(c)
}

// IsSunk, SunkShips and Damages read part states under the board lock, since
// shots land from the controller's goroutines while views render.
func (p *Player) IsSunk() bool {
	p.board.mu.RLock()
	defer p.board.mu.RUnlock()

	for _, ship := range p.fleet {
		if !ship.IsSunk() {
			return false
		}
	}
	return true
}

func (p *Player) SunkShips() int {
	p.board.mu.RLock()
	defer p.board.mu.RUnlock()

	sunk := 0
	for _, ship := range p.fleet {
		if ship.IsSunk() {
			sunk++
		}
	}
	return sunk
}

// Damages is the number of ship parts this player has lost.
func (p *Player) Damages() int {
	p.board.mu.RLock()
	defer p.board.mu.RUnlock()

	damages := 0
	for _, ship := range p.fleet {
		damages += ship.NumHits()
	}
	return damages
}

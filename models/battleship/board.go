package battleship

import "sync"

// ShotResult is the outcome of resolving one shot against a board.
// Ship is nil on a miss.
type ShotResult struct {
	Coordinates Coordinates
	Hit         bool
	Sunk        bool
	Ship        *Ship
}

type Board struct {
	size  int
	grid  Grid
	ships []*Ship
	mu    sync.RWMutex
}

func NewBoard(size int) *Board {
	return &Board{
		size:  size,
		grid:  NewGrid(size),
		ships: make([]*Ship, 0, len(DefaultFleet)),
	}
}

func (b *Board) Size() int {
	return b.size
}

// CanPlaceShip checks that every cell of the run is inside the grid and
// holds no ship part. It never mutates the board.
func (b *Board) CanPlaceShip(ship *Ship, start Coordinates, dir Direction) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return b.canPlaceShip(ship, start, dir)
}

func (b *Board) canPlaceShip(ship *Ship, start Coordinates, dir Direction) bool {
	if ship == nil || ship.Size() == 0 {
		return false
	}
	if !start.InBounds(b.size) {
		return false
	}

	end := dir.step(start, ship.Size()-1)
	if !end.InBounds(b.size) {
		return false
	}

	for i := 0; i < ship.Size(); i++ {
		if b.at(dir.step(start, i)).Kind == CellOccupied {
			return false
		}
	}

	return true
}

// DeployShip places the ship only if the whole run is valid. A ship that is
// already on this board cannot be placed a second time.
func (b *Board) DeployShip(ship *Ship, start Coordinates, dir Direction) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.indexOf(ship) != -1 {
		return false
	}
	if !b.canPlaceShip(ship, start, dir) {
		return false
	}

	b.ships = append(b.ships, ship)
	shipIdx := len(b.ships) - 1

	for partIdx := 0; partIdx < ship.Size(); partIdx++ {
		b.set(dir.step(start, partIdx), occupiedCell(shipIdx, partIdx))
	}
	return true
}

// ShipPartCoordinates returns the cells owned by the ship in row-major order.
func (b *Board) ShipPartCoordinates(ship *Ship) []Coordinates {
	b.mu.RLock()
	defer b.mu.RUnlock()

	shipIdx := b.indexOf(ship)
	if shipIdx == -1 {
		return nil
	}

	coords := make([]Coordinates, 0, ship.Size())
	for y := 0; y < b.size; y++ {
		for x := 0; x < b.size; x++ {
			cell := b.grid[x][y]
			if cell.Kind == CellOccupied && cell.Ship == shipIdx {
				coords = append(coords, NewCoordinates(x, y))
			}
		}
	}
	return coords
}

// TakeHit resolves a shot. It returns false, without touching the board, when
// the cell was already missed or holds a part that was already hit.
func (b *Board) TakeHit(c Coordinates) (ShotResult, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !c.InBounds(b.size) {
		return ShotResult{}, false
	}

	cell := b.at(c)
	switch cell.Kind {
	case CellMissed:
		return ShotResult{}, false

	case CellEmpty:
		b.set(c, Cell{Kind: CellMissed})
		return ShotResult{Coordinates: c}, true

	default:
		ship := b.ships[cell.Ship]
		if !ship.Part(cell.Part).TakeHit() {
			return ShotResult{}, false
		}
		return ShotResult{
			Coordinates: c,
			Hit:         true,
			Sunk:        ship.IsSunk(),
			Ship:        ship,
		}, true
	}
}

func (b *Board) At(c Coordinates) Cell {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return b.at(c)
}

// ShipAt returns the ship and part occupying c, or nil if there is none.
func (b *Board) ShipAt(c Coordinates) (*Ship, *ShipPart) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	cell := b.at(c)
	if cell.Kind != CellOccupied {
		return nil, nil
	}
	ship := b.ships[cell.Ship]
	return ship, ship.Part(cell.Part)
}

func (b *Board) HasShipPartAt(c Coordinates) bool {
	return b.At(c).Kind == CellOccupied
}

func (b *Board) IsCellMissed(c Coordinates) bool {
	return b.At(c).Kind == CellMissed
}

// IsCellResolved reports whether a shot at c would be a repeat.
func (b *Board) IsCellResolved(c Coordinates) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()

	cell := b.at(c)
	switch cell.Kind {
	case CellMissed:
		return true
	case CellOccupied:
		return b.ships[cell.Ship].Part(cell.Part).IsHit()
	default:
		return false
	}
}

func (b *Board) Ships() []*Ship {
	b.mu.RLock()
	defer b.mu.RUnlock()

	ships := make([]*Ship, len(b.ships))
	copy(ships, b.ships)
	return ships
}

// Clear empties every cell and forgets all deployed ships.
func (b *Board) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.grid = NewGrid(b.size)
	b.ships = b.ships[:0]
}

// at reads outside the grid as CellEmpty.
func (b *Board) at(c Coordinates) Cell {
	if !c.InBounds(b.size) {
		return Cell{}
	}
	return b.grid[c.X][c.Y]
}

func (b *Board) set(c Coordinates, cell Cell) {
	b.grid[c.X][c.Y] = cell
}

func (b *Board) indexOf(ship *Ship) int {
	for i, s := range b.ships {
		if s == ship {
			return i
		}
	}
	return -1
}

package battleship

const DefaultGridSize int = 10

type CellKind uint8

const (
	CellEmpty CellKind = iota
	CellMissed
	CellOccupied
)

func (k CellKind) String() string {
	switch k {
	case CellEmpty:
		return "empty"
	case CellMissed:
		return "missed"
	case CellOccupied:
		return "occupied"
	default:
		return "unknown"
	}
}

// Cell holds Empty, Missed, or a reference to a ship part by index: Ship
// indexes the board's ship registry and Part indexes that ship's parts.
// Ship and Part are only meaningful when Kind is CellOccupied.
type Cell struct {
	Kind CellKind
	Ship int
	Part int
}

func occupiedCell(shipIdx, partIdx int) Cell {
	return Cell{Kind: CellOccupied, Ship: shipIdx, Part: partIdx}
}

type Direction uint8

const (
	DirectionX Direction = iota
	DirectionY
)

func (d Direction) String() string {
	switch d {
	case DirectionX:
		return "x"
	case DirectionY:
		return "y"
	default:
		return "unknown"
	}
}

// step returns the coordinates of the i-th cell of a run starting at start.
func (d Direction) step(start Coordinates, i int) Coordinates {
	if d == DirectionX {
		return NewCoordinates(start.X+i, start.Y)
	}
	return NewCoordinates(start.X, start.Y+i)
}

func RandomDirection(rnd Random) Direction {
	if rnd.IntN(2) == 0 {
		return DirectionX
	}
	return DirectionY
}

// Grid is indexed as grid[x][y].
type Grid [][]Cell

// Creates a new default grid
// All cells are CellEmpty
func NewGrid(gridSize int) Grid {
	grid := make(Grid, gridSize)

	for i := 0; i < gridSize; i++ {
		grid[i] = make([]Cell, gridSize)
	}
	return grid
}

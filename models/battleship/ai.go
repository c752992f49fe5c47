package battleship

import (
	"sync"

	cerr "github.com/saeidalz13/battleship-solo/internal/error"
)

type HitMapCell struct {
	Coordinates Coordinates
	Tried       bool
	Hit         bool
	Sunk        bool
}

// AI only knows what it is told about its own shots; it has no access to
// the opponent's board.
type AI struct {
	gridSize int
	hitMap   [][]HitMapCell
	rnd      Random
	mu       sync.Mutex
}

func NewAI(gridSize int, rnd Random) *AI {
	hitMap := make([][]HitMapCell, gridSize)
	for x := 0; x < gridSize; x++ {
		hitMap[x] = make([]HitMapCell, gridSize)
		for y := 0; y < gridSize; y++ {
			hitMap[x][y] = HitMapCell{Coordinates: NewCoordinates(x, y)}
		}
	}

	return &AI{
		gridSize: gridSize,
		hitMap:   hitMap,
		rnd:      rnd,
	}
}

// ChooseCoordinate picks uniformly among untried cells and marks the pick
// as tried right away, so an in-flight target is never chosen twice.
func (ai *AI) ChooseCoordinate() (Coordinates, error) {
	ai.mu.Lock()
	defer ai.mu.Unlock()

	untried := make([]*HitMapCell, 0, ai.gridSize*ai.gridSize)
	for x := range ai.hitMap {
		for y := range ai.hitMap[x] {
			if !ai.hitMap[x][y].Tried {
				untried = append(untried, &ai.hitMap[x][y])
			}
		}
	}

	if len(untried) == 0 {
		return Coordinates{}, cerr.ErrNoUntriedCoordinates(ai.gridSize)
	}

	chosen := untried[ai.rnd.IntN(len(untried))]
	chosen.Tried = true
	return chosen.Coordinates, nil
}

// UpdateHitMapAtCoordinate records the outcome of a shot. It does not bias
// later choices.
func (ai *AI) UpdateHitMapAtCoordinate(c Coordinates, hit, sunk bool) {
	if !c.InBounds(ai.gridSize) {
		return
	}

	ai.mu.Lock()
	cell := &ai.hitMap[c.X][c.Y]
	cell.Tried = true
	cell.Hit = hit
	cell.Sunk = sunk
	ai.mu.Unlock()
}

func (ai *AI) Cell(c Coordinates) HitMapCell {
	if !c.InBounds(ai.gridSize) {
		return HitMapCell{Coordinates: c}
	}

	ai.mu.Lock()
	defer ai.mu.Unlock()
	return ai.hitMap[c.X][c.Y]
}

func (ai *AI) Untried() int {
	ai.mu.Lock()
	defer ai.mu.Unlock()

	count := 0
	for x := range ai.hitMap {
		for y := range ai.hitMap[x] {
			if !ai.hitMap[x][y].Tried {
				count++
			}
		}
	}
	return count
}

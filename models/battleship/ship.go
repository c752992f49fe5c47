package battleship

type PartState uint8

const (
	PartStateIntact PartState = iota
	PartStateHit
)

func (s PartState) String() string {
	switch s {
	case PartStateIntact:
		return "intact"
	case PartStateHit:
		return "hit"
	default:
		return "unknown"
	}
}

// ShipPart is the smallest damageable unit of a ship.
type ShipPart struct {
	state PartState
}

func (sp *ShipPart) State() PartState {
	return sp.state
}

func (sp *ShipPart) IsIntact() bool {
	return sp.state == PartStateIntact
}

func (sp *ShipPart) IsHit() bool {
	return sp.state == PartStateHit
}

// TakeHit reports false if the part was already hit.
func (sp *ShipPart) TakeHit() bool {
	if sp.state == PartStateHit {
		return false
	}
	sp.state = PartStateHit
	return true
}

type Ship struct {
	name  string
	parts []ShipPart
}

func NewShip(name string, size int) *Ship {
	return &Ship{
		name:  name,
		parts: make([]ShipPart, size),
	}
}

func (sh *Ship) Name() string {
	return sh.name
}

func (sh *Ship) Size() int {
	return len(sh.parts)
}

func (sh *Ship) Part(index int) *ShipPart {
	return &sh.parts[index]
}

func (sh *Ship) IsIntact() bool {
	for i := range sh.parts {
		if !sh.parts[i].IsIntact() {
			return false
		}
	}
	return true
}

func (sh *Ship) IsHit() bool {
	for i := range sh.parts {
		if sh.parts[i].IsHit() {
			return true
		}
	}
	return false
}

func (sh *Ship) IsSunk() bool {
	for i := range sh.parts {
		if !sh.parts[i].IsHit() {
			return false
		}
	}
	return len(sh.parts) > 0
}

func (sh *Ship) NumHits() int {
	hits := 0
	for i := range sh.parts {
		if sh.parts[i].IsHit() {
			hits++
		}
	}
	return hits
}

// ShipSpec describes one ship of a fleet before it is built.
type ShipSpec struct {
	Name string
	Size int
}

type FleetSpec []ShipSpec

// DefaultFleet is the classic composition, largest first.
var DefaultFleet = FleetSpec{
	{Name: "Aircraft Carrier", Size: 5},
	{Name: "Battleship", Size: 4},
	{Name: "Destroyer", Size: 3},
	{Name: "Submarine", Size: 3},
	{Name: "Patrol Boat", Size: 2},
}

func (fs FleetSpec) Footprint() int {
	total := 0
	for _, s := range fs {
		total += s.Size
	}
	return total
}

func (fs FleetSpec) Build() []*Ship {
	ships := make([]*Ship, 0, len(fs))
	for _, s := range fs {
		ships = append(ships, NewShip(s.Name, s.Size))
	}
	return ships
}

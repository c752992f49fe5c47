package battleship

import (
	"fmt"
	"strconv"

	cerr "github.com/saeidalz13/battleship-solo/internal/error"
)

// Largest board whose columns can still be labeled with a single letter.
const MaxCodableBoardSize = 26

// Random is the source of randomness used for deployment and targeting.
// *rand.Rand from math/rand/v2 satisfies it.
type Random interface {
	IntN(n int) int
}

type Coordinates struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func NewCoordinates(x, y int) Coordinates {
	return Coordinates{X: x, Y: y}
}

// Code maps (x, y) to a column letter and a 1-based row, e.g. (2, 3) -> "C4".
func (c Coordinates) Code() string {
	return string(rune('A'+c.X)) + strconv.Itoa(c.Y+1)
}

func (c Coordinates) String() string {
	return fmt.Sprintf("(%d, %d)", c.X, c.Y)
}

func (c Coordinates) InBounds(gridSize int) bool {
	return c.X >= 0 && c.X < gridSize && c.Y >= 0 && c.Y < gridSize
}

// CoordinatesFromCode is the inverse of Code. Rows may have more than one digit.
func CoordinatesFromCode(code string) (Coordinates, error) {
	if len(code) < 2 {
		return Coordinates{}, cerr.ErrMalformedCoordinateCode(code)
	}

	letter := code[0]
	if letter < 'A' || letter > 'Z' {
		return Coordinates{}, cerr.ErrMalformedCoordinateCode(code)
	}

	row, err := strconv.Atoi(code[1:])
	if err != nil || row < 1 || code[1] == '+' {
		return Coordinates{}, cerr.ErrMalformedCoordinateCode(code)
	}

	return NewCoordinates(int(letter-'A'), row-1), nil
}

// RandomCoordinates picks x and y uniformly over [0, gridSize).
func RandomCoordinates(rnd Random, gridSize int) Coordinates {
	return NewCoordinates(rnd.IntN(gridSize), rnd.IntN(gridSize))
}

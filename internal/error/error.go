package error

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidBoardConfiguration = errors.New("invalid board configuration")
	ErrExhaustedTargets          = errors.New("no untried coordinates left")
	ErrInvalidCoordinateCode     = errors.New("invalid coordinate code")
	ErrGameNotFound              = errors.New("game not found")
	ErrSessionNotFound           = errors.New("session not found")
	ErrInvalidConfig             = errors.New("invalid config")
	ErrInvalidGameState          = errors.New("invalid game state")
)

func ErrGameNotExists(gameUuid string) error {
	return fmt.Errorf("%w: game with this uuid does not exist, uuid: %s", ErrGameNotFound, gameUuid)
}

func ErrGameIsNil(gameUuid string) error {
	return fmt.Errorf("%w: game with this uuid is nil, uuid: %s", ErrGameNotFound, gameUuid)
}

func ErrSessionNotExists(sessionId string) error {
	return fmt.Errorf("%w: session id: %s", ErrSessionNotFound, sessionId)
}

func ErrSessionIsNil(sessionId string) error {
	return fmt.Errorf("%w: session is nil, id: %s", ErrSessionNotFound, sessionId)
}

func ErrBoardTooSmall(boardSize, shipSize int, shipName string) error {
	return fmt.Errorf("%w: ship %q of size %d does not fit a board of size %d", ErrInvalidBoardConfiguration, shipName, shipSize, boardSize)
}

func ErrEmptyFleet() error {
	return fmt.Errorf("%w: fleet has no ships", ErrInvalidBoardConfiguration)
}

func ErrFleetTooLarge(boardSize, footprint int) error {
	return fmt.Errorf("%w: fleet footprint %d exceeds board area %d", ErrInvalidBoardConfiguration, footprint, boardSize*boardSize)
}

func ErrInvalidShipSize(shipName string, size int) error {
	return fmt.Errorf("%w: ship %q must have a positive size, got %d", ErrInvalidBoardConfiguration, shipName, size)
}

func ErrBoardSizeOutOfRange(boardSize, max int) error {
	return fmt.Errorf("%w: board size must be between 1 and %d, got %d", ErrInvalidBoardConfiguration, max, boardSize)
}

func ErrFleetDeploymentFailed(shipName string, rounds int) error {
	return fmt.Errorf("%w: could not deploy %q after %d rounds", ErrInvalidBoardConfiguration, shipName, rounds)
}

func ErrNoUntriedCoordinates(boardSize int) error {
	return fmt.Errorf("%w: all %d cells have been tried", ErrExhaustedTargets, boardSize*boardSize)
}

func ErrMalformedCoordinateCode(code string) error {
	return fmt.Errorf("%w: %q", ErrInvalidCoordinateCode, code)
}

func ErrXorYOutOfGridBound(x, y int) error {
	return fmt.Errorf("incoming x or y is out of game grid bound\tx: %d\ty: %d", x, y)
}

func ErrInvalidEnvValue(key, value string) error {
	return fmt.Errorf("%w: %s=%q", ErrInvalidConfig, key, value)
}

func ErrInvalidStage(stage string) error {
	return fmt.Errorf("%w: stage must be either dev or prod, got %q", ErrInvalidConfig, stage)
}

func ErrBothPlayersSunk(gameUuid string) error {
	return fmt.Errorf("%w: both players are sunk in game %s", ErrInvalidGameState, gameUuid)
}

func ErrShootTargetAbsent() error {
	return fmt.Errorf("shoot request needs either x and y or a coordinate code")
}

func ErrUnknownPlayerRole(role string) error {
	return fmt.Errorf("player must be either human or computer, got %q", role)
}

func ErrNoActiveGame() error {
	return fmt.Errorf("no game has been created in this session")
}

func ErrSignalAbsent() error {
	return fmt.Errorf("incoming req payload must contain 'code' field")
}

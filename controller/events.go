package controller

import (
	mb "github.com/saeidalz13/battleship-solo/models/battleship"
)

// ShotEvent is published once per resolved shot. Target is the side whose
// board was shot, Shooter its opponent.
type ShotEvent struct {
	Result  mb.ShotResult
	Target  *mb.Player
	Shooter *mb.Player
}

type TurnEvent struct {
	Player   *mb.Player
	IsActive bool
}

// GameOverEvent has a nil Winner only when the game was ended by Err.
type GameOverEvent struct {
	Winner *mb.Player
	Err    error
}

// Interface is the presentation layer the controller drives. Implementations
// answer with PresentationCompleted once a shot has been shown and with
// BoardReady once a newly activated side is ready to play, either right away
// (headless) or after an animation.
type Interface interface {
	ShotResolved(ev ShotEvent)
	TurnChanged(ev TurnEvent)
	GameEnded(ev GameOverEvent)
}

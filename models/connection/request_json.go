package connection

import (
	cerr "github.com/saeidalz13/battleship-solo/internal/error"
	mb "github.com/saeidalz13/battleship-solo/models/battleship"
)

type ReqCreateGame struct {
	BoardSize  int    `json:"board_size,omitempty"`
	PlayerName string `json:"player_name,omitempty"`

	// Server acknowledges presentation for the client
	AutoAck bool `json:"auto_ack,omitempty"`
}

// ReqShoot targets either X and Y or a code such as "C4".
type ReqShoot struct {
	X    *int   `json:"x,omitempty"`
	Y    *int   `json:"y,omitempty"`
	Code string `json:"code,omitempty"`
}

func (r ReqShoot) Coordinates() (mb.Coordinates, error) {
	if r.Code != "" {
		return mb.CoordinatesFromCode(r.Code)
	}
	if r.X == nil || r.Y == nil {
		return mb.Coordinates{}, cerr.ErrShootTargetAbsent()
	}
	return mb.NewCoordinates(*r.X, *r.Y), nil
}

// ReqAck names the side whose board was shown, "human" or "computer".
type ReqAck struct {
	Player string `json:"player"`
}

package connection

import (
	mb "github.com/saeidalz13/battleship-solo/models/battleship"
)

const (
	PlayerHuman    = "human"
	PlayerComputer = "computer"
)

func PlayerRole(p *mb.Player) string {
	if p == nil {
		return ""
	}
	if p.IsHuman() {
		return PlayerHuman
	}
	return PlayerComputer
}

type RespSessionId struct {
	SessionID string `json:"session_id"`
}

type RespCreateGame struct {
	GameUuid  string `json:"game_uuid"`
	BoardSize int    `json:"board_size"`
	Human     string `json:"human"`
	Computer  string `json:"computer"`
}

type ShipLayout struct {
	Name        string           `json:"name"`
	Size        int              `json:"size"`
	Coordinates []mb.Coordinates `json:"coordinates"`
}

type RespFleet struct {
	Ships []ShipLayout `json:"ships"`
}

func NewRespFleet(board *mb.Board) RespFleet {
	ships := board.Ships()
	resp := RespFleet{Ships: make([]ShipLayout, 0, len(ships))}
	for _, ship := range ships {
		resp.Ships = append(resp.Ships, ShipLayout{
			Name:        ship.Name(),
			Size:        ship.Size(),
			Coordinates: board.ShipPartCoordinates(ship),
		})
	}
	return resp
}

type RespShotResult struct {
	X       int    `json:"x"`
	Y       int    `json:"y"`
	Code    string `json:"code"`
	Hit     bool   `json:"hit"`
	Sunk    bool   `json:"sunk"`
	Ship    string `json:"ship,omitempty"`
	Target  string `json:"target"`
	Shooter string `json:"shooter"`
	Damages int    `json:"damages"`
}

type RespTurnChanged struct {
	Player   string `json:"player"`
	IsActive bool   `json:"is_active"`
}

type RespEndGame struct {
	Winner string `json:"winner,omitempty"`
	Error  string `json:"error,omitempty"`
}

type RespErr struct {
	ErrorDetails string `json:"error_details,omitempty"`
	Message      string `json:"message,omitempty"`
}

func NewRespErr(errorDetails, message string) *RespErr {
	return &RespErr{
		ErrorDetails: errorDetails,
		Message:      message,
	}
}

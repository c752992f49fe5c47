package api

import (
	"encoding/json"

	cerr "github.com/saeidalz13/battleship-solo/internal/error"
	mb "github.com/saeidalz13/battleship-solo/models/battleship"
	mc "github.com/saeidalz13/battleship-solo/models/connection"
)

type RequestHandler interface {
	HandleCreateGame(gameManager mb.GameManager, defaultBoardSize int) (*mb.Game, mc.ReqCreateGame, mc.Message[mc.RespCreateGame])
	HandleShoot(game *mb.Game) (mb.Coordinates, *mc.Message[mc.NoPayload])
	HandleAck(game *mb.Game, code uint8) (*mb.Player, *mc.Message[mc.NoPayload])
}

// Every incoming valid request will have this structure.
// The request then is handled in line with RequestHandler interface.
type Request struct {
	payload []byte
}

var _ RequestHandler = (*Request)(nil)

func NewRequest(payload ...[]byte) Request {
	if len(payload) == 0 {
		return Request{}
	}
	return Request{payload: payload[0]}
}

func (r Request) HandleCreateGame(gameManager mb.GameManager, defaultBoardSize int) (*mb.Game, mc.ReqCreateGame, mc.Message[mc.RespCreateGame]) {
	resp := mc.NewMessage[mc.RespCreateGame](mc.CodeCreateGame)

	var req mc.Message[mc.ReqCreateGame]
	if err := json.Unmarshal(r.payload, &req); err != nil {
		resp.AddError(err.Error(), "invalid create game payload")
		return nil, mc.ReqCreateGame{}, resp
	}

	boardSize := req.Payload.BoardSize
	if boardSize == 0 {
		boardSize = defaultBoardSize
	}

	game, err := gameManager.CreateGame(
		mb.WithGridSize(boardSize),
		mb.WithPlayerNames(req.Payload.PlayerName, ""),
	)
	if err != nil {
		resp.AddError(err.Error(), "could not create game")
		return nil, req.Payload, resp
	}

	resp.AddPayload(mc.RespCreateGame{
		GameUuid:  game.Uuid(),
		BoardSize: game.GridSize(),
		Human:     game.HumanPlayer.Name(),
		Computer:  game.ComputerPlayer.Name(),
	})
	return game, req.Payload, resp
}

// HandleShoot returns an error message when the target cannot be parsed.
// Whether the shot is taken is up to the controller.
func (r Request) HandleShoot(game *mb.Game) (mb.Coordinates, *mc.Message[mc.NoPayload]) {
	if game == nil {
		return mb.Coordinates{}, invalidPayload(mc.CodeShoot, cerr.ErrNoActiveGame())
	}

	var req mc.Message[mc.ReqShoot]
	if err := json.Unmarshal(r.payload, &req); err != nil {
		return mb.Coordinates{}, invalidPayload(mc.CodeShoot, err)
	}

	c, err := req.Payload.Coordinates()
	if err != nil {
		return mb.Coordinates{}, invalidPayload(mc.CodeShoot, err)
	}
	if !c.InBounds(game.GridSize()) {
		return mb.Coordinates{}, invalidPayload(mc.CodeShoot, cerr.ErrXorYOutOfGridBound(c.X, c.Y))
	}
	return c, nil
}

func (r Request) HandleAck(game *mb.Game, code uint8) (*mb.Player, *mc.Message[mc.NoPayload]) {
	if game == nil {
		return nil, invalidPayload(code, cerr.ErrNoActiveGame())
	}

	var req mc.Message[mc.ReqAck]
	if err := json.Unmarshal(r.payload, &req); err != nil {
		return nil, invalidPayload(code, err)
	}

	switch req.Payload.Player {
	case mc.PlayerHuman:
		return game.HumanPlayer, nil
	case mc.PlayerComputer:
		return game.ComputerPlayer, nil
	default:
		return nil, invalidPayload(code, cerr.ErrUnknownPlayerRole(req.Payload.Player))
	}
}

func invalidPayload(code uint8, err error) *mc.Message[mc.NoPayload] {
	msg := mc.NewMessage[mc.NoPayload](mc.CodeInvalidPayload)
	msg.AddError(err.Error(), "invalid payload for code "+codeName(code))
	return &msg
}

func codeName(code uint8) string {
	switch code {
	case mc.CodeCreateGame:
		return "create game"
	case mc.CodeShoot:
		return "shoot"
	case mc.CodeShotPresented:
		return "shot presented"
	case mc.CodeBoardReady:
		return "board ready"
	default:
		return "unknown"
	}
}

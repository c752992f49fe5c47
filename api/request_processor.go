package api

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/saeidalz13/battleship-solo/controller"
	"github.com/saeidalz13/battleship-solo/db/sqlc"
	"github.com/saeidalz13/battleship-solo/internal/logger"
	mb "github.com/saeidalz13/battleship-solo/models/battleship"
	mc "github.com/saeidalz13/battleship-solo/models/connection"
)

var (
	upgrader = websocket.Upgrader{
		// good average time since this is not a high-latency operation such as video streaming
		HandshakeTimeout: time.Second * 5,

		// probably more that enough but this is a good average size
		ReadBufferSize:  2048,
		WriteBufferSize: 2048,
		CheckOrigin:     func(r *http.Request) bool { return true },
	}
)

type RequestProcessor struct {
	sessionManager mc.SessionManager
	gameManager    mb.GameManager
	db             sqlc.DbManager
	logger         *log.Logger
	ipnet          net.IPNet

	boardSize  int
	verbose    bool
	startDelay time.Duration
	thinkDelay time.Duration
	scheduler  controller.Scheduler
}

type Option func(*RequestProcessor)

func WithLogger(l *log.Logger) Option {
	return func(rp *RequestProcessor) {
		rp.logger = l
	}
}

// WithBoardSize is used when a create game request has no board size.
func WithBoardSize(boardSize int) Option {
	return func(rp *RequestProcessor) {
		rp.boardSize = boardSize
	}
}

func WithVerbose(verbose bool) Option {
	return func(rp *RequestProcessor) {
		rp.verbose = verbose
	}
}

func WithDelays(start, think time.Duration) Option {
	return func(rp *RequestProcessor) {
		rp.startDelay = start
		rp.thinkDelay = think
	}
}

func WithScheduler(s controller.Scheduler) Option {
	return func(rp *RequestProcessor) {
		rp.scheduler = s
	}
}

// NewRequestProcessor accepts a nil querier, in which case analytics are
// not recorded.
func NewRequestProcessor(
	sessionManager mc.SessionManager,
	gameManager mb.GameManager,
	q sqlc.Querier,
	optFuncs ...Option,
) *RequestProcessor {
	rp := &RequestProcessor{
		sessionManager: sessionManager,
		gameManager:    gameManager,
		boardSize:      mb.DefaultGridSize,
		startDelay:     controller.DefaultStartDelay,
		thinkDelay:     controller.DefaultThinkDelay,
		scheduler:      controller.RealScheduler,
	}
	for _, opt := range optFuncs {
		opt(rp)
	}
	if rp.logger == nil {
		rp.logger = logger.Discard()
	}

	rp.ipnet = mustGetServerIpNet()
	rp.db = sqlc.NewDbManager(q, rp.ipnet)
	return rp
}

// mustGetServerIpNet picks the first IPv4 address of an interface that is
// up. Hosts without one, like sandboxed CI runners, fall back to loopback.
func mustGetServerIpNet() net.IPNet {
	ifaces, err := net.Interfaces()
	if err != nil {
		panic(err)
	}

	for _, iface := range ifaces {
		if iface.Flags&net.FlagUp == 0 {
			continue
		}
		if iface.Flags&net.FlagLoopback != 0 {
			continue
		}

		addrs, err := iface.Addrs()
		if err != nil {
			continue
		}

		for _, addr := range addrs {
			ipnet, ok := addr.(*net.IPNet)
			if !ok {
				continue
			}
			if ip4 := ipnet.IP.To4(); ip4 != nil && !ip4.IsLoopback() {
				return net.IPNet{IP: ip4, Mask: net.CIDRMask(32, 32)}
			}
		}
	}

	return net.IPNet{IP: net.IPv4(127, 0, 0, 1).To4(), Mask: net.CIDRMask(32, 32)}
}

// Expose this method to use it in testing
func (rp *RequestProcessor) GetIpNet() net.IPNet {
	return rp.ipnet
}

func (rp *RequestProcessor) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// use Upgrade method to make a websocket connection
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already replied to the client
		rp.logger.Error("could not open websocket connection", "err", err)
		return
	}

	rp.logger.Info("a new connection established", "remote", conn.RemoteAddr().String())
	rp.processSessionRequests(rp.sessionManager.GenerateNewSession(conn))
}

// sessionState is what one connection owns at a time.
type sessionState struct {
	game *mb.Game
	gc   *controller.GameController
	view *wsView
}

func (rp *RequestProcessor) endSessionGame(state *sessionState) {
	if state.view != nil {
		state.view.stop()
	}
	if state.gc != nil {
		state.gc.Stop()
	}
	if state.game != nil {
		rp.gameManager.TerminateGame(state.game.Uuid())
	}
	state.gc = nil
	state.game = nil
	state.view = nil
}

func (rp *RequestProcessor) processSessionRequests(session *mc.Session) {
	var state sessionState
	sessionLogger := rp.logger.With("session", session.Id())

	defer func() {
		rp.endSessionGame(&state)
		if session.Conn() != nil {
			session.Conn().Close()
		}
		rp.sessionManager.TerminateSession(session)
		sessionLogger.Info("session terminated")
	}()

	resp := mc.NewMessage[mc.RespSessionId](mc.CodeSessionID)
	resp.AddPayload(mc.RespSessionId{SessionID: session.Id()})
	if err := rp.sessionManager.WriteToSessionConn(session, resp, mc.MessageTypeJSON); err != nil {
		return
	}

sessionLoop:
	for {
		// A WebSocket frame can be one of 6 types: text=1, binary=2, ping=9, pong=10, close=8 and continuation=0
		// https://www.rfc-editor.org/rfc/rfc6455.html#section-11.8
		_, payload, err := rp.sessionManager.ReadFromSessionConn(session)
		if err != nil {
			break sessionLoop
		}

		code, err := rp.sessionManager.FetchCodeFromMsg(payload)
		if err != nil {
			msg := mc.NewMessage[mc.NoPayload](mc.CodeSignalAbsent)
			msg.AddError(err.Error(), "incoming req payload must contain 'code' field")
			if err = rp.sessionManager.WriteToSessionConn(session, msg, mc.MessageTypeJSON); err != nil {
				break sessionLoop
			}
			continue sessionLoop
		}

		switch code {

		// A new game replaces whatever this session was playing
		case mc.CodeCreateGame:
			rp.endSessionGame(&state)

			game, req, respMsg := NewRequest(payload).HandleCreateGame(rp.gameManager, rp.boardSize)
			if err := rp.sessionManager.WriteToSessionConn(session, respMsg, mc.MessageTypeJSON); err != nil {
				break sessionLoop
			}
			if respMsg.Error != nil {
				continue sessionLoop
			}

			ctx, cancel := context.WithTimeout(context.Background(), sqlc.QuerierCtxTimeout)
			if err := rp.db.Analytics.IncrementGamesCreatedCount(ctx); err != nil {
				// for now not killing the game for it
				sessionLogger.Warn("failed to record created game", "err", err)
			}
			cancel()

			fleetMsg := mc.NewMessage[mc.RespFleet](mc.CodeFleet)
			fleetMsg.AddPayload(mc.NewRespFleet(game.HumanPlayer.Board()))
			if err := rp.sessionManager.WriteToSessionConn(session, fleetMsg, mc.MessageTypeJSON); err != nil {
				rp.gameManager.TerminateGame(game.Uuid())
				break sessionLoop
			}

			view := &wsView{
				session:        session,
				sessionManager: rp.sessionManager,
				analytics:      rp.db.Analytics,
				logger:         sessionLogger.With("game", game.Uuid()),
				autoAck:        req.AutoAck,
			}
			gc := controller.New(game, view,
				controller.WithLogger(sessionLogger),
				controller.WithVerbose(rp.verbose),
				controller.WithScheduler(rp.scheduler),
				controller.WithStartDelay(rp.startDelay),
				controller.WithThinkDelay(rp.thinkDelay),
			)
			view.gc = gc

			state.game = game
			state.gc = gc
			state.view = view
			sessionLogger.Info("game created", "game", game.Uuid(), "board_size", game.GridSize(), "auto_ack", req.AutoAck)
			gc.Start()

		case mc.CodeShoot:
			c, errMsg := NewRequest(payload).HandleShoot(state.game)
			if errMsg != nil {
				if err := rp.sessionManager.WriteToSessionConn(session, errMsg, mc.MessageTypeJSON); err != nil {
					break sessionLoop
				}
				continue sessionLoop
			}
			state.gc.ShootRequested(c)

		case mc.CodeShotPresented, mc.CodeBoardReady:
			player, errMsg := NewRequest(payload).HandleAck(state.game, code)
			if errMsg != nil {
				if err := rp.sessionManager.WriteToSessionConn(session, errMsg, mc.MessageTypeJSON); err != nil {
					break sessionLoop
				}
				continue sessionLoop
			}

			if code == mc.CodeShotPresented {
				state.gc.PresentationCompleted(player)
			} else {
				state.gc.BoardReady(player)
			}

		default:
			respInvalidSignal := mc.NewMessage[mc.NoPayload](mc.CodeInvalidSignal)
			respInvalidSignal.AddError("", "invalid code in the incoming payload")
			if err := rp.sessionManager.WriteToSessionConn(session, respInvalidSignal, mc.MessageTypeJSON); err != nil {
				break sessionLoop
			}
		}
	}
}

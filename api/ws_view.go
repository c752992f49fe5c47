package api

import (
	"context"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/saeidalz13/battleship-solo/controller"
	"github.com/saeidalz13/battleship-solo/db/sqlc"
	mc "github.com/saeidalz13/battleship-solo/models/connection"
)

// wsView forwards controller events to one websocket session. With autoAck
// it also answers every event the way an interactive client would, which
// makes the session headless.
type wsView struct {
	session        *mc.Session
	sessionManager mc.SessionManager
	analytics      *sqlc.AnalyticsManager
	logger         *log.Logger
	autoAck        bool
	gc             *controller.GameController

	// set once the session moved on; a timer mid-dispatch may still publish
	stopped bool
	mu      sync.Mutex
}

var _ controller.Interface = (*wsView)(nil)

// stop returns after any write in progress, and later events are dropped.
func (v *wsView) stop() {
	v.mu.Lock()
	v.stopped = true
	v.mu.Unlock()
}

func (v *wsView) isStopped() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.stopped
}

func (v *wsView) write(msg interface{}) bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.stopped {
		v.logger.Debug("event dropped; game replaced or ended")
		return false
	}
	if err := v.sessionManager.WriteToSessionConn(v.session, msg, mc.MessageTypeJSON); err != nil {
		v.logger.Error("failed to write to session", "err", err)
	}
	return true
}

func (v *wsView) ShotResolved(ev controller.ShotEvent) {
	c := ev.Result.Coordinates
	resp := mc.RespShotResult{
		X:       c.X,
		Y:       c.Y,
		Code:    c.Code(),
		Hit:     ev.Result.Hit,
		Sunk:    ev.Result.Sunk,
		Target:  mc.PlayerRole(ev.Target),
		Shooter: mc.PlayerRole(ev.Shooter),
		Damages: ev.Target.Damages(),
	}
	if ev.Result.Ship != nil {
		resp.Ship = ev.Result.Ship.Name()
	}

	msg := mc.NewMessage[mc.RespShotResult](mc.CodeShotResult)
	msg.AddPayload(resp)
	if !v.write(msg) {
		return
	}

	if v.autoAck {
		v.gc.PresentationCompleted(ev.Target)
	}
}

func (v *wsView) TurnChanged(ev controller.TurnEvent) {
	msg := mc.NewMessage[mc.RespTurnChanged](mc.CodeTurnChanged)
	msg.AddPayload(mc.RespTurnChanged{
		Player:   mc.PlayerRole(ev.Player),
		IsActive: ev.IsActive,
	})
	if !v.write(msg) {
		return
	}

	if v.autoAck && ev.IsActive {
		v.gc.BoardReady(ev.Player)
	}
}

func (v *wsView) GameEnded(ev controller.GameOverEvent) {
	if v.isStopped() {
		return
	}
	v.recordWinner(ev)

	msg := mc.NewMessage[mc.RespEndGame](mc.CodeEndGame)
	resp := mc.RespEndGame{Winner: mc.PlayerRole(ev.Winner)}
	if ev.Err != nil {
		resp.Error = ev.Err.Error()
	}
	msg.AddPayload(resp)
	v.write(msg)
}

func (v *wsView) recordWinner(ev controller.GameOverEvent) {
	if ev.Winner == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), sqlc.QuerierCtxTimeout)
	defer cancel()

	var err error
	if ev.Winner.IsHuman() {
		err = v.analytics.IncrementHumanWinsCount(ctx)
	} else {
		err = v.analytics.IncrementComputerWinsCount(ctx)
	}
	if err != nil {
		// for now not failing the game for it
		v.logger.Warn("failed to record winner", "err", err)
	}
}

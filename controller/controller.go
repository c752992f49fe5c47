package controller

import (
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	cerr "github.com/saeidalz13/battleship-solo/internal/error"
	"github.com/saeidalz13/battleship-solo/internal/logger"
	mb "github.com/saeidalz13/battleship-solo/models/battleship"
)

const (
	DefaultStartDelay time.Duration = time.Second * 2
	DefaultThinkDelay time.Duration = time.Millisecond * 500
)

type State uint8

const (
	StateIdle State = iota
	StateWaitingForHuman
	StateResolvingHumanShot
	StateWaitingForComputer
	StateResolvingComputerShot
	StateGameOver
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateWaitingForHuman:
		return "WaitingForHuman"
	case StateResolvingHumanShot:
		return "ResolvingHumanShot"
	case StateWaitingForComputer:
		return "WaitingForComputer"
	case StateResolvingComputerShot:
		return "ResolvingComputerShot"
	case StateGameOver:
		return "GameOver"
	default:
		return "Unknown"
	}
}

// GameController owns the turn state machine between a Game and the
// presentation layer. Inbound calls are queued and handled one at a time, so
// a view may call back into the controller from inside a notification.
type GameController struct {
	game       *mb.Game
	view       Interface
	ai         *mb.AI
	scheduler  Scheduler
	logger     *log.Logger
	verbose    bool
	startDelay time.Duration
	thinkDelay time.Duration

	state     State
	aiPending bool
	started   bool
	stateMu   sync.RWMutex

	queue    []func()
	draining bool
	queueMu  sync.Mutex

	// at most one delay is pending at a time
	timer    Timer
	timerGen uint64
	timerMu  sync.Mutex
}

type Option func(*GameController)

func WithScheduler(s Scheduler) Option {
	return func(gc *GameController) {
		gc.scheduler = s
	}
}

func WithLogger(logger *log.Logger) Option {
	return func(gc *GameController) {
		gc.logger = logger
	}
}

// WithVerbose logs a line for every shot and turn.
func WithVerbose(verbose bool) Option {
	return func(gc *GameController) {
		gc.verbose = verbose
	}
}

func WithStartDelay(d time.Duration) Option {
	return func(gc *GameController) {
		gc.startDelay = d
	}
}

func WithThinkDelay(d time.Duration) Option {
	return func(gc *GameController) {
		gc.thinkDelay = d
	}
}

func WithAI(ai *mb.AI) Option {
	return func(gc *GameController) {
		gc.ai = ai
	}
}

func New(game *mb.Game, view Interface, optFuncs ...Option) *GameController {
	gc := &GameController{
		game:       game,
		view:       view,
		scheduler:  RealScheduler,
		startDelay: DefaultStartDelay,
		thinkDelay: DefaultThinkDelay,
		state:      StateIdle,
	}
	for _, opt := range optFuncs {
		opt(gc)
	}

	if gc.logger == nil {
		gc.logger = logger.Discard()
	}
	if gc.ai == nil {
		gc.ai = mb.NewAI(game.GridSize(), game.Random())
	}
	gc.logger = gc.logger.With("game", game.Uuid())

	return gc
}

func (gc *GameController) Game() *mb.Game {
	return gc.game
}

func (gc *GameController) AI() *mb.AI {
	return gc.ai
}

func (gc *GameController) State() State {
	gc.stateMu.RLock()
	defer gc.stateMu.RUnlock()
	return gc.state
}

func (gc *GameController) setState(s State) {
	gc.stateMu.Lock()
	prev := gc.state
	gc.state = s
	gc.stateMu.Unlock()

	if prev != s {
		gc.logger.Debug("state changed", "from", prev, "to", s)
	}
}

// Start gives the first turn to the human after the startup delay.
// Calling it more than once has no effect.
func (gc *GameController) Start() {
	gc.dispatch(func() {
		if gc.started || gc.State() != StateIdle {
			return
		}
		gc.started = true
		gc.schedule(gc.startDelay, func() {
			gc.dispatch(gc.onStartDelayElapsed)
		})
	})
}

// ShootRequested is the human's target selection on the computer's board.
// It is ignored unless the human holds the turn and can play.
func (gc *GameController) ShootRequested(c mb.Coordinates) {
	gc.dispatch(func() {
		gc.onHumanRequestedShoot(c)
	})
}

// PresentationCompleted acknowledges that the shot at target's board has
// been shown. The turn then passes to target.
func (gc *GameController) PresentationCompleted(target *mb.Player) {
	gc.dispatch(func() {
		gc.onShotPresented(target)
	})
}

// BoardReady acknowledges that the newly activated player's side is shown.
func (gc *GameController) BoardReady(player *mb.Player) {
	gc.dispatch(func() {
		gc.onBoardReady(player)
	})
}

// Stop cancels pending timers and refuses any further input without
// publishing a GameEnded event.
func (gc *GameController) Stop() {
	gc.dispatch(func() {
		gc.stopTimers()
		gc.setState(StateGameOver)
		for _, p := range gc.game.GetPlayers() {
			p.SetActive(false)
			p.SetCanPlay(false)
		}
	})
}

func (gc *GameController) dispatch(fn func()) {
	gc.queueMu.Lock()
	gc.queue = append(gc.queue, fn)
	if gc.draining {
		gc.queueMu.Unlock()
		return
	}

	gc.draining = true
	for len(gc.queue) > 0 {
		next := gc.queue[0]
		gc.queue = gc.queue[1:]
		gc.queueMu.Unlock()

		next()

		gc.queueMu.Lock()
	}
	gc.draining = false
	gc.queueMu.Unlock()
}

// schedule replaces the pending delay, if any. A callback whose delay was
// replaced or stopped does nothing, even if its timer already fired.
func (gc *GameController) schedule(d time.Duration, fn func()) {
	gc.timerMu.Lock()
	gc.timerGen++
	gen := gc.timerGen
	if gc.timer != nil {
		gc.timer.Stop()
		gc.timer = nil
	}
	gc.timerMu.Unlock()

	fired := false
	timer := gc.scheduler.AfterFunc(d, func() {
		gc.timerMu.Lock()
		fired = true
		current := gen == gc.timerGen
		if current {
			gc.timer = nil
		}
		gc.timerMu.Unlock()

		if current {
			fn()
		}
	})

	gc.timerMu.Lock()
	if gen == gc.timerGen && !fired {
		gc.timer = timer
	}
	gc.timerMu.Unlock()
}

func (gc *GameController) stopTimers() {
	gc.timerMu.Lock()
	gc.timerGen++
	if gc.timer != nil {
		gc.timer.Stop()
		gc.timer = nil
	}
	gc.timerMu.Unlock()
}

func (gc *GameController) onStartDelayElapsed() {
	if gc.State() != StateIdle {
		return
	}
	gc.giveTurnTo(gc.game.HumanPlayer)
}

func (gc *GameController) onHumanRequestedShoot(c mb.Coordinates) {
	human := gc.game.HumanPlayer
	computer := gc.game.ComputerPlayer

	if gc.State() != StateWaitingForHuman || !human.CanPlay() {
		gc.logger.Debug("shot ignored; not the human's turn", "coordinates", c.Code(), "state", gc.State())
		return
	}
	if !c.InBounds(gc.game.GridSize()) {
		gc.logger.Debug("shot ignored; out of bounds", "x", c.X, "y", c.Y)
		return
	}

	gc.setState(StateResolvingHumanShot)
	human.SetCanPlay(false)

	result, ok := computer.TakeHit(c)
	if !ok {
		// repeated shot: the turn is not consumed
		gc.logger.Debug("shot ignored; cell already resolved", "coordinates", c.Code())
		gc.setState(StateWaitingForHuman)
		human.SetCanPlay(true)
		return
	}

	gc.resolveShot(result, human, computer)
}

func (gc *GameController) onComputerThinkElapsed() {
	gc.aiPending = false

	human := gc.game.HumanPlayer
	computer := gc.game.ComputerPlayer
	if gc.State() != StateWaitingForComputer || !computer.CanPlay() {
		return
	}

	c, err := gc.ai.ChooseCoordinate()
	if err != nil {
		gc.logger.Error("computer could not choose a target", "err", err)
		gc.endGame(nil, err)
		return
	}

	gc.setState(StateResolvingComputerShot)
	computer.SetCanPlay(false)

	result, ok := human.TakeHit(c)
	if !ok {
		gc.logger.Warn("computer shot was not accepted; choosing again", "coordinates", c.Code())
		gc.setState(StateWaitingForComputer)
		computer.SetCanPlay(true)
		gc.scheduleComputerShot()
		return
	}

	gc.ai.UpdateHitMapAtCoordinate(c, result.Hit, result.Sunk)
	gc.resolveShot(result, computer, human)
}

func (gc *GameController) resolveShot(result mb.ShotResult, shooter, target *mb.Player) {
	if gc.verbose {
		gc.logger.Info(shotMessage(result, shooter, target))
	}

	gc.view.ShotResolved(ShotEvent{
		Result:  result,
		Target:  target,
		Shooter: shooter,
	})

	gc.checkWinner()
}

// checkWinner ends the game when exactly one side is sunk.
func (gc *GameController) checkWinner() bool {
	humanSunk := gc.game.HumanPlayer.IsSunk()
	computerSunk := gc.game.ComputerPlayer.IsSunk()

	if !humanSunk && !computerSunk {
		return false
	}

	if humanSunk && computerSunk {
		err := cerr.ErrBothPlayersSunk(gc.game.Uuid())
		gc.logger.Error("invalid game state", "err", err)
		gc.endGame(nil, err)
		return true
	}

	gc.endGame(gc.game.Winner(), nil)
	return true
}

func (gc *GameController) endGame(winner *mb.Player, err error) {
	gc.stopTimers()
	gc.setState(StateGameOver)
	gc.game.FinishGame()

	for _, p := range gc.game.GetPlayers() {
		p.SetCanPlay(false)
		if p.SetActive(false) {
			gc.view.TurnChanged(TurnEvent{Player: p, IsActive: false})
		}
	}

	if winner != nil {
		gc.logger.Info(fmt.Sprintf("%s wins!", winner.Name()))
	}
	gc.view.GameEnded(GameOverEvent{Winner: winner, Err: err})
}

func (gc *GameController) onShotPresented(target *mb.Player) {
	switch gc.State() {
	case StateResolvingHumanShot:
		if target != gc.game.ComputerPlayer {
			return
		}
	case StateResolvingComputerShot:
		if target != gc.game.HumanPlayer {
			return
		}
	default:
		return
	}

	gc.giveTurnTo(target)
}

func (gc *GameController) giveTurnTo(player *mb.Player) {
	if gc.verbose {
		gc.logger.Info(fmt.Sprintf("%s's turn!", player.Name()))
	}

	if player.IsHuman() {
		gc.setState(StateWaitingForHuman)
	} else {
		gc.setState(StateWaitingForComputer)
	}

	opponent := gc.game.GetOpponent(player)
	opponent.SetCanPlay(false)
	if opponent.SetActive(false) {
		gc.view.TurnChanged(TurnEvent{Player: opponent, IsActive: false})
	}
	if player.SetActive(true) {
		gc.view.TurnChanged(TurnEvent{Player: player, IsActive: true})
	}
}

func (gc *GameController) onBoardReady(player *mb.Player) {
	if gc.State() == StateGameOver || !player.IsActive() {
		return
	}

	player.SetCanPlay(true)
	if player.IsComputer() && gc.State() == StateWaitingForComputer {
		gc.scheduleComputerShot()
	}
}

func (gc *GameController) scheduleComputerShot() {
	if gc.aiPending {
		return
	}
	gc.aiPending = true
	gc.schedule(gc.thinkDelay, func() {
		gc.dispatch(gc.onComputerThinkElapsed)
	})
}

func shotMessage(result mb.ShotResult, shooter, target *mb.Player) string {
	if !result.Hit {
		return fmt.Sprintf("%s missed!", shooter.Name())
	}

	verb := "hit"
	if result.Sunk {
		verb = "sunk"
	}
	return fmt.Sprintf("%s %s %s's %s!", shooter.Name(), verb, target.Name(), result.Ship.Name())
}

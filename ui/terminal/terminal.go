package terminal

import (
	"context"

	"github.com/gdamore/tcell/v2"
	log "github.com/sirupsen/logrus"

	"github.com/wricardo/nc2048/game/engine"
	"github.com/wricardo/nc2048/game/render"
)

// Action is what a key press asks the game to do
type Action int

const (
	ActionNone Action = iota
	ActionMove
	ActionQuit
)

// App draws one game on a tcell screen and feeds it keyboard input
type App struct {
	screen tcell.Screen
	engine *engine.GameEngine
	debug  string
}

// NewApp creates an App. The screen must already be initialised.
func NewApp(screen tcell.Screen, eng *engine.GameEngine) *App {
	return &App{screen: screen, engine: eng}
}

// KeyAction maps a key event to an action. Arrows, WASD and hjkl move;
// q, Esc and Ctrl-C quit.
func KeyAction(ev *tcell.EventKey) (Action, engine.Direction) {
	switch ev.Key() {
	case tcell.KeyUp:
		return ActionMove, engine.Up
	case tcell.KeyDown:
		return ActionMove, engine.Down
	case tcell.KeyLeft:
		return ActionMove, engine.Left
	case tcell.KeyRight:
		return ActionMove, engine.Right
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return ActionQuit, ""
	case tcell.KeyRune:
	default:
		return ActionNone, ""
	}

	switch ev.Rune() {
	case 'q', 'Q':
		return ActionQuit, ""
	case 'w', 'W', 'k':
		return ActionMove, engine.Up
	case 's', 'S', 'j':
		return ActionMove, engine.Down
	case 'a', 'A', 'h':
		return ActionMove, engine.Left
	case 'd', 'D', 'l':
		return ActionMove, engine.Right
	}
	return ActionNone, ""
}

// HandleKey applies one key press and reports whether the app should exit.
// While a popup is up any key other than quit starts a new game.
func (a *App) HandleKey(ev *tcell.EventKey) bool {
	action, direction := KeyAction(ev)
	if action == ActionQuit {
		return true
	}

	if a.engine.IsGameOver() {
		a.engine.NewGame()
		a.debug = ""
		return false
	}

	if action != ActionMove {
		return false
	}

	a.debug = render.KeyDebug(direction)
	outcome := a.engine.ApplyMove(direction)
	log.WithFields(log.Fields{
		"dir":    direction,
		"moved":  outcome.MoveCount,
		"score":  a.engine.GetScore(),
		"status": outcome.Status,
	}).Debug("move")

	if line := render.ResultDebug(outcome.Status); line != "" {
		a.debug = line
	}
	return false
}

// Run draws the game and processes events until the player quits or ctx is
// cancelled. The caller still owns the screen and must call Fini.
func (a *App) Run(ctx context.Context) error {
	watchCtx, stop := context.WithCancel(ctx)
	defer stop()
	go func() {
		<-watchCtx.Done()
		if ctx.Err() != nil {
			_ = a.screen.PostEvent(tcell.NewEventInterrupt(nil))
		}
	}()

	a.Draw()
	for {
		ev := a.screen.PollEvent()
		if ev == nil {
			return nil
		}

		switch ev := ev.(type) {
		case *tcell.EventResize:
			a.screen.Sync()
		case *tcell.EventKey:
			if a.HandleKey(ev) {
				return nil
			}
		case *tcell.EventInterrupt:
			if ctx.Err() != nil {
				return ctx.Err()
			}
		}
		a.Draw()
	}
}

// Draw repaints the whole screen from the engine state
func (a *App) Draw() {
	draw(a.screen, a.engine.GetState(), a.debug)
}

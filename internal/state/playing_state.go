// internal/state/playing_state.go
package state

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog"

	"go-ufo-defense/internal/app"
)

// Убеждаемся, что PlayingState соответствует интерфейсу State
var _ State = (*PlayingState)(nil)

// PlayingState runs the scheduler once per frame and turns input into
// game commands.
type PlayingState struct {
	stateMachine *StateMachine
	game         *app.Game
	input        Input
	drawer       Drawer
	logger       zerolog.Logger
}

// NewPlayingState wires a game to input. drawer may be nil when the game is
// shown elsewhere, e.g. in a terminal.
func NewPlayingState(sm *StateMachine, game *app.Game, input Input, drawer Drawer, logger zerolog.Logger) *PlayingState {
	return &PlayingState{
		stateMachine: sm,
		game:         game,
		input:        input,
		drawer:       drawer,
		logger:       logger,
	}
}

func (s *PlayingState) Name() string { return "playing" }

func (s *PlayingState) Enter() {}

func (s *PlayingState) Exit() {}

func (s *PlayingState) Game() *app.Game { return s.game }

func (s *PlayingState) Update() {
	if s.input.JustPressed(ActionPause) {
		s.stateMachine.SetState(NewPauseState(s.stateMachine, s))
		return
	}
	if s.input.JustPressed(ActionRestart) {
		s.restart()
	}
	if s.input.JustPressed(ActionVolley) {
		s.game.Volley()
	}
	if s.input.JustPressed(ActionView) {
		s.game.ToggleView()
	}
	for _, m := range []struct {
		action Action
		dir    app.Direction
	}{
		{ActionUp, app.Up},
		{ActionDown, app.Down},
		{ActionLeft, app.Left},
		{ActionRight, app.Right},
	} {
		if s.input.JustPressed(m.action) {
			s.game.MoveTarget(m.dir)
		}
	}

	s.game.Scheduler.Frame()

	if s.game.Over() != nil {
		s.stateMachine.SetState(NewGameOverState(s.stateMachine, s))
	}
}

func (s *PlayingState) restart() {
	if err := s.game.Reset(); err != nil {
		s.logger.Error().Err(err).Msg("Failed to restart game")
	}
}

func (s *PlayingState) Draw(screen *ebiten.Image) {
	if s.drawer == nil {
		return
	}
	s.drawer.Draw(screen)
	s.drawer.DrawText(screen, s.HUD())
}

// HUD returns the status lines followed by the key help.
func (s *PlayingState) HUD() []string {
	return append(s.game.Status().Lines(), HelpLine)
}

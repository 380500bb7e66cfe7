// internal/state/pause_state.go
package state

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"

	"go-ufo-defense/internal/config"
)

// Убеждаемся, что PauseState соответствует интерфейсу State
var _ State = (*PauseState)(nil)

// PauseState freezes the scheduler clock so paused time never reaches
// tasks or shot timeouts.
type PauseState struct {
	stateMachine *StateMachine
	playing      *PlayingState
}

func NewPauseState(sm *StateMachine, playing *PlayingState) *PauseState {
	return &PauseState{stateMachine: sm, playing: playing}
}

func (s *PauseState) Name() string { return "paused" }

func (s *PauseState) Enter() {
	s.playing.game.Scheduler.Pause()
}

func (s *PauseState) Exit() {
	s.playing.game.Scheduler.Resume()
}

func (s *PauseState) Update() {
	if s.playing.input.JustPressed(ActionPause) {
		s.stateMachine.SetState(s.playing)
	}
}

func (s *PauseState) Draw(screen *ebiten.Image) {
	s.playing.Draw(screen)
	if d := s.playing.drawer; d != nil {
		lines, bg := s.Overlay()
		d.DrawPanel(screen, bg, lines)
	}
}

func (s *PauseState) Overlay() ([]string, color.RGBA) {
	return []string{"PAUSED", "Press P to continue"}, config.PausedColor
}

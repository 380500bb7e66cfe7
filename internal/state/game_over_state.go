// internal/state/game_over_state.go
package state

import (
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"go-ufo-defense/internal/config"
)

// Убеждаемся, что GameOverState соответствует интерфейсу State
var _ State = (*GameOverState)(nil)

// GameOverState shows the result until the player restarts.
type GameOverState struct {
	stateMachine *StateMachine
	playing      *PlayingState
}

func NewGameOverState(sm *StateMachine, playing *PlayingState) *GameOverState {
	return &GameOverState{stateMachine: sm, playing: playing}
}

func (s *GameOverState) Name() string { return "game-over" }

func (s *GameOverState) Enter() {}

func (s *GameOverState) Exit() {}

func (s *GameOverState) Update() {
	if s.playing.input.JustPressed(ActionRestart) {
		s.playing.restart()
		s.stateMachine.SetState(s.playing)
	}
}

func (s *GameOverState) Draw(screen *ebiten.Image) {
	s.playing.Draw(screen)
	if d := s.playing.drawer; d != nil {
		lines, bg := s.Overlay()
		d.DrawPanel(screen, bg, lines)
	}
}

func (s *GameOverState) Overlay() ([]string, color.RGBA) {
	lines := []string{"GAME OVER"}
	if info := s.playing.game.Over(); info != nil {
		lines = append(lines,
			fmt.Sprintf("Shield hits: %d", info.Hits),
			fmt.Sprintf("Defence time: %s", info.DefenceTime.Round(time.Millisecond)),
		)
	}
	return append(lines, "Press R to restart"), config.GameOverColor
}

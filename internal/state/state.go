// internal/state/state.go
package state

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog"
)

// State — интерфейс для всех состояний
type State interface {
	Name() string
	Enter()
	Update()
	Draw(screen *ebiten.Image)
	Exit()
}

// Overlay is implemented by states that show a centred panel over the game.
type Overlay interface {
	Overlay() (lines []string, bg color.RGBA)
}

// Drawer paints the game into an ebiten window.
type Drawer interface {
	Draw(screen *ebiten.Image)
	DrawText(screen *ebiten.Image, lines []string)
	DrawPanel(screen *ebiten.Image, bg color.RGBA, lines []string)
}

// StateMachine — структура для управления состояниями
type StateMachine struct {
	current State
	logger  zerolog.Logger
}

// NewStateMachine создаёт новую машину состояний без начального состояния
func NewStateMachine(logger zerolog.Logger) *StateMachine {
	return &StateMachine{logger: logger}
}

// SetState устанавливает новое состояние
func (sm *StateMachine) SetState(newState State) {
	from := "none"
	if sm.current != nil {
		from = sm.current.Name()
		sm.current.Exit() // Выход из текущего состояния, если оно есть
	}
	sm.current = newState
	if sm.current != nil {
		sm.logger.Debug().Str("from", from).Str("to", sm.current.Name()).Msg("State changed")
		sm.current.Enter() // Вход в новое состояние, только если оно не nil
	}
}

// Current возвращает активное состояние
func (sm *StateMachine) Current() State {
	return sm.current
}

// Update обновляет текущее состояние
func (sm *StateMachine) Update() {
	if sm.current != nil {
		sm.current.Update()
	}
}

// Draw отрисовывает текущее состояние
func (sm *StateMachine) Draw(screen *ebiten.Image) {
	if sm.current != nil {
		sm.current.Draw(screen)
	}
}

// CurrentOverlay returns the panel of the active state, if it has one.
func (sm *StateMachine) CurrentOverlay() ([]string, color.RGBA, bool) {
	o, ok := sm.current.(Overlay)
	if !ok {
		return nil, color.RGBA{}, false
	}
	lines, bg := o.Overlay()
	return lines, bg, true
}

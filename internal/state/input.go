package state

import (
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Action is a player command, independent of the key that produced it.
type Action int

const (
	ActionVolley Action = iota
	ActionUp
	ActionDown
	ActionLeft
	ActionRight
	ActionPause
	ActionRestart
	ActionView
	ActionQuit
)

// HelpLine lists the default key bindings.
const HelpLine = "SPACE volley   WASD/arrows move   V view   P pause   R restart   Q quit"

// Input reports the actions triggered since the previous frame.
type Input interface {
	JustPressed(a Action) bool
}

// DefaultKeys maps actions to ebiten keys.
var DefaultKeys = map[Action][]ebiten.Key{
	ActionVolley:  {ebiten.KeySpace},
	ActionUp:      {ebiten.KeyW, ebiten.KeyArrowUp},
	ActionDown:    {ebiten.KeyS, ebiten.KeyArrowDown},
	ActionLeft:    {ebiten.KeyA, ebiten.KeyArrowLeft},
	ActionRight:   {ebiten.KeyD, ebiten.KeyArrowRight},
	ActionPause:   {ebiten.KeyP, ebiten.KeyEscape},
	ActionRestart: {ebiten.KeyR, ebiten.KeyEnter},
	ActionView:    {ebiten.KeyV},
	ActionQuit:    {ebiten.KeyQ},
}

// KeyboardInput reads the ebiten keyboard.
type KeyboardInput struct {
	Keys map[Action][]ebiten.Key
}

func NewKeyboardInput() *KeyboardInput {
	return &KeyboardInput{Keys: DefaultKeys}
}

func (k *KeyboardInput) JustPressed(a Action) bool {
	for _, key := range k.Keys[a] {
		if inpututil.IsKeyJustPressed(key) {
			return true
		}
	}
	return false
}

// ActionQueue collects actions pushed from another goroutine, such as a
// terminal event loop. Reading an action consumes it; Flush drops the rest
// at the end of a frame.
type ActionQueue struct {
	mu      sync.Mutex
	pending map[Action]bool
}

func NewActionQueue() *ActionQueue {
	return &ActionQueue{pending: make(map[Action]bool)}
}

func (q *ActionQueue) Push(a Action) {
	q.mu.Lock()
	q.pending[a] = true
	q.mu.Unlock()
}

func (q *ActionQueue) JustPressed(a Action) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	if !q.pending[a] {
		return false
	}
	delete(q.pending, a)
	return true
}

func (q *ActionQueue) Flush() {
	q.mu.Lock()
	clear(q.pending)
	q.mu.Unlock()
}

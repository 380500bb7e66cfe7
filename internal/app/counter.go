// internal/app/counter.go
package app

import (
	"time"

	"go-ufo-defense/internal/collision"
	"go-ufo-defense/internal/event"
	"go-ufo-defense/internal/scheduler"
	"go-ufo-defense/pkg/scene"
)

// GameOverInfo is the payload of the GameOver event.
type GameOverInfo struct {
	Hits        int
	DefenceTime time.Duration
}

// ShotCounter считает попадания по защищаемой цели и объявляет конец игры.
type ShotCounter struct {
	Target    *scene.Node
	Count     int
	Limit     int
	StartTime time.Time

	clock  *scheduler.PausableClock
	events *event.Dispatcher
	over   bool
}

func NewShotCounter(target *scene.Node, limit int, clock *scheduler.PausableClock, events *event.Dispatcher) *ShotCounter {
	return &ShotCounter{
		Target:    target,
		Limit:     limit,
		StartTime: clock.Now(),
		clock:     clock,
		events:    events,
	}
}

// Start restarts the defence timer; called when a volley begins.
func (c *ShotCounter) Start() {
	c.StartTime = c.clock.Now()
}

// Elapsed is the game time since Start.
func (c *ShotCounter) Elapsed() time.Duration {
	return c.clock.Now().Sub(c.StartTime)
}

// OnCollision is the collision callback handed to every volley shot. Hits
// on anything but the target are ignored.
func (c *ShotCounter) OnCollision(hit collision.Hit) {
	if hit.Object != c.Target || c.over {
		return
	}
	c.Count++
	c.events.Dispatch(event.Event{Type: event.TargetHit, Data: c.Count})

	if c.Count >= c.Limit {
		c.over = true
		c.events.Dispatch(event.Event{Type: event.GameOver, Data: GameOverInfo{
			Hits:        c.Count,
			DefenceTime: c.Elapsed(),
		}})
	}
}

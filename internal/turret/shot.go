package turret

import (
	"time"

	"go-ufo-defense/internal/collision"
	"go-ufo-defense/internal/event"
	"go-ufo-defense/internal/scheduler"
	"go-ufo-defense/pkg/scene"
	"go-ufo-defense/pkg/vecmath"
)

// ShotID is unique within one turret.
type ShotID uint64

// Phase is a shot's position in its lifecycle.
type Phase int

const (
	Queued Phase = iota
	Aiming
	InBarrel
	Free
	Terminated
)

var phaseNames = [...]string{"queued", "aiming", "in-barrel", "free", "terminated"}

func (p Phase) String() string {
	if p < 0 || int(p) >= len(phaseNames) {
		return "unknown"
	}
	return phaseNames[p]
}

// Outcome records why a shot terminated.
type Outcome int

const (
	Pending Outcome = iota
	Hit
	Expired
	Cancelled
)

// Shot is one projectile from queueing to termination.
type Shot struct {
	id          ShotID
	turret      *Controller
	task        scheduler.TaskID
	target      *scene.Node
	projectile  *scene.Node
	speed       float64
	elapsed     time.Duration
	phase       Phase
	outcome     Outcome
	direction   vecmath.Vec3
	onCollision func(collision.Hit)
}

func (s *Shot) ID() ShotID { return s.id }
func (s *Shot) Phase() Phase { return s.phase }
func (s *Shot) Outcome() Outcome { return s.outcome }
func (s *Shot) Elapsed() time.Duration { return s.elapsed }
func (s *Shot) Projectile() *scene.Node { return s.projectile }
func (s *Shot) Target() *scene.Node { return s.target }
func (s *Shot) Direction() vecmath.Vec3 { return s.direction }
func (s *Shot) Turret() *Controller { return s.turret }

func millis(dt time.Duration) float64 {
	return float64(dt) / float64(time.Millisecond)
}

// step is the shot's scheduler task. Time spent waiting in the queue does
// not count toward the timeout.
func (s *Shot) step(dt time.Duration) scheduler.Result {
	c := s.turret
	if dt < 0 {
		dt = 0
	}

	switch s.phase {
	case Queued, Aiming:
		if !c.isHead(s.id) {
			return scheduler.Continue
		}
		if s.phase == Queued {
			s.phase = Aiming
			c.logger.Debug().Uint64("shot", uint64(s.id)).Msg("Aiming")
		}
		if _, ok := c.aim(s.target.WorldPosition(), dt); ok {
			s.load()
		}

	case InBarrel:
		s.projectile.Position.Z += s.speed * millis(dt)
		if s.projectile.Position.Z > c.params.BarrelExit {
			s.release()
		}

	case Free:
		travel := s.speed * millis(dt)
		if hit, ok := collision.Swept(s.projectile.WorldPosition(), s.direction, travel, []*scene.Node{c.world}); ok {
			s.terminate(Hit, hit)
			if s.onCollision != nil {
				s.onCollision(hit)
			}
			return scheduler.Stop
		}
		s.projectile.Position = s.projectile.Position.Add(s.direction.Scale(travel))

	case Terminated:
		return scheduler.Stop
	}

	s.elapsed += dt
	if s.elapsed > c.params.ShotTimeout {
		s.terminate(Expired, collision.Hit{})
		return scheduler.Stop
	}
	return scheduler.Continue
}

// load seats the projectile at the barrel origin and fixes the direction
// it will fly in.
func (s *Shot) load() {
	c := s.turret
	s.projectile.Position = vecmath.Vec3{}
	s.projectile.Rotation = vecmath.Euler{}
	c.barrel.Add(s.projectile)
	s.direction = c.MuzzleDirection()
	s.phase = InBarrel
	c.logger.Debug().
		Uint64("shot", uint64(s.id)).
		Float64("yaw", c.base.Rotation.Y).
		Float64("pitch", c.pitch.Rotation.X).
		Dur("elapsed", s.elapsed).
		Msg("On target, loading")
}

// release hands the projectile from the barrel to the world and lets the
// next queued shot start aiming.
func (s *Shot) release() {
	c := s.turret
	c.dequeue(s.id)
	c.world.Attach(s.projectile)
	s.phase = Free
	c.logger.Debug().Uint64("shot", uint64(s.id)).Msg("Left the barrel")
}

func (s *Shot) terminate(outcome Outcome, hit collision.Hit) {
	c := s.turret
	s.projectile.RemoveFromParent()
	// A shot that dies before leaving the barrel must not block the rest
	// of the queue.
	c.dequeue(s.id)
	s.phase = Terminated
	s.outcome = outcome

	switch outcome {
	case Hit:
		c.metrics.add(c.metrics.hit)
		c.events.Dispatch(event.Event{Type: event.ShotHit, Data: c.report(s, hit)})
		c.logger.Debug().
			Uint64("shot", uint64(s.id)).
			Str("object", hit.Object.Name).
			Float64("distance", hit.Distance).
			Msg("Hit")
	case Expired:
		c.metrics.add(c.metrics.expired)
		c.events.Dispatch(event.Event{Type: event.ShotExpired, Data: c.report(s, hit)})
		c.logger.Debug().Uint64("shot", uint64(s.id)).Dur("elapsed", s.elapsed).Msg("Shot timed out")
	case Cancelled:
		c.logger.Debug().Uint64("shot", uint64(s.id)).Dur("elapsed", s.elapsed).Msg("Shot cancelled")
	}
}

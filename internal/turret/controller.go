// Package turret aims a two-axis gun at a target and flies the projectiles
// it fires.
//
// A Controller owns a small transform hierarchy:
//
//	base (yaw about Y) -> pitch (pitch about X) -> barrel at (0, -L, 0)
//
// Projectiles ride the barrel's local +Z axis until they clear the barrel
// and are then re-parented to the world root, keeping their world
// transform. Every shot is driven by its own scheduler task, and a FIFO
// queue guarantees that only the head shot aims or occupies the barrel.
package turret

import (
	"image/color"
	"math"
	"time"

	"github.com/rs/zerolog"

	"go-ufo-defense/internal/collision"
	"go-ufo-defense/internal/event"
	"go-ufo-defense/internal/scheduler"
	"go-ufo-defense/internal/utils"
	"go-ufo-defense/pkg/scene"
	"go-ufo-defense/pkg/vecmath"
)

var (
	BaseColor       = color.RGBA{0xAA, 0x00, 0x00, 0xFF}
	PoleColor       = color.RGBA{0xCC, 0xCC, 0xCC, 0xFF}
	BarrelColor     = color.RGBA{0x55, 0x55, 0x60, 0xFF}
	ProjectileColor = color.RGBA{0xFF, 0x00, 0x00, 0xFF}
)

// Registrar accepts and cancels per-frame tasks. *scheduler.Scheduler
// satisfies it.
type Registrar interface {
	Register(fn scheduler.TaskFunc) scheduler.TaskID
	Cancel(id scheduler.TaskID) bool
}

// Orientation is the turret's current aim, in radians.
type Orientation struct {
	Yaw   float64
	Pitch float64
}

// Report is the payload of shot events.
type Report struct {
	Turret  string
	Shot    ShotID
	Elapsed time.Duration
	Hit     collision.Hit
}

// Option configures a Controller.
type Option func(*Controller)

// WithName labels the turret in logs, metrics and node names.
func WithName(name string) Option {
	return func(c *Controller) { c.name = name }
}

// WithLogger sets the logger for shot lifecycle messages.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

// WithDispatcher publishes ShotFired, ShotHit and ShotExpired events.
func WithDispatcher(d *event.Dispatcher) Option {
	return func(c *Controller) { c.events = d }
}

// Controller aims and fires one turret.
type Controller struct {
	name   string
	params Params

	tasks Registrar
	world *scene.Node
	model *scene.Node
	opts  []Option

	base   *scene.Node
	pitch  *scene.Node
	barrel *scene.Node

	queue  []ShotID
	nextID ShotID

	logger  zerolog.Logger
	events  *event.Dispatcher
	metrics instruments
}

// New builds a turret. world is the root that released projectiles are
// attached to and that collision queries run against; it is expected to
// carry no transform of its own. model is the barrel prototype and is
// cloned, never mutated; nil selects DefaultBarrelModel.
func New(tasks Registrar, world, model *scene.Node, params Params, opts ...Option) *Controller {
	c := &Controller{
		name:   "turret",
		params: params,
		tasks:  tasks,
		world:  world,
		model:  model,
		opts:   opts,
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With().Str("turret", c.name).Logger()
	c.metrics = newInstruments(c.name, c.logger)
	c.build()
	return c
}

// DefaultBarrelModel is a plain box barrel pointing down +Z.
func DefaultBarrelModel() *scene.Node {
	barrel := scene.NewGroup("barrel")
	tube := scene.NewNode("barrel.tube")
	tube.Shape = scene.Box{Size: vecmath.V3(3, 3, 24)}
	tube.Position = vecmath.V3(0, 0, 12)
	tube.Color = BarrelColor
	barrel.Add(tube)
	return barrel
}

func (c *Controller) build() {
	p := c.params

	c.base = scene.NewGroup(c.name)

	ball := scene.NewNode(c.name + ".base")
	ball.Shape = scene.Sphere{Radius: p.BaseRadius}
	ball.Color = BaseColor

	c.pitch = scene.NewGroup(c.name + ".pitch")

	if c.model != nil {
		c.barrel = c.model.Clone()
	} else {
		c.barrel = DefaultBarrelModel()
	}
	c.barrel.Position = vecmath.V3(0, -p.BarrelLength, 0)
	c.barrel.Rotation = vecmath.Euler{}

	pole := scene.NewNode(c.name + ".pole")
	pole.Shape = scene.Box{Size: vecmath.V3(p.PoleWidth, p.BarrelLength, p.PoleWidth)}
	pole.Position = vecmath.V3(0, -p.BarrelLength/2, 0)
	pole.Color = PoleColor

	c.pitch.Add(c.barrel, pole)
	c.base.Add(ball, c.pitch)
}

// Clone returns a turret with the same geometry, model and options but its
// own nodes, an empty queue and home orientation. opts are applied after
// the original's.
func (c *Controller) Clone(opts ...Option) *Controller {
	all := append(c.opts[:len(c.opts):len(c.opts)], opts...)
	return New(c.tasks, c.world, c.model, c.params, all...)
}

// Node is the turret's root node; add it under a mount to place it.
func (c *Controller) Node() *scene.Node { return c.base }

func (c *Controller) Name() string { return c.name }

func (c *Controller) Params() Params { return c.params }

func (c *Controller) Orientation() Orientation {
	return Orientation{Yaw: c.base.Rotation.Y, Pitch: c.pitch.Rotation.X}
}

// MuzzleTransform is the barrel's world transform. Its +Z axis is the
// firing direction.
func (c *Controller) MuzzleTransform() vecmath.Transform {
	return c.barrel.WorldTransform()
}

// MuzzleDirection is the unit firing direction in world space.
func (c *Controller) MuzzleDirection() vecmath.Vec3 {
	return c.barrel.WorldDirection()
}

// QueueLen is the number of shots that have not yet left the barrel.
func (c *Controller) QueueLen() int { return len(c.queue) }

// Queue returns the queued shot IDs, head first.
func (c *Controller) Queue() []ShotID {
	out := make([]ShotID, len(c.queue))
	copy(out, c.queue)
	return out
}

// Shoot queues a shot at target travelling speedPerMs units per
// millisecond once it leaves the barrel. onCollision, if not nil, is called
// once when the projectile hits something. A nil target fires nothing.
func (c *Controller) Shoot(target *scene.Node, speedPerMs float64, onCollision func(collision.Hit)) *Shot {
	if target == nil {
		c.logger.Warn().Msg("Shoot without a target ignored")
		return nil
	}

	c.nextID++
	projectile := scene.NewNode(c.name + ".projectile")
	projectile.Shape = scene.Sphere{Radius: c.params.ProjectileRadius}
	projectile.Color = ProjectileColor
	projectile.Collidable = false

	s := &Shot{
		id:          c.nextID,
		turret:      c,
		target:      target,
		projectile:  projectile,
		speed:       speedPerMs,
		onCollision: onCollision,
	}
	c.queue = append(c.queue, s.id)
	s.task = c.tasks.Register(s.step)

	c.metrics.add(c.metrics.fired)
	c.events.Dispatch(event.Event{Type: event.ShotFired, Data: c.report(s, collision.Hit{})})
	c.logger.Debug().Uint64("shot", uint64(s.id)).Int("queued", len(c.queue)).Msg("Shot queued")
	return s
}

// Cancel terminates s and retires its task. A cancelled shot leaves the
// queue and its projectile is detached, so later shots keep firing. It
// reports false for a nil, foreign or already terminated shot.
func (c *Controller) Cancel(s *Shot) bool {
	if s == nil || s.turret != c || s.phase == Terminated {
		return false
	}
	s.terminate(Cancelled, collision.Hit{})
	c.tasks.Cancel(s.task)
	return true
}

func (c *Controller) isHead(id ShotID) bool {
	return len(c.queue) > 0 && c.queue[0] == id
}

// dequeue drops id from the queue. Only a cancelled shot can leave from
// behind the head.
func (c *Controller) dequeue(id ShotID) {
	for i, q := range c.queue {
		if q == id {
			c.queue = append(c.queue[:i:i], c.queue[i+1:]...)
			return
		}
	}
}

func (c *Controller) report(s *Shot, hit collision.Hit) Report {
	return Report{Turret: c.name, Shot: s.id, Elapsed: s.elapsed, Hit: hit}
}

// solve returns the orientation whose muzzle line passes through target.
// The barrel hangs BarrelLength below the pivot, so the line is tangent to
// a circle of that radius and the pitch is offset by acos(L/d3).
func (c *Controller) solve(target vecmath.Vec3) Orientation {
	cur := c.Orientation()

	// Mount frame, so a translated or rotated mount is handled.
	if mount := c.base.Parent(); mount != nil {
		target = mount.WorldTransform().Inverse().Point(target)
	}
	diff := c.base.Position.Sub(target)
	d2 := math.Hypot(diff.X, diff.Z)
	d3 := math.Hypot(d2, diff.Y)

	want := cur
	if d3 > 1e-9 {
		ratio := vecmath.Clamp(c.params.BarrelLength/d3, -1, 1)
		want.Pitch = math.Acos(ratio) + math.Atan2(diff.Y, d2) - math.Pi/2
	}
	if d2 > 1e-9 {
		want.Yaw = math.Atan2(-diff.X, -diff.Z)
	}
	return want
}

// aimError is the remaining error per axis; yaw takes the short way round.
func (c *Controller) aimError(want Orientation) Orientation {
	cur := c.Orientation()
	return Orientation{
		Yaw:   utils.NormalizeAngle(want.Yaw - cur.Yaw),
		Pitch: want.Pitch - cur.Pitch,
	}
}

// aim turns both axes toward target by at most AngularSpeed*dt and reports
// the error left afterwards and whether it is inside the deadband.
func (c *Controller) aim(target vecmath.Vec3, dt time.Duration) (Orientation, bool) {
	want := c.solve(target)
	maxStep := c.params.AngularSpeed * dt.Seconds()
	band := c.params.Deadband

	e := c.aimError(want)
	if math.Abs(e.Pitch) >= band {
		c.pitch.Rotation.X += utils.StepToward(e.Pitch, maxStep)
	}
	if math.Abs(e.Yaw) >= band {
		c.base.Rotation.Y = utils.NormalizeAngle(c.base.Rotation.Y + utils.StepToward(e.Yaw, maxStep))
	}

	e = c.aimError(want)
	return e, math.Abs(e.Pitch) <= band && math.Abs(e.Yaw) <= band
}

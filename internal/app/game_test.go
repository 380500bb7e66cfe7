package app

import (
	"math"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-ufo-defense/internal/collision"
	"go-ufo-defense/internal/config"
	"go-ufo-defense/internal/defs"
	"go-ufo-defense/internal/event"
	"go-ufo-defense/internal/scheduler"
	"go-ufo-defense/internal/turret"
	"go-ufo-defense/pkg/scene"
	"go-ufo-defense/pkg/vecmath"
)

const frame = 16 * time.Millisecond

type countingBackend struct {
	frames int
	root   *scene.Node
}

func (b *countingBackend) Render(root *scene.Node, _ scene.Camera) {
	b.frames++
	b.root = root
}

type harness struct {
	game    *Game
	sched   *scheduler.Scheduler
	clock   *scheduler.ManualTime
	backend *countingBackend
}

func newHarness(t *testing.T, tweak func(*Options)) *harness {
	t.Helper()
	scenario, err := defs.LoadScenario("")
	require.NoError(t, err)

	params := turret.DefaultParams()
	params.AngularSpeed = math.Pi
	opts := Options{
		Scenario:     scenario,
		Turret:       params,
		ShotCount:    5,
		ShotSpeed:    0.3,
		GameOverHits: 20,
		Seed:         7,
		Logger:       zerolog.Nop(),
	}
	if tweak != nil {
		tweak(&opts)
	}

	mt := scheduler.NewManualTime(time.Unix(0, 0))
	sched := scheduler.New(nil, scheduler.WithClock(scheduler.NewPausableClock(mt)))
	backend := &countingBackend{}
	g, err := NewGame(sched, backend, opts)
	require.NoError(t, err)
	return &harness{game: g, sched: sched, clock: mt, backend: backend}
}

func (h *harness) tick(n int) {
	for i := 0; i < n; i++ {
		h.clock.Advance(frame)
		h.sched.Tick(frame)
	}
}

func TestNewGame_BuildsWorld(t *testing.T) {
	h := newHarness(t, nil)
	g := h.game

	require.Len(t, g.UFOs, 2)
	assert.Equal(t, "ufo-left", g.UFOs[0].Turret.Name())
	assert.Equal(t, "ufo-right", g.UFOs[1].Turret.Name())
	assert.NotSame(t, g.UFOs[0].Turret, g.UFOs[1].Turret)
	assert.Equal(t, vecmath.V3(0, 200, -500), g.UFOs[1].Node.Position)
	assert.Equal(t, vecmath.V3(0, -10, 0), g.UFOs[0].Turret.Node().Position)

	require.NotNil(t, g.Shield)
	assert.Equal(t, "shield", g.Shield.Name)
	assert.Equal(t, scene.ViewSide, g.Camera.View)
	g.ToggleView()
	assert.Equal(t, scene.ViewFront, g.Camera.View)

	// spin + three patrol axes per UFO, plus the floor
	assert.Equal(t, 9, g.Scheduler.Len())

	h.tick(1)
	assert.Equal(t, 1, h.backend.frames)
	assert.Same(t, g.Root, h.backend.root)
}

func TestNewGame_Errors(t *testing.T) {
	sched := scheduler.New(nil)
	_, err := NewGame(sched, nil, Options{})
	assert.Error(t, err)

	scenario, err := defs.LoadScenario("")
	require.NoError(t, err)
	bad := turret.DefaultParams()
	bad.Deadband = 0
	_, err = NewGame(sched, nil, Options{Scenario: scenario, Turret: bad})
	assert.Error(t, err)

	_, err = NewGame(nil, nil, Options{Scenario: scenario, Turret: turret.DefaultParams()})
	assert.Error(t, err)
}

func TestMoveTarget_Clamps(t *testing.T) {
	g := newHarness(t, nil).game

	g.MoveTarget(Down)
	assert.Equal(t, 40.0, g.Hovercraft.Position.Y)

	for i := 0; i < 20; i++ {
		g.MoveTarget(Up)
	}
	assert.Equal(t, 160.0, g.Hovercraft.Position.Y)

	for i := 0; i < 20; i++ {
		g.MoveTarget(Left)
	}
	assert.Equal(t, -100.0, g.Hovercraft.Position.X)

	g.MoveTarget(Right)
	assert.Equal(t, -90.0, g.Hovercraft.Position.X)
	assert.Equal(t, vecmath.V3(-90, 160, 0), g.Status().Target)
}

func TestFloorScrollsAndWraps(t *testing.T) {
	h := newHarness(t, nil)
	f := h.game.Floor
	start := f.Position.Z

	h.tick(1)
	assert.Equal(t, start-8, f.Position.Z)

	// 0.5 units/ms wraps every 200 units, i.e. every 25 frames.
	h.tick(24)
	assert.Equal(t, start, f.Position.Z)
}

func TestUFOSpin(t *testing.T) {
	h := newHarness(t, nil)
	u := h.game.UFOs[0]

	for i := 0; i < 10; i++ {
		h.sched.Tick(100 * time.Millisecond)
	}
	assert.InDelta(t, math.Pi/3, u.Body.Rotation.Y, 1e-9)
	assert.Zero(t, u.Node.Rotation.Y, "only the body spins")
	assert.Equal(t, turret.Orientation{}, u.Turret.Orientation())
}

func TestUFOPatrolStaysInRange(t *testing.T) {
	h := newHarness(t, nil)
	p := h.game.opts.Scenario.UFO.Patrol

	moved := false
	for i := 0; i < 600; i++ {
		h.tick(1)
		for _, u := range h.game.UFOs {
			for axis := 0; axis < 3; axis++ {
				v := u.Node.Position.Component(axis)
				lo := p.Base.Component(axis) - p.Range.Component(axis)
				hi := p.Base.Component(axis) + p.Range.Component(axis)
				require.GreaterOrEqual(t, v, lo)
				require.LessOrEqual(t, v, hi)
			}
			if u.Node.Position != p.Base.Vec3 {
				moved = true
			}
		}
	}
	assert.True(t, moved)
}

func TestVolley_GameOverAndReset(t *testing.T) {
	h := newHarness(t, func(o *Options) {
		o.Scenario.UFO.Patrol.Speed = 0
		o.GameOverHits = 3
	})
	g := h.game

	var hits []int
	var over []GameOverInfo
	g.EventDispatcher.Subscribe(event.TargetHit, event.ListenerFunc(func(e event.Event) {
		hits = append(hits, e.Data.(int))
	}))
	g.EventDispatcher.Subscribe(event.GameOver, event.ListenerFunc(func(e event.Event) {
		over = append(over, e.Data.(GameOverInfo))
	}))

	g.Volley()
	assert.Equal(t, 1, g.Status().Volleys)
	for i := 0; i < 3000 && g.Over() == nil; i++ {
		h.tick(1)
	}

	require.NotNil(t, g.Over())
	assert.Equal(t, []int{1, 2, 3}, hits)
	require.Len(t, over, 1)
	assert.Equal(t, 3, over[0].Hits)
	assert.Positive(t, over[0].DefenceTime)
	assert.Zero(t, g.Scheduler.Len(), "everything stops on game over")

	st := g.Status()
	assert.NotNil(t, st.Over)
	assert.Equal(t, over[0].DefenceTime, st.DefenceTime)
	assert.GreaterOrEqual(t, st.Shots.Fired, 3)
	assert.GreaterOrEqual(t, st.Shots.Landed, 3, "every shield hit is a landed shot")

	g.Volley()
	assert.Zero(t, g.Scheduler.Len(), "no volley after game over")

	oldRoot := g.Root
	require.NoError(t, g.Reset())
	assert.Nil(t, g.Over())
	assert.Zero(t, g.Counter.Count)
	assert.Zero(t, g.Status().Shots)
	assert.Equal(t, 9, g.Scheduler.Len())
	assert.Empty(t, oldRoot.Children())
	assert.NotSame(t, oldRoot, g.Root)
}

func TestStatus_CountsShotEvents(t *testing.T) {
	h := newHarness(t, nil)
	g := h.game
	d := g.EventDispatcher

	d.Dispatch(event.Event{Type: event.ShotFired})
	d.Dispatch(event.Event{Type: event.ShotFired})
	d.Dispatch(event.Event{Type: event.ShotHit})
	d.Dispatch(event.Event{Type: event.ShotExpired, Data: turret.Report{Turret: "ufo1", Shot: 2}})

	assert.Equal(t, ShotStats{Fired: 2, Landed: 1, Expired: 1}, g.Status().Shots)
}

func TestCounter_IgnoresOtherObjects(t *testing.T) {
	h := newHarness(t, nil)
	c := h.game.Counter

	c.OnCollision(collisionWith(h.game.Floor))
	c.OnCollision(collisionWith(h.game.Hovercraft))
	assert.Zero(t, c.Count)

	c.OnCollision(collisionWith(h.game.Shield))
	assert.Equal(t, 1, c.Count)
}

func TestSetTurretParams_AppliesOnReset(t *testing.T) {
	h := newHarness(t, nil)
	g := h.game

	p := turret.DefaultParams()
	p.BarrelLength = 25
	require.NoError(t, g.SetTurretParams(p))
	assert.Equal(t, math.Pi, g.UFOs[0].Turret.Params().AngularSpeed, "live turrets keep their params")

	require.NoError(t, g.Reset())
	assert.Equal(t, 25.0, g.UFOs[0].Turret.Params().BarrelLength)
	assert.Equal(t, 25.0, g.UFOs[1].Turret.Params().BarrelLength)

	p.Deadband = -1
	assert.Error(t, g.SetTurretParams(p))
}

func collisionWith(n *scene.Node) collision.Hit {
	return collision.Hit{Distance: 1, Object: n}
}

func TestStatus_Lines(t *testing.T) {
	st := Status{
		Hits: 2, GameOverHits: 20, Volleys: 1, Tasks: 9,
		Target: vecmath.V3(10, 50, 0),
		Shots:  ShotStats{Fired: 7, Landed: 4, Expired: 1},
	}
	lines := st.Lines()
	require.Len(t, lines, 4)
	assert.Equal(t, "Shield hits: 2 / 20", lines[0])
	assert.Equal(t, "Volleys: 1   Tasks: 9   View: side", lines[1])
	assert.Equal(t, "Shots: 7 fired, 4 landed, 1 expired", lines[2])
	assert.Equal(t, "Hovercraft: x=10 y=50", lines[3])

	st.DefenceTime = 1500 * time.Millisecond
	assert.Equal(t, "Defence time: 1.5s", st.Lines()[4])
}

func TestNewFromConfig_AndApplyConfig(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)

	backend := &countingBackend{}
	g, err := NewFromConfig(cfg, backend, zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, 9, g.Scheduler.Len())
	assert.Equal(t, config.AngularSpeed, g.UFOs[0].Turret.Params().AngularSpeed)

	cfg.Turret.AngularSpeed = 1
	cfg.Game.ShotCount = 3
	cfg.Game.GameOverHits = 5
	g.ApplyConfig(cfg)
	assert.Equal(t, config.AngularSpeed, g.UFOs[0].Turret.Params().AngularSpeed, "turrets keep their params until reset")

	require.NoError(t, g.Reset())
	assert.Equal(t, 1.0, g.UFOs[0].Turret.Params().AngularSpeed)
	assert.Equal(t, 5, g.Counter.Limit)

	cfg.Turret.Deadband = -1
	g.ApplyConfig(cfg)
	assert.Equal(t, 3, g.opts.ShotCount, "invalid settings are rejected whole")
}

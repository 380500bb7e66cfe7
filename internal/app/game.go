// internal/app/game.go
package app

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"go-ufo-defense/internal/assets"
	"go-ufo-defense/internal/config"
	"go-ufo-defense/internal/defs"
	"go-ufo-defense/internal/event"
	"go-ufo-defense/internal/scheduler"
	"go-ufo-defense/internal/turret"
	"go-ufo-defense/internal/utils"
	"go-ufo-defense/pkg/scene"
	"go-ufo-defense/pkg/vecmath"
)

// Backend draws the scene. It is called after every frame in which at
// least one task ran.
type Backend interface {
	Render(root *scene.Node, camera scene.Camera)
}

// Options are the settings a Game is built from.
type Options struct {
	Scenario     *defs.Scenario
	Turret       turret.Params
	ShotCount    int
	ShotSpeed    float64 // единиц за мс
	GameOverHits int
	Seed         int64
	Logger       zerolog.Logger
}

// OptionsFromConfig fills Options from the runtime configuration.
func OptionsFromConfig(cfg *config.Config, scenario *defs.Scenario, logger zerolog.Logger) Options {
	return Options{
		Scenario:     scenario,
		Turret:       cfg.TurretParams(),
		ShotCount:    cfg.Game.ShotCount,
		ShotSpeed:    cfg.Game.ShotSpeed,
		GameOverHits: cfg.Game.GameOverHits,
		Seed:         cfg.Game.Seed,
		Logger:       logger,
	}
}

// Direction is a target movement request.
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

// Status is what the HUD shows.
type Status struct {
	Hits         int
	GameOverHits int
	Tasks        int
	Volleys      int
	Target       vecmath.Vec3
	Over         *GameOverInfo
	Paused       bool
	DefenceTime  time.Duration
	View         scene.View
	Shots        ShotStats
}

// ShotStats tallies turret shot events since the world was built.
type ShotStats struct {
	Fired   int
	Landed  int // попадания во что угодно
	Expired int
}

// Lines formats the status for a HUD.
func (s Status) Lines() []string {
	lines := []string{
		fmt.Sprintf("Shield hits: %d / %d", s.Hits, s.GameOverHits),
		fmt.Sprintf("Volleys: %d   Tasks: %d   View: %s", s.Volleys, s.Tasks, s.View),
		fmt.Sprintf("Shots: %d fired, %d landed, %d expired", s.Shots.Fired, s.Shots.Landed, s.Shots.Expired),
		fmt.Sprintf("Hovercraft: x=%.0f y=%.0f", s.Target.X, s.Target.Y),
	}
	if s.DefenceTime > 0 {
		lines = append(lines, fmt.Sprintf("Defence time: %s", s.DefenceTime.Round(time.Millisecond)))
	}
	return lines
}

// Game holds the world and everything that animates it.
type Game struct {
	Scheduler       *scheduler.Scheduler
	EventDispatcher *event.Dispatcher
	Models          *assets.ModelManager
	Rng             *utils.PRNGService

	Root       *scene.Node
	Camera     scene.Camera
	Floor      *scene.Node
	Hovercraft *scene.Node
	Shield     *scene.Node
	UFOs       []*UFO
	Counter    *ShotCounter

	opts    Options
	backend Backend
	logger  zerolog.Logger

	floorZ  float64
	volleys int
	shots   ShotStats
	over    *GameOverInfo
}

// NewGame builds the world from opts.Scenario and makes itself the
// scheduler's renderer. backend may be nil.
func NewGame(sched *scheduler.Scheduler, backend Backend, opts Options) (*Game, error) {
	if sched == nil {
		return nil, errors.New("game needs a scheduler")
	}
	if opts.Scenario == nil {
		return nil, errors.New("game needs a scenario")
	}
	if err := opts.Turret.Validate(); err != nil {
		return nil, fmt.Errorf("turret params: %w", err)
	}
	if opts.GameOverHits <= 0 {
		opts.GameOverHits = config.GameOverHits
	}

	g := &Game{
		Scheduler:       sched,
		EventDispatcher: event.NewDispatcher(),
		Models:          assets.NewModelManager(opts.Logger),
		Rng:             utils.NewPRNGService(opts.Seed),
		opts:            opts,
		backend:         backend,
		logger:          opts.Logger,
	}
	g.EventDispatcher.Subscribe(event.GameOver, event.ListenerFunc(g.onGameOver))
	g.EventDispatcher.Subscribe(event.TargetHit, event.ListenerFunc(g.onTargetHit))
	g.EventDispatcher.Subscribe(event.ShotFired, event.ListenerFunc(func(event.Event) { g.shots.Fired++ }))
	g.EventDispatcher.Subscribe(event.ShotHit, event.ListenerFunc(func(event.Event) { g.shots.Landed++ }))
	g.EventDispatcher.Subscribe(event.ShotExpired, event.ListenerFunc(g.onShotExpired))

	g.Models.LoadScenario(opts.Scenario)
	if err := g.build(); err != nil {
		return nil, err
	}
	sched.SetRenderer(g)
	return g, nil
}

// Render hands the scene to the backend.
func (g *Game) Render() {
	if g.backend != nil {
		g.backend.Render(g.Root, g.Camera)
	}
}

// SetBackend swaps the drawing backend.
func (g *Game) SetBackend(b Backend) {
	g.backend = b
}

func (g *Game) build() error {
	s := g.opts.Scenario
	g.Root = scene.NewGroup("world")

	floor, err := g.Models.Instance(assets.ModelFloor)
	if err != nil {
		return fmt.Errorf("build floor: %w", err)
	}
	hovercraft, err := g.Models.Instance(assets.ModelHovercraft)
	if err != nil {
		return fmt.Errorf("build hovercraft: %w", err)
	}
	g.Floor, g.Hovercraft = floor, hovercraft
	g.floorZ = floor.Position.Z
	g.Shield = findNode(hovercraft, s.Target.Shield.Name)
	if g.Shield == nil {
		return fmt.Errorf("hovercraft has no shield %q", s.Target.Shield.Name)
	}
	g.Root.Add(floor, hovercraft)

	body, ok := g.Models.GetModel(assets.ModelUFO)
	if !ok {
		return errors.New("ufo model not loaded")
	}
	barrel, _ := g.Models.GetModel(assets.ModelBarrel)

	g.UFOs = g.UFOs[:0]
	for i, m := range s.Mounts {
		var u *UFO
		if i == 0 {
			gun := turret.New(g.Scheduler, g.Root, barrel, g.opts.Turret,
				turret.WithName(m.Name),
				turret.WithLogger(g.logger),
				turret.WithDispatcher(g.EventDispatcher))
			u = newUFO(m.Name, body, gun, s.UFO.TurretOffset.Vec3)
		} else {
			u = g.UFOs[0].Clone(m.Name)
		}
		u.SetPos(m.Position.Vec3)
		g.Root.Add(u.Node)
		g.UFOs = append(g.UFOs, u)

		g.Scheduler.Register(u.spinTask(s.UFO.SpinDegPerSec))
		p := s.UFO.Patrol
		for axis := 0; axis < 3; axis++ {
			g.Scheduler.Register(u.patrolTask(axis, p.Base.Component(axis), p.Range.Component(axis), p.Speed, g.Rng))
		}
	}

	g.Scheduler.Register(g.scrollFloor)

	view, err := scene.ParseView(s.Camera.View)
	if err != nil {
		return err
	}
	g.Camera = scene.Camera{Position: s.Camera.Position.Vec3, Zoom: s.Camera.Zoom, View: view}
	g.Counter = NewShotCounter(g.Shield, g.opts.GameOverHits, g.Scheduler.Clock(), g.EventDispatcher)
	g.volleys = 0
	g.shots = ShotStats{}
	g.over = nil

	g.logger.Info().
		Str("scenario", s.Name).
		Int("ufos", len(g.UFOs)).
		Int("tasks", g.Scheduler.Len()).
		Msg("World built")
	return nil
}

// scrollFloor moves the floor toward the camera so the hovercraft appears
// to fly forward.
func (g *Game) scrollFloor(dt time.Duration) scheduler.Result {
	f := g.opts.Scenario.Floor
	g.Floor.Position.Z -= f.ScrollSpeed * millis(dt)
	if f.Wrap > 0 {
		for g.Floor.Position.Z <= g.floorZ-f.Wrap {
			g.Floor.Position.Z += f.Wrap
		}
	}
	return scheduler.Continue
}

// Volley makes every UFO fire ShotCount shots at the shield, one per UFO
// per frame. It does nothing once the game is over.
func (g *Game) Volley() {
	if g.over != nil || g.opts.ShotCount <= 0 {
		return
	}
	g.volleys++
	g.Counter.Start()
	speed := g.opts.ShotSpeed
	if speed <= 0 {
		speed = config.ShotSpeed
	}

	fired := 0
	g.Scheduler.Register(func(time.Duration) scheduler.Result {
		for _, u := range g.UFOs {
			u.Turret.Shoot(g.Shield, speed, g.Counter.OnCollision)
		}
		fired++
		if fired < g.opts.ShotCount {
			return scheduler.Continue
		}
		return scheduler.Stop
	})
	if g.opts.Scenario.Volley.Opening && len(g.UFOs) > 0 {
		g.UFOs[0].Turret.Shoot(g.Shield, speed, nil)
	}

	g.logger.Info().Int("volley", g.volleys).Int("shots", g.opts.ShotCount).Msg("Volley started")
}

// MoveTarget steps the hovercraft within the scenario bounds.
func (g *Game) MoveTarget(d Direction) {
	b := g.opts.Scenario.Target.Bounds
	p := &g.Hovercraft.Position
	switch d {
	case Up:
		p.Y = vecmath.Clamp(p.Y+b.Step, b.MinY, b.MaxY)
	case Down:
		p.Y = vecmath.Clamp(p.Y-b.Step, b.MinY, b.MaxY)
	case Left:
		p.X = vecmath.Clamp(p.X-b.Step, b.MinX, b.MaxX)
	case Right:
		p.X = vecmath.Clamp(p.X+b.Step, b.MinX, b.MaxX)
	}
}

// ToggleView switches the camera between the side and front views.
func (g *Game) ToggleView() {
	g.Camera = g.Camera.Toggle()
}

func (g *Game) onTargetHit(e event.Event) {
	hits, _ := e.Data.(int)
	g.logger.Info().Int("hits", hits).Int("limit", g.Counter.Limit).Msg("Shield hit")
}

func (g *Game) onShotExpired(e event.Event) {
	g.shots.Expired++
	if rep, ok := e.Data.(turret.Report); ok {
		g.logger.Debug().Str("turret", rep.Turret).Uint64("shot", uint64(rep.Shot)).Msg("Shot expired")
	}
}

func (g *Game) onGameOver(e event.Event) {
	info, _ := e.Data.(GameOverInfo)
	g.over = &info
	g.Scheduler.Clear()
	g.logger.Info().
		Int("hits", info.Hits).
		Dur("defence_time", info.DefenceTime).
		Msg("Game over")
}

// Over returns the result of the finished game, or nil while playing.
func (g *Game) Over() *GameOverInfo {
	return g.over
}

// Reset throws the world away and builds it again from the scenario.
func (g *Game) Reset() error {
	g.Scheduler.Clear()
	g.Root.RemoveAll()
	if err := g.build(); err != nil {
		return fmt.Errorf("rebuild world: %w", err)
	}
	return nil
}

// SetTurretParams applies to turrets built by the next Reset.
func (g *Game) SetTurretParams(p turret.Params) error {
	if err := p.Validate(); err != nil {
		return err
	}
	g.opts.Turret = p
	return nil
}

// Status summarises the game for the HUD.
func (g *Game) Status() Status {
	st := Status{
		Hits:         g.Counter.Count,
		GameOverHits: g.Counter.Limit,
		Tasks:        g.Scheduler.Len(),
		Volleys:      g.volleys,
		Target:       g.Hovercraft.Position,
		Over:         g.over,
		Paused:       g.Scheduler.Paused(),
		View:         g.Camera.View,
		Shots:        g.shots,
	}
	if g.over != nil {
		st.DefenceTime = g.over.DefenceTime
	} else if g.volleys > 0 {
		st.DefenceTime = g.Counter.Elapsed()
	}
	return st
}

func findNode(root *scene.Node, name string) *scene.Node {
	var found *scene.Node
	root.Traverse(func(n *scene.Node) bool {
		if found == nil && n.Name == name {
			found = n
		}
		return found == nil
	})
	return found
}

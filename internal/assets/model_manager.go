package assets

import (
	"fmt"
	"math"

	"github.com/rs/zerolog"

	"go-ufo-defense/internal/defs"
	"go-ufo-defense/pkg/scene"
	"go-ufo-defense/pkg/vecmath"
)

// Model IDs built from a scenario.
const (
	ModelUFO        = "ufo"
	ModelBarrel     = "barrel"
	ModelHovercraft = "hovercraft"
	ModelFloor      = "floor"
)

// ModelManager строит, кэширует и выдаёт прототипы моделей сцены.
// Прототипы никогда не добавляются в сцену: наружу уходят только копии.
type ModelManager struct {
	models map[string]*scene.Node
	logger zerolog.Logger
}

// NewModelManager создает новый экземпляр ModelManager.
func NewModelManager(logger zerolog.Logger) *ModelManager {
	return &ModelManager{
		models: make(map[string]*scene.Node),
		logger: logger,
	}
}

// LoadScenario строит прототипы всех моделей сценария.
func (m *ModelManager) LoadScenario(s *defs.Scenario) {
	m.models[ModelUFO] = buildUFO(s.UFO)
	m.models[ModelBarrel] = buildBarrel(s.Barrel)
	m.models[ModelHovercraft] = buildHovercraft(s.Target)
	m.models[ModelFloor] = buildFloor(s.Floor)
	m.logger.Debug().Str("scenario", s.Name).Int("models", len(m.models)).Msg("Models built")
}

// Cleanup забывает все прототипы.
func (m *ModelManager) Cleanup() {
	m.models = make(map[string]*scene.Node)
}

// Reload перестраивает прототипы, например после смены сценария.
func (m *ModelManager) Reload(s *defs.Scenario) {
	m.Cleanup()
	m.LoadScenario(s)
}

// GetModel возвращает прототип по ID. Его нельзя изменять.
func (m *ModelManager) GetModel(id string) (*scene.Node, bool) {
	model, ok := m.models[id]
	return model, ok
}

// Instance возвращает независимую копию модели.
func (m *ModelManager) Instance(id string) (*scene.Node, error) {
	model, ok := m.models[id]
	if !ok {
		return nil, fmt.Errorf("model %q is not loaded", id)
	}
	return model.Clone(), nil
}

func box(d defs.BoxDef, fallback string) *scene.Node {
	name := d.Name
	if name == "" {
		name = fallback
	}
	n := scene.NewNode(name)
	n.Shape = scene.Box{Size: d.Size.Vec3}
	n.Position = d.Position.Vec3
	n.Color = d.Color.RGBA
	return n
}

func buildBarrel(d defs.BoxDef) *scene.Node {
	root := scene.NewGroup(ModelBarrel)
	tube := box(d, "barrel.tube")
	root.Add(tube)
	return root
}

// buildFloor lays stripes across the floor every Wrap units so scrolling
// is visible. Stripes are decoration and never stop a projectile.
func buildFloor(d defs.FloorDef) *scene.Node {
	floor := box(d.BoxDef, ModelFloor)
	if d.Wrap <= 0 || d.Stripe.Size.LengthSq() == 0 {
		return floor
	}
	length := d.Size.Z
	for i, z := 0, -length/2; z <= length/2; i, z = i+1, z+d.Wrap {
		stripe := box(d.Stripe, "floor.stripe")
		stripe.Name = fmt.Sprintf("%s%d", stripe.Name, i)
		stripe.Position = d.Stripe.Position.Vec3.Add(vecmath.V3(0, 0, z))
		stripe.Collidable = false
		floor.Add(stripe)
	}
	return floor
}

// buildHovercraft returns the hull with its shield as a child; the shield
// keeps its scenario name so hits on it can be told apart.
func buildHovercraft(d defs.TargetDef) *scene.Node {
	hull := box(d.BoxDef, ModelHovercraft)
	hull.Add(box(d.Shield, "shield"))
	return hull
}

// buildUFO returns the saucer body with a ring of beacon lights. The body
// is what spins; turrets are mounted beside it, not inside it.
func buildUFO(d defs.UFODef) *scene.Node {
	body := scene.NewNode(ModelUFO)
	body.Shape = scene.Sphere{Radius: d.Radius}
	body.Color = d.Color.RGBA

	l := d.Lights
	for i := 0; i < l.Count; i++ {
		a := 2 * math.Pi * float64(i) / float64(l.Count)
		light := scene.NewNode(fmt.Sprintf("ufo.light%d", i))
		light.Shape = scene.Sphere{Radius: l.Radius}
		light.Color = l.Color.RGBA
		light.Collidable = false
		light.Position = vecmath.V3(math.Sin(a)*l.Ring, l.Y, math.Cos(a)*l.Ring)
		body.Add(light)
	}
	return body
}

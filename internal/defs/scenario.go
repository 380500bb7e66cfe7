// internal/defs/scenario.go
package defs

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"go-ufo-defense/pkg/scene"
	"go-ufo-defense/pkg/vecmath"
)

// Scenario describes the world the game builds on start and on every reset.
type Scenario struct {
	Name   string     `yaml:"name"`
	Camera CameraDef  `yaml:"camera"`
	Floor  FloorDef   `yaml:"floor"`
	Target TargetDef  `yaml:"target"`
	UFO    UFODef     `yaml:"ufo"`
	Mounts []MountDef `yaml:"mounts"`
	Barrel BoxDef     `yaml:"barrel"`
	Volley VolleyDef  `yaml:"volley"`
}

type CameraDef struct {
	Position Vec     `yaml:"position"`
	Zoom     float64 `yaml:"zoom"`
	// View is "side" or "front".
	View string `yaml:"view"`
}

// BoxDef is a coloured box placed relative to its parent.
type BoxDef struct {
	Name     string `yaml:"name"`
	Position Vec    `yaml:"position"`
	Size     Vec    `yaml:"size"`
	Color    Color  `yaml:"color"`
}

type FloorDef struct {
	BoxDef `yaml:",inline"`
	// ScrollSpeed is in units per millisecond along -Z.
	ScrollSpeed float64 `yaml:"scroll_speed"`
	// Wrap is the distance after which the scroll offset restarts. Stripes
	// are laid out with the same spacing so the restart is invisible.
	Wrap   float64 `yaml:"wrap"`
	Stripe BoxDef  `yaml:"stripe"`
}

// TargetDef is the hovercraft the player steers and the shield the UFOs
// aim at.
type TargetDef struct {
	BoxDef `yaml:",inline"`
	Shield BoxDef    `yaml:"shield"`
	Bounds BoundsDef `yaml:"bounds"`
}

type BoundsDef struct {
	MinX float64 `yaml:"min_x"`
	MaxX float64 `yaml:"max_x"`
	MinY float64 `yaml:"min_y"`
	MaxY float64 `yaml:"max_y"`
	Step float64 `yaml:"step"`
}

type UFODef struct {
	Radius        float64   `yaml:"radius"`
	Color         Color     `yaml:"color"`
	SpinDegPerSec float64   `yaml:"spin_deg_per_sec"`
	TurretOffset  Vec       `yaml:"turret_offset"`
	Lights        LightsDef `yaml:"lights"`
	Patrol        PatrolDef `yaml:"patrol"`
}

// LightsDef is the ring of beacons around the UFO rim.
type LightsDef struct {
	Count  int     `yaml:"count"`
	Radius float64 `yaml:"radius"`
	Ring   float64 `yaml:"ring"`
	Y      float64 `yaml:"y"`
	Color  Color   `yaml:"color"`
}

// PatrolDef bounds the random waypoints a UFO wanders between.
type PatrolDef struct {
	Base  Vec `yaml:"base"`
	Range Vec `yaml:"range"`
	// Speed is in units per millisecond, per axis.
	Speed float64 `yaml:"speed"`
}

type MountDef struct {
	Name     string `yaml:"name"`
	Position Vec    `yaml:"position"`
}

type VolleyDef struct {
	// Opening is fired by the first mount alone, without a hit callback,
	// before the volley proper.
	Opening bool `yaml:"opening"`
}

// Vec decodes a YAML sequence of three numbers.
type Vec struct {
	vecmath.Vec3
}

func (v *Vec) UnmarshalYAML(value *yaml.Node) error {
	var xyz []float64
	if err := value.Decode(&xyz); err != nil {
		return fmt.Errorf("vector must be a sequence of numbers: %w", err)
	}
	if len(xyz) != 3 {
		return fmt.Errorf("vector needs 3 components, got %d", len(xyz))
	}
	v.Vec3 = vecmath.V3(xyz[0], xyz[1], xyz[2])
	return nil
}

// Color decodes "#RRGGBB" or "#RRGGBBAA".
type Color struct {
	color.RGBA
}

func (c *Color) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}
	rgba, err := ParseColor(value.Value)
	if err != nil {
		return err
	}
	c.RGBA = rgba
	return nil
}

// ParseColor reads a hex colour with an optional leading '#'.
func ParseColor(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 && len(hex) != 8 {
		return color.RGBA{}, fmt.Errorf("invalid color format: %s", s)
	}

	var ch [4]uint8
	ch[3] = 0xFF
	for i := 0; i < len(hex)/2; i++ {
		v, err := strconv.ParseUint(hex[i*2:i*2+2], 16, 8)
		if err != nil {
			return color.RGBA{}, fmt.Errorf("invalid color %s: %w", s, err)
		}
		ch[i] = uint8(v)
	}
	return color.RGBA{R: ch[0], G: ch[1], B: ch[2], A: ch[3]}, nil
}

// Validate checks the fields the world builder depends on.
func (s *Scenario) Validate() error {
	if len(s.Mounts) == 0 {
		return fmt.Errorf("scenario %q has no UFO mounts", s.Name)
	}
	if s.Target.Bounds.MinX > s.Target.Bounds.MaxX || s.Target.Bounds.MinY > s.Target.Bounds.MaxY {
		return fmt.Errorf("scenario %q has inverted target bounds", s.Name)
	}
	if s.Target.Shield.Size.LengthSq() == 0 {
		return fmt.Errorf("scenario %q has an empty shield", s.Name)
	}
	if s.UFO.Patrol.Speed < 0 || s.Floor.ScrollSpeed < 0 {
		return fmt.Errorf("scenario %q has a negative speed", s.Name)
	}
	if _, err := scene.ParseView(s.Camera.View); err != nil {
		return fmt.Errorf("scenario %q: %w", s.Name, err)
	}
	return nil
}

package scene

import (
	"fmt"
	"strings"

	"go-ufo-defense/pkg/vecmath"
)

// View selects the plane renderers project the world onto.
type View int

const (
	// ViewSide looks along -X: Z runs left to right, Y up.
	ViewSide View = iota
	// ViewFront looks along -Z: X runs left to right, Y up.
	ViewFront
)

func (v View) String() string {
	switch v {
	case ViewSide:
		return "side"
	case ViewFront:
		return "front"
	default:
		return fmt.Sprintf("View(%d)", int(v))
	}
}

// ParseView accepts "side" or "front"; an empty string is the side view.
func ParseView(s string) (View, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "side":
		return ViewSide, nil
	case "front":
		return ViewFront, nil
	}
	return ViewSide, fmt.Errorf("unknown view %q", s)
}

// Camera describes the viewpoint handed to renderers. Projection is
// orthographic; Position is the world point at the middle of the view.
type Camera struct {
	Position vecmath.Vec3
	// Zoom is screen units per world unit.
	Zoom float64
	View View
}

// Toggle returns the camera switched to the other view.
func (c Camera) Toggle() Camera {
	if c.View == ViewSide {
		c.View = ViewFront
	} else {
		c.View = ViewSide
	}
	return c
}

// Project maps a world point to view coordinates relative to the camera
// position: h grows to the right, v grows upward, depth grows toward the
// viewer.
func (c Camera) Project(p vecmath.Vec3) (h, v, depth float64) {
	d := p.Sub(c.Position)
	if c.View == ViewFront {
		return d.X, d.Y, d.Z
	}
	return d.Z, d.Y, d.X
}

// Extent maps world half sizes to view half sizes.
func (c Camera) Extent(half vecmath.Vec3) (h, v float64) {
	if c.View == ViewFront {
		return half.X, half.Y
	}
	return half.Z, half.Y
}

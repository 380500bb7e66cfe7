package render

import (
	"image/color"
	"math"
	"sort"

	"go-ufo-defense/pkg/scene"
	"go-ufo-defense/pkg/vecmath"
)

// Sprite is one node flattened to screen space.
type Sprite struct {
	Name string
	// X, Y is the centre in screen units, Y growing downward.
	X, Y         float64
	HalfW, HalfH float64
	Round        bool
	Color        color.RGBA
	// Depth grows toward the viewer.
	Depth float64
}

// Viewport is the drawable area in screen units.
type Viewport struct {
	Width, Height int
	// Scale multiplies the camera zoom. The window uses 1; a terminal uses
	// columns per pixel.
	Scale float64
	// Aspect squashes the vertical axis for non-square cells. Zero means 1.
	Aspect float64
}

// Project flattens every visible shaped node under root, painter-sorted
// from far to near.
func Project(root *scene.Node, cam scene.Camera, vp Viewport) []Sprite {
	if root == nil {
		return nil
	}
	scale := cam.Zoom * vp.Scale
	if scale <= 0 {
		scale = 1
	}
	aspect := vp.Aspect
	if aspect <= 0 {
		aspect = 1
	}
	cx, cy := float64(vp.Width)/2, float64(vp.Height)/2

	var sprites []Sprite
	root.Traverse(func(n *scene.Node) bool {
		if !n.Visible {
			return false
		}
		if n.Shape == nil {
			return true
		}
		t := n.WorldTransform()
		h, v, depth := cam.Project(t.Origin)
		hw, hh := cam.Extent(worldHalf(t.Basis, n.Shape.Extent()))
		_, round := n.Shape.(scene.Sphere)
		sprites = append(sprites, Sprite{
			Name:  n.Name,
			X:     cx + h*scale,
			Y:     cy - v*scale*aspect,
			HalfW: hw * scale,
			HalfH: hh * scale * aspect,
			Round: round,
			Color: n.Color,
			Depth: depth,
		})
		return true
	})

	sort.SliceStable(sprites, func(i, j int) bool {
		return sprites[i].Depth < sprites[j].Depth
	})
	return sprites
}

// worldHalf is the half size of the world-aligned box around a rotated
// local box.
func worldHalf(basis vecmath.Mat3, half vecmath.Vec3) vecmath.Vec3 {
	var out [3]float64
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out[i] += math.Abs(basis[i][j]) * half.Component(j)
		}
	}
	return vecmath.V3(out[0], out[1], out[2])
}

// Visible reports whether any part of s falls inside the viewport.
func (s Sprite) Visible(vp Viewport) bool {
	return s.X+s.HalfW >= 0 && s.X-s.HalfW <= float64(vp.Width) &&
		s.Y+s.HalfH >= 0 && s.Y-s.HalfH <= float64(vp.Height)
}

package scene

import (
	"math"

	"go-ufo-defense/pkg/vecmath"
)

// rayEpsilon keeps hits at the ray origin from being reported.
const rayEpsilon = 1e-9

// Shape is the collision and drawing volume of a node, expressed in the
// node's local frame.
type Shape interface {
	// IntersectRay returns the distance along the unit direction dir at
	// which a ray from origin enters the shape. Only entries strictly ahead
	// of the origin count.
	IntersectRay(origin, dir vecmath.Vec3) (float64, bool)
	// Extent is the half size along each local axis.
	Extent() vecmath.Vec3
}

// Sphere is centred on the node origin.
type Sphere struct {
	Radius float64
}

func (s Sphere) IntersectRay(origin, dir vecmath.Vec3) (float64, bool) {
	// |o + t d|^2 = r^2 with |d| = 1
	b := origin.Dot(dir)
	c := origin.LengthSq() - s.Radius*s.Radius
	disc := b*b - c
	if disc < 0 {
		return 0, false
	}
	t := -b - math.Sqrt(disc)
	if t <= rayEpsilon {
		return 0, false
	}
	return t, true
}

func (s Sphere) Extent() vecmath.Vec3 {
	return vecmath.V3(s.Radius, s.Radius, s.Radius)
}

// Box is an axis-aligned box in the node's local frame, centred on its
// origin.
type Box struct {
	Size vecmath.Vec3
}

func (b Box) IntersectRay(origin, dir vecmath.Vec3) (float64, bool) {
	half := b.Extent()
	tmin, tmax := math.Inf(-1), math.Inf(1)
	for axis := 0; axis < 3; axis++ {
		o, d, h := origin.Component(axis), dir.Component(axis), half.Component(axis)
		if d == 0 {
			if o < -h || o > h {
				return 0, false
			}
			continue
		}
		t1, t2 := (-h-o)/d, (h-o)/d
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = math.Max(tmin, t1)
		tmax = math.Min(tmax, t2)
		if tmin > tmax {
			return 0, false
		}
	}
	if tmin <= rayEpsilon {
		return 0, false
	}
	return tmin, true
}

func (b Box) Extent() vecmath.Vec3 {
	return b.Size.Scale(0.5)
}

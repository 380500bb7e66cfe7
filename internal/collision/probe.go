// Package collision answers directional "what is ahead of me" queries for
// projectiles in flight.
package collision

import (
	"go-ufo-defense/pkg/scene"
	"go-ufo-defense/pkg/vecmath"
)

// Hit is the payload handed to collision callbacks.
type Hit struct {
	Distance float64
	Point    vecmath.Vec3
	Object   *scene.Node
}

// Probe casts a ray from origin along dir against collidables and all of
// their descendants and returns the nearest hit strictly ahead of origin.
// Among hits at the same distance the first in depth-first order wins.
func Probe(origin, dir vecmath.Vec3, collidables []*scene.Node) (Hit, bool) {
	hits := scene.Raycast(origin, dir, collidables, true)
	if len(hits) == 0 {
		return Hit{}, false
	}
	h := hits[0]
	return Hit{Distance: h.Distance, Point: h.Point, Object: h.Object}, true
}

// Swept reports the hit a body moving travel units from origin along dir
// would make this step. A hit counts only when it is strictly nearer than
// travel.
func Swept(origin, dir vecmath.Vec3, travel float64, collidables []*scene.Node) (Hit, bool) {
	hit, ok := Probe(origin, dir, collidables)
	if !ok || hit.Distance >= travel {
		return Hit{}, false
	}
	return hit, true
}

package scene

import (
	"sort"

	"go-ufo-defense/pkg/vecmath"
)

// Intersection is a ray hit against a node.
type Intersection struct {
	Distance float64
	Point    vecmath.Vec3
	Object   *Node
}

// Raycast casts a ray from origin along dir against nodes and, when
// recursive is set, their descendants. Results are sorted by distance;
// equal distances keep traversal order.
func Raycast(origin, dir vecmath.Vec3, nodes []*Node, recursive bool) []Intersection {
	dir = dir.Normalize()
	if dir == (vecmath.Vec3{}) {
		return nil
	}

	var hits []Intersection
	test := func(n *Node) bool {
		if n.Shape == nil || !n.Collidable {
			return true
		}
		inv := n.WorldTransform().Inverse()
		t, ok := n.Shape.IntersectRay(inv.Point(origin), inv.Direction(dir))
		if ok {
			hits = append(hits, Intersection{
				Distance: t,
				Point:    origin.Add(dir.Scale(t)),
				Object:   n,
			})
		}
		return true
	}

	for _, n := range nodes {
		if n == nil {
			continue
		}
		if recursive {
			n.Traverse(test)
		} else {
			test(n)
		}
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Distance < hits[j].Distance
	})
	return hits
}

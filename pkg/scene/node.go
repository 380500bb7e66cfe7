// Package scene is a minimal transform hierarchy with ray queries.
//
// Nodes carry a local position and XYZ Euler rotation. World transforms
// are derived on demand by walking the parent chain, so a node moved this
// frame is observed immediately by every later query.
package scene

import (
	"image/color"

	"go-ufo-defense/pkg/vecmath"
)

// Node is an element of the scene graph.
type Node struct {
	Name     string
	Position vecmath.Vec3
	Rotation vecmath.Euler
	Shape    Shape
	Color    color.RGBA
	// Collidable nodes are reported by ray queries. Nodes without a Shape
	// never are.
	Collidable bool
	Visible    bool

	parent   *Node
	children []*Node
}

// NewNode creates a visible, collidable node.
func NewNode(name string) *Node {
	return &Node{Name: name, Visible: true, Collidable: true}
}

// NewGroup creates a shapeless node used only to group and offset children.
func NewGroup(name string) *Node {
	return &Node{Name: name, Visible: true}
}

func (n *Node) Parent() *Node {
	return n.parent
}

// Children returns a copy of the child list.
func (n *Node) Children() []*Node {
	out := make([]*Node, len(n.children))
	copy(out, n.children)
	return out
}

// Add appends children to n, removing each from its previous parent. The
// child's local transform is kept, so its world transform may change.
func (n *Node) Add(children ...*Node) *Node {
	for _, c := range children {
		if c == nil || c == n {
			continue
		}
		c.RemoveFromParent()
		c.parent = n
		n.children = append(n.children, c)
	}
	return n
}

// Remove detaches child from n if it is a direct child.
func (n *Node) Remove(child *Node) bool {
	for i, c := range n.children {
		if c == child {
			n.children = append(n.children[:i], n.children[i+1:]...)
			child.parent = nil
			return true
		}
	}
	return false
}

// RemoveFromParent detaches n from its parent, if any.
func (n *Node) RemoveFromParent() {
	if n.parent != nil {
		n.parent.Remove(n)
	}
}

// RemoveAll detaches every child of n.
func (n *Node) RemoveAll() {
	for _, c := range n.children {
		c.parent = nil
	}
	n.children = nil
}

// Attach re-parents child under n while preserving its world transform.
func (n *Node) Attach(child *Node) {
	if child == nil || child == n {
		return
	}
	world := child.WorldTransform()
	local := n.WorldTransform().Inverse().Compose(world)
	n.Add(child)
	child.Position = local.Origin
	child.Rotation = vecmath.EulerFromMatrix(local.Basis)
}

// LocalTransform returns the node's transform relative to its parent.
func (n *Node) LocalTransform() vecmath.Transform {
	return vecmath.Transform{Basis: n.Rotation.Matrix(), Origin: n.Position}
}

// WorldTransform returns the node's transform relative to the root.
func (n *Node) WorldTransform() vecmath.Transform {
	t := n.LocalTransform()
	for p := n.parent; p != nil; p = p.parent {
		t = p.LocalTransform().Compose(t)
	}
	return t
}

// WorldPosition returns the origin of n in world space.
func (n *Node) WorldPosition() vecmath.Vec3 {
	return n.WorldTransform().Origin
}

// WorldDirection returns the unit vector of the node's local +Z axis in
// world space.
func (n *Node) WorldDirection() vecmath.Vec3 {
	return n.WorldTransform().Direction(vecmath.Forward).Normalize()
}

// Root walks up to the top of the hierarchy.
func (n *Node) Root() *Node {
	r := n
	for r.parent != nil {
		r = r.parent
	}
	return r
}

// Traverse visits n and its descendants depth-first in child order. Returning
// false from fn skips the node's subtree.
func (n *Node) Traverse(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, c := range n.children {
		c.Traverse(fn)
	}
}

// Clone deep-copies the subtree rooted at n. The copy has no parent.
func (n *Node) Clone() *Node {
	cp := &Node{
		Name:       n.Name,
		Position:   n.Position,
		Rotation:   n.Rotation,
		Shape:      n.Shape,
		Color:      n.Color,
		Collidable: n.Collidable,
		Visible:    n.Visible,
	}
	for _, c := range n.children {
		cc := c.Clone()
		cc.parent = cp
		cp.children = append(cp.children, cc)
	}
	return cp
}

package scene

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-ufo-defense/pkg/vecmath"
)

const eps = 1e-9

func TestNode_AddMovesBetweenParents(t *testing.T) {
	a, b, c := NewGroup("a"), NewGroup("b"), NewNode("c")

	a.Add(c)
	assert.Same(t, a, c.Parent())
	b.Add(c)
	assert.Same(t, b, c.Parent())
	assert.Empty(t, a.Children())
	assert.Len(t, b.Children(), 1)

	a.Add(a, nil)
	assert.Empty(t, a.Children(), "self and nil are ignored")

	c.RemoveFromParent()
	assert.Nil(t, c.Parent())
	assert.False(t, b.Remove(c))
}

func TestNode_WorldTransform(t *testing.T) {
	base := NewGroup("base")
	base.Position = vecmath.V3(0, 100, 0)
	base.Rotation.Y = math.Pi / 2
	tip := NewNode("tip")
	tip.Position = vecmath.V3(0, 0, 10)
	base.Add(tip)

	assert.True(t, tip.WorldPosition().ApproxEqual(vecmath.V3(10, 100, 0), eps))
	assert.True(t, tip.WorldDirection().ApproxEqual(vecmath.V3(1, 0, 0), eps))
	assert.Same(t, base, tip.Root())
}

func TestNode_AttachKeepsWorldTransform(t *testing.T) {
	root := NewGroup("root")
	mount := NewGroup("mount")
	mount.Position = vecmath.V3(5, 50, -20)
	mount.Rotation = vecmath.Euler{X: 0.3, Y: -1.1}
	p := NewNode("projectile")
	p.Position = vecmath.V3(0, -15, 3)
	mount.Add(p)
	root.Add(mount)

	pos, dir := p.WorldPosition(), p.WorldDirection()
	root.Attach(p)

	assert.Same(t, root, p.Parent())
	assert.True(t, p.WorldPosition().ApproxEqual(pos, 1e-9))
	assert.True(t, p.WorldDirection().ApproxEqual(dir, 1e-9))
	assert.Empty(t, mount.Children())
}

func TestNode_CloneIsDeep(t *testing.T) {
	parent := NewGroup("parent")
	n := NewNode("n")
	n.Shape = Sphere{Radius: 1}
	child := NewNode("child")
	n.Add(child)
	parent.Add(n)

	cp := n.Clone()
	assert.Nil(t, cp.Parent())
	require.Len(t, cp.Children(), 1)
	assert.NotSame(t, child, cp.Children()[0])
	assert.Same(t, cp, cp.Children()[0].Parent())

	cp.Children()[0].Position.X = 7
	assert.Zero(t, child.Position.X)
	assert.Equal(t, n.Shape, cp.Shape)
}

func TestNode_TraverseSkipsSubtree(t *testing.T) {
	root := NewGroup("root")
	skip := NewGroup("skip")
	skip.Add(NewNode("hidden"))
	root.Add(NewNode("first"), skip, NewNode("last"))

	var seen []string
	root.Traverse(func(n *Node) bool {
		seen = append(seen, n.Name)
		return n.Name != "skip"
	})
	assert.Equal(t, []string{"root", "first", "skip", "last"}, seen)

	root.RemoveAll()
	assert.Empty(t, root.Children())
	assert.Nil(t, skip.Parent())
}

func TestCamera_Views(t *testing.T) {
	v, err := ParseView("Front")
	require.NoError(t, err)
	assert.Equal(t, ViewFront, v)
	v, err = ParseView("")
	require.NoError(t, err)
	assert.Equal(t, ViewSide, v)
	_, err = ParseView("top")
	assert.Error(t, err)

	cam := Camera{Position: vecmath.V3(1, 2, 3), View: ViewSide}
	h, vv, d := cam.Project(vecmath.V3(11, 12, 13))
	assert.Equal(t, []float64{10, 10, 10}, []float64{h, vv, d})
	hw, hh := cam.Extent(vecmath.V3(1, 2, 3))
	assert.Equal(t, []float64{3, 2}, []float64{hw, hh})

	cam = cam.Toggle()
	assert.Equal(t, "front", cam.View.String())
	hw, _ = cam.Extent(vecmath.V3(1, 2, 3))
	assert.Equal(t, 1.0, hw)
	assert.Equal(t, ViewSide, cam.Toggle().View)
	assert.Equal(t, "View(9)", View(9).String())
}

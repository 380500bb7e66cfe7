package vecmath

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

const eps = 1e-9

func TestVec3_Basics(t *testing.T) {
	a, b := V3(1, 2, 3), V3(4, -5, 6)

	assert.Equal(t, V3(5, -3, 9), a.Add(b))
	assert.Equal(t, V3(-3, 7, -3), a.Sub(b))
	assert.Equal(t, V3(2, 4, 6), a.Scale(2))
	assert.Equal(t, 12.0, a.Dot(b))
	assert.Equal(t, V3(0, 0, 1), V3(1, 0, 0).Cross(V3(0, 1, 0)))
	assert.Equal(t, 5.0, V3(3, 4, 0).Length())
	assert.Equal(t, 25.0, V3(3, 4, 0).LengthSq())
	assert.Equal(t, 5.0, V3(1, 1, 1).Distance(V3(4, 5, 1)))
	assert.Equal(t, 2.0, a.Component(1))
	assert.Equal(t, 3.0, a.Component(2))
}

func TestVec3_Normalize(t *testing.T) {
	n := V3(0, 3, 4).Normalize()
	assert.InDelta(t, 1, n.Length(), eps)
	assert.True(t, n.ApproxEqual(V3(0, 0.6, 0.8), eps))
	assert.Equal(t, Vec3{}, Vec3{}.Normalize(), "zero stays zero")
}

func TestEuler_Matrix(t *testing.T) {
	yaw := Euler{Y: math.Pi / 2}.Matrix()
	assert.True(t, yaw.Apply(Forward).ApproxEqual(V3(1, 0, 0), eps))

	pitch := Euler{X: math.Pi / 2}.Matrix()
	assert.True(t, pitch.Apply(Forward).ApproxEqual(V3(0, -1, 0), eps), "positive pitch tips +Z downward")

	// Parent yaw then child pitch points the barrel down and to the side.
	m := yaw.Mul(Euler{X: math.Pi / 4}.Matrix())
	s := math.Sqrt2 / 2
	assert.True(t, m.Apply(Forward).ApproxEqual(V3(s, -s, 0), eps))
}

func TestEulerFromMatrix_RoundTrip(t *testing.T) {
	for _, e := range []Euler{
		{X: 0.3, Y: -0.7, Z: 1.1},
		{X: -1.2, Y: 0.4, Z: -2.5},
		{},
	} {
		got := EulerFromMatrix(e.Matrix())
		assert.InDelta(t, e.X, got.X, eps)
		assert.InDelta(t, e.Y, got.Y, eps)
		assert.InDelta(t, e.Z, got.Z, eps)
	}

	// Gimbal lock still yields an equivalent rotation.
	locked := Euler{X: 0.5, Y: math.Pi / 2, Z: 0.2}
	got := EulerFromMatrix(locked.Matrix())
	assert.True(t, got.Matrix().Apply(V3(1, 2, 3)).ApproxEqual(locked.Matrix().Apply(V3(1, 2, 3)), 1e-6))
}

func TestTransform(t *testing.T) {
	parent := Transform{Basis: Euler{Y: math.Pi / 2}.Matrix(), Origin: V3(10, 0, 0)}
	child := Transform{Basis: Identity3(), Origin: V3(0, 0, 5)}

	world := parent.Compose(child)
	assert.True(t, world.Origin.ApproxEqual(V3(15, 0, 0), eps))
	assert.True(t, world.Direction(Forward).ApproxEqual(V3(1, 0, 0), eps))

	p := V3(3, -2, 7)
	assert.True(t, world.Inverse().Point(world.Point(p)).ApproxEqual(p, eps))

	id := world.Inverse().Compose(world)
	assert.True(t, id.Origin.ApproxEqual(Vec3{}, eps))
	assert.True(t, id.Basis.Apply(p).ApproxEqual(p, eps))
	assert.Equal(t, p, IdentityTransform().Point(p))
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 1.0, Clamp(5, -1, 1))
	assert.Equal(t, -1.0, Clamp(-5, -1, 1))
	assert.Equal(t, 0.5, Clamp(0.5, -1, 1))
}

package assets

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-ufo-defense/internal/defs"
	"go-ufo-defense/pkg/scene"
	"go-ufo-defense/pkg/vecmath"
)

func loaded(t *testing.T) *ModelManager {
	t.Helper()
	s, err := defs.LoadScenario("")
	require.NoError(t, err)
	m := NewModelManager(zerolog.Nop())
	m.LoadScenario(s)
	return m
}

func TestInstance_IsIndependentCopy(t *testing.T) {
	m := loaded(t)

	a, err := m.Instance(ModelUFO)
	require.NoError(t, err)
	b, err := m.Instance(ModelUFO)
	require.NoError(t, err)

	a.Rotation.Y = 1
	a.Children()[0].Position = vecmath.V3(9, 9, 9)

	proto, ok := m.GetModel(ModelUFO)
	require.True(t, ok)
	assert.Zero(t, proto.Rotation.Y)
	assert.Zero(t, b.Rotation.Y)
	assert.NotEqual(t, vecmath.V3(9, 9, 9), b.Children()[0].Position)
}

func TestUFO_LightsRing(t *testing.T) {
	m := loaded(t)
	ufo, err := m.Instance(ModelUFO)
	require.NoError(t, err)

	lights := ufo.Children()
	require.Len(t, lights, 8)
	for _, l := range lights {
		assert.False(t, l.Collidable)
		horizontal := vecmath.V3(l.Position.X, 0, l.Position.Z).Length()
		assert.InDelta(t, 34, horizontal, 1e-9)
		assert.Equal(t, -8.5, l.Position.Y)
	}
	assert.True(t, ufo.Collidable)
}

func TestHovercraft_HasShield(t *testing.T) {
	m := loaded(t)
	h, err := m.Instance(ModelHovercraft)
	require.NoError(t, err)

	var shield *scene.Node
	h.Traverse(func(n *scene.Node) bool {
		if n.Name == "shield" {
			shield = n
		}
		return true
	})
	require.NotNil(t, shield)
	assert.Equal(t, vecmath.V3(0, 70, -40), shield.WorldPosition())
}

func TestInstance_Unknown(t *testing.T) {
	m := NewModelManager(zerolog.Nop())
	_, err := m.Instance(ModelUFO)
	assert.Error(t, err)

	m = loaded(t)
	m.Cleanup()
	_, ok := m.GetModel(ModelBarrel)
	assert.False(t, ok)
}

func TestFloor_Stripes(t *testing.T) {
	m := loaded(t)
	floor, err := m.Instance(ModelFloor)
	require.NoError(t, err)

	stripes := floor.Children()
	require.Len(t, stripes, 16)
	assert.Equal(t, -1500.0, stripes[0].Position.Z)
	assert.Equal(t, 1500.0, stripes[15].Position.Z)
	for _, s := range stripes {
		assert.False(t, s.Collidable)
	}
	assert.True(t, floor.Collidable)
}

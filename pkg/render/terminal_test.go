package render

import (
	"image/color"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-ufo-defense/pkg/scene"
	"go-ufo-defense/pkg/vecmath"
)

var (
	sky   = color.RGBA{0x88, 0xAA, 0xCC, 255}
	hull  = color.RGBA{0x33, 0x66, 0xCC, 255}
	light = color.RGBA{0xFF, 0xFF, 0x00, 255}
)

func newSimScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	t.Cleanup(screen.Fini)
	screen.SetSize(80, 24)
	return screen
}

func background(t *testing.T, screen tcell.Screen, x, y int) tcell.Color {
	t.Helper()
	_, _, style, _ := screen.GetContent(x, y)
	_, bg, _ := style.Decompose()
	return bg
}

func TestTerminalRenderer_DrawsScene(t *testing.T) {
	screen := newSimScreen(t)
	palette := Palette{Background: sky, TextLight: color.RGBA{255, 255, 255, 255}, TextDark: color.RGBA{0, 0, 0, 255}}
	r := NewTerminalRenderer(screen, palette, 1200)

	root := scene.NewGroup("root")
	box := scene.NewNode("hull")
	box.Shape = scene.Box{Size: vecmath.V3(300, 300, 10)}
	box.Color = hull
	dot := scene.NewNode("light")
	dot.Shape = scene.Sphere{Radius: 2}
	dot.Color = light
	dot.Position = vecmath.V3(-450, 0, 10)
	root.Add(box, dot)

	r.Render(root, scene.Camera{Zoom: 1, View: scene.ViewFront})
	r.Draw([]string{"hits 3"}, nil, color.RGBA{})

	// 300 units at 80/1200 columns per unit is 20 columns, 10 rows.
	assert.Equal(t, toTcell(hull), background(t, screen, 40, 12))
	assert.Equal(t, toTcell(hull), background(t, screen, 30, 8))
	assert.Equal(t, toTcell(sky), background(t, screen, 29, 12))
	assert.Equal(t, toTcell(sky), background(t, screen, 40, 22))

	mainc, _, style, _ := screen.GetContent(10, 12)
	assert.Equal(t, '•', mainc)
	fg, bg, _ := style.Decompose()
	assert.Equal(t, toTcell(light), fg)
	assert.Equal(t, toTcell(sky), bg)

	for i, want := range "hits 3" {
		got, _, _, _ := screen.GetContent(i, 0)
		assert.Equal(t, want, got)
	}
}

func TestTerminalRenderer_Panel(t *testing.T) {
	screen := newSimScreen(t)
	r := NewTerminalRenderer(screen, Palette{Background: sky}, 1200)
	red := color.RGBA{220, 60, 60, 255}

	r.Draw(nil, []string{"GAME OVER"}, red)

	// 13 wide, 3 tall, centred on an 80x24 screen.
	assert.Equal(t, toTcell(red), background(t, screen, 33, 10))
	assert.Equal(t, toTcell(red), background(t, screen, 45, 12))
	assert.Equal(t, toTcell(sky), background(t, screen, 32, 11))
	mainc, _, _, _ := screen.GetContent(35, 11)
	assert.Equal(t, 'G', mainc)
}

package render

import (
	"image/color"
	"math"
	"sync"

	"github.com/gdamore/tcell/v2"

	"go-ufo-defense/pkg/scene"
)

// cellAspect squashes rows; terminal cells are about twice as tall as wide.
const cellAspect = 0.5

// TerminalRenderer draws the scene with coloured cells. It shows the same
// field of view as a window pixelWidth pixels wide.
type TerminalRenderer struct {
	screen     tcell.Screen
	palette    Palette
	pixelWidth int

	mu      sync.Mutex
	sprites []Sprite
}

func NewTerminalRenderer(screen tcell.Screen, palette Palette, pixelWidth int) *TerminalRenderer {
	if pixelWidth <= 0 {
		pixelWidth = 1
	}
	return &TerminalRenderer{screen: screen, palette: palette, pixelWidth: pixelWidth}
}

func (t *TerminalRenderer) viewport() Viewport {
	w, h := t.screen.Size()
	return Viewport{
		Width:  w,
		Height: h,
		Scale:  float64(w) / float64(t.pixelWidth),
		Aspect: cellAspect,
	}
}

// Render stores a projection of the scene for the next Draw.
func (t *TerminalRenderer) Render(root *scene.Node, camera scene.Camera) {
	sprites := Project(root, camera, t.viewport())
	t.mu.Lock()
	t.sprites = sprites
	t.mu.Unlock()
}

// Draw paints the last rendered scene, the HUD lines from the top-left
// corner, and an optional centred panel, then shows the result.
func (t *TerminalRenderer) Draw(hud []string, panel []string, panelColor color.RGBA) {
	vp := t.viewport()
	bg := tcell.StyleDefault.Background(toTcell(t.palette.Background))
	for y := 0; y < vp.Height; y++ {
		for x := 0; x < vp.Width; x++ {
			t.screen.SetContent(x, y, ' ', nil, bg)
		}
	}

	t.mu.Lock()
	sprites := t.sprites
	t.mu.Unlock()
	for _, s := range sprites {
		if s.Visible(vp) {
			t.drawSprite(vp, s)
		}
	}

	textStyle := bg.Foreground(toTcell(t.palette.TextColorOn(t.palette.Background)))
	for i, line := range hud {
		t.putString(0, i, line, textStyle)
	}
	if len(panel) > 0 {
		t.drawPanel(vp, panel, panelColor)
	}
	t.screen.Show()
}

func (t *TerminalRenderer) drawSprite(vp Viewport, s Sprite) {
	x0 := int(math.Ceil(s.X - s.HalfW - 0.5))
	x1 := int(math.Floor(s.X + s.HalfW - 0.5))
	y0 := int(math.Ceil(s.Y - s.HalfH - 0.5))
	y1 := int(math.Floor(s.Y + s.HalfH - 0.5))

	if x1 < x0 || y1 < y0 {
		// Smaller than a cell: mark it with a glyph over whatever is below.
		x, y := int(math.Floor(s.X)), int(math.Floor(s.Y))
		if x < 0 || y < 0 || x >= vp.Width || y >= vp.Height {
			return
		}
		_, _, under, _ := t.screen.GetContent(x, y)
		glyph := '▪'
		if s.Round {
			glyph = '•'
		}
		t.screen.SetContent(x, y, glyph, nil, under.Foreground(toTcell(s.Color)))
		return
	}

	style := tcell.StyleDefault.Background(toTcell(s.Color))
	for y := max(y0, 0); y <= min(y1, vp.Height-1); y++ {
		for x := max(x0, 0); x <= min(x1, vp.Width-1); x++ {
			if s.Round && !insideEllipse(s, float64(x)+0.5, float64(y)+0.5) {
				continue
			}
			t.screen.SetContent(x, y, ' ', nil, style)
		}
	}
}

func insideEllipse(s Sprite, x, y float64) bool {
	if s.HalfW == 0 || s.HalfH == 0 {
		return false
	}
	dx := (x - s.X) / s.HalfW
	dy := (y - s.Y) / s.HalfH
	return dx*dx+dy*dy <= 1
}

func (t *TerminalRenderer) drawPanel(vp Viewport, lines []string, bgColor color.RGBA) {
	widest := 0
	for _, l := range lines {
		widest = max(widest, len([]rune(l)))
	}
	w, h := widest+4, len(lines)+2
	x0, y0 := (vp.Width-w)/2, (vp.Height-h)/2

	style := tcell.StyleDefault.
		Background(toTcell(bgColor)).
		Foreground(toTcell(t.palette.TextColorOn(bgColor)))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			t.screen.SetContent(x0+x, y0+y, ' ', nil, style)
		}
	}
	for i, l := range lines {
		t.putString(x0+(w-len([]rune(l)))/2, y0+1+i, l, style)
	}
}

func (t *TerminalRenderer) putString(x, y int, s string, style tcell.Style) {
	for _, r := range s {
		t.screen.SetContent(x, y, r, nil, style)
		x++
	}
}

func toTcell(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

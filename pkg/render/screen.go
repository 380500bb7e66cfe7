package render

import (
	"fmt"
	"image/color"
	"math"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"

	"go-ufo-defense/pkg/scene"
)

const (
	minRadius  = 1.5
	panelPad   = 16
	hudMarginX = 10
)

// ScreenRenderer draws the scene into an ebiten window. Render snapshots
// the scene from the update loop; Draw paints the last snapshot.
type ScreenRenderer struct {
	width, height int
	palette       Palette
	fontFace      font.Face
	lineHeight    int

	mu      sync.Mutex
	sprites []Sprite
}

func NewScreenRenderer(width, height int, palette Palette, fontSize float64) (*ScreenRenderer, error) {
	tt, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	face, err := opentype.NewFace(tt, &opentype.FaceOptions{
		Size:    fontSize,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("create font face: %w", err)
	}

	return &ScreenRenderer{
		width:      width,
		height:     height,
		palette:    palette,
		fontFace:   face,
		lineHeight: face.Metrics().Height.Ceil(),
	}, nil
}

func (r *ScreenRenderer) viewport() Viewport {
	return Viewport{Width: r.width, Height: r.height, Scale: 1}
}

// Render stores a projection of the scene for the next Draw.
func (r *ScreenRenderer) Render(root *scene.Node, camera scene.Camera) {
	sprites := Project(root, camera, r.viewport())
	r.mu.Lock()
	r.sprites = sprites
	r.mu.Unlock()
}

// Draw paints the background and the last rendered scene.
func (r *ScreenRenderer) Draw(screen *ebiten.Image) {
	screen.Fill(r.palette.Background)

	r.mu.Lock()
	sprites := r.sprites
	r.mu.Unlock()

	vp := r.viewport()
	for _, s := range sprites {
		if s.Visible(vp) {
			r.drawSprite(screen, s)
		}
	}
}

func (r *ScreenRenderer) drawSprite(dst *ebiten.Image, s Sprite) {
	x, y := float32(s.X), float32(s.Y)
	if s.Round {
		rad := float32(math.Max(math.Max(s.HalfW, s.HalfH), minRadius))
		vector.DrawFilledCircle(dst, x, y, rad, s.Color, true)
		if r.palette.Outline && rad > 3 {
			vector.StrokeCircle(dst, x, y, rad, 1, DarkenColor(s.Color), true)
		}
		return
	}

	w := float32(math.Max(2*s.HalfW, 1))
	h := float32(math.Max(2*s.HalfH, 1))
	vector.DrawFilledRect(dst, x-w/2, y-h/2, w, h, s.Color, false)
	if r.palette.Outline && w > 3 && h > 3 {
		vector.StrokeRect(dst, x-w/2, y-h/2, w, h, 1, DarkenColor(s.Color), false)
	}
}

// DrawText writes lines top-down from the upper-left corner.
func (r *ScreenRenderer) DrawText(dst *ebiten.Image, lines []string) {
	for i, line := range lines {
		text.Draw(dst, line, r.fontFace, hudMarginX, (i+1)*r.lineHeight, r.palette.TextColorOn(r.palette.Background))
	}
}

// DrawPanel draws a translucent box in the middle of the screen with the
// lines centred inside it.
func (r *ScreenRenderer) DrawPanel(dst *ebiten.Image, bg color.RGBA, lines []string) {
	widest := 0
	for _, line := range lines {
		b := text.BoundString(r.fontFace, line)
		if w := b.Max.X - b.Min.X; w > widest {
			widest = w
		}
	}
	w := widest + 2*panelPad
	h := len(lines)*r.lineHeight + 2*panelPad
	x0 := (r.width - w) / 2
	y0 := (r.height - h) / 2
	vector.DrawFilledRect(dst, float32(x0), float32(y0), float32(w), float32(h), bg, false)

	fg := r.palette.TextColorOn(bg)
	for i, line := range lines {
		b := text.BoundString(r.fontFace, line)
		lw := b.Max.X - b.Min.X
		text.Draw(dst, line, r.fontFace, (r.width-lw)/2, y0+panelPad+(i+1)*r.lineHeight-r.lineHeight/4, fg)
	}
}

// Sprites returns the last projected frame.
func (r *ScreenRenderer) Sprites() []Sprite {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Sprite(nil), r.sprites...)
}

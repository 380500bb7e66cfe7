// pkg/render/color.go
package render

import "image/color"

// Palette holds the colours that do not come from the scene itself.
type Palette struct {
	Background color.RGBA
	TextLight  color.RGBA
	TextDark   color.RGBA
	Panel      color.RGBA
	Outline    bool
}

// DarkenColor reduces the brightness of a color.
func DarkenColor(c color.RGBA) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R) * 0.5),
		G: uint8(float64(c.G) * 0.5),
		B: uint8(float64(c.B) * 0.5),
		A: c.A,
	}
}

// Luminance is the perceived brightness of c in [0, 1].
func Luminance(c color.RGBA) float64 {
	return (0.299*float64(c.R) + 0.587*float64(c.G) + 0.114*float64(c.B)) / 255
}

// TextColorOn picks light or dark text for legibility on bg.
func (p Palette) TextColorOn(bg color.RGBA) color.RGBA {
	if Luminance(bg) > 0.55 {
		return p.TextDark
	}
	return p.TextLight
}

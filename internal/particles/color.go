package particles

import (
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// HueColor converts an HSL triple (hue in degrees, saturation and lightness
// in [0,1]) to an opaque RGBA colour.
func HueColor(h, s, l float64) color.RGBA {
	r, g, b := colorful.Hsl(h, s, l).Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

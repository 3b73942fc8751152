package rects

import (
	"math"

	"github.com/ironsheep/rectanglify/internal/pixel"
)

// Clear paints every pixel of c with the background of its layout.
func Clear[P pixel.Kind[P]](c pixel.Canvas[P]) {
	var zero P
	bg := zero.Background()
	for y := 0; y < c.Height(); y++ {
		for x := 0; x < c.Width(); x++ {
			c.SetPixel(x, y, bg)
		}
	}
}

// DrawLine paints a one pixel wide separator with the foreground of the
// canvas layout. The line sits on the pixel enclosing position and covers
// the pixels from floor(start) to floor(end) inclusive. Pixels outside the
// canvas are skipped.
func DrawLine[P pixel.Kind[P]](c pixel.Canvas[P], axis Axis, position, start, end float64) {
	var zero P
	fg := zero.Foreground()

	at := linePixel(position)
	from, to := int(math.Floor(start)), int(math.Floor(end))
	for j := from; j <= to; j++ {
		x, y := j, at
		if axis == Vertical {
			x, y = at, j
		}
		if x >= 0 && y >= 0 && x < c.Width() && y < c.Height() {
			c.SetPixel(x, y, fg)
		}
	}
}

// linePixel maps a split coordinate to the pixel it falls in. A split on a
// pixel boundary belongs to the pixel that ends there, which is the row or
// column whose scan produced it.
func linePixel(position float64) int {
	return int(math.Ceil(position)) - 1
}

// CanvasRenderer draws separators onto a canvas as they are chosen.
type CanvasRenderer[P pixel.Kind[P]] struct {
	Canvas pixel.Canvas[P]
}

// DrawLine implements Renderer.
func (r CanvasRenderer[P]) DrawLine(l Line) {
	DrawLine(r.Canvas, l.Axis, l.Position, l.Start, l.End)
}

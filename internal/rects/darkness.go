package rects

import (
	"math"

	"github.com/ironsheep/rectanglify/internal/pixel"
)

// Darkness returns 1 - luma/max for p, clamped to [0, 1].
func Darkness[P pixel.Pixel](p P) float64 {
	d := 1 - p.Luma()/p.MaxValue()
	return math.Min(1, math.Max(0, d))
}

// DarknessAt returns the darkness of the pixel at (x, y) weighted by the
// fraction of that pixel lying inside r. The weight is computed on each axis
// independently and the two are multiplied. Pixels outside the image or
// outside r weigh nothing.
func DarknessAt[P pixel.Pixel](img pixel.Raster[P], r Rectangle, x, y int) float64 {
	if x < 0 || y < 0 || x >= img.Width() || y >= img.Height() {
		return 0
	}
	w := overlap(r.Left, r.Right, x) * overlap(r.Top, r.Bottom, y)
	if w == 0 {
		return 0
	}
	return Darkness(img.PixelAt(x, y)) * w
}

// TotalDarkness sums the darkness of every pixel in img.
func TotalDarkness[P pixel.Pixel](img pixel.Raster[P]) float64 {
	var total float64
	for y := 0; y < img.Height(); y++ {
		for x := 0; x < img.Width(); x++ {
			total += Darkness(img.PixelAt(x, y))
		}
	}
	return total
}

// overlap is the length of [lo, hi) ∩ [i, i+1).
func overlap(lo, hi float64, i int) float64 {
	a := math.Max(lo, float64(i))
	b := math.Min(hi, float64(i+1))
	if b <= a {
		return 0
	}
	return b - a
}

package rects

import (
	"image"
	"image/color"

	"github.com/ironsheep/rectanglify/internal/pixel"
)

// grayFrom builds a Gray8 raster of w×h whose pixel values come from fn.
func grayFrom(w, h int, fn func(x, y int) uint8) *pixel.GrayImage {
	img := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetGray(x, y, color.Gray{Y: fn(x, y)})
		}
	}
	return pixel.NewGrayImage(img)
}

func solid(v uint8) func(x, y int) uint8 {
	return func(int, int) uint8 { return v }
}

// gradient is dark on the left and light on the right, never pure white.
func gradient(w int) func(x, y int) uint8 {
	return func(x, y int) uint8 {
		return uint8(10 + (x*190)/w + (y % 3))
	}
}

// recorder is a Renderer that keeps every separator it receives.
type recorder struct {
	lines []Line
}

func (r *recorder) DrawLine(l Line) {
	r.lines = append(r.lines, l)
}

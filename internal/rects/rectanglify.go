package rects

import (
	"math"

	"github.com/ironsheep/rectanglify/internal/pixel"
)

// Result summarises a run.
type Result struct {
	// Darkness is the total darkness mass of the input.
	Darkness float64 `json:"darkness"`

	// Requested is round(Darkness * RectsPerPixel) before capping.
	Requested int `json:"requested_rects"`

	// Rects is the rectangle count the canvas was partitioned into.
	Rects int `json:"rects"`

	// RectsPerPixel is the recalibrated density, Rects / Darkness. It equals
	// the supplied density when nothing was partitioned.
	RectsPerPixel float64 `json:"rects_per_pixel"`

	// Leaves counts the cells the recursion ended in.
	Leaves int `json:"leaves"`

	// Splits counts the separators drawn.
	Splits int `json:"splits"`

	// Clamped counts scans that ran out of darkness and were clamped to the
	// last dark row or column.
	Clamped int `json:"clamped"`

	// Dropped is the rectangle count lost in regions with no darkness.
	// Leaves + Dropped always equals Rects.
	Dropped int `json:"dropped"`
}

// MaxRects is the largest rectangle count a w×h canvas is divided into.
func MaxRects(w, h int) int {
	return w * h
}

// RectCount returns round(darkness * density) and that count capped at
// limit. Non-positive or undefined products yield zero.
func RectCount(darkness, density float64, limit int) (requested, capped int) {
	f := math.Round(darkness * density)
	switch {
	case !(f > 0):
		return 0, 0
	case f >= math.MaxInt32:
		requested = math.MaxInt32
	default:
		requested = int(f)
	}
	return requested, min(requested, limit)
}

// Rectanglify paints out white and divides it into black-bordered
// rectangles following the darkness of in. The output is expected to have
// the dimensions of the input; lines falling outside it are skipped.
//
// The density in s is recalibrated to Rects / Darkness before partitioning
// so the number of cells matches the rounded count exactly. An input without
// darkness leaves the output blank.
func Rectanglify[I pixel.Pixel, O pixel.Kind[O]](in pixel.Raster[I], out pixel.Canvas[O], s Settings) Result {
	total := TotalDarkness(in)
	requested, n := RectCount(total, s.RectsPerPixel, MaxRects(in.Width(), in.Height()))

	Clear(out)
	if n == 0 {
		return Result{Darkness: total, Requested: requested, RectsPerPixel: s.RectsPerPixel}
	}

	s.RectsPerPixel = float64(n) / total
	area := Rectangle{Right: float64(in.Width()), Bottom: float64(in.Height())}

	res := Partition(in, CanvasRenderer[O]{Canvas: out}, s, area, n)
	res.Darkness = total
	res.Requested = requested
	res.Rects = n
	res.RectsPerPixel = s.RectsPerPixel
	return res
}

package rects

import (
	"math"

	"github.com/ironsheep/rectanglify/internal/pixel"
)

// Axis is the orientation of a separator line.
type Axis int

const (
	// Horizontal separators divide a region into top and bottom halves.
	Horizontal Axis = iota

	// Vertical separators divide a region into left and right halves.
	Vertical
)

func (a Axis) String() string {
	if a == Vertical {
		return "vertical"
	}
	return "horizontal"
}

// Line is a separator chosen by the partition engine.
type Line struct {
	Axis Axis

	// Position is the split coordinate: x for vertical lines, y for
	// horizontal ones.
	Position float64

	// Start and End bound the line across the region it divides.
	Start, End float64
}

// Renderer receives separators in the order they are chosen.
type Renderer interface {
	DrawLine(l Line)
}

// Partition divides area into rects cells of equal darkness under the
// density in s, reporting every separator to r. Only the counters of the
// returned Result are filled in.
//
// A region is cut across its longer side; a square region is cut by a
// horizontal line. The first half receives rects/2 cells and the split is
// placed where it holds rects/2 / s.RectsPerPixel darkness.
func Partition[P pixel.Pixel](img pixel.Raster[P], r Renderer, s Settings, area Rectangle, rects int) Result {
	p := partitioner[P]{img: img, out: r, density: s.RectsPerPixel}
	switch {
	case rects < 1:
	case !(s.RectsPerPixel > 0):
		p.res.Leaves = 1
		p.res.Dropped = rects - 1
	default:
		p.partition(area, rects)
	}
	return p.res
}

type partitioner[P pixel.Pixel] struct {
	img     pixel.Raster[P]
	out     Renderer
	density float64
	res     Result
}

func (p *partitioner[P]) partition(area Rectangle, rects int) {
	if rects == 1 {
		p.res.Leaves++
		return
	}

	axis := Horizontal
	if area.Width() > area.Height() {
		axis = Vertical
	}
	first := rects / 2
	target := float64(first) / p.density

	split, ok := p.scan(area, axis, target)
	if !ok {
		p.res.Leaves++
		p.res.Dropped += rects - 1
		return
	}

	lo, hi := area.across(axis)
	p.out.DrawLine(Line{Axis: axis, Position: split, Start: lo, End: hi})
	p.res.Splits++

	a, b := area.cut(axis, split)
	p.partition(a, first)
	p.partition(b, rects-first)
}

// scan walks the rows or columns of area in increasing order and returns
// the coordinate at which the accumulated darkness reaches target. It
// reports false only when area holds no darkness at all.
//
// When area holds some darkness but less than target, the split is clamped
// to the trailing edge of the last row or column with darkness. If that is
// the final row or column of area, the split equals area's far edge: the
// second child has zero width, so all but one of its cells are dropped,
// and the separator is drawn on area's own edge pixel.
func (p *partitioner[P]) scan(area Rectangle, axis Axis, target float64) (float64, bool) {
	lo, hi := area.span(axis)
	start, end := pixelRange(lo, hi)

	var running float64
	last := -1
	for i := start; i < end; i++ {
		d := p.lineDarkness(area, axis, i)
		if d == 0 {
			continue
		}
		last = i
		running += d
		if running >= target {
			// The line's darkness lies in [from, to); take the overshoot
			// back off its trailing end.
			from := math.Max(lo, float64(i))
			to := math.Min(hi, float64(i+1))
			overshoot := running - target
			return to - overshoot/d*(to-from), true
		}
	}

	if last < 0 {
		return 0, false
	}
	p.res.Clamped++
	return math.Min(hi, float64(last+1)), true
}

// lineDarkness sums the weighted darkness of row or column i across area.
func (p *partitioner[P]) lineDarkness(area Rectangle, axis Axis, i int) float64 {
	lo, hi := area.across(axis)
	start, end := pixelRange(lo, hi)

	var sum float64
	for j := start; j < end; j++ {
		if axis == Vertical {
			sum += DarknessAt(p.img, area, i, j)
		} else {
			sum += DarknessAt(p.img, area, j, i)
		}
	}
	return sum
}

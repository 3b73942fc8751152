package rects

import "math"

// Rectangle is an axis-aligned region in pixel units. Coordinates are real
// valued so that splits can fall between pixel boundaries.
type Rectangle struct {
	Left, Top, Right, Bottom float64
}

// Width returns Right - Left.
func (r Rectangle) Width() float64 { return r.Right - r.Left }

// Height returns Bottom - Top.
func (r Rectangle) Height() float64 { return r.Bottom - r.Top }

// Contains reports whether o lies entirely inside r.
func (r Rectangle) Contains(o Rectangle) bool {
	return r.Left <= o.Left && o.Right <= r.Right && r.Top <= o.Top && o.Bottom <= r.Bottom
}

// span returns the extent of r along the scan direction of a.
func (r Rectangle) span(a Axis) (lo, hi float64) {
	if a == Vertical {
		return r.Left, r.Right
	}
	return r.Top, r.Bottom
}

// across returns the extent of r perpendicular to the scan direction of a.
func (r Rectangle) across(a Axis) (lo, hi float64) {
	if a == Vertical {
		return r.Top, r.Bottom
	}
	return r.Left, r.Right
}

// cut splits r at position along the scan direction of a.
func (r Rectangle) cut(a Axis, at float64) (first, second Rectangle) {
	first, second = r, r
	if a == Vertical {
		first.Right, second.Left = at, at
	} else {
		first.Bottom, second.Top = at, at
	}
	return first, second
}

// pixelRange returns the integer indices of the pixels touched by [lo, hi).
func pixelRange(lo, hi float64) (start, end int) {
	return int(math.Floor(lo)), int(math.Ceil(hi))
}

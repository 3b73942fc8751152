package stream

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// Format is a packed raw video pixel format.
type Format string

// Supported formats, in order of preference.
const (
	FormatGray8 Format = "GRAY8"
	FormatRGB   Format = "RGB"
	FormatRGBA  Format = "RGBA"
)

// SupportedFormats lists every format the element accepts on either side.
var SupportedFormats = []Format{FormatGray8, FormatRGB, FormatRGBA}

// ErrUnsupportedFormat is returned for formats outside SupportedFormats.
var ErrUnsupportedFormat = errors.New("unsupported format")

// ParseFormat parses a format name case-insensitively.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToUpper(strings.TrimSpace(s)))
	if f.BytesPerPixel() == 0 {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
	}
	return f, nil
}

// BytesPerPixel returns the size of one pixel, or 0 for unknown formats.
func (f Format) BytesPerPixel() int {
	switch f {
	case FormatGray8:
		return 1
	case FormatRGB:
		return 3
	case FormatRGBA:
		return 4
	}
	return 0
}

// IntRange is an inclusive range of integers.
type IntRange struct {
	Min, Max int
}

// Contains reports whether v lies in r.
func (r IntRange) Contains(v int) bool { return r.Min <= v && v <= r.Max }

func (r IntRange) intersect(o IntRange) (IntRange, bool) {
	out := IntRange{Min: max(r.Min, o.Min), Max: min(r.Max, o.Max)}
	return out, out.Min <= out.Max
}

// Fraction is a frame rate in frames per second.
type Fraction struct {
	Num, Den int
}

func (f Fraction) value() float64 {
	if f.Den == 0 {
		return math.Inf(1)
	}
	return float64(f.Num) / float64(f.Den)
}

// Caps describes the set of frames a pad can carry.
type Caps struct {
	Formats       []Format
	Width, Height IntRange
	MinRate       Fraction
	MaxRate       Fraction
}

// TemplateCaps returns the full set of frames the element handles on either side.
func TemplateCaps() Caps {
	return Caps{
		Formats: append([]Format(nil), SupportedFormats...),
		Width:   IntRange{Min: 0, Max: math.MaxInt32},
		Height:  IntRange{Min: 0, Max: math.MaxInt32},
		MinRate: Fraction{Num: 0, Den: 1},
		MaxRate: Fraction{Num: math.MaxInt32, Den: 1},
	}
}

// Intersect returns the caps accepted by both c and o, keeping the format
// order of c. It reports false when nothing is left.
func (c Caps) Intersect(o Caps) (Caps, bool) {
	var out Caps
	for _, f := range c.Formats {
		for _, g := range o.Formats {
			if f == g {
				out.Formats = append(out.Formats, f)
				break
			}
		}
	}
	var okW, okH bool
	out.Width, okW = c.Width.intersect(o.Width)
	out.Height, okH = c.Height.intersect(o.Height)

	out.MinRate, out.MaxRate = c.MinRate, c.MaxRate
	if o.MinRate.value() > out.MinRate.value() {
		out.MinRate = o.MinRate
	}
	if o.MaxRate.value() < out.MaxRate.value() {
		out.MaxRate = o.MaxRate
	}

	ok := len(out.Formats) > 0 && okW && okH && out.MinRate.value() <= out.MaxRate.value()
	return out, ok
}

// Accepts reports whether a fixed video description fits c.
func (c Caps) Accepts(info VideoInfo) bool {
	found := false
	for _, f := range c.Formats {
		if f == info.Format {
			found = true
			break
		}
	}
	return found && c.Width.Contains(info.Width) && c.Height.Contains(info.Height)
}

// Fixate picks a single VideoInfo out of c: the first format and the
// requested size and rate clamped into range.
func (c Caps) Fixate(width, height int, rate Fraction) VideoInfo {
	info := VideoInfo{
		Width:     min(max(width, c.Width.Min), c.Width.Max),
		Height:    min(max(height, c.Height.Min), c.Height.Max),
		Framerate: rate,
	}
	if len(c.Formats) > 0 {
		info.Format = c.Formats[0]
	}
	if rate.value() < c.MinRate.value() {
		info.Framerate = c.MinRate
	} else if rate.value() > c.MaxRate.value() {
		info.Framerate = c.MaxRate
	}
	return info
}

// VideoInfo is a fully fixed frame description.
type VideoInfo struct {
	Format    Format
	Width     int
	Height    int
	Framerate Fraction

	// Stride is the distance between rows in bytes. 0 means tightly packed.
	Stride int
}

// RowStride returns the effective stride.
func (v VideoInfo) RowStride() int {
	if v.Stride > 0 {
		return v.Stride
	}
	return v.Width * v.Format.BytesPerPixel()
}

// FrameSize returns the number of bytes in one frame.
func (v VideoInfo) FrameSize() int {
	if v.Height == 0 {
		return 0
	}
	return (v.Height-1)*v.RowStride() + v.Width*v.Format.BytesPerPixel()
}

// Negotiate intersects what the upstream peer offers and what the
// downstream peer accepts with the element template on each side, then
// fixates each side at the requested size. Input and output are negotiated
// independently; only the size must fit both.
func Negotiate(upstream, downstream Caps, width, height int, rate Fraction) (in, out VideoInfo, err error) {
	tmpl := TemplateCaps()

	inCaps, ok := tmpl.Intersect(upstream)
	if !ok {
		return in, out, fmt.Errorf("%w: upstream offers nothing the element accepts", ErrNotNegotiated)
	}
	outCaps, ok := tmpl.Intersect(downstream)
	if !ok {
		return in, out, fmt.Errorf("%w: downstream accepts nothing the element produces", ErrNotNegotiated)
	}

	in = inCaps.Fixate(width, height, rate)

	out = outCaps.Fixate(in.Width, in.Height, in.Framerate)
	if out.Width != in.Width || out.Height != in.Height {
		return in, out, fmt.Errorf("%w: downstream cannot take %dx%d frames", ErrNotNegotiated, in.Width, in.Height)
	}
	return in, out, nil
}

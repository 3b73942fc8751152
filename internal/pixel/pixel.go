package pixel

// BT.709 luma weights, in ten-thousandths.
const (
	lumaR = 2126
	lumaG = 7152
	lumaB = 722
)

// Pixel is the capability every channel layout exposes to the darkness model.
type Pixel interface {
	// Luma reduces the pixel to a single intensity in channel units,
	// in the range [0, MaxValue()].
	Luma() float64

	// MaxValue is the largest value a single channel can hold.
	MaxValue() float64

	// Channels is the number of channels in the layout, alpha included.
	Channels() int
}

// Kind is a Pixel that can also produce the two values a canvas is painted with.
type Kind[P any] interface {
	Pixel

	// Background is the fully opaque white value of the layout.
	Background() P

	// Foreground is the fully opaque black value of the layout.
	Foreground() P
}

// Packable is a Kind stored as one byte per channel in a packed buffer.
type Packable[P any] interface {
	Kind[P]

	// Unpack reads a pixel from b, which holds exactly Channels() bytes.
	Unpack(b []byte) P

	// Pack writes the pixel into b, which holds exactly Channels() bytes.
	Pack(b []byte)
}

// luma is computed on integers so that equal channels reduce to exactly
// their own value.
func luma(r, g, b uint64) float64 {
	return float64(lumaR*r+lumaG*g+lumaB*b) / 10000
}

// Gray8 is an 8-bit grayscale pixel.
type Gray8 struct{ Y uint8 }

func (p Gray8) Luma() float64       { return float64(p.Y) }
func (Gray8) MaxValue() float64     { return 0xff }
func (Gray8) Channels() int         { return 1 }
func (Gray8) Background() Gray8     { return Gray8{0xff} }
func (Gray8) Foreground() Gray8     { return Gray8{0} }
func (Gray8) Unpack(b []byte) Gray8 { return Gray8{b[0]} }
func (p Gray8) Pack(b []byte)       { b[0] = p.Y }

// Gray16 is a 16-bit grayscale pixel.
type Gray16 struct{ Y uint16 }

func (p Gray16) Luma() float64    { return float64(p.Y) }
func (Gray16) MaxValue() float64  { return 0xffff }
func (Gray16) Channels() int      { return 1 }
func (Gray16) Background() Gray16 { return Gray16{0xffff} }
func (Gray16) Foreground() Gray16 { return Gray16{0} }

// RGB8 is a 24-bit colour pixel without alpha.
type RGB8 struct{ R, G, B uint8 }

func (p RGB8) Luma() float64   { return luma(uint64(p.R), uint64(p.G), uint64(p.B)) }
func (RGB8) MaxValue() float64 { return 0xff }
func (RGB8) Channels() int     { return 3 }
func (RGB8) Background() RGB8  { return RGB8{0xff, 0xff, 0xff} }
func (RGB8) Foreground() RGB8  { return RGB8{0, 0, 0} }

func (RGB8) Unpack(b []byte) RGB8 { return RGB8{b[0], b[1], b[2]} }

func (p RGB8) Pack(b []byte) {
	b[0], b[1], b[2] = p.R, p.G, p.B
}

// RGBA8 is a 32-bit colour pixel with alpha.
type RGBA8 struct{ R, G, B, A uint8 }

func (p RGBA8) Luma() float64   { return luma(uint64(p.R), uint64(p.G), uint64(p.B)) }
func (RGBA8) MaxValue() float64 { return 0xff }
func (RGBA8) Channels() int     { return 4 }
func (RGBA8) Background() RGBA8 { return RGBA8{0xff, 0xff, 0xff, 0xff} }
func (RGBA8) Foreground() RGBA8 { return RGBA8{0, 0, 0, 0xff} }

func (RGBA8) Unpack(b []byte) RGBA8 { return RGBA8{b[0], b[1], b[2], b[3]} }

func (p RGBA8) Pack(b []byte) {
	b[0], b[1], b[2], b[3] = p.R, p.G, p.B, p.A
}

// RGBA16 is a 64-bit colour pixel with alpha. It is the fallback layout for
// image types without a dedicated adapter.
type RGBA16 struct{ R, G, B, A uint16 }

func (p RGBA16) Luma() float64    { return luma(uint64(p.R), uint64(p.G), uint64(p.B)) }
func (RGBA16) MaxValue() float64  { return 0xffff }
func (RGBA16) Channels() int      { return 4 }
func (RGBA16) Background() RGBA16 { return RGBA16{0xffff, 0xffff, 0xffff, 0xffff} }
func (RGBA16) Foreground() RGBA16 { return RGBA16{0, 0, 0, 0xffff} }

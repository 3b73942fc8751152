package pixel

import (
	"fmt"
	"image"
	"image/color"
)

// Raster is a read-only grid of pixels.
type Raster[P Pixel] interface {
	Width() int
	Height() int

	// PixelAt returns the pixel at 0-based (x, y). Callers stay within
	// [0, Width()) × [0, Height()).
	PixelAt(x, y int) P
}

// Canvas is a writable grid of pixels.
type Canvas[P Pixel] interface {
	Width() int
	Height() int

	// SetPixel stores p at 0-based (x, y). Callers stay within bounds.
	SetPixel(x, y int, p P)
}

// GrayImage adapts *image.Gray as a Gray8 raster and canvas.
type GrayImage struct{ Img *image.Gray }

// NewGrayImage wraps img.
func NewGrayImage(img *image.Gray) *GrayImage { return &GrayImage{Img: img} }

func (g *GrayImage) Width() int  { return g.Img.Rect.Dx() }
func (g *GrayImage) Height() int { return g.Img.Rect.Dy() }

func (g *GrayImage) PixelAt(x, y int) Gray8 {
	return Gray8{g.Img.Pix[g.Img.PixOffset(x+g.Img.Rect.Min.X, y+g.Img.Rect.Min.Y)]}
}

func (g *GrayImage) SetPixel(x, y int, p Gray8) {
	g.Img.Pix[g.Img.PixOffset(x+g.Img.Rect.Min.X, y+g.Img.Rect.Min.Y)] = p.Y
}

// Gray16Image adapts *image.Gray16 as a Gray16 raster and canvas.
type Gray16Image struct{ Img *image.Gray16 }

// NewGray16Image wraps img.
func NewGray16Image(img *image.Gray16) *Gray16Image { return &Gray16Image{Img: img} }

func (g *Gray16Image) Width() int  { return g.Img.Rect.Dx() }
func (g *Gray16Image) Height() int { return g.Img.Rect.Dy() }

func (g *Gray16Image) PixelAt(x, y int) Gray16 {
	return Gray16{g.Img.Gray16At(x+g.Img.Rect.Min.X, y+g.Img.Rect.Min.Y).Y}
}

func (g *Gray16Image) SetPixel(x, y int, p Gray16) {
	g.Img.SetGray16(x+g.Img.Rect.Min.X, y+g.Img.Rect.Min.Y, color.Gray16{Y: p.Y})
}

// RGBAImage adapts *image.RGBA as an RGBA8 raster and canvas. PixelAt
// returns non-premultiplied values so that a colour reads the same here as
// through NRGBAImage; SetPixel stores opaque values as they are.
type RGBAImage struct{ Img *image.RGBA }

// NewRGBAImage wraps img.
func NewRGBAImage(img *image.RGBA) *RGBAImage { return &RGBAImage{Img: img} }

func (r *RGBAImage) Width() int  { return r.Img.Rect.Dx() }
func (r *RGBAImage) Height() int { return r.Img.Rect.Dy() }

func (r *RGBAImage) PixelAt(x, y int) RGBA8 {
	i := r.Img.PixOffset(x+r.Img.Rect.Min.X, y+r.Img.Rect.Min.Y)
	p := RGBA8{}.Unpack(r.Img.Pix[i : i+4 : i+4])
	if p.A == 0xff {
		return p
	}
	c := color.NRGBAModel.Convert(color.RGBA{p.R, p.G, p.B, p.A}).(color.NRGBA)
	return RGBA8{c.R, c.G, c.B, c.A}
}

func (r *RGBAImage) SetPixel(x, y int, p RGBA8) {
	i := r.Img.PixOffset(x+r.Img.Rect.Min.X, y+r.Img.Rect.Min.Y)
	p.Pack(r.Img.Pix[i : i+4 : i+4])
}

// NRGBAImage adapts *image.NRGBA as an RGBA8 raster and canvas.
type NRGBAImage struct{ Img *image.NRGBA }

// NewNRGBAImage wraps img.
func NewNRGBAImage(img *image.NRGBA) *NRGBAImage { return &NRGBAImage{Img: img} }

func (n *NRGBAImage) Width() int  { return n.Img.Rect.Dx() }
func (n *NRGBAImage) Height() int { return n.Img.Rect.Dy() }

func (n *NRGBAImage) PixelAt(x, y int) RGBA8 {
	i := n.Img.PixOffset(x+n.Img.Rect.Min.X, y+n.Img.Rect.Min.Y)
	return RGBA8{}.Unpack(n.Img.Pix[i : i+4 : i+4])
}

func (n *NRGBAImage) SetPixel(x, y int, p RGBA8) {
	i := n.Img.PixOffset(x+n.Img.Rect.Min.X, y+n.Img.Rect.Min.Y)
	p.Pack(n.Img.Pix[i : i+4 : i+4])
}

// AnyImage adapts an arbitrary image.Image as a read-only RGBA16 raster.
// Colours are converted to non-premultiplied 16-bit values so that alpha
// does not darken the result.
type AnyImage struct{ Img image.Image }

// NewAnyImage wraps img.
func NewAnyImage(img image.Image) *AnyImage { return &AnyImage{Img: img} }

func (a *AnyImage) Width() int  { return a.Img.Bounds().Dx() }
func (a *AnyImage) Height() int { return a.Img.Bounds().Dy() }

func (a *AnyImage) PixelAt(x, y int) RGBA16 {
	o := a.Img.Bounds().Min
	c := color.NRGBA64Model.Convert(a.Img.At(x+o.X, y+o.Y)).(color.NRGBA64)
	return RGBA16{c.R, c.G, c.B, c.A}
}

// Packed is a raster and canvas over a byte buffer holding one byte per
// channel, rows Stride bytes apart. It is the layout of raw video frames.
type Packed[P Packable[P]] struct {
	Pix    []byte
	Stride int
	W, H   int
}

// NewPacked wraps pix as a w×h buffer of P. A stride of 0 means rows are
// tightly packed.
func NewPacked[P Packable[P]](pix []byte, w, h, stride int) (*Packed[P], error) {
	var zero P
	n := zero.Channels()
	if w < 0 || h < 0 {
		return nil, fmt.Errorf("invalid dimensions %dx%d", w, h)
	}
	if stride == 0 {
		stride = w * n
	}
	if stride < w*n {
		return nil, fmt.Errorf("stride %d too small for width %d", stride, w)
	}
	if h > 0 && len(pix) < (h-1)*stride+w*n {
		return nil, fmt.Errorf("buffer of %d bytes too small for %dx%d with stride %d", len(pix), w, h, stride)
	}
	return &Packed[P]{Pix: pix, Stride: stride, W: w, H: h}, nil
}

func (b *Packed[P]) Width() int  { return b.W }
func (b *Packed[P]) Height() int { return b.H }

func (b *Packed[P]) PixelAt(x, y int) P {
	var zero P
	n := zero.Channels()
	i := y*b.Stride + x*n
	return zero.Unpack(b.Pix[i : i+n : i+n])
}

func (b *Packed[P]) SetPixel(x, y int, p P) {
	n := p.Channels()
	i := y*b.Stride + x*n
	p.Pack(b.Pix[i : i+n : i+n])
}

package stream

import (
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/ironsheep/rectanglify/internal/pixel"
	"github.com/ironsheep/rectanglify/internal/rects"
)

// Element metadata.
const (
	ElementName        = "rectanglify"
	ElementKlass       = "Filter/Effect/Converter/Video"
	ElementDescription = "Redraws video frames as black-bordered rectangles following their darkness"
)

// PropRectsPerPixel is the name of the density property.
const PropRectsPerPixel = "rects-per-pixel"

// DefaultRectsPerPixel is the element's density until the property is set.
// Video frames are large, so it is far below the still-image default.
const DefaultRectsPerPixel = 0.0001

var (
	// ErrNotNegotiated is returned when frames arrive before caps are set
	// or when caps cannot be agreed.
	ErrNotNegotiated = errors.New("not negotiated")

	// ErrFrameSize is returned for a frame whose buffer does not match the
	// negotiated caps.
	ErrFrameSize = errors.New("frame size mismatch")

	// ErrUnknownProperty is returned for property names other than
	// PropRectsPerPixel.
	ErrUnknownProperty = errors.New("unknown property")

	// ErrPropertyRange is returned for property values outside
	// [0, MaxFloat64].
	ErrPropertyRange = errors.New("property value out of range")
)

// Direction identifies a pad.
type Direction int

const (
	// Sink is the pad frames arrive on.
	Sink Direction = iota

	// Src is the pad stylized frames leave from.
	Src
)

// Frame is a raw video frame.
type Frame struct {
	Info VideoInfo
	Data []byte
}

// NewFrame allocates a zeroed frame for info.
func NewFrame(info VideoInfo) *Frame {
	return &Frame{Info: info, Data: make([]byte, info.FrameSize())}
}

// Element stylizes raw video frames. It never works in place and never
// passes frames through untouched, even when both sides share a format.
type Element struct {
	logger   *log.Logger
	settings *rects.Store

	// frameStarted, when set, is called with the snapshot a frame will use
	// before any of its pixels are read.
	frameStarted func(rects.Settings)

	mu      sync.Mutex
	in, out *VideoInfo
}

// NewElement creates an element with the density at DefaultRectsPerPixel.
func NewElement(logger *log.Logger) *Element {
	if logger == nil {
		logger = log.Default()
	}
	return &Element{
		logger:   logger.WithPrefix(ElementName),
		settings: rects.NewStore(rects.Settings{RectsPerPixel: DefaultRectsPerPixel}),
	}
}

// SetProperty sets a property by name. The value must be a float64.
func (e *Element) SetProperty(name string, value any) error {
	if name != PropRectsPerPixel {
		return fmt.Errorf("%w: %q", ErrUnknownProperty, name)
	}
	v, ok := value.(float64)
	if !ok {
		return fmt.Errorf("property %q expects float64, got %T", name, value)
	}
	if math.IsNaN(v) || v < 0 || v > math.MaxFloat64 {
		return fmt.Errorf("%w: %s = %v", ErrPropertyRange, name, v)
	}
	old := e.settings.SetRectsPerPixel(v)
	e.logger.Infof("Changing rects-per-pixel from %g to %g", old, v)
	return nil
}

// Property returns a property by name.
func (e *Element) Property(name string) (any, error) {
	if name != PropRectsPerPixel {
		return nil, fmt.Errorf("%w: %q", ErrUnknownProperty, name)
	}
	return e.settings.Snapshot().RectsPerPixel, nil
}

// PadTemplate returns the caps a pad accepts. Both pads take the full set.
func (e *Element) PadTemplate(Direction) Caps {
	return TemplateCaps()
}

// TransformCaps returns the caps the opposite pad can take given caps on
// one pad. The two sides are independent, so this is always the template.
func (e *Element) TransformCaps(Direction, Caps) Caps {
	return TemplateCaps()
}

// SetCaps fixes the input and output frame descriptions.
func (e *Element) SetCaps(in, out VideoInfo) error {
	tmpl := TemplateCaps()
	if !tmpl.Accepts(in) {
		return fmt.Errorf("%w: input %s %dx%d", ErrNotNegotiated, in.Format, in.Width, in.Height)
	}
	if !tmpl.Accepts(out) {
		return fmt.Errorf("%w: output %s %dx%d", ErrNotNegotiated, out.Format, out.Width, out.Height)
	}
	if in.Width != out.Width || in.Height != out.Height {
		return fmt.Errorf("%w: input %dx%d differs from output %dx%d", ErrNotNegotiated, in.Width, in.Height, out.Width, out.Height)
	}

	e.mu.Lock()
	e.in, e.out = &in, &out
	e.mu.Unlock()

	e.logger.Debug("Caps set", "in", in.Format, "out", out.Format, "width", in.Width, "height", in.Height)
	return nil
}

// Caps returns the negotiated input and output descriptions.
func (e *Element) Caps() (in, out VideoInfo, err error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.in == nil || e.out == nil {
		return in, out, ErrNotNegotiated
	}
	return *e.in, *e.out, nil
}

// TransformFrame stylizes in into out using one snapshot of the density.
// The frames are read and written with the negotiated caps; their Info
// fields are ignored and left unchanged.
func (e *Element) TransformFrame(in, out *Frame) (rects.Result, error) {
	inInfo, outInfo, err := e.Caps()
	if err != nil {
		return rects.Result{}, err
	}
	if len(in.Data) < inInfo.FrameSize() {
		return rects.Result{}, fmt.Errorf("%w: input has %d bytes, want %d", ErrFrameSize, len(in.Data), inInfo.FrameSize())
	}
	if len(out.Data) < outInfo.FrameSize() {
		return rects.Result{}, fmt.Errorf("%w: output has %d bytes, want %d", ErrFrameSize, len(out.Data), outInfo.FrameSize())
	}
	src := &Frame{Info: inInfo, Data: in.Data}
	dst := &Frame{Info: outInfo, Data: out.Data}

	s := e.settings.Snapshot()
	if e.frameStarted != nil {
		e.frameStarted(s)
	}
	switch inInfo.Format {
	case FormatGray8:
		return transformFrom[pixel.Gray8](src, dst, s)
	case FormatRGB:
		return transformFrom[pixel.RGB8](src, dst, s)
	case FormatRGBA:
		return transformFrom[pixel.RGBA8](src, dst, s)
	}
	return rects.Result{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, inInfo.Format)
}

func transformFrom[I pixel.Packable[I]](in, out *Frame, s rects.Settings) (rects.Result, error) {
	switch out.Info.Format {
	case FormatGray8:
		return transform[I, pixel.Gray8](in, out, s)
	case FormatRGB:
		return transform[I, pixel.RGB8](in, out, s)
	case FormatRGBA:
		return transform[I, pixel.RGBA8](in, out, s)
	}
	return rects.Result{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, out.Info.Format)
}

func transform[I pixel.Packable[I], O pixel.Packable[O]](in, out *Frame, s rects.Settings) (rects.Result, error) {
	src, err := pixel.NewPacked[I](in.Data, in.Info.Width, in.Info.Height, in.Info.RowStride())
	if err != nil {
		return rects.Result{}, fmt.Errorf("%w: %v", ErrFrameSize, err)
	}
	dst, err := pixel.NewPacked[O](out.Data, out.Info.Width, out.Info.Height, out.Info.RowStride())
	if err != nil {
		return rects.Result{}, fmt.Errorf("%w: %v", ErrFrameSize, err)
	}
	return rects.Rectanglify[I, O](src, dst, s), nil
}

// Package stream adapts the stylizer to raw video: it negotiates frame
// formats with its neighbours, exposes the density as a live property and
// stylizes one frame per call.
//
// # Formats
//
// Frames are packed 8-bit buffers in one of GRAY8, RGB or RGBA. The input and
// output sides are negotiated independently, so an element can read RGB and
// write GRAY8. Each side accepts any size and any frame rate.
//
// # Properties
//
// The element exposes a single property, "rects-per-pixel", in the range
// [0, MaxFloat64]. It may be set from any goroutine while frames are being
// processed. Each frame takes one snapshot of the value when it starts and
// uses it throughout; a change applies from the next frame on.
//
// # Pipes
//
// Pipe runs an element over a stream of back-to-back raw frames, the format
// produced by `ffmpeg -f rawvideo`.
package stream

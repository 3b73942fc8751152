// Package pixel describes the channel layouts the stylizer can read from and
// write to.
//
// Every concrete pixel type implements the Pixel capability interface: a luma
// reduction, the maximum value a channel can hold, and the number of channels.
// Output pixel types additionally implement Kind, which supplies the canvas
// background (every channel at its maximum) and foreground (every colour
// channel at its minimum, alpha at its maximum).
//
// # Rasters
//
// Raster and Canvas are the read and write views used by the core. Adapters
// are provided for the standard library image types and for tightly packed
// 8-bit frame buffers (see Packed). All coordinates are 0-based and relative
// to the top-left pixel of the underlying image, regardless of its Bounds().Min.
//
// # Luma
//
// Colour layouts reduce to luma with the BT.709 weights
// (0.2126 R + 0.7152 G + 0.0722 B) applied to raw channel values; a pixel
// with equal channels has exactly that value as its luma. Alpha never
// contributes.
package pixel

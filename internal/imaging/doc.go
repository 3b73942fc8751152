// Package imaging is the file side of the stylizer: it loads images from
// disk, optionally smooths or shrinks them, runs the rectangle partitioning
// over them and writes the result back out.
//
// All operations work with standard Go image.Image types and use a coordinate
// system where (0,0) is at the top-left corner, X increases rightward, and Y
// increases downward.
//
// # Formats
//
// Decoding goes through github.com/disintegration/imaging, which honours EXIF
// orientation, so PNG, JPEG, GIF, BMP and TIFF are accepted; WebP is added
// through golang.org/x/image. The output format is chosen from the file
// extension of the destination.
//
// # Pixel Layouts
//
// Gray, Gray16, RGBA and NRGBA images are read directly. Any other layout
// (YCbCr from JPEG, paletted GIF, ...) is read through a 16-bit colour
// conversion. The stylized output is always 8-bit grayscale.
//
// # Thread Safety
//
// The ImageCache type is safe for concurrent use. Individual operations are
// stateless and can be called concurrently on different images.
//
// # Error Handling
//
// Functions return errors for I/O and codec failures only:
//   - File not found or unreadable
//   - Data that is not a supported image
//   - Unsupported output extension or encoder failure
//
// The stylizer itself never fails; degenerate inputs such as an all-white
// image simply produce a blank canvas.
package imaging

package imaging

import (
	"image"

	"github.com/ironsheep/rectanglify/internal/pixel"
	"github.com/ironsheep/rectanglify/internal/rects"
)

// Rectanglify stylizes img into a new 8-bit grayscale image of the same size.
func Rectanglify(img image.Image, s rects.Settings) (*image.Gray, rects.Result) {
	b := img.Bounds()
	out := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	canvas := pixel.NewGrayImage(out)

	var res rects.Result
	switch src := img.(type) {
	case *image.Gray:
		res = rects.Rectanglify[pixel.Gray8, pixel.Gray8](pixel.NewGrayImage(src), canvas, s)
	case *image.Gray16:
		res = rects.Rectanglify[pixel.Gray16, pixel.Gray8](pixel.NewGray16Image(src), canvas, s)
	case *image.RGBA:
		res = rects.Rectanglify[pixel.RGBA8, pixel.Gray8](pixel.NewRGBAImage(src), canvas, s)
	case *image.NRGBA:
		res = rects.Rectanglify[pixel.RGBA8, pixel.Gray8](pixel.NewNRGBAImage(src), canvas, s)
	default:
		res = rects.Rectanglify[pixel.RGBA16, pixel.Gray8](pixel.NewAnyImage(img), canvas, s)
	}
	return out, res
}

// TotalDarkness returns the darkness mass of img.
func TotalDarkness(img image.Image) float64 {
	switch src := img.(type) {
	case *image.Gray:
		return rects.TotalDarkness[pixel.Gray8](pixel.NewGrayImage(src))
	case *image.Gray16:
		return rects.TotalDarkness[pixel.Gray16](pixel.NewGray16Image(src))
	case *image.RGBA:
		return rects.TotalDarkness[pixel.RGBA8](pixel.NewRGBAImage(src))
	case *image.NRGBA:
		return rects.TotalDarkness[pixel.RGBA8](pixel.NewNRGBAImage(src))
	default:
		return rects.TotalDarkness[pixel.RGBA16](pixel.NewAnyImage(img))
	}
}

// Stylize preprocesses img according to opts and stylizes the result.
func Stylize(img image.Image, s rects.Settings, opts PreprocessOptions) (*image.Gray, rects.Result) {
	return Rectanglify(Preprocess(img, opts), s)
}

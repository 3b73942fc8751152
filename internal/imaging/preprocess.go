package imaging

import (
	"image"

	"github.com/anthonynsimon/bild/blur"
	"github.com/disintegration/imaging"
)

// PreprocessOptions shapes the image before its darkness is measured.
type PreprocessOptions struct {
	// MaxSize limits the longest side of the image. Larger images are
	// downscaled with a Lanczos filter, keeping their aspect ratio.
	// 0 disables downscaling.
	MaxSize int `json:"max_size,omitempty"`

	// BlurSigma is the radius of a Gaussian blur applied after
	// downscaling. It evens out fine texture so rectangles follow broad
	// tonal areas instead of noise. 0 disables blurring.
	BlurSigma float64 `json:"blur_sigma,omitempty"`
}

// Preprocess applies opts to img. With zero options img is returned as is.
func Preprocess(img image.Image, opts PreprocessOptions) image.Image {
	b := img.Bounds()
	if opts.MaxSize > 0 && (b.Dx() > opts.MaxSize || b.Dy() > opts.MaxSize) {
		img = imaging.Fit(img, opts.MaxSize, opts.MaxSize, imaging.Lanczos)
	}
	if opts.BlurSigma > 0 {
		img = blur.Gaussian(img, opts.BlurSigma)
	}
	return img
}

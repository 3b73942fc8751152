package imaging

import (
	"image"

	"github.com/ironsheep/rectanglify/internal/rects"
)

// DarknessReport describes how an image would be partitioned at a given density.
type DarknessReport struct {
	Width  int `json:"width"`
	Height int `json:"height"`

	// TotalDarkness is the sum of per-pixel darkness, in [0, Width*Height].
	TotalDarkness float64 `json:"total_darkness"`

	// MeanDarkness is TotalDarkness divided by the pixel count.
	MeanDarkness float64 `json:"mean_darkness"`

	// RectsPerPixel is the density the estimate was made for.
	RectsPerPixel float64 `json:"rects_per_pixel"`

	// RequestedRects is round(TotalDarkness * RectsPerPixel).
	RequestedRects int `json:"requested_rects"`

	// Rects is RequestedRects capped at MaxRects.
	Rects int `json:"rects"`

	// MaxRects is the largest count the image can be divided into.
	MaxRects int `json:"max_rects"`
}

// Analyze measures img and estimates the rectangle count for s.
func Analyze(img image.Image, s rects.Settings) *DarknessReport {
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	total := TotalDarkness(img)
	limit := rects.MaxRects(w, h)
	requested, n := rects.RectCount(total, s.RectsPerPixel, limit)

	report := &DarknessReport{
		Width:          w,
		Height:         h,
		TotalDarkness:  total,
		RectsPerPixel:  s.RectsPerPixel,
		RequestedRects: requested,
		Rects:          n,
		MaxRects:       limit,
	}
	if w*h > 0 {
		report.MeanDarkness = total / float64(w*h)
	}
	return report
}

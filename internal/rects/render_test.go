package rects

import (
	"image"
	"testing"

	"github.com/ironsheep/rectanglify/internal/pixel"
)

func TestClear_RGBAOpaqueWhite(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 3, 2))
	Clear[pixel.RGBA8](pixel.NewRGBAImage(img))

	for i, v := range img.Pix {
		if v != 255 {
			t.Fatalf("byte %d: got %d, want 255", i, v)
		}
	}
}

func TestDrawLine(t *testing.T) {
	tests := []struct {
		name     string
		axis     Axis
		position float64
		start    float64
		end      float64
		want     []image.Point
	}{
		{"vertical on boundary", Vertical, 2, 0, 2, []image.Point{{1, 0}, {1, 1}, {1, 2}}},
		{"vertical inside pixel", Vertical, 2.4, 1.5, 2.9, []image.Point{{2, 1}, {2, 2}}},
		{"horizontal", Horizontal, 1, 0.2, 3, []image.Point{{0, 0}, {1, 0}, {2, 0}, {3, 0}}},
		{"clipped", Horizontal, 4, 2, 9, []image.Point{{2, 3}, {3, 3}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := image.NewRGBA(image.Rect(0, 0, 4, 4))
			c := pixel.NewRGBAImage(img)
			Clear[pixel.RGBA8](c)
			DrawLine[pixel.RGBA8](c, tt.axis, tt.position, tt.start, tt.end)

			black := map[image.Point]bool{}
			for _, p := range tt.want {
				black[p] = true
			}
			for y := 0; y < 4; y++ {
				for x := 0; x < 4; x++ {
					got := img.RGBAAt(x, y)
					if got.A != 255 {
						t.Errorf("(%d,%d) not opaque: %v", x, y, got)
					}
					isBlack := got.R == 0 && got.G == 0 && got.B == 0
					if isBlack != black[image.Point{x, y}] {
						t.Errorf("(%d,%d): black=%v, want %v", x, y, isBlack, black[image.Point{x, y}])
					}
				}
			}
		})
	}
}

func TestCanvasRenderer(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 3, 3))
	c := pixel.NewGrayImage(img)
	Clear[pixel.Gray8](c)

	var r Renderer = CanvasRenderer[pixel.Gray8]{Canvas: c}
	r.DrawLine(Line{Axis: Vertical, Position: 1.5, Start: 0, End: 3})

	for y := 0; y < 3; y++ {
		if got := img.GrayAt(1, y).Y; got != 0 {
			t.Errorf("(1,%d): got %d, want 0", y, got)
		}
		if got := img.GrayAt(0, y).Y; got != 255 {
			t.Errorf("(0,%d): got %d, want 255", y, got)
		}
	}
}

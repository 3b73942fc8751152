package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/rectanglify/internal/rects"
)

// Save writes img to path in the format implied by its extension.
func Save(img image.Image, path string) error {
	if err := imaging.Save(img, path); err != nil {
		return fmt.Errorf("failed to save output: %w", err)
	}
	return nil
}

// RenderResult contains a stylized image and a summary of how it was built.
type RenderResult struct {
	Width  int `json:"width"`
	Height int `json:"height"`

	// ImageBase64 is the stylized image as base64 PNG. Empty when the image
	// was written to OutputPath instead.
	ImageBase64 string `json:"image_base64,omitempty"`
	MimeType    string `json:"mime_type,omitempty"`
	OutputPath  string `json:"output_path,omitempty"`

	Stats rects.Result `json:"stats"`
}

// EncodeResult packages out as a RenderResult with the image inlined as
// base64 PNG.
func EncodeResult(out image.Image, res rects.Result) (*RenderResult, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, out, imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}

	return &RenderResult{
		Width:       out.Bounds().Dx(),
		Height:      out.Bounds().Dy(),
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/png",
		Stats:       res,
	}, nil
}

package stream

import (
	"errors"
	"math"
	"testing"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"GRAY8", FormatGray8, false},
		{"gray8", FormatGray8, false},
		{" rgb ", FormatRGB, false},
		{"RGBA", FormatRGBA, false},
		{"I420", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrUnsupportedFormat) {
					t.Fatalf("ParseFormat(%q) error = %v, want ErrUnsupportedFormat", tt.in, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseFormat(%q) unexpected error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseFormat(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestVideoInfo_FrameSize(t *testing.T) {
	tests := []struct {
		name string
		info VideoInfo
		want int
	}{
		{"gray tight", VideoInfo{Format: FormatGray8, Width: 4, Height: 3}, 12},
		{"rgb tight", VideoInfo{Format: FormatRGB, Width: 4, Height: 3}, 36},
		{"rgba tight", VideoInfo{Format: FormatRGBA, Width: 2, Height: 2}, 16},
		{"gray padded", VideoInfo{Format: FormatGray8, Width: 3, Height: 2, Stride: 4}, 7},
		{"empty", VideoInfo{Format: FormatRGB, Width: 4, Height: 0}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.info.FrameSize(); got != tt.want {
				t.Errorf("FrameSize() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestTemplateCaps(t *testing.T) {
	c := TemplateCaps()
	if len(c.Formats) != 3 {
		t.Fatalf("expected 3 formats, got %v", c.Formats)
	}
	if c.Width.Max != math.MaxInt32 || c.Height.Max != math.MaxInt32 {
		t.Errorf("expected sizes up to MaxInt32, got %+v %+v", c.Width, c.Height)
	}

	// Mutating the returned slice must not leak into the next call.
	c.Formats[0] = "I420"
	if TemplateCaps().Formats[0] != FormatGray8 {
		t.Error("TemplateCaps shares its format slice")
	}
}

func TestCaps_Intersect(t *testing.T) {
	offer := Caps{
		Formats: []Format{"I420", FormatRGBA, FormatRGB},
		Width:   IntRange{Min: 16, Max: 1920},
		Height:  IntRange{Min: 16, Max: 1080},
		MinRate: Fraction{Num: 0, Den: 1},
		MaxRate: Fraction{Num: 30, Den: 1},
	}

	got, ok := TemplateCaps().Intersect(offer)
	if !ok {
		t.Fatal("expected a non-empty intersection")
	}
	if len(got.Formats) != 2 || got.Formats[0] != FormatRGB || got.Formats[1] != FormatRGBA {
		t.Errorf("formats = %v, want [RGB RGBA] in template order", got.Formats)
	}
	if got.Width != (IntRange{16, 1920}) || got.Height != (IntRange{16, 1080}) {
		t.Errorf("size = %+v x %+v", got.Width, got.Height)
	}
	if got.MaxRate != (Fraction{30, 1}) {
		t.Errorf("MaxRate = %+v, want 30/1", got.MaxRate)
	}

	if _, ok := TemplateCaps().Intersect(Caps{Formats: []Format{"NV12"}, Width: IntRange{0, 10}, Height: IntRange{0, 10}}); ok {
		t.Error("expected an empty intersection for an unknown format")
	}
}

func TestNegotiate(t *testing.T) {
	up := Caps{
		Formats: []Format{FormatRGB},
		Width:   IntRange{Min: 1, Max: 640},
		Height:  IntRange{Min: 1, Max: 480},
		MaxRate: Fraction{Num: 60, Den: 1},
	}
	down := Caps{
		Formats: []Format{FormatGray8},
		Width:   IntRange{Min: 1, Max: 4096},
		Height:  IntRange{Min: 1, Max: 4096},
		MaxRate: Fraction{Num: 60, Den: 1},
	}

	in, out, err := Negotiate(up, down, 320, 240, Fraction{Num: 25, Den: 1})
	if err != nil {
		t.Fatalf("Negotiate failed: %v", err)
	}
	if in.Format != FormatRGB || out.Format != FormatGray8 {
		t.Errorf("formats = %s -> %s, want RGB -> GRAY8", in.Format, out.Format)
	}
	if in.Width != 320 || in.Height != 240 || out.Width != 320 || out.Height != 240 {
		t.Errorf("sizes = %dx%d -> %dx%d", in.Width, in.Height, out.Width, out.Height)
	}
	if out.Framerate != (Fraction{25, 1}) {
		t.Errorf("framerate = %+v", out.Framerate)
	}
}

func TestNegotiate_Failures(t *testing.T) {
	tmpl := TemplateCaps()
	tests := []struct {
		name     string
		up, down Caps
		w, h     int
	}{
		{
			name: "upstream format",
			up:   Caps{Formats: []Format{"I420"}, Width: IntRange{0, 100}, Height: IntRange{0, 100}},
			down: tmpl,
			w:    10,
			h:    10,
		},
		{
			name: "downstream format",
			up:   tmpl,
			down: Caps{Formats: []Format{"NV12"}, Width: IntRange{0, 100}, Height: IntRange{0, 100}},
			w:    10,
			h:    10,
		},
		{
			name: "downstream size",
			up:   tmpl,
			down: Caps{Formats: []Format{FormatRGB}, Width: IntRange{0, 100}, Height: IntRange{0, 100}},
			w:    200,
			h:    10,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Negotiate(tt.up, tt.down, tt.w, tt.h, Fraction{30, 1})
			if !errors.Is(err, ErrNotNegotiated) {
				t.Errorf("error = %v, want ErrNotNegotiated", err)
			}
		})
	}
}

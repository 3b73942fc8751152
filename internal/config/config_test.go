package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/ironsheep/rectanglify/internal/rects"
	"github.com/ironsheep/rectanglify/internal/stream"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rectanglify.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.RectsPerPixel != rects.DefaultRectsPerPixel {
		t.Errorf("RectsPerPixel = %v, want %v", cfg.RectsPerPixel, rects.DefaultRectsPerPixel)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config does not validate: %v", err)
	}
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
rects_per_pixel = 0.25

[preprocess]
blur_sigma = 1.5
max_size = 512

[stream]
input_format = "rgb"
output_format = "GRAY8"
width = 640
height = 480
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.RectsPerPixel != 0.25 {
		t.Errorf("RectsPerPixel = %v", cfg.RectsPerPixel)
	}
	if cfg.Preprocess.BlurSigma != 1.5 || cfg.Preprocess.MaxSize != 512 {
		t.Errorf("Preprocess = %+v", cfg.Preprocess)
	}
	if cfg.Stream.Width != 640 || cfg.Stream.Height != 480 {
		t.Errorf("Stream size = %dx%d", cfg.Stream.Width, cfg.Stream.Height)
	}

	if got := cfg.Settings().RectsPerPixel; got != 0.25 {
		t.Errorf("Settings().RectsPerPixel = %v", got)
	}
	opts := cfg.PreprocessOptions()
	if opts.BlurSigma != 1.5 || opts.MaxSize != 512 {
		t.Errorf("PreprocessOptions() = %+v", opts)
	}
}

func TestLoad_PartialKeepsDefaults(t *testing.T) {
	path := writeConfig(t, "[preprocess]\nblur_sigma = 2.0\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.RectsPerPixel != rects.DefaultRectsPerPixel {
		t.Errorf("RectsPerPixel = %v, want default", cfg.RectsPerPixel)
	}
	if cfg.Stream.InputFormat != string(stream.FormatGray8) {
		t.Errorf("InputFormat = %q, want default", cfg.Stream.InputFormat)
	}

	if !cfg.Defined("preprocess", "blur_sigma") {
		t.Error("expected preprocess.blur_sigma to be defined")
	}
	if cfg.Defined("rects_per_pixel") {
		t.Error("rects_per_pixel is not in the file")
	}
	if Default().Defined("rects_per_pixel") {
		t.Error("Default() should define nothing")
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr error
	}{
		{"negative density", "rects_per_pixel = -1.0\n", ErrInvalidDensity},
		{"infinite density", "rects_per_pixel = inf\n", ErrInvalidDensity},
		{"nan density", "rects_per_pixel = nan\n", ErrInvalidDensity},
		{"bad format", "[stream]\ninput_format = \"I420\"\n", stream.ErrUnsupportedFormat},
		{"negative blur", "[preprocess]\nblur_sigma = -1.0\n", nil},
		{"negative size", "[preprocess]\nmax_size = -4\n", nil},
		{"unknown key", "rects = 3\n", nil},
		{"syntax", "rects_per_pixel = \n", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoad_Missing(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Error("expected error for a missing file")
	}
}

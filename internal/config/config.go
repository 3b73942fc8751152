// Package config loads rectanglify settings from a TOML file.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/ironsheep/rectanglify/internal/imaging"
	"github.com/ironsheep/rectanglify/internal/rects"
	"github.com/ironsheep/rectanglify/internal/stream"
)

// ErrInvalidDensity is returned when rects_per_pixel is negative or not finite.
var ErrInvalidDensity = errors.New("invalid rects_per_pixel")

// Config is the on-disk configuration.
type Config struct {
	RectsPerPixel float64    `toml:"rects_per_pixel"`
	Preprocess    Preprocess `toml:"preprocess"`
	Stream        Stream     `toml:"stream"`

	meta toml.MetaData
}

// Preprocess controls the optional steps applied before measuring darkness.
type Preprocess struct {
	BlurSigma float64 `toml:"blur_sigma"`
	MaxSize   int     `toml:"max_size"`
}

// Stream describes the raw frames read and written by the stream command.
type Stream struct {
	InputFormat  string `toml:"input_format"`
	OutputFormat string `toml:"output_format"`
	Width        int    `toml:"width"`
	Height       int    `toml:"height"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		RectsPerPixel: rects.DefaultRectsPerPixel,
		Stream: Stream{
			InputFormat:  string(stream.FormatGray8),
			OutputFormat: string(stream.FormatGray8),
		},
	}
}

// Load reads path on top of Default and validates the result. Keys missing
// from the file keep their default values.
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	cfg := Default()
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("unknown config key %q in %s", undecoded[0].String(), path)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	cfg.meta = md
	return cfg, nil
}

// Defined reports whether the file cfg was loaded from sets key, given as
// its path of table names, e.g. Defined("stream", "width").
func (c *Config) Defined(key ...string) bool {
	return c.meta.IsDefined(key...)
}

// Validate checks value ranges and format names.
func (c *Config) Validate() error {
	if math.IsNaN(c.RectsPerPixel) || math.IsInf(c.RectsPerPixel, 0) || c.RectsPerPixel < 0 {
		return fmt.Errorf("%w: %v", ErrInvalidDensity, c.RectsPerPixel)
	}
	if c.Preprocess.BlurSigma < 0 || math.IsNaN(c.Preprocess.BlurSigma) {
		return fmt.Errorf("blur_sigma must be >= 0, got %v", c.Preprocess.BlurSigma)
	}
	if c.Preprocess.MaxSize < 0 {
		return fmt.Errorf("max_size must be >= 0, got %d", c.Preprocess.MaxSize)
	}
	if _, err := stream.ParseFormat(c.Stream.InputFormat); err != nil {
		return fmt.Errorf("input_format: %w", err)
	}
	if _, err := stream.ParseFormat(c.Stream.OutputFormat); err != nil {
		return fmt.Errorf("output_format: %w", err)
	}
	if c.Stream.Width < 0 || c.Stream.Height < 0 {
		return fmt.Errorf("stream size must not be negative, got %dx%d", c.Stream.Width, c.Stream.Height)
	}
	return nil
}

// Settings returns the core settings described by c.
func (c *Config) Settings() rects.Settings {
	return rects.Settings{RectsPerPixel: c.RectsPerPixel}
}

// PreprocessOptions returns the preprocessing options described by c.
func (c *Config) PreprocessOptions() imaging.PreprocessOptions {
	return imaging.PreprocessOptions{
		MaxSize:   c.Preprocess.MaxSize,
		BlurSigma: c.Preprocess.BlurSigma,
	}
}

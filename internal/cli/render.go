package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ironsheep/rectanglify/internal/config"
	"github.com/ironsheep/rectanglify/internal/imaging"
)

// styleOpts holds the flags that override the density and preprocessing
// settings of the configuration.
type styleOpts struct {
	rectsPerPixel float64
	blurSigma     float64
	maxSize       int
}

func (o *styleOpts) register(cmd *cobra.Command) {
	cmd.Flags().Float64VarP(&o.rectsPerPixel, "rects-per-pixel", "r", 0, "rectangles per unit of darkness (default from config, else 0.1)")
	cmd.Flags().Float64Var(&o.blurSigma, "blur", 0, "Gaussian blur sigma applied before measuring darkness")
	cmd.Flags().IntVar(&o.maxSize, "max-size", 0, "downscale so the longest side is at most this many pixels")
}

// apply copies every flag set on the command line into cfg and validates
// the result.
func (o *styleOpts) apply(cmd *cobra.Command, cfg *config.Config) error {
	if cmd.Flags().Changed("rects-per-pixel") {
		cfg.RectsPerPixel = o.rectsPerPixel
	}
	if cmd.Flags().Changed("blur") {
		cfg.Preprocess.BlurSigma = o.blurSigma
	}
	if cmd.Flags().Changed("max-size") {
		cfg.Preprocess.MaxSize = o.maxSize
	}
	return cfg.Validate()
}

// newRenderCmd creates the render command, which stylizes IN and writes the
// result to OUT in the format implied by its extension.
func newRenderCmd(g *globalOpts) *cobra.Command {
	var opts styleOpts

	cmd := &cobra.Command{
		Use:   "render IN OUT",
		Short: "Stylize an image file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.loadConfig()
			if err != nil {
				return err
			}
			if err := opts.apply(cmd, cfg); err != nil {
				return err
			}
			return runRender(cmd, cfg, args[0], args[1])
		},
	}
	opts.register(cmd)
	return cmd
}

func runRender(cmd *cobra.Command, cfg *config.Config, in, out string) error {
	logger := loggerFromContext(cmd.Context())

	img, err := imaging.Open(in)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", in, err)
	}
	b := img.Bounds()
	logger.Debug("Loaded image", "path", in, "width", b.Dx(), "height", b.Dy())

	prog := newProgress(logger)
	result, res := imaging.Stylize(img, cfg.Settings(), cfg.PreprocessOptions())
	if err := imaging.Save(result, out); err != nil {
		return err
	}

	prog.done(fmt.Sprintf("Rendered %d rectangles", res.Rects), "out", out)
	logger.Debug("Partition",
		"darkness", res.Darkness,
		"requested", res.Requested,
		"rects_per_pixel", res.RectsPerPixel,
		"splits", res.Splits,
		"clamped", res.Clamped,
		"dropped", res.Dropped,
	)
	return nil
}

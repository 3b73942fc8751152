package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/ironsheep/rectanglify/internal/config"
	"github.com/ironsheep/rectanglify/internal/stream"
)

type streamOpts struct {
	inputFormat   string
	outputFormat  string
	width         int
	height        int
	framerate     int
	rectsPerPixel float64
}

// newStreamCmd creates the stream command. It reads raw frames from stdin
// and writes stylized raw frames to stdout until stdin is closed. When a
// config file is given, SIGHUP reloads it and applies its rects_per_pixel
// to the frames that follow.
func newStreamCmd(g *globalOpts) *cobra.Command {
	var opts streamOpts

	cmd := &cobra.Command{
		Use:   "stream",
		Short: "Stylize raw video frames from stdin to stdout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.loadConfig()
			if err != nil {
				return err
			}
			if err := opts.apply(cmd, cfg); err != nil {
				return err
			}
			return runStream(cmd, g, cfg, opts)
		},
	}

	cmd.Flags().StringVar(&opts.inputFormat, "input-format", "", "input frame format: GRAY8, RGB or RGBA (default from config, else GRAY8)")
	cmd.Flags().StringVar(&opts.outputFormat, "output-format", "", "output frame format: GRAY8, RGB or RGBA (default from config, else GRAY8)")
	cmd.Flags().IntVar(&opts.width, "width", 0, "frame width in pixels")
	cmd.Flags().IntVar(&opts.height, "height", 0, "frame height in pixels")
	cmd.Flags().IntVar(&opts.framerate, "framerate", 30, "nominal frames per second")
	cmd.Flags().Float64VarP(&opts.rectsPerPixel, "rects-per-pixel", "r", 0, fmt.Sprintf("rectangles per unit of darkness (default from config, else %g)", stream.DefaultRectsPerPixel))
	return cmd
}

// apply merges the flags set on the command line into cfg.
func (o *streamOpts) apply(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	if flags.Changed("input-format") {
		cfg.Stream.InputFormat = o.inputFormat
	}
	if flags.Changed("output-format") {
		cfg.Stream.OutputFormat = o.outputFormat
	}
	if flags.Changed("width") {
		cfg.Stream.Width = o.width
	}
	if flags.Changed("height") {
		cfg.Stream.Height = o.height
	}
	if flags.Changed("rects-per-pixel") {
		cfg.RectsPerPixel = o.rectsPerPixel
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if cfg.Stream.Width == 0 || cfg.Stream.Height == 0 {
		return fmt.Errorf("frame size is required: set --width and --height or [stream] in the config")
	}
	return nil
}

// fixedCaps describes a peer that handles exactly one format and size.
func fixedCaps(f stream.Format, w, h, fps int) stream.Caps {
	return stream.Caps{
		Formats: []stream.Format{f},
		Width:   stream.IntRange{Min: w, Max: w},
		Height:  stream.IntRange{Min: h, Max: h},
		MinRate: stream.Fraction{Num: 0, Den: 1},
		MaxRate: stream.Fraction{Num: fps, Den: 1},
	}
}

func runStream(cmd *cobra.Command, g *globalOpts, cfg *config.Config, opts streamOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	// Validate has already accepted both names.
	inFmt, _ := stream.ParseFormat(cfg.Stream.InputFormat)
	outFmt, _ := stream.ParseFormat(cfg.Stream.OutputFormat)
	w, h := cfg.Stream.Width, cfg.Stream.Height
	rate := stream.Fraction{Num: opts.framerate, Den: 1}

	in, out, err := stream.Negotiate(fixedCaps(inFmt, w, h, opts.framerate), fixedCaps(outFmt, w, h, opts.framerate), w, h, rate)
	if err != nil {
		return err
	}

	e := stream.NewElement(logger)
	if err := e.SetCaps(in, out); err != nil {
		return err
	}

	densityFromFlag := cmd.Flags().Changed("rects-per-pixel")
	if densityFromFlag || cfg.Defined("rects_per_pixel") {
		if err := e.SetProperty(stream.PropRectsPerPixel, cfg.RectsPerPixel); err != nil {
			return err
		}
	}

	if g.config != "" && !densityFromFlag {
		stop := reloadOnHangup(ctx, logger, g.config, e)
		defer stop()
	}

	logger.Info("Streaming", "in", in.Format, "out", out.Format, "width", w, "height", h)

	bw := bufio.NewWriterSize(cmd.OutOrStdout(), out.FrameSize())
	prog := newProgress(logger)
	n, err := stream.Pipe(ctx, e, cmd.InOrStdin(), bw)
	if ferr := bw.Flush(); err == nil && ferr != nil {
		err = fmt.Errorf("failed to flush output: %w", ferr)
	}
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Stylized %d frames", n))
	return nil
}

// reloadOnHangup reloads path on every SIGHUP until ctx is done or the
// returned stop function is called.
func reloadOnHangup(ctx context.Context, logger *log.Logger, path string, e *stream.Element) (stop func()) {
	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	done := make(chan struct{})

	go func() {
		for {
			select {
			case <-hup:
				if err := reloadDensity(path, e); err != nil {
					logger.Error("Reload failed", "path", path, "err", err)
				}
			case <-ctx.Done():
				return
			case <-done:
				return
			}
		}
	}()

	return func() {
		signal.Stop(hup)
		close(done)
	}
}

// reloadDensity reads path and pushes its rects_per_pixel into e. A file
// that no longer sets the key leaves the element unchanged.
func reloadDensity(path string, e *stream.Element) error {
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	if !cfg.Defined("rects_per_pixel") {
		return nil
	}
	return e.SetProperty(stream.PropRectsPerPixel, cfg.RectsPerPixel)
}

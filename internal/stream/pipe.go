package stream

import (
	"context"
	"errors"
	"fmt"
	"io"
)

// Pipe reads raw frames described by the element's input caps from r,
// stylizes each one and writes it to w. It returns the number of frames
// written. A clean end of input between frames is not an error.
func Pipe(ctx context.Context, e *Element, r io.Reader, w io.Writer) (int, error) {
	inInfo, outInfo, err := e.Caps()
	if err != nil {
		return 0, err
	}
	if inInfo.FrameSize() == 0 {
		return 0, fmt.Errorf("%w: empty frames", ErrNotNegotiated)
	}

	in := NewFrame(inInfo)
	out := NewFrame(outInfo)

	frames := 0
	for {
		if err := ctx.Err(); err != nil {
			return frames, err
		}

		if _, err := io.ReadFull(r, in.Data); err != nil {
			if errors.Is(err, io.EOF) {
				return frames, nil
			}
			if errors.Is(err, io.ErrUnexpectedEOF) {
				return frames, fmt.Errorf("%w: truncated frame %d", ErrFrameSize, frames)
			}
			return frames, fmt.Errorf("failed to read frame %d: %w", frames, err)
		}

		res, err := e.TransformFrame(in, out)
		if err != nil {
			return frames, err
		}
		e.logger.Debug("Frame", "n", frames, "rects", res.Rects, "darkness", res.Darkness)

		if _, err := w.Write(out.Data); err != nil {
			return frames, fmt.Errorf("failed to write frame %d: %w", frames, err)
		}
		frames++
	}
}

package filter

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"golang.org/x/sync/errgroup"
)

// ErrCancelled is returned by ProcessImage when the context was done at a
// column boundary. No partial result accompanies it.
var ErrCancelled = errors.New("processing cancelled")

// ProgressFunc receives the completed percentage, 0..100.
type ProgressFunc func(percent int)

// Options tunes a ProcessImage call. The zero value is a sequential run
// without progress reporting.
type Options struct {
	// Progress is called once per completed column.
	Progress ProgressFunc
	// Workers > 1 splits each column's rows across that many goroutines.
	Workers int
}

// ProcessImage evaluates rule at every pixel of src and returns the new
// buffer. Columns are processed left to right; ctx is checked before each
// column and progress is reported after it.
func ProcessImage(ctx context.Context, src *PixelBuffer, rule Rule, opts Options) (*PixelBuffer, error) {
	if src == nil {
		return nil, fmt.Errorf("source buffer is nil")
	}
	if rule == nil {
		return nil, fmt.Errorf("%w: nil rule", ErrInvalidParameter)
	}
	if ctx == nil {
		ctx = context.Background()
	}
	dst, err := NewPixelBuffer(src.Width, src.Height)
	if err != nil {
		return nil, err
	}
	w, h := src.Width, src.Height
	workers := min(opts.Workers, h)

	for x := 0; x < w; x++ {
		if err := ctx.Err(); err != nil {
			Logger().Debug().Int("column", x).Int("width", w).Msg("processing cancelled")
			return nil, fmt.Errorf("%w: %w", ErrCancelled, context.Cause(ctx))
		}
		if workers > 1 {
			processColumnParallel(src, dst, rule, x, workers)
		} else {
			for y := 0; y < h; y++ {
				dst.Set(x, y, rule(src, x, y))
			}
		}
		if opts.Progress != nil {
			opts.Progress(int(math.Round(float64(x+1) / float64(w) * 100)))
		}
	}
	return dst, nil
}

// processColumnParallel fills column x using up to workers goroutines, each
// on a contiguous run of rows. Every pixel is written by exactly one goroutine.
func processColumnParallel(src, dst *PixelBuffer, rule Rule, x, workers int) {
	h := src.Height
	chunk := (h + workers - 1) / workers
	var g errgroup.Group
	g.SetLimit(workers)
	for start := 0; start < h; start += chunk {
		end := min(start+chunk, h)
		g.Go(func() error {
			for y := start; y < end; y++ {
				dst.Set(x, y, rule(src, x, y))
			}
			return nil
		})
	}
	_ = g.Wait()
}

// Apply runs f over src.
func Apply(ctx context.Context, src *PixelBuffer, f Filter, opts Options) (*PixelBuffer, error) {
	if src == nil {
		return nil, fmt.Errorf("source buffer is nil")
	}
	rule, err := ruleFor(f, src)
	if err != nil {
		return nil, err
	}
	log := Logger()
	log.Debug().Str("filter", f.Name()).Int("width", src.Width).Int("height", src.Height).
		Int("workers", opts.Workers).Msg("processing started")
	start := time.Now()
	out, err := ProcessImage(ctx, src, rule, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", f.Name(), err)
	}
	log.Debug().Str("filter", f.Name()).Dur("elapsed", time.Since(start)).Msg("processing finished")
	return out, nil
}

// ApplyAll applies filters in order, each to the previous result. Progress
// is scaled so the whole sequence reports 0..100 once. With no filters a
// copy of src is returned.
func ApplyAll(ctx context.Context, src *PixelBuffer, filters []Filter, opts Options) (*PixelBuffer, error) {
	if src == nil {
		return nil, fmt.Errorf("source buffer is nil")
	}
	cur := src.Clone()
	n := len(filters)
	for i, f := range filters {
		stageOpts := opts
		if opts.Progress != nil {
			stage := i
			stageOpts.Progress = func(p int) {
				opts.Progress((stage*100 + p) / n)
			}
		}
		next, err := Apply(ctx, cur, f, stageOpts)
		if err != nil {
			return nil, fmt.Errorf("stage %d: %w", i+1, err)
		}
		cur = next
	}
	return cur, nil
}

// Package solve determines collision-free lengths for every segment of a
// figure. The solver repeatedly extends the frontier segment by unit length,
// detects collisions against the already-plotted path, and backtracks to
// lengthen earlier segments using a geometric heuristic until the whole
// figure is self-avoiding.
//
// A solve can run for a very long time on adversarial inputs, so the caller
// owns timeout policy: cancellation is checked once per fully-solved segment
// through the provided context.
package solve

import (
	"context"
	"errors"
	"fmt"

	"github.com/saxbophone/sxbp/internal/figure"
	"github.com/saxbophone/sxbp/internal/plot"
)

var (
	// ErrCancelled reports that solving stopped at the caller's request.
	// The figure is left in its last consistent state: fig.Solved segments
	// have final lengths, the rest are still unsolved.
	ErrCancelled = errors.New("solve: cancelled")

	// ErrBacktrack reports that collision resolution was driven below
	// segment 0. This signals a malformed figure or a heuristic bug, not a
	// condition callers are expected to recover from.
	ErrBacktrack = errors.New("solve: backtracked past first segment")

	// ErrLengthOverflow reports that a segment would need a length that no
	// longer fits the serialised 30-bit field.
	ErrLengthOverflow = errors.New("solve: segment length exceeds 30 bits")
)

// Progress is invoked after each segment's length is finalised. latest is
// the index just solved, target the final index of this solve. It is purely
// observational and must not mutate the figure.
type Progress func(fig *figure.Figure, latest, target int)

// Options tunes a solve. The zero value is not useful; use DefaultOptions.
type Options struct {
	// PerfectionThreshold is the largest rigid-segment length for which
	// the exact geometric resize computation is attempted; longer rigid
	// segments fall back to unit increments. Negative means no cap.
	PerfectionThreshold int

	// MaxSegment is the index of the last segment to solve, allowing a
	// prefix-only solve that can be resumed later. Negative means the
	// whole figure.
	MaxSegment int

	// Progress, if non-nil, is called once per solved segment.
	Progress Progress
}

// DefaultOptions returns the options used by the command-line tool when no
// flags are given.
func DefaultOptions() Options {
	return Options{
		PerfectionThreshold: 1,
		MaxSegment:          -1,
	}
}

// Solve determines a collision-free length for every unsolved segment of fig
// up to and including opts.MaxSegment, mutating fig in place. Already-solved
// segments (fig.Solved) are kept as-is, which makes a prefix solve followed
// by a full solve produce the same lengths as a single full solve.
func Solve(ctx context.Context, fig *figure.Figure, opts Options) error {
	if err := fig.Validate(); err != nil {
		return err
	}
	target := opts.MaxSegment
	if target < 0 {
		target = fig.Size() - 1
	}
	if target >= fig.Size() {
		return fmt.Errorf("solve: max segment %d out of range [0, %d)", target, fig.Size())
	}
	cache := plot.NewCache()
	if err := cache.Revalidate(fig, fig.Solved); err != nil {
		return err
	}
	for i := fig.Solved; i <= target; i++ {
		if err := solveSegment(fig, cache, i, opts.PerfectionThreshold); err != nil {
			return err
		}
		fig.Solved = i + 1
		if opts.Progress != nil {
			opts.Progress(fig, i, target)
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("%w: %w", ErrCancelled, ctx.Err())
		default:
		}
	}
	return nil
}

// solveSegment finds a collision-free length for segment index, lengthening
// earlier segments as needed. It is the iterative equivalent of a recursive
// backtracking search: current walks down the figure while collisions keep
// occurring and back up as they are resolved, until segment index itself is
// placed without collision.
func solveSegment(fig *figure.Figure, cache *plot.Cache, index, threshold int) error {
	current := index
	length := uint32(1)
	for {
		if length > figure.MaxLength {
			return fmt.Errorf("%w: segment %d needs length %d", ErrLengthOverflow, current, length)
		}
		fig.Segments[current].Length = length
		cache.Invalidate(current)
		if err := cache.Revalidate(fig, current+1); err != nil {
			return err
		}
		collided := detectCollision(fig, cache, current)
		switch {
		case collided != noCollision:
			if current == 0 {
				return fmt.Errorf("%w: segment 0 collides with segment %d", ErrBacktrack, collided)
			}
			length = suggestLength(
				fig.Segments[current-1],
				fig.Segments[collided],
				cache.SegmentStart(fig, current-1),
				cache.SegmentStart(fig, collided),
				cache.SegmentEnd(fig, collided),
				threshold,
			)
			current--
		case current != index:
			// the collision below is resolved, move back up and try the
			// next segment at unit length again
			current++
			length = 1
		default:
			return nil
		}
	}
}

package gradient

import (
	"context"
	"fmt"
	"math"

	"golang.org/x/sync/errgroup"

	"github.com/ironsheep/image-gradient-mcp/internal/region"
)

// sample is the set of input element types the kernel accepts.
type sample interface {
	float32 | int32 | int16 | uint16 | uint8
}

// kernel holds the permuted views and per-axis constants for one call.
type kernel struct {
	in    *region.Region
	out   *region.Region
	dims  int
	recip [region.MaxAxes]float64
}

// Execute writes the gradient magnitude of in into out for every index in
// out.Extent. See ExecuteContext.
func Execute(cfg Config, in, out *region.Region) error {
	return ExecuteContext(context.Background(), cfg, in, out)
}

// ExecuteContext writes the gradient magnitude of in into out for every
// index in out.Extent.
//
// For each active axis the partial derivative is the central difference
// (backward - forward) divided by the axis spacing. A neighbor that lies
// past in.ImageExtent is replaced by the center sample. The output is the
// square root of the summed squared partials.
//
// Errors, all reported before any sample is written:
//   - ErrTypeMismatch: out is not float32.
//   - ErrUnsupportedType: in is not float32, int32, int16, uint16 or uint8.
//   - ErrInvalidConfig: cfg fails Validate, or an active axis of in has a
//     spacing that is not positive.
//   - region.ErrAliased: two indices of out share one element.
//   - ErrExtentMismatch: in.Extent is missing a neighbor the stencil reads.
//
// With cfg.Workers > 1 the output is split into slabs along the outermost
// non-trivial axis. Cancelling ctx stops slabs that have not started yet,
// so a cancelled call may leave out partially written.
func ExecuteContext(ctx context.Context, cfg Config, in, out *region.Region) error {
	if t := out.Type(); t != region.Float32 {
		return fmt.Errorf("%w: got %v", ErrTypeMismatch, t)
	}
	switch t := in.Type(); t {
	case region.Float32, region.Int32, region.Int16, region.Uint16, region.Uint8:
	default:
		return fmt.Errorf("%w: %v", ErrUnsupportedType, t)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := in.Validate(); err != nil {
		return fmt.Errorf("input region: %w", err)
	}
	if err := out.Validate(); err != nil {
		return fmt.Errorf("output region: %w", err)
	}
	if err := out.CheckDistinct(); err != nil {
		return fmt.Errorf("output region: %w", err)
	}

	perm := cfg.Permutation()
	k := kernel{
		in:   in.Permute(perm),
		out:  out.Permute(perm),
		dims: cfg.ActiveDims(),
	}
	for a := 0; a < k.dims; a++ {
		if sp := k.in.Spacing[a]; !(sp > 0) {
			return fmt.Errorf("%w: spacing %g on axis %d", ErrInvalidConfig, sp, perm[a])
		}
	}
	if k.out.Extent.Empty() {
		return nil
	}
	if err := checkStencil(k.in, k.out.Extent, k.dims); err != nil {
		return err
	}
	for a := 0; a < k.dims; a++ {
		k.recip[a] = 1 / k.in.Spacing[a]
	}

	switch src := k.in.Data().(type) {
	case []float32:
		return run(ctx, k, src, cfg.workers())
	case []int32:
		return run(ctx, k, src, cfg.workers())
	case []int16:
		return run(ctx, k, src, cfg.workers())
	case []uint16:
		return run(ctx, k, src, cfg.workers())
	case []uint8:
		return run(ctx, k, src, cfg.workers())
	}
	return fmt.Errorf("%w: %T", ErrUnsupportedType, k.in.Data())
}

// checkStencil verifies that every neighbor the kernel may read for out is
// either addressable in in or replaced by the image-edge rule.
func checkStencil(in *region.Region, out region.Extent, dims int) error {
	if !in.Extent.Contains(out) {
		return fmt.Errorf("%w: output %v not inside input %v", ErrExtentMismatch, out, in.Extent)
	}
	for a := 0; a < dims; a++ {
		lo, hi := out[a].Min-1, out[a].Max+1
		if lo >= in.ImageExtent[a].Min && lo < in.Extent[a].Min {
			return fmt.Errorf("%w: axis %d needs index %d, input starts at %d",
				ErrExtentMismatch, a, lo, in.Extent[a].Min)
		}
		if hi <= in.ImageExtent[a].Max && hi > in.Extent[a].Max {
			return fmt.Errorf("%w: axis %d needs index %d, input ends at %d",
				ErrExtentMismatch, a, hi, in.Extent[a].Max)
		}
	}
	return nil
}

func run[T sample](ctx context.Context, k kernel, src []T, workers int) error {
	dst := k.out.Float32s()
	slabs := partition(k.out.Extent, workers)
	if len(slabs) == 1 {
		if err := ctx.Err(); err != nil {
			return err
		}
		execute(k, src, dst, slabs[0])
		return nil
	}

	g, ctx := errgroup.WithContext(ctx)
	for _, slab := range slabs {
		slab := slab
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			execute(k, src, dst, slab)
			return nil
		})
	}
	return g.Wait()
}

// partition splits ext into at most n slabs along the outermost axis above
// axis 0 that holds more than one index. Slabs never overlap.
func partition(ext region.Extent, n int) []region.Extent {
	if n <= 1 {
		return []region.Extent{ext}
	}
	axis := -1
	for a := region.MaxAxes - 1; a >= 1; a-- {
		if ext[a].Len() > 1 {
			axis = a
			break
		}
	}
	if axis < 0 {
		return []region.Extent{ext}
	}
	length := ext[axis].Len()
	n = min(n, length)
	chunk := (length + n - 1) / n
	slabs := make([]region.Extent, 0, n)
	for lo := ext[axis].Min; lo <= ext[axis].Max; lo += chunk {
		s := ext
		s[axis] = region.Range{Min: lo, Max: min(lo+chunk-1, ext[axis].Max)}
		slabs = append(slabs, s)
	}
	return slabs
}

// execute runs the stencil over ext. Axis 0 is innermost; offsets advance
// by the views' strides.
func execute[T sample](k kernel, src []T, dst []float32, ext region.Extent) {
	in, out := k.in, k.out
	var idx [region.MaxAxes]int
	for idx[3] = ext[3].Min; idx[3] <= ext[3].Max; idx[3]++ {
		for idx[2] = ext[2].Min; idx[2] <= ext[2].Max; idx[2]++ {
			for idx[1] = ext[1].Min; idx[1] <= ext[1].Max; idx[1]++ {
				idx[0] = ext[0].Min
				inOff, outOff := in.Offset(idx), out.Offset(idx)
				for ; idx[0] <= ext[0].Max; idx[0]++ {
					center := float64(src[inOff])
					var sum float64
					for a := 0; a < k.dims; a++ {
						inc := in.Strides[a]
						back, fwd := center, center
						if idx[a]-1 >= in.ImageExtent[a].Min {
							back = float64(src[inOff-inc])
						}
						if idx[a]+1 <= in.ImageExtent[a].Max {
							fwd = float64(src[inOff+inc])
						}
						d := (back - fwd) * k.recip[a]
						sum += d * d
					}
					dst[outOff] = float32(math.Sqrt(sum))
					inOff += in.Strides[0]
					outOff += out.Strides[0]
				}
			}
		}
	}
}

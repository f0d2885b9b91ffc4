package gradient

import (
	"context"
	"fmt"

	"github.com/ironsheep/image-gradient-mcp/internal/region"
)

// Result is the output of Run together with the negotiated extents.
type Result struct {
	// Output holds one float32 magnitude per output sample.
	Output *region.Region

	// OutputExtent is the extent that was computed.
	OutputExtent region.Extent

	// InputExtent is the input extent the kernel read from.
	InputExtent region.Extent
}

// Run negotiates extents and executes the filter over in.
//
// Parameters:
//   - cfg: filter configuration.
//   - in: source region. Its Extent must cover the required input extent.
//   - requested: output extent to compute, or nil for everything the
//     input can produce.
//
// The output region's ImageExtent is ComputeOutputExtent applied to the
// input's ImageExtent, and it inherits the input spacing.
func Run(ctx context.Context, cfg Config, in *region.Region, requested *region.Extent) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	whole := ComputeOutputExtent(in.ImageExtent, cfg)
	want := whole
	if requested != nil {
		want = *requested
		if !whole.Contains(want) {
			return nil, fmt.Errorf("%w: requested %v outside producible %v",
				ErrExtentMismatch, want, whole)
		}
	}

	need := ComputeRequiredInputExtent(want, in.ImageExtent, cfg)
	if !in.Extent.Contains(need) {
		return nil, fmt.Errorf("%w: need %v, input holds %v", ErrExtentMismatch, need, in.Extent)
	}
	view, err := in.Sub(need)
	if err != nil {
		return nil, err
	}

	out, err := region.New(region.Float32, want)
	if err != nil {
		return nil, err
	}
	out.ImageExtent = whole
	out.Spacing = in.Spacing

	if err := ExecuteContext(ctx, cfg, view, out); err != nil {
		return nil, err
	}
	return &Result{Output: out, OutputExtent: want, InputExtent: need}, nil
}

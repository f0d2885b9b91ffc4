package imaging

import (
	"context"
	"fmt"
	"image"

	"github.com/ironsheep/image-gradient-mcp/internal/gradient"
	"github.com/ironsheep/image-gradient-mcp/internal/region"
)

// GradientOptions configures ComputeGradient.
type GradientOptions struct {
	// Config is the filter configuration. Only axes 0 (X) and 1 (Y) carry
	// image data.
	Config gradient.Config

	// ROI restricts the output to a rectangle in pixel coordinates relative
	// to the image's top-left corner, with (X1,Y1) inclusive and (X2,Y2)
	// exclusive. Nil computes everything the image can produce.
	ROI *image.Rectangle

	// BlurRadius, SpacingX and SpacingY are passed to ToRegion.
	BlurRadius float64
	SpacingX   float64
	SpacingY   float64
}

// ROIExtent converts an exclusive pixel rectangle to an inclusive extent.
func ROIExtent(roi image.Rectangle) region.Extent {
	return region.NewExtent(
		region.Range{Min: roi.Min.X, Max: roi.Max.X - 1},
		region.Range{Min: roi.Min.Y, Max: roi.Max.Y - 1},
	)
}

// ComputeGradient runs the gradient magnitude filter over img.
//
// Only the pixels the requested output needs are converted: the required
// input extent is negotiated first and then handed to ToRegion, just as a
// downstream stage would request data from its producer.
//
// Returns an error if the ROI lies outside what the configuration can
// produce (for example the outer pixel ring when boundaries are not
// handled) or the conversion fails.
func ComputeGradient(ctx context.Context, img image.Image, opts GradientOptions) (*gradient.Result, error) {
	cfg := opts.Config
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	perm := cfg.Permutation()
	for _, a := range perm[:cfg.ActiveDims()] {
		if a > 1 {
			return nil, fmt.Errorf("%w: images only have axes 0 and 1, got axis %d",
				gradient.ErrInvalidConfig, a)
		}
	}

	whole := ImageExtent(img)
	want := gradient.ComputeOutputExtent(whole, cfg)
	var requested *region.Extent
	if opts.ROI != nil {
		roi := ROIExtent(*opts.ROI)
		if roi.Empty() {
			return nil, fmt.Errorf("%w: roi %v", ErrEmptyExtent, *opts.ROI)
		}
		want, requested = roi, &roi
	}
	if want.Empty() {
		return nil, fmt.Errorf("%w: output extent %v", ErrEmptyExtent, want)
	}

	need := gradient.ComputeRequiredInputExtent(want, whole, cfg)
	in, err := ToRegion(img, ConvertOptions{
		Extent:     &need,
		BlurRadius: opts.BlurRadius,
		SpacingX:   opts.SpacingX,
		SpacingY:   opts.SpacingY,
	})
	if err != nil {
		return nil, err
	}
	return gradient.Run(ctx, cfg, in, requested)
}

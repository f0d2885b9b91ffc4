package gradient

import "github.com/ironsheep/image-gradient-mcp/internal/region"

// ComputeOutputExtent returns the extent the filter can produce from an
// input covering in. With boundary handling the extent is unchanged;
// without it every active axis loses one sample on each side.
func ComputeOutputExtent(in region.Extent, cfg Config) region.Extent {
	out := in
	if cfg.HandleBoundaries {
		return out
	}
	for _, a := range cfg.activeAxes() {
		out[a].Min++
		out[a].Max--
	}
	return out
}

// ComputeRequiredInputExtent returns the input extent needed to produce
// out. Active axes grow by one sample on each side. With boundary handling
// the result is clipped to image; without it the caller must already have
// shrunk out with ComputeOutputExtent.
func ComputeRequiredInputExtent(out, image region.Extent, cfg Config) region.Extent {
	in := out
	for _, a := range cfg.activeAxes() {
		in[a].Min--
		in[a].Max++
		if cfg.HandleBoundaries {
			in[a].Min = max(in[a].Min, image[a].Min)
			in[a].Max = min(in[a].Max, image[a].Max)
		}
	}
	return in
}

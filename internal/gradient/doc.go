// Package gradient computes the gradient magnitude of N-dimensional images.
//
// The filter is split into two plain extent functions and a kernel:
//
//   - ComputeOutputExtent: what an input extent can produce.
//   - ComputeRequiredInputExtent: what an output extent needs.
//   - Execute: the per-sample central-difference stencil.
//
// Run composes the three for the common case of a whole input region.
//
// # Stencil
//
// For every active axis a the partial derivative at index i is
//
//	d = (in[i-1] - in[i+1]) / spacing[a]
//
// and the output is sqrt(sum of d*d). The difference is not halved, so a
// ramp that rises by k per sample gives 2k/spacing in the interior. A
// neighbor past the image edge is replaced by the center sample, which gives
// k/spacing on the first and last sample of the ramp.
//
// # Boundary Handling
//
// Config.HandleBoundaries only affects the extent functions. With it set,
// the output covers the whole input and edge samples use replication. Without
// it, the output loses one sample per side on each active axis so that every
// neighbor exists.
//
// # Input Types
//
// Inputs may be float32, int32, int16, uint16 or uint8. Samples are widened
// to float64 for the arithmetic. The output is always float32.
package gradient

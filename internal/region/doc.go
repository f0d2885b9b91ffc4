// Package region describes strided N-dimensional sample buffers.
//
// A Region is a zero-copy view over caller-owned memory. It pairs a typed
// sample slice with the inclusive index range it covers on each of up to
// four axes, the element stride of each axis and the physical spacing
// between samples. Filters never assume that any axis is contiguous: all
// addressing goes through Offset, which applies the per-axis strides.
//
// # Extents
//
// Extents are inclusive on both ends. A Range with Max < Min is empty.
// Two extents are attached to every Region:
//   - Extent: the samples that are actually addressable in the buffer.
//   - ImageExtent: the logical bounds of the whole image the buffer was cut
//     from. Extent is always inside ImageExtent.
//
// Filters use ImageExtent to decide where the image really ends, and Extent
// to know which neighbors they are allowed to read.
//
// # Axis Order
//
// Axis 0 varies fastest in buffers allocated by New. For images converted
// from image.Image values, axis 0 is the column (X) and axis 1 is the row (Y).
//
// # Thread Safety
//
// A Region carries no locks. Concurrent reads are safe; concurrent writes
// must target disjoint samples.
package region

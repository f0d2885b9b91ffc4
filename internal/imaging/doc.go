// Package imaging connects decoded image files to the gradient filter.
//
// It loads and caches images, converts them to single-channel sample
// regions, runs the gradient magnitude pipeline on them, and turns the
// float32 magnitude back into pictures (colorized maps and binary edge
// maps) encoded as base64 PNG. SampleMagnitude reads the magnitude at
// labeled points, and RenderOptions.GridSpacing overlays coordinate grid
// lines so edges can be located by eye.
//
// # Coordinate System
//
// Pixel coordinates are 0-based from the image's top-left corner:
//   - X: column, region axis 0
//   - Y: row, region axis 1
//
// Rectangles given as (x1,y1)-(x2,y2) are inclusive at (x1,y1) and exclusive
// at (x2,y2), as in image.Rectangle. Region extents are inclusive on both
// ends; ROIExtent converts between the two.
//
// # Regions of Interest
//
// ComputeGradient converts only the pixels the requested output needs. The
// converted region keeps the whole image as its ImageExtent, so pixels at a
// ROI's border still see their real neighbors and only the true image edge
// is treated as a boundary.
//
// # Thread Safety
//
// The ImageCache type is safe for concurrent use. The conversion and
// rendering functions are stateless.
package imaging

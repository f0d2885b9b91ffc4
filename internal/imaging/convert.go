package imaging

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/anthonynsimon/bild/blur"
	"github.com/disintegration/imaging"

	"github.com/ironsheep/image-gradient-mcp/internal/region"
)

// ErrEmptyExtent is returned when the requested extent holds no pixels.
var ErrEmptyExtent = errors.New("extent holds no pixels")

// ConvertOptions controls how an image.Image becomes a sample region.
type ConvertOptions struct {
	// Extent limits conversion to these pixels, in region coordinates
	// (0-based from the image's top-left corner). It is clipped to the
	// image. Nil converts the whole image.
	Extent *region.Extent

	// BlurRadius applies a Gaussian blur of this radius before the
	// grayscale conversion. Zero disables blurring. Blurred output is
	// always 8-bit.
	BlurRadius float64

	// SpacingX and SpacingY are the physical pixel sizes. Zero means 1.
	SpacingX float64
	SpacingY float64
}

// ImageExtent returns the region extent of the whole image: axis 0 spans
// the columns and axis 1 the rows, both starting at 0.
func ImageExtent(img image.Image) region.Extent {
	b := img.Bounds()
	return region.Shape(b.Dx(), b.Dy())
}

// ToRegion converts img to a single-channel sample region.
//
// The grayscale value uses ITU-R BT.601 luma weights. 16-bit sources
// (Gray16, RGBA64, NRGBA64) keep their depth and produce a Uint16 region
// unless blurred; everything else produces Uint8.
//
// The result's ImageExtent is always the whole image, so filters treat the
// real image edge as the boundary even when only part of it was converted.
//
// # Layout
//
// 8-bit results are a zero-copy view over the grayscale NRGBA pixel buffer:
// axis 0 has stride 4 (one pixel, red channel) and axis 1 has the row pitch.
func ToRegion(img image.Image, opts ConvertOptions) (*region.Region, error) {
	whole := ImageExtent(img)
	ext := whole
	if opts.Extent != nil {
		ext = opts.Extent.Clip(whole)
	}
	if ext.Empty() {
		return nil, fmt.Errorf("%w: %v within %v", ErrEmptyExtent, ext, whole)
	}

	b := img.Bounds()
	rect := image.Rect(
		b.Min.X+ext[0].Min, b.Min.Y+ext[1].Min,
		b.Min.X+ext[0].Max+1, b.Min.Y+ext[1].Max+1,
	)

	var r *region.Region
	var err error
	if is16Bit(img) && opts.BlurRadius <= 0 {
		r, err = gray16Region(img, rect, ext)
	} else {
		r, err = gray8Region(img, rect, ext, opts.BlurRadius)
	}
	if err != nil {
		return nil, err
	}

	r.ImageExtent = whole
	r.Spacing[0] = spacingOrUnit(opts.SpacingX)
	r.Spacing[1] = spacingOrUnit(opts.SpacingY)
	return r, nil
}

func gray8Region(img image.Image, rect image.Rectangle, ext region.Extent, radius float64) (*region.Region, error) {
	var src image.Image = imaging.Crop(img, rect)
	if radius > 0 {
		src = blur.Gaussian(src, radius)
	}
	gray := imaging.Grayscale(src)

	w, h := gray.Bounds().Dx(), gray.Bounds().Dy()
	if w != ext[0].Len() || h != ext[1].Len() {
		return nil, fmt.Errorf("cropped %dx%d, want %dx%d", w, h, ext[0].Len(), ext[1].Len())
	}
	strides := [region.MaxAxes]int{4, gray.Stride, len(gray.Pix), len(gray.Pix)}
	return region.Wrap(gray.Pix, ext, strides)
}

func gray16Region(img image.Image, rect image.Rectangle, ext region.Extent) (*region.Region, error) {
	r, err := region.New(region.Uint16, ext)
	if err != nil {
		return nil, err
	}
	samples := r.Data().([]uint16)
	i := 0
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			samples[i] = color.Gray16Model.Convert(img.At(x, y)).(color.Gray16).Y
			i++
		}
	}
	return r, nil
}

func spacingOrUnit(s float64) float64 {
	if s == 0 {
		return 1
	}
	return s
}

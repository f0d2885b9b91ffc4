package imaging

import (
	"fmt"
	"image"
	"image/color"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// DefaultGridColor is the grid line color used when none is given.
const DefaultGridColor = "#00c8ff"

// parseGridColor parses a "#RRGGBB" color for grid lines.
func parseGridColor(hex string) (color.NRGBA, error) {
	if hex == "" {
		hex = DefaultGridColor
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid grid color %q: %w", hex, err)
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 255}, nil
}

// drawGrid draws vertical and horizontal lines on img at every image
// coordinate divisible by spacing. origin is the image coordinate of img's
// top-left pixel. Coordinate 0 gets no line.
func drawGrid(img *image.NRGBA, origin image.Point, spacing int, hex string) error {
	if spacing <= 0 {
		return fmt.Errorf("grid spacing must be positive, got %d", spacing)
	}
	c, err := parseGridColor(hex)
	if err != nil {
		return err
	}

	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	// Vertical lines
	for x := 0; x < width; x++ {
		if ix := origin.X + x; ix > 0 && ix%spacing == 0 {
			for y := 0; y < height; y++ {
				img.SetNRGBA(x, y, c)
			}
		}
	}

	// Horizontal lines
	for y := 0; y < height; y++ {
		if iy := origin.Y + y; iy > 0 && iy%spacing == 0 {
			for x := 0; x < width; x++ {
				img.SetNRGBA(x, y, c)
			}
		}
	}
	return nil
}

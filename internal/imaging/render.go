package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/png"

	"github.com/disintegration/imaging"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/image-gradient-mcp/internal/region"
)

// Colormap names accepted by RenderOptions.
const (
	ColormapGray = "gray"
	ColormapHeat = "heat"
)

// DefaultHeatStops are the colors the heat colormap blends through, from
// zero magnitude to the ceiling.
var DefaultHeatStops = []string{"#000000", "#5c0a0a", "#d1330f", "#f5a623", "#ffffdd"}

// RenderOptions controls how a magnitude region becomes a picture.
type RenderOptions struct {
	// Colormap is "gray" (default) or "heat".
	Colormap string

	// HeatStops overrides DefaultHeatStops. Colors are "#RRGGBB" hex
	// strings; at least two are required.
	HeatStops []string

	// Ceiling is the magnitude mapped to full intensity. Zero uses the
	// maximum magnitude in the region.
	Ceiling float64

	// Scale resizes the rendered image (e.g. 2.0 doubles it). Zero or 1
	// keeps the region size.
	Scale float64

	// GridSpacing draws coordinate grid lines every GridSpacing image
	// pixels when positive. Lines sit on absolute image coordinates, so an
	// ROI render lines up with a whole-image render.
	GridSpacing int

	// GridColor is the "#RRGGBB" line color. Empty means DefaultGridColor.
	GridColor string
}

// RenderResult is a rendered magnitude map encoded as base64 PNG.
type RenderResult struct {
	Width       int     `json:"width"`
	Height      int     `json:"height"`
	Ceiling     float64 `json:"ceiling"`
	ImageBase64 string  `json:"image_base64"`
	MimeType    string  `json:"mime_type"`
}

// colormap maps a normalized magnitude in [0,1] to a color.
type colormap func(t float64) color.NRGBA

func newColormap(opts RenderOptions) (colormap, error) {
	switch opts.Colormap {
	case "", ColormapGray:
		return func(t float64) color.NRGBA {
			v := uint8(t*255 + 0.5)
			return color.NRGBA{R: v, G: v, B: v, A: 255}
		}, nil
	case ColormapHeat:
		hexes := opts.HeatStops
		if len(hexes) == 0 {
			hexes = DefaultHeatStops
		}
		if len(hexes) < 2 {
			return nil, fmt.Errorf("heat colormap needs at least 2 stops, got %d", len(hexes))
		}
		stops := make([]colorful.Color, len(hexes))
		for i, h := range hexes {
			c, err := colorful.Hex(h)
			if err != nil {
				return nil, fmt.Errorf("invalid heat stop %q: %w", h, err)
			}
			stops[i] = c
		}
		return func(t float64) color.NRGBA {
			pos := t * float64(len(stops)-1)
			i := min(int(pos), len(stops)-2)
			c := stops[i].BlendHcl(stops[i+1], pos-float64(i)).Clamped()
			r, g, b := c.RGB255()
			return color.NRGBA{R: r, G: g, B: b, A: 255}
		}, nil
	}
	return nil, fmt.Errorf("unknown colormap: %s", opts.Colormap)
}

// RenderImage draws axes 0 and 1 of a magnitude region as an image. Only
// the first index of axes 2 and 3 is drawn.
func RenderImage(mag *region.Region, opts RenderOptions) (image.Image, float64, error) {
	ext := mag.Extent
	if ext.Empty() {
		return nil, 0, fmt.Errorf("%w: %v", ErrEmptyExtent, ext)
	}
	cmap, err := newColormap(opts)
	if err != nil {
		return nil, 0, err
	}

	plane := ext
	plane[2].Max, plane[3].Max = plane[2].Min, plane[3].Min

	ceiling := opts.Ceiling
	if ceiling <= 0 {
		region.Each(plane, func(idx [region.MaxAxes]int) {
			if v, err := mag.At(idx); err == nil && v > ceiling {
				ceiling = v
			}
		})
	}

	w, h := ext[0].Len(), ext[1].Len()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	idx := [region.MaxAxes]int{0, 0, ext[2].Min, ext[3].Min}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			idx[0], idx[1] = ext[0].Min+x, ext[1].Min+y
			v, err := mag.At(idx)
			if err != nil {
				return nil, 0, err
			}
			t := 0.0
			if ceiling > 0 {
				t = min(max(v/ceiling, 0), 1)
			}
			img.SetNRGBA(x, y, cmap(t))
		}
	}

	if opts.GridSpacing > 0 {
		if err := drawGrid(img, image.Pt(ext[0].Min, ext[1].Min), opts.GridSpacing, opts.GridColor); err != nil {
			return nil, 0, err
		}
	}

	if opts.Scale > 0 && opts.Scale != 1.0 {
		nw := max(int(float64(w)*opts.Scale), 1)
		nh := max(int(float64(h)*opts.Scale), 1)
		return imaging.Resize(img, nw, nh, imaging.Lanczos), ceiling, nil
	}
	return img, ceiling, nil
}

// RenderMagnitude renders a magnitude region and encodes it as base64 PNG.
func RenderMagnitude(mag *region.Region, opts RenderOptions) (*RenderResult, error) {
	img, ceiling, err := RenderImage(mag, opts)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode magnitude image: %w", err)
	}

	return &RenderResult{
		Width:       img.Bounds().Dx(),
		Height:      img.Bounds().Dy(),
		Ceiling:     ceiling,
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/png",
	}, nil
}

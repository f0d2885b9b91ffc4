package imaging

import (
	"fmt"

	"github.com/ironsheep/image-gradient-mcp/internal/region"
)

// LabeledPoint is an image coordinate with an optional descriptive label,
// such as "left_border" or "text_baseline".
type LabeledPoint struct {
	X     int    `json:"x"`
	Y     int    `json:"y"`
	Label string `json:"label,omitempty"`
}

// MagnitudeSample is the gradient magnitude at one point.
type MagnitudeSample struct {
	Label     string  `json:"label,omitempty"`
	X         int     `json:"x"`
	Y         int     `json:"y"`
	Magnitude float64 `json:"magnitude"`
}

// MagnitudeSamples holds samples in the order the points were given.
type MagnitudeSamples struct {
	Samples []MagnitudeSample `json:"samples"`
}

// SampleMagnitude reads a magnitude region at several image coordinates.
// Only the first index of axes 2 and 3 is read.
//
// Returns an error if any point lies outside the region's extent (for
// example on the dropped outer ring when boundaries are not handled). On
// error no partial results are returned.
//
// # Example
//
//	points := []imaging.LabeledPoint{
//	    {X: 10, Y: 20, Label: "background"},
//	    {X: 50, Y: 100, Label: "edge"},
//	}
//	samples, err := imaging.SampleMagnitude(res.Output, points)
func SampleMagnitude(mag *region.Region, points []LabeledPoint) (*MagnitudeSamples, error) {
	if len(points) == 0 {
		return nil, fmt.Errorf("no points to sample")
	}

	samples := make([]MagnitudeSample, 0, len(points))
	for _, p := range points {
		v, err := mag.At([region.MaxAxes]int{p.X, p.Y, mag.Extent[2].Min, mag.Extent[3].Min})
		if err != nil {
			return nil, fmt.Errorf("failed to sample point (%d,%d): %w", p.X, p.Y, err)
		}
		samples = append(samples, MagnitudeSample{
			Label:     p.Label,
			X:         p.X,
			Y:         p.Y,
			Magnitude: v,
		})
	}
	return &MagnitudeSamples{Samples: samples}, nil
}

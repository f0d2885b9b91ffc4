package imaging

import (
	"context"
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironsheep/image-gradient-mcp/internal/gradient"
)

// stepImage is black left of x=split and white from it on.
func stepImage(width, height, split int) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := split; x < width; x++ {
			img.SetGray(x, y, color.Gray{Y: 255})
		}
	}
	return img
}

func TestEdgeMap_Step(t *testing.T) {
	res, err := ComputeGradient(context.Background(), stepImage(10, 4, 5), GradientOptions{Config: gradient.DefaultConfig()})
	require.NoError(t, err)

	edges, err := EdgeMap(res.Output, 100)
	require.NoError(t, err)
	assert.Equal(t, 10, edges.Width)
	assert.Equal(t, 4, edges.Height)
	// Columns 4 and 5 straddle the step.
	assert.Equal(t, 8, edges.EdgePixels)
	assert.InDelta(t, 0.2, edges.EdgeFraction, 1e-9)

	img := decodePNG(t, edges.ImageBase64)
	for x := 0; x < 10; x++ {
		r, _, _, _ := img.At(x, 1).RGBA()
		if x == 4 || x == 5 {
			assert.Equal(t, uint32(255), r>>8, "x=%d", x)
		} else {
			assert.Zero(t, r>>8, "x=%d", x)
		}
	}
}

func TestEdgeMap_Uniform(t *testing.T) {
	res, err := ComputeGradient(context.Background(), uniformImage(8, 8, color.Gray{Y: 90}), GradientOptions{Config: gradient.DefaultConfig()})
	require.NoError(t, err)

	edges, err := EdgeMap(res.Output, 1)
	require.NoError(t, err)
	assert.Zero(t, edges.EdgePixels)
}

func TestEdgeMap_InvalidThreshold(t *testing.T) {
	mag := magnitudeRegion(t, 1, 1, 3)
	_, err := EdgeMap(mag, 0)
	assert.Error(t, err)
}

func TestEdgeImage_MatchesEdgeMap(t *testing.T) {
	res, err := ComputeGradient(context.Background(), stepImage(6, 3, 2), GradientOptions{Config: gradient.DefaultConfig()})
	require.NoError(t, err)

	img, edges, err := EdgeImage(res.Output, 100)
	require.NoError(t, err)
	assert.Equal(t, 6, edges)
	assert.Equal(t, image.Rect(0, 0, 6, 3), img.Bounds())
	assert.Equal(t, uint8(255), img.GrayAt(1, 0).Y)
	assert.Equal(t, uint8(255), img.GrayAt(2, 2).Y)
	assert.Zero(t, img.GrayAt(4, 1).Y)

	_, _, err = EdgeImage(res.Output, -1)
	assert.Error(t, err)
}

package imaging

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironsheep/image-gradient-mcp/internal/region"
)

func TestParseGridColor(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    color.NRGBA
		wantErr bool
	}{
		{"default", "", color.NRGBA{0, 200, 255, 255}, false},
		{"red", "#ff0000", color.NRGBA{255, 0, 0, 255}, false},
		{"upper case", "#00FF00", color.NRGBA{0, 255, 0, 255}, false},
		{"short form", "#fff", color.NRGBA{255, 255, 255, 255}, false},
		{"no hash", "ff0000", color.NRGBA{}, true},
		{"name", "red", color.NRGBA{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseGridColor(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDrawGrid(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 10, 10))
	require.NoError(t, drawGrid(img, image.Point{}, 4, "#ff0000"))

	red := color.NRGBA{255, 0, 0, 255}
	for _, p := range []image.Point{{4, 0}, {8, 9}, {0, 4}, {9, 8}} {
		assert.Equal(t, red, img.NRGBAAt(p.X, p.Y), "line pixel %v", p)
	}
	for _, p := range []image.Point{{0, 0}, {3, 3}, {5, 7}} {
		assert.Equal(t, color.NRGBA{}, img.NRGBAAt(p.X, p.Y), "pixel %v off the grid", p)
	}

	assert.Error(t, drawGrid(img, image.Point{}, 0, ""))
	assert.Error(t, drawGrid(img, image.Point{}, 4, "bogus"))
}

func TestDrawGrid_Origin(t *testing.T) {
	// An image starting at image coordinate (3,6) has its first line at
	// local column 1 (x=4) and local row 2 (y=8).
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	require.NoError(t, drawGrid(img, image.Pt(3, 6), 4, "#ffffff"))

	white := color.NRGBA{255, 255, 255, 255}
	assert.Equal(t, white, img.NRGBAAt(1, 0))
	assert.Equal(t, white, img.NRGBAAt(0, 2))
	assert.Equal(t, color.NRGBA{}, img.NRGBAAt(0, 0))
	assert.Equal(t, color.NRGBA{}, img.NRGBAAt(2, 1))
}

func TestRenderImage_Grid(t *testing.T) {
	ext := region.NewExtent(region.Range{Min: 2, Max: 5}, region.Range{Min: 0, Max: 1})
	mag, err := region.New(region.Float32, ext)
	require.NoError(t, err)

	img, _, err := RenderImage(mag, RenderOptions{GridSpacing: 4, GridColor: "#ff0000"})
	require.NoError(t, err)

	r, g, _, _ := img.At(2, 0).RGBA()
	assert.Equal(t, uint32(255), r>>8, "image column 4 is local column 2")
	assert.Zero(t, g)
	r, _, _, _ = img.At(1, 1).RGBA()
	assert.Zero(t, r)

	_, _, err = RenderImage(mag, RenderOptions{GridSpacing: 4, GridColor: "nope"})
	assert.ErrorContains(t, err, "invalid grid color")
}

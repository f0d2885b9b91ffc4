package imaging

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writePNG encodes img into dir under name and returns the path.
func writePNG(t *testing.T, dir, name string, img image.Image) string {
	t.Helper()
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
	return path
}

// uniformImage returns an RGBA image filled with c.
func uniformImage(width, height int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func TestImageCache_Load(t *testing.T) {
	cache := NewImageCache()
	path := writePNG(t, t.TempDir(), "red.png", uniformImage(40, 30, color.RGBA{255, 0, 0, 255}))

	img1, err := cache.Load(path)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 40, 30), img1.Bounds())

	img2, err := cache.Load(path)
	require.NoError(t, err)
	assert.Same(t, img1.(*image.RGBA), img2.(*image.RGBA), "second Load should hit the cache")
	assert.Equal(t, 1, cache.Len())
}

func TestImageCache_LoadErrors(t *testing.T) {
	cache := NewImageCache()

	_, err := cache.Load("/nonexistent/path/to/image.png")
	assert.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.png")
	require.NoError(t, os.WriteFile(bad, []byte("not an image"), 0o600))
	_, err = cache.Load(bad)
	assert.ErrorContains(t, err, "decode")
	assert.Zero(t, cache.Len())
}

func TestImageCache_EvictClear(t *testing.T) {
	dir := t.TempDir()
	cache := NewImageCache()
	a := writePNG(t, dir, "a.png", uniformImage(4, 4, color.White))
	b := writePNG(t, dir, "b.png", uniformImage(4, 4, color.Black))

	_, err := cache.Load(a)
	require.NoError(t, err)
	_, err = cache.Load(b)
	require.NoError(t, err)
	assert.Equal(t, 2, cache.Len())

	cache.Evict(a)
	cache.Evict("/never/loaded.png")
	assert.Equal(t, 1, cache.Len())

	cache.Clear()
	assert.Zero(t, cache.Len())
}

func TestImageCache_ConcurrentAccess(t *testing.T) {
	cache := NewImageCache()
	path := writePNG(t, t.TempDir(), "gray.png", uniformImage(20, 20, color.Gray{128}))

	var wg sync.WaitGroup
	errs := make(chan error, 50)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := cache.Load(path); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("concurrent Load error: %v", err)
	}
}

func TestLoadImageInfo(t *testing.T) {
	dir := t.TempDir()
	cache := NewImageCache()

	t.Run("8-bit", func(t *testing.T) {
		path := writePNG(t, dir, "rgba.png", uniformImage(200, 150, color.RGBA{255, 128, 64, 255}))
		info, err := LoadImageInfo(cache, path)
		require.NoError(t, err)
		assert.Equal(t, 200, info.Width)
		assert.Equal(t, 150, info.Height)
		assert.Equal(t, "png", info.Format)
		assert.Equal(t, "uint8", info.ScalarType)
		assert.Equal(t, "[0,199]x[0,149]x[0,0]x[0,0]", info.Extent)
		assert.Positive(t, info.FileSizeBytes)
	})

	t.Run("16-bit", func(t *testing.T) {
		path := writePNG(t, dir, "deep.png", image.NewGray16(image.Rect(0, 0, 8, 8)))
		info, err := LoadImageInfo(cache, path)
		require.NoError(t, err)
		assert.Equal(t, "uint16", info.ScalarType)
		assert.False(t, info.HasAlpha)
	})

	t.Run("missing", func(t *testing.T) {
		_, err := LoadImageInfo(cache, filepath.Join(dir, "missing.png"))
		assert.Error(t, err)
	})
}

func TestLoadImageInfo_FormatDetection(t *testing.T) {
	dir := t.TempDir()
	cache := NewImageCache()

	tests := []struct {
		ext    string
		format string
	}{
		{".png", "png"},
		{".jpg", "jpeg"},
		{".JPEG", "jpeg"},
		{".gif", "gif"},
		{".xyz", "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.ext, func(t *testing.T) {
			// The content is always PNG; detection uses the extension.
			path := writePNG(t, dir, "format"+tt.ext, image.NewRGBA(image.Rect(0, 0, 10, 10)))
			info, err := LoadImageInfo(cache, path)
			require.NoError(t, err)
			assert.Equal(t, tt.format, info.Format)
		})
	}
}

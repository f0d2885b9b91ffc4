package imaging

import (
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/ironsheep/image-gradient-mcp/internal/region"
)

// ImageCache keeps decoded images keyed by file path so that repeated
// gradient requests on one file decode it once.
//
// ImageCache is safe for concurrent use by multiple goroutines.
//
// Cached images stay in memory until Evict or Clear is called.
//
// # Example Usage
//
//	cache := imaging.NewImageCache()
//	img, err := cache.Load("scan.png")
//	if err != nil {
//	    return err
//	}
//	res, err := imaging.ComputeGradient(ctx, img, imaging.GradientOptions{
//	    Config: gradient.DefaultConfig(),
//	})
//	cache.Evict("scan.png")
type ImageCache struct {
	mu     sync.RWMutex
	images map[string]image.Image
}

// NewImageCache creates an empty image cache.
func NewImageCache() *ImageCache {
	return &ImageCache{
		images: make(map[string]image.Image),
	}
}

// Load returns the cached image for path, decoding the file on first use.
//
// Parameters:
//   - path: Absolute or relative file path. Supported formats are PNG, JPEG
//     and GIF.
//
// Returns:
//   - image.Image: The decoded image. 16-bit PNGs decode to *image.Gray16 or
//     *image.NRGBA64, which ToRegion keeps at 16 bits.
//   - error: Non-nil if the file cannot be opened or decoded.
//
// The exact path string is the cache key, so a relative and an absolute path
// to the same file are cached separately.
//
// # Errors
//
//   - Returns error if the file does not exist or cannot be read
//   - Returns error if the file is not a valid PNG, JPEG, or GIF image
func (c *ImageCache) Load(path string) (image.Image, error) {
	c.mu.RLock()
	if img, ok := c.images[path]; ok {
		c.mu.RUnlock()
		return img, nil
	}
	c.mu.RUnlock()

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	c.mu.Lock()
	c.images[path] = img
	c.mu.Unlock()

	return img, nil
}

// Len returns the number of cached images.
func (c *ImageCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.images)
}

// Clear removes all images from the cache.
func (c *ImageCache) Clear() {
	c.mu.Lock()
	c.images = make(map[string]image.Image)
	c.mu.Unlock()
}

// Evict removes the image cached under path. Unknown paths are ignored.
func (c *ImageCache) Evict(path string) {
	c.mu.Lock()
	delete(c.images, path)
	c.mu.Unlock()
}

// ImageInfo describes an image file and the region it converts to.
type ImageInfo struct {
	// Width is the image width in pixels.
	Width int `json:"width"`

	// Height is the image height in pixels.
	Height int `json:"height"`

	// Format is "png", "jpeg", "gif" or "unknown", taken from the extension.
	Format string `json:"format"`

	// ScalarType is the sample type ToRegion produces without blurring:
	// "uint16" for 16-bit sources, "uint8" otherwise.
	ScalarType string `json:"scalar_type"`

	// HasAlpha reports whether the decoded image carries an alpha channel.
	HasAlpha bool `json:"has_alpha"`

	// Extent is the region extent of the whole image (axis 0 = X, axis 1 = Y).
	Extent string `json:"extent"`

	// FileSizeBytes is the file size on disk.
	FileSizeBytes int64 `json:"file_size_bytes"`
}

// LoadImageInfo loads path through cache and describes it.
//
// Parameters:
//   - cache: The cache the decoded image is stored in, so a following
//     gradient call on the same path does not decode it again.
//   - path: The image file path.
//
// Returns:
//   - *ImageInfo: Size, format, sample type and region extent.
//   - error: Non-nil if the image cannot be loaded or the file cannot be
//     stat'd.
//
// Format is taken from the file extension, not from the decoded data.
func LoadImageInfo(cache *ImageCache, path string) (*ImageInfo, error) {
	img, err := cache.Load(path)
	if err != nil {
		return nil, err
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	format := "unknown"
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		format = "png"
	case ".jpg", ".jpeg":
		format = "jpeg"
	case ".gif":
		format = "gif"
	}

	hasAlpha := false
	switch img.(type) {
	case *image.RGBA, *image.NRGBA, *image.RGBA64, *image.NRGBA64:
		hasAlpha = true
	}

	scalar := region.Uint8
	if is16Bit(img) {
		scalar = region.Uint16
	}

	bounds := img.Bounds()
	return &ImageInfo{
		Width:         bounds.Dx(),
		Height:        bounds.Dy(),
		Format:        format,
		ScalarType:    scalar.String(),
		HasAlpha:      hasAlpha,
		Extent:        ImageExtent(img).String(),
		FileSizeBytes: stat.Size(),
	}, nil
}

// is16Bit reports whether img stores more than 8 bits per channel.
func is16Bit(img image.Image) bool {
	switch img.(type) {
	case *image.Gray16, *image.RGBA64, *image.NRGBA64:
		return true
	}
	return false
}

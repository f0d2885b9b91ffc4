package gradient

import (
	"errors"
	"fmt"

	"github.com/ironsheep/image-gradient-mcp/internal/region"
)

var (
	// ErrTypeMismatch is returned when the output region is not float32.
	ErrTypeMismatch = errors.New("output scalar type must be float32")

	// ErrUnsupportedType is returned when the input region's element type is
	// not one of float32, int32, int16, uint16 or uint8.
	ErrUnsupportedType = errors.New("unsupported input scalar type")

	// ErrInvalidConfig is returned by Config.Validate.
	ErrInvalidConfig = errors.New("invalid gradient configuration")

	// ErrExtentMismatch is returned when the input region does not hold
	// every neighbor the stencil needs for the requested output extent.
	ErrExtentMismatch = errors.New("input extent does not cover output stencil")
)

// Policy selects how the filter treats the image edge.
type Policy int

const (
	// Replicate keeps the output extent equal to the input and substitutes
	// the center sample for neighbors past the image edge.
	Replicate Policy = iota

	// Shrink drops one sample per side on every active axis so that every
	// output sample has both neighbors.
	Shrink
)

func (p Policy) String() string {
	if p == Shrink {
		return "shrink"
	}
	return "replicate"
}

// Config is the immutable filter configuration passed to every call.
type Config struct {
	// Dimensionality is the number of axes that contribute to the gradient
	// (1-4). It is capped to len(Axes).
	Dimensionality int `toml:"dimensionality"`

	// HandleBoundaries keeps the output extent equal to the input extent.
	// When false the output shrinks by one sample per side on active axes.
	HandleBoundaries bool `toml:"handle_boundaries"`

	// Axes lists the buffer axes the computation runs over, in order.
	// Empty means all four axes in natural order.
	Axes []int `toml:"axes"`

	// Workers is the number of goroutines the kernel may use. Values below
	// 1 mean 1.
	Workers int `toml:"workers"`
}

// DefaultConfig returns a 2-D, boundary-handling configuration over the
// first two axes.
func DefaultConfig() Config {
	return Config{
		Dimensionality:   2,
		HandleBoundaries: true,
		Axes:             []int{0, 1},
		Workers:          1,
	}
}

// Validate reports configuration errors wrapped in ErrInvalidConfig.
func (c Config) Validate() error {
	if c.Dimensionality < 1 || c.Dimensionality > region.MaxAxes {
		return fmt.Errorf("%w: dimensionality %d not in 1..%d",
			ErrInvalidConfig, c.Dimensionality, region.MaxAxes)
	}
	if len(c.Axes) > region.MaxAxes {
		return fmt.Errorf("%w: %d axes given, at most %d",
			ErrInvalidConfig, len(c.Axes), region.MaxAxes)
	}
	var seen [region.MaxAxes]bool
	for _, a := range c.Axes {
		if a < 0 || a >= region.MaxAxes {
			return fmt.Errorf("%w: axis %d not in 0..%d", ErrInvalidConfig, a, region.MaxAxes-1)
		}
		if seen[a] {
			return fmt.Errorf("%w: axis %d listed twice", ErrInvalidConfig, a)
		}
		seen[a] = true
	}
	return nil
}

// Policy returns the boundary policy implied by HandleBoundaries.
func (c Config) Policy() Policy {
	if c.HandleBoundaries {
		return Replicate
	}
	return Shrink
}

// ActiveDims returns the number of axes that take part in the gradient.
func (c Config) ActiveDims() int {
	n := c.Dimensionality
	if len(c.Axes) > 0 && n > len(c.Axes) {
		n = len(c.Axes)
	}
	return max(min(n, region.MaxAxes), 0)
}

// Permutation maps computation axis i to buffer axis perm[i]: the
// configured axes first, then the remaining axes in natural order.
func (c Config) Permutation() [region.MaxAxes]int {
	var perm [region.MaxAxes]int
	var used [region.MaxAxes]bool
	n := 0
	for _, a := range c.Axes {
		if a >= 0 && a < region.MaxAxes && !used[a] && n < region.MaxAxes {
			perm[n] = a
			used[a] = true
			n++
		}
	}
	for a := 0; a < region.MaxAxes; a++ {
		if !used[a] {
			perm[n] = a
			n++
		}
	}
	return perm
}

// activeAxes returns the buffer axes that take part in the gradient.
func (c Config) activeAxes() []int {
	perm := c.Permutation()
	return perm[:c.ActiveDims()]
}

func (c Config) workers() int {
	if c.Workers < 1 {
		return 1
	}
	return c.Workers
}

func (c Config) String() string {
	return fmt.Sprintf("gradient magnitude: dimensionality=%d axes=%v boundaries=%s workers=%d",
		c.ActiveDims(), c.activeAxes(), c.Policy(), c.workers())
}

package region

import (
	"fmt"
	"strings"
)

// MaxAxes is the number of axes a Region can describe.
const MaxAxes = 4

// Range is an inclusive index interval on one axis.
type Range struct {
	Min int `json:"min" toml:"min"`
	Max int `json:"max" toml:"max"`
}

// Len returns the number of indices in the range (0 when empty).
func (r Range) Len() int {
	if r.Max < r.Min {
		return 0
	}
	return r.Max - r.Min + 1
}

// Empty reports whether the range holds no indices.
func (r Range) Empty() bool { return r.Max < r.Min }

// Contains reports whether i lies in the range.
func (r Range) Contains(i int) bool { return i >= r.Min && i <= r.Max }

// Extent holds one inclusive Range per axis.
type Extent [MaxAxes]Range

// NewExtent builds an extent from the given ranges. Axes that are not
// given collapse to the single index 0.
func NewExtent(ranges ...Range) Extent {
	var e Extent
	for i := 0; i < MaxAxes && i < len(ranges); i++ {
		e[i] = ranges[i]
	}
	return e
}

// Shape builds the extent [0,n-1] on each given axis.
func Shape(sizes ...int) Extent {
	var e Extent
	for i := 0; i < MaxAxes && i < len(sizes); i++ {
		e[i] = Range{Min: 0, Max: sizes[i] - 1}
	}
	return e
}

// Empty reports whether any axis is empty.
func (e Extent) Empty() bool {
	for _, r := range e {
		if r.Empty() {
			return true
		}
	}
	return false
}

// NumSamples returns the number of samples covered by the extent.
func (e Extent) NumSamples() int {
	n := 1
	for _, r := range e {
		n *= r.Len()
	}
	return n
}

// Contains reports whether o lies entirely inside e. An empty o is
// contained when its minimum corner is.
func (e Extent) Contains(o Extent) bool {
	for a := range e {
		if o[a].Min < e[a].Min {
			return false
		}
		if !o[a].Empty() && o[a].Max > e[a].Max {
			return false
		}
	}
	return true
}

// Clip returns the intersection of e and bounds.
func (e Extent) Clip(bounds Extent) Extent {
	out := e
	for a := range out {
		out[a].Min = max(out[a].Min, bounds[a].Min)
		out[a].Max = min(out[a].Max, bounds[a].Max)
	}
	return out
}

// Min returns the minimum corner of the extent.
func (e Extent) Min() [MaxAxes]int {
	var idx [MaxAxes]int
	for a, r := range e {
		idx[a] = r.Min
	}
	return idx
}

func (e Extent) String() string {
	parts := make([]string, MaxAxes)
	for a, r := range e {
		parts[a] = fmt.Sprintf("[%d,%d]", r.Min, r.Max)
	}
	return strings.Join(parts, "x")
}

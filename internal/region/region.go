package region

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
)

var (
	// ErrBufferTooSmall is returned when a view would address samples
	// outside its backing slice.
	ErrBufferTooSmall = errors.New("buffer too small for extent")

	// ErrOutOfExtent is returned when a sub-view or index leaves the
	// region's addressable extent.
	ErrOutOfExtent = errors.New("outside region extent")

	// ErrAliased is returned when two indices of a view share one sample.
	ErrAliased = errors.New("strides alias samples")
)

// Region is a strided view over a typed sample buffer.
//
// Extent, ImageExtent, Strides and Spacing are plain fields so callers can
// describe foreign buffers; Validate checks that they are consistent with
// the backing slice.
type Region struct {
	// Extent is the range of indices addressable in the buffer.
	Extent Extent

	// ImageExtent is the whole image's logical bounds. Filters treat
	// positions outside it as missing.
	ImageExtent Extent

	// Strides is the element step for one index on each axis.
	Strides [MaxAxes]int

	// Spacing is the physical distance between neighboring samples.
	Spacing [MaxAxes]float64

	// Origin is the element offset of Extent's minimum corner in the buffer.
	Origin int

	data any
}

// New allocates a zero-filled region of type t covering ext. Axis 0 is
// contiguous, ImageExtent equals ext and spacing is 1 on every axis.
func New(t ScalarType, ext Extent) (*Region, error) {
	n := ext.NumSamples()
	data, err := makeSlice(t, n)
	if err != nil {
		return nil, err
	}
	return &Region{
		Extent:      ext,
		ImageExtent: ext,
		Strides:     ContiguousStrides(ext),
		Spacing:     unitSpacing(),
		data:        data,
	}, nil
}

// Wrap builds a view over a caller-owned slice without copying it.
//
// Parameters:
//   - data: one of []float32, []int32, []int16, []uint16, []uint8, []float64.
//   - ext: the indices the view addresses; also used as ImageExtent.
//   - strides: element step per axis. Negative strides are allowed.
//
// Returns ErrUnknownType for other slice types and ErrBufferTooSmall when
// some index in ext would map outside data.
func Wrap(data any, ext Extent, strides [MaxAxes]int) (*Region, error) {
	r := &Region{
		Extent:      ext,
		ImageExtent: ext,
		Strides:     strides,
		Spacing:     unitSpacing(),
		data:        data,
	}
	if negativeSpan(ext, strides) > 0 {
		r.Origin = negativeSpan(ext, strides)
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return r, nil
}

// ContiguousStrides returns axis-0-fastest strides for a dense buffer
// covering ext.
func ContiguousStrides(ext Extent) [MaxAxes]int {
	var s [MaxAxes]int
	step := 1
	for a := 0; a < MaxAxes; a++ {
		s[a] = step
		step *= max(ext[a].Len(), 1)
	}
	return s
}

func unitSpacing() [MaxAxes]float64 {
	return [MaxAxes]float64{1, 1, 1, 1}
}

// negativeSpan is how far below Origin a view with negative strides reaches.
func negativeSpan(ext Extent, strides [MaxAxes]int) int {
	span := 0
	for a := 0; a < MaxAxes; a++ {
		if strides[a] < 0 && ext[a].Len() > 1 {
			span += -strides[a] * (ext[a].Len() - 1)
		}
	}
	return span
}

// Type returns the element type of the backing buffer.
func (r *Region) Type() ScalarType {
	t, _ := typeOf(r.data)
	return t
}

// Data returns the backing slice.
func (r *Region) Data() any { return r.data }

// Float32s returns the backing slice when the region holds float32 samples.
func (r *Region) Float32s() []float32 {
	d, _ := r.data.([]float32)
	return d
}

// Validate checks that the element type is known, that Extent lies inside
// ImageExtent, and that every addressable index maps into the buffer.
func (r *Region) Validate() error {
	t, n := typeOf(r.data)
	if t == Unknown {
		return fmt.Errorf("%w: %T", ErrUnknownType, r.data)
	}
	if !r.ImageExtent.Contains(r.Extent) {
		return fmt.Errorf("%w: extent %v not inside image extent %v",
			ErrOutOfExtent, r.Extent, r.ImageExtent)
	}
	if r.Extent.Empty() {
		return nil
	}
	lo, hi := r.Origin, r.Origin
	for a := 0; a < MaxAxes; a++ {
		span := r.Strides[a] * (r.Extent[a].Len() - 1)
		if span < 0 {
			lo += span
		} else {
			hi += span
		}
	}
	if lo < 0 || hi >= n {
		return fmt.Errorf("%w: offsets [%d,%d] with %d elements",
			ErrBufferTooSmall, lo, hi, n)
	}
	return nil
}

// CheckDistinct reports ErrAliased unless every index in Extent maps to its
// own buffer element. Axes are ordered by step size and each step must
// skip past everything the smaller axes reach, so layouts that interleave
// axes are rejected even when they happen not to collide.
func (r *Region) CheckDistinct() error {
	type axis struct{ step, n int }
	var axes []axis
	for a := 0; a < MaxAxes; a++ {
		if n := r.Extent[a].Len(); n > 1 {
			axes = append(axes, axis{step: abs(r.Strides[a]), n: n})
		}
	}
	slices.SortFunc(axes, func(x, y axis) int { return cmp.Compare(x.step, y.step) })

	reach := 0
	for _, ax := range axes {
		if ax.step <= reach {
			return fmt.Errorf("%w: strides %v over extent %v", ErrAliased, r.Strides, r.Extent)
		}
		reach += ax.step * (ax.n - 1)
	}
	return nil
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// Offset returns the buffer index of the sample at idx. It does not check
// that idx is inside Extent.
func (r *Region) Offset(idx [MaxAxes]int) int {
	off := r.Origin
	for a := 0; a < MaxAxes; a++ {
		off += (idx[a] - r.Extent[a].Min) * r.Strides[a]
	}
	return off
}

func (r *Region) inExtent(idx [MaxAxes]int) bool {
	for a := 0; a < MaxAxes; a++ {
		if !r.Extent[a].Contains(idx[a]) {
			return false
		}
	}
	return true
}

// At returns the sample at idx widened to float64.
func (r *Region) At(idx [MaxAxes]int) (float64, error) {
	if !r.inExtent(idx) {
		return 0, fmt.Errorf("%w: index %v, extent %v", ErrOutOfExtent, idx, r.Extent)
	}
	off := r.Offset(idx)
	switch d := r.data.(type) {
	case []float32:
		return float64(d[off]), nil
	case []int32:
		return float64(d[off]), nil
	case []int16:
		return float64(d[off]), nil
	case []uint16:
		return float64(d[off]), nil
	case []uint8:
		return float64(d[off]), nil
	case []float64:
		return d[off], nil
	}
	return 0, fmt.Errorf("%w: %T", ErrUnknownType, r.data)
}

// Set stores v at idx, truncating toward zero for integer buffers.
func (r *Region) Set(idx [MaxAxes]int, v float64) error {
	if !r.inExtent(idx) {
		return fmt.Errorf("%w: index %v, extent %v", ErrOutOfExtent, idx, r.Extent)
	}
	off := r.Offset(idx)
	switch d := r.data.(type) {
	case []float32:
		d[off] = float32(v)
	case []int32:
		d[off] = int32(v)
	case []int16:
		d[off] = int16(v)
	case []uint16:
		d[off] = uint16(v)
	case []uint8:
		d[off] = uint8(v)
	case []float64:
		d[off] = v
	default:
		return fmt.Errorf("%w: %T", ErrUnknownType, r.data)
	}
	return nil
}

// Each calls fn for every index in Extent, axis 0 innermost.
func (r *Region) Each(fn func(idx [MaxAxes]int)) {
	Each(r.Extent, fn)
}

// Each calls fn for every index in ext, axis 0 innermost.
func Each(ext Extent, fn func(idx [MaxAxes]int)) {
	if ext.Empty() {
		return
	}
	var idx [MaxAxes]int
	for idx[3] = ext[3].Min; idx[3] <= ext[3].Max; idx[3]++ {
		for idx[2] = ext[2].Min; idx[2] <= ext[2].Max; idx[2]++ {
			for idx[1] = ext[1].Min; idx[1] <= ext[1].Max; idx[1]++ {
				for idx[0] = ext[0].Min; idx[0] <= ext[0].Max; idx[0]++ {
					fn(idx)
				}
			}
		}
	}
}

// Fill stores v in every addressable sample.
func (r *Region) Fill(v float64) {
	r.Each(func(idx [MaxAxes]int) {
		_ = r.Set(idx, v)
	})
}

// Sub returns a view of the samples in ext sharing r's buffer, image
// extent, strides and spacing.
func (r *Region) Sub(ext Extent) (*Region, error) {
	if !r.Extent.Contains(ext) {
		return nil, fmt.Errorf("%w: sub-extent %v, extent %v", ErrOutOfExtent, ext, r.Extent)
	}
	sub := *r
	sub.Extent = ext
	sub.Origin = r.Offset(ext.Min())
	return &sub, nil
}

// Permute returns a view whose axis i is r's axis perm[i]. perm must be a
// permutation of 0..MaxAxes-1.
func (r *Region) Permute(perm [MaxAxes]int) *Region {
	p := *r
	for i, a := range perm {
		p.Extent[i] = r.Extent[a]
		p.ImageExtent[i] = r.ImageExtent[a]
		p.Strides[i] = r.Strides[a]
		p.Spacing[i] = r.Spacing[a]
	}
	return &p
}

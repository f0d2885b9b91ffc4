package gradient

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironsheep/image-gradient-mcp/internal/region"
)

func TestRun_ShrinkNeverReplicates(t *testing.T) {
	in := newFilled(t, region.Uint16, region.Shape(6), func(idx [4]int) float64 {
		return 3 * float64(idx[0])
	})
	cfg := oneAxis(0)
	cfg.HandleBoundaries = false

	res, err := Run(context.Background(), cfg, in, nil)
	require.NoError(t, err)

	assert.Equal(t, region.Range{Min: 1, Max: 4}, res.OutputExtent[0])
	assert.Equal(t, in.Extent, res.InputExtent)
	// Every output sample has both neighbors, so none shows the halved
	// edge value.
	assert.Equal(t, []float32{6, 6, 6, 6}, res.Output.Float32s())
}

func TestRun_RequestedMatchesWhole(t *testing.T) {
	in := newFilled(t, region.Uint8, region.Shape(6, 6), func(idx [4]int) float64 {
		return float64((idx[0]*7 + idx[1]*idx[1]) % 31)
	})
	cfg := DefaultConfig()

	whole, err := Run(context.Background(), cfg, in, nil)
	require.NoError(t, err)

	requests := []region.Extent{
		region.NewExtent(region.Range{Min: 2, Max: 4}, region.Range{Min: 1, Max: 3}),
		region.NewExtent(region.Range{Min: 0, Max: 2}, region.Range{Min: 0, Max: 2}),
		region.NewExtent(region.Range{Min: 5, Max: 5}, region.Range{Min: 0, Max: 5}),
	}
	for _, req := range requests {
		t.Run(req.String(), func(t *testing.T) {
			part, err := Run(context.Background(), cfg, in, &req)
			require.NoError(t, err)
			assert.True(t, in.ImageExtent.Contains(part.InputExtent))
			part.Output.Each(func(idx [4]int) {
				got, _ := part.Output.At(idx)
				want, _ := whole.Output.At(idx)
				assert.Equal(t, want, got, "index %v", idx)
			})
		})
	}
}

func TestRun_CroppedInput(t *testing.T) {
	full := newFilled(t, region.Int32, region.Shape(8, 8), func(idx [4]int) float64 {
		return float64(idx[0] * idx[1])
	})
	cfg := DefaultConfig()
	whole, err := Run(context.Background(), cfg, full, nil)
	require.NoError(t, err)

	req := region.NewExtent(region.Range{Min: 3, Max: 5}, region.Range{Min: 2, Max: 4})
	need := ComputeRequiredInputExtent(req, full.ImageExtent, cfg)
	crop, err := full.Sub(need)
	require.NoError(t, err)

	out := newOutput(t, req)
	require.NoError(t, Execute(cfg, crop, out))
	out.Each(func(idx [4]int) {
		got, _ := out.At(idx)
		want, _ := whole.Output.At(idx)
		assert.Equal(t, want, got, "index %v", idx)
	})
}

func TestRun_Errors(t *testing.T) {
	in := newFilled(t, region.Uint8, region.Shape(5, 5), func([4]int) float64 { return 0 })

	t.Run("request outside producible extent", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.HandleBoundaries = false
		req := region.NewExtent(region.Range{Min: 0, Max: 2}, region.Range{Min: 1, Max: 3})
		_, err := Run(context.Background(), cfg, in, &req)
		assert.ErrorIs(t, err, ErrExtentMismatch)
	})

	t.Run("input smaller than image", func(t *testing.T) {
		crop, err := in.Sub(region.NewExtent(region.Range{Min: 1, Max: 3}, region.Range{Min: 1, Max: 3}))
		require.NoError(t, err)
		_, err = Run(context.Background(), DefaultConfig(), crop, nil)
		assert.ErrorIs(t, err, ErrExtentMismatch)
	})

	t.Run("invalid config", func(t *testing.T) {
		_, err := Run(context.Background(), Config{Dimensionality: 5}, in, nil)
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})
}

func TestSummarize(t *testing.T) {
	r, err := region.Wrap([]float32{0, 2, 4, 0, 9, 3}, region.Shape(3, 2), region.ContiguousStrides(region.Shape(3, 2)))
	require.NoError(t, err)

	s := Summarize(r)
	assert.Equal(t, 6, s.Samples)
	assert.Equal(t, 4, s.NonZero)
	assert.Equal(t, 0.0, s.Min)
	assert.Equal(t, 9.0, s.Max)
	assert.InDelta(t, 3.0, s.Mean, 1e-9)

	empty, err := region.New(region.Float32, region.Shape(0))
	require.NoError(t, err)
	assert.Equal(t, Stats{}, Summarize(empty))
}

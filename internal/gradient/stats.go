package gradient

import (
	"math"

	"github.com/ironsheep/image-gradient-mcp/internal/region"
)

// Stats summarizes a magnitude region.
type Stats struct {
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Mean    float64 `json:"mean"`
	NonZero int     `json:"non_zero"`
	Samples int     `json:"samples"`
}

// Summarize computes Stats over every sample in r's extent. An empty
// region yields zero Stats.
func Summarize(r *region.Region) Stats {
	s := Stats{Min: math.Inf(1), Max: math.Inf(-1)}
	var sum float64
	r.Each(func(idx [region.MaxAxes]int) {
		v, err := r.At(idx)
		if err != nil {
			return
		}
		s.Samples++
		sum += v
		s.Min = math.Min(s.Min, v)
		s.Max = math.Max(s.Max, v)
		if v != 0 {
			s.NonZero++
		}
	})
	if s.Samples == 0 {
		return Stats{}
	}
	s.Mean = sum / float64(s.Samples)
	return s
}

package gradient

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.NoError(t, cfg.Validate())
	assert.Equal(t, 2, cfg.ActiveDims())
	assert.Equal(t, Replicate, cfg.Policy())
	assert.Equal(t, [4]int{0, 1, 2, 3}, cfg.Permutation())
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"zero value", Config{}, true},
		{"dimensionality too high", Config{Dimensionality: 5}, true},
		{"negative axis", Config{Dimensionality: 1, Axes: []int{-1}}, true},
		{"axis out of range", Config{Dimensionality: 1, Axes: []int{4}}, true},
		{"duplicate axis", Config{Dimensionality: 2, Axes: []int{1, 1}}, true},
		{"too many axes", Config{Dimensionality: 4, Axes: []int{0, 1, 2, 3, 0}}, true},
		{"all axes implicit", Config{Dimensionality: 4}, false},
		{"reordered axes", Config{Dimensionality: 2, Axes: []int{2, 0}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidConfig)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfig_Permutation(t *testing.T) {
	assert.Equal(t, [4]int{2, 0, 1, 3}, Config{Axes: []int{2, 0}}.Permutation())
	assert.Equal(t, [4]int{3, 2, 1, 0}, Config{Axes: []int{3, 2, 1, 0}}.Permutation())
	assert.Equal(t, [4]int{0, 1, 2, 3}, Config{}.Permutation())
}

func TestConfig_ActiveDims(t *testing.T) {
	assert.Equal(t, 2, Config{Dimensionality: 3, Axes: []int{0, 1}}.ActiveDims())
	assert.Equal(t, 3, Config{Dimensionality: 3}.ActiveDims())
	assert.Equal(t, 1, Config{Dimensionality: 1, Axes: []int{0, 1, 2}}.ActiveDims())
}

func TestConfig_String(t *testing.T) {
	s := Config{Dimensionality: 1, Axes: []int{2}, HandleBoundaries: false, Workers: 0}.String()
	assert.Contains(t, s, "dimensionality=1")
	assert.Contains(t, s, "axes=[2]")
	assert.Contains(t, s, "boundaries=shrink")
	assert.Contains(t, s, "workers=1")
}

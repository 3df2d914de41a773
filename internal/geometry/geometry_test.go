package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBoxIntersects(t *testing.T) {
	base := Box{Min: Vector{0, 0, 0}, Extent: Vector{5, 5, 5}}

	tests := []struct {
		name  string
		other Box
		want  bool
	}{
		{"overlapping", Box{Min: Vector{4, 4, 4}, Extent: Vector{2, 2, 2}}, true},
		{"contained", Box{Min: Vector{1, 1, 1}, Extent: Vector{2, 2, 2}}, true},
		{"identical", base, true},
		{"touching face x", Box{Min: Vector{5, 0, 0}, Extent: Vector{2, 2, 2}}, false},
		{"touching face y", Box{Min: Vector{0, 5, 0}, Extent: Vector{2, 2, 2}}, false},
		{"touching face z", Box{Min: Vector{0, 0, 5}, Extent: Vector{2, 2, 2}}, false},
		{"touching edge", Box{Min: Vector{5, 5, 0}, Extent: Vector{1, 1, 1}}, false},
		{"disjoint", Box{Min: Vector{10, 10, 10}, Extent: Vector{1, 1, 1}}, false},
		{"overlap on two axes only", Box{Min: Vector{1, 1, 7}, Extent: Vector{1, 1, 1}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, base.Intersects(tt.other))
			assert.Equal(t, tt.want, tt.other.Intersects(base), "intersection must be symmetric")
		})
	}
}

func TestBoxFitsWithin(t *testing.T) {
	container := Vector{10, 10, 10}

	tests := []struct {
		name string
		box  Box
		want bool
	}{
		{"inside", Box{Min: Vector{1, 1, 1}, Extent: Vector{2, 2, 2}}, true},
		{"exact fill", Box{Min: Vector{0, 0, 0}, Extent: Vector{10, 10, 10}}, true},
		{"flush against far wall", Box{Min: Vector{8, 0, 0}, Extent: Vector{2, 2, 2}}, true},
		{"sticks out x", Box{Min: Vector{9, 0, 0}, Extent: Vector{2, 2, 2}}, false},
		{"sticks out z", Box{Min: Vector{0, 0, 9}, Extent: Vector{1, 1, 2}}, false},
		{"negative position", Box{Min: Vector{-1, 0, 0}, Extent: Vector{2, 2, 2}}, false},
		{"too large", Box{Min: Vector{0, 0, 0}, Extent: Vector{11, 1, 1}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.box.FitsWithin(container))
		})
	}
}

func TestRotationApply(t *testing.T) {
	// Width 1, height 2, thickness 3: the six orientations permute the
	// values across the x (width), y (thickness) and z (height) axes.
	want := []Vector{
		{X: 1, Y: 3, Z: 2},
		{X: 1, Y: 2, Z: 3},
		{X: 3, Y: 2, Z: 1},
		{X: 3, Y: 1, Z: 2},
		{X: 2, Y: 1, Z: 3},
		{X: 2, Y: 3, Z: 1},
	}
	for r := Rotation(0); r < NumRotations; r++ {
		assert.Equal(t, want[r], r.Apply(1, 2, 3), "rotation %d", r)
	}
}

func TestRotationApplyCoversAllPermutations(t *testing.T) {
	seen := make(map[Vector]bool)
	for r := Rotation(0); r < NumRotations; r++ {
		seen[r.Apply(1, 2, 3)] = true
	}
	assert.Len(t, seen, 6, "all six orientations must be distinct for distinct dimensions")
}

func TestRotationApplyPreservesVolume(t *testing.T) {
	for r := Rotation(0); r < NumRotations; r++ {
		assert.InDelta(t, 24.0, r.Apply(2, 3, 4).Volume(), 1e-12)
	}
}

func TestVectorAddAndMax(t *testing.T) {
	b := Box{Min: Vector{1, 2, 3}, Extent: Vector{4, 5, 6}}
	assert.Equal(t, Vector{5, 7, 9}, b.Max())
}

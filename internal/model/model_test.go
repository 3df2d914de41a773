package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/cargopack/internal/geometry"
)

func TestNewPackage(t *testing.T) {
	pkg, err := NewPackage("Crate", 2, 3, 4, 5)
	require.NoError(t, err)

	assert.NotEmpty(t, pkg.ID)
	assert.Equal(t, "Crate", pkg.Name)
	assert.InDelta(t, 24.0, pkg.Volume(), 1e-12)
	assert.InDelta(t, 5.0, pkg.Weight, 1e-12)
}

func TestNewPackage_Validation(t *testing.T) {
	tests := []struct {
		name     string
		w, h, th float64
		weight   float64
		wantErr  error
	}{
		{"zero width", 0, 1, 1, 1, ErrInvalidDimension},
		{"negative height", 1, -1, 1, 1, ErrInvalidDimension},
		{"zero thickness", 1, 1, 0, 1, ErrInvalidDimension},
		{"negative weight", 1, 1, 1, -1, ErrInvalidWeight},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewPackage("Bad", tt.w, tt.h, tt.th, tt.weight)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestNewPackage_ZeroWeightAllowed(t *testing.T) {
	_, err := NewPackage("Feather", 1, 1, 1, 0)
	assert.NoError(t, err)
}

func TestNewVehicle_Validation(t *testing.T) {
	_, err := NewVehicle("Vans", "V", 0, 10, 10, 50)
	assert.ErrorIs(t, err, ErrInvalidDimension)

	_, err = NewVehicle("Vans", "V", 10, 10, 10, -1)
	assert.ErrorIs(t, err, ErrInvalidWeight)

	v, err := NewVehicle("Vans", "V", 5, 5, 5, 10)
	require.NoError(t, err)
	assert.InDelta(t, 125.0, v.Volume(), 1e-12)
	assert.InDelta(t, 10.0, v.WeightLimit, 1e-12)
}

func TestDimensionsExtentAxisMapping(t *testing.T) {
	d := Dimensions{Width: 1, Height: 2, Thickness: 3}
	// x carries width, y thickness, z height.
	assert.Equal(t, geometry.Vector{X: 1, Y: 3, Z: 2}, d.Extent())
}

func TestPlacementBox(t *testing.T) {
	pkg, err := NewPackage("Crate", 4, 2, 3, 1)
	require.NoError(t, err)

	pl := Placement{Package: pkg, Rotation: 0, Position: geometry.Vector{X: 1, Y: 1, Z: 1}}
	box := pl.Box()

	assert.Equal(t, geometry.Vector{X: 1, Y: 1, Z: 1}, box.Min)
	assert.Equal(t, geometry.Vector{X: 4, Y: 3, Z: 2}, box.Extent)
	assert.Equal(t, geometry.Vector{X: 5, Y: 4, Z: 3}, box.Max())
}

func TestLoadResultMetrics(t *testing.T) {
	vehicle, err := NewVehicle("Vans", "V", 10, 10, 10, 100)
	require.NoError(t, err)
	a, err := NewPackage("A", 2, 2, 2, 10)
	require.NoError(t, err)
	b, err := NewPackage("B", 3, 3, 3, 20)
	require.NoError(t, err)
	c, err := NewPackage("C", 50, 50, 50, 1)
	require.NoError(t, err)

	lr := LoadResult{
		Vehicle: vehicle,
		Placements: []Placement{
			{Package: a, Rotation: 0, Position: geometry.Vector{}},
			{Package: b, Rotation: 0, Position: geometry.Vector{X: 2}},
		},
		Unplaced: []Package{c},
	}

	assert.Equal(t, 2, lr.PackedCount())
	assert.InDelta(t, 35.0, lr.PackedVolume(), 1e-12)
	assert.InDelta(t, 30.0, lr.LoadedWeight(), 1e-12)
	assert.InDelta(t, 70.0, lr.WeightHeadroom(), 1e-12)
	assert.InDelta(t, 965.0, lr.VolumeHeadroom(), 1e-12)
	assert.InDelta(t, 3.5, lr.Utilization(), 1e-12)
	assert.InDelta(t, 200.0/3.0, lr.PackedPercent(3), 1e-9)
}

func TestPlatformResultPackedCount(t *testing.T) {
	vehicle, err := NewVehicle("Vans", "V", 10, 10, 10, 100)
	require.NoError(t, err)
	a, err := NewPackage("A", 1, 1, 1, 1)
	require.NoError(t, err)

	single := PlatformResult{
		Platform:      "Vans",
		Best:          &LoadResult{Vehicle: vehicle, Placements: []Placement{{Package: a}}},
		TotalPackages: 2,
	}
	assert.Equal(t, 1, single.PackedCount())
	assert.InDelta(t, 50.0, single.PackedPercent(), 1e-12)

	dist := PlatformResult{
		Platform: "Vans",
		Loads: []LoadResult{
			{Vehicle: vehicle, Placements: []Placement{{Package: a}}},
			{Vehicle: vehicle, Placements: []Placement{{Package: a}, {Package: a}}},
		},
		TotalPackages: 3,
	}
	assert.Equal(t, 3, dist.PackedCount())
	assert.InDelta(t, 100.0, dist.PackedPercent(), 1e-12)
}

func TestFleetHelpers(t *testing.T) {
	fleet := DefaultFleet()
	require.NotEmpty(t, fleet.Vehicles)

	assert.Equal(t, []string{"Platform1"}, fleet.Platforms())
	assert.Equal(t, []string{"Vehicle1", "Vehicle2"}, fleet.VehicleNames())

	byName := fleet.FindByName("Vehicle2")
	require.NotNil(t, byName)
	assert.InDelta(t, 75.0, byName.WeightLimit, 1e-12)

	byID := fleet.FindByID(fleet.Vehicles[0].ID)
	require.NotNil(t, byID)
	assert.Equal(t, "Vehicle1", byID.Name)

	assert.Nil(t, fleet.FindByName("NoSuchVehicle"))
	assert.Nil(t, fleet.FindByID("00000000"))
}

func TestAppConfigRecentPlans(t *testing.T) {
	cfg := DefaultAppConfig()

	cfg.AddRecentPlan("a.json")
	cfg.AddRecentPlan("b.json")
	cfg.AddRecentPlan("a.json")
	assert.Equal(t, []string{"a.json", "b.json"}, cfg.RecentPlans)

	for i := 0; i < 15; i++ {
		cfg.AddRecentPlan(string(rune('a'+i)) + "-plan.json")
	}
	assert.Len(t, cfg.RecentPlans, maxRecentPlans)
}

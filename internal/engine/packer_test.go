package engine

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/cargopack/internal/geometry"
	"github.com/piwi3910/cargopack/internal/model"
)

func mustPackage(t *testing.T, name string, w, h, th, weight float64) model.Package {
	t.Helper()
	pkg, err := model.NewPackage(name, w, h, th, weight)
	require.NoError(t, err)
	return pkg
}

func mustVehicle(t *testing.T, platform, name string, w, h, th, limit float64) model.Vehicle {
	t.Helper()
	v, err := model.NewVehicle(platform, name, w, h, th, limit)
	require.NoError(t, err)
	return v
}

// checkInvariants asserts the structural guarantees every load result must
// satisfy: pairwise non-overlap, containment in the bay, the weight limit,
// and placed + unplaced adding up to the input count.
func checkInvariants(t *testing.T, lr model.LoadResult, inputCount int) {
	t.Helper()

	bay := lr.Vehicle.Bay.Extent()
	for i, a := range lr.Placements {
		assert.True(t, a.Box().FitsWithin(bay),
			"placement %d (%s) must lie inside the bay", i, a.Package.Name)
		for j := i + 1; j < len(lr.Placements); j++ {
			b := lr.Placements[j]
			assert.False(t, a.Box().Intersects(b.Box()),
				"placements %s and %s must not overlap", a.Package.Name, b.Package.Name)
		}
	}

	assert.LessOrEqual(t, lr.LoadedWeight(), lr.Vehicle.WeightLimit)
	assert.Equal(t, inputCount, lr.PackedCount()+len(lr.Unplaced),
		"every input package must be either placed or unplaced")
}

func TestPack_SinglePackageAtOrigin(t *testing.T) {
	vehicle := mustVehicle(t, "Platform1", "Vehicle1", 5, 5, 5, 10)
	pkg := mustPackage(t, "Package1", 2, 2, 2, 1)

	lr := Pack(vehicle, []model.Package{pkg})

	require.Len(t, lr.Placements, 1)
	assert.Empty(t, lr.Unplaced)
	assert.Equal(t, geometry.Vector{}, lr.Placements[0].Position)
	assert.Equal(t, "Package1", lr.Placements[0].Package.Name)
}

func TestPack_MultiplePackages(t *testing.T) {
	vehicle := mustVehicle(t, "Platform1", "Vehicle1", 5, 5, 5, 10)
	packages := []model.Package{
		mustPackage(t, "Package1", 2, 2, 2, 1),
		mustPackage(t, "Package2", 3, 3, 3, 2),
		mustPackage(t, "Package3", 1, 1, 1, 1),
	}

	lr := Pack(vehicle, packages)

	assert.Equal(t, 3, lr.PackedCount())
	assert.Empty(t, lr.Unplaced)
	checkInvariants(t, lr, 3)
}

func TestPack_RejectsOverweight(t *testing.T) {
	vehicle := mustVehicle(t, "Platform1", "Vehicle1", 10, 10, 10, 10)
	heavy := mustPackage(t, "HeavyPackage", 1, 1, 1, 11)

	lr := Pack(vehicle, []model.Package{heavy})

	assert.Equal(t, 0, lr.PackedCount())
	require.Len(t, lr.Unplaced, 1)
	assert.Equal(t, "HeavyPackage", lr.Unplaced[0].Name)
}

func TestPack_RejectsOversized(t *testing.T) {
	vehicle := mustVehicle(t, "Platform1", "Vehicle1", 5, 5, 5, 10)
	large := mustPackage(t, "LargePackage", 6, 6, 6, 1)

	lr := Pack(vehicle, []model.Package{large})

	assert.Equal(t, 0, lr.PackedCount())
	require.Len(t, lr.Unplaced, 1)
}

func TestPack_ExactFit(t *testing.T) {
	vehicle := mustVehicle(t, "Platform1", "Vehicle1", 6, 6, 6, 50)
	var packages []model.Package
	for i := 1; i <= 4; i++ {
		packages = append(packages, mustPackage(t, fmt.Sprintf("Package%d", i), 3, 3, 3, 10))
	}

	lr := Pack(vehicle, packages)

	assert.Equal(t, 4, lr.PackedCount())
	assert.Empty(t, lr.Unplaced)
	checkInvariants(t, lr, 4)
}

func TestPack_RotatedFit(t *testing.T) {
	// The third package only fits once rotation reorients it against the
	// two slabs already placed.
	vehicle := mustVehicle(t, "Platform1", "Vehicle1", 5, 5, 5, 50)
	packages := []model.Package{
		mustPackage(t, "Package1", 5, 2, 2, 5),
		mustPackage(t, "Package2", 5, 2, 2, 5),
		mustPackage(t, "Package3", 2, 2, 5, 5),
	}

	lr := Pack(vehicle, packages)

	assert.Equal(t, 3, lr.PackedCount())
	assert.Empty(t, lr.Unplaced)
	checkInvariants(t, lr, 3)
}

func TestPack_FillsBayCompletely(t *testing.T) {
	// 125 unit cubes tile a 5x5x5 bay exactly; the pivot chain must reach
	// every lattice position.
	vehicle := mustVehicle(t, "Platform1", "Vehicle1", 5, 5, 5, 500)
	var packages []model.Package
	for i := 0; i < 125; i++ {
		packages = append(packages, mustPackage(t, fmt.Sprintf("Cube%d", i), 1, 1, 1, 1))
	}

	lr := Pack(vehicle, packages)

	assert.Equal(t, 125, lr.PackedCount())
	assert.Empty(t, lr.Unplaced)
	assert.InDelta(t, 100.0, lr.Utilization(), 1e-9)
	checkInvariants(t, lr, 125)
}

func TestPack_LargestPackageClaimsBay(t *testing.T) {
	// Largest-first ordering: the 9-cube is committed at the origin and
	// leaves no room for the others at any pivot.
	vehicle := mustVehicle(t, "Platform1", "Vehicle1", 10, 10, 10, 100)
	packages := []model.Package{
		mustPackage(t, "Mid", 8, 8, 8, 20),
		mustPackage(t, "Small", 5, 5, 5, 10),
		mustPackage(t, "Big", 9, 9, 9, 15),
	}

	lr := Pack(vehicle, packages)

	require.Equal(t, 1, lr.PackedCount())
	assert.Equal(t, "Big", lr.Placements[0].Package.Name)
	assert.Equal(t, geometry.Vector{}, lr.Placements[0].Position)
	assert.Len(t, lr.Unplaced, 2)
	checkInvariants(t, lr, 3)
}

func TestPack_SecondPackageAtDerivedPivot(t *testing.T) {
	vehicle := mustVehicle(t, "Platform1", "Vehicle1", 10, 10, 10, 100)
	packages := []model.Package{
		mustPackage(t, "Small", 2, 2, 2, 10),
		mustPackage(t, "Big", 8, 8, 8, 20),
	}

	lr := Pack(vehicle, packages)

	require.Equal(t, 2, lr.PackedCount())
	assert.Equal(t, "Big", lr.Placements[0].Package.Name)
	assert.Equal(t, geometry.Vector{}, lr.Placements[0].Position)
	// First derived pivot past the big box along x wins.
	assert.Equal(t, "Small", lr.Placements[1].Package.Name)
	assert.Equal(t, geometry.Vector{X: 8}, lr.Placements[1].Position)
	assert.InDelta(t, 30.0, lr.LoadedWeight(), 1e-12)
}

func TestPack_WeightLimitStopsFurtherLoading(t *testing.T) {
	vehicle := mustVehicle(t, "Platform1", "Vehicle1", 10, 10, 10, 25)
	packages := []model.Package{
		mustPackage(t, "A", 3, 3, 3, 10),
		mustPackage(t, "B", 3, 3, 3, 10),
		mustPackage(t, "C", 3, 3, 3, 10),
	}

	lr := Pack(vehicle, packages)

	assert.Equal(t, 2, lr.PackedCount())
	require.Len(t, lr.Unplaced, 1)
	assert.LessOrEqual(t, lr.LoadedWeight(), vehicle.WeightLimit)
	checkInvariants(t, lr, 3)
}

func TestPack_Determinism(t *testing.T) {
	vehicle := mustVehicle(t, "Platform1", "Vehicle1", 12, 9, 7, 80)
	var packages []model.Package
	for i := 0; i < 20; i++ {
		packages = append(packages, mustPackage(t, fmt.Sprintf("P%d", i),
			float64(1+i%5), float64(1+(i*3)%4), float64(1+(i*7)%3), float64(i%6)))
	}

	first := Pack(vehicle, packages)
	second := Pack(vehicle, packages)

	require.Equal(t, first.PackedCount(), second.PackedCount())
	for i := range first.Placements {
		assert.Equal(t, first.Placements[i], second.Placements[i])
	}
	assert.Equal(t, first.Unplaced, second.Unplaced)
	checkInvariants(t, first, 20)
}

func TestPack_VolumeOrderingIsMonotonic(t *testing.T) {
	vehicle := mustVehicle(t, "Platform1", "Vehicle1", 20, 20, 20, 1000)
	packages := []model.Package{
		mustPackage(t, "Tiny", 1, 1, 1, 1),
		mustPackage(t, "Huge", 6, 6, 6, 1),
		mustPackage(t, "Medium", 3, 3, 3, 1),
	}

	lr := Pack(vehicle, packages)

	require.Equal(t, 3, lr.PackedCount())
	assert.Equal(t, "Huge", lr.Placements[0].Package.Name)
	assert.Equal(t, "Medium", lr.Placements[1].Package.Name)
	assert.Equal(t, "Tiny", lr.Placements[2].Package.Name)
}

func TestPack_WeightBreaksVolumeTies(t *testing.T) {
	vehicle := mustVehicle(t, "Platform1", "Vehicle1", 20, 20, 20, 1000)
	packages := []model.Package{
		mustPackage(t, "Light", 2, 2, 2, 1),
		mustPackage(t, "Heavy", 2, 2, 2, 9),
	}

	lr := Pack(vehicle, packages)

	require.Equal(t, 2, lr.PackedCount())
	assert.Equal(t, "Heavy", lr.Placements[0].Package.Name)
	assert.Equal(t, "Light", lr.Placements[1].Package.Name)
}

func TestPack_EmptyInput(t *testing.T) {
	vehicle := mustVehicle(t, "Platform1", "Vehicle1", 5, 5, 5, 10)

	lr := Pack(vehicle, nil)

	assert.Equal(t, 0, lr.PackedCount())
	assert.Empty(t, lr.Unplaced)
	assert.InDelta(t, 100.0, lr.PackedPercent(0), 1e-12)
}

func TestPack_DoesNotMutateInput(t *testing.T) {
	vehicle := mustVehicle(t, "Platform1", "Vehicle1", 10, 10, 10, 100)
	packages := []model.Package{
		mustPackage(t, "Small", 1, 1, 1, 1),
		mustPackage(t, "Big", 5, 5, 5, 5),
	}
	names := []string{packages[0].Name, packages[1].Name}

	Pack(vehicle, packages)

	assert.Equal(t, names[0], packages[0].Name, "input order must be untouched")
	assert.Equal(t, names[1], packages[1].Name, "input order must be untouched")
}

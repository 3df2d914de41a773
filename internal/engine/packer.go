// Package engine runs the 3D cargo packing algorithm: a greedy constructive
// heuristic after Dube & Kanavathy, "Optimizing Three-Dimensional Bin Packing
// Through Simulation" (IASTED MSO 2006). Packages are committed largest-first
// at pivot points derived from already-placed boxes, trying all six rotations
// at each pivot.
package engine

import (
	"sort"

	"github.com/piwi3910/cargopack/internal/geometry"
	"github.com/piwi3910/cargopack/internal/model"
)

// Pack loads packages into a single vehicle and partitions them into placed
// and unplaced. The input slices are not modified; given identical inputs the
// result is identical, since every enumeration order is fixed.
func Pack(vehicle model.Vehicle, packages []model.Package) model.LoadResult {
	sorted := sortForPacking(packages)
	bay := vehicle.Bay.Extent()

	var placements []model.Placement
	var unplaced []model.Package
	occupied := make(map[geometry.Vector]bool)
	loadedWeight := 0.0
	packedVolume := 0.0

	for _, pkg := range sorted {
		// Quick reject: a package heavier than the remaining capacity or
		// bigger than the remaining bay volume cannot fit at any pivot.
		if vehicle.WeightLimit-loadedWeight < pkg.Weight ||
			vehicle.Volume()-packedVolume < pkg.Volume() {
			unplaced = append(unplaced, pkg)
			continue
		}

		placed := false
		for _, pivot := range pivots(placements) {
			if occupied[pivot] {
				continue
			}
			if pl, ok := tryPlace(pkg, pivot, bay, placements); ok {
				placements = append(placements, pl)
				occupied[pivot] = true
				loadedWeight += pkg.Weight
				packedVolume += pkg.Volume()
				placed = true
				break
			}
		}
		if !placed {
			unplaced = append(unplaced, pkg)
		}
	}

	return model.LoadResult{
		Vehicle:    vehicle,
		Placements: placements,
		Unplaced:   unplaced,
	}
}

// sortForPacking returns a copy of packages ordered by volume descending,
// ties by weight descending. The sort is stable so full ties keep their input
// order; larger and heavier packages are committed first because they are the
// hardest to place later.
func sortForPacking(packages []model.Package) []model.Package {
	sorted := make([]model.Package, len(packages))
	copy(sorted, packages)
	sort.SliceStable(sorted, func(i, j int) bool {
		vi, vj := sorted[i].Volume(), sorted[j].Volume()
		if vi != vj {
			return vi > vj
		}
		return sorted[i].Weight > sorted[j].Weight
	})
	return sorted
}

// pivots returns candidate anchor points for the next package: the origin,
// then for each committed placement the three points immediately past its box
// along each axis, in commit order. Earlier candidates win ties, so this
// ordering is part of the heuristic's observable behavior.
func pivots(placements []model.Placement) []geometry.Vector {
	candidates := make([]geometry.Vector, 0, 1+3*len(placements))
	candidates = append(candidates, geometry.Vector{})
	for _, pl := range placements {
		min := pl.Position
		ext := pl.Extent()
		candidates = append(candidates,
			geometry.Vector{X: min.X + ext.X, Y: min.Y, Z: min.Z},
			geometry.Vector{X: min.X, Y: min.Y + ext.Y, Z: min.Z},
			geometry.Vector{X: min.X, Y: min.Y, Z: min.Z + ext.Z},
		)
	}
	return candidates
}

// tryPlace tests the six rotations of pkg at pivot in canonical order and
// returns a placement for the first that stays inside the bay and clears
// every committed box.
func tryPlace(pkg model.Package, pivot geometry.Vector, bay geometry.Vector, placements []model.Placement) (model.Placement, bool) {
	for r := geometry.Rotation(0); r < geometry.NumRotations; r++ {
		box := geometry.Box{Min: pivot, Extent: pkg.Dims.Oriented(r)}
		if !box.FitsWithin(bay) {
			continue
		}
		collided := false
		for _, pl := range placements {
			if box.Intersects(pl.Box()) {
				collided = true
				break
			}
		}
		if !collided {
			return model.Placement{Package: pkg, Rotation: r, Position: pivot}, true
		}
	}
	return model.Placement{}, false
}

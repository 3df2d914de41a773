package engine

import (
	"errors"
	"sort"

	"github.com/piwi3910/cargopack/internal/model"
)

// ErrNoVehicles is returned when the vehicle catalog is empty and
// classification has nothing to work with.
var ErrNoVehicles = errors.New("no vehicles available to classify")

// Classify evaluates the fleet against the package list, one result per
// platform in first-seen catalog order. In single-best mode each platform
// reports the smallest vehicle carrying the most cargo; in distribution mode
// packages are spread across the platform's vehicles, largest bay first.
func Classify(vehicles []model.Vehicle, packages []model.Package, distribute bool) (model.ClassifyResult, error) {
	if len(vehicles) == 0 {
		return model.ClassifyResult{}, ErrNoVehicles
	}

	result := model.ClassifyResult{
		Distributed:   distribute,
		TotalPackages: len(packages),
	}

	for _, platform := range platformOrder(vehicles) {
		group := filterPlatform(vehicles, platform)
		var pr model.PlatformResult
		if distribute {
			pr = distributeAcross(platform, group, packages)
		} else {
			pr = bestSingle(platform, group, packages)
		}
		result.Platforms = append(result.Platforms, pr)
	}

	return result, nil
}

// bestSingle scans the platform's vehicles ascending by bay volume and keeps
// the first vehicle to place every package, or failing that the vehicle with
// the highest placed count. Strict improvement keeps the smallest vehicle on
// ties, and the scan stops as soon as a vehicle reaches 100%.
func bestSingle(platform string, vehicles []model.Vehicle, packages []model.Package) model.PlatformResult {
	sorted := sortVehicles(vehicles, false)

	var best *model.LoadResult
	for _, v := range sorted {
		lr := Pack(v, packages)
		if best == nil || lr.PackedCount() > best.PackedCount() {
			cp := lr
			best = &cp
		}
		if lr.PackedCount() == len(packages) {
			break
		}
	}

	return model.PlatformResult{
		Platform:      platform,
		Best:          best,
		TotalPackages: len(packages),
	}
}

// distributeAcross fills the platform's vehicles largest bay first, feeding
// each vehicle the packages its predecessors could not take. Vehicles that
// place nothing are not reported as used. The remaining-package order follows
// the original input list.
func distributeAcross(platform string, vehicles []model.Vehicle, packages []model.Package) model.PlatformResult {
	sorted := sortVehicles(vehicles, true)

	remaining := packages
	var loads []model.LoadResult
	for _, v := range sorted {
		if len(remaining) == 0 {
			break
		}
		lr := Pack(v, remaining)
		if lr.PackedCount() == 0 {
			continue
		}
		loads = append(loads, lr)
		remaining = withoutPlaced(remaining, lr.Placements)
	}

	return model.PlatformResult{
		Platform:      platform,
		Loads:         loads,
		Unplaced:      remaining,
		TotalPackages: len(packages),
	}
}

// sortVehicles returns a copy ordered by bay volume, weight limit and name.
// Descending order is used in distribution mode so the largest vehicle is
// filled first; single-best mode scans ascending so the first full fit is
// also the smallest.
func sortVehicles(vehicles []model.Vehicle, descending bool) []model.Vehicle {
	sorted := make([]model.Vehicle, len(vehicles))
	copy(sorted, vehicles)
	sort.SliceStable(sorted, func(i, j int) bool {
		vi, vj := sorted[i].Volume(), sorted[j].Volume()
		if vi != vj {
			if descending {
				return vi > vj
			}
			return vi < vj
		}
		wi, wj := sorted[i].WeightLimit, sorted[j].WeightLimit
		if wi != wj {
			if descending {
				return wi > wj
			}
			return wi < wj
		}
		return sorted[i].Name < sorted[j].Name
	})
	return sorted
}

// withoutPlaced filters the placed packages out of remaining, preserving the
// relative order of the leftovers.
func withoutPlaced(remaining []model.Package, placements []model.Placement) []model.Package {
	placed := make(map[string]bool, len(placements))
	for _, pl := range placements {
		placed[pl.Package.ID] = true
	}
	var left []model.Package
	for _, pkg := range remaining {
		if !placed[pkg.ID] {
			left = append(left, pkg)
		}
	}
	return left
}

// platformOrder returns the distinct platform labels in first-seen order.
func platformOrder(vehicles []model.Vehicle) []string {
	seen := make(map[string]bool)
	var platforms []string
	for _, v := range vehicles {
		if !seen[v.Platform] {
			seen[v.Platform] = true
			platforms = append(platforms, v.Platform)
		}
	}
	return platforms
}

// filterPlatform returns the vehicles belonging to the given platform, in
// catalog order.
func filterPlatform(vehicles []model.Vehicle, platform string) []model.Vehicle {
	var group []model.Vehicle
	for _, v := range vehicles {
		if v.Platform == platform {
			group = append(group, v)
		}
	}
	return group
}

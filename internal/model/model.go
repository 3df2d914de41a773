package model

import (
	"github.com/google/uuid"

	"github.com/piwi3910/cargopack/internal/geometry"
)

// Dimensions holds the width, height and thickness of a rectangular box in cm.
// Vehicles and packages both carry a Dimensions value; neither is a
// specialization of the other.
type Dimensions struct {
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
	Thickness float64 `json:"thickness"`
}

// Volume returns width x height x thickness.
func (d Dimensions) Volume() float64 {
	return d.Width * d.Height * d.Thickness
}

// Validate returns ErrInvalidDimension unless all three dimensions are positive.
func (d Dimensions) Validate() error {
	if d.Width <= 0 || d.Height <= 0 || d.Thickness <= 0 {
		return ErrInvalidDimension
	}
	return nil
}

// Extent maps the dimensions onto the cargo axes: x = width, y = thickness,
// z = height.
func (d Dimensions) Extent() geometry.Vector {
	return geometry.Vector{X: d.Width, Y: d.Thickness, Z: d.Height}
}

// Oriented returns the extent of the box under the given rotation.
func (d Dimensions) Oriented(r geometry.Rotation) geometry.Vector {
	return r.Apply(d.Width, d.Height, d.Thickness)
}

// Package represents a single piece of cargo to be loaded.
type Package struct {
	ID     string     `json:"id"`
	Name   string     `json:"name"`
	Dims   Dimensions `json:"dimensions"`
	Weight float64    `json:"weight"` // kg
}

// NewPackage creates a Package with a generated ID. It fails fast on
// non-positive dimensions or a negative weight.
func NewPackage(name string, width, height, thickness, weight float64) (Package, error) {
	dims := Dimensions{Width: width, Height: height, Thickness: thickness}
	if err := dims.Validate(); err != nil {
		return Package{}, err
	}
	if weight < 0 {
		return Package{}, ErrInvalidWeight
	}
	return Package{
		ID:     uuid.New().String()[:8],
		Name:   name,
		Dims:   dims,
		Weight: weight,
	}, nil
}

// Volume returns the intrinsic volume of the package.
func (p Package) Volume() float64 {
	return p.Dims.Volume()
}

// Vehicle represents a transport vehicle with a rectangular cargo bay and a
// weight limit. Vehicles are grouped by platform for classification.
type Vehicle struct {
	ID          string     `json:"id"`
	Platform    string     `json:"platform"`
	Name        string     `json:"name"`
	Bay         Dimensions `json:"bay"`
	WeightLimit float64    `json:"weight_limit"` // kg
}

// NewVehicle creates a Vehicle with a generated ID. It fails fast on
// non-positive bay dimensions or a negative weight limit.
func NewVehicle(platform, name string, width, height, thickness, weightLimit float64) (Vehicle, error) {
	bay := Dimensions{Width: width, Height: height, Thickness: thickness}
	if err := bay.Validate(); err != nil {
		return Vehicle{}, err
	}
	if weightLimit < 0 {
		return Vehicle{}, ErrInvalidWeight
	}
	return Vehicle{
		ID:          uuid.New().String()[:8],
		Platform:    platform,
		Name:        name,
		Bay:         bay,
		WeightLimit: weightLimit,
	}, nil
}

// Volume returns the cargo bay volume.
func (v Vehicle) Volume() float64 {
	return v.Bay.Volume()
}

// Placement records one package committed inside a vehicle: the chosen
// rotation and the position of the package's minimum corner.
type Placement struct {
	Package  Package           `json:"package"`
	Rotation geometry.Rotation `json:"rotation"`
	Position geometry.Vector   `json:"position"`
}

// Extent returns the oriented extent of the placed package.
func (p Placement) Extent() geometry.Vector {
	return p.Package.Dims.Oriented(p.Rotation)
}

// Box returns the axis-aligned box occupied by the placement.
func (p Placement) Box() geometry.Box {
	return geometry.Box{Min: p.Position, Extent: p.Extent()}
}

// LoadResult holds the outcome of packing one vehicle: the committed
// placements and the packages that did not fit. All metrics are derived.
type LoadResult struct {
	Vehicle    Vehicle     `json:"vehicle"`
	Placements []Placement `json:"placements"`
	Unplaced   []Package   `json:"unplaced"`
}

// PackedCount returns the number of placed packages.
func (lr LoadResult) PackedCount() int {
	return len(lr.Placements)
}

// PackedVolume returns the total volume of placed packages.
func (lr LoadResult) PackedVolume() float64 {
	var total float64
	for _, p := range lr.Placements {
		total += p.Package.Volume()
	}
	return total
}

// LoadedWeight returns the total weight of placed packages.
func (lr LoadResult) LoadedWeight() float64 {
	var total float64
	for _, p := range lr.Placements {
		total += p.Package.Weight
	}
	return total
}

// WeightHeadroom returns the remaining weight capacity.
func (lr LoadResult) WeightHeadroom() float64 {
	return lr.Vehicle.WeightLimit - lr.LoadedWeight()
}

// VolumeHeadroom returns the remaining bay volume.
func (lr LoadResult) VolumeHeadroom() float64 {
	return lr.Vehicle.Volume() - lr.PackedVolume()
}

// Utilization returns the bay volume usage percentage.
func (lr LoadResult) Utilization() float64 {
	bay := lr.Vehicle.Volume()
	if bay == 0 {
		return 0
	}
	return (lr.PackedVolume() / bay) * 100.0
}

// PackedPercent returns the percentage of the given input count that was
// placed. An empty input counts as fully placed.
func (lr LoadResult) PackedPercent(total int) float64 {
	if total == 0 {
		return 100.0
	}
	return float64(lr.PackedCount()) / float64(total) * 100.0
}

// PlatformResult holds the classification outcome for one vehicle platform.
// In single-best mode Best is set; in distribution mode Loads holds the used
// vehicles in fill order and Unplaced the packages no vehicle could take.
type PlatformResult struct {
	Platform      string       `json:"platform"`
	Best          *LoadResult  `json:"best,omitempty"`
	Loads         []LoadResult `json:"loads,omitempty"`
	Unplaced      []Package    `json:"unplaced,omitempty"`
	TotalPackages int          `json:"total_packages"`
}

// PackedCount returns the number of packages placed on this platform.
func (pr PlatformResult) PackedCount() int {
	if pr.Best != nil {
		return pr.Best.PackedCount()
	}
	total := 0
	for _, l := range pr.Loads {
		total += l.PackedCount()
	}
	return total
}

// PackedPercent returns the percentage of the input packages placed on this
// platform. An empty input counts as fully placed.
func (pr PlatformResult) PackedPercent() float64 {
	if pr.TotalPackages == 0 {
		return 100.0
	}
	return float64(pr.PackedCount()) / float64(pr.TotalPackages) * 100.0
}

// ClassifyResult holds the full classification outcome, one entry per
// platform in first-seen catalog order.
type ClassifyResult struct {
	Distributed   bool             `json:"distributed"`
	Platforms     []PlatformResult `json:"platforms"`
	TotalPackages int              `json:"total_packages"`
}

// Plan ties inputs and results together for save/load.
type Plan struct {
	Name     string          `json:"name"`
	Vehicles []Vehicle       `json:"vehicles"`
	Packages []Package       `json:"packages"`
	Result   *ClassifyResult `json:"result,omitempty"`
}

// NewPlan returns an empty unnamed plan.
func NewPlan() Plan {
	return Plan{
		Name:     "Untitled",
		Vehicles: []Vehicle{},
		Packages: []Package{},
	}
}

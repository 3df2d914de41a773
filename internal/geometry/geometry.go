// Package geometry provides the axis-aligned primitives used by the packing
// engine: 3D vectors, boxes anchored at their minimum corner, and the six
// orientations of a rectangular box.
package geometry

import "fmt"

// Vector is a point or extent in 3D space. The cargo axes are x = width,
// y = thickness (depth into the bay), z = height.
type Vector struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Add returns the component-wise sum of v and o.
func (v Vector) Add(o Vector) Vector {
	return Vector{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

// Volume returns the product of the three components.
func (v Vector) Volume() float64 {
	return v.X * v.Y * v.Z
}

func (v Vector) String() string {
	return fmt.Sprintf("(%g, %g, %g)", v.X, v.Y, v.Z)
}

// Box is an axis-aligned box anchored at its minimum corner.
type Box struct {
	Min    Vector `json:"min"`
	Extent Vector `json:"extent"`
}

// Max returns the maximum corner of the box.
func (b Box) Max() Vector {
	return b.Min.Add(b.Extent)
}

// Intersects reports whether two boxes overlap with positive volume on all
// three axes. Touching faces do not count as intersection; the comparison is
// exact, with no epsilon.
func (b Box) Intersects(o Box) bool {
	return b.Min.X < o.Min.X+o.Extent.X && b.Min.X+b.Extent.X > o.Min.X &&
		b.Min.Y < o.Min.Y+o.Extent.Y && b.Min.Y+b.Extent.Y > o.Min.Y &&
		b.Min.Z < o.Min.Z+o.Extent.Z && b.Min.Z+b.Extent.Z > o.Min.Z
}

// FitsWithin reports whether the box lies entirely inside a container of the
// given extent anchored at the origin.
func (b Box) FitsWithin(container Vector) bool {
	return b.Min.X >= 0 && b.Min.Y >= 0 && b.Min.Z >= 0 &&
		b.Min.X+b.Extent.X <= container.X &&
		b.Min.Y+b.Extent.Y <= container.Y &&
		b.Min.Z+b.Extent.Z <= container.Z
}

// Rotation identifies one of the six axis-aligned orientations of a
// rectangular box. Values 0 through 5 enumerate the permutations of the box
// dimensions in a fixed canonical order; the packer tries them in this order,
// so the enumeration is part of the observable placement behavior.
type Rotation int

// NumRotations is the number of axis-aligned orientations of a box.
const NumRotations = 6

// Apply returns the oriented extent of a box with the given width, height and
// thickness under rotation r. The result maps onto the cargo axes as
// (x, y, z) = (width axis, thickness axis, height axis).
func (r Rotation) Apply(width, height, thickness float64) Vector {
	switch r {
	case 0:
		return Vector{X: width, Y: thickness, Z: height}
	case 1:
		return Vector{X: width, Y: height, Z: thickness}
	case 2:
		return Vector{X: thickness, Y: height, Z: width}
	case 3:
		return Vector{X: thickness, Y: width, Z: height}
	case 4:
		return Vector{X: height, Y: width, Z: thickness}
	default:
		return Vector{X: height, Y: thickness, Z: width}
	}
}

func (r Rotation) String() string {
	switch r {
	case 0:
		return "WTH"
	case 1:
		return "WHT"
	case 2:
		return "THW"
	case 3:
		return "TWH"
	case 4:
		return "HWT"
	default:
		return "HTW"
	}
}

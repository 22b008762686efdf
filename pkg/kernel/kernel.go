// Package kernel defines the abstract geometry kernel interface the
// timber model builds joint solids with. Implementations provide
// solid modeling and boolean operations behind this interface so the
// backend can be swapped without touching the model.
package kernel

import (
	"github.com/chazu/tenon/pkg/geom"
	"github.com/chazu/tenon/pkg/outline"
)

// Solid is an opaque handle to a geometry kernel solid.
// Implementations wrap their internal representation.
type Solid interface {
	// BoundingBox returns the axis-aligned bounding box.
	BoundingBox() (min, max geom.Vec3)
}

// Kernel is the abstract geometry kernel interface.
type Kernel interface {
	// Primitives
	Box(x, y, z float64) Solid
	Cylinder(height, radius float64) Solid

	// Extrude sweeps a closed planar profile (at z=0) down along -Z
	// by depth, producing a prism. This is how joint faces become
	// joint solids.
	Extrude(profile outline.Polyline, depth float64) Solid

	// Boolean operations
	Union(a, b Solid) Solid
	Difference(a, b Solid) Solid
	Intersection(a, b Solid) Solid

	// Transforms
	Translate(s Solid, v geom.Vec3) Solid
	Rotate(s Solid, x, y, z float64) Solid // Euler angles in degrees
	Place(s Solid, p geom.Placement) Solid // rigid placement

	// Mesh output
	ToMesh(s Solid) (*Mesh, error)
}

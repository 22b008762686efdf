package outline

import (
	"fmt"
	"math"

	"github.com/chazu/tenon/pkg/geom"
)

// DefaultDeflection is the chord deflection used when discretizing
// boundaries, in mm.
const DefaultDeflection = 0.0001

// Polyline is one closed sub-path of an outline.
type Polyline []geom.Vec2

// Outline is an ordered list of closed 2D sub-paths describing one
// planar boundary. Extraction always yields a single sub-path; the
// slice form matches what 2D clearing solvers accept.
type Outline []Polyline

// FromWire discretizes a closed planar boundary wire into an Outline
// at the given chord deflection. A deflection of zero or less selects
// DefaultDeflection. The wire must be closed and planar; violations
// surface as ErrNotClosed / ErrNotPlanar and the input is never
// repaired.
func FromWire(w Wire, deflection float64) (Outline, error) {
	if deflection <= 0 {
		deflection = DefaultDeflection
	}
	if !w.Closed() {
		return nil, ErrNotClosed
	}

	var pts []geom.Vec3
	for _, e := range w.Edges {
		pts = append(pts, e.Discretize(deflection)...)
	}
	if len(pts) < 3 {
		return nil, fmt.Errorf("%w: boundary degenerate (%d points)", ErrInvalidGeometry, len(pts))
	}
	if err := checkPlanar(pts, deflection); err != nil {
		return nil, err
	}

	poly := make(Polyline, len(pts))
	for i, p := range pts {
		poly[i] = geom.Vec2{X: p.X, Y: p.Y}
	}
	return Outline{poly}, nil
}

// checkPlanar verifies all points lie in the face plane. Faces arrive
// already projected into their own XY plane, so the plane is z = z0;
// a point further than tol (at least 1e-6) off it is a precondition
// violation.
func checkPlanar(pts []geom.Vec3, tol float64) error {
	if tol < 1e-6 {
		tol = 1e-6
	}
	z0 := pts[0].Z
	for _, p := range pts {
		if math.Abs(p.Z-z0) > tol {
			return ErrNotPlanar
		}
	}
	return nil
}

// Bounds returns the axis-aligned bounding box of the outline.
func (o Outline) Bounds() (min, max geom.Vec2) {
	min = geom.Vec2{X: math.Inf(1), Y: math.Inf(1)}
	max = geom.Vec2{X: math.Inf(-1), Y: math.Inf(-1)}
	for _, poly := range o {
		for _, p := range poly {
			min.X = math.Min(min.X, p.X)
			min.Y = math.Min(min.Y, p.Y)
			max.X = math.Max(max.X, p.X)
			max.Y = math.Max(max.Y, p.Y)
		}
	}
	return min, max
}

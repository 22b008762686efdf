// Package outline converts planar face boundaries into the ordered 2D
// polyline outlines consumed by the adaptive toolpath core.
package outline

import (
	"errors"
	"fmt"
	"math"

	"github.com/chazu/tenon/pkg/geom"
)

// ErrInvalidGeometry is the named failure for boundary preconditions.
// Extraction errors wrap it; callers match with errors.Is.
var ErrInvalidGeometry = errors.New("invalid geometry input")

// ErrNotClosed indicates a boundary wire whose edges do not form a
// single closed loop.
var ErrNotClosed = fmt.Errorf("%w: boundary not closed", ErrInvalidGeometry)

// ErrNotPlanar indicates boundary points that do not lie in one plane.
var ErrNotPlanar = fmt.Errorf("%w: boundary not planar", ErrInvalidGeometry)

// Edge is one element of a boundary wire. Implementations discretize
// themselves at a chord deflection tolerance. The end point of each
// edge must coincide with the start of the next.
type Edge interface {
	Start() geom.Vec3
	End() geom.Vec3
	// Discretize returns the edge as a point sequence including the
	// start point and excluding the end point, with no chord further
	// than deflection from the true curve.
	Discretize(deflection float64) []geom.Vec3
}

// Line is a straight edge between two points.
type Line struct {
	P0, P1 geom.Vec3
}

func (l Line) Start() geom.Vec3 { return l.P0 }
func (l Line) End() geom.Vec3   { return l.P1 }

// Discretize returns the line start; a chord on a straight edge has
// zero deflection so no interior points are needed.
func (l Line) Discretize(deflection float64) []geom.Vec3 {
	return []geom.Vec3{l.P0}
}

// Arc is a circular arc through three points: start, a point on the
// arc, and end. The three points fix the plane, center and sweep.
type Arc struct {
	P0, Pm, P1 geom.Vec3
}

func (a Arc) Start() geom.Vec3 { return a.P0 }
func (a Arc) End() geom.Vec3   { return a.P1 }

// Discretize samples the arc at an angular step bounded by the chord
// deflection: a chord subtending angle t on radius r deflects by
// r·(1−cos(t/2)), so t = 2·acos(1 − d/r).
func (a Arc) Discretize(deflection float64) []geom.Vec3 {
	center, radius, normal, ok := a.circumcircle()
	if !ok || radius < 1e-12 {
		// Degenerate arc, treat as a line.
		return []geom.Vec3{a.P0}
	}

	u := a.P0.Sub(center).Normalize()
	v := normal.Cross(u)

	sweep := a.sweep(center, u, v, normal)

	step := math.Pi / 4
	if ratio := 1 - deflection/radius; ratio > -1 && ratio < 1 {
		step = 2 * math.Acos(ratio)
	}
	if step <= 0 || step > math.Pi/4 {
		step = math.Pi / 4
	}

	n := int(math.Ceil(math.Abs(sweep) / step))
	if n < 1 {
		n = 1
	}

	pts := make([]geom.Vec3, 0, n)
	for i := 0; i < n; i++ {
		t := sweep * float64(i) / float64(n)
		p := center.
			Add(u.Scale(radius * math.Cos(t))).
			Add(v.Scale(radius * math.Sin(t)))
		pts = append(pts, p)
	}
	return pts
}

// circumcircle returns the center, radius and plane normal of the
// circle through the arc's three points.
func (a Arc) circumcircle() (center geom.Vec3, radius float64, normal geom.Vec3, ok bool) {
	e1 := a.Pm.Sub(a.P0)
	e2 := a.P1.Sub(a.P0)
	n := e1.Cross(e2)
	nn := n.Dot(n)
	if nn < 1e-18 {
		return geom.Vec3{}, 0, geom.Vec3{}, false
	}

	// Center from the perpendicular bisector construction.
	d1 := e1.Dot(e1)
	d2 := e2.Dot(e2)
	c := e2.Scale(d1).Sub(e1.Scale(d2)).Cross(n).Scale(1 / (2 * nn))
	center = a.P0.Add(c)
	return center, center.Distance(a.P0), n.Normalize(), true
}

// sweep returns the signed angle from P0 to P1 around center, going
// through Pm.
func (a Arc) sweep(center geom.Vec3, u, v, normal geom.Vec3) float64 {
	angle := func(p geom.Vec3) float64 {
		d := p.Sub(center)
		return math.Atan2(d.Dot(v), d.Dot(u))
	}
	am := angle(a.Pm)
	a1 := angle(a.P1)

	// Normalize into (0, 2π] going counter-clockwise from P0 (angle 0).
	norm := func(t float64) float64 {
		for t <= 0 {
			t += 2 * math.Pi
		}
		for t > 2*math.Pi {
			t -= 2 * math.Pi
		}
		return t
	}
	am = norm(am)
	a1 = norm(a1)

	if am <= a1 {
		return a1 // counter-clockwise, mid point on the way
	}
	return a1 - 2*math.Pi // clockwise
}

// Wire is an ordered sequence of connected edges forming a face
// boundary.
type Wire struct {
	Edges []Edge
}

// closureTol bounds the gap allowed between consecutive edge
// endpoints before the wire is rejected as not closed.
const closureTol = 1e-9

// Closed reports whether consecutive edges connect and the last edge
// returns to the first point.
func (w Wire) Closed() bool {
	if len(w.Edges) == 0 {
		return false
	}
	for i, e := range w.Edges {
		next := w.Edges[(i+1)%len(w.Edges)]
		if e.End().Distance(next.Start()) > closureTol {
			return false
		}
	}
	return true
}

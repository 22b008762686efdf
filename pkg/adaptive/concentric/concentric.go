// Package concentric is a basic built-in clearing solver for convex
// pockets. It erodes the base outline inward in stepover-spaced rings
// and orders them inside-out, producing a single region with a helix
// entry at the innermost ring.
//
// It is deliberately minimal: no engagement control, convex outlines
// only, inside operations only. It exists so the toolchain works end
// to end without an external adaptive engine; anything beyond convex
// pockets needs a real solver behind the adaptive.Solver interface.
package concentric

import (
	"context"
	"fmt"
	"math"

	"github.com/chazu/tenon/pkg/adaptive"
	"github.com/chazu/tenon/pkg/geom"
)

// Compile-time interface check.
var _ adaptive.Solver = (*Solver)(nil)

// Solver implements adaptive.Solver with concentric inward offsets.
type Solver struct{}

// New returns a new concentric Solver.
func New() *Solver { return &Solver{} }

// Execute produces the ring paths for req. Only inside operations are
// supported; the stock outline is not consulted beyond existing,
// since an inside cut never leaves the base boundary.
func (s *Solver) Execute(ctx context.Context, req adaptive.Request, progress adaptive.Progress) ([]adaptive.Region, error) {
	if req.Side != adaptive.Inside {
		return nil, fmt.Errorf("concentric: %s not supported (inside operations only)", req.Mode())
	}
	if len(req.Base) == 0 || len(req.Base[0]) < 3 {
		return nil, fmt.Errorf("concentric: base outline empty")
	}

	base := ccw(dedup(req.Base[0]))
	if !convex(base) {
		return nil, fmt.Errorf("concentric: base outline not convex")
	}

	toolRadius := req.ToolDiameter / 2
	wall := toolRadius + req.StockToLeave

	// Outermost ring: tool center offset so the flute just reaches
	// the finished wall.
	rings := [][]geom.Vec2{}
	if outer := offset(base, wall); len(outer) >= 3 {
		rings = append(rings, outer)
	}
	if len(rings) == 0 {
		return nil, nil // pocket narrower than the tool: nothing to cut
	}

	if req.OperationType == adaptive.Clearing {
		spacing := req.StepOverFraction() * req.ToolDiameter
		if spacing <= 0 {
			return nil, fmt.Errorf("concentric: stepover %g%% yields no spacing", req.StepOver)
		}
		for d := wall + spacing; ; d += spacing {
			if err := ctx.Err(); err != nil {
				return s.assemble(rings, req), err
			}
			ring := offset(base, d)
			if len(ring) < 3 {
				break
			}
			rings = append(rings, ring)
			if progress != nil {
				progress(len(rings))
			}
		}
	}

	return s.assemble(rings, req), nil
}

// assemble orders rings inside-out and links them into one region.
func (s *Solver) assemble(rings [][]geom.Vec2, req adaptive.Request) []adaptive.Region {
	if len(rings) == 0 {
		return nil
	}

	// rings[0] is outermost; cut from the inside out so the tool
	// always plunges into open space cleared by the helix.
	innermost := rings[len(rings)-1]
	start := innermost[0]

	center := centroid(innermost)
	if limit := req.HelixDiameterLimit; limit > 0 {
		radius := center.Distance(start)
		if half := limit / 2; radius > half && radius > 0 {
			// Pull the center toward the start to respect the limit.
			center = start.Add(center.Sub(start).Scale(half / radius))
		}
	}

	var paths []adaptive.PathSegment
	keepDown := req.KeepToolDownRatio * req.ToolDiameter
	prevEnd := start
	for i := len(rings) - 1; i >= 0; i-- {
		ring := closed(rings[i])
		if i < len(rings)-1 {
			kind := adaptive.LinkClear
			if link := prevEnd.Distance(ring[0]); keepDown > 0 && link > keepDown {
				kind = adaptive.LinkNotClear
			}
			paths = append(paths, adaptive.PathSegment{
				Kind:   kind,
				Points: []geom.Vec2{ring[0]},
			})
		}
		paths = append(paths, adaptive.PathSegment{Kind: adaptive.Cutting, Points: ring})
		prevEnd = ring[len(ring)-1]
	}

	return []adaptive.Region{{
		HelixCenter: center,
		Start:       start,
		Paths:       paths,
	}}
}

// closed returns the ring with its first point appended so the
// cutting pass returns to where it entered.
func closed(ring []geom.Vec2) []geom.Vec2 {
	out := make([]geom.Vec2, 0, len(ring)+1)
	out = append(out, ring...)
	out = append(out, ring[0])
	return out
}

// dedup removes consecutive duplicate points and a closing point
// equal to the first.
func dedup(poly []geom.Vec2) []geom.Vec2 {
	const eps = 1e-12
	out := make([]geom.Vec2, 0, len(poly))
	for _, p := range poly {
		if len(out) > 0 && p.Distance(out[len(out)-1]) < eps {
			continue
		}
		out = append(out, p)
	}
	for len(out) > 1 && out[0].Distance(out[len(out)-1]) < eps {
		out = out[:len(out)-1]
	}
	return out
}

// signedArea returns twice the signed area of poly (positive for
// counter-clockwise winding).
func signedArea(poly []geom.Vec2) float64 {
	a := 0.0
	for i, p := range poly {
		q := poly[(i+1)%len(poly)]
		a += p.Cross(q)
	}
	return a
}

// ccw returns poly wound counter-clockwise.
func ccw(poly []geom.Vec2) []geom.Vec2 {
	if signedArea(poly) >= 0 {
		return poly
	}
	out := make([]geom.Vec2, len(poly))
	for i, p := range poly {
		out[len(poly)-1-i] = p
	}
	return out
}

// convex reports whether the counter-clockwise polygon is convex.
// Collinear runs are allowed; discretized arcs are full of them.
func convex(poly []geom.Vec2) bool {
	for i := range poly {
		a := poly[i]
		b := poly[(i+1)%len(poly)]
		c := poly[(i+2)%len(poly)]
		if b.Sub(a).Cross(c.Sub(b)) < -1e-9 {
			return false
		}
	}
	return true
}

// offset erodes a convex counter-clockwise polygon inward by d: each
// edge line shifts along its inward normal, consecutive shifted lines
// intersect at the new vertices. Returns nil when the polygon
// vanishes at that depth.
func offset(poly []geom.Vec2, d float64) []geom.Vec2 {
	n := len(poly)
	out := make([]geom.Vec2, 0, n)

	// Shifted edge i runs from poly[i] toward poly[i+1].
	point := make([]geom.Vec2, n)
	dir := make([]geom.Vec2, n)
	for i := 0; i < n; i++ {
		e := poly[(i+1)%n].Sub(poly[i])
		dir[i] = e.Normalize()
		// Inward (left) normal for counter-clockwise winding.
		inward := geom.Vec2{X: -dir[i].Y, Y: dir[i].X}
		point[i] = poly[i].Add(inward.Scale(d))
	}

	for i := 0; i < n; i++ {
		prev := (i - 1 + n) % n
		p, ok := intersect(point[prev], dir[prev], point[i], dir[i])
		if !ok {
			// Near-parallel neighbors: edge lines coincide after the
			// shift, keep the shifted vertex.
			p = point[i]
		}
		out = append(out, p)
	}
	out = dedup(out)

	// The offset collapsed if it lost its area or flipped winding.
	if len(out) < 3 || signedArea(out) <= 1e-9 || !convex(out) {
		return nil
	}
	return out
}

// intersect returns the intersection of two lines given as point +
// direction. ok is false for (near-)parallel lines.
func intersect(p1, d1, p2, d2 geom.Vec2) (geom.Vec2, bool) {
	den := d1.Cross(d2)
	if math.Abs(den) < 1e-9 {
		return geom.Vec2{}, false
	}
	t := p2.Sub(p1).Cross(d2) / den
	return p1.Add(d1.Scale(t)), true
}

// centroid returns the vertex average of poly.
func centroid(poly []geom.Vec2) geom.Vec2 {
	var c geom.Vec2
	for _, p := range poly {
		c = c.Add(p)
	}
	return c.Scale(1 / float64(len(poly)))
}

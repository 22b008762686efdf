package outline

import "github.com/chazu/tenon/pkg/geom"

// RoundedSlot returns the boundary wire of a rounded-rectangle slot
// centered at the origin with its long axis along +Y: two side lines
// joined by semicircular arcs of radius width/2. This is the mortise
// hole profile in its canonical frame.
func RoundedSlot(length, width float64) Wire {
	// Corner points in each quadrant.
	p0 := geom.Vec3{X: +width / 2, Y: +length/2 - width/2}
	p1 := geom.Vec3{X: -width / 2, Y: +length/2 - width/2}
	p2 := geom.Vec3{X: -width / 2, Y: -length/2 + width/2}
	p3 := geom.Vec3{X: +width / 2, Y: -length/2 + width/2}

	// Arc midpoints on the long axis.
	top := geom.Vec3{Y: +length / 2}
	bottom := geom.Vec3{Y: -length / 2}

	return Wire{Edges: []Edge{
		Line{P0: p3, P1: p0},
		Arc{P0: p0, Pm: top, P1: p1},
		Line{P0: p1, P1: p2},
		Arc{P0: p2, Pm: bottom, P1: p3},
	}}
}

// Rectangle returns the boundary wire of an axis-aligned rectangle
// centered at the origin, length along Y and width along X. This is
// the stock cross-section profile.
func Rectangle(length, width float64) Wire {
	p0 := geom.Vec3{X: +width / 2, Y: +length / 2}
	p1 := geom.Vec3{X: -width / 2, Y: +length / 2}
	p2 := geom.Vec3{X: -width / 2, Y: -length / 2}
	p3 := geom.Vec3{X: +width / 2, Y: -length / 2}

	return Wire{Edges: []Edge{
		Line{P0: p0, P1: p1},
		Line{P0: p1, P1: p2},
		Line{P0: p2, P1: p3},
		Line{P0: p3, P1: p0},
	}}
}

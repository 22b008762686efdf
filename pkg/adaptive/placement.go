package adaptive

import (
	"fmt"
	"math"

	"github.com/chazu/tenon/pkg/geom"
)

// RotaryPair selects which pair of rotary axes carries the tool
// orientation.
type RotaryPair int

const (
	PairAC RotaryPair = iota
	PairBC
	PairAB
)

// Placement re-frames a motion program generated in the canonical
// origin-centered frame (normal +Z, direction +Y) into the joint's
// real position and orientation.
type Placement struct {
	Frame geom.Frame
	// Orient selects the rotary pair for the tool orientation
	// heuristic. Default is AC.
	Orient RotaryPair
	// EmitOrientation prepends a rapid carrying the rotary angles to
	// the placed program. When false the angles are only returned.
	EmitOrientation bool
}

// Complete backfills missing X/Y/Z values on every move command from
// the most recent command that specified that axis, per axis
// independently and in emission order. After it every move carries
// explicit X, Y and Z. A move that references an axis no earlier
// command seeded is an error: there is no value to carry forward.
func Complete(p Program) error {
	last := map[string]float64{}
	for i := range p {
		c := &p[i]
		if !c.IsMove() {
			continue
		}
		for _, axis := range [...]string{"X", "Y", "Z"} {
			if v, ok := c.Axes[axis]; ok {
				last[axis] = v
				continue
			}
			v, ok := last[axis]
			if !ok {
				return fmt.Errorf("placement: command %d references %s before any value was set", i, axis)
			}
			if c.Axes == nil {
				c.Axes = map[string]float64{}
			}
			c.Axes[axis] = v
		}
	}
	return nil
}

// OrientationAngles derives the rotary-axis angles (degrees) that
// align the tool with normal, using fixed atan2 conventions. This is
// a convention heuristic for an assumed rotary pair, not a kinematic
// solve; reachability is not validated.
func OrientationAngles(normal geom.Vec3) (a, b, c float64) {
	deg := 180 / math.Pi
	a = math.Atan2(normal.Y, -normal.Z) * deg
	b = math.Atan2(normal.X, -normal.Z) * deg
	c = math.Atan2(normal.Y, normal.X) * deg
	return a, b, c
}

// rotary returns the two axis-letter → angle entries for the
// configured pair.
func (pl Placement) rotary() map[string]float64 {
	a, b, c := OrientationAngles(pl.Frame.Normal)
	switch pl.Orient {
	case PairBC:
		return map[string]float64{"B": b, "C": c}
	case PairAB:
		return map[string]float64{"A": a, "B": b}
	default:
		return map[string]float64{"A": a, "C": c}
	}
}

// Apply validates the target frame, completes coordinates, then
// rigidly transforms every move endpoint from the canonical frame
// into the target frame, preserving order, verbs, feeds and comments.
// All-or-nothing: nothing is mutated until validation passes, so a
// failed placement never leaves mixed canonical/world coordinates.
func (pl Placement) Apply(p Program) (Program, error) {
	if err := pl.Frame.Validate(); err != nil {
		return nil, fmt.Errorf("placement: %w", err)
	}
	if err := Complete(p); err != nil {
		return nil, err
	}

	placement := geom.NewPlacement(geom.Canonical(), pl.Frame)
	for i := range p {
		c := &p[i]
		if !c.IsMove() {
			continue
		}
		v := placement.Apply(geom.Vec3{X: c.Axes["X"], Y: c.Axes["Y"], Z: c.Axes["Z"]})
		c.Axes["X"] = v.X
		c.Axes["Y"] = v.Y
		c.Axes["Z"] = v.Z
	}

	if pl.EmitOrientation {
		out := make(Program, 0, len(p)+1)
		out = append(out, rapid(pl.rotary()))
		out = append(out, p...)
		return out, nil
	}
	return p, nil
}

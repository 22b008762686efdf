package geom

import "fmt"

// Frame describes where and how a joint face sits: its position, the
// outward face normal, and the in-plane reference direction.
type Frame struct {
	Position  Vec3 `json:"position"`
	Normal    Vec3 `json:"normal"`
	Direction Vec3 `json:"direction"`
}

// Canonical returns the authoring frame joints are generated in:
// origin, normal +Z, direction +Y.
func Canonical() Frame {
	return Frame{
		Normal:    Vec3{Z: 1},
		Direction: Vec3{Y: 1},
	}
}

// Validate reports whether the frame can be used as a placement
// target. Position is unconstrained; normal and direction must be
// non-zero.
func (f Frame) Validate() error {
	if f.Normal.IsZero() {
		return fmt.Errorf("frame: normal is zero")
	}
	if f.Direction.IsZero() {
		return fmt.Errorf("frame: direction is zero")
	}
	return nil
}

// Placement is a rigid transform: rotation followed by translation.
type Placement struct {
	Rotation    Rotation
	Translation Vec3
}

// NewPlacement builds the rigid transform taking the canonical frame
// onto target: rotate canonical normal onto the target normal, rotate
// canonical direction onto the target direction, then translate to
// the target position. The direction rotation composes after the
// normal rotation, matching how joint solids are placed.
func NewPlacement(canonical, target Frame) Placement {
	r1 := RotationBetween(canonical.Normal, target.Normal)
	r2 := RotationBetween(canonical.Direction, target.Direction)
	return Placement{
		Rotation:    r1.Mul(r2),
		Translation: target.Position.Sub(canonical.Position),
	}
}

// Apply transforms point p.
func (p Placement) Apply(v Vec3) Vec3 {
	return p.Rotation.Apply(v).Add(p.Translation)
}

// IsIdentity reports whether the placement leaves points unchanged.
func (p Placement) IsIdentity() bool {
	return p.Rotation.IsIdentity() && p.Translation.IsZero()
}

package geom

import "math"

// Rotation is a 3D rotation stored as a unit quaternion.
type Rotation struct {
	W, X, Y, Z float64
}

// Identity returns the identity rotation.
func Identity() Rotation { return Rotation{W: 1} }

// FromAxisAngle builds a rotation of angle radians around axis.
// The axis does not need to be normalized.
func FromAxisAngle(axis Vec3, angle float64) Rotation {
	a := axis.Normalize()
	s := math.Sin(angle / 2)
	return Rotation{
		W: math.Cos(angle / 2),
		X: a.X * s,
		Y: a.Y * s,
		Z: a.Z * s,
	}
}

// RotationBetween returns the minimal-arc rotation taking vector from
// onto vector to. Antiparallel inputs rotate half a turn around a
// stable perpendicular axis. Either input being zero yields identity.
func RotationBetween(from, to Vec3) Rotation {
	f := from.Normalize()
	t := to.Normalize()
	if f.IsZero() || t.IsZero() {
		return Identity()
	}

	d := f.Dot(t)
	switch {
	case d > 1-1e-12:
		return Identity()
	case d < -1+1e-12:
		return FromAxisAngle(perpendicular(f), math.Pi)
	}

	axis := f.Cross(t)
	return FromAxisAngle(axis, math.Acos(math.Max(-1, math.Min(1, d))))
}

// perpendicular returns a unit vector orthogonal to v, chosen against
// the axis v is least aligned with so the cross product stays stable.
func perpendicular(v Vec3) Vec3 {
	ref := Vec3{X: 1}
	if math.Abs(v.X) > math.Abs(v.Y) {
		ref = Vec3{Y: 1}
	}
	return v.Cross(ref).Normalize()
}

// Mul returns the composition r·o (o applied first, then r).
func (r Rotation) Mul(o Rotation) Rotation {
	return Rotation{
		W: r.W*o.W - r.X*o.X - r.Y*o.Y - r.Z*o.Z,
		X: r.W*o.X + r.X*o.W + r.Y*o.Z - r.Z*o.Y,
		Y: r.W*o.Y - r.X*o.Z + r.Y*o.W + r.Z*o.X,
		Z: r.W*o.Z + r.X*o.Y - r.Y*o.X + r.Z*o.W,
	}
}

// Apply rotates vector v.
func (r Rotation) Apply(v Vec3) Vec3 {
	// q * (0, v) * q^-1 expanded to avoid the intermediate quaternion.
	u := Vec3{X: r.X, Y: r.Y, Z: r.Z}
	uv := u.Cross(v)
	uuv := u.Cross(uv)
	return v.Add(uv.Scale(2 * r.W)).Add(uuv.Scale(2))
}

// IsIdentity reports whether r is (numerically) the identity rotation.
func (r Rotation) IsIdentity() bool {
	return math.Abs(math.Abs(r.W)-1) < 1e-12
}

// Euler returns the extrinsic X, Y, Z rotation angles in degrees that
// reproduce r as Rz·Ry·Rx. Used to drive kernel backends that only
// expose Euler-angle rotation.
func (r Rotation) Euler() (x, y, z float64) {
	// Rotation matrix rows from the quaternion.
	m00 := 1 - 2*(r.Y*r.Y+r.Z*r.Z)
	m10 := 2 * (r.X*r.Y + r.W*r.Z)
	m20 := 2 * (r.X*r.Z - r.W*r.Y)
	m21 := 2 * (r.Y*r.Z + r.W*r.X)
	m22 := 1 - 2*(r.X*r.X+r.Y*r.Y)

	deg := 180 / math.Pi
	if math.Abs(m20) > 1-1e-12 {
		// Gimbal lock: pitch at ±90°, roll folded into yaw.
		m01 := 2 * (r.X*r.Y - r.W*r.Z)
		m02 := 2 * (r.X*r.Z + r.W*r.Y)
		return 0, math.Asin(-m20) * deg, math.Atan2(-m01, m02) * deg
	}
	return math.Atan2(m21, m22) * deg,
		math.Asin(-m20) * deg,
		math.Atan2(m10, m00) * deg
}

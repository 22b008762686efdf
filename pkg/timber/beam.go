package timber

import "github.com/chazu/tenon/pkg/kernel"

// Beam is a plain rectangular timber member.
type Beam struct {
	Name   string
	Length float64 // mm, along X
	Width  float64 // mm, along Y
	Height float64 // mm, along Z
}

// NewBeam returns a beam with the default 2000×100×100 section.
func NewBeam(name string) *Beam {
	return &Beam{Name: name, Length: 2000, Width: 100, Height: 100}
}

// Solid builds the beam body, centered at the origin.
func (b *Beam) Solid(k kernel.Kernel) kernel.Solid {
	return k.Box(b.Length, b.Width, b.Height)
}

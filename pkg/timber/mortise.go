// Package timber models parametric timber-frame members and their
// mortise-and-tenon joints. Joint geometry is authored in a canonical
// origin-centered frame (face normal +Z, reference direction +Y) and
// placed into the assembly by a rigid transform; the same frames
// drive the adaptive machining operations.
package timber

import (
	"fmt"

	"github.com/chazu/tenon/pkg/adaptive"
	"github.com/chazu/tenon/pkg/geom"
	"github.com/chazu/tenon/pkg/kernel"
	"github.com/chazu/tenon/pkg/outline"
)

// solidDeflection is the boundary discretization used when building
// solids. Coarser than toolpath extraction; meshing does not need
// sub-micron chords.
const solidDeflection = 0.01

// JointKind distinguishes the two halves of a mortise-and-tenon pair.
type JointKind int

const (
	// Hole is the mortise pocket cut into the receiving member.
	Hole JointKind = iota
	// Tenon is the tongue left standing on the inserted member.
	Tenon
)

func (k JointKind) String() string {
	switch k {
	case Hole:
		return "hole"
	case Tenon:
		return "tenon"
	default:
		return "unknown"
	}
}

// Mortise is one mortise-and-tenon joint feature. Dimensions are in
// mm; defaults follow NewMortise.
type Mortise struct {
	Name string
	Kind JointKind

	HoleLength  float64
	HoleWidth   float64
	StockLength float64
	StockWidth  float64
	Depth       float64

	// Frame is where the joint face sits in the assembly. The
	// canonical authoring frame is geom.Canonical().
	Frame geom.Frame
}

// NewMortise returns a joint with the default dimensions: a 60×30
// slot, 60 deep, in 102×102 stock.
func NewMortise(name string, kind JointKind) *Mortise {
	return &Mortise{
		Name:        name,
		Kind:        kind,
		HoleLength:  60,
		HoleWidth:   30,
		StockLength: 102,
		StockWidth:  102,
		Depth:       60,
		Frame:       geom.Canonical(),
	}
}

// HoleWire returns the canonical-frame boundary of the joint face: a
// rounded slot, long axis along the canonical direction.
func (m *Mortise) HoleWire() outline.Wire {
	return outline.RoundedSlot(m.HoleLength, m.HoleWidth)
}

// StockWire returns the canonical-frame stock cross-section boundary.
func (m *Mortise) StockWire() outline.Wire {
	return outline.Rectangle(m.StockLength, m.StockWidth)
}

// holeSolid extrudes the joint face down along the canonical normal.
func (m *Mortise) holeSolid(k kernel.Kernel) (kernel.Solid, error) {
	o, err := outline.FromWire(m.HoleWire(), solidDeflection)
	if err != nil {
		return nil, fmt.Errorf("mortise %s: %w", m.Name, err)
	}
	return k.Extrude(o[0], m.Depth), nil
}

// stockSolid extrudes the stock cross-section down along the
// canonical normal.
func (m *Mortise) stockSolid(k kernel.Kernel) (kernel.Solid, error) {
	o, err := outline.FromWire(m.StockWire(), solidDeflection)
	if err != nil {
		return nil, fmt.Errorf("mortise %s: %w", m.Name, err)
	}
	return k.Extrude(o[0], m.Depth), nil
}

// Solid builds the joint solid in assembly coordinates: the hole
// volume for a Hole (subtracted from the receiving member by the
// caller), or stock minus hole for a Tenon.
func (m *Mortise) Solid(k kernel.Kernel) (kernel.Solid, error) {
	hole, err := m.holeSolid(k)
	if err != nil {
		return nil, err
	}

	var s kernel.Solid
	if m.Kind == Hole {
		s = hole
	} else {
		stock, err := m.stockSolid(k)
		if err != nil {
			return nil, err
		}
		s = k.Difference(stock, hole)
	}

	return k.Place(s, geom.NewPlacement(geom.Canonical(), m.Frame)), nil
}

// NewOperation builds the adaptive clearing operation that machines
// this joint: base face the slot, stock face the cross-section,
// cleared down to the joint depth and placed into the joint frame. A
// hole clears inside the slot; a tenon clears the stock outside it.
func (m *Mortise) NewOperation(solver adaptive.Solver) *adaptive.Operation {
	params := adaptive.DefaultParams()
	if m.Kind == Hole {
		params.Side = adaptive.Inside
	} else {
		params.Side = adaptive.Outside
	}

	return &adaptive.Operation{
		Name: m.Name,
		Tool: adaptive.Tool{Diameter: 12, VertFeed: 100, HorizFeed: 100},
		Depths: adaptive.DepthParams{
			ClearanceHeight: 5,
			SafeHeight:      2,
			StartDepth:      0,
			StepDown:        10,
			FinalDepth:      -m.Depth,
		},
		Params: params,
		Base:   m.HoleWire(),
		Stock:  m.StockWire(),
		Frame:  m.Frame,
		Solver: solver,
	}
}

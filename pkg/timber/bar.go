package timber

import (
	"fmt"
	"math"

	"github.com/chazu/tenon/pkg/adaptive"
	"github.com/chazu/tenon/pkg/geom"
	"github.com/chazu/tenon/pkg/kernel"
)

// Segment is a 3D line segment, used for the axis lines a bar and its
// neighbors are described by.
type Segment struct {
	Start geom.Vec3
	End   geom.Vec3
}

// Direction returns the unit vector from start to end.
func (s Segment) Direction() geom.Vec3 {
	return s.End.Sub(s.Start).Normalize()
}

// Length returns the segment length.
func (s Segment) Length() float64 {
	return s.End.Distance(s.Start)
}

// Midpoint returns the segment midpoint.
func (s Segment) Midpoint() geom.Vec3 {
	return s.Start.Add(s.End).Scale(0.5)
}

// Bar is a timber member in a truss, described by its own axis line,
// the axis lines of the bars butting against its ends, and the axis
// lines of bars meeting its sides. Ends receive tenons; side
// crossings receive mortise holes.
type Bar struct {
	Name   string
	Main   Segment
	Ends   []Segment
	Sides  []Segment
	Width  float64
	Height float64
}

// Feature is one derived joint site on a bar.
type Feature struct {
	Kind      JointKind
	Position  geom.Vec3
	Normal    geom.Vec3
	Direction geom.Vec3
}

// Features derives the joint sites: one tenon per bar end, oriented
// along the main axis with the butting bar giving the reference
// direction, and one mortise per side bar where its axis enters the
// stock.
func (b *Bar) Features() ([]Feature, error) {
	if b.Main.Length() == 0 {
		return nil, fmt.Errorf("bar %s: main axis degenerate", b.Name)
	}

	var features []Feature

	mainDir := b.Main.Direction()
	ends := [2]struct {
		pos    geom.Vec3
		normal geom.Vec3
	}{
		{b.Main.Start, mainDir.Scale(-1)},
		{b.Main.End, mainDir},
	}
	for i, end := range ends {
		if i >= len(b.Ends) {
			break
		}
		features = append(features, Feature{
			Kind:      Tenon,
			Position:  end.pos,
			Normal:    end.normal,
			Direction: b.Ends[i].Direction(),
		})
	}

	min, max := b.stockBounds()
	for _, side := range b.Sides {
		pos, ok := rayBox(side.Start, side.Direction(), min, max)
		if !ok {
			return nil, fmt.Errorf("bar %s: side bar through %v misses the stock", b.Name, side.Start)
		}
		features = append(features, Feature{
			Kind:      Hole,
			Position:  pos,
			Normal:    side.Direction(),
			Direction: mainDir,
		})
	}

	return features, nil
}

// stockBounds returns the axis-aligned bounds of the stock prism
// around the main axis. The cross-section half-extent is conservative
// for skew axes; side positions land on the real stock after the
// boolean cut regardless.
func (b *Bar) stockBounds() (min, max geom.Vec3) {
	half := math.Max(b.Width, b.Height) / 2
	lo := geom.Vec3{
		X: math.Min(b.Main.Start.X, b.Main.End.X) - half,
		Y: math.Min(b.Main.Start.Y, b.Main.End.Y) - half,
		Z: math.Min(b.Main.Start.Z, b.Main.End.Z) - half,
	}
	hi := geom.Vec3{
		X: math.Max(b.Main.Start.X, b.Main.End.X) + half,
		Y: math.Max(b.Main.Start.Y, b.Main.End.Y) + half,
		Z: math.Max(b.Main.Start.Z, b.Main.End.Z) + half,
	}
	return lo, hi
}

// rayBox intersects a ray with an axis-aligned box (slab method) and
// returns the entry point.
func rayBox(origin, dir geom.Vec3, min, max geom.Vec3) (geom.Vec3, bool) {
	tmin := math.Inf(-1)
	tmax := math.Inf(1)

	o := [3]float64{origin.X, origin.Y, origin.Z}
	d := [3]float64{dir.X, dir.Y, dir.Z}
	lo := [3]float64{min.X, min.Y, min.Z}
	hi := [3]float64{max.X, max.Y, max.Z}

	for i := 0; i < 3; i++ {
		if math.Abs(d[i]) < 1e-12 {
			if o[i] < lo[i] || o[i] > hi[i] {
				return geom.Vec3{}, false
			}
			continue
		}
		t1 := (lo[i] - o[i]) / d[i]
		t2 := (hi[i] - o[i]) / d[i]
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = math.Max(tmin, t1)
		tmax = math.Min(tmax, t2)
	}
	if tmax < tmin || tmax < 0 {
		return geom.Vec3{}, false
	}
	t := tmin
	if t < 0 {
		t = 0 // origin inside the box
	}
	return origin.Add(dir.Scale(t)), true
}

// Mortises instantiates the joint features as Mortise objects sized
// for this bar's stock.
func (b *Bar) Mortises() ([]*Mortise, error) {
	features, err := b.Features()
	if err != nil {
		return nil, err
	}

	mortises := make([]*Mortise, 0, len(features))
	for i, f := range features {
		m := NewMortise(fmt.Sprintf("%s-%s-%d", b.Name, f.Kind, i), f.Kind)
		m.StockLength = b.Width
		m.StockWidth = b.Height
		m.Frame = geom.Frame{
			Position:  f.Position,
			Normal:    f.Normal,
			Direction: f.Direction,
		}
		mortises = append(mortises, m)
	}
	return mortises, nil
}

// Solid builds the machined bar: the stock prism along the main axis
// with all joint feature volumes fused and cut away.
func (b *Bar) Solid(k kernel.Kernel) (kernel.Solid, error) {
	stock := k.Box(b.Main.Length(), b.Width, b.Height)
	place := geom.Placement{
		Rotation:    geom.RotationBetween(geom.Vec3{X: 1}, b.Main.Direction()),
		Translation: b.Main.Midpoint(),
	}
	body := k.Place(stock, place)

	mortises, err := b.Mortises()
	if err != nil {
		return nil, err
	}

	var features kernel.Solid
	for _, m := range mortises {
		s, err := m.Solid(k)
		if err != nil {
			return nil, err
		}
		if features == nil {
			features = s
		} else {
			features = k.Union(features, s)
		}
	}
	if features == nil {
		return body, nil
	}
	return k.Difference(body, features), nil
}

// Operations builds one adaptive machining operation per joint
// feature, all sharing the given solver.
func (b *Bar) Operations(solver adaptive.Solver) ([]*adaptive.Operation, error) {
	mortises, err := b.Mortises()
	if err != nil {
		return nil, err
	}
	ops := make([]*adaptive.Operation, 0, len(mortises))
	for _, m := range mortises {
		ops = append(ops, m.NewOperation(solver))
	}
	return ops, nil
}

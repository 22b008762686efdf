package outline

import (
	"errors"
	"math"
	"testing"

	"github.com/chazu/tenon/pkg/geom"
)

func TestFromWireRectangle(t *testing.T) {
	o, err := FromWire(Rectangle(102, 102), 0)
	if err != nil {
		t.Fatalf("FromWire: %v", err)
	}
	if len(o) != 1 {
		t.Fatalf("sub-paths = %d, want 1", len(o))
	}
	if len(o[0]) != 4 {
		t.Errorf("rectangle points = %d, want 4", len(o[0]))
	}

	min, max := o.Bounds()
	if min.X != -51 || min.Y != -51 || max.X != 51 || max.Y != 51 {
		t.Errorf("bounds = %v %v, want ±51", min, max)
	}
}

func TestFromWireRoundedSlot(t *testing.T) {
	o, err := FromWire(RoundedSlot(70, 30), 0.0001)
	if err != nil {
		t.Fatalf("FromWire: %v", err)
	}
	poly := o[0]
	if len(poly) < 100 {
		t.Fatalf("slot discretized to %d points, expected dense arc sampling", len(poly))
	}

	min, max := o.Bounds()
	const tol = 1e-6
	if math.Abs(min.X+15) > tol || math.Abs(max.X-15) > tol {
		t.Errorf("slot width bounds = %v..%v, want ±15", min.X, max.X)
	}
	if math.Abs(min.Y+35) > tol || math.Abs(max.Y-35) > tol {
		t.Errorf("slot length bounds = %v..%v, want ±35", min.Y, max.Y)
	}

	// Every point must lie on or inside the slot envelope.
	for _, p := range poly {
		if math.Abs(p.X) > 15+tol || math.Abs(p.Y) > 35+tol {
			t.Fatalf("point %v escapes the slot envelope", p)
		}
	}
}

// Chord deflection property: consecutive arc samples must not deviate
// from the true circle by more than the requested deflection.
func TestArcDeflectionBound(t *testing.T) {
	const radius = 15.0
	const deflection = 0.01

	arc := Arc{
		P0: geom.Vec3{X: radius},
		Pm: geom.Vec3{Y: radius},
		P1: geom.Vec3{X: -radius},
	}
	pts := arc.Discretize(deflection)
	if len(pts) < 3 {
		t.Fatalf("arc discretized to %d points", len(pts))
	}

	pts = append(pts, arc.End())
	for i := 0; i < len(pts)-1; i++ {
		mid := pts[i].Add(pts[i+1]).Scale(0.5)
		sag := radius - mid.Length()
		if sag > deflection*1.01 {
			t.Fatalf("chord %d sagitta %v exceeds deflection %v", i, sag, deflection)
		}
	}
}

func TestFromWireNotClosed(t *testing.T) {
	open := Wire{Edges: []Edge{
		Line{P0: geom.Vec3{}, P1: geom.Vec3{X: 10}},
		Line{P0: geom.Vec3{X: 10}, P1: geom.Vec3{X: 10, Y: 10}},
	}}
	_, err := FromWire(open, 0)
	if !errors.Is(err, ErrNotClosed) {
		t.Errorf("error = %v, want ErrNotClosed", err)
	}
	if !errors.Is(err, ErrInvalidGeometry) {
		t.Errorf("error = %v, should wrap ErrInvalidGeometry", err)
	}
}

func TestFromWireNotPlanar(t *testing.T) {
	skew := Wire{Edges: []Edge{
		Line{P0: geom.Vec3{}, P1: geom.Vec3{X: 10}},
		Line{P0: geom.Vec3{X: 10}, P1: geom.Vec3{X: 10, Y: 10, Z: 5}},
		Line{P0: geom.Vec3{X: 10, Y: 10, Z: 5}, P1: geom.Vec3{}},
	}}
	_, err := FromWire(skew, 0.001)
	if !errors.Is(err, ErrNotPlanar) {
		t.Errorf("error = %v, want ErrNotPlanar", err)
	}
}

func TestRoundedSlotClosed(t *testing.T) {
	if !RoundedSlot(60, 30).Closed() {
		t.Error("rounded slot wire should be closed")
	}
	if !Rectangle(100, 100).Closed() {
		t.Error("rectangle wire should be closed")
	}
}

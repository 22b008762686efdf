package geom

import "testing"

func TestFrameValidate(t *testing.T) {
	tests := []struct {
		name    string
		frame   Frame
		wantErr bool
	}{
		{"canonical", Canonical(), false},
		{"rotated", Frame{Normal: Vec3{X: -1}, Direction: Vec3{Y: 1}}, false},
		{"zero normal", Frame{Direction: Vec3{Y: 1}}, true},
		{"zero direction", Frame{Normal: Vec3{Z: 1}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.frame.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestNewPlacementIdentity(t *testing.T) {
	p := NewPlacement(Canonical(), Canonical())
	if !p.IsIdentity() {
		t.Errorf("canonical to canonical should be identity, got %+v", p)
	}

	v := Vec3{X: 1, Y: 2, Z: 3}
	if got := p.Apply(v); !vecClose(got, v, eps) {
		t.Errorf("identity placement moved %v to %v", v, got)
	}
}

// Placement semantics from the joint model: a mortise authored with
// normal +Z and direction +Y, placed onto the side of a post whose
// face normal points along -X.
func TestNewPlacementSideMortise(t *testing.T) {
	target := Frame{
		Position:  Vec3{Y: 50, Z: 50},
		Normal:    Vec3{X: -1},
		Direction: Vec3{Y: 1},
	}
	p := NewPlacement(Canonical(), target)

	// The canonical normal must land on the target normal.
	if got := p.Rotation.Apply(Vec3{Z: 1}); !vecClose(got, target.Normal, eps) {
		t.Errorf("normal maps to %v, want %v", got, target.Normal)
	}
	// The canonical direction must land on the target direction.
	if got := p.Rotation.Apply(Vec3{Y: 1}); !vecClose(got, target.Direction, eps) {
		t.Errorf("direction maps to %v, want %v", got, target.Direction)
	}
	// The origin lands on the target position.
	if got := p.Apply(Vec3{}); !vecClose(got, target.Position, eps) {
		t.Errorf("origin maps to %v, want %v", got, target.Position)
	}
}

func TestPlacementIsometry(t *testing.T) {
	target := Frame{
		Position:  Vec3{X: 200, Z: 50},
		Normal:    Vec3{Y: -1},
		Direction: Vec3{X: 1},
	}
	p := NewPlacement(Canonical(), target)

	pts := []Vec3{{}, {X: 5}, {X: 5, Y: 7}, {X: -3, Y: 2, Z: -6}}
	for i := range pts {
		for j := i + 1; j < len(pts); j++ {
			want := pts[i].Distance(pts[j])
			got := p.Apply(pts[i]).Distance(p.Apply(pts[j]))
			if diff := got - want; diff > eps || diff < -eps {
				t.Errorf("distance %d-%d after placement = %v, want %v", i, j, got, want)
			}
		}
	}
}

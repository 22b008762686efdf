package adaptive

import (
	"math"
	"testing"
)

func TestPassesMortiseScenario(t *testing.T) {
	d := DepthParams{
		ClearanceHeight: 5,
		SafeHeight:      2,
		StartDepth:      0,
		StepDown:        10,
		FinishStep:      0,
		FinalDepth:      -60,
	}
	passes, err := d.Passes()
	if err != nil {
		t.Fatalf("Passes: %v", err)
	}

	want := []float64{-10, -20, -30, -40, -50, -60}
	if len(passes) != len(want) {
		t.Fatalf("passes = %v, want %v", passes, want)
	}
	for i := range want {
		if math.Abs(passes[i]-want[i]) > 1e-9 {
			t.Errorf("pass %d = %v, want %v", i, passes[i], want[i])
		}
	}
}

func TestPassesFinishStep(t *testing.T) {
	d := DepthParams{StartDepth: 0, StepDown: 10, FinishStep: 2, FinalDepth: -30}
	passes, err := d.Passes()
	if err != nil {
		t.Fatalf("Passes: %v", err)
	}

	// Roughing stops a finish step above final depth, then one
	// finishing pass lands exactly on it.
	last := passes[len(passes)-1]
	if last != -30 {
		t.Errorf("last pass = %v, want exactly -30", last)
	}
	secondLast := passes[len(passes)-2]
	if math.Abs(secondLast-(-28)) > 1e-9 {
		t.Errorf("last roughing pass = %v, want -28", secondLast)
	}
}

func TestPassesProperties(t *testing.T) {
	tests := []struct {
		name string
		d    DepthParams
	}{
		{"even division", DepthParams{StartDepth: 0, StepDown: 10, FinalDepth: -60}},
		{"uneven division", DepthParams{StartDepth: 0, StepDown: 7, FinalDepth: -60}},
		{"with finish", DepthParams{StartDepth: 5, StepDown: 4, FinishStep: 1.5, FinalDepth: -11}},
		{"tiny step clamped", DepthParams{StartDepth: 0, StepDown: 0.01, FinalDepth: -0.5}},
		{"shallow", DepthParams{StartDepth: 0, StepDown: 10, FinalDepth: -3}},
		{"finish exceeds step", DepthParams{StartDepth: 0, StepDown: 2, FinishStep: 5, FinalDepth: -9}},
		{"positive range", DepthParams{StartDepth: 70, StepDown: 10, FinalDepth: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			passes, err := tt.d.Passes()
			if err != nil {
				t.Fatalf("Passes: %v", err)
			}
			if len(passes) == 0 {
				t.Fatal("no passes")
			}

			stepDown := tt.d.StepDown
			if stepDown < minStepDown {
				stepDown = minStepDown
			}

			prev := tt.d.StartDepth
			for i, z := range passes {
				if z >= prev {
					t.Fatalf("pass %d: %v not strictly below %v", i, z, prev)
				}
				if prev-z > stepDown+1e-9 {
					t.Fatalf("pass %d: step %v exceeds step-down %v", i, prev-z, stepDown)
				}
				prev = z
			}
			if got := passes[len(passes)-1]; got != tt.d.FinalDepth {
				t.Errorf("last pass = %v, want exactly %v", got, tt.d.FinalDepth)
			}
		})
	}
}

func TestPassesInvertedRange(t *testing.T) {
	d := DepthParams{StartDepth: -10, StepDown: 5, FinalDepth: 0}
	if _, err := d.Passes(); err == nil {
		t.Error("inverted depth range should fail")
	}
}

package engine

import (
	"testing"

	"github.com/chazu/tenon/pkg/adaptive"
	"github.com/chazu/tenon/pkg/timber"
)

// ---------------------------------------------------------------------------
// Preprocessing tests
// ---------------------------------------------------------------------------

func TestPreprocessKeywords(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		expect string
	}{
		{
			name:   "simple keyword",
			input:  `(mortise :depth 60)`,
			expect: `(mortise "__kw_depth" 60)`,
		},
		{
			name:   "multiple keywords",
			input:  `(tool :diameter 12 :vert-feed 100)`,
			expect: `(tool "__kw_diameter" 12 "__kw_vert_feed" 100)`,
		},
		{
			name:   "keyword in string preserved",
			input:  `"thing with :keyword inside"`,
			expect: `"thing with :keyword inside"`,
		},
		{
			name:   "assignment operator preserved",
			input:  `(def x := 10)`,
			expect: `(def x := 10)`,
		},
		{
			name:   "kebab-case identifier",
			input:  `(step-down :finish-step 1)`,
			expect: `(step_down "__kw_finish_step" 1)`,
		},
		{
			name:   "minus operator preserved",
			input:  `(- 10 5)`,
			expect: `(- 10 5)`,
		},
		{
			name:   "comment converted to // style",
			input:  `;; comment with :keyword`,
			expect: `// comment with :keyword`,
		},
		{
			name:   "single semicolon comment",
			input:  `; simple comment`,
			expect: `// simple comment`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := preprocessSource(tt.input)
			if got != tt.expect {
				t.Errorf("preprocessSource(%q) = %q, want %q", tt.input, got, tt.expect)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// Job form tests
// ---------------------------------------------------------------------------

func TestToolDepthsAdaptiveForms(t *testing.T) {
	eng := NewEngine()

	source := `
(tool :diameter 16 :vert-feed 120 :horiz-feed 450)
(depths :clearance 8 :safe 3 :step-down 6 :finish-step 1)
(adaptive :tolerance 0.05 :stepover 30 :helix-angle 3 :inside-out true)
`
	spec, evalErrs, err := eng.Evaluate(source)
	if err != nil {
		t.Fatalf("fatal error: %v", err)
	}
	if len(evalErrs) > 0 {
		t.Fatalf("eval errors: %v", evalErrs)
	}

	if spec.Tool.Diameter != 16 {
		t.Errorf("expected diameter=16, got %f", spec.Tool.Diameter)
	}
	if spec.Tool.VertFeed != 120 {
		t.Errorf("expected vert feed=120, got %f", spec.Tool.VertFeed)
	}
	if spec.Tool.HorizFeed != 450 {
		t.Errorf("expected horiz feed=450, got %f", spec.Tool.HorizFeed)
	}
	if spec.Depths.ClearanceHeight != 8 {
		t.Errorf("expected clearance=8, got %f", spec.Depths.ClearanceHeight)
	}
	if spec.Depths.StepDown != 6 {
		t.Errorf("expected step down=6, got %f", spec.Depths.StepDown)
	}
	if spec.Depths.FinishStep != 1 {
		t.Errorf("expected finish step=1, got %f", spec.Depths.FinishStep)
	}
	if spec.Params.Tolerance != 0.05 {
		t.Errorf("expected tolerance=0.05, got %f", spec.Params.Tolerance)
	}
	if spec.Params.StepOver != 30 {
		t.Errorf("expected stepover=30, got %f", spec.Params.StepOver)
	}
	if spec.Params.HelixAngle != 3 {
		t.Errorf("expected helix angle=3, got %f", spec.Params.HelixAngle)
	}
	if !spec.Params.ForceInsideOut {
		t.Error("expected inside-out to be set")
	}
}

func TestMortiseForm(t *testing.T) {
	eng := NewEngine()

	source := `
(mortise "post-a" :kind :tenon :length 80 :width 40 :depth 50
         :stock-length 120 :stock-width 120
         :position (vec3 0 100 50) :normal (vec3 -1 0 0)
         :direction (vec3 0 1 0))
`
	spec, evalErrs, err := eng.Evaluate(source)
	if err != nil {
		t.Fatalf("fatal error: %v", err)
	}
	if len(evalErrs) > 0 {
		t.Fatalf("eval errors: %v", evalErrs)
	}
	if len(spec.Mortises) != 1 {
		t.Fatalf("expected 1 mortise, got %d", len(spec.Mortises))
	}

	m := spec.Mortises[0]
	if m.Name != "post-a" {
		t.Errorf("expected name=post-a, got %q", m.Name)
	}
	if m.Kind != timber.Tenon {
		t.Errorf("expected kind=tenon, got %s", m.Kind)
	}
	if m.HoleLength != 80 || m.HoleWidth != 40 {
		t.Errorf("expected hole 80x40, got %fx%f", m.HoleLength, m.HoleWidth)
	}
	if m.Depth != 50 {
		t.Errorf("expected depth=50, got %f", m.Depth)
	}
	if m.StockLength != 120 || m.StockWidth != 120 {
		t.Errorf("expected stock 120x120, got %fx%f", m.StockLength, m.StockWidth)
	}
	if m.Frame.Position.Y != 100 || m.Frame.Position.Z != 50 {
		t.Errorf("unexpected position %+v", m.Frame.Position)
	}
	if m.Frame.Normal.X != -1 {
		t.Errorf("unexpected normal %+v", m.Frame.Normal)
	}
	if m.Frame.Direction.Y != 1 {
		t.Errorf("unexpected direction %+v", m.Frame.Direction)
	}
}

func TestMortiseDefaults(t *testing.T) {
	eng := NewEngine()

	spec, evalErrs, err := eng.Evaluate(`(mortise "plain")`)
	if err != nil {
		t.Fatalf("fatal error: %v", err)
	}
	if len(evalErrs) > 0 {
		t.Fatalf("eval errors: %v", evalErrs)
	}
	if len(spec.Mortises) != 1 {
		t.Fatalf("expected 1 mortise, got %d", len(spec.Mortises))
	}

	m := spec.Mortises[0]
	if m.Kind != timber.Hole {
		t.Errorf("expected default kind=hole, got %s", m.Kind)
	}
	if m.HoleLength != 60 || m.HoleWidth != 30 {
		t.Errorf("expected default hole 60x30, got %fx%f", m.HoleLength, m.HoleWidth)
	}
	if m.Depth != 60 {
		t.Errorf("expected default depth=60, got %f", m.Depth)
	}
}

func TestMortiseBadKind(t *testing.T) {
	eng := NewEngine()

	spec, evalErrs, err := eng.Evaluate(`(mortise "x" :kind :dovetail)`)
	if err != nil {
		t.Fatalf("expected non-fatal eval error, got fatal: %v", err)
	}
	if spec != nil {
		t.Fatal("expected nil spec on bad kind")
	}
	if len(evalErrs) == 0 {
		t.Fatal("expected eval error for unknown kind")
	}
}

func TestMortiseDegenerateFrame(t *testing.T) {
	eng := NewEngine()

	spec, evalErrs, err := eng.Evaluate(`(mortise "x" :normal (vec3 0 0 0))`)
	if err != nil {
		t.Fatalf("expected non-fatal eval error, got fatal: %v", err)
	}
	if spec != nil {
		t.Fatal("expected nil spec on degenerate frame")
	}
	if len(evalErrs) == 0 {
		t.Fatal("expected eval error for zero normal")
	}
}

func TestVariableReference(t *testing.T) {
	eng := NewEngine()

	source := `
(def d 45)
(mortise "joint" :depth d)
`
	spec, evalErrs, err := eng.Evaluate(source)
	if err != nil {
		t.Fatalf("fatal error: %v", err)
	}
	if len(evalErrs) > 0 {
		t.Fatalf("eval errors: %v", evalErrs)
	}
	if len(spec.Mortises) != 1 {
		t.Fatalf("expected 1 mortise, got %d", len(spec.Mortises))
	}
	if got := spec.Mortises[0].Depth; got != 45 {
		t.Errorf("expected depth=45 (from variable), got %f", got)
	}
}

// ---------------------------------------------------------------------------
// Operation derivation
// ---------------------------------------------------------------------------

func TestJobOperations(t *testing.T) {
	eng := NewEngine()

	source := `
(tool :diameter 10)
(mortise "hole-a" :kind :hole :depth 40)
(mortise "tenon-b" :kind :tenon :depth 30)
`
	spec, evalErrs, err := eng.Evaluate(source)
	if err != nil {
		t.Fatalf("fatal error: %v", err)
	}
	if len(evalErrs) > 0 {
		t.Fatalf("eval errors: %v", evalErrs)
	}

	ops := spec.Operations(nil)
	if len(ops) != 2 {
		t.Fatalf("expected 2 operations, got %d", len(ops))
	}

	hole, tenon := ops[0], ops[1]
	if hole.Tool.Diameter != 10 || tenon.Tool.Diameter != 10 {
		t.Error("operations do not share the job tool")
	}
	if hole.Depths.FinalDepth != -40 {
		t.Errorf("hole final depth = %f, want -40", hole.Depths.FinalDepth)
	}
	if tenon.Depths.FinalDepth != -30 {
		t.Errorf("tenon final depth = %f, want -30", tenon.Depths.FinalDepth)
	}
	if hole.Params.Side != adaptive.Inside {
		t.Errorf("hole side = %s, want inside", hole.Params.Side)
	}
	if tenon.Params.Side != adaptive.Outside {
		t.Errorf("tenon side = %s, want outside", tenon.Params.Side)
	}
}

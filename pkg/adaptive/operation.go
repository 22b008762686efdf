package adaptive

import (
	"context"
	"fmt"

	"github.com/chazu/tenon/pkg/geom"
	"github.com/chazu/tenon/pkg/outline"
)

// Params are the adaptive-specific knobs of an operation, mirroring
// the solve request minus geometry.
type Params struct {
	OperationType      OperationType `json:"operationType"`
	Side               Side          `json:"side"`
	Tolerance          float64       `json:"tolerance"`
	StepOver           float64       `json:"stepOver"` // percent of tool diameter
	LiftDistance       float64       `json:"liftDistance"`
	KeepToolDownRatio  float64       `json:"keepToolDownRatio"`
	StockToLeave       float64       `json:"stockToLeave"`
	HelixAngle         float64       `json:"helixAngle"` // degrees
	HelixDiameterLimit float64       `json:"helixDiameterLimit"`
	ForceInsideOut     bool          `json:"forceInsideOut"`
}

// DefaultParams mirrors the property defaults of the original
// operation.
func DefaultParams() Params {
	return Params{
		OperationType:     Clearing,
		Side:              Outside,
		Tolerance:         0.1,
		StepOver:          20,
		LiftDistance:      1,
		KeepToolDownRatio: 3.0,
		HelixAngle:        5,
	}
}

// Operation is one adaptive milling operation on one joint face. It
// owns its input-state cache; concurrent operations on independent
// joints share nothing.
type Operation struct {
	Name   string
	Tool   Tool
	Depths DepthParams
	Params Params

	// Base is the feature face boundary, Stock the stock boundary,
	// both in the canonical frame.
	Base  outline.Wire
	Stock outline.Wire

	// Frame is where the joint face actually sits in the assembly.
	Frame geom.Frame
	// Orientation config for placement.
	Orient          RotaryPair
	EmitOrientation bool

	// Deflection for boundary discretization; zero selects the
	// default.
	Deflection float64

	Solver Solver

	cache      Cache
	solveCount int
}

// ExecResult is what one recompute produces.
type ExecResult struct {
	// Program is the placed motion program, in world coordinates.
	Program Program
	// Regions is the solve result the program was generated from.
	Regions []Region
	// CacheHit reports that the solve was skipped.
	CacheHit bool
	// Partial reports an aborted solve; Program covers only the
	// regions produced before cancellation.
	Partial bool
}

// SolveCount returns how many times the solver has actually run.
// Cache hits do not count.
func (op *Operation) SolveCount() int { return op.solveCount }

// Cache exposes the operation's input-state cache for cross-session
// persistence.
func (op *Operation) Cache() *Cache { return &op.cache }

// request extracts fresh outlines from the boundary wires and
// assembles the solve request.
func (op *Operation) request() (Request, error) {
	base, err := outline.FromWire(op.Base, op.Deflection)
	if err != nil {
		return Request{}, fmt.Errorf("base face: %w", err)
	}
	stock, err := outline.FromWire(op.Stock, op.Deflection)
	if err != nil {
		return Request{}, fmt.Errorf("stock face: %w", err)
	}
	return Request{
		ToolDiameter:       op.Tool.Diameter,
		Tolerance:          op.Params.Tolerance,
		StepOver:           op.Params.StepOver,
		HelixDiameterLimit: op.Params.HelixDiameterLimit,
		OperationType:      op.Params.OperationType,
		Side:               op.Params.Side,
		ForceInsideOut:     op.Params.ForceInsideOut,
		KeepToolDownRatio:  op.Params.KeepToolDownRatio,
		StockToLeave:       op.Params.StockToLeave,
		Base:               base,
		Stock:              stock,
	}.normalized(), nil
}

// Execute runs one recompute: outline extraction, fingerprint/cache
// check, 2D solve on miss, motion program generation, and placement
// into the target frame. Geometry precondition violations are fatal;
// a cancelled solve yields a partial (uncached) result.
func (op *Operation) Execute(ctx context.Context, progress Progress) (*ExecResult, error) {
	if op.Solver == nil {
		return nil, fmt.Errorf("operation %s: no solver", op.Name)
	}

	req, err := op.request()
	if err != nil {
		return nil, fmt.Errorf("operation %s: %w", op.Name, err)
	}

	fp := req.Fingerprint()
	res, hit := op.cache.Lookup(fp)
	if !hit {
		regions, err := op.Solver.Execute(ctx, req, progress)
		op.solveCount++
		switch {
		case err == nil:
			res = &Result{Regions: regions}
		case ctx.Err() != nil:
			// Cooperative cancellation: keep whatever was produced.
			res = &Result{Regions: regions, Partial: true}
		default:
			return nil, fmt.Errorf("operation %s: solve: %w", op.Name, err)
		}
		op.cache.Store(fp, res)
	}

	gen := Generator{
		Tool:         op.Tool,
		Depths:       op.Depths,
		LiftDistance: op.Params.LiftDistance,
		HelixAngle:   op.Params.HelixAngle,
	}
	program, err := gen.Generate(res)
	if err != nil {
		return nil, fmt.Errorf("operation %s: %w", op.Name, err)
	}

	if len(program) > 0 {
		placement := Placement{
			Frame:           op.Frame,
			Orient:          op.Orient,
			EmitOrientation: op.EmitOrientation,
		}
		program, err = placement.Apply(program)
		if err != nil {
			return nil, fmt.Errorf("operation %s: %w", op.Name, err)
		}
	}

	return &ExecResult{
		Program:  program,
		Regions:  res.Regions,
		CacheHit: hit,
		Partial:  res.Partial,
	}, nil
}

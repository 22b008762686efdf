// Package adaptive derives depth-staged, helix-ramped CNC clearing
// programs from 2D adaptive toolpaths and places them into a joint's
// assembly frame. The 2D path itself comes from a pluggable Solver;
// this package owns everything around it: request fingerprinting and
// caching, depth-pass planning, motion program generation and rigid
// frame placement.
package adaptive

import "github.com/chazu/tenon/pkg/geom"

// OperationType selects between clearing an area and profiling its
// boundary.
type OperationType int

const (
	Clearing OperationType = iota
	Profiling
)

func (t OperationType) String() string {
	switch t {
	case Clearing:
		return "Clearing"
	case Profiling:
		return "Profiling"
	default:
		return "unknown"
	}
}

// Side selects which side of the selected face the tool cuts on.
type Side int

const (
	Outside Side = iota
	Inside
)

func (s Side) String() string {
	switch s {
	case Outside:
		return "Outside"
	case Inside:
		return "Inside"
	default:
		return "unknown"
	}
}

// MotionKind classifies a solver path segment.
type MotionKind int

const (
	// Cutting segments remove material at pass depth.
	Cutting MotionKind = iota
	// LinkClear segments cross already-cleared area; the tool lifts
	// slightly but stays near depth.
	LinkClear
	// LinkNotClear segments cross uncleared stock; the tool retracts
	// fully to clearance height.
	LinkNotClear
)

func (k MotionKind) String() string {
	switch k {
	case Cutting:
		return "Cutting"
	case LinkClear:
		return "LinkClear"
	case LinkNotClear:
		return "LinkNotClear"
	default:
		return "unknown"
	}
}

// PathSegment is one motion-typed run of points within a region.
type PathSegment struct {
	Kind   MotionKind  `json:"kind"`
	Points []geom.Vec2 `json:"points"`
}

// Region is one contiguous clearing area returned by the solver: a
// helix entry location plus the ordered path segments that clear it.
// Region order and in-region point order are the solver's cut
// sequence and must never be reordered downstream.
type Region struct {
	HelixCenter geom.Vec2     `json:"helixCenter"`
	Start       geom.Vec2     `json:"start"`
	Paths       []PathSegment `json:"paths"`
}

// Result is the solver output for one request.
type Result struct {
	Regions []Region `json:"regions"`
	// Partial marks a result from a cancelled solve. Partial results
	// are usable but never cached.
	Partial bool `json:"partial,omitempty"`
}

// Empty reports whether there is nothing to cut: no regions, or a
// first region with no paths.
func (r *Result) Empty() bool {
	if r == nil || len(r.Regions) == 0 {
		return true
	}
	return len(r.Regions[0].Paths) == 0
}

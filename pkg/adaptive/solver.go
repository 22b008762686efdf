package adaptive

import "context"

// Progress is an optional report hook a solver invokes periodically
// with the number of regions produced so far. It cannot abort the
// solve; cancellation goes through the context.
type Progress func(regions int)

// Solver computes 2D adaptive clearing paths. Implementations are
// black boxes: they own cut sequencing and in-plane collision
// avoidance, and their region/point ordering is authoritative.
//
// Solvers check ctx periodically. On cancellation they return the
// regions produced so far together with ctx.Err(); the caller decides
// whether a partial result is usable.
type Solver interface {
	Execute(ctx context.Context, req Request, progress Progress) ([]Region, error)
}

// SolverFunc adapts a function to the Solver interface.
type SolverFunc func(ctx context.Context, req Request, progress Progress) ([]Region, error)

func (f SolverFunc) Execute(ctx context.Context, req Request, progress Progress) ([]Region, error) {
	return f(ctx, req, progress)
}

package engine

import (
	"github.com/chazu/tenon/pkg/adaptive"
	"github.com/chazu/tenon/pkg/timber"
)

// JobSpec is the full machining job a script describes: tool and
// depth staging shared by all operations, adaptive parameters, and
// the joints to cut.
type JobSpec struct {
	Tool     adaptive.Tool
	Depths   adaptive.DepthParams
	Params   adaptive.Params
	Mortises []*timber.Mortise
}

// newJobSpec returns a JobSpec with the same defaults the operation
// layer uses, so a script only has to state what differs.
func newJobSpec() *JobSpec {
	return &JobSpec{
		Tool: adaptive.Tool{Diameter: 12, VertFeed: 100, HorizFeed: 100},
		Depths: adaptive.DepthParams{
			ClearanceHeight: 5,
			SafeHeight:      2,
			StepDown:        10,
		},
		Params: adaptive.DefaultParams(),
	}
}

// Operations instantiates one adaptive operation per mortise, sharing
// the job's tool, depths and parameters.
func (j *JobSpec) Operations(solver adaptive.Solver) []*adaptive.Operation {
	ops := make([]*adaptive.Operation, 0, len(j.Mortises))
	for _, m := range j.Mortises {
		op := m.NewOperation(solver)
		op.Tool = j.Tool

		depths := j.Depths
		depths.FinalDepth = -m.Depth
		op.Depths = depths

		side := op.Params.Side // keep the side the joint kind chose
		op.Params = j.Params
		op.Params.Side = side

		ops = append(ops, op)
	}
	return ops
}

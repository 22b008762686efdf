package adaptive

import (
	"fmt"
	"math"
)

// minStepDown is the floor for the roughing step-down.
const minStepDown = 0.1

// DepthParams describes the vertical staging of an operation. All
// values are signed Z coordinates except StepDown and FinishStep,
// which are distances. Cutting proceeds in decreasing Z.
type DepthParams struct {
	ClearanceHeight float64 `json:"clearanceHeight"`
	SafeHeight      float64 `json:"safeHeight"`
	StartDepth      float64 `json:"startDepth"`
	StepDown        float64 `json:"stepDown"`
	FinishStep      float64 `json:"finishStep"`
	FinalDepth      float64 `json:"finalDepth"`
}

// normalized returns a copy with the step-down floored at minStepDown
// and the finish step clamped to the step-down. Silent, as with all
// parameter clamping.
func (d DepthParams) normalized() DepthParams {
	if d.StepDown < minStepDown {
		d.StepDown = minStepDown
	}
	if d.FinishStep < 0 {
		d.FinishStep = 0
	}
	if d.FinishStep > d.StepDown {
		d.FinishStep = d.StepDown
	}
	return d
}

// Validate rejects an inverted depth range. Everything else is
// clamped rather than rejected.
func (d DepthParams) Validate() error {
	if d.FinalDepth >= d.StartDepth {
		return fmt.Errorf("depth: final depth %g not below start depth %g", d.FinalDepth, d.StartDepth)
	}
	return nil
}

// Passes returns the ordered pass-end depths from the start depth
// down to the final depth. The roughing height (start − final −
// finish) is divided into equal steps no larger than the step-down;
// the sequence is strictly decreasing and always ends with exactly
// the final depth. With a finish step the last roughing pass stops a
// finish step above final depth, leaving that allowance for the
// single finishing pass.
func (d DepthParams) Passes() ([]float64, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	n := d.normalized()

	roughHeight := n.StartDepth - n.FinalDepth - n.FinishStep
	var passes []float64

	if roughHeight > 1e-9 {
		steps := int(math.Ceil(roughHeight/n.StepDown - 1e-9))
		size := roughHeight / float64(steps)
		for i := 1; i <= steps; i++ {
			passes = append(passes, n.StartDepth-float64(i)*size)
		}
		// Equal division can leave the last roughing pass a rounding
		// error away from its exact target; pin it.
		passes[len(passes)-1] = n.FinalDepth + n.FinishStep
	}

	if len(passes) == 0 || passes[len(passes)-1] != n.FinalDepth {
		passes = append(passes, n.FinalDepth)
	}
	return passes, nil
}

package geodesy

// pipelineDescriptor is the shared descriptor for every composite Op
// built out of more than one step. It has no constructor of its own in
// the operator registry: Context.build recognizes a multi-step
// definition and assembles the child Ops directly, wrapping them with
// WithSteps(pipelineDescriptor, ...).
var pipelineDescriptor = OpDescriptor{
	Definition: "pipeline",
	Fwd:        pipelineApplyFwd,
	Inv:        pipelineApplyInv,
}

// pipelineApplyFwd runs every step 0..N-1 in order. Each step resolves
// its own effective direction from its Inverted flag, so a step written
// "inv: true" runs backwards even while the pipeline as a whole runs
// forwards.
func pipelineApplyFwd(op *Op, ctx *Context, operands []Coord) int {
	count := len(operands)
	for _, step := range op.Steps() {
		n := step.Apply(ctx, operands, Fwd)
		if n < count {
			count = n
		}
	}
	return count
}

// pipelineApplyInv runs every step N-1..0, the mirror image of
// pipelineApplyFwd.
func pipelineApplyInv(op *Op, ctx *Context, operands []Coord) int {
	count := len(operands)
	steps := op.Steps()
	for i := len(steps) - 1; i >= 0; i-- {
		n := steps[i].Apply(ctx, operands, Inv)
		if n < count {
			count = n
		}
	}
	return count
}
